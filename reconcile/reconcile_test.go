package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilsimda/topturnier/models"
)

func judge(t *testing.T, code, name, club string) models.Judge {
	t.Helper()
	j, err := models.NewJudge(code, name, club)
	require.NoError(t, err)
	return j
}

func TestJudges(t *testing.T) {
	t.Run("merges consistent sets preferring clubs", func(t *testing.T) {
		report := Judges([]JudgeSource{
			{Dialect: "tabges", Judges: []models.Judge{
				judge(t, "AT", "Marcus Bärschneider", ""),
				judge(t, "AX", "Robert Block", ""),
			}},
			{Dialect: "deck", Judges: []models.Judge{
				judge(t, "AX", "Block, Robert", "Schwarz-Rot-Club Wetzlar"),
				judge(t, "AT", "Bärschneider, Marcus", "TSC Blau-Gelb Hagen"),
			}},
		})

		require.True(t, report.Consistent())
		require.Len(t, report.Judges, 2)
		assert.Equal(t, "AT", report.Judges[0].Code)
		assert.Equal(t, "TSC Blau-Gelb Hagen", report.Judges[0].Club)
		assert.Equal(t, "Schwarz-Rot-Club Wetzlar", report.Judges[1].Club)
		assert.Empty(t, report.Conflicts)
	})

	t.Run("refuses sets that differ", func(t *testing.T) {
		report := Judges([]JudgeSource{
			{Dialect: "deck", Judges: []models.Judge{
				judge(t, "AT", "Marcus Bärschneider", ""),
				judge(t, "AX", "Robert Block", ""),
			}},
			{Dialect: "ergwert", Judges: []models.Judge{
				judge(t, "AT", "Marcus Bärschneider", ""),
			}},
		})

		assert.False(t, report.Consistent())
		assert.Empty(t, report.Judges)
		assert.Equal(t, []MissingJudges{{
			Dialect: "ergwert",
			Judges:  []models.JudgeKey{{Code: "AX", Name: "Robert Block"}},
		}}, report.Missing)
	})

	t.Run("flags different clubs and keeps the first", func(t *testing.T) {
		report := Judges([]JudgeSource{
			{Dialect: "deck", Judges: []models.Judge{judge(t, "AT", "Marcus Bärschneider", "TSC Blau-Gelb Hagen")}},
			{Dialect: "other", Judges: []models.Judge{judge(t, "AT", "Marcus Bärschneider", "TSC Hagen")}},
		})

		require.True(t, report.Consistent())
		assert.Equal(t, "TSC Blau-Gelb Hagen", report.Judges[0].Club)
		require.Len(t, report.Conflicts, 1)
		assert.Equal(t, []string{"TSC Blau-Gelb Hagen", "TSC Hagen"}, report.Conflicts[0].Clubs)
	})

	t.Run("no sources", func(t *testing.T) {
		report := Judges(nil)
		assert.True(t, report.Consistent())
		assert.Empty(t, report.Judges)
	})
}

func TestParticipants(t *testing.T) {
	fromTable, err := models.NewParticipant("Maik Rau", "Carina Rau", 617, "", nil)
	require.NoError(t, err)
	fromResults, err := models.NewParticipant("Maik Rau", "Carina Rau", 617, "Flensburger TC", []int{3})
	require.NoError(t, err)
	renamed, err := models.NewParticipant("Mike Rau", "Carina Rau", 617, "Flensburger TC", nil)
	require.NoError(t, err)

	report := Participants([]ParticipantSource{
		{Dialect: "tabges", Participants: []models.Participant{fromTable}},
		{Dialect: "erg", Participants: []models.Participant{fromResults}},
		{Dialect: "ergwert", Participants: []models.Participant{renamed}},
	})

	require.Len(t, report.Participants, 1)
	assert.Equal(t, "Flensburger TC", report.Participants[0].Club)
	assert.Equal(t, []int{3}, report.Participants[0].Ranks)
	require.Len(t, report.Mismatches, 1)
	assert.Equal(t, "ergwert", report.Mismatches[0].Dialect)
	assert.Equal(t, "Mike Rau / Carina Rau", report.Mismatches[0].Got)
}
