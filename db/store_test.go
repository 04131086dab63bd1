package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilsimda/topturnier/dialect"
	"github.com/nilsimda/topturnier/ingest"
	"github.com/nilsimda/topturnier/models"
	"github.com/nilsimda/topturnier/reconcile"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "topturnier.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testCompetition(t *testing.T) ingest.Competition {
	t.Helper()
	judge, err := models.NewJudge("AT", "Bärschneider, Marcus", "TSC Blau-Gelb Hagen")
	require.NoError(t, err)
	couple, err := models.NewParticipant("Maik Rau", "Carina Rau", 617, "Flensburger TC", []int{2, 3})
	require.NoError(t, err)
	final, err := models.NewResultRound("Endrunde", []models.Placing{models.FinalRoundPlacing{
		Rank:        "2.- 3.",
		Participant: couple,
		DanceScores: []models.DanceScore{{Dance: models.Tango, Marks: []int{2, 3, 2}, Place: 2.5}},
		TotalScore:  2.5,
	}})
	require.NoError(t, err)

	return ingest.Competition{
		ID:           uuid.NewString(),
		Dir:          "testdata/51-hgr2dstd",
		Title:        "11.05.2024 Hgr.II D Standard",
		Pages:        []ingest.PageResult{{Path: "erg.htm", Dialect: dialect.Results, Equal: true}},
		Judges:       []models.Judge{judge},
		Committee:    []models.CommitteeMember{{Role: models.RoleChairperson, Name: "Jungbluth, Kai"}},
		Participants: []models.Participant{couple},
		Rounds:       []models.ResultRound{final},
		Scores: []models.Score{
			{Number: 617, JudgeCode: "AT", Dance: models.Tango, RoundNumber: 1, RoundName: "Vorrunde", Voted: true},
		},
		FinalScores: []models.FinalRoundScore{
			{Number: 617, JudgeCode: "AT", Dance: models.Tango, RoundNumber: 2, RoundName: "Endrunde", Mark: 2},
		},
		FinalScorings: []models.FinalScoring{{
			Placement: "2.- 3.", Names: "Maik Rau / Carina Rau", Number: 617, Club: "Flensburger TC",
			DanceScores: []models.DanceSummary{{Dance: models.Tango, Summary: "2,5"}}, Total: "2,5",
		}},
		JudgeReport: reconcile.JudgeReport{Judges: []models.Judge{judge}},
	}
}

func TestSaveCompetition(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	c := testCompetition(t)

	require.NoError(t, store.SaveCompetition(ctx, c))

	competitions, err := store.GetCompetitions(ctx)
	require.NoError(t, err)
	require.Len(t, competitions, 1)
	assert.Equal(t, CompetitionRecord{ID: c.ID, Dir: c.Dir, Title: c.Title, JudgesConsistent: true}, competitions[0])

	judges, err := store.GetJudges(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.Judges, judges)

	participants, err := store.GetParticipants(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.Participants, participants)

	scores, finals, err := store.GetScores(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.Scores, scores)
	assert.Equal(t, c.FinalScores, finals)
}

func TestSaveCompetitionReplacesSameDirectory(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	first := testCompetition(t)
	require.NoError(t, store.SaveCompetition(ctx, first))

	second := testCompetition(t)
	second.Title = "12.05.2024 Hgr.II D Standard"
	require.NoError(t, store.SaveCompetition(ctx, second))

	competitions, err := store.GetCompetitions(ctx)
	require.NoError(t, err)
	require.Len(t, competitions, 1)
	assert.Equal(t, second.ID, competitions[0].ID)
	assert.Equal(t, second.Title, competitions[0].Title)

	judges, err := store.GetJudges(ctx, first.ID)
	require.NoError(t, err)
	assert.Empty(t, judges)
}

func TestSaveCompetitionJudgesSharingCode(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	c := testCompetition(t)
	other, err := models.NewJudge("AT", "Anja Dreher", "")
	require.NoError(t, err)
	c.Judges = append(c.Judges, other)

	require.NoError(t, store.SaveCompetition(ctx, c))

	judges, err := store.GetJudges(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.Judges, judges)
}

func TestSplitInts(t *testing.T) {
	assert.Nil(t, splitInts(""))
	assert.Equal(t, []int{8, 9}, splitInts(joinInts([]int{8, 9})))
}
