package dialect

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilsimda/topturnier/extract"
	"github.com/nilsimda/topturnier/models"
)

var update = flag.Bool("update", false, "rewrite golden files")

const sampleDir = "testdata/51-hgr2dstd"

func readSample(t *testing.T, d Dialect) string {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join(sampleDir, entries[d].Filename))
	require.NoError(t, err)
	return string(raw)
}

func TestFromFilename(t *testing.T) {
	tests := []struct {
		name string
		want Dialect
	}{
		{name: "deck.htm", want: CoverSheet},
		{name: "tabges.htm", want: ScoreTable},
		{name: "erg.htm", want: Results},
		{name: "ergwert.htm", want: DetailedScore},
		{name: "51-ergwert.htm", want: DetailedScore},
		{name: "/data/2024/51-hgr2dstd/ERG.HTM", want: Results},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := FromFilename(tc.name)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	for _, name := range []string{"index.htm", "erg.html", "deck", ""} {
		t.Run("rejects "+name, func(t *testing.T) {
			_, err := FromFilename(name)
			assert.ErrorIs(t, err, ErrUnknownDialect)
		})
	}
}

func TestFromName(t *testing.T) {
	for _, d := range All {
		got, err := FromName(strings.ToUpper(d.String()))
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}
	_, err := FromName("index")
	assert.ErrorIs(t, err, ErrUnknownDialect)
}

func TestEntriesArePopulated(t *testing.T) {
	require.Len(t, All, int(numDialects))
	for _, d := range All {
		e, err := d.Entry()
		require.NoError(t, err)
		assert.NotEmpty(t, e.Name, "dialect %d", d)
		assert.NotEmpty(t, e.Filename, "dialect %d", d)
		assert.NotNil(t, e.Extract, "dialect %s", d)
		assert.NotNil(t, e.Generate, "dialect %s", d)
		assert.NotEmpty(t, e.Rules.Preserve, "dialect %s", d)
	}

	_, err := Dialect(numDialects).Entry()
	assert.ErrorIs(t, err, ErrUnknownDialect)
	_, err = Canonicalize(Dialect(-1), "")
	assert.ErrorIs(t, err, ErrUnknownDialect)
}

func TestCanonicalizeGolden(t *testing.T) {
	for _, d := range All {
		t.Run(d.String(), func(t *testing.T) {
			got, err := Canonicalize(d, readSample(t, d))
			require.NoError(t, err)

			golden := filepath.Join(sampleDir, strings.TrimSuffix(entries[d].Filename, ".htm")+".golden")
			if *update {
				require.NoError(t, os.WriteFile(golden, []byte(got), 0o644))
			}
			want, err := os.ReadFile(golden)
			if os.IsNotExist(err) {
				t.Skipf("no golden file %s, run with -update", golden)
			}
			require.NoError(t, err)
			assert.Equal(t, string(want), got)

			again, err := Canonicalize(d, got)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestVerifyRoundTrip(t *testing.T) {
	for _, d := range All {
		t.Run(d.String(), func(t *testing.T) {
			v, err := Verify(context.Background(), d, readSample(t, d), nil)
			require.NoError(t, err)
			assert.Empty(t, v.Diagnostics)
			assert.True(t, v.Equal, v.Diff)
			assert.Empty(t, v.Diff)
			assert.Equal(t, "11.05.2024 Hgr.II D Standard", strings.Replace(v.Page.Title, " OT,", "", 1))
		})
	}
}

func TestReExtractionIsStable(t *testing.T) {
	ctx := context.Background()
	for _, d := range All {
		t.Run(d.String(), func(t *testing.T) {
			first, err := Extract(d, readSample(t, d), nil)
			require.NoError(t, err)
			generated, err := Generate(ctx, d, first)
			require.NoError(t, err)
			second, err := Extract(d, generated, nil)
			require.NoError(t, err)
			assert.Equal(t, first, second)
		})
	}
}

func TestVerifyReportsMismatch(t *testing.T) {
	raw := strings.Replace(readSample(t, ScoreTable), `<td class="td2c">3</td>`, `<td class="td2c">4</td>`, 1)

	diags := extract.NewDiagnostics(nil)
	v, err := Verify(context.Background(), ScoreTable, raw, diags)
	require.NoError(t, err)
	assert.False(t, v.Equal)
	assert.Contains(t, v.Diff, "--- original")
	assert.Contains(t, v.Diff, "+++ regenerated")
	assert.Contains(t, v.Diff, "-        4")
	assert.Contains(t, v.Diff, "+        3")
	require.Len(t, v.Diagnostics, 1)
	assert.Equal(t, extract.ScoreTableName, v.Diagnostics[0].Dialect)
	assert.Equal(t, 1, diags.Len())
}

func TestExtractResults(t *testing.T) {
	page, err := Extract(Results, readSample(t, Results), nil)
	require.NoError(t, err)
	require.Len(t, page.Rounds, 2)

	final := page.Rounds[0]
	assert.Equal(t, "Endrunde", final.Name)
	require.True(t, final.IsFinal())
	assert.Equal(t, []models.Dance{models.SlowWaltz, models.Tango, models.Quickstep}, final.Dances())

	winner, ok := final.Placings[0].(models.FinalRoundPlacing)
	require.True(t, ok)
	assert.Equal(t, "1.", winner.Rank)
	assert.Equal(t, 610, winner.Participant.Number)
	assert.Equal(t, "Jonathan Kummetz", winner.Participant.NameOne)
	assert.Equal(t, "Elisabeth Findeiß", winner.Participant.NameTwo)
	assert.Equal(t, "1. TC Rot-Gold Bayreuth", winner.Participant.Club)
	assert.Equal(t, []int{1}, winner.Participant.Ranks)
	assert.Equal(t, 3.0, winner.TotalScore)

	waltz, ok := winner.Score(models.SlowWaltz)
	require.True(t, ok)
	assert.Equal(t, []int{1, 1, 1, 3, 1}, waltz.Marks)
	assert.Equal(t, 1.0, waltz.Place)

	prelim := page.Rounds[1]
	assert.Equal(t, "Vorrunde", prelim.Name)
	assert.False(t, prelim.IsFinal())
	require.Len(t, prelim.Placings, 2)
	assert.Equal(t, 613, prelim.Placings[1].PlacingParticipant().Number)
	assert.Equal(t, "Tanzclub Blau-Orange Wiesbaden", prelim.Placings[1].PlacingParticipant().Club)

	assert.Len(t, page.Participants, 5)
}

func TestExtractCoverSheet(t *testing.T) {
	page, err := Extract(CoverSheet, readSample(t, CoverSheet), nil)
	require.NoError(t, err)

	require.Len(t, page.Judges, 5)
	assert.Equal(t, models.Judge{Code: "AT", Name: "Marcus Bärschneider", LastName: "Bärschneider", Club: "TSC Blau-Gelb Hagen"}, page.Judges[0])

	require.Len(t, page.Committee, 5)
	assert.Equal(t, models.CommitteeMember{Role: models.RoleOrganizer, Name: "Hessischer Tanzsportverband"}, page.Committee[0])
	assert.Equal(t, models.CommitteeMember{Role: models.RoleChairperson, Name: "Jungbluth, Kai", Club: "Tanz-Sport-Club Fischbach"}, page.Committee[2])
}

func TestExtractDetailedScores(t *testing.T) {
	page, err := Extract(DetailedScore, readSample(t, DetailedScore), nil)
	require.NoError(t, err)

	require.Len(t, page.Judges, 5)
	require.Len(t, page.FinalScorings, 5)
	// 5 couples x 3 dances x 5 judges in the Vorrunde, 3 finalists in the final
	assert.Len(t, page.Scores, 75)
	assert.Len(t, page.FinalScores, 45)

	first := page.FinalScores[0]
	assert.Equal(t, models.FinalRoundScore{
		Number: 610, JudgeCode: "AT", Dance: models.SlowWaltz,
		RoundNumber: 2, RoundName: "Endrunde", Mark: 1,
	}, first)

	summary, ok := page.FinalScorings[0].Summary(models.Tango)
	require.True(t, ok)
	assert.Equal(t, "1", summary)
	assert.Equal(t, "3", page.FinalScorings[0].Total)
	assert.Empty(t, page.FinalScorings[4].Total)
}
