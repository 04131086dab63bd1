package ingest

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilsimda/topturnier/dialect"
)

const sampleDir = "../dialect/testdata/51-hgr2dstd"

var quiet = Options{Workers: 2, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

// copySample copies the sample pages into a fresh directory, applying edit to
// the named page when given.
func copySample(t *testing.T, edit map[string]func(string) string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"deck.htm", "tabges.htm", "erg.htm", "ergwert.htm"} {
		raw, err := os.ReadFile(filepath.Join(sampleDir, name))
		require.NoError(t, err)
		content := string(raw)
		if f, ok := edit[name]; ok {
			content = f(content)
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestLoadCompetition(t *testing.T) {
	docs, err := LoadCompetition(sampleDir)
	require.NoError(t, err)
	require.Len(t, docs, 4)
	for i, d := range dialect.All {
		assert.Equal(t, d, docs[i].Dialect)
		assert.NotEmpty(t, docs[i].Raw)
	}
}

func TestLoadCompetitionRejectsUnknownPages(t *testing.T) {
	dir := copySample(t, nil)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.htm"), []byte("<html></html>"), 0o644))

	_, err := LoadCompetition(dir)
	assert.ErrorIs(t, err, dialect.ErrUnknownDialect)
}

func TestLoadCompetitionWithoutPages(t *testing.T) {
	_, err := LoadCompetition(t.TempDir())
	assert.ErrorIs(t, err, ErrNoPages)
}

func TestProcess(t *testing.T) {
	c, err := Process(context.Background(), sampleDir, quiet)
	require.NoError(t, err)

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "11.05.2024 OT, Hgr.II D Standard", c.Title)
	require.Len(t, c.Pages, 4)
	for _, p := range c.Pages {
		assert.True(t, p.Equal, "%s: %s", p.Dialect, p.Diff)
		assert.Empty(t, p.Diagnostics)
	}

	require.True(t, c.JudgeReport.Consistent())
	require.Len(t, c.Judges, 5)
	assert.Equal(t, "TSC Blau-Gelb Hagen", c.Judges[0].Club)
	assert.Empty(t, c.JudgeReport.Conflicts)

	require.Len(t, c.Participants, 5)
	assert.Equal(t, 607, c.Participants[0].Number)
	assert.Equal(t, "TSC Schwarz-Gold Aschaffenburg", c.Participants[0].Club)
	assert.Equal(t, []int{4}, c.Participants[0].Ranks)
	assert.Empty(t, c.NameMismatches)

	assert.Len(t, c.Committee, 5)
	assert.Len(t, c.Rounds, 2)
	assert.Len(t, c.Scores, 75)
	assert.Len(t, c.FinalScores, 45)
	assert.Len(t, c.FinalScorings, 5)
}

func TestProcessRoundTripMismatch(t *testing.T) {
	dir := copySample(t, map[string]func(string) string{
		"tabges.htm": func(s string) string {
			return strings.Replace(s, `<td class="td2c">3</td>`, `<td class="td2c">4</td>`, 1)
		},
	})

	_, err := Process(context.Background(), dir, quiet)
	require.NoError(t, err)

	strict := quiet
	strict.Strict = true
	_, err = Process(context.Background(), dir, strict)
	assert.ErrorIs(t, err, ErrRoundTripMismatch)
}

func TestProcessInconsistentJudges(t *testing.T) {
	dir := copySample(t, map[string]func(string) string{
		"deck.htm": func(s string) string {
			return strings.Replace(s, "Kessler, Petra", "Kessler, Petra Maria", 1)
		},
	})

	c, err := Process(context.Background(), dir, quiet)
	require.NoError(t, err)
	assert.False(t, c.JudgeReport.Consistent())
	assert.Empty(t, c.Judges)

	strict := quiet
	strict.Strict = true
	_, err = Process(context.Background(), dir, strict)
	assert.ErrorIs(t, err, ErrInconsistentJudges)
}

func TestProcessUnreadableJudgesFailConsistency(t *testing.T) {
	dir := copySample(t, map[string]func(string) string{
		"ergwert.htm": func(s string) string {
			return strings.Replace(s, `<span class="tooltip">Robert Block</span>`, `<span class="tooltip">Block</span>`, 1)
		},
	})

	c, err := Process(context.Background(), dir, quiet)
	require.NoError(t, err)
	assert.False(t, c.JudgeReport.Consistent())
	assert.Empty(t, c.Judges)

	var missing []string
	for _, m := range c.JudgeReport.Missing {
		missing = append(missing, m.Dialect)
		if m.Dialect == dialect.DetailedScore.String() {
			assert.Len(t, m.Judges, 5)
		}
	}
	assert.Equal(t, []string{dialect.DetailedScore.String()}, missing)

	strict := quiet
	strict.Strict = true
	_, err = Process(context.Background(), dir, strict)
	assert.ErrorIs(t, err, ErrInconsistentJudges)
}

type memoryStore struct {
	mu           sync.Mutex
	competitions []Competition
}

func (s *memoryStore) SaveCompetition(_ context.Context, c Competition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.competitions = append(s.competitions, c)
	return nil
}

func TestRun(t *testing.T) {
	store := &memoryStore{}
	err := Run(context.Background(), []string{sampleDir, copySample(t, nil), t.TempDir()}, store, quiet)

	assert.ErrorIs(t, err, ErrNoPages)
	require.Len(t, store.competitions, 2)
	assert.NotEqual(t, store.competitions[0].ID, store.competitions[1].ID)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := &memoryStore{}
	err := Run(ctx, []string{sampleDir}, store, quiet)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, store.competitions)
}
