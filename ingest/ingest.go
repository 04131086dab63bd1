// Package ingest reads competition directories of TopTurnier pages, checks
// every page round-trips, reconciles what the pages say and hands the result
// to a Store.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/nilsimda/topturnier/dialect"
	"github.com/nilsimda/topturnier/extract"
	"github.com/nilsimda/topturnier/models"
	"github.com/nilsimda/topturnier/reconcile"
)

var (
	ErrRoundTripMismatch  = errors.New("page does not round-trip")
	ErrInconsistentJudges = errors.New("pages disagree on judges")
	ErrNoPages            = errors.New("no result pages")
)

// Document is one raw page of a competition.
type Document struct {
	Path    string
	Dialect dialect.Dialect
	Raw     string
}

// PageResult is what one page produced.
type PageResult struct {
	Path        string
	Dialect     dialect.Dialect
	Page        models.Page
	Diagnostics []extract.Diagnostic
	Equal       bool
	Diff        string
}

// Competition is everything read from one competition directory.
type Competition struct {
	ID             string
	Dir            string
	Title          string
	Pages          []PageResult
	Judges         []models.Judge
	Committee      []models.CommitteeMember
	Participants   []models.Participant
	Rounds         []models.ResultRound
	Scores         []models.Score
	FinalScores    []models.FinalRoundScore
	FinalScorings  []models.FinalScoring
	JudgeReport    reconcile.JudgeReport
	NameMismatches []reconcile.NameMismatch
}

// Store accepts processed competitions.
type Store interface {
	SaveCompetition(ctx context.Context, c Competition) error
}

type Options struct {
	Workers int
	// Strict fails a competition on a round-trip mismatch or judge
	// disagreement instead of logging it.
	Strict bool
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// LoadCompetition reads the .htm pages of dir. Any .htm file that is not one
// of the four known pages is an error.
func LoadCompetition(dir string) ([]Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read competition directory: %w", err)
	}

	var docs []Document
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".htm") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		d, err := dialect.FromFilename(entry.Name())
		if err != nil {
			return nil, err
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		docs = append(docs, Document{Path: path, Dialect: d, Raw: string(raw)})
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoPages, dir)
	}
	slices.SortFunc(docs, func(a, b Document) int { return int(a.Dialect) - int(b.Dialect) })
	return docs, nil
}

// Process loads and verifies one competition directory.
func Process(ctx context.Context, dir string, opts Options) (Competition, error) {
	logger := opts.logger().With(slog.String("dir", dir))

	docs, err := LoadCompetition(dir)
	if err != nil {
		return Competition{}, err
	}

	c := Competition{ID: uuid.NewString(), Dir: dir}
	for _, doc := range docs {
		diags := extract.NewDiagnostics(logger.With(slog.String("file", doc.Path)))
		v, err := dialect.Verify(ctx, doc.Dialect, doc.Raw, diags)
		if err != nil {
			return Competition{}, fmt.Errorf("failed to verify %s: %w", doc.Path, err)
		}
		if !v.Equal {
			if opts.Strict {
				return Competition{}, fmt.Errorf("%w: %s\n%s", ErrRoundTripMismatch, doc.Path, v.Diff)
			}
			logger.Warn("page does not round-trip", slog.String("file", doc.Path), slog.String("diff", v.Diff))
		}
		c.Pages = append(c.Pages, PageResult{
			Path:        doc.Path,
			Dialect:     doc.Dialect,
			Page:        v.Page,
			Diagnostics: v.Diagnostics,
			Equal:       v.Equal,
			Diff:        v.Diff,
		})
	}

	if err := c.merge(); err != nil {
		if opts.Strict {
			return Competition{}, err
		}
		logger.Warn("judges not merged", slog.Any("missing", c.JudgeReport.Missing))
	}
	for _, conflict := range c.JudgeReport.Conflicts {
		logger.Warn("judge club conflict", slog.String("judge", conflict.String()))
	}
	for _, mismatch := range c.NameMismatches {
		logger.Warn("participant name mismatch", slog.String("participant", mismatch.String()))
	}
	return c, nil
}

// merge combines the pages: judges and participants are reconciled, the
// other entities come from the page that prints them in most detail.
func (c *Competition) merge() error {
	var judgeSources []reconcile.JudgeSource
	var participantSources []reconcile.ParticipantSource
	for _, p := range c.Pages {
		page := p.Page
		if c.Title == "" {
			c.Title = page.Title
		}
		// every page type that prints judges takes part, even when none of
		// them could be read
		if printsJudges(p.Dialect) {
			judgeSources = append(judgeSources, reconcile.JudgeSource{Dialect: p.Dialect.String(), Judges: page.Judges})
		}
		if len(page.Participants) > 0 {
			participantSources = append(participantSources, reconcile.ParticipantSource{Dialect: p.Dialect.String(), Participants: page.Participants})
		}

		switch p.Dialect {
		case dialect.CoverSheet:
			c.Committee = page.Committee
		case dialect.ScoreTable:
			if len(c.Scores) == 0 {
				c.Scores = page.Scores
			}
		case dialect.Results:
			c.Rounds = page.Rounds
		case dialect.DetailedScore:
			// covers every round, not just the preliminaries
			if len(page.Scores) > 0 {
				c.Scores = page.Scores
			}
			c.FinalScores = page.FinalScores
			c.FinalScorings = page.FinalScorings
		}
	}

	participants := reconcile.Participants(participantSources)
	c.Participants = participants.Participants
	c.NameMismatches = participants.Mismatches

	c.JudgeReport = reconcile.Judges(judgeSources)
	if !c.JudgeReport.Consistent() {
		return fmt.Errorf("%w in %s", ErrInconsistentJudges, c.Dir)
	}
	c.Judges = c.JudgeReport.Judges
	return nil
}

func printsJudges(d dialect.Dialect) bool {
	switch d {
	case dialect.CoverSheet, dialect.ScoreTable, dialect.DetailedScore:
		return true
	}
	return false
}

// Run processes dirs with at most opts.Workers directories in flight and saves
// each competition to store as it completes. Failed directories are logged
// and returned together.
func Run(ctx context.Context, dirs []string, store Store, opts Options) error {
	logger := opts.logger()
	workers := max(opts.Workers, 1)

	type result struct {
		dir         string
		competition Competition
		err         error
	}
	results := make(chan result, len(dirs))
	semaphore := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for _, dir := range dirs {
		wg.Add(1)
		go func(dir string) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if err := ctx.Err(); err != nil {
				results <- result{dir: dir, err: err}
				return
			}
			c, err := Process(ctx, dir, opts)
			results <- result{dir: dir, competition: c, err: err}
		}(dir)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var errs []error
	saved := 0
	for r := range results {
		if r.err != nil {
			logger.Error("failed to process competition", slog.String("dir", r.dir), slog.Any("error", r.err))
			errs = append(errs, fmt.Errorf("%s: %w", r.dir, r.err))
			continue
		}
		if err := store.SaveCompetition(ctx, r.competition); err != nil {
			logger.Error("failed to save competition", slog.String("dir", r.dir), slog.Any("error", err))
			errs = append(errs, fmt.Errorf("%s: %w", r.dir, err))
			continue
		}
		saved++
		logger.Info("saved competition",
			slog.String("dir", r.dir),
			slog.String("id", r.competition.ID),
			slog.String("title", r.competition.Title),
			slog.Int("pages", len(r.competition.Pages)),
		)
	}

	logger.Info("ingest finished", slog.Int("saved", saved), slog.Int("failed", len(errs)))
	return errors.Join(errs...)
}
