// Package dialect ties the four TopTurnier page types to their canonicalization
// rules, extractor and generator, and checks that a page survives the trip
// through the domain model.
package dialect

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/a-h/templ"

	"github.com/nilsimda/topturnier/canonical"
	"github.com/nilsimda/topturnier/dom"
	"github.com/nilsimda/topturnier/extract"
	"github.com/nilsimda/topturnier/generate"
	"github.com/nilsimda/topturnier/models"
)

var ErrUnknownDialect = errors.New("unknown dialect")

type Dialect int

const (
	CoverSheet Dialect = iota
	ScoreTable
	Results
	DetailedScore
	numDialects
)

// All lists every dialect in dispatch order.
var All = []Dialect{CoverSheet, ScoreTable, Results, DetailedScore}

// Entry is everything the package knows about one page type.
type Entry struct {
	Name     string
	Filename string
	Rules    canonical.Rules
	Extract  func(dom.Node, *extract.Diagnostics) models.Page
	Generate func(models.Page) templ.Component
}

var entries = [numDialects]Entry{
	CoverSheet: {
		Name:     extract.CoverSheetName,
		Filename: "deck.htm",
		Rules: canonical.Rules{
			Preserve: []string{"td", "span", "tr"},
		},
		Extract:  extract.ExtractCoverSheet,
		Generate: generate.CoverSheet,
	},
	ScoreTable: {
		Name:     extract.ScoreTableName,
		Filename: "tabges.htm",
		Rules: canonical.Rules{
			Unwrap:   []string{"nobr"},
			Preserve: []string{"td", "span", "tr"},
		},
		Extract:  extract.ExtractScoreTable,
		Generate: generate.ScoreTable,
	},
	Results: {
		Name:     extract.ResultsName,
		Filename: "erg.htm",
		Rules: canonical.Rules{
			Unwrap:   []string{"center"},
			Preserve: []string{"td", "tr"},
		},
		Extract:  extract.ExtractResults,
		Generate: generate.Results,
	},
	DetailedScore: {
		Name:     extract.DetailedScoreName,
		Filename: "ergwert.htm",
		Rules: canonical.Rules{
			Decompose:               []string{"div.ergwertinfo", "tr.td0v"},
			Preserve:                []string{"td", "tr"},
			DropSingleEmptyCellRows: true,
		},
		Extract:  extract.ExtractDetailedScores,
		Generate: generate.DetailedScores,
	},
}

// canonicalizers are compiled once; the rule sets above are constant.
var canonicalizers = func() [numDialects]*canonical.Canonicalizer {
	var cs [numDialects]*canonical.Canonicalizer
	for d := range numDialects {
		cs[d] = canonical.MustNew(entries[d].Rules)
	}
	return cs
}()

func (d Dialect) valid() bool {
	return d >= 0 && d < numDialects
}

func (d Dialect) String() string {
	if !d.valid() {
		return fmt.Sprintf("Dialect(%d)", int(d))
	}
	return entries[d].Name
}

// Entry returns the dispatch entry of d.
func (d Dialect) Entry() (Entry, error) {
	if !d.valid() {
		return Entry{}, fmt.Errorf("%w: %d", ErrUnknownDialect, int(d))
	}
	return entries[d], nil
}

// FromFilename picks the dialect of a page by the end of its file name. The
// longest matching suffix wins, so "ergwert.htm" is never taken for "erg.htm"
// even with a prefix such as "51-ergwert.htm".
func FromFilename(name string) (Dialect, error) {
	base := strings.ToLower(filepath.Base(name))
	best, bestLen := Dialect(-1), 0
	for _, d := range All {
		suffix := entries[d].Filename
		if strings.HasSuffix(base, suffix) && len(suffix) > bestLen {
			best, bestLen = d, len(suffix)
		}
	}
	if bestLen == 0 {
		return 0, fmt.Errorf("%w: %s", ErrUnknownDialect, name)
	}
	return best, nil
}

// FromName looks a dialect up by its short name, such as "ergwert".
func FromName(name string) (Dialect, error) {
	for _, d := range All {
		if strings.EqualFold(entries[d].Name, strings.TrimSpace(name)) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownDialect, name)
}

// Canonicalize returns the canonical form of raw under the rules of d.
func Canonicalize(d Dialect, raw string) (string, error) {
	if !d.valid() {
		return "", fmt.Errorf("%w: %d", ErrUnknownDialect, int(d))
	}
	return canonicalizers[d].Canonicalize(raw)
}

// Extract parses raw and reads it with the extractor of d. Skipped rows end up
// in diags, which may be nil.
func Extract(d Dialect, raw string, diags *extract.Diagnostics) (models.Page, error) {
	if !d.valid() {
		return models.Page{}, fmt.Errorf("%w: %d", ErrUnknownDialect, int(d))
	}
	root, err := dom.Parse(raw)
	if err != nil {
		return models.Page{}, fmt.Errorf("failed to extract %s: %w", d, err)
	}
	return entries[d].Extract(root, diags), nil
}

// Generate prints page as a d page.
func Generate(ctx context.Context, d Dialect, page models.Page) (string, error) {
	if !d.valid() {
		return "", fmt.Errorf("%w: %d", ErrUnknownDialect, int(d))
	}
	return generate.Render(ctx, entries[d].Generate(page))
}
