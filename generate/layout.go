// Package generate rebuilds TopTurnier result pages from models. Each page type
// has one templ component that prints exactly the structure its extractor
// reads; attributes are only emitted where an extractor looks at them.
package generate

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// Headings printed above the content of each page type.
const (
	CoverSheetHeading    = "Deckblatt"
	ScoreTableHeading    = "Wertungstabelle Gesamt"
	ResultsHeading       = "Ergebnis"
	DetailedScoreHeading = "Ergebnis mit Wertung"
)

// Render writes c into a string.
func Render(ctx context.Context, c templ.Component) (string, error) {
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return "", fmt.Errorf("failed to render page: %w", err)
	}
	return buf.String(), nil
}

// TitleTableText is the wording of the event table at the top of each page,
// derived from the page title: "11.05.2024 Hgr.II D" becomes
// "11.05.2024 - OT, Hgr.II D".
func TitleTableText(title string) string {
	switch {
	case strings.Contains(title, " OT,"):
		return strings.Replace(title, " OT,", " - OT,", 1)
	case strings.Contains(title, " Hgr."):
		return strings.Replace(title, " Hgr.", " - OT, Hgr.", 1)
	}
	return title
}

// formatDecimal prints places and totals the way the pages do: no fraction
// for whole numbers and a decimal comma otherwise.
func formatDecimal(f float64) string {
	return strings.ReplaceAll(strconv.FormatFloat(f, 'f', -1, 64), ".", ",")
}

func formatMarks(marks []int) string {
	var b strings.Builder
	for _, m := range marks {
		b.WriteString(strconv.Itoa(m))
	}
	return b.String()
}
