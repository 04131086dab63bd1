// Package extract reads TopTurnier result pages into models. There is one
// extractor per page type; they share only the small helpers in this file.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/nilsimda/topturnier/dom"
	"github.com/nilsimda/topturnier/models"
	"github.com/nilsimda/topturnier/textnorm"
)

// Dialect names used in diagnostics.
const (
	CoverSheetName    = "deck"
	ScoreTableName    = "tabges"
	ResultsName       = "erg"
	DetailedScoreName = "ergwert"
)

var (
	numberInParens = regexp.MustCompile(`\((\d+)\)`)
	namesAndNumber = regexp.MustCompile(`^(.*?)\s*\((\d+)\)$`)
	leadingNumber  = regexp.MustCompile(`^\d+`)
)

func pageTitle(root dom.Node) string {
	titles := root.Find("title")
	if len(titles) == 0 {
		return ""
	}
	return textnorm.Normalize(titles[0].Text())
}

func rows(table dom.Node) []dom.Node {
	return table.Find("tr")
}

func cells(row dom.Node) []dom.Node {
	return row.Find("td")
}

// spanNameAndClub reads a value cell holding <span>name</span><span>club</span>.
// Cells without spans are read as a bare name.
func spanNameAndClub(cell dom.Node) (string, string) {
	spans := cell.Find("span")
	switch len(spans) {
	case 0:
		return cell.Text(), ""
	case 1:
		return spans[0].Text(), ""
	default:
		return spans[0].Text(), spans[1].Text()
	}
}

// clubAndNumber reads the club from the <i> element of a couple cell and the
// start number from its "(610)" token.
func clubAndNumber(cell dom.Node) (string, int) {
	club := ""
	if italics := cell.Find("i"); len(italics) > 0 {
		club = italics[0].Text()
	}
	number := 0
	if m := numberInParens.FindStringSubmatch(cell.Text()); m != nil {
		number, _ = strconv.Atoi(m[1])
	}
	return club, number
}

// splitNamesAndNumber reads "Maik Rau / Carina Rau (617)".
func splitNamesAndNumber(line string) (string, int, bool) {
	m := namesAndNumber.FindStringSubmatch(line)
	if m == nil {
		return "", 0, false
	}
	number, err := strconv.Atoi(m[2])
	if err != nil {
		return "", 0, false
	}
	return m[1], number, true
}

// parseDecimal reads places and totals printed with a decimal comma.
func parseDecimal(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
}

// parseMarks reads the run of single digit marks of a final round cell.
func parseMarks(s string) ([]int, bool) {
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return nil, false
	}
	marks := make([]int, 0, len(s))
	for _, r := range s {
		if r < '0' || r > '9' {
			return nil, false
		}
		marks = append(marks, int(r-'0'))
	}
	return marks, true
}

// parseCross reads one line of a preliminary round cell.
func parseCross(s string) (bool, bool) {
	switch strings.ToUpper(s) {
	case "X":
		return true, true
	case "-":
		return false, true
	}
	return false, false
}

func colspan(cell dom.Node) int {
	v, ok := cell.Attr("colspan")
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func newParticipant(names string, number int, club string, rank string) (models.Participant, error) {
	one, two := models.SplitNames(names)
	return models.NewParticipant(one, two, number, club, models.ParseRanks(rank))
}
