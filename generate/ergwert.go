package generate

import (
	"slices"
	"strconv"

	"github.com/nilsimda/topturnier/models"
)

type judgeKey struct {
	number int
	dance  models.Dance
	judge  string
	round  int
}

// detailedIndex looks up every judge's value for a couple, dance and round.
type detailedIndex struct {
	crosses map[judgeKey]bool
	marks   map[judgeKey]int
	// start number -> round number -> final
	rounds map[int]map[int]bool
}

func newDetailedIndex(page models.Page) detailedIndex {
	idx := detailedIndex{
		crosses: make(map[judgeKey]bool),
		marks:   make(map[judgeKey]int),
		rounds:  make(map[int]map[int]bool),
	}
	addRound := func(number, round int, final bool) {
		if idx.rounds[number] == nil {
			idx.rounds[number] = make(map[int]bool)
		}
		idx.rounds[number][round] = final
	}
	for _, s := range page.Scores {
		idx.crosses[judgeKey{number: s.Number, dance: s.Dance, judge: s.JudgeCode, round: s.RoundNumber}] = s.Voted
		addRound(s.Number, s.RoundNumber, false)
	}
	for _, s := range page.FinalScores {
		idx.marks[judgeKey{number: s.Number, dance: s.Dance, judge: s.JudgeCode, round: s.RoundNumber}] = s.Mark
		addRound(s.Number, s.RoundNumber, true)
	}
	return idx
}

// roundsOf returns the rounds a couple danced, latest first.
func (idx detailedIndex) roundsOf(number int) []int {
	var rounds []int
	for round := range idx.rounds[number] {
		rounds = append(rounds, round)
	}
	slices.Sort(rounds)
	slices.Reverse(rounds)
	return rounds
}

func (idx detailedIndex) roundID(number, round int) string {
	if idx.rounds[number][round] {
		return models.FinalRoundID
	}
	return strconv.Itoa(round)
}

func (idx detailedIndex) value(number int, dance models.Dance, judge string, round int) string {
	key := judgeKey{number: number, dance: dance, judge: judge, round: round}
	if idx.rounds[number][round] {
		if mark, ok := idx.marks[key]; ok {
			return strconv.Itoa(mark)
		}
		return ""
	}
	voted, ok := idx.crosses[key]
	switch {
	case !ok:
		return ""
	case voted:
		return "X"
	}
	return "-"
}

func (idx detailedIndex) crossCount(number int, dance models.Dance, judges []models.Judge, round int) int {
	count := 0
	for _, judge := range judges {
		if idx.crosses[judgeKey{number: number, dance: dance, judge: judge.Code, round: round}] {
			count++
		}
	}
	return count
}

// detailedTable is the ergwert table ready to print.
type detailedTable struct {
	dances     []models.Dance
	groupWidth string
	judges     []models.Judge
	rows       []detailedRow
}

type detailedRow struct {
	placement string
	names     string
	club      string
	number    int
	// latest round first
	roundIDs []string
	// per dance the judge cells, then the Su cell
	cells [][]string
	total string
}

func newDetailedTable(page models.Page) detailedTable {
	table := detailedTable{
		groupWidth: strconv.Itoa(len(page.Judges) + 1),
		judges:     page.Judges,
	}
	if len(page.FinalScorings) > 0 {
		for _, s := range page.FinalScorings[0].DanceScores {
			table.dances = append(table.dances, s.Dance)
		}
	}

	idx := newDetailedIndex(page)
	for _, scoring := range page.FinalScorings {
		rounds := idx.roundsOf(scoring.Number)
		row := detailedRow{
			placement: scoring.Placement,
			names:     scoring.Names,
			club:      scoring.Club,
			number:    scoring.Number,
			roundIDs:  make([]string, len(rounds)),
			total:     scoring.Total,
		}
		for i, round := range rounds {
			row.roundIDs[i] = idx.roundID(scoring.Number, round)
		}

		for _, dance := range table.dances {
			for _, judge := range page.Judges {
				lines := make([]string, len(rounds))
				for i, round := range rounds {
					lines[i] = idx.value(scoring.Number, dance, judge.Code, round)
				}
				row.cells = append(row.cells, lines)
			}

			// The latest round shows the summary, earlier rounds the cross count
			summary, _ := scoring.Summary(dance)
			su := []string{summary}
			for _, round := range rounds[min(1, len(rounds)):] {
				su = append(su, strconv.Itoa(idx.crossCount(scoring.Number, dance, page.Judges, round)))
			}
			row.cells = append(row.cells, su)
		}
		table.rows = append(table.rows, row)
	}
	return table
}
