package generate

import (
	"slices"

	"github.com/nilsimda/topturnier/models"
)

type crossKey struct {
	number int
	dance  models.Dance
	judge  string
}

type crossCouple struct {
	number int
	names  string
}

// crossRow is one dance of a round: a cell per couple holding one line per
// judge.
type crossRow struct {
	dance models.Dance
	cells [][]string
}

// crossRound is one preliminary round of the score table, with couples and
// dances in the order they first appear.
type crossRound struct {
	number  int
	name    string
	couples []crossCouple
	rows    []crossRow
	// crosses per couple, in couple order
	sums []int
}

func crossRounds(page models.Page) []crossRound {
	type collected struct {
		number  int
		name    string
		numbers []int
		dances  []models.Dance
		crosses map[crossKey]bool
	}
	byNumber := make(map[int]*collected)
	var order []*collected
	for _, s := range page.Scores {
		r, ok := byNumber[s.RoundNumber]
		if !ok {
			r = &collected{number: s.RoundNumber, name: s.RoundName, crosses: make(map[crossKey]bool)}
			byNumber[s.RoundNumber] = r
			order = append(order, r)
		}
		if !slices.Contains(r.numbers, s.Number) {
			r.numbers = append(r.numbers, s.Number)
		}
		if !slices.Contains(r.dances, s.Dance) {
			r.dances = append(r.dances, s.Dance)
		}
		r.crosses[crossKey{number: s.Number, dance: s.Dance, judge: s.JudgeCode}] = s.Voted
	}
	slices.SortStableFunc(order, func(a, b *collected) int { return a.number - b.number })

	rounds := make([]crossRound, 0, len(order))
	for _, r := range order {
		round := crossRound{number: r.number, name: r.name, sums: make([]int, len(r.numbers))}
		for _, number := range r.numbers {
			names := ""
			if p, ok := page.Participant(number); ok {
				names = p.Names()
			}
			round.couples = append(round.couples, crossCouple{number: number, names: names})
		}
		for _, dance := range r.dances {
			row := crossRow{dance: dance}
			for ci, number := range r.numbers {
				lines := make([]string, len(page.Judges))
				for i, judge := range page.Judges {
					voted, ok := r.crosses[crossKey{number: number, dance: dance, judge: judge.Code}]
					switch {
					case !ok:
					case voted:
						lines[i] = "X"
						round.sums[ci]++
					default:
						lines[i] = "-"
					}
				}
				row.cells = append(row.cells, lines)
			}
			round.rows = append(round.rows, row)
		}
		rounds = append(rounds, round)
	}
	return rounds
}

// judgeLines is the judge list in cross line order: "AT) Marcus Bärschneider".
func judgeLines(judges []models.Judge) []string {
	lines := make([]string, len(judges))
	for i, judge := range judges {
		lines[i] = judge.Code + ") " + judge.Name
	}
	return lines
}
