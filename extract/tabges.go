package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/nilsimda/topturnier/dom"
	"github.com/nilsimda/topturnier/models"
)

const (
	judgesLabel      = "Wertungsrichter"
	startNumberLabel = "Startnummer"
	sumLabel         = "Summe"
	coupleClass      = "td2gc"
	coupleTooltip    = "span.tooltip2gc"
	judgeListClass   = "td3"
)

var judgeLine = regexp.MustCompile(`^([A-Z]{1,3})\)\s*(.+)$`)

// ExtractScoreTable reads a tabges.htm page: one table of crosses per
// preliminary round and a judge list whose order is the line order of every
// cross cell.
func ExtractScoreTable(root dom.Node, diags *Diagnostics) models.Page {
	page := models.Page{Title: pageTitle(root)}
	tables := root.Find("table")

	var columns []string
	page.Judges, columns = scoreTableJudges(tables, diags)

	round := 0
	var participants []models.Participant
	for ti, table := range tables {
		rs := rows(table)
		if len(rs) < 2 {
			continue
		}
		head, numberRow := cells(rs[0]), cells(rs[1])
		if len(head) != 1 || len(numberRow) == 0 || numberRow[0].Text() != startNumberLabel {
			continue
		}
		round++
		roundName := head[0].Text()

		// Column -> start number, 0 for columns that could not be read
		numbers := make([]int, len(numberRow)-1)
		for ci, cell := range numberRow[1:] {
			log := diags.at(ScoreTableName, ti, 1)
			if !cell.HasClass(coupleClass) {
				log.skip(cell.Text(), "column %d is not a couple cell", ci+1)
				continue
			}
			number, _ := strconv.Atoi(leadingNumber.FindString(cell.OwnText()))
			names := ""
			if tooltips := cell.Find(coupleTooltip); len(tooltips) > 0 {
				names = tooltips[0].Text()
			}
			participant, err := newParticipant(names, number, "", "")
			if err != nil {
				log.skip(cell.Text(), "%v", err)
				continue
			}
			participants = append(participants, participant)
			numbers[ci] = number
		}

		crosses := make(map[int]int)
		for ri, row := range rs[2:] {
			log := diags.at(ScoreTableName, ti, ri+2)
			cs := cells(row)
			if len(cs) < 2 {
				log.skip(row.Text(), "row has no couple columns")
				continue
			}
			label := cs[0].Text()
			if label == sumLabel {
				checkSums(log, cs[1:], numbers, crosses)
				continue
			}
			dance, err := models.ParseDance(label)
			if err != nil {
				log.skip(label, "%v", err)
				continue
			}

			for ci, cell := range cs[1:] {
				if ci >= len(numbers) || numbers[ci] == 0 {
					continue
				}
				for li, line := range cell.Lines() {
					if li >= len(columns) {
						log.skip(cell.Text(), "more crosses than judges for %d", numbers[ci])
						break
					}
					voted, ok := parseCross(line)
					if !ok {
						log.skip(line, "unreadable cross for %d", numbers[ci])
						continue
					}
					if voted {
						crosses[numbers[ci]]++
					}
					if columns[li] == "" {
						log.skip(line, "cross %d of %d belongs to an invalid judge", li+1, numbers[ci])
						continue
					}
					page.Scores = append(page.Scores, models.Score{
						Number:      numbers[ci],
						JudgeCode:   columns[li],
						Dance:       dance,
						RoundNumber: round,
						RoundName:   roundName,
						Voted:       voted,
					})
				}
			}
		}
	}
	page.Participants = models.DeduplicateParticipants(participants)

	return page
}

// scoreTableJudges reads "AT) Marcus Bärschneider" lines from the cells that
// follow the judges label row. columns holds one code per printed judge line,
// in cross line order, and is empty where the judge did not validate.
func scoreTableJudges(tables []dom.Node, diags *Diagnostics) (judges []models.Judge, columns []string) {
	for ti, table := range tables {
		inJudges := false
		for ri, row := range rows(table) {
			cs := cells(row)
			if len(cs) == 0 {
				continue
			}
			if strings.TrimSuffix(cs[0].Text(), ":") == judgesLabel {
				inJudges = true
				continue
			}
			if !inJudges {
				continue
			}
			log := diags.at(ScoreTableName, ti, ri)
			for _, cell := range cs {
				if !cell.HasClass(judgeListClass) {
					continue
				}
				for _, line := range cell.Lines() {
					if line == "" {
						continue
					}
					m := judgeLine.FindStringSubmatch(line)
					if m == nil {
						log.skip(line, "no judge code")
						continue
					}
					judge, err := models.NewJudge(m[1], m[2], "")
					if err != nil {
						log.skip(line, "%v", err)
						columns = append(columns, "")
						continue
					}
					judges = append(judges, judge)
					columns = append(columns, judge.Code)
				}
			}
		}
	}
	return models.DeduplicateJudges(judges), columns
}

func checkSums(log rowLogger, sumCells []dom.Node, numbers []int, crosses map[int]int) {
	for ci, cell := range sumCells {
		if ci >= len(numbers) || numbers[ci] == 0 {
			continue
		}
		sum, err := strconv.Atoi(cell.Text())
		if err != nil || sum != crosses[numbers[ci]] {
			log.skip(cell.Text(), "sum of %d does not match %d crosses", numbers[ci], crosses[numbers[ci]])
		}
	}
}
