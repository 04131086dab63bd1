package extract

import (
	"strconv"

	"github.com/nilsimda/topturnier/dom"
	"github.com/nilsimda/topturnier/models"
)

const (
	scoreRowClass = "td3cv"
	summaryLabel  = "Su"
	judgeTooltip  = "span"
	// placement, names, number and round ids precede the dance groups
	fixedColumns = 4
)

// scoreHeader is what the two header rows of the detailed score table say
// about its columns.
type scoreHeader struct {
	offset int
	stride int
	dances []models.Dance
	judges []models.Judge
}

func (h scoreHeader) totalColumn() int {
	return h.offset + len(h.dances)*h.stride
}

// ExtractDetailedScores reads an ergwert.htm page: every judge's crosses and
// marks for every couple and round, plus the summary columns.
func ExtractDetailedScores(root dom.Node, diags *Diagnostics) models.Page {
	page := models.Page{Title: pageTitle(root)}

	ti, table, ok := detailedScoreTable(root)
	if !ok {
		diags.at(DetailedScoreName, 0, 0).skip("", "no table with dance groups")
		return page
	}
	rs := rows(table)
	header, ok := readScoreHeader(cells(rs[0]), cells(rs[1]), diags.at(DetailedScoreName, ti, 1))
	if !ok {
		return page
	}
	page.Judges = header.judges

	var dataRows []dom.Node
	var rowIndex []int
	for ri, row := range rs[2:] {
		if cs := cells(row); len(cs) > 0 && cs[0].HasClass(scoreRowClass) {
			dataRows = append(dataRows, row)
			rowIndex = append(rowIndex, ri+2)
		}
	}

	// The final is numbered after the last preliminary round of the table
	finalRound := 1
	for _, row := range dataRows {
		cs := cells(row)
		if len(cs) <= fixedColumns {
			continue
		}
		for _, id := range cs[fixedColumns-1].Lines() {
			if n, err := strconv.Atoi(id); err == nil && n >= finalRound {
				finalRound = n + 1
			}
		}
	}

	var participants []models.Participant
	for ri, row := range dataRows {
		log := diags.at(DetailedScoreName, ti, rowIndex[ri])
		cs := cells(row)
		if len(cs) <= header.totalColumn() {
			log.skip(row.Text(), "expected %d cells, got %d", header.totalColumn()+1, len(cs))
			continue
		}

		placement := cs[0].Text()
		names := cs[1].Lines()[0]
		club, _ := clubAndNumber(cs[1])
		number, err := strconv.Atoi(cs[2].Text())
		if err != nil {
			log.skip(cs[2].Text(), "unreadable start number")
			continue
		}
		participant, err := newParticipant(names, number, club, placement)
		if err != nil {
			log.skip(row.Text(), "%v", err)
			continue
		}

		roundIDs := cs[fixedColumns-1].Lines()
		scoring := models.FinalScoring{
			Placement: placement,
			Names:     names,
			Number:    number,
			Club:      participant.Club,
			Total:     cs[header.totalColumn()].Text(),
		}
		var scores []models.Score
		var marks []models.FinalRoundScore
		valid := true
		for di, dance := range header.dances {
			base := header.offset + di*header.stride
			for ji, judge := range header.judges {
				lines := cs[base+ji].Lines()
				if len(lines) != len(roundIDs) {
					log.skip(cs[base+ji].Text(), "%s %s has %d lines for %d rounds", dance, judge.Code, len(lines), len(roundIDs))
					valid = false
					break
				}
				for li, id := range roundIDs {
					if id == models.FinalRoundID {
						mark, err := strconv.Atoi(lines[li])
						if err != nil {
							log.skip(lines[li], "unreadable final mark of %s", judge.Code)
							valid = false
							break
						}
						marks = append(marks, models.FinalRoundScore{
							Number:      number,
							JudgeCode:   judge.Code,
							Dance:       dance,
							RoundNumber: finalRound,
							RoundName:   models.RoundNameForID(id),
							Mark:        mark,
						})
						continue
					}
					roundNumber, err := strconv.Atoi(id)
					voted, ok := parseCross(lines[li])
					if err != nil || !ok {
						log.skip(lines[li], "unreadable cross of %s in round %q", judge.Code, id)
						valid = false
						break
					}
					scores = append(scores, models.Score{
						Number:      number,
						JudgeCode:   judge.Code,
						Dance:       dance,
						RoundNumber: roundNumber,
						RoundName:   models.RoundNameForID(id),
						Voted:       voted,
					})
				}
				if !valid {
					break
				}
			}
			if !valid {
				break
			}
			summary := cs[base+len(header.judges)].Lines()[0]
			scoring.DanceScores = append(scoring.DanceScores, models.DanceSummary{Dance: dance, Summary: summary})
		}
		if !valid {
			continue
		}

		participants = append(participants, participant)
		page.Scores = append(page.Scores, scores...)
		page.FinalScores = append(page.FinalScores, marks...)
		page.FinalScorings = append(page.FinalScorings, scoring)
	}
	page.Participants = models.DeduplicateParticipants(participants)

	return page
}

// detailedScoreTable finds the first table whose first row has a cell spanning
// several columns, the dance group header.
func detailedScoreTable(root dom.Node) (int, dom.Node, bool) {
	for ti, table := range root.Find("table") {
		rs := rows(table)
		if len(rs) < 2 {
			continue
		}
		for _, cell := range cells(rs[0]) {
			if colspan(cell) > 1 {
				return ti, table, true
			}
		}
	}
	return 0, nil, false
}

// readScoreHeader learns dance order from the group cells of the first row and
// the judge columns from the second row, where each dance group ends in "Su".
func readScoreHeader(top, judgeRow []dom.Node, log rowLogger) (scoreHeader, bool) {
	var header scoreHeader
	header.offset = -1
	for ci, cell := range top {
		if colspan(cell) <= 1 {
			continue
		}
		if header.offset < 0 {
			header.offset = ci
		}
		dance, err := models.ParseDance(cell.Text())
		if err != nil {
			log.skip(cell.Text(), "%v", err)
			return scoreHeader{}, false
		}
		header.dances = append(header.dances, dance)
	}
	if header.offset != fixedColumns {
		log.skip("", "dance groups start at column %d", header.offset)
		return scoreHeader{}, false
	}

	var groups [][]dom.Node
	var current []dom.Node
	for _, cell := range judgeRow {
		if cell.Text() == summaryLabel {
			groups = append(groups, current)
			current = nil
			continue
		}
		current = append(current, cell)
	}
	if len(groups) != len(header.dances) || len(groups[0]) == 0 {
		log.skip("", "%d judge groups for %d dances", len(groups), len(header.dances))
		return scoreHeader{}, false
	}
	for gi, group := range groups[1:] {
		if len(group) != len(groups[0]) {
			log.skip("", "judge group %d has %d judges, expected %d", gi+1, len(group), len(groups[0]))
			return scoreHeader{}, false
		}
	}
	header.stride = len(groups[0]) + 1

	for _, cell := range groups[0] {
		name := ""
		if tooltips := cell.Find(judgeTooltip); len(tooltips) > 0 {
			name = tooltips[0].Text()
		}
		judge, err := models.NewJudge(cell.OwnText(), name, "")
		if err != nil {
			log.skip(cell.Text(), "%v", err)
			return scoreHeader{}, false
		}
		header.judges = append(header.judges, judge)
	}
	return header, true
}
