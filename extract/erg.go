package extract

import (
	"github.com/nilsimda/topturnier/dom"
	"github.com/nilsimda/topturnier/models"
)

// ExtractResults reads an erg.htm page. The table after the title table is the
// final; every later table is a preliminary round introduced by a row holding
// only the round name.
func ExtractResults(root dom.Node, diags *Diagnostics) models.Page {
	page := models.Page{Title: pageTitle(root)}

	tables := root.Find("table")
	if len(tables) < 2 {
		diags.at(ResultsName, len(tables), 0).skip("", "no final round table")
		return page
	}

	var participants []models.Participant
	for ti, table := range tables[1:] {
		var round models.ResultRound
		var ok bool
		if ti == 0 {
			round, ok = finalRound(table, ti+1, diags)
		} else {
			round, ok = preliminaryRound(table, ti+1, diags)
		}
		if !ok {
			continue
		}
		page.Rounds = append(page.Rounds, round)
		for _, placing := range round.Placings {
			participants = append(participants, placing.PlacingParticipant())
		}
	}
	page.Participants = models.DeduplicateParticipants(participants)

	return page
}

func finalRound(table dom.Node, ti int, diags *Diagnostics) (models.ResultRound, bool) {
	rs := rows(table)
	if len(rs) < 2 {
		diags.at(ResultsName, ti, 0).skip(table.Text(), "final round table without header")
		return models.ResultRound{}, false
	}
	name := rs[0].Text()

	// Platz | Paar/Club | dances... | PZ
	header := cells(rs[1])
	if len(header) < 4 {
		diags.at(ResultsName, ti, 1).skip(rs[1].Text(), "final round header has no dances")
		return models.ResultRound{}, false
	}
	var dances []models.Dance
	for _, cell := range header[2 : len(header)-1] {
		dance, err := models.ParseDance(cell.Text())
		if err != nil {
			diags.at(ResultsName, ti, 1).skip(cell.Text(), "%v", err)
			return models.ResultRound{}, false
		}
		dances = append(dances, dance)
	}

	var placings []models.Placing
	for ri, row := range rs[2:] {
		log := diags.at(ResultsName, ti, ri+2)
		cs := cells(row)
		if len(cs) != len(dances)+3 {
			log.skip(row.Text(), "expected %d cells, got %d", len(dances)+3, len(cs))
			continue
		}

		rank := cs[0].Text()
		names, number, ok := splitNamesAndNumber(cs[1].Lines()[0])
		if !ok {
			log.skip(cs[1].Text(), "no start number")
			continue
		}
		club, _ := clubAndNumber(cs[1])
		participant, err := newParticipant(names, number, club, rank)
		if err != nil {
			log.skip(cs[1].Text(), "%v", err)
			continue
		}

		placing := models.FinalRoundPlacing{Rank: rank, Participant: participant}
		valid := true
		for di, dance := range dances {
			lines := cs[di+2].Lines()
			if len(lines) != 2 {
				log.skip(cs[di+2].Text(), "%s cell needs marks and place", dance)
				valid = false
				break
			}
			marks, ok := parseMarks(lines[0])
			place, err := parseDecimal(lines[1])
			if !ok || err != nil {
				log.skip(cs[di+2].Text(), "unreadable %s marks or place", dance)
				valid = false
				break
			}
			placing.DanceScores = append(placing.DanceScores, models.DanceScore{Dance: dance, Marks: marks, Place: place})
		}
		if !valid {
			continue
		}
		total, err := parseDecimal(cs[len(cs)-1].Text())
		if err != nil {
			log.skip(cs[len(cs)-1].Text(), "unreadable total")
			continue
		}
		placing.TotalScore = total
		placings = append(placings, placing)
	}

	round, err := models.NewResultRound(name, placings)
	if err != nil {
		diags.at(ResultsName, ti, 0).skip(name, "%v", err)
		return models.ResultRound{}, false
	}
	return round, true
}

func preliminaryRound(table dom.Node, ti int, diags *Diagnostics) (models.ResultRound, bool) {
	rs := rows(table)
	if len(rs) == 0 || len(cells(rs[0])) != 1 {
		diags.at(ResultsName, ti, 0).skip(table.Text(), "round table without round name")
		return models.ResultRound{}, false
	}
	name := rs[0].Text()

	var placings []models.Placing
	for ri, row := range rs[1:] {
		log := diags.at(ResultsName, ti, ri+1)
		cs := cells(row)
		if len(cs) < 3 {
			log.skip(row.Text(), "expected rank, couple and club")
			continue
		}
		rank := cs[0].Text()
		names, number, ok := splitNamesAndNumber(cs[1].Text())
		if !ok {
			log.skip(cs[1].Text(), "no start number")
			continue
		}
		participant, err := newParticipant(names, number, cs[2].Text(), rank)
		if err != nil {
			log.skip(row.Text(), "%v", err)
			continue
		}
		placings = append(placings, models.PreliminaryRoundPlacing{Rank: rank, Participant: participant})
	}

	round, err := models.NewResultRound(name, placings)
	if err != nil {
		diags.at(ResultsName, ti, 0).skip(name, "%v", err)
		return models.ResultRound{}, false
	}
	return round, true
}
