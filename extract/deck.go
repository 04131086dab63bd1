package extract

import (
	"strings"

	"github.com/nilsimda/topturnier/dom"
	"github.com/nilsimda/topturnier/models"
)

// Class of the "AT:" cells in front of each judge on the cover sheet.
const judgeCodeClass = "td2r"

// ExtractCoverSheet reads committee members and judges from a deck.htm page.
func ExtractCoverSheet(root dom.Node, diags *Diagnostics) models.Page {
	page := models.Page{Title: pageTitle(root)}

	var judges []models.Judge
	for ti, table := range root.Find("table") {
		for ri, row := range rows(table) {
			cs := cells(row)
			if len(cs) < 2 {
				continue
			}
			log := diags.at(CoverSheetName, ti, ri)

			// Committee rows carry one of the fixed labels
			if role, ok := models.RoleForLabel(cs[0].Text()); ok {
				name, club := spanNameAndClub(cs[1])
				member, err := models.NewCommitteeMember(role, name, club)
				if err != nil {
					log.skip(cs[1].Text(), "%v", err)
					continue
				}
				page.Committee = append(page.Committee, member)
				continue
			}

			if !cs[0].HasClass(judgeCodeClass) {
				continue
			}
			code := strings.ReplaceAll(cs[0].Text(), ":", "")
			name, club := spanNameAndClub(cs[1])
			judge, err := models.NewJudge(code, name, club)
			if err != nil {
				log.skip(row.Text(), "%v", err)
				continue
			}
			judges = append(judges, judge)
		}
	}
	page.Judges = models.DeduplicateJudges(judges)

	return page
}
