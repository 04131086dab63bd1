package generate

import (
	"strconv"

	"github.com/nilsimda/topturnier/models"
)

// finalPlacings returns the final round placings of round. A round built
// without NewResultRound may mix in other kinds; those rows are left out.
func finalPlacings(round models.ResultRound) []models.FinalRoundPlacing {
	placings := make([]models.FinalRoundPlacing, 0, len(round.Placings))
	for _, placing := range round.Placings {
		if final, ok := placing.(models.FinalRoundPlacing); ok {
			placings = append(placings, final)
		}
	}
	return placings
}

// danceScoreLines is the marks of every judge over the place: "121", "1,5".
func danceScoreLines(placing models.FinalRoundPlacing, dance models.Dance) []string {
	score, _ := placing.Score(dance)
	return []string{formatMarks(score.Marks), formatDecimal(score.Place)}
}

// coupleWithNumber prints "Maik Rau / Carina Rau (617)".
func coupleWithNumber(p models.Participant) string {
	return p.Names() + " (" + strconv.Itoa(p.Number) + ")"
}
