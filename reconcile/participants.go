package reconcile

import (
	"fmt"

	"github.com/nilsimda/topturnier/models"
)

// ParticipantSource is the participant list one page contributed.
type ParticipantSource struct {
	Dialect      string
	Participants []models.Participant
}

// NameMismatch is a start number printed with different names.
type NameMismatch struct {
	Number  int
	Dialect string
	Want    string
	Got     string
}

func (m NameMismatch) String() string {
	return fmt.Sprintf("%d in %s: %q, elsewhere %q", m.Number, m.Dialect, m.Got, m.Want)
}

type ParticipantReport struct {
	Participants []models.Participant
	Mismatches   []NameMismatch
}

// Participants merges couples by start number. The first source to name a
// number fixes the names; clubs and ranks are filled in from later sources
// when still empty.
func Participants(sources []ParticipantSource) ParticipantReport {
	var report ParticipantReport
	index := make(map[int]int)
	for _, source := range sources {
		for _, p := range source.Participants {
			i, ok := index[p.Number]
			if !ok {
				index[p.Number] = len(report.Participants)
				report.Participants = append(report.Participants, p)
				continue
			}
			current := &report.Participants[i]
			if current.Names() != p.Names() {
				report.Mismatches = append(report.Mismatches, NameMismatch{
					Number:  p.Number,
					Dialect: source.Dialect,
					Want:    current.Names(),
					Got:     p.Names(),
				})
				continue
			}
			if current.Club == "" {
				current.Club = p.Club
			}
			if len(current.Ranks) == 0 {
				current.Ranks = p.Ranks
			}
		}
	}
	return report
}
