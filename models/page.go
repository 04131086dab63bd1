package models

// Page bundles everything read from one result page. Each page type fills
// only the fields it prints.
type Page struct {
	Title         string
	Judges        []Judge
	Committee     []CommitteeMember
	Participants  []Participant
	Rounds        []ResultRound
	Scores        []Score
	FinalScores   []FinalRoundScore
	FinalScorings []FinalScoring
}

// Participant returns the first participant with the given start number.
func (p Page) Participant(number int) (Participant, bool) {
	for _, participant := range p.Participants {
		if participant.Number == number {
			return participant, true
		}
	}
	return Participant{}, false
}
