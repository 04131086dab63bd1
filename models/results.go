package models

import "fmt"

// DanceScore is one dance column of a final round row: the marks of each
// judge in column order and the resulting place, which may be a tie like 1.5.
type DanceScore struct {
	Dance Dance
	Marks []int
	Place float64
}

// Placing is either a FinalRoundPlacing or a PreliminaryRoundPlacing.
type Placing interface {
	PlacingRank() string
	PlacingParticipant() Participant
	isPlacing()
}

type FinalRoundPlacing struct {
	Rank        string
	Participant Participant
	DanceScores []DanceScore
	TotalScore  float64
}

func (p FinalRoundPlacing) PlacingRank() string             { return p.Rank }
func (p FinalRoundPlacing) PlacingParticipant() Participant { return p.Participant }
func (FinalRoundPlacing) isPlacing()                        {}

// Score looks up the column of one dance.
func (p FinalRoundPlacing) Score(d Dance) (DanceScore, bool) {
	for _, s := range p.DanceScores {
		if s.Dance == d {
			return s, true
		}
	}
	return DanceScore{}, false
}

type PreliminaryRoundPlacing struct {
	Rank        string
	Participant Participant
}

func (p PreliminaryRoundPlacing) PlacingRank() string             { return p.Rank }
func (p PreliminaryRoundPlacing) PlacingParticipant() Participant { return p.Participant }
func (PreliminaryRoundPlacing) isPlacing()                        {}

type ResultRound struct {
	Name     string
	Placings []Placing
}

// NewResultRound rejects rounds that mix final and preliminary placings.
func NewResultRound(name string, placings []Placing) (ResultRound, error) {
	for i := 1; i < len(placings); i++ {
		if isFinal(placings[i]) != isFinal(placings[0]) {
			return ResultRound{}, fmt.Errorf("%w: %q row %d", ErrMixedRound, name, i)
		}
	}
	return ResultRound{Name: name, Placings: placings}, nil
}

func (r ResultRound) IsFinal() bool {
	return len(r.Placings) > 0 && isFinal(r.Placings[0])
}

// Dances returns the dance columns of a final round in column order.
func (r ResultRound) Dances() []Dance {
	if !r.IsFinal() {
		return nil
	}
	var dances []Dance
	for _, s := range r.Placings[0].(FinalRoundPlacing).DanceScores {
		dances = append(dances, s.Dance)
	}
	return dances
}

func isFinal(p Placing) bool {
	_, ok := p.(FinalRoundPlacing)
	return ok
}
