package models

import (
	"fmt"
	"strconv"
)

// FinalRoundID is the round id TopTurnier prints for the final.
const FinalRoundID = "F"

// Score is one judge's cross (or missing cross) for one couple in one dance of
// a preliminary round.
type Score struct {
	Number      int
	JudgeCode   string
	Dance       Dance
	RoundNumber int
	RoundName   string
	Voted       bool
}

// FinalRoundScore is one judge's placement mark for one couple in one dance
// of the final.
type FinalRoundScore struct {
	Number      int
	JudgeCode   string
	Dance       Dance
	RoundNumber int
	RoundName   string
	Mark        int
}

type DanceSummary struct {
	Dance   Dance
	Summary string
}

// FinalScoring is one row of the detailed score table.
type FinalScoring struct {
	Placement   string
	Names       string
	Number      int
	Club        string
	DanceScores []DanceSummary
	Total       string
}

// Summary looks up the summary column of one dance.
func (f FinalScoring) Summary(d Dance) (string, bool) {
	for _, s := range f.DanceScores {
		if s.Dance == d {
			return s.Summary, true
		}
	}
	return "", false
}

// RoundNameForID turns a round id of the detailed score table into the round
// label used on the results page: "1" is the Vorrunde, "3" the 2. Zwischenrunde.
func RoundNameForID(id string) string {
	if id == FinalRoundID {
		return "Endrunde"
	}
	n, err := strconv.Atoi(id)
	if err != nil || n < 1 {
		return id
	}
	if n == 1 {
		return "Vorrunde"
	}
	return fmt.Sprintf("%d. Zwischenrunde", n-1)
}
