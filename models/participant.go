package models

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/nilsimda/topturnier/textnorm"
)

var (
	rankNumberPattern = regexp.MustCompile(`\d+`)
	nameSeparators    = []string{" / ", " & ", " und ", " and "}
)

type Participant struct {
	NameOne string
	NameTwo string
	Number  int
	Club    string
	Ranks   []int
}

type ParticipantKey struct {
	Number  int
	NameOne string
	NameTwo string
	Club    string
}

func NewParticipant(nameOne, nameTwo string, number int, club string, ranks []int) (Participant, error) {
	p := Participant{
		NameOne: textnorm.Clean(nameOne),
		NameTwo: textnorm.Clean(nameTwo),
		Number:  number,
		Club:    textnorm.Clean(club),
		Ranks:   ranks,
	}
	if p.NameOne == "" {
		return Participant{}, fmt.Errorf("%w: missing name for number %d", ErrInvalidParticipant, number)
	}
	if p.Number <= 0 {
		return Participant{}, fmt.Errorf("%w: missing start number for %q", ErrInvalidParticipant, p.NameOne)
	}
	return p, nil
}

func (p Participant) Key() ParticipantKey {
	return ParticipantKey{Number: p.Number, NameOne: p.NameOne, NameTwo: p.NameTwo, Club: p.Club}
}

// Names joins both partners with " / ", the way every page prints couples.
func (p Participant) Names() string {
	if p.NameTwo == "" {
		return p.NameOne
	}
	return p.NameOne + " / " + p.NameTwo
}

// ParseRanks reads every number of a rank cell: "8.- 9." is [8 9], "" is nil.
func ParseRanks(s string) []int {
	var ranks []int
	for _, m := range rankNumberPattern.FindAllString(s, -1) {
		n, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		ranks = append(ranks, n)
	}
	return ranks
}

// SplitNames splits a couple into its two partners. Singles come back with an
// empty second name.
func SplitNames(s string) (string, string) {
	s = textnorm.Clean(s)
	for _, sep := range nameSeparators {
		if one, two, ok := strings.Cut(s, sep); ok {
			return strings.TrimSpace(one), strings.TrimSpace(two)
		}
	}
	return s, ""
}

func DeduplicateParticipants(participants []Participant) []Participant {
	seen := make(map[ParticipantKey]bool, len(participants))
	var out []Participant
	for _, p := range participants {
		if seen[p.Key()] {
			continue
		}
		seen[p.Key()] = true
		out = append(out, p)
	}
	return out
}
