package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJudge(t *testing.T) {
	t.Run("rejects lower case short code with one word name", func(t *testing.T) {
		_, err := NewJudge("ab", "OnlyOneWord", "")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidJudge)
	})

	t.Run("rejects club that is part of the name", func(t *testing.T) {
		_, err := NewJudge("AT", "Marcus Bärschneider", "Bärschneider")
		assert.ErrorIs(t, err, ErrInvalidJudge)
	})

	t.Run("upper cases the code", func(t *testing.T) {
		j, err := NewJudge("at", "susanne kirchwehm", "")
		require.NoError(t, err)
		assert.Equal(t, "AT", j.Code)
		assert.Equal(t, "susanne kirchwehm", j.Name)
		assert.Empty(t, j.Club)
	})

	t.Run("flips last first", func(t *testing.T) {
		j, err := NewJudge(" BW ", "van  der Berg,Jan Peter", " TSC  Blau-Gelb Hagen ")
		require.NoError(t, err)
		assert.Equal(t, "Jan Peter van der Berg", j.Name)
		assert.Equal(t, "van der Berg", j.LastName)
		assert.Equal(t, "TSC Blau-Gelb Hagen", j.Club)
		assert.Equal(t, "van der Berg, Jan Peter", j.NameLastFirst())
	})

	t.Run("rejects long codes", func(t *testing.T) {
		_, err := NewJudge("ABCD", "Robert Block", "")
		assert.ErrorIs(t, err, ErrInvalidJudge)
	})
}

func TestDeduplicateJudges(t *testing.T) {
	bare, err := NewJudge("AT", "Marcus Bärschneider", "")
	require.NoError(t, err)
	withClub, err := NewJudge("AT", "Bärschneider, Marcus", "TSC Blau-Gelb Hagen")
	require.NoError(t, err)
	other, err := NewJudge("AX", "Robert Block", "")
	require.NoError(t, err)

	got := DeduplicateJudges([]Judge{bare, other, withClub, bare})

	require.Len(t, got, 2)
	assert.Equal(t, withClub, got[0])
	assert.Equal(t, other, got[1])
}

func TestParseRanks(t *testing.T) {
	tests := []struct {
		in   string
		want []int
	}{
		{in: "8.- 9.", want: []int{8, 9}},
		{in: "1.", want: []int{1}},
		{in: "", want: nil},
		{in: "12.-13.", want: []int{12, 13}},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseRanks(tc.in))
		})
	}
}

func TestNewParticipant(t *testing.T) {
	p, err := NewParticipant("  Jonathan   Kummetz", "Elisabeth Findeiß ", 610, "1. TC Rot-Gold Bayreuth", []int{1})
	require.NoError(t, err)
	assert.Equal(t, "Jonathan Kummetz / Elisabeth Findeiß", p.Names())

	_, err = NewParticipant("", "Elisabeth Findeiß", 610, "", nil)
	assert.ErrorIs(t, err, ErrInvalidParticipant)

	_, err = NewParticipant("Jonathan Kummetz", "", 0, "", nil)
	assert.ErrorIs(t, err, ErrInvalidParticipant)
}

func TestSplitNames(t *testing.T) {
	one, two := SplitNames("Maik Rau / Carina Rau")
	assert.Equal(t, "Maik Rau", one)
	assert.Equal(t, "Carina Rau", two)

	one, two = SplitNames("Kai Jungbluth und Eva Jungbluth")
	assert.Equal(t, "Kai Jungbluth", one)
	assert.Equal(t, "Eva Jungbluth", two)

	one, two = SplitNames("Jonathan Kummetz")
	assert.Equal(t, "Jonathan Kummetz", one)
	assert.Empty(t, two)
}

func TestDeduplicateParticipants(t *testing.T) {
	a, _ := NewParticipant("Maik Rau", "Carina Rau", 617, "Flensburger TC", nil)
	b, _ := NewParticipant("Maik Rau", "Carina Rau", 617, "", nil)

	got := DeduplicateParticipants([]Participant{a, b, a})
	assert.Equal(t, []Participant{a, b}, got)
}

func TestDanceMapping(t *testing.T) {
	for _, d := range AllDances {
		t.Run(d.String(), func(t *testing.T) {
			back, err := ParseDance(d.Abbreviation())
			require.NoError(t, err)
			assert.Equal(t, d, back)

			back, err = ParseDance(d.GermanName())
			require.NoError(t, err)
			assert.Equal(t, d, back)
		})
	}

	for german, d := range germanDances {
		got, err := ParseDance(german)
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}

	_, err := ParseDance("Discofox")
	assert.ErrorIs(t, err, ErrUnknownDance)
}

func TestDanceSynonyms(t *testing.T) {
	for _, label := range []string{"LW", "Langsamer Walzer", "langsamer  walzer"} {
		d, err := ParseDance(label)
		require.NoError(t, err)
		assert.Equal(t, SlowWaltz, d)
	}
	d, err := ParseDance("QU")
	require.NoError(t, err)
	assert.Equal(t, "QS", d.Abbreviation())
}

func TestRoleForLabel(t *testing.T) {
	role, ok := RoleForLabel("Turnierleiter:")
	require.True(t, ok)
	assert.Equal(t, RoleChairperson, role)
	assert.Equal(t, "Turnierleiter", role.Label())

	_, ok = RoleForLabel("Wertungsrichter:")
	assert.False(t, ok)

	_, err := NewCommitteeMember(Role("referee"), "Kai Jungbluth", "")
	assert.ErrorIs(t, err, ErrInvalidCommitteeMember)
}

func TestNewResultRound(t *testing.T) {
	p, _ := NewParticipant("Maik Rau", "Carina Rau", 617, "", []int{3})
	final := FinalRoundPlacing{Rank: "3.", Participant: p}
	prelim := PreliminaryRoundPlacing{Rank: "3.", Participant: p}

	_, err := NewResultRound("Endrunde", []Placing{final, prelim})
	assert.ErrorIs(t, err, ErrMixedRound)

	round, err := NewResultRound("Endrunde", []Placing{final})
	require.NoError(t, err)
	assert.True(t, round.IsFinal())
}

func TestRoundNameForID(t *testing.T) {
	assert.Equal(t, "Endrunde", RoundNameForID("F"))
	assert.Equal(t, "Vorrunde", RoundNameForID("1"))
	assert.Equal(t, "2. Zwischenrunde", RoundNameForID("3"))
}
