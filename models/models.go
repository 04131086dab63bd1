// Package models holds the value types extracted from TopTurnier result pages.
// Constructors validate and normalize; everything else is plain data.
package models

import "errors"

var (
	// ErrInvalidJudge indicates a judge code, name or club violates the judge rules.
	ErrInvalidJudge = errors.New("invalid judge")

	// ErrInvalidParticipant indicates a participant without name or start number.
	ErrInvalidParticipant = errors.New("invalid participant")

	// ErrInvalidCommitteeMember indicates an unknown role or a missing name.
	ErrInvalidCommitteeMember = errors.New("invalid committee member")

	// ErrUnknownDance indicates a dance label outside the German dance vocabulary.
	ErrUnknownDance = errors.New("unknown dance")

	// ErrMixedRound indicates final and preliminary placings in the same round.
	ErrMixedRound = errors.New("mixed placing kinds in round")
)
