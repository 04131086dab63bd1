package models

import (
	"fmt"
	"strings"

	"github.com/nilsimda/topturnier/textnorm"
)

type Role string

const (
	RoleOrganizer       Role = "organizer"
	RoleHost            Role = "host"
	RoleChairperson     Role = "chairperson"
	RoleCommitteeMember Role = "committee_member"
	RoleProtocol        Role = "protocol"
)

// Cover sheet labels, without the trailing colon.
var roleLabels = map[string]Role{
	"Veranstalter":  RoleOrganizer,
	"Ausrichter":    RoleHost,
	"Turnierleiter": RoleChairperson,
	"Beisitzer":     RoleCommitteeMember,
	"Protokoll":     RoleProtocol,
}

var roleGermanLabels = map[Role]string{
	RoleOrganizer:       "Veranstalter",
	RoleHost:            "Ausrichter",
	RoleChairperson:     "Turnierleiter",
	RoleCommitteeMember: "Beisitzer",
	RoleProtocol:        "Protokoll",
}

// RoleForLabel matches a label cell like "Turnierleiter:" exactly against the
// label dictionary.
func RoleForLabel(label string) (Role, bool) {
	label = strings.TrimSuffix(textnorm.Clean(label), ":")
	role, ok := roleLabels[label]
	return role, ok
}

// Label is the German cover sheet label, without the colon.
func (r Role) Label() string {
	return roleGermanLabels[r]
}

func (r Role) Valid() bool {
	_, ok := roleGermanLabels[r]
	return ok
}

type CommitteeMember struct {
	Role Role
	Name string
	Club string
}

func NewCommitteeMember(role Role, name, club string) (CommitteeMember, error) {
	if !role.Valid() {
		return CommitteeMember{}, fmt.Errorf("%w: role %q", ErrInvalidCommitteeMember, role)
	}
	m := CommitteeMember{Role: role, Name: textnorm.Clean(name), Club: textnorm.Clean(club)}
	if m.Name == "" {
		return CommitteeMember{}, fmt.Errorf("%w: %s without name", ErrInvalidCommitteeMember, role)
	}
	return m, nil
}
