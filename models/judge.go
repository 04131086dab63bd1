package models

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nilsimda/topturnier/textnorm"
)

var (
	judgeCodePattern = regexp.MustCompile(`^[A-Z]{1,3}$`)
	lastFirstPattern = regexp.MustCompile(`^([^,]+),\s*(.+)$`)
)

type Judge struct {
	Code     string
	Name     string // "First Last"
	LastName string
	Club     string
}

type JudgeKey struct {
	Code string
	Name string
}

// NewJudge normalizes and validates a judge. The name may be given as
// "Last, First" or "First Last"; it is stored as "First Last".
func NewJudge(code, name, club string) (Judge, error) {
	code = strings.ToUpper(textnorm.Clean(code))
	if !judgeCodePattern.MatchString(code) {
		return Judge{}, fmt.Errorf("%w: code %q is not 1-3 letters", ErrInvalidJudge, code)
	}

	name = textnorm.Clean(name)
	var first, last string
	if m := lastFirstPattern.FindStringSubmatch(name); m != nil {
		last = strings.TrimSpace(m[1])
		first = strings.TrimSpace(m[2])
	} else if i := strings.LastIndex(name, " "); i > 0 {
		first, last = name[:i], name[i+1:]
	}
	fullName := textnorm.Clean(first + " " + last)
	if len(strings.Fields(fullName)) < 2 {
		return Judge{}, fmt.Errorf("%w: name %q needs first and last name", ErrInvalidJudge, name)
	}

	club = textnorm.Clean(club)
	if club != "" {
		lowerClub, lowerName := strings.ToLower(club), strings.ToLower(fullName)
		if strings.Contains(lowerClub, lowerName) || strings.Contains(lowerName, lowerClub) {
			return Judge{}, fmt.Errorf("%w: club %q collides with name %q", ErrInvalidJudge, club, fullName)
		}
	}

	return Judge{Code: code, Name: fullName, LastName: last, Club: club}, nil
}

func (j Judge) Key() JudgeKey {
	return JudgeKey{Code: j.Code, Name: j.Name}
}

// NameLastFirst renders the name the way the cover sheet prints it.
func (j Judge) NameLastFirst() string {
	first := strings.TrimSuffix(j.Name, " "+j.LastName)
	return j.LastName + ", " + first
}

// DeduplicateJudges keeps the first judge per (code, name). A later duplicate
// only replaces it when the kept entry has no club and the duplicate has one.
func DeduplicateJudges(judges []Judge) []Judge {
	index := make(map[JudgeKey]int, len(judges))
	var out []Judge
	for _, j := range judges {
		i, seen := index[j.Key()]
		if !seen {
			index[j.Key()] = len(out)
			out = append(out, j)
			continue
		}
		if out[i].Club == "" && j.Club != "" {
			out[i] = j
		}
	}
	return out
}
