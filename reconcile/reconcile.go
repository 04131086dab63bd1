// Package reconcile merges what several pages of one competition say about the
// same judges and couples.
package reconcile

import (
	"fmt"
	"slices"

	"github.com/nilsimda/topturnier/models"
)

// JudgeSource is the judge list one page contributed.
type JudgeSource struct {
	Dialect string
	Judges  []models.Judge
}

// MissingJudges lists the judges other pages name but this one does not.
type MissingJudges struct {
	Dialect string
	Judges  []models.JudgeKey
}

// ClubConflict is a judge for whom two pages print different clubs.
type ClubConflict struct {
	Key   models.JudgeKey
	Clubs []string
}

func (c ClubConflict) String() string {
	return fmt.Sprintf("%s %s: clubs %q", c.Key.Code, c.Key.Name, c.Clubs)
}

type JudgeReport struct {
	// Judges is empty whenever Missing is not.
	Judges    []models.Judge
	Missing   []MissingJudges
	Conflicts []ClubConflict
}

// Consistent reports whether every page named the same judges.
func (r JudgeReport) Consistent() bool {
	return len(r.Missing) == 0
}

// Judges merges the judge lists of several pages. The merge is refused when the
// pages disagree on who judged; otherwise each judge takes the first non-empty
// club found, in source order.
func Judges(sources []JudgeSource) JudgeReport {
	var report JudgeReport
	if len(sources) == 0 {
		return report
	}

	var all []models.JudgeKey
	keySets := make([]map[models.JudgeKey]bool, len(sources))
	for i, source := range sources {
		keySets[i] = make(map[models.JudgeKey]bool, len(source.Judges))
		for _, judge := range source.Judges {
			key := judge.Key()
			keySets[i][key] = true
			if !slices.Contains(all, key) {
				all = append(all, key)
			}
		}
	}

	for i, source := range sources {
		var missing []models.JudgeKey
		for _, key := range all {
			if !keySets[i][key] {
				missing = append(missing, key)
			}
		}
		if len(missing) > 0 {
			report.Missing = append(report.Missing, MissingJudges{Dialect: source.Dialect, Judges: missing})
		}
	}
	if len(report.Missing) > 0 {
		return report
	}

	merged := make(map[models.JudgeKey]models.Judge, len(all))
	clubs := make(map[models.JudgeKey][]string, len(all))
	for _, source := range sources {
		for _, judge := range source.Judges {
			key := judge.Key()
			current, ok := merged[key]
			if !ok || (current.Club == "" && judge.Club != "") {
				merged[key] = judge
			}
			if judge.Club != "" && !slices.Contains(clubs[key], judge.Club) {
				clubs[key] = append(clubs[key], judge.Club)
			}
		}
	}

	for _, key := range all {
		report.Judges = append(report.Judges, merged[key])
		if len(clubs[key]) > 1 {
			report.Conflicts = append(report.Conflicts, ClubConflict{Key: key, Clubs: clubs[key]})
		}
	}
	return report
}
