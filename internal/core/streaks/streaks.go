// Package streaks turns a habit's completion dates into streak metrics.
//
// Every function is pure: the full input is passed by value on each call and
// nothing is remembered between calls, so results are always recomputed.
package streaks

import (
	"fmt"
	"sort"
	"time"

	"github.com/comitanigiacomo/kanso-habits/internal/core/calendar"
)

type Result struct {
	CurrentStreak  int  `json:"current_streak"`
	BestStreak     int  `json:"best_streak"`
	IsAtRisk       bool `json:"is_at_risk"`
	CompletedToday bool `json:"completed_today"`
}

// CurrentStreak counts consecutive completed days walking backward from today.
//
// When today is not completed yet the walk starts from yesterday: a streak is
// only broken once a whole day has passed without a completion.
func CurrentStreak(dates []string, today string) (int, error) {
	set, err := dateSet(dates)
	if err != nil {
		return 0, err
	}
	return currentStreak(set, today)
}

// BestStreak returns the longest run of consecutive days in dates.
// It does not depend on today.
func BestStreak(dates []string) (int, error) {
	set, err := dateSet(dates)
	if err != nil {
		return 0, err
	}
	return bestStreak(set), nil
}

// IsAtRisk reports whether there is a streak to lose and today is still open.
func IsAtRisk(currentStreak int, completedToday bool) bool {
	return currentStreak > 0 && !completedToday
}

// Compute derives the full Result with a single pass over dates.
func Compute(dates []string, today string) (Result, error) {
	set, err := dateSet(dates)
	if err != nil {
		return Result{}, err
	}

	current, err := currentStreak(set, today)
	if err != nil {
		return Result{}, err
	}

	_, completedToday := set[today]

	return Result{
		CurrentStreak:  current,
		BestStreak:     bestStreak(set),
		IsAtRisk:       IsAtRisk(current, completedToday),
		CompletedToday: completedToday,
	}, nil
}

func dateSet(dates []string) (map[string]time.Time, error) {
	set := make(map[string]time.Time, len(dates))
	for i, d := range dates {
		if _, seen := set[d]; seen {
			continue
		}
		t, err := calendar.Parse(d)
		if err != nil {
			return nil, fmt.Errorf("completion date %d: %w", i, err)
		}
		set[d] = t
	}
	return set, nil
}

func currentStreak(set map[string]time.Time, today string) (int, error) {
	anchor, err := calendar.Parse(today)
	if err != nil {
		return 0, fmt.Errorf("today: %w", err)
	}

	if _, ok := set[today]; !ok {
		anchor = anchor.AddDate(0, 0, -1)
	}

	streak := 0
	for day := anchor; ; day = day.AddDate(0, 0, -1) {
		if _, ok := set[calendar.Format(day)]; !ok {
			break
		}
		streak++
	}
	return streak, nil
}

func bestStreak(set map[string]time.Time) int {
	if len(set) == 0 {
		return 0
	}

	days := make([]time.Time, 0, len(set))
	for _, t := range set {
		days = append(days, t)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Before(days[j])
	})

	best, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i].Equal(days[i-1].AddDate(0, 0, 1)) {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 1
		}
	}
	return best
}
