package domain

import (
	"errors"
	"fmt"
)

// CurrentVersion tags the layout of persisted documents.
const CurrentVersion = 1

var ErrUnsupportedVersion = errors.New("unsupported storage version")

// Snapshot is the versioned document kept by local stores.
type Snapshot struct {
	Version     int           `json:"version"`
	Habits      []*Habit      `json:"habits"`
	Completions []*Completion `json:"completions"`
}

func NewSnapshot() *Snapshot {
	return &Snapshot{
		Version:     CurrentVersion,
		Habits:      []*Habit{},
		Completions: []*Completion{},
	}
}

// Migrate upgrades s in place to CurrentVersion.
func Migrate(s *Snapshot) error {
	if s.Version > CurrentVersion {
		return fmt.Errorf("%w: v%d (max v%d)", ErrUnsupportedVersion, s.Version, CurrentVersion)
	}

	if s.Version < 1 {
		migrateV0(s)
		s.Version = 1
	}

	return nil
}

// migrateV0 drops unusable records that pre-versioned documents could hold:
// nil entries, completions of deleted habits and repeated habit/date pairs.
func migrateV0(s *Snapshot) {
	habits := make([]*Habit, 0, len(s.Habits))
	known := make(map[string]bool, len(s.Habits))
	for _, h := range s.Habits {
		if h == nil || h.ID == "" || known[h.ID] {
			continue
		}
		known[h.ID] = true
		habits = append(habits, h)
	}

	completions := make([]*Completion, 0, len(s.Completions))
	seen := make(map[string]bool, len(s.Completions))
	for _, c := range s.Completions {
		if c == nil || !known[c.HabitID] {
			continue
		}
		key := c.HabitID + "|" + c.Date
		if seen[key] {
			continue
		}
		seen[key] = true
		completions = append(completions, c)
	}

	s.Habits = habits
	s.Completions = completions
}
