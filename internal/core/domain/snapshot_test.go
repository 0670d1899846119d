package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

func TestNewSnapshot(t *testing.T) {
	s := domain.NewSnapshot()
	assert.Equal(t, domain.CurrentVersion, s.Version)
	assert.NotNil(t, s.Habits)
	assert.NotNil(t, s.Completions)
}

func TestMigrate(t *testing.T) {
	t.Run("Current version is untouched", func(t *testing.T) {
		s := &domain.Snapshot{
			Version:     domain.CurrentVersion,
			Habits:      []*domain.Habit{{ID: "h1"}},
			Completions: []*domain.Completion{{HabitID: "ghost", Date: "2024-01-01"}},
		}
		require.NoError(t, domain.Migrate(s))
		assert.Len(t, s.Completions, 1)
	})

	t.Run("Version 0 is cleaned and upgraded", func(t *testing.T) {
		s := &domain.Snapshot{
			Version: 0,
			Habits:  []*domain.Habit{{ID: "h1"}, nil, {ID: "h1"}, {ID: ""}},
			Completions: []*domain.Completion{
				{ID: "c1", HabitID: "h1", Date: "2024-01-01"},
				{ID: "c2", HabitID: "h1", Date: "2024-01-01"},
				{ID: "c3", HabitID: "deleted", Date: "2024-01-02"},
				nil,
			},
		}

		require.NoError(t, domain.Migrate(s))

		assert.Equal(t, 1, s.Version)
		require.Len(t, s.Habits, 1)
		require.Len(t, s.Completions, 1)
		assert.Equal(t, "c1", s.Completions[0].ID)
	})

	t.Run("Error: Newer version is rejected", func(t *testing.T) {
		s := &domain.Snapshot{Version: domain.CurrentVersion + 1}
		assert.ErrorIs(t, domain.Migrate(s), domain.ErrUnsupportedVersion)
	})
}
