package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

func TestNewHabit(t *testing.T) {
	t.Run("Success: Creates valid habit", func(t *testing.T) {
		h, err := domain.NewHabit("  Drink Water ", "#00FF00")

		require.NoError(t, err)
		assert.Equal(t, "Drink Water", h.Name)
		assert.Equal(t, "#00FF00", h.Color)
		assert.NotEmpty(t, h.ID)
		assert.WithinDuration(t, time.Now(), time.UnixMilli(h.CreatedAt), 2*time.Second)
	})

	t.Run("Success: Color is optional", func(t *testing.T) {
		h, err := domain.NewHabit("Read", "")
		require.NoError(t, err)
		assert.Empty(t, h.Color)
	})

	t.Run("Success: IDs are unique", func(t *testing.T) {
		a, _ := domain.NewHabit("A", "")
		b, _ := domain.NewHabit("B", "")
		assert.NotEqual(t, a.ID, b.ID)
	})

	tests := []struct {
		name    string
		input   string
		color   string
		wantErr error
	}{
		{name: "Error: Empty Name", input: "", wantErr: domain.ErrHabitNameEmpty},
		{name: "Error: Whitespace Name", input: "   \t", wantErr: domain.ErrHabitNameEmpty},
		{name: "Error: Name Too Long", input: strings.Repeat("a", 101), wantErr: domain.ErrHabitNameTooLong},
		{name: "Success: Name At Limit", input: strings.Repeat("é", 100)},
		{name: "Success: Short Hex Color", input: "Run", color: "#FFF"},
		{name: "Error: Color Without Hash", input: "Run", color: "FFFFFF", wantErr: domain.ErrInvalidColor},
		{name: "Error: Color Named", input: "Run", color: "red", wantErr: domain.ErrInvalidColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := domain.NewHabit(tt.input, tt.color)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, h)
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, h)
		})
	}
}
