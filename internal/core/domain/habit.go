package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

var (
	ErrHabitNameEmpty   = errors.New("habit name cannot be empty")
	ErrHabitNameTooLong = errors.New("habit name is too long (max 100 chars)")
	ErrInvalidColor     = errors.New("invalid color format (must be #RRGGBB)")
)

var colorRegex = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

const MaxNameLen = 100

type Habit struct {
	ID    string `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Color string `json:"color,omitempty" db:"color"`

	// CreatedAt is unix milliseconds.
	CreatedAt int64 `json:"created_at" db:"created_at"`
}

func NewHabit(name, color string) (*Habit, error) {
	trimmedName := strings.TrimSpace(name)
	if trimmedName == "" {
		return nil, ErrHabitNameEmpty
	}
	if utf8.RuneCountInString(trimmedName) > MaxNameLen {
		return nil, ErrHabitNameTooLong
	}

	color = strings.TrimSpace(color)
	if color != "" && !colorRegex.MatchString(color) {
		return nil, ErrInvalidColor
	}

	return &Habit{
		ID:        uuid.New().String(),
		Name:      trimmedName,
		Color:     color,
		CreatedAt: time.Now().UnixMilli(),
	}, nil
}
