package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/comitanigiacomo/kanso-habits/internal/core/calendar"
)

var (
	ErrInvalidEntry = errors.New("invalid completion data")
)

// Completion records that a habit was done on one calendar day.
type Completion struct {
	ID      string `json:"id" db:"id"`
	HabitID string `json:"habit_id" db:"habit_id"`
	Date    string `json:"date" db:"date"`

	CreatedAt int64 `json:"created_at" db:"created_at"`
}

func NewCompletion(habitID, date string) (*Completion, error) {
	if strings.TrimSpace(habitID) == "" {
		return nil, ErrInvalidEntry
	}
	if _, err := calendar.Parse(date); err != nil {
		return nil, err
	}

	return &Completion{
		ID:        uuid.New().String(),
		HabitID:   habitID,
		Date:      date,
		CreatedAt: time.Now().UnixMilli(),
	}, nil
}

// Dates projects completions onto their calendar days, preserving order.
func Dates(completions []*Completion) []string {
	dates := make([]string, 0, len(completions))
	for _, c := range completions {
		dates = append(dates, c.Date)
	}
	return dates
}
