package domain

import (
	"errors"

	"github.com/comitanigiacomo/kanso-habits/internal/core/streaks"
)

var ErrInvalidRange = errors.New("days must be between 1 and 366")

type DayStatus struct {
	Date      string `json:"date"`
	Label     string `json:"label"`
	Completed bool   `json:"completed"`
	IsToday   bool   `json:"is_today"`
}

type HabitSummary struct {
	Habit  *Habit         `json:"habit"`
	Streak streaks.Result `json:"streak"`
	Days   []DayStatus    `json:"days"`
}

type Board struct {
	Date           string         `json:"date"`
	CompletedToday int            `json:"completed_today"`
	TotalHabits    int            `json:"total_habits"`
	Habits         []HabitSummary `json:"habits"`
}

type SummaryInput struct {
	Today string
	Days  int
}
