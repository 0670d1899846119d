package domain

import (
	"context"
	"errors"
)

var (
	ErrHabitNotFound      = errors.New("habit not found")
	ErrCompletionNotFound = errors.New("completion not found")

	// ErrCorruptRecord marks stored data the store accepted but the engine cannot read.
	ErrCorruptRecord = errors.New("corrupt stored record")
)

type HabitRepository interface {
	// Create persists a new habit.
	Create(ctx context.Context, habit *Habit) error

	// GetByID retrieves a habit by its unique identifier.
	GetByID(ctx context.Context, id string) (*Habit, error)

	// List returns every habit, oldest first.
	List(ctx context.Context) ([]*Habit, error)

	// Delete permanently removes a habit.
	Delete(ctx context.Context, id string) error
}

type CompletionRepository interface {
	// Toggle inserts the completion when absent and removes it when present.
	// It returns the resulting state. Implementations must run the
	// read-modify-write under mutual exclusion.
	Toggle(ctx context.Context, habitID, date string) (bool, error)

	// Exists reports whether the habit has a completion on date.
	Exists(ctx context.Context, habitID, date string) (bool, error)

	// ListByHabitID returns the habit's completions ordered by date.
	ListByHabitID(ctx context.Context, habitID string) ([]*Completion, error)

	// DeleteByHabitID removes every completion of a habit.
	DeleteByHabitID(ctx context.Context, habitID string) error
}
