package services

import (
	"context"
	"sort"

	"github.com/comitanigiacomo/kanso-habits/internal/core/calendar"
	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

type CompletionService struct {
	repo      domain.CompletionRepository
	habitRepo domain.HabitRepository
}

func NewCompletionService(repo domain.CompletionRepository, habitRepo domain.HabitRepository) *CompletionService {
	return &CompletionService{
		repo:      repo,
		habitRepo: habitRepo,
	}
}

type ToggleInput struct {
	HabitID string
	// Date defaults to today when empty.
	Date string
}

type ToggleResult struct {
	HabitID   string `json:"habit_id"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

func (s *CompletionService) Toggle(ctx context.Context, input ToggleInput) (*ToggleResult, error) {
	date := input.Date
	if date == "" {
		date = calendar.Today()
	}
	if _, err := calendar.Parse(date); err != nil {
		return nil, err
	}

	if _, err := s.habitRepo.GetByID(ctx, input.HabitID); err != nil {
		return nil, err
	}

	completed, err := s.repo.Toggle(ctx, input.HabitID, date)
	if err != nil {
		return nil, err
	}

	return &ToggleResult{
		HabitID:   input.HabitID,
		Date:      date,
		Completed: completed,
	}, nil
}

func (s *CompletionService) IsCompleted(ctx context.Context, habitID, date string) (bool, error) {
	if _, err := calendar.Parse(date); err != nil {
		return false, err
	}
	return s.repo.Exists(ctx, habitID, date)
}

// ListDates returns the habit's completion days in ascending order.
func (s *CompletionService) ListDates(ctx context.Context, habitID string) ([]string, error) {
	if _, err := s.habitRepo.GetByID(ctx, habitID); err != nil {
		return nil, err
	}

	completions, err := s.repo.ListByHabitID(ctx, habitID)
	if err != nil {
		return nil, err
	}

	dates := domain.Dates(completions)
	sort.Strings(dates)
	return dates, nil
}
