package services

import (
	"context"
	"fmt"

	"github.com/comitanigiacomo/kanso-habits/internal/core/calendar"
	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/core/streaks"
)

const (
	DefaultDays = 7
	MaxDays     = 366
)

type StatsService struct {
	habitRepo      domain.HabitRepository
	completionRepo domain.CompletionRepository
}

func NewStatsService(habitRepo domain.HabitRepository, completionRepo domain.CompletionRepository) *StatsService {
	return &StatsService{
		habitRepo:      habitRepo,
		completionRepo: completionRepo,
	}
}

func normalizeInput(input domain.SummaryInput) (domain.SummaryInput, error) {
	if input.Today == "" {
		input.Today = calendar.Today()
	} else if _, err := calendar.Parse(input.Today); err != nil {
		return input, err
	}

	if input.Days == 0 {
		input.Days = DefaultDays
	}
	if input.Days < 1 || input.Days > MaxDays {
		return input, domain.ErrInvalidRange
	}

	return input, nil
}

func (s *StatsService) GetHabitSummary(ctx context.Context, habitID string, input domain.SummaryInput) (*domain.HabitSummary, error) {
	input, err := normalizeInput(input)
	if err != nil {
		return nil, err
	}

	habit, err := s.habitRepo.GetByID(ctx, habitID)
	if err != nil {
		return nil, err
	}

	return s.summarize(ctx, habit, input)
}

// GetBoard summarizes every habit for the given day.
func (s *StatsService) GetBoard(ctx context.Context, input domain.SummaryInput) (*domain.Board, error) {
	input, err := normalizeInput(input)
	if err != nil {
		return nil, err
	}

	habits, err := s.habitRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	board := &domain.Board{
		Date:        input.Today,
		TotalHabits: len(habits),
		Habits:      make([]domain.HabitSummary, 0, len(habits)),
	}

	for _, h := range habits {
		summary, err := s.summarize(ctx, h, input)
		if err != nil {
			return nil, err
		}
		if summary.Streak.CompletedToday {
			board.CompletedToday++
		}
		board.Habits = append(board.Habits, *summary)
	}

	return board, nil
}

func (s *StatsService) summarize(ctx context.Context, habit *domain.Habit, input domain.SummaryInput) (*domain.HabitSummary, error) {
	completions, err := s.completionRepo.ListByHabitID(ctx, habit.ID)
	if err != nil {
		return nil, err
	}

	dates := domain.Dates(completions)

	// input.Today is already validated, so a failure here is a bad stored date.
	result, err := streaks.Compute(dates, input.Today)
	if err != nil {
		return nil, fmt.Errorf("stats service: habit %s: %w: %v", habit.ID, domain.ErrCorruptRecord, err)
	}

	window, err := calendar.LastNDaysFrom(input.Today, input.Days)
	if err != nil {
		return nil, err
	}

	done := make(map[string]bool, len(dates))
	for _, d := range dates {
		done[d] = true
	}

	days := make([]domain.DayStatus, 0, len(window))
	for _, d := range window {
		label, err := calendar.DayLabel(d)
		if err != nil {
			return nil, err
		}
		days = append(days, domain.DayStatus{
			Date:      d,
			Label:     label,
			Completed: done[d],
			IsToday:   d == input.Today,
		})
	}

	return &domain.HabitSummary{
		Habit:  habit,
		Streak: result,
		Days:   days,
	}, nil
}
