package services

import (
	"context"
	"fmt"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

type HabitService struct {
	repo        domain.HabitRepository
	completions domain.CompletionRepository
}

func NewHabitService(repo domain.HabitRepository, completions domain.CompletionRepository) *HabitService {
	return &HabitService{
		repo:        repo,
		completions: completions,
	}
}

type CreateHabitInput struct {
	Name  string
	Color string
}

func (s *HabitService) Create(ctx context.Context, input CreateHabitInput) (*domain.Habit, error) {
	habit, err := domain.NewHabit(input.Name, input.Color)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, habit); err != nil {
		return nil, err
	}

	return habit, nil
}

func (s *HabitService) List(ctx context.Context) ([]*domain.Habit, error) {
	return s.repo.List(ctx)
}

func (s *HabitService) Get(ctx context.Context, id string) (*domain.Habit, error) {
	return s.repo.GetByID(ctx, id)
}

// Delete removes the habit together with all of its completions.
func (s *HabitService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	// Habit first: a failed cleanup leaves orphans nobody can read, never a
	// live habit with its history gone.
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.completions.DeleteByHabitID(ctx, id); err != nil {
		return fmt.Errorf("habit service: failed to delete completions of %s: %w", id, err)
	}
	return nil
}
