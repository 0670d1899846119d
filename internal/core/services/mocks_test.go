package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

type MockHabitRepo struct {
	mock.Mock
}

func (m *MockHabitRepo) Create(ctx context.Context, habit *domain.Habit) error {
	args := m.Called(ctx, habit)
	return args.Error(0)
}

func (m *MockHabitRepo) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Habit), args.Error(1)
}

func (m *MockHabitRepo) List(ctx context.Context) ([]*domain.Habit, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Habit), args.Error(1)
}

func (m *MockHabitRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCompletionRepo struct {
	mock.Mock
}

func (m *MockCompletionRepo) Toggle(ctx context.Context, habitID, date string) (bool, error) {
	args := m.Called(ctx, habitID, date)
	return args.Bool(0), args.Error(1)
}

func (m *MockCompletionRepo) Exists(ctx context.Context, habitID, date string) (bool, error) {
	args := m.Called(ctx, habitID, date)
	return args.Bool(0), args.Error(1)
}

func (m *MockCompletionRepo) ListByHabitID(ctx context.Context, habitID string) ([]*domain.Completion, error) {
	args := m.Called(ctx, habitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Completion), args.Error(1)
}

func (m *MockCompletionRepo) DeleteByHabitID(ctx context.Context, habitID string) error {
	args := m.Called(ctx, habitID)
	return args.Error(0)
}

func completionsOn(habitID string, dates ...string) []*domain.Completion {
	out := make([]*domain.Completion, 0, len(dates))
	for _, d := range dates {
		out = append(out, &domain.Completion{ID: habitID + "-" + d, HabitID: habitID, Date: d})
	}
	return out
}
