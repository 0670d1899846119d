package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

var (
	_ domain.HabitRepository      = (*InMemoryHabitRepository)(nil)
	_ domain.CompletionRepository = (*InMemoryCompletionRepository)(nil)
)

type InMemoryHabitRepository struct {
	store map[string]*domain.Habit

	mu sync.RWMutex
}

func NewInMemoryHabitRepository() *InMemoryHabitRepository {
	return &InMemoryHabitRepository{
		store: make(map[string]*domain.Habit),
	}
}

func (r *InMemoryHabitRepository) Create(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *habit
	r.store[habit.ID] = &clone
	return nil
}

func (r *InMemoryHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habit, ok := r.store[id]
	if !ok {
		return nil, domain.ErrHabitNotFound
	}
	clone := *habit
	return &clone, nil
}

func (r *InMemoryHabitRepository) List(ctx context.Context) ([]*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habits := make([]*domain.Habit, 0, len(r.store))
	for _, h := range r.store {
		clone := *h
		habits = append(habits, &clone)
	}

	sortHabits(habits)
	return habits, nil
}

func (r *InMemoryHabitRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return domain.ErrHabitNotFound
	}

	delete(r.store, id)
	return nil
}

// InMemoryCompletionRepository indexes completions by habit, then by date.
type InMemoryCompletionRepository struct {
	store map[string]map[string]*domain.Completion

	mu sync.RWMutex
}

func NewInMemoryCompletionRepository() *InMemoryCompletionRepository {
	return &InMemoryCompletionRepository{
		store: make(map[string]map[string]*domain.Completion),
	}
}

func (r *InMemoryCompletionRepository) Toggle(ctx context.Context, habitID, date string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	byDate := r.store[habitID]
	if _, ok := byDate[date]; ok {
		delete(byDate, date)
		if len(byDate) == 0 {
			delete(r.store, habitID)
		}
		return false, nil
	}

	c, err := domain.NewCompletion(habitID, date)
	if err != nil {
		return false, err
	}

	if byDate == nil {
		byDate = make(map[string]*domain.Completion)
		r.store[habitID] = byDate
	}
	byDate[date] = c
	return true, nil
}

func (r *InMemoryCompletionRepository) Exists(ctx context.Context, habitID, date string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.store[habitID][date]
	return ok, nil
}

func (r *InMemoryCompletionRepository) ListByHabitID(ctx context.Context, habitID string) ([]*domain.Completion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*domain.Completion, 0, len(r.store[habitID]))
	for _, c := range r.store[habitID] {
		clone := *c
		list = append(list, &clone)
	}

	sortCompletions(list)
	return list, nil
}

func (r *InMemoryCompletionRepository) DeleteByHabitID(ctx context.Context, habitID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.store, habitID)
	return nil
}

func sortHabits(habits []*domain.Habit) {
	sort.Slice(habits, func(i, j int) bool {
		if habits[i].CreatedAt != habits[j].CreatedAt {
			return habits[i].CreatedAt < habits[j].CreatedAt
		}
		return habits[i].ID < habits[j].ID
	})
}

func sortCompletions(list []*domain.Completion) {
	sort.Slice(list, func(i, j int) bool {
		return list[i].Date < list[j].Date
	})
}
