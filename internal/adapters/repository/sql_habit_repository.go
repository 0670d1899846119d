package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

var _ domain.HabitRepository = (*SQLHabitRepository)(nil)

type SQLHabitRepository struct {
	db *sqlx.DB
}

func NewSQLHabitRepository(db *sqlx.DB) *SQLHabitRepository {
	return &SQLHabitRepository{db: db}
}

func (r *SQLHabitRepository) Create(ctx context.Context, h *domain.Habit) error {
	query := `
		INSERT INTO habits (id, name, color, created_at)
		VALUES (:id, :name, :color, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, h); err != nil {
		return fmt.Errorf("failed to insert habit: %w", err)
	}
	return nil
}

func (r *SQLHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	var h domain.Habit
	query := `SELECT id, name, color, created_at FROM habits WHERE id = ?`

	if err := r.db.GetContext(ctx, &h, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrHabitNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}
	return &h, nil
}

func (r *SQLHabitRepository) List(ctx context.Context) ([]*domain.Habit, error) {
	habits := []*domain.Habit{}
	query := `SELECT id, name, color, created_at FROM habits ORDER BY created_at ASC, id ASC`

	if err := r.db.SelectContext(ctx, &habits, query); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return habits, nil
}

func (r *SQLHabitRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM habits WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete query failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrHabitNotFound
	}
	return nil
}
