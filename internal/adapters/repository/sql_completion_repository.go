package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

var _ domain.CompletionRepository = (*SQLCompletionRepository)(nil)

type SQLCompletionRepository struct {
	db *sqlx.DB
}

func NewSQLCompletionRepository(db *sqlx.DB) *SQLCompletionRepository {
	return &SQLCompletionRepository{db: db}
}

func (r *SQLCompletionRepository) Toggle(ctx context.Context, habitID, date string) (completed bool, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("toggle: begin: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `DELETE FROM completions WHERE habit_id = ? AND date = ?`, habitID, date)
	if err != nil {
		return false, fmt.Errorf("toggle: delete: %w", err)
	}

	removed, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	if removed == 0 {
		c, err := domain.NewCompletion(habitID, date)
		if err != nil {
			return false, err
		}

		query := `
			INSERT INTO completions (id, habit_id, date, created_at)
			VALUES (:id, :habit_id, :date, :created_at)`
		if _, err := tx.NamedExecContext(ctx, query, c); err != nil {
			return false, fmt.Errorf("toggle: insert: %w", err)
		}
		completed = true
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("toggle: commit: %w", err)
	}
	return completed, nil
}

func (r *SQLCompletionRepository) Exists(ctx context.Context, habitID, date string) (bool, error) {
	var count int
	query := `SELECT count(*) FROM completions WHERE habit_id = ? AND date = ?`

	if err := r.db.GetContext(ctx, &count, query, habitID, date); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *SQLCompletionRepository) ListByHabitID(ctx context.Context, habitID string) ([]*domain.Completion, error) {
	list := []*domain.Completion{}
	query := `
		SELECT id, habit_id, date, created_at FROM completions
		WHERE habit_id = ?
		ORDER BY date ASC`

	if err := r.db.SelectContext(ctx, &list, query, habitID); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *SQLCompletionRepository) DeleteByHabitID(ctx context.Context, habitID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM completions WHERE habit_id = ?`, habitID)
	return err
}
