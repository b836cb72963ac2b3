package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/repository"
	apperrors "github.com/clinicore/clinic-api/pkg/errors"
)

type taskRepository struct {
	BaseRepository
}

func NewTaskRepository(db *sqlx.DB) repository.TaskRepository {
	return &taskRepository{NewBaseRepository(db)}
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	query := `
		INSERT INTO tasks (id, title, done, responsible_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	task.ID = uuid.New()
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, query,
			task.ID,
			task.Title,
			task.Done,
			task.ResponsibleID,
			task.CreatedAt,
			task.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}
		return nil
	})
}

func (r *taskRepository) Get(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	query := `SELECT * FROM tasks WHERE id = $1`

	var task model.Task
	if err := r.db.GetContext(ctx, &task, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("task")
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return &task, nil
}

func (r *taskRepository) List(ctx context.Context, filters *model.TaskFilters) ([]*model.Task, error) {
	query := `SELECT * FROM tasks WHERE 1=1`
	var args []interface{}
	argCount := 1

	if filters != nil {
		if filters.ResponsibleID != nil {
			query += fmt.Sprintf(" AND responsible_id = $%d", argCount)
			args = append(args, *filters.ResponsibleID)
			argCount++
		}
		if filters.Done != nil {
			query += fmt.Sprintf(" AND done = $%d", argCount)
			args = append(args, *filters.Done)
			argCount++
		}
	}

	query += " ORDER BY created_at DESC"

	var tasks []*model.Task
	if err := r.db.SelectContext(ctx, &tasks, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func (r *taskRepository) Update(ctx context.Context, task *model.Task) error {
	query := `
		UPDATE tasks
		SET title = $1, done = $2, responsible_id = $3, updated_at = $4
		WHERE id = $5
	`

	task.UpdatedAt = time.Now()

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, query,
			task.Title,
			task.Done,
			task.ResponsibleID,
			task.UpdatedAt,
			task.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}
		return requireRowsAffected(result, "task")
	})
}

func (r *taskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM tasks WHERE id = $1`

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, query, id)
		if err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}
		return requireRowsAffected(result, "task")
	})
}
