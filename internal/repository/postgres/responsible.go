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

type responsibleRepository struct {
	BaseRepository
}

func NewResponsibleRepository(db *sqlx.DB) repository.ResponsibleRepository {
	return &responsibleRepository{NewBaseRepository(db)}
}

func (r *responsibleRepository) Create(ctx context.Context, responsible *model.Responsible) error {
	query := `
		INSERT INTO responsibles (id, user_id, area, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	responsible.ID = uuid.New()
	responsible.CreatedAt = time.Now()
	responsible.UpdatedAt = responsible.CreatedAt

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, query,
			responsible.ID,
			responsible.UserID,
			responsible.Area,
			responsible.CreatedAt,
			responsible.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create responsible: %w", err)
		}
		return nil
	})
}

func (r *responsibleRepository) Get(ctx context.Context, id uuid.UUID) (*model.Responsible, error) {
	query := `SELECT * FROM responsibles WHERE id = $1`

	var responsible model.Responsible
	if err := r.db.GetContext(ctx, &responsible, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("responsible")
		}
		return nil, fmt.Errorf("failed to get responsible: %w", err)
	}
	return &responsible, nil
}

func (r *responsibleRepository) List(ctx context.Context) ([]*model.Responsible, error) {
	query := `SELECT * FROM responsibles ORDER BY created_at DESC`

	var responsibles []*model.Responsible
	if err := r.db.SelectContext(ctx, &responsibles, query); err != nil {
		return nil, fmt.Errorf("failed to list responsibles: %w", err)
	}
	return responsibles, nil
}

func (r *responsibleRepository) Update(ctx context.Context, responsible *model.Responsible) error {
	query := `
		UPDATE responsibles
		SET user_id = $1, area = $2, updated_at = $3
		WHERE id = $4
	`

	responsible.UpdatedAt = time.Now()

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, query,
			responsible.UserID,
			responsible.Area,
			responsible.UpdatedAt,
			responsible.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update responsible: %w", err)
		}
		return requireRowsAffected(result, "responsible")
	})
}

// Delete cascades to the responsible's tasks via the schema.
func (r *responsibleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM responsibles WHERE id = $1`

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, query, id)
		if err != nil {
			return fmt.Errorf("failed to delete responsible: %w", err)
		}
		return requireRowsAffected(result, "responsible")
	})
}
