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

type appointmentRepository struct {
	BaseRepository
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{NewBaseRepository(db)}
}

const appointmentColumns = `
	a.id, a.patient_id,
	a.practitioner_name, a.practitioner_email, a.practitioner_role, a.practitioner_id,
	a.created_by_name, a.created_by_role,
	a.start_time, a.duration_minutes, a.appointment_type, a.reason, a.status,
	a.observations, a.cancellation_reason, a.created_at, a.updated_at,
	COALESCE(p.full_name, '') AS patient_name
`

// findConflict returns the start time of the first pending or confirmed
// appointment of the same practitioner whose half-open window
// [start_time, start_time + duration) overlaps [start, end). Back-to-back
// intervals do not overlap.
func findConflict(ctx context.Context, tx *sqlx.Tx, practitionerID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (*time.Time, error) {
	query := `
		SELECT start_time FROM appointments
		WHERE practitioner_id = $1
		AND status IN ('pending', 'confirmed')
		AND start_time < $3
		AND start_time + (duration_minutes * interval '1 minute') > $2
	`
	args := []interface{}{practitionerID, start, end}

	if excludeID != nil {
		query += " AND id != $4"
		args = append(args, *excludeID)
	}

	query += " ORDER BY start_time LIMIT 1"

	var conflictStart time.Time
	err := tx.GetContext(ctx, &conflictStart, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check conflicts: %w", err)
	}
	return &conflictStart, nil
}

func schedulingConflict(collidingStart time.Time) error {
	return apperrors.Conflict(fmt.Sprintf(
		"practitioner already has an appointment at %s",
		collidingStart.Format("2006-01-02 15:04"),
	))
}

// Create runs the conflict check and the insert inside one transaction so two
// concurrent requests cannot both pass the check and insert overlapping rows.
func (r *appointmentRepository) Create(ctx context.Context, apt *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			id, patient_id,
			practitioner_name, practitioner_email, practitioner_role, practitioner_id,
			created_by_name, created_by_role,
			start_time, duration_minutes, appointment_type, reason, status,
			observations, cancellation_reason, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17
		)
	`

	apt.ID = uuid.New()
	apt.CreatedAt = time.Now()
	apt.UpdatedAt = apt.CreatedAt

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if apt.PractitionerID != nil {
			conflict, err := findConflict(ctx, tx, *apt.PractitionerID, apt.StartTime, apt.EndTime(), nil)
			if err != nil {
				return err
			}
			if conflict != nil {
				return schedulingConflict(*conflict)
			}
		}

		_, err := tx.ExecContext(ctx, query,
			apt.ID,
			apt.PatientID,
			apt.PractitionerName,
			apt.PractitionerEmail,
			apt.PractitionerRole,
			apt.PractitionerID,
			apt.CreatedByName,
			apt.CreatedByRole,
			apt.StartTime,
			apt.DurationMinutes,
			apt.Type,
			apt.Reason,
			apt.Status,
			apt.Observations,
			apt.CancellationReason,
			apt.CreatedAt,
			apt.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create appointment: %w", err)
		}
		return nil
	})
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments a
		LEFT JOIN patients p ON p.id = a.patient_id
		WHERE a.id = $1
	`

	var apt model.Appointment
	if err := r.db.GetContext(ctx, &apt, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("appointment")
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &apt, nil
}

func (r *appointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments a
		LEFT JOIN patients p ON p.id = a.patient_id
		WHERE 1=1
	`
	var args []interface{}
	argCount := 1

	if filters != nil {
		if filters.Status != "" {
			query += fmt.Sprintf(" AND a.status = $%d", argCount)
			args = append(args, filters.Status)
			argCount++
		}
		if filters.PatientID != nil {
			query += fmt.Sprintf(" AND a.patient_id = $%d", argCount)
			args = append(args, *filters.PatientID)
			argCount++
		}
		if filters.PractitionerID != nil {
			query += fmt.Sprintf(" AND a.practitioner_id = $%d", argCount)
			args = append(args, *filters.PractitionerID)
			argCount++
		}
		if filters.DateFrom != nil {
			query += fmt.Sprintf(" AND a.start_time >= $%d", argCount)
			args = append(args, *filters.DateFrom)
			argCount++
		}
		if filters.DateTo != nil {
			query += fmt.Sprintf(" AND a.start_time <= $%d", argCount)
			args = append(args, *filters.DateTo)
			argCount++
		}
	}

	query += " ORDER BY a.start_time ASC"

	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments a
		LEFT JOIN patients p ON p.id = a.patient_id
		WHERE a.patient_id = $1
		ORDER BY a.start_time DESC
	`

	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list patient appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListBetween(ctx context.Context, from, to time.Time, onlyActive bool, limit int) ([]*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments a
		LEFT JOIN patients p ON p.id = a.patient_id
		WHERE a.start_time >= $1 AND a.start_time < $2
	`
	args := []interface{}{from, to}

	if onlyActive {
		query += " AND a.status IN ('pending', 'confirmed')"
	}

	query += " ORDER BY a.start_time ASC"

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, limit)
	}

	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list appointments between dates: %w", err)
	}
	return appointments, nil
}

// Update persists the scheduling fields. When the appointment stays active
// the conflict window is re-checked in the same transaction, excluding the
// appointment itself.
func (r *appointmentRepository) Update(ctx context.Context, apt *model.Appointment) error {
	query := `
		UPDATE appointments
		SET start_time = $1, duration_minutes = $2, appointment_type = $3,
		    reason = $4, status = $5, observations = $6,
		    cancellation_reason = $7, updated_at = $8
		WHERE id = $9
	`

	apt.UpdatedAt = time.Now()

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if !apt.Status.Terminal() && apt.PractitionerID != nil {
			id := apt.ID
			conflict, err := findConflict(ctx, tx, *apt.PractitionerID, apt.StartTime, apt.EndTime(), &id)
			if err != nil {
				return err
			}
			if conflict != nil {
				return schedulingConflict(*conflict)
			}
		}

		result, err := tx.ExecContext(ctx, query,
			apt.StartTime,
			apt.DurationMinutes,
			apt.Type,
			apt.Reason,
			apt.Status,
			apt.Observations,
			apt.CancellationReason,
			apt.UpdatedAt,
			apt.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update appointment: %w", err)
		}
		return requireRowsAffected(result, "appointment")
	})
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM appointments WHERE id = $1`

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, query, id)
		if err != nil {
			return fmt.Errorf("failed to delete appointment: %w", err)
		}
		return requireRowsAffected(result, "appointment")
	})
}
