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

type patientRepository struct {
	BaseRepository
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{NewBaseRepository(db)}
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (
			id, rut, full_name, birth_date, gender, address, phone, email,
			emergency_contact, emergency_phone, blood_type, allergies,
			chronic_conditions, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	patient.ID = uuid.New()
	patient.CreatedAt = time.Now()
	patient.UpdatedAt = patient.CreatedAt

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, query,
			patient.ID,
			patient.Rut,
			patient.FullName,
			patient.BirthDate,
			patient.Gender,
			patient.Address,
			patient.Phone,
			patient.Email,
			patient.EmergencyContact,
			patient.EmergencyPhone,
			patient.BloodType,
			patient.Allergies,
			patient.ChronicConditions,
			patient.CreatedAt,
			patient.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create patient: %w", err)
		}
		return nil
	})
}

func (r *patientRepository) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	query := `SELECT * FROM patients WHERE id = $1`

	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("patient")
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) GetByRut(ctx context.Context, rut string) (*model.Patient, error) {
	query := `SELECT * FROM patients WHERE rut = $1`

	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, query, rut); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("patient")
		}
		return nil, fmt.Errorf("failed to get patient by rut: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	query := `SELECT * FROM patients ORDER BY created_at DESC`

	var patients []*model.Patient
	if err := r.db.SelectContext(ctx, &patients, query); err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	query := `
		UPDATE patients
		SET rut = $1, full_name = $2, birth_date = $3, gender = $4,
		    address = $5, phone = $6, email = $7, emergency_contact = $8,
		    emergency_phone = $9, blood_type = $10, allergies = $11,
		    chronic_conditions = $12, updated_at = $13
		WHERE id = $14
	`

	patient.UpdatedAt = time.Now()

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, query,
			patient.Rut,
			patient.FullName,
			patient.BirthDate,
			patient.Gender,
			patient.Address,
			patient.Phone,
			patient.Email,
			patient.EmergencyContact,
			patient.EmergencyPhone,
			patient.BloodType,
			patient.Allergies,
			patient.ChronicConditions,
			patient.UpdatedAt,
			patient.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update patient: %w", err)
		}
		return requireRowsAffected(result, "patient")
	})
}

// Delete relies on ON DELETE CASCADE for the patient's clinical records and
// appointments. Other patients' rows are untouched.
func (r *patientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM patients WHERE id = $1`

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, query, id)
		if err != nil {
			return fmt.Errorf("failed to delete patient: %w", err)
		}
		return requireRowsAffected(result, "patient")
	})
}
