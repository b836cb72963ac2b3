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

type clinicalRecordRepository struct {
	BaseRepository
}

func NewClinicalRecordRepository(db *sqlx.DB) repository.ClinicalRecordRepository {
	return &clinicalRecordRepository{NewBaseRepository(db)}
}

const clinicalRecordColumns = `
	r.id, r.patient_id,
	r.practitioner_name, r.practitioner_email, r.practitioner_role, r.practitioner_id,
	r.practitioner_license, r.practitioner_specialization,
	r.visit_date, r.reason_visit, r.symptoms, r.diagnosis, r.treatment,
	r.prescriptions, r.notes, r.blood_pressure, r.heart_rate, r.temperature,
	r.weight_kg, r.height_cm, r.bmi, r.next_appointment,
	r.created_at, r.updated_at,
	COALESCE(p.full_name, '') AS patient_name
`

func (r *clinicalRecordRepository) Create(ctx context.Context, record *model.ClinicalRecord) error {
	query := `
		INSERT INTO clinical_records (
			id, patient_id,
			practitioner_name, practitioner_email, practitioner_role, practitioner_id,
			practitioner_license, practitioner_specialization,
			visit_date, reason_visit, symptoms, diagnosis, treatment,
			prescriptions, notes, blood_pressure, heart_rate, temperature,
			weight_kg, height_cm, bmi, next_appointment, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24
		)
	`

	record.ID = uuid.New()
	record.CreatedAt = time.Now()
	record.UpdatedAt = record.CreatedAt

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, query,
			record.ID,
			record.PatientID,
			record.PractitionerName,
			record.PractitionerEmail,
			record.PractitionerRole,
			record.PractitionerID,
			record.PractitionerLicense,
			record.PractitionerSpecialization,
			record.VisitDate,
			record.ReasonVisit,
			record.Symptoms,
			record.Diagnosis,
			record.Treatment,
			record.Prescriptions,
			record.Notes,
			record.BloodPressure,
			record.HeartRate,
			record.Temperature,
			record.WeightKg,
			record.HeightCm,
			record.BMI,
			record.NextAppointment,
			record.CreatedAt,
			record.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create clinical record: %w", err)
		}
		return nil
	})
}

func (r *clinicalRecordRepository) Get(ctx context.Context, id uuid.UUID) (*model.ClinicalRecord, error) {
	query := `
		SELECT ` + clinicalRecordColumns + `
		FROM clinical_records r
		LEFT JOIN patients p ON p.id = r.patient_id
		WHERE r.id = $1
	`

	var record model.ClinicalRecord
	if err := r.db.GetContext(ctx, &record, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("clinical record")
		}
		return nil, fmt.Errorf("failed to get clinical record: %w", err)
	}
	return &record, nil
}

func (r *clinicalRecordRepository) List(ctx context.Context) ([]*model.ClinicalRecord, error) {
	query := `
		SELECT ` + clinicalRecordColumns + `
		FROM clinical_records r
		LEFT JOIN patients p ON p.id = r.patient_id
		ORDER BY r.created_at DESC
	`

	var records []*model.ClinicalRecord
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("failed to list clinical records: %w", err)
	}
	return records, nil
}

func (r *clinicalRecordRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.ClinicalRecord, error) {
	query := `
		SELECT ` + clinicalRecordColumns + `
		FROM clinical_records r
		LEFT JOIN patients p ON p.id = r.patient_id
		WHERE r.patient_id = $1
		ORDER BY r.created_at DESC
	`

	var records []*model.ClinicalRecord
	if err := r.db.SelectContext(ctx, &records, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list patient records: %w", err)
	}
	return records, nil
}

// Update writes the clinical fields only. The practitioner snapshot columns
// are deliberately absent from the statement.
func (r *clinicalRecordRepository) Update(ctx context.Context, record *model.ClinicalRecord) error {
	query := `
		UPDATE clinical_records
		SET visit_date = $1, reason_visit = $2, symptoms = $3, diagnosis = $4,
		    treatment = $5, prescriptions = $6, notes = $7, blood_pressure = $8,
		    heart_rate = $9, temperature = $10, weight_kg = $11, height_cm = $12,
		    bmi = $13, next_appointment = $14, updated_at = $15
		WHERE id = $16
	`

	record.UpdatedAt = time.Now()

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, query,
			record.VisitDate,
			record.ReasonVisit,
			record.Symptoms,
			record.Diagnosis,
			record.Treatment,
			record.Prescriptions,
			record.Notes,
			record.BloodPressure,
			record.HeartRate,
			record.Temperature,
			record.WeightKg,
			record.HeightCm,
			record.BMI,
			record.NextAppointment,
			record.UpdatedAt,
			record.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update clinical record: %w", err)
		}
		return requireRowsAffected(result, "clinical record")
	})
}

func (r *clinicalRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM clinical_records WHERE id = $1`

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, query, id)
		if err != nil {
			return fmt.Errorf("failed to delete clinical record: %w", err)
		}
		return requireRowsAffected(result, "clinical record")
	})
}

func (r *clinicalRecordRepository) PatientStats(ctx context.Context, patientID uuid.UUID) (*model.PatientRecordStats, error) {
	stats := &model.PatientRecordStats{}

	if err := r.db.GetContext(ctx, &stats.PatientName,
		`SELECT full_name FROM patients WHERE id = $1`, patientID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("patient")
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	if err := r.db.GetContext(ctx, &stats.TotalRecords,
		`SELECT COUNT(*) FROM clinical_records WHERE patient_id = $1`, patientID); err != nil {
		return nil, fmt.Errorf("failed to count patient records: %w", err)
	}

	query := `
		SELECT visit_date, diagnosis, practitioner_name
		FROM clinical_records
		WHERE patient_id = $1
		ORDER BY visit_date DESC
		LIMIT 1
	`
	var last struct {
		VisitDate        time.Time `db:"visit_date"`
		Diagnosis        string    `db:"diagnosis"`
		PractitionerName string    `db:"practitioner_name"`
	}
	err := r.db.GetContext(ctx, &last, query, patientID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// No visits yet; stats stay nil.
	case err != nil:
		return nil, fmt.Errorf("failed to get last visit: %w", err)
	default:
		stats.LastVisit = &last.VisitDate
		stats.LastDiagnosis = &last.Diagnosis
		stats.LastPractitioner = &last.PractitionerName
	}

	return stats, nil
}
