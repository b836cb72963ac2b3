package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/clinic-api/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context, since time.Time) (*model.UserStats, error)
}

type PatientRepository interface {
	Create(ctx context.Context, patient *model.Patient) error
	Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
	GetByRut(ctx context.Context, rut string) (*model.Patient, error)
	List(ctx context.Context) ([]*model.Patient, error)
	Update(ctx context.Context, patient *model.Patient) error
	// Delete removes the patient and, by schema cascade, its clinical records.
	Delete(ctx context.Context, id uuid.UUID) error
}

type ClinicalRecordRepository interface {
	Create(ctx context.Context, record *model.ClinicalRecord) error
	Get(ctx context.Context, id uuid.UUID) (*model.ClinicalRecord, error)
	List(ctx context.Context) ([]*model.ClinicalRecord, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.ClinicalRecord, error)
	// Update persists the clinical fields only; snapshot columns are never
	// part of the statement.
	Update(ctx context.Context, record *model.ClinicalRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
	PatientStats(ctx context.Context, patientID uuid.UUID) (*model.PatientRecordStats, error)
}

type AppointmentRepository interface {
	// Create runs the conflict check and the insert in one transaction so two
	// concurrent requests cannot both pass the check.
	Create(ctx context.Context, apt *model.Appointment) error
	Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error)
	ListBetween(ctx context.Context, from, to time.Time, onlyActive bool, limit int) ([]*model.Appointment, error)
	// Update re-checks conflicts in the same transaction as the write.
	Update(ctx context.Context, apt *model.Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ResponsibleRepository interface {
	Create(ctx context.Context, responsible *model.Responsible) error
	Get(ctx context.Context, id uuid.UUID) (*model.Responsible, error)
	List(ctx context.Context) ([]*model.Responsible, error)
	Update(ctx context.Context, responsible *model.Responsible) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	Get(ctx context.Context, id uuid.UUID) (*model.Task, error)
	List(ctx context.Context, filters *model.TaskFilters) ([]*model.Task, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type DashboardRepository interface {
	Stats(ctx context.Context, now time.Time) (*model.DashboardStats, error)
}
