package clinicalrecord

import (
	"context"
	"math"

	"github.com/google/uuid"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/repository"
	apperrors "github.com/clinicore/clinic-api/pkg/errors"
)

type Servicer interface {
	CreateRecord(ctx context.Context, actor *model.User, req *model.CreateClinicalRecordRequest) (*model.ClinicalRecord, error)
	GetRecord(ctx context.Context, id uuid.UUID) (*model.ClinicalRecord, error)
	ListRecords(ctx context.Context) ([]*model.ClinicalRecord, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.ClinicalRecord, error)
	UpdateRecord(ctx context.Context, actor *model.User, id uuid.UUID, req *model.UpdateClinicalRecordRequest) (*model.ClinicalRecord, error)
	DeleteRecord(ctx context.Context, id uuid.UUID) error
	PatientStats(ctx context.Context, patientID uuid.UUID) (*model.PatientRecordStats, error)
}

type Service struct {
	repo     repository.ClinicalRecordRepository
	patients repository.PatientRepository
}

func NewService(repo repository.ClinicalRecordRepository, patients repository.PatientRepository) *Service {
	return &Service{
		repo:     repo,
		patients: patients,
	}
}

// CreateRecord writes a new visit record. The acting user becomes the
// record's practitioner; their identity is copied into the snapshot fields
// and never revisited.
func (s *Service) CreateRecord(ctx context.Context, actor *model.User, req *model.CreateClinicalRecordRequest) (*model.ClinicalRecord, error) {
	if !actor.Role.CanPractice() {
		return nil, apperrors.Forbidden("only physicians and administrators can author clinical records")
	}
	if _, err := s.patients.Get(ctx, req.PatientID); err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Validation("the specified patient does not exist")
		}
		return nil, err
	}

	record := model.NewClinicalRecord(req.PatientID, actor)
	record.VisitDate = req.VisitDate
	record.ReasonVisit = req.ReasonVisit
	record.Symptoms = req.Symptoms
	record.Diagnosis = req.Diagnosis
	record.Treatment = req.Treatment
	record.Prescriptions = req.Prescriptions
	record.Notes = req.Notes
	record.BloodPressure = req.BloodPressure
	record.HeartRate = req.HeartRate
	record.Temperature = req.Temperature
	record.WeightKg = req.WeightKg
	record.HeightCm = req.HeightCm
	record.NextAppointment = req.NextAppointment
	record.BMI = ComputeBMI(record.WeightKg, record.HeightCm)

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Service) GetRecord(ctx context.Context, id uuid.UUID) (*model.ClinicalRecord, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListRecords(ctx context.Context) ([]*model.ClinicalRecord, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.ClinicalRecord, error) {
	if _, err := s.patients.Get(ctx, patientID); err != nil {
		return nil, err
	}
	return s.repo.ListByPatient(ctx, patientID)
}

// UpdateRecord edits the clinical fields. Only the original practitioner or
// an administrator may edit; the snapshot fields are not touched even when
// the actor is a different user.
func (s *Service) UpdateRecord(ctx context.Context, actor *model.User, id uuid.UUID, req *model.UpdateClinicalRecordRequest) (*model.ClinicalRecord, error) {
	record, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.canEdit(actor, record) {
		return nil, apperrors.Forbidden("only the original practitioner or an administrator can edit this record")
	}

	if req.VisitDate != nil {
		record.VisitDate = *req.VisitDate
	}
	if req.ReasonVisit != nil {
		record.ReasonVisit = *req.ReasonVisit
	}
	if req.Symptoms != nil {
		record.Symptoms = req.Symptoms
	}
	if req.Diagnosis != nil {
		record.Diagnosis = *req.Diagnosis
	}
	if req.Treatment != nil {
		record.Treatment = req.Treatment
	}
	if req.Prescriptions != nil {
		record.Prescriptions = req.Prescriptions
	}
	if req.Notes != nil {
		record.Notes = req.Notes
	}
	if req.BloodPressure != nil {
		record.BloodPressure = req.BloodPressure
	}
	if req.HeartRate != nil {
		record.HeartRate = req.HeartRate
	}
	if req.Temperature != nil {
		record.Temperature = req.Temperature
	}
	if req.WeightKg != nil {
		record.WeightKg = req.WeightKg
	}
	if req.HeightCm != nil {
		record.HeightCm = req.HeightCm
	}
	if req.NextAppointment != nil {
		record.NextAppointment = req.NextAppointment
	}
	if req.WeightKg != nil || req.HeightCm != nil {
		record.BMI = ComputeBMI(record.WeightKg, record.HeightCm)
	}

	if err := s.repo.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Service) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) PatientStats(ctx context.Context, patientID uuid.UUID) (*model.PatientRecordStats, error) {
	if _, err := s.patients.Get(ctx, patientID); err != nil {
		return nil, err
	}
	return s.repo.PatientStats(ctx, patientID)
}

func (s *Service) canEdit(actor *model.User, record *model.ClinicalRecord) bool {
	if actor.Role == model.RoleAdministrator {
		return true
	}
	return record.PractitionerID != nil && *record.PractitionerID == actor.ID
}

// ComputeBMI returns weight / height² rounded to one decimal, with height
// converted from centimeters to meters. Missing or non-positive inputs yield
// nil rather than an error: vitals are optional.
func ComputeBMI(weightKg, heightCm *float64) *float64 {
	if weightKg == nil || heightCm == nil || *weightKg <= 0 || *heightCm <= 0 {
		return nil
	}
	heightM := *heightCm / 100
	bmi := math.Round(*weightKg/(heightM*heightM)*10) / 10
	return &bmi
}
