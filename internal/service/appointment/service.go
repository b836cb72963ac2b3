package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/clinicore/clinic-api/internal/email"
	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/repository"
	apperrors "github.com/clinicore/clinic-api/pkg/errors"
)

// upcomingLimit caps the upcoming-appointments listing.
const upcomingLimit = 10

type Servicer interface {
	CreateAppointment(ctx context.Context, creator *model.User, req *model.CreateAppointmentRequest) (*model.Appointment, error)
	GetAppointment(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	ListAppointments(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error)
	Today(ctx context.Context) ([]*model.Appointment, error)
	Upcoming(ctx context.Context) ([]*model.Appointment, error)
	UpdateAppointment(ctx context.Context, id uuid.UUID, req *model.UpdateAppointmentRequest) (*model.Appointment, error)
	CancelAppointment(ctx context.Context, id uuid.UUID, req *model.CancelAppointmentRequest) (*model.Appointment, error)
	DeleteAppointment(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo     repository.AppointmentRepository
	patients repository.PatientRepository
	users    repository.UserRepository
	mailer   email.Service
	now      func() time.Time
}

func NewService(repo repository.AppointmentRepository, patients repository.PatientRepository, users repository.UserRepository, mailer email.Service) *Service {
	return &Service{
		repo:     repo,
		patients: patients,
		users:    users,
		mailer:   mailer,
		now:      time.Now,
	}
}

// CreateAppointment schedules a visit. The practitioner must exist and hold
// a practicing role; their identity and the creator's are frozen into the
// appointment. The repository rejects overlapping slots atomically.
func (s *Service) CreateAppointment(ctx context.Context, creator *model.User, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	patient, err := s.patients.Get(ctx, req.PatientID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Validation("the specified patient does not exist")
		}
		return nil, err
	}
	practitioner, err := s.users.Get(ctx, req.PractitionerID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Validation("the specified practitioner does not exist")
		}
		return nil, err
	}
	if !practitioner.Role.CanPractice() {
		return nil, apperrors.Validationf("user %s cannot be assigned appointments", practitioner.FullName)
	}
	if req.StartTime.Before(s.now()) {
		return nil, apperrors.Validation("appointment date cannot be in the past")
	}

	apt := model.NewAppointment(req.PatientID, practitioner, creator)
	apt.StartTime = req.StartTime
	if req.DurationMinutes > 0 {
		apt.DurationMinutes = req.DurationMinutes
	}
	apt.Type = req.Type
	apt.Reason = req.Reason
	apt.Observations = req.Observations

	if err := s.repo.Create(ctx, apt); err != nil {
		return nil, err
	}
	apt.PatientName = patient.FullName

	if patient.Email != nil {
		if err := s.mailer.SendAppointmentScheduled(*patient.Email, patient.FullName, apt.StartTime, apt.Type); err != nil {
			log.Warn().Err(err).Str("appointment_id", apt.ID.String()).Msg("appointment scheduled but notification failed")
		}
	}
	return apt, nil
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListAppointments(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	if filters != nil && filters.Status != "" && !filters.Status.Valid() {
		return nil, apperrors.Validationf("invalid status: %s", filters.Status)
	}
	return s.repo.List(ctx, filters)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error) {
	if _, err := s.patients.Get(ctx, patientID); err != nil {
		return nil, err
	}
	return s.repo.ListByPatient(ctx, patientID)
}

// Today lists all of today's appointments regardless of status.
func (s *Service) Today(ctx context.Context) ([]*model.Appointment, error) {
	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return s.repo.ListBetween(ctx, dayStart, dayStart.Add(24*time.Hour), false, 0)
}

// Upcoming lists the next pending or confirmed appointments over the coming
// week.
func (s *Service) Upcoming(ctx context.Context) ([]*model.Appointment, error) {
	now := s.now()
	return s.repo.ListBetween(ctx, now, now.AddDate(0, 0, 7), true, upcomingLimit)
}

// UpdateAppointment edits scheduling fields and drives the state machine.
// Terminal appointments are immutable; rescheduling re-runs the conflict
// check against the practitioner's other active slots.
func (s *Service) UpdateAppointment(ctx context.Context, id uuid.UUID, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if apt.Status.Terminal() {
		return nil, apperrors.Immutable("appointment is " + string(apt.Status) + " and can no longer be modified")
	}

	if req.Status != nil && *req.Status != apt.Status {
		if !req.Status.Valid() {
			return nil, apperrors.Validationf("invalid status: %s", *req.Status)
		}
		if !apt.Status.CanTransitionTo(*req.Status) {
			return nil, apperrors.Validationf("cannot transition from %s to %s", apt.Status, *req.Status)
		}
		if *req.Status == model.AppointmentStatusCancelled {
			if req.CancellationReason == nil || *req.CancellationReason == "" {
				return nil, apperrors.Validation("cancellation requires a reason")
			}
		}
		apt.Status = *req.Status
	}

	if req.StartTime != nil {
		if req.StartTime.Before(s.now()) {
			return nil, apperrors.Validation("appointment date cannot be in the past")
		}
		apt.StartTime = *req.StartTime
	}
	if req.DurationMinutes != nil {
		apt.DurationMinutes = *req.DurationMinutes
	}
	if req.Type != nil {
		apt.Type = *req.Type
	}
	if req.Reason != nil {
		apt.Reason = *req.Reason
	}
	if req.Observations != nil {
		apt.Observations = req.Observations
	}
	if req.CancellationReason != nil {
		apt.CancellationReason = req.CancellationReason
	}

	if err := s.repo.Update(ctx, apt); err != nil {
		return nil, err
	}
	return apt, nil
}

// CancelAppointment is the dedicated cancellation path. The reason is
// mandatory and a terminal appointment cannot be cancelled again.
func (s *Service) CancelAppointment(ctx context.Context, id uuid.UUID, req *model.CancelAppointmentRequest) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if apt.Status.Terminal() {
		return nil, apperrors.AlreadyTerminal("appointment is already " + string(apt.Status))
	}

	apt.Status = model.AppointmentStatusCancelled
	apt.CancellationReason = &req.CancellationReason

	if err := s.repo.Update(ctx, apt); err != nil {
		return nil, err
	}

	if patient, perr := s.patients.Get(ctx, apt.PatientID); perr == nil && patient.Email != nil {
		if err := s.mailer.SendAppointmentCancelled(*patient.Email, patient.FullName, apt.StartTime, req.CancellationReason); err != nil {
			log.Warn().Err(err).Str("appointment_id", apt.ID.String()).Msg("appointment cancelled but notification failed")
		}
	}
	return apt, nil
}

func (s *Service) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
