package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusConfirmed,
		AppointmentStatusCancelled, AppointmentStatusCompleted:
		return true
	}
	return false
}

// Terminal reports whether no further transition is permitted.
func (s AppointmentStatus) Terminal() bool {
	return s == AppointmentStatusCancelled || s == AppointmentStatusCompleted
}

// CanTransitionTo enforces pending -> confirmed|cancelled and
// confirmed -> cancelled|completed.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	if s == next {
		return true
	}
	switch s {
	case AppointmentStatusPending:
		return next == AppointmentStatusConfirmed || next == AppointmentStatusCancelled
	case AppointmentStatusConfirmed:
		return next == AppointmentStatusCancelled || next == AppointmentStatusCompleted
	}
	return false
}

const DefaultAppointmentDuration = 30

// Appointment is a scheduled visit. Practitioner and creator identities are
// frozen snapshots; scheduling fields stay editable until the appointment
// reaches a terminal state.
type Appointment struct {
	Base
	PatientID uuid.UUID `json:"patient_id" db:"patient_id"`

	PractitionerSnapshot
	CreatorSnapshot

	StartTime          time.Time         `json:"appointment_date" db:"start_time"`
	DurationMinutes    int               `json:"duration_minutes" db:"duration_minutes"`
	Type               string            `json:"appointment_type" db:"appointment_type"`
	Reason             string            `json:"reason" db:"reason"`
	Status             AppointmentStatus `json:"status" db:"status"`
	Observations       *string           `json:"observations" db:"observations"`
	CancellationReason *string           `json:"cancellation_reason" db:"cancellation_reason"`

	// Populated by list queries joining the patients table.
	PatientName string `json:"patient_name,omitempty" db:"patient_name"`
}

// EndTime is the exclusive end of the conflict window.
func (a *Appointment) EndTime() time.Time {
	return a.StartTime.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// Overlaps applies the half-open interval test [start, end): back-to-back
// appointments do not conflict.
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return a.StartTime.Before(end) && start.Before(a.EndTime())
}

// NewAppointment freezes the practitioner and creator identities at
// construction.
func NewAppointment(patientID uuid.UUID, practitioner, creator *User) *Appointment {
	return &Appointment{
		PatientID:            patientID,
		PractitionerSnapshot: NewPractitionerSnapshot(practitioner),
		CreatorSnapshot:      NewCreatorSnapshot(creator),
		Status:               AppointmentStatusPending,
		DurationMinutes:      DefaultAppointmentDuration,
	}
}

// CreateAppointmentRequest represents appointment creation parameters
type CreateAppointmentRequest struct {
	PatientID       uuid.UUID `json:"patient_id" binding:"required"`
	PractitionerID  uuid.UUID `json:"practitioner_id" binding:"required"`
	StartTime       time.Time `json:"appointment_date" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"omitempty,min=1"`
	Type            string    `json:"appointment_type" binding:"required"`
	Reason          string    `json:"reason" binding:"required"`
	Observations    *string   `json:"observations"`
}

// UpdateAppointmentRequest is a partial update; snapshot fields are absent.
type UpdateAppointmentRequest struct {
	StartTime          *time.Time         `json:"appointment_date"`
	DurationMinutes    *int               `json:"duration_minutes" binding:"omitempty,min=1"`
	Type               *string            `json:"appointment_type"`
	Reason             *string            `json:"reason"`
	Status             *AppointmentStatus `json:"status"`
	Observations       *string            `json:"observations"`
	CancellationReason *string            `json:"cancellation_reason"`
}

// CancelAppointmentRequest carries the mandatory cancellation reason.
type CancelAppointmentRequest struct {
	CancellationReason string `json:"cancellation_reason" binding:"required"`
}

// AppointmentFilters narrows appointment listings.
type AppointmentFilters struct {
	Status         AppointmentStatus
	PatientID      *uuid.UUID
	PractitionerID *uuid.UUID
	DateFrom       *time.Time
	DateTo         *time.Time
}
