package model

import "github.com/google/uuid"

// RemovedPractitionerName is the sentinel stored when a historical row is
// backfilled and the original practitioner account no longer exists. The
// snapshot columns are NOT NULL, so a placeholder is required.
const (
	RemovedPractitionerName  = "historical record - practitioner removed"
	RemovedPractitionerEmail = "removed@historical.invalid"
)

// PractitionerSnapshot is a one-time copy of the acting practitioner's
// identity, frozen at record creation. It is never synchronized with the
// users table: editing or deleting the account must not rewrite who treated
// a patient.
type PractitionerSnapshot struct {
	PractitionerName  string     `json:"practitioner_name" db:"practitioner_name"`
	PractitionerEmail string     `json:"practitioner_email" db:"practitioner_email"`
	PractitionerRole  Role       `json:"practitioner_role" db:"practitioner_role"`
	PractitionerID    *uuid.UUID `json:"practitioner_id,omitempty" db:"practitioner_id"`
}

// NewPractitionerSnapshot copies the user's current identity fields. The
// returned value holds no reference to u.
func NewPractitionerSnapshot(u *User) PractitionerSnapshot {
	id := u.ID
	return PractitionerSnapshot{
		PractitionerName:  u.FullName,
		PractitionerEmail: u.Email,
		PractitionerRole:  u.Role,
		PractitionerID:    &id,
	}
}

// RemovedPractitionerSnapshot returns the placeholder used when the original
// practitioner was already deleted at backfill time.
func RemovedPractitionerSnapshot() PractitionerSnapshot {
	return PractitionerSnapshot{
		PractitionerName:  RemovedPractitionerName,
		PractitionerEmail: RemovedPractitionerEmail,
		PractitionerRole:  RoleUser,
	}
}

// CreatorSnapshot freezes who scheduled an appointment.
type CreatorSnapshot struct {
	CreatedByName string `json:"created_by_name" db:"created_by_name"`
	CreatedByRole Role   `json:"created_by_role" db:"created_by_role"`
}

// NewCreatorSnapshot copies the creating user's identity fields.
func NewCreatorSnapshot(u *User) CreatorSnapshot {
	return CreatorSnapshot{
		CreatedByName: u.FullName,
		CreatedByRole: u.Role,
	}
}
