package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAppointmentStatusTransitions(t *testing.T) {
	cases := []struct {
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{AppointmentStatusPending, AppointmentStatusConfirmed, true},
		{AppointmentStatusPending, AppointmentStatusCancelled, true},
		{AppointmentStatusPending, AppointmentStatusCompleted, false},
		{AppointmentStatusConfirmed, AppointmentStatusCancelled, true},
		{AppointmentStatusConfirmed, AppointmentStatusCompleted, true},
		{AppointmentStatusConfirmed, AppointmentStatusPending, false},
		{AppointmentStatusCancelled, AppointmentStatusPending, false},
		{AppointmentStatusCancelled, AppointmentStatusConfirmed, false},
		{AppointmentStatusCompleted, AppointmentStatusCancelled, false},
		{AppointmentStatusPending, AppointmentStatusPending, true},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestAppointmentStatusTerminal(t *testing.T) {
	assert.False(t, AppointmentStatusPending.Terminal())
	assert.False(t, AppointmentStatusConfirmed.Terminal())
	assert.True(t, AppointmentStatusCancelled.Terminal())
	assert.True(t, AppointmentStatusCompleted.Terminal())
}

func TestAppointmentOverlaps(t *testing.T) {
	base := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	apt := &Appointment{
		StartTime:       base,
		DurationMinutes: 30,
	}

	// Same slot conflicts.
	assert.True(t, apt.Overlaps(base, base.Add(30*time.Minute)))
	// Partial overlap at either end conflicts.
	assert.True(t, apt.Overlaps(base.Add(-15*time.Minute), base.Add(15*time.Minute)))
	assert.True(t, apt.Overlaps(base.Add(15*time.Minute), base.Add(45*time.Minute)))
	// Containing interval conflicts.
	assert.True(t, apt.Overlaps(base.Add(-time.Hour), base.Add(time.Hour)))

	// Back-to-back does not: the interval is half-open.
	assert.False(t, apt.Overlaps(base.Add(30*time.Minute), base.Add(60*time.Minute)))
	assert.False(t, apt.Overlaps(base.Add(-30*time.Minute), base))
}

func TestNewAppointmentFreezesIdentities(t *testing.T) {
	practitioner := &User{
		Base:     Base{ID: uuid.New()},
		Email:    "doc@clinic.test",
		FullName: "Dr. Ada",
		Role:     RolePhysician,
	}
	creator := &User{
		Base:     Base{ID: uuid.New()},
		FullName: "Front Desk",
		Role:     RoleStaff,
	}

	apt := NewAppointment(uuid.New(), practitioner, creator)
	assert.Equal(t, AppointmentStatusPending, apt.Status)
	assert.Equal(t, DefaultAppointmentDuration, apt.DurationMinutes)
	assert.Equal(t, "Dr. Ada", apt.PractitionerName)
	assert.Equal(t, "Front Desk", apt.CreatedByName)
	assert.Equal(t, RoleStaff, apt.CreatedByRole)

	// Renaming the account afterwards must not reach the snapshot.
	practitioner.FullName = "Dr. Renamed"
	assert.Equal(t, "Dr. Ada", apt.PractitionerName)
}
