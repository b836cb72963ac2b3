package model

import "time"

// Patient represents a clinic patient. A patient owns its clinical records:
// deleting the patient cascades to them. Appointments reference the patient
// but practitioners only ever via snapshot.
type Patient struct {
	Base
	Rut               string    `json:"rut" db:"rut"`
	FullName          string    `json:"full_name" db:"full_name"`
	BirthDate         time.Time `json:"birth_date" db:"birth_date"`
	Gender            string    `json:"gender" db:"gender"`
	Address           *string   `json:"address" db:"address"`
	Phone             *string   `json:"phone" db:"phone"`
	Email             *string   `json:"email" db:"email"`
	EmergencyContact  *string   `json:"emergency_contact" db:"emergency_contact"`
	EmergencyPhone    *string   `json:"emergency_phone" db:"emergency_phone"`
	BloodType         *string   `json:"blood_type" db:"blood_type"`
	Allergies         *string   `json:"allergies" db:"allergies"`
	ChronicConditions *string   `json:"chronic_conditions" db:"chronic_conditions"`
}

// CreatePatientRequest represents patient creation parameters
type CreatePatientRequest struct {
	Rut               string    `json:"rut" binding:"required"`
	FullName          string    `json:"full_name" binding:"required"`
	BirthDate         time.Time `json:"birth_date" binding:"required" time_format:"2006-01-02"`
	Gender            string    `json:"gender" binding:"required,oneof=male female other"`
	Address           *string   `json:"address"`
	Phone             *string   `json:"phone"`
	Email             *string   `json:"email" binding:"omitempty,email"`
	EmergencyContact  *string   `json:"emergency_contact"`
	EmergencyPhone    *string   `json:"emergency_phone"`
	BloodType         *string   `json:"blood_type" binding:"omitempty,bloodtype"`
	Allergies         *string   `json:"allergies"`
	ChronicConditions *string   `json:"chronic_conditions"`
}

// UpdatePatientRequest represents a partial patient update
type UpdatePatientRequest struct {
	Rut               *string    `json:"rut"`
	FullName          *string    `json:"full_name"`
	BirthDate         *time.Time `json:"birth_date"`
	Gender            *string    `json:"gender" binding:"omitempty,oneof=male female other"`
	Address           *string    `json:"address"`
	Phone             *string    `json:"phone"`
	Email             *string    `json:"email" binding:"omitempty,email"`
	EmergencyContact  *string    `json:"emergency_contact"`
	EmergencyPhone    *string    `json:"emergency_phone"`
	BloodType         *string    `json:"blood_type" binding:"omitempty,bloodtype"`
	Allergies         *string    `json:"allergies"`
	ChronicConditions *string    `json:"chronic_conditions"`
}
