package model

import (
	"time"

	"github.com/google/uuid"
)

// ClinicalRecord is a visit record for one patient. The practitioner snapshot
// fields are set once at construction and excluded from every update; the
// clinical fields stay editable by the original practitioner or an admin.
type ClinicalRecord struct {
	Base
	PatientID uuid.UUID `json:"patient_id" db:"patient_id"`

	PractitionerSnapshot
	PractitionerLicense        *string `json:"practitioner_license,omitempty" db:"practitioner_license"`
	PractitionerSpecialization *string `json:"practitioner_specialization,omitempty" db:"practitioner_specialization"`

	VisitDate       time.Time  `json:"visit_date" db:"visit_date"`
	ReasonVisit     string     `json:"reason_visit" db:"reason_visit"`
	Symptoms        *string    `json:"symptoms" db:"symptoms"`
	Diagnosis       string     `json:"diagnosis" db:"diagnosis"`
	Treatment       *string    `json:"treatment" db:"treatment"`
	Prescriptions   *string    `json:"prescriptions" db:"prescriptions"`
	Notes           *string    `json:"notes" db:"notes"`
	BloodPressure   *string    `json:"blood_pressure" db:"blood_pressure"`
	HeartRate       *int       `json:"heart_rate" db:"heart_rate"`
	Temperature     *float64   `json:"temperature" db:"temperature"`
	WeightKg        *float64   `json:"weight" db:"weight_kg"`
	HeightCm        *float64   `json:"height" db:"height_cm"`
	BMI             *float64   `json:"bmi" db:"bmi"`
	NextAppointment *time.Time `json:"next_appointment" db:"next_appointment"`

	// Populated by list queries joining the patients table.
	PatientName string `json:"patient_name,omitempty" db:"patient_name"`
}

// NewClinicalRecord builds a record freezing the practitioner's identity.
// Later edits to the user account never propagate into the record.
func NewClinicalRecord(patientID uuid.UUID, practitioner *User) *ClinicalRecord {
	return &ClinicalRecord{
		PatientID:                  patientID,
		PractitionerSnapshot:       NewPractitionerSnapshot(practitioner),
		PractitionerLicense:        practitioner.MedicalLicense,
		PractitionerSpecialization: practitioner.Specialization,
	}
}

// CreateClinicalRecordRequest represents clinical record creation parameters
type CreateClinicalRecordRequest struct {
	PatientID       uuid.UUID  `json:"patient_id" binding:"required"`
	VisitDate       time.Time  `json:"visit_date" binding:"required"`
	ReasonVisit     string     `json:"reason_visit" binding:"required"`
	Symptoms        *string    `json:"symptoms"`
	Diagnosis       string     `json:"diagnosis" binding:"required"`
	Treatment       *string    `json:"treatment"`
	Prescriptions   *string    `json:"prescriptions"`
	Notes           *string    `json:"observations"`
	BloodPressure   *string    `json:"blood_pressure"`
	HeartRate       *int       `json:"heart_rate"`
	Temperature     *float64   `json:"temperature"`
	WeightKg        *float64   `json:"weight"`
	HeightCm        *float64   `json:"height"`
	NextAppointment *time.Time `json:"next_appointment"`
}

// UpdateClinicalRecordRequest is a partial update over the clinical fields.
// There are intentionally no practitioner fields here.
type UpdateClinicalRecordRequest struct {
	VisitDate       *time.Time `json:"visit_date"`
	ReasonVisit     *string    `json:"reason_visit"`
	Symptoms        *string    `json:"symptoms"`
	Diagnosis       *string    `json:"diagnosis"`
	Treatment       *string    `json:"treatment"`
	Prescriptions   *string    `json:"prescriptions"`
	Notes           *string    `json:"observations"`
	BloodPressure   *string    `json:"blood_pressure"`
	HeartRate       *int       `json:"heart_rate"`
	Temperature     *float64   `json:"temperature"`
	WeightKg        *float64   `json:"weight"`
	HeightCm        *float64   `json:"height"`
	NextAppointment *time.Time `json:"next_appointment"`
}

// PatientRecordStats summarizes one patient's clinical history.
type PatientRecordStats struct {
	PatientName      string     `json:"patient_name"`
	TotalRecords     int        `json:"total_records"`
	LastVisit        *time.Time `json:"last_visit"`
	LastDiagnosis    *string    `json:"last_diagnosis"`
	LastPractitioner *string    `json:"last_practitioner"`
}
