package model

import "time"

// DashboardStats is the read-only aggregate view served by /dashboard/stats.
type DashboardStats struct {
	GeneralStats       GeneralStats       `json:"general_stats"`
	TodayStats         TodayStats         `json:"today_stats"`
	RecentActivity     RecentActivity     `json:"recent_activity"`
	GenderDistribution map[string]int     `json:"gender_distribution"`
	UsersByRole        map[Role]int       `json:"users_by_role"`
	TasksStatus        TaskCompletionRate `json:"tasks_status"`
}

type GeneralStats struct {
	TotalPatients        int `json:"total_patients"`
	TotalClinicalRecords int `json:"total_clinical_records"`
	TotalUsers           int `json:"total_users"`
	TotalTasks           int `json:"total_tasks"`
}

type TodayStats struct {
	NewPatients int `json:"new_patients"`
	NewRecords  int `json:"new_records"`
}

type RecentActivity struct {
	RecentPatients []RecentPatient `json:"recent_patients"`
	RecentRecords  []RecentRecord  `json:"recent_records"`
}

type RecentPatient struct {
	ID        string    `json:"id" db:"id"`
	FullName  string    `json:"full_name" db:"full_name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type RecentRecord struct {
	ID               string    `json:"id" db:"id"`
	PatientName      string    `json:"patient_name" db:"patient_name"`
	PractitionerName string    `json:"practitioner_name" db:"practitioner_name"`
	VisitDate        time.Time `json:"visit_date" db:"visit_date"`
}

type TaskCompletionRate struct {
	CompletionRate float64 `json:"completion_rate"`
}
