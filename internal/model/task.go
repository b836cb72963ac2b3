package model

import "github.com/google/uuid"

// Task is a work item owned by a responsible.
type Task struct {
	Base
	Title         string    `json:"title" db:"title"`
	Done          bool      `json:"done" db:"done"`
	ResponsibleID uuid.UUID `json:"responsible_id" db:"responsible_id"`
}

type CreateTaskRequest struct {
	Title         string    `json:"title" binding:"required"`
	Done          bool      `json:"done"`
	ResponsibleID uuid.UUID `json:"responsible_id" binding:"required"`
}

type UpdateTaskRequest struct {
	Title         *string    `json:"title"`
	Done          *bool      `json:"done"`
	ResponsibleID *uuid.UUID `json:"responsible_id"`
}

// TaskFilters narrows task listings.
type TaskFilters struct {
	ResponsibleID *uuid.UUID
	Done          *bool
}
