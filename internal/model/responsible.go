package model

import "github.com/google/uuid"

// Responsible links one user to an operational area, one-to-one.
type Responsible struct {
	Base
	UserID uuid.UUID `json:"user_id" db:"user_id"`
	Area   string    `json:"area" db:"area"`
}

type CreateResponsibleRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
	Area   string    `json:"area" binding:"required"`
}

type UpdateResponsibleRequest struct {
	UserID *uuid.UUID `json:"user_id"`
	Area   *string    `json:"area"`
}
