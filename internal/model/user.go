package model

// Role is a user's access role.
type Role string

const (
	RoleAdministrator Role = "administrator"
	RolePhysician     Role = "physician"
	RoleTechnician    Role = "technician"
	RoleStaff         Role = "staff"
	RoleUser          Role = "user"
)

// AllRoles lists the assignable roles.
var AllRoles = []Role{RoleAdministrator, RolePhysician, RoleTechnician, RoleStaff, RoleUser}

func (r Role) Valid() bool {
	for _, role := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

// CanPractice reports whether the role may be assigned as the practitioner of
// a clinical record or appointment.
func (r Role) CanPractice() bool {
	return r == RolePhysician || r == RoleAdministrator
}

// User represents a staff account. Deleting a user never touches historical
// clinical records or appointments; those carry their own snapshot of the
// practitioner.
type User struct {
	Base
	Email          string  `json:"mail" db:"email"`
	FullName       string  `json:"full_name" db:"full_name"`
	Role           Role    `json:"role" db:"role"`
	PasswordHash   string  `json:"-" db:"password_hash"`
	MedicalLicense *string `json:"medical_license,omitempty" db:"medical_license"`
	Specialization *string `json:"specialization,omitempty" db:"specialization"`
}

// CreateUserRequest represents user creation parameters
type CreateUserRequest struct {
	Email          string  `json:"mail" binding:"required,email"`
	FullName       string  `json:"full_name" binding:"required"`
	Role           Role    `json:"role" binding:"required,role"`
	Password       string  `json:"password" binding:"required,min=6"`
	MedicalLicense *string `json:"medical_license"`
	Specialization *string `json:"specialization"`
}

// UpdateUserRequest represents a partial user update
type UpdateUserRequest struct {
	Email          *string `json:"mail" binding:"omitempty,email"`
	FullName       *string `json:"full_name"`
	Role           *Role   `json:"role" binding:"omitempty,role"`
	Password       *string `json:"password" binding:"omitempty,min=6"`
	MedicalLicense *string `json:"medical_license"`
	Specialization *string `json:"specialization"`
}

// UserStats is the admin-only aggregate view over accounts.
type UserStats struct {
	TotalUsers       int          `json:"total_users"`
	RoleDistribution map[Role]int `json:"role_distribution"`
	RecentUsers      int          `json:"recent_users"`
}

// RoleOption is a role with its display label, for admin UIs.
type RoleOption struct {
	Value Role   `json:"value"`
	Label string `json:"label"`
}
