package user

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/repository"
	apperrors "github.com/clinicore/clinic-api/pkg/errors"
	"github.com/clinicore/clinic-api/pkg/security"
)

// recentWindow is the lookback for the "recent users" stat.
const recentWindow = 7 * 24 * time.Hour

type Servicer interface {
	CreateUser(ctx context.Context, req *model.CreateUserRequest) (*model.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req *model.UpdateUserRequest) (*model.User, error)
	DeleteUser(ctx context.Context, actorID, id uuid.UUID) error
	Stats(ctx context.Context) (*model.UserStats, error)
	Roles() []model.RoleOption
}

type Service struct {
	repo   repository.UserRepository
	hasher security.PasswordHasher
}

func NewService(repo repository.UserRepository, hasher security.PasswordHasher) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
	}
}

func (s *Service) CreateUser(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	if !req.Role.Valid() {
		return nil, apperrors.Validationf("invalid role: %s", req.Role)
	}
	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, apperrors.Conflict("email already registered")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		if err == security.ErrTooShort {
			return nil, apperrors.Validationf("password must be at least %d characters", security.MinPasswordLen)
		}
		return nil, apperrors.Internal(err)
	}

	user := &model.User{
		Email:          req.Email,
		FullName:       req.FullName,
		Role:           req.Role,
		PasswordHash:   hash,
		MedicalLicense: req.MedicalLicense,
		Specialization: req.Specialization,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListUsers(ctx context.Context) ([]*model.User, error) {
	return s.repo.List(ctx)
}

func (s *Service) UpdateUser(ctx context.Context, id uuid.UUID, req *model.UpdateUserRequest) (*model.User, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != user.Email {
		if _, err := s.repo.GetByEmail(ctx, *req.Email); err == nil {
			return nil, apperrors.Conflict("email already registered")
		}
		user.Email = *req.Email
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Role != nil {
		if !req.Role.Valid() {
			return nil, apperrors.Validationf("invalid role: %s", *req.Role)
		}
		user.Role = *req.Role
	}
	if req.Password != nil {
		hash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			if err == security.ErrTooShort {
				return nil, apperrors.Validationf("password must be at least %d characters", security.MinPasswordLen)
			}
			return nil, apperrors.Internal(err)
		}
		user.PasswordHash = hash
	}
	if req.MedicalLicense != nil {
		user.MedicalLicense = req.MedicalLicense
	}
	if req.Specialization != nil {
		user.Specialization = req.Specialization
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the account. Self-deletion is rejected so an admin
// cannot lock themselves out mid-session. Historical records keep their
// practitioner snapshots regardless.
func (s *Service) DeleteUser(ctx context.Context, actorID, id uuid.UUID) error {
	if actorID == id {
		return apperrors.Validation("cannot delete your own account")
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) Stats(ctx context.Context) (*model.UserStats, error) {
	return s.repo.Stats(ctx, time.Now().Add(-recentWindow))
}

// Roles returns the assignable roles with display labels.
func (s *Service) Roles() []model.RoleOption {
	labels := map[model.Role]string{
		model.RoleAdministrator: "Administrator",
		model.RolePhysician:     "Physician",
		model.RoleTechnician:    "Technician",
		model.RoleStaff:         "Staff",
		model.RoleUser:          "User",
	}
	options := make([]model.RoleOption, 0, len(model.AllRoles))
	for _, role := range model.AllRoles {
		options = append(options, model.RoleOption{Value: role, Label: labels[role]})
	}
	return options
}
