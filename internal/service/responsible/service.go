package responsible

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/repository"
	apperrors "github.com/clinicore/clinic-api/pkg/errors"
)

type Servicer interface {
	CreateResponsible(ctx context.Context, req *model.CreateResponsibleRequest) (*model.Responsible, error)
	GetResponsible(ctx context.Context, id uuid.UUID) (*model.Responsible, error)
	ListResponsibles(ctx context.Context) ([]*model.Responsible, error)
	UpdateResponsible(ctx context.Context, id uuid.UUID, req *model.UpdateResponsibleRequest) (*model.Responsible, error)
	DeleteResponsible(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo  repository.ResponsibleRepository
	users repository.UserRepository
}

func NewService(repo repository.ResponsibleRepository, users repository.UserRepository) *Service {
	return &Service{
		repo:  repo,
		users: users,
	}
}

func (s *Service) CreateResponsible(ctx context.Context, req *model.CreateResponsibleRequest) (*model.Responsible, error) {
	if _, err := s.users.Get(ctx, req.UserID); err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Validation("the specified user does not exist")
		}
		return nil, err
	}
	if err := s.requireUnassigned(ctx, req.UserID); err != nil {
		return nil, err
	}

	responsible := &model.Responsible{
		UserID: req.UserID,
		Area:   req.Area,
	}
	if err := s.repo.Create(ctx, responsible); err != nil {
		return nil, err
	}
	return responsible, nil
}

func (s *Service) GetResponsible(ctx context.Context, id uuid.UUID) (*model.Responsible, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListResponsibles(ctx context.Context) ([]*model.Responsible, error) {
	return s.repo.List(ctx)
}

func (s *Service) UpdateResponsible(ctx context.Context, id uuid.UUID, req *model.UpdateResponsibleRequest) (*model.Responsible, error) {
	responsible, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.UserID != nil && *req.UserID != responsible.UserID {
		if _, err := s.users.Get(ctx, *req.UserID); err != nil {
			if apperrors.IsNotFound(err) {
				return nil, apperrors.Validation("the specified user does not exist")
			}
			return nil, err
		}
		if err := s.requireUnassigned(ctx, *req.UserID); err != nil {
			return nil, err
		}
		responsible.UserID = *req.UserID
	}
	if req.Area != nil {
		responsible.Area = *req.Area
	}

	if err := s.repo.Update(ctx, responsible); err != nil {
		return nil, err
	}
	return responsible, nil
}

// DeleteResponsible removes the responsible; its tasks go with it via
// schema cascade.
func (s *Service) DeleteResponsible(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// requireUnassigned enforces the one-to-one user link before the unique
// constraint turns it into an opaque 500.
func (s *Service) requireUnassigned(ctx context.Context, userID uuid.UUID) error {
	existing, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	for _, r := range existing {
		if r.UserID == userID {
			return apperrors.Conflict("user is already a responsible")
		}
	}
	return nil
}
