package task

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/repository"
	apperrors "github.com/clinicore/clinic-api/pkg/errors"
)

type Servicer interface {
	CreateTask(ctx context.Context, req *model.CreateTaskRequest) (*model.Task, error)
	GetTask(ctx context.Context, id uuid.UUID) (*model.Task, error)
	ListTasks(ctx context.Context, filters *model.TaskFilters) ([]*model.Task, error)
	UpdateTask(ctx context.Context, id uuid.UUID, req *model.UpdateTaskRequest) (*model.Task, error)
	DeleteTask(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo         repository.TaskRepository
	responsibles repository.ResponsibleRepository
}

func NewService(repo repository.TaskRepository, responsibles repository.ResponsibleRepository) *Service {
	return &Service{
		repo:         repo,
		responsibles: responsibles,
	}
}

func (s *Service) CreateTask(ctx context.Context, req *model.CreateTaskRequest) (*model.Task, error) {
	if _, err := s.responsibles.Get(ctx, req.ResponsibleID); err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Validation("the specified responsible does not exist")
		}
		return nil, err
	}

	task := &model.Task{
		Title:         req.Title,
		Done:          req.Done,
		ResponsibleID: req.ResponsibleID,
	}
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *Service) GetTask(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListTasks(ctx context.Context, filters *model.TaskFilters) ([]*model.Task, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) UpdateTask(ctx context.Context, id uuid.UUID, req *model.UpdateTaskRequest) (*model.Task, error) {
	task, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Done != nil {
		task.Done = *req.Done
	}
	if req.ResponsibleID != nil {
		if _, err := s.responsibles.Get(ctx, *req.ResponsibleID); err != nil {
			if apperrors.IsNotFound(err) {
				return nil, apperrors.Validation("the specified responsible does not exist")
			}
			return nil, err
		}
		task.ResponsibleID = *req.ResponsibleID
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *Service) DeleteTask(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
