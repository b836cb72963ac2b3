package task

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/clinic-api/internal/model"
	apperrors "github.com/clinicore/clinic-api/pkg/errors"
)

type fakeTaskRepo struct {
	tasks map[uuid.UUID]*model.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[uuid.UUID]*model.Task)}
}

func (f *fakeTaskRepo) Create(ctx context.Context, t *model.Task) error {
	t.ID = uuid.New()
	copied := *t
	f.tasks[t.ID] = &copied
	return nil
}

func (f *fakeTaskRepo) Get(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, apperrors.NotFound("task")
	}
	copied := *t
	return &copied, nil
}

func (f *fakeTaskRepo) List(ctx context.Context, filters *model.TaskFilters) ([]*model.Task, error) {
	var out []*model.Task
	for _, t := range f.tasks {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTaskRepo) Update(ctx context.Context, t *model.Task) error {
	if _, ok := f.tasks[t.ID]; !ok {
		return apperrors.NotFound("task")
	}
	copied := *t
	f.tasks[t.ID] = &copied
	return nil
}

func (f *fakeTaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.tasks[id]; !ok {
		return apperrors.NotFound("task")
	}
	delete(f.tasks, id)
	return nil
}

type fakeResponsibleRepo struct {
	responsibles map[uuid.UUID]*model.Responsible
}

func (f *fakeResponsibleRepo) Create(ctx context.Context, r *model.Responsible) error { return nil }
func (f *fakeResponsibleRepo) Get(ctx context.Context, id uuid.UUID) (*model.Responsible, error) {
	r, ok := f.responsibles[id]
	if !ok {
		return nil, apperrors.NotFound("responsible")
	}
	return r, nil
}
func (f *fakeResponsibleRepo) List(ctx context.Context) ([]*model.Responsible, error) {
	return nil, nil
}
func (f *fakeResponsibleRepo) Update(ctx context.Context, r *model.Responsible) error { return nil }
func (f *fakeResponsibleRepo) Delete(ctx context.Context, id uuid.UUID) error         { return nil }

func newService() (*Service, *model.Responsible) {
	responsible := &model.Responsible{
		Base:   model.Base{ID: uuid.New()},
		UserID: uuid.New(),
		Area:   "laboratory",
	}
	repo := newFakeTaskRepo()
	responsibles := &fakeResponsibleRepo{
		responsibles: map[uuid.UUID]*model.Responsible{responsible.ID: responsible},
	}
	return NewService(repo, responsibles), responsible
}

func TestCreateTask(t *testing.T) {
	svc, responsible := newService()

	task, err := svc.CreateTask(context.Background(), &model.CreateTaskRequest{
		Title:         "calibrate centrifuge",
		ResponsibleID: responsible.ID,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, task.ID)
	assert.False(t, task.Done)
}

func TestCreateTaskUnknownResponsible(t *testing.T) {
	svc, _ := newService()

	// The task is what the client is creating; a bad responsible reference
	// is a validation failure, not a missing resource.
	_, err := svc.CreateTask(context.Background(), &model.CreateTaskRequest{
		Title:         "calibrate centrifuge",
		ResponsibleID: uuid.New(),
	})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)
}

func TestUpdateTaskReassignUnknownResponsible(t *testing.T) {
	svc, responsible := newService()

	task, err := svc.CreateTask(context.Background(), &model.CreateTaskRequest{
		Title:         "calibrate centrifuge",
		ResponsibleID: responsible.ID,
	})
	require.NoError(t, err)

	bogus := uuid.New()
	_, err = svc.UpdateTask(context.Background(), task.ID, &model.UpdateTaskRequest{ResponsibleID: &bogus})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)
}

func TestUpdateTaskDone(t *testing.T) {
	svc, responsible := newService()

	task, err := svc.CreateTask(context.Background(), &model.CreateTaskRequest{
		Title:         "calibrate centrifuge",
		ResponsibleID: responsible.ID,
	})
	require.NoError(t, err)

	done := true
	updated, err := svc.UpdateTask(context.Background(), task.ID, &model.UpdateTaskRequest{Done: &done})
	require.NoError(t, err)
	assert.True(t, updated.Done)
}
