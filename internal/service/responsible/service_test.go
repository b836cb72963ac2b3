package responsible

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/clinic-api/internal/model"
	apperrors "github.com/clinicore/clinic-api/pkg/errors"
)

type fakeResponsibleRepo struct {
	responsibles map[uuid.UUID]*model.Responsible
}

func newFakeResponsibleRepo() *fakeResponsibleRepo {
	return &fakeResponsibleRepo{responsibles: make(map[uuid.UUID]*model.Responsible)}
}

func (f *fakeResponsibleRepo) Create(ctx context.Context, r *model.Responsible) error {
	r.ID = uuid.New()
	copied := *r
	f.responsibles[r.ID] = &copied
	return nil
}

func (f *fakeResponsibleRepo) Get(ctx context.Context, id uuid.UUID) (*model.Responsible, error) {
	r, ok := f.responsibles[id]
	if !ok {
		return nil, apperrors.NotFound("responsible")
	}
	copied := *r
	return &copied, nil
}

func (f *fakeResponsibleRepo) List(ctx context.Context) ([]*model.Responsible, error) {
	var out []*model.Responsible
	for _, r := range f.responsibles {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeResponsibleRepo) Update(ctx context.Context, r *model.Responsible) error {
	if _, ok := f.responsibles[r.ID]; !ok {
		return apperrors.NotFound("responsible")
	}
	copied := *r
	f.responsibles[r.ID] = &copied
	return nil
}

func (f *fakeResponsibleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.responsibles[id]; !ok {
		return apperrors.NotFound("responsible")
	}
	delete(f.responsibles, id)
	return nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u *model.User) error { return nil }
func (f *fakeUserRepo) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.NotFound("user")
	}
	return u, nil
}
func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return nil, apperrors.NotFound("user")
}
func (f *fakeUserRepo) List(ctx context.Context) ([]*model.User, error) { return nil, nil }
func (f *fakeUserRepo) Update(ctx context.Context, u *model.User) error { return nil }
func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error  { return nil }
func (f *fakeUserRepo) Stats(ctx context.Context, since time.Time) (*model.UserStats, error) {
	return nil, nil
}

func newService() (*Service, *model.User, *model.User) {
	first := &model.User{Base: model.Base{ID: uuid.New()}, Email: "a@clinic.test", Role: model.RoleStaff}
	second := &model.User{Base: model.Base{ID: uuid.New()}, Email: "b@clinic.test", Role: model.RoleStaff}
	users := &fakeUserRepo{users: map[uuid.UUID]*model.User{first.ID: first, second.ID: second}}
	return NewService(newFakeResponsibleRepo(), users), first, second
}

func TestCreateResponsible(t *testing.T) {
	svc, user, _ := newService()

	responsible, err := svc.CreateResponsible(context.Background(), &model.CreateResponsibleRequest{
		UserID: user.ID,
		Area:   "laboratory",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, responsible.ID)
	assert.Equal(t, user.ID, responsible.UserID)
}

func TestCreateResponsibleUnknownUser(t *testing.T) {
	svc, _, _ := newService()

	// A bad user reference on create is a validation failure, not a
	// missing resource.
	_, err := svc.CreateResponsible(context.Background(), &model.CreateResponsibleRequest{
		UserID: uuid.New(),
		Area:   "laboratory",
	})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)
}

func TestCreateResponsibleAlreadyAssigned(t *testing.T) {
	svc, user, _ := newService()

	_, err := svc.CreateResponsible(context.Background(), &model.CreateResponsibleRequest{
		UserID: user.ID,
		Area:   "laboratory",
	})
	require.NoError(t, err)

	_, err = svc.CreateResponsible(context.Background(), &model.CreateResponsibleRequest{
		UserID: user.ID,
		Area:   "pharmacy",
	})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
}

func TestUpdateResponsibleReassignUnknownUser(t *testing.T) {
	svc, user, _ := newService()

	responsible, err := svc.CreateResponsible(context.Background(), &model.CreateResponsibleRequest{
		UserID: user.ID,
		Area:   "laboratory",
	})
	require.NoError(t, err)

	bogus := uuid.New()
	_, err = svc.UpdateResponsible(context.Background(), responsible.ID, &model.UpdateResponsibleRequest{UserID: &bogus})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)
}

func TestUpdateResponsibleReassign(t *testing.T) {
	svc, user, other := newService()

	responsible, err := svc.CreateResponsible(context.Background(), &model.CreateResponsibleRequest{
		UserID: user.ID,
		Area:   "laboratory",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateResponsible(context.Background(), responsible.ID, &model.UpdateResponsibleRequest{UserID: &other.ID})
	require.NoError(t, err)
	assert.Equal(t, other.ID, updated.UserID)
}
