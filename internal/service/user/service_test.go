package user

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/clinic-api/internal/model"
	apperrors "github.com/clinicore/clinic-api/pkg/errors"
	"github.com/clinicore/clinic-api/pkg/security"
)

type fakeUserRepo struct {
	users      map[uuid.UUID]*model.User
	statsSince time.Time
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *model.User) error {
	u.ID = uuid.New()
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.NotFound("user")
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.NotFound("user")
}

func (f *fakeUserRepo) List(ctx context.Context) ([]*model.User, error) {
	var out []*model.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, u *model.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return apperrors.NotFound("user")
	}
	copied := *u
	f.users[u.ID] = &copied
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.users[id]; !ok {
		return apperrors.NotFound("user")
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) Stats(ctx context.Context, since time.Time) (*model.UserStats, error) {
	f.statsSince = since
	return &model.UserStats{TotalUsers: len(f.users)}, nil
}

func newService() (*Service, *fakeUserRepo) {
	repo := newFakeUserRepo()
	return NewService(repo, security.NewBcryptHasher(4)), repo
}

func TestCreateUser(t *testing.T) {
	svc, _ := newService()

	user, err := svc.CreateUser(context.Background(), &model.CreateUserRequest{
		Email:    "doc@clinic.test",
		FullName: "Dr. Ada",
		Role:     model.RolePhysician,
		Password: "secret-1",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.NotEqual(t, "secret-1", user.PasswordHash)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc, _ := newService()

	req := &model.CreateUserRequest{
		Email:    "doc@clinic.test",
		FullName: "Dr. Ada",
		Role:     model.RolePhysician,
		Password: "secret-1",
	}
	_, err := svc.CreateUser(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.CreateUser(context.Background(), req)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
}

func TestCreateUserShortPassword(t *testing.T) {
	svc, _ := newService()

	_, err := svc.CreateUser(context.Background(), &model.CreateUserRequest{
		Email:    "doc@clinic.test",
		FullName: "Dr. Ada",
		Role:     model.RolePhysician,
		Password: "short",
	})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)
}

func TestUpdateUserRole(t *testing.T) {
	svc, _ := newService()

	user, err := svc.CreateUser(context.Background(), &model.CreateUserRequest{
		Email:    "doc@clinic.test",
		FullName: "Dr. Ada",
		Role:     model.RolePhysician,
		Password: "secret-1",
	})
	require.NoError(t, err)

	admin := model.RoleAdministrator
	updated, err := svc.UpdateUser(context.Background(), user.ID, &model.UpdateUserRequest{Role: &admin})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdministrator, updated.Role)

	bogus := model.Role("superuser")
	_, err = svc.UpdateUser(context.Background(), user.ID, &model.UpdateUserRequest{Role: &bogus})
	require.Error(t, err)
}

func TestDeleteUserSelf(t *testing.T) {
	svc, _ := newService()

	user, err := svc.CreateUser(context.Background(), &model.CreateUserRequest{
		Email:    "admin@clinic.test",
		FullName: "Admin",
		Role:     model.RoleAdministrator,
		Password: "secret-1",
	})
	require.NoError(t, err)

	err = svc.DeleteUser(context.Background(), user.ID, user.ID)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)

	other := uuid.New()
	err = svc.DeleteUser(context.Background(), other, user.ID)
	require.NoError(t, err)
}

func TestStatsRecentWindow(t *testing.T) {
	svc, repo := newService()

	_, err := svc.Stats(context.Background())
	require.NoError(t, err)

	window := time.Since(repo.statsSince)
	assert.InDelta(t, (7 * 24 * time.Hour).Seconds(), window.Seconds(), 5,
		"recent users should cover the last 7 days")
}

func TestRoles(t *testing.T) {
	svc, _ := newService()

	roles := svc.Roles()
	require.Len(t, roles, len(model.AllRoles))
	assert.Equal(t, model.RoleAdministrator, roles[0].Value)
	assert.Equal(t, "Administrator", roles[0].Label)
}
