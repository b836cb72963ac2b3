package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/pkg/auth"
	apperrors "github.com/clinicore/clinic-api/pkg/errors"
	"github.com/clinicore/clinic-api/pkg/security"
)

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
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.NotFound("user")
}
func (f *fakeUserRepo) List(ctx context.Context) ([]*model.User, error) { return nil, nil }
func (f *fakeUserRepo) Update(ctx context.Context, u *model.User) error { return nil }
func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.users, id)
	return nil
}
func (f *fakeUserRepo) Stats(ctx context.Context, since time.Time) (*model.UserStats, error) {
	return nil, nil
}

func setup(t *testing.T) (*Service, *model.User) {
	t.Helper()

	hasher := security.NewBcryptHasher(4)
	hash, err := hasher.Hash("correct-horse")
	require.NoError(t, err)

	user := &model.User{
		Base:         model.Base{ID: uuid.New()},
		Email:        "doc@clinic.test",
		FullName:     "Dr. Ada",
		Role:         model.RolePhysician,
		PasswordHash: hash,
	}
	repo := &fakeUserRepo{users: map[uuid.UUID]*model.User{user.ID: user}}
	tokens := auth.NewJWTService("test-secret", time.Hour)
	return NewService(repo, hasher, tokens), user
}

func TestLogin(t *testing.T) {
	svc, user := setup(t)

	resp, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "doc@clinic.test",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, user.ID, resp.User.ID)
}

func TestLoginUniformFailure(t *testing.T) {
	svc, _ := setup(t)

	// Unknown account and wrong password must be indistinguishable.
	_, unknownErr := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "nobody@clinic.test",
		Password: "whatever",
	})
	require.Error(t, unknownErr)

	_, wrongErr := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "doc@clinic.test",
		Password: "wrong",
	})
	require.Error(t, wrongErr)

	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
	appErr, ok := apperrors.AsAppError(unknownErr)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrInvalidCredentials, appErr.Code)
}

func TestVerify(t *testing.T) {
	svc, user := setup(t)

	resp, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "doc@clinic.test",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	verified, err := svc.Verify(context.Background(), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, verified.ID)

	_, err = svc.Verify(context.Background(), "not-a-token")
	require.Error(t, err)
}

func TestVerifyDeletedAccount(t *testing.T) {
	svc, user := setup(t)

	resp, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "doc@clinic.test",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	require.NoError(t, svc.users.Delete(context.Background(), user.ID))

	_, err = svc.Verify(context.Background(), resp.AccessToken)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}
