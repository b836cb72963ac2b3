package auth

import (
	"context"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/repository"
	"github.com/clinicore/clinic-api/pkg/auth"
	apperrors "github.com/clinicore/clinic-api/pkg/errors"
	"github.com/clinicore/clinic-api/pkg/security"
)

type Servicer interface {
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	Verify(ctx context.Context, token string) (*model.User, error)
}

type Service struct {
	users  repository.UserRepository
	hasher security.PasswordHasher
	tokens auth.JWTService
}

func NewService(users repository.UserRepository, hasher security.PasswordHasher, tokens auth.JWTService) *Service {
	return &Service{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// Login authenticates by email and password. Unknown email and wrong
// password return the same error so the endpoint never confirms whether an
// account exists.
func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok && appErr.Code == apperrors.ErrNotFound {
			return nil, apperrors.InvalidCredentials()
		}
		return nil, err
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, apperrors.InvalidCredentials()
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return &model.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	}, nil
}

// Verify resolves a bearer token to its current user. The role is read fresh
// from storage, so demotions take effect without waiting for token expiry.
// A token whose account was deleted after issuance surfaces as NotFound from
// the lookup; tokens are never proactively revoked.
func (s *Service) Verify(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, apperrors.Unauthenticated("invalid or expired token")
	}
	return s.users.Get(ctx, claims.UserID)
}
