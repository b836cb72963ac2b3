package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/clinicore/clinic-api/internal/model"
	apperrors "github.com/clinicore/clinic-api/pkg/errors"
)

type fakeAuthService struct {
	user *model.User
}

func (f *fakeAuthService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	return nil, apperrors.InvalidCredentials()
}

func (f *fakeAuthService) Verify(ctx context.Context, token string) (*model.User, error) {
	if token != "good-token" {
		return nil, apperrors.Unauthenticated("invalid or expired token")
	}
	return f.user, nil
}

func newTestRouter(user *model.User, roles ...model.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	m := NewAuthMiddleware(&fakeAuthService{user: user})

	r := gin.New()
	group := r.Group("/", m.Authenticate())
	if len(roles) > 0 {
		group.Use(m.RequireRole(roles...))
	}
	group.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, CurrentUser(c).FullName)
	})
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func testUser(role model.Role) *model.User {
	return &model.User{
		Base:     model.Base{ID: uuid.New()},
		FullName: "Dr. Ada",
		Role:     role,
	}
}

func TestAuthenticate(t *testing.T) {
	r := newTestRouter(testUser(model.RolePhysician))

	w := doRequest(r, "Bearer good-token")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Dr. Ada", w.Body.String())
}

func TestAuthenticateMissingHeader(t *testing.T) {
	r := newTestRouter(testUser(model.RolePhysician))

	w := doRequest(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	r := newTestRouter(testUser(model.RolePhysician))

	w := doRequest(r, "Basic abc123")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateBadToken(t *testing.T) {
	r := newTestRouter(testUser(model.RolePhysician))

	w := doRequest(r, "Bearer bad-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	r := newTestRouter(testUser(model.RoleStaff), model.RoleAdministrator, model.RolePhysician)

	w := doRequest(r, "Bearer good-token")
	assert.Equal(t, http.StatusForbidden, w.Code)

	r = newTestRouter(testUser(model.RolePhysician), model.RoleAdministrator, model.RolePhysician)
	w = doRequest(r, "Bearer good-token")
	assert.Equal(t, http.StatusOK, w.Code)
}
