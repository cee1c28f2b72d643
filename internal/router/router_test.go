package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkboard/internal/auth"
	"linkboard/internal/config"
	apperrors "linkboard/internal/errors"
	"linkboard/internal/model"
)

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "test-secret"}
}

type stubAuthService struct {
	user *model.User
	err  error
}

func (s *stubAuthService) Register(context.Context, string, string) (*model.User, string, error) {
	return nil, "", nil
}

func (s *stubAuthService) Login(context.Context, string, string) (*model.User, string, error) {
	return nil, "", nil
}

func (s *stubAuthService) GetUser(context.Context, uint) (*model.User, error) {
	return s.user, s.err
}

func (s *stubAuthService) ListUsers(context.Context) ([]model.User, error) {
	return nil, nil
}

func guardRequest(t *testing.T, authorization string) *echo.HTTPError {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	err := guardError(c, apperrors.ErrInvalidCredential)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	return he
}

func TestGuardError_MissingVersusInvalid(t *testing.T) {
	missing := guardRequest(t, "")
	assert.Equal(t, http.StatusUnauthorized, missing.Code)
	assert.Equal(t, "MISSING_CREDENTIAL", missing.Message.(apperrors.ErrorResponse).Code)

	invalid := guardRequest(t, "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, invalid.Code)
	assert.Equal(t, "INVALID_CREDENTIAL", invalid.Message.(apperrors.ErrorResponse).Code)
}

func adminRequest(t *testing.T, svc *stubAuthService, claims *auth.Claims) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if claims != nil {
		c.Set("user", &jwt.Token{Claims: claims})
	}

	next := func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"ok": "true"})
	}
	return rec, requireAdmin(svc)(next)(c)
}

func TestRequireAdmin(t *testing.T) {
	claims := &auth.Claims{UserID: 1, Username: "admin"}

	t.Run("admin passes", func(t *testing.T) {
		svc := &stubAuthService{user: &model.User{ID: 1, IsAdmin: true}}
		rec, err := adminRequest(t, svc, claims)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("non-admin is forbidden", func(t *testing.T) {
		svc := &stubAuthService{user: &model.User{ID: 1}}
		_, err := adminRequest(t, svc, claims)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusForbidden, he.Code)
	})

	t.Run("deleted user is forbidden", func(t *testing.T) {
		svc := &stubAuthService{err: apperrors.ErrUserNotFound}
		_, err := adminRequest(t, svc, claims)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusForbidden, he.Code)
	})

	t.Run("missing claims rejected", func(t *testing.T) {
		svc := &stubAuthService{user: &model.User{ID: 1, IsAdmin: true}}
		_, err := adminRequest(t, svc, nil)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, he.Code)
	})
}

func TestCustomValidator(t *testing.T) {
	e := echo.New()
	Register(e, testConfig(), nil, nil, &stubAuthService{})

	type payload struct {
		Name string `validate:"required"`
	}
	assert.Error(t, e.Validator.Validate(&payload{}))
	assert.NoError(t, e.Validator.Validate(&payload{Name: "x"}))
}

func TestHealthz(t *testing.T) {
	e := echo.New()
	Register(e, testConfig(), nil, nil, &stubAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestSecuredRoutes_MissingToken(t *testing.T) {
	e := echo.New()
	Register(e, testConfig(), nil, nil, &stubAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "MISSING_CREDENTIAL", resp.Code)
}
