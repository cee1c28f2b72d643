package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"linkboard/internal/auth"
	apperrors "linkboard/internal/errors"
	"linkboard/internal/model"
)

// MockArticleService is a mock implementation of service.ArticleService.
type MockArticleService struct {
	mock.Mock
}

func (m *MockArticleService) List(ctx context.Context) ([]model.FeedItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FeedItem), args.Error(1)
}

func (m *MockArticleService) Post(ctx context.Context, userID uint, url, title string) (*model.Article, error) {
	args := m.Called(ctx, userID, url, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Article), args.Error(1)
}

func (m *MockArticleService) Delete(ctx context.Context, actorID, articleID uint) error {
	args := m.Called(ctx, actorID, articleID)
	return args.Error(0)
}

type testValidator struct {
	validate *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = &testValidator{validate: validator.New()}

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withClaims(c echo.Context, userID uint, username string) {
	c.Set("user", &jwt.Token{Claims: &auth.Claims{UserID: userID, Username: username}})
}

func statusOf(t *testing.T, err error) (int, apperrors.ErrorResponse) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected *echo.HTTPError, got %T", err)
	resp, ok := he.Message.(apperrors.ErrorResponse)
	require.True(t, ok, "expected ErrorResponse body, got %T", he.Message)
	return he.Code, resp
}

func TestArticleHandler_Create(t *testing.T) {
	svc := new(MockArticleService)
	created := &model.Article{ID: 1, UserID: 5, URL: "https://example.com"}
	svc.On("Post", mock.Anything, uint(5), "example.com", "").Return(created, nil)

	h := NewArticleHandler(svc)
	c, rec := newTestContext(t, http.MethodPost, "/api/articles", `{"url":"example.com"}`)
	withClaims(c, 5, "alice")

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var got model.Article
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, created.URL, got.URL)
	svc.AssertExpectations(t)
}

func TestArticleHandler_Create_MissingURL(t *testing.T) {
	svc := new(MockArticleService)
	h := NewArticleHandler(svc)

	c, _ := newTestContext(t, http.MethodPost, "/api/articles", `{}`)
	withClaims(c, 5, "alice")

	err := h.Create(c)
	code, resp := statusOf(t, err)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_INPUT", resp.Code)
	assert.NotEmpty(t, resp.Reasons)
	svc.AssertNotCalled(t, "Post")
}

func TestArticleHandler_Delete_StatusMapping(t *testing.T) {
	tests := []struct {
		name         string
		serviceError error
		wantStatus   int
		wantCode     string
	}{
		{"not found", apperrors.ErrArticleNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"forbidden", apperrors.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockArticleService)
			svc.On("Delete", mock.Anything, uint(5), uint(10)).Return(tt.serviceError)

			h := NewArticleHandler(svc)
			c, _ := newTestContext(t, http.MethodDelete, "/api/articles/10", "")
			c.SetParamNames("id")
			c.SetParamValues("10")
			withClaims(c, 5, "bob")

			err := h.Delete(c)
			code, resp := statusOf(t, err)
			assert.Equal(t, tt.wantStatus, code)
			assert.Equal(t, tt.wantCode, resp.Code)
		})
	}
}

func TestArticleHandler_Delete_Success(t *testing.T) {
	svc := new(MockArticleService)
	svc.On("Delete", mock.Anything, uint(1), uint(10)).Return(nil)

	h := NewArticleHandler(svc)
	c, rec := newTestContext(t, http.MethodDelete, "/api/articles/10", "")
	c.SetParamNames("id")
	c.SetParamValues("10")
	withClaims(c, 1, "alice")

	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestArticleHandler_Delete_BadID(t *testing.T) {
	svc := new(MockArticleService)
	h := NewArticleHandler(svc)

	c, _ := newTestContext(t, http.MethodDelete, "/api/articles/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")
	withClaims(c, 1, "alice")

	err := h.Delete(c)
	code, resp := statusOf(t, err)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_INPUT", resp.Code)
	svc.AssertNotCalled(t, "Delete")
}

func TestArticleHandler_List(t *testing.T) {
	feed := []model.FeedItem{
		{ID: 2, URL: "https://b.example", Username: "bob", UserID: 2},
		{ID: 1, URL: "https://a.example", Username: "alice", UserID: 1},
	}
	svc := new(MockArticleService)
	svc.On("List", mock.Anything).Return(feed, nil)

	h := NewArticleHandler(svc)
	c, rec := newTestContext(t, http.MethodGet, "/api/articles", "")

	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var got []model.FeedItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "bob", got[0].Username)
}
