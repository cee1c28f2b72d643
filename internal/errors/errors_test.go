package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{ErrUsernameTaken, http.StatusConflict, "USERNAME_TAKEN"},
		{ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{ErrMissingCredential, http.StatusUnauthorized, "MISSING_CREDENTIAL"},
		{ErrInvalidCredential, http.StatusUnauthorized, "INVALID_CREDENTIAL"},
		{ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{ErrUserNotFound, http.StatusNotFound, "NOT_FOUND"},
		{ErrArticleNotFound, http.StatusNotFound, "NOT_FOUND"},
		{errors.New("database exploded"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.wantCode, func(t *testing.T) {
			he := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, he.StatusCode)
			assert.Equal(t, tt.wantCode, he.Code)
		})
	}
}

func TestMapErrorToHTTP_WrappedSentinel(t *testing.T) {
	he := MapErrorToHTTP(fmt.Errorf("delete: %w", ErrForbidden))
	assert.Equal(t, http.StatusForbidden, he.StatusCode)
}

func TestMapErrorToHTTP_InternalHidesDetail(t *testing.T) {
	he := MapErrorToHTTP(errors.New("dial tcp: connection refused to db-host:3306"))
	assert.Equal(t, "internal server error", he.Message)
	assert.NotContains(t, he.Message, "db-host")
}

func TestMapErrorToHTTP_InvalidInputCarriesAllReasons(t *testing.T) {
	err := NewInvalidInput("username must be 3-20 characters", "password must be at least 6 characters")
	he := MapErrorToHTTP(err)

	assert.Equal(t, http.StatusBadRequest, he.StatusCode)
	assert.Equal(t, "INVALID_INPUT", he.Code)
	assert.Len(t, he.Reasons, 2)

	resp := he.ToErrorResponse()
	assert.Equal(t, he.Reasons, resp.Reasons)
}
