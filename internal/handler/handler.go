package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"linkboard/internal/auth"
	apperrors "linkboard/internal/errors"
)

// requestTimeout bounds store work per request; a timeout surfaces as an
// internal error rather than hanging the caller.
const requestTimeout = 5 * time.Second

// CurrentClaims returns the session claims the auth middleware attached
// to the request context.
func CurrentClaims(c echo.Context) (*auth.Claims, bool) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil, false
	}
	claims, ok := token.Claims.(*auth.Claims)
	return claims, ok
}

func requestContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), requestTimeout)
}

// invalidInputFromValidation converts validator failures into the
// invalid-input error kind, one reason per violated field.
func invalidInputFromValidation(err error) error {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		reasons := make([]string, 0, len(ve))
		for _, fe := range ve {
			reasons = append(reasons, fmt.Sprintf("%s is required", strings.ToLower(fe.Field())))
		}
		return apperrors.NewInvalidInput(reasons...)
	}
	return apperrors.NewInvalidInput(err.Error())
}

// respondError translates a domain error into the standard error
// response. Internal errors are logged with detail and surfaced
// generically.
func respondError(c echo.Context, err error) error {
	he := apperrors.MapErrorToHTTP(err)
	if he.StatusCode >= 500 {
		c.Logger().Errorf("internal error: %v", err)
	}
	return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
}
