package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"linkboard/internal/auth"
	"linkboard/internal/config"
	apperrors "linkboard/internal/errors"
	"linkboard/internal/handler"
	"linkboard/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	articleHandler *handler.ArticleHandler,
	authService service.AuthService,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api", middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(20))))

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/articles", articleHandler.List)

	// Secured routes (require a valid session token)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		TokenLookup:  "header:" + echo.HeaderAuthorization + ":Bearer ",
		ErrorHandler: guardError,
	}))

	secured.GET("/me", authHandler.Me)
	secured.POST("/articles", articleHandler.Create)
	secured.DELETE("/articles/:id", articleHandler.Delete)

	// Admin routes: the base guard plus an admin check
	admin := secured.Group("/admin", requireAdmin(authService))
	admin.GET("/users", authHandler.ListUsers)
}

// guardError distinguishes an absent bearer credential from one that
// fails verification. Both end the request; no downstream handler runs.
func guardError(c echo.Context, _ error) error {
	kind := apperrors.ErrInvalidCredential
	if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
		kind = apperrors.ErrMissingCredential
	}
	he := apperrors.MapErrorToHTTP(kind)
	return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
}

// requireAdmin layers an admin check on top of the token guard: it loads
// the user behind the verified claims and rejects non-admins.
func requireAdmin(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := handler.CurrentClaims(c)
			if !ok {
				he := apperrors.MapErrorToHTTP(apperrors.ErrInvalidCredential)
				return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
			}

			user, err := authService.GetUser(c.Request().Context(), claims.UserID)
			if err != nil || !user.IsAdmin {
				he := apperrors.MapErrorToHTTP(apperrors.ErrForbidden)
				return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
			}

			return next(c)
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
