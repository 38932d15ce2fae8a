package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"courseconnect/internal/config"
	"courseconnect/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	accountHandler *handler.AccountHandler,
	enrollmentHandler *handler.EnrollmentHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	// Allow-all CORS, as the original dev setup; tighten for production.
	e.Use(middleware.CORS())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/register", accountHandler.Register)
	api.POST("/login", accountHandler.Login)
	api.GET("/courses", enrollmentHandler.ListCatalog)

	// The enrollment routes stay public: the client session, not the server,
	// decides who may manage which list.
	api.GET("/students/:id/courses", enrollmentHandler.GetStudentCourses)
	api.PUT("/students/:id/courses", enrollmentHandler.ReplaceStudentCourses)

	// Secured routes (require a session token from login)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
	}))
	secured.GET("/me", accountHandler.Me)

	// Static front-end, when one is deployed alongside the API.
	if cfg.StaticDir != "" {
		e.Use(middleware.StaticWithConfig(middleware.StaticConfig{
			Root:  cfg.StaticDir,
			Index: "index.html",
			HTML5: true,
		}))
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
