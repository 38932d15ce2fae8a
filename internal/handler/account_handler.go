package handler

import (
	"net/http"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"courseconnect/internal/auth"
	apperrors "courseconnect/internal/errors"
	"courseconnect/internal/model"
	"courseconnect/internal/service"
)

// AccountHandler handles registration, login and session introspection.
type AccountHandler struct {
	accountService service.AccountService
	tokenStore     auth.TokenStoreInterface
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(accountService service.AccountService, tokenStore auth.TokenStoreInterface) *AccountHandler {
	return &AccountHandler{accountService: accountService, tokenStore: tokenStore}
}

// RegisterRequest represents a registration request.
type RegisterRequest struct {
	FullName  string `json:"fullName" validate:"required"`
	Email     string `json:"email" validate:"required"`
	StudentID string `json:"studentId" validate:"required"`
	Password  string `json:"password" validate:"required"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterResponse is the public view of a newly created student.
type RegisterResponse struct {
	ID        string `json:"id"`
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	StudentID string `json:"studentId"`
}

// LoginResponse is the profile returned on successful login. Token is an
// additive field backing the /api/me route; clients that ignore it lose
// nothing.
type LoginResponse struct {
	ID        string           `json:"id"`
	FullName  string           `json:"fullName"`
	Email     string           `json:"email"`
	StudentID string           `json:"studentId"`
	Courses   model.CourseList `json:"courses"`
	Token     string           `json:"token,omitempty"`
}

// Register godoc
// @Summary Register a new student
// @Tags account
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} RegisterResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /register [post]
func (h *AccountHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing required fields.")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing required fields.")
	}

	student, err := h.accountService.Register(c.Request().Context(), req.FullName, req.Email, req.StudentID, req.Password)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}

	return c.JSON(http.StatusCreated, RegisterResponse{
		ID:        student.ID.String(),
		FullName:  student.FullName,
		Email:     student.Email,
		StudentID: student.StudentID,
	})
}

// Login godoc
// @Summary Login a student
// @Tags account
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AccountHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Email and password are required.")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Email and password are required.")
	}

	student, token, err := h.accountService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}

	courses := student.Courses
	if courses == nil {
		courses = model.CourseList{}
	}

	return c.JSON(http.StatusOK, LoginResponse{
		ID:        student.ID.String(),
		FullName:  student.FullName,
		Email:     student.Email,
		StudentID: student.StudentID,
		Courses:   courses,
		Token:     token,
	})
}

// MeResponse describes the authenticated session.
type MeResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Me godoc
// @Summary Introspect the current session token
// @Tags account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MeResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /me [get]
func (h *AccountHandler) Me(c echo.Context) error {
	token, ok := c.Get("user").(*jwtv5.Token)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid session token.")
	}
	claims, ok := token.Claims.(jwtv5.MapClaims)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid session token.")
	}

	jti, _ := claims["jti"].(string)
	if jti == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid session token.")
	}

	// The token must have been issued by a login, not merely be well signed.
	studentID, email, err := h.tokenStore.GetSessionToken(c.Request().Context(), jti)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid session token.")
	}

	return c.JSON(http.StatusOK, MeResponse{ID: studentID, Email: email})
}
