package handler

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "courseconnect/internal/errors"
	"courseconnect/internal/model"
	"courseconnect/internal/service"
)

// EnrollmentHandler handles catalog and enrollment endpoints.
type EnrollmentHandler struct {
	enrollmentService service.EnrollmentService
}

// NewEnrollmentHandler creates a new enrollment handler.
func NewEnrollmentHandler(enrollmentService service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentService: enrollmentService}
}

// ReplaceCoursesRequest carries the full replacement list. Courses is kept
// raw so a non-array value can be rejected before any decode into Course.
type ReplaceCoursesRequest struct {
	Courses json.RawMessage `json:"courses"`
}

// ListCatalog godoc
// @Summary List the course catalog
// @Tags courses
// @Produce json
// @Success 200 {array} model.Course
// @Router /courses [get]
func (h *EnrollmentHandler) ListCatalog(c echo.Context) error {
	return c.JSON(http.StatusOK, h.enrollmentService.Catalog(c.Request().Context()))
}

// GetStudentCourses godoc
// @Summary Get a student's enrolled courses
// @Tags courses
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {array} model.Course
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /students/{id}/courses [get]
func (h *EnrollmentHandler) GetStudentCourses(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Student not found.")
	}

	courses, err := h.enrollmentService.GetEnrollment(c.Request().Context(), id)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}

	return c.JSON(http.StatusOK, courses)
}

// ReplaceStudentCourses godoc
// @Summary Replace a student's enrolled courses
// @Tags courses
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param request body ReplaceCoursesRequest true "Full replacement list"
// @Success 200 {array} model.Course
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /students/{id}/courses [put]
func (h *EnrollmentHandler) ReplaceStudentCourses(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Student not found.")
	}

	var req ReplaceCoursesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Courses must be an array.")
	}

	courses, err := decodeCourseArray(req.Courses)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Courses must be an array.")
	}

	persisted, err := h.enrollmentService.ReplaceEnrollment(c.Request().Context(), id, courses)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}

	return c.JSON(http.StatusOK, persisted)
}

// decodeCourseArray rejects anything that is not a JSON array, including the
// absent field and JSON null. Elements must decode as Course objects; their
// field values are otherwise trusted verbatim.
func decodeCourseArray(raw json.RawMessage) (model.CourseList, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, apperrors.ErrCoursesNotArray
	}
	var courses model.CourseList
	if err := json.Unmarshal(trimmed, &courses); err != nil {
		return nil, apperrors.ErrCoursesNotArray
	}
	return courses, nil
}
