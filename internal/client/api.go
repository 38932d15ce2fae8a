// Package client implements the course-registration client: a typed API
// client for the server's REST surface, and the enrollment view controller
// that keeps the rendered lists consistent with server state.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	apperrors "courseconnect/internal/errors"
	"courseconnect/internal/model"
)

// Profile is the client-side view of the logged-in student, cached in the
// session store between runs.
type Profile struct {
	ID        string         `json:"id"`
	FullName  string         `json:"fullName"`
	Email     string         `json:"email"`
	StudentID string         `json:"studentId"`
	Courses   []model.Course `json:"courses"`
	Token     string         `json:"token,omitempty"`
}

// Client calls the server's REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates an API client for the given server base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Register creates a new student account.
func (c *Client) Register(ctx context.Context, fullName, email, studentID, password string) (*Profile, error) {
	body := map[string]string{
		"fullName":  fullName,
		"email":     email,
		"studentId": studentID,
		"password":  password,
	}
	var profile Profile
	if err := c.do(ctx, http.MethodPost, "/api/register", body, &profile, "Registration failed."); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Login authenticates and returns the full profile including enrollment.
func (c *Client) Login(ctx context.Context, email, password string) (*Profile, error) {
	body := map[string]string{"email": email, "password": password}
	var profile Profile
	if err := c.do(ctx, http.MethodPost, "/api/login", body, &profile, "Login failed."); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Courses fetches the course catalog.
func (c *Client) Courses(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	if err := c.do(ctx, http.MethodGet, "/api/courses", nil, &courses, "Failed to load courses."); err != nil {
		return nil, err
	}
	return courses, nil
}

// StudentCourses fetches a student's current enrollment.
func (c *Client) StudentCourses(ctx context.Context, studentID string) ([]model.Course, error) {
	var courses []model.Course
	path := fmt.Sprintf("/api/students/%s/courses", studentID)
	if err := c.do(ctx, http.MethodGet, path, nil, &courses, "Failed to load student courses."); err != nil {
		return nil, err
	}
	return courses, nil
}

// ReplaceStudentCourses replaces the student's entire enrollment list and
// returns the value the server persisted.
func (c *Client) ReplaceStudentCourses(ctx context.Context, studentID string, courses []model.Course) ([]model.Course, error) {
	if courses == nil {
		courses = []model.Course{}
	}
	body := map[string]interface{}{"courses": courses}
	var persisted []model.Course
	path := fmt.Sprintf("/api/students/%s/courses", studentID)
	if err := c.do(ctx, http.MethodPut, path, body, &persisted, "Failed to update courses."); err != nil {
		return nil, err
	}
	return persisted, nil
}

// do issues one JSON request. Non-2xx responses are turned into an error
// carrying the server's {message} body; network and parse failures degrade
// to the generic fallback message.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, fallback string) error {
	var reqBody *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.New(fallback)
		}
		reqBody = bytes.NewReader(payload)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return errors.New(fallback)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.New(fallback)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody apperrors.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil && errBody.Message != "" {
			return errors.New(errBody.Message)
		}
		return errors.New(fallback)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.New(fallback)
	}
	return nil
}
