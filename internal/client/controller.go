package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"courseconnect/internal/client/session"
	"courseconnect/internal/model"
)

// ErrNotLoggedIn is returned when the controller is activated without a
// session.
var ErrNotLoggedIn = errors.New("Please login to manage your courses.")

// Controller keeps the displayed available and enrolled lists consistent
// with server state. Every mutation is replace-then-reload: the list shown
// is always what the server returned, never an unconfirmed local update.
//
// The controller is deliberately not safe for concurrent mutations. Two
// add/remove calls issued before either resolves both read the same base
// list and the last write wins entirely, losing the other change. That
// matches the server's own last-write-wins replacement semantics.
type Controller struct {
	api      *Client
	sessions *session.Store
	out      io.Writer

	catalog  []model.Course
	enrolled model.CourseList
}

// NewController creates a view controller writing its rendering to out.
func NewController(api *Client, sessions *session.Store, out io.Writer) *Controller {
	return &Controller{api: api, sessions: sessions, out: out}
}

// profile returns the cached session profile, or ErrNotLoggedIn.
func (c *Controller) profile() (*Profile, error) {
	var p Profile
	if !c.sessions.CurrentStudentInfo(&p) || p.ID == "" {
		return nil, ErrNotLoggedIn
	}
	return &p, nil
}

// Render loads catalog and enrollment concurrently and renders both lists
// with a credit summary. Either load failing aborts the render; partial
// results are discarded.
func (c *Controller) Render(ctx context.Context) error {
	p, err := c.profile()
	if err != nil {
		return err
	}

	var (
		wg       sync.WaitGroup
		catalog  []model.Course
		enrolled []model.Course
		catErr   error
		enrErr   error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		catalog, catErr = c.api.Courses(ctx)
	}()
	go func() {
		defer wg.Done()
		enrolled, enrErr = c.api.StudentCourses(ctx, p.ID)
	}()
	wg.Wait()

	if catErr != nil {
		return catErr
	}
	if enrErr != nil {
		return enrErr
	}

	c.catalog = catalog
	c.enrolled = enrolled
	c.render()
	return nil
}

// Add enrolls the student in the catalog course with the given code: the new
// list is the current enrollment plus that course, sent as a full
// replacement, then both lists are re-fetched and re-rendered.
func (c *Controller) Add(ctx context.Context, code string) error {
	p, err := c.profile()
	if err != nil {
		return err
	}
	if c.catalog == nil {
		if err := c.Render(ctx); err != nil {
			return err
		}
	}

	course, ok := findByCode(c.catalog, code)
	if !ok {
		return fmt.Errorf("unknown course code: %s", code)
	}
	if _, enrolled := findByCode(c.enrolled, code); enrolled {
		return fmt.Errorf("already enrolled in %s", code)
	}

	newList := append(append(model.CourseList{}, c.enrolled...), course)
	if _, err := c.api.ReplaceStudentCourses(ctx, p.ID, newList); err != nil {
		return err
	}
	if err := c.Render(ctx); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Added %s to your courses.\n", code)
	return nil
}

// Remove drops the course with the given code from the enrollment, using the
// same replace-then-reload sequence as Add.
func (c *Controller) Remove(ctx context.Context, code string) error {
	p, err := c.profile()
	if err != nil {
		return err
	}
	if c.catalog == nil {
		if err := c.Render(ctx); err != nil {
			return err
		}
	}

	if _, enrolled := findByCode(c.enrolled, code); !enrolled {
		return fmt.Errorf("not enrolled in %s", code)
	}

	newList := make(model.CourseList, 0, len(c.enrolled))
	for _, course := range c.enrolled {
		if course.Code != code {
			newList = append(newList, course)
		}
	}
	if _, err := c.api.ReplaceStudentCourses(ctx, p.ID, newList); err != nil {
		return err
	}
	if err := c.Render(ctx); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Removed %s from your courses.\n", code)
	return nil
}

func (c *Controller) render() {
	fmt.Fprintln(c.out, "Available courses:")
	avail := available(c.catalog, c.enrolled)
	if len(avail) == 0 {
		fmt.Fprintln(c.out, "  (none)")
	}
	for _, course := range avail {
		fmt.Fprintf(c.out, "  %-8s %s (%d credits)\n", course.Code, course.Name, course.Credits)
	}

	fmt.Fprintln(c.out, "Your courses:")
	if len(c.enrolled) == 0 {
		fmt.Fprintln(c.out, "  No courses yet. Add courses from the list above.")
	}
	for _, course := range c.enrolled {
		fmt.Fprintf(c.out, "  %-8s %s (%d credits)\n", course.Code, course.Name, course.Credits)
	}

	fmt.Fprintf(c.out, "You are enrolled in %d course(s), total %d credits.\n",
		len(c.enrolled), c.enrolled.TotalCredits())
}

// available returns the catalog entries whose code is not in the enrolled
// set. Lookup is by code, not object identity.
func available(catalog, enrolled []model.Course) []model.Course {
	enrolledCodes := make(map[string]struct{}, len(enrolled))
	for _, course := range enrolled {
		enrolledCodes[course.Code] = struct{}{}
	}
	out := make([]model.Course, 0, len(catalog))
	for _, course := range catalog {
		if _, ok := enrolledCodes[course.Code]; !ok {
			out = append(out, course)
		}
	}
	return out
}

func findByCode(courses []model.Course, code string) (model.Course, bool) {
	for _, course := range courses {
		if course.Code == code {
			return course, true
		}
	}
	return model.Course{}, false
}
