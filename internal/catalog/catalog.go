// Package catalog holds the fixed list of offerable courses. The catalog is
// constant data compiled into the binary and served verbatim.
package catalog

import "courseconnect/internal/model"

var sampleCourses = []model.Course{
	{Code: "CS101", Name: "Introduction to Programming", Credits: 3},
	{Code: "MATH201", Name: "Calculus II", Credits: 4},
	{Code: "ENG110", Name: "Academic Writing", Credits: 2},
	{Code: "HIST150", Name: "World History", Credits: 3},
	{Code: "PHY120", Name: "Physics Fundamentals", Credits: 3},
}

// Courses returns a copy of the catalog so callers cannot mutate it.
func Courses() []model.Course {
	out := make([]model.Course, len(sampleCourses))
	copy(out, sampleCourses)
	return out
}

// Find returns the catalog entry with the given code.
func Find(code string) (model.Course, bool) {
	for _, c := range sampleCourses {
		if c.Code == code {
			return c, true
		}
	}
	return model.Course{}, false
}
