package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Course is a single catalog entry. The same shape is embedded verbatim in a
// student's enrollment list, so a student keeps the name and credits a course
// had at the time it was added.
type Course struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Credits int    `json:"credits"`
}

// CourseList is a student's enrollment, stored as a single JSON document
// column. The list is only ever replaced wholesale, never patched in place.
type CourseList []Course

// Value serializes the list for storage. A nil list is stored as [] so that
// reads never surface JSON null.
func (l CourseList) Value() (driver.Value, error) {
	if l == nil {
		l = CourseList{}
	}
	return json.Marshal(l)
}

// Scan deserializes the stored JSON document.
func (l *CourseList) Scan(value interface{}) error {
	if value == nil {
		*l = CourseList{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("scan course list: unsupported type %T", value)
	}
	if len(data) == 0 {
		*l = CourseList{}
		return nil
	}
	return json.Unmarshal(data, l)
}

// TotalCredits sums the credit values of the list.
func (l CourseList) TotalCredits() int {
	total := 0
	for _, c := range l {
		total += c.Credits
	}
	return total
}
