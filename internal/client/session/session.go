// Package session persists the client's login state between runs: the
// current student id and the cached profile, stored as two keys in one JSON
// file. Absence of either key means logged out. The stored profile is a
// cache derived from the last login response, never authoritative.
package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

const (
	keyCurrentStudentID   = "cc_current_student_id"
	keyCurrentStudentInfo = "cc_current_student_info"
)

// Store is a durable key-value session store backed by a JSON file.
type Store struct {
	path string
}

// NewStore creates a store at the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the session file location under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "courseconnect", "session.json"), nil
}

// CurrentStudentID returns the stored student id, or "" when logged out.
func (s *Store) CurrentStudentID() string {
	values, err := s.load()
	if err != nil {
		return ""
	}
	var id string
	if raw, ok := values[keyCurrentStudentID]; ok {
		if err := json.Unmarshal(raw, &id); err != nil {
			return ""
		}
	}
	return id
}

// SetCurrentStudentID stores the student id; an empty id removes it.
func (s *Store) SetCurrentStudentID(id string) error {
	return s.update(func(values map[string]json.RawMessage) {
		if id == "" {
			delete(values, keyCurrentStudentID)
			return
		}
		raw, _ := json.Marshal(id)
		values[keyCurrentStudentID] = raw
	})
}

// CurrentStudentInfo decodes the cached profile into v. Returns false when
// absent or unreadable, which callers treat as logged out.
func (s *Store) CurrentStudentInfo(v interface{}) bool {
	values, err := s.load()
	if err != nil {
		return false
	}
	raw, ok := values[keyCurrentStudentInfo]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}

// SetCurrentStudentInfo stores the profile; nil removes it.
func (s *Store) SetCurrentStudentInfo(v interface{}) error {
	return s.update(func(values map[string]json.RawMessage) {
		if v == nil {
			delete(values, keyCurrentStudentInfo)
			return
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return
		}
		values[keyCurrentStudentInfo] = raw
	})
}

// Clear discards the whole session. Logout is client-local: no server
// round-trip happens here.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *Store) load() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, err
	}
	values := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &values); err != nil {
		// corrupt session file behaves like logged out
		return map[string]json.RawMessage{}, nil
	}
	return values, nil
}

func (s *Store) update(mutate func(map[string]json.RawMessage)) error {
	values, err := s.load()
	if err != nil {
		return err
	}
	mutate(values)

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}
