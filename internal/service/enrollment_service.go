package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"courseconnect/internal/cache"
	"courseconnect/internal/catalog"
	apperrors "courseconnect/internal/errors"
	"courseconnect/internal/model"
	"courseconnect/internal/repository"
)

const enrollmentCacheTTL = 1 * time.Minute

// EnrollmentService serves the catalog and a student's enrollment list.
// Replacement is wholesale: no merge, no dedup, no diffing against the
// previous list. Two concurrent replaces for the same student race at the
// storage layer and the last write wins entirely.
type EnrollmentService interface {
	Catalog(ctx context.Context) []model.Course
	GetEnrollment(ctx context.Context, id uuid.UUID) (model.CourseList, error)
	ReplaceEnrollment(ctx context.Context, id uuid.UUID, courses model.CourseList) (model.CourseList, error)
}

type enrollmentService struct {
	repo  repository.StudentRepository
	cache *cache.Client
}

// NewEnrollmentService creates a new enrollment service.
func NewEnrollmentService(repo repository.StudentRepository, cache *cache.Client) EnrollmentService {
	return &enrollmentService{
		repo:  repo,
		cache: cache,
	}
}

func (s *enrollmentService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("enrollment:%s", id.String())
}

// Catalog returns the fixed course list. No failure path.
func (s *enrollmentService) Catalog(ctx context.Context) []model.Course {
	return catalog.Courses()
}

// GetEnrollment retrieves a student's enrollment with caching.
func (s *enrollmentService) GetEnrollment(ctx context.Context, id uuid.UUID) (model.CourseList, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.CourseList
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, err
	}

	courses := student.Courses
	if courses == nil {
		courses = model.CourseList{}
	}

	if payload, err := json.Marshal(courses); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, enrollmentCacheTTL)
	}
	return courses, nil
}

// ReplaceEnrollment overwrites the stored list entirely and returns the
// persisted value. The cache entry is dropped after the save so reads after
// write hit storage.
func (s *enrollmentService) ReplaceEnrollment(ctx context.Context, id uuid.UUID, courses model.CourseList) (model.CourseList, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, err
	}

	if courses == nil {
		courses = model.CourseList{}
	}
	student.Courses = courses

	if err := s.repo.Save(ctx, student); err != nil {
		return nil, fmt.Errorf("save enrollment: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))

	return student.Courses, nil
}
