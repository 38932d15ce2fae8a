package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"courseconnect/internal/model"
)

// StudentRepository defines student persistence operations. The interface is
// kept narrow so the storage engine is swappable without touching the
// service logic.
type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Student, error)
	FindByEmail(ctx context.Context, email string) (*model.Student, error)
	Save(ctx context.Context, student *model.Student) error
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository builds a GORM-backed repository.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Create(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Student, error) {
	var student model.Student
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

// FindByEmail looks up a student by email. Callers are expected to pass the
// address already lowercased.
func (r *studentRepository) FindByEmail(ctx context.Context, email string) (*model.Student, error) {
	var student model.Student
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) Save(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Save(student).Error
}
