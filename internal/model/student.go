package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Student represents a registered student account.
type Student struct {
	ID           uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	FullName     string     `json:"fullName" gorm:"size:255;not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;size:255;not null"` // stored lowercase
	StudentID    string     `json:"studentId" gorm:"size:64;not null"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Courses      CourseList `json:"courses" gorm:"type:json"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (s *Student) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
