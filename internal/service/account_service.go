package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"courseconnect/internal/auth"
	apperrors "courseconnect/internal/errors"
	"courseconnect/internal/model"
	"courseconnect/internal/repository"
)

const bcryptCost = 10

// AccountService handles registration and authentication.
type AccountService interface {
	Register(ctx context.Context, fullName, email, studentID, password string) (*model.Student, error)
	Login(ctx context.Context, email, password string) (student *model.Student, token string, err error)
}

type accountService struct {
	repo       repository.StudentRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAccountService creates a new account service.
func NewAccountService(repo repository.StudentRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AccountService {
	return &accountService{
		repo:       repo,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// Register creates a new student with a hashed password and an empty
// enrollment list. Email lookup and storage are case-insensitive: the address
// is lowercased before either.
func (s *accountService) Register(ctx context.Context, fullName, email, studentID, password string) (*model.Student, error) {
	if fullName == "" || email == "" || studentID == "" || password == "" {
		return nil, apperrors.ErrMissingFields
	}

	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrEmailTaken
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check student existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	student := &model.Student{
		FullName:     fullName,
		Email:        email,
		StudentID:    studentID,
		PasswordHash: string(hashedPassword),
		Courses:      model.CourseList{},
	}

	if err := s.repo.Create(ctx, student); err != nil {
		return nil, fmt.Errorf("create student: %w", err)
	}

	return student, nil
}

// Login authenticates a student and issues a session token. Unknown email and
// wrong password both map to ErrInvalidCredentials.
func (s *accountService) Login(ctx context.Context, email, password string) (*model.Student, string, error) {
	if email == "" || password == "" {
		return nil, "", apperrors.ErrMissingCredentials
	}

	email = strings.ToLower(strings.TrimSpace(email))

	student, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(student.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	tokenID, token, err := s.jwtService.GenerateSessionToken(student.ID, student.Email)
	if err != nil {
		return nil, "", fmt.Errorf("generate session token: %w", err)
	}

	if err := s.tokenStore.StoreSessionToken(ctx, tokenID, student.ID.String(), student.Email, auth.SessionTokenExpiry); err != nil {
		return nil, "", fmt.Errorf("store session token: %w", err)
	}

	return student, token, nil
}
