package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"courseconnect/internal/auth"
	apperrors "courseconnect/internal/errors"
	"courseconnect/internal/model"
)

// MockStudentRepository is a mock implementation of StudentRepository.
type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) Create(ctx context.Context, student *model.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockStudentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Student), args.Error(1)
}

func (m *MockStudentRepository) FindByEmail(ctx context.Context, email string) (*model.Student, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Student), args.Error(1)
}

func (m *MockStudentRepository) Save(ctx context.Context, student *model.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreSessionToken(ctx context.Context, tokenID, studentID, email string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, studentID, email, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetSessionToken(ctx context.Context, tokenID string) (string, string, error) {
	args := m.Called(ctx, tokenID)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockTokenStore) DeleteSessionToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func newTestAccountService(repo *MockStudentRepository, tokenStore *MockTokenStore) AccountService {
	return NewAccountService(repo, auth.NewJWTService("test-secret"), tokenStore)
}

func TestAccountService_Register(t *testing.T) {
	tests := []struct {
		name          string
		fullName      string
		email         string
		studentID     string
		password      string
		setupMock     func(*MockStudentRepository)
		expectedError error
	}{
		{
			name:      "successful registration",
			fullName:  "Alice",
			email:     "a@x.com",
			studentID: "S1",
			password:  "pw",
			setupMock: func(m *MockStudentRepository) {
				m.On("FindByEmail", mock.Anything, "a@x.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Student")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:      "email already registered",
			fullName:  "Alice",
			email:     "a@x.com",
			studentID: "S1",
			password:  "pw",
			setupMock: func(m *MockStudentRepository) {
				m.On("FindByEmail", mock.Anything, "a@x.com").Return(&model.Student{Email: "a@x.com"}, nil)
			},
			expectedError: apperrors.ErrEmailTaken,
		},
		{
			name:      "email conflict is case-insensitive",
			fullName:  "Alice",
			email:     "A@X.com",
			studentID: "S1",
			password:  "pw",
			setupMock: func(m *MockStudentRepository) {
				// Lookup must happen against the lowercased address.
				m.On("FindByEmail", mock.Anything, "a@x.com").Return(&model.Student{Email: "a@x.com"}, nil)
			},
			expectedError: apperrors.ErrEmailTaken,
		},
		{
			name:          "missing field",
			fullName:      "",
			email:         "a@x.com",
			studentID:     "S1",
			password:      "pw",
			setupMock:     func(m *MockStudentRepository) {},
			expectedError: apperrors.ErrMissingFields,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockStudentRepository)
			tt.setupMock(mockRepo)

			svc := newTestAccountService(mockRepo, new(MockTokenStore))
			student, err := svc.Register(context.Background(), tt.fullName, tt.email, tt.studentID, tt.password)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, student)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, student)
				assert.Equal(t, "a@x.com", student.Email)
				assert.Equal(t, tt.fullName, student.FullName)
				assert.NotEmpty(t, student.PasswordHash)
				assert.NotEqual(t, tt.password, student.PasswordHash)
				assert.NotNil(t, student.Courses)
				assert.Len(t, student.Courses, 0)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAccountService_Register_StoresLowercaseEmail(t *testing.T) {
	mockRepo := new(MockStudentRepository)
	mockRepo.On("FindByEmail", mock.Anything, "a@x.com").Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(s *model.Student) bool {
		return s.Email == "a@x.com"
	})).Return(nil)

	svc := newTestAccountService(mockRepo, new(MockTokenStore))
	_, err := svc.Register(context.Background(), "Alice", "A@X.Com", "S1", "pw")

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestAccountService_Login(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("pw"), 10)
	studentID := uuid.New()

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockStudentRepository, *MockTokenStore)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "a@x.com",
			password: "pw",
			setupMock: func(mRepo *MockStudentRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "a@x.com").Return(&model.Student{
					ID:           studentID,
					FullName:     "Alice",
					Email:        "a@x.com",
					PasswordHash: string(hashed),
				}, nil)
				mToken.On("StoreSessionToken", mock.Anything, mock.Anything, studentID.String(), "a@x.com", mock.Anything).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "unknown email",
			email:    "nobody@x.com",
			password: "pw",
			setupMock: func(mRepo *MockStudentRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "nobody@x.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "a@x.com",
			password: "nope",
			setupMock: func(mRepo *MockStudentRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "a@x.com").Return(&model.Student{
					ID:           studentID,
					Email:        "a@x.com",
					PasswordHash: string(hashed),
				}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:          "missing password",
			email:         "a@x.com",
			password:      "",
			setupMock:     func(mRepo *MockStudentRepository, mToken *MockTokenStore) {},
			expectedError: apperrors.ErrMissingCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockStudentRepository)
			mockToken := new(MockTokenStore)
			tt.setupMock(mockRepo, mockToken)

			svc := newTestAccountService(mockRepo, mockToken)
			student, token, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, student)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, student)
				assert.NotEmpty(t, token)
				assert.Equal(t, tt.email, student.Email)
			}

			mockRepo.AssertExpectations(t)
			mockToken.AssertExpectations(t)
		})
	}
}

// Unknown email and wrong password must be indistinguishable to the caller.
func TestAccountService_Login_UniformFailureMessage(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("pw"), 10)

	mockRepo := new(MockStudentRepository)
	mockRepo.On("FindByEmail", mock.Anything, "unknown@x.com").Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("FindByEmail", mock.Anything, "a@x.com").Return(&model.Student{
		ID:           uuid.New(),
		Email:        "a@x.com",
		PasswordHash: string(hashed),
	}, nil)

	svc := newTestAccountService(mockRepo, new(MockTokenStore))

	_, _, errUnknown := svc.Login(context.Background(), "unknown@x.com", "pw")
	_, _, errWrongPw := svc.Login(context.Background(), "a@x.com", "wrong")

	assert.Error(t, errUnknown)
	assert.Error(t, errWrongPw)
	assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
}
