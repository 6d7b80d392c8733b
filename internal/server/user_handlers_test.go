package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"devconnector/internal/auth"
	"devconnector/internal/models"
	"devconnector/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteAccount(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func TestRegisterHandler(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockUserRepository)
	tokens := auth.NewTokenManager(testSecret, "", "", 0)

	s := &Server{
		userRepo:    mockRepo,
		userService: service.NewUserService(mockRepo, tokens, nil),
	}
	app.Post("/register", s.Register)

	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func()
		expectedStatus int
		expectedField  string
	}{
		{
			name:           "Invalid Form",
			body:           map[string]string{"name": "A", "email": "nope"},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedField:  "email",
		},
		{
			name: "Success",
			body: map[string]string{"name": "Ada", "email": "Ada@Example.com", "password": "secret12", "password2": "secret12"},
			mockSetup: func() {
				mockRepo.On("GetByEmail", mock.Anything, "ada@example.com").Return(nil, nil).Once()
				mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
					return u.Email == "ada@example.com" && u.Password != "secret12"
				})).Return(nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedField:  "email",
		},
		{
			name: "Duplicate Email",
			body: map[string]string{"name": "Ada", "email": "taken@example.com", "password": "secret12", "password2": "secret12"},
			mockSetup: func() {
				mockRepo.On("GetByEmail", mock.Anything, "taken@example.com").Return(&models.User{ID: 1}, nil).Once()
			},
			expectedStatus: http.StatusBadRequest,
			expectedField:  "email",
		},
		{
			name: "Repository Failure",
			body: map[string]string{"name": "Ada", "email": "down@example.com", "password": "secret12", "password2": "secret12"},
			mockSetup: func() {
				mockRepo.On("GetByEmail", mock.Anything, "down@example.com").Return(nil, errors.New("connection refused")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedField:  "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			assert.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			var out map[string]any
			assert.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
			assert.Contains(t, out, tt.expectedField)
		})
	}

	mockRepo.AssertExpectations(t)
}

func TestRegisterHandler_MalformedBody(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockUserRepository)
	s := &Server{userService: service.NewUserService(mockRepo, auth.NewTokenManager(testSecret, "", "", 0), nil)}
	app.Post("/register", s.Register)

	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	mockRepo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
}
