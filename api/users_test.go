package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/ticketkinen/server/internal/domain"
	"github.com/ticketkinen/server/internal/service/users"
)

// MockUserUseCase is a mock implementation of users.UserUseCase
type MockUserUseCase struct {
	mock.Mock
}

func (m *MockUserUseCase) Register(ctx context.Context, input users.RegisterInput) (*domain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUseCase) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserUseCase) Exists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserUseCase) Info(ctx context.Context, email string) (*users.Info, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.Info), args.Error(1)
}

func (m *MockUserUseCase) UpdateRole(ctx context.Context, email string, role domain.UserRole) error {
	args := m.Called(ctx, email, role)
	return args.Error(0)
}

func (m *MockUserUseCase) UpdateStatus(ctx context.Context, email string, status domain.UserStatus) error {
	args := m.Called(ctx, email, status)
	return args.Error(0)
}

func TestUserHandler_create(t *testing.T) {
	mockService := &MockUserUseCase{}
	handler := NewUserHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	input := users.RegisterInput{Name: "New User", Email: "new@example.com"}
	body, _ := json.Marshal(input)
	c.Request = httptest.NewRequest("POST", "/users", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("Register", c.Request.Context(), input).
		Return(&domain.User{Name: "New User", Email: "new@example.com", Role: domain.UserRoleUser}, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response domain.User
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, domain.UserRoleUser, response.Role)

	mockService.AssertExpectations(t)
}

func TestUserHandler_create_duplicateEmail(t *testing.T) {
	mockService := &MockUserUseCase{}
	handler := NewUserHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(users.RegisterInput{Email: "dup@example.com"})
	c.Request = httptest.NewRequest("POST", "/users", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("Register", mock.Anything, mock.Anything).
		Return(nil, domain.ErrDuplicateEmail)

	handler.create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUserHandler_exists(t *testing.T) {
	mockService := &MockUserUseCase{}
	handler := NewUserHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/users/user/known@example.com", nil)
	c.Params = gin.Params{{Key: "email", Value: "known@example.com"}}

	mockService.On("Exists", c.Request.Context(), "known@example.com").Return(true, nil)

	handler.exists(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "true", w.Body.String())
}

func TestUserHandler_info(t *testing.T) {
	mockService := &MockUserUseCase{}
	handler := NewUserHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/users/info/vendor@example.com", nil)
	c.Params = gin.Params{{Key: "email", Value: "vendor@example.com"}}

	mockService.On("Info", c.Request.Context(), "vendor@example.com").
		Return(&users.Info{Role: domain.UserRoleVendor, Status: domain.UserStatusActive}, nil)

	handler.info(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response users.Info
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, domain.UserRoleVendor, response.Role)
}

func TestUserHandler_info_unknownUserReturnsFalse(t *testing.T) {
	mockService := &MockUserUseCase{}
	handler := NewUserHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/users/info/ghost@example.com", nil)
	c.Params = gin.Params{{Key: "email", Value: "ghost@example.com"}}

	mockService.On("Info", c.Request.Context(), "ghost@example.com").
		Return(nil, domain.ErrNotFound)

	handler.info(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "false", w.Body.String())
}

func TestUserHandler_updateRole(t *testing.T) {
	mockService := &MockUserUseCase{}
	handler := NewUserHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("PATCH", "/users/update-role?email=user@example.com&role=vendor", nil)

	mockService.On("UpdateRole", c.Request.Context(), "user@example.com", domain.UserRoleVendor).
		Return(nil)

	handler.updateRole(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestUserHandler_updateStatus_notFound(t *testing.T) {
	mockService := &MockUserUseCase{}
	handler := NewUserHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("PATCH", "/users/update-status?email=ghost@example.com&status=blocked", nil)

	mockService.On("UpdateStatus", mock.Anything, "ghost@example.com", domain.UserStatusBlocked).
		Return(domain.ErrNotFound)

	handler.updateStatus(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
