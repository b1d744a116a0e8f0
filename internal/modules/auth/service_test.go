package auth

import (
	"context"
	"testing"

	"eventtix/internal/domain"
	"eventtix/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if u != nil && args.Error(0) == nil {
		u.ID = 1
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) GenerateToken(userID int64, role string) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}

func TestService_Register_Success(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockTokens := new(MockTokenIssuer)
	mockUsers.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "alice@example.com" &&
			u.Role == domain.RoleUser &&
			u.Status == domain.UserActive &&
			u.PasswordHash != "secret123"
	})).Return(nil)
	mockTokens.On("GenerateToken", int64(1), "user").Return("token-abc", nil)

	svc := NewService(mockUsers, mockTokens)
	resp, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Alice",
		Email:    "Alice@Example.com",
		Password: "secret123",
	})

	require.NoError(t, err)
	assert.Equal(t, "token-abc", resp.Token)
	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.Equal(t, "user", resp.User.Role)
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockUsers.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicate)

	svc := NewService(mockUsers, new(MockTokenIssuer))
	_, err := svc.Register(context.Background(), RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "secret123",
	})

	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestService_Register_ShortPassword(t *testing.T) {
	svc := NewService(new(MockUserRepository), new(MockTokenIssuer))
	_, err := svc.Register(context.Background(), RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "abc",
	})

	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func storedUser(password string) *domain.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return &domain.User{
		ID:           1,
		Email:        "alice@example.com",
		PasswordHash: string(hash),
		Name:         "Alice",
		Role:         domain.RoleUser,
		Status:       domain.UserActive,
	}
}

func TestService_Login_Success(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockTokens := new(MockTokenIssuer)
	mockUsers.On("GetByEmail", mock.Anything, "alice@example.com").Return(storedUser("secret123"), nil)
	mockTokens.On("GenerateToken", int64(1), "user").Return("token-abc", nil)

	svc := NewService(mockUsers, mockTokens)
	resp, err := svc.Login(context.Background(), LoginRequest{
		Email: "alice@example.com", Password: "secret123",
	})

	require.NoError(t, err)
	assert.Equal(t, "token-abc", resp.Token)
}

func TestService_Login_WrongPassword(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockUsers.On("GetByEmail", mock.Anything, "alice@example.com").Return(storedUser("secret123"), nil)

	svc := NewService(mockUsers, new(MockTokenIssuer))
	_, err := svc.Login(context.Background(), LoginRequest{
		Email: "alice@example.com", Password: "wrong",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockUsers.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)

	svc := NewService(mockUsers, new(MockTokenIssuer))
	_, err := svc.Login(context.Background(), LoginRequest{
		Email: "nobody@example.com", Password: "whatever",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_BlockedUser(t *testing.T) {
	mockUsers := new(MockUserRepository)
	u := storedUser("secret123")
	u.Status = domain.UserBlocked
	mockUsers.On("GetByEmail", mock.Anything, "alice@example.com").Return(u, nil)

	svc := NewService(mockUsers, new(MockTokenIssuer))
	_, err := svc.Login(context.Background(), LoginRequest{
		Email: "alice@example.com", Password: "secret123",
	})

	assert.ErrorIs(t, err, ErrUserBlocked)
}

func TestService_Me(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockUsers.On("GetByID", mock.Anything, int64(1)).Return(storedUser("secret123"), nil)
	mockUsers.On("GetByID", mock.Anything, int64(2)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewService(mockUsers, new(MockTokenIssuer))

	profile, err := svc.Me(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Alice", profile.Name)

	_, err = svc.Me(context.Background(), 2)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
