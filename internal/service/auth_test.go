package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/wishlist-service/internal/domain"
	apperrors "github.com/utafrali/wishlist-service/pkg/errors"
)

func newTestAuthService(userRepo *mockUserRepository) *AuthService {
	return NewAuthService(userRepo, newTestJWTManager(), newTestEventProducer(), newTestLogger())
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestRegister_Success(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc := newTestAuthService(userRepo)
	ctx := context.Background()

	userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

	user, token, err := svc.Register(ctx, RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "SecurePass123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, domain.RoleCustomer, user.Role)
	assert.True(t, user.Active)
	assert.NotEqual(t, "SecurePass123", user.PasswordHash)
	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, "bearer", token.TokenType)
	userRepo.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc := newTestAuthService(userRepo)
	ctx := context.Background()

	userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).
		Return(apperrors.AlreadyExists("user", "email", "alice@example.com"))

	user, token, err := svc.Register(ctx, RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "SecurePass123",
	})

	assert.Nil(t, user)
	assert.Nil(t, token)
	assert.True(t, errors.Is(err, apperrors.ErrAlreadyExists))
}

func TestRegister_WeakPassword(t *testing.T) {
	svc := newTestAuthService(new(mockUserRepository))

	cases := []struct {
		name     string
		password string
	}{
		{"too short", "Ab1"},
		{"no uppercase", "alllower123"},
		{"no digit", "NoDigitsHere"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Register(context.Background(), RegisterInput{
				Name:     "Alice",
				Email:    "alice@example.com",
				Password: tc.password,
			})
			assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
		})
	}
}

func TestRegister_MissingFields(t *testing.T) {
	svc := newTestAuthService(new(mockUserRepository))

	_, _, err := svc.Register(context.Background(), RegisterInput{Email: "", Name: "Alice", Password: "SecurePass123"})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))

	_, _, err = svc.Register(context.Background(), RegisterInput{Email: "alice@example.com", Name: "", Password: "SecurePass123"})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestLogin_Success(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc := newTestAuthService(userRepo)
	ctx := context.Background()

	stored := &domain.User{
		ID:           "user-1",
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: hashForTest("SecurePass123"),
		Role:         domain.RoleCustomer,
		Active:       true,
	}
	userRepo.On("GetByEmail", ctx, "alice@example.com").Return(stored, nil)

	user, token, err := svc.Login(ctx, LoginInput{Email: "alice@example.com", Password: "SecurePass123"})

	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.NotEmpty(t, token.AccessToken)
}

func TestLogin_WrongPassword(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc := newTestAuthService(userRepo)
	ctx := context.Background()

	stored := &domain.User{
		ID:           "user-1",
		Email:        "alice@example.com",
		PasswordHash: hashForTest("SecurePass123"),
		Active:       true,
	}
	userRepo.On("GetByEmail", ctx, "alice@example.com").Return(stored, nil)

	user, token, err := svc.Login(ctx, LoginInput{Email: "alice@example.com", Password: "WrongPass123"})

	assert.Nil(t, user)
	assert.Nil(t, token)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
}

func TestLogin_UnknownEmail(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc := newTestAuthService(userRepo)
	ctx := context.Background()

	userRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, apperrors.ErrNotFound)

	_, _, err := svc.Login(ctx, LoginInput{Email: "ghost@example.com", Password: "SecurePass123"})

	// Unknown email and wrong password are indistinguishable to the caller.
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
}

func TestLogin_DeactivatedAccount(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc := newTestAuthService(userRepo)
	ctx := context.Background()

	stored := &domain.User{
		ID:           "user-1",
		Email:        "alice@example.com",
		PasswordHash: hashForTest("SecurePass123"),
		Active:       false,
	}
	userRepo.On("GetByEmail", ctx, "alice@example.com").Return(stored, nil)

	_, _, err := svc.Login(ctx, LoginInput{Email: "alice@example.com", Password: "SecurePass123"})

	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
}

// ---------------------------------------------------------------------------
// SeedAdmin
// ---------------------------------------------------------------------------

func TestSeedAdmin_CreatesAccountWhenMissing(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc := newTestAuthService(userRepo)
	ctx := context.Background()

	userRepo.On("GetByEmail", ctx, "admin@example.com").Return(nil, apperrors.ErrNotFound)
	userRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.Role == domain.RoleAdmin && u.Email == "admin@example.com"
	})).Return(nil)

	err := svc.SeedAdmin(ctx, "admin@example.com", "AdminPass123")

	require.NoError(t, err)
	userRepo.AssertExpectations(t)
}

func TestSeedAdmin_Idempotent(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc := newTestAuthService(userRepo)
	ctx := context.Background()

	existing := &domain.User{ID: "admin-1", Email: "admin@example.com", Role: domain.RoleAdmin}
	userRepo.On("GetByEmail", ctx, "admin@example.com").Return(existing, nil)

	err := svc.SeedAdmin(ctx, "admin@example.com", "AdminPass123")

	require.NoError(t, err)
	userRepo.AssertNotCalled(t, "Create")
}

func TestSeedAdmin_NoopWithoutCredentials(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc := newTestAuthService(userRepo)

	require.NoError(t, svc.SeedAdmin(context.Background(), "", ""))
	userRepo.AssertNotCalled(t, "GetByEmail")
}
