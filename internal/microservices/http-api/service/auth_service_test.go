package service

import (
	"context"
	"testing"
	"time"

	"moviehub/internal/config"
	"moviehub/internal/microservices/http-api/dto"
	"moviehub/internal/microservices/http-api/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

// MockRefreshTokenRepository mocks the RefreshTokenRepository interface
type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) FindByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) Revoke(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

const testSecret = "test-secret-that-is-long-enough-for-hs256"

func newTestAuthService() (AuthService, *MockUserRepository, *MockRefreshTokenRepository) {
	users := new(MockUserRepository)
	tokens := new(MockRefreshTokenRepository)
	cfg := &config.Config{
		JWTSecret:       testSecret,
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
	return NewAuthService(users, tokens, cfg), users, tokens
}

func signed(t *testing.T, claims Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

var ctxAny = mock.Anything

func TestRegister_Success(t *testing.T) {
	svc, users, _ := newTestAuthService()

	users.On("FindByUsername", ctxAny, "testuser").Return(nil, gorm.ErrRecordNotFound)
	users.On("FindByEmail", ctxAny, "test@example.com").Return(nil, gorm.ErrRecordNotFound)
	users.On("Create", ctxAny, mock.AnythingOfType("*models.User")).Return(nil)

	user, err := svc.Register(context.Background(), dto.RegisterRequest{
		Username: "testuser",
		Password: "password123",
		Email:    "Test@Example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "testuser", user.Username)
	assert.Equal(t, "test@example.com", user.Email)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	users.AssertExpectations(t)
}

func TestRegister_UsernameExists(t *testing.T) {
	svc, users, _ := newTestAuthService()
	users.On("FindByUsername", ctxAny, "testuser").Return(&models.User{Username: "testuser"}, nil)

	user, err := svc.Register(context.Background(), dto.RegisterRequest{Username: "testuser", Password: "password123", Email: "test@example.com"})

	assert.ErrorIs(t, err, ErrNameInUse)
	assert.Nil(t, user)
	users.AssertExpectations(t)
}

func TestRegister_EmailExists(t *testing.T) {
	svc, users, _ := newTestAuthService()
	users.On("FindByUsername", ctxAny, "testuser").Return(nil, gorm.ErrRecordNotFound)
	users.On("FindByEmail", ctxAny, "test@example.com").Return(&models.User{Email: "test@example.com"}, nil)

	user, err := svc.Register(context.Background(), dto.RegisterRequest{Username: "testuser", Password: "password123", Email: "test@example.com"})

	assert.ErrorIs(t, err, ErrEmailInUse)
	assert.Nil(t, user)
	users.AssertExpectations(t)
}

func TestRegister_DuplicateOnInsert(t *testing.T) {
	svc, users, _ := newTestAuthService()
	users.On("FindByUsername", ctxAny, "testuser").Return(nil, gorm.ErrRecordNotFound)
	users.On("FindByEmail", ctxAny, "test@example.com").Return(nil, gorm.ErrRecordNotFound)
	users.On("Create", ctxAny, mock.AnythingOfType("*models.User")).Return(gorm.ErrDuplicatedKey)

	_, err := svc.Register(context.Background(), dto.RegisterRequest{Username: "testuser", Password: "password123", Email: "test@example.com"})

	assert.ErrorIs(t, err, ErrNameInUse)
}

func TestLogin_Success(t *testing.T) {
	svc, users, tokens := newTestAuthService()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	user := &models.User{ID: "user-id", Username: "testuser", Password: string(hashed), Role: models.RoleAdmin}

	users.On("FindByUsername", ctxAny, "testuser").Return(user, nil)
	users.On("TouchLastLogin", ctxAny, "user-id", mock.AnythingOfType("time.Time")).Return(nil)
	tokens.On("Create", ctxAny, mock.AnythingOfType("*models.RefreshToken")).Return(nil)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "testuser", Password: "password123"})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Access)
	assert.NotEmpty(t, resp.Refresh)
	assert.Equal(t, "user-id", resp.UserID)
	assert.Equal(t, int64(900), resp.ExpiresIn)

	claims, err := svc.ValidateToken(resp.Access)
	require.NoError(t, err)
	assert.Equal(t, "user-id", claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)

	users.AssertExpectations(t)
	tokens.AssertExpectations(t)
}

func TestLogin_InvalidPassword(t *testing.T) {
	svc, users, tokens := newTestAuthService()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	users.On("FindByUsername", ctxAny, "testuser").Return(&models.User{ID: "user-id", Username: "testuser", Password: string(hashed)}, nil)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "testuser", Password: "wrongpassword"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, resp)
	tokens.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin_UserNotFound(t *testing.T) {
	svc, users, _ := newTestAuthService()
	users.On("FindByUsername", ctxAny, "nonexistent").Return(nil, gorm.ErrRecordNotFound)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "nonexistent", Password: "password123"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, resp)
}

func TestValidateToken_Expired(t *testing.T) {
	svc, _, _ := newTestAuthService()

	token := signed(t, Claims{
		UserID: "user-id",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	claims, err := svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.Nil(t, claims)
}

func TestValidateToken_Rejects(t *testing.T) {
	svc, _, _ := newTestAuthService()
	valid := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}

	wrongIssuer := valid
	wrongIssuer.Issuer = "someone-else"

	otherKey, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: "u", RegisteredClaims: valid}).
		SignedString([]byte("a-different-secret-of-enough-length"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "invalid.token.here"},
		{"wrong issuer", signed(t, Claims{UserID: "u", RegisteredClaims: wrongIssuer})},
		{"no user id", signed(t, Claims{RegisteredClaims: valid})},
		{"wrong key", otherKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.ValidateToken(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}

func TestRefreshAccessToken_Rotates(t *testing.T) {
	svc, users, tokens := newTestAuthService()

	stored := &models.RefreshToken{ID: "token-id", UserID: "user-id", Token: "refresh-token", ExpiresAt: time.Now().Add(time.Hour)}
	tokens.On("FindByToken", ctxAny, "refresh-token").Return(stored, nil)
	users.On("FindByID", ctxAny, "user-id").Return(&models.User{ID: "user-id", Username: "testuser", Role: models.RoleUser}, nil)
	tokens.On("Revoke", ctxAny, "token-id").Return(nil)
	tokens.On("Create", ctxAny, mock.AnythingOfType("*models.RefreshToken")).Return(nil)

	pair, err := svc.RefreshAccessToken(context.Background(), "refresh-token")

	require.NoError(t, err)
	assert.NotEmpty(t, pair.Access)
	assert.NotEqual(t, "refresh-token", pair.Refresh)
	tokens.AssertExpectations(t)
	users.AssertExpectations(t)
}

func TestRefreshAccessToken_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		stored *models.RefreshToken
		err    error
		want   error
	}{
		{"unknown", nil, gorm.ErrRecordNotFound, ErrInvalidToken},
		{"revoked", &models.RefreshToken{ID: "t", UserID: "u", Revoked: true, ExpiresAt: time.Now().Add(time.Hour)}, nil, ErrInvalidToken},
		{"expired", &models.RefreshToken{ID: "t", UserID: "u", ExpiresAt: time.Now().Add(-time.Hour)}, nil, ErrExpiredToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, tokens := newTestAuthService()
			if tt.stored == nil {
				tokens.On("FindByToken", ctxAny, "tok").Return(nil, tt.err)
			} else {
				tokens.On("FindByToken", ctxAny, "tok").Return(tt.stored, nil)
			}

			pair, err := svc.RefreshAccessToken(context.Background(), "tok")
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, pair)
			tokens.AssertNotCalled(t, "Revoke", mock.Anything, mock.Anything)
		})
	}
}

func TestLogout(t *testing.T) {
	t.Run("single token", func(t *testing.T) {
		svc, _, tokens := newTestAuthService()
		tokens.On("FindByToken", ctxAny, "tok").Return(&models.RefreshToken{ID: "token-id", UserID: "user-id"}, nil)
		tokens.On("Revoke", ctxAny, "token-id").Return(nil)

		require.NoError(t, svc.Logout(context.Background(), "user-id", "tok"))
		tokens.AssertExpectations(t)
	})

	t.Run("someone else's token", func(t *testing.T) {
		svc, _, tokens := newTestAuthService()
		tokens.On("FindByToken", ctxAny, "tok").Return(&models.RefreshToken{ID: "token-id", UserID: "other"}, nil)

		assert.ErrorIs(t, svc.Logout(context.Background(), "user-id", "tok"), ErrForbidden)
		tokens.AssertNotCalled(t, "Revoke", mock.Anything, mock.Anything)
	})

	t.Run("all sessions", func(t *testing.T) {
		svc, _, tokens := newTestAuthService()
		tokens.On("RevokeAllForUser", ctxAny, "user-id").Return(nil)

		require.NoError(t, svc.Logout(context.Background(), "user-id", ""))
		tokens.AssertExpectations(t)
	})

	t.Run("anonymous without token", func(t *testing.T) {
		svc, _, _ := newTestAuthService()
		assert.ErrorIs(t, svc.Logout(context.Background(), "", ""), ErrUnauthenticated)
	})
}
