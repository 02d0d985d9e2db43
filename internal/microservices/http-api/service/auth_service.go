package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"moviehub/internal/config"
	"moviehub/internal/logging"
	"moviehub/internal/microservices/http-api/dto"
	"moviehub/internal/microservices/http-api/models"
	"moviehub/internal/microservices/http-api/repository"
	"moviehub/internal/middleware/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrNameInUse          = errors.New("username already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
	ErrEmailInUse         = errors.New("email already in use")
)

const tokenIssuer = "moviehub"

// bcrypt of a random string, compared against when the user does not exist
// so unknown usernames take as long as wrong passwords.
const dummyHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOHi6VbU5h6K9v8u5rO0m3j0h6dX5r8e"

// Claims is the payload of an access token.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (*dto.TokenPair, error)
	ValidateToken(tokenString string) (*Claims, error)
	// Logout revokes refreshToken, or every session of userID when it is empty.
	Logout(ctx context.Context, userID, refreshToken string) error
}

type authService struct {
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	jwtSecret        []byte
	accessTokenTTL   time.Duration
	refreshTokenTTL  time.Duration
	now              func() time.Time
}

func NewAuthService(
	userRepo repository.UserRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
	cfg *config.Config,
) AuthService {
	return &authService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		jwtSecret:        []byte(cfg.JWTSecret),
		accessTokenTTL:   cfg.AccessTokenTTL,
		refreshTokenTTL:  cfg.RefreshTokenTTL,
		now:              time.Now,
	}
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return nil, ErrNameInUse
	} else if !repository.IsNotFound(err) {
		return nil, err
	}
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailInUse
	} else if !repository.IsNotFound(err) {
		return nil, err
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:       uuid.New().String(),
		Username: username,
		Email:    email,
		Password: hashed,
		Role:     models.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// lost a race with a concurrent registration
		if repository.IsDuplicateKey(err) {
			return nil, ErrNameInUse
		}
		return nil, err
	}

	logging.Ctx(ctx).Info().Str("user_id", user.ID).Str("username", user.Username).Msg("user registered")
	return user, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		_ = auth.VerifyPassword(dummyHash, req.Password)
		if repository.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := auth.VerifyPassword(user.Password, req.Password); err != nil {
		logging.Ctx(ctx).Warn().Str("username", user.Username).Msg("failed login")
		return nil, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.TouchLastLogin(ctx, user.ID, s.now()); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("user_id", user.ID).Msg("last login not recorded")
	}

	return &dto.AuthResponse{
		TokenPair: *pair,
		UserID:    user.ID,
		Username:  user.Username,
		ExpiresIn: int64(s.accessTokenTTL.Seconds()),
	}, nil
}

// RefreshAccessToken rotates the refresh token: the presented one is
// revoked and a fresh pair is issued.
func (s *authService) RefreshAccessToken(ctx context.Context, refreshToken string) (*dto.TokenPair, error) {
	stored, err := s.refreshTokenRepo.FindByToken(ctx, refreshToken)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if stored.Revoked {
		return nil, ErrInvalidToken
	}
	if s.now().After(stored.ExpiresAt) {
		return nil, ErrExpiredToken
	}

	user, err := s.userRepo.FindByID(ctx, stored.UserID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	if err := s.refreshTokenRepo.Revoke(ctx, stored.ID); err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, user)
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *authService) Logout(ctx context.Context, userID, refreshToken string) error {
	if refreshToken == "" {
		if userID == "" {
			return ErrUnauthenticated
		}
		return s.refreshTokenRepo.RevokeAllForUser(ctx, userID)
	}

	stored, err := s.refreshTokenRepo.FindByToken(ctx, refreshToken)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrInvalidToken
		}
		return err
	}
	if userID != "" && stored.UserID != userID {
		return ErrForbidden
	}
	return s.refreshTokenRepo.Revoke(ctx, stored.ID)
}

func (s *authService) issueTokens(ctx context.Context, user *models.User) (*dto.TokenPair, error) {
	access, err := s.generateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := s.generateRefreshToken(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}
	return &dto.TokenPair{Access: access, Refresh: refresh}, nil
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	now := s.now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   user.ID,
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

func (s *authService) generateRefreshToken(ctx context.Context, user *models.User) (string, error) {
	token := &models.RefreshToken{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Token:     uuid.New().String(),
		ExpiresAt: s.now().Add(s.refreshTokenTTL),
	}
	if err := s.refreshTokenRepo.Create(ctx, token); err != nil {
		return "", err
	}
	return token.Token, nil
}
