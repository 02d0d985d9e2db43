package handler

import (
	"net/http"
	"time"

	"moviehub/internal/microservices/http-api/dto"
	"moviehub/internal/microservices/http-api/middleware"
	"moviehub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService   service.AuthService
	cookieTTL     time.Duration
	secureCookies bool
}

func NewAuthHandler(authService service.AuthService, cookieTTL time.Duration, secureCookies bool) *AuthHandler {
	return &AuthHandler{authService: authService, cookieTTL: cookieTTL, secureCookies: secureCookies}
}

// Register is POST /api/v1/auth/users/ and POST /auth/signup/.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bind(c, &req) {
		return
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	user, err := h.authService.Register(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.RegisterResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}

// CreateToken is POST /api/v1/auth/jwt/create/.
func (h *AuthHandler) CreateToken(c *gin.Context) {
	resp, ok := h.login(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Login is the site login: like CreateToken, plus the access token cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	resp, ok := h.login(c)
	if !ok {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, resp.Access, int(h.cookieTTL.Seconds()), "/", "", h.secureCookies, true)
	redirectBack(c, http.StatusOK, resp)
}

func (h *AuthHandler) login(c *gin.Context) (*dto.AuthResponse, bool) {
	var req dto.LoginRequest
	if !bind(c, &req) {
		return nil, false
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	resp, err := h.authService.Login(ctx, req)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return resp, true
}

// RefreshToken is POST /api/v1/auth/jwt/refresh/. The presented refresh
// token is spent; the response carries its replacement.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if !bind(c, &req) {
		return
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	pair, err := h.authService.RefreshAccessToken(ctx, req.Refresh)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

// Logout revokes the given refresh token, or every session of the caller
// when none is given, and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.LogoutRequest
	if c.Request.ContentLength != 0 && !bind(c, &req) {
		return
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	if err := h.authService.Logout(ctx, middleware.UserID(c), req.Refresh); err != nil {
		respondError(c, err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", h.secureCookies, true)
	redirectBack(c, http.StatusOK, gin.H{"message": "logged out"})
}
