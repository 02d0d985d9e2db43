package dto

// Data Transfer Objects for authentication requests and responses

// RegisterRequest: payload for user registration
type RegisterRequest struct {
	Username string `json:"username" form:"username" binding:"required,min=3,max=150"`
	Password string `json:"password" form:"password" binding:"required,min=8"`
	Email    string `json:"email" form:"email" binding:"required,email"`
}

// LoginRequest: payload for user login
type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// TokenPair: response payload after successful authentication
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// AuthResponse: login response including the user
type AuthResponse struct {
	TokenPair
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	ExpiresIn int64  `json:"expires_in"` // seconds
}

// RefreshTokenRequest: payload for refreshing access token
type RefreshTokenRequest struct {
	Refresh string `json:"refresh" form:"refresh" binding:"required"`
}

// LogoutRequest: the refresh token is optional; without it every session of the user ends
type LogoutRequest struct {
	Refresh string `json:"refresh" form:"refresh"`
}

// RegisterResponse: response payload after successful registration
type RegisterResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
