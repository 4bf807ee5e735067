package auth

import (
	"github.com/pitlanehq/garage-backend/internal/users"
)

// LoginRequest captures the credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the token pair and the authenticated user.
type LoginResponse struct {
	AccessToken  string          `json:"accessToken"`
	RefreshToken string          `json:"refreshToken"`
	User         *users.UserView `json:"user"`
}

// RefreshRequest rotates a refresh token against its (possibly expired)
// access token.
type RefreshRequest struct {
	AccessToken  string `json:"accessToken" validate:"required"`
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// RefreshResponse returns the replacement token pair.
type RefreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// LogoutRequest revokes the session tied to the access token.
type LogoutRequest struct {
	AccessToken string `json:"accessToken" validate:"required"`
}
