package auth

import (
	"github.com/happyinline/inline-backend/internal/profiles"
)

// RegisterRequest contains the payload for customer self-signup.
type RegisterRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Name     string  `json:"name" validate:"required"`
	Phone    *string `json:"phone,omitempty"`
}

// LoginRequest contains the credentials for password sign-in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the minted token and the signed-in profile.
type LoginResponse struct {
	AccessToken string               `json:"access_token"`
	User        *profiles.ProfileDTO `json:"user"`
}

// RegisterResponse carries the created profile and its first access token.
type RegisterResponse struct {
	AccessToken string               `json:"access_token"`
	User        *profiles.ProfileDTO `json:"user"`
}
