package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/happyinline/inline-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID          uuid.UUID
	Role            enums.ProfileRole
	ExclusiveShopID *uuid.UUID
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	UserID          uuid.UUID         `json:"user_id"`
	Role            enums.ProfileRole `json:"role"`
	ExclusiveShopID *uuid.UUID        `json:"exclusive_shop_id,omitempty"`
	jwt.RegisteredClaims
}
