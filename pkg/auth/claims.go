package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID           uuid.UUID
	Role             string
	Roles            []string
	FunctionalRoleID *uuid.UUID
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	UserID           uuid.UUID  `json:"user_id"`
	Role             string     `json:"role"`
	Roles            []string   `json:"roles,omitempty"`
	FunctionalRoleID *uuid.UUID `json:"functional_role_id,omitempty"`
	jwt.RegisteredClaims
}
