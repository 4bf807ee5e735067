package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/pitlanehq/garage-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID int64
	Name   string
	Roles  []enums.Role
	JTI    string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	UserID int64        `json:"user_id"`
	Name   string       `json:"name"`
	Roles  []enums.Role `json:"roles"`
	jwt.RegisteredClaims
}

// HasRole reports whether the claims carry the given role.
func (c *AccessTokenClaims) HasRole(role enums.Role) bool {
	for _, candidate := range c.Roles {
		if candidate == role {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether the claims carry at least one of the given roles.
func (c *AccessTokenClaims) HasAnyRole(roles ...enums.Role) bool {
	for _, role := range roles {
		if c.HasRole(role) {
			return true
		}
	}
	return false
}
