package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/JGP1992/theitaliancorner-sub001/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID      uuid.UUID
	Role        string
	Permissions []enums.Permission
	JTI         string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	UserID      uuid.UUID          `json:"user_id"`
	Role        string             `json:"role"`
	Permissions []enums.Permission `json:"permissions"`
	jwt.RegisteredClaims
}

// HasPermission reports whether the token grants perm.
func (c *AccessTokenClaims) HasPermission(perm enums.Permission) bool {
	if c == nil {
		return false
	}
	for _, p := range c.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}
