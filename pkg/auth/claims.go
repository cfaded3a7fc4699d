package auth

import (
	"github.com/campusmart/storefront/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID uuid.UUID
	Role   enums.Role
	JTI    string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	UserID uuid.UUID  `json:"user_id"`
	Role   enums.Role `json:"role"`
	jwt.RegisteredClaims
}

// Identity is the authenticated caller of an operation.
type Identity struct {
	UserID uuid.UUID
	Role   enums.Role
}

// IsZero reports whether no caller is present.
func (i Identity) IsZero() bool {
	return i.UserID == uuid.Nil
}

// IsAdmin reports whether the caller holds the admin role.
func (i Identity) IsAdmin() bool {
	return !i.IsZero() && i.Role == enums.RoleAdmin
}

// Can reports whether the caller's role grants capability.
func (i Identity) Can(capability enums.Capability) bool {
	return !i.IsZero() && i.Role.Allows(capability)
}

// Identity converts verified claims into a caller identity.
func (c *AccessTokenClaims) Identity() Identity {
	if c == nil {
		return Identity{}
	}
	return Identity{UserID: c.UserID, Role: c.Role}
}
