package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// ActorRole is the coarse permission level carried in access tokens.
type ActorRole string

const (
	RoleOperator  ActorRole = "operator"
	RoleInspector ActorRole = "inspector"
	RoleAdmin     ActorRole = "admin"
)

// IsValid reports whether the role is one the API issues.
func (r ActorRole) IsValid() bool {
	switch r {
	case RoleOperator, RoleInspector, RoleAdmin:
		return true
	}
	return false
}

// AccessTokenPayload captures the data available when minting a token.
type AccessTokenPayload struct {
	Actor string
	Role  ActorRole
	JTI   string
}

// AccessTokenClaims is the typed JWT issued to API clients. Actor is the
// organization or user acting on records, recorded alongside mutations in
// request logs.
type AccessTokenClaims struct {
	Actor string    `json:"actor"`
	Role  ActorRole `json:"role"`
	jwt.RegisteredClaims
}
