package types

import "github.com/golang-jwt/jwt/v5"

// TokenClaims are the claims of an access token. The registered ID (jti)
// identifies the token for revocation.
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id"`
	Username string `json:"username,omitempty"`
}
