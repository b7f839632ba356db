package jwt

import (
	jwtLib "github.com/golang-jwt/jwt/v5"
)

// UserClaims carry the authenticated username.
type UserClaims struct {
	jwtLib.RegisteredClaims
	Username string `json:"username"`
}
