// Package jwt issues and verifies the service's bearer tokens.
package jwt

import (
	"time"

	errors "github.com/Laisky/errors/v2"
	jwtLib "github.com/golang-jwt/jwt/v5"
)

// JWT signs and parses HS256 tokens with the shared secret.
type JWT struct {
	secret []byte
}

// New creates a JWT helper.
func New(secret []byte) (*JWT, error) {
	if len(secret) == 0 {
		return nil, errors.New("jwt secret is required")
	}
	return &JWT{secret: secret}, nil
}

// Sign issues a token for the user expiring after expires.
func (j *JWT) Sign(username string, expires time.Duration) (string, error) {
	now := time.Now()
	claims := &UserClaims{
		RegisteredClaims: jwtLib.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwtLib.NewNumericDate(now),
			ExpiresAt: jwtLib.NewNumericDate(now.Add(expires)),
		},
		Username: username,
	}

	token, err := jwtLib.NewWithClaims(jwtLib.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}

	return token, nil
}

// Parse verifies the token signature and expiry and returns its claims.
func (j *JWT) Parse(token string) (*UserClaims, error) {
	claims := &UserClaims{}
	parsed, err := jwtLib.ParseWithClaims(token, claims,
		func(*jwtLib.Token) (any, error) { return j.secret, nil },
		jwtLib.WithValidMethods([]string{jwtLib.SigningMethodHS256.Alg()}),
		jwtLib.WithExpirationRequired(),
	)
	if err != nil {
		return nil, errors.Wrap(err, "parse token")
	}
	if !parsed.Valid {
		return nil, errors.New("token invalid")
	}

	return claims, nil
}
