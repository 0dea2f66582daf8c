package utils // package utils provides helper functions for token creation and hashing

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens

	"github.com/iliyamo/social-blog/internal/model"
)

// ErrInvalidToken is returned for every verification failure: bad
// signature, malformed payload, unexpected algorithm or expired claim.
// Callers are not told which one it was, so a tampered token and a
// garbled one are indistinguishable from the outside.
var ErrInvalidToken = errors.New("invalid token")

// NewAccessToken builds and signs an HS256 JWT for an identity. The
// claims carry the user id as "sub", the username, and the issue time.
// A ttlMin of zero or less omits the "exp" claim entirely, producing a
// non-expiring token; deployments opt into expiry via configuration.
func NewAccessToken(secret string, id model.Identity, ttlMin int) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":      id.ID,
		"username": id.Username,
		"iat":      now.Unix(),
	}
	if ttlMin > 0 {
		claims["exp"] = now.Add(time.Duration(ttlMin) * time.Minute).Unix()
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// ParseAccessToken verifies a raw token against the secret and
// reconstructs the identity it was issued for. The signing method is
// pinned to HMAC so a token signed with a different algorithm is
// rejected. When the token carries an "exp" claim the library checks
// it during parsing.
func ParseAccessToken(secret, raw string) (model.Identity, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return model.Identity{}, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return model.Identity{}, ErrInvalidToken
	}
	// Numeric JSON values decode as float64.
	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return model.Identity{}, ErrInvalidToken
	}
	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return model.Identity{}, ErrInvalidToken
	}
	return model.Identity{ID: uint64(sub), Username: username}, nil
}
