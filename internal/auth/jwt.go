// Package auth issues and verifies the signed tokens that back a persisted
// session. A token binds the session to one account id and expires after
// the configured lifetime.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/ecovate/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

const issuer = "ecovate"

// Claims carries the standard registered claims; Subject is the account id.
type Claims struct {
	jwt.RegisteredClaims
}

// now is a seam for tests.
var now = time.Now

// GenerateToken signs an HS256 token for accountID. A non-positive validity
// produces a token without expiry.
func GenerateToken(accountID string, secretKey []byte, validity time.Duration) (string, error) {
	issuedAt := now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   issuer,
			Subject:  accountID,
			IssuedAt: jwt.NewNumericDate(issuedAt),
		},
	}
	if validity > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(issuedAt.Add(validity))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString(secretKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return s, nil
}

// GetAccountIDFromToken verifies tokenString and returns its subject.
// Expired tokens yield common.ErrTokenExpired; any other verification
// failure yields an error wrapping common.ErrInvalidToken.
func GetAccountIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}
