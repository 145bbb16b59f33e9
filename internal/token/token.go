// Package token issues and verifies the signed session tokens handed out
// on login. Tokens are self-contained HMAC-signed JWTs; the signing key
// and algorithm are process-wide configuration loaded once at startup.
package token

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for every verification failure: bad
// signature, malformed token, unexpected algorithm, or expired.
var ErrInvalidToken = errors.New("invalid token")

// DefaultTTL applies when a caller passes a nonpositive ttl.
const DefaultTTL = 7 * 24 * time.Hour

type Claims struct {
	jwt.RegisteredClaims
}

type Issuer struct {
	secret []byte
	method jwt.SigningMethod
}

// NewIssuer builds an issuer for the given secret and HMAC algorithm
// name (HS256, HS384 or HS512).
func NewIssuer(secret, algorithm string) (*Issuer, error) {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("signing algorithm %q is not an HMAC method", algorithm)
	}
	return &Issuer{
		secret: []byte(secret),
		method: method,
	}, nil
}

// Issue signs a token whose subject is the authenticated username and
// whose expiry is now + ttl. The random jti keeps two tokens issued
// within the same second distinct.
func (i *Issuer) Issue(subject string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	jti, err := randomHex(16)
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(i.method, claims).SignedString(i.secret)
}

func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// Verify validates the signature and expiry of tokenStr and returns the
// decoded claims. All failures collapse to ErrInvalidToken so callers
// cannot distinguish a forged token from an expired one.
func (i *Issuer) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return i.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
