package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// tokenClaims carries the authenticated subject. The field name matches the
// stored document id key so existing tokens keep decoding.
type tokenClaims struct {
	UserID string `json:"_id"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies bearer tokens with a process-wide secret
// fixed at construction.
type TokenService struct {
	secret []byte
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// Issue signs an HS256 token for the given user id. Tokens carry an
// issued-at claim but no expiry.
func (s *TokenService) Issue(userID string) (string, error) {
	if len(s.secret) == 0 {
		return "", errors.New("signing secret is empty")
	}
	claims := &tokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify validates the signature and returns the user id the token was
// issued for.
func (s *TokenService) Verify(tokenStr string) (string, error) {
	if len(s.secret) == 0 {
		return "", errors.New("signing secret is empty")
	}
	tok, err := jwt.ParseWithClaims(tokenStr, &tokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !tok.Valid {
		if err == nil {
			err = ErrInvalidToken
		}
		return "", err
	}
	claims, _ := tok.Claims.(*tokenClaims)
	if claims == nil || claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}
