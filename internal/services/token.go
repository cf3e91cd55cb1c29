package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenIssuer signs session tokens for sessions created without one
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer creates a token issuer
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue generates a signed token for a user
func (t *TokenIssuer) Issue(userID int64) (string, error) {
	now := t.now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"jti":     uuid.New().String(),
		"iat":     now.Unix(),
		"exp":     now.Add(t.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Parse validates a token issued by Issue and returns its user ID and expiry
func (t *TokenIssuer) Parse(tokenString string) (int64, time.Time, error) {
	token, err := jwt.Parse(tokenString, t.key, jwt.WithTimeFunc(t.now))
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, time.Time{}, fmt.Errorf("invalid token claims")
	}

	// numeric claims decode as float64
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, time.Time{}, fmt.Errorf("user_id not found in token")
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return 0, time.Time{}, fmt.Errorf("exp not found in token")
	}

	return int64(userID), exp.Time, nil
}

// Expiry returns when a panel-issued token expires, including tokens that
// already have. Tokens that were typed in by hand or signed elsewhere report
// false.
func (t *TokenIssuer) Expiry(tokenString string) (time.Time, bool) {
	token, err := jwt.Parse(tokenString, t.key, jwt.WithoutClaimsValidation())
	if err != nil {
		return time.Time{}, false
	}

	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func (t *TokenIssuer) key(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return t.secret, nil
}
