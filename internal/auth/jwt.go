// Package auth mints and verifies the signed session tokens of the API.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenType tells access tokens from refresh tokens
type TokenType string

// Token types
const (
	TokenAccess  TokenType = "access"
	TokenRefresh TokenType = "refresh"
)

// TokenPair is issued on login, registration and refresh
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Claims identify the user a token was issued to
type Claims struct {
	UserID int64     `json:"uid"`
	Email  string    `json:"email"`
	Type   TokenType `json:"typ"`
	jwt.RegisteredClaims
}

// MintTokens signs a short-lived access token and a long-lived refresh token
func MintTokens(userID int64, email, secret string, accessTTL, refreshTTL time.Duration) (TokenPair, error) {
	now := time.Now()
	at, err := sign(userID, email, secret, TokenAccess, now, accessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	rt, err := sign(userID, email, secret, TokenRefresh, now, refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: at, RefreshToken: rt}, nil
}

func sign(userID int64, email, secret string, typ TokenType, now time.Time, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		Email:  email,
		Type:   typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	return token.SignedString([]byte(secret))
}

// ParseClaims verifies tokenStr and requires it to be of type want.
// A refresh token is never accepted where an access token is expected, and
// the other way round.
func ParseClaims(tokenStr, secret string, want TokenType) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	c, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if c.Type != want {
		return nil, fmt.Errorf("%w: got %q token, want %q", jwt.ErrTokenInvalidClaims, c.Type, want)
	}
	return c, nil
}
