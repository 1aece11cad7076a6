package credential

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken        = errors.New("invalid token")
	ErrSecretNotConfigured = errors.New("token secret is not configured")
)

const DefaultTokenTTL = 30 * 24 * time.Hour

// TokenUser is the identity embedded in every token: { "user": { "id": ... } }.
type TokenUser struct {
	Id string `json:"id"`
}

type Claims struct {
	User TokenUser `json:"user"`
	jwt.RegisteredClaims
}

type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (t *TokenIssuer) Issue(userId uuid.UUID) (string, error) {
	if len(t.secret) == 0 {
		return "", ErrSecretNotConfigured
	}

	now := t.now()
	claims := Claims{
		User: TokenUser{Id: userId.String()},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify parses tokenStr and returns the user id it was issued for.
func (t *TokenIssuer) Verify(tokenStr string) (uuid.UUID, error) {
	if len(t.secret) == 0 {
		return uuid.Nil, ErrSecretNotConfigured
	}

	var claims Claims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(tk *jwt.Token) (interface{}, error) {
		if _, ok := tk.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tk.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	userId, err := uuid.Parse(claims.User.Id)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return userId, nil
}
