package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid session token")

// セッショントークン（HS256）の発行と検証。
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

func (i *TokenIssuer) TTL() time.Duration {
	return i.ttl
}

// 新しいセッションIDでトークンを作る
func (i *TokenIssuer) Issue(now time.Time) (sessionID string, token string, expiresAt time.Time, err error) {
	sessionID = uuid.NewString()
	expiresAt = now.Add(i.ttl)

	claims := jwt.MapClaims{
		"sid": sessionID,
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", "", time.Time{}, err
	}
	return sessionID, signed, expiresAt, nil
}

// トークンを検証してセッションIDを返す
func (i *TokenIssuer) Parse(raw string) (string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return i.secret, nil
	})
	if err != nil || token == nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", ErrInvalidToken
	}
	if _, err := uuid.Parse(sid); err != nil {
		return "", ErrInvalidToken
	}
	return sid, nil
}
