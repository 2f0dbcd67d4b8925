package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// JWTVerifier проверяет токены, подписанные общим секретом (HS256), без обращения к сервису аутентификации
type JWTVerifier struct {
	secret   []byte
	audience string
	now      func() time.Time
}

// NewJWTVerifier создает новый экземпляр проверки токенов. audience пустой - не проверяется
func NewJWTVerifier(secret, audience string) *JWTVerifier {
	return &JWTVerifier{
		secret:   []byte(secret),
		audience: audience,
		now:      time.Now,
	}
}

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Verify проверяет подпись и срок действия токена и возвращает пользователя из claims sub и email
func (v *JWTVerifier) Verify(_ context.Context, token string) (*User, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	var c claims
	parsed, err := parser.ParseWithClaims(token, &c, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	// exp обязателен: jwt/v4 пропускает токены без срока действия
	if c.ExpiresAt == nil || !c.ExpiresAt.After(v.now()) {
		return nil, fmt.Errorf("%w: token expired", ErrInvalidToken)
	}
	if v.audience != "" && !c.VerifyAudience(v.audience, true) {
		return nil, fmt.Errorf("%w: unexpected audience", ErrInvalidToken)
	}

	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: subject is not a user id", ErrInvalidToken)
	}

	return &User{ID: id, Email: c.Email}, nil
}

// IsInvalidToken проверяет, что ошибка означает отклонённый токен, а не сбой проверки
func IsInvalidToken(err error) bool {
	return errors.Is(err, ErrInvalidToken)
}
