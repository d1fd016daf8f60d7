package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"order-system-api/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// RefreshTokenTTL is fixed; only the access token lifetime is configurable.
const RefreshTokenTTL = 7 * 24 * time.Hour

type TokenService interface {
	Issue(userID uint, ttl time.Duration) (string, error)
	Verify(token string) (uint, error)
	AccessTokenTTL() time.Duration
}

type tokenServiceImpl struct {
	secret    []byte
	accessTTL time.Duration
}

func NewTokenService(cfg *config.Auth) TokenService {
	return &tokenServiceImpl{
		secret:    []byte(cfg.SecretKey),
		accessTTL: time.Duration(cfg.AccessTokenMinutes) * time.Minute,
	}
}

func (s *tokenServiceImpl) AccessTokenTTL() time.Duration {
	return s.accessTTL
}

func (s *tokenServiceImpl) Issue(userID uint, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		ID:        uuid.NewString(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// Verify is pure computation: signature and expiry only, no store lookup.
func (s *tokenServiceImpl) Verify(token string) (uint, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid {
		return 0, ErrTokenInvalid
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrTokenInvalid
	}

	return uint(userID), nil
}
