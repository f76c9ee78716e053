package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"entregas/internal/config"
	"entregas/internal/domain"
	"entregas/internal/port"
)

// Claims are the JWT claims issued on operator login.
type Claims struct {
	OperatorID int64  `json:"codusu"`
	CompanyID  int64  `json:"codemp"`
	Username   string `json:"nomeusu"`
	jwt.RegisteredClaims
}

// AuthService authenticates operators and validates access tokens.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *domain.Operator, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	operators port.OperatorRepository
	cfg       config.JWTConfig
}

// NewAuthService creates a new AuthService implementation.
func NewAuthService(operators port.OperatorRepository, cfg config.JWTConfig) AuthService {
	return &authService{operators: operators, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, username, password string) (string, *domain.Operator, error) {
	op, err := s.operators.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if op.Active != "S" {
		return "", nil, domain.ErrOperatorInactive
	}
	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	claims := Claims{
		OperatorID: op.ID,
		CompanyID:  op.CompanyID,
		Username:   op.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			Subject:   fmt.Sprintf("%d", op.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTokenExpiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", nil, fmt.Errorf("signing token: %w", err)
	}
	return signed, op, nil
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrUnauthorized
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}
