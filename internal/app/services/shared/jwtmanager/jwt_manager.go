package jwtmanager

import (
	"availability-service/internal/pkg/constvars"
	"availability-service/internal/pkg/utils"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

// AccessClaims are the claims carried by a practitioner access token.
type AccessClaims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// JWTManager signs and verifies HS256 access tokens.
type JWTManager struct {
	log    *zap.Logger
	secret []byte
}

type CreateTokenInput struct {
	Subject string
	Roles   []string
	TTL     time.Duration
}

type CreateTokenOutput struct {
	Token string
}

type VerifyTokenOutput struct {
	Subject string
	Roles   []string
}

func NewJWTManager(secret string, log *zap.Logger) (*JWTManager, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("JWT_SECRET is empty")
	}
	return &JWTManager{log: log, secret: []byte(secret)}, nil
}

// CreateToken is used by tooling and tests. Tokens for real sessions are
// issued by the platform identity service.
func (j *JWTManager) CreateToken(ctx context.Context, in *CreateTokenInput) (*CreateTokenOutput, error) {
	if in == nil || strings.TrimSpace(in.Subject) == "" {
		return nil, fmt.Errorf("subject is required")
	}

	now := time.Now().UTC()
	claims := AccessClaims{
		Roles: in.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   in.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(in.TTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return nil, err
	}
	return &CreateTokenOutput{Token: signed}, nil
}

// VerifyToken validates signature and expiry and returns subject and roles.
func (j *JWTManager) VerifyToken(ctx context.Context, token string) (*VerifyTokenOutput, error) {
	requestID := utils.RequestIDFromContext(ctx)
	j.log.Debug("JWTManager.VerifyToken called", zap.String(constvars.LoggingRequestIDKey, requestID))

	if strings.TrimSpace(token) == "" {
		return nil, errors.New(constvars.ErrDevAuthTokenMissing)
	}

	claims := &AccessClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("%s: %v", constvars.ErrDevAuthSigningMethod, t.Header["alg"])
		}
		return j.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, errors.New(constvars.ErrDevAuthTokenInvalidOrExpired)
	}
	if claims.Subject == "" {
		return nil, errors.New(constvars.ErrDevAuthMissingSubject)
	}

	return &VerifyTokenOutput{Subject: claims.Subject, Roles: claims.Roles}, nil
}
