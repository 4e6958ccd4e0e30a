package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/userhub/internal/config"
	"github.com/phrazzld/userhub/internal/platform/logger"
)

// MinSecretLength is the minimum accepted length of the signing secret.
const MinSecretLength = 32

// accessClockSkew tolerates small clock drift between API replicas when
// validating session tokens. Reset tokens are validated without leeway.
const accessClockSkew = 2 * time.Minute

// HMACService implements JWTService and ResetTokenService with HS256 tokens
// signed by a single shared secret. The "type" claim keeps the two token
// kinds from being used in place of each other.
type HMACService struct {
	signingKey         []byte
	tokenLifetime      time.Duration
	resetTokenLifetime time.Duration
	timeFunc           func() time.Time
}

var (
	_ JWTService        = (*HMACService)(nil)
	_ ResetTokenService = (*HMACService)(nil)
)

// tokenClaims is the wire form of both token kinds.
type tokenClaims struct {
	AccountID *uuid.UUID `json:"uid,omitempty"`
	Email     string     `json:"email,omitempty"`
	TokenType string     `json:"type"`
	jwt.RegisteredClaims
}

// NewJWTService creates an HMACService from the auth configuration.
func NewJWTService(cfg config.AuthConfig) (*HMACService, error) {
	if len(cfg.JWTSecret) < MinSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d characters", MinSecretLength)
	}
	if cfg.TokenLifetimeMinutes <= 0 || cfg.ResetTokenLifetimeMinutes <= 0 {
		return nil, errors.New("token lifetimes must be positive")
	}

	return &HMACService{
		signingKey:         []byte(cfg.JWTSecret),
		tokenLifetime:      time.Duration(cfg.TokenLifetimeMinutes) * time.Minute,
		resetTokenLifetime: time.Duration(cfg.ResetTokenLifetimeMinutes) * time.Minute,
		timeFunc:           time.Now,
	}, nil
}

// GenerateToken implements JWTService.
func (s *HMACService) GenerateToken(ctx context.Context, accountID uuid.UUID) (string, time.Time, error) {
	id := accountID
	claims := s.newClaims(TokenTypeAccess, s.tokenLifetime)
	claims.AccountID = &id
	claims.Subject = accountID.String()

	signed, err := s.sign(ctx, claims)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, claims.ExpiresAt.UTC(), nil
}

// ValidateToken implements JWTService.
func (s *HMACService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	claims, err := s.parse(ctx, tokenString, TokenTypeAccess, accessClockSkew)
	if err != nil {
		return nil, err
	}
	if claims.AccountID == nil || *claims.AccountID == uuid.Nil {
		logger.FromContext(ctx).Debug("access token validation failed: missing account id")
		return nil, ErrInvalidToken
	}

	return &Claims{
		AccountID: *claims.AccountID,
		TokenType: claims.TokenType,
		Subject:   claims.Subject,
		IssuedAt:  claims.IssuedAt.UTC(),
		ExpiresAt: claims.ExpiresAt.UTC(),
		ID:        claims.ID,
	}, nil
}

// IssueResetToken implements ResetTokenService.
func (s *HMACService) IssueResetToken(ctx context.Context, email string) (string, time.Time, error) {
	claims := s.newClaims(TokenTypePasswordReset, s.resetTokenLifetime)
	claims.Email = email

	signed, err := s.sign(ctx, claims)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, claims.ExpiresAt.UTC(), nil
}

// VerifyResetToken implements ResetTokenService.
func (s *HMACService) VerifyResetToken(ctx context.Context, tokenString string) (*ResetClaims, error) {
	claims, err := s.parse(ctx, tokenString, TokenTypePasswordReset, 0)
	if err != nil {
		if errors.Is(err, ErrExpiredToken) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if claims.Email == "" {
		logger.FromContext(ctx).Debug("reset token validation failed: missing email claim")
		return nil, ErrInvalidToken
	}

	return &ResetClaims{
		Email:     claims.Email,
		ID:        claims.ID,
		IssuedAt:  claims.IssuedAt.UTC(),
		ExpiresAt: claims.ExpiresAt.UTC(),
	}, nil
}

func (s *HMACService) newClaims(tokenType string, lifetime time.Duration) *tokenClaims {
	now := s.timeFunc()
	return &tokenClaims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
			ID:        uuid.NewString(),
		},
	}
}

func (s *HMACService) sign(ctx context.Context, claims *tokenClaims) (string, error) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		logger.FromContext(ctx).Error("failed to sign token",
			slog.String("error", err.Error()),
			slog.String("token_type", claims.TokenType),
			slog.String("signing_method", jwt.SigningMethodHS256.Name))
		return "", fmt.Errorf("failed to sign %s token: %w", claims.TokenType, err)
	}
	return signed, nil
}

// parse verifies signature, algorithm, time claims and purpose of a token.
func (s *HMACService) parse(ctx context.Context, tokenString, tokenType string, leeway time.Duration) (*tokenClaims, error) {
	log := logger.FromContext(ctx).With(slog.String("token_type", tokenType))

	if tokenString == "" {
		return nil, ErrMissingToken
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(s.timeFunc),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	}
	if leeway > 0 {
		opts = append(opts, jwt.WithLeeway(leeway))
	}

	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.signingKey, nil
	}, opts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			log.Debug("token validation failed: expired")
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenNotValidYet), errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
			log.Debug("token validation failed: not yet valid")
			return nil, ErrTokenNotYetValid
		default:
			log.Debug("token validation failed",
				slog.String("error", err.Error()),
				slog.String("error_type", fmt.Sprintf("%T", err)))
			return nil, ErrInvalidToken
		}
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.TokenType != tokenType {
		log.Debug("token validation failed: wrong token type", slog.String("actual", claims.TokenType))
		return nil, ErrWrongTokenType
	}

	return claims, nil
}
