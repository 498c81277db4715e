package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sharedcustody/custody-calendar/internal/core/domain"
	"github.com/sharedcustody/custody-calendar/internal/core/ports"
)

const pinHashCost = 10

// LoginThrottle counts failed logins per username (Redis).
type LoginThrottle interface {
	Locked(ctx context.Context, username string) (bool, error)
	Fail(ctx context.Context, username string) (int64, error)
	Reset(ctx context.Context, username string) error
}

// AuthService implements registration and login with a hashed 4-digit PIN.
type AuthService struct {
	repo      ports.CredentialRepository
	throttle  LoginThrottle
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
	now       func() time.Time
}

// NewAuthService wires the credential store. throttle may be nil, in which
// case failed logins are not counted.
func NewAuthService(repo ports.CredentialRepository, throttle LoginThrottle, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:      repo,
		throttle:  throttle,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
		now:       time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, username, pin string) (ports.AuthResult, error) {
	canonical := domain.CanonicalUsername(username)
	if strings.TrimSpace(canonical) == "" {
		return ports.AuthResult{}, domain.Invalid("Username is required.")
	}
	if !domain.ValidPIN(pin) {
		return ports.AuthResult{}, domain.Invalid("PIN must be exactly 4 digits.")
	}

	if _, err := s.repo.Find(ctx, canonical); err == nil {
		return ports.AuthResult{}, domain.ErrConflict
	} else if !errors.Is(err, domain.ErrNotFound) {
		return ports.AuthResult{}, fmt.Errorf("register: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), pinHashCost)
	if err != nil {
		return ports.AuthResult{}, fmt.Errorf("register: hash pin: %w", err)
	}

	cred := &domain.Credential{
		Username:    canonical,
		DisplayName: username,
		PinHash:     string(hash),
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.Create(ctx, cred); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return ports.AuthResult{}, err
		}
		return ports.AuthResult{}, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("username", canonical).Msg("user registered")
	return s.issue(canonical)
}

func (s *AuthService) Login(ctx context.Context, username, pin string) (ports.AuthResult, error) {
	canonical := domain.CanonicalUsername(username)
	if strings.TrimSpace(canonical) == "" || pin == "" {
		return ports.AuthResult{}, domain.ErrUnauthorized
	}

	if s.throttle != nil {
		locked, err := s.throttle.Locked(ctx, canonical)
		if err != nil {
			s.log.Warn().Err(err).Str("username", canonical).Msg("throttle check failed, continuing")
		} else if locked {
			return ports.AuthResult{}, domain.ErrTooManyAttempts
		}
	}

	cred, err := s.repo.Find(ctx, canonical)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.recordFailure(ctx, canonical)
			return ports.AuthResult{}, domain.ErrUnauthorized
		}
		return ports.AuthResult{}, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(cred.PinHash), []byte(pin)) != nil {
		s.recordFailure(ctx, canonical)
		return ports.AuthResult{}, domain.ErrUnauthorized
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, canonical); err != nil {
			s.log.Warn().Err(err).Str("username", canonical).Msg("failed to reset login throttle")
		}
	}

	return s.issue(canonical)
}

func (s *AuthService) recordFailure(ctx context.Context, username string) {
	if s.throttle == nil {
		return
	}
	n, err := s.throttle.Fail(ctx, username)
	if err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("failed to record login failure")
		return
	}
	s.log.Debug().Str("username", username).Int64("failures", n).Msg("login failed")
}

func (s *AuthService) issue(username string) (ports.AuthResult, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"username": username,
		"jti":      uuid.NewString(),
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenTTL).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return ports.AuthResult{}, fmt.Errorf("sign token: %w", err)
	}
	return ports.AuthResult{Username: username, Token: signed}, nil
}
