package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ems-platform/employee-api/internal/core/domain"
	"github.com/ems-platform/employee-api/internal/core/ports"
)

// LoginThrottle limits repeated failed login attempts per username.
// A nil throttle disables throttling entirely.
type LoginThrottle interface {
	TooManyAttempts(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}

// AuthService verifies credentials and issues signed session tokens.
type AuthService struct {
	repo      ports.UserRepository
	throttle  LoginThrottle
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, throttle LoginThrottle, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, throttle: throttle, jwtSecret: jwtSecret, tokenTTL: tokenTTL, logger: logger}
}

// Login authenticates a username/password pair. Unknown usernames and hash
// mismatches are indistinguishable to the caller: both yield
// ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		blocked, err := s.throttle.TooManyAttempts(ctx, username)
		if err != nil {
			s.logger.Warn().Err(err).Str("username", username).Msg("login throttle check failed")
		} else if blocked {
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, username)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, username)
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, username); err != nil {
			s.logger.Warn().Err(err).Str("username", username).Msg("login throttle reset failed")
		}
	}

	s.logger.Info().Str("username", user.Username).Str("role", user.Role).Msg("login succeeded")

	return &ports.LoginResult{
		Token:     token,
		Username:  user.Username,
		Role:      user.Role,
		ExpiresIn: s.tokenTTL.Milliseconds(),
	}, nil
}

func (s *AuthService) recordFailure(ctx context.Context, username string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, username); err != nil {
		s.logger.Warn().Err(err).Str("username", username).Msg("login throttle record failed")
	}
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.Username,
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
