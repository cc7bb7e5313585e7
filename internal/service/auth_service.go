package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/timesheet-api/internal/auth"
	"github.com/timesheet-api/internal/metrics"
	"github.com/timesheet-api/internal/models"
	"github.com/timesheet-api/internal/repository"
	"github.com/timesheet-api/internal/validation"
)

// authService is the concrete implementation of AuthService.
// Login matches by email only; the password is required but not checked.
type authService struct {
	users   repository.UserRepository
	tokens  *auth.TokenManager
	metrics metrics.MetricsCollector
	log     zerolog.Logger
}

func newAuthService(d Deps) *authService {
	return &authService{
		users:   d.Repos.User,
		tokens:  d.Tokens,
		metrics: d.Metrics,
		log:     d.Log.With().Str("service", "auth").Logger(),
	}
}

// Login resolves the user by email and issues an access token
func (s *authService) Login(ctx context.Context, email, password string) (*models.LoginResult, error) {
	email = strings.TrimSpace(email)
	if err := validation.ToError(validation.ValidateLogin(email, password)); err != nil {
		s.metrics.RecordLogin(false)
		return nil, reject(s.metrics, "login", err)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		s.metrics.RecordLogin(false)
		s.log.Warn().Str("email", email).Msg("Login with unknown email")
		return nil, reject(s.metrics, "login", models.NewAuthenticationError("invalid credentials"))
	}

	token, expires, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.metrics.RecordLogin(true)
	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("User logged in")

	return &models.LoginResult{User: user, Token: token, ExpiresAt: expires}, nil
}

// Authenticate validates a token and confirms its user still exists with the same role
func (s *authService) Authenticate(ctx context.Context, token string) (models.Caller, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return models.Caller{}, models.NewAuthenticationError("token has expired")
		}
		return models.Caller{}, models.NewAuthenticationError("invalid token")
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return models.Caller{}, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || user.Role != claims.Role {
		return models.Caller{}, models.NewAuthenticationError("token user no longer valid")
	}

	return models.CallerOf(user), nil
}
