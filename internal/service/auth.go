package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/student-records/internal/apperror"
	"github.com/sakif/student-records/internal/auth"
	"github.com/sakif/student-records/internal/metrics"
	"github.com/sakif/student-records/internal/model"
	"github.com/sakif/student-records/internal/repository"
)

// MsgLoginFailed is returned for both unknown users and wrong passwords.
const MsgLoginFailed = "Login failed"

// AuthService handles registration and login.
//
//	AuthHandler (HTTP) → AuthService → UserRepository (DB)
//	                                 ↘ TokenService (session JWT)
//
// Passwords are stored as submitted and compared byte for byte.
type AuthService struct {
	users  repository.UserRepository
	tokens *auth.TokenService
	logger *slog.Logger
}

// NewAuthService creates an AuthService with all required dependencies.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// AuthResult bundles the user and the session token issued at login so the
// handler can set the cookie and redirect in one step.
type AuthResult struct {
	User  *model.User
	Token string
}

// Register creates a new account.
//
// There is no lookup before the insert. A taken username is rejected by the
// users table's UNIQUE constraint and comes back as apperror.ErrConflict.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	user := &model.User{Username: in.Username, Password: in.Password}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			s.logger.Info("registration rejected: username taken", slog.String("username", in.Username))
			return nil, err
		}
		s.logger.Error("failed to register user",
			slog.String("username", in.Username),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("registering user: %w", err)
	}

	s.logger.Info("user registered",
		slog.Int64("userID", user.ID),
		slog.String("username", user.Username),
	)
	return user, nil
}

// Login checks the credentials and issues a session token.
//
// It succeeds only if the username exists and the stored password equals
// the submitted one exactly (case-sensitive). Unknown user and wrong
// password return the same apperror.ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	in.Username = strings.TrimSpace(in.Username)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	user, err := s.users.GetByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			metrics.LoginAttempt(false)
			s.logger.Info("login failed: unknown user", slog.String("username", in.Username))
			return nil, apperror.Unauthorized(MsgLoginFailed)
		}
		return nil, fmt.Errorf("looking up user %q: %w", in.Username, err)
	}

	if user.Password != in.Password {
		metrics.LoginAttempt(false)
		s.logger.Info("login failed: wrong password", slog.String("username", in.Username))
		return nil, apperror.Unauthorized(MsgLoginFailed)
	}

	token, err := s.tokens.Generate(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("issuing session for user %d: %w", user.ID, err)
	}

	metrics.LoginAttempt(true)
	s.logger.Info("user logged in",
		slog.Int64("userID", user.ID),
		slog.String("username", user.Username),
	)

	return &AuthResult{User: user, Token: token}, nil
}

// Identify resolves a session token to its identity. Thin delegation so
// callers only need the service package.
func (s *AuthService) Identify(token string) (*auth.Identity, error) {
	id, err := s.tokens.Validate(token)
	if err != nil {
		return nil, fmt.Errorf("service/auth: %w", err)
	}
	return id, nil
}
