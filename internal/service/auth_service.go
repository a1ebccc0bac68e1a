package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/nutrisnack/catalog/internal/auth"
	"github.com/nutrisnack/catalog/internal/domain"
	"github.com/nutrisnack/catalog/internal/pkg/crypto"
	"github.com/nutrisnack/catalog/internal/repository"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// AuthService handles registration, login, and token lifecycle.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   auth.TokenStore
	tokenTTL time.Duration
	logger   zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens auth.TokenStore, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		tokenTTL: tokenTTL,
		logger:   logger.With().Str("service", "auth").Logger(),
	}
}

// RegisterInput contains the data needed to register a user.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// AuthOutput contains the result of a successful register or login.
type AuthOutput struct {
	User  *domain.User
	Token string
}

// Register creates a new customer account and issues a bearer token.
// Accounts created through the public API never carry the admin role.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthOutput, error) {
	if err := s.validateRegisterInput(input); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Error().Err(err).Str("email", input.Email).Msg("failed to check email existence")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	if exists {
		v := domain.NewValidationError()
		v.Add("email", "email is already registered")
		return nil, v
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		return nil, fmt.Errorf("%w: failed to hash password", ErrInternalError)
	}

	user := domain.NewUser(input.Name, input.Email, string(passwordHash))

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			v := domain.NewValidationError()
			v.Add("email", "email is already registered")
			return nil, v
		}
		s.logger.Error().Err(err).Str("email", input.Email).Msg("failed to create user")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Str("email", user.Email).
		Msg("user registered")

	return &AuthOutput{User: user, Token: token}, nil
}

// LoginInput contains login credentials.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and issues a bearer token.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthOutput, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		// Log but don't expose whether the email exists.
		s.logger.Debug().Str("email", input.Email).Msg("user not found during login")
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		s.logger.Debug().Str("email", input.Email).Msg("invalid password during login")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Str("email", user.Email).
		Msg("user logged in")

	return &AuthOutput{User: user, Token: token}, nil
}

// Logout revokes the given bearer token. Revoking an unknown token is
// not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.tokens.Delete(ctx, token); err != nil {
		s.logger.Error().Err(err).Msg("failed to revoke token")
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return nil
}

// issueToken generates an opaque token and stores it against the user.
func (s *AuthService) issueToken(ctx context.Context, userID int64) (string, error) {
	token, err := crypto.GenerateToken()
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to generate token")
		return "", fmt.Errorf("%w: failed to generate token", ErrInternalError)
	}

	if err := s.tokens.Save(ctx, token, userID, s.tokenTTL); err != nil {
		s.logger.Error().Err(err).Msg("failed to save token")
		return "", fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return token, nil
}

// validateRegisterInput validates the input for registering a user.
func (s *AuthService) validateRegisterInput(input RegisterInput) error {
	v := domain.NewValidationError()

	if input.Name == "" {
		v.Add("name", "name is required")
	} else if len(input.Name) > 255 {
		v.Add("name", "name must be at most 255 characters")
	}

	if input.Email == "" {
		v.Add("email", "email is required")
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		v.Add("email", "email must be a valid address")
	}

	if len(input.Password) < MinPasswordLength {
		v.Add("password", "password must be at least 8 characters")
	}

	return v.ErrOrNil()
}
