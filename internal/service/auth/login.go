package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	jwtauth "github.com/resqbite/resqbite-backend/internal/auth"
	"github.com/resqbite/resqbite-backend/internal/domain"
)

// LoginResult is an authenticated user with a fresh token pair.
type LoginResult struct {
	User   domain.User
	Tokens TokenPair
}

// LoginWithPassword authenticates by email and password. Unknown emails and
// wrong passwords are indistinguishable to the caller; both report
// ErrUnauthorized.
func (s *Service) LoginWithPassword(ctx context.Context, email, password string) (LoginResult, error) {
	if email == "" || password == "" {
		return LoginResult{}, domain.NewValidationError("credentials", "email and password required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return LoginResult{}, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
		}
		return LoginResult{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return LoginResult{}, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue tokens: %w", err)
	}

	s.log.InfoContext(ctx, "user logged in", slog.String("user_id", user.ID.String()))

	return LoginResult{User: user, Tokens: tokens}, nil
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued. Revoked, expired, and unknown tokens all report
// ErrUnauthorized.
func (s *Service) Refresh(ctx context.Context, rawRefreshToken string) (TokenPair, error) {
	if rawRefreshToken == "" {
		return TokenPair{}, domain.NewValidationError("refresh_token", "required")
	}

	hash := jwtauth.HashToken(rawRefreshToken)

	stored, err := s.tokens.GetByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return TokenPair{}, fmt.Errorf("unknown refresh token: %w", domain.ErrUnauthorized)
		}
		return TokenPair{}, err
	}
	if stored.IsRevoked() {
		return TokenPair{}, fmt.Errorf("refresh token revoked: %w", domain.ErrUnauthorized)
	}
	if stored.IsExpired(time.Now()) {
		return TokenPair{}, fmt.Errorf("refresh token expired: %w", domain.ErrUnauthorized)
	}

	user, err := s.users.GetByID(ctx, stored.UserID)
	if err != nil {
		return TokenPair{}, err
	}

	if err := s.tokens.Revoke(ctx, hash); err != nil {
		return TokenPair{}, fmt.Errorf("revoke rotated token: %w", err)
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return TokenPair{}, fmt.Errorf("issue tokens: %w", err)
	}

	return tokens, nil
}

// Logout revokes a single refresh token. Revoking an already-revoked or
// unknown token is treated as success; logout is idempotent.
func (s *Service) Logout(ctx context.Context, rawRefreshToken string) error {
	if rawRefreshToken == "" {
		return domain.NewValidationError("refresh_token", "required")
	}

	err := s.tokens.Revoke(ctx, jwtauth.HashToken(rawRefreshToken))
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return nil
}
