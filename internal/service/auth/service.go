// Package auth implements registration, password login, and refresh token
// rotation. Registration creates the user row and the role-specific party row
// in one transaction; a half-registered account must not exist.
package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/resqbite/resqbite-backend/internal/auth"
	"github.com/resqbite/resqbite-backend/internal/config"
	"github.com/resqbite/resqbite-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type userRepo interface {
	Create(ctx context.Context, u domain.User) (domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
}

type restaurantRepo interface {
	Create(ctx context.Context, rest domain.Restaurant) (domain.Restaurant, error)
}

type organizationRepo interface {
	Create(ctx context.Context, org domain.Organization) (domain.Organization, error)
}

type volunteerRepo interface {
	Create(ctx context.Context, v domain.Volunteer) (domain.Volunteer, error)
}

type tokenRepo interface {
	Create(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) (domain.RefreshToken, error)
	GetByHash(ctx context.Context, tokenHash string) (domain.RefreshToken, error)
	Revoke(ctx context.Context, tokenHash string) error
	RevokeAllForUser(ctx context.Context, userID uuid.UUID) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// tokenManager is the subset of the JWT manager the service needs. It exists
// so tests can fail token generation on demand.
type tokenManager interface {
	GenerateAccessToken(userID uuid.UUID, role string) (string, error)
	GenerateRefreshToken() (raw string, hash string, err error)
}

var _ tokenManager = (*auth.JWTManager)(nil)

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// TokenPair is what a successful register, login, or refresh hands back.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Service implements the authentication use cases.
type Service struct {
	users         userRepo
	restaurants   restaurantRepo
	organizations organizationRepo
	volunteers    volunteerRepo
	tokens        tokenRepo
	tx            txManager
	jwt           tokenManager
	refreshTTL    time.Duration
	log           *slog.Logger
}

// NewService creates a new auth service.
func NewService(
	log *slog.Logger,
	cfg config.AuthConfig,
	users userRepo,
	restaurants restaurantRepo,
	organizations organizationRepo,
	volunteers volunteerRepo,
	tokens tokenRepo,
	tx txManager,
	jwt tokenManager,
) *Service {
	return &Service{
		users:         users,
		restaurants:   restaurants,
		organizations: organizations,
		volunteers:    volunteers,
		tokens:        tokens,
		tx:            tx,
		jwt:           jwt,
		refreshTTL:    cfg.RefreshTokenTTL,
		log:           log.With("service", "auth"),
	}
}

// issueTokens generates an access/refresh pair and persists the refresh hash.
func (s *Service) issueTokens(ctx context.Context, user domain.User) (TokenPair, error) {
	access, err := s.jwt.GenerateAccessToken(user.ID, user.Role.String())
	if err != nil {
		return TokenPair{}, err
	}

	raw, hash, err := s.jwt.GenerateRefreshToken()
	if err != nil {
		return TokenPair{}, err
	}

	if _, err := s.tokens.Create(ctx, user.ID, hash, time.Now().Add(s.refreshTTL)); err != nil {
		return TokenPair{}, err
	}

	return TokenPair{AccessToken: access, RefreshToken: raw}, nil
}
