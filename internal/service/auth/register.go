package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/resqbite/resqbite-backend/internal/domain"
)

// RegisterInput holds the sign-up parameters. Name, Address, Phone and
// Description feed the role-specific party row; which of them are required
// depends on the role.
type RegisterInput struct {
	Email       string
	Password    string
	Role        domain.Role
	Name        string
	Address     string
	Phone       *string
	Description *string
}

// Validate checks all fields and collects all errors.
func (i *RegisterInput) Validate() error {
	var errs []domain.FieldError

	email := strings.TrimSpace(i.Email)
	if email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	} else if !strings.Contains(email, "@") || len(email) > 254 {
		errs = append(errs, domain.FieldError{Field: "email", Message: "must be a valid email address"})
	}
	if len(i.Password) < 8 {
		errs = append(errs, domain.FieldError{Field: "password", Message: "min 8 characters"})
	} else if len(i.Password) > 72 {
		// bcrypt truncates beyond 72 bytes
		errs = append(errs, domain.FieldError{Field: "password", Message: "max 72 characters"})
	}
	if !i.Role.IsValid() {
		errs = append(errs, domain.FieldError{Field: "role", Message: "must be restaurant, organization or volunteer"})
	}
	if strings.TrimSpace(i.Name) == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if i.Role != domain.RoleVolunteer && strings.TrimSpace(i.Address) == "" {
		errs = append(errs, domain.FieldError{Field: "address", Message: "required for this role"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// RegisterResult is a freshly created account with its first token pair.
type RegisterResult struct {
	User   domain.User
	Tokens TokenPair
}

// Register creates the user and its party row atomically, then issues the
// first token pair. A duplicate email surfaces as ErrAlreadyExists.
func (s *Service) Register(ctx context.Context, input RegisterInput) (RegisterResult, error) {
	if err := input.Validate(); err != nil {
		return RegisterResult{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return RegisterResult{}, fmt.Errorf("hash password: %w", err)
	}

	var user domain.User
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		user, err = s.users.Create(ctx, domain.User{
			Email:        input.Email,
			PasswordHash: string(hash),
			Role:         input.Role,
		})
		if err != nil {
			return err
		}
		return s.createParty(ctx, user, input)
	})
	if err != nil {
		return RegisterResult{}, err
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return RegisterResult{}, fmt.Errorf("issue tokens: %w", err)
	}

	s.log.InfoContext(ctx, "user registered",
		slog.String("user_id", user.ID.String()),
		slog.String("role", user.Role.String()),
	)

	return RegisterResult{User: user, Tokens: tokens}, nil
}

func (s *Service) createParty(ctx context.Context, user domain.User, input RegisterInput) error {
	switch user.Role {
	case domain.RoleRestaurant:
		_, err := s.restaurants.Create(ctx, domain.Restaurant{
			UserID:  user.ID,
			Name:    input.Name,
			Address: input.Address,
			Phone:   input.Phone,
		})
		return err
	case domain.RoleOrganization:
		_, err := s.organizations.Create(ctx, domain.Organization{
			UserID:      user.ID,
			Name:        input.Name,
			Address:     input.Address,
			Phone:       input.Phone,
			Description: input.Description,
		})
		return err
	case domain.RoleVolunteer:
		_, err := s.volunteers.Create(ctx, domain.Volunteer{
			UserID:      user.ID,
			Name:        input.Name,
			Phone:       input.Phone,
			IsAvailable: true,
		})
		return err
	}
	return fmt.Errorf("unknown role %q: %w", user.Role, domain.ErrValidation)
}
