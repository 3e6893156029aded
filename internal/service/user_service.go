package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/fleetrent/fleetrent/internal/domain"
	"github.com/fleetrent/fleetrent/internal/repository"
)

// UserService handles user management operations.
type UserService struct {
	userRepo repository.UserRepository
	logger   zerolog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger.With().Str("service", "user").Logger(),
	}
}

// CreateUserInput contains the data needed to create a new user.
type CreateUserInput struct {
	Email    string
	Name     string
	Password string
}

// CreateUserOutput contains the result of creating a user.
type CreateUserOutput struct {
	User *domain.User
}

// Create creates a new user account. The email domain is lowercased
// before the user is stored; the local part is kept as given.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*CreateUserOutput, error) {
	if err := s.validateCreateInput(input); err != nil {
		return nil, err
	}

	email := domain.NormalizeEmail(input.Email)

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("failed to check email existence")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	if exists {
		return nil, fmt.Errorf("%w: email '%s'", domain.ErrUserAlreadyExists, email)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		return nil, fmt.Errorf("%w: failed to hash password", ErrInternalError)
	}

	user := domain.NewUser(email, input.Name, string(passwordHash))

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("failed to create user")
		return nil, err
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Str("email", user.Email).
		Msg("user created")

	return &CreateUserOutput{User: user}, nil
}

// CreateSuperuser creates a user with staff and superuser flags set.
// Used by the admin CLI, not exposed over HTTP.
func (s *UserService) CreateSuperuser(ctx context.Context, input CreateUserInput) (*CreateUserOutput, error) {
	out, err := s.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	user := out.User
	user.IsStaff = true
	user.IsSuperuser = true

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error().Err(err).Int64("user_id", user.ID).Msg("failed to promote superuser")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("superuser created")
	return &CreateUserOutput{User: user}, nil
}

// Authenticate verifies user credentials and returns the user.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		// Log but don't expose whether the email exists.
		s.logger.Debug().Str("email", email).Msg("user not found during authentication")
		return nil, domain.ErrInvalidCredentials
	}

	if !user.CanAuthenticate() {
		s.logger.Debug().Str("email", email).Msg("inactive user attempted authentication")
		return nil, domain.ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Debug().Str("email", email).Msg("invalid password during authentication")
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateUserInput contains the updatable profile fields.
// Nil pointers leave the current value untouched.
type UpdateUserInput struct {
	UserID   int64
	Name     *string
	Password *string
}

// Update changes the profile of an existing user.
func (s *UserService) Update(ctx context.Context, input UpdateUserInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}

	if input.Password != nil {
		if len(*input.Password) < MinPasswordLength {
			return nil, ErrInvalidPassword
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to hash password")
			return nil, fmt.Errorf("%w: failed to hash password", ErrInternalError)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error().Err(err).Int64("user_id", user.ID).Msg("failed to update user")
		return nil, err
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("user updated")
	return user, nil
}

// Delete removes a user account. Users that still own vehicles, customers
// or agreements cannot be deleted.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if !errors.Is(err, domain.ErrUserOwnsRecords) && !errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Error().Err(err).Int64("user_id", id).Msg("failed to delete user")
		}
		return err
	}

	s.logger.Info().Int64("user_id", id).Msg("user deleted")
	return nil
}

// List returns all users, most recently created first.
func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.List(ctx)
}

// validateCreateInput validates user creation input.
func (s *UserService) validateCreateInput(input CreateUserInput) error {
	if input.Email == "" {
		return domain.ErrEmailRequired
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return ErrInvalidEmail
	}
	if len(input.Password) < MinPasswordLength {
		return ErrInvalidPassword
	}
	return nil
}
