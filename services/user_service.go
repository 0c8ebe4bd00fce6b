package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"go.pilab.hu/ssoadmin/domain"
	"go.pilab.hu/ssoadmin/dto"
	serrors "go.pilab.hu/ssoadmin/errors"
	"go.pilab.hu/ssoadmin/internal/metrics"
)

// UserService provisions user accounts for the authorization server.
type UserService struct {
	users  domain.UserRepository
	hasher PasswordHasher
}

// NewUserService creates a new UserService.
func NewUserService(users domain.UserRepository, hasher PasswordHasher) *UserService {
	return &UserService{
		users:  users,
		hasher: hasher,
	}
}

// CreateUser provisions a new user account. Every authority must carry the
// ROLE_ prefix; validation stops at the first offending value. The account
// starts enabled and the password is hashed before storage.
func (s *UserService) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.Response, error) {
	for _, authority := range req.Authorities {
		if !strings.HasPrefix(authority, domain.RolePrefix) {
			return nil, serrors.NewInvalidRequest(
				fmt.Sprintf("authority = %s must start with %s prefix", authority, domain.RolePrefix))
		}
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to hash user password")
		return nil, serrors.NewServerError("error processing password")
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     req.Username,
		PasswordHash: passwordHash,
		Authorities:  req.Authorities,
		Enabled:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, serrors.NewConflict("user already exists")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	metrics.UsersCreatedTotal.Inc()
	log.Ctx(ctx).Info().Str("username", req.Username).Msg("user created")

	return dto.NewResponse("User created"), nil
}

// GetUser returns the stored metadata for username: the enabled flag and
// the authority list in stored order.
func (s *UserService) GetUser(ctx context.Context, username string) (*dto.GetUserResponse, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, serrors.NewNotFound("user not found")
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	return &dto.GetUserResponse{
		Username:    user.Username,
		Enabled:     user.Enabled,
		Authorities: user.Authorities,
	}, nil
}

// ChangeUserPassword rotates a user password after verifying the old one
// against the stored hash. Authorities are preserved. A successful
// rotation toggles the enabled flag to its opposite value.
func (s *UserService) ChangeUserPassword(ctx context.Context, req *dto.ChangeUserPasswordRequest) (*dto.Response, error) {
	user, err := s.users.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, serrors.NewNotFound("user not found")
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := s.hasher.Verify(user.PasswordHash, req.OldPassword); err != nil {
		return nil, serrors.NewInvalidRequest("old password doesn't match")
	}

	passwordHash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to hash new password")
		return nil, serrors.NewServerError("error processing password")
	}

	user.PasswordHash = passwordHash
	user.Enabled = !user.Enabled
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, serrors.NewNotFound("user not found")
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	metrics.PasswordRotationsTotal.Inc()
	log.Ctx(ctx).Info().Str("username", req.Username).Msg("user password changed")

	return dto.NewResponse("User password has been changed"), nil
}
