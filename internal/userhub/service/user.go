package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/arralabs/userhub/internal/userhub/domain"
	"github.com/arralabs/userhub/internal/userhub/store"
	"github.com/arralabs/userhub/pkg/cryptox"
	"github.com/arralabs/userhub/pkg/slogx"
)

// UserService owns profile self-service: reads, fullName/email updates and
// password changes. It never touches role or status.
type UserService struct {
	Store      store.Store
	HashParams cryptox.Params
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

// UpdateProfile mutates fullName and email for the calling account,
// re-validating format and email uniqueness.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (domain.User, error) {
	log := slogx.FromContext(ctx)

	in.Normalize()
	if err := in.Validate(); err != nil {
		return domain.User{}, err
	}

	if err := s.Store.Users().UpdateProfile(ctx, userID, in.FullName, in.Email); err != nil {
		switch {
		case errors.Is(err, store.ErrAlreadyExists):
			return domain.User{}, ErrEmailTaken
		case errors.Is(err, store.ErrNotFound):
			return domain.User{}, ErrUserNotFound
		}
		log.Error("failed to update profile", slog.String("user_id", userID), slog.Any("error", err))
		return domain.User{}, err
	}

	return s.GetUserByID(ctx, userID)
}

// ChangePassword verifies the caller's current password before hashing and
// storing the new one. A wrong current password is an authorization
// failure, not a validation failure.
func (s *UserService) ChangePassword(ctx context.Context, userID string, in ChangePasswordInput) error {
	log := slogx.FromContext(ctx)

	if err := in.Validate(); err != nil {
		return err
	}

	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := cryptox.VerifyPassword(in.CurrentPassword, user.PasswordHash); err != nil {
		log.Info("password change rejected", slog.String("user_id", userID))
		return ErrWrongPassword
	}

	hash, err := cryptox.HashPassword(in.NewPassword, s.HashParams)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return err
	}

	if err := s.Store.Users().UpdatePasswordHash(ctx, userID, hash); err != nil {
		log.Error("failed to store new password", slog.String("user_id", userID), slog.Any("error", err))
		return err
	}

	log.Info("password changed", slog.String("user_id", userID))
	return nil
}
