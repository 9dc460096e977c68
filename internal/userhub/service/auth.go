package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/arralabs/userhub/internal/userhub/domain"
	"github.com/arralabs/userhub/internal/userhub/store"
	"github.com/arralabs/userhub/pkg/cryptox"
	"github.com/arralabs/userhub/pkg/idx"
	"github.com/arralabs/userhub/pkg/slogx"
)

// AuthService owns signup and login: credential creation, verification and
// token issuance.
type AuthService struct {
	Store      store.Store
	Tokens     *TokenService
	HashParams cryptox.Params
}

// Signup validates the input, hashes the password and creates an active
// user-role account, returning it together with a fresh bearer token.
// The role here is always "user"; admin accounts come from the bootstrap
// provisioning path only.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (domain.User, string, error) {
	log := slogx.FromContext(ctx)

	in.Normalize()
	if err := in.Validate(); err != nil {
		return domain.User{}, "", err
	}

	hash, err := cryptox.HashPassword(in.Password, s.HashParams)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, "", err
	}

	user := domain.User{
		ID:           idx.New().String(),
		FullName:     in.FullName,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		Status:       domain.StatusActive,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, "", ErrEmailTaken
		}
		log.Error("failed to create user", slog.Any("error", err))
		return domain.User{}, "", err
	}

	// Re-read for the store-assigned timestamps.
	created, err := s.Store.Users().GetUserByID(ctx, user.ID)
	if err != nil {
		log.Error("failed to load created user", slog.String("user_id", user.ID), slog.Any("error", err))
		return domain.User{}, "", err
	}

	token, err := s.Tokens.Issue(created.ID)
	if err != nil {
		log.Error("failed to issue token", slog.String("user_id", created.ID), slog.Any("error", err))
		return domain.User{}, "", err
	}

	log.Info("user signed up", slog.String("user_id", created.ID))
	return created, token, nil
}

// Login verifies the credentials and issues a token. An unknown email and
// a wrong password both surface as ErrInvalidCredentials; a correct
// password on a deactivated account is the one distinguishable failure.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (domain.User, string, error) {
	log := slogx.FromContext(ctx)

	in.Normalize()
	if err := in.Validate(); err != nil {
		return domain.User{}, "", err
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, "", ErrInvalidCredentials
		}
		log.Error("failed to look up user", slog.Any("error", err))
		return domain.User{}, "", err
	}

	if err := cryptox.VerifyPassword(in.Password, user.PasswordHash); err != nil {
		log.Info("login failed", slog.String("user_id", user.ID))
		return domain.User{}, "", ErrInvalidCredentials
	}

	if !user.IsActive() {
		return domain.User{}, "", ErrAccountInactive
	}

	now := time.Now().UTC()
	if err := s.Store.Users().UpdateLastLogin(ctx, user.ID, now); err != nil {
		log.Error("failed to record login time", slog.String("user_id", user.ID), slog.Any("error", err))
		return domain.User{}, "", err
	}
	user.LastLoginAt = &now

	token, err := s.Tokens.Issue(user.ID)
	if err != nil {
		log.Error("failed to issue token", slog.String("user_id", user.ID), slog.Any("error", err))
		return domain.User{}, "", err
	}

	log.Info("user logged in", slog.String("user_id", user.ID))
	return user, token, nil
}
