package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/arralabs/userhub/internal/userhub/domain"
	"github.com/arralabs/userhub/internal/userhub/store"
	"github.com/arralabs/userhub/pkg/cryptox"
	"github.com/arralabs/userhub/pkg/idx"
	"github.com/arralabs/userhub/pkg/slogx"
)

// BootstrapService seeds the first admin account. This is the only path
// that assigns the admin role; signup and profile update can never set it.
type BootstrapService struct {
	Store      store.Store
	HashParams cryptox.Params

	AdminFullName string
	AdminEmail    string
	AdminPassword string
}

// EnsureAdmin creates the configured admin account when the store holds no
// users at all. It returns true when an account was created. With no
// bootstrap credentials configured it is a no-op.
func (s *BootstrapService) EnsureAdmin(ctx context.Context) (bool, error) {
	log := slogx.FromContext(ctx)

	if s.AdminEmail == "" || s.AdminPassword == "" {
		log.Debug("bootstrap admin not configured, skipping")
		return false, nil
	}

	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return false, fmt.Errorf("bootstrap: check users: %w", err)
	}
	if !empty {
		return false, nil
	}

	in := SignupInput{
		FullName: s.AdminFullName,
		Email:    s.AdminEmail,
		Password: s.AdminPassword,
	}
	in.Normalize()
	if in.FullName == "" {
		in.FullName = "Administrator"
	}
	if err := in.Validate(); err != nil {
		return false, fmt.Errorf("bootstrap: invalid admin credentials: %w", err)
	}

	hash, err := cryptox.HashPassword(in.Password, s.HashParams)
	if err != nil {
		return false, fmt.Errorf("bootstrap: hash password: %w", err)
	}

	admin := domain.User{
		ID:           idx.New().String(),
		FullName:     in.FullName,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		Status:       domain.StatusActive,
	}

	if err := s.Store.Users().CreateUser(ctx, admin); err != nil {
		return false, fmt.Errorf("bootstrap: create admin: %w", err)
	}

	log.Info("bootstrap admin created",
		slog.String("user_id", admin.ID),
		slog.String("email", admin.Email),
	)
	return true, nil
}
