package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/arralabs/userhub/internal/userhub/domain"
	"github.com/arralabs/userhub/internal/userhub/store"
	"github.com/arralabs/userhub/pkg/slogx"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// AdminService owns the admin surface: account listing and the
// activate/deactivate lifecycle transitions.
type AdminService struct {
	Store store.Store
}

// Pagination describes one page of the user listing.
type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalUsers   int64 `json:"totalUsers"`
	UsersPerPage int   `json:"usersPerPage"`
}

// ListUsers returns one page of users, newest first. Out-of-range page and
// limit values are clamped rather than rejected.
func (s *AdminService) ListUsers(ctx context.Context, page, limit int) ([]domain.User, Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	total, err := s.Store.Users().CountUsers(ctx)
	if err != nil {
		return nil, Pagination{}, err
	}

	users, err := s.Store.Users().ListUsers(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, Pagination{}, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return users, Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalUsers:   total,
		UsersPerPage: limit,
	}, nil
}

// ActivateUser transitions the target account to active.
func (s *AdminService) ActivateUser(ctx context.Context, adminID, targetID string) (domain.User, error) {
	return s.setStatus(ctx, adminID, targetID, domain.StatusActive)
}

// DeactivateUser transitions the target account to inactive. Outstanding
// tokens stay formally valid; the authentication middleware re-checks
// status on every request, which is where deactivation bites.
func (s *AdminService) DeactivateUser(ctx context.Context, adminID, targetID string) (domain.User, error) {
	return s.setStatus(ctx, adminID, targetID, domain.StatusInactive)
}

func (s *AdminService) setStatus(ctx context.Context, adminID, targetID string, to domain.Status) (domain.User, error) {
	log := slogx.FromContext(ctx)

	target, err := s.Store.Users().GetUserByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}

	// Admins may not toggle themselves; that would allow locking out the
	// last administrator.
	if target.ID == adminID {
		return domain.User{}, ErrSelfStatusChange
	}

	if target.Status == to {
		return domain.User{}, redundantTransition(to)
	}

	// Conditional write: a concurrent toggle surfaces as ErrNotFound here
	// and is reported as the redundant-transition conflict.
	if err := s.Store.Users().UpdateStatus(ctx, target.ID, target.Status, to); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, redundantTransition(to)
		}
		log.Error("failed to update status",
			slog.String("user_id", target.ID),
			slog.String("to", to.String()),
			slog.Any("error", err),
		)
		return domain.User{}, err
	}

	log.Info("user status changed",
		slog.String("user_id", target.ID),
		slog.String("by", adminID),
		slog.String("status", to.String()),
	)

	target.Status = to
	return target, nil
}

func redundantTransition(to domain.Status) error {
	if to == domain.StatusActive {
		return ErrAlreadyActive
	}
	return ErrAlreadyInactive
}
