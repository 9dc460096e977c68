package store

import (
	"context"
	"errors"
	"time"

	"github.com/arralabs/userhub/internal/userhub/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. Uniqueness and status-transition invariants lean on the
// driver's atomic single-row insert/update semantics, so no service-level
// locking is needed.
type Store interface {
	Users() Users

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing when fn returns
	// nil and rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store with Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail looks a user up by their normalized (lowercased,
	// trimmed) email.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// A duplicate email returns ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateProfile mutates full_name and email and bumps updated_at.
	// A duplicate email returns ErrAlreadyExists.
	UpdateProfile(ctx context.Context, userID, fullName, email string) error

	// UpdatePasswordHash sets the password_hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID, newHash string) error

	// UpdateLastLogin records a successful login timestamp.
	UpdateLastLogin(ctx context.Context, userID string, at time.Time) error

	// UpdateStatus transitions status from->to as a single conditional
	// write. It returns ErrNotFound when no row holds (id, from), which
	// covers both a missing user and a lost race on the transition.
	UpdateStatus(ctx context.Context, userID string, from, to domain.Status) error

	// ListUsers returns users ordered newest first.
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)

	// CountUsers returns the total number of users.
	CountUsers(ctx context.Context) (int64, error)

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}
