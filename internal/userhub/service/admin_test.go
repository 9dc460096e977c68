package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arralabs/userhub/internal/userhub/domain"
)

func TestAdminServiceListUsers(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	auth := newAuthService(t, st)
	admin := &AdminService{Store: st}

	for i := 0; i < 5; i++ {
		signupUser(t, auth, "User Number", fmt.Sprintf("user%d@example.com", i), "Pass123!")
	}

	users, page, err := admin.ListUsers(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, Pagination{CurrentPage: 1, TotalPages: 3, TotalUsers: 5, UsersPerPage: 2}, page)

	users, page, err = admin.ListUsers(ctx, 3, 2)
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, 3, page.CurrentPage)

	// Past the end is an empty page, not an error.
	users, _, err = admin.ListUsers(ctx, 9, 2)
	require.NoError(t, err)
	require.Empty(t, users)
}

func TestAdminServiceListUsersClamping(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	auth := newAuthService(t, st)
	admin := &AdminService{Store: st}

	signupUser(t, auth, "Ada Lovelace", "ada@example.com", "Pass123!")

	_, page, err := admin.ListUsers(ctx, 0, -3)
	require.NoError(t, err)
	require.Equal(t, 1, page.CurrentPage)
	require.Equal(t, defaultPageSize, page.UsersPerPage)

	_, page, err = admin.ListUsers(ctx, 1, 10_000)
	require.NoError(t, err)
	require.Equal(t, maxPageSize, page.UsersPerPage)
}

func TestAdminServiceDeactivateActivate(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	auth := newAuthService(t, st)
	admin := &AdminService{Store: st}

	adminID := signupUser(t, auth, "Admin Person", "admin@example.com", "Pass123!")
	targetID := signupUser(t, auth, "Ada Lovelace", "ada@example.com", "Pass123!")

	user, err := admin.DeactivateUser(ctx, adminID, targetID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusInactive, user.Status)

	stored, err := st.Users().GetUserByID(ctx, targetID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusInactive, stored.Status)

	user, err = admin.ActivateUser(ctx, adminID, targetID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusActive, user.Status)
}

func TestAdminServiceRedundantTransition(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	auth := newAuthService(t, st)
	admin := &AdminService{Store: st}

	adminID := signupUser(t, auth, "Admin Person", "admin@example.com", "Pass123!")
	targetID := signupUser(t, auth, "Ada Lovelace", "ada@example.com", "Pass123!")

	_, err := admin.ActivateUser(ctx, adminID, targetID)
	require.ErrorIs(t, err, ErrAlreadyActive)

	_, err = admin.DeactivateUser(ctx, adminID, targetID)
	require.NoError(t, err)

	_, err = admin.DeactivateUser(ctx, adminID, targetID)
	require.ErrorIs(t, err, ErrAlreadyInactive)
}

func TestAdminServiceSelfStatusChange(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	auth := newAuthService(t, st)
	admin := &AdminService{Store: st}

	adminID := signupUser(t, auth, "Admin Person", "admin@example.com", "Pass123!")

	_, err := admin.DeactivateUser(ctx, adminID, adminID)
	require.ErrorIs(t, err, ErrSelfStatusChange)

	_, err = admin.ActivateUser(ctx, adminID, adminID)
	require.ErrorIs(t, err, ErrSelfStatusChange)
}

func TestAdminServiceStatusChangeUnknownTarget(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	admin := &AdminService{Store: st}

	_, err := admin.DeactivateUser(ctx, "someone", "missing")
	require.ErrorIs(t, err, ErrUserNotFound)
}
