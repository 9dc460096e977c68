package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arralabs/userhub/internal/userhub/domain"
)

func TestBootstrapServiceEnsureAdmin(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	boot := &BootstrapService{
		Store:         st,
		HashParams:    testHashParams,
		AdminFullName: "Root Admin",
		AdminEmail:    "Root@Example.COM",
		AdminPassword: "Root123!",
	}

	created, err := boot.EnsureAdmin(ctx)
	require.NoError(t, err)
	require.True(t, created)

	admin, err := st.Users().GetUserByEmail(ctx, "root@example.com")
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, admin.Role)
	require.Equal(t, domain.StatusActive, admin.Status)
	require.Equal(t, "Root Admin", admin.FullName)

	// The seeded admin can actually log in.
	auth := newAuthService(t, st)
	user, _, err := auth.Login(ctx, LoginInput{Email: "root@example.com", Password: "Root123!"})
	require.NoError(t, err)
	require.Equal(t, admin.ID, user.ID)
}

func TestBootstrapServiceSkipsWhenNotConfigured(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	boot := &BootstrapService{Store: st, HashParams: testHashParams}

	created, err := boot.EnsureAdmin(ctx)
	require.NoError(t, err)
	require.False(t, created)

	empty, err := st.Users().IsEmpty(ctx)
	require.NoError(t, err)
	require.True(t, empty)
}

func TestBootstrapServiceSkipsWhenUsersExist(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	auth := newAuthService(t, st)

	signupUser(t, auth, "Ada Lovelace", "ada@example.com", "Pass123!")

	boot := &BootstrapService{
		Store:         st,
		HashParams:    testHashParams,
		AdminEmail:    "root@example.com",
		AdminPassword: "Root123!",
	}

	created, err := boot.EnsureAdmin(ctx)
	require.NoError(t, err)
	require.False(t, created)

	_, err = st.Users().GetUserByEmail(ctx, "root@example.com")
	require.Error(t, err)
}

func TestBootstrapServiceRejectsWeakPassword(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	boot := &BootstrapService{
		Store:         st,
		HashParams:    testHashParams,
		AdminEmail:    "root@example.com",
		AdminPassword: "weak",
	}

	created, err := boot.EnsureAdmin(ctx)
	require.Error(t, err)
	require.False(t, created)
}

func TestBootstrapServiceDefaultName(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	boot := &BootstrapService{
		Store:         st,
		HashParams:    testHashParams,
		AdminEmail:    "root@example.com",
		AdminPassword: "Root123!",
	}

	created, err := boot.EnsureAdmin(ctx)
	require.NoError(t, err)
	require.True(t, created)

	admin, err := st.Users().GetUserByEmail(ctx, "root@example.com")
	require.NoError(t, err)
	require.Equal(t, "Administrator", admin.FullName)
}
