package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arralabs/userhub/internal/userhub/domain"
	"github.com/arralabs/userhub/internal/userhub/store"
	"github.com/arralabs/userhub/internal/userhub/store/drivers/sqlite"
	"github.com/arralabs/userhub/pkg/cryptox"
	"github.com/arralabs/userhub/pkg/httpx"
	"github.com/arralabs/userhub/pkg/idx"
	"github.com/arralabs/userhub/pkg/jwtx"
)

// countingStore wraps a Store and counts user lookups, so tests can assert
// that rejected tokens never reach the database.
type countingStore struct {
	store.Store
	lookups int
}

func (c *countingStore) Users() store.Users {
	return &countingUsers{Users: c.Store.Users(), parent: c}
}

type countingUsers struct {
	store.Users
	parent *countingStore
}

func (c *countingUsers) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	c.parent.lookups++
	return c.Users.GetUserByID(ctx, id)
}

func newMiddlewareFixture(t *testing.T) (*countingStore, jwtx.Signer, jwtx.Verifier) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHS256(testSecret, testIssuer)
	require.NoError(t, err)

	return &countingStore{Store: st}, signer, verifier
}

func seedAccount(t *testing.T, st store.Store, status domain.Status) domain.User {
	t.Helper()

	hash, err := cryptox.HashPassword("Pass123!", testHashParams)
	require.NoError(t, err)

	u := domain.User{
		ID:           idx.New().String(),
		FullName:     "Ada Lovelace",
		Email:        idx.New().String() + "@example.com",
		PasswordHash: hash,
		Role:         domain.RoleUser,
		Status:       status,
	}
	require.NoError(t, st.Users().CreateUser(t.Context(), u))
	return u
}

func issueToken(t *testing.T, signer jwtx.Signer, subject string) string {
	t.Helper()

	token, err := signer.Sign(jwtx.NewAccessClaims(subject, testIssuer, time.Hour, time.Now().UTC()))
	require.NoError(t, err)
	return token
}

func echoUser() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := CurrentUser(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusInternalServerError, "no user in context")
			return
		}
		httpx.WriteData(w, http.StatusOK, "", user.Public())
	})
}

func TestAuthenticatePassesActiveAccount(t *testing.T) {
	cs, signer, verifier := newMiddlewareFixture(t)
	user := seedAccount(t, cs, domain.StatusActive)

	h := httpx.Chain(echoUser(), Authenticate(verifier, cs))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, signer, user.ID))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, cs.lookups)
}

func TestAuthenticateRejectsBeforeStoreLookup(t *testing.T) {
	cs, signer, verifier := newMiddlewareFixture(t)
	seedAccount(t, cs, domain.StatusActive)

	expired, err := signer.Sign(jwtx.NewAccessClaims("whoever", testIssuer, time.Minute, time.Now().UTC().Add(-time.Hour)))
	require.NoError(t, err)

	wrongKeySigner, err := jwtx.NewSignerHS256([]byte("ffffffffffffffffffffffffffffffff"))
	require.NoError(t, err)
	forged, err := wrongKeySigner.Sign(jwtx.NewAccessClaims("whoever", testIssuer, time.Hour, time.Now().UTC()))
	require.NoError(t, err)

	cases := []struct {
		name  string
		authz string
	}{
		{"no header", ""},
		{"not bearer", "Basic abc123"},
		{"garbage token", "Bearer not.a.jwt"},
		{"expired token", "Bearer " + expired},
		{"forged signature", "Bearer " + forged},
	}

	h := httpx.Chain(echoUser(), Authenticate(verifier, cs))

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.authz != "" {
				req.Header.Set("Authorization", tc.authz)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}

	// None of the rejected tokens reached the database.
	require.Equal(t, 0, cs.lookups)
}

func TestAuthenticateDeactivatedAccountIsForbidden(t *testing.T) {
	cs, signer, verifier := newMiddlewareFixture(t)
	user := seedAccount(t, cs, domain.StatusInactive)

	h := httpx.Chain(echoUser(), Authenticate(verifier, cs))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, signer, user.ID))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	// Valid token, dead account: 403, not 401.
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuthenticateUnknownSubject(t *testing.T) {
	cs, signer, verifier := newMiddlewareFixture(t)

	h := httpx.Chain(echoUser(), Authenticate(verifier, cs))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, signer, idx.New().String()))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	cs, signer, verifier := newMiddlewareFixture(t)
	user := seedAccount(t, cs, domain.StatusActive)

	h := httpx.Chain(echoUser(), Authenticate(verifier, cs), RequireRole(domain.RoleAdmin))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, signer, user.ID))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleWithoutAuthenticate(t *testing.T) {
	h := httpx.Chain(echoUser(), RequireRole(domain.RoleAdmin))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
