package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/arralabs/userhub/internal/userhub/domain"
	"github.com/arralabs/userhub/internal/userhub/store"
	"github.com/arralabs/userhub/pkg/httpx"
	"github.com/arralabs/userhub/pkg/jwtx"
	"github.com/arralabs/userhub/pkg/slogx"
)

type ctxKey int

const ctxKeyUser ctxKey = iota

// CurrentUser returns the authenticated account stored by Authenticate.
func CurrentUser(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(ctxKeyUser).(domain.User)
	return u, ok
}

// Authenticate verifies the bearer token and resolves it to a live
// account. Token verification happens before any store access, so a
// malformed or forged token never costs a database read. A valid token
// whose account has been deactivated is rejected with 403, not 401; the
// token itself is fine, the account is not.
func Authenticate(verifier jwtx.Verifier, st store.Store) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := httpx.BearerToken(r)
			if !ok {
				httpx.WriteError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				httpx.WriteError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := r.Context()
			user, err := st.Users().GetUserByID(ctx, claims.Subject)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					// Account deleted after the token was issued.
					httpx.WriteError(w, http.StatusUnauthorized, "invalid or expired token")
					return
				}
				slogx.FromContext(ctx).Error("failed to resolve account", "user_id", claims.Subject, "err", err)
				httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			if !user.IsActive() {
				httpx.WriteError(w, http.StatusForbidden, "account is deactivated")
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, ctxKeyUser, user)))
		})
	}
}

// RequireRole gates a handler to accounts holding the given role. It must
// sit inside Authenticate in the chain.
func RequireRole(role domain.Role) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := CurrentUser(r.Context())
			if !ok {
				httpx.WriteError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			if user.Role != role {
				httpx.WriteError(w, http.StatusForbidden, "insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
