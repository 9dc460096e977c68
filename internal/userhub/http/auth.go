package http

import (
	"net/http"

	"github.com/arralabs/userhub/internal/userhub/domain"
	"github.com/arralabs/userhub/internal/userhub/service"
	"github.com/arralabs/userhub/pkg/httpx"
	"github.com/arralabs/userhub/pkg/slogx"
)

type AuthHandler struct {
	AuthService *service.AuthService
}

// sessionPayload is the data half of signup and login responses.
type sessionPayload struct {
	User  domain.PublicUser `json:"user"`
	Token string            `json:"token"`
}

// HandleSignup godoc
//
//	@Summary		Register a new account
//	@Description	Creates an active user-role account and returns it with a bearer token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		service.SignupInput	true	"fullName, email, password"
//	@Success		201		{object}	httpx.Envelope		"user and token"
//	@Failure		400		{object}	httpx.Envelope		"validation failed"
//	@Failure		409		{object}	httpx.Envelope		"email already registered"
//	@Router			/api/auth/signup [post].
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var in service.SignupInput
	if !decodeJSON(w, r, &in, false) {
		return
	}

	user, token, err := h.AuthService.Signup(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteData(w, http.StatusCreated, "account created", sessionPayload{
		User:  user.Public(),
		Token: token,
	})
}

// HandleLogin godoc
//
//	@Summary		Log in
//	@Description	Verifies credentials and returns the account with a fresh bearer token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		service.LoginInput	true	"email, password"
//	@Success		200		{object}	httpx.Envelope		"user and token"
//	@Failure		401		{object}	httpx.Envelope		"invalid email or password"
//	@Failure		403		{object}	httpx.Envelope		"account is deactivated"
//	@Router			/api/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var in service.LoginInput
	if !decodeJSON(w, r, &in, false) {
		return
	}

	user, token, err := h.AuthService.Login(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteData(w, http.StatusOK, "logged in", sessionPayload{
		User:  user.Public(),
		Token: token,
	})
}

// HandleMe godoc
//
//	@Summary		Current account
//	@Description	Returns the account the presented token belongs to.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	httpx.Envelope	"user"
//	@Failure		401	{object}	httpx.Envelope	"invalid or missing token"
//	@Failure		403	{object}	httpx.Envelope	"account is deactivated"
//	@Router			/api/auth/me [get].
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}
	httpx.WriteData(w, http.StatusOK, "", user.Public())
}

// HandleLogout godoc
//
//	@Summary		Log out
//	@Description	Acknowledges the logout. Tokens are stateless, so the client discards its copy; the token stays formally valid until expiry.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	httpx.Envelope
//	@Failure		401	{object}	httpx.Envelope	"invalid or missing token"
//	@Router			/api/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	slogx.FromContext(r.Context()).Info("user logged out", "user_id", user.ID)
	httpx.WriteData(w, http.StatusOK, "logged out", nil)
}
