package http

import (
	"net/http"

	"github.com/arralabs/userhub/internal/userhub/service"
	"github.com/arralabs/userhub/pkg/httpx"
)

type UsersHandler struct {
	UserService *service.UserService
}

// HandleGetProfile godoc
//
//	@Summary		Get own profile
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	httpx.Envelope	"user"
//	@Failure		401	{object}	httpx.Envelope	"invalid or missing token"
//	@Router			/api/users/profile [get].
func (h *UsersHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}
	httpx.WriteData(w, http.StatusOK, "", user.Public())
}

// HandleUpdateProfile godoc
//
//	@Summary		Update own profile
//	@Description	Updates fullName and email only. Any other field in the body, role, status or password included, rejects the request.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		service.UpdateProfileInput	true	"fullName, email"
//	@Success		200		{object}	httpx.Envelope				"updated user"
//	@Failure		400		{object}	httpx.Envelope				"validation failed or unknown field"
//	@Failure		409		{object}	httpx.Envelope				"email already registered"
//	@Router			/api/users/profile [put].
func (h *UsersHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	// Strict decode: privilege escalation by extra fields is a 400.
	var in service.UpdateProfileInput
	if !decodeJSON(w, r, &in, true) {
		return
	}

	updated, err := h.UserService.UpdateProfile(r.Context(), user.ID, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteData(w, http.StatusOK, "profile updated", updated.Public())
}

// HandleChangePassword godoc
//
//	@Summary		Change own password
//	@Description	Requires the current password; the new one must satisfy the strength policy and differ from the current one.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		service.ChangePasswordInput	true	"currentPassword, newPassword"
//	@Success		200		{object}	httpx.Envelope
//	@Failure		400		{object}	httpx.Envelope	"validation failed"
//	@Failure		401		{object}	httpx.Envelope	"current password is incorrect"
//	@Router			/api/users/change-password [put].
func (h *UsersHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	var in service.ChangePasswordInput
	if !decodeJSON(w, r, &in, false) {
		return
	}

	if err := h.UserService.ChangePassword(r.Context(), user.ID, in); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteData(w, http.StatusOK, "password changed", nil)
}
