package http

import (
	"net/http"
	"strconv"

	"github.com/arralabs/userhub/internal/userhub/domain"
	"github.com/arralabs/userhub/internal/userhub/service"
	"github.com/arralabs/userhub/pkg/httpx"
)

type AdminHandler struct {
	AdminService *service.AdminService
}

// userListPayload is the data half of the admin listing response.
type userListPayload struct {
	Users      []domain.PublicUser `json:"users"`
	Pagination service.Pagination  `json:"pagination"`
}

// HandleListUsers godoc
//
//	@Summary		List all users
//	@Description	Returns one page of accounts, newest first. Out-of-range page and limit values are clamped.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			page	query		int				false	"page number, 1-based"	default(1)
//	@Param			limit	query		int				false	"page size"				default(10)
//	@Success		200		{object}	httpx.Envelope	"users and pagination"
//	@Failure		401		{object}	httpx.Envelope	"invalid or missing token"
//	@Failure		403		{object}	httpx.Envelope	"insufficient permissions"
//	@Router			/api/admin/users [get].
func (h *AdminHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	users, pagination, err := h.AdminService.ListUsers(r.Context(), page, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	public := make([]domain.PublicUser, 0, len(users))
	for _, u := range users {
		public = append(public, u.Public())
	}

	httpx.WriteData(w, http.StatusOK, "", userListPayload{
		Users:      public,
		Pagination: pagination,
	})
}

// HandleActivate godoc
//
//	@Summary		Activate a user
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string			true	"target user id"
//	@Success		200	{object}	httpx.Envelope	"updated user"
//	@Failure		400	{object}	httpx.Envelope	"cannot target own account"
//	@Failure		403	{object}	httpx.Envelope	"insufficient permissions"
//	@Failure		404	{object}	httpx.Envelope	"user not found"
//	@Failure		409	{object}	httpx.Envelope	"user is already active"
//	@Router			/api/admin/users/{id}/activate [put].
func (h *AdminHandler) HandleActivate(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, domain.StatusActive)
}

// HandleDeactivate godoc
//
//	@Summary		Deactivate a user
//	@Description	Deactivation does not revoke outstanding tokens; they are rejected at request time by the status check.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string			true	"target user id"
//	@Success		200	{object}	httpx.Envelope	"updated user"
//	@Failure		400	{object}	httpx.Envelope	"cannot target own account"
//	@Failure		403	{object}	httpx.Envelope	"insufficient permissions"
//	@Failure		404	{object}	httpx.Envelope	"user not found"
//	@Failure		409	{object}	httpx.Envelope	"user is already inactive"
//	@Router			/api/admin/users/{id}/deactivate [put].
func (h *AdminHandler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, domain.StatusInactive)
}

func (h *AdminHandler) setStatus(w http.ResponseWriter, r *http.Request, to domain.Status) {
	admin, ok := CurrentUser(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	targetID := r.PathValue("id")
	if targetID == "" {
		httpx.WriteError(w, http.StatusNotFound, "user not found")
		return
	}

	var (
		user    domain.User
		message string
		err     error
	)
	if to == domain.StatusActive {
		user, err = h.AdminService.ActivateUser(r.Context(), admin.ID, targetID)
		message = "user activated"
	} else {
		user, err = h.AdminService.DeactivateUser(r.Context(), admin.ID, targetID)
		message = "user deactivated"
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteData(w, http.StatusOK, message, user.Public())
}
