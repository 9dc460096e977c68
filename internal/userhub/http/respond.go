package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/arralabs/userhub/internal/userhub/service"
	"github.com/arralabs/userhub/pkg/httpx"
	"github.com/arralabs/userhub/pkg/slogx"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// decodeJSON reads a JSON request body into v. Strict mode rejects fields
// the payload type does not declare, which is how the profile path refuses
// role, status and password smuggling.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any, strict bool) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	if strict {
		dec.DisallowUnknownFields()
	}

	if err := dec.Decode(v); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	// Trailing garbage after the JSON document is also a bad request.
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// writeServiceError maps service-layer errors onto the response envelope
// and status codes. Unknown errors are logged and reported as a 500
// without detail.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if ve, ok := service.AsValidationError(err); ok {
		fields := make([]httpx.FieldError, 0, len(ve.Fields))
		for _, f := range ve.Fields {
			fields = append(fields, httpx.FieldError{Field: f.Field, Message: f.Message})
		}
		httpx.WriteFieldErrors(w, http.StatusBadRequest, "validation failed", fields)
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, service.ErrWrongPassword):
		httpx.WriteError(w, http.StatusUnauthorized, "current password is incorrect")
	case errors.Is(err, service.ErrAccountInactive):
		httpx.WriteError(w, http.StatusForbidden, "account is deactivated")
	case errors.Is(err, service.ErrSelfStatusChange):
		httpx.WriteError(w, http.StatusBadRequest, "cannot change the status of your own account")
	case errors.Is(err, service.ErrUserNotFound):
		httpx.WriteError(w, http.StatusNotFound, "user not found")
	case errors.Is(err, service.ErrEmailTaken):
		httpx.WriteError(w, http.StatusConflict, "email already registered")
	case errors.Is(err, service.ErrAlreadyActive):
		httpx.WriteError(w, http.StatusConflict, "user is already active")
	case errors.Is(err, service.ErrAlreadyInactive):
		httpx.WriteError(w, http.StatusConflict, "user is already inactive")
	default:
		slogx.FromContext(r.Context()).Error("request failed", "path", r.URL.Path, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
