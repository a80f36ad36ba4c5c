package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"beverage-backend/internal/httpx"
	"beverage-backend/internal/services"
)

// pathID parses the {id} path segment; a zero UUID with false means the
// handler already wrote a 400.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return uuid.Nil, false
	}
	return id, true
}

// writeServiceError maps service error kinds onto HTTP statuses. Unknown
// errors stay opaque: internals are logged upstream, never leaked.
func writeServiceError(w http.ResponseWriter, err error) {
	switch services.KindOf(err) {
	case services.KindInvalidArgument:
		httpx.JSONError(w, http.StatusBadRequest, err.Error(), nil)
	case services.KindNotFound:
		httpx.JSONError(w, http.StatusNotFound, err.Error(), nil)
	case services.KindDuplicateName, services.KindDuplicateLink, services.KindConflict:
		httpx.JSONError(w, http.StatusConflict, err.Error(), nil)
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
	}
}
