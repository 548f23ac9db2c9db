// internal/api/handler/response.go
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"trustpanel-registration/pkg/errors"
)

// Error wraps error messages for consistent JSON responses
type Error struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// WriteJSON sends a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, r *http.Request, data interface{}, status int) {
	render.Status(r, status)
	render.JSON(w, r, data)
}

// WriteError sends a JSON error response with the given status code
func WriteError(w http.ResponseWriter, r *http.Request, err error, status int) {
	slog.Default().Warn("request failed", "path", r.URL.Path, "status", status, "error", err)
	body := Error{
		Status:  status,
		Message: err.Error(),
	}
	if verr, ok := err.(*errors.ValidationError); ok {
		body.Fields = verr.Fields
	}
	WriteJSON(w, r, body, status)
}

// writeServiceError maps the typed errors from the domain layer to statuses.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch e := err.(type) {
	case *errors.ValidationError:
		WriteError(w, r, e, http.StatusBadRequest)
	case *errors.BadRequestError:
		WriteError(w, r, e, http.StatusBadRequest)
	case *errors.ConflictError:
		WriteError(w, r, e, http.StatusConflict)
	case *errors.BusyError:
		WriteError(w, r, e, http.StatusConflict)
	default:
		WriteError(w, r, errors.NewInternalError(), http.StatusInternalServerError)
	}
}
