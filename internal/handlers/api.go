package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/imbris22/Chore-Buddy/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError maps service errors onto HTTP statuses. Anything unrecognised
// is logged and reported as a 500 without detail.
func writeError(w http.ResponseWriter, action string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrCircleNotFound),
		errors.Is(err, services.ErrMemberNotFound),
		errors.Is(err, services.ErrChoreNotFound),
		errors.Is(err, services.ErrGroceryItemNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrChoreAlreadyComplete),
		errors.Is(err, services.ErrCircleNameTaken):
		status = http.StatusConflict
	case errors.Is(err, services.ErrChoreNotAssigned):
		status = http.StatusForbidden
	}

	if status == http.StatusInternalServerError {
		slog.Error(action, "error", err)
		writeJSON(w, status, map[string]string{"error": "failed " + action})
		return
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func decodeJSON(r *http.Request, into interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		return fmt.Errorf("%w: malformed request body", services.ErrInvalidInput)
	}
	return nil
}
