package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"celltrack/internal/application/orchestrators"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// validate checks request DTO struct tags before input reaches an orchestrator.
var validate = validator.New()

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// apiResponse is the envelope for mutating endpoints.
type apiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// writeError maps application errors onto HTTP responses. Validation
// problems are the client's to fix; save failures carry enough detail for
// the leader to know whether a retry is safe.
func writeError(w http.ResponseWriter, err error) {
	var validation *orchestrators.ValidationError
	if errors.As(err, &validation) {
		writeJSON(w, http.StatusBadRequest, apiResponse{Success: false, Message: validation.Error()})
		return
	}

	var invalid validator.ValidationErrors
	if errors.As(err, &invalid) {
		writeJSON(w, http.StatusBadRequest, apiResponse{Success: false, Message: invalid.Error()})
		return
	}

	var partial *orchestrators.PartialSaveError
	if errors.As(err, &partial) {
		slog.Error("partial_save", "error", err.Error())
		writeJSON(w, http.StatusInternalServerError, apiResponse{Success: false, Message: partial.Error()})
		return
	}

	var persistence *orchestrators.PersistenceError
	if errors.As(err, &persistence) {
		slog.Error("persistence_error", "error", err.Error())
		writeJSON(w, http.StatusInternalServerError, apiResponse{Success: false, Message: "could not " + persistence.Op + ", please retry"})
		return
	}

	internalError(w, err)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields,
// then applies the DTO's validation tags.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	return validate.Struct(v)
}
