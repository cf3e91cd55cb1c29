package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"gizindir-panel/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const maxBodyBytes = 1 << 20

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string                `json:"error"`
	Details []services.FieldError `json:"details,omitempty"`
}

// SuccessResponse is returned by delete endpoints
type SuccessResponse struct {
	Success bool `json:"success"`
}

// respondJSON sends v with the given status code
func respondJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	respondJSON(w, statusCode, ErrorResponse{Error: message})
}

// respondInvalid sends a 400 with per-field details for rejected bodies
func respondInvalid(w http.ResponseWriter, message string, err error) {
	resp := ErrorResponse{Error: message}

	var verr *services.ValidationError
	if errors.As(err, &verr) {
		resp.Details = verr.Fields
	} else {
		resp.Details = []services.FieldError{{Field: "body", Rule: err.Error()}}
	}

	respondJSON(w, http.StatusBadRequest, resp)
}

// parseID reads the {id} path segment; only positive integers are accepted
func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// decodeBody decodes a JSON body into dst, rejecting unknown fields and
// trailing data
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("request body is empty")
		}
		return err
	}
	if dec.More() {
		return fmt.Errorf("request body must contain a single JSON object")
	}
	return nil
}
