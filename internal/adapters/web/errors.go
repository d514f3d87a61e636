package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"smart-erp/internal/store"
)

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, r *http.Request, message, code string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := errorResponse{
		Error:     message,
		Code:      code,
		RequestID: requestIDFromContext(r.Context()),
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// writeJSON writes a JSON response with status 200.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// writeJSONBody encodes v after the caller has already written headers.
func writeJSONBody(w http.ResponseWriter, v any) {
	_ = json.NewEncoder(w).Encode(v)
}

// writeServiceError maps store sentinel errors onto HTTP statuses. Anything
// not recognized is treated as a validation failure, since the store rejects
// bad input with plain wrapped errors.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, r, err.Error(), "NOT_FOUND", http.StatusNotFound)
	case errors.Is(err, store.ErrDuplicateCode):
		writeError(w, r, err.Error(), "DUPLICATE_CODE", http.StatusConflict)
	case errors.Is(err, store.ErrReferenced):
		writeError(w, r, err.Error(), "REFERENCED", http.StatusConflict)
	default:
		writeError(w, r, err.Error(), "VALIDATION", http.StatusBadRequest)
	}
}

// decodeBody decodes a JSON request body into dst, rejecting unknown fields.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_JSON", http.StatusBadRequest)
		return false
	}
	return true
}
