// Package web holds the shared JSON envelope helpers. Every handler responds
// through these so the envelope shape stays uniform across resources.
package web

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/glitzhand/glitzhand-backend/internal/apperror"
)

// Envelope is the standard response body: a human-readable message plus an
// optional payload keyed by resource name.
type Envelope map[string]interface{}

// Respond writes body as JSON with the given status.
func Respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// OK writes a 200 envelope with a message and payload fields.
func OK(w http.ResponseWriter, message string, payload Envelope) {
	writeEnvelope(w, http.StatusOK, message, payload)
}

// Created writes a 201 envelope with a message and payload fields.
func Created(w http.ResponseWriter, message string, payload Envelope) {
	writeEnvelope(w, http.StatusCreated, message, payload)
}

func writeEnvelope(w http.ResponseWriter, status int, message string, payload Envelope) {
	body := Envelope{"message": message}
	for k, v := range payload {
		body[k] = v
	}
	Respond(w, status, body)
}

// Error maps err to an HTTP status from the apperror taxonomy and writes the
// failure envelope {message, error}.
func Error(w http.ResponseWriter, message string, err error) {
	Respond(w, StatusOf(err), Envelope{"message": message, "error": err.Error()})
}

// StatusOf resolves the HTTP status for an error. Unrecognized errors are
// treated as upstream failures and surface as 500.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, apperror.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperror.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperror.ErrNotFound), errors.Is(err, sql.ErrNoRows):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrInvalidTransition), errors.Is(err, apperror.ErrOutOfStock):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Decode parses a JSON request body into dst, returning a validation error on
// malformed input.
func Decode(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.ErrValidation
	}
	return nil
}
