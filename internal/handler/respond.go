package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/objectifs/objectifs/internal/apperr"
	"github.com/objectifs/objectifs/internal/ctxkeys"
	"github.com/objectifs/objectifs/internal/model"
)

// Envelope is the body of every JSON response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Token   string `json:"token,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Handle adapts a handler that returns its failure. Every error is turned
// into a response by WriteError, so handlers never write error bodies.
func Handle(fn func(w http.ResponseWriter, r *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err != nil {
			WriteError(w, r, err)
		}
	}
}

// WriteError maps err to a status code and an error envelope.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := classify(err)
	switch {
	case status >= http.StatusInternalServerError:
		slog.Error("request failed", "error", err, "method", r.Method, "path", r.URL.Path)
	case apperr.IsDatabase(err):
		slog.Error("database error", "error", err, "method", r.Method, "path", r.URL.Path)
	}
	writeJSON(w, status, Envelope{Error: msg})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest, apperr.Message(err)
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusUnauthorized, apperr.Message(err)
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden, apperr.Message(err)
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, apperr.Message(err)
	case apperr.IsDatabase(err):
		// Driver messages can leak schema details.
		return http.StatusBadRequest, apperr.ErrDatabase.Error()
	}
	return http.StatusInternalServerError, err.Error()
}

func writeJSON(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func ok(w http.ResponseWriter, data any) error {
	writeJSON(w, http.StatusOK, Envelope{Success: true, Data: data})
	return nil
}

func created(w http.ResponseWriter, data any) error {
	writeJSON(w, http.StatusCreated, Envelope{Success: true, Data: data})
	return nil
}

// list always sends an array, never null.
func list[T any](w http.ResponseWriter, items []T) error {
	if items == nil {
		items = []T{}
	}
	n := len(items)
	writeJSON(w, http.StatusOK, Envelope{Success: true, Data: items, Count: &n})
	return nil
}

func deleted(w http.ResponseWriter) error {
	return ok(w, struct{}{})
}

// decode reads a JSON body into dst. An empty body leaves dst untouched so
// that the service reports the missing fields.
func decode(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return apperr.Validation("invalid JSON body")
}

// currentUser is set by the auth middleware on every protected route.
func currentUser(r *http.Request) *model.User {
	return ctxkeys.User(r.Context())
}

// WriteStatus sends an error envelope with an explicit status, for failures
// raised outside any handler.
func WriteStatus(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, Envelope{Error: msg})
}

func Health(w http.ResponseWriter, r *http.Request) error {
	return ok(w, map[string]string{"status": "ok"})
}

// NotFound answers unknown routes with the JSON envelope instead of plain text.
func NotFound(w http.ResponseWriter, r *http.Request) error {
	return apperr.NotFound("route not found")
}
