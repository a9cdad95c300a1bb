package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/objectifs/objectifs/internal/apperr"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"validation", apperr.Validation("please provide a name"), http.StatusBadRequest, "please provide a name"},
		{"wrapped validation", fmt.Errorf("create: %w", apperr.Validation("bad date")), http.StatusBadRequest, "bad date"},
		{"unauthorized", apperr.Unauthorized("not authorized"), http.StatusUnauthorized, "not authorized"},
		{"forbidden", apperr.Forbidden("admins only"), http.StatusForbidden, "admins only"},
		{"not found", apperr.NotFound("objective not found"), http.StatusNotFound, "objective not found"},
		{"database hides cause", apperr.Database(errors.New("no such column: secret")), http.StatusBadRequest, "database error"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := classify(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.msg, msg)
		})
	}
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandleWritesErrorEnvelope(t *testing.T) {
	h := Handle(func(w http.ResponseWriter, r *http.Request) error {
		return apperr.NotFound("finance not found")
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/api/finances/x", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	body := decodeEnvelope(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "finance not found", body["error"])
	assert.NotContains(t, body, "data")
}

func TestListNeverSendsNull(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, list[string](rec, nil))

	body := decodeEnvelope(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, []any{}, body["data"])
	assert.EqualValues(t, 0, body["count"])
}

func TestDeletedSendsEmptyObject(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, deleted(rec))
	assert.JSONEq(t, `{"success": true, "data": {}}`, rec.Body.String())
}

func TestDecode(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	require.NoError(t, decode(r, &dst), "empty body is left to the service")

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name": "Run"}`))
	require.NoError(t, decode(r, &dst))
	assert.Equal(t, "Run", dst.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name": `))
	err := decode(r, &dst)
	require.ErrorIs(t, err, apperr.ErrValidation)
	assert.Equal(t, "invalid JSON body", apperr.Message(err))
}

func TestNotFoundRoute(t *testing.T) {
	rec := httptest.NewRecorder()
	Handle(NotFound)(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "route not found", decodeEnvelope(t, rec)["error"])
}
