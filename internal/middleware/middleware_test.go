package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/objectifs/objectifs/internal/apperr"
	"github.com/objectifs/objectifs/internal/ctxkeys"
	"github.com/objectifs/objectifs/internal/handler"
	"github.com/objectifs/objectifs/internal/model"
)

type tokenTable map[string]*model.User

func (t tokenTable) Authenticate(token string) (*model.User, error) {
	user, ok := t[token]
	if !ok {
		return nil, apperr.Unauthorized("not authorized to access this resource")
	}
	copied := *user
	return &copied, nil
}

var tokens = tokenTable{
	"good": {ID: "u1", Name: "Aminata", PasswordHash: "secret-hash"},
}

func whoAmI(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	_ = json.NewEncoder(w).Encode(user)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) handler.Envelope {
	t.Helper()
	var env handler.Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}

func TestRequireAuth(t *testing.T) {
	h := RequireAuth(tokens)(whoAmI)

	tests := []struct {
		name   string
		header string
		status int
		err    string
	}{
		{"missing", "", http.StatusUnauthorized, "not authorized, no token"},
		{"wrong scheme", "Basic good", http.StatusUnauthorized, "not authorized, no token"},
		{"unknown", "Bearer nope", http.StatusUnauthorized, "not authorized to access this resource"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/objectives", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			env := decodeEnvelope(t, rec)
			assert.False(t, env.Success)
			assert.Equal(t, tt.err, env.Error)
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/api/objectives", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	h(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var user model.User
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&user))
	assert.Equal(t, "u1", user.ID)
}

func TestRequireAuthClearsPasswordHash(t *testing.T) {
	var seen *model.User
	h := RequireAuth(tokens)(func(w http.ResponseWriter, r *http.Request) {
		seen = ctxkeys.User(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer good")
	h(httptest.NewRecorder(), req)

	require.NotNil(t, seen)
	assert.Empty(t, seen.PasswordHash)
}

func TestQueryToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/export/pdf?token=good", nil)

	rec := httptest.NewRecorder()
	RequireAuth(tokens)(whoAmI)(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "plain routes ignore ?token=")

	rec = httptest.NewRecorder()
	RequireAuthOrQueryToken(tokens)(whoAmI)(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRecover(t *testing.T) {
	h := Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", decodeEnvelope(t, rec).Error)
}

func TestRateLimiter(t *testing.T) {
	done := make(chan struct{})
	t.Cleanup(func() { close(done) })

	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, time.Minute, done)
	rl.now = func() time.Time { return now }

	h := rl.Limit(func(w http.ResponseWriter, r *http.Request) {})
	call := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.Header.Set("X-Forwarded-For", ip+", 10.0.0.1")
		rec := httptest.NewRecorder()
		h(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, call("1.2.3.4"))
	assert.Equal(t, http.StatusOK, call("1.2.3.4"))
	assert.Equal(t, http.StatusTooManyRequests, call("1.2.3.4"))
	assert.Equal(t, http.StatusOK, call("5.6.7.8"), "limits are per IP")

	now = now.Add(61 * time.Second)
	assert.Equal(t, http.StatusOK, call("1.2.3.4"))

	now = now.Add(10 * time.Minute)
	rl.cleanup()
	assert.Empty(t, rl.requests)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:5555"
	assert.Equal(t, "192.0.2.1", clientIP(req))

	req.Header.Set("X-Real-IP", " 198.51.100.7 ")
	assert.Equal(t, "198.51.100.7", clientIP(req))
}

func TestCORSPreflight(t *testing.T) {
	h := CORS([]string{"https://app.example.com"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("preflight must not reach the handler")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/objectives", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPatch)
}

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), mark("first"), mark("second"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"first", "second", "handler"}, order)
}

func TestRequestLogging(t *testing.T) {
	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })

	h := RequestLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/quran/surahs", nil))
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "/api/quran/surahs", entry["path"])
	assert.EqualValues(t, http.StatusTeapot, entry["status"])

	buf.Reset()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Empty(t, buf.String())
}
