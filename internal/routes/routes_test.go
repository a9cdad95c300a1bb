package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/objectifs/objectifs/internal/app"
	"github.com/objectifs/objectifs/internal/config"
	"github.com/objectifs/objectifs/internal/db/dbtest"
	"github.com/objectifs/objectifs/internal/handler"
	"github.com/objectifs/objectifs/internal/model"
)

var testNow = time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)

type client struct {
	t       *testing.T
	handler http.Handler
	app     *app.App
	token   string
}

func newClient(t *testing.T) *client {
	t.Helper()
	cfg := &config.Config{
		AppName:         "Objectifs",
		AppEnv:          "development",
		JWTSecret:       "test-secret",
		JWTExpiry:       time.Hour,
		CORSOrigins:     []string{"*"},
		SweepSchedule:   "0 0 * * *",
		DefaultCurrency: "FCFA",
		ReportLanguage:  "en",
	}
	a, err := app.Build(cfg, dbtest.New(t), nil, func() time.Time { return testNow })
	require.NoError(t, err)

	done := make(chan struct{})
	t.Cleanup(func() { close(done) })
	return &client{t: t, handler: SetupRoutes(a, done), app: a}
}

type response struct {
	status int
	header http.Header
	body   []byte
}

func (r response) envelope(t *testing.T, data any) handler.Envelope {
	t.Helper()
	var env struct {
		handler.Envelope
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(r.body, &env), string(r.body))
	if data != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env.Envelope
}

func (c *client) do(method, path, body string) response {
	c.t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	return response{status: rec.Code, header: rec.Header(), body: rec.Body.Bytes()}
}

func (c *client) register(email string) *model.User {
	c.t.Helper()
	res := c.do(http.MethodPost, "/api/auth/register",
		`{"name": "Aminata", "email": "`+email+`", "password": "correct horse battery"}`)
	require.Equal(c.t, http.StatusCreated, res.status, string(res.body))

	var user model.User
	env := res.envelope(c.t, &user)
	require.True(c.t, env.Success)
	require.NotEmpty(c.t, env.Token)
	c.token = env.Token
	return &user
}

func TestAuthFlow(t *testing.T) {
	c := newClient(t)

	res := c.do(http.MethodGet, "/api/auth/me", "")
	assert.Equal(t, http.StatusUnauthorized, res.status)

	user := c.register("aminata@example.com")
	assert.Equal(t, "aminata@example.com", user.Email)
	assert.NotContains(t, string(c.do(http.MethodGet, "/api/auth/me", "").body), "password")

	res = c.do(http.MethodPost, "/api/auth/register",
		`{"name": "Again", "email": "aminata@example.com", "password": "correct horse battery"}`)
	assert.Equal(t, http.StatusBadRequest, res.status)

	c.token = ""
	res = c.do(http.MethodPost, "/api/auth/login", `{"email": "aminata@example.com", "password": "wrong password!!"}`)
	assert.Equal(t, http.StatusUnauthorized, res.status)

	res = c.do(http.MethodPost, "/api/auth/login", `{"email": "aminata@example.com", "password": "correct horse battery"}`)
	require.Equal(t, http.StatusOK, res.status)
	assert.NotEmpty(t, res.envelope(t, nil).Token)
}

func TestObjectiveLifecycle(t *testing.T) {
	c := newClient(t)
	c.register("aminata@example.com")

	res := c.do(http.MethodPost, "/api/objectives",
		`{"name": "Fajr prayer", "category": "spiritual", "trackingType": "boolean", "frequency": "daily", "startDate": "2024-03-08"}`)
	require.Equal(t, http.StatusCreated, res.status, string(res.body))
	var o model.Objective
	res.envelope(t, &o)

	res = c.do(http.MethodGet, "/api/objectives", "")
	require.Equal(t, http.StatusOK, res.status)
	var objs []model.Objective
	env := res.envelope(t, &objs)
	require.NotNil(t, env.Count)
	assert.Equal(t, 1, *env.Count)
	assert.Len(t, objs[0].Progress, 3, "elapsed days are filled on read")

	res = c.do(http.MethodPatch, "/api/objectives/"+o.ID+"/progress", `{"date": "2024-03-10", "value": true}`)
	require.Equal(t, http.StatusOK, res.status, string(res.body))

	res = c.do(http.MethodPatch, "/api/objectives/"+o.ID+"/progress", `{"date": "2024-03-10"}`)
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "please provide a date and a value", res.envelope(t, nil).Error)

	res = c.do(http.MethodPatch, "/api/objectives/"+o.ID+"/comment", `{"date": "2024-03-10", "comment": "on time"}`)
	require.Equal(t, http.StatusOK, res.status)

	res = c.do(http.MethodPut, "/api/objectives/"+o.ID, `{"description": "before sunrise", "target": ""}`)
	require.Equal(t, http.StatusOK, res.status)

	res = c.do(http.MethodGet, "/api/objectives/statistics", "")
	require.Equal(t, http.StatusOK, res.status)
	var stats map[string]any
	res.envelope(t, &stats)
	assert.EqualValues(t, 1, stats["completedToday"])
	assert.EqualValues(t, 1, stats["totalActiveToday"])
	assert.Contains(t, stats["categories"], "finance")

	res = c.do(http.MethodPost, "/api/objectives/reconcile", "")
	require.Equal(t, http.StatusOK, res.status)

	res = c.do(http.MethodPost, "/api/objectives/"+o.ID+"/resources",
		`{"title": "Prayer times", "type": "link", "url": "https://example.com/times"}`)
	require.Equal(t, http.StatusCreated, res.status, string(res.body))

	// Another user sees nothing of it
	owner := c.token
	c.register("intruder@example.com")
	res = c.do(http.MethodGet, "/api/objectives/"+o.ID, "")
	assert.Equal(t, http.StatusUnauthorized, res.status)
	res = c.do(http.MethodGet, "/api/objectives/"+o.ID+"/resources", "")
	assert.Equal(t, http.StatusUnauthorized, res.status)

	c.token = owner
	res = c.do(http.MethodDelete, "/api/objectives/"+o.ID, "")
	require.Equal(t, http.StatusOK, res.status)
	res = c.do(http.MethodGet, "/api/objectives/"+o.ID, "")
	assert.Equal(t, http.StatusNotFound, res.status)
}

func TestBadRequests(t *testing.T) {
	c := newClient(t)
	c.register("aminata@example.com")

	res := c.do(http.MethodPost, "/api/objectives", `{"name": `)
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "invalid JSON body", res.envelope(t, nil).Error)

	res = c.do(http.MethodPost, "/api/objectives", `{"name": "Run", "category": "sport", "trackingType": "boolean", "frequency": "daily"}`)
	assert.Equal(t, http.StatusBadRequest, res.status)

	res = c.do(http.MethodGet, "/api/nothing-here", "")
	assert.Equal(t, http.StatusNotFound, res.status)
	assert.False(t, res.envelope(t, nil).Success)
}

func TestFinances(t *testing.T) {
	c := newClient(t)
	c.register("aminata@example.com")

	res := c.do(http.MethodPost, "/api/finances", `{"name": "Salary", "type": "income", "amount": 350000}`)
	require.Equal(t, http.StatusCreated, res.status, string(res.body))
	var f model.Finance
	res.envelope(t, &f)
	assert.Equal(t, "FCFA", f.Currency)

	res = c.do(http.MethodGet, "/api/finances/stats", "")
	require.Equal(t, http.StatusOK, res.status)
	var stats model.FinanceStats
	res.envelope(t, &stats)
	assert.Equal(t, "350000", stats.Income.String())
	assert.Len(t, stats.Evolution, 6)

	res = c.do(http.MethodPut, "/api/finances/settings", `{"theme": "dark"}`)
	require.Equal(t, http.StatusOK, res.status)
	var settings model.Settings
	res.envelope(t, &settings)
	assert.Equal(t, "dark", settings.Theme)
	assert.Equal(t, "FCFA", settings.DefaultCurrency)

	res = c.do(http.MethodDelete, "/api/finances/"+f.ID, "")
	require.Equal(t, http.StatusOK, res.status)
}

func TestQuranIsPublic(t *testing.T) {
	c := newClient(t)

	res := c.do(http.MethodGet, "/api/quran/surahs", "")
	require.Equal(t, http.StatusOK, res.status)
	assert.EqualValues(t, model.SurahCount, *res.envelope(t, nil).Count)

	res = c.do(http.MethodGet, "/api/quran/surahs/115", "")
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "invalid surah number", res.envelope(t, nil).Error)

	res = c.do(http.MethodGet, "/api/quran/surahs/abc", "")
	assert.Equal(t, http.StatusBadRequest, res.status)

	res = c.do(http.MethodGet, "/api/quran/surahs/1/verses/3", "")
	assert.Equal(t, http.StatusNotFound, res.status)

	res = c.do(http.MethodGet, "/api/quran/search", "")
	assert.Equal(t, http.StatusBadRequest, res.status)
}

func TestCultureWritesNeedAdmin(t *testing.T) {
	c := newClient(t)
	c.register("editor@example.com")

	body := `{"title": "Ramadan", "content": "# Ramadan\n\nThe month of fasting.", "category": "fasting"}`
	res := c.do(http.MethodPost, "/api/culture", body)
	assert.Equal(t, http.StatusForbidden, res.status)

	_, err := c.app.UserService.SetRole("editor@example.com", model.UserRoleAdmin)
	require.NoError(t, err)

	res = c.do(http.MethodPost, "/api/culture", body)
	require.Equal(t, http.StatusCreated, res.status, string(res.body))

	c.token = ""
	res = c.do(http.MethodGet, "/api/culture?category=fasting", "")
	require.Equal(t, http.StatusOK, res.status)
	var articles []model.Article
	res.envelope(t, &articles)
	require.Len(t, articles, 1)
	assert.Contains(t, articles[0].ContentHTML, "<h1")
}

func TestAIFallsBackWithoutProviders(t *testing.T) {
	c := newClient(t)
	c.register("aminata@example.com")

	res := c.do(http.MethodPost, "/api/ai/conversations", `{}`)
	require.Equal(t, http.StatusCreated, res.status, string(res.body))
	var conv model.Conversation
	res.envelope(t, &conv)

	res = c.do(http.MethodPost, "/api/ai/conversations/"+conv.ID+"/messages", `{"content": "How do I stay consistent?"}`)
	require.Equal(t, http.StatusOK, res.status)
	res.envelope(t, &conv)
	require.Len(t, conv.Messages, 2)
	assert.NotEmpty(t, conv.Messages[1].Content)
}

func TestExportDownloads(t *testing.T) {
	c := newClient(t)
	c.register("aminata@example.com")
	res := c.do(http.MethodPost, "/api/objectives",
		`{"name": "Fajr prayer", "category": "spiritual", "trackingType": "boolean", "frequency": "daily"}`)
	require.Equal(t, http.StatusCreated, res.status)

	token := c.token
	c.token = ""

	res = c.do(http.MethodGet, "/api/export/pdf", "")
	assert.Equal(t, http.StatusUnauthorized, res.status)

	res = c.do(http.MethodGet, "/api/export/pdf?period=monthly&token="+token, "")
	require.Equal(t, http.StatusOK, res.status, string(res.body))
	assert.Equal(t, "application/pdf", res.header.Get("Content-Type"))
	assert.Contains(t, res.header.Get("Content-Disposition"), "objectives-monthly-2024-03-10.pdf")
	assert.True(t, bytes.HasPrefix(res.body, []byte("%PDF")))

	res = c.do(http.MethodGet, "/api/export/excel?period=yearly&token="+token, "")
	assert.Equal(t, http.StatusBadRequest, res.status)

	c.token = token
	res = c.do(http.MethodPost, "/api/export/archive", "")
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "storage not configured", res.envelope(t, nil).Error)
}

func TestHealthAndCORS(t *testing.T) {
	c := newClient(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
