package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mobilectl/core/internal/domain/entities"
	"github.com/mobilectl/core/internal/infrastructure/config"
	"github.com/mobilectl/core/internal/infrastructure/logger"
	"github.com/mobilectl/core/internal/infrastructure/metrics"
	"github.com/mobilectl/core/internal/ports"
)

const phonebookPath = "/data/phonebook.json"

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type call struct {
	action string
	params ports.ActionParams
}

type fakeActions struct {
	mu     sync.Mutex
	calls  []call
	result entities.Result
}

func (f *fakeActions) Execute(ctx context.Context, action string, params ports.ActionParams) entities.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{action: action, params: params})
	return f.result
}

func (f *fakeActions) last(t *testing.T) call {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.calls)
	return f.calls[len(f.calls)-1]
}

type fakeDevice struct {
	supported bool
}

func (d fakeDevice) PlatformName() string { return "Linux" }
func (d fakeDevice) Supported() bool      { return d.supported }

func testConfig() *config.Config {
	return &config.Config{
		App:       config.AppConfig{Name: "mobilectl", Version: "1.0.0", Environment: "test"},
		Server:    config.ServerConfig{Port: 5000, Host: "127.0.0.1"},
		Phonebook: config.PhonebookConfig{File: phonebookPath},
		System:    config.SystemConfig{Platform: "linux", DryRun: true},
		Security: config.SecurityConfig{
			CORSAllowedOrigins: "*",
			RateLimitRequests:  100,
			RateLimitWindow:    time.Minute,
		},
		Metrics: config.MetricsConfig{Enabled: true},
	}
}

type fixture struct {
	server  *Server
	actions *fakeActions
	fs      afero.Fs
}

func newFixture(t *testing.T, cfg *config.Config) *fixture {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, phonebookPath, []byte("{}"), 0o644))

	actions := &fakeActions{result: entities.Succeeded("ok")}
	srv, err := New(cfg, Dependencies{
		Actions: actions,
		Device:  fakeDevice{supported: true},
		Fs:      fs,
		Metrics: metrics.New(),
	}, logger.NewNop())
	require.NoError(t, err)

	return &fixture{server: srv, actions: actions, fs: fs}
}

func (f *fixture) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeResult(t *testing.T, rec *httptest.ResponseRecorder) entities.Result {
	t.Helper()
	var result entities.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	return result
}

func TestNew_RequiresActions(t *testing.T) {
	_, err := New(testConfig(), Dependencies{}, logger.NewNop())
	assert.Error(t, err)
}

func TestHealth(t *testing.T) {
	f := newFixture(t, testConfig())

	rec := f.do(http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "healthy", "service": "mobilectl", "version": "1.0.0"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestDetailedHealth(t *testing.T) {
	f := newFixture(t, testConfig())

	rec := f.do(http.MethodGet, "/health/detailed", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])

	checks := body["checks"].(map[string]interface{})
	assert.Equal(t, "ok", checks["phonebook"].(map[string]interface{})["status"])
	assert.Equal(t, "Linux", checks["device"].(map[string]interface{})["platform"])
}

func TestDetailedHealth_MissingPhonebook(t *testing.T) {
	f := newFixture(t, testConfig())
	require.NoError(t, f.fs.Remove(phonebookPath))

	rec := f.do(http.MethodGet, "/health/detailed", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"unhealthy"`)

	rec = f.do(http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "phonebook_not_ready")
}

func TestReady(t *testing.T) {
	f := newFixture(t, testConfig())

	rec := f.do(http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ready"`)
}

func TestRoutes(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		body   string
		action string
		param  string
		value  interface{}
	}{
		{"envelope", http.MethodPost, "/api/mobile-control", `{"action": "call", "phone_number": "555"}`, "call", "phone_number", "555"},
		{"list", http.MethodGet, "/api/phonebook", "", "phonebook_list", "", nil},
		{"add", http.MethodPost, "/api/phonebook", `{"name": "Bob", "phone": "1"}`, "phonebook_add", "name", "Bob"},
		{"delete", http.MethodDelete, "/api/phonebook/Bob%20Smith", "", "phonebook_delete", "name", "Bob Smith"},
		{"volume", http.MethodPost, "/api/system/volume", `{"level": 30}`, "volume", "level", json.Number("30")},
		{"brightness", http.MethodPost, "/api/system/brightness", `{"level": 80}`, "brightness", "level", json.Number("80")},
		{"theme", http.MethodPost, "/api/system/theme", `{"mode": "dark"}`, "theme", "mode", "dark"},
		{"call", http.MethodPost, "/api/communication/call", `{"phone": "555"}`, "call", "phone", "555"},
		{"sms", http.MethodPost, "/api/communication/sms", `{"phone": "555", "message": "hi"}`, "sms", "message", "hi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, testConfig())

			rec := f.do(tt.method, tt.target, tt.body)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.True(t, decodeResult(t, rec).Success)

			got := f.actions.last(t)
			assert.Equal(t, tt.action, got.action)
			if tt.param != "" {
				assert.Equal(t, tt.value, got.params[tt.param])
			}
		})
	}
}

func TestFailureStatus(t *testing.T) {
	f := newFixture(t, testConfig())
	f.actions.result = entities.Failed(entities.FailureConflict, "contact 'Bob' already exists")

	rec := f.do(http.MethodPost, "/api/phonebook", `{"name": "Bob", "phone": "1"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"success": false, "message": "contact 'Bob' already exists"}`, rec.Body.String())
}

func TestNotFound(t *testing.T) {
	f := newFixture(t, testConfig())

	rec := f.do(http.MethodGet, "/api/unknown", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	result := decodeResult(t, rec)
	assert.False(t, result.Success)
	assert.Equal(t, "endpoint not found", result.Message)
}

func TestMethodNotAllowed(t *testing.T) {
	f := newFixture(t, testConfig())

	rec := f.do(http.MethodGet, "/api/mobile-control", "")

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "method not allowed", decodeResult(t, rec).Message)
}

func TestMetrics(t *testing.T) {
	f := newFixture(t, testConfig())
	f.do(http.MethodGet, "/api/phonebook", "")

	rec := f.do(http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",path="/api/phonebook",status="200"} 1`)
}

func TestMetricsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Metrics.Enabled = false
	f := newFixture(t, cfg)

	rec := f.do(http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Security.RateLimitRequests = 2
	f := newFixture(t, cfg)

	for i := 0; i < 2; i++ {
		rec := f.do(http.MethodGet, "/api/phonebook", "")
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := f.do(http.MethodGet, "/api/phonebook", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "rate limit exceeded", decodeResult(t, rec).Message)

	// probes are never limited
	rec = f.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestTimeoutReachesActions(t *testing.T) {
	cfg := testConfig()
	cfg.Server.RequestTimeout = time.Second

	fs := afero.NewMemMapFs()
	var deadline bool
	actions := actionFunc(func(ctx context.Context, action string, params ports.ActionParams) entities.Result {
		_, deadline = ctx.Deadline()
		return entities.Succeeded("ok")
	})
	srv, err := New(cfg, Dependencies{Actions: actions, Fs: fs}, logger.NewNop())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/phonebook", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, deadline)
}

type actionFunc func(ctx context.Context, action string, params ports.ActionParams) entities.Result

func (f actionFunc) Execute(ctx context.Context, action string, params ports.ActionParams) entities.Result {
	return f(ctx, action, params)
}

func TestRequestLogging(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	fs := afero.NewMemMapFs()
	srv, err := New(testConfig(), Dependencies{
		Actions: &fakeActions{result: entities.Succeeded("ok")},
		Fs:      fs,
	}, logger.FromZap(zap.New(core)))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/phonebook", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-42")
	srv.Handler().ServeHTTP(httptest.NewRecorder(), req)
	srv.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	entries := logs.FilterField(zap.String("component", "http")).All()
	require.Len(t, entries, 2)

	ok := entries[0].ContextMap()
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "req-42", ok["request_id"])
	assert.Equal(t, "/api/phonebook", ok["path"])
	assert.Equal(t, int64(http.StatusOK), ok["status_code"])

	missing := entries[1].ContextMap()
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, int64(http.StatusNotFound), missing["status_code"])
	assert.Contains(t, missing["error"], "Not Found")
	assert.NotEmpty(t, missing["request_id"])
}
