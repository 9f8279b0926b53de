package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	gatewayhttp "agent-gateway/internal/gateway/delivery/http"
)

type nopLogger struct{}

func (nopLogger) Debug(ctx context.Context, arg ...any)                    {}
func (nopLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (nopLogger) Info(ctx context.Context, arg ...any)                     {}
func (nopLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (nopLogger) Warn(ctx context.Context, arg ...any)                     {}
func (nopLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (nopLogger) Error(ctx context.Context, arg ...any)                    {}
func (nopLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (nopLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (nopLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (nopLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (nopLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (nopLogger) Panic(ctx context.Context, arg ...any)                    {}
func (nopLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

type mockRegistrar struct {
	healthy  bool
	services []string
	lastSync time.Time
	synced   bool
	syncN    int
	syncErr  error
}

func (m *mockRegistrar) Healthy(ctx context.Context) bool { return m.healthy }
func (m *mockRegistrar) Services() []string               { return m.services }
func (m *mockRegistrar) LastSync() (time.Time, bool)      { return m.lastSync, m.synced }
func (m *mockRegistrar) SyncOnce(ctx context.Context) (int, error) {
	return m.syncN, m.syncErr
}

func newTestRouter(reg gatewayhttp.Registrar) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	gatewayhttp.RegisterRoutes(r, gatewayhttp.New(nopLogger{}, reg))
	return r
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&mockRegistrar{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("unexpected status: %s", body["status"])
	}
}

func TestStatus(t *testing.T) {
	t.Run("Gateway healthy with snapshot", func(t *testing.T) {
		syncedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		r := newTestRouter(&mockRegistrar{
			healthy:  true,
			services: []string{"translator", "summarizer"},
			lastSync: syncedAt,
			synced:   true,
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/status", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if body["status"] != "running" {
			t.Errorf("unexpected status: %v", body["status"])
		}
		if body["kong_status"] != "healthy" {
			t.Errorf("unexpected kong_status: %v", body["kong_status"])
		}
		if body["services_count"] != float64(2) {
			t.Errorf("unexpected services_count: %v", body["services_count"])
		}
		if body["last_sync"] != "2025-06-01T12:00:00Z" {
			t.Errorf("unexpected last_sync: %v", body["last_sync"])
		}
	})

	t.Run("Gateway unreachable before first sync", func(t *testing.T) {
		r := newTestRouter(&mockRegistrar{})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/status", nil))

		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if body["kong_status"] != "unreachable" {
			t.Errorf("unexpected kong_status: %v", body["kong_status"])
		}
		if _, ok := body["last_sync"]; ok {
			t.Error("last_sync must be omitted before the first cycle")
		}
	})
}

func TestServices(t *testing.T) {
	r := newTestRouter(&mockRegistrar{services: []string{"translator"}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/services", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Services []string `json:"services"`
		Count    int      `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if body.Count != 1 || len(body.Services) != 1 || body.Services[0] != "translator" {
		t.Errorf("unexpected body: %+v", body)
	}
}

func TestSync(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r := newTestRouter(&mockRegistrar{syncN: 3})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/sync", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body struct {
			Registered int `json:"registered"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if body.Registered != 3 {
			t.Errorf("unexpected registered count: %d", body.Registered)
		}
	})

	t.Run("Discovery failure", func(t *testing.T) {
		r := newTestRouter(&mockRegistrar{syncErr: errors.New("discovery down")})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/sync", nil))

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}
