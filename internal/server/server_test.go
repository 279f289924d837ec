package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/imbris22/Chore-Buddy/internal/config"
	"github.com/imbris22/Chore-Buddy/internal/testutil"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	database := testutil.NewTestDatabase(t)
	cfg := config.Config{
		SessionSecret:  "test-secret",
		Port:           "0",
		Location:       time.UTC,
		AllowedOrigins: []string{"https://app.example"},
	}
	return New(database, cfg, prometheus.NewRegistry()).Handler()
}

func TestServer_Health(t *testing.T) {
	handler := newTestServer(t)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	if recorder.Code != http.StatusOK || recorder.Body.String() != "ok" {
		t.Errorf("unexpected health response %d '%s'", recorder.Code, recorder.Body.String())
	}
}

func TestServer_MetricsExposeDomainCounters(t *testing.T) {
	handler := newTestServer(t)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "chore_buddy_chores_completions_total") {
		t.Error("expected completion counter in metrics output")
	}
}

func TestServer_ProtectedRoutesRequireSession(t *testing.T) {
	handler := newTestServer(t)

	for _, path := range []string{"/board", "/chores", "/rankings", "/grocery", "/members"} {
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, path, nil))
		if recorder.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected status 401, got %d", path, recorder.Code)
		}
	}
}

func TestServer_CORS(t *testing.T) {
	handler := newTestServer(t)

	request := httptest.NewRequest(http.MethodOptions, "/circles", nil)
	request.Header.Set("Origin", "https://app.example")
	request.Header.Set("Access-Control-Request-Method", http.MethodPost)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	if got := recorder.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example" {
		t.Errorf("expected allowed origin header, got '%s'", got)
	}

	request = httptest.NewRequest(http.MethodOptions, "/circles", nil)
	request.Header.Set("Origin", "https://evil.example")
	request.Header.Set("Access-Control-Request-Method", http.MethodPost)
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	if got := recorder.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no allowed origin for unknown site, got '%s'", got)
	}
}

func TestServer_CreateCircleThenBoard(t *testing.T) {
	handler := newTestServer(t)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/circles",
		strings.NewReader(`{"circle_name": "Flat 4B", "member_name": "Alex"}`)))
	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", recorder.Code, recorder.Body.String())
	}

	request := httptest.NewRequest(http.MethodGet, "/board", nil)
	for _, cookie := range recorder.Result().Cookies() {
		request.AddCookie(cookie)
	}
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("expected status 200 with session, got %d", recorder.Code)
	}
}
