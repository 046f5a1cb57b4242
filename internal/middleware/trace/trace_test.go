package trace

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	applog "budgeteer/internal/log"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestMiddlewareAssignsRequestID(t *testing.T) {
	captureLogs(t)

	var seen string
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/state", nil))

	if seen == "" || !strings.HasPrefix(seen, "req_") {
		t.Fatalf("request id = %q", seen)
	}
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestMiddlewareLogsLifecycleFields(t *testing.T) {
	buf := captureLogs(t)

	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/reset", nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("log lines = %d, want start and completion", len(lines))
	}

	var completion map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &completion); err != nil {
		t.Fatalf("decode completion log: %v", err)
	}
	if completion[applog.FieldComponent] != applog.ComponentTrace {
		t.Fatalf("component = %v", completion[applog.FieldComponent])
	}
	if completion[applog.FieldMethod] != http.MethodPost || completion[applog.FieldPath] != "/api/reset" {
		t.Fatalf("method/path = %v/%v", completion[applog.FieldMethod], completion[applog.FieldPath])
	}
	if completion[applog.FieldStatusCode] != float64(http.StatusTeapot) {
		t.Fatalf("status_code = %v", completion[applog.FieldStatusCode])
	}
	if _, ok := completion[applog.FieldRequestID].(string); !ok {
		t.Fatalf("request id missing from completion log")
	}
	if _, ok := completion[applog.FieldDuration]; !ok {
		t.Fatalf("duration missing from completion log")
	}
}
