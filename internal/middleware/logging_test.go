package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ayioka/momo-analysis/internal/logger"
)

func TestLoggingRecordsRequest(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf)

	handler := Logging(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

	out := buf.String()
	if !strings.Contains(out, `"path":"/stats"`) {
		t.Fatalf("expected request path in log output: %s", out)
	}
	if !strings.Contains(out, `"status":418`) {
		t.Fatalf("expected captured status in log output: %s", out)
	}
}

func TestLoggingPutsLoggerIntoContext(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf)

	handler := Logging(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		log.Info().Msg("from the handler")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if !strings.Contains(buf.String(), "from the handler") {
		t.Fatalf("expected the handler to reach the request logger: %s", buf.String())
	}
}
