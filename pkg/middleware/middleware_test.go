package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"filmorate/pkg/utils"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	var seen string
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = utils.GetRequestID(r.Context())
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if seen == "" || w.Header().Get(RequestIDHeader) != seen {
		t.Fatalf("generated id %q, header %q", seen, w.Header().Get(RequestIDHeader))
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if seen != "abc-123" || w.Header().Get(RequestIDHeader) != "abc-123" {
		t.Fatalf("propagated id %q", seen)
	}
}

func TestLoggerRecordsStatusAndRequestID(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	h := RequestID()(Logger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("hi"))
	})))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/films?count=2", nil))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d log entries", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["status"] != int64(http.StatusTeapot) || fields["bytes"] != int64(2) || fields["query"] != "count=2" {
		t.Errorf("fields = %v", fields)
	}
	if fields["request_id"] == "" {
		t.Error("request_id missing")
	}
}

func TestRecoverReturnsJSON500(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.ErrorLevel)
	h := Recover(zap.New(core))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusInternalServerError || w.Header().Get("Content-Type") != "application/json" {
		t.Fatalf("status %d, content type %q", w.Code, w.Header().Get("Content-Type"))
	}
	if logs.Len() != 1 {
		t.Errorf("panic logged %d times", logs.Len())
	}
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	h := RateLimit(2, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 3)
	for i := range codes {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		codes[i] = w.Code
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("codes = %v", codes)
	}

	if RateLimit(0, time.Minute) == nil {
		t.Fatal("disabled limiter must still return a middleware")
	}
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()

	h := CORS([]string{"http://front.test"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	r := httptest.NewRequest(http.MethodOptions, "/films", nil)
	r.Header.Set("Origin", "http://front.test")
	r.Header.Set("Access-Control-Request-Method", http.MethodPut)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://front.test" {
		t.Fatalf("allow origin = %q", got)
	}
}
