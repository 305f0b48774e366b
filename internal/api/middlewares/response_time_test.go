package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	mw "github.com/5w1tchy/isbn-books/internal/api/middlewares"
)

func TestResponseTime(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(10 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	mw.ResponseTime(handler).ServeHTTP(rec, httptest.NewRequest("GET", "/test", nil))

	d, err := time.ParseDuration(rec.Header().Get("X-Response-Time"))
	if err != nil {
		t.Fatalf("X-Response-Time not a duration: %v", err)
	}
	if d < 10*time.Millisecond {
		t.Errorf("Response time too small: %s", d)
	}
}

func TestResponseTime_WithWrite(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("test response"))
	})

	rec := httptest.NewRecorder()
	mw.ResponseTime(handler).ServeHTTP(rec, httptest.NewRequest("GET", "/test", nil))

	if rec.Header().Get("X-Response-Time") == "" {
		t.Error("Expected X-Response-Time header when using Write")
	}
}

func TestResponseTime_NothingWritten(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	rec := httptest.NewRecorder()
	mw.ResponseTime(handler).ServeHTTP(rec, httptest.NewRequest("GET", "/test", nil))

	if rec.Header().Get("X-Response-Time") == "" {
		t.Error("Expected X-Response-Time header on empty response")
	}
}
