package middlewares

import (
	"net/http"
	"time"
)

// ResponseTime sets X-Response-Time to the time spent before the handler
// first wrote its status.
func ResponseTime(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := newStatusWriter(w)
		sw.onHeader = func(h http.Header) {
			h.Set("X-Response-Time", time.Since(start).String())
		}
		next.ServeHTTP(sw, r)

		// If nothing was written (e.g. an empty 200), stamp it now.
		if !sw.wroteHeader {
			sw.Header().Set("X-Response-Time", time.Since(start).String())
		}
	})
}
