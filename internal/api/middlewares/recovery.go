package middlewares

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/5w1tchy/isbn-books/internal/api/apperr"
)

func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				if v == http.ErrAbortHandler {
					panic(v)
				}
				rid := GetRequestID(r)
				if rid == "" {
					rid = "unknown"
				}
				slog.ErrorContext(r.Context(), "panic recovered",
					"request_id", rid,
					"method", r.Method,
					"path", r.URL.Path,
					"panic", fmt.Sprint(v),
					"stack", string(debug.Stack()),
				)

				// Don't expose internal errors to client
				apperr.Write(w, nil, apperr.Internal())
			}
		}()
		next.ServeHTTP(w, r)
	})
}
