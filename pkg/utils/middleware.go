package utils

import "net/http"

type Middleware func(http.Handler) http.Handler

// ApplyMiddleware wraps handler so that the first middleware listed is the
// outermost one, i.e. the first to see the request.
func ApplyMiddleware(handler http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		if middlewares[i] != nil {
			handler = middlewares[i](handler)
		}
	}
	return handler
}
