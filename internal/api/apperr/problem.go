package apperr

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/5w1tchy/isbn-books/internal/api/httpx"
)

// Error is the single error shape returned to clients. Message is a string,
// or a []string for validation failures.
type Error struct {
	Status  int `json:"status"`
	Message any `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %v", e.Status, e.Message)
}

func New(status int, message any) *Error {
	return &Error{Status: status, Message: message}
}

// NotFound keeps the historical message without the closing quote; clients
// match on it verbatim.
func NotFound(isbn string) *Error {
	return New(http.StatusNotFound, "There is no book with an isbn '"+isbn)
}

func Conflict(isbn string) *Error {
	return New(http.StatusConflict, "There is already a book with an isbn '"+isbn+"'")
}

func Validation(messages []string) *Error {
	return New(http.StatusBadRequest, messages)
}

func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

func RouteNotFound() *Error {
	return New(http.StatusNotFound, "Not Found")
}

func TooLarge() *Error {
	return New(http.StatusRequestEntityTooLarge, "Payload Too Large")
}

func Internal() *Error {
	return New(http.StatusInternalServerError, "Internal Server Error")
}

type envelope struct {
	Error *Error `json:"error"`
}

// Write renders err as {"error": {"status", "message"}}. Errors that are not
// *Error go through FromDB and otherwise become a logged 500.
func Write(w http.ResponseWriter, r *http.Request, err error) {
	var e *Error
	if !errors.As(err, &e) {
		if mapped, ok := FromDB(err); ok {
			e = mapped
		} else {
			e = Internal()
		}
	}
	if e.Status >= http.StatusInternalServerError && r != nil {
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", r.Header.Get("X-Request-ID"),
			"err", err,
		)
	}
	httpx.WriteJSON(w, e.Status, envelope{Error: e})
}
