package router

import (
	"net/http"

	"github.com/5w1tchy/isbn-books/internal/api/apperr"
	"github.com/5w1tchy/isbn-books/internal/api/handlers/books"
	"github.com/5w1tchy/isbn-books/internal/repo/booksrepo"
)

func Router(repo *booksrepo.Repo) http.Handler {
	mux := http.NewServeMux()

	// Books (method dispatch lives in the handler so unknown methods get the
	// JSON 404 envelope instead of the mux's plain 405)
	h := books.New(repo)
	mux.Handle("/books", h.Collection())
	mux.Handle("/books/{$}", h.Collection())
	mux.Handle("/books/{isbn}", h.Item())

	// Everything else
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		apperr.Write(w, r, apperr.RouteNotFound())
	})

	return mux
}
