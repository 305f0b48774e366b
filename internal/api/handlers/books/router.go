package books

import (
	"net/http"

	"github.com/5w1tchy/isbn-books/internal/api/apperr"
	"github.com/5w1tchy/isbn-books/internal/repo/booksrepo"
)

const (
	allowCollection = "GET, HEAD, POST"
	allowItem       = "GET, HEAD, PUT, PATCH, DELETE"
)

type Handler struct {
	repo *booksrepo.Repo
}

func New(repo *booksrepo.Repo) *Handler {
	return &Handler{repo: repo}
}

// Collection serves /books and /books/.
func (h *Handler) Collection() http.Handler {
	return handlerFunc(func(w http.ResponseWriter, r *http.Request) error {
		switch r.Method {
		case http.MethodGet:
			return h.list(w, r)
		case http.MethodHead:
			return h.headList(w, r)
		case http.MethodPost:
			return h.create(w, r)
		default:
			w.Header().Set("Allow", allowCollection)
			return apperr.RouteNotFound()
		}
	})
}

// Item serves /books/{isbn}.
func (h *Handler) Item() http.Handler {
	return handlerFunc(func(w http.ResponseWriter, r *http.Request) error {
		switch r.Method {
		case http.MethodGet:
			return h.get(w, r)
		case http.MethodHead:
			return h.head(w, r)
		case http.MethodPut, http.MethodPatch:
			return h.update(w, r)
		case http.MethodDelete:
			return h.delete(w, r)
		default:
			w.Header().Set("Allow", allowItem)
			return apperr.RouteNotFound()
		}
	})
}

// handlerFunc lets handlers return errors; apperr.Write renders them.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

func (f handlerFunc) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := f(w, r); err != nil {
		apperr.Write(w, r, err)
	}
}
