package books

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/5w1tchy/isbn-books/internal/api/apperr"
	"github.com/5w1tchy/isbn-books/internal/api/httpx"
	"github.com/5w1tchy/isbn-books/internal/repo/booksrepo"
)

func (h *Handler) get(w http.ResponseWriter, r *http.Request) error {
	isbn := r.PathValue("isbn")
	b, err := h.repo.FetchByISBN(r.Context(), isbn)
	if errors.Is(err, booksrepo.ErrNotFound) {
		return apperr.NotFound(isbn)
	}
	if err != nil {
		return fmt.Errorf("fetch book %s: %w", isbn, err)
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"book": b})
	return nil
}

// HEAD semantics:
// - 200 if the book exists, 404 if not (no body either way)
func (h *Handler) head(w http.ResponseWriter, r *http.Request) error {
	isbn := r.PathValue("isbn")
	_, err := h.repo.FetchByISBN(r.Context(), isbn)
	switch {
	case errors.Is(err, booksrepo.ErrNotFound):
		httpx.WriteHead(w, http.StatusNotFound)
	case err != nil:
		return fmt.Errorf("fetch book %s: %w", isbn, err)
	default:
		httpx.WriteHead(w, http.StatusOK)
	}
	return nil
}
