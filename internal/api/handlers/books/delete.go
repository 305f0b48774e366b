package books

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/5w1tchy/isbn-books/internal/api/apperr"
	"github.com/5w1tchy/isbn-books/internal/api/httpx"
	"github.com/5w1tchy/isbn-books/internal/repo/booksrepo"
)

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) error {
	isbn := r.PathValue("isbn")
	if err := h.repo.Delete(r.Context(), isbn); errors.Is(err, booksrepo.ErrNotFound) {
		return apperr.NotFound(isbn)
	} else if err != nil {
		return fmt.Errorf("delete book %s: %w", isbn, err)
	}

	slog.InfoContext(r.Context(), "book deleted", "isbn", isbn)
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "Book deleted"})
	return nil
}
