package books

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/5w1tchy/isbn-books/internal/api/apperr"
	"github.com/5w1tchy/isbn-books/internal/api/httpx"
	"github.com/5w1tchy/isbn-books/internal/repo/booksrepo"
	"github.com/5w1tchy/isbn-books/internal/validate"
)

func (h *Handler) create(w http.ResponseWriter, r *http.Request) error {
	body, err := decodeBody(r)
	if err != nil {
		return err
	}
	if res := validate.BookCreate.Validate(body); !res.Valid {
		return apperr.Validation(res.Errors)
	}

	in := bookFromInput(bookObject(body))
	b, err := h.repo.Create(r.Context(), in)
	if errors.Is(err, booksrepo.ErrConflict) {
		return apperr.Conflict(in.ISBN)
	}
	if err != nil {
		return fmt.Errorf("create book %s: %w", in.ISBN, err)
	}

	slog.InfoContext(r.Context(), "book created", "isbn", b.ISBN)
	httpx.WriteJSON(w, http.StatusCreated, map[string]any{"book": b})
	return nil
}
