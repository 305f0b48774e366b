package books

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/5w1tchy/isbn-books/internal/api/apperr"
	"github.com/5w1tchy/isbn-books/internal/api/httpx"
	"github.com/5w1tchy/isbn-books/internal/repo/booksrepo"
	"github.com/5w1tchy/isbn-books/internal/validate"
)

// update serves PUT and PATCH. The isbn always comes from the path; a body
// isbn is dropped before validation. PUT must carry every non-key field,
// PATCH writes only the fields present.
func (h *Handler) update(w http.ResponseWriter, r *http.Request) error {
	isbn := r.PathValue("isbn")

	body, err := decodeBody(r)
	if err != nil {
		return err
	}
	if in := bookObject(body); in != nil {
		delete(in, "isbn")
	}
	schema := validate.BookUpdate
	if r.Method == http.MethodPut {
		schema = validate.BookReplace
	}
	if res := schema.Validate(body); !res.Valid {
		return apperr.Validation(res.Errors)
	}

	b, err := h.repo.Update(r.Context(), isbn, updateFromInput(bookObject(body)))
	if errors.Is(err, booksrepo.ErrNotFound) {
		return apperr.NotFound(isbn)
	}
	if err != nil {
		return fmt.Errorf("update book %s: %w", isbn, err)
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"book": b})
	return nil
}
