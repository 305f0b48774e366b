package books

import (
	"fmt"
	"net/http"

	"github.com/5w1tchy/isbn-books/internal/api/httpx"
)

func (h *Handler) list(w http.ResponseWriter, r *http.Request) error {
	books, err := h.repo.List(r.Context())
	if err != nil {
		return fmt.Errorf("list books: %w", err)
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"books": books})
	return nil
}

// HEAD /books/ -> 200 once storage answers.
func (h *Handler) headList(w http.ResponseWriter, r *http.Request) error {
	if _, err := h.repo.Count(r.Context()); err != nil {
		return fmt.Errorf("count books: %w", err)
	}
	httpx.WriteHead(w, http.StatusOK)
	return nil
}
