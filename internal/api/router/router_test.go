package router_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/5w1tchy/isbn-books/internal/api/router"
	"github.com/5w1tchy/isbn-books/internal/migrations"
	"github.com/5w1tchy/isbn-books/internal/repo/booksrepo"
	"github.com/5w1tchy/isbn-books/internal/repository/sqlconnect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	db, dialect, err := sqlconnect.ConnectDB(t.Context(), "sqlite", filepath.Join(t.TempDir(), "books.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	migrations.Quiet()
	require.NoError(t, migrations.Up(db, dialect.Goose()))
	return router.Router(booksrepo.New(db, dialect))
}

func TestRouter_UnknownPathsUseEnvelope(t *testing.T) {
	h := newRouter(t)

	for _, path := range []string{"/", "/authors", "/books/0691161518/reviews"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		require.Equal(t, http.StatusNotFound, rec.Code, path)
		var body struct {
			Error struct {
				Status  int    `json:"status"`
				Message string `json:"message"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), path)
		assert.Equal(t, 404, body.Error.Status, path)
		assert.Equal(t, "Not Found", body.Error.Message, path)
	}
}

func TestRouter_EmptyCollection(t *testing.T) {
	h := newRouter(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/books/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"books": []}`, rec.Body.String())
}

func TestRouter_ItemRoute(t *testing.T) {
	h := newRouter(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/books/9782546365245", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t,
		`{"error": {"status": 404, "message": "There is no book with an isbn '9782546365245"}}`,
		rec.Body.String())
}
