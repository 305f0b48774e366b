package books

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/5w1tchy/isbn-books/internal/api/apperr"
	"github.com/5w1tchy/isbn-books/internal/models"
	"github.com/5w1tchy/isbn-books/internal/repo/booksrepo"
	"github.com/5w1tchy/isbn-books/internal/validate"
)

// decodeBody reads the request body as generic JSON with numbers kept as
// json.Number. An empty body decodes as an empty object so the schema
// reports the missing "book" property.
func decodeBody(r *http.Request) (any, error) {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return nil, apperr.TooLarge()
		case errors.Is(err, io.EOF):
			return map[string]any{}, nil
		default:
			return nil, apperr.BadRequest("Malformed JSON body")
		}
	}
	if dec.More() {
		return nil, apperr.BadRequest("Malformed JSON body")
	}
	return v, nil
}

// bookObject returns the "book" member of a validated body.
func bookObject(body any) map[string]any {
	obj, _ := body.(map[string]any)
	book, _ := obj["book"].(map[string]any)
	return book
}

func bookFromInput(in map[string]any) models.Book {
	return models.Book{
		ISBN:      validate.AsString(in["isbn"]),
		AmazonURL: validate.AsString(in["amazon_url"]),
		Author:    validate.AsString(in["author"]),
		Language:  validate.AsString(in["language"]),
		Pages:     validate.AsInt(in["pages"]),
		Publisher: validate.AsString(in["publisher"]),
		Title:     validate.AsString(in["title"]),
		Year:      validate.AsInt(in["year"]),
	}
}

// updateFromInput keeps only the fields present in the body.
func updateFromInput(in map[string]any) booksrepo.UpdateBookDTO {
	str := func(name string) *string {
		v, ok := in[name]
		if !ok {
			return nil
		}
		s := validate.AsString(v)
		return &s
	}
	num := func(name string) *int {
		v, ok := in[name]
		if !ok {
			return nil
		}
		n := validate.AsInt(v)
		return &n
	}
	return booksrepo.UpdateBookDTO{
		AmazonURL: str("amazon_url"),
		Author:    str("author"),
		Language:  str("language"),
		Pages:     num("pages"),
		Publisher: str("publisher"),
		Title:     str("title"),
		Year:      num("year"),
	}
}
