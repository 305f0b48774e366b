package validate

import "math"

const (
	// ISBNPattern accepts keys that are exactly 10 or 13 characters long.
	ISBNPattern = `^(?:.{10}|.{13})$`
	// TitlePattern rejects a leading "The ", "An " or "A " unless it is followed by "is ".
	TitlePattern = `^(?!(?:The|An|A) (?!is ))`
)

func minLen(n int) *int { return &n }

func bound(n float64) *float64 { return &n }

// INTEGER columns are 32-bit on Postgres.
var (
	int32Min = bound(math.MinInt32)
	int32Max = bound(math.MaxInt32)
)

// bookFields is the declaration order used for error reporting.
var bookFields = []Field{
	{Name: "isbn", Type: TypeString, Required: true, Pattern: ISBNPattern},
	{Name: "amazon_url", Type: TypeString, Required: true, Format: "uri"},
	{Name: "author", Type: TypeString, Required: true, MinLength: minLen(1)},
	{Name: "language", Type: TypeString, Required: true, MinLength: minLen(1)},
	{Name: "pages", Type: TypeInteger, Required: true, ExclusiveMinimum: bound(0), Maximum: int32Max},
	{Name: "publisher", Type: TypeString, Required: true, MinLength: minLen(1)},
	{Name: "title", Type: TypeString, Required: true, MinLength: minLen(1), Pattern: TitlePattern},
	{Name: "year", Type: TypeInteger, Required: true, Minimum: int32Min, Maximum: int32Max},
}

var (
	// BookCreate validates a POST body: {"book": {...every field...}}.
	BookCreate = MustSchema("instance",
		Field{Name: "book", Type: TypeObject, Required: true, Fields: bookFields},
	)

	// BookReplace validates a PUT body: every non-key field is required.
	// The isbn comes from the path.
	BookReplace = MustSchema("instance",
		Field{Name: "book", Type: TypeObject, Required: true, Fields: Without(bookFields, "isbn")},
	)

	// BookUpdate validates a PATCH body. Only the fields present are checked.
	BookUpdate = MustSchema("instance",
		Field{Name: "book", Type: TypeObject, Required: true, Fields: Optional(Without(bookFields, "isbn"))},
	)
)
