package validate

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
	"github.com/go-playground/validator/v10"
)

type Type string

const (
	TypeString  Type = "string"
	TypeInteger Type = "integer"
	TypeObject  Type = "object"
)

const patternTimeout = 100 * time.Millisecond

var fieldValidator = validator.New()

// formats maps a schema format name to its checker.
var formats = map[string]func(string) bool{
	"uri": func(s string) bool {
		return !strings.ContainsFunc(s, notURIRune) && fieldValidator.Var(s, "url") == nil
	},
}

// notURIRune matches characters that must be percent-encoded in a URI.
func notURIRune(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsControl(r)
}

// Field declares one property of an object. Checks run in the order
// type, minLength, pattern, format, then the numeric bounds, and stop at the
// first failure, so a field reports at most one message.
type Field struct {
	Name             string
	Type             Type
	Required         bool
	MinLength        *int
	Pattern          string
	Format           string
	ExclusiveMinimum *float64
	Minimum          *float64
	Maximum          *float64
	Fields           []Field // nested declarations when Type is TypeObject

	re *regexp2.Regexp
}

// Schema is an ordered set of field declarations rooted at a named instance.
type Schema struct {
	Root   string
	Fields []Field
}

type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// MustSchema compiles patterns and checks formats, panicking on a bad declaration.
func MustSchema(root string, fields ...Field) Schema {
	compiled, err := compile(fields)
	if err != nil {
		panic(fmt.Sprintf("validate: %v", err))
	}
	return Schema{Root: root, Fields: compiled}
}

func compile(fields []Field) ([]Field, error) {
	out := make([]Field, len(fields))
	for i, f := range fields {
		if f.Pattern != "" {
			re, err := regexp2.Compile(f.Pattern, regexp2.ECMAScript)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", f.Name, err)
			}
			re.MatchTimeout = patternTimeout
			f.re = re
		}
		if f.Format != "" {
			if _, ok := formats[f.Format]; !ok {
				return nil, fmt.Errorf("field %s: unknown format %q", f.Name, f.Format)
			}
		}
		if len(f.Fields) > 0 {
			nested, err := compile(f.Fields)
			if err != nil {
				return nil, err
			}
			f.Fields = nested
		}
		out[i] = f
	}
	return out, nil
}

// Validate checks input against every declaration and collects all failures
// in declaration order.
func (s Schema) Validate(input any) Result {
	var errs []string
	if obj, ok := input.(map[string]any); ok {
		errs = checkObject(s.Root, obj, s.Fields, errs)
	} else {
		errs = append(errs, typeMessage(s.Root, TypeObject))
	}
	return Result{Valid: len(errs) == 0, Errors: errs}
}

// Without returns fields minus the named ones.
func Without(fields []Field, names ...string) []Field {
	skip := make(map[string]struct{}, len(names))
	for _, n := range names {
		skip[n] = struct{}{}
	}
	out := make([]Field, 0, len(fields))
	for _, f := range fields {
		if _, ok := skip[f.Name]; ok {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Optional returns a copy of fields with Required cleared, so only the
// properties present in the input are checked.
func Optional(fields []Field) []Field {
	out := make([]Field, len(fields))
	for i, f := range fields {
		f.Required = false
		out[i] = f
	}
	return out
}

func checkObject(path string, obj map[string]any, fields []Field, errs []string) []string {
	for _, f := range fields {
		v, present := obj[f.Name]
		if !present {
			if f.Required {
				errs = append(errs, fmt.Sprintf("%s requires property %q", path, f.Name))
			}
			continue
		}
		errs = checkField(path+"."+f.Name, f, v, errs)
	}
	return errs
}

func checkField(path string, f Field, v any, errs []string) []string {
	if !hasType(f.Type, v) {
		return append(errs, typeMessage(path, f.Type))
	}
	switch f.Type {
	case TypeObject:
		return checkObject(path, v.(map[string]any), f.Fields, errs)
	case TypeString:
		if msg := checkString(path, f, v.(string)); msg != "" {
			errs = append(errs, msg)
		}
	case TypeInteger:
		n, _ := integer(v)
		if msg := checkNumber(path, f, float64(n)); msg != "" {
			errs = append(errs, msg)
		}
	}
	return errs
}

func checkString(path string, f Field, s string) string {
	if f.MinLength != nil && utf8.RuneCountInString(s) < *f.MinLength {
		return fmt.Sprintf("%s does not meet minimum length of %d", path, *f.MinLength)
	}
	if f.re != nil {
		if ok, err := f.re.MatchString(s); err != nil || !ok {
			return fmt.Sprintf("%s does not match pattern %q", path, f.Pattern)
		}
	}
	if f.Format != "" && !formats[f.Format](s) {
		return fmt.Sprintf("%s does not conform to the %q format", path, f.Format)
	}
	return ""
}

func checkNumber(path string, f Field, n float64) string {
	switch {
	case f.ExclusiveMinimum != nil && n <= *f.ExclusiveMinimum:
		return fmt.Sprintf("%s must be strictly greater than %s", path, formatBound(*f.ExclusiveMinimum))
	case f.Minimum != nil && n < *f.Minimum:
		return fmt.Sprintf("%s must be greater than or equal to %s", path, formatBound(*f.Minimum))
	case f.Maximum != nil && n > *f.Maximum:
		return fmt.Sprintf("%s must be less than or equal to %s", path, formatBound(*f.Maximum))
	}
	return ""
}

func formatBound(b float64) string {
	return strconv.FormatFloat(b, 'f', -1, 64)
}

func typeMessage(path string, t Type) string {
	return fmt.Sprintf("%s is not of a type(s) %s", path, t)
}

func hasType(t Type, v any) bool {
	switch t {
	case TypeString:
		_, ok := v.(string)
		return ok
	case TypeInteger:
		_, ok := integer(v)
		return ok
	case TypeObject:
		_, ok := v.(map[string]any)
		return ok
	}
	return true
}

// number accepts decoded JSON numbers (json.Number or float64) and Go ints.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// AsString returns v when it is a string and "" otherwise.
func AsString(v any) string {
	s, _ := v.(string)
	return s
}

const minInt64 = float64(math.MinInt64)

// integer accepts whole numbers that fit in an int64. Whole-valued floats
// such as 264.0 or 1e3 count; 1e20 does not.
func integer(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	}
	f, ok := number(v)
	if !ok || f != math.Trunc(f) || f < minInt64 || f >= -minInt64 {
		return 0, false
	}
	return int64(f), true
}

// AsInt converts a value that passed an integer check. Anything else,
// including integers outside the int range, yields 0.
func AsInt(v any) int {
	i, ok := integer(v)
	if !ok || i < math.MinInt || i > math.MaxInt {
		return 0
	}
	return int(i)
}
