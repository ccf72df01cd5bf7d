package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

// Kind is a JSON value kind.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBool
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return "unknown"
}

// Field describes one value of an expected document.
type Field struct {
	Name        string
	Kind        Kind
	Description string

	Required bool
	Nullable bool
	// NonEmpty rejects blank strings and empty arrays.
	NonEmpty bool
	Enum     []string

	Min          *float64
	Max          *float64
	ExclusiveMin bool

	Items  *Field
	Fields []Field

	// Check runs on an object after all of its fields passed. A non-empty
	// reason rejects the object; field is relative to the object.
	Check func(obj map[string]any) (field, reason string)
}

// Schema is a named root descriptor.
type Schema struct {
	Name string
	Root Field
}

// Bound is a helper for Min/Max literals.
func Bound(v float64) *float64 { return &v }

// Decode sanitizes raw model output, validates it against s and decodes it
// into T. Nothing is returned unless the whole document conforms.
func Decode[T any](raw string, s Schema) (T, error) {
	var out T
	clean := Sanitize(raw)
	doc, err := parse(clean)
	if err != nil {
		return out, &MalformedResponseError{Raw: raw, Err: err}
	}
	if err := s.Validate(doc); err != nil {
		return out, err
	}
	if err := json.Unmarshal([]byte(clean), &out); err != nil {
		return out, &MalformedResponseError{Raw: raw, Err: err}
	}
	return out, nil
}

// Validate checks an already parsed document (numbers as json.Number).
func (s Schema) Validate(doc any) error {
	return s.walk(doc, s.Root, "")
}

func parse(text string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON document")
	}
	return doc, nil
}

func (s Schema) violation(path, format string, args ...any) error {
	if path == "" {
		path = "$"
	}
	return &SchemaViolationError{Schema: s.Name, Field: path, Reason: fmt.Sprintf(format, args...)}
}

func (s Schema) walk(v any, f Field, path string) error {
	if v == nil {
		if f.Nullable {
			return nil
		}
		return s.violation(path, "must not be null")
	}

	switch f.Kind {
	case KindString:
		str, ok := v.(string)
		if !ok {
			return s.violation(path, "expected string")
		}
		if f.NonEmpty && strings.TrimSpace(str) == "" {
			return s.violation(path, "must not be empty")
		}
		if len(f.Enum) > 0 && !slices.Contains(f.Enum, str) {
			return s.violation(path, "must be one of [%s], got %q", strings.Join(f.Enum, ", "), str)
		}

	case KindNumber:
		num, ok := v.(json.Number)
		if !ok {
			return s.violation(path, "expected number")
		}
		n, err := num.Float64()
		if err != nil {
			return s.violation(path, "invalid number %q", num.String())
		}
		if f.Min != nil {
			if f.ExclusiveMin && n <= *f.Min {
				return s.violation(path, "must be greater than %g, got %g", *f.Min, n)
			}
			if !f.ExclusiveMin && n < *f.Min {
				return s.violation(path, "must be at least %g, got %g", *f.Min, n)
			}
		}
		if f.Max != nil && n > *f.Max {
			return s.violation(path, "must be at most %g, got %g", *f.Max, n)
		}

	case KindBool:
		if _, ok := v.(bool); !ok {
			return s.violation(path, "expected boolean")
		}

	case KindArray:
		arr, ok := v.([]any)
		if !ok {
			return s.violation(path, "expected array")
		}
		if f.NonEmpty && len(arr) == 0 {
			return s.violation(path, "must not be empty")
		}
		if f.Items != nil {
			for i, item := range arr {
				if err := s.walk(item, *f.Items, fmt.Sprintf("%s[%d]", path, i)); err != nil {
					return err
				}
			}
		}

	case KindObject:
		obj, ok := v.(map[string]any)
		if !ok {
			return s.violation(path, "expected object")
		}
		for _, child := range f.Fields {
			val, present := obj[child.Name]
			childPath := joinPath(path, child.Name)
			if !present {
				if child.Required {
					return s.violation(childPath, "is required")
				}
				continue
			}
			if err := s.walk(val, child, childPath); err != nil {
				return err
			}
		}
		if f.Check != nil {
			if field, reason := f.Check(obj); reason != "" {
				return s.violation(joinPath(path, field), "%s", reason)
			}
		}
	}
	return nil
}

func joinPath(parent, name string) string {
	if name == "" {
		return parent
	}
	if parent == "" {
		return name
	}
	return parent + "." + name
}

