package scenario

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the scenario source cannot be located or read.
	ErrNotFound = errors.New("scenario not found")

	// ErrMalformed is returned when the document cannot be decoded or a
	// required field is absent.
	ErrMalformed = errors.New("malformed scenario")
)

// FieldError reports a required field missing from a record.
// Index is -1 when the whole section is missing or empty.
type FieldError struct {
	Section string
	Index   int
	Field   string
}

func (e *FieldError) Error() string {
	switch {
	case e.Index < 0 && e.Field == "":
		return fmt.Sprintf("%s: section missing or empty", e.Section)
	case e.Index < 0:
		return fmt.Sprintf("%s: missing field %q", e.Section, e.Field)
	default:
		return fmt.Sprintf("%s[%d]: missing field %q", e.Section, e.Index, e.Field)
	}
}

// Unwrap lets callers match any FieldError with errors.Is(err, ErrMalformed).
func (e *FieldError) Unwrap() error { return ErrMalformed }

func missingSection(section string) error {
	return &FieldError{Section: section, Index: -1}
}

func missingField(section string, index int, field string) error {
	return &FieldError{Section: section, Index: index, Field: field}
}
