package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSchema matches any per-document schema failure.
	ErrSchema = errors.New("schema invalid")
	// ErrDuplicateSlug matches the fatal duplicate-slug collection failure.
	ErrDuplicateSlug = errors.New("duplicate slug")
)

// SchemaKind classifies a single schema violation.
type SchemaKind string

const (
	SchemaMissingField SchemaKind = "missing-field"
	SchemaBadDate      SchemaKind = "bad-date"
	SchemaWrongType    SchemaKind = "wrong-type"
)

// SchemaError reports one invalid field on one source document.
type SchemaError struct {
	ID     string
	Field  string
	Kind   SchemaKind
	Detail string
}

func (e *SchemaError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s: %s", e.ID, e.Field, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %s (%s)", e.ID, e.Field, e.Kind, e.Detail)
}

func (e *SchemaError) Is(target error) bool { return target == ErrSchema }

// RecordError aggregates every schema violation found on a single document.
// The document is excluded from the build; the run goes on.
type RecordError struct {
	ID     string
	Issues []*SchemaError
}

func (e *RecordError) Error() string {
	if len(e.Issues) == 0 {
		return e.ID + ": schema invalid"
	}
	var b strings.Builder
	b.WriteString(e.ID)
	b.WriteString(": schema invalid:")
	for _, iss := range e.Issues {
		b.WriteString("\n - ")
		b.WriteString(string(iss.Kind))
		b.WriteString(": ")
		b.WriteString(iss.Field)
		if iss.Detail != "" {
			b.WriteString(" (")
			b.WriteString(iss.Detail)
			b.WriteString(")")
		}
	}
	return b.String()
}

func (e *RecordError) Add(field string, kind SchemaKind, detail string) {
	e.Issues = append(e.Issues, &SchemaError{
		ID:     e.ID,
		Field:  field,
		Kind:   kind,
		Detail: detail,
	})
}

func (e *RecordError) HasAny() bool { return len(e.Issues) > 0 }

func (e *RecordError) Is(target error) bool { return target == ErrSchema }

// SlugConflict names one slug claimed by two or more published documents.
type SlugConflict struct {
	Slug string
	IDs  []string
}

func (c SlugConflict) String() string {
	return fmt.Sprintf("%q claimed by %s", c.Slug, strings.Join(c.IDs, ", "))
}

// DuplicateSlugError is fatal: routing the listed documents would be
// ambiguous, so the build produces no output at all. Every conflict found is
// listed, not just the first.
type DuplicateSlugError struct {
	Conflicts []SlugConflict
}

func (e *DuplicateSlugError) Error() string {
	parts := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		parts = append(parts, c.String())
	}
	return "duplicate slug: " + strings.Join(parts, "; ")
}

func (e *DuplicateSlugError) Is(target error) bool { return target == ErrDuplicateSlug }
