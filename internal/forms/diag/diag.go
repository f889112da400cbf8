// Package diag defines the diagnostic records and error types shared by the
// form extraction, merge and fill components.
//
// The guiding rule: faults tied to a single annotation or field are recovered
// from locally and reported as Diagnostic values; faults caused by the caller
// (a page number outside the document, a value of the wrong shape in strict
// mode) are returned as hard errors.
package diag

import "fmt"

// Kind categorizes a recovered fault or a hard error.
type Kind string

const (
	KindKeyResolution     Kind = "key_resolution"
	KindFieldConstruction Kind = "field_construction"
	KindMissingChoices    Kind = "missing_choices"
	KindValueType         Kind = "value_type"
	KindPageRange         Kind = "page_range"
)

// Diagnostic describes a fault that was recovered from instead of raised.
// Field is empty when the fault could not be tied to a named field.
type Diagnostic struct {
	Field   string `json:"field,omitempty"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

func (d Diagnostic) String() string {
	if d.Field == "" {
		return fmt.Sprintf("[%s] %s", d.Kind, d.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", d.Kind, d.Field, d.Message)
}

// Warnf builds a Diagnostic tied to a field key.
func Warnf(field string, kind Kind, format string, args ...any) Diagnostic {
	return Diagnostic{Field: field, Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KeyResolutionError reports that no usable name was found anywhere in an
// annotation's name chain. The read path catches it per annotation.
type KeyResolutionError struct {
	Page int
}

func (e *KeyResolutionError) Error() string {
	return fmt.Sprintf("widget annotation on page %d has no name entry in its hierarchy", e.Page)
}

// PageRangeError reports a field spec naming a page outside the document.
// This signals caller misuse, not a corrupt document, and is always fatal.
type PageRangeError struct {
	Page      int
	PageCount int
}

func (e *PageRangeError) Error() string {
	return fmt.Sprintf("page %d out of range, document has %d page(s)", e.Page, e.PageCount)
}

// ValueTypeError reports a fill value whose shape does not match the field
// variant. In strict mode it aborts the fill; otherwise it becomes a
// Diagnostic and the field is skipped.
type ValueTypeError struct {
	Field string
	Want  string
	Got   any
}

func (e *ValueTypeError) Error() string {
	return fmt.Sprintf("field %q expects %s, got %T", e.Field, e.Want, e.Got)
}
