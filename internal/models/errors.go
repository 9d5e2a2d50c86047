package models

import (
	"fmt"
)

// SchemaError reports a document that does not match the bookmark schema:
// a missing or mistyped field, or an unrecognized node type.
type SchemaError struct {
	Path   string // JSON path of the offending node, e.g. $.children[2]
	Field  string // empty when the node itself is at fault
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("bookmarks: %s: %s", orRoot(e.Path), e.Reason)
	}
	return fmt.Sprintf("bookmarks: %s: field %q: %s", orRoot(e.Path), e.Field, e.Reason)
}

// RangeError reports a scalar that cannot be held by its Go representation.
type RangeError struct {
	Path  string
	Field string
	Value string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("bookmarks: %s: field %q: value %s out of range", orRoot(e.Path), e.Field, e.Value)
}

func orRoot(path string) string {
	if path == "" {
		return "$"
	}
	return path
}

func missing(path, field string) error {
	return &SchemaError{Path: path, Field: field, Reason: "missing"}
}

func mistyped(path, field, want string) error {
	return &SchemaError{Path: path, Field: field, Reason: "expected " + want}
}
