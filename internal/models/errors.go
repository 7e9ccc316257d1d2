// ABOUTME: Error types shared by the engine, stores, and command surfaces.
// ABOUTME: ValidationError for bad input, MissingEmbeddingError for unindexed coffees.
package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrNotFound is returned by stores when a record does not exist.
var ErrNotFound = errors.New("not found")

// FieldError describes a single invalid field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError reports one or more invalid or missing fields.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasField reports whether the named field failed validation.
func (e *ValidationError) HasField(name string) bool {
	for _, f := range e.Fields {
		if f.Field == name {
			return true
		}
	}
	return false
}

// MissingEmbeddingError means a coffee reached scoring without a generated embedding.
// This is a data integrity problem upstream, not a transient failure.
type MissingEmbeddingError struct {
	CoffeeID uuid.UUID
	Name     string
}

func (e *MissingEmbeddingError) Error() string {
	return fmt.Sprintf("coffee %s (%s) has no flavor embedding; regenerate it before scoring", e.CoffeeID, e.Name)
}
