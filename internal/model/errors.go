package model

import (
	"fmt"
	"strings"
)

// FieldError describes one rejected input field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError is returned for malformed or out-of-range input. No state
// is changed when it is returned.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Reason: reason}}}
}

func (e *ValidationError) Add(field, reason string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Reason: reason})
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + " " + f.Reason
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NotFoundError means a referenced product, plan item or transaction does not exist.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.Key)
}

// InsufficientStockError rejects a sale larger than the stock on hand.
type InsufficientStockError struct {
	ProductID   int64
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for '%s': requested %d, available %d", e.ProductName, e.Requested, e.Available)
}

// IndexError is a plan list position outside [0, Len).
type IndexError struct {
	List  PlanKind
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s list index %d out of range (%d items)", e.List, e.Index, e.Len)
}

// PersistenceError wraps a failed store read or write. After a failed save
// the in-memory state is still authoritative for the session.
type PersistenceError struct {
	Op  string
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
