// Package apperr holds the outcomes every use case can end in besides success.
package apperr

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrDuplicateKey        = errors.New("already taken")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrNotFound            = errors.New("not found")
	ErrAuthorizationDenied = errors.New("not authorized")
)

// ValidationError lists the offending form fields with a message each.
// It matches ErrValidation, and ErrDuplicateKey when built by Duplicate.
type ValidationError struct {
	Fields    map[string]string
	duplicate bool
}

func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// Duplicate reports that field already holds the submitted value in storage.
func Duplicate(field, message string) *ValidationError {
	return &ValidationError{
		Fields:    map[string]string{field: message},
		duplicate: true,
	}
}

func (ve *ValidationError) Error() string {
	keys := make([]string, 0, len(ve.Fields))
	for k := range ve.Fields {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+ve.Fields[k])
	}

	prefix := ErrValidation.Error()
	if ve.duplicate {
		prefix = ErrDuplicateKey.Error()
	}

	return prefix + ": " + strings.Join(parts, "; ")
}

func (ve *ValidationError) Is(target error) bool {
	if target == ErrValidation {
		return true
	}

	return ve.duplicate && target == ErrDuplicateKey
}

// FieldErrors extracts per-field messages from err, or nil if err carries none.
func FieldErrors(err error) map[string]string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}

	return nil
}
