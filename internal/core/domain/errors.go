package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// Document Errors.

	// ErrInvalidEncoding indicates the document text is not valid UTF-8.
	// No cells are produced for such input.
	ErrInvalidEncoding = errors.New("invalid encoding")

	// ErrTruncatedInput indicates a parse succeeded but hit a safety limit.
	// It is reported alongside the cells, never instead of them.
	ErrTruncatedInput = errors.New("input truncated")

	// Annotation Errors.

	// ErrAnnotationNotFound indicates no annotation has the given id.
	ErrAnnotationNotFound = errors.New("annotation not found")

	// ErrPersistenceUnavailable indicates the annotation backing store failed.
	ErrPersistenceUnavailable = errors.New("persistence unavailable")
)
