package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrNotImplemented", ErrNotImplemented},
		{"ErrInvalidEncoding", ErrInvalidEncoding},
		{"ErrTruncatedInput", ErrTruncatedInput},
		{"ErrAnnotationNotFound", ErrAnnotationNotFound},
		{"ErrPersistenceUnavailable", ErrPersistenceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrors_Distinct(t *testing.T) {
	assert.False(t, errors.Is(ErrAnnotationNotFound, ErrNotFound))
	assert.False(t, errors.Is(ErrInvalidEncoding, ErrInvalidInput))
}

func TestErrors_Wrapped(t *testing.T) {
	err := fmt.Errorf("querying annotations: %w: %w", ErrPersistenceUnavailable, errors.New("disk I/O error"))

	assert.True(t, errors.Is(err, ErrPersistenceUnavailable))
	assert.Contains(t, err.Error(), "disk I/O error")
}
