package memory

import (
	"context"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/custodia-labs/lenk/internal/core/domain"
	"github.com/custodia-labs/lenk/internal/core/ports/driven"
)

// Ensure ContentStore implements the interface.
var _ driven.ContentSource = (*ContentStore)(nil)

// ContentStore is an in-memory implementation of driven.ContentSource.
type ContentStore struct {
	mu    sync.RWMutex
	files map[string]string
}

// NewContentStore creates a new in-memory content store.
func NewContentStore() *ContentStore {
	return &ContentStore{
		files: make(map[string]string),
	}
}

// Read returns the text stored at path.
func (s *ContentStore) Read(_ context.Context, path string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	text, ok := s.files[path]
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrNotFound, path)
	}
	if !utf8.ValidString(text) {
		return "", domain.ErrInvalidEncoding
	}
	return text, nil
}

// Write stores text at path.
func (s *ContentStore) Write(_ context.Context, path, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.files[path] = text
	return nil
}
