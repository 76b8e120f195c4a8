package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lenk/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/lenk/internal/core/services"
)

func TestNewPorts(t *testing.T) {
	content := memory.NewContentStore()
	store := memory.NewAnnotationStore()
	document := services.NewDocumentService(content, store)
	annotation := services.NewAnnotationService(content, store, nil)

	ports := NewPorts(document, annotation)

	require.NotNil(t, ports)
	assert.Equal(t, document, ports.Document)
	assert.Equal(t, annotation, ports.Annotation)
	assert.NoError(t, ports.Validate())
}

func TestPorts_Validate(t *testing.T) {
	content := memory.NewContentStore()
	store := memory.NewAnnotationStore()

	tests := []struct {
		name  string
		ports *Ports
		want  error
	}{
		{
			name:  "missing document",
			ports: &Ports{Annotation: services.NewAnnotationService(content, store, nil)},
			want:  ErrMissingDocumentService,
		},
		{
			name:  "missing annotation",
			ports: &Ports{Document: services.NewDocumentService(content, store)},
			want:  ErrMissingAnnotationService,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.ports.Validate(), tt.want)
		})
	}
}
