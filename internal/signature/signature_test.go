package signature

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lenk/internal/core/domain"
)

func TestCompute_Deterministic(t *testing.T) {
	a := Compute("# B\nWorld")
	b := Compute("# B\nWorld")

	assert.Equal(t, a, b)
	assert.Len(t, a, Size)
}

func TestCompute_SensitiveToEveryByte(t *testing.T) {
	base := Compute("# B\nWorld")

	assert.NotEqual(t, base, Compute("# B\nWorld!"))
	assert.NotEqual(t, base, Compute("# B\nWorld\n"))
	assert.NotEqual(t, base, Compute("# B\r\nWorld"))
	assert.NotEqual(t, base, Compute("#  B\nWorld"))
}

func TestCompute_Empty(t *testing.T) {
	// BLAKE3 of the empty input.
	assert.Equal(t, "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262", Compute(""))
}

func TestHeadingLabel(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"first line heading", "# A\nHello\n", "# A"},
		{"trailing whitespace trimmed", "## Notes  \r\nbody", "## Notes"},
		{"heading after preamble", "intro\n# Later\n", "# Later"},
		{"hashtag is not a heading", "#tag\ntext", domain.NoHeadingLabel},
		{"bare marker", "#\nbody", "#"},
		{"no heading", "just text", domain.NoHeadingLabel},
		{"empty", "", domain.NoHeadingLabel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HeadingLabel(tt.raw))
		})
	}
}

func TestSignAll(t *testing.T) {
	cells := make([]domain.Cell, 200)
	for i := range cells {
		cells[i] = domain.Cell{Index: i, RawText: fmt.Sprintf("# Cell %d\nbody %d\n", i, i)}
	}

	SignAll(cells)

	for i, c := range cells {
		require.Equal(t, i, c.Index)
		assert.Equal(t, Compute(c.RawText), c.Signature)
	}
}

func TestSignAll_Empty(t *testing.T) {
	assert.NotPanics(t, func() { SignAll(nil) })
}
