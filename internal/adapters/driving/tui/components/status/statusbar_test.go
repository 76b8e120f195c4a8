package status

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lenk/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/lenk/internal/adapters/driving/tui/styles"
)

func TestNewBar(t *testing.T) {
	bar := NewBar(styles.DefaultStyles(), keymap.DefaultKeyMap())

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, 0, bar.Total())
	assert.Equal(t, 80, bar.Width())
}

func TestNewBar_NilStyles(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.NotNil(t, bar.styles)
	assert.NotNil(t, bar.keymap)
}

func TestStatusBar_InitAndUpdate(t *testing.T) {
	bar := NewBar(nil, nil)

	assert.Nil(t, bar.Init())

	updated, cmd := bar.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, bar, updated)
	assert.Nil(t, cmd)
}

func TestStatusBar_View_States(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(*Bar)
		want    string
		hintKey string
	}{
		{
			name:    "no cells",
			setup:   func(*Bar) {},
			want:    "No cells",
			hintKey: "q: quit",
		},
		{
			name: "position",
			setup: func(b *Bar) {
				b.SetPosition(2, 5)
				b.SetAnnotationCount(3)
			},
			want:    "Cell 2/5 · 3 annotations",
			hintKey: "a: annotate",
		},
		{
			name: "single annotation",
			setup: func(b *Bar) {
				b.SetPosition(1, 1)
				b.SetAnnotationCount(1)
			},
			want: "1 annotation",
		},
		{
			name:  "loading",
			setup: func(b *Bar) { b.SetState(StateLoading) },
			want:  "Loading...",
		},
		{
			name: "error",
			setup: func(b *Bar) {
				b.SetState(StateError)
				b.SetMessage("file not found")
			},
			want: "Error: file not found",
		},
		{
			name: "annotate",
			setup: func(b *Bar) {
				b.SetPosition(4, 5)
				b.SetState(StateAnnotate)
			},
			want:    "Annotating cell 4",
			hintKey: "enter: save",
		},
		{
			name: "confirmed",
			setup: func(b *Bar) {
				b.SetState(StateConfirmed)
				b.SetMessage("Exported to /tmp/out.md")
			},
			want: "Exported to /tmp/out.md",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewBar(nil, nil)
			bar.SetWidth(140)
			tt.setup(bar)

			view := bar.View()
			assert.Contains(t, view, tt.want)
			if tt.hintKey != "" {
				assert.Contains(t, view, tt.hintKey)
			}
		})
	}
}

func TestStatusBar_Clear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetPosition(3, 4)
	bar.SetState(StateError)
	bar.SetMessage("boom")

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	assert.Empty(t, bar.Message())
	assert.Equal(t, 3, bar.Position())
}
