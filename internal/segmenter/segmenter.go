// Package segmenter splits document text into cells.
//
// Two modes are supported. Heading mode opens a new cell at every heading
// line and keeps each line's terminator, so the cells concatenate back to
// the input. Paragraph mode splits on runs of two or more blank lines and
// gives each block a synthetic "Cell n" label.
package segmenter

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/lenk/internal/core/domain"
	"github.com/custodia-labs/lenk/internal/signature"
)

// Result is the outcome of one parse. It is returned by value and
// never shared between loads.
type Result struct {
	Cells      []domain.Cell
	Truncation domain.Truncation
}

// Warning returns an error wrapping domain.ErrTruncatedInput when a limit
// was hit, and nil otherwise.
func (r Result) Warning() error {
	if r.Truncation == domain.TruncationNone {
		return nil
	}
	return fmt.Errorf("%w: %s limit reached", domain.ErrTruncatedInput, r.Truncation)
}

// Parser segments documents.
type Parser struct {
	limits domain.Limits
}

// Option configures the parser.
type Option func(*Parser)

// WithLimits replaces the default safety limits.
// Non-positive fields keep their defaults.
func WithLimits(l domain.Limits) Option {
	return func(p *Parser) {
		if l.MaxBytes > 0 {
			p.limits.MaxBytes = l.MaxBytes
		}
		if l.MaxLines > 0 {
			p.limits.MaxLines = l.MaxLines
		}
		if l.MaxCells > 0 {
			p.limits.MaxCells = l.MaxCells
		}
		if l.PreviewBytes > 0 {
			p.limits.PreviewBytes = l.PreviewBytes
		}
	}
}

// New creates a parser with the given options.
func New(opts ...Option) *Parser {
	p := &Parser{limits: domain.DefaultLimits()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Limits returns the limits in effect.
func (p *Parser) Limits() domain.Limits {
	return p.limits
}

// Parse splits text into cells using mode.
// Text that is not valid UTF-8 fails with domain.ErrInvalidEncoding.
func (p *Parser) Parse(text string, mode domain.ParseMode) (Result, error) {
	if !mode.IsValid() {
		return Result{}, fmt.Errorf("%w: unknown parse mode %q", domain.ErrInvalidInput, mode)
	}
	if !utf8.ValidString(text) {
		return Result{}, domain.ErrInvalidEncoding
	}
	if text == "" {
		return Result{}, nil
	}

	if len(text) > p.limits.MaxBytes {
		preview := cutRunes(text, p.limits.PreviewBytes)
		label := signature.HeadingLabel(preview)
		if mode == domain.ParseModeParagraphs {
			label = paragraphLabel(0)
		}
		return Result{
			Cells:      []domain.Cell{{Index: 0, HeadingLabel: label, RawText: preview}},
			Truncation: domain.TruncationSize,
		}, nil
	}

	result := Result{}
	lines := splitLines(text)
	if len(lines) > p.limits.MaxLines {
		lines = lines[:p.limits.MaxLines]
		result.Truncation = domain.TruncationLines
	}

	var cells []domain.Cell
	if mode == domain.ParseModeParagraphs {
		cells = paragraphs(lines)
	} else {
		cells = headings(lines)
	}

	if len(cells) > p.limits.MaxCells {
		cells = cells[:p.limits.MaxCells]
		if result.Truncation == domain.TruncationNone {
			result.Truncation = domain.TruncationCount
		}
	}
	for i := range cells {
		cells[i].Index = i
	}
	result.Cells = cells

	return result, nil
}

// splitLines splits text after every newline, keeping terminators.
func splitLines(text string) []string {
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func headings(lines []string) []domain.Cell {
	var (
		cells []domain.Cell
		cur   strings.Builder
		label = domain.NoHeadingLabel
	)

	flush := func() {
		if cur.Len() == 0 {
			return
		}
		cells = append(cells, domain.Cell{HeadingLabel: label, RawText: cur.String()})
		cur.Reset()
	}

	for _, line := range lines {
		if domain.IsHeadingLine(line) {
			flush()
			label = strings.TrimSpace(line)
		}
		cur.WriteString(line)
	}
	flush()

	return cells
}

func paragraphs(lines []string) []domain.Cell {
	var (
		cells   []domain.Cell
		block   []string
		pending []string
	)

	emit := func() {
		if len(block) == 0 {
			return
		}
		raw := strings.Join(block, "")
		raw = strings.TrimSuffix(raw, "\n")
		raw = strings.TrimSuffix(raw, "\r")
		cells = append(cells, domain.Cell{HeadingLabel: paragraphLabel(len(cells)), RawText: raw})
		block = nil
	}

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			pending = append(pending, line)
			continue
		}
		if len(pending) >= 2 {
			emit()
		} else if len(block) > 0 {
			block = append(block, pending...)
		}
		pending = pending[:0]
		block = append(block, line)
	}
	emit()

	return cells
}

func paragraphLabel(i int) string {
	return fmt.Sprintf("Cell %d", i+1)
}

// cutRunes returns at most n bytes of s without splitting a rune.
func cutRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
