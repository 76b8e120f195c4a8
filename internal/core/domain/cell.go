package domain

import (
	"fmt"
	"strings"
)

// NoHeadingLabel labels a cell that has no heading line.
const NoHeadingLabel = "[No Heading]"

// HeadingMarker is the character that introduces a heading line.
const HeadingMarker = '#'

// IsHeadingLine reports whether line opens a heading: one or more
// HeadingMarker characters at column 0 followed by whitespace or the end
// of the line. A bare "#" is a heading with an empty title.
func IsHeadingLine(line string) bool {
	n := 0
	for n < len(line) && line[n] == HeadingMarker {
		n++
	}
	if n == 0 {
		return false
	}
	if n == len(line) {
		return true
	}
	switch line[n] {
	case ' ', '\t', '\r', '\n':
		return true
	}
	return false
}

// ParseMode selects how a document is split into cells.
type ParseMode string

// Available parse modes.
const (
	// ParseModeHeadings starts a new cell at every heading line.
	ParseModeHeadings ParseMode = "headings"

	// ParseModeParagraphs splits on runs of two or more blank lines.
	ParseModeParagraphs ParseMode = "paragraphs"
)

// IsValid returns true if the parse mode is recognised.
func (m ParseMode) IsValid() bool {
	switch m {
	case ParseModeHeadings, ParseModeParagraphs:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m ParseMode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m ParseMode) Description() string {
	switch m {
	case ParseModeHeadings:
		return "Headings (one cell per heading section)"
	case ParseModeParagraphs:
		return "Paragraphs (blocks split by blank lines)"
	default:
		return "Unknown"
	}
}

// ParseParseMode converts user input to a ParseMode.
// The empty string maps to ParseModeHeadings.
func ParseParseMode(s string) (ParseMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "headings", "heading", "markdown", "md":
		return ParseModeHeadings, nil
	case "paragraphs", "paragraph", "paste", "blocks":
		return ParseModeParagraphs, nil
	default:
		return "", fmt.Errorf("%w: unknown parse mode %q", ErrInvalidInput, s)
	}
}

// AllParseModes returns all available parse modes.
func AllParseModes() []ParseMode {
	return []ParseMode{ParseModeHeadings, ParseModeParagraphs}
}

// Truncation records which safety limit cut a parse short.
type Truncation string

// Truncation flags, in priority order.
const (
	TruncationNone  Truncation = ""
	TruncationSize  Truncation = "size"
	TruncationLines Truncation = "lines"
	TruncationCount Truncation = "count"
)

// Limits bounds the work done on a single document.
type Limits struct {
	// MaxBytes is the size above which the document becomes one preview cell.
	MaxBytes int

	// MaxLines is the number of lines segmented before the rest is dropped.
	MaxLines int

	// MaxCells is the number of cells kept.
	MaxCells int

	// PreviewBytes is how much content the size-truncated cell keeps.
	PreviewBytes int
}

// DefaultLimits returns the standard safety limits.
func DefaultLimits() Limits {
	return Limits{
		MaxBytes:     5 * 1024 * 1024,
		MaxLines:     50_000,
		MaxCells:     1_000,
		PreviewBytes: 100_000,
	}
}

// Validate checks that every limit is positive.
func (l Limits) Validate() error {
	if l.MaxBytes <= 0 || l.MaxLines <= 0 || l.MaxCells <= 0 || l.PreviewBytes <= 0 {
		return fmt.Errorf("%w: limits must be positive", ErrInvalidInput)
	}
	return nil
}

// Cell is a contiguous block of a document and the unit annotations bind to.
type Cell struct {
	// Index is the 0-based position within the parse result.
	Index int

	// HeadingLabel is the cell's title line, or a synthetic label.
	HeadingLabel string

	// RawText is the exact text of the cell, including its heading line.
	RawText string

	// Signature is the content fingerprint of RawText.
	// Empty until the cell has been signed.
	Signature string
}

// Body returns the cell text below its heading line, trimmed of
// surrounding blank lines. Cells without a heading line return all text.
func (c Cell) Body() string {
	text := c.RawText
	first, rest, found := strings.Cut(text, "\n")
	if strings.TrimSpace(first) == c.HeadingLabel {
		if !found {
			return ""
		}
		text = rest
	}
	return strings.Trim(text, "\r\n")
}

// Title returns a display title with heading markers removed.
func (c Cell) Title() string {
	title := strings.TrimSpace(strings.TrimLeft(c.HeadingLabel, "#"))
	if title == "" {
		return c.HeadingLabel
	}
	return title
}
