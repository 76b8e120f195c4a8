package domain

import "time"

// Confidence records how an annotation was last attached to a cell.
type Confidence string

// Confidence levels.
const (
	// ConfidenceExact means heading label and signature both matched.
	ConfidenceExact Confidence = "exact"

	// ConfidenceFuzzy means only the heading label matched.
	// The cell content changed since the annotation was written.
	ConfidenceFuzzy Confidence = "fuzzy"
)

// IsValid returns true if the confidence is recognised.
func (c Confidence) IsValid() bool {
	return c == ConfidenceExact || c == ConfidenceFuzzy
}

// String returns the string representation.
func (c Confidence) String() string {
	return string(c)
}

// Annotation is a user note attached to a cell of a document.
type Annotation struct {
	// ID is the unique identifier for the annotation.
	ID string

	// DocumentPath is the normalised path of the annotated document.
	DocumentPath string

	// HeadingLabel is the heading of the cell when the note was written.
	HeadingLabel string

	// Signature is the fingerprint of the cell when the note was written.
	Signature string

	// CellIndex is the cell position when the note was written.
	// Informational only; matching never uses it.
	CellIndex int

	// Body is the annotation text.
	Body string

	// CreatedAt is when the annotation was written.
	CreatedAt time.Time

	// LastMatchedAt is when a load last attached the annotation to a cell.
	// Nil until the first match.
	LastMatchedAt *time.Time

	// Confidence is the quality of the last match.
	Confidence Confidence
}

// IsOutdated reports whether the annotation was last attached by heading only.
func (a Annotation) IsOutdated() bool {
	return a.Confidence == ConfidenceFuzzy
}
