package domain

// MatchOutcome is the result of re-attaching annotations to one cell.
// It is one of Exact, Fuzzy or None; consumers switch on the concrete type.
type MatchOutcome interface {
	// Annotations returns the attached annotations, oldest first.
	Annotations() []Annotation

	// Kind is "exact", "fuzzy" or "none".
	Kind() string

	matchOutcome()
}

// Exact holds annotations whose heading label and signature both matched.
type Exact struct {
	Matched []Annotation
}

// Fuzzy holds annotations whose heading label matched but signature did not.
type Fuzzy struct {
	Matched []Annotation
}

// None means no annotation matched the cell.
type None struct{}

// Annotations returns the matched annotations.
func (e Exact) Annotations() []Annotation { return e.Matched }

// Annotations returns the matched annotations.
func (f Fuzzy) Annotations() []Annotation { return f.Matched }

// Annotations returns nil.
func (None) Annotations() []Annotation { return nil }

// Kind returns "exact".
func (Exact) Kind() string { return "exact" }

// Kind returns "fuzzy".
func (Fuzzy) Kind() string { return "fuzzy" }

// Kind returns "none".
func (None) Kind() string { return "none" }

func (Exact) matchOutcome() {}
func (Fuzzy) matchOutcome() {}
func (None) matchOutcome()  {}

// ResolvedCell pairs a cell with its match outcome.
type ResolvedCell struct {
	Cell  Cell
	Match MatchOutcome
}

// AnnotationCount returns the number of annotations attached to the cell.
func (r ResolvedCell) AnnotationCount() int {
	if r.Match == nil {
		return 0
	}
	return len(r.Match.Annotations())
}

// FuzzyCount returns the number of attached annotations that may be outdated.
func (r ResolvedCell) FuzzyCount() int {
	if _, ok := r.Match.(Fuzzy); ok {
		return len(r.Match.Annotations())
	}
	return 0
}

// ResolvedDocument is one load of a document with annotations resolved.
// It is immutable once returned; a reload produces a new value.
type ResolvedDocument struct {
	// Path is the normalised document path.
	Path string

	// Mode is the parse mode used for this load.
	Mode ParseMode

	// Cells are the resolved cells in document order.
	Cells []ResolvedCell

	// Truncation is set when a safety limit cut the parse short.
	Truncation Truncation

	// Orphans are annotations of the document that no cell matched.
	Orphans []Annotation
}

// AnnotationCount returns the number of attached annotations across all cells.
func (d *ResolvedDocument) AnnotationCount() int {
	total := 0
	for _, c := range d.Cells {
		total += c.AnnotationCount()
	}
	return total
}

// Cell returns the resolved cell at index.
func (d *ResolvedDocument) Cell(index int) (ResolvedCell, error) {
	if index < 0 || index >= len(d.Cells) {
		return ResolvedCell{}, ErrNotFound
	}
	return d.Cells[index], nil
}
