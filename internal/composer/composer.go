// Package composer renders resolved documents back to text.
//
// Compose writes every cell verbatim and follows annotated cells with a
// fenced block of quoted annotations. Strip removes those blocks again, so
// a composed export can be parsed back into the original cells.
// Nothing here performs I/O; output depends only on the input.
package composer

import (
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/lenk/internal/core/domain"
)

// Fence lines delimiting an annotation block.
const (
	OpenFence  = "<!-- lenk:annotations -->"
	CloseFence = "<!-- /lenk:annotations -->"
)

// OutdatedMarker flags annotations attached by heading only.
const OutdatedMarker = "⚠️ possibly outdated"

// paragraphSeparator is written between cells of a paragraph-mode document.
// Two blank lines are the minimum that splits blocks on re-parse.
const paragraphSeparator = "\n\n\n"

const stampLayout = "2006-01-02 15:04:05 UTC"

// Compose renders doc with annotations inlined after their cells.
func Compose(doc *domain.ResolvedDocument) string {
	var b strings.Builder
	for i, rc := range doc.Cells {
		if i > 0 && doc.Mode == domain.ParseModeParagraphs {
			b.WriteString(paragraphSeparator)
		}
		b.WriteString(rc.Cell.RawText)
		writeBlock(&b, rc.Match)
	}
	return b.String()
}

func writeBlock(b *strings.Builder, match domain.MatchOutcome) {
	var (
		notes    []domain.Annotation
		outdated bool
	)
	switch m := match.(type) {
	case domain.Exact:
		notes = m.Matched
	case domain.Fuzzy:
		notes, outdated = m.Matched, true
	case domain.None, nil:
		return
	}
	if len(notes) == 0 {
		return
	}

	b.WriteString("\n" + OpenFence + "\n")
	for i, a := range notes {
		if i > 0 {
			b.WriteString(">\n")
		}
		fmt.Fprintf(b, "> **Annotation %d** · %s", i+1, stamp(a.CreatedAt))
		if outdated {
			b.WriteString(" · " + OutdatedMarker)
		}
		b.WriteString("\n")
		for _, line := range strings.Split(a.Body, "\n") {
			line = strings.TrimSuffix(line, "\r")
			if line == "" {
				b.WriteString(">\n")
				continue
			}
			b.WriteString("> " + line + "\n")
		}
	}
	b.WriteString(CloseFence + "\n")
}

// Strip removes every annotation block written by Compose.
// An unterminated block is left in place.
func Strip(text string) string {
	const open = "\n" + OpenFence + "\n"
	const closing = "\n" + CloseFence + "\n"

	var b strings.Builder
	for {
		start := strings.Index(text, open)
		if start < 0 {
			break
		}
		// The newline ending the open fence may also start the close fence.
		end := strings.Index(text[start+len(open)-1:], closing)
		if end < 0 {
			break
		}
		b.WriteString(text[:start])
		text = text[start+len(open)-1+end+len(closing):]
	}
	b.WriteString(text)
	return b.String()
}

// Summary renders one cell and its annotations as plain text for copying.
func Summary(path string, rc domain.ResolvedCell, total int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "File: %s\n", path)
	fmt.Fprintf(&b, "Cell: %d of %d\n", rc.Cell.Index+1, total)
	fmt.Fprintf(&b, "Heading: %s\n\n", rc.Cell.HeadingLabel)
	b.WriteString("Content:\n")
	b.WriteString(strings.TrimRight(rc.Cell.RawText, "\r\n"))
	b.WriteString("\n")

	if rc.AnnotationCount() == 0 {
		return b.String()
	}

	notes := rc.Match.Annotations()
	_, outdated := rc.Match.(domain.Fuzzy)
	fmt.Fprintf(&b, "\nAnnotations (%d):\n", len(notes))
	for i, a := range notes {
		suffix := ""
		if outdated {
			suffix = " [may be outdated]"
		}
		fmt.Fprintf(&b, "%d. %s%s\n", i+1, a.Body, suffix)
		fmt.Fprintf(&b, "   Added: %s\n", stamp(a.CreatedAt))
	}
	return b.String()
}

// Sections renders paragraph cells as a heading document, one
// "# <label>" section per cell.
func Sections(cells []domain.Cell) string {
	parts := make([]string, 0, len(cells))
	for _, c := range cells {
		parts = append(parts, "# "+c.HeadingLabel+"\n"+c.RawText)
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "\n\n") + "\n"
}

func stamp(t time.Time) string {
	return t.UTC().Format(stampLayout)
}
