// Package signature fingerprints cells and extracts their heading labels.
//
// A signature is the BLAKE3-256 digest of a cell's exact text, hex encoded.
// Two cells share a signature only when their text is byte-for-byte equal.
package signature

import (
	"encoding/hex"
	"runtime"
	"strings"
	"sync"

	"github.com/zeebo/blake3"

	"github.com/custodia-labs/lenk/internal/core/domain"
)

// Size is the length of a signature in hex characters.
const Size = 64

// Compute returns the signature of rawText.
func Compute(rawText string) string {
	sum := blake3.Sum256([]byte(rawText))
	return hex.EncodeToString(sum[:])
}

// HeadingLabel returns the first heading line of rawText trimmed of
// surrounding whitespace, or domain.NoHeadingLabel when there is none.
func HeadingLabel(rawText string) string {
	rest := rawText
	for rest != "" {
		var line string
		line, rest, _ = strings.Cut(rest, "\n")
		if domain.IsHeadingLine(line) {
			return strings.TrimSpace(line)
		}
	}
	return domain.NoHeadingLabel
}

// SignAll fills in the Signature of every cell in place.
// Large inputs are hashed on several goroutines; order is unchanged.
func SignAll(cells []domain.Cell) {
	workers := runtime.GOMAXPROCS(0)
	if workers > len(cells) {
		workers = len(cells)
	}
	if workers <= 1 {
		for i := range cells {
			cells[i].Signature = Compute(cells[i].RawText)
		}
		return
	}

	next := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range next {
				cells[i].Signature = Compute(cells[i].RawText)
			}
		}()
	}
	for i := range cells {
		next <- i
	}
	close(next)
	wg.Wait()
}
