package chunker

import (
	"strings"
	"unicode/utf8"

	"github.com/akolanti/IngestAPI/internal/config"
	"github.com/akolanti/IngestAPI/internal/domain/docmodel"
)

// Separators ordered from "best" to "worst" for semantic meaning.
var separators = []string{"\n\n", "\n", ". ", " "}

// TargetSize is the size chunks aim for: a fraction of the unit budget
// so downstream summarization and indexing keep headroom.
func TargetSize(maxUnit int) int {
	return int(float64(maxUnit) * config.TargetChunkRatio)
}

// SplitSemantic splits one page's cleaned text into ordered chunks that
// cover it with no gaps and no overlap. Splits prefer paragraph, then
// sentence, then word boundaries; a hard cut only happens when a single
// unbroken run exceeds the full unit budget. Budgets count runes, not
// bytes, so multi-byte text never splits mid-character. Empty input
// yields nil.
func SplitSemantic(text string, maxUnit int) []docmodel.SemanticChunk {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	target := TargetSize(maxUnit)
	pieces := splitAt(text, target, maxUnit, 0)

	chunks := make([]docmodel.SemanticChunk, 0, len(pieces))
	for _, piece := range pieces {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		chunks = append(chunks, docmodel.SemanticChunk{
			Index: len(chunks),
			Text:  piece,
		})
	}
	return chunks
}

// splitAt greedily packs separator-delimited parts up to target size,
// recursing to the next-finer separator when one part alone exceeds the
// hard budget.
func splitAt(text string, target int, maxUnit int, sepIdx int) []string {
	if utf8.RuneCountInString(text) <= target {
		return []string{text}
	}

	if sepIdx >= len(separators) {
		return hardCut(text, target)
	}

	sep := separators[sepIdx]
	if !strings.Contains(text, sep) {
		return splitAt(text, target, maxUnit, sepIdx+1)
	}

	parts := strings.SplitAfter(text, sep)
	var out []string
	var current strings.Builder
	currentRunes := 0

	flush := func() {
		if current.Len() > 0 {
			out = append(out, current.String())
			current.Reset()
			currentRunes = 0
		}
	}

	for _, part := range parts {
		partRunes := utf8.RuneCountInString(part)
		if partRunes > maxUnit {
			// a single paragraph/sentence over budget splits at the
			// next-finer boundary on its own
			flush()
			out = append(out, splitAt(part, target, maxUnit, sepIdx+1)...)
			continue
		}
		if currentRunes+partRunes > target {
			flush()
		}
		current.WriteString(part)
		currentRunes += partRunes
	}
	flush()

	return out
}

// hardCut slices on rune boundaries so multi-byte text stays valid.
func hardCut(text string, target int) []string {
	runes := []rune(text)
	var out []string
	for len(runes) > target {
		out = append(out, string(runes[:target]))
		runes = runes[target:]
	}
	if len(runes) > 0 {
		out = append(out, string(runes))
	}
	return out
}
