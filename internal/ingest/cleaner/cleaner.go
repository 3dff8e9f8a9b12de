package cleaner

import (
	"regexp"
	"strings"
	"unicode"
)

// Extraction artifacts the partitioner leaves behind. Hyphen followed by
// a line break is a word split across lines, not real punctuation.
var (
	hyphenBreak    = regexp.MustCompile(`(\p{L})-\s*\n\s*(\p{L})`)
	softLineBreak  = regexp.MustCompile(`([^\n.!?:;])\n([^\n])`)
	multiBlankLine = regexp.MustCompile(`\n{3,}`)
	multiSpace     = regexp.MustCompile(`[ \t]{2,}`)
)

// JoinElements renders one page's element texts (and image-description
// sentinels) in emission order, newline-joined, skipping empty parts.
func JoinElements(parts []string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		kept = append(kept, part)
	}
	return strings.Join(kept, "\n")
}

// CleanPageContent normalizes one page's raw text: control characters
// stripped, hyphenation repaired, line-break noise and repeated
// whitespace collapsed. Pure and deterministic.
func CleanPageContent(raw string) string {
	if raw == "" {
		return ""
	}

	text := stripControl(raw)
	text = hyphenBreak.ReplaceAllString(text, "$1$2")
	text = softLineBreak.ReplaceAllString(text, "$1 $2")
	text = multiBlankLine.ReplaceAllString(text, "\n\n")
	text = multiSpace.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	text = strings.Join(lines, "\n")
	text = multiBlankLine.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}

func stripControl(text string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, text)
}
