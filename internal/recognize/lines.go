package recognize

import (
	"regexp"
	"strings"

	"github.com/receiptwise/receipt-pipeline/internal/entity"
)

var (
	reCRLF       = regexp.MustCompile(`\r\n?`)
	reTabs       = regexp.MustCompile(`\t+`)
	reMultiSpace = regexp.MustCompile(` {2,}`)
	reBoxNoise   = regexp.MustCompile(`(?m)^\s*[_\-=]{3,}\s*$`)
)

// CleanText collapses noisy whitespace and strips ruled-line artifacts from
// engine output. Conservative: keeps line breaks.
func CleanText(s string) string {
	if s == "" {
		return s
	}
	s = reCRLF.ReplaceAllString(s, "\n")
	s = reTabs.ReplaceAllString(s, " ")
	s = reMultiSpace.ReplaceAllString(s, " ")
	s = reBoxNoise.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// SplitLines splits cleaned engine text into trimmed, non-empty lines.
func SplitLines(s string) []string {
	var out []string
	for _, ln := range strings.Split(s, "\n") {
		ln = strings.TrimSpace(ln)
		if ln != "" {
			out = append(out, ln)
		}
	}
	return out
}

// BuildRawLines indexes surviving lines so each knows its normalized position.
// Blank lines are dropped before indexing, not after, so positions reflect
// only real content.
func BuildRawLines(lines []string) []entity.RawLine {
	var texts []string
	for _, ln := range lines {
		ln = strings.TrimSpace(ln)
		if ln != "" {
			texts = append(texts, ln)
		}
	}
	out := make([]entity.RawLine, len(texts))
	for i, ln := range texts {
		out[i] = entity.RawLine{Text: ln, Index: i, TotalLines: len(texts)}
	}
	return out
}

// JoinLines rebuilds the raw text blob kept for audit/debugging.
func JoinLines(lines []entity.RawLine) string {
	parts := make([]string, len(lines))
	for i, ln := range lines {
		parts[i] = ln.Text
	}
	return strings.Join(parts, "\n")
}
