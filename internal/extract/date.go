package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/receiptwise/receipt-pipeline/constants"
)

// Date-shaped substrings worth retrying the layout list against when the
// whole line is not a date by itself.
var dateSubstringPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{4}-\d{1,2}-\d{1,2}`),
	regexp.MustCompile(`\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`),
	regexp.MustCompile(`(?i)(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{1,2},?\s+\d{2,4}`),
	regexp.MustCompile(`(?i)\d{1,2}\s+(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{2,4}`),
}

// ParseDate recognizes an absolute date on the line. The whole trimmed line
// is tried against every known layout first; failing that, each date-shaped
// substring is retried against the layout list. The second return reports
// whether the whole line was the date (stronger signal than a substring hit).
func ParseDate(line string) (time.Time, bool, bool) {
	trimmed := strings.TrimSpace(line)
	if t, ok := tryLayouts(trimmed); ok {
		return t, true, true
	}
	for _, re := range dateSubstringPatterns {
		sub := re.FindString(trimmed)
		if sub == "" {
			continue
		}
		if t, ok := tryLayouts(sub); ok {
			return t, false, true
		}
	}
	return time.Time{}, false, false
}

// HasDate reports whether the line contains a recognizable absolute date.
func HasDate(line string) bool {
	_, _, ok := ParseDate(line)
	return ok
}

func tryLayouts(s string) (time.Time, bool) {
	for _, layout := range constants.DateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
