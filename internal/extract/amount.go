package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// reAmount is the money-token grammar: optional currency prefix, 1-3 leading
// digits, optional comma-separated thousands groups, optional 2-digit cents.
// Word boundaries keep it from firing inside longer digit runs such as card
// numbers or receipt ids.
var reAmount = regexp.MustCompile(`[$£€]?\s?\b\d{1,3}(,\d{3})*(\.\d{2})?\b`)

// reAmountDigits pulls the numeric part back out of a matched token.
var reAmountDigits = regexp.MustCompile(`\d{1,3}(,\d{3})*(\.\d{2})?`)

// HasAmount reports whether the line carries at least one money token.
func HasAmount(line string) bool {
	return reAmount.MatchString(line)
}

// FirstAmount returns the first money token on the line as a parsed value
// plus the exact substring that matched.
func FirstAmount(line string) (float64, string, bool) {
	m := reAmount.FindString(line)
	if m == "" {
		return 0, "", false
	}
	v, ok := parseAmountToken(m)
	if !ok {
		return 0, "", false
	}
	return v, m, true
}

// LastAmount returns the last money token on the line. Receipts print the
// extended price at the end of an item line, after any unit price.
func LastAmount(line string) (float64, string, bool) {
	ms := reAmount.FindAllString(line, -1)
	if len(ms) == 0 {
		return 0, "", false
	}
	m := ms[len(ms)-1]
	v, ok := parseAmountToken(m)
	if !ok {
		return 0, "", false
	}
	return v, m, true
}

// AllAmounts returns every money token on the line, in order.
func AllAmounts(line string) []float64 {
	ms := reAmount.FindAllString(line, -1)
	out := make([]float64, 0, len(ms))
	for _, m := range ms {
		if v, ok := parseAmountToken(m); ok {
			out = append(out, v)
		}
	}
	return out
}

// StripAmounts removes every money token (and its currency prefix) from the
// line, returning what is left trimmed.
func StripAmounts(line string) string {
	return strings.TrimSpace(reAmount.ReplaceAllString(line, " "))
}

func parseAmountToken(tok string) (float64, bool) {
	digits := reAmountDigits.FindString(tok)
	if digits == "" {
		return 0, false
	}
	digits = strings.ReplaceAll(digits, ",", "")
	v, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
