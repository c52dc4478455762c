package extract

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/receiptwise/receipt-pipeline/constants"
)

var reDigitRun = regexp.MustCompile(`\d{4,}`)

// PaymentMethod returns the canonical payment method named on the line.
func PaymentMethod(line string) (string, bool) {
	pm, ok := constants.CanonicalizePayment(line)
	return string(pm), ok
}

// ReceiptNumber returns the first run of four or more consecutive digits on a
// line that also names a receipt/transaction/reference keyword.
func ReceiptNumber(line string) (string, bool) {
	if _, ok := constants.ContainsAnyKeyword(line, constants.ReceiptNumberKeywords); !ok {
		return "", false
	}
	run := reDigitRun.FindString(line)
	if run == "" {
		return "", false
	}
	return run, true
}

// HasDigit reports whether the line contains any digit.
func HasDigit(line string) bool {
	return strings.ContainsFunc(line, unicode.IsDigit)
}

// HasLetter reports whether the line contains any letter.
func HasLetter(line string) bool {
	return strings.ContainsFunc(line, unicode.IsLetter)
}

// LooksLikeBusinessName reports whether a line has merchant-name shape: it
// carries a known business suffix, or it is non-numeric text that is not all
// one case noise (mixed-case or all-caps storefront banner). The second
// return is true when the stronger suffix signal fired.
func LooksLikeBusinessName(line string) (shape bool, suffix bool) {
	if _, ok := constants.ContainsAnyKeyword(line, constants.BusinessSuffixes); ok {
		return true, true
	}
	if !HasLetter(line) || HasAmount(line) {
		return false, false
	}
	digits := 0
	for _, r := range line {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	// mostly-numeric lines are phone numbers, ids, barcodes
	if digits*2 >= len(line) {
		return false, false
	}
	return true, false
}
