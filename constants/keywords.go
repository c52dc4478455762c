package constants

import "strings"

// Keyword tables for line classification. These are read-only after init;
// classification does case-insensitive substring matching against them.

// TotalKeywords mark a line as carrying the amount due.
var TotalKeywords = []string{"total", "amount due", "balance", "grand total"}

// SubtotalKeywords mark a pre-tax subtotal line. Checked before the total
// keywords, since "subtotal" contains "total" and would win that rule.
var SubtotalKeywords = []string{"subtotal", "sub total", "sub-total"}

// TaxKeywords mark tax/VAT lines.
var TaxKeywords = []string{"tax", "vat", "gst", "hst", "sales tax"}

// ReceiptNumberKeywords mark lines carrying a receipt/transaction identifier.
var ReceiptNumberKeywords = []string{"receipt", "transaction", "trans", "ref", "reference", "invoice", "order"}

// BusinessSuffixes hint that an early line is the merchant name.
var BusinessSuffixes = []string{
	"inc", "llc", "ltd", "corp", "co.", "company",
	"market", "store", "shop", "restaurant", "cafe", "deli",
	"pharmacy", "supermarket", "grocery", "bakery",
}

// HeaderKeywords are lines that look like amounts or items but are receipt
// furniture, never merchandise.
var HeaderKeywords = []string{
	"thank you", "welcome", "cashier", "register", "tel", "phone",
	"www", ".com", "change", "tender",
}

// ContainsAnyKeyword reports whether s contains one of the keywords,
// case-insensitively, and returns the first that matched.
func ContainsAnyKeyword(s string, keywords []string) (string, bool) {
	lower := strings.ToLower(s)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return kw, true
		}
	}
	return "", false
}
