package constants

import "strings"

// PaymentMethod is the canonical display name for how a receipt was paid.
type PaymentMethod string

const (
	PaymentVisa        PaymentMethod = "Visa"
	PaymentMastercard  PaymentMethod = "Mastercard"
	PaymentAmex        PaymentMethod = "Amex"
	PaymentDiscover    PaymentMethod = "Discover"
	PaymentCash        PaymentMethod = "Cash"
	PaymentCredit      PaymentMethod = "Credit"
	PaymentDebit       PaymentMethod = "Debit"
	PaymentCard        PaymentMethod = "Card"
	PaymentChip        PaymentMethod = "Chip"
	PaymentContactless PaymentMethod = "Contactless"
)

// paymentKeywords maps detection keywords to canonical names. Order matters:
// the first keyword found in a line wins, and multi-word brand names come
// before the generic fallbacks ("card" matches "mastercard" otherwise).
var paymentKeywords = []struct {
	Keyword string
	Method  PaymentMethod
}{
	{"visa", PaymentVisa},
	{"mastercard", PaymentMastercard},
	{"american express", PaymentAmex},
	{"amex", PaymentAmex},
	{"discover", PaymentDiscover},
	{"cash", PaymentCash},
	{"credit", PaymentCredit},
	{"debit", PaymentDebit},
	{"chip", PaymentChip},
	{"contactless", PaymentContactless},
	{"card", PaymentCard},
}

// CanonicalizePayment scans a line for a payment keyword and returns the
// canonical display name of the first one present.
func CanonicalizePayment(line string) (PaymentMethod, bool) {
	lower := strings.ToLower(line)
	for _, pk := range paymentKeywords {
		if strings.Contains(lower, pk.Keyword) {
			return pk.Method, true
		}
	}
	return "", false
}
