package extract

import (
	"regexp"
	"strings"

	"github.com/receiptwise/receipt-pipeline/constants"
	"github.com/receiptwise/receipt-pipeline/internal/entity"
)

var (
	// "2 x Milk ..." style leading quantity.
	reQtyLeading = regexp.MustCompile(`^(\d{1,3})\s*[xX]?\s+`)
	// "Milk 2 x ..." style inline quantity marker.
	reQtyInline = regexp.MustCompile(`\b(\d{1,3})\s*[xX]\b`)
	// leftover separators once amounts and quantities are stripped
	reNameJunk = regexp.MustCompile(`[\s@*:\-]+$|^[\s@*:\-]+`)
)

// ParseItem reads a line-item from a candidate line: any non-header line
// carrying a money token. The extended price is the last money token on the
// line; the name is the line with amounts and the quantity marker stripped;
// the unit price is derived from totalPrice/quantity when a quantity was read.
func ParseItem(line string) (entity.ReceiptItem, bool) {
	if _, isHeader := constants.ContainsAnyKeyword(line, constants.HeaderKeywords); isHeader {
		return entity.ReceiptItem{}, false
	}

	rest := line
	qty := 0
	if m := reQtyLeading.FindStringSubmatch(rest); m != nil {
		qty = atoiSafe(m[1])
		rest = rest[len(m[0]):]
	} else if m := reQtyInline.FindStringSubmatch(rest); m != nil {
		qty = atoiSafe(m[1])
		rest = strings.Replace(rest, m[0], " ", 1)
	}

	total, _, ok := LastAmount(rest)
	if !ok {
		return entity.ReceiptItem{}, false
	}

	name := StripAmounts(rest)
	name = reNameJunk.ReplaceAllString(name, "")
	name = strings.TrimSpace(name)
	if name == "" {
		return entity.ReceiptItem{}, false
	}

	item := entity.ReceiptItem{Name: name, Quantity: 1, TotalPrice: total}
	if qty > 0 {
		item.Quantity = qty
		unit := total / float64(qty)
		item.UnitPrice = &unit
	}
	return item, true
}

func atoiSafe(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}
