package entity

import (
	"time"
)

// UnknownMerchant is the sentinel merchant name used when no merchant line
// could be found.
const UnknownMerchant = "Unknown Merchant"

// ReceiptItem is one purchased line item.
type ReceiptItem struct {
	Name       string   `json:"name"`
	Quantity   int      `json:"quantity"`
	UnitPrice  *float64 `json:"unit_price,omitempty"`
	TotalPrice float64  `json:"total_price"`
}

// ReceiptRecord is the pipeline's final output for one scanned receipt.
// It is built once per run and not mutated afterward; absent optionals stay
// nil rather than zero so callers can tell "not found" from "found zero".
type ReceiptRecord struct {
	MerchantName  string        `json:"merchant_name"`
	Date          time.Time     `json:"date"`
	TotalAmount   float64       `json:"total_amount"`
	SubtotalAmount *float64     `json:"subtotal_amount,omitempty"`
	TaxAmount     *float64      `json:"tax_amount,omitempty"`
	Items         []ReceiptItem `json:"items,omitempty"`
	PaymentMethod string        `json:"payment_method,omitempty"`
	ReceiptNumber string        `json:"receipt_number,omitempty"`
	Confidence    float64       `json:"confidence"`
}
