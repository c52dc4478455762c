package entity

import (
	"time"

	"github.com/receiptwise/receipt-pipeline/constants"
)

// RawLine is a trimmed, non-empty recognized text line together with its
// zero-based index and the total line count of the document.
type RawLine struct {
	Text       string `json:"text"`
	Index      int    `json:"index"`
	TotalLines int    `json:"total_lines"`
}

// Position returns the line's layout position as a fraction in [0,1).
// Receipts have no reliable coordinates after OCR, so index order stands in
// for vertical position.
func (l RawLine) Position() float64 {
	if l.TotalLines <= 0 {
		return 0
	}
	return float64(l.Index) / float64(l.TotalLines)
}

// ClassifiedLine is a RawLine with the field-type label it was assigned,
// a per-line confidence, and any typed value read during classification.
type ClassifiedLine struct {
	Line       RawLine             `json:"line"`
	FieldType  constants.FieldType `json:"field_type"`
	Confidence float64             `json:"confidence"`

	// Amount is set when an amount token drove the classification.
	Amount *float64 `json:"amount,omitempty"`
	// Date is set for lines classified as dates.
	Date *time.Time `json:"date,omitempty"`
}
