package classify

import (
	"log/slog"

	"github.com/receiptwise/receipt-pipeline/constants"
	"github.com/receiptwise/receipt-pipeline/internal/entity"
	"github.com/receiptwise/receipt-pipeline/internal/extract"
)

// Per-type confidence levels. Each is derived from the signals that put the
// line in that bucket; a keyword plus a money token is a stronger read than
// position alone.
const (
	confDateWholeLine = 0.9
	confDateSubstring = 0.7
	confTotalKeyword  = 0.9
	confTotalPosition = 0.6
	confTotalWeak     = 0.3
	confSubtotal      = 0.85
	confTax           = 0.85
	confItemPosition  = 0.7
	confItemWeak      = 0.5
	confPayment       = 0.8
	confReceiptNumber = 0.75
	confMerchantKw    = 0.8
	confMerchantShape = 0.55
	confUnknown       = 0.1
)

// Classifier assigns one field type and a confidence to every raw line.
// It is a pure function over its input; the only state is the logger.
type Classifier struct {
	logger *slog.Logger
}

func NewClassifier(logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{logger: logger}
}

// Classify labels every line. Rules run in fixed precedence order and the
// first match wins; nothing here ever fails, the floor is Unknown at 0.1.
func (c *Classifier) Classify(lines []entity.RawLine) []entity.ClassifiedLine {
	out := make([]entity.ClassifiedLine, 0, len(lines))
	for _, ln := range lines {
		out = append(out, c.classifyLine(ln))
	}
	return out
}

func (c *Classifier) classifyLine(ln entity.RawLine) entity.ClassifiedLine {
	cl := entity.ClassifiedLine{Line: ln, FieldType: constants.FieldUnknown, Confidence: confUnknown}
	pos := ln.Position()

	// 1. date, as the whole line or a substring
	if t, whole, ok := extract.ParseDate(ln.Text); ok {
		cl.FieldType = constants.FieldDate
		cl.Confidence = confDateSubstring
		if whole {
			cl.Confidence = confDateWholeLine
		}
		cl.Date = &t
		return cl
	}

	amount, _, hasAmount := extract.FirstAmount(ln.Text)

	// 2. subtotal keyword; checked before total because "subtotal" contains it
	if hasAmount {
		if _, ok := constants.ContainsAnyKeyword(ln.Text, constants.SubtotalKeywords); ok {
			cl.FieldType = constants.FieldSubtotalAmount
			cl.Confidence = confSubtotal
			cl.Amount = &amount
			return cl
		}
		// 3. total keyword
		if _, ok := constants.ContainsAnyKeyword(ln.Text, constants.TotalKeywords); ok {
			cl.FieldType = constants.FieldTotalAmount
			cl.Confidence = confTotalKeyword
			cl.Amount = &amount
			return cl
		}
		// 4. tax keyword
		if _, ok := constants.ContainsAnyKeyword(ln.Text, constants.TaxKeywords); ok {
			cl.FieldType = constants.FieldTaxAmount
			cl.Confidence = confTax
			cl.Amount = &amount
			return cl
		}
		// 5. totals sit near the end of the document
		if pos > 0.7 {
			cl.FieldType = constants.FieldTotalAmount
			cl.Confidence = confTotalPosition
			cl.Amount = &amount
			return cl
		}
		// 6. mid-document amounts are merchandise
		if pos > 0.3 && pos < 0.7 {
			cl.FieldType = constants.FieldItem
			cl.Confidence = confItemPosition
			cl.Amount = &amount
			return cl
		}
	}

	// 7. payment method vocabulary
	if _, ok := extract.PaymentMethod(ln.Text); ok {
		cl.FieldType = constants.FieldPaymentMethod
		cl.Confidence = confPayment
		return cl
	}

	// 8. receipt/transaction keyword next to digits
	if _, ok := constants.ContainsAnyKeyword(ln.Text, constants.ReceiptNumberKeywords); ok && extract.HasDigit(ln.Text) {
		cl.FieldType = constants.FieldReceiptNumber
		cl.Confidence = confReceiptNumber
		return cl
	}

	// 9. merchant names live in the header
	if pos < 0.3 {
		if shape, suffix := extract.LooksLikeBusinessName(ln.Text); shape {
			cl.FieldType = constants.FieldMerchantName
			cl.Confidence = confMerchantShape
			if suffix {
				cl.Confidence = confMerchantKw
			}
			return cl
		}
	}

	// 10. weak item: letters plus an amount anywhere in the body
	if pos > 0.2 && pos < 0.8 && hasAmount && extract.HasLetter(ln.Text) && !isHeaderish(ln.Text) {
		cl.FieldType = constants.FieldItem
		cl.Confidence = confItemWeak
		cl.Amount = &amount
		return cl
	}

	return cl
}

func isHeaderish(line string) bool {
	for _, kws := range [][]string{
		constants.TotalKeywords,
		constants.SubtotalKeywords,
		constants.TaxKeywords,
		constants.HeaderKeywords,
	} {
		if _, ok := constants.ContainsAnyKeyword(line, kws); ok {
			return true
		}
	}
	return false
}
