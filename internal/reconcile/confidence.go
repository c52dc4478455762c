package reconcile

import (
	"github.com/receiptwise/receipt-pipeline/internal/entity"
)

// Rule-score weights. Six presence signals, normalized over 6.0; a record can
// therefore never reach a rule score of 1.0 on presence alone, which keeps
// headroom for the classifier term.
const (
	weightMerchant      = 1.0
	weightTotal         = 1.5
	weightTax           = 0.5
	weightItems         = 1.0
	weightPayment       = 0.5
	weightReceiptNumber = 0.5
	ruleScoreDivisor    = 6.0
)

// score is the blended document confidence:
// 0.7 * ruleScore + 0.3 * mean per-line classifier confidence.
// The mean runs over all classified lines, including the ones the fold
// discarded, so uniformly weak classification drags the blend down.
func score(rec entity.ReceiptRecord, classified []entity.ClassifiedLine) float64 {
	var rule float64
	if rec.MerchantName != entity.UnknownMerchant && rec.MerchantName != "" {
		rule += weightMerchant
	}
	if rec.TotalAmount > 0 {
		rule += weightTotal
	}
	if rec.TaxAmount != nil {
		rule += weightTax
	}
	if len(rec.Items) > 0 {
		rule += weightItems
	}
	if rec.PaymentMethod != "" {
		rule += weightPayment
	}
	if rec.ReceiptNumber != "" {
		rule += weightReceiptNumber
	}
	rule /= ruleScoreDivisor

	var mean float64
	if len(classified) > 0 {
		var sum float64
		for _, cl := range classified {
			sum += cl.Confidence
		}
		mean = sum / float64(len(classified))
	}

	conf := 0.7*rule + 0.3*mean
	if conf < 0 {
		conf = 0
	}
	if conf > 1 {
		conf = 1
	}
	return conf
}
