package reconcile

import (
	"log/slog"
	"time"

	"github.com/receiptwise/receipt-pipeline/constants"
	"github.com/receiptwise/receipt-pipeline/internal/entity"
	"github.com/receiptwise/receipt-pipeline/internal/extract"
)

// minKeepConfidence is the floor below which classified lines are discarded
// before folding.
const minKeepConfidence = 0.3

// minMerchantConfidence gates which classified merchant line may name the
// record; weaker candidates are left to the raw-line fallback.
const minMerchantConfidence = 0.5

// Reconciler folds classified lines into one ReceiptRecord and backfills
// still-empty fields from the raw line list.
type Reconciler struct {
	logger *slog.Logger
}

func NewReconciler(logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{logger: logger}
}

// Reconcile merges classified lines into a single record. capturedAt is the
// caller-supplied image capture time, used when no date is discoverable.
// Reconcile never fails: the worst case is a low-confidence record of
// sentinel values.
func (r *Reconciler) Reconcile(classified []entity.ClassifiedLine, raw []entity.RawLine, capturedAt time.Time) entity.ReceiptRecord {
	rec := entity.ReceiptRecord{MerchantName: entity.UnknownMerchant}

	// Step 1: drop lines the classifier itself barely believed in.
	kept := make([]entity.ClassifiedLine, 0, len(classified))
	for _, cl := range classified {
		if cl.Confidence > minKeepConfidence {
			kept = append(kept, cl)
		}
	}

	// Step 2: fold surviving lines per field type.
	for _, cl := range kept {
		switch cl.FieldType {
		case constants.FieldMerchantName:
			if rec.MerchantName == entity.UnknownMerchant && cl.Confidence > minMerchantConfidence {
				rec.MerchantName = cl.Line.Text
			}
		case constants.FieldDate:
			if rec.Date.IsZero() && cl.Date != nil {
				rec.Date = *cl.Date
			}
		case constants.FieldTotalAmount:
			// several lines can claim to be the total; the largest amount is
			// the best estimate, even though OCR noise can fool it
			if amt, ok := lineAmount(cl); ok && amt > rec.TotalAmount {
				rec.TotalAmount = amt
			}
		case constants.FieldSubtotalAmount:
			if rec.SubtotalAmount == nil {
				if amt, ok := lineAmount(cl); ok {
					rec.SubtotalAmount = &amt
				}
			}
		case constants.FieldTaxAmount:
			if rec.TaxAmount == nil {
				if amt, ok := lineAmount(cl); ok {
					rec.TaxAmount = &amt
				}
			}
		case constants.FieldItem:
			if item, ok := extract.ParseItem(cl.Line.Text); ok {
				rec.Items = append(rec.Items, item)
			}
		case constants.FieldPaymentMethod:
			if rec.PaymentMethod == "" {
				if pm, ok := extract.PaymentMethod(cl.Line.Text); ok {
					rec.PaymentMethod = pm
				}
			}
		case constants.FieldReceiptNumber:
			if rec.ReceiptNumber == "" {
				if num, ok := extract.ReceiptNumber(cl.Line.Text); ok {
					rec.ReceiptNumber = num
				}
			}
		}
	}

	// Step 3: backfill anything still empty from the raw, unclassified lines.
	r.fallback(&rec, raw)

	if rec.Date.IsZero() {
		rec.Date = capturedAt
	}

	// Step 4: score the record.
	rec.Confidence = score(rec, classified)
	return rec
}

func lineAmount(cl entity.ClassifiedLine) (float64, bool) {
	if cl.Amount != nil {
		return *cl.Amount, true
	}
	amt, _, ok := extract.FirstAmount(cl.Line.Text)
	return amt, ok
}

// fallback re-scans the original line list with pure keyword and positional
// heuristics, bypassing classification, and fills only fields that are still
// at their defaults. Running it twice is a no-op the second time.
func (r *Reconciler) fallback(rec *entity.ReceiptRecord, raw []entity.RawLine) {
	if rec.MerchantName == entity.UnknownMerchant {
		for _, ln := range raw {
			if ln.Position() >= 0.3 {
				break
			}
			if shape, _ := extract.LooksLikeBusinessName(ln.Text); shape {
				rec.MerchantName = ln.Text
				break
			}
		}
	}

	if rec.Date.IsZero() {
		for _, ln := range raw {
			if t, _, ok := extract.ParseDate(ln.Text); ok {
				rec.Date = t
				break
			}
		}
	}

	if rec.TotalAmount == 0 {
		max := 0.0
		for _, ln := range raw {
			if _, ok := constants.ContainsAnyKeyword(ln.Text, constants.TotalKeywords); !ok {
				continue
			}
			if _, sub := constants.ContainsAnyKeyword(ln.Text, constants.SubtotalKeywords); sub {
				continue
			}
			if amt, _, ok := extract.FirstAmount(ln.Text); ok && amt > max {
				max = amt
			}
		}
		rec.TotalAmount = max
	}

	if rec.SubtotalAmount == nil {
		for _, ln := range raw {
			if _, ok := constants.ContainsAnyKeyword(ln.Text, constants.SubtotalKeywords); !ok {
				continue
			}
			if amt, _, ok := extract.FirstAmount(ln.Text); ok {
				rec.SubtotalAmount = &amt
				break
			}
		}
	}

	if rec.TaxAmount == nil {
		for _, ln := range raw {
			if _, ok := constants.ContainsAnyKeyword(ln.Text, constants.TaxKeywords); !ok {
				continue
			}
			if amt, _, ok := extract.FirstAmount(ln.Text); ok {
				rec.TaxAmount = &amt
				break
			}
		}
	}

	if len(rec.Items) == 0 {
		for _, ln := range raw {
			if isSummaryLine(ln.Text) || extract.HasDate(ln.Text) {
				continue
			}
			if item, ok := extract.ParseItem(ln.Text); ok {
				rec.Items = append(rec.Items, item)
			}
		}
	}

	if rec.PaymentMethod == "" {
		for _, ln := range raw {
			if pm, ok := extract.PaymentMethod(ln.Text); ok {
				rec.PaymentMethod = pm
				break
			}
		}
	}

	if rec.ReceiptNumber == "" {
		for _, ln := range raw {
			if num, ok := extract.ReceiptNumber(ln.Text); ok {
				rec.ReceiptNumber = num
				break
			}
		}
	}
}

// isSummaryLine filters totals/subtotals/tax out of the fallback item scan.
func isSummaryLine(line string) bool {
	for _, kws := range [][]string{
		constants.TotalKeywords,
		constants.SubtotalKeywords,
		constants.TaxKeywords,
	} {
		if _, ok := constants.ContainsAnyKeyword(line, kws); ok {
			return true
		}
	}
	return false
}
