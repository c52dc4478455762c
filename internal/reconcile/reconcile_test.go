package reconcile

import (
	"reflect"
	"testing"
	"time"

	"github.com/receiptwise/receipt-pipeline/constants"
	"github.com/receiptwise/receipt-pipeline/internal/classify"
	"github.com/receiptwise/receipt-pipeline/internal/entity"
)

var capturedAt = time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC)

func rawLines(texts ...string) []entity.RawLine {
	out := make([]entity.RawLine, len(texts))
	for i, s := range texts {
		out[i] = entity.RawLine{Text: s, Index: i, TotalLines: len(texts)}
	}
	return out
}

func classified(texts ...string) []entity.ClassifiedLine {
	return classify.NewClassifier(nil).Classify(rawLines(texts...))
}

func TestReconcileFullReceipt(t *testing.T) {
	lines := []string{
		"ACME MARKET",
		"07/12/2024",
		"Milk 2 x $2.50 $5.00",
		"Bread $3.20",
		"TAX $0.50",
		"TOTAL $8.70",
		"VISA ****1234",
	}
	raw := rawLines(lines...)
	rec := NewReconciler(nil).Reconcile(classified(lines...), raw, capturedAt)

	if rec.MerchantName != "ACME MARKET" {
		t.Fatalf("merchant = %q", rec.MerchantName)
	}
	if !rec.Date.Equal(time.Date(2024, 7, 12, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("date = %v", rec.Date)
	}
	if rec.TotalAmount != 8.70 {
		t.Fatalf("total = %v", rec.TotalAmount)
	}
	if rec.TaxAmount == nil || *rec.TaxAmount != 0.50 {
		t.Fatalf("tax = %v", rec.TaxAmount)
	}
	if rec.PaymentMethod != "Visa" {
		t.Fatalf("payment = %q", rec.PaymentMethod)
	}
	if len(rec.Items) != 2 {
		t.Fatalf("items = %+v", rec.Items)
	}
	milk := rec.Items[0]
	if milk.Name != "Milk" || milk.Quantity != 2 || milk.TotalPrice != 5.00 {
		t.Fatalf("milk = %+v", milk)
	}
	if milk.UnitPrice == nil || *milk.UnitPrice != 2.50 {
		t.Fatalf("milk unit = %v", milk.UnitPrice)
	}
	bread := rec.Items[1]
	if bread.Name != "Bread" || bread.TotalPrice != 3.20 {
		t.Fatalf("bread = %+v", bread)
	}
	if rec.Confidence <= 0.7 {
		t.Fatalf("confidence = %v, want > 0.7", rec.Confidence)
	}
}

func TestReconcileTotalIsMaximum(t *testing.T) {
	// two lines claim to be the total; the larger wins, and adding a smaller
	// one must not change the result
	lines := []string{"TOTAL $8.70", "AMOUNT DUE $12.40"}
	rec := NewReconciler(nil).Reconcile(classified(lines...), rawLines(lines...), capturedAt)
	if rec.TotalAmount != 12.40 {
		t.Fatalf("total = %v, want 12.40", rec.TotalAmount)
	}

	more := append(lines, "BALANCE $3.10")
	rec2 := NewReconciler(nil).Reconcile(classified(more...), rawLines(more...), capturedAt)
	if rec2.TotalAmount != 12.40 {
		t.Fatalf("total after smaller line = %v, want 12.40", rec2.TotalAmount)
	}
}

func TestReconcileItemsNeverEmptyButPresent(t *testing.T) {
	lines := []string{"TOTAL $8.70"}
	rec := NewReconciler(nil).Reconcile(classified(lines...), rawLines(lines...), capturedAt)
	if rec.Items != nil && len(rec.Items) == 0 {
		t.Fatal("items must be absent, not an empty list")
	}
}

func TestReconcileDateDefaultsToCaptureTime(t *testing.T) {
	lines := []string{"ACME MARKET", "Bread $3.20", "TOTAL $8.70"}
	rec := NewReconciler(nil).Reconcile(classified(lines...), rawLines(lines...), capturedAt)
	if !rec.Date.Equal(capturedAt) {
		t.Fatalf("date = %v, want capture time %v", rec.Date, capturedAt)
	}
	// the default date must not suppress any other field
	if rec.MerchantName != "ACME MARKET" || rec.TotalAmount != 8.70 {
		t.Fatalf("defaulted date suppressed other fields: %+v", rec)
	}
}

func TestReconcileSentinelsOnEmptyEvidence(t *testing.T) {
	lines := []string{"* * *", "....."}
	rec := NewReconciler(nil).Reconcile(classified(lines...), rawLines(lines...), capturedAt)
	if rec.MerchantName != entity.UnknownMerchant {
		t.Fatalf("merchant = %q, want sentinel", rec.MerchantName)
	}
	if rec.TotalAmount != 0 {
		t.Fatalf("total = %v, want 0", rec.TotalAmount)
	}
	if rec.TaxAmount != nil || rec.Items != nil || rec.PaymentMethod != "" || rec.ReceiptNumber != "" {
		t.Fatalf("expected absent optionals: %+v", rec)
	}
	if rec.Confidence < 0 || rec.Confidence > 1 {
		t.Fatalf("confidence %v out of bounds", rec.Confidence)
	}
}

func TestFallbackFillsWhatClassificationMissed(t *testing.T) {
	// classifier sees nothing, so everything must come from the raw scan
	lines := []string{
		"ACME MARKET",
		"07/12/2024",
		"Bread $3.20",
		"TAX $0.50",
		"TOTAL $8.70",
		"VISA ****1234",
		"Receipt #123456",
	}
	raw := rawLines(lines...)
	rec := NewReconciler(nil).Reconcile(nil, raw, capturedAt)

	if rec.MerchantName != "ACME MARKET" {
		t.Fatalf("merchant = %q", rec.MerchantName)
	}
	if !rec.Date.Equal(time.Date(2024, 7, 12, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("date = %v", rec.Date)
	}
	if rec.TotalAmount != 8.70 {
		t.Fatalf("total = %v", rec.TotalAmount)
	}
	if rec.TaxAmount == nil || *rec.TaxAmount != 0.50 {
		t.Fatalf("tax = %v", rec.TaxAmount)
	}
	if rec.PaymentMethod != "Visa" || rec.ReceiptNumber != "123456" {
		t.Fatalf("payment/receipt = %q %q", rec.PaymentMethod, rec.ReceiptNumber)
	}
	if len(rec.Items) == 0 {
		t.Fatalf("items empty: %+v", rec)
	}
}

func TestFallbackIsIdempotent(t *testing.T) {
	raw := rawLines("ACME MARKET", "Bread $3.20", "TOTAL $8.70")
	r := NewReconciler(nil)

	rec := entity.ReceiptRecord{MerchantName: entity.UnknownMerchant}
	r.fallback(&rec, raw)
	once := rec
	r.fallback(&rec, raw)
	if !reflect.DeepEqual(once, rec) {
		t.Fatalf("fallback not idempotent: %+v vs %+v", once, rec)
	}
}

func TestFallbackNeverOverwrites(t *testing.T) {
	raw := rawLines("OTHER STORE LLC", "TOTAL $99.99")
	rec := entity.ReceiptRecord{
		MerchantName: "ACME MARKET",
		TotalAmount:  8.70,
	}
	NewReconciler(nil).fallback(&rec, raw)
	if rec.MerchantName != "ACME MARKET" || rec.TotalAmount != 8.70 {
		t.Fatalf("fallback overwrote filled fields: %+v", rec)
	}
}

func TestReconcileNoRegressionOverKeywordScan(t *testing.T) {
	lines := []string{
		"ACME MARKET",
		"07/12/2024",
		"Milk 2 x $2.50 $5.00",
		"TAX $0.50",
		"TOTAL $8.70",
		"VISA ****1234",
	}
	raw := rawLines(lines...)
	r := NewReconciler(nil)

	withClassifier := r.Reconcile(classified(lines...), raw, capturedAt)
	keywordOnly := r.Reconcile(nil, raw, capturedAt)

	if keywordOnly.MerchantName != entity.UnknownMerchant && withClassifier.MerchantName == entity.UnknownMerchant {
		t.Fatal("merchant regressed")
	}
	if keywordOnly.TotalAmount > 0 && withClassifier.TotalAmount == 0 {
		t.Fatal("total regressed")
	}
	if keywordOnly.TaxAmount != nil && withClassifier.TaxAmount == nil {
		t.Fatal("tax regressed")
	}
	if len(keywordOnly.Items) > 0 && len(withClassifier.Items) == 0 {
		t.Fatal("items regressed")
	}
	if keywordOnly.PaymentMethod != "" && withClassifier.PaymentMethod == "" {
		t.Fatal("payment method regressed")
	}
	if keywordOnly.ReceiptNumber != "" && withClassifier.ReceiptNumber == "" {
		t.Fatal("receipt number regressed")
	}
}

func TestDiscardsLowConfidenceLines(t *testing.T) {
	// a hand-built Unknown line with a typed amount must not leak into totals
	low := []entity.ClassifiedLine{{
		Line:       entity.RawLine{Text: "9999.99", Index: 0, TotalLines: 1},
		FieldType:  constants.FieldTotalAmount,
		Confidence: 0.2,
	}}
	rec := NewReconciler(nil).Reconcile(low, nil, capturedAt)
	if rec.TotalAmount != 0 {
		t.Fatalf("low-confidence total leaked: %v", rec.TotalAmount)
	}
}
