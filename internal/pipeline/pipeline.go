package pipeline

import (
	"context"
	"image"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/receiptwise/receipt-pipeline/internal/classify"
	"github.com/receiptwise/receipt-pipeline/internal/common"
	"github.com/receiptwise/receipt-pipeline/internal/entity"
	"github.com/receiptwise/receipt-pipeline/internal/normalize"
	"github.com/receiptwise/receipt-pipeline/internal/recognize"
	"github.com/receiptwise/receipt-pipeline/internal/reconcile"
)

// ScanResult is the output of one pipeline run.
type ScanResult struct {
	ID       uuid.UUID
	Record   entity.ReceiptRecord
	RawText  string // all recognized lines joined by newlines, for audit
	Lines    []entity.ClassifiedLine
	Mode     normalize.Mode
	Duration time.Duration
}

// Processor coordinates normalize → recognize → classify → reconcile.
// It holds no state across invocations; every run is a pure function of the
// image and capture time.
type Processor struct {
	logger     *slog.Logger
	normalizer *normalize.Normalizer
	recognizer recognize.TextRecognizer
	classifier *classify.Classifier
	reconciler *reconcile.Reconciler
	languages  []string
}

func NewProcessor(
	logger *slog.Logger,
	normalizer *normalize.Normalizer,
	recognizer recognize.TextRecognizer,
	languages []string,
) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		logger:     logger,
		normalizer: normalizer,
		recognizer: recognizer,
		classifier: classify.NewClassifier(logger),
		reconciler: reconcile.NewReconciler(logger),
		languages:  languages,
	}
}

// Process runs the whole pipeline on one captured image. capturedAt is the
// caller's capture timestamp, used as the record date of last resort.
// Cancellation between stages aborts the run with no partial record; after a
// successful recognition call, nothing downstream can fail.
func (p *Processor) Process(ctx context.Context, img image.Image, capturedAt time.Time, mode normalize.Mode) (*ScanResult, error) {
	if img == nil {
		return nil, common.NewAppError("IMAGE_INVALID", "nil image", common.ErrImageInvalid)
	}
	start := time.Now()
	runID := uuid.New()

	normalized := p.normalizer.Normalize(img, mode)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lines, err := p.recognizer.RecognizeText(ctx, normalized, p.languages)
	if err != nil {
		p.logger.Error("recognition failed", "run_id", runID, "error", err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw := recognize.BuildRawLines(lines)
	if len(raw) == 0 {
		return nil, common.NewAppError("NO_TEXT_FOUND", "no usable lines after cleanup", common.ErrNoTextFound)
	}

	classified := p.classifier.Classify(raw)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	record := p.reconciler.Reconcile(classified, raw, capturedAt)

	res := &ScanResult{
		ID:       runID,
		Record:   record,
		RawText:  recognize.JoinLines(raw),
		Lines:    classified,
		Mode:     mode,
		Duration: time.Since(start),
	}
	p.logger.Info("scan complete",
		"run_id", runID,
		"mode", string(mode),
		"lines", len(raw),
		"merchant", record.MerchantName,
		"total", record.TotalAmount,
		"confidence", record.Confidence,
		"duration_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}
