package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/disintegration/imaging"
	"github.com/joho/godotenv"

	"github.com/receiptwise/receipt-pipeline/internal/audit"
	"github.com/receiptwise/receipt-pipeline/internal/common"
	"github.com/receiptwise/receipt-pipeline/internal/export"
	"github.com/receiptwise/receipt-pipeline/internal/normalize"
	"github.com/receiptwise/receipt-pipeline/internal/pipeline"
	"github.com/receiptwise/receipt-pipeline/internal/recognize"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	_ = godotenv.Load()

	if len(os.Args) != 2 {
		logger.Error("usage", "cmd", "receipt-scan <image-file>")
		os.Exit(2)
	}
	path := os.Args[1]

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(1)
	}

	img, err := imaging.Open(path)
	if err != nil {
		logger.Error("open image", "path", path, "error", err)
		os.Exit(1)
	}

	capturedAt := time.Now().UTC()
	if fi, err := os.Stat(path); err == nil {
		capturedAt = fi.ModTime().UTC()
	}

	normalizer := normalize.NewNormalizer(normalize.Config{
		MinQuadScore:  cfg.Normalize.MinQuadScore,
		BinarizeLevel: cfg.Normalize.BinarizeLevel,
	}, normalize.ProjectionDetector{}, logger)
	recognizer := recognize.NewTesseractRecognizer(recognize.TesseractConfig{
		Tesseract:   cfg.OCR.Tesseract,
		TessdataDir: cfg.OCR.TessdataDir,
	}, logger)
	proc := pipeline.NewProcessor(logger, normalizer, recognizer, cfg.OCR.Languages)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.OCR.Timeout)
	defer cancel()

	mode := normalize.ModeFull
	if cfg.Normalize.Quick {
		mode = normalize.ModeQuick
	}

	res, err := proc.Process(ctx, img, capturedAt, mode)
	if err != nil && mode == normalize.ModeFull && recoverable(err) {
		// degraded retry: re-run the whole pipeline in quick mode
		logger.Warn("full scan failed, retrying in quick mode", "error", err)
		res, err = proc.Process(ctx, img, capturedAt, normalize.ModeQuick)
	}
	if err != nil {
		logger.Error("scan failed", "path", path, "error", err)
		os.Exit(1)
	}

	if cfg.Audit.DBPath != "" {
		store, err := audit.Open(cfg.Audit.DBPath, logger)
		if err != nil {
			logger.Error("open audit store", "error", err)
			os.Exit(1)
		}
		defer func() { _ = store.Close() }()
		if err := store.Save(ctx, audit.Entry{
			RunID:      res.ID,
			ScannedAt:  capturedAt,
			Mode:       string(res.Mode),
			RawText:    res.RawText,
			Record:     res.Record,
			Confidence: res.Record.Confidence,
		}); err != nil {
			logger.Error("save audit row", "error", err)
			os.Exit(1)
		}
	}

	svc := export.NewService(logger)
	out, err := svc.RecordJSON(res.Record)
	if err != nil {
		logger.Error("encode record", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

func recoverable(err error) bool {
	return errors.Is(err, common.ErrRecognitionFailed) || errors.Is(err, common.ErrNoTextFound)
}
