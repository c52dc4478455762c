package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/joho/godotenv"

	"github.com/receiptwise/receipt-pipeline/constants"
	"github.com/receiptwise/receipt-pipeline/internal/common"
	"github.com/receiptwise/receipt-pipeline/internal/entity"
	"github.com/receiptwise/receipt-pipeline/internal/export"
	"github.com/receiptwise/receipt-pipeline/internal/normalize"
	"github.com/receiptwise/receipt-pipeline/internal/pipeline"
	"github.com/receiptwise/receipt-pipeline/internal/recognize"
)

// receipt-batch scans every image in a directory and writes one XLSX with a
// row per receipt. Files that fail recognition are logged and skipped; the
// batch keeps going.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	_ = godotenv.Load()

	if len(os.Args) != 2 {
		logger.Error("usage", "cmd", "receipt-batch <image-dir>")
		os.Exit(2)
	}
	dir := os.Args[1]

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(1)
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

	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Error("read dir", "dir", dir, "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	var records []entity.ReceiptRecord
	scanned, skipped := 0, 0

	for _, de := range entries {
		if de.IsDir() || !constants.IsAllowedExt(filepath.Ext(de.Name())) {
			continue
		}
		path := filepath.Join(dir, de.Name())

		img, err := imaging.Open(path)
		if err != nil {
			logger.Warn("skipping unreadable image", "path", path, "error", err)
			skipped++
			continue
		}
		capturedAt := time.Now().UTC()
		if fi, err := os.Stat(path); err == nil {
			capturedAt = fi.ModTime().UTC()
		}

		runCtx, cancel := context.WithTimeout(ctx, cfg.OCR.Timeout)
		res, err := proc.Process(runCtx, img, capturedAt, normalize.ModeFull)
		cancel()
		if err != nil {
			logger.Warn("scan failed, skipping", "path", path, "error", err)
			skipped++
			continue
		}
		records = append(records, res.Record)
		scanned++
	}

	svc := export.NewService(logger)
	out, err := svc.RecordsXLSX(records)
	if err != nil {
		logger.Error("build xlsx", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(cfg.Export.OutPath, out, 0o644); err != nil {
		logger.Error("write xlsx", "path", cfg.Export.OutPath, "error", err)
		os.Exit(1)
	}

	logger.Info("batch complete",
		"dir", dir,
		"scanned", scanned,
		"skipped", skipped,
		"out", cfg.Export.OutPath,
	)
}
