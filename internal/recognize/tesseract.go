package recognize

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/receiptwise/receipt-pipeline/internal/common"
)

// TesseractConfig configures the exec-based engine.
type TesseractConfig struct {
	Tesseract   string // binary name or absolute path; if empty -> "tesseract"
	TessdataDir string
	PSM         int // e.g., 6 is good for a uniform block of text
	OEM         int // 1 = LSTM; leave 0 to use default
}

// TesseractRecognizer shells out to tesseract for text recognition.
type TesseractRecognizer struct {
	cfg    TesseractConfig
	runner Runner
	logger *slog.Logger
}

func NewTesseractRecognizer(cfg TesseractConfig, logger *slog.Logger) *TesseractRecognizer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	return &TesseractRecognizer{cfg: cfg, runner: execRunner{}, logger: logger}
}

// RecognizeText writes the normalized image to a temp file, runs the engine,
// and splits its output into lines. Engine failure maps to
// ErrRecognitionFailed, an empty read to ErrNoTextFound.
func (t *TesseractRecognizer) RecognizeText(ctx context.Context, img image.Image, languages []string) ([]string, error) {
	if img == nil {
		return nil, common.NewAppError("IMAGE_INVALID", "nil image", common.ErrImageInvalid)
	}

	tmpDir, err := os.MkdirTemp("", "rp-ocr-*")
	if err != nil {
		return nil, fmt.Errorf("temp dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	path := filepath.Join(tmpDir, "page.png")
	if err := imaging.Save(img, path); err != nil {
		return nil, common.NewAppError("IMAGE_INVALID", "encode image", common.ErrImageInvalid)
	}

	lang := "eng"
	if len(languages) > 0 {
		lang = strings.Join(languages, "+")
	}
	args := []string{path, "stdout", "-l", lang}
	if t.cfg.PSM > 0 {
		args = append(args, "--psm", fmt.Sprintf("%d", t.cfg.PSM))
	}
	if t.cfg.OEM > 0 {
		args = append(args, "--oem", fmt.Sprintf("%d", t.cfg.OEM))
	}
	if t.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", t.cfg.TessdataDir)
	}

	out, errb, err := t.runner.Run(ctx, t.cfg.Tesseract, args...)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		t.logger.Error("tesseract failed", "error", err, "stderr", string(errb))
		return nil, common.NewAppError("RECOGNITION_FAILED", "tesseract", common.ErrRecognitionFailed)
	}

	lines := SplitLines(CleanText(string(out)))
	if len(lines) == 0 {
		return nil, common.NewAppError("NO_TEXT_FOUND", "engine returned no text", common.ErrNoTextFound)
	}
	return lines, nil
}
