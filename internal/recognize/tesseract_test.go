package recognize

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/receiptwise/receipt-pipeline/internal/common"
)

type fakeRunner struct {
	out string
	err error
}

func (f fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	if f.err != nil {
		return nil, []byte("engine exploded"), f.err
	}
	return []byte(f.out), nil, nil
}

func newTestRecognizer(r Runner) *TesseractRecognizer {
	t := NewTesseractRecognizer(TesseractConfig{}, nil)
	t.runner = r
	return t
}

func testImage() image.Image {
	return image.NewNRGBA(image.Rect(0, 0, 4, 4))
}

func TestRecognizeTextSplitsLines(t *testing.T) {
	r := newTestRecognizer(fakeRunner{out: "ACME MARKET\n\nTOTAL $8.70\n"})
	lines, err := r.RecognizeText(context.Background(), testImage(), []string{"eng"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 2 || lines[0] != "ACME MARKET" || lines[1] != "TOTAL $8.70" {
		t.Fatalf("lines = %v", lines)
	}
}

func TestRecognizeTextEngineFailure(t *testing.T) {
	r := newTestRecognizer(fakeRunner{err: errors.New("exit status 1")})
	_, err := r.RecognizeText(context.Background(), testImage(), nil)
	if !errors.Is(err, common.ErrRecognitionFailed) {
		t.Fatalf("err = %v, want ErrRecognitionFailed", err)
	}
}

func TestRecognizeTextNoText(t *testing.T) {
	r := newTestRecognizer(fakeRunner{out: "   \n\n"})
	_, err := r.RecognizeText(context.Background(), testImage(), nil)
	if !errors.Is(err, common.ErrNoTextFound) {
		t.Fatalf("err = %v, want ErrNoTextFound", err)
	}
}

func TestRecognizeTextNilImage(t *testing.T) {
	r := newTestRecognizer(fakeRunner{out: "x"})
	_, err := r.RecognizeText(context.Background(), nil, nil)
	if !errors.Is(err, common.ErrImageInvalid) {
		t.Fatalf("err = %v, want ErrImageInvalid", err)
	}
}

func TestRecognizeTextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := newTestRecognizer(fakeRunner{err: context.Canceled})
	_, err := r.RecognizeText(ctx, testImage(), nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
