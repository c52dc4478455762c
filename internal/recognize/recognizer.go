package recognize

import (
	"context"
	"image"
)

// TextRecognizer is the narrow capability interface over the external
// text-recognition engine: one normalized image in, ordered best-candidate
// lines out. Implementations must return an error wrapping
// common.ErrRecognitionFailed on engine failure and
// common.ErrNoTextFound when the engine succeeds but finds nothing.
type TextRecognizer interface {
	RecognizeText(ctx context.Context, img image.Image, languages []string) ([]string, error)
}
