package normalize

import (
	"image"
	"log/slog"

	"github.com/disintegration/imaging"
)

// Mode selects the normalization profile.
type Mode string

const (
	// ModeFull runs geometric correction plus the whole photometric chain.
	ModeFull Mode = "FULL"
	// ModeQuick skips geometric correction and denoise for low-latency
	// preview use: exposure/contrast, grayscale, threshold only.
	ModeQuick Mode = "QUICK"
)

// Detector gate and shape limits for geometric correction.
const (
	minQuadScore   = 0.6
	minAspectRatio = 0.3
	maxAspectRatio = 3.0
)

// Config holds tunables for the photometric chain.
type Config struct {
	MinQuadScore  float64 // default 0.6
	BinarizeLevel float64 // threshold in (0,1), default 0.55
}

// Normalizer prepares a captured photo for the text-recognition engine.
// Every stage degrades gracefully: a failed filter or an undetected document
// boundary passes the previous image through unchanged.
type Normalizer struct {
	cfg      Config
	detector RectangleDetector
	logger   *slog.Logger
}

func NewNormalizer(cfg Config, detector RectangleDetector, logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MinQuadScore <= 0 {
		cfg.MinQuadScore = minQuadScore
	}
	if cfg.BinarizeLevel <= 0 || cfg.BinarizeLevel >= 1 {
		cfg.BinarizeLevel = 0.55
	}
	return &Normalizer{cfg: cfg, detector: detector, logger: logger}
}

// Normalize runs the two-stage correction for the given mode and returns the
// image to hand to the recognition engine. It never fails.
func (n *Normalizer) Normalize(img image.Image, mode Mode) image.Image {
	if img == nil {
		return nil
	}

	out := img
	if mode != ModeQuick {
		out = n.geometric(out)
	}
	return n.photometric(out, mode)
}

// geometric looks for the document boundary and flattens it onto the image
// bounds. No boundary, a weak score, or an implausible aspect ratio all mean
// the original image passes through.
func (n *Normalizer) geometric(img image.Image) image.Image {
	if n.detector == nil {
		return img
	}
	quad, ok := n.detector.DetectDocumentQuad(img)
	if !ok || quad.Score < n.cfg.MinQuadScore {
		n.logger.Debug("no document quad, passing image through", "found", ok, "score", quad.Score)
		return img
	}
	ar := quad.AspectRatio()
	if ar < minAspectRatio || ar > maxAspectRatio {
		n.logger.Debug("quad aspect ratio out of range", "aspect", ar)
		return img
	}

	w := int(quad.Width())
	h := int(quad.Height())
	warped := warpPerspective(img, quad, w, h)
	if warped == nil {
		return img
	}
	n.logger.Debug("applied perspective correction", "score", quad.Score, "width", w, "height", h)
	return warped
}

// photometric runs the fixed enhancement chain. Each step keeps the previous
// stage's output when the filter yields nothing.
func (n *Normalizer) photometric(img image.Image, mode Mode) image.Image {
	steps := []func(image.Image) *image.NRGBA{
		func(in image.Image) *image.NRGBA { return imaging.AdjustBrightness(in, 8) }, // exposure lift
		func(in image.Image) *image.NRGBA {
			// OCR favors low chroma: boost contrast, pull saturation down
			out := imaging.AdjustContrast(in, 25)
			out = imaging.AdjustBrightness(out, 5)
			return imaging.AdjustSaturation(out, -40)
		},
	}
	if mode != ModeQuick {
		steps = append(steps,
			func(in image.Image) *image.NRGBA { return imaging.AdjustGamma(in, 1.15) },
			func(in image.Image) *image.NRGBA { return imaging.Blur(in, 0.6) }, // denoise
			func(in image.Image) *image.NRGBA { return imaging.Sharpen(in, 1.2) },
		)
	}
	steps = append(steps,
		func(in image.Image) *image.NRGBA { return imaging.Grayscale(in) },
		func(in image.Image) *image.NRGBA { return n.binarize(in) },
	)

	out := img
	for _, step := range steps {
		if next := step(out); next != nil {
			out = next
		}
	}
	return out
}

// binarize applies a fixed luminance threshold to drive text to black and
// paper to white.
func (n *Normalizer) binarize(img image.Image) *image.NRGBA {
	src := imaging.Clone(img)
	b := src.Bounds()
	cut := uint8(n.cfg.BinarizeLevel * 255)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			px := src.NRGBAAt(x, y)
			v := uint8(0)
			if luma(px) > cut {
				v = 255
			}
			px.R, px.G, px.B = v, v, v
			src.SetNRGBA(x, y, px)
		}
	}
	return src
}
