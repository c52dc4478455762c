package normalize

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Quad is a detected document boundary, corners in clockwise order starting
// top-left, plus the detector's confidence in [0,1].
type Quad struct {
	TopLeft     image.Point
	TopRight    image.Point
	BottomRight image.Point
	BottomLeft  image.Point
	Score       float64
}

// Width returns the quad's mean horizontal extent.
func (q Quad) Width() float64 {
	top := float64(q.TopRight.X - q.TopLeft.X)
	bottom := float64(q.BottomRight.X - q.BottomLeft.X)
	return (top + bottom) / 2
}

// Height returns the quad's mean vertical extent.
func (q Quad) Height() float64 {
	left := float64(q.BottomLeft.Y - q.TopLeft.Y)
	right := float64(q.BottomRight.Y - q.TopRight.Y)
	return (left + right) / 2
}

// AspectRatio returns width/height, or 0 for a degenerate quad.
func (q Quad) AspectRatio() float64 {
	h := q.Height()
	if h <= 0 {
		return 0
	}
	return q.Width() / h
}

// RectangleDetector finds the single most confident document quadrilateral in
// an image. Implementations report ok=false when nothing plausible is found;
// the normalizer treats that as a pass-through, never a failure.
type RectangleDetector interface {
	DetectDocumentQuad(img image.Image) (Quad, bool)
}

// ProjectionDetector is a dependency-free RectangleDetector: it thresholds a
// blurred grayscale copy and takes the bounding box of the bright (paper)
// region. Paper on a darker background produces a strong box; a flat image
// produces a low score and is rejected upstream.
type ProjectionDetector struct{}

func (ProjectionDetector) DetectDocumentQuad(img image.Image) (Quad, bool) {
	gray := imaging.Grayscale(imaging.Blur(img, 1.5))
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	if w < 8 || h < 8 {
		return Quad{}, false
	}

	// mean luminance as the paper/background split
	var sum uint64
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum += uint64(luma(gray.NRGBAAt(b.Min.X+x, b.Min.Y+y)))
		}
	}
	mean := uint8(sum / uint64(w*h))

	minX, minY, maxX, maxY := w, h, -1, -1
	bright := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if luma(gray.NRGBAAt(b.Min.X+x, b.Min.Y+y)) > mean {
				bright++
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
				if y < minY {
					minY = y
				}
				if y > maxY {
					maxY = y
				}
			}
		}
	}
	if maxX < 0 || maxX-minX < w/8 || maxY-minY < h/8 {
		return Quad{}, false
	}

	boxArea := float64(maxX-minX+1) * float64(maxY-minY+1)
	// density of bright pixels inside the box approximates how rectangular
	// the paper region really is
	score := float64(bright) / boxArea
	if score > 1 {
		score = 1
	}

	return Quad{
		TopLeft:     image.Pt(minX, minY),
		TopRight:    image.Pt(maxX, minY),
		BottomRight: image.Pt(maxX, maxY),
		BottomLeft:  image.Pt(minX, maxY),
		Score:       score,
	}, true
}

func luma(c color.NRGBA) uint8 {
	// Rec. 601 integer approximation
	return uint8((299*int(c.R) + 587*int(c.G) + 114*int(c.B)) / 1000)
}
