package normalize

import (
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
)

type fixedDetector struct {
	quad Quad
	ok   bool
}

func (f fixedDetector) DetectDocumentQuad(img image.Image) (Quad, bool) {
	return f.quad, f.ok
}

func flatImage(w, h int, c color.NRGBA) image.Image {
	return imaging.New(w, h, c)
}

func TestNormalizeBinarizesToBlackAndWhite(t *testing.T) {
	n := NewNormalizer(Config{}, nil, nil)
	out := n.Normalize(flatImage(20, 20, color.NRGBA{200, 180, 160, 255}), ModeFull)

	nrgba := imaging.Clone(out)
	b := nrgba.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			px := nrgba.NRGBAAt(x, y)
			if px.R != px.G || px.G != px.B {
				t.Fatalf("pixel (%d,%d) not gray: %+v", x, y, px)
			}
			if px.R != 0 && px.R != 255 {
				t.Fatalf("pixel (%d,%d) not binarized: %+v", x, y, px)
			}
		}
	}
}

func TestNormalizeQuickKeepsDimensions(t *testing.T) {
	// quick mode must never invoke the detector
	det := fixedDetector{quad: Quad{
		TopLeft: image.Pt(0, 0), TopRight: image.Pt(5, 0),
		BottomRight: image.Pt(5, 5), BottomLeft: image.Pt(0, 5),
		Score: 0.99,
	}, ok: true}
	n := NewNormalizer(Config{}, det, nil)

	out := n.Normalize(flatImage(30, 40, color.NRGBA{220, 220, 220, 255}), ModeQuick)
	if out.Bounds().Dx() != 30 || out.Bounds().Dy() != 40 {
		t.Fatalf("quick mode changed dimensions: %v", out.Bounds())
	}
}

func TestNormalizePassesThroughWithoutQuad(t *testing.T) {
	n := NewNormalizer(Config{}, fixedDetector{ok: false}, nil)
	out := n.Normalize(flatImage(30, 40, color.NRGBA{128, 128, 128, 255}), ModeFull)
	if out.Bounds().Dx() != 30 || out.Bounds().Dy() != 40 {
		t.Fatalf("pass-through changed dimensions: %v", out.Bounds())
	}
}

func TestNormalizeRejectsWeakQuad(t *testing.T) {
	det := fixedDetector{quad: Quad{
		TopLeft: image.Pt(5, 5), TopRight: image.Pt(15, 5),
		BottomRight: image.Pt(15, 15), BottomLeft: image.Pt(5, 15),
		Score: 0.4,
	}, ok: true}
	n := NewNormalizer(Config{}, det, nil)
	out := n.Normalize(flatImage(30, 30, color.NRGBA{128, 128, 128, 255}), ModeFull)
	if out.Bounds().Dx() != 30 || out.Bounds().Dy() != 30 {
		t.Fatalf("low score quad was not rejected: %v", out.Bounds())
	}
}

func TestNormalizeWarpsToQuadBounds(t *testing.T) {
	det := fixedDetector{quad: Quad{
		TopLeft: image.Pt(5, 5), TopRight: image.Pt(25, 5),
		BottomRight: image.Pt(25, 20), BottomLeft: image.Pt(5, 20),
		Score: 0.9,
	}, ok: true}
	n := NewNormalizer(Config{}, det, nil)
	out := n.Normalize(flatImage(40, 40, color.NRGBA{240, 240, 240, 255}), ModeFull)
	if out.Bounds().Dx() != 20 || out.Bounds().Dy() != 15 {
		t.Fatalf("warped size = %v, want 20x15", out.Bounds())
	}
}

func TestNormalizeRejectsExtremeAspect(t *testing.T) {
	det := fixedDetector{quad: Quad{
		TopLeft: image.Pt(0, 10), TopRight: image.Pt(39, 10),
		BottomRight: image.Pt(39, 14), BottomLeft: image.Pt(0, 14),
		Score: 0.9,
	}, ok: true}
	n := NewNormalizer(Config{}, det, nil)
	out := n.Normalize(flatImage(40, 40, color.NRGBA{128, 128, 128, 255}), ModeFull)
	if out.Bounds().Dx() != 40 || out.Bounds().Dy() != 40 {
		t.Fatalf("extreme aspect quad was not rejected: %v", out.Bounds())
	}
}

func TestProjectionDetectorFindsPaper(t *testing.T) {
	img := imaging.New(60, 60, color.NRGBA{10, 10, 10, 255})
	paper := imaging.New(36, 36, color.NRGBA{245, 245, 245, 255})
	composed := imaging.Paste(img, paper, image.Pt(12, 12))

	quad, ok := ProjectionDetector{}.DetectDocumentQuad(composed)
	if !ok {
		t.Fatal("expected a quad")
	}
	if quad.Score < 0.6 {
		t.Fatalf("score = %v, want >= 0.6", quad.Score)
	}
	near := func(got, want int) bool {
		d := got - want
		return d >= -4 && d <= 4
	}
	if !near(quad.TopLeft.X, 12) || !near(quad.TopLeft.Y, 12) ||
		!near(quad.BottomRight.X, 47) || !near(quad.BottomRight.Y, 47) {
		t.Fatalf("quad = %+v, want around (12,12)-(47,47)", quad)
	}
}

func TestProjectionDetectorRejectsTinyImage(t *testing.T) {
	_, ok := ProjectionDetector{}.DetectDocumentQuad(flatImage(6, 6, color.NRGBA{128, 128, 128, 255}))
	if ok {
		t.Fatal("tiny image must not produce a quad")
	}
}

func TestHomographyIdentity(t *testing.T) {
	pts := [4][2]float64{{0, 0}, {9, 0}, {9, 9}, {0, 9}}
	h, ok := homography(pts, pts)
	if !ok {
		t.Fatal("identity homography failed")
	}
	// identity maps (3,4) to (3,4)
	den := h[6]*3 + h[7]*4 + 1
	x := (h[0]*3 + h[1]*4 + h[2]) / den
	y := (h[3]*3 + h[4]*4 + h[5]) / den
	if abs(x-3) > 1e-6 || abs(y-4) > 1e-6 {
		t.Fatalf("identity maps (3,4) -> (%v,%v)", x, y)
	}
}
