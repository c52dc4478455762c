package normalize

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// warpPerspective maps the quad's four corners onto the full bounds of a new
// image of the given size, sampling the source through the inverse homography
// with bilinear interpolation. A degenerate quad returns nil and the caller
// keeps the original image.
func warpPerspective(src image.Image, q Quad, dstW, dstH int) *image.NRGBA {
	if dstW <= 0 || dstH <= 0 {
		return nil
	}
	// homography from destination rectangle to source quad, so each output
	// pixel pulls from the source
	h, ok := homography(
		[4][2]float64{{0, 0}, {float64(dstW - 1), 0}, {float64(dstW - 1), float64(dstH - 1)}, {0, float64(dstH - 1)}},
		[4][2]float64{
			{float64(q.TopLeft.X), float64(q.TopLeft.Y)},
			{float64(q.TopRight.X), float64(q.TopRight.Y)},
			{float64(q.BottomRight.X), float64(q.BottomRight.Y)},
			{float64(q.BottomLeft.X), float64(q.BottomLeft.Y)},
		},
	)
	if !ok {
		return nil
	}

	nrgba := imaging.Clone(src)
	sb := nrgba.Bounds()
	sw, sh := sb.Dx(), sb.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, dstW, dstH))

	for y := 0; y < dstH; y++ {
		for x := 0; x < dstW; x++ {
			fx, fy := x, y
			den := h[6]*float64(fx) + h[7]*float64(fy) + 1
			if den == 0 {
				continue
			}
			sx := (h[0]*float64(fx) + h[1]*float64(fy) + h[2]) / den
			sy := (h[3]*float64(fx) + h[4]*float64(fy) + h[5]) / den
			if sx < 0 || sy < 0 || sx > float64(sw-1) || sy > float64(sh-1) {
				continue
			}
			dst.SetNRGBA(x, y, bilinear(nrgba, sx, sy))
		}
	}
	return dst
}

// homography solves the 8-unknown projective mapping src -> dst from four
// point correspondences by Gaussian elimination.
func homography(src, dst [4][2]float64) ([8]float64, bool) {
	var a [8][9]float64
	for i := 0; i < 4; i++ {
		sx, sy := src[i][0], src[i][1]
		dx, dy := dst[i][0], dst[i][1]
		a[2*i] = [9]float64{sx, sy, 1, 0, 0, 0, -sx * dx, -sy * dx, dx}
		a[2*i+1] = [9]float64{0, 0, 0, sx, sy, 1, -sx * dy, -sy * dy, dy}
	}

	for col := 0; col < 8; col++ {
		pivot := col
		for r := col + 1; r < 8; r++ {
			if abs(a[r][col]) > abs(a[pivot][col]) {
				pivot = r
			}
		}
		if abs(a[pivot][col]) < 1e-10 {
			return [8]float64{}, false
		}
		a[col], a[pivot] = a[pivot], a[col]
		for r := 0; r < 8; r++ {
			if r == col {
				continue
			}
			f := a[r][col] / a[col][col]
			for c := col; c < 9; c++ {
				a[r][c] -= f * a[col][c]
			}
		}
	}

	var h [8]float64
	for i := 0; i < 8; i++ {
		h[i] = a[i][8] / a[i][i]
	}
	return h, true
}

func bilinear(img *image.NRGBA, x, y float64) (c color.NRGBA) {
	x0, y0 := int(x), int(y)
	x1, y1 := x0+1, y0+1
	b := img.Bounds()
	if x1 >= b.Dx() {
		x1 = x0
	}
	if y1 >= b.Dy() {
		y1 = y0
	}
	fx, fy := x-float64(x0), y-float64(y0)

	c00 := img.NRGBAAt(b.Min.X+x0, b.Min.Y+y0)
	c10 := img.NRGBAAt(b.Min.X+x1, b.Min.Y+y0)
	c01 := img.NRGBAAt(b.Min.X+x0, b.Min.Y+y1)
	c11 := img.NRGBAAt(b.Min.X+x1, b.Min.Y+y1)

	mix := func(a0, a1, b0, b1 uint8) uint8 {
		top := float64(a0)*(1-fx) + float64(a1)*fx
		bot := float64(b0)*(1-fx) + float64(b1)*fx
		return uint8(top*(1-fy) + bot*fy + 0.5)
	}
	c.R = mix(c00.R, c10.R, c01.R, c11.R)
	c.G = mix(c00.G, c10.G, c01.G, c11.G)
	c.B = mix(c00.B, c10.B, c01.B, c11.B)
	c.A = mix(c00.A, c10.A, c01.A, c11.A)
	return c
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
