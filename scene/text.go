package scene

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Text draws lines of text with their top-left corner at (x, y).
func Text(dst xdraw.Image, x, y int, col color.Color, lines ...string) {
	face := basicfont.Face7x13
	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil()

	for i, line := range lines {
		d := &font.Drawer{
			Dst:  dst,
			Src:  image.NewUniform(col),
			Face: face,
			Dot:  fixed.P(x, y+metrics.Ascent.Ceil()+i*lineHeight),
		}
		d.DrawString(line)
	}
}

// TextWidth is the width in pixels of s in the overlay font.
func TextWidth(s string) int {
	return font.MeasureString(basicfont.Face7x13, s).Ceil()
}

// TextImage renders s on a transparent image just large enough to hold it.
func TextImage(s string, col color.Color) *image.RGBA {
	face := basicfont.Face7x13
	h := face.Metrics().Height.Ceil()
	img := image.NewRGBA(image.Rect(0, 0, TextWidth(s), h))
	Text(img, 0, 0, col, s)
	return img
}

// CenteredText draws s scaled up to the given glyph height, centred on dst.
func CenteredText(dst *image.RGBA, s string, height int, col color.Color) {
	if s == "" {
		return
	}
	src := TextImage(s, col)
	scale := float64(height) / float64(src.Bounds().Dy())
	w := int(float64(src.Bounds().Dx()) * scale)
	b := dst.Bounds()
	x := b.Min.X + (b.Dx()-w)/2
	y := b.Min.Y + (b.Dy()-height)/2
	xdraw.BiLinear.Scale(dst, image.Rect(x, y, x+w, y+height), src, src.Bounds(), xdraw.Over, nil)
}
