// Sourced from https://github.com/lucasb-eyer/go-colorful/blob/master/doc/gradientgen/gradientgen.go

package util

import (
	"fmt"
	"image"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ColorMap contains the "keypoints" of a color gradient.
// The position of each keypoint has to live in the range [0,1]
type ColorMap []struct {
	Col colorful.Color
	Pos float64
}

// GetInterpolatedColorFor returns a HCL-blend between the two colors around `t`.
// Note: It relies heavily on the fact that the gradient keypoints are sorted.
func (g ColorMap) GetInterpolatedColorFor(t float64) colorful.Color {
	for i := 0; i < len(g)-1; i++ {
		c1 := g[i]
		c2 := g[i+1]
		if c1.Pos <= t && t <= c2.Pos {
			t := (t - c1.Pos) / (c2.Pos - c1.Pos)
			return c1.Col.BlendHcl(c2.Col, t).Clamped()
		}
	}

	// Nothing found? Means we're at (or past) the last gradient keypoint.
	return g[len(g)-1].Col
}

// Ramp samples the map into n evenly spaced colors.
func (g ColorMap) Ramp(n int) Gradient {
	ramp := make(Gradient, n)
	for i := range ramp {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		r, gr, b := g.GetInterpolatedColorFor(t).RGB255()
		ramp[i] = color.RGBA{r, gr, b, 255}
	}
	return ramp
}

// Gradient is a discrete color ramp, such as one row of pixels read from a
// gradient strip.
type Gradient []color.RGBA

// At returns the color at fraction t of the ramp, clamped to the last entry.
func (g Gradient) At(t float64) color.RGBA {
	i := int(float64(len(g)) * t)
	if i >= len(g) {
		i = len(g) - 1
	}
	if i < 0 {
		i = 0
	}
	return g[i]
}

// GradientFromImage reads the first pixel row of img as a ramp.
func GradientFromImage(img image.Image) Gradient {
	b := img.Bounds()
	ramp := make(Gradient, 0, b.Dx())
	for x := b.Min.X; x < b.Max.X; x++ {
		ramp = append(ramp, color.RGBAModel.Convert(img.At(x, b.Min.Y)).(color.RGBA))
	}
	return ramp
}

// ParseHex parses a "#rrggbb" string into an opaque color.
func ParseHex(s string) (color.RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("bad color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{r, g, b, 255}, nil
}

func mustParseHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic("MustParseHex: " + err.Error())
	}
	return c
}

// NewColorMap returns the spectral map used when no gradient strips are found.
func NewColorMap() ColorMap {
	return ColorMap{
		{mustParseHex("#9e0142"), 0.0},
		{mustParseHex("#d53e4f"), 0.1},
		{mustParseHex("#f46d43"), 0.2},
		{mustParseHex("#fdae61"), 0.3},
		{mustParseHex("#fee090"), 0.4},
		{mustParseHex("#ffffbf"), 0.5},
		{mustParseHex("#e6f598"), 0.6},
		{mustParseHex("#abdda4"), 0.7},
		{mustParseHex("#66c2a5"), 0.8},
		{mustParseHex("#3288bd"), 0.9},
		{mustParseHex("#5e4fa2"), 1.0},
	}
}
