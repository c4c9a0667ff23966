package util

import (
	"image"
	"image/color"
	"testing"
)

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#ff8000")
	if err != nil {
		t.Fatal(err)
	}
	if c != (color.RGBA{255, 128, 0, 255}) {
		t.Fatal(c)
	}

	if _, err := ParseHex("orange"); err == nil {
		t.Fatal("expected error for non-hex color")
	}
}

func TestRamp(t *testing.T) {
	ramp := NewColorMap().Ramp(64)
	if len(ramp) != 64 {
		t.Fatal(len(ramp))
	}
	first, _ := ParseHex("#9e0142")
	if ramp[0] != first {
		t.Fatal(ramp[0], first)
	}
	if ramp.At(1.0) != ramp[63] || ramp.At(-1) != ramp[0] {
		t.Fatal("At should clamp to the ends of the ramp")
	}
}

func TestGradientFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.SetRGBA(0, 0, color.RGBA{1, 2, 3, 255})
	img.SetRGBA(2, 0, color.RGBA{4, 5, 6, 255})
	img.SetRGBA(0, 1, color.RGBA{9, 9, 9, 255})

	g := GradientFromImage(img)
	if len(g) != 3 {
		t.Fatal(len(g))
	}
	if g[0] != (color.RGBA{1, 2, 3, 255}) || g[2] != (color.RGBA{4, 5, 6, 255}) {
		t.Fatal(g)
	}
}
