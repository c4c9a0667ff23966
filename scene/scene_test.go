package scene

import (
	"image"
	"image/color"
	"testing"
	"time"

	ml "github.com/go-gl/mathgl/mgl32"
)

func TestFrameLayers(t *testing.T) {
	f := NewFrame(4, 4, 1500*time.Millisecond, 7)
	if f.Seconds() != 1.5 {
		t.Fatal(f.Seconds())
	}

	kaleido := NewPass("kaleidoscope")
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))

	f.UseShader(kaleido)
	f.Draw(img, Over)
	f.Generate(NewPass("candywarp"))
	f.Filter(NewPass("blur"))
	f.UseShader(nil)
	f.Draw(img, Screen)

	if len(f.Layers) != 4 {
		t.Fatal(len(f.Layers))
	}
	if f.Layers[0].Via != kaleido || f.Layers[1].Via != kaleido {
		t.Fatal("draw shader should apply to the following layers")
	}
	if f.Layers[2].Via != nil || f.Layers[3].Via != nil {
		t.Fatal("filters and layers after a reset have no draw shader")
	}
	passes := f.Passes()
	if len(passes) != 2 || passes[0] != "candywarp" || passes[1] != "blur" {
		t.Fatal(passes)
	}
	if f.Pass("blur") == nil || f.Pass("sobel") != nil {
		t.Fatal("Pass lookup by name")
	}
}

func TestUniforms(t *testing.T) {
	u := Uniforms{}
	u.Set("iResolution", 1920, 1080)
	u.Set("time", 2)
	if u.Float("time") != 2 || u.Float("missing") != 0 {
		t.Fatal(u)
	}
	if n := u.Names(); len(n) != 2 || n[0] != "iResolution" {
		t.Fatal(n)
	}
}

func TestSoftwareRender(t *testing.T) {
	r := NewSoftware(2, 1)
	f := NewFrame(2, 1, 0, 0)
	f.Clear(color.RGBA{0, 0, 255, 255})

	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	f.Draw(img, Over)
	f.Filter(NewPass("blur"))

	if err := r.Render(f); err != nil {
		t.Fatal(err)
	}
	if got := r.Image().RGBAAt(0, 0); got != (color.RGBA{255, 0, 0, 255}) {
		t.Fatal(got)
	}
	if got := r.Image().RGBAAt(1, 0); got != (color.RGBA{0, 0, 255, 255}) {
		t.Fatal("transparent pixels should show the background", got)
	}
	if r.Skipped() != 1 {
		t.Fatal(r.Skipped())
	}
}

func TestCanvasRect(t *testing.T) {
	c := NewCanvas(10, 10)
	white := color.RGBA{255, 255, 255, 255}
	c.Rect(2, 2, 4, 4, white)

	if c.Image.RGBAAt(3, 3) != white {
		t.Fatal("inside of rect should be filled", c.Image.RGBAAt(3, 3))
	}
	if c.Image.RGBAAt(8, 8).A != 0 {
		t.Fatal("outside of rect should be untouched")
	}

	c.Clear()
	if c.Image.RGBAAt(3, 3).A != 0 {
		t.Fatal("Clear should make the canvas transparent")
	}

	// shapes entirely off canvas are dropped
	c.Rect(-20, -20, 5, 5, white)
	c.Rect(50, 50, 5, 5, white)
}

func TestCanvasTransform(t *testing.T) {
	c := NewCanvas(10, 10)
	c.Translate(5, 5)
	c.Push()
	c.Rotate(3.14159265 / 2)
	p := c.Transform(1, 0)
	if abs(p[0]-5) > 1e-4 || abs(p[1]-6) > 1e-4 {
		t.Fatal(p)
	}
	c.Pop()
	p = c.Transform(1, 0)
	if p[0] != 6 || p[1] != 5 {
		t.Fatal(p)
	}
}

func TestCanvasLine(t *testing.T) {
	c := NewCanvas(10, 10)
	c.Line(0, 5, 10, 5, 2, Gray(255, 255))
	if c.Image.RGBAAt(5, 5).A == 0 || c.Image.RGBAAt(5, 1).A != 0 {
		t.Fatal("line should cover its own row only")
	}
}

func TestCanvasPath(t *testing.T) {
	c := NewCanvas(10, 10)
	white := color.RGBA{255, 255, 255, 255}

	// two rectangles wound in opposite directions, sharing the edge
	// x = 5.5 through the middle of pixel column 5
	c.BeginPath()
	c.AddPolygon(ml.Vec2{1, 1}, ml.Vec2{5.5, 1}, ml.Vec2{5.5, 5}, ml.Vec2{1, 5})
	c.AddPolygon(ml.Vec2{5.5, 1}, ml.Vec2{5.5, 5}, ml.Vec2{9, 5}, ml.Vec2{9, 1})
	c.FillPath(white)

	for x := 1; x < 9; x++ {
		if got := c.Image.RGBAAt(x, 3); got.A != 255 {
			t.Fatal("path should be solid across the shared edge, got", got, "at", x)
		}
	}
	if c.Dirty() != image.Rect(1, 1, 9, 5) {
		t.Fatal("unexpected dirty bounds", c.Dirty())
	}

	// the path is consumed by the fill
	c.FillPath(color.RGBA{255, 0, 0, 255})
	if c.Image.RGBAAt(3, 3) != white {
		t.Fatal("filling an empty path should draw nothing")
	}
}

func TestCanvasClearDirty(t *testing.T) {
	c := NewCanvas(10, 10)
	white := color.RGBA{255, 255, 255, 255}
	c.Rect(2, 2, 3, 3, white)
	c.Polyline([]ml.Vec2{{0, 8}, {4, 8}, {9, 8}}, 1, white)
	if c.Dirty().Empty() {
		t.Fatal("drawing should mark the canvas dirty")
	}

	c.Clear()
	for i, v := range c.Image.Pix {
		if v != 0 {
			t.Fatal("Clear left pixel data at", i)
		}
	}
	if !c.Dirty().Empty() {
		t.Fatal("Clear should reset the dirty bounds", c.Dirty())
	}

	c.Fill(white)
	c.Clear()
	if c.Image.RGBAAt(9, 9).A != 0 {
		t.Fatal("Clear after Fill should clear the whole canvas")
	}
}

func TestWithAlpha(t *testing.T) {
	c := WithAlpha(color.RGBA{200, 100, 0, 255}, 51)
	if c != (color.RGBA{40, 20, 0, 51}) {
		t.Fatal(c)
	}
}

func TestCenteredText(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 200, 100))
	CenteredText(img, "GO", 40, color.RGBA{255, 255, 255, 255})

	lit := 0
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			lit++
		}
	}
	if lit == 0 {
		t.Fatal("text should have drawn something")
	}
	if img.RGBAAt(0, 0).A != 0 {
		t.Fatal("text should be centred away from the corner")
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
