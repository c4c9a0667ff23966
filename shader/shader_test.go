package shader

import (
	"math"
	"testing"
	"time"

	"github.com/peragwin/spacerobot/scene"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestBankSelect(t *testing.T) {
	b := NewBank(1920, 1080)
	if b.Len() != 11 {
		t.Fatal(b.Len())
	}
	if i, name := b.Current(); i != 0 || name != "brcosa" {
		t.Fatal(i, name)
	}

	b.Select(10)
	if _, name := b.Current(); name != "inversion" {
		t.Fatal(name)
	}
	b.Select(11)
	if i, _ := b.Current(); i != 0 {
		t.Fatal("out of range selection should wrap to 0", i)
	}
	b.Select(-3)
	if i, _ := b.Current(); i != 0 {
		t.Fatal(i)
	}
}

func TestBankToggle(t *testing.T) {
	b := NewBank(100, 100)
	f := scene.NewFrame(100, 100, 0, 0)

	b.Draw(f)
	if len(f.Layers) != 0 {
		t.Fatal("disabled bank should draw nothing")
	}

	b.Toggle()
	b.Select(4)
	if !b.Enabled() {
		t.Fatal("selection should not change the enabled flag")
	}
	b.Draw(f)
	if p := f.Pass("threshold"); p == nil {
		t.Fatal(f.Passes())
	}
}

func TestBankPositionShared(t *testing.T) {
	b := NewBank(1920, 1080)
	if x, y := b.Position(); x != 960 || y != 540 {
		t.Fatal(x, y)
	}

	b.SetX(127)
	b.SetY(0)
	b.Select(1)
	if x, y := b.Position(); x != 1920 || y != 0 {
		t.Fatal("position should survive switching effects", x, y)
	}
	if info := b.Info(); info != "hue X = 1920 Y = 0" {
		t.Fatal(info)
	}

	b.SetX(64)
	if x, _ := b.Position(); x != 968 {
		t.Fatal(x)
	}
}

func TestEffectUniforms(t *testing.T) {
	p := Params{X: 960, Y: 540, Width: 1920, Height: 1080, Time: 2, Frame: 0}
	want := map[string]map[string][]float32{
		"brcosa":     {"brightness": {1}, "contrast": {0}, "saturation": {0}},
		"hue":        {"hue": {math.Pi}},
		"pixelate":   {"pixels": {96, 96}},
		"channels":   {"gbias": {0, 0}, "rmult": {1.15, 1}, "bmult": {1, 1}},
		"threshold":  {"threshold": {0.5}},
		"neon":       {"brt": {0.25}, "rad": {1}},
		"deform":     {"time": {2}, "mouse": {0.5, 0.5}, "turns": {6}},
		"pixelRolls": {"pixels": {192, 150}, "rollRate": {0}, "rollAmount": {0.25}},
		"modcolor":   {"modr": {0.25}, "modg": {0.3}, "modb": {0.25}},
		"halftone":   {"pixelsPerRow": {51}},
		"inversion":  {},
	}

	for _, e := range Effects() {
		exp, ok := want[e.Name]
		if !ok {
			t.Fatal("unexpected effect", e.Name)
		}
		u := scene.Uniforms{}
		e.Set(u, p)
		for name, v := range exp {
			got := u[name]
			if len(got) != len(v) {
				t.Fatalf("%s.%s = %v, want %v", e.Name, name, got, v)
			}
			for i := range v {
				if !near(got[i], v[i]) {
					t.Errorf("%s.%s = %v, want %v", e.Name, name, got, v)
				}
			}
		}
	}
}

func TestFixedPasses(t *testing.T) {
	f := scene.NewFrame(640, 480, 3*time.Second, 0)

	if Blur(0) != nil {
		t.Fatal("blur should be skipped at zero intensity")
	}
	if p := Blur(2.5); p.Uniforms.Float("blurDegree") != 2.5 {
		t.Fatal(p.Uniforms)
	}

	if p := VHSGlitch(f); p.Uniforms.Float("iGlobalTime") != 3 || p.Uniforms["iResolution"][1] != 480 {
		t.Fatal(p.Uniforms)
	}
	if p := Sobel(f); p.Uniforms["iResolution"][0] != 640 {
		t.Fatal(p.Uniforms)
	}
	if p := Kaleidoscope(); !near(p.Uniforms.Float("viewAngle"), math.Pi/5) {
		t.Fatal(p.Uniforms)
	}
}
