package shader

import (
	"github.com/chewxy/math32"

	"github.com/peragwin/spacerobot/scene"
)

// Names of the fixed passes.
const (
	SobelPass        = "sobel"
	VHSGlitchPass    = "vhsGlitch"
	BlurPass         = "blur"
	KaleidoscopePass = "kaleidoscope"
)

// Sobel is the edge detection pass shown while the DJ delay effect is on.
func Sobel(f *scene.Frame) *scene.Pass {
	p := scene.NewPass(SobelPass)
	p.Uniforms.Set("iResolution", float32(f.Width), float32(f.Height))
	return p
}

// VHSGlitch is the tape glitch pass shown while the DJ slice effect is on.
func VHSGlitch(f *scene.Frame) *scene.Pass {
	p := scene.NewPass(VHSGlitchPass)
	p.Uniforms.Set("iResolution", float32(f.Width), float32(f.Height))
	p.Uniforms.Set("iGlobalTime", f.Seconds())
	return p
}

// Blur is the pass tracking the decks' filter knobs. It returns nil when
// intensity is zero, so nothing is drawn.
func Blur(intensity float64) *scene.Pass {
	if intensity <= 0 {
		return nil
	}
	p := scene.NewPass(BlurPass)
	p.Uniforms.Set("blurDegree", float32(intensity))
	return p
}

// Kaleidoscope is the draw shader that mirrors everything drawn through it
// into ten segments.
func Kaleidoscope() *scene.Pass {
	p := scene.NewPass(KaleidoscopePass)
	p.Uniforms.Set("rotation", 0)
	p.Uniforms.Set("viewAngle", 2*math32.Pi/10)
	return p
}
