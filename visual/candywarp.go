package visual

import (
	"sync"

	"github.com/peragwin/spacerobot/audio"
	"github.com/peragwin/spacerobot/audio/fft"
	"github.com/peragwin/spacerobot/scene"
)

// CandyWarpPass is the name of the generating shader behind CandyWarp.
const CandyWarpPass = "candywarp"

// CandyWarp runs a warp field shader whose scale follows the smoothed level
// of one octave band, chosen with the knob.
type CandyWarp struct {
	// mu guards the controls only; see Oblivion.
	mu    sync.Mutex
	ctl   candyWarpControls
	knob  Knob
	nband int

	// render serializes the analysis.
	render sync.Mutex

	in     audio.Frames
	fft    *fft.Analyzer
	smooth *fft.Smoother
	levels []float64

	width, height float32
}

type candyWarpControls struct {
	cycle float32
	warp  float32
	band  int
}

// NewCandyWarp creates the visualizer for a width x height display.
func NewCandyWarp(in audio.Frames, sampleRate float64, width, height int) *CandyWarp {
	a := fft.NewAnalyzer(in.Size(), sampleRate)
	a.LogAverages(11, 1)
	return &CandyWarp{
		ctl: candyWarpControls{
			cycle: 0.2,
			warp:  2.5,
			band:  1,
		},
		nband:  a.AvgSize(),
		in:     in,
		fft:    a,
		smooth: fft.NewSmoother(a.AvgSize(), fft.DefaultSmoothing),
		levels: make([]float64, a.AvgSize()),
		width:  float32(width),
		height: float32(height),
	}
}

func (c *CandyWarp) Name() string { return "CandyWarp" }

func (c *CandyWarp) ToggleButton1() {}
func (c *CandyWarp) ToggleButton2() {}
func (c *CandyWarp) SetScaling(int) {}

// SetFader1 sets the colour cycle rate.
func (c *CandyWarp) SetFader1(v int) {
	c.mu.Lock()
	c.ctl.cycle = scene.Remap(float32(v), 0, 127, 0.01, 0.4)
	c.mu.Unlock()
}

// SetFader2 sets the warp amount.
func (c *CandyWarp) SetFader2(v int) {
	c.mu.Lock()
	c.ctl.warp = scene.Remap(float32(v), 0, 127, -5, 5)
	c.mu.Unlock()
}

// SetKnob1 moves the driving band up or down, stopping at either end.
func (c *CandyWarp) SetKnob1(v int) {
	c.mu.Lock()
	c.ctl.band = clampInt(c.ctl.band+c.knob.Step(v), 0, c.nband-1)
	c.mu.Unlock()
}

func (c *CandyWarp) controls() candyWarpControls {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ctl
}

// Band is the index of the octave band driving the scale.
func (c *CandyWarp) Band() int {
	return c.controls().band
}

// analyse smooths the band levels in dB, floored at 0 dB.
func (c *CandyWarp) analyse() []float64 {
	c.fft.Forward(c.in.Mix())
	for i := range c.levels {
		c.levels[i] = max(fft.DB(c.fft.Avg(i)), 0)
	}
	return c.smooth.Update(c.levels)
}

// Pass builds the shader pass for the current state and audio frame.
func (c *CandyWarp) Pass(f *scene.Frame) *scene.Pass {
	ctl := c.controls()

	c.render.Lock()
	level := c.analyse()[ctl.band]
	c.render.Unlock()

	p := scene.NewPass(CandyWarpPass)
	p.Uniforms.Set("iResolution", c.width, c.height)
	p.Uniforms.Set("thickness", 0.1)
	p.Uniforms.Set("loops", 61)
	p.Uniforms.Set("tint", 0.1)
	p.Uniforms.Set("rate", 1.3)
	p.Uniforms.Set("hue", 0.33)

	p.Uniforms.Set("time", f.Seconds())
	p.Uniforms.Set("cycle", ctl.cycle)
	p.Uniforms.Set("warp", ctl.warp)
	p.Uniforms.Set("scale", scene.Remap(float32(level), 0, 18, 20, 100))
	return p
}

func (c *CandyWarp) Draw(f *scene.Frame) {
	f.Generate(c.Pass(f))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
