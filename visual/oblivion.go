package visual

import (
	"math"
	"sync"

	"github.com/chewxy/math32"
	ml "github.com/go-gl/mathgl/mgl32"
	"github.com/golang/glog"

	"github.com/peragwin/spacerobot/audio"
	"github.com/peragwin/spacerobot/audio/fft"
	"github.com/peragwin/spacerobot/audio/util"
	"github.com/peragwin/spacerobot/scene"
)

const (
	oblivionCount    = 20
	oblivionBandSize = 10
	oblivionDecay    = 0.9
	speedDeadZone    = 0.01
)

// Oblivion draws the spectrum as rings of points around the centre, grouped
// into bands of ten bins. Every point leaves a quad back to where it was on
// the previous frame, so with clearing off the rings smear into trails.
type Oblivion struct {
	// mu guards the controls. Draw copies them and releases mu before
	// analysing and drawing, so controller writes never wait on a frame.
	mu   sync.Mutex
	ctl  oblivionControls
	knob Knob

	// render serializes Draw and guards the state it advances.
	render sync.Mutex

	in        audio.Frames
	fft       *fft.Analyzer
	canvas    *scene.Canvas
	gradients []util.Gradient

	radius  float32
	bands   []float64
	prevPos [][]ml.Vec2
	hasPrev bool
	angle   float32
}

type oblivionControls struct {
	gradient int
	speed    float32
	opacity  uint8
	scaling  float32
	retain   bool
	markers  bool
}

// NewOblivion creates the visualizer for a width x height display.
// gradients must not be empty.
func NewOblivion(in audio.Frames, sampleRate float64, width, height int, gradients []util.Gradient) *Oblivion {
	a := fft.NewAnalyzer(in.Size(), sampleRate)
	nbands := a.SpecSize() / oblivionBandSize
	pos := make([][]ml.Vec2, nbands)
	for i := range pos {
		pos[i] = make([]ml.Vec2, oblivionCount)
	}
	return &Oblivion{
		ctl: oblivionControls{
			opacity: 100,
			scaling: 5,
		},
		in:        in,
		fft:       a,
		canvas:    scene.NewCanvas(width, height),
		gradients: gradients,
		radius:    float32(height) * 0.3 * 1.35,
		bands:     make([]float64, nbands),
		prevPos:   pos,
	}
}

func (o *Oblivion) Name() string { return "Oblivion" }

// ToggleButton1 toggles frame clearing.
func (o *Oblivion) ToggleButton1() {
	o.mu.Lock()
	o.ctl.retain = !o.ctl.retain
	o.mu.Unlock()
}

// ToggleButton2 toggles the marker ellipses.
func (o *Oblivion) ToggleButton2() {
	o.mu.Lock()
	o.ctl.markers = !o.ctl.markers
	o.mu.Unlock()
}

// SetFader1 sets the rotation speed in radians per frame.
func (o *Oblivion) SetFader1(v int) {
	o.mu.Lock()
	o.ctl.speed = rotationSpeed(v)
	o.mu.Unlock()
}

func rotationSpeed(v int) float32 {
	s := scene.Remap(float32(v), 0, 127, -0.1, 0.1)
	if s > -speedDeadZone && s < speedDeadZone {
		return 0
	}
	return s
}

// SetFader2 sets the fill opacity.
func (o *Oblivion) SetFader2(v int) {
	o.mu.Lock()
	o.ctl.opacity = uint8(scene.Round(scene.Remap(float32(v), 0, 127, 0, 255)))
	o.mu.Unlock()
}

// SetKnob1 steps through the gradients.
func (o *Oblivion) SetKnob1(v int) {
	o.mu.Lock()
	o.ctl.gradient = wrap(o.ctl.gradient+o.knob.Step(v), len(o.gradients))
	g := o.ctl.gradient
	o.mu.Unlock()
	glog.V(2).Infof("oblivion: gradient %d", g)
}

func (o *Oblivion) SetScaling(v int) {
	o.mu.Lock()
	o.ctl.scaling = scaling(v)
	o.mu.Unlock()
}

func (o *Oblivion) controls() oblivionControls {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.ctl
}

// Gradient is the index of the selected gradient.
func (o *Oblivion) Gradient() int {
	return o.controls().gradient
}

// Speed is the current rotation speed.
func (o *Oblivion) Speed() float32 {
	return o.controls().speed
}

// Opacity is the fill alpha set by fader 2.
func (o *Oblivion) Opacity() uint8 {
	return o.controls().opacity
}

// updateBands folds the latest spectrum into the decaying band levels. Each
// band sums its bins and is boosted more towards the top of the spectrum.
func (o *Oblivion) updateBands(scaling float32) {
	spec := o.fft.SpecSize()
	span := float64(spec - oblivionBandSize)
	for i := range o.bands {
		n := i * oblivionBandSize
		pct := float64(n) / span

		sum := 0.0
		for j := n; j < n+oblivionBandSize; j++ {
			sum += o.fft.Band(j)
		}
		avg := sum * (4 + 4*pct) * float64(scaling) / oblivionBandSize

		o.bands[i] = math.Max(avg, o.bands[i]*oblivionDecay)
	}
}

func (o *Oblivion) Draw(f *scene.Frame) {
	ctl := o.controls()

	o.render.Lock()
	defer o.render.Unlock()

	o.fft.Forward(o.in.Mix())
	o.updateBands(ctl.scaling)

	c := o.canvas
	if !ctl.retain {
		c.Clear()
	}
	w, h := float32(c.Width()), float32(c.Height())
	cx, cy := w/2, h/2

	o.angle += ctl.speed
	c.ResetMatrix()
	c.Translate(cx, cy)
	c.Rotate(o.angle)
	c.Translate(-cx, -cy)

	grad := o.gradients[ctl.gradient]
	r := o.radius
	delta := 2 * math32.Pi / oblivionCount

	for i, v := range o.bands {
		value := float32(v)
		pct := float32(i) / float32(len(o.bands))
		col := scene.WithAlpha(grad.At(float64(pct)), ctl.opacity)

		start := float32(i) * math32.Pi / 100
		size := max(2, value*0.5*r/360)
		dist := max(-r, r-pct*r*value/40)

		for j := 0; j < oblivionCount; j++ {
			a := start + delta*float32(j)
			if j%2 == 0 {
				a -= 2 * start
			}
			cur := ml.Vec2{
				cx + math32.Cos(a)*dist,
				cy + math32.Sin(a)*dist,
			}

			if ctl.markers {
				c.Ellipse(cur[0], cur[1], size, size, col)
			}
			if o.hasPrev {
				p := o.prevPos[i][j]
				c.Line(cur[0], cur[1], p[0], p[1], size, col)
			}
			o.prevPos[i][j] = cur
		}
	}
	o.hasPrev = true

	// accumulated trails are screened so they brighten what is underneath
	mode := scene.Over
	if ctl.retain {
		mode = scene.Screen
	}
	f.Draw(c.Image, mode)
}
