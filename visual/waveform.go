package visual

import (
	"sync"

	"github.com/charmbracelet/harmonica"
	ml "github.com/go-gl/mathgl/mgl32"

	"github.com/peragwin/spacerobot/audio"
	"github.com/peragwin/spacerobot/scene"
)

// Waveform is an oscilloscope trace of the left channel drawn over the
// active visualizer. It is not part of the visualizer bank.
type Waveform struct {
	mu sync.Mutex

	in     audio.Frames
	canvas *scene.Canvas
	pts    []ml.Vec2

	// Dark reports whether the background is currently white, in which case
	// the trace is drawn dark.
	Dark func() bool

	target   float64
	scale    float64
	velocity float64
	spring   harmonica.Spring
}

// NewWaveform creates the overlay for a width x height display, easing scale
// changes at the given frame rate.
func NewWaveform(in audio.Frames, width, height, fps int) *Waveform {
	return &Waveform{
		in:     in,
		canvas: scene.NewCanvas(width, height),
		pts:    make([]ml.Vec2, in.Size()),
		Dark:   func() bool { return false },
		target: 500,
		scale:  500,
		spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
	}
}

// SetScale sets the vertical scale from a controller value.
func (w *Waveform) SetScale(v int) {
	w.mu.Lock()
	w.target = float64(scene.Round(scene.Remap(float32(v), 0, 127, 100, 1000)))
	w.mu.Unlock()
}

// Scale returns the target vertical scale and the eased one in use.
func (w *Waveform) Scale() (target, current float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.target, w.scale
}

func (w *Waveform) Draw(f *scene.Frame) {
	w.mu.Lock()
	w.scale, w.velocity = w.spring.Update(w.scale, w.velocity, w.target)
	scale := float32(w.scale)
	w.mu.Unlock()

	left := w.in.Left()
	c := w.canvas
	c.Clear()

	dist := float32(c.Width()) / float32(len(left))
	mid := float32(c.Height()) / 2
	for i, s := range left {
		w.pts[i] = ml.Vec2{dist * float32(i), mid + s*scale}
	}

	col := scene.Gray(250, 255)
	if w.Dark() {
		col = scene.Gray(10, 255)
	}
	c.Polyline(w.pts[:len(left)], 2, col)

	f.Draw(c.Image, scene.Over)
}
