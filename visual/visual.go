package visual

import (
	"sync"

	"github.com/golang/glog"

	"github.com/peragwin/spacerobot/scene"
)

// Visualizer is a full-screen audio reactive scene. Every visualizer keeps
// its own controller state, so switching away and back preserves it.
//
// Controller setters may be called from the MIDI goroutine while Draw runs
// on the render thread.
type Visualizer interface {
	Name() string
	Draw(f *scene.Frame)

	ToggleButton1()
	ToggleButton2()
	SetFader1(v int)
	SetFader2(v int)
	SetKnob1(v int)
	SetScaling(v int)
}

// Bank is a circular list of visualizers with exactly one active.
type Bank struct {
	mu     sync.RWMutex
	vis    []Visualizer
	active int
}

// NewBank creates a bank with the first visualizer active.
func NewBank(vis ...Visualizer) *Bank {
	return &Bank{vis: vis}
}

// Len is the number of visualizers.
func (b *Bank) Len() int {
	return len(b.vis)
}

// Next activates the following visualizer, wrapping at the end.
func (b *Bank) Next() {
	b.step(1)
}

// Prev activates the preceding visualizer, wrapping at the start.
func (b *Bank) Prev() {
	b.step(-1)
}

func (b *Bank) step(d int) {
	if len(b.vis) == 0 {
		return
	}
	b.mu.Lock()
	b.active = (b.active + d + len(b.vis)) % len(b.vis)
	v := b.vis[b.active]
	b.mu.Unlock()
	glog.Infof("visualizer: %s", v.Name())
}

// Select decodes the visualizer select control: 1 steps back, 2 steps
// forward and anything else is ignored.
func (b *Bank) Select(v int) {
	switch v {
	case 1:
		b.Prev()
	case 2:
		b.Next()
	}
}

// Index is the position of the active visualizer.
func (b *Bank) Index() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.active
}

// Current returns the active visualizer, or nil for an empty bank.
func (b *Bank) Current() Visualizer {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if len(b.vis) == 0 {
		return nil
	}
	return b.vis[b.active]
}

// Name of the active visualizer.
func (b *Bank) Name() string {
	if v := b.Current(); v != nil {
		return v.Name()
	}
	return ""
}

// Draw draws the active visualizer.
func (b *Bank) Draw(f *scene.Frame) {
	if v := b.Current(); v != nil {
		v.Draw(f)
	}
}

func (b *Bank) forward(fn func(Visualizer)) {
	if v := b.Current(); v != nil {
		fn(v)
	}
}

func (b *Bank) ToggleButton1()   { b.forward(func(v Visualizer) { v.ToggleButton1() }) }
func (b *Bank) ToggleButton2()   { b.forward(func(v Visualizer) { v.ToggleButton2() }) }
func (b *Bank) SetFader1(x int)  { b.forward(func(v Visualizer) { v.SetFader1(x) }) }
func (b *Bank) SetFader2(x int)  { b.forward(func(v Visualizer) { v.SetFader2(x) }) }
func (b *Bank) SetKnob1(x int)   { b.forward(func(v Visualizer) { v.SetKnob1(x) }) }
func (b *Bank) SetScaling(x int) { b.forward(func(v Visualizer) { v.SetScaling(x) }) }

// Knob turns absolute positions from a knob into relative steps.
type Knob struct {
	prev int
}

// Step returns +1 when v is above the last position and -1 otherwise,
// including when it is unchanged.
func (k *Knob) Step(v int) int {
	d := -1
	if v > k.prev {
		d = 1
	}
	k.prev = v
	return d
}

// scaling is the common scaling control mapping shared by all visualizers.
func scaling(v int) float32 {
	return scene.Remap(float32(v), 0, 127, 0, 20)
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}
