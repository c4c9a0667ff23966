// Package shader computes the uniform values of the full-screen effect
// passes: the selectable post-processing effects and the fixed effects
// driven by the mixer.
package shader

import (
	"fmt"
	"sync"

	"github.com/chewxy/math32"

	"github.com/peragwin/spacerobot/scene"
)

// Params are the inputs an effect derives its uniforms from.
type Params struct {
	// X and Y are the shared position in pixels.
	X, Y          float32
	Width, Height float32
	// Time in seconds.
	Time  float32
	Frame int
}

// Effect is a post-processing pass. Set fills in its per-frame uniforms.
type Effect struct {
	Name string
	Set  func(u scene.Uniforms, p Params)
}

// Effects returns the post-processing effects in selection order.
func Effects() []Effect {
	return []Effect{
		{"brcosa", func(u scene.Uniforms, p Params) {
			u.Set("brightness", 1)
			u.Set("contrast", scene.Remap(p.X, 0, p.Width, -5, 5))
			u.Set("saturation", scene.Remap(p.Y, 0, p.Height, -5, 5))
		}},
		{"hue", func(u scene.Uniforms, p Params) {
			u.Set("hue", scene.Remap(p.X, 0, p.Width, 0, 2*math32.Pi))
		}},
		{"pixelate", func(u scene.Uniforms, p Params) {
			u.Set("pixels", 0.1*p.X, 0.1*p.X)
		}},
		{"channels", func(u scene.Uniforms, p Params) {
			u.Set("rbias", 0, 0)
			u.Set("gbias", scene.Remap(p.Y, 0, p.Height, -0.2, 0.2), 0)
			u.Set("bbias", 0, 0)
			u.Set("rmult", scene.Remap(p.X, 0, p.Width, 0.8, 1.5), 1)
			u.Set("gmult", 1, 1)
			u.Set("bmult", 1, 1)
		}},
		{"threshold", func(u scene.Uniforms, p Params) {
			u.Set("threshold", scene.Remap(p.X, 0, p.Width, 0, 1))
		}},
		{"neon", func(u scene.Uniforms, p Params) {
			u.Set("brt", scene.Remap(p.X, 0, p.Width, 0, 0.5))
			u.Set("rad", math32.Trunc(scene.Remap(p.Y, 0, p.Height, 0, 3)))
		}},
		{"deform", func(u scene.Uniforms, p Params) {
			u.Set("time", p.Time)
			u.Set("mouse", p.X/p.Width, p.Y/p.Height)
			u.Set("turns", scene.Remap(math32.Sin(0.01*float32(p.Frame)), -1, 1, 2, 10))
		}},
		{"pixelRolls", func(u scene.Uniforms, p Params) {
			u.Set("time", p.Time)
			u.Set("pixels", p.X/5, 150)
			u.Set("rollRate", scene.Remap(p.Y, 0, p.Height, -0.5, 0.5))
			u.Set("rollAmount", 0.25)
		}},
		{"modcolor", func(u scene.Uniforms, p Params) {
			u.Set("modr", scene.Remap(p.X, 0, p.Width, 0, 0.5))
			u.Set("modg", 0.3)
			u.Set("modb", scene.Remap(p.Y, 0, p.Height, 0, 0.5))
		}},
		{"halftone", func(u scene.Uniforms, p Params) {
			u.Set("pixelsPerRow", math32.Trunc(scene.Remap(p.X, 0, p.Width, 2, 100)))
		}},
		{"inversion", func(scene.Uniforms, Params) {}},
	}
}

// Bank is the selectable list of post-processing effects. The position
// (x, y) is shared by all effects and survives switching between them.
type Bank struct {
	mu            sync.RWMutex
	effects       []Effect
	current       int
	enabled       bool
	x, y          int
	width, height int
}

// NewBank creates a disabled bank for a display of the given size, with the
// first effect selected and the position in the centre.
func NewBank(width, height int) *Bank {
	return &Bank{
		effects: Effects(),
		x:       width / 2,
		y:       height / 2,
		width:   width,
		height:  height,
	}
}

// Len is the number of effects.
func (b *Bank) Len() int {
	return len(b.effects)
}

// Select makes effect i current. Indices outside the bank select effect 0.
func (b *Bank) Select(i int) {
	if i < 0 || i >= len(b.effects) {
		i = 0
	}
	b.mu.Lock()
	b.current = i
	b.mu.Unlock()
}

// Toggle flips whether the current effect is drawn.
func (b *Bank) Toggle() {
	b.mu.Lock()
	b.enabled = !b.enabled
	b.mu.Unlock()
}

// SetX maps a controller value [0,127] onto the display width.
func (b *Bank) SetX(v int) {
	b.mu.Lock()
	b.x = scene.Round(scene.Remap(float32(v), 0, 127, 0, float32(b.width)))
	b.mu.Unlock()
}

// SetY maps a controller value [0,127] onto the display height.
func (b *Bank) SetY(v int) {
	b.mu.Lock()
	b.y = scene.Round(scene.Remap(float32(v), 0, 127, 0, float32(b.height)))
	b.mu.Unlock()
}

// Current returns the index and name of the selected effect.
func (b *Bank) Current() (int, string) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.current, b.effects[b.current].Name
}

// Enabled reports whether post-processing is on.
func (b *Bank) Enabled() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.enabled
}

// Position returns the shared position in pixels.
func (b *Bank) Position() (int, int) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.x, b.y
}

// Info describes the selected effect and position for the info overlay.
func (b *Bank) Info() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return fmt.Sprintf("%s X = %d Y = %d", b.effects[b.current].Name, b.x, b.y)
}

// Pass computes the current effect's uniforms for frame f. It returns nil
// when post-processing is off.
func (b *Bank) Pass(f *scene.Frame) *scene.Pass {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.enabled {
		return nil
	}

	e := b.effects[b.current]
	p := scene.NewPass(e.Name)
	e.Set(p.Uniforms, Params{
		X:      float32(b.x),
		Y:      float32(b.y),
		Width:  float32(b.width),
		Height: float32(b.height),
		Time:   f.Seconds(),
		Frame:  f.Count,
	})
	return p
}

// Draw adds the current effect to f when post-processing is on.
func (b *Bank) Draw(f *scene.Frame) {
	if p := b.Pass(f); p != nil {
		f.Filter(p)
	}
}
