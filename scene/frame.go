// Package scene describes what is drawn in one render frame: a background
// color and an ordered list of layers, each either a CPU rendered image or a
// named shader pass with its uniform values.
package scene

import (
	"image"
	"image/color"
	"sort"
	"time"

	"github.com/chewxy/math32"
)

// Uniforms maps uniform names to their values. A single float is a slice of
// length one; vectors have length 2 to 4.
type Uniforms map[string][]float32

// Set assigns a uniform.
func (u Uniforms) Set(name string, v ...float32) {
	u[name] = v
}

// Float returns the first component of a uniform, or 0 if it is unset.
func (u Uniforms) Float(name string) float32 {
	if v := u[name]; len(v) > 0 {
		return v[0]
	}
	return 0
}

// Names returns the uniform names in sorted order.
func (u Uniforms) Names() []string {
	names := make([]string, 0, len(u))
	for n := range u {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Pass is a shader program addressed by name plus the uniform values to
// submit with it.
type Pass struct {
	Name     string
	Uniforms Uniforms
}

// NewPass creates a pass with an empty uniform set.
func NewPass(name string) *Pass {
	return &Pass{Name: name, Uniforms: Uniforms{}}
}

// Blend selects how an image layer is combined with what is below it.
type Blend int

// Blend modes
const (
	Over Blend = iota
	Screen
)

// Kind distinguishes layer types.
type Kind int

// Layer kinds
const (
	// ImageLayer composites Image over the frame.
	ImageLayer Kind = iota
	// ShaderLayer runs Pass into an offscreen surface and composites the
	// result like an image.
	ShaderLayer
	// FilterLayer runs Pass over everything drawn so far.
	FilterLayer
)

// Layer is one drawing step. Via, when set, is the draw shader active for
// image and shader layers.
type Layer struct {
	Kind  Kind
	Image *image.RGBA
	Pass  *Pass
	Blend Blend
	Via   *Pass
}

// Frame collects the layers of one rendered frame.
type Frame struct {
	Width, Height int
	// Time is the time since the session started.
	Time time.Duration
	// Count is the number of frames rendered before this one.
	Count int

	Background color.RGBA
	Layers     []Layer

	via *Pass
}

// NewFrame starts an empty, black frame.
func NewFrame(width, height int, t time.Duration, count int) *Frame {
	return &Frame{
		Width:      width,
		Height:     height,
		Time:       t,
		Count:      count,
		Background: color.RGBA{0, 0, 0, 255},
	}
}

// Seconds is Time in seconds, as fed to time uniforms.
func (f *Frame) Seconds() float32 {
	return float32(f.Time.Seconds())
}

// Clear sets the background color.
func (f *Frame) Clear(c color.RGBA) {
	f.Background = c
}

// UseShader makes p the draw shader for the following image and shader
// layers. Passing nil resets to plain drawing.
func (f *Frame) UseShader(p *Pass) {
	f.via = p
}

// Draw composites img over the frame.
func (f *Frame) Draw(img *image.RGBA, b Blend) {
	f.Layers = append(f.Layers, Layer{Kind: ImageLayer, Image: img, Blend: b, Via: f.via})
}

// Generate draws the output of a generating shader over the frame.
func (f *Frame) Generate(p *Pass) {
	f.Layers = append(f.Layers, Layer{Kind: ShaderLayer, Pass: p, Via: f.via})
}

// Filter applies p to everything drawn so far.
func (f *Frame) Filter(p *Pass) {
	f.Layers = append(f.Layers, Layer{Kind: FilterLayer, Pass: p})
}

// Passes lists the names of the shader and filter passes in order.
func (f *Frame) Passes() []string {
	var names []string
	for _, l := range f.Layers {
		if l.Pass != nil {
			names = append(names, l.Pass.Name)
		}
	}
	return names
}

// Pass returns the last pass with the given name, or nil.
func (f *Frame) Pass(name string) *Pass {
	for i := len(f.Layers) - 1; i >= 0; i-- {
		if p := f.Layers[i].Pass; p != nil && p.Name == name {
			return p
		}
	}
	return nil
}

// Renderer draws frames to some output.
type Renderer interface {
	Render(f *Frame) error
}

// Remap linearly maps v from [inLo, inHi] onto [outLo, outHi] without
// clamping.
func Remap(v, inLo, inHi, outLo, outHi float32) float32 {
	return outLo + (outHi-outLo)*(v-inLo)/(inHi-inLo)
}

// Round rounds half up, as controller mappings expect.
func Round(v float32) int {
	return int(math32.Floor(v + 0.5))
}
