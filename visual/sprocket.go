package visual

import (
	"image/color"
	"math"
	"math/rand"
	"sync"
	"time"

	ml "github.com/go-gl/mathgl/mgl32"
	"github.com/hsluv/hsluv-go"

	"github.com/peragwin/spacerobot/audio"
	"github.com/peragwin/spacerobot/audio/fft"
	"github.com/peragwin/spacerobot/scene"
)

// cube corners and the four corners of each face, with the outward normal.
var (
	cubeCorners = [8]ml.Vec4{
		{-1, -1, -1, 1}, {1, -1, -1, 1}, {1, 1, -1, 1}, {-1, 1, -1, 1},
		{-1, -1, 1, 1}, {1, -1, 1, 1}, {1, 1, 1, 1}, {-1, 1, 1, 1},
	}
	cubeFaces = [6]struct {
		idx    [4]int
		normal ml.Vec4
	}{
		{[4]int{0, 1, 2, 3}, ml.Vec4{0, 0, -1, 0}},
		{[4]int{4, 5, 6, 7}, ml.Vec4{0, 0, 1, 0}},
		{[4]int{0, 1, 5, 4}, ml.Vec4{0, -1, 0, 0}},
		{[4]int{3, 2, 6, 7}, ml.Vec4{0, 1, 0, 0}},
		{[4]int{0, 3, 7, 4}, ml.Vec4{-1, 0, 0, 0}},
		{[4]int{1, 2, 6, 5}, ml.Vec4{1, 0, 0, 0}},
	}
)

// Sprocket draws one box per spectrum bin. Each box's position and spin
// integrate its bin's magnitude every frame, and the rotations chain from
// one box to the next, which winds the boxes into a spiral.
type Sprocket struct {
	// mu guards the controls only; see Oblivion.
	mu  sync.Mutex
	ctl sprocketControls

	// render serializes Draw and guards the per box state.
	render sync.Mutex

	in     audio.Frames
	fft    *fft.Analyzer
	canvas *scene.Canvas
	rnd    *rand.Rand

	x, y, angle []float32
	density     float32
	camZ        float32
}

type sprocketControls struct {
	damping float32
	outline uint8
	scaling float32
	retain  bool
	random  bool
}

// NewSprocket creates the visualizer for a width x height display.
func NewSprocket(in audio.Frames, sampleRate float64, width, height int) *Sprocket {
	a := fft.NewAnalyzer(in.Size(), sampleRate)
	n := a.SpecSize()
	return &Sprocket{
		ctl: sprocketControls{
			damping: 800,
			outline: 10,
			scaling: 1,
		},
		in:      in,
		fft:     a,
		canvas:  scene.NewCanvas(width, height),
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
		x:       make([]float32, n),
		y:       make([]float32, n),
		angle:   make([]float32, n),
		density: 1,
		// eye distance giving a 60 degree vertical field of view
		camZ: float32(height) / 2 / float32(math.Tan(math.Pi/6)),
	}
}

func (s *Sprocket) Name() string { return "Sprocket" }

// ToggleButton1 toggles frame clearing.
func (s *Sprocket) ToggleButton1() {
	s.mu.Lock()
	s.ctl.retain = !s.ctl.retain
	s.mu.Unlock()
}

// ToggleButton2 switches between the hue cycle and random colors.
func (s *Sprocket) ToggleButton2() {
	s.mu.Lock()
	s.ctl.random = !s.ctl.random
	s.mu.Unlock()
}

// SetFader1 sets the divisor damping how fast the boxes spin.
func (s *Sprocket) SetFader1(v int) {
	s.mu.Lock()
	s.ctl.damping = float32(scene.Round(scene.Remap(float32(v), 0, 127, 80, 800)))
	s.mu.Unlock()
}

// SetFader2 sets the gray level of the box outlines.
func (s *Sprocket) SetFader2(v int) {
	s.mu.Lock()
	s.ctl.outline = uint8(scene.Round(scene.Remap(float32(v), 0, 127, 0, 255)))
	s.mu.Unlock()
}

func (s *Sprocket) SetKnob1(int) {}

func (s *Sprocket) SetScaling(v int) {
	s.mu.Lock()
	s.ctl.scaling = scene.Remap(float32(v), 0, 127, 0.5, 10)
	s.mu.Unlock()
}

func (s *Sprocket) controls() sprocketControls {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctl
}

// Damping is the spin divisor set by fader 1.
func (s *Sprocket) Damping() float32 {
	return s.controls().damping
}

// Box returns the integrated position and spin of box i.
func (s *Sprocket) Box(i int) (x, y, angle float32) {
	s.render.Lock()
	defer s.render.Unlock()
	return s.x[i], s.y[i], s.angle[i]
}

func (s *Sprocket) fill(i int, random bool) color.RGBA {
	if random {
		return color.RGBA{uint8(s.rnd.Intn(256)), uint8(s.rnd.Intn(256)), uint8(s.rnd.Intn(256)), 255}
	}
	const sl = 150.0 / 255 * 100
	r, g, b := hsluv.HsluvToRGB(float64(i%256)/256*360, sl, sl)
	return scene.WithAlpha(color.RGBA{
		uint8(math.Round(r * 255)),
		uint8(math.Round(g * 255)),
		uint8(math.Round(b * 255)),
		255,
	}, 150)
}

// integrate advances the per box state from the latest spectrum.
func (s *Sprocket) integrate(i int, damping float32) (freq float32) {
	f := float32(s.fft.Freq(float64(i)))
	b := float32(s.fft.Band(i))
	s.y[i] += b / 10
	s.x[i] += f / 10
	s.angle[i] += f / (damping + 1)
	return f
}

func (s *Sprocket) Draw(f *scene.Frame) {
	ctl := s.controls()

	s.render.Lock()
	defer s.render.Unlock()

	s.fft.Forward(s.in.Mix())

	c := s.canvas
	if !ctl.retain {
		c.Clear()
	}
	c.ResetMatrix()
	w, h := float32(c.Width()), float32(c.Height())
	stroke := scene.Gray(ctl.outline, 255)

	model := ml.Ident4()
	for i := range s.x {
		fill := s.fill(i, ctl.random)
		freq := s.integrate(i, ctl.damping)

		model = model.
			Mul4(ml.HomogRotate3DX(float32(math.Sin(float64(s.angle[i]/2))) / s.density)).
			Mul4(ml.HomogRotate3DY(float32(math.Cos(float64(s.angle[i]/2))) / s.density))

		size := freq * ctl.scaling
		if size <= 0 {
			continue
		}
		tx := float32(math.Mod(float64(s.x[i]+5), float64(w))) / 5
		ty := float32(math.Mod(float64(s.y[i]+5), float64(h))) / 5
		m := model.Mul4(ml.Translate3D(tx, ty, 0)).Mul4(ml.Scale3D(size/2, size/2, size/2))

		s.box(m, w/2, h/2, fill, stroke)
	}

	f.Draw(c.Image, scene.Over)
}

// box draws the faces of the transformed unit cube that face the eye,
// projected with the eye on the z axis at camZ looking at the screen centre.
func (s *Sprocket) box(m ml.Mat4, cx, cy float32, fill, stroke color.RGBA) {
	var view [8]ml.Vec3
	var screen [8]ml.Vec2
	for k, p := range cubeCorners {
		v := m.Mul4x1(p).Vec3()
		depth := s.camZ - v[2]
		if depth < s.camZ/10 {
			// behind the near plane
			return
		}
		view[k] = v
		screen[k] = ml.Vec2{cx + v[0]*s.camZ/depth, cy + v[1]*s.camZ/depth}
	}

	// the visible faces share one fill pass and their edges one stroke pass
	c := s.canvas
	var faces [len(cubeFaces)][4]ml.Vec2
	visible := 0
	eye := ml.Vec3{0, 0, s.camZ}
	c.BeginPath()
	for _, face := range cubeFaces {
		n := m.Mul4x1(face.normal).Vec3()
		centre := view[face.idx[0]].Add(view[face.idx[2]]).Mul(0.5)
		if n.Dot(eye.Sub(centre)) <= 0 {
			continue
		}
		q := &faces[visible]
		for k, idx := range face.idx {
			q[k] = screen[idx]
		}
		c.AddPolygon(q[:]...)
		visible++
	}
	if visible == 0 {
		return
	}
	c.FillPath(fill)

	c.BeginPath()
	for _, q := range faces[:visible] {
		for k := range q {
			a, b := q[k], q[(k+1)%4]
			c.AddLine(a[0], a[1], b[0], b[1], 1)
		}
	}
	c.FillPath(stroke)
}
