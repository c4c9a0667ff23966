package scene

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	ml "github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/vector"
)

// Canvas is an offscreen RGBA surface with a 2D transform stack and
// antialiased polygon filling. Polygons added between BeginPath and FillPath
// are rasterized together in one pass over their joint bounding box.
type Canvas struct {
	Image *image.RGBA

	m     ml.Mat3
	stack []ml.Mat3
	z     vector.Rasterizer
	src   image.Uniform

	// path holds transformed corners; ends marks where each polygon stops.
	path []ml.Vec2
	ends []int

	// dirty bounds everything drawn since the last Clear.
	dirty image.Rectangle
}

// NewCanvas creates a transparent canvas.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		Image: image.NewRGBA(image.Rect(0, 0, width, height)),
		m:     ml.Ident3(),
	}
}

// Width of the canvas in pixels.
func (c *Canvas) Width() int { return c.Image.Rect.Dx() }

// Height of the canvas in pixels.
func (c *Canvas) Height() int { return c.Image.Rect.Dy() }

// Clear makes the canvas fully transparent and resets the transform. Only
// the rows and columns drawn since the last Clear are touched.
func (c *Canvas) Clear() {
	r := c.dirty
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := c.Image.Pix[c.Image.PixOffset(r.Min.X, y):c.Image.PixOffset(r.Max.X, y)]
		for i := range row {
			row[i] = 0
		}
	}
	c.dirty = image.Rectangle{}
	c.ResetMatrix()
}

// Dirty bounds what has been drawn since the last Clear.
func (c *Canvas) Dirty() image.Rectangle {
	return c.dirty
}

// Fill paints the whole canvas with col.
func (c *Canvas) Fill(col color.Color) {
	draw.Draw(c.Image, c.Image.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
	c.dirty = c.Image.Rect
}

// ResetMatrix drops every transform.
func (c *Canvas) ResetMatrix() {
	c.m = ml.Ident3()
	c.stack = c.stack[:0]
}

// Push saves the current transform.
func (c *Canvas) Push() {
	c.stack = append(c.stack, c.m)
}

// Pop restores the last saved transform.
func (c *Canvas) Pop() {
	if n := len(c.stack); n > 0 {
		c.m = c.stack[n-1]
		c.stack = c.stack[:n-1]
	}
}

// Translate moves the origin.
func (c *Canvas) Translate(x, y float32) {
	c.m = c.m.Mul3(ml.Translate2D(x, y))
}

// Rotate rotates around the origin by angle radians.
func (c *Canvas) Rotate(angle float32) {
	c.m = c.m.Mul3(ml.HomogRotate2D(angle))
}

// Transform maps a point through the current transform.
func (c *Canvas) Transform(x, y float32) ml.Vec2 {
	v := c.m.Mul3x1(ml.Vec3{x, y, 1})
	return ml.Vec2{v[0], v[1]}
}

// Polygon fills the polygon with corners pts (in canvas space, before the
// transform).
func (c *Canvas) Polygon(col color.Color, pts ...ml.Vec2) {
	c.BeginPath()
	c.AddPolygon(pts...)
	c.FillPath(col)
}

// BeginPath drops any polygons not yet filled.
func (c *Canvas) BeginPath() {
	c.path = c.path[:0]
	c.ends = c.ends[:0]
}

// AddPolygon adds a polygon to the path. Corners are transformed and, if
// needed, reversed so every polygon winds the same way: the rasterizer sums
// signed coverage, and opposite windings would cancel along shared edges.
func (c *Canvas) AddPolygon(pts ...ml.Vec2) {
	if len(pts) < 3 {
		return
	}
	start := len(c.path)
	var area float32
	for i, p := range pts {
		c.path = append(c.path, c.Transform(p[0], p[1]))
		if i > 0 {
			a, b := c.path[start+i-1], c.path[start+i]
			area += a[0]*b[1] - b[0]*a[1]
		}
	}
	a, b := c.path[len(c.path)-1], c.path[start]
	area += a[0]*b[1] - b[0]*a[1]
	if area < 0 {
		poly := c.path[start:]
		for i, j := 0, len(poly)-1; i < j; i, j = i+1, j-1 {
			poly[i], poly[j] = poly[j], poly[i]
		}
	}
	c.ends = append(c.ends, len(c.path))
}

// AddLine adds a segment stroked with the given weight to the path.
func (c *Canvas) AddLine(x1, y1, x2, y2, weight float32) {
	d := ml.Vec2{x2 - x1, y2 - y1}
	l := d.Len()
	if l == 0 {
		return
	}
	n := ml.Vec2{-d[1], d[0]}.Mul(weight / 2 / l)
	c.AddPolygon(
		ml.Vec2{x1 + n[0], y1 + n[1]}, ml.Vec2{x2 + n[0], y2 + n[1]},
		ml.Vec2{x2 - n[0], y2 - n[1]}, ml.Vec2{x1 - n[0], y1 - n[1]})
}

// FillPath rasterizes the path with col using the non-zero winding rule and
// starts a new one. The rasterizer only covers the path's bounding box so
// small shapes stay cheap.
func (c *Canvas) FillPath(col color.Color) {
	defer c.BeginPath()
	if len(c.ends) == 0 {
		return
	}

	minX, minY := float32(math.Inf(1)), float32(math.Inf(1))
	maxX, maxY := float32(math.Inf(-1)), float32(math.Inf(-1))
	for _, p := range c.path {
		minX, maxX = min(minX, p[0]), max(maxX, p[0])
		minY, maxY = min(minY, p[1]), max(maxY, p[1])
	}
	r := image.Rect(
		int(math.Floor(float64(minX))), int(math.Floor(float64(minY))),
		int(math.Ceil(float64(maxX))), int(math.Ceil(float64(maxY))),
	).Intersect(c.Image.Rect)
	if r.Empty() {
		return
	}

	ox, oy := float32(r.Min.X), float32(r.Min.Y)
	c.z.Reset(r.Dx(), r.Dy())
	start := 0
	for _, end := range c.ends {
		poly := c.path[start:end]
		c.z.MoveTo(poly[0][0]-ox, poly[0][1]-oy)
		for _, p := range poly[1:] {
			c.z.LineTo(p[0]-ox, p[1]-oy)
		}
		c.z.ClosePath()
		start = end
	}
	c.src.C = col
	c.z.Draw(c.Image, r, &c.src, image.Point{})
	c.dirty = c.dirty.Union(r)
}

// Rect fills an axis aligned rectangle (before the transform).
func (c *Canvas) Rect(x, y, w, h float32, col color.Color) {
	c.Polygon(col,
		ml.Vec2{x, y}, ml.Vec2{x + w, y}, ml.Vec2{x + w, y + h}, ml.Vec2{x, y + h})
}

// Ellipse fills an ellipse centred on (cx, cy) with diameters w and h.
func (c *Canvas) Ellipse(cx, cy, w, h float32, col color.Color) {
	const segments = 24
	pts := make([]ml.Vec2, segments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / segments
		pts[i] = ml.Vec2{
			cx + w/2*float32(math.Cos(a)),
			cy + h/2*float32(math.Sin(a)),
		}
	}
	c.Polygon(col, pts...)
}

// Line strokes a segment with the given weight.
func (c *Canvas) Line(x1, y1, x2, y2, weight float32, col color.Color) {
	c.BeginPath()
	c.AddLine(x1, y1, x2, y2, weight)
	c.FillPath(col)
}

// polylineRun is how many segments of a polyline share a fill pass. Longer
// runs have larger bounding boxes, shorter ones pay more per pass overhead.
const polylineRun = 32

// Polyline strokes connected segments through pts.
func (c *Canvas) Polyline(pts []ml.Vec2, weight float32, col color.Color) {
	c.BeginPath()
	for i := 0; i+1 < len(pts); i++ {
		c.AddLine(pts[i][0], pts[i][1], pts[i+1][0], pts[i+1][1], weight)
		if (i+1)%polylineRun == 0 {
			c.FillPath(col)
		}
	}
	c.FillPath(col)
}

// Gray returns an opaque gray level, or a translucent one when alpha < 255,
// premultiplied as image.RGBA expects.
func Gray(level, alpha uint8) color.RGBA {
	return WithAlpha(color.RGBA{level, level, level, 255}, alpha)
}

// WithAlpha returns the opaque color c at the given alpha, premultiplied.
func WithAlpha(c color.RGBA, alpha uint8) color.RGBA {
	a := uint32(alpha)
	return color.RGBA{
		uint8(uint32(c.R) * a / 255),
		uint8(uint32(c.G) * a / 255),
		uint8(uint32(c.B) * a / 255),
		alpha,
	}
}
