// Package gfx draws scene frames with OpenGL. Every pass is a fragment
// shader run over a full-screen quad; image layers are uploaded as textures
// and blended, and filters ping-pong between two offscreen surfaces.
package gfx

import (
	"context"
	"fmt"
	"image"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/golang/glog"

	"github.com/peragwin/spacerobot/scene"
)

// Context is a window plus the shader programs and surfaces used to
// composite frames into it. It implements scene.Renderer and must only be
// used from the thread that created it.
type Context struct {
	Window *Window

	programs map[string]*Program
	quad     *VertexArrayObject

	// surfaces hold the frame so far; cur indexes the live one.
	surfaces      [2]*target
	cur           int
	scratch       *target
	width, height int

	textures map[*image.RGBA]*Texture
	missing  map[string]bool

	ctx context.Context
}

// NewContext opens the window and compiles sources, a fragment shader per
// pass name, which must include CopyPass.
func NewContext(ctx context.Context, windowConfig *WindowConfig, sources map[string]string) (*Context, error) {
	if _, ok := sources[CopyPass]; !ok {
		return nil, fmt.Errorf("no %q shader", CopyPass)
	}

	window, err := NewWindow(windowConfig)
	if err != nil {
		return nil, err
	}

	if err := gl.Init(); err != nil {
		return nil, err
	}
	version := gl.GoStr(gl.GetString(gl.VERSION))
	glog.Infof("OpenGL version %s", version)

	c := &Context{
		Window:   window,
		programs: make(map[string]*Program, len(sources)),
		quad:     newQuad(),
		textures: make(map[*image.RGBA]*Texture),
		missing:  make(map[string]bool),
		ctx:      ctx,
	}
	for name, src := range sources {
		p, err := NewProgram(name, src)
		if err != nil {
			c.Terminate()
			return nil, err
		}
		c.programs[name] = p
	}
	glog.Infof("gfx: %d shader programs", len(c.programs))

	gl.Disable(gl.DEPTH_TEST)
	return c, nil
}

// program returns the named program, logging the first miss.
func (c *Context) program(name string) *Program {
	if p, ok := c.programs[name]; ok {
		return p
	}
	if !c.missing[name] {
		c.missing[name] = true
		glog.Warningf("gfx: no shader %q, skipping it", name)
	}
	return nil
}

func (c *Context) resize(width, height int) error {
	if c.width == width && c.height == height {
		return nil
	}
	for _, t := range append(c.surfaces[:], c.scratch) {
		if t != nil {
			t.delete()
		}
	}
	var err error
	for i := range c.surfaces {
		if c.surfaces[i], err = newTarget(width, height); err != nil {
			return err
		}
	}
	if c.scratch, err = newTarget(width, height); err != nil {
		return err
	}
	c.width, c.height = width, height
	return nil
}

// texture returns the texture mirroring img, uploading its pixels.
func (c *Context) texture(img *image.RGBA) *Texture {
	t, ok := c.textures[img]
	if !ok {
		b := img.Bounds()
		t = NewTexture(b.Dx(), b.Dy())
		c.textures[img] = t
	}
	t.Update(img)
	return t
}

func setBlend(b scene.Blend) {
	gl.Enable(gl.BLEND)
	// image.RGBA is alpha premultiplied
	switch b {
	case scene.Screen:
		gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_COLOR)
	default:
		gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
	}
}

// draw blends tex into dst through via, or a plain copy when via is nil.
func (c *Context) draw(dst *target, tex *Texture, flip bool, via *scene.Pass, b scene.Blend) {
	p := c.programs[CopyPass]
	var u scene.Uniforms
	if via != nil {
		if vp := c.program(via.Name); vp != nil {
			p, u = vp, via.Uniforms
		}
	}

	dst.bind()
	setBlend(b)
	p.Use()
	p.setSampler(tex.width, tex.height, flip)
	p.SetUniforms(u)
	tex.Bind()
	c.quad.Draw()
}

// run draws pass p over all of dst, sampling src when it is set.
func (c *Context) run(dst *target, p *Program, u scene.Uniforms, src *Texture) {
	dst.bind()
	gl.Disable(gl.BLEND)
	p.Use()
	p.setSampler(c.width, c.height, false)
	p.SetUniforms(u)
	if src != nil {
		src.Bind()
	}
	c.quad.Draw()
}

// Render implements scene.Renderer. It composites f offscreen and draws the
// result scaled to the window.
func (c *Context) Render(f *scene.Frame) error {
	if err := c.resize(f.Width, f.Height); err != nil {
		return err
	}

	bg := f.Background
	cur := c.surfaces[c.cur]
	cur.clear(float32(bg.R)/255, float32(bg.G)/255, float32(bg.B)/255, 1)

	used := make(map[*image.RGBA]bool)
	for _, l := range f.Layers {
		switch l.Kind {
		case scene.ImageLayer:
			used[l.Image] = true
			c.draw(cur, c.texture(l.Image), true, l.Via, l.Blend)

		case scene.ShaderLayer:
			p := c.program(l.Pass.Name)
			if p == nil {
				continue
			}
			c.scratch.clear(0, 0, 0, 0)
			c.run(c.scratch, p, l.Pass.Uniforms, nil)
			c.draw(cur, c.scratch.Texture, false, l.Via, scene.Over)

		case scene.FilterLayer:
			p := c.program(l.Pass.Name)
			if p == nil {
				continue
			}
			dst := c.surfaces[1-c.cur]
			c.run(dst, p, l.Pass.Uniforms, cur.Texture)
			c.cur = 1 - c.cur
			cur = dst
		}
	}

	for img, t := range c.textures {
		if !used[img] {
			t.Delete()
			delete(c.textures, img)
		}
	}

	// present
	w, h := c.Window.Size()
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(w), int32(h))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.Disable(gl.BLEND)
	p := c.programs[CopyPass]
	p.Use()
	p.setSampler(c.width, c.height, false)
	cur.Bind()
	c.quad.Draw()

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("gl error 0x%x", code)
	}
	return nil
}

// EventLoop executes render in a loop until the underlying glfw window
// tells it to stop or the context is done. Calls Terminate when finished.
func (c *Context) EventLoop(render func(*Context)) {

	// OpenGL requires that rendering functions be called from the main thread
	runtime.LockOSThread()
	defer c.Terminate()

	for !c.Window.GlfwWindow.ShouldClose() {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		render(c)

		glfw.PollEvents()
		c.Window.GlfwWindow.SwapBuffers()
	}
}

// Terminate frees the GL resources and ends the glfw session.
func (c *Context) Terminate() {
	for _, t := range c.textures {
		t.Delete()
	}
	for _, t := range append(c.surfaces[:], c.scratch) {
		if t != nil {
			t.delete()
		}
	}
	for _, p := range c.programs {
		p.Delete()
	}
	if c.quad != nil {
		c.quad.Delete()
	}
	glfw.Terminate()
}
