package gfx

import (
	"errors"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Texture is an RGBA texture the size of an image it is fed from.
type Texture struct {
	texID         uint32
	width, height int
}

// NewTexture allocates an empty texture.
func NewTexture(width, height int) *Texture {
	var texID uint32
	gl.GenTextures(1, &texID)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, texID)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	// write texture with nil pointer to initialize the space
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(width), int32(height),
		0, gl.RGBA, gl.UNSIGNED_BYTE, nil)

	return &Texture{texID: texID, width: width, height: height}
}

// Update uploads img, which must have the texture's size.
func (t *Texture) Update(img *image.RGBA) {
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, t.texID)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(t.width), int32(t.height),
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
}

// Bind binds the texture to unit 0.
func (t *Texture) Bind() {
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, t.texID)
}

// Delete frees the texture.
func (t *Texture) Delete() {
	gl.DeleteTextures(1, &t.texID)
}

// target is a texture backed framebuffer passes render into.
type target struct {
	*Texture
	fbo uint32
}

func newTarget(width, height int) (*target, error) {
	tex := NewTexture(width, height)

	var fbo uint32
	gl.GenFramebuffers(1, &fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, tex.texID, 0)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		tex.Delete()
		gl.DeleteFramebuffers(1, &fbo)
		return nil, errors.New("incomplete framebuffer")
	}
	return &target{Texture: tex, fbo: fbo}, nil
}

func (t *target) bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
	gl.Viewport(0, 0, int32(t.width), int32(t.height))
}

func (t *target) clear(r, g, b, a float32) {
	t.bind()
	gl.ClearColor(r, g, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (t *target) delete() {
	t.Texture.Delete()
	gl.DeleteFramebuffers(1, &t.fbo)
}
