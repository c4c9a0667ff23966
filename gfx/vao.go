package gfx

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

// quadVertices covers clip space with a triangle strip, as x, y, u, v.
var quadVertices = []float32{
	-1, 1, 0, 1,
	-1, -1, 0, 0,
	1, 1, 1, 1,
	1, -1, 1, 0,
}

// vertexShader is shared by every pass. Uploaded images store row 0 at
// the top, framebuffers at the bottom, so flipY is set when sampling an
// image.
const vertexShader = `
#version 410
layout(location = 0) in vec2 vert;
layout(location = 1) in vec2 vertTexCoord;
uniform float flipY;
out vec2 uv;
void main() {
	uv = vertTexCoord;
	if (flipY > 0.5) {
		uv.y = 1.0 - uv.y;
	}
	gl_Position = vec4(vert, 0.0, 1.0);
}
`

// VertexArrayObject points to a vertex buffer that has already been
// loaded into graphics memory.
type VertexArrayObject struct {
	vaoID      uint32
	vboID      uint32
	length     int32
	glDrawType uint32
}

// newQuad loads the full-screen quad every pass is drawn with.
func newQuad() *VertexArrayObject {
	const stride = 4 * 4

	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 4*len(quadVertices), gl.Ptr(quadVertices), gl.STATIC_DRAW)

	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, gl.PtrOffset(2*4))

	gl.BindVertexArray(0)

	return &VertexArrayObject{vaoID: vao, vboID: vbo, length: 4, glDrawType: gl.TRIANGLE_STRIP}
}

// Draw draws a VertexArrayObject to the current frame buffer
func (v *VertexArrayObject) Draw() {
	gl.BindVertexArray(v.vaoID)
	gl.DrawArrays(v.glDrawType, 0, v.length)
}

// Delete frees the buffers.
func (v *VertexArrayObject) Delete() {
	gl.DeleteVertexArrays(1, &v.vaoID)
	gl.DeleteBuffers(1, &v.vboID)
}
