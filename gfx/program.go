package gfx

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/peragwin/spacerobot/scene"
)

// Program is a linked full-screen pass: the shared quad vertex shader plus
// one fragment shader.
type Program struct {
	Name      string
	ProgramID uint32

	uniforms map[string]int32
}

// NewProgram compiles and links the fragment source frag against the quad
// vertex shader.
func NewProgram(name, frag string) (*Program, error) {
	vs, err := compileShader(vertexShader, VertexShaderType)
	if err != nil {
		return nil, fmt.Errorf("%s: vertex shader: %w", name, err)
	}
	defer gl.DeleteShader(vs)
	fs, err := compileShader(frag, FragmentShaderType)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	defer gl.DeleteShader(fs)

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(prog, logLength, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return nil, fmt.Errorf("%s: failed to link: %v", name, log)
	}

	return &Program{
		Name:      name,
		ProgramID: prog,
		uniforms:  make(map[string]int32),
	}, nil
}

// Use makes p the current program.
func (p *Program) Use() {
	gl.UseProgram(p.ProgramID)
}

// GetUniformLocation returns the location of a uniform, or -1 if the shader
// does not use it. Locations are cached.
func (p *Program) GetUniformLocation(uname string) int32 {
	if loc, ok := p.uniforms[uname]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.ProgramID, gl.Str(uname+"\x00"))
	p.uniforms[uname] = loc
	return loc
}

// SetUniforms submits u to the current program. Uniforms the shader does not
// declare are ignored, as GL drops writes to location -1.
func (p *Program) SetUniforms(u scene.Uniforms) {
	for name, v := range u {
		loc := p.GetUniformLocation(name)
		if loc < 0 {
			continue
		}
		switch len(v) {
		case 1:
			gl.Uniform1f(loc, v[0])
		case 2:
			gl.Uniform2f(loc, v[0], v[1])
		case 3:
			gl.Uniform3f(loc, v[0], v[1], v[2])
		case 4:
			gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
		}
	}
}

// setSampler binds the texture unit 0 sampler and its texel size. flip is
// set for textures uploaded from images.
func (p *Program) setSampler(w, h int, flip bool) {
	var flipY float32
	if flip {
		flipY = 1
	}
	gl.Uniform1f(p.GetUniformLocation("flipY"), flipY)
	gl.Uniform1i(p.GetUniformLocation("tex"), 0)
	gl.Uniform2f(p.GetUniformLocation("texOffset"), 1/float32(w), 1/float32(h))
}

// Delete frees the program.
func (p *Program) Delete() {
	gl.DeleteProgram(p.ProgramID)
}
