// Package glbackend renders compiled draw lists through OpenGL 3.3 core.
// One dynamic vertex/index buffer pair is re-uploaded per frame; each draw
// command becomes one glDrawElements call with its own scissor and texture.
package glbackend

import (
	"fmt"
	"image"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/emberui/ember/draw"
	"github.com/emberui/ember/geom"
)

const vertexStride = 8 * 4 // pos2 + uv2 + color4, float32

type Renderer struct {
	program uint32
	vao     uint32
	vbo     uint32
	ebo     uint32
	uProj   int32

	white    uint32
	textures map[draw.TextureID]uint32
	nextTex  draw.TextureID

	vboCap int
	eboCap int
}

// New compiles the pipeline and allocates the dynamic buffers. Requires a
// current GL context on the calling thread.
func New() (*Renderer, error) {
	r := &Renderer{textures: make(map[draw.TextureID]uint32, 8), nextTex: 1}

	var err error
	r.program, err = makeProgram(vertexSource, fragmentSource)
	if err != nil {
		return nil, err
	}
	r.uProj = gl.GetUniformLocation(r.program, gl.Str("uProj\x00"))

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)

	// layout(location = 0) in vec2 aPos;
	// layout(location = 1) in vec2 aUV;
	// layout(location = 2) in vec4 aColor;
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, vertexStride, unsafe.Pointer(uintptr(0)))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, vertexStride, unsafe.Pointer(uintptr(2*4)))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, vertexStride, unsafe.Pointer(uintptr(4*4)))

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)

	// untextured commands sample a 1x1 white pixel so one shader covers both
	r.white = uploadRGBA([]byte{255, 255, 255, 255}, 1, 1)

	return r, nil
}

func (r *Renderer) Shutdown() {
	for _, t := range r.textures {
		gl.DeleteTextures(1, &t)
	}
	gl.DeleteTextures(1, &r.white)
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// CreateTexture uploads an RGBA image and returns the handle draw lists
// reference it by.
func (r *Renderer) CreateTexture(img *image.RGBA) draw.TextureID {
	b := img.Bounds()
	id := r.nextTex
	r.nextTex++
	r.textures[id] = uploadRGBA(img.Pix, b.Dx(), b.Dy())
	return id
}

// CreateTextureFromPixels uploads raw RGBA bytes (w*h*4), as produced by the
// font atlas.
func (r *Renderer) CreateTextureFromPixels(pix []byte, w, h int) draw.TextureID {
	id := r.nextTex
	r.nextTex++
	r.textures[id] = uploadRGBA(pix, w, h)
	return id
}

func uploadRGBA(pix []byte, w, h int) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

func (r *Renderer) DeleteTexture(id draw.TextureID) {
	if t, ok := r.textures[id]; ok {
		gl.DeleteTextures(1, &t)
		delete(r.textures, id)
	}
}

func (r *Renderer) Resize(w, h int) {
	gl.Viewport(0, 0, int32(w), int32(h))
}

func (r *Renderer) Clear(rf, gf, bf, af float32) {
	gl.ClearColor(rf, gf, bf, af)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// Render uploads the list once and replays its commands in order. fbW/fbH is
// the framebuffer size; the scissor flips Y since the list's origin is
// top-left and GL's is bottom-left.
func (r *Renderer) Render(list *draw.List, fbW, fbH int) {
	if len(list.Indices) == 0 {
		return
	}

	gl.Enable(gl.BLEND)
	gl.BlendFuncSeparate(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA, gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.SCISSOR_TEST)

	gl.UseProgram(r.program)
	proj := ortho(float32(fbW), float32(fbH))
	gl.UniformMatrix4fv(r.uProj, 1, false, &proj[0])

	gl.BindVertexArray(r.vao)
	r.upload(list)

	for _, cmd := range list.Commands {
		if cmd.IndexCount == 0 {
			continue
		}
		r.scissor(cmd.Clip, fbH)
		gl.BindTexture(gl.TEXTURE_2D, r.resolve(cmd.Texture))
		gl.DrawElements(gl.TRIANGLES, int32(cmd.IndexCount), gl.UNSIGNED_INT,
			unsafe.Pointer(uintptr(cmd.IndexOffset*4)))
	}

	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)
	gl.Disable(gl.SCISSOR_TEST)
}

func (r *Renderer) resolve(id draw.TextureID) uint32 {
	if id == 0 {
		return r.white
	}
	if t, ok := r.textures[id]; ok {
		return t
	}
	return r.white
}

func (r *Renderer) upload(list *draw.List) {
	vbytes := len(list.Vertices) * vertexStride
	ibytes := len(list.Indices) * 4

	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	if vbytes > r.vboCap {
		r.vboCap = vbytes * 2
		gl.BufferData(gl.ARRAY_BUFFER, r.vboCap, nil, gl.STREAM_DRAW)
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, vbytes, gl.Ptr(list.Vertices))

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	if ibytes > r.eboCap {
		r.eboCap = ibytes * 2
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, r.eboCap, nil, gl.STREAM_DRAW)
	}
	gl.BufferSubData(gl.ELEMENT_ARRAY_BUFFER, 0, ibytes, gl.Ptr(list.Indices))
}

func (r *Renderer) scissor(clip geom.Rect, fbH int) {
	x := int32(clip.X)
	y := int32(float32(fbH) - clip.Y - clip.H)
	w := int32(clip.W)
	h := int32(clip.H)
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	gl.Scissor(x, y, w, h)
}

// ortho maps pixel coordinates (origin top-left, y down) to clip space.
func ortho(w, h float32) [16]float32 {
	return [16]float32{
		2 / w, 0, 0, 0,
		0, -2 / h, 0, 0,
		0, 0, -1, 0,
		-1, 1, 0, 1,
	}
}

// --- Shader utilities ---

const vertexSource = `
#version 330 core
layout(location=0) in vec2 aPos;
layout(location=1) in vec2 aUV;
layout(location=2) in vec4 aColor;
uniform mat4 uProj;
out vec2 vUV;
out vec4 vColor;
void main() {
    vUV = aUV;
    vColor = aColor;
    gl_Position = uProj * vec4(aPos, 0.0, 1.0);
}
` + "\x00"

const fragmentSource = `
#version 330 core
in vec2 vUV;
in vec4 vColor;
uniform sampler2D uTex;
out vec4 FragColor;
void main() {
    FragColor = vColor * texture(uTex, vUV);
}
` + "\x00"

func makeShader(src string, shaderType uint32) (uint32, error) {
	sh := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("shader compile error: %s", log)
	}
	return sh, nil
}

func makeProgram(vsSrc, fsSrc string) (uint32, error) {
	vs, err := makeShader(vsSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := makeShader(fsSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("program link error: %s", log)
	}
	return prog, nil
}
