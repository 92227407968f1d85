package opengl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.2-core/gl"

	"github.com/spaghettifunk/lumina/engine/core"
	"github.com/spaghettifunk/lumina/engine/math"
	"github.com/spaghettifunk/lumina/engine/renderer/metadata"
)

// Backend issues OpenGL 3.2 core calls. It must only be used on the thread
// holding the current context.
type Backend struct {
	vao uint32
}

func New() *Backend {
	return &Backend{}
}

// check turns a pending GL error into a fatal log. A failed GL call leaves the
// context in an unknown state, so there is nothing to retry.
func check(call string) {
	if code := gl.GetError(); code != gl.NO_ERROR {
		core.LogFatal("OpenGL error 0x%04x in %s", code, call)
	}
}

func (b *Backend) Initialize(config metadata.BackendConfig) error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("opengl init: %w", err)
	}
	core.LogInfo("OpenGL %s, GLSL %s", gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)))

	// Core profile refuses to draw without a bound vertex array.
	gl.GenVertexArrays(1, &b.vao)
	check("GenVertexArrays")
	gl.BindVertexArray(b.vao)
	check("BindVertexArray")

	if config.Blend {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
		check("BlendFunc")
	}
	if config.DepthTest {
		gl.Enable(gl.DEPTH_TEST)
		check("Enable(DEPTH_TEST)")
	}
	b.Resized(config.Width, config.Height)
	return nil
}

func (b *Backend) Shutdown() error {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		b.vao = 0
	}
	return nil
}

func (b *Backend) Resized(width, height uint32) {
	gl.Viewport(0, 0, int32(width), int32(height))
	check("Viewport")
}

func (b *Backend) Clear(colour metadata.Colour) {
	gl.ClearColor(colour.R, colour.G, colour.B, colour.A)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	check("Clear")
}

func compileStage(stage metadata.ShaderStage, src string) (uint32, error) {
	kind := uint32(gl.VERTEX_SHADER)
	if stage == metadata.SHADER_STAGE_FRAGMENT {
		kind = gl.FRAGMENT_SHADER
	}
	handle := gl.CreateShader(kind)
	check("CreateShader")

	csources, free := gl.Strs(src + "\x00")
	gl.ShaderSource(handle, 1, csources, nil)
	free()
	gl.CompileShader(handle)
	check("CompileShader")

	var status int32
	gl.GetShaderiv(handle, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(handle, gl.INFO_LOG_LENGTH, &logLength)
		msg := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(handle, logLength, nil, gl.Str(msg))
		gl.DeleteShader(handle)
		return 0, fmt.Errorf("%w: %s stage: %s", core.ErrShaderCompile, stage, strings.TrimRight(msg, "\x00"))
	}
	return handle, nil
}

func (b *Backend) CreateProgram(source *metadata.ShaderSource) (uint32, error) {
	vert, err := compileStage(metadata.SHADER_STAGE_VERTEX, source.Vertex)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", source.Name, err)
	}
	defer gl.DeleteShader(vert)
	frag, err := compileStage(metadata.SHADER_STAGE_FRAGMENT, source.Fragment)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", source.Name, err)
	}
	defer gl.DeleteShader(frag)

	program := gl.CreateProgram()
	gl.AttachShader(program, vert)
	gl.AttachShader(program, frag)
	gl.LinkProgram(program)
	check("LinkProgram")

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		msg := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(msg))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("%s: %w: %s", source.Name, core.ErrShaderLink, strings.TrimRight(msg, "\x00"))
	}
	gl.DetachShader(program, vert)
	gl.DetachShader(program, frag)
	return program, nil
}

func (b *Backend) DestroyProgram(program uint32) {
	gl.DeleteProgram(program)
	check("DeleteProgram")
}

func (b *Backend) UseProgram(program uint32) {
	gl.UseProgram(program)
	check("UseProgram")
}

func (b *Backend) AttribLocation(program uint32, name string) metadata.AttribLocation {
	loc := gl.GetAttribLocation(program, gl.Str(name+"\x00"))
	check("GetAttribLocation")
	return metadata.AttribLocation(loc)
}

func (b *Backend) UniformLocation(program uint32, name string) metadata.UniformLocation {
	loc := gl.GetUniformLocation(program, gl.Str(name+"\x00"))
	check("GetUniformLocation")
	return metadata.UniformLocation(loc)
}

func glTarget(target metadata.BufferTarget) uint32 {
	if target == metadata.BUFFER_TARGET_ELEMENT_ARRAY {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func glUsage(usage metadata.BufferUsage) uint32 {
	if usage == metadata.BUFFER_USAGE_DYNAMIC {
		return gl.DYNAMIC_DRAW
	}
	return gl.STATIC_DRAW
}

// bufferBytes returns the size in bytes and a pointer to the first element.
// Empty slices return a nil pointer.
func bufferBytes(data interface{}) (int, interface{}) {
	switch d := data.(type) {
	case []math.Vec4:
		if len(d) == 0 {
			return 0, nil
		}
		return len(d) * 16, &d[0]
	case []math.Vec3:
		if len(d) == 0 {
			return 0, nil
		}
		return len(d) * 12, &d[0]
	case []uint16:
		if len(d) == 0 {
			return 0, nil
		}
		return len(d) * 2, &d[0]
	}
	core.LogFatal("unsupported buffer data %T", data)
	return 0, nil
}

func (b *Backend) CreateBuffer(target metadata.BufferTarget, usage metadata.BufferUsage, data interface{}) uint32 {
	var handle uint32
	gl.GenBuffers(1, &handle)
	check("GenBuffers")
	t := glTarget(target)
	gl.BindBuffer(t, handle)
	check("BindBuffer")
	size, first := bufferBytes(data)
	if first == nil {
		gl.BufferData(t, 0, nil, glUsage(usage))
	} else {
		gl.BufferData(t, size, gl.Ptr(first), glUsage(usage))
	}
	check("BufferData")
	return handle
}

func (b *Backend) UpdateBuffer(target metadata.BufferTarget, buffer uint32, data interface{}) {
	size, first := bufferBytes(data)
	if first == nil {
		return
	}
	t := glTarget(target)
	gl.BindBuffer(t, buffer)
	check("BindBuffer")
	gl.BufferSubData(t, 0, size, gl.Ptr(first))
	check("BufferSubData")
}

func (b *Backend) DeleteBuffers(buffers ...uint32) {
	if len(buffers) == 0 {
		return
	}
	gl.DeleteBuffers(int32(len(buffers)), &buffers[0])
	check("DeleteBuffers")
}

func (b *Backend) BindAttribute(location metadata.AttribLocation, buffer uint32, components int32) {
	if !location.Valid() {
		return
	}
	gl.EnableVertexAttribArray(uint32(location))
	check("EnableVertexAttribArray")
	gl.BindBuffer(gl.ARRAY_BUFFER, buffer)
	check("BindBuffer")
	gl.VertexAttribPointer(uint32(location), components, gl.FLOAT, false, 0, nil)
	check("VertexAttribPointer")
}

func (b *Backend) SetUniformMat4(location metadata.UniformLocation, m math.Mat4) {
	data := m.Flat()
	gl.UniformMatrix4fv(int32(location), 1, false, &data[0])
	check("UniformMatrix4fv")
}

func (b *Backend) SetUniformMat3(location metadata.UniformLocation, m math.Mat3) {
	data := m.Flat()
	gl.UniformMatrix3fv(int32(location), 1, false, &data[0])
	check("UniformMatrix3fv")
}

func (b *Backend) DrawElements(elements uint32, count int32) {
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, elements)
	check("BindBuffer")
	gl.DrawElements(gl.TRIANGLES, count, gl.UNSIGNED_SHORT, nil)
	check("DrawElements")
}
