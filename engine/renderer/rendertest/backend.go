// Package rendertest provides a recording backend for GPU-free tests.
package rendertest

import (
	"fmt"
	"sync"

	"github.com/spaghettifunk/lumina/engine/math"
	"github.com/spaghettifunk/lumina/engine/renderer/metadata"
)

// Buffer is the recorded state of one fake buffer.
type Buffer struct {
	Target  metadata.BufferTarget
	Usage   metadata.BufferUsage
	Data    interface{}
	Updates int
}

// Draw records one DrawElements call with the uniforms current at the time.
type Draw struct {
	Elements uint32
	Count    int32
	Attribs  map[metadata.AttribLocation]uint32
	Mat4     map[metadata.UniformLocation]math.Mat4
	Mat3     map[metadata.UniformLocation]math.Mat3
}

/**
 * @brief A RendererBackend that keeps everything in memory. Attribute and
 * uniform names resolve to fixed locations unless listed in Missing.
 */
type Backend struct {
	mu sync.Mutex

	Config      metadata.BackendConfig
	Initialized bool
	ShutDown    bool
	Width       uint32
	Height      uint32
	Clears      []metadata.Colour

	Programs   map[uint32]*metadata.ShaderSource
	Current    uint32
	CompileErr error
	Missing    map[string]bool

	Buffers map[uint32]*Buffer
	Deleted []uint32
	Draws   []Draw
	Calls   []string

	nextHandle uint32
	attribs    map[metadata.AttribLocation]uint32
	mat4       map[metadata.UniformLocation]math.Mat4
	mat3       map[metadata.UniformLocation]math.Mat3
}

func New() *Backend {
	return &Backend{
		Programs: map[uint32]*metadata.ShaderSource{},
		Missing:  map[string]bool{},
		Buffers:  map[uint32]*Buffer{},
		attribs:  map[metadata.AttribLocation]uint32{},
		mat4:     map[metadata.UniformLocation]math.Mat4{},
		mat3:     map[metadata.UniformLocation]math.Mat3{},
	}
}

var locations = map[string]int32{
	metadata.ATTRIB_COORD:            0,
	metadata.ATTRIB_NORMAL:           1,
	metadata.ATTRIB_COLOUR:           2,
	metadata.UNIFORM_MODEL_ORIG:      0,
	metadata.UNIFORM_MODEL:           1,
	metadata.UNIFORM_VIEW:            2,
	metadata.UNIFORM_PROJECTION:      3,
	metadata.UNIFORM_MODEL_INV_TRANS: 4,
}

func (b *Backend) record(format string, args ...interface{}) {
	b.Calls = append(b.Calls, fmt.Sprintf(format, args...))
}

func (b *Backend) handle() uint32 {
	b.nextHandle++
	return b.nextHandle
}

func (b *Backend) Initialize(config metadata.BackendConfig) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Config = config
	b.Initialized = true
	b.Width, b.Height = config.Width, config.Height
	b.record("Initialize")
	return nil
}

func (b *Backend) Shutdown() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ShutDown = true
	b.record("Shutdown")
	return nil
}

func (b *Backend) Resized(width, height uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Width, b.Height = width, height
	b.record("Resized %dx%d", width, height)
}

func (b *Backend) Clear(colour metadata.Colour) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Clears = append(b.Clears, colour)
	b.record("Clear")
}

func (b *Backend) CreateProgram(source *metadata.ShaderSource) (uint32, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.CompileErr != nil {
		return 0, b.CompileErr
	}
	h := b.handle()
	b.Programs[h] = source
	b.record("CreateProgram %s", source.Name)
	return h, nil
}

func (b *Backend) DestroyProgram(program uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.Programs, program)
	b.record("DestroyProgram %d", program)
}

func (b *Backend) UseProgram(program uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Current = program
	b.record("UseProgram %d", program)
}

func (b *Backend) AttribLocation(program uint32, name string) metadata.AttribLocation {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Missing[name] {
		return metadata.INVALID_LOCATION
	}
	return metadata.AttribLocation(locations[name])
}

func (b *Backend) UniformLocation(program uint32, name string) metadata.UniformLocation {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Missing[name] {
		return metadata.INVALID_LOCATION
	}
	return metadata.UniformLocation(locations[name])
}

func copyData(data interface{}) interface{} {
	switch d := data.(type) {
	case []math.Vec4:
		return append([]math.Vec4(nil), d...)
	case []math.Vec3:
		return append([]math.Vec3(nil), d...)
	case []uint16:
		return append([]uint16(nil), d...)
	}
	panic(fmt.Sprintf("unsupported buffer data %T", data))
}

func (b *Backend) CreateBuffer(target metadata.BufferTarget, usage metadata.BufferUsage, data interface{}) uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	h := b.handle()
	b.Buffers[h] = &Buffer{Target: target, Usage: usage, Data: copyData(data)}
	b.record("CreateBuffer %d", h)
	return h
}

func (b *Backend) UpdateBuffer(target metadata.BufferTarget, buffer uint32, data interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	buf, ok := b.Buffers[buffer]
	if !ok {
		panic(fmt.Sprintf("update of unknown buffer %d", buffer))
	}
	buf.Data = copyData(data)
	buf.Updates++
	b.record("UpdateBuffer %d", buffer)
}

func (b *Backend) DeleteBuffers(buffers ...uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, h := range buffers {
		delete(b.Buffers, h)
		b.Deleted = append(b.Deleted, h)
	}
	b.record("DeleteBuffers %v", buffers)
}

func (b *Backend) BindAttribute(location metadata.AttribLocation, buffer uint32, components int32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !location.Valid() {
		return
	}
	b.attribs[location] = buffer
}

func (b *Backend) SetUniformMat4(location metadata.UniformLocation, m math.Mat4) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mat4[location] = m
}

func (b *Backend) SetUniformMat3(location metadata.UniformLocation, m math.Mat3) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mat3[location] = m
}

func (b *Backend) DrawElements(elements uint32, count int32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	d := Draw{
		Elements: elements,
		Count:    count,
		Attribs:  map[metadata.AttribLocation]uint32{},
		Mat4:     map[metadata.UniformLocation]math.Mat4{},
		Mat3:     map[metadata.UniformLocation]math.Mat3{},
	}
	for k, v := range b.attribs {
		d.Attribs[k] = v
	}
	for k, v := range b.mat4 {
		d.Mat4[k] = v
	}
	for k, v := range b.mat3 {
		d.Mat3[k] = v
	}
	b.Draws = append(b.Draws, d)
	b.record("DrawElements %d", elements)
}

// Uniform4 returns the last value set on a 4x4 uniform.
func (b *Backend) Uniform4(location metadata.UniformLocation) (math.Mat4, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	m, ok := b.mat4[location]
	return m, ok
}

// BufferData returns a copy of the data last written to buffer.
func (b *Backend) BufferData(buffer uint32) (interface{}, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	buf, ok := b.Buffers[buffer]
	if !ok {
		return nil, false
	}
	return buf.Data, true
}

// Live returns the number of buffers created and not deleted.
func (b *Backend) Live() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.Buffers)
}
