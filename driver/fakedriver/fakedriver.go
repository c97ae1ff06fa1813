// Package fakedriver is a software model of the driver contract.
//
// It keeps object namespaces, binding slots, buffer contents, uniform values
// and the sticky error queue the way a core-profile implementation does, and
// records every entry point it receives so tests can count driver calls.
// Shader compilation is delegated to a Compiler; the default one is a small
// GLSL syntax checker.
package fakedriver

import (
	"fmt"
	"slices"

	"github.com/richinsley/glguard/driver"
)

// MaxVertexAttribs is reported for MAX_VERTEX_ATTRIBS.
const MaxVertexAttribs = 16

// Call is one recorded entry-point invocation.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Name, c.Args)
}

// Draw is one recorded draw call that passed validation.
type Draw struct {
	Mode    uint32
	First   int32
	Count   int32
	Indexed bool
	Type    uint32
	Offset  uintptr
	Program uint32
	VAO     uint32
}

// Option configures a Driver.
type Option func(*Driver)

// WithCompiler replaces the built-in syntax checker.
func WithCompiler(c Compiler) Option {
	return func(d *Driver) { d.compiler = c }
}

// Driver implements driver.Driver in memory. It is not safe for concurrent
// use, like the context it models.
type Driver struct {
	compiler Compiler

	calls   []Call
	pending []uint32

	nextBuffer uint32
	nextVAO    uint32
	nextObject uint32 // shaders and programs share a namespace

	buffers  map[uint32]*buffer
	vaos     map[uint32]*vertexArray
	shaders  map[uint32]*shader
	programs map[uint32]*program

	bindings   map[uint32]uint32 // target code -> buffer, element-array excluded
	vao        uint32
	current    uint32
	clearColor [4]float32
	clears     []uint32
	draws      []Draw
}

var _ driver.Driver = (*Driver)(nil)

// New returns an empty driver with the default vertex array bound.
func New(opts ...Option) *Driver {
	d := &Driver{
		compiler: Syntax{},
		buffers:  make(map[uint32]*buffer),
		vaos:     map[uint32]*vertexArray{0: newVertexArray()},
		shaders:  make(map[uint32]*shader),
		programs: make(map[uint32]*program),
		bindings: make(map[uint32]uint32),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Driver) record(name string, args ...any) {
	d.calls = append(d.calls, Call{Name: name, Args: args})
}

// Calls returns a copy of every recorded call in order.
func (d *Driver) Calls() []Call {
	return slices.Clone(d.calls)
}

// CallCount returns the number of recorded calls to the named entry points,
// or to any entry point when no names are given.
func (d *Driver) CallCount(names ...string) int {
	if len(names) == 0 {
		return len(d.calls)
	}
	n := 0
	for _, c := range d.calls {
		if slices.Contains(names, c.Name) {
			n++
		}
	}
	return n
}

// LastCall returns the most recent call, or false when nothing was recorded.
func (d *Driver) LastCall() (Call, bool) {
	if len(d.calls) == 0 {
		return Call{}, false
	}
	return d.calls[len(d.calls)-1], true
}

// Reset forgets recorded calls. Object state is kept.
func (d *Driver) Reset() {
	d.calls = nil
}

// Inject queues raw error codes behind whatever is already pending.
func (d *Driver) Inject(codes ...uint32) {
	d.pending = append(d.pending, codes...)
}

// Pending returns the queued error codes without consuming them.
func (d *Driver) Pending() []uint32 {
	return slices.Clone(d.pending)
}

// setError raises a fault flag. Like the real error flags, a code that is
// already pending is not queued twice.
func (d *Driver) setError(code uint32) {
	if slices.Contains(d.pending, code) {
		return
	}
	d.pending = append(d.pending, code)
}

func (d *Driver) GetError() uint32 {
	d.record("GetError")
	if len(d.pending) == 0 {
		return driver.NO_ERROR
	}
	code := d.pending[0]
	d.pending = d.pending[1:]
	return code
}

func (d *Driver) GetIntegerv(pname uint32, data *int32) {
	d.record("GetIntegerv", pname)
	if data == nil {
		d.setError(driver.INVALID_VALUE)
		return
	}
	switch pname {
	case driver.ELEMENT_ARRAY_BUFFER_BINDING:
		*data = int32(d.vaos[d.vao].elements)
	case driver.VERTEX_ARRAY_BINDING:
		*data = int32(d.vao)
	case driver.CURRENT_PROGRAM:
		*data = int32(d.current)
	case driver.MAX_VERTEX_ATTRIBS:
		*data = MaxVertexAttribs
	default:
		target, ok := bindingTarget[pname]
		if !ok {
			d.setError(driver.INVALID_ENUM)
			return
		}
		*data = int32(d.bindings[target])
	}
}

func (d *Driver) ClearColor(red, green, blue, alpha float32) {
	d.record("ClearColor", red, green, blue, alpha)
	d.clearColor = [4]float32{red, green, blue, alpha}
}

const clearMask = driver.COLOR_BUFFER_BIT | driver.DEPTH_BUFFER_BIT | driver.STENCIL_BUFFER_BIT

func (d *Driver) Clear(mask uint32) {
	d.record("Clear", mask)
	if mask&^clearMask != 0 {
		d.setError(driver.INVALID_VALUE)
		return
	}
	d.clears = append(d.clears, mask)
}

// ClearColorValue returns the last clear color.
func (d *Driver) ClearColorValue() [4]float32 { return d.clearColor }

// Clears returns the masks of every accepted Clear call.
func (d *Driver) Clears() []uint32 { return slices.Clone(d.clears) }

// Draws returns every accepted draw call.
func (d *Driver) Draws() []Draw { return slices.Clone(d.draws) }

var primitives = map[uint32]bool{
	driver.POINTS: true, driver.LINES: true, driver.LINE_LOOP: true,
	driver.LINE_STRIP: true, driver.TRIANGLES: true, driver.TRIANGLE_STRIP: true,
	driver.TRIANGLE_FAN: true, driver.LINES_ADJACENCY: true,
	driver.LINE_STRIP_ADJACENCY: true, driver.TRIANGLES_ADJACENCY: true,
	driver.TRIANGLE_STRIP_ADJACENCY: true, driver.PATCHES: true,
}

func (d *Driver) DrawArrays(mode uint32, first, count int32) {
	d.record("DrawArrays", mode, first, count)
	switch {
	case !primitives[mode]:
		d.setError(driver.INVALID_ENUM)
	case first < 0 || count < 0:
		d.setError(driver.INVALID_VALUE)
	case d.current == 0:
		d.setError(driver.INVALID_OPERATION)
	default:
		d.draws = append(d.draws, Draw{Mode: mode, First: first, Count: count, Program: d.current, VAO: d.vao})
	}
}

func (d *Driver) DrawElements(mode uint32, count int32, xtype uint32, offset uintptr) {
	d.record("DrawElements", mode, count, xtype, offset)
	switch {
	case !primitives[mode]:
		d.setError(driver.INVALID_ENUM)
	case xtype != driver.UNSIGNED_BYTE && xtype != driver.UNSIGNED_SHORT && xtype != driver.UNSIGNED_INT:
		d.setError(driver.INVALID_ENUM)
	case count < 0:
		d.setError(driver.INVALID_VALUE)
	case d.current == 0 || d.vaos[d.vao].elements == 0:
		d.setError(driver.INVALID_OPERATION)
	default:
		d.draws = append(d.draws, Draw{
			Mode: mode, Count: count, Indexed: true, Type: xtype, Offset: offset,
			Program: d.current, VAO: d.vao,
		})
	}
}
