package fakedriver

import (
	"slices"
	"unsafe"

	"github.com/richinsley/glguard/driver"
)

type buffer struct {
	data  []byte
	usage uint32
}

// Attrib is the state of one generic vertex attribute of a vertex array.
type Attrib struct {
	Enabled    bool
	Size       int32
	Type       uint32
	Normalized bool
	Stride     int32
	Offset     uintptr
	Buffer     uint32
}

type vertexArray struct {
	elements uint32
	attribs  [MaxVertexAttribs]Attrib
}

func newVertexArray() *vertexArray {
	va := &vertexArray{}
	for i := range va.attribs {
		va.attribs[i].Size = 4
		va.attribs[i].Type = driver.FLOAT
	}
	return va
}

// bindingTarget maps a *_BINDING query name to its bind target.
var bindingTarget = map[uint32]uint32{
	driver.ARRAY_BUFFER_BINDING:              driver.ARRAY_BUFFER,
	driver.ATOMIC_COUNTER_BUFFER_BINDING:     driver.ATOMIC_COUNTER_BUFFER,
	driver.COPY_READ_BUFFER_BINDING:          driver.COPY_READ_BUFFER,
	driver.COPY_WRITE_BUFFER_BINDING:         driver.COPY_WRITE_BUFFER,
	driver.DISPATCH_INDIRECT_BUFFER_BINDING:  driver.DISPATCH_INDIRECT_BUFFER,
	driver.DRAW_INDIRECT_BUFFER_BINDING:      driver.DRAW_INDIRECT_BUFFER,
	driver.PIXEL_PACK_BUFFER_BINDING:         driver.PIXEL_PACK_BUFFER,
	driver.PIXEL_UNPACK_BUFFER_BINDING:       driver.PIXEL_UNPACK_BUFFER,
	driver.QUERY_BUFFER_BINDING:              driver.QUERY_BUFFER,
	driver.SHADER_STORAGE_BUFFER_BINDING:     driver.SHADER_STORAGE_BUFFER,
	driver.TEXTURE_BUFFER_BINDING:            driver.TEXTURE_BUFFER,
	driver.TRANSFORM_FEEDBACK_BUFFER_BINDING: driver.TRANSFORM_FEEDBACK_BUFFER,
	driver.UNIFORM_BUFFER_BINDING:            driver.UNIFORM_BUFFER,
}

func validTarget(target uint32) bool {
	if target == driver.ELEMENT_ARRAY_BUFFER {
		return true
	}
	for _, t := range bindingTarget {
		if t == target {
			return true
		}
	}
	return false
}

var usages = map[uint32]bool{
	driver.STREAM_DRAW: true, driver.STREAM_READ: true, driver.STREAM_COPY: true,
	driver.STATIC_DRAW: true, driver.STATIC_READ: true, driver.STATIC_COPY: true,
	driver.DYNAMIC_DRAW: true, driver.DYNAMIC_READ: true, driver.DYNAMIC_COPY: true,
}

var attribTypes = map[uint32]bool{
	driver.BYTE: true, driver.UNSIGNED_BYTE: true, driver.SHORT: true,
	driver.UNSIGNED_SHORT: true, driver.INT: true, driver.UNSIGNED_INT: true,
	driver.FLOAT: true, driver.DOUBLE: true,
}

// bound returns the buffer bound to target in the current state.
func (d *Driver) bound(target uint32) uint32 {
	if target == driver.ELEMENT_ARRAY_BUFFER {
		return d.vaos[d.vao].elements
	}
	return d.bindings[target]
}

func (d *Driver) GenBuffers(n int32, buffers *uint32) {
	d.record("GenBuffers", n)
	if n < 0 {
		d.setError(driver.INVALID_VALUE)
		return
	}
	if n == 0 {
		return
	}
	out := unsafe.Slice(buffers, n)
	for i := range out {
		d.nextBuffer++
		d.buffers[d.nextBuffer] = &buffer{usage: driver.STATIC_DRAW}
		out[i] = d.nextBuffer
	}
}

func (d *Driver) DeleteBuffers(n int32, buffers *uint32) {
	d.record("DeleteBuffers", n)
	if n < 0 {
		d.setError(driver.INVALID_VALUE)
		return
	}
	if n == 0 {
		return
	}
	for _, name := range unsafe.Slice(buffers, n) {
		if name == 0 || d.buffers[name] == nil {
			continue
		}
		delete(d.buffers, name)
		for target, b := range d.bindings {
			if b == name {
				d.bindings[target] = 0
			}
		}
		// Only the current vertex array loses its element binding.
		if va := d.vaos[d.vao]; va.elements == name {
			va.elements = 0
		}
		for i := range d.vaos[d.vao].attribs {
			if a := &d.vaos[d.vao].attribs[i]; a.Buffer == name {
				a.Buffer = 0
			}
		}
	}
}

func (d *Driver) BindBuffer(target, name uint32) {
	d.record("BindBuffer", target, name)
	if !validTarget(target) {
		d.setError(driver.INVALID_ENUM)
		return
	}
	if name != 0 && d.buffers[name] == nil {
		d.setError(driver.INVALID_OPERATION)
		return
	}
	if target == driver.ELEMENT_ARRAY_BUFFER {
		d.vaos[d.vao].elements = name
		return
	}
	d.bindings[target] = name
}

func (d *Driver) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	d.record("BufferData", target, size, usage)
	switch {
	case !validTarget(target) || !usages[usage]:
		d.setError(driver.INVALID_ENUM)
		return
	case size < 0:
		d.setError(driver.INVALID_VALUE)
		return
	}
	b := d.buffers[d.bound(target)]
	if b == nil {
		d.setError(driver.INVALID_OPERATION)
		return
	}
	b.usage = usage
	b.data = make([]byte, size)
	if data != nil && size > 0 {
		copy(b.data, unsafe.Slice((*byte)(data), size))
	}
}

func (d *Driver) BufferSubData(target uint32, offset, size int, data unsafe.Pointer) {
	d.record("BufferSubData", target, offset, size)
	if !validTarget(target) {
		d.setError(driver.INVALID_ENUM)
		return
	}
	b := d.buffers[d.bound(target)]
	switch {
	case b == nil:
		d.setError(driver.INVALID_OPERATION)
	case offset < 0 || size < 0 || offset+size > len(b.data):
		d.setError(driver.INVALID_VALUE)
	case data != nil && size > 0:
		copy(b.data[offset:], unsafe.Slice((*byte)(data), size))
	}
}

// BufferContents returns a copy of a buffer's data store.
func (d *Driver) BufferContents(name uint32) ([]byte, bool) {
	b := d.buffers[name]
	if b == nil {
		return nil, false
	}
	return slices.Clone(b.data), true
}

// BufferUsage returns the usage hint of the last BufferData on name.
func (d *Driver) BufferUsage(name uint32) (uint32, bool) {
	b := d.buffers[name]
	if b == nil {
		return 0, false
	}
	return b.usage, true
}

// IsBuffer reports whether name is a live buffer.
func (d *Driver) IsBuffer(name uint32) bool { return name != 0 && d.buffers[name] != nil }

func (d *Driver) GenVertexArrays(n int32, arrays *uint32) {
	d.record("GenVertexArrays", n)
	if n < 0 {
		d.setError(driver.INVALID_VALUE)
		return
	}
	if n == 0 {
		return
	}
	out := unsafe.Slice(arrays, n)
	for i := range out {
		d.nextVAO++
		d.vaos[d.nextVAO] = newVertexArray()
		out[i] = d.nextVAO
	}
}

func (d *Driver) DeleteVertexArrays(n int32, arrays *uint32) {
	d.record("DeleteVertexArrays", n)
	if n < 0 {
		d.setError(driver.INVALID_VALUE)
		return
	}
	if n == 0 {
		return
	}
	for _, name := range unsafe.Slice(arrays, n) {
		if name == 0 || d.vaos[name] == nil {
			continue
		}
		delete(d.vaos, name)
		if d.vao == name {
			d.vao = 0
		}
	}
}

func (d *Driver) BindVertexArray(name uint32) {
	d.record("BindVertexArray", name)
	if d.vaos[name] == nil {
		d.setError(driver.INVALID_OPERATION)
		return
	}
	d.vao = name
}

// IsVertexArray reports whether name is a live vertex array.
func (d *Driver) IsVertexArray(name uint32) bool { return name != 0 && d.vaos[name] != nil }

// ElementBinding returns the element-array buffer recorded in vertex array vao.
func (d *Driver) ElementBinding(vao uint32) uint32 {
	if va := d.vaos[vao]; va != nil {
		return va.elements
	}
	return 0
}

// AttribState returns attribute index of vertex array vao.
func (d *Driver) AttribState(vao, index uint32) (Attrib, bool) {
	va := d.vaos[vao]
	if va == nil || index >= MaxVertexAttribs {
		return Attrib{}, false
	}
	return va.attribs[index], true
}

func (d *Driver) EnableVertexAttribArray(index uint32) {
	d.record("EnableVertexAttribArray", index)
	d.setAttribEnabled(index, true)
}

func (d *Driver) DisableVertexAttribArray(index uint32) {
	d.record("DisableVertexAttribArray", index)
	d.setAttribEnabled(index, false)
}

func (d *Driver) setAttribEnabled(index uint32, on bool) {
	if index >= MaxVertexAttribs {
		d.setError(driver.INVALID_VALUE)
		return
	}
	d.vaos[d.vao].attribs[index].Enabled = on
}

func (d *Driver) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
	d.record("VertexAttribPointer", index, size, xtype, normalized, stride, offset)
	switch {
	case index >= MaxVertexAttribs || size < 1 || size > 4 || stride < 0:
		d.setError(driver.INVALID_VALUE)
		return
	case !attribTypes[xtype]:
		d.setError(driver.INVALID_ENUM)
		return
	case d.bindings[driver.ARRAY_BUFFER] == 0 && offset != 0:
		d.setError(driver.INVALID_OPERATION)
		return
	}
	a := &d.vaos[d.vao].attribs[index]
	a.Size = size
	a.Type = xtype
	a.Normalized = normalized
	a.Stride = stride
	a.Offset = offset
	a.Buffer = d.bindings[driver.ARRAY_BUFFER]
}
