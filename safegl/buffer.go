package safegl

import (
	"fmt"
	"unsafe"

	"github.com/richinsley/glguard/caps"
)

// BufferObject owns a buffer name that has not been given a layout yet.
type BufferObject struct {
	object
}

// GenBuffers generates n buffers. n below 1 is rejected without calling the
// driver.
func (c *Context) GenBuffers(n int) ([]*BufferObject, error) {
	names, err := c.gen("GenBuffers", n, c.drv.GenBuffers)
	if err != nil {
		return nil, err
	}
	out := make([]*BufferObject, n)
	for i, name := range names {
		out[i] = &BufferObject{object{c: c, name: name}}
	}
	return out, nil
}

// AdoptBuffer takes ownership of an existing buffer name. Adopting None
// yields an empty handle.
func (c *Context) AdoptBuffer(n Name) *BufferObject {
	return &BufferObject{object{c: c, name: n}}
}

// Bind binds b to t.
func (b *BufferObject) Bind(t caps.Target) error { return b.c.BindBuffer(t, b) }

// Delete releases the buffer. It is a no-op for an empty handle and after the
// first call. Slots holding the buffer revert to None.
func (b *BufferObject) Delete() error {
	return b.c.deleteBuffer(&b.object)
}

func (c *Context) deleteBuffer(o *object) error {
	n := o.name
	return o.release("DeleteBuffers", func(name Name) {
		ids := []uint32{uint32(name)}
		c.drv.DeleteBuffers(1, &ids[0])
		c.slots.forgetBuffer(n)
	})
}

// BufferData uploads data to the buffer bound to t. The element type is
// checked against t before the driver is called.
func BufferData[E caps.Element](c *Context, t caps.Target, data []E, usage caps.Usage) error {
	if err := caps.CheckPermits(t, caps.TypeOf[E]()); err != nil {
		return fmt.Errorf("safegl: BufferData: %w", err)
	}
	if !usage.Valid() {
		return fmt.Errorf("safegl: BufferData: unknown usage %s", usage)
	}
	if c.slots.buffer(t) == None {
		return fmt.Errorf("safegl: BufferData: %s: %w", t, ErrNotBound)
	}
	c.drv.BufferData(t.Code(), len(data)*caps.SizeOf[E](), dataPointer(data), usage.Code())
	return c.check("BufferData")
}

func dataPointer[E any](data []E) unsafe.Pointer {
	if len(data) == 0 {
		return nil
	}
	return unsafe.Pointer(&data[0])
}

// Buffer is a buffer fixed to one bind target, element type and usage. The
// element type is always inside the target's capability set.
type Buffer[E caps.Element] struct {
	object
	target caps.Target
	usage  caps.Usage
	length int
}

// NewBuffer generates a buffer for target t. A target that cannot hold E is
// rejected before the driver is called.
func NewBuffer[E caps.Element](c *Context, t caps.Target, usage caps.Usage) (*Buffer[E], error) {
	if err := caps.CheckPermits(t, caps.TypeOf[E]()); err != nil {
		return nil, fmt.Errorf("safegl: NewBuffer: %w", err)
	}
	if !usage.Valid() {
		return nil, fmt.Errorf("safegl: NewBuffer: unknown usage %s", usage)
	}
	names, err := c.gen("GenBuffers", 1, c.drv.GenBuffers)
	if err != nil {
		return nil, err
	}
	return &Buffer[E]{object: object{c: c, name: names[0]}, target: t, usage: usage}, nil
}

// NewVertexBuffer generates an array buffer. Only floating element types
// compile.
func NewVertexBuffer[E caps.VertexElement](c *Context, usage caps.Usage) (*Buffer[E], error) {
	return NewBuffer[E](c, caps.ArrayBuffer, usage)
}

// NewIndexBuffer generates an element-array buffer. Only unsigned integer
// element types compile.
func NewIndexBuffer[E caps.IndexElement](c *Context, usage caps.Usage) (*Buffer[E], error) {
	return NewBuffer[E](c, caps.ElementArrayBuffer, usage)
}

// AsBuffer gives obj a layout, moving ownership into the returned Buffer.
// On error obj keeps its name.
func AsBuffer[E caps.Element](obj *BufferObject, t caps.Target, usage caps.Usage) (*Buffer[E], error) {
	if err := caps.CheckPermits(t, caps.TypeOf[E]()); err != nil {
		return nil, fmt.Errorf("safegl: AsBuffer: %w", err)
	}
	if !usage.Valid() {
		return nil, fmt.Errorf("safegl: AsBuffer: unknown usage %s", usage)
	}
	if err := obj.live(); err != nil {
		return nil, fmt.Errorf("safegl: AsBuffer: %w", err)
	}
	c := obj.c
	return &Buffer[E]{object: object{c: c, name: obj.Disown()}, target: t, usage: usage}, nil
}

func (b *Buffer[E]) Target() caps.Target           { return b.target }
func (b *Buffer[E]) Usage() caps.Usage             { return b.usage }
func (b *Buffer[E]) ElementType() caps.ElementType { return caps.TypeOf[E]() }

// Len is the number of elements in the data store.
func (b *Buffer[E]) Len() int { return b.length }

// Bound reports whether b is the buffer bound to its target.
func (b *Buffer[E]) Bound() bool {
	return b.name != None && b.c.slots.buffer(b.target) == b.name
}

// Bind binds b to its target.
func (b *Buffer[E]) Bind() error {
	if err := b.live(); err != nil {
		return fmt.Errorf("safegl: Bind: %w", err)
	}
	return b.c.bindBuffer(b.target, b.name)
}

// Unbind clears b's target slot if b is bound there.
func (b *Buffer[E]) Unbind() error {
	if !b.Bound() {
		return nil
	}
	return b.c.bindBuffer(b.target, None)
}

func (b *Buffer[E]) requireBound(op string) error {
	if err := b.live(); err != nil {
		return fmt.Errorf("safegl: %s: %w", op, err)
	}
	if !b.Bound() {
		return fmt.Errorf("safegl: %s: %s buffer %d: %w", op, b.target, b.name, ErrNotBound)
	}
	return nil
}

// Upload replaces the data store with data. b must be bound.
func (b *Buffer[E]) Upload(data []E) error {
	if err := b.requireBound("Upload"); err != nil {
		return err
	}
	b.c.drv.BufferData(b.target.Code(), len(data)*caps.SizeOf[E](), dataPointer(data), b.usage.Code())
	if err := b.c.check("BufferData"); err != nil {
		return err
	}
	b.length = len(data)
	return nil
}

// Update overwrites elements starting at offset. The range must lie inside
// the current data store and b must be bound.
func (b *Buffer[E]) Update(offset int, data []E) error {
	if offset < 0 || offset+len(data) > b.length {
		return fmt.Errorf("safegl: Update: [%d, %d) of %d elements: %w", offset, offset+len(data), b.length, ErrOutOfRange)
	}
	if err := b.requireBound("Update"); err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	size := caps.SizeOf[E]()
	b.c.drv.BufferSubData(b.target.Code(), offset*size, len(data)*size, dataPointer(data))
	return b.c.check("BufferSubData")
}

// AttribPointer points attribute index at b's elements, arity components per
// vertex, tightly packed. b must be the bound array buffer.
func (b *Buffer[E]) AttribPointer(index uint32, arity int, normalized bool) error {
	if b.target != caps.ArrayBuffer {
		return fmt.Errorf("safegl: AttribPointer: %w: attributes read from %s, not %s",
			caps.ErrNotPermitted, caps.ArrayBuffer, b.target)
	}
	if err := b.requireBound("AttribPointer"); err != nil {
		return err
	}
	return b.c.vertexAttribPointer(index, arity, caps.TypeOf[E](), normalized)
}

// Delete releases the buffer. It is a no-op after the first call.
func (b *Buffer[E]) Delete() error {
	b.length = 0
	return b.c.deleteBuffer(&b.object)
}
