package safegl

import (
	"fmt"

	"github.com/richinsley/glguard/caps"
	"github.com/richinsley/glguard/driver"
)

// slots mirrors the driver's binding state. It is the only place binding
// state is written, and it is written only after the driver accepted the
// call.
type slots struct {
	buffers     map[caps.Target]Name
	elements    map[Name]Name // element-array binding per vertex array
	vertexArray Name
	program     Name
}

func newSlots() slots {
	return slots{
		buffers:  make(map[caps.Target]Name),
		elements: make(map[Name]Name),
	}
}

func (s *slots) buffer(t caps.Target) Name {
	if t == caps.ElementArrayBuffer {
		return s.elements[s.vertexArray]
	}
	return s.buffers[t]
}

func (s *slots) setBuffer(t caps.Target, n Name) {
	if t == caps.ElementArrayBuffer {
		s.elements[s.vertexArray] = n
		return
	}
	s.buffers[t] = n
}

// forgetBuffer applies the driver's rule for deleting a bound buffer: every
// target slot holding it reverts to None, and so does the element-array slot
// of the current vertex array. Other vertex arrays keep the stale name.
func (s *slots) forgetBuffer(n Name) {
	for t, b := range s.buffers {
		if b == n {
			s.buffers[t] = None
		}
	}
	if s.elements[s.vertexArray] == n {
		s.elements[s.vertexArray] = None
	}
}

func (s *slots) forgetVertexArray(n Name) {
	delete(s.elements, n)
	if s.vertexArray == n {
		s.vertexArray = None
	}
}

// Binding reports the buffer last bound to t through this Context. The
// element-array slot belongs to the bound vertex array.
func (c *Context) Binding(t caps.Target) Name { return c.slots.buffer(t) }

// BoundVertexArray reports the bound vertex array.
func (c *Context) BoundVertexArray() Name { return c.slots.vertexArray }

// CurrentProgram reports the program last made current. Like the driver, a
// program deleted while current stays current until another program is used.
func (c *Context) CurrentProgram() Name { return c.slots.program }

// QueryBinding asks the driver which buffer is bound to t.
func (c *Context) QueryBinding(t caps.Target) (Name, error) {
	if !t.Valid() {
		return None, fmt.Errorf("safegl: QueryBinding: unknown target %s", t)
	}
	var v int32
	c.drv.GetIntegerv(t.BindingCode(), &v)
	return Check(c, Name(v))
}

// QueryVertexArray asks the driver which vertex array is bound.
func (c *Context) QueryVertexArray() (Name, error) {
	var v int32
	c.drv.GetIntegerv(driver.VERTEX_ARRAY_BINDING, &v)
	return Check(c, Name(v))
}

// QueryProgram asks the driver which program is current.
func (c *Context) QueryProgram() (Name, error) {
	var v int32
	c.drv.GetIntegerv(driver.CURRENT_PROGRAM, &v)
	return Check(c, Name(v))
}

// bindBuffer is the single path that changes a buffer slot.
func (c *Context) bindBuffer(t caps.Target, n Name) error {
	if !t.Valid() {
		return fmt.Errorf("safegl: BindBuffer: unknown target %s", t)
	}
	c.drv.BindBuffer(t.Code(), uint32(n))
	if err := c.check("BindBuffer"); err != nil {
		return err
	}
	c.slots.setBuffer(t, n)
	c.logger().Debug("bind buffer", "target", t, "name", n)
	return nil
}

// BindBuffer binds b to t. A nil b unbinds the slot.
func (c *Context) BindBuffer(t caps.Target, b *BufferObject) error {
	if b == nil {
		return c.bindBuffer(t, None)
	}
	if err := b.live(); err != nil {
		return fmt.Errorf("safegl: BindBuffer: %w", err)
	}
	return c.bindBuffer(t, b.name)
}

// BindVertexArray binds va. A nil va binds the default vertex array.
func (c *Context) BindVertexArray(va *VertexArray) error {
	n := None
	if va != nil {
		if err := va.live(); err != nil {
			return fmt.Errorf("safegl: BindVertexArray: %w", err)
		}
		n = va.name
	}
	c.drv.BindVertexArray(uint32(n))
	if err := c.check("BindVertexArray"); err != nil {
		return err
	}
	c.slots.vertexArray = n
	c.logger().Debug("bind vertex array", "name", n)
	return nil
}

// UseProgram makes lp current. A nil lp clears the current program. Only a
// program whose latest link succeeded can be passed.
func (c *Context) UseProgram(lp *LinkedProgram) error {
	n := None
	if lp != nil {
		if err := lp.valid(); err != nil {
			return fmt.Errorf("safegl: UseProgram: %w", err)
		}
		n = lp.p.name
	}
	c.drv.UseProgram(uint32(n))
	if err := c.check("UseProgram"); err != nil {
		return err
	}
	c.slots.program = n
	c.logger().Debug("use program", "name", n)
	return nil
}
