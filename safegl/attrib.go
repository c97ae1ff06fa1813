package safegl

import (
	"fmt"

	"github.com/richinsley/glguard/caps"
)

// VertexAttribPointer describes attribute index as arity components of E per
// vertex, read from offset zero of the bound array buffer. The stride is
// arity × size(E); it is not checked against the bound buffer's layout.
func VertexAttribPointer[E caps.VertexElement](c *Context, index uint32, arity int, normalized bool) error {
	return c.vertexAttribPointer(index, arity, caps.TypeOf[E](), normalized)
}

func (c *Context) vertexAttribPointer(index uint32, arity int, e caps.ElementType, normalized bool) error {
	if arity < 1 || arity > 4 {
		return fmt.Errorf("safegl: VertexAttribPointer: arity %d: %w", arity, ErrInvalidArity)
	}
	c.drv.VertexAttribPointer(index, int32(arity), e.Code(), normalized, caps.Stride(arity, e), 0)
	return c.check("VertexAttribPointer")
}

// EnableVertexAttribArray enables attribute index of the bound vertex array.
func (c *Context) EnableVertexAttribArray(index uint32) error {
	c.drv.EnableVertexAttribArray(index)
	return c.check("EnableVertexAttribArray")
}

// DisableVertexAttribArray disables attribute index of the bound vertex array.
func (c *Context) DisableVertexAttribArray(index uint32) error {
	c.drv.DisableVertexAttribArray(index)
	return c.check("DisableVertexAttribArray")
}
