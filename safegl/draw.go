package safegl

import (
	"fmt"

	"github.com/richinsley/glguard/caps"
	"github.com/richinsley/glguard/driver"
)

// Primitive is a draw topology.
type Primitive uint32

const (
	Points                 Primitive = driver.POINTS
	Lines                  Primitive = driver.LINES
	LineLoop               Primitive = driver.LINE_LOOP
	LineStrip              Primitive = driver.LINE_STRIP
	Triangles              Primitive = driver.TRIANGLES
	TriangleStrip          Primitive = driver.TRIANGLE_STRIP
	TriangleFan            Primitive = driver.TRIANGLE_FAN
	LinesAdjacency         Primitive = driver.LINES_ADJACENCY
	LineStripAdjacency     Primitive = driver.LINE_STRIP_ADJACENCY
	TrianglesAdjacency     Primitive = driver.TRIANGLES_ADJACENCY
	TriangleStripAdjacency Primitive = driver.TRIANGLE_STRIP_ADJACENCY
	Patches                Primitive = driver.PATCHES
)

// BufferBit selects framebuffer attachments to clear.
type BufferBit uint32

const (
	ColorBufferBit   BufferBit = driver.COLOR_BUFFER_BIT
	DepthBufferBit   BufferBit = driver.DEPTH_BUFFER_BIT
	StencilBufferBit BufferBit = driver.STENCIL_BUFFER_BIT
)

func (c *Context) ClearColor(r, g, b, a float32) error {
	c.drv.ClearColor(r, g, b, a)
	return c.check("ClearColor")
}

func (c *Context) Clear(bits BufferBit) error {
	c.drv.Clear(uint32(bits))
	return c.check("Clear")
}

// DrawArrays draws count vertices starting at first from the bound vertex
// array with the current program.
func (c *Context) DrawArrays(mode Primitive, first, count int) error {
	if first < 0 || count < 0 {
		return fmt.Errorf("safegl: DrawArrays(first=%d, count=%d): %w", first, count, ErrInvalidCount)
	}
	c.drv.DrawArrays(uint32(mode), int32(first), int32(count))
	return c.check("DrawArrays")
}

// DrawElements draws count indices of type E read from the bound
// element-array buffer, starting at element offset.
func DrawElements[E caps.IndexElement](c *Context, mode Primitive, count, offset int) error {
	if count < 0 || offset < 0 {
		return fmt.Errorf("safegl: DrawElements(count=%d, offset=%d): %w", count, offset, ErrInvalidCount)
	}
	if c.slots.buffer(caps.ElementArrayBuffer) == None {
		return fmt.Errorf("safegl: DrawElements: %s: %w", caps.ElementArrayBuffer, ErrNotBound)
	}
	e := caps.TypeOf[E]()
	c.drv.DrawElements(uint32(mode), int32(count), e.Code(), uintptr(offset*e.Size()))
	return c.check("DrawElements")
}
