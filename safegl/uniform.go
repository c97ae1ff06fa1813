package safegl

import (
	"fmt"

	"github.com/richinsley/glguard/caps"
)

// UniformLocation is a uniform slot resolved against one link of a program.
// It is invalidated by relinking or deleting that program.
type UniformLocation struct {
	loc int32
	p   *Program
	gen uint64
}

// Value is the driver location; -1 means the program has no such uniform.
func (u UniformLocation) Value() int32 { return u.loc }

// Found reports whether the name resolved to an active uniform.
func (u UniformLocation) Found() bool { return u.loc >= 0 }

// usable checks that u belongs to the current link of the current program.
func (c *Context) usable(u UniformLocation) error {
	if u.p == nil || u.p.name == None || u.gen != u.p.gen {
		return ErrStaleLocation
	}
	if c.slots.program != u.p.name {
		return fmt.Errorf("%w: location belongs to program %d, current is %d", ErrProgramNotCurrent, u.p.name, c.slots.program)
	}
	return nil
}

func (c *Context) uniform(op string, u UniformLocation, call func(int32)) error {
	if err := c.usable(u); err != nil {
		return fmt.Errorf("safegl: %s: %w", op, err)
	}
	call(u.loc)
	return c.check(op)
}

// shape validates that n values split into whole elements of comps
// components and returns the element count.
func shape(op string, n, comps int) (int32, error) {
	if n == 0 || n%comps != 0 {
		return 0, fmt.Errorf("safegl: %s: %d values for %d components: %w", op, n, comps, ErrComponentMismatch)
	}
	return int32(n / comps), nil
}

func uniformv[T caps.UniformScalar](c *Context, op string, u UniformLocation, data []T, comps int, call func(loc, count int32, v *T)) error {
	count, err := shape(op, len(data), comps)
	if err != nil {
		return err
	}
	return c.uniform(op, u, func(loc int32) { call(loc, count, &data[0]) })
}

func uniformMatrix(c *Context, op string, u UniformLocation, data []float32, comps int, transpose bool, call func(loc, count int32, transpose bool, v *float32)) error {
	count, err := shape(op, len(data), comps)
	if err != nil {
		return err
	}
	return c.uniform(op, u, func(loc int32) { call(loc, count, transpose, &data[0]) })
}

func (c *Context) Uniform1f(u UniformLocation, v0 float32) error {
	return c.uniform("Uniform1f", u, func(l int32) { c.drv.Uniform1f(l, v0) })
}

func (c *Context) Uniform2f(u UniformLocation, v0, v1 float32) error {
	return c.uniform("Uniform2f", u, func(l int32) { c.drv.Uniform2f(l, v0, v1) })
}

func (c *Context) Uniform3f(u UniformLocation, v0, v1, v2 float32) error {
	return c.uniform("Uniform3f", u, func(l int32) { c.drv.Uniform3f(l, v0, v1, v2) })
}

func (c *Context) Uniform4f(u UniformLocation, v0, v1, v2, v3 float32) error {
	return c.uniform("Uniform4f", u, func(l int32) { c.drv.Uniform4f(l, v0, v1, v2, v3) })
}

func (c *Context) Uniform1i(u UniformLocation, v0 int32) error {
	return c.uniform("Uniform1i", u, func(l int32) { c.drv.Uniform1i(l, v0) })
}

func (c *Context) Uniform2i(u UniformLocation, v0, v1 int32) error {
	return c.uniform("Uniform2i", u, func(l int32) { c.drv.Uniform2i(l, v0, v1) })
}

func (c *Context) Uniform3i(u UniformLocation, v0, v1, v2 int32) error {
	return c.uniform("Uniform3i", u, func(l int32) { c.drv.Uniform3i(l, v0, v1, v2) })
}

func (c *Context) Uniform4i(u UniformLocation, v0, v1, v2, v3 int32) error {
	return c.uniform("Uniform4i", u, func(l int32) { c.drv.Uniform4i(l, v0, v1, v2, v3) })
}

func (c *Context) Uniform1ui(u UniformLocation, v0 uint32) error {
	return c.uniform("Uniform1ui", u, func(l int32) { c.drv.Uniform1ui(l, v0) })
}

func (c *Context) Uniform2ui(u UniformLocation, v0, v1 uint32) error {
	return c.uniform("Uniform2ui", u, func(l int32) { c.drv.Uniform2ui(l, v0, v1) })
}

func (c *Context) Uniform3ui(u UniformLocation, v0, v1, v2 uint32) error {
	return c.uniform("Uniform3ui", u, func(l int32) { c.drv.Uniform3ui(l, v0, v1, v2) })
}

func (c *Context) Uniform4ui(u UniformLocation, v0, v1, v2, v3 uint32) error {
	return c.uniform("Uniform4ui", u, func(l int32) { c.drv.Uniform4ui(l, v0, v1, v2, v3) })
}

// The vector forms upload len(data)/N elements of N components each. A
// length that is zero or not a multiple of N is rejected before the driver
// is called.

func (c *Context) Uniform1fv(u UniformLocation, data []float32) error {
	return uniformv(c, "Uniform1fv", u, data, 1, c.drv.Uniform1fv)
}

func (c *Context) Uniform2fv(u UniformLocation, data []float32) error {
	return uniformv(c, "Uniform2fv", u, data, 2, c.drv.Uniform2fv)
}

func (c *Context) Uniform3fv(u UniformLocation, data []float32) error {
	return uniformv(c, "Uniform3fv", u, data, 3, c.drv.Uniform3fv)
}

func (c *Context) Uniform4fv(u UniformLocation, data []float32) error {
	return uniformv(c, "Uniform4fv", u, data, 4, c.drv.Uniform4fv)
}

func (c *Context) Uniform1iv(u UniformLocation, data []int32) error {
	return uniformv(c, "Uniform1iv", u, data, 1, c.drv.Uniform1iv)
}

func (c *Context) Uniform2iv(u UniformLocation, data []int32) error {
	return uniformv(c, "Uniform2iv", u, data, 2, c.drv.Uniform2iv)
}

func (c *Context) Uniform3iv(u UniformLocation, data []int32) error {
	return uniformv(c, "Uniform3iv", u, data, 3, c.drv.Uniform3iv)
}

func (c *Context) Uniform4iv(u UniformLocation, data []int32) error {
	return uniformv(c, "Uniform4iv", u, data, 4, c.drv.Uniform4iv)
}

func (c *Context) Uniform1uiv(u UniformLocation, data []uint32) error {
	return uniformv(c, "Uniform1uiv", u, data, 1, c.drv.Uniform1uiv)
}

func (c *Context) Uniform2uiv(u UniformLocation, data []uint32) error {
	return uniformv(c, "Uniform2uiv", u, data, 2, c.drv.Uniform2uiv)
}

func (c *Context) Uniform3uiv(u UniformLocation, data []uint32) error {
	return uniformv(c, "Uniform3uiv", u, data, 3, c.drv.Uniform3uiv)
}

func (c *Context) Uniform4uiv(u UniformLocation, data []uint32) error {
	return uniformv(c, "Uniform4uiv", u, data, 4, c.drv.Uniform4uiv)
}

// The matrix forms take column-major data unless transpose is set.

func (c *Context) UniformMatrix2fv(u UniformLocation, transpose bool, data []float32) error {
	return uniformMatrix(c, "UniformMatrix2fv", u, data, 4, transpose, c.drv.UniformMatrix2fv)
}

func (c *Context) UniformMatrix3fv(u UniformLocation, transpose bool, data []float32) error {
	return uniformMatrix(c, "UniformMatrix3fv", u, data, 9, transpose, c.drv.UniformMatrix3fv)
}

func (c *Context) UniformMatrix4fv(u UniformLocation, transpose bool, data []float32) error {
	return uniformMatrix(c, "UniformMatrix4fv", u, data, 16, transpose, c.drv.UniformMatrix4fv)
}

func (c *Context) UniformMatrix2x3fv(u UniformLocation, transpose bool, data []float32) error {
	return uniformMatrix(c, "UniformMatrix2x3fv", u, data, 6, transpose, c.drv.UniformMatrix2x3fv)
}

func (c *Context) UniformMatrix3x2fv(u UniformLocation, transpose bool, data []float32) error {
	return uniformMatrix(c, "UniformMatrix3x2fv", u, data, 6, transpose, c.drv.UniformMatrix3x2fv)
}

func (c *Context) UniformMatrix2x4fv(u UniformLocation, transpose bool, data []float32) error {
	return uniformMatrix(c, "UniformMatrix2x4fv", u, data, 8, transpose, c.drv.UniformMatrix2x4fv)
}

func (c *Context) UniformMatrix4x2fv(u UniformLocation, transpose bool, data []float32) error {
	return uniformMatrix(c, "UniformMatrix4x2fv", u, data, 8, transpose, c.drv.UniformMatrix4x2fv)
}

func (c *Context) UniformMatrix3x4fv(u UniformLocation, transpose bool, data []float32) error {
	return uniformMatrix(c, "UniformMatrix3x4fv", u, data, 12, transpose, c.drv.UniformMatrix3x4fv)
}

func (c *Context) UniformMatrix4x3fv(u UniformLocation, transpose bool, data []float32) error {
	return uniformMatrix(c, "UniformMatrix4x3fv", u, data, 12, transpose, c.drv.UniformMatrix4x3fv)
}
