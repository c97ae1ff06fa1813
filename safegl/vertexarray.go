package safegl

import (
	"fmt"
	"slices"
)

// VertexArray owns one vertex array object.
type VertexArray struct {
	object
}

// GenVertexArrays generates n vertex arrays. n below 1 is rejected without
// calling the driver.
func (c *Context) GenVertexArrays(n int) ([]*VertexArray, error) {
	names, err := c.gen("GenVertexArrays", n, c.drv.GenVertexArrays)
	if err != nil {
		return nil, err
	}
	out := make([]*VertexArray, n)
	for i, name := range names {
		out[i] = &VertexArray{object{c: c, name: name}}
	}
	return out, nil
}

// GenVertexArray generates a single vertex array.
func (c *Context) GenVertexArray() (*VertexArray, error) {
	vas, err := c.GenVertexArrays(1)
	if err != nil {
		return nil, err
	}
	return vas[0], nil
}

// AdoptVertexArray takes ownership of an existing vertex array name, for
// instance one returned by Disown.
func (c *Context) AdoptVertexArray(n Name) *VertexArray {
	return &VertexArray{object{c: c, name: n}}
}

// Bind makes va the bound vertex array.
func (va *VertexArray) Bind() error { return va.c.BindVertexArray(va) }

// Delete releases the vertex array. It is a no-op after the first call. If
// va was bound the default vertex array becomes bound.
func (va *VertexArray) Delete() error {
	n := va.name
	return va.release("DeleteVertexArrays", func(name Name) {
		ids := []uint32{uint32(name)}
		va.c.drv.DeleteVertexArrays(1, &ids[0])
		va.c.slots.forgetVertexArray(n)
	})
}

// gen validates n and runs one generation call.
func (c *Context) gen(op string, n int, call func(int32, *uint32)) ([]Name, error) {
	if n < 1 {
		return nil, fmt.Errorf("safegl: %s(%d): %w", op, n, ErrInvalidCount)
	}
	ids := make([]uint32, n)
	call(int32(n), &ids[0])
	if err := c.check(op); err != nil {
		return nil, err
	}
	names := make([]Name, n)
	for i, id := range ids {
		if id == 0 || slices.Contains(ids[:i], id) {
			return nil, fmt.Errorf("safegl: %s: driver returned invalid name %d", op, id)
		}
		names[i] = Name(id)
	}
	c.logger().Debug("gen", "op", op, "names", names)
	return names, nil
}
