// Package safegl is a typed, error-checked layer over driver.Driver.
//
// Every driver object is owned by a handle. Buffers carry their bind target,
// element type and usage; shaders carry their stage; only a successfully
// linked program can be made current. Combinations the driver would accept
// silently are rejected before the driver is called, and every state-changing
// call is followed by a drain of the driver's error queue, so a fault is
// reported by the call that caused it.
//
// A Context, and every handle created from it, must stay on the thread that
// owns the underlying driver context.
package safegl

import (
	"fmt"
	"log/slog"

	"github.com/richinsley/glguard/caps"
	"github.com/richinsley/glguard/driver"
	"github.com/richinsley/glguard/glcheck"
)

// Name is a driver object identifier.
type Name uint32

// None is the reserved "no object" identifier.
const None Name = 0

// Option configures a Context.
type Option func(*Context)

// WithLogger makes the Context log through l instead of the package logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Context) { c.log = l }
}

// Context binds one driver to the binding-slot tracker and the error bridge.
type Context struct {
	drv   driver.Driver
	log   *slog.Logger
	slots slots
}

// New wraps drv. The tracker assumes the driver's default state: nothing
// bound and no program current. Call Sync when adopting a context that was
// used before.
func New(drv driver.Driver, opts ...Option) *Context {
	c := &Context{drv: drv, slots: newSlots()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Driver returns the wrapped driver.
func (c *Context) Driver() driver.Driver { return c.drv }

func (c *Context) logger() *slog.Logger {
	if c.log != nil {
		return c.log
	}
	return Logger()
}

// Check drains the driver's error queue. It returns nil when nothing was
// pending, otherwise a glcheck.Errors holding every code in arrival order.
func (c *Context) Check() error {
	return glcheck.Err(c.drv)
}

// Check drains the driver's error queue and pairs the result with v.
func Check[T any](c *Context, v T) (T, error) {
	return glcheck.Check(c.drv, v)
}

// check is run after every state-changing driver call.
func (c *Context) check(op string) error {
	errs := glcheck.Drain(c.drv)
	if errs == nil {
		return nil
	}
	c.logger().Warn("driver error", "op", op, "errors", errs.Error())
	return fmt.Errorf("safegl: %s: %w", op, errs)
}

// Sync reloads the binding-slot tracker from the driver.
func (c *Context) Sync() error {
	var v int32
	for _, t := range caps.Targets() {
		if t == caps.ElementArrayBuffer {
			continue
		}
		c.drv.GetIntegerv(t.BindingCode(), &v)
		c.slots.buffers[t] = Name(v)
	}
	c.drv.GetIntegerv(driver.VERTEX_ARRAY_BINDING, &v)
	c.slots.vertexArray = Name(v)
	c.drv.GetIntegerv(driver.ELEMENT_ARRAY_BUFFER_BINDING, &v)
	c.slots.elements[c.slots.vertexArray] = Name(v)
	c.drv.GetIntegerv(driver.CURRENT_PROGRAM, &v)
	c.slots.program = Name(v)
	return c.check("Sync")
}
