// Package caps holds the closed relations between resource roles and the
// data they may carry.
//
// The driver accepts any element type for any buffer target and any data
// layout for any attribute; a mismatch surfaces later as a deferred error or
// as corrupted draw output. caps encodes the legal combinations once, both as
// a runtime relation (Permits) and as sealed generic constraints, so that
// package safegl can refuse an illegal combination before the driver is
// called.
package caps

import (
	"errors"
	"fmt"

	"github.com/richinsley/glguard/driver"
)

// ErrNotPermitted is returned when an element type is outside the capability
// set of a buffer target.
var ErrNotPermitted = errors.New("caps: element type not permitted for target")

// Target is a buffer bind target.
type Target uint8

const (
	ArrayBuffer Target = iota
	AtomicCounterBuffer
	CopyReadBuffer
	CopyWriteBuffer
	DispatchIndirectBuffer
	DrawIndirectBuffer
	ElementArrayBuffer
	PixelPackBuffer
	PixelUnpackBuffer
	QueryBuffer
	ShaderStorageBuffer
	TextureBuffer
	TransformFeedbackBuffer
	UniformBuffer
	targetCount
)

var targetInfo = [targetCount]struct {
	name    string
	code    uint32
	binding uint32
}{
	ArrayBuffer:             {"ARRAY_BUFFER", driver.ARRAY_BUFFER, driver.ARRAY_BUFFER_BINDING},
	AtomicCounterBuffer:     {"ATOMIC_COUNTER_BUFFER", driver.ATOMIC_COUNTER_BUFFER, driver.ATOMIC_COUNTER_BUFFER_BINDING},
	CopyReadBuffer:          {"COPY_READ_BUFFER", driver.COPY_READ_BUFFER, driver.COPY_READ_BUFFER_BINDING},
	CopyWriteBuffer:         {"COPY_WRITE_BUFFER", driver.COPY_WRITE_BUFFER, driver.COPY_WRITE_BUFFER_BINDING},
	DispatchIndirectBuffer:  {"DISPATCH_INDIRECT_BUFFER", driver.DISPATCH_INDIRECT_BUFFER, driver.DISPATCH_INDIRECT_BUFFER_BINDING},
	DrawIndirectBuffer:      {"DRAW_INDIRECT_BUFFER", driver.DRAW_INDIRECT_BUFFER, driver.DRAW_INDIRECT_BUFFER_BINDING},
	ElementArrayBuffer:      {"ELEMENT_ARRAY_BUFFER", driver.ELEMENT_ARRAY_BUFFER, driver.ELEMENT_ARRAY_BUFFER_BINDING},
	PixelPackBuffer:         {"PIXEL_PACK_BUFFER", driver.PIXEL_PACK_BUFFER, driver.PIXEL_PACK_BUFFER_BINDING},
	PixelUnpackBuffer:       {"PIXEL_UNPACK_BUFFER", driver.PIXEL_UNPACK_BUFFER, driver.PIXEL_UNPACK_BUFFER_BINDING},
	QueryBuffer:             {"QUERY_BUFFER", driver.QUERY_BUFFER, driver.QUERY_BUFFER_BINDING},
	ShaderStorageBuffer:     {"SHADER_STORAGE_BUFFER", driver.SHADER_STORAGE_BUFFER, driver.SHADER_STORAGE_BUFFER_BINDING},
	TextureBuffer:           {"TEXTURE_BUFFER", driver.TEXTURE_BUFFER, driver.TEXTURE_BUFFER_BINDING},
	TransformFeedbackBuffer: {"TRANSFORM_FEEDBACK_BUFFER", driver.TRANSFORM_FEEDBACK_BUFFER, driver.TRANSFORM_FEEDBACK_BUFFER_BINDING},
	UniformBuffer:           {"UNIFORM_BUFFER", driver.UNIFORM_BUFFER, driver.UNIFORM_BUFFER_BINDING},
}

// Targets lists every bind target in declaration order.
func Targets() []Target {
	out := make([]Target, targetCount)
	for i := range out {
		out[i] = Target(i)
	}
	return out
}

// Valid reports whether t names a known target.
func (t Target) Valid() bool { return t < targetCount }

// Code returns the driver enum for t.
func (t Target) Code() uint32 {
	if !t.Valid() {
		return 0
	}
	return targetInfo[t].code
}

// BindingCode returns the GetIntegerv name that reports the buffer bound to t.
func (t Target) BindingCode() uint32 {
	if !t.Valid() {
		return 0
	}
	return targetInfo[t].binding
}

func (t Target) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Target(%d)", uint8(t))
	}
	return targetInfo[t].name
}

// Usage is a buffer usage hint.
type Usage uint8

const (
	StreamDraw Usage = iota
	StreamRead
	StreamCopy
	StaticDraw
	StaticRead
	StaticCopy
	DynamicDraw
	DynamicRead
	DynamicCopy
	usageCount
)

var usageInfo = [usageCount]struct {
	name string
	code uint32
}{
	StreamDraw:  {"STREAM_DRAW", driver.STREAM_DRAW},
	StreamRead:  {"STREAM_READ", driver.STREAM_READ},
	StreamCopy:  {"STREAM_COPY", driver.STREAM_COPY},
	StaticDraw:  {"STATIC_DRAW", driver.STATIC_DRAW},
	StaticRead:  {"STATIC_READ", driver.STATIC_READ},
	StaticCopy:  {"STATIC_COPY", driver.STATIC_COPY},
	DynamicDraw: {"DYNAMIC_DRAW", driver.DYNAMIC_DRAW},
	DynamicRead: {"DYNAMIC_READ", driver.DYNAMIC_READ},
	DynamicCopy: {"DYNAMIC_COPY", driver.DYNAMIC_COPY},
}

// Usages lists every usage hint.
func Usages() []Usage {
	out := make([]Usage, usageCount)
	for i := range out {
		out[i] = Usage(i)
	}
	return out
}

func (u Usage) Valid() bool { return u < usageCount }

func (u Usage) Code() uint32 {
	if !u.Valid() {
		return 0
	}
	return usageInfo[u].code
}

func (u Usage) String() string {
	if !u.Valid() {
		return fmt.Sprintf("Usage(%d)", uint8(u))
	}
	return usageInfo[u].name
}
