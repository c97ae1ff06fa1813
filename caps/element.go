package caps

import (
	"fmt"

	"github.com/richinsley/glguard/driver"
)

// ElementType is the scalar type stored in a buffer or read by an attribute.
type ElementType uint8

const (
	Int8 ElementType = iota
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Float32
	Float64
	elementCount
)

var elementInfo = [elementCount]struct {
	name string
	code uint32
	size int
}{
	Int8:    {"int8", driver.BYTE, 1},
	Uint8:   {"uint8", driver.UNSIGNED_BYTE, 1},
	Int16:   {"int16", driver.SHORT, 2},
	Uint16:  {"uint16", driver.UNSIGNED_SHORT, 2},
	Int32:   {"int32", driver.INT, 4},
	Uint32:  {"uint32", driver.UNSIGNED_INT, 4},
	Float32: {"float32", driver.FLOAT, 4},
	Float64: {"float64", driver.DOUBLE, 8},
}

// ElementTypes lists every element type.
func ElementTypes() []ElementType {
	out := make([]ElementType, elementCount)
	for i := range out {
		out[i] = ElementType(i)
	}
	return out
}

func (e ElementType) Valid() bool { return e < elementCount }

// Code returns the driver type enum for e.
func (e ElementType) Code() uint32 {
	if !e.Valid() {
		return 0
	}
	return elementInfo[e].code
}

// Size returns the size of one element in bytes.
func (e ElementType) Size() int {
	if !e.Valid() {
		return 0
	}
	return elementInfo[e].size
}

func (e ElementType) IsFloat() bool { return e == Float32 || e == Float64 }

func (e ElementType) IsUnsigned() bool { return e == Uint8 || e == Uint16 || e == Uint32 }

func (e ElementType) String() string {
	if !e.Valid() {
		return fmt.Sprintf("ElementType(%d)", uint8(e))
	}
	return elementInfo[e].name
}

// Element is every Go type that can be stored in a buffer. The type set is
// exact, so named types declared elsewhere cannot satisfy it.
type Element interface {
	int8 | uint8 | int16 | uint16 | int32 | uint32 | float32 | float64
}

// VertexElement is the capability set of array buffers and vertex attributes.
type VertexElement interface {
	float32 | float64
}

// IndexElement is the capability set of element-array buffers.
type IndexElement interface {
	uint8 | uint16 | uint32
}

// UniformScalar is a scalar uniform component type.
type UniformScalar interface {
	float32 | int32 | uint32
}

// TypeOf returns the ElementType of E.
func TypeOf[E Element]() ElementType {
	var zero E
	switch any(zero).(type) {
	case int8:
		return Int8
	case uint8:
		return Uint8
	case int16:
		return Int16
	case uint16:
		return Uint16
	case int32:
		return Int32
	case uint32:
		return Uint32
	case float32:
		return Float32
	default:
		return Float64
	}
}

// SizeOf returns the byte size of E.
func SizeOf[E Element]() int { return TypeOf[E]().Size() }

// Stride is the byte distance between consecutive vertices holding arity
// components of e each.
func Stride(arity int, e ElementType) int32 {
	return int32(arity * e.Size())
}
