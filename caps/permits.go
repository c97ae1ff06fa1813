package caps

import "fmt"

// elementSet is a bitmask over ElementType.
type elementSet uint16

func setOf(es ...ElementType) elementSet {
	var s elementSet
	for _, e := range es {
		s |= 1 << e
	}
	return s
}

func (s elementSet) has(e ElementType) bool { return e.Valid() && s&(1<<e) != 0 }

var (
	anyElement   = setOf(Int8, Uint8, Int16, Uint16, Int32, Uint32, Float32, Float64)
	wideScalars  = setOf(Int32, Uint32, Float32, Float64)
	uint32Only   = setOf(Uint32)
	floatsOnly   = setOf(Float32, Float64)
	unsignedOnly = setOf(Uint8, Uint16, Uint32)
)

// permitted is the target → capability set relation.
var permitted = [targetCount]elementSet{
	ArrayBuffer:             floatsOnly,
	ElementArrayBuffer:      unsignedOnly,
	AtomicCounterBuffer:     uint32Only,
	DispatchIndirectBuffer:  uint32Only,
	DrawIndirectBuffer:      uint32Only,
	QueryBuffer:             uint32Only,
	UniformBuffer:           wideScalars,
	ShaderStorageBuffer:     wideScalars,
	TransformFeedbackBuffer: wideScalars,
	TextureBuffer:           anyElement &^ setOf(Float64),
	CopyReadBuffer:          anyElement,
	CopyWriteBuffer:         anyElement,
	PixelPackBuffer:         anyElement,
	PixelUnpackBuffer:       anyElement,
}

// Permits reports whether buffers bound to t may hold elements of type e.
func Permits(t Target, e ElementType) bool {
	if !t.Valid() {
		return false
	}
	return permitted[t].has(e)
}

// Permitted returns the capability set of t.
func Permitted(t Target) []ElementType {
	var out []ElementType
	for _, e := range ElementTypes() {
		if Permits(t, e) {
			out = append(out, e)
		}
	}
	return out
}

// CheckPermits returns an error wrapping ErrNotPermitted when e is outside the
// capability set of t.
func CheckPermits(t Target, e ElementType) error {
	if Permits(t, e) {
		return nil
	}
	return fmt.Errorf("%w: %s cannot hold %s (allowed: %v)", ErrNotPermitted, t, e, Permitted(t))
}
