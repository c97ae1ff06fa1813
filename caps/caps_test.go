package caps

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/richinsley/glguard/driver"
)

func TestPermitsArrayAndElementArray(t *testing.T) {
	for _, e := range ElementTypes() {
		assert.Equal(t, e.IsFloat(), Permits(ArrayBuffer, e), "ARRAY_BUFFER/%s", e)
		assert.Equal(t, e.IsUnsigned(), Permits(ElementArrayBuffer, e), "ELEMENT_ARRAY_BUFFER/%s", e)
	}
}

func TestPermitsTable(t *testing.T) {
	tests := []struct {
		target Target
		elem   ElementType
		want   bool
	}{
		{AtomicCounterBuffer, Uint32, true},
		{AtomicCounterBuffer, Int32, false},
		{DrawIndirectBuffer, Uint32, true},
		{DrawIndirectBuffer, Float32, false},
		{UniformBuffer, Float32, true},
		{UniformBuffer, Int8, false},
		{ShaderStorageBuffer, Float64, true},
		{TextureBuffer, Float64, false},
		{TextureBuffer, Uint8, true},
		{CopyReadBuffer, Int16, true},
		{PixelUnpackBuffer, Uint8, true},
		{Target(200), Float32, false},
		{ArrayBuffer, ElementType(99), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Permits(tt.target, tt.elem), "%s/%s", tt.target, tt.elem)
	}
}

func TestEveryTargetPermitsSomething(t *testing.T) {
	for _, tgt := range Targets() {
		assert.NotEmpty(t, Permitted(tgt), tgt.String())
	}
}

func TestCheckPermits(t *testing.T) {
	assert.NoError(t, CheckPermits(ArrayBuffer, Float32))

	err := CheckPermits(ElementArrayBuffer, Float32)
	assert.True(t, errors.Is(err, ErrNotPermitted))
	assert.Contains(t, err.Error(), "ELEMENT_ARRAY_BUFFER")
	assert.Contains(t, err.Error(), "float32")
}

// The generic constraints must stay inside the runtime relation.
func TestConstraintsMatchRelation(t *testing.T) {
	vertex := []ElementType{TypeOf[float32](), TypeOf[float64]()}
	for _, e := range vertex {
		assert.True(t, Permits(ArrayBuffer, e), e.String())
	}
	index := []ElementType{TypeOf[uint8](), TypeOf[uint16](), TypeOf[uint32]()}
	for _, e := range index {
		assert.True(t, Permits(ElementArrayBuffer, e), e.String())
	}
}

func TestTypeOfAndSizes(t *testing.T) {
	assert.Equal(t, Int8, TypeOf[int8]())
	assert.Equal(t, Uint8, TypeOf[byte]())
	assert.Equal(t, Int16, TypeOf[int16]())
	assert.Equal(t, Uint16, TypeOf[uint16]())
	assert.Equal(t, Int32, TypeOf[int32]())
	assert.Equal(t, Uint32, TypeOf[uint32]())
	assert.Equal(t, Float32, TypeOf[float32]())
	assert.Equal(t, Float64, TypeOf[float64]())

	assert.Equal(t, 1, SizeOf[uint8]())
	assert.Equal(t, 2, SizeOf[int16]())
	assert.Equal(t, 4, SizeOf[float32]())
	assert.Equal(t, 8, SizeOf[float64]())

	assert.Equal(t, uint32(driver.FLOAT), Float32.Code())
	assert.Equal(t, uint32(driver.UNSIGNED_SHORT), Uint16.Code())
}

func TestStride(t *testing.T) {
	assert.Equal(t, int32(12), Stride(3, Float32))
	assert.Equal(t, int32(32), Stride(4, Float64))
	assert.Equal(t, int32(4), Stride(1, Float32))
}

func TestTargetCodes(t *testing.T) {
	assert.Equal(t, uint32(driver.ARRAY_BUFFER), ArrayBuffer.Code())
	assert.Equal(t, uint32(driver.ARRAY_BUFFER_BINDING), ArrayBuffer.BindingCode())
	assert.Equal(t, uint32(driver.ELEMENT_ARRAY_BUFFER), ElementArrayBuffer.Code())
	assert.Equal(t, uint32(driver.UNIFORM_BUFFER_BINDING), UniformBuffer.BindingCode())
	assert.Zero(t, Target(99).Code())
	assert.Equal(t, "Target(99)", Target(99).String())
	assert.Len(t, Targets(), 14)
}

func TestUsageCodes(t *testing.T) {
	assert.Equal(t, uint32(driver.STATIC_DRAW), StaticDraw.Code())
	assert.Equal(t, uint32(driver.DYNAMIC_COPY), DynamicCopy.Code())
	assert.Equal(t, "STREAM_READ", StreamRead.String())
	assert.Len(t, Usages(), 9)
	assert.False(t, Usage(42).Valid())
}

func TestStages(t *testing.T) {
	assert.Equal(t, VertexStage, KindFor[Vertex]())
	assert.Equal(t, FragmentStage, KindFor[Fragment]())
	assert.Equal(t, ComputeStage, KindFor[Compute]())
	assert.Equal(t, uint32(driver.FRAGMENT_SHADER), FragmentStage.Code())

	k, ok := KindOf(driver.GEOMETRY_SHADER)
	assert.True(t, ok)
	assert.Equal(t, GeometryStage, k)

	_, ok = KindOf(0x1234)
	assert.False(t, ok)

	k, err := ParseStage("frag")
	assert.NoError(t, err)
	assert.Equal(t, FragmentStage, k)

	_, err = ParseStage("pixel")
	assert.Error(t, err)
}
