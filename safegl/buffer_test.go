package safegl

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richinsley/glguard/caps"
	"github.com/richinsley/glguard/driver"
)

// construct calls NewBuffer with the Go type matching e.
func construct(c *Context, t caps.Target, e caps.ElementType) error {
	var err error
	switch e {
	case caps.Int8:
		_, err = NewBuffer[int8](c, t, caps.StaticDraw)
	case caps.Uint8:
		_, err = NewBuffer[uint8](c, t, caps.StaticDraw)
	case caps.Int16:
		_, err = NewBuffer[int16](c, t, caps.StaticDraw)
	case caps.Uint16:
		_, err = NewBuffer[uint16](c, t, caps.StaticDraw)
	case caps.Int32:
		_, err = NewBuffer[int32](c, t, caps.StaticDraw)
	case caps.Uint32:
		_, err = NewBuffer[uint32](c, t, caps.StaticDraw)
	case caps.Float32:
		_, err = NewBuffer[float32](c, t, caps.StaticDraw)
	case caps.Float64:
		_, err = NewBuffer[float64](c, t, caps.StaticDraw)
	default:
		panic(e)
	}
	return err
}

func TestNewBufferFollowsPermits(t *testing.T) {
	c, d := newTestContext(t)
	for _, target := range caps.Targets() {
		for _, e := range caps.ElementTypes() {
			d.Reset()
			err := construct(c, target, e)
			if caps.Permits(target, e) {
				assert.NoError(t, err, "%s/%s", target, e)
				assert.Equal(t, 1, d.CallCount("GenBuffers"), "%s/%s", target, e)
				continue
			}
			assert.ErrorIs(t, err, caps.ErrNotPermitted, "%s/%s", target, e)
			assert.Zero(t, d.CallCount(), "%s/%s", target, e)
		}
	}
}

func TestRejectedPairsNeverReachDriver(t *testing.T) {
	c, d := newTestContext(t)
	bufs, err := c.GenBuffers(1)
	require.NoError(t, err)
	d.Reset()

	_, err = AsBuffer[float32](bufs[0], caps.ElementArrayBuffer, caps.StaticDraw)
	assert.ErrorIs(t, err, caps.ErrNotPermitted)
	assert.NotEqual(t, None, bufs[0].Name())

	err = BufferData(c, caps.ElementArrayBuffer, []float32{1, 2, 3}, caps.StaticDraw)
	assert.ErrorIs(t, err, caps.ErrNotPermitted)

	err = BufferData(c, caps.ArrayBuffer, []uint16{1, 2, 3}, caps.StaticDraw)
	assert.ErrorIs(t, err, caps.ErrNotPermitted)

	_, err = NewBuffer[float64](c, caps.TextureBuffer, caps.StaticDraw)
	assert.ErrorIs(t, err, caps.ErrNotPermitted)

	assert.Zero(t, d.CallCount())
}

func TestAsBufferMovesOwnership(t *testing.T) {
	c, d := newTestContext(t)
	bufs, err := c.GenBuffers(1)
	require.NoError(t, err)
	name := bufs[0].Name()

	vb, err := AsBuffer[float32](bufs[0], caps.ArrayBuffer, caps.DynamicDraw)
	require.NoError(t, err)
	assert.Equal(t, name, vb.Name())
	assert.Equal(t, None, bufs[0].Name())
	assert.Equal(t, caps.ArrayBuffer, vb.Target())
	assert.Equal(t, caps.DynamicDraw, vb.Usage())
	assert.Equal(t, caps.Float32, vb.ElementType())

	require.NoError(t, bufs[0].Delete())
	assert.True(t, d.IsBuffer(uint32(name)))
	require.NoError(t, vb.Delete())
	assert.False(t, d.IsBuffer(uint32(name)))

	_, err = AsBuffer[float32](bufs[0], caps.ArrayBuffer, caps.DynamicDraw)
	assert.ErrorIs(t, err, ErrDeleted)
}

func TestBufferDataRequiresBinding(t *testing.T) {
	c, d := newTestContext(t)
	err := BufferData(c, caps.ArrayBuffer, []float32{1}, caps.StaticDraw)
	assert.ErrorIs(t, err, ErrNotBound)
	assert.Zero(t, d.CallCount())

	bufs, err := c.GenBuffers(1)
	require.NoError(t, err)
	require.NoError(t, bufs[0].Bind(caps.UniformBuffer))
	require.NoError(t, BufferData(c, caps.UniformBuffer, []int32{7, -1}, caps.StreamDraw))

	data, ok := d.BufferContents(uint32(bufs[0].Name()))
	require.True(t, ok)
	require.Len(t, data, 8)
	assert.Equal(t, uint32(7), binary.LittleEndian.Uint32(data[0:]))
	usage, _ := d.BufferUsage(uint32(bufs[0].Name()))
	assert.Equal(t, uint32(driver.STREAM_DRAW), usage)
}

func TestBufferUploadAndUpdate(t *testing.T) {
	c, d := newTestContext(t)
	vb, err := NewVertexBuffer[float32](c, caps.StaticDraw)
	require.NoError(t, err)

	d.Reset()
	assert.ErrorIs(t, vb.Upload([]float32{1, 2, 3}), ErrNotBound)
	assert.Zero(t, d.CallCount())

	require.NoError(t, vb.Bind())
	assert.True(t, vb.Bound())
	require.NoError(t, vb.Upload([]float32{1, 2, 3, 4}))
	assert.Equal(t, 4, vb.Len())

	require.NoError(t, vb.Update(2, []float32{30, 40}))
	data, _ := d.BufferContents(uint32(vb.Name()))
	require.Len(t, data, 16)
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(data[0:])))
	assert.Equal(t, float32(30), math.Float32frombits(binary.LittleEndian.Uint32(data[8:])))
	assert.Equal(t, float32(40), math.Float32frombits(binary.LittleEndian.Uint32(data[12:])))

	d.Reset()
	assert.ErrorIs(t, vb.Update(3, []float32{1, 2}), ErrOutOfRange)
	assert.ErrorIs(t, vb.Update(-1, []float32{1}), ErrOutOfRange)
	assert.Zero(t, d.CallCount())

	require.NoError(t, vb.Unbind())
	assert.False(t, vb.Bound())
	assert.Equal(t, None, c.Binding(caps.ArrayBuffer))
	assert.ErrorIs(t, vb.Update(0, []float32{1}), ErrNotBound)
}

func TestBufferDeleteClearsBinding(t *testing.T) {
	c, _ := newTestContext(t)
	ib, err := NewIndexBuffer[uint32](c, caps.StaticDraw)
	require.NoError(t, err)
	require.NoError(t, ib.Bind())
	require.NoError(t, ib.Upload([]uint32{0, 1, 2}))

	require.NoError(t, ib.Delete())
	assert.Zero(t, ib.Len())
	assert.Equal(t, None, c.Binding(caps.ElementArrayBuffer))
	assert.ErrorIs(t, ib.Bind(), ErrDeleted)
	assert.ErrorIs(t, ib.Upload([]uint32{1}), ErrDeleted)
}

func TestAttribPointer(t *testing.T) {
	c, d := newTestContext(t)
	va, err := c.GenVertexArray()
	require.NoError(t, err)
	require.NoError(t, va.Bind())

	vb, err := NewVertexBuffer[float32](c, caps.StaticDraw)
	require.NoError(t, err)
	assert.ErrorIs(t, vb.AttribPointer(0, 3, false), ErrNotBound)

	require.NoError(t, vb.Bind())
	require.NoError(t, vb.Upload(make([]float32, 9)))
	require.NoError(t, vb.AttribPointer(0, 3, false))
	require.NoError(t, c.EnableVertexAttribArray(0))

	a, ok := d.AttribState(uint32(va.Name()), 0)
	require.True(t, ok)
	assert.True(t, a.Enabled)
	assert.Equal(t, int32(3), a.Size)
	assert.Equal(t, uint32(driver.FLOAT), a.Type)
	assert.Equal(t, int32(12), a.Stride)
	assert.Equal(t, uint32(vb.Name()), a.Buffer)

	d.Reset()
	assert.ErrorIs(t, vb.AttribPointer(1, 5, false), ErrInvalidArity)
	assert.ErrorIs(t, vb.AttribPointer(1, 0, false), ErrInvalidArity)
	assert.Zero(t, d.CallCount())

	require.NoError(t, VertexAttribPointer[float64](c, 1, 4, false))
	a, _ = d.AttribState(uint32(va.Name()), 1)
	assert.Equal(t, uint32(driver.DOUBLE), a.Type)
	assert.Equal(t, int32(32), a.Stride)

	require.NoError(t, c.DisableVertexAttribArray(0))
	a, _ = d.AttribState(uint32(va.Name()), 0)
	assert.False(t, a.Enabled)

	err = c.EnableVertexAttribArray(99)
	assert.Error(t, err)
}

func TestAttribPointerNeedsArrayBuffer(t *testing.T) {
	c, d := newTestContext(t)
	cb, err := NewBuffer[float32](c, caps.CopyReadBuffer, caps.StaticCopy)
	require.NoError(t, err)
	require.NoError(t, cb.Bind())
	d.Reset()

	assert.ErrorIs(t, cb.AttribPointer(0, 2, false), caps.ErrNotPermitted)
	assert.Zero(t, d.CallCount())
}
