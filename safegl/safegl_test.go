package safegl

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richinsley/glguard/caps"
	"github.com/richinsley/glguard/driver"
	"github.com/richinsley/glguard/driver/fakedriver"
	"github.com/richinsley/glguard/glcheck"
)

const (
	testVertex = `#version 330 core
layout(location = 0) in vec3 a_pos;
uniform mat4 u_mvp;
void main() {
	gl_Position = u_mvp * vec4(a_pos, 1.0);
}
`
	testFragment = `#version 330 core
out vec4 color;
uniform vec4 u_color;
uniform vec4 u_palette[2];
uniform int u_mode;
uniform uint u_count;
uniform mat3 u_normal;
void main() {
	color = u_color;
}
`
	// The declaration of u_color is not terminated.
	brokenFragment = `#version 330 core
out vec4 color;
uniform vec4 u_color
void main() {
	color = u_color;
}
`
)

func newTestContext(t *testing.T) (*Context, *fakedriver.Driver) {
	t.Helper()
	d := fakedriver.New()
	return New(d), d
}

// linkTestProgram builds and links the test program and makes it current.
func linkTestProgram(t *testing.T, c *Context) *LinkedProgram {
	t.Helper()
	vs, err := NewShader[caps.Vertex](c, testVertex)
	require.NoError(t, err)
	fs, err := NewShader[caps.Fragment](c, testFragment)
	require.NoError(t, err)
	lp, err := c.NewProgram(vs, fs)
	require.NoError(t, err)
	require.NoError(t, lp.Use())
	return lp
}

func TestCheckAccumulatesInOrder(t *testing.T) {
	c, d := newTestContext(t)

	// Two faulty calls before anyone drains.
	d.BindBuffer(0x1234, 0)
	d.GenBuffers(-1, nil)

	err := c.Check()
	require.Error(t, err)
	var errs glcheck.Errors
	require.True(t, errors.As(err, &errs))
	assert.Equal(t, glcheck.Errors{glcheck.InvalidEnum, glcheck.InvalidValue}, errs)

	assert.NoError(t, c.Check())
}

func TestCheckValue(t *testing.T) {
	c, d := newTestContext(t)
	v, err := Check(c, 42)
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	d.Inject(driver.OUT_OF_MEMORY)
	v, err = Check(c, 42)
	assert.Zero(t, v)
	assert.ErrorIs(t, err, glcheck.OutOfMemory)
}

func TestGenerationRejectsNonPositiveCount(t *testing.T) {
	c, d := newTestContext(t)
	for _, n := range []int{0, -1, -100} {
		bufs, err := c.GenBuffers(n)
		assert.ErrorIs(t, err, ErrInvalidCount)
		assert.Nil(t, bufs)

		vas, err := c.GenVertexArrays(n)
		assert.ErrorIs(t, err, ErrInvalidCount)
		assert.Nil(t, vas)
	}
	assert.Zero(t, d.CallCount())
}

func TestGenerationReturnsDistinctNames(t *testing.T) {
	c, _ := newTestContext(t)
	bufs, err := c.GenBuffers(5)
	require.NoError(t, err)
	require.Len(t, bufs, 5)
	seen := map[Name]bool{}
	for _, b := range bufs {
		assert.NotEqual(t, None, b.Name())
		assert.False(t, seen[b.Name()])
		seen[b.Name()] = true
	}
}

func TestSentinelReleaseIsNoop(t *testing.T) {
	c, d := newTestContext(t)

	empty := c.AdoptBuffer(None)
	for i := 0; i < 3; i++ {
		assert.NoError(t, empty.Delete())
		assert.NoError(t, c.AdoptVertexArray(None).Delete())
		assert.NoError(t, (&Buffer[float32]{}).Delete())
		assert.NoError(t, (&Shader[caps.Vertex]{}).Delete())
		assert.NoError(t, (&Program{}).Delete())
	}
	assert.Zero(t, d.CallCount())
}

func TestDeleteIsIdempotent(t *testing.T) {
	c, d := newTestContext(t)
	bufs, err := c.GenBuffers(1)
	require.NoError(t, err)
	name := bufs[0].Name()

	require.NoError(t, bufs[0].Delete())
	require.NoError(t, bufs[0].Delete())
	assert.Equal(t, 1, d.CallCount("DeleteBuffers"))
	assert.Equal(t, None, bufs[0].Name())
	assert.False(t, d.IsBuffer(uint32(name)))
}

func TestDisownTransfersOwnership(t *testing.T) {
	c, d := newTestContext(t)
	bufs, err := c.GenBuffers(1)
	require.NoError(t, err)

	n := bufs[0].Disown()
	require.NoError(t, bufs[0].Delete())
	assert.Zero(t, d.CallCount("DeleteBuffers"))
	assert.True(t, d.IsBuffer(uint32(n)))
	assert.ErrorIs(t, bufs[0].Bind(caps.ArrayBuffer), ErrDeleted)

	owner := c.AdoptBuffer(n)
	require.NoError(t, owner.Delete())
	assert.False(t, d.IsBuffer(uint32(n)))
}

func TestBindNilUnbinds(t *testing.T) {
	c, d := newTestContext(t)
	bufs, err := c.GenBuffers(1)
	require.NoError(t, err)
	require.NoError(t, bufs[0].Bind(caps.UniformBuffer))
	assert.Equal(t, bufs[0].Name(), c.Binding(caps.UniformBuffer))

	require.NoError(t, c.BindBuffer(caps.UniformBuffer, nil))
	assert.Equal(t, None, c.Binding(caps.UniformBuffer))
	last, _ := d.LastCall()
	assert.Equal(t, "GetError", last.Name)
	calls := d.Calls()
	assert.Equal(t, fakedriver.Call{Name: "BindBuffer", Args: []any{uint32(driver.UNIFORM_BUFFER), uint32(0)}}, calls[len(calls)-2])

	got, err := c.QueryBinding(caps.UniformBuffer)
	require.NoError(t, err)
	assert.Equal(t, None, got)
}

func TestBindDeletedHandle(t *testing.T) {
	c, d := newTestContext(t)
	bufs, err := c.GenBuffers(1)
	require.NoError(t, err)
	require.NoError(t, bufs[0].Delete())
	d.Reset()

	assert.ErrorIs(t, c.BindBuffer(caps.ArrayBuffer, bufs[0]), ErrDeleted)
	vas, err := c.GenVertexArrays(1)
	require.NoError(t, err)
	require.NoError(t, vas[0].Delete())
	d.Reset()
	assert.ErrorIs(t, vas[0].Bind(), ErrDeleted)
	assert.Zero(t, d.CallCount())
}

func TestDeletingBoundObjectsRevertsSlots(t *testing.T) {
	c, _ := newTestContext(t)
	bufs, err := c.GenBuffers(2)
	require.NoError(t, err)
	require.NoError(t, bufs[0].Bind(caps.ArrayBuffer))
	require.NoError(t, bufs[0].Bind(caps.CopyReadBuffer))
	require.NoError(t, bufs[1].Bind(caps.ElementArrayBuffer))

	require.NoError(t, bufs[0].Delete())
	assert.Equal(t, None, c.Binding(caps.ArrayBuffer))
	assert.Equal(t, None, c.Binding(caps.CopyReadBuffer))
	q, err := c.QueryBinding(caps.ArrayBuffer)
	require.NoError(t, err)
	assert.Equal(t, None, q)

	require.NoError(t, bufs[1].Delete())
	assert.Equal(t, None, c.Binding(caps.ElementArrayBuffer))

	va, err := c.GenVertexArray()
	require.NoError(t, err)
	require.NoError(t, va.Bind())
	require.NoError(t, va.Delete())
	assert.Equal(t, None, c.BoundVertexArray())
	q, err = c.QueryVertexArray()
	require.NoError(t, err)
	assert.Equal(t, None, q)
}

func TestElementBindingFollowsVertexArray(t *testing.T) {
	c, _ := newTestContext(t)
	vas, err := c.GenVertexArrays(2)
	require.NoError(t, err)
	idx, err := NewIndexBuffer[uint16](c, caps.StaticDraw)
	require.NoError(t, err)

	require.NoError(t, vas[0].Bind())
	require.NoError(t, idx.Bind())
	require.NoError(t, vas[1].Bind())
	assert.Equal(t, None, c.Binding(caps.ElementArrayBuffer))
	assert.False(t, idx.Bound())

	require.NoError(t, vas[0].Bind())
	assert.Equal(t, idx.Name(), c.Binding(caps.ElementArrayBuffer))
	q, err := c.QueryBinding(caps.ElementArrayBuffer)
	require.NoError(t, err)
	assert.Equal(t, idx.Name(), q)
}

func TestFailedBindLeavesSlot(t *testing.T) {
	c, d := newTestContext(t)
	bufs, err := c.GenBuffers(2)
	require.NoError(t, err)
	require.NoError(t, bufs[0].Bind(caps.ArrayBuffer))

	d.Inject(driver.INVALID_OPERATION)
	err = bufs[1].Bind(caps.ArrayBuffer)
	assert.ErrorIs(t, err, glcheck.InvalidOperation)
	assert.Equal(t, bufs[0].Name(), c.Binding(caps.ArrayBuffer))
}

func TestSync(t *testing.T) {
	c, d := newTestContext(t)
	ids := make([]uint32, 2)
	d.GenBuffers(2, &ids[0])
	var va uint32
	d.GenVertexArrays(1, &va)
	d.BindVertexArray(va)
	d.BindBuffer(driver.ARRAY_BUFFER, ids[0])
	d.BindBuffer(driver.ELEMENT_ARRAY_BUFFER, ids[1])

	require.NoError(t, c.Sync())
	assert.Equal(t, Name(ids[0]), c.Binding(caps.ArrayBuffer))
	assert.Equal(t, Name(ids[1]), c.Binding(caps.ElementArrayBuffer))
	assert.Equal(t, Name(va), c.BoundVertexArray())
	assert.Equal(t, None, c.CurrentProgram())
}

func TestLoggerReceivesDriverErrors(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	d := fakedriver.New()
	c := New(d, WithLogger(l))

	_, err := c.GenBuffers(1)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "op=GenBuffers")

	d.Inject(driver.INVALID_VALUE)
	require.Error(t, c.ClearColor(0, 0, 0, 1))
	assert.Contains(t, buf.String(), "driver error")
	assert.Contains(t, buf.String(), "INVALID_VALUE")
}

func TestPackageLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(nil)

	c, d := newTestContext(t)
	d.Inject(driver.INVALID_ENUM)
	require.Error(t, c.Clear(ColorBufferBit))
	assert.Contains(t, buf.String(), "INVALID_ENUM")

	SetLogger(nil)
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}
