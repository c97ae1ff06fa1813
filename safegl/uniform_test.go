package safegl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richinsley/glguard/glcheck"
)

func TestUniformUnknownNameIsNotAnError(t *testing.T) {
	c, d := newTestContext(t)
	lp := linkTestProgram(t, c)

	loc, err := lp.UniformLocation("u_missing")
	require.NoError(t, err)
	assert.Equal(t, int32(-1), loc.Value())
	assert.False(t, loc.Found())
	assert.Empty(t, d.Pending())

	// Writes to -1 are silently ignored by the driver.
	assert.NoError(t, c.Uniform1f(loc, 3))
}

func TestUniformScalarSetters(t *testing.T) {
	c, d := newTestContext(t)
	lp := linkTestProgram(t, c)
	prog := uint32(lp.Name())

	color, err := lp.UniformLocation("u_color")
	require.NoError(t, err)
	require.True(t, color.Found())
	require.NoError(t, c.Uniform4f(color, 0.5, 0.25, 0, 1))
	v, ok := d.UniformValue(prog, color.Value())
	require.True(t, ok)
	assert.Equal(t, []float64{0.5, 0.25, 0, 1}, v)

	mode, err := lp.UniformLocation("u_mode")
	require.NoError(t, err)
	require.NoError(t, c.Uniform1i(mode, -3))
	v, _ = d.UniformValue(prog, mode.Value())
	assert.Equal(t, []float64{-3}, v)

	count, err := lp.UniformLocation("u_count")
	require.NoError(t, err)
	require.NoError(t, c.Uniform1ui(count, 9))
	v, _ = d.UniformValue(prog, count.Value())
	assert.Equal(t, []float64{9}, v)
}

func TestUniformTypeMismatchIsDriverError(t *testing.T) {
	c, _ := newTestContext(t)
	lp := linkTestProgram(t, c)
	color, err := lp.UniformLocation("u_color")
	require.NoError(t, err)

	err = c.Uniform3f(color, 1, 2, 3)
	assert.ErrorIs(t, err, glcheck.InvalidOperation)
	assert.NoError(t, c.Check())
}

func TestUniformVectorArray(t *testing.T) {
	c, d := newTestContext(t)
	lp := linkTestProgram(t, c)
	prog := uint32(lp.Name())

	palette, err := lp.UniformLocation("u_palette")
	require.NoError(t, err)
	require.NoError(t, c.Uniform4fv(palette, []float32{1, 0, 0, 1, 0, 1, 0, 1}))

	first, _ := d.UniformValue(prog, palette.Value())
	second, _ := d.UniformValue(prog, palette.Value()+1)
	assert.Equal(t, []float64{1, 0, 0, 1}, first)
	assert.Equal(t, []float64{0, 1, 0, 1}, second)

	elem, err := lp.UniformLocation("u_palette[1]")
	require.NoError(t, err)
	assert.Equal(t, palette.Value()+1, elem.Value())
}

func TestUniformComponentMismatch(t *testing.T) {
	c, d := newTestContext(t)
	lp := linkTestProgram(t, c)
	color, err := lp.UniformLocation("u_color")
	require.NoError(t, err)
	normal, err := lp.UniformLocation("u_normal")
	require.NoError(t, err)
	mode, err := lp.UniformLocation("u_mode")
	require.NoError(t, err)
	d.Reset()

	assert.ErrorIs(t, c.Uniform4fv(color, make([]float32, 10)), ErrComponentMismatch)
	assert.ErrorIs(t, c.Uniform4fv(color, nil), ErrComponentMismatch)
	assert.ErrorIs(t, c.Uniform2iv(mode, []int32{1, 2, 3}), ErrComponentMismatch)
	assert.ErrorIs(t, c.Uniform3uiv(mode, []uint32{1}), ErrComponentMismatch)
	assert.ErrorIs(t, c.UniformMatrix3fv(normal, false, make([]float32, 8)), ErrComponentMismatch)
	assert.ErrorIs(t, c.UniformMatrix4x3fv(normal, false, make([]float32, 13)), ErrComponentMismatch)
	assert.Zero(t, d.CallCount())

	// Shape is checked before the location.
	assert.ErrorIs(t, c.Uniform4fv(UniformLocation{}, make([]float32, 10)), ErrComponentMismatch)
}

func TestUniformMatrix(t *testing.T) {
	c, d := newTestContext(t)
	lp := linkTestProgram(t, c)
	prog := uint32(lp.Name())

	mvp, err := lp.UniformLocation("u_mvp")
	require.NoError(t, err)
	m := make([]float32, 16)
	for i := range m {
		m[i] = float32(i)
	}
	require.NoError(t, c.UniformMatrix4fv(mvp, false, m))
	v, _ := d.UniformValue(prog, mvp.Value())
	require.Len(t, v, 16)
	assert.Equal(t, float64(1), v[1])

	require.NoError(t, c.UniformMatrix4fv(mvp, true, m))
	v, _ = d.UniformValue(prog, mvp.Value())
	assert.Equal(t, float64(4), v[1])
	assert.Equal(t, float64(1), v[4])

	normal, err := lp.UniformLocation("u_normal")
	require.NoError(t, err)
	assert.ErrorIs(t, c.UniformMatrix4fv(normal, false, m), glcheck.InvalidOperation)
	assert.NoError(t, c.UniformMatrix3fv(normal, false, m[:9]))
}

func TestUniformRequiresCurrentProgram(t *testing.T) {
	c, d := newTestContext(t)
	lp := linkTestProgram(t, c)
	color, err := lp.UniformLocation("u_color")
	require.NoError(t, err)

	require.NoError(t, c.UseProgram(nil))
	d.Reset()
	assert.ErrorIs(t, c.Uniform4f(color, 1, 1, 1, 1), ErrProgramNotCurrent)
	assert.ErrorIs(t, c.Uniform4fv(color, []float32{1, 1, 1, 1}), ErrProgramNotCurrent)
	assert.Zero(t, d.CallCount())

	assert.ErrorIs(t, c.Uniform1f(UniformLocation{}, 1), ErrStaleLocation)
}
