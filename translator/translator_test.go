package translator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richinsley/glguard/caps"
	"github.com/richinsley/glguard/driver"
	"github.com/richinsley/glguard/driver/fakedriver"
	"github.com/richinsley/glguard/safegl"
)

const (
	esVertex = `#version 300 es
in vec2 a_pos;
uniform vec2 u_offset;
void main() {
	gl_Position = vec4(a_pos + u_offset, 0.0, 1.0);
}
`
	esFragment = `#version 300 es
precision highp float;
uniform vec4 u_color;
out vec4 fragColor;
void main() {
	fragColor = u_color;
}
`
	esBroken = `#version 300 es
precision highp float;
out vec4 fragColor;
void main() {
	fragColor = u_undeclared;
}
`
)

func TestUnsupportedStages(t *testing.T) {
	c := &Compiler{}
	for _, k := range []caps.StageKind{caps.GeometryStage, caps.TessControlStage, caps.TessEvaluationStage, caps.ComputeStage} {
		_, err := c.Translate(k, "")
		assert.Error(t, err, k.String())
		res := c.Compile(k.Code(), "")
		assert.False(t, res.OK)
		assert.Contains(t, res.Log, "not supported")
	}

	res := c.Compile(0x1234, "")
	assert.False(t, res.OK)
	assert.Contains(t, res.Log, "unknown shader type")
}

func TestCompileThroughFakeDriver(t *testing.T) {
	if testing.Short() {
		t.Skip("starts the wasm translator")
	}
	comp, err := New(context.Background())
	require.NoError(t, err)

	d := fakedriver.New(fakedriver.WithCompiler(comp))
	c := safegl.New(d)

	vs, err := safegl.NewShader[caps.Vertex](c, esVertex)
	require.NoError(t, err)
	fs, err := safegl.NewShader[caps.Fragment](c, esFragment)
	require.NoError(t, err)
	lp, err := c.NewProgram(vs, fs)
	require.NoError(t, err)
	loc, err := lp.UniformLocation("u_color")
	require.NoError(t, err)
	assert.True(t, loc.Found())

	bad, err := safegl.NewShader[caps.Fragment](c, esBroken)
	var ce *safegl.CompileError
	require.ErrorAs(t, err, &ce)
	assert.NotEmpty(t, ce.Log)
	status, err := bad.Parameter(safegl.CompileStatus)
	require.NoError(t, err)
	assert.Equal(t, int32(driver.FALSE), status)

	tr, err := comp.Translate(caps.FragmentStage, esFragment)
	require.NoError(t, err)
	assert.NotEmpty(t, tr.Code)
	assert.Contains(t, tr.Names, "u_color")
}
