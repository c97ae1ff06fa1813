package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richinsley/glguard/caps"
	"github.com/richinsley/glguard/driver/fakedriver"
	"github.com/richinsley/glguard/safegl"
	"github.com/richinsley/glguard/shader"
)

func TestParseLintArg(t *testing.T) {
	tests := []struct {
		arg  string
		path string
		kind caps.StageKind
	}{
		{"vertex:quad.glsl", "quad.glsl", caps.VertexStage},
		{"frag:shaders/a.glsl", "shaders/a.glsl", caps.FragmentStage},
		{"quad.vert", "quad.vert", caps.VertexStage},
		{"dir/blur.comp", "dir/blur.comp", caps.ComputeStage},
		{"c:/shaders/x.frag", "c:/shaders/x.frag", caps.FragmentStage},
	}
	for _, tt := range tests {
		path, kind, err := parseLintArg(tt.arg)
		require.NoError(t, err, tt.arg)
		assert.Equal(t, tt.path, path, tt.arg)
		assert.Equal(t, tt.kind, kind, tt.arg)
	}

	_, _, err := parseLintArg("shader.glsl")
	assert.Error(t, err)
}

func TestLintBuiltinShaders(t *testing.T) {
	var out bytes.Buffer
	c := safegl.New(fakedriver.New())
	err := lintSources(&out, c, []lintSource{
		{path: "quad.vert", kind: caps.VertexStage, source: shader.GenerateVertexShader(false)},
		{path: "quad.frag", kind: caps.FragmentStage, source: shader.GetColorFragmentShader(false)},
	}, true)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "quad.vert: vertex shader ok")
	assert.Contains(t, out.String(), "quad.frag: fragment shader ok")
	assert.Contains(t, out.String(), "program linked, 3 active uniforms")
}

func TestLintReportsCompileLog(t *testing.T) {
	var out bytes.Buffer
	c := safegl.New(fakedriver.New())
	err := lintSources(&out, c, []lintSource{
		{path: "bad.frag", kind: caps.FragmentStage, source: "#version 410 core\nuniform vec4 u_color\nvoid main() {}\n"},
	}, true)
	require.Error(t, err)
	assert.Contains(t, out.String(), "bad.frag: fragment shader failed to compile")
	assert.Contains(t, out.String(), "error:")
	assert.NotContains(t, out.String(), "program")
}

func TestLintReportsLinkLog(t *testing.T) {
	var out bytes.Buffer
	c := safegl.New(fakedriver.New())
	err := lintSources(&out, c, []lintSource{
		{path: "quad.vert", kind: caps.VertexStage, source: shader.GenerateVertexShader(false)},
	}, true)
	require.Error(t, err)
	assert.Contains(t, out.String(), "program failed to link")

	out.Reset()
	err = lintSources(&out, c, []lintSource{
		{path: "quad.vert", kind: caps.VertexStage, source: shader.GenerateVertexShader(false)},
	}, false)
	assert.NoError(t, err)
}
