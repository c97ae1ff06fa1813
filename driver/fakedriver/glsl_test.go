package fakedriver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richinsley/glguard/driver"
)

const validFragment = `#version 330 core
// solid color
out vec4 color;
uniform vec4 u_color;
uniform float u_weights[4], u_gain;
layout(std140) uniform Block { mat4 mvp; } blk;

struct Light {
	vec3 pos;
	float intensity;
};

float shade(float x);

float shade(float x) {
	if (x > 0.5)
		return 1.0;
	else
		return x;
}

void main() {
	/* a block
	   comment */
	float acc = 0.0;
	for (int i = 0; i < 4; i++) {
		acc += u_weights[i];
	}
	switch (int(acc)) {
	case 0:
		acc = 1.0;
		break;
	default:
		break;
	}
	color = mix(u_color,
	            vec4(acc) * u_gain, acc > 1.0 ? 0.5 : 0.25);
}
`

func TestSyntaxAcceptsValidShader(t *testing.T) {
	res := Syntax{}.Compile(driver.FRAGMENT_SHADER, validFragment)
	require.True(t, res.OK, res.Log)
	assert.Empty(t, res.Log)
	assert.Equal(t, []string{"shade", "main"}, res.Functions)
	assert.Equal(t, []UniformDecl{
		{Name: "u_color", Type: "vec4", Size: 1},
		{Name: "u_weights", Type: "float", Size: 4},
		{Name: "u_gain", Type: "float", Size: 1},
	}, res.Uniforms)
}

func TestSyntaxRejects(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "missing semicolon before brace",
			src:  "out vec4 color;\nvoid main() {\n\tcolor = vec4(1.0)\n}\n",
			want: "0:3(",
		},
		{
			name: "missing semicolon after declaration",
			src:  "out vec4 color\nuniform vec4 u_color;\nvoid main() { color = u_color; }\n",
			want: "0:2(",
		},
		{
			name: "missing semicolon before function",
			src:  "uniform vec4 u_color\nvoid main() {}\n",
			want: "error",
		},
		{
			name: "missing semicolon between statements",
			src:  "void main() {\n\tfloat a = 1.0\n\tfloat b = a;\n}\n",
			want: "0:2(",
		},
		{
			name: "unbalanced paren",
			src:  "void main() { float a = (1.0; }\n",
			want: "error",
		},
		{
			name: "unclosed body",
			src:  "void main() {\n",
			want: "unexpected end of file",
		},
		{
			name: "trailing declaration",
			src:  "void main() {}\nuniform vec4 c",
			want: "unexpected end of file",
		},
		{
			name: "stray character",
			src:  "void main() { float a = 1.0 @ 2.0; }",
			want: "unexpected character '@'",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Syntax{}.Compile(driver.FRAGMENT_SHADER, tt.src)
			assert.False(t, res.OK)
			assert.Contains(t, res.Log, tt.want)
		})
	}
}

func TestSyntaxIgnoresDirectives(t *testing.T) {
	src := "#version 450 core\n#define N 4 \\\n  + 1\nlayout(local_size_x = 8) in;\nvoid main() {}\n"
	res := Syntax{}.Compile(driver.COMPUTE_SHADER, src)
	require.True(t, res.OK, res.Log)
	assert.Equal(t, []string{"main"}, res.Functions)
}
