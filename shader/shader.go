// Package shader holds the built-in GLSL sources of the smoke test.
package shader

// ────────────────────────────────── Desktop GL ──────────────────────────────────

const vertexShaderSourceGL = `#version 410 core
layout (location = 0) in vec2 in_vert;
uniform vec2 u_offset;
out vec2 frag_uv;
void main() {
    frag_uv = in_vert * 0.5 + 0.5;
    gl_Position = vec4(in_vert * 0.5 + u_offset, 0.0, 1.0);
}
`

// Flat color modulated by a horizontal ramp so a stuck upload is visible.
const colorFragmentShaderSourceGL = `#version 410 core
in  vec2 frag_uv;
out vec4 fragColor;
uniform vec4  u_color;
uniform float u_ramp[2];   // start and end brightness
void main() {
    float k = mix(u_ramp[0], u_ramp[1], frag_uv.x);
    fragColor = vec4(u_color.rgb * k, u_color.a);
}
`

// ──────────────────────────────────── GLES ──────────────────────────────────────

const vertexShaderSourceGLES = `#version 300 es
layout (location = 0) in vec2 in_vert;
uniform vec2 u_offset;
out vec2 frag_uv;
void main() {
    frag_uv = in_vert * 0.5 + 0.5;
    gl_Position = vec4(in_vert * 0.5 + u_offset, 0.0, 1.0);
}
`

const colorFragmentShaderSourceGLES = `#version 300 es
precision highp float;

in  vec2 frag_uv;
out vec4 fragColor;
uniform vec4  u_color;
uniform float u_ramp[2];
void main() {
    float k = mix(u_ramp[0], u_ramp[1], frag_uv.x);
    fragColor = vec4(u_color.rgb * k, u_color.a);
}
`

// Quad is the smoke-test geometry: four corners as (x, y) pairs.
var Quad = []float32{
	-1, -1,
	1, -1,
	1, 1,
	-1, 1,
}

// QuadIndices draws Quad as two triangles.
var QuadIndices = []uint16{0, 1, 2, 2, 3, 0}

func GenerateVertexShader(isGLES bool) string {
	if isGLES {
		return vertexShaderSourceGLES
	}
	return vertexShaderSourceGL
}

func GetColorFragmentShader(isGLES bool) string {
	if isGLES {
		return colorFragmentShaderSourceGLES
	}
	return colorFragmentShaderSourceGL
}
