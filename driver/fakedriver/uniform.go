package fakedriver

import (
	"strings"
	"unsafe"

	"github.com/richinsley/glguard/driver"
)

// glslType describes how a uniform of a given GLSL type may be written.
type glslType struct {
	kind  byte // f, i, u, b, d, s (sampler/image); zero when unknown
	comps int
	cols  int
	rows  int
}

var glslTypes = map[string]glslType{
	"float": {'f', 1, 0, 0}, "vec2": {'f', 2, 0, 0}, "vec3": {'f', 3, 0, 0}, "vec4": {'f', 4, 0, 0},
	"int": {'i', 1, 0, 0}, "ivec2": {'i', 2, 0, 0}, "ivec3": {'i', 3, 0, 0}, "ivec4": {'i', 4, 0, 0},
	"uint": {'u', 1, 0, 0}, "uvec2": {'u', 2, 0, 0}, "uvec3": {'u', 3, 0, 0}, "uvec4": {'u', 4, 0, 0},
	"bool": {'b', 1, 0, 0}, "bvec2": {'b', 2, 0, 0}, "bvec3": {'b', 3, 0, 0}, "bvec4": {'b', 4, 0, 0},
	"double": {'d', 1, 0, 0}, "dvec2": {'d', 2, 0, 0}, "dvec3": {'d', 3, 0, 0}, "dvec4": {'d', 4, 0, 0},

	"mat2": {'f', 4, 2, 2}, "mat3": {'f', 9, 3, 3}, "mat4": {'f', 16, 4, 4},
	"mat2x2": {'f', 4, 2, 2}, "mat2x3": {'f', 6, 2, 3}, "mat2x4": {'f', 8, 2, 4},
	"mat3x2": {'f', 6, 3, 2}, "mat3x3": {'f', 9, 3, 3}, "mat3x4": {'f', 12, 3, 4},
	"mat4x2": {'f', 8, 4, 2}, "mat4x3": {'f', 12, 4, 3}, "mat4x4": {'f', 16, 4, 4},
}

func typeOf(name string) glslType {
	if t, ok := glslTypes[name]; ok {
		return t
	}
	for _, prefix := range []string{"sampler", "isampler", "usampler", "image", "iimage", "uimage"} {
		if strings.HasPrefix(name, prefix) {
			return glslType{kind: 's', comps: 1}
		}
	}
	return glslType{}
}

// isKnownType reports whether name is a built-in GLSL type usable in a
// declaration.
func isKnownType(name string) bool {
	return typeOf(name).kind != 0 || name == "void"
}

// accepts reports whether a setter writing comps components of kind (and
// a cols x rows matrix when cols > 0) matches t.
func (t glslType) accepts(kind byte, comps, cols, rows int) bool {
	if cols > 0 {
		return t.cols == cols && t.rows == rows
	}
	if t.cols > 0 {
		return false
	}
	switch {
	case t.kind == 's':
		return kind == 'i' && comps == 1
	case t.kind == 'b':
		return t.comps == comps && kind != 'd'
	default:
		return t.kind == kind && t.comps == comps
	}
}

// setUniform validates a write against the current program and stores the
// values. count is the number of array elements, each comps wide.
func (d *Driver) setUniform(location, count int32, kind byte, comps, cols, rows int, values []float64) {
	if count < 0 {
		d.setError(driver.INVALID_VALUE)
		return
	}
	p := d.programs[d.current]
	if p == nil {
		d.setError(driver.INVALID_OPERATION)
		return
	}
	if location == -1 {
		return
	}
	var target *uniform
	for i := range p.uniforms {
		u := &p.uniforms[i]
		if location >= u.location && location < u.location+int32(max(u.decl.Size, 1)) {
			target = u
			break
		}
	}
	if target == nil || !target.typ.accepts(kind, comps, cols, rows) {
		d.setError(driver.INVALID_OPERATION)
		return
	}
	size := int32(max(target.decl.Size, 1))
	if size == 1 && count > 1 {
		d.setError(driver.INVALID_OPERATION)
		return
	}
	// Elements past the end of an array are ignored.
	for i := int32(0); i < count && location+i < target.location+size; i++ {
		elem := values[int(i)*comps : int(i+1)*comps]
		if target.typ.kind == 'b' {
			elem = toBool(elem)
		}
		p.values[location+i] = append([]float64(nil), elem...)
	}
}

func toBool(v []float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		if x != 0 {
			out[i] = 1
		}
	}
	return out
}

func floats[T float32 | int32 | uint32](vs ...T) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = float64(v)
	}
	return out
}

func fromPtr[T float32 | int32 | uint32](p *T, n int) []float64 {
	if p == nil || n <= 0 {
		return nil
	}
	return floats(unsafe.Slice(p, n)...)
}

func (d *Driver) Uniform1f(location int32, v0 float32) {
	d.record("Uniform1f", location, v0)
	d.setUniform(location, 1, 'f', 1, 0, 0, floats(v0))
}

func (d *Driver) Uniform2f(location int32, v0, v1 float32) {
	d.record("Uniform2f", location, v0, v1)
	d.setUniform(location, 1, 'f', 2, 0, 0, floats(v0, v1))
}

func (d *Driver) Uniform3f(location int32, v0, v1, v2 float32) {
	d.record("Uniform3f", location, v0, v1, v2)
	d.setUniform(location, 1, 'f', 3, 0, 0, floats(v0, v1, v2))
}

func (d *Driver) Uniform4f(location int32, v0, v1, v2, v3 float32) {
	d.record("Uniform4f", location, v0, v1, v2, v3)
	d.setUniform(location, 1, 'f', 4, 0, 0, floats(v0, v1, v2, v3))
}

func (d *Driver) Uniform1i(location int32, v0 int32) {
	d.record("Uniform1i", location, v0)
	d.setUniform(location, 1, 'i', 1, 0, 0, floats(v0))
}

func (d *Driver) Uniform2i(location int32, v0, v1 int32) {
	d.record("Uniform2i", location, v0, v1)
	d.setUniform(location, 1, 'i', 2, 0, 0, floats(v0, v1))
}

func (d *Driver) Uniform3i(location int32, v0, v1, v2 int32) {
	d.record("Uniform3i", location, v0, v1, v2)
	d.setUniform(location, 1, 'i', 3, 0, 0, floats(v0, v1, v2))
}

func (d *Driver) Uniform4i(location int32, v0, v1, v2, v3 int32) {
	d.record("Uniform4i", location, v0, v1, v2, v3)
	d.setUniform(location, 1, 'i', 4, 0, 0, floats(v0, v1, v2, v3))
}

func (d *Driver) Uniform1ui(location int32, v0 uint32) {
	d.record("Uniform1ui", location, v0)
	d.setUniform(location, 1, 'u', 1, 0, 0, floats(v0))
}

func (d *Driver) Uniform2ui(location int32, v0, v1 uint32) {
	d.record("Uniform2ui", location, v0, v1)
	d.setUniform(location, 1, 'u', 2, 0, 0, floats(v0, v1))
}

func (d *Driver) Uniform3ui(location int32, v0, v1, v2 uint32) {
	d.record("Uniform3ui", location, v0, v1, v2)
	d.setUniform(location, 1, 'u', 3, 0, 0, floats(v0, v1, v2))
}

func (d *Driver) Uniform4ui(location int32, v0, v1, v2, v3 uint32) {
	d.record("Uniform4ui", location, v0, v1, v2, v3)
	d.setUniform(location, 1, 'u', 4, 0, 0, floats(v0, v1, v2, v3))
}

func (d *Driver) vector(location, count int32, kind byte, comps int, values []float64) {
	if count > 0 && len(values) < int(count)*comps {
		d.setError(driver.INVALID_VALUE)
		return
	}
	d.setUniform(location, count, kind, comps, 0, 0, values)
}

func (d *Driver) Uniform1fv(location, count int32, value *float32) {
	d.record("Uniform1fv", location, count)
	d.vector(location, count, 'f', 1, fromPtr(value, int(count)))
}

func (d *Driver) Uniform2fv(location, count int32, value *float32) {
	d.record("Uniform2fv", location, count)
	d.vector(location, count, 'f', 2, fromPtr(value, int(count)*2))
}

func (d *Driver) Uniform3fv(location, count int32, value *float32) {
	d.record("Uniform3fv", location, count)
	d.vector(location, count, 'f', 3, fromPtr(value, int(count)*3))
}

func (d *Driver) Uniform4fv(location, count int32, value *float32) {
	d.record("Uniform4fv", location, count)
	d.vector(location, count, 'f', 4, fromPtr(value, int(count)*4))
}

func (d *Driver) Uniform1iv(location, count int32, value *int32) {
	d.record("Uniform1iv", location, count)
	d.vector(location, count, 'i', 1, fromPtr(value, int(count)))
}

func (d *Driver) Uniform2iv(location, count int32, value *int32) {
	d.record("Uniform2iv", location, count)
	d.vector(location, count, 'i', 2, fromPtr(value, int(count)*2))
}

func (d *Driver) Uniform3iv(location, count int32, value *int32) {
	d.record("Uniform3iv", location, count)
	d.vector(location, count, 'i', 3, fromPtr(value, int(count)*3))
}

func (d *Driver) Uniform4iv(location, count int32, value *int32) {
	d.record("Uniform4iv", location, count)
	d.vector(location, count, 'i', 4, fromPtr(value, int(count)*4))
}

func (d *Driver) Uniform1uiv(location, count int32, value *uint32) {
	d.record("Uniform1uiv", location, count)
	d.vector(location, count, 'u', 1, fromPtr(value, int(count)))
}

func (d *Driver) Uniform2uiv(location, count int32, value *uint32) {
	d.record("Uniform2uiv", location, count)
	d.vector(location, count, 'u', 2, fromPtr(value, int(count)*2))
}

func (d *Driver) Uniform3uiv(location, count int32, value *uint32) {
	d.record("Uniform3uiv", location, count)
	d.vector(location, count, 'u', 3, fromPtr(value, int(count)*3))
}

func (d *Driver) Uniform4uiv(location, count int32, value *uint32) {
	d.record("Uniform4uiv", location, count)
	d.vector(location, count, 'u', 4, fromPtr(value, int(count)*4))
}

func (d *Driver) matrix(location, count int32, transpose bool, value *float32, cols, rows int) {
	n := cols * rows
	values := fromPtr(value, int(count)*n)
	if count > 0 && len(values) < int(count)*n {
		d.setError(driver.INVALID_VALUE)
		return
	}
	if transpose {
		for m := 0; m < int(count); m++ {
			copy(values[m*n:], transposed(values[m*n:(m+1)*n], cols, rows))
		}
	}
	d.setUniform(location, count, 'f', n, cols, rows, values)
}

// transposed converts one row-major cols x rows matrix to column-major.
func transposed(m []float64, cols, rows int) []float64 {
	out := make([]float64, len(m))
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			out[c*rows+r] = m[r*cols+c]
		}
	}
	return out
}

func (d *Driver) UniformMatrix2fv(location, count int32, transpose bool, value *float32) {
	d.record("UniformMatrix2fv", location, count, transpose)
	d.matrix(location, count, transpose, value, 2, 2)
}

func (d *Driver) UniformMatrix3fv(location, count int32, transpose bool, value *float32) {
	d.record("UniformMatrix3fv", location, count, transpose)
	d.matrix(location, count, transpose, value, 3, 3)
}

func (d *Driver) UniformMatrix4fv(location, count int32, transpose bool, value *float32) {
	d.record("UniformMatrix4fv", location, count, transpose)
	d.matrix(location, count, transpose, value, 4, 4)
}

func (d *Driver) UniformMatrix2x3fv(location, count int32, transpose bool, value *float32) {
	d.record("UniformMatrix2x3fv", location, count, transpose)
	d.matrix(location, count, transpose, value, 2, 3)
}

func (d *Driver) UniformMatrix3x2fv(location, count int32, transpose bool, value *float32) {
	d.record("UniformMatrix3x2fv", location, count, transpose)
	d.matrix(location, count, transpose, value, 3, 2)
}

func (d *Driver) UniformMatrix2x4fv(location, count int32, transpose bool, value *float32) {
	d.record("UniformMatrix2x4fv", location, count, transpose)
	d.matrix(location, count, transpose, value, 2, 4)
}

func (d *Driver) UniformMatrix4x2fv(location, count int32, transpose bool, value *float32) {
	d.record("UniformMatrix4x2fv", location, count, transpose)
	d.matrix(location, count, transpose, value, 4, 2)
}

func (d *Driver) UniformMatrix3x4fv(location, count int32, transpose bool, value *float32) {
	d.record("UniformMatrix3x4fv", location, count, transpose)
	d.matrix(location, count, transpose, value, 3, 4)
}

func (d *Driver) UniformMatrix4x3fv(location, count int32, transpose bool, value *float32) {
	d.record("UniformMatrix4x3fv", location, count, transpose)
	d.matrix(location, count, transpose, value, 4, 3)
}
