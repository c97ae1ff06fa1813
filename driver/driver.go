// Package driver defines the fixed entry-point contract glguard calls through.
//
// Each method mirrors one C-ABI driver function: primitive integers, enums and
// pointers in, a value or out-parameter back, and no per-call error return.
// Faults are only observable through GetError, which returns and clears one
// pending code per call.
//
// Implementations must be used from the thread that owns the context.
package driver

import "unsafe"

// Driver is the entry-point set consumed by package safegl.
type Driver interface {
	GetError() uint32
	GetIntegerv(pname uint32, data *int32)

	GenVertexArrays(n int32, arrays *uint32)
	DeleteVertexArrays(n int32, arrays *uint32)
	BindVertexArray(array uint32)

	GenBuffers(n int32, buffers *uint32)
	DeleteBuffers(n int32, buffers *uint32)
	BindBuffer(target, buffer uint32)
	BufferData(target uint32, size int, data unsafe.Pointer, usage uint32)
	BufferSubData(target uint32, offset, size int, data unsafe.Pointer)

	EnableVertexAttribArray(index uint32)
	DisableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr)

	CreateShader(xtype uint32) uint32
	DeleteShader(shader uint32)
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	GetShaderiv(shader uint32, pname uint32, params *int32)
	GetShaderInfoLog(shader uint32, bufSize int32) string

	CreateProgram() uint32
	DeleteProgram(program uint32)
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	LinkProgram(program uint32)
	GetProgramiv(program uint32, pname uint32, params *int32)
	GetProgramInfoLog(program uint32, bufSize int32) string
	UseProgram(program uint32)
	GetUniformLocation(program uint32, name string) int32

	Uniform1f(location int32, v0 float32)
	Uniform2f(location int32, v0, v1 float32)
	Uniform3f(location int32, v0, v1, v2 float32)
	Uniform4f(location int32, v0, v1, v2, v3 float32)
	Uniform1i(location int32, v0 int32)
	Uniform2i(location int32, v0, v1 int32)
	Uniform3i(location int32, v0, v1, v2 int32)
	Uniform4i(location int32, v0, v1, v2, v3 int32)
	Uniform1ui(location int32, v0 uint32)
	Uniform2ui(location int32, v0, v1 uint32)
	Uniform3ui(location int32, v0, v1, v2 uint32)
	Uniform4ui(location int32, v0, v1, v2, v3 uint32)

	Uniform1fv(location, count int32, value *float32)
	Uniform2fv(location, count int32, value *float32)
	Uniform3fv(location, count int32, value *float32)
	Uniform4fv(location, count int32, value *float32)
	Uniform1iv(location, count int32, value *int32)
	Uniform2iv(location, count int32, value *int32)
	Uniform3iv(location, count int32, value *int32)
	Uniform4iv(location, count int32, value *int32)
	Uniform1uiv(location, count int32, value *uint32)
	Uniform2uiv(location, count int32, value *uint32)
	Uniform3uiv(location, count int32, value *uint32)
	Uniform4uiv(location, count int32, value *uint32)

	UniformMatrix2fv(location, count int32, transpose bool, value *float32)
	UniformMatrix3fv(location, count int32, transpose bool, value *float32)
	UniformMatrix4fv(location, count int32, transpose bool, value *float32)
	UniformMatrix2x3fv(location, count int32, transpose bool, value *float32)
	UniformMatrix3x2fv(location, count int32, transpose bool, value *float32)
	UniformMatrix2x4fv(location, count int32, transpose bool, value *float32)
	UniformMatrix4x2fv(location, count int32, transpose bool, value *float32)
	UniformMatrix3x4fv(location, count int32, transpose bool, value *float32)
	UniformMatrix4x3fv(location, count int32, transpose bool, value *float32)

	ClearColor(red, green, blue, alpha float32)
	Clear(mask uint32)
	DrawArrays(mode uint32, first, count int32)
	DrawElements(mode uint32, count int32, xtype uint32, offset uintptr)
}
