// Package gldriver implements driver.Driver on top of the go-gl 4.1 core
// bindings.
package gldriver

import (
	"fmt"
	"sync"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"github.com/richinsley/glguard/driver"
)

var (
	glInitOnce sync.Once
	glInitErr  error
)

// Driver forwards every call to the current GL context.
type Driver struct{}

var _ driver.Driver = (*Driver)(nil)

// New loads the GL entry points. A context must be current on the calling
// thread.
func New() (*Driver, error) {
	glInitOnce.Do(func() {
		glInitErr = gl.Init()
	})
	if glInitErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", glInitErr)
	}
	return &Driver{}, nil
}

// Version returns the GL_VERSION string of the current context.
func (*Driver) Version() string { return gl.GoStr(gl.GetString(gl.VERSION)) }

// Renderer returns the GL_RENDERER string of the current context.
func (*Driver) Renderer() string { return gl.GoStr(gl.GetString(gl.RENDERER)) }

func (*Driver) GetError() uint32                      { return gl.GetError() }
func (*Driver) GetIntegerv(pname uint32, data *int32) { gl.GetIntegerv(pname, data) }

func (*Driver) GenVertexArrays(n int32, arrays *uint32)    { gl.GenVertexArrays(n, arrays) }
func (*Driver) DeleteVertexArrays(n int32, arrays *uint32) { gl.DeleteVertexArrays(n, arrays) }
func (*Driver) BindVertexArray(array uint32)               { gl.BindVertexArray(array) }

func (*Driver) GenBuffers(n int32, buffers *uint32)    { gl.GenBuffers(n, buffers) }
func (*Driver) DeleteBuffers(n int32, buffers *uint32) { gl.DeleteBuffers(n, buffers) }
func (*Driver) BindBuffer(target, buffer uint32)       { gl.BindBuffer(target, buffer) }

func (*Driver) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	gl.BufferData(target, size, data, usage)
}

func (*Driver) BufferSubData(target uint32, offset, size int, data unsafe.Pointer) {
	gl.BufferSubData(target, offset, size, data)
}

func (*Driver) EnableVertexAttribArray(index uint32)  { gl.EnableVertexAttribArray(index) }
func (*Driver) DisableVertexAttribArray(index uint32) { gl.DisableVertexAttribArray(index) }

func (*Driver) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
	gl.VertexAttribPointerWithOffset(index, size, xtype, normalized, stride, offset)
}

func (*Driver) CreateShader(xtype uint32) uint32 { return gl.CreateShader(xtype) }
func (*Driver) DeleteShader(shader uint32)       { gl.DeleteShader(shader) }

func (*Driver) ShaderSource(shader uint32, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
}

func (*Driver) CompileShader(shader uint32) { gl.CompileShader(shader) }

func (*Driver) GetShaderiv(shader uint32, pname uint32, params *int32) {
	gl.GetShaderiv(shader, pname, params)
}

func (*Driver) GetShaderInfoLog(shader uint32, bufSize int32) string {
	return readLog(bufSize, func(length *int32, buf *uint8) {
		gl.GetShaderInfoLog(shader, bufSize, length, buf)
	})
}

func (*Driver) CreateProgram() uint32               { return gl.CreateProgram() }
func (*Driver) DeleteProgram(program uint32)        { gl.DeleteProgram(program) }
func (*Driver) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }
func (*Driver) DetachShader(program, shader uint32) { gl.DetachShader(program, shader) }
func (*Driver) LinkProgram(program uint32)          { gl.LinkProgram(program) }
func (*Driver) UseProgram(program uint32)           { gl.UseProgram(program) }

func (*Driver) GetProgramiv(program uint32, pname uint32, params *int32) {
	gl.GetProgramiv(program, pname, params)
}

func (*Driver) GetProgramInfoLog(program uint32, bufSize int32) string {
	return readLog(bufSize, func(length *int32, buf *uint8) {
		gl.GetProgramInfoLog(program, bufSize, length, buf)
	})
}

func (*Driver) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

// readLog fills a bufSize buffer and trims it to the length the driver
// wrote.
func readLog(bufSize int32, read func(length *int32, buf *uint8)) string {
	if bufSize <= 0 {
		return ""
	}
	buf := make([]uint8, bufSize+1)
	var n int32
	read(&n, &buf[0])
	return string(buf[:max(0, min(n, bufSize))])
}

func (*Driver) Uniform1f(l int32, v0 float32)             { gl.Uniform1f(l, v0) }
func (*Driver) Uniform2f(l int32, v0, v1 float32)         { gl.Uniform2f(l, v0, v1) }
func (*Driver) Uniform3f(l int32, v0, v1, v2 float32)     { gl.Uniform3f(l, v0, v1, v2) }
func (*Driver) Uniform4f(l int32, v0, v1, v2, v3 float32) { gl.Uniform4f(l, v0, v1, v2, v3) }
func (*Driver) Uniform1i(l int32, v0 int32)               { gl.Uniform1i(l, v0) }
func (*Driver) Uniform2i(l int32, v0, v1 int32)           { gl.Uniform2i(l, v0, v1) }
func (*Driver) Uniform3i(l int32, v0, v1, v2 int32)       { gl.Uniform3i(l, v0, v1, v2) }
func (*Driver) Uniform4i(l int32, v0, v1, v2, v3 int32)   { gl.Uniform4i(l, v0, v1, v2, v3) }
func (*Driver) Uniform1ui(l int32, v0 uint32)             { gl.Uniform1ui(l, v0) }
func (*Driver) Uniform2ui(l int32, v0, v1 uint32)         { gl.Uniform2ui(l, v0, v1) }
func (*Driver) Uniform3ui(l int32, v0, v1, v2 uint32)     { gl.Uniform3ui(l, v0, v1, v2) }
func (*Driver) Uniform4ui(l int32, v0, v1, v2, v3 uint32) { gl.Uniform4ui(l, v0, v1, v2, v3) }

func (*Driver) Uniform1fv(l, count int32, v *float32) { gl.Uniform1fv(l, count, v) }
func (*Driver) Uniform2fv(l, count int32, v *float32) { gl.Uniform2fv(l, count, v) }
func (*Driver) Uniform3fv(l, count int32, v *float32) { gl.Uniform3fv(l, count, v) }
func (*Driver) Uniform4fv(l, count int32, v *float32) { gl.Uniform4fv(l, count, v) }
func (*Driver) Uniform1iv(l, count int32, v *int32)   { gl.Uniform1iv(l, count, v) }
func (*Driver) Uniform2iv(l, count int32, v *int32)   { gl.Uniform2iv(l, count, v) }
func (*Driver) Uniform3iv(l, count int32, v *int32)   { gl.Uniform3iv(l, count, v) }
func (*Driver) Uniform4iv(l, count int32, v *int32)   { gl.Uniform4iv(l, count, v) }
func (*Driver) Uniform1uiv(l, count int32, v *uint32) { gl.Uniform1uiv(l, count, v) }
func (*Driver) Uniform2uiv(l, count int32, v *uint32) { gl.Uniform2uiv(l, count, v) }
func (*Driver) Uniform3uiv(l, count int32, v *uint32) { gl.Uniform3uiv(l, count, v) }
func (*Driver) Uniform4uiv(l, count int32, v *uint32) { gl.Uniform4uiv(l, count, v) }

func (*Driver) UniformMatrix2fv(l, count int32, t bool, v *float32) {
	gl.UniformMatrix2fv(l, count, t, v)
}

func (*Driver) UniformMatrix3fv(l, count int32, t bool, v *float32) {
	gl.UniformMatrix3fv(l, count, t, v)
}

func (*Driver) UniformMatrix4fv(l, count int32, t bool, v *float32) {
	gl.UniformMatrix4fv(l, count, t, v)
}

func (*Driver) UniformMatrix2x3fv(l, count int32, t bool, v *float32) {
	gl.UniformMatrix2x3fv(l, count, t, v)
}

func (*Driver) UniformMatrix3x2fv(l, count int32, t bool, v *float32) {
	gl.UniformMatrix3x2fv(l, count, t, v)
}

func (*Driver) UniformMatrix2x4fv(l, count int32, t bool, v *float32) {
	gl.UniformMatrix2x4fv(l, count, t, v)
}

func (*Driver) UniformMatrix4x2fv(l, count int32, t bool, v *float32) {
	gl.UniformMatrix4x2fv(l, count, t, v)
}

func (*Driver) UniformMatrix3x4fv(l, count int32, t bool, v *float32) {
	gl.UniformMatrix3x4fv(l, count, t, v)
}

func (*Driver) UniformMatrix4x3fv(l, count int32, t bool, v *float32) {
	gl.UniformMatrix4x3fv(l, count, t, v)
}

func (*Driver) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }
func (*Driver) Clear(mask uint32)             { gl.Clear(mask) }

func (*Driver) DrawArrays(mode uint32, first, count int32) { gl.DrawArrays(mode, first, count) }

func (*Driver) DrawElements(mode uint32, count int32, xtype uint32, offset uintptr) {
	gl.DrawElementsWithOffset(mode, count, xtype, offset)
}
