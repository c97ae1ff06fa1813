package fakedriver

import (
	"fmt"
	"slices"
	"strings"

	"github.com/richinsley/glguard/driver"
)

type shader struct {
	stage         uint32
	source        string
	compiled      bool
	log           string
	result        Result
	deletePending bool
	attached      int
}

type uniform struct {
	decl     UniformDecl
	typ      glslType
	location int32
}

type program struct {
	shaders       []uint32
	linked        bool
	links         int
	log           string
	uniforms      []uniform
	values        map[int32][]float64
	deletePending bool
}

var stages = map[uint32]string{
	driver.VERTEX_SHADER:          "vertex",
	driver.FRAGMENT_SHADER:        "fragment",
	driver.GEOMETRY_SHADER:        "geometry",
	driver.TESS_CONTROL_SHADER:    "tessellation control",
	driver.TESS_EVALUATION_SHADER: "tessellation evaluation",
	driver.COMPUTE_SHADER:         "compute",
}

// lookupShader resolves a shader name, raising INVALID_OPERATION for a
// program name and INVALID_VALUE for anything else.
func (d *Driver) lookupShader(name uint32) *shader {
	if s := d.shaders[name]; s != nil {
		return s
	}
	if d.programs[name] != nil {
		d.setError(driver.INVALID_OPERATION)
	} else {
		d.setError(driver.INVALID_VALUE)
	}
	return nil
}

func (d *Driver) lookupProgram(name uint32) *program {
	if p := d.programs[name]; p != nil {
		return p
	}
	if d.shaders[name] != nil {
		d.setError(driver.INVALID_OPERATION)
	} else {
		d.setError(driver.INVALID_VALUE)
	}
	return nil
}

func (d *Driver) CreateShader(xtype uint32) uint32 {
	d.record("CreateShader", xtype)
	if _, ok := stages[xtype]; !ok {
		d.setError(driver.INVALID_ENUM)
		return 0
	}
	d.nextObject++
	d.shaders[d.nextObject] = &shader{stage: xtype}
	return d.nextObject
}

func (d *Driver) DeleteShader(name uint32) {
	d.record("DeleteShader", name)
	if name == 0 {
		return
	}
	s := d.lookupShader(name)
	if s == nil {
		return
	}
	if s.attached > 0 {
		s.deletePending = true
		return
	}
	delete(d.shaders, name)
}

// IsShader reports whether name is a shader object that has not been
// released. A shader flagged for deletion while attached still counts.
func (d *Driver) IsShader(name uint32) bool { return name != 0 && d.shaders[name] != nil }

func (d *Driver) ShaderSource(name uint32, source string) {
	d.record("ShaderSource", name, len(source))
	if s := d.lookupShader(name); s != nil {
		s.source = source
	}
}

// ShaderSourceOf returns the source last given to shader name.
func (d *Driver) ShaderSourceOf(name uint32) (string, bool) {
	s := d.shaders[name]
	if s == nil {
		return "", false
	}
	return s.source, true
}

func (d *Driver) CompileShader(name uint32) {
	d.record("CompileShader", name)
	s := d.lookupShader(name)
	if s == nil {
		return
	}
	s.result = d.compiler.Compile(s.stage, s.source)
	s.compiled = s.result.OK
	s.log = s.result.Log
}

func (d *Driver) GetShaderiv(name uint32, pname uint32, params *int32) {
	d.record("GetShaderiv", name, pname)
	s := d.lookupShader(name)
	if s == nil {
		return
	}
	switch pname {
	case driver.SHADER_TYPE:
		*params = int32(s.stage)
	case driver.DELETE_STATUS:
		*params = boolParam(s.deletePending)
	case driver.COMPILE_STATUS:
		*params = boolParam(s.compiled)
	case driver.INFO_LOG_LENGTH:
		*params = logLength(s.log)
	case driver.SHADER_SOURCE_LENGTH:
		*params = logLength(s.source)
	default:
		d.setError(driver.INVALID_ENUM)
	}
}

func (d *Driver) GetShaderInfoLog(name uint32, bufSize int32) string {
	d.record("GetShaderInfoLog", name, bufSize)
	if bufSize < 0 {
		d.setError(driver.INVALID_VALUE)
		return ""
	}
	s := d.lookupShader(name)
	if s == nil {
		return ""
	}
	return truncateLog(s.log, bufSize)
}

func (d *Driver) CreateProgram() uint32 {
	d.record("CreateProgram")
	d.nextObject++
	d.programs[d.nextObject] = &program{values: make(map[int32][]float64)}
	return d.nextObject
}

func (d *Driver) DeleteProgram(name uint32) {
	d.record("DeleteProgram", name)
	if name == 0 {
		return
	}
	p := d.lookupProgram(name)
	if p == nil {
		return
	}
	if d.current == name {
		p.deletePending = true
		return
	}
	d.releaseProgram(name, p)
}

func (d *Driver) releaseProgram(name uint32, p *program) {
	for _, sh := range p.shaders {
		d.detach(sh)
	}
	delete(d.programs, name)
}

// IsProgram reports whether name is a program object that has not been
// released.
func (d *Driver) IsProgram(name uint32) bool { return name != 0 && d.programs[name] != nil }

func (d *Driver) detach(name uint32) {
	s := d.shaders[name]
	if s == nil {
		return
	}
	s.attached--
	if s.attached == 0 && s.deletePending {
		delete(d.shaders, name)
	}
}

func (d *Driver) AttachShader(prog, sh uint32) {
	d.record("AttachShader", prog, sh)
	p := d.lookupProgram(prog)
	if p == nil {
		return
	}
	s := d.lookupShader(sh)
	if s == nil {
		return
	}
	if slices.Contains(p.shaders, sh) {
		d.setError(driver.INVALID_OPERATION)
		return
	}
	p.shaders = append(p.shaders, sh)
	s.attached++
}

func (d *Driver) DetachShader(prog, sh uint32) {
	d.record("DetachShader", prog, sh)
	p := d.lookupProgram(prog)
	if p == nil {
		return
	}
	if d.lookupShader(sh) == nil {
		return
	}
	i := slices.Index(p.shaders, sh)
	if i < 0 {
		d.setError(driver.INVALID_OPERATION)
		return
	}
	p.shaders = slices.Delete(p.shaders, i, i+1)
	d.detach(sh)
}

// AttachedShaders returns the shaders attached to prog.
func (d *Driver) AttachedShaders(prog uint32) []uint32 {
	if p := d.programs[prog]; p != nil {
		return slices.Clone(p.shaders)
	}
	return nil
}

func (d *Driver) LinkProgram(name uint32) {
	d.record("LinkProgram", name)
	p := d.lookupProgram(name)
	if p == nil {
		return
	}
	uniforms, log := d.link(p)
	p.links++
	p.log = log
	p.linked = log == ""
	if !p.linked {
		return
	}
	p.uniforms = uniforms
	p.values = make(map[int32][]float64)
}

// link validates the attached shaders and lays out the uniform locations.
// An empty log means success.
func (d *Driver) link(p *program) ([]uniform, string) {
	var errs []string
	if len(p.shaders) == 0 {
		return nil, "error: no shaders attached to the program\n"
	}
	present := make(map[uint32]bool)
	hasMain := make(map[uint32]bool)
	decls := make(map[string]uniform)
	for _, sh := range p.shaders {
		s := d.shaders[sh]
		if !s.compiled {
			errs = append(errs, fmt.Sprintf("error: linking with uncompiled %s shader", stages[s.stage]))
			continue
		}
		present[s.stage] = true
		if slices.Contains(s.result.Functions, "main") {
			hasMain[s.stage] = true
		}
		for _, u := range s.result.Uniforms {
			prev, ok := decls[u.Name]
			if ok && (prev.decl.Type != u.Type || prev.decl.Size != u.Size) {
				errs = append(errs, fmt.Sprintf("error: uniform `%s' declared as type `%s' and type `%s'", u.Name, prev.decl.Type, u.Type))
				continue
			}
			decls[u.Name] = uniform{decl: u, typ: typeOf(u.Type)}
		}
	}
	if len(errs) > 0 {
		return nil, strings.Join(errs, "\n") + "\n"
	}
	for stage := range present {
		if !hasMain[stage] {
			errs = append(errs, fmt.Sprintf("error: %s shader lacks `main'", stages[stage]))
		}
	}
	switch {
	case present[driver.COMPUTE_SHADER] && len(present) > 1:
		errs = append(errs, "error: compute shader may not be linked with other stages")
	case present[driver.COMPUTE_SHADER]:
	case !present[driver.VERTEX_SHADER]:
		errs = append(errs, "error: program lacks a vertex shader")
	case !present[driver.FRAGMENT_SHADER]:
		errs = append(errs, "error: program lacks a fragment shader")
	}
	if len(errs) > 0 {
		slices.Sort(errs)
		return nil, strings.Join(errs, "\n") + "\n"
	}

	names := make([]string, 0, len(decls))
	for n := range decls {
		names = append(names, n)
	}
	slices.Sort(names)
	out := make([]uniform, 0, len(names))
	var loc int32
	for _, n := range names {
		u := decls[n]
		u.location = loc
		loc += int32(max(u.decl.Size, 1))
		out = append(out, u)
	}
	return out, ""
}

func (d *Driver) GetProgramiv(name uint32, pname uint32, params *int32) {
	d.record("GetProgramiv", name, pname)
	p := d.lookupProgram(name)
	if p == nil {
		return
	}
	switch pname {
	case driver.DELETE_STATUS:
		*params = boolParam(p.deletePending)
	case driver.LINK_STATUS, driver.VALIDATE_STATUS:
		*params = boolParam(p.linked)
	case driver.INFO_LOG_LENGTH:
		*params = logLength(p.log)
	case driver.ATTACHED_SHADERS:
		*params = int32(len(p.shaders))
	case driver.ACTIVE_UNIFORMS:
		*params = int32(len(p.uniforms))
	case driver.ACTIVE_UNIFORM_MAX_LENGTH:
		var n int32
		for _, u := range p.uniforms {
			n = max(n, int32(len(u.decl.Name)+1))
		}
		*params = n
	case driver.ACTIVE_ATTRIBUTES, driver.ACTIVE_ATTRIBUTE_MAX_LENGTH:
		*params = 0
	default:
		d.setError(driver.INVALID_ENUM)
	}
}

func (d *Driver) GetProgramInfoLog(name uint32, bufSize int32) string {
	d.record("GetProgramInfoLog", name, bufSize)
	if bufSize < 0 {
		d.setError(driver.INVALID_VALUE)
		return ""
	}
	p := d.lookupProgram(name)
	if p == nil {
		return ""
	}
	return truncateLog(p.log, bufSize)
}

// LinkCount returns how many times prog has been linked.
func (d *Driver) LinkCount(prog uint32) int {
	if p := d.programs[prog]; p != nil {
		return p.links
	}
	return 0
}

func (d *Driver) UseProgram(name uint32) {
	d.record("UseProgram", name)
	if name != 0 {
		p := d.lookupProgram(name)
		if p == nil {
			return
		}
		if !p.linked {
			d.setError(driver.INVALID_OPERATION)
			return
		}
	}
	prev := d.current
	d.current = name
	if prev != 0 && prev != name {
		if p := d.programs[prev]; p != nil && p.deletePending {
			d.releaseProgram(prev, p)
		}
	}
}

func (d *Driver) GetUniformLocation(prog uint32, name string) int32 {
	d.record("GetUniformLocation", prog, name)
	p := d.lookupProgram(prog)
	if p == nil {
		return -1
	}
	if !p.linked {
		d.setError(driver.INVALID_OPERATION)
		return -1
	}
	base, index := name, 0
	if i := strings.IndexByte(name, '['); i > 0 && strings.HasSuffix(name, "]") {
		if _, err := fmt.Sscanf(name[i:], "[%d]", &index); err != nil || index < 0 {
			return -1
		}
		base = name[:i]
	}
	for _, u := range p.uniforms {
		if u.decl.Name != base {
			continue
		}
		if index >= max(u.decl.Size, 1) {
			return -1
		}
		return u.location + int32(index)
	}
	return -1
}

// UniformValue returns the components last stored at location of prog.
func (d *Driver) UniformValue(prog uint32, location int32) ([]float64, bool) {
	p := d.programs[prog]
	if p == nil {
		return nil, false
	}
	v, ok := p.values[location]
	return slices.Clone(v), ok
}

func boolParam(b bool) int32 {
	if b {
		return driver.TRUE
	}
	return driver.FALSE
}

// logLength counts the terminating NUL like the driver does; an empty log
// reports zero.
func logLength(s string) int32 {
	if s == "" {
		return 0
	}
	return int32(len(s) + 1)
}

func truncateLog(s string, bufSize int32) string {
	if bufSize == 0 {
		return ""
	}
	if int32(len(s)) > bufSize-1 {
		return s[:bufSize-1]
	}
	return s
}
