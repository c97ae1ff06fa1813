package safegl

import (
	"fmt"

	"github.com/richinsley/glguard/caps"
	"github.com/richinsley/glguard/driver"
	"github.com/richinsley/glguard/glcheck"
)

// ShaderState is the position of a shader in its lifecycle.
type ShaderState uint8

const (
	ShaderCreated ShaderState = iota
	ShaderSourced
	ShaderCompiled
	ShaderCompileFailed
)

func (s ShaderState) String() string {
	switch s {
	case ShaderCreated:
		return "created"
	case ShaderSourced:
		return "sourced"
	case ShaderCompiled:
		return "compiled"
	case ShaderCompileFailed:
		return "compile-failed"
	}
	return fmt.Sprintf("ShaderState(%d)", uint8(s))
}

// ShaderParameter names a shader query.
type ShaderParameter uint32

const (
	ShaderType         ShaderParameter = driver.SHADER_TYPE
	ShaderDeleteStatus ShaderParameter = driver.DELETE_STATUS
	CompileStatus      ShaderParameter = driver.COMPILE_STATUS
	ShaderInfoLogLen   ShaderParameter = driver.INFO_LOG_LENGTH
	ShaderSourceLen    ShaderParameter = driver.SHADER_SOURCE_LENGTH
)

// AnyShader is a shader of any stage. Only *Shader implements it.
type AnyShader interface {
	Name() Name
	Kind() caps.StageKind
	shader() *object
}

// Shader owns one shader object of stage S.
type Shader[S caps.Stage] struct {
	object
	state ShaderState
}

var _ AnyShader = (*Shader[caps.Vertex])(nil)

// CreateShader creates an empty shader of stage S.
func CreateShader[S caps.Stage](c *Context) (*Shader[S], error) {
	kind := caps.KindFor[S]()
	name := Name(c.drv.CreateShader(kind.Code()))
	if err := c.check("CreateShader"); err != nil {
		return nil, err
	}
	if name == None {
		return nil, fmt.Errorf("safegl: CreateShader: driver returned no %s shader", kind)
	}
	c.logger().Debug("create shader", "stage", kind, "name", name)
	return &Shader[S]{object: object{c: c, name: name}}, nil
}

// NewShader creates a shader of stage S, sets its source and compiles it.
// A compile failure returns the shader together with a *CompileError so the
// log can still be inspected; other failures delete it.
func NewShader[S caps.Stage](c *Context, source string) (*Shader[S], error) {
	s, err := CreateShader[S](c)
	if err != nil {
		return nil, err
	}
	if err := s.SetSource(source); err != nil {
		_ = s.Delete()
		return nil, err
	}
	return s, s.Compile()
}

func (s *Shader[S]) Kind() caps.StageKind { return caps.KindFor[S]() }
func (s *Shader[S]) State() ShaderState   { return s.state }
func (s *Shader[S]) shader() *object      { return &s.object }

// SetSource replaces the shader's source. Language errors only surface in
// Compile.
func (s *Shader[S]) SetSource(source string) error {
	if err := s.live(); err != nil {
		return fmt.Errorf("safegl: ShaderSource: %w", err)
	}
	s.c.drv.ShaderSource(uint32(s.name), source)
	if err := s.c.check("ShaderSource"); err != nil {
		return err
	}
	s.state = ShaderSourced
	return nil
}

// Compile compiles the current source. On failure it returns a
// *CompileError carrying the info log; the shader stays valid.
func (s *Shader[S]) Compile() error {
	if err := s.live(); err != nil {
		return fmt.Errorf("safegl: CompileShader: %w", err)
	}
	drv := s.c.drv
	id := uint32(s.name)
	drv.CompileShader(id)

	var status int32
	drv.GetShaderiv(id, driver.COMPILE_STATUS, &status)
	var log string
	if status == driver.FALSE {
		log = s.infoLog()
	}
	errs := glcheck.Drain(drv)
	if status == driver.FALSE {
		s.state = ShaderCompileFailed
		err := &CompileError{Stage: s.Kind(), Log: log, Driver: errs}
		s.c.logger().Warn("shader compile failed", "stage", s.Kind(), "name", s.name, "log", log)
		return err
	}
	if len(errs) > 0 {
		s.c.logger().Warn("driver error", "op", "CompileShader", "errors", errs.Error())
		return fmt.Errorf("safegl: CompileShader: %w", errs)
	}
	s.state = ShaderCompiled
	return nil
}

// infoLog reads the log length, then the log.
func (s *Shader[S]) infoLog() string {
	var n int32
	s.c.drv.GetShaderiv(uint32(s.name), driver.INFO_LOG_LENGTH, &n)
	if n <= 0 {
		return ""
	}
	return s.c.drv.GetShaderInfoLog(uint32(s.name), n)
}

// InfoLog returns the compiler's log for the last compile.
func (s *Shader[S]) InfoLog() (string, error) {
	if err := s.live(); err != nil {
		return "", fmt.Errorf("safegl: GetShaderInfoLog: %w", err)
	}
	return Check(s.c, s.infoLog())
}

// Parameter queries one shader parameter.
func (s *Shader[S]) Parameter(p ShaderParameter) (int32, error) {
	if err := s.live(); err != nil {
		return 0, fmt.Errorf("safegl: GetShaderiv: %w", err)
	}
	var v int32
	s.c.drv.GetShaderiv(uint32(s.name), uint32(p), &v)
	return Check(s.c, v)
}

// Delete releases the shader. The driver keeps an attached shader alive
// until it is detached.
func (s *Shader[S]) Delete() error {
	return s.release("DeleteShader", func(n Name) {
		s.c.drv.DeleteShader(uint32(n))
	})
}
