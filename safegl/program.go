package safegl

import (
	"fmt"
	"slices"

	"github.com/richinsley/glguard/driver"
	"github.com/richinsley/glguard/glcheck"
)

// ProgramState is the outcome of the latest link.
type ProgramState uint8

const (
	ProgramCreated ProgramState = iota
	ProgramLinked
	ProgramLinkFailed
)

func (s ProgramState) String() string {
	switch s {
	case ProgramCreated:
		return "created"
	case ProgramLinked:
		return "linked"
	case ProgramLinkFailed:
		return "link-failed"
	}
	return fmt.Sprintf("ProgramState(%d)", uint8(s))
}

// ProgramParameter names a program query.
type ProgramParameter uint32

const (
	ProgramDeleteStatus   ProgramParameter = driver.DELETE_STATUS
	LinkStatus            ProgramParameter = driver.LINK_STATUS
	ValidateStatus        ProgramParameter = driver.VALIDATE_STATUS
	ProgramInfoLogLen     ProgramParameter = driver.INFO_LOG_LENGTH
	AttachedShaders       ProgramParameter = driver.ATTACHED_SHADERS
	ActiveUniforms        ProgramParameter = driver.ACTIVE_UNIFORMS
	ActiveUniformMaxLen   ProgramParameter = driver.ACTIVE_UNIFORM_MAX_LENGTH
	ActiveAttributes      ProgramParameter = driver.ACTIVE_ATTRIBUTES
	ActiveAttributeMaxLen ProgramParameter = driver.ACTIVE_ATTRIBUTE_MAX_LENGTH
)

// Program owns one program object.
type Program struct {
	object
	shaders []Name
	state   ProgramState
	// gen changes on every link attempt and on deletion. A LinkedProgram or
	// UniformLocation from an older generation is stale.
	gen uint64
}

// LinkedProgram is proof that the latest link of a program succeeded. It is
// the only value UseProgram accepts.
type LinkedProgram struct {
	p   *Program
	gen uint64
}

// CreateProgram creates an empty program.
func (c *Context) CreateProgram() (*Program, error) {
	name := Name(c.drv.CreateProgram())
	if err := c.check("CreateProgram"); err != nil {
		return nil, err
	}
	if name == None {
		return nil, fmt.Errorf("safegl: CreateProgram: driver returned no program")
	}
	c.logger().Debug("create program", "name", name)
	return &Program{object: object{c: c, name: name}}, nil
}

// NewProgram creates a program, attaches shaders and links it. On any
// failure the program is deleted and the error returned.
func (c *Context) NewProgram(shaders ...AnyShader) (*LinkedProgram, error) {
	p, err := c.CreateProgram()
	if err != nil {
		return nil, err
	}
	for _, s := range shaders {
		if err := p.Attach(s); err != nil {
			_ = p.Delete()
			return nil, err
		}
	}
	lp, err := p.Link()
	if err != nil {
		_ = p.Delete()
		return nil, err
	}
	return lp, nil
}

func (p *Program) State() ProgramState { return p.state }

// Shaders lists the attached shader names in attach order.
func (p *Program) Shaders() []Name { return slices.Clone(p.shaders) }

// Attach attaches s. Compile status is not checked; a failed shader makes
// the next Link fail.
func (p *Program) Attach(s AnyShader) error {
	if err := p.live(); err != nil {
		return fmt.Errorf("safegl: AttachShader: %w", err)
	}
	if err := s.shader().live(); err != nil {
		return fmt.Errorf("safegl: AttachShader: shader: %w", err)
	}
	p.c.drv.AttachShader(uint32(p.name), uint32(s.Name()))
	if err := p.c.check("AttachShader"); err != nil {
		return err
	}
	p.shaders = append(p.shaders, s.Name())
	return nil
}

// Detach detaches s.
func (p *Program) Detach(s AnyShader) error {
	if err := p.live(); err != nil {
		return fmt.Errorf("safegl: DetachShader: %w", err)
	}
	if err := s.shader().live(); err != nil {
		return fmt.Errorf("safegl: DetachShader: shader: %w", err)
	}
	p.c.drv.DetachShader(uint32(p.name), uint32(s.Name()))
	if err := p.c.check("DetachShader"); err != nil {
		return err
	}
	if i := slices.Index(p.shaders, s.Name()); i >= 0 {
		p.shaders = slices.Delete(p.shaders, i, i+1)
	}
	return nil
}

// Link links the attached shaders. Every earlier LinkedProgram and uniform
// location of p becomes stale, whether or not the link succeeds. On failure
// the error is a *LinkError carrying the info log.
func (p *Program) Link() (*LinkedProgram, error) {
	if err := p.live(); err != nil {
		return nil, fmt.Errorf("safegl: LinkProgram: %w", err)
	}
	drv := p.c.drv
	id := uint32(p.name)
	drv.LinkProgram(id)
	p.gen++

	var status int32
	drv.GetProgramiv(id, driver.LINK_STATUS, &status)
	var log string
	if status == driver.FALSE {
		log = p.infoLog()
	}
	errs := glcheck.Drain(drv)
	if status == driver.FALSE {
		p.state = ProgramLinkFailed
		p.c.logger().Warn("program link failed", "name", p.name, "log", log)
		return nil, &LinkError{Log: log, Driver: errs}
	}
	if len(errs) > 0 {
		p.state = ProgramLinkFailed
		p.c.logger().Warn("driver error", "op", "LinkProgram", "errors", errs.Error())
		return nil, fmt.Errorf("safegl: LinkProgram: %w", errs)
	}
	p.state = ProgramLinked
	p.c.logger().Debug("link program", "name", p.name)
	return &LinkedProgram{p: p, gen: p.gen}, nil
}

func (p *Program) infoLog() string {
	var n int32
	p.c.drv.GetProgramiv(uint32(p.name), driver.INFO_LOG_LENGTH, &n)
	if n <= 0 {
		return ""
	}
	return p.c.drv.GetProgramInfoLog(uint32(p.name), n)
}

// InfoLog returns the linker's log for the last link.
func (p *Program) InfoLog() (string, error) {
	if err := p.live(); err != nil {
		return "", fmt.Errorf("safegl: GetProgramInfoLog: %w", err)
	}
	return Check(p.c, p.infoLog())
}

// Parameter queries one program parameter.
func (p *Program) Parameter(param ProgramParameter) (int32, error) {
	if err := p.live(); err != nil {
		return 0, fmt.Errorf("safegl: GetProgramiv: %w", err)
	}
	var v int32
	p.c.drv.GetProgramiv(uint32(p.name), uint32(param), &v)
	return Check(p.c, v)
}

// Delete releases the program. A current program stays current in the
// driver until another is used, but its LinkedProgram values become stale.
func (p *Program) Delete() error {
	p.gen++
	p.shaders = nil
	return p.release("DeleteProgram", func(n Name) {
		p.c.drv.DeleteProgram(uint32(n))
	})
}

// Program returns the underlying program.
func (lp *LinkedProgram) Program() *Program { return lp.p }

// Name returns the program name.
func (lp *LinkedProgram) Name() Name { return lp.p.name }

func (lp *LinkedProgram) valid() error {
	if lp.p.name == None || lp.gen != lp.p.gen {
		return ErrStaleProgram
	}
	return nil
}

// Use makes the program current.
func (lp *LinkedProgram) Use() error { return lp.p.c.UseProgram(lp) }

// UniformLocation resolves a uniform by name. A name the program does not
// use resolves to a location whose Value is -1; that is not an error.
func (lp *LinkedProgram) UniformLocation(name string) (UniformLocation, error) {
	if err := lp.valid(); err != nil {
		return UniformLocation{loc: -1}, fmt.Errorf("safegl: GetUniformLocation: %w", err)
	}
	loc := lp.p.c.drv.GetUniformLocation(uint32(lp.p.name), name)
	if err := lp.p.c.check("GetUniformLocation"); err != nil {
		return UniformLocation{loc: -1}, err
	}
	return UniformLocation{loc: loc, p: lp.p, gen: lp.gen}, nil
}
