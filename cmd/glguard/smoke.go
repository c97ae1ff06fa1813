package main

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/urfave/cli/v2"

	"github.com/richinsley/glguard/caps"
	"github.com/richinsley/glguard/config"
	"github.com/richinsley/glguard/driver/gldriver"
	"github.com/richinsley/glguard/glfwcontext"
	"github.com/richinsley/glguard/graphics"
	"github.com/richinsley/glguard/headless"
	"github.com/richinsley/glguard/safegl"
	"github.com/richinsley/glguard/shader"
)

var smokeCommand = &cli.Command{
	Name:  "smoke",
	Usage: "draw the built-in quad through a real GL context and report driver errors",
	Flags: []cli.Flag{
		&cli.IntFlag{Name: "frames", Usage: "number of frames to draw, overrides smoke.frames"},
		&cli.BoolFlag{Name: "headless", Usage: "render into an EGL pbuffer instead of a window"},
	},
	Action: smoke,
}

func smoke(ctx *cli.Context) error {
	cfg := configFrom(ctx)
	if ctx.IsSet("frames") {
		cfg.Smoke.Frames = ctx.Int("frames")
	}
	if ctx.Bool("headless") {
		cfg.Context.Backend = config.BackendHeadless
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	surface, closeSurface, err := openContext(cfg.Context)
	if err != nil {
		return err
	}
	defer closeSurface()

	drv, err := gldriver.New()
	if err != nil {
		return err
	}
	slog.Info("GL context ready", "backend", cfg.Context.Backend, "version", drv.Version(), "renderer", drv.Renderer())

	if err := runSmoke(safegl.New(drv), surface, cfg.Smoke); err != nil {
		return fmt.Errorf("smoke test failed: %w", err)
	}
	slog.Info("smoke test passed", "frames", cfg.Smoke.Frames)
	return nil
}

// openContext creates the configured context, makes it current and returns
// a function releasing it.
func openContext(cfg config.ContextConfig) (graphics.Context, func(), error) {
	if cfg.Backend == config.BackendHeadless {
		h, err := headless.NewHeadless(cfg)
		if err != nil {
			return nil, nil, err
		}
		return h, h.Shutdown, nil
	}

	if err := glfwcontext.InitGraphics(); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize glfw: %w", err)
	}
	w, err := glfwcontext.New(cfg, "glguard smoke")
	if err != nil {
		glfwcontext.TerminateGraphics()
		return nil, nil, fmt.Errorf("failed to create window: %w", err)
	}
	w.MakeCurrent()
	return w, func() {
		w.Shutdown()
		glfwcontext.TerminateGraphics()
	}, nil
}

// quad holds the GL objects of the smoke scene.
type quad struct {
	va       *safegl.VertexArray
	vertices *safegl.Buffer[float32]
	indices  *safegl.Buffer[uint16]
	program  *safegl.LinkedProgram
	offset   safegl.UniformLocation
}

func newQuad(c *safegl.Context, gles bool) (_ *quad, err error) {
	q := &quad{}
	defer func() {
		if err != nil {
			q.delete()
		}
	}()

	if q.va, err = c.GenVertexArray(); err != nil {
		return nil, err
	}
	if err = q.va.Bind(); err != nil {
		return nil, err
	}

	if q.vertices, err = safegl.NewVertexBuffer[float32](c, caps.StaticDraw); err != nil {
		return nil, err
	}
	if err = q.vertices.Bind(); err != nil {
		return nil, err
	}
	if err = q.vertices.Upload(shader.Quad); err != nil {
		return nil, err
	}
	if err = q.vertices.AttribPointer(0, 2, false); err != nil {
		return nil, err
	}
	if err = c.EnableVertexAttribArray(0); err != nil {
		return nil, err
	}

	if q.indices, err = safegl.NewIndexBuffer[uint16](c, caps.StaticDraw); err != nil {
		return nil, err
	}
	if err = q.indices.Bind(); err != nil {
		return nil, err
	}
	if err = q.indices.Upload(shader.QuadIndices); err != nil {
		return nil, err
	}

	vs, err := safegl.NewShader[caps.Vertex](c, shader.GenerateVertexShader(gles))
	if vs != nil {
		defer vs.Delete()
	}
	if err != nil {
		return nil, err
	}
	fs, err := safegl.NewShader[caps.Fragment](c, shader.GetColorFragmentShader(gles))
	if fs != nil {
		defer fs.Delete()
	}
	if err != nil {
		return nil, err
	}
	if q.program, err = c.NewProgram(vs, fs); err != nil {
		return nil, err
	}
	if err = q.program.Use(); err != nil {
		return nil, err
	}

	color, err := q.uniform("u_color")
	if err != nil {
		return nil, err
	}
	if err = c.Uniform4f(color, 0.9, 0.4, 0.1, 1); err != nil {
		return nil, err
	}
	ramp, err := q.uniform("u_ramp")
	if err != nil {
		return nil, err
	}
	if err = c.Uniform1fv(ramp, []float32{0.25, 1}); err != nil {
		return nil, err
	}
	if q.offset, err = q.uniform("u_offset"); err != nil {
		return nil, err
	}
	return q, nil
}

// uniform looks up a uniform the built-in shaders are known to declare.
func (q *quad) uniform(name string) (safegl.UniformLocation, error) {
	loc, err := q.program.UniformLocation(name)
	if err != nil {
		return loc, err
	}
	if !loc.Found() {
		return loc, fmt.Errorf("uniform %s is not active in the linked program", name)
	}
	return loc, nil
}

func (q *quad) draw(c *safegl.Context, t float64) error {
	x := float32(0.25 * math.Sin(t))
	if err := c.Uniform2f(q.offset, x, 0); err != nil {
		return err
	}
	return safegl.DrawElements[uint16](c, safegl.Triangles, len(shader.QuadIndices), 0)
}

// delete releases everything newQuad created. Handles are safe to release
// twice, so it is also used on partial construction.
func (q *quad) delete() {
	var errs []error
	if q.program != nil {
		errs = append(errs, q.program.Program().Delete())
	}
	if q.indices != nil {
		errs = append(errs, q.indices.Delete())
	}
	if q.vertices != nil {
		errs = append(errs, q.vertices.Delete())
	}
	if q.va != nil {
		errs = append(errs, q.va.Delete())
	}
	for _, err := range errs {
		if err != nil {
			slog.Warn("failed to release smoke scene", "err", err)
		}
	}
}

// runSmoke draws cfg.Frames frames of the built-in quad. It stops early if
// the surface asks to close and fails on the first driver error.
func runSmoke(c *safegl.Context, surface graphics.Context, cfg config.SmokeConfig) error {
	q, err := newQuad(c, surface.IsGLES())
	if err != nil {
		return err
	}
	defer q.delete()

	if err := c.ClearColor(cfg.ClearColor[0], cfg.ClearColor[1], cfg.ClearColor[2], cfg.ClearColor[3]); err != nil {
		return err
	}
	for frame := 0; frame < cfg.Frames; frame++ {
		if surface.ShouldClose() {
			slog.Info("surface closed", "frame", frame)
			break
		}
		if err := c.Clear(safegl.ColorBufferBit); err != nil {
			return err
		}
		if err := q.draw(c, surface.Time()); err != nil {
			return fmt.Errorf("frame %d: %w", frame, err)
		}
		surface.EndFrame()
	}
	return c.Check()
}
