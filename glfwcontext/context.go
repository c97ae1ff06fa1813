package glfwcontext

import (
	"log/slog"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"

	"github.com/richinsley/glguard/config"
	"github.com/richinsley/glguard/graphics"
)

// Context is a GLFW window with a 4.1 core profile context.
type Context struct {
	window *glfw.Window
	start  float64
}

var _ graphics.Context = (*Context)(nil)

// New creates a window as described by cfg. InitGraphics must have been
// called on the main thread.
func New(cfg config.ContextConfig, title string) (*Context, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	if cfg.BitDepth > 8 {
		glfw.WindowHint(glfw.RedBits, 16)
		glfw.WindowHint(glfw.GreenBits, 16)
		glfw.WindowHint(glfw.BlueBits, 16)
	}

	if cfg.Visible {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, title, nil, nil)
	if err != nil {
		return nil, err
	}

	c := &Context{window: win, start: glfw.GetTime()}
	win.SetKeyCallback(c.glfwKeyCallback)
	return c, nil
}

// glfwKeyCallback closes the window on Escape.
func (c *Context) glfwKeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
	}
}

func (c *Context) IsGLES() bool {
	// The window hints above always request desktop GL.
	return false
}

// MakeCurrent makes the context current for the calling goroutine.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
}

func (c *Context) Shutdown() {
	glfw.DetachCurrentContext()
	c.window.Destroy()
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

func (c *Context) EndFrame() {
	c.window.SwapBuffers()
	glfw.PollEvents()
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

func (c *Context) Time() float64 {
	return glfw.GetTime() - c.start
}

// InitGraphics initializes GLFW. Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	slog.Debug("GLFW initialized", "version", glfw.GetVersionString())
	return nil
}

// TerminateGraphics shuts GLFW down. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	slog.Debug("GLFW terminated")
}
