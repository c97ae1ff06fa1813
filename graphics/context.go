package graphics

// Context is a GL context together with the surface it draws to.
type Context interface {
	// MakeCurrent binds the context to the calling OS thread.
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	EndFrame()
	GetFramebufferSize() (int, int)
	// Time is the number of seconds since the context was created.
	Time() float64
	IsGLES() bool
}
