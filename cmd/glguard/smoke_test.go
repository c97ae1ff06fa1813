package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richinsley/glguard/config"
	"github.com/richinsley/glguard/driver"
	"github.com/richinsley/glguard/driver/fakedriver"
	"github.com/richinsley/glguard/graphics"
	"github.com/richinsley/glguard/safegl"
)

// stubSurface is a graphics.Context that closes after closeAfter frames.
type stubSurface struct {
	frames     int
	closeAfter int
}

var _ graphics.Context = (*stubSurface)(nil)

func (s *stubSurface) MakeCurrent()                   {}
func (s *stubSurface) Shutdown()                      {}
func (s *stubSurface) ShouldClose() bool              { return s.closeAfter > 0 && s.frames >= s.closeAfter }
func (s *stubSurface) EndFrame()                      { s.frames++ }
func (s *stubSurface) GetFramebufferSize() (int, int) { return 64, 64 }
func (s *stubSurface) Time() float64                  { return float64(s.frames) / 60 }
func (s *stubSurface) IsGLES() bool                   { return false }

func TestRunSmoke(t *testing.T) {
	d := fakedriver.New()
	c := safegl.New(d)
	surface := &stubSurface{}
	cfg := config.Default().Smoke
	cfg.Frames = 5

	require.NoError(t, runSmoke(c, surface, cfg))
	assert.Equal(t, 5, surface.frames)
	assert.Equal(t, cfg.ClearColor, d.ClearColorValue())
	assert.Len(t, d.Clears(), 5)

	draws := d.Draws()
	require.Len(t, draws, 5)
	for _, dr := range draws {
		assert.True(t, dr.Indexed)
		assert.Equal(t, uint32(driver.TRIANGLES), dr.Mode)
		assert.Equal(t, uint32(driver.UNSIGNED_SHORT), dr.Type)
		assert.Equal(t, int32(6), dr.Count)
	}

	// Everything the scene created is released again.
	assert.Equal(t, d.CallCount("GenBuffers"), d.CallCount("DeleteBuffers"))
	assert.Equal(t, 1, d.CallCount("DeleteProgram"))
	assert.Equal(t, 2, d.CallCount("DeleteShader"))
	assert.Empty(t, d.Pending())
}

func TestRunSmokeStopsWhenClosed(t *testing.T) {
	d := fakedriver.New()
	surface := &stubSurface{closeAfter: 2}
	cfg := config.Default().Smoke

	require.NoError(t, runSmoke(safegl.New(d), surface, cfg))
	assert.Equal(t, 2, surface.frames)
	assert.Len(t, d.Draws(), 2)
}

func TestRunSmokeReportsDriverErrors(t *testing.T) {
	d := fakedriver.New()
	surface := &stubSurface{}
	cfg := config.Default().Smoke
	cfg.Frames = 1
	d.Inject(driver.OUT_OF_MEMORY)

	err := runSmoke(safegl.New(d), surface, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OUT_OF_MEMORY")
}
