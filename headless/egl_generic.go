//go:build !linux

package headless

import (
	"fmt"

	"github.com/richinsley/glguard/config"
	"github.com/richinsley/glguard/graphics"
)

func NewHeadless(cfg config.ContextConfig) (graphics.Context, error) {
	return nil, fmt.Errorf("egl headless rendering is not supported on this platform")
}
