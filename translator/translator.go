// Package translator validates GLSL ES 3.00 sources with the ANGLE shader
// translator and plugs it into fakedriver as a shader compiler, so shaders
// can be checked without a GPU.
package translator

import (
	"context"
	"fmt"
	"strings"
	"sync"

	gst "github.com/richinsley/goshadertranslator"

	"github.com/richinsley/glguard/caps"
	"github.com/richinsley/glguard/driver/fakedriver"
)

// Translation is the output of one successful translation.
type Translation struct {
	Code string
	// Names maps each uniform and attribute name of the source to the name
	// it carries in Code.
	Names map[string]string
}

// Compiler runs sources through ANGLE. The underlying translator is not safe
// for concurrent use; Compiler serializes calls.
type Compiler struct {
	mu sync.Mutex
	tr *gst.ShaderTranslator
}

var _ fakedriver.Compiler = (*Compiler)(nil)

// New starts a translator instance producing desktop GLSL 4.10.
func New(ctx context.Context) (*Compiler, error) {
	tr, err := gst.NewShaderTranslator(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start shader translator: %w", err)
	}
	return &Compiler{tr: tr}, nil
}

var (
	defaultOnce     sync.Once
	defaultCompiler *Compiler
	defaultErr      error
)

// Default returns the process-wide Compiler, starting it on first use.
func Default() (*Compiler, error) {
	defaultOnce.Do(func() {
		defaultCompiler, defaultErr = New(context.Background())
	})
	return defaultCompiler, defaultErr
}

// stageName returns the translator's name for k. WebGL 2 has no geometry,
// tessellation or compute stages.
func stageName(k caps.StageKind) (string, bool) {
	switch k {
	case caps.VertexStage:
		return "vertex", true
	case caps.FragmentStage:
		return "fragment", true
	}
	return "", false
}

// Translate validates source as a WebGL 2 shader of stage k.
func (c *Compiler) Translate(k caps.StageKind, source string) (*Translation, error) {
	stage, ok := stageName(k)
	if !ok {
		return nil, fmt.Errorf("%s shaders are not supported by the translator", k)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	out, err := c.tr.TranslateShader(source, stage, gst.ShaderSpecWebGL2, gst.OutputFormatGLSL410)
	if err != nil {
		return nil, err
	}
	t := &Translation{Code: out.Code, Names: make(map[string]string, len(out.Variables))}
	for name, v := range out.Variables {
		t.Names[name] = v.MappedName
	}
	return t, nil
}

// Compile implements fakedriver.Compiler. ANGLE decides whether the source
// is valid; the declarations the fake linker needs are collected from the
// original source so uniform names stay unmapped.
func (c *Compiler) Compile(stage uint32, source string) fakedriver.Result {
	k, ok := caps.KindOf(stage)
	if !ok {
		return fakedriver.Result{Log: fmt.Sprintf("error: unknown shader type 0x%04x\n", stage)}
	}
	if _, err := c.Translate(k, source); err != nil {
		log := strings.TrimSpace(err.Error())
		if log == "" {
			log = "error: translation failed"
		}
		return fakedriver.Result{Log: log + "\n"}
	}
	decls := fakedriver.Syntax{}.Compile(stage, source)
	return fakedriver.Result{OK: true, Uniforms: decls.Uniforms, Functions: decls.Functions}
}
