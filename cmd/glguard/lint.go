package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/richinsley/glguard/caps"
	"github.com/richinsley/glguard/driver/fakedriver"
	"github.com/richinsley/glguard/safegl"
	"github.com/richinsley/glguard/translator"
)

var lintCommand = &cli.Command{
	Name:      "lint",
	Usage:     "compile and link shader sources without a GL context",
	ArgsUsage: "[stage:]file...",
	Description: `Each argument names a shader file, optionally prefixed with its stage
(vertex, fragment, geometry, tess-control, tess-evaluation, compute).
Without a prefix the stage is taken from the file extension, e.g. quad.frag.
When every stage needed for a program is present the sources are also linked.`,
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "angle", Usage: "validate GLSL ES 3.00 sources with the ANGLE translator"},
		&cli.BoolFlag{Name: "no-link", Usage: "only compile"},
	},
	Action: lint,
}

// lintSource is one shader source named on the command line.
type lintSource struct {
	path   string
	kind   caps.StageKind
	source string
}

// parseLintArg splits "stage:file" or derives the stage from the extension.
func parseLintArg(arg string) (string, caps.StageKind, error) {
	if stage, path, ok := strings.Cut(arg, ":"); ok {
		k, err := caps.ParseStage(stage)
		if err == nil {
			return path, k, nil
		}
	}
	ext := strings.TrimPrefix(filepath.Ext(arg), ".")
	k, err := caps.ParseStage(ext)
	if err != nil {
		return "", 0, fmt.Errorf("%s: cannot tell the shader stage, use stage:file", arg)
	}
	return arg, k, nil
}

func lint(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return errors.New("lint: no shader files given")
	}
	sources := make([]lintSource, 0, ctx.NArg())
	for _, arg := range ctx.Args().Slice() {
		path, k, err := parseLintArg(arg)
		if err != nil {
			return err
		}
		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		sources = append(sources, lintSource{path: path, kind: k, source: string(src)})
	}

	var opts []fakedriver.Option
	if ctx.Bool("angle") {
		comp, err := translator.Default()
		if err != nil {
			return err
		}
		opts = append(opts, fakedriver.WithCompiler(comp))
	}
	c := safegl.New(fakedriver.New(opts...))
	return lintSources(ctx.App.Writer, c, sources, !ctx.Bool("no-link"))
}

// compileAs creates and compiles a shader of stage k.
func compileAs(c *safegl.Context, k caps.StageKind, source string) (safegl.AnyShader, error) {
	var (
		s   safegl.AnyShader
		err error
	)
	switch k {
	case caps.VertexStage:
		s, err = nilIfNone(safegl.NewShader[caps.Vertex](c, source))
	case caps.FragmentStage:
		s, err = nilIfNone(safegl.NewShader[caps.Fragment](c, source))
	case caps.GeometryStage:
		s, err = nilIfNone(safegl.NewShader[caps.Geometry](c, source))
	case caps.TessControlStage:
		s, err = nilIfNone(safegl.NewShader[caps.TessControl](c, source))
	case caps.TessEvaluationStage:
		s, err = nilIfNone(safegl.NewShader[caps.TessEvaluation](c, source))
	case caps.ComputeStage:
		s, err = nilIfNone(safegl.NewShader[caps.Compute](c, source))
	default:
		return nil, fmt.Errorf("unknown shader stage %s", k)
	}
	return s, err
}

// nilIfNone keeps a nil *Shader from turning into a non-nil AnyShader.
func nilIfNone[S caps.Stage](s *safegl.Shader[S], err error) (safegl.AnyShader, error) {
	if s == nil {
		return nil, err
	}
	return s, err
}

// lintSources compiles every source and, when link is set, links all that
// compiled into one program. Diagnostics are written to w; the returned
// error reports how many sources failed.
func lintSources(w io.Writer, c *safegl.Context, sources []lintSource, link bool) error {
	var (
		failed   int
		compiled []safegl.AnyShader
	)
	for _, src := range sources {
		s, err := compileAs(c, src.kind, src.source)
		var ce *safegl.CompileError
		switch {
		case errors.As(err, &ce):
			failed++
			fmt.Fprintf(w, "%s: %s shader failed to compile\n%s\n", src.path, src.kind, strings.TrimRight(ce.Log, "\n"))
		case err != nil:
			return fmt.Errorf("%s: %w", src.path, err)
		default:
			fmt.Fprintf(w, "%s: %s shader ok\n", src.path, src.kind)
			compiled = append(compiled, s)
		}
	}

	if link && failed == 0 && len(compiled) > 0 {
		lp, err := c.NewProgram(compiled...)
		var le *safegl.LinkError
		switch {
		case errors.As(err, &le):
			failed++
			fmt.Fprintf(w, "program failed to link\n%s\n", strings.TrimRight(le.Log, "\n"))
		case err != nil:
			return err
		default:
			n, err := lp.Program().Parameter(safegl.ActiveUniforms)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "program linked, %d active uniforms\n", n)
		}
	}

	if failed > 0 {
		return cli.Exit(fmt.Sprintf("lint: %d check(s) failed", failed), 1)
	}
	return nil
}
