package caps

import (
	"fmt"

	"github.com/richinsley/glguard/driver"
)

// StageKind names a programmable pipeline stage.
type StageKind uint8

const (
	VertexStage StageKind = iota
	FragmentStage
	GeometryStage
	TessControlStage
	TessEvaluationStage
	ComputeStage
	stageCount
)

var stageInfo = [stageCount]struct {
	name string
	code uint32
}{
	VertexStage:         {"vertex", driver.VERTEX_SHADER},
	FragmentStage:       {"fragment", driver.FRAGMENT_SHADER},
	GeometryStage:       {"geometry", driver.GEOMETRY_SHADER},
	TessControlStage:    {"tess-control", driver.TESS_CONTROL_SHADER},
	TessEvaluationStage: {"tess-evaluation", driver.TESS_EVALUATION_SHADER},
	ComputeStage:        {"compute", driver.COMPUTE_SHADER},
}

func (k StageKind) Valid() bool { return k < stageCount }

// Code returns the driver shader-type enum.
func (k StageKind) Code() uint32 {
	if !k.Valid() {
		return 0
	}
	return stageInfo[k].code
}

func (k StageKind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("StageKind(%d)", uint8(k))
	}
	return stageInfo[k].name
}

// ParseStage maps a stage name ("vertex", "frag", ...) to its kind.
func ParseStage(s string) (StageKind, error) {
	switch s {
	case "vertex", "vert", "vs":
		return VertexStage, nil
	case "fragment", "frag", "fs":
		return FragmentStage, nil
	case "geometry", "geom", "gs":
		return GeometryStage, nil
	case "tess-control", "tesc":
		return TessControlStage, nil
	case "tess-evaluation", "tese":
		return TessEvaluationStage, nil
	case "compute", "comp", "cs":
		return ComputeStage, nil
	}
	return 0, fmt.Errorf("caps: unknown shader stage %q", s)
}

// KindOf maps a driver shader-type enum back to its kind.
func KindOf(code uint32) (StageKind, bool) {
	for k := StageKind(0); k < stageCount; k++ {
		if stageInfo[k].code == code {
			return k, true
		}
	}
	return 0, false
}

// Stage is the compile-time tag carried by a shader handle. Only the marker
// types in this package implement it.
type Stage interface {
	Kind() StageKind
	sealedStage()
}

type (
	Vertex         struct{}
	Fragment       struct{}
	Geometry       struct{}
	TessControl    struct{}
	TessEvaluation struct{}
	Compute        struct{}
)

func (Vertex) Kind() StageKind         { return VertexStage }
func (Fragment) Kind() StageKind       { return FragmentStage }
func (Geometry) Kind() StageKind       { return GeometryStage }
func (TessControl) Kind() StageKind    { return TessControlStage }
func (TessEvaluation) Kind() StageKind { return TessEvaluationStage }
func (Compute) Kind() StageKind        { return ComputeStage }

func (Vertex) sealedStage()         {}
func (Fragment) sealedStage()       {}
func (Geometry) sealedStage()       {}
func (TessControl) sealedStage()    {}
func (TessEvaluation) sealedStage() {}
func (Compute) sealedStage()        {}

// KindFor returns the stage kind of marker S.
func KindFor[S Stage]() StageKind {
	var s S
	return s.Kind()
}
