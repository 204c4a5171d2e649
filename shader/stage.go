// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import "fmt"

// Stage is a pipeline stage a translated program runs in.
type Stage uint8

const (
	StageVertex Stage = iota
	StageTessControl
	StageTessEval
	StageGeometry
	StageFragment
	StageCompute
)

// NumGraphicsStages is the number of graphics pipeline stages (every Stage
// except StageCompute).
const NumGraphicsStages = 5

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageTessControl:
		return "tess_control"
	case StageTessEval:
		return "tess_eval"
	case StageGeometry:
		return "geometry"
	case StageFragment:
		return "fragment"
	case StageCompute:
		return "compute"
	default:
		return fmt.Sprintf("Stage(%d)", uint8(s))
	}
}

// Flag returns the visibility bit for the stage.
func (s Stage) Flag() StageFlags {
	return StageFlags(1) << s
}

// StageFlags is a set of stages a resource binding is visible to.
type StageFlags uint32

const (
	FlagVertex      = StageFlags(1) << StageVertex
	FlagTessControl = StageFlags(1) << StageTessControl
	FlagTessEval    = StageFlags(1) << StageTessEval
	FlagGeometry    = StageFlags(1) << StageGeometry
	FlagFragment    = StageFlags(1) << StageFragment
	FlagCompute     = StageFlags(1) << StageCompute
)

// Has reports whether every stage in o is also in f.
func (f StageFlags) Has(o StageFlags) bool {
	return f&o == o
}

// Program is one of the six program slots of the 3D engine. Two of them,
// VertexA and VertexB, feed the same vertex stage.
type Program uint8

const (
	ProgramVertexA Program = iota
	ProgramVertexB
	ProgramTessControl
	ProgramTessEval
	ProgramGeometry
	ProgramFragment
)

// MaxProgram is the number of program slots.
const MaxProgram = 6

// Stage returns the pipeline stage a program slot feeds.
func (p Program) Stage() Stage {
	switch p {
	case ProgramVertexA, ProgramVertexB:
		return StageVertex
	case ProgramTessControl:
		return StageTessControl
	case ProgramTessEval:
		return StageTessEval
	case ProgramGeometry:
		return StageGeometry
	default:
		return StageFragment
	}
}

// String returns the program slot name.
func (p Program) String() string {
	switch p {
	case ProgramVertexA:
		return "vertex_a"
	case ProgramVertexB:
		return "vertex_b"
	case ProgramTessControl:
		return "tess_control"
	case ProgramTessEval:
		return "tess_eval"
	case ProgramGeometry:
		return "geometry"
	case ProgramFragment:
		return "fragment"
	default:
		return fmt.Sprintf("Program(%d)", uint8(p))
	}
}
