// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

// CompileDepth selects how much control flow the translator reconstructs.
type CompileDepth uint8

const (
	CompileDepthBruteForce CompileDepth = iota
	CompileDepthFlowStack
	CompileDepthNoFlowStack
	CompileDepthDecompileBackwards
	CompileDepthFullDecompile
)

// String returns the depth name.
func (d CompileDepth) String() string {
	switch d {
	case CompileDepthBruteForce:
		return "brute_force"
	case CompileDepthFlowStack:
		return "flow_stack"
	case CompileDepthNoFlowStack:
		return "no_flow_stack"
	case CompileDepthDecompileBackwards:
		return "decompile_backwards"
	default:
		return "full_decompile"
	}
}

// CompilerSettings configures a Translator.
type CompilerSettings struct {
	Depth                 CompileDepth
	DisableElseDerivation bool
}

// DefaultCompilerSettings returns settings for full control flow recovery.
func DefaultCompilerSettings() CompilerSettings {
	return CompilerSettings{Depth: CompileDepthFullDecompile}
}

// Translator converts guest instruction words into IR.
//
// code starts at the program header; mainOffset is the word index of the
// first instruction. Translators record every constant buffer word they rely
// on in usage.
type Translator interface {
	Translate(code []uint64, mainOffset uint32, settings CompilerSettings, usage *UsageRegistry) (*IR, error)
}

// TranslatorFunc adapts a function to the Translator interface.
type TranslatorFunc func(code []uint64, mainOffset uint32, settings CompilerSettings, usage *UsageRegistry) (*IR, error)

// Translate calls f.
func (f TranslatorFunc) Translate(code []uint64, mainOffset uint32, settings CompilerSettings, usage *UsageRegistry) (*IR, error) {
	return f(code, mainOffset, settings, usage)
}
