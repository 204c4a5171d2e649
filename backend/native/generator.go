package native

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"slices"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
	"github.com/gogpu/naga/spirv"

	"github.com/gogpu/pipecache"
	"github.com/gogpu/pipecache/shader"
	"github.com/gogpu/pipecache/state"
)

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithSPIRVVersion selects the SPIR-V version to emit. Default: 1.3.
func WithSPIRVVersion(v spirv.Version) GeneratorOption {
	return func(g *Generator) { g.version = v }
}

// WithDebugInfo emits debug names into the SPIR-V output.
func WithDebugInfo(enabled bool) GeneratorOption {
	return func(g *Generator) { g.debug = enabled }
}

// WithValidation runs the naga IR validator before code generation.
func WithValidation(enabled bool) GeneratorOption {
	return func(g *Generator) { g.validate = enabled }
}

// Generator lowers translated programs to SPIR-V with naga.
type Generator struct {
	version  spirv.Version
	debug    bool
	validate bool
}

// NewGenerator returns a Generator emitting SPIR-V 1.3.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{version: spirv.Version1_3}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// SetLogger sets the package logger. pipecache.New calls it.
func (g *Generator) SetLogger(l *slog.Logger) { setLogger(l) }

// Generate implements pipecache.Generator.
//
// Resource bindings of the module are shifted by spec.BaseBinding so the
// stage occupies its own slice of bind group 0. Compute entry points take
// their workgroup size from spec. With spec.NdcMinusOneToOne the vertex
// position is remapped from [-w, w] to [0, w] depth. A fixed point size,
// non-float vertex attributes and explicit shared memory are rejected with
// ErrSpecializationUnsupported.
func (g *Generator) Generate(prog *pipecache.StageProgram, spec pipecache.Specialization) (*pipecache.BackendProgram, error) {
	if prog.Prelude != nil {
		return nil, ErrPreludeUnsupported
	}
	tir := prog.Unit.IR()
	if tir == nil || tir.Module == nil {
		return nil, ErrNilModule
	}

	if err := checkSpecialization(spec); err != nil {
		return nil, fmt.Errorf("%s stage: %w", prog.Stage, err)
	}
	module, err := specialize(tir.Module, prog.Stage, spec)
	if err != nil {
		return nil, fmt.Errorf("%s stage: %w", prog.Stage, err)
	}
	ep, ok := entryPoint(module, prog.Stage)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoEntryPoint, prog.Stage)
	}

	if g.validate {
		verrs, err := naga.Validate(module)
		if err != nil {
			return nil, fmt.Errorf("validate %s module: %w", prog.Stage, err)
		}
		if len(verrs) > 0 {
			return nil, fmt.Errorf("validate %s module: %w", prog.Stage, &verrs[0])
		}
	}

	out, err := naga.GenerateSPIRV(module, spirv.Options{
		Version: g.version,
		Debug:   g.debug,
	})
	if err != nil {
		return nil, err
	}

	slogger().Debug("native: spirv generated",
		"stage", prog.Stage,
		"entry", ep.Name,
		"bytes", len(out),
		"base_binding", spec.BaseBinding,
	)
	return &pipecache.BackendProgram{
		Stage:      prog.Stage,
		EntryPoint: ep.Name,
		Code:       words(out),
	}, nil
}

// checkSpecialization rejects fields that have no SPIR-V lowering here.
func checkSpecialization(spec pipecache.Specialization) error {
	if spec.PointSize != 0 {
		return fmt.Errorf("%w: fixed point size %g", ErrSpecializationUnsupported, spec.PointSize)
	}
	for i, t := range spec.AttributeTypes {
		if t != state.AttributeFloat {
			return fmt.Errorf("%w: vertex attribute %d has type %d", ErrSpecializationUnsupported, i, t)
		}
	}
	if spec.SharedMemorySize != 0 {
		return fmt.Errorf("%w: shared memory size %d", ErrSpecializationUnsupported, spec.SharedMemorySize)
	}
	return nil
}

// specialize returns a shallow copy of m with rebased bindings, the
// requested compute workgroup size and, when asked for, remapped vertex
// depth. m itself is shared by every pipeline using the program and is left
// untouched.
func specialize(m *ir.Module, stage shader.Stage, spec pipecache.Specialization) (*ir.Module, error) {
	out := *m

	out.GlobalVariables = make([]ir.GlobalVariable, len(m.GlobalVariables))
	copy(out.GlobalVariables, m.GlobalVariables)
	for i := range out.GlobalVariables {
		gv := &out.GlobalVariables[i]
		if gv.Binding == nil {
			continue
		}
		b := *gv.Binding
		b.Binding += spec.BaseBinding
		gv.Binding = &b
	}

	workgroup := stage == shader.StageCompute && spec.WorkgroupSize != [3]uint32{}
	depth := stage == shader.StageVertex && spec.NdcMinusOneToOne
	if !workgroup && !depth {
		return &out, nil
	}

	out.EntryPoints = make([]ir.EntryPoint, len(m.EntryPoints))
	copy(out.EntryPoints, m.EntryPoints)
	for i := range out.EntryPoints {
		ep := &out.EntryPoints[i]
		switch {
		case workgroup && ep.Stage == ir.StageCompute:
			ep.Workgroup = spec.WorkgroupSize
		case depth && ep.Stage == ir.StageVertex:
			if err := remapDepth(&out, &ep.Function); err != nil {
				return nil, fmt.Errorf("entry point %s: %w", ep.Name, err)
			}
		}
	}
	return &out, nil
}

// entryPoint returns the entry point of m matching stage, falling back to
// the first one.
func entryPoint(m *ir.Module, stage shader.Stage) (ir.EntryPoint, bool) {
	if len(m.EntryPoints) == 0 {
		return ir.EntryPoint{}, false
	}
	want, ok := irStage(stage)
	if ok {
		for _, ep := range m.EntryPoints {
			if ep.Stage == want {
				return ep, true
			}
		}
	}
	return m.EntryPoints[0], true
}

func irStage(s shader.Stage) (ir.ShaderStage, bool) {
	switch s {
	case shader.StageVertex:
		return ir.StageVertex, true
	case shader.StageFragment:
		return ir.StageFragment, true
	case shader.StageCompute:
		return ir.StageCompute, true
	default:
		return 0, false
	}
}

// words reinterprets little-endian SPIR-V bytes as 32-bit words.
func words(b []byte) []uint32 {
	out := make([]uint32, len(b)/4)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return out
}

// remapDepth rewrites every value returned by the vertex function fn so the
// clip-space position z becomes (z+w)/2. fn must be a private copy; its
// expression arenas are cloned before anything is appended.
func remapDepth(m *ir.Module, fn *ir.Function) error {
	if fn.Result == nil {
		return fmt.Errorf("%w: vertex function has no position output", ErrSpecializationUnsupported)
	}
	member, vec, ok := positionOutput(m, fn.Result)
	if !ok {
		return fmt.Errorf("%w: vertex function has no position output", ErrSpecializationUnsupported)
	}

	r := &depthRemap{
		module: m,
		fn:     fn,
		member: member,
		vec:    vec,
		typed:  len(fn.ExpressionTypes) == len(fn.Expressions),
	}
	fn.Expressions = slices.Clone(fn.Expressions)
	fn.ExpressionTypes = slices.Clone(fn.ExpressionTypes)
	fn.Body = r.block(fn.Body)
	return r.err
}

// positionOutput finds the position builtin of a function result. member is
// -1 when the result itself is the position, otherwise the index of the
// struct member carrying it. vec is the vec4 type of the position.
func positionOutput(m *ir.Module, res *ir.FunctionResult) (member int, vec ir.TypeHandle, ok bool) {
	if isPosition(res.Binding) {
		return -1, res.Type, true
	}
	if int(res.Type) >= len(m.Types) {
		return 0, 0, false
	}
	st, isStruct := m.Types[res.Type].Inner.(ir.StructType)
	if !isStruct {
		return 0, 0, false
	}
	for i, mem := range st.Members {
		if isPosition(mem.Binding) {
			return i, mem.Type, true
		}
	}
	return 0, 0, false
}

func isPosition(b *ir.Binding) bool {
	if b == nil {
		return false
	}
	bb, ok := (*b).(ir.BuiltinBinding)
	return ok && bb.Builtin == ir.BuiltinPosition
}

type depthRemap struct {
	module *ir.Module
	fn     *ir.Function
	member int
	vec    ir.TypeHandle
	typed  bool
	err    error
}

// block returns stmts with every valued return rewritten.
func (r *depthRemap) block(stmts []ir.Statement) []ir.Statement {
	out := make([]ir.Statement, 0, len(stmts)+1)
	for _, s := range stmts {
		switch k := s.Kind.(type) {
		case ir.StmtBlock:
			k.Block = r.block(k.Block)
			s.Kind = k
		case ir.StmtIf:
			k.Accept = r.block(k.Accept)
			k.Reject = r.block(k.Reject)
			s.Kind = k
		case ir.StmtSwitch:
			cases := make([]ir.SwitchCase, len(k.Cases))
			for i, c := range k.Cases {
				c.Body = r.block(c.Body)
				cases[i] = c
			}
			k.Cases = cases
			s.Kind = k
		case ir.StmtLoop:
			k.Body = r.block(k.Body)
			k.Continuing = r.block(k.Continuing)
			s.Kind = k
		case ir.StmtReturn:
			if k.Value != nil {
				v, emit := r.position(*k.Value)
				out = append(out, ir.Statement{Kind: ir.StmtEmit{Range: emit}})
				s.Kind = ir.StmtReturn{Value: &v}
			}
		}
		out = append(out, s)
	}
	return out
}

// position appends the expressions computing the remapped result of value
// and returns the new result with the range to emit.
func (r *depthRemap) position(value ir.ExpressionHandle) (ir.ExpressionHandle, ir.Range) {
	half := r.add(ir.Literal{Value: ir.LiteralF32(0.5)})
	start := ir.ExpressionHandle(len(r.fn.Expressions))

	pos := value
	if r.member >= 0 {
		pos = r.add(ir.ExprAccessIndex{Base: value, Index: uint32(r.member)})
	}
	c := make([]ir.ExpressionHandle, 4)
	for i := range c {
		c[i] = r.add(ir.ExprAccessIndex{Base: pos, Index: uint32(i)})
	}
	sum := r.add(ir.ExprBinary{Op: ir.BinaryAdd, Left: c[2], Right: c[3]})
	c[2] = r.add(ir.ExprBinary{Op: ir.BinaryMultiply, Left: sum, Right: half})
	result := r.add(ir.ExprCompose{Type: r.vec, Components: c})

	if r.member >= 0 {
		st := r.module.Types[r.fn.Result.Type].Inner.(ir.StructType)
		fields := make([]ir.ExpressionHandle, len(st.Members))
		for i := range fields {
			if i == r.member {
				fields[i] = result
				continue
			}
			fields[i] = r.add(ir.ExprAccessIndex{Base: value, Index: uint32(i)})
		}
		result = r.add(ir.ExprCompose{Type: r.fn.Result.Type, Components: fields})
	}
	return result, ir.Range{Start: start, End: ir.ExpressionHandle(len(r.fn.Expressions))}
}

// add appends an expression, keeping ExpressionTypes parallel when it was.
func (r *depthRemap) add(kind ir.ExpressionKind) ir.ExpressionHandle {
	h := ir.ExpressionHandle(len(r.fn.Expressions))
	r.fn.Expressions = append(r.fn.Expressions, ir.Expression{Kind: kind})
	if !r.typed {
		return h
	}
	t, err := ir.ResolveExpressionType(r.module, r.fn, h)
	if err != nil && r.err == nil {
		r.err = fmt.Errorf("resolve remapped position: %w", err)
	}
	r.fn.ExpressionTypes = append(r.fn.ExpressionTypes, t)
	return h
}
