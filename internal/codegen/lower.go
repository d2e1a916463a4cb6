// Package codegen lowers a fully type- and extend-inferred ir.Store into a
// WASM module: function numbering (C7), parameter register layout (C8),
// local allocation (C9), and the expression/module code generator (C10).
package codegen

import (
	"fmt"

	"github.com/CryZe/livesplit-auto-splitting/internal/host"
	"github.com/CryZe/livesplit-auto-splitting/internal/ir"
	"github.com/CryZe/livesplit-auto-splitting/internal/wasm/instruction"
	"github.com/CryZe/livesplit-auto-splitting/internal/wasm/types"
)

type generator struct {
	store *ir.Store
}

// functionBody returns the node carrying a code item's executable content:
// for a function declaration this is its block body (the last Children
// entry, after the parameters); for an action item, item.Body already is
// that block.
func functionBody(store *ir.Store, item ir.Item) ir.Entity {
	if item.Kind != ir.ItemFunction {
		return item.Body
	}
	children := store.Children.MustGet(item.Body)
	return children[len(children)-1]
}

// lowerOps lowers the entity owning a CodeGenOps list to a flat instruction
// sequence, reconstructing WASM's nested block structure from the linear
// Block/Loop/If...Else...End markers the parser emitted.
func (g *generator) lowerOps(owner ir.Entity) []instruction.Instruction {
	ops := g.store.CodeGenOps.MustGet(owner)
	instrs, _, _ := g.lowerOpsSeq(owner, ops, 0)
	return instrs
}

func (g *generator) lowerOpsSeq(owner ir.Entity, ops []ir.Op, start int) (instrs []instruction.Instruction, next int, stoppedAt ir.OpKind) {
	i := start
	for i < len(ops) {
		op := ops[i]
		switch op.Kind {
		case ir.OpElse, ir.OpEnd:
			return instrs, i + 1, op.Kind
		case ir.OpBlock:
			inner, ni, _ := g.lowerOpsSeq(owner, ops, i+1)
			rv, empty := g.blockSignature(owner)
			instrs = append(instrs, instruction.Block{Result: rv, Empty: empty, Instrs: inner})
			i = ni
		case ir.OpLoop:
			inner, ni, _ := g.lowerOpsSeq(owner, ops, i+1)
			rv, empty := g.blockSignature(owner)
			instrs = append(instrs, instruction.Loop{Result: rv, Empty: empty, Instrs: inner})
			i = ni
		case ir.OpIf:
			thenInstrs, ni, term := g.lowerOpsSeq(owner, ops, i+1)
			var elseInstrs []instruction.Instruction
			hasElse := term == ir.OpElse
			if hasElse {
				elseInstrs, ni, _ = g.lowerOpsSeq(owner, ops, ni)
			}
			rv, empty := g.blockSignature(owner)
			instrs = append(instrs, instruction.If{Result: rv, Empty: empty, Then: thenInstrs, Else: elseInstrs, HasElse: hasElse})
			i = ni
		case ir.OpBr:
			instrs = append(instrs, instruction.Br{Index: uint32(op.Depth)})
			i++
		case ir.OpBrIf:
			instrs = append(instrs, instruction.BrIf{Index: uint32(op.Depth)})
			i++
		default:
			instrs = append(instrs, g.lowerOp(owner, op)...)
			i++
		}
	}
	return instrs, i, ir.OpEnd
}

func (g *generator) blockSignature(owner ir.Entity) (types.ValueType, bool) {
	ty := g.store.Type.MustGet(owner)
	if ty == ir.Unit {
		return 0, true
	}
	return classToValueType(ty.Class()), false
}

func classToValueType(c ir.RegisterClass) types.ValueType {
	switch c {
	case ir.RegI32:
		return types.I32
	case ir.RegI64:
		return types.I64
	case ir.RegF32:
		return types.F32
	case ir.RegF64:
		return types.F64
	default:
		panic("codegen: no WASM value type for register class " + c.String())
	}
}

// lowerOp lowers every non-structural op kind; If/Else/End/Block/Loop/Br/BrIf
// are handled directly by lowerOpsSeq since they drive the nesting shape.
func (g *generator) lowerOp(owner ir.Entity, op ir.Op) []instruction.Instruction {
	switch op.Kind {
	case ir.OpEntity:
		out := g.lowerOps(op.Entity)
		if g.store.NeedsExtend.Has(op.Entity) {
			out = append(out, g.extendInstrs(g.store.Type.MustGet(op.Entity))...)
		}
		return out
	case ir.OpAdd, ir.OpSub, ir.OpMul, ir.OpDiv, ir.OpLShift, ir.OpRShift,
		ir.OpBitOr, ir.OpBitAnd, ir.OpXor, ir.OpBoolOr, ir.OpBoolAnd:
		return []instruction.Instruction{g.arithInstr(owner, op.Kind)}
	case ir.OpEq, ir.OpNe, ir.OpGt, ir.OpGe, ir.OpLt, ir.OpLe:
		return []instruction.Instruction{g.compareInstr(owner, op.Kind)}
	case ir.OpNot:
		return g.lowerNot(owner)
	case ir.OpNeg:
		return g.lowerNeg(owner)
	case ir.OpConstInt:
		return g.lowerConstInt(owner, op.IntValue)
	case ir.OpConstFloat:
		return g.lowerConstFloat(owner, op.FloatValue)
	case ir.OpConstBool:
		v := int32(0)
		if op.BoolValue {
			v = 1
		}
		return []instruction.Instruction{instruction.I32Const{Value: v}}
	case ir.OpDrop:
		if g.store.Type.MustGet(op.Entity) == ir.Unit {
			return nil
		}
		return []instruction.Instruction{instruction.Drop{}}
	case ir.OpLoadVar:
		v, ty := g.varForSlot(owner, op.Slot)
		if ty == ir.Unit {
			return nil
		}
		return []instruction.Instruction{instruction.LocalGet{Index: uint32(g.store.LocalRegister.MustGet(v))}}
	case ir.OpStoreVar:
		v, ty := g.varForSlot(owner, op.Slot)
		if ty == ir.Unit {
			return nil
		}
		return []instruction.Instruction{instruction.LocalSet{Index: uint32(g.store.LocalRegister.MustGet(v))}}
	case ir.OpStateVar:
		return g.lowerStateVar(op)
	case ir.OpCall:
		fn, _ := g.varForSlot(owner, op.Slot)
		idx := g.store.FunctionIndex.MustGet(fn)
		return []instruction.Instruction{instruction.Call{Index: uint32(idx)}}
	case ir.OpCast:
		return g.lowerCastOp(op)
	case ir.OpExtend:
		if g.store.NeedsExtend.Has(op.Entity) {
			return g.extendInstrs(g.store.Type.MustGet(op.Entity))
		}
		return nil
	case ir.OpExtendVar:
		v, ty := g.varForSlot(owner, op.Slot)
		if g.store.NeedsExtend.Has(v) {
			return g.extendInstrs(ty)
		}
		return nil
	default:
		panic(fmt.Sprintf("codegen: unreachable op kind %d in lowerOp", op.Kind))
	}
}

func (g *generator) varForSlot(owner ir.Entity, slot int) (ir.Entity, ir.Type) {
	resolved := g.store.ResolvedUses.MustGet(owner)
	v := resolved[slot]
	return v, g.store.Type.MustGet(v)
}

func (g *generator) lowerConstInt(owner ir.Entity, v int64) []instruction.Instruction {
	switch g.store.Type.MustGet(owner).Class() {
	case ir.RegI64:
		return []instruction.Instruction{instruction.I64Const{Value: v}}
	case ir.RegF32:
		return []instruction.Instruction{instruction.F32Const{Value: float32(v)}}
	case ir.RegF64:
		return []instruction.Instruction{instruction.F64Const{Value: float64(v)}}
	default:
		return []instruction.Instruction{instruction.I32Const{Value: int32(v)}}
	}
}

func (g *generator) lowerConstFloat(owner ir.Entity, v float64) []instruction.Instruction {
	if g.store.Type.MustGet(owner).Class() == ir.RegF32 {
		return []instruction.Instruction{instruction.F32Const{Value: float32(v)}}
	}
	return []instruction.Instruction{instruction.F64Const{Value: v}}
}

// lowerNot: equal-to-zero on Bool, XOR-with-all-ones of the class width on
// an integer register class.
func (g *generator) lowerNot(owner ir.Entity) []instruction.Instruction {
	ty := g.store.Type.MustGet(owner)
	if ty == ir.Bool {
		return []instruction.Instruction{instruction.NewI32Eqz()}
	}
	switch ty.Class() {
	case ir.RegI32:
		return []instruction.Instruction{instruction.I32Const{Value: -1}, instruction.NewI32Xor()}
	case ir.RegI64:
		return []instruction.Instruction{instruction.I64Const{Value: -1}, instruction.NewI64Xor()}
	default:
		panic("codegen: Not applied to a non-integer, non-bool type " + ty.String())
	}
}

// lowerNeg: native negate for floats. For integers, -x is computed as
// (x XOR -1) + 1 (two's-complement negate) rather than 0 - x, since x is
// already the only value on the stack at this point and WASM has no way to
// splice a constant beneath an already-pushed operand.
func (g *generator) lowerNeg(owner ir.Entity) []instruction.Instruction {
	ty := g.store.Type.MustGet(owner)
	switch ty.Class() {
	case ir.RegF32:
		return []instruction.Instruction{instruction.NewF32Neg()}
	case ir.RegF64:
		return []instruction.Instruction{instruction.NewF64Neg()}
	case ir.RegI32:
		return []instruction.Instruction{instruction.I32Const{Value: -1}, instruction.NewI32Xor(), instruction.I32Const{Value: 1}, instruction.NewI32Add()}
	case ir.RegI64:
		return []instruction.Instruction{instruction.I64Const{Value: -1}, instruction.NewI64Xor(), instruction.I64Const{Value: 1}, instruction.NewI64Add()}
	default:
		panic("codegen: Neg applied to unsupported type " + ty.String())
	}
}

func (g *generator) arithInstr(owner ir.Entity, kind ir.OpKind) instruction.Instruction {
	ty := g.store.Type.MustGet(owner)
	class := ty.Class()
	unsigned := ty.IsUnsigned()
	switch kind {
	case ir.OpAdd:
		switch class {
		case ir.RegI64:
			return instruction.NewI64Add()
		case ir.RegF32:
			return instruction.NewF32Add()
		case ir.RegF64:
			return instruction.NewF64Add()
		default:
			return instruction.NewI32Add()
		}
	case ir.OpSub:
		switch class {
		case ir.RegI64:
			return instruction.NewI64Sub()
		case ir.RegF32:
			return instruction.NewF32Sub()
		case ir.RegF64:
			return instruction.NewF64Sub()
		default:
			return instruction.NewI32Sub()
		}
	case ir.OpMul:
		switch class {
		case ir.RegI64:
			return instruction.NewI64Mul()
		case ir.RegF32:
			return instruction.NewF32Mul()
		case ir.RegF64:
			return instruction.NewF64Mul()
		default:
			return instruction.NewI32Mul()
		}
	case ir.OpDiv:
		switch class {
		case ir.RegI32:
			if unsigned {
				return instruction.NewI32DivU()
			}
			return instruction.NewI32DivS()
		case ir.RegI64:
			if unsigned {
				return instruction.NewI64DivU()
			}
			return instruction.NewI64DivS()
		case ir.RegF32:
			return instruction.NewF32Div()
		default:
			return instruction.NewF64Div()
		}
	case ir.OpLShift:
		if class == ir.RegI64 {
			return instruction.NewI64Shl()
		}
		return instruction.NewI32Shl()
	case ir.OpRShift:
		if class == ir.RegI64 {
			if unsigned {
				return instruction.NewI64ShrU()
			}
			return instruction.NewI64ShrS()
		}
		if unsigned {
			return instruction.NewI32ShrU()
		}
		return instruction.NewI32ShrS()
	case ir.OpBitOr, ir.OpBoolOr:
		if class == ir.RegI64 {
			return instruction.NewI64Or()
		}
		return instruction.NewI32Or()
	case ir.OpBitAnd, ir.OpBoolAnd:
		if class == ir.RegI64 {
			return instruction.NewI64And()
		}
		return instruction.NewI32And()
	case ir.OpXor:
		if class == ir.RegI64 {
			return instruction.NewI64Xor()
		}
		return instruction.NewI32Xor()
	default:
		panic("codegen: arithInstr called with a non-arithmetic op")
	}
}

// compareInstr picks the comparison family from the *operand's* register
// class (the comparison node's own type is always Bool, never a useful
// class to dispatch on) and signedness from the operand's concrete type.
func (g *generator) compareInstr(owner ir.Entity, kind ir.OpKind) instruction.Instruction {
	children := g.store.Children.MustGet(owner)
	operand := g.store.Type.MustGet(children[0])
	class := operand.Class()
	unsigned := operand.IsUnsigned()

	switch kind {
	case ir.OpEq:
		switch class {
		case ir.RegI64:
			return instruction.NewI64Eq()
		case ir.RegF32:
			return instruction.NewF32Eq()
		case ir.RegF64:
			return instruction.NewF64Eq()
		default:
			return instruction.NewI32Eq()
		}
	case ir.OpNe:
		switch class {
		case ir.RegI64:
			return instruction.NewI64Ne()
		case ir.RegF32:
			return instruction.NewF32Ne()
		case ir.RegF64:
			return instruction.NewF64Ne()
		default:
			return instruction.NewI32Ne()
		}
	case ir.OpLt:
		return g.orderedCompare(class, unsigned,
			instruction.NewI32LtS(), instruction.NewI32LtU(),
			instruction.NewI64LtS(), instruction.NewI64LtU(),
			instruction.NewF32Lt(), instruction.NewF64Lt())
	case ir.OpGt:
		return g.orderedCompare(class, unsigned,
			instruction.NewI32GtS(), instruction.NewI32GtU(),
			instruction.NewI64GtS(), instruction.NewI64GtU(),
			instruction.NewF32Gt(), instruction.NewF64Gt())
	case ir.OpLe:
		return g.orderedCompare(class, unsigned,
			instruction.NewI32LeS(), instruction.NewI32LeU(),
			instruction.NewI64LeS(), instruction.NewI64LeU(),
			instruction.NewF32Le(), instruction.NewF64Le())
	case ir.OpGe:
		return g.orderedCompare(class, unsigned,
			instruction.NewI32GeS(), instruction.NewI32GeU(),
			instruction.NewI64GeS(), instruction.NewI64GeU(),
			instruction.NewF32Ge(), instruction.NewF64Ge())
	default:
		panic("codegen: compareInstr called with a non-comparison op")
	}
}

func (g *generator) orderedCompare(class ir.RegisterClass, unsigned bool,
	i32s, i32u, i64s, i64u instruction.Instruction, f32, f64 instruction.Instruction) instruction.Instruction {
	switch class {
	case ir.RegI64:
		if unsigned {
			return i64u
		}
		return i64s
	case ir.RegF32:
		return f32
	case ir.RegF64:
		return f64
	default:
		if unsigned {
			return i32u
		}
		return i32s
	}
}

func (g *generator) lowerStateVar(op ir.Op) []instruction.Instruction {
	path, ok := g.store.Source.State.Lookup(op.StateVarName)
	if !ok {
		panic("codegen: StateVar references unknown path " + op.StateVarName)
	}
	idx := g.store.Source.State.LookupIndex(op.StateVarName)
	isCurrent := int32(0)
	if op.IsCurrent {
		isCurrent = 1
	}
	return []instruction.Instruction{
		instruction.I32Const{Value: int32(idx)},
		instruction.I32Const{Value: isCurrent},
		instruction.Call{Index: host.GetImportFor(path.Type)},
	}
}

// lowerCastOp pushes the cast's operand (canonicalizing it first if its
// NeedsExtend flag was seeded — castOp seeds it whenever the table below
// depends on the source's canonical bits), then dispatches on the concrete
// (from, to) pair. from is read from the operand's own Type rather than
// trusted from op.CastFrom, matching how op.go documents the field.
func (g *generator) lowerCastOp(op ir.Op) []instruction.Instruction {
	instrs := g.lowerOps(op.Entity)
	if g.store.NeedsExtend.Has(op.Entity) {
		instrs = append(instrs, g.extendInstrs(g.store.Type.MustGet(op.Entity))...)
	}
	return append(instrs, g.lowerCast(g.store.Type.MustGet(op.Entity), op.CastTo)...)
}

// lowerCast implements the exhaustive numeric-cast table for an operand
// already on the stack (and already canonicalized if NeedsExtend demanded
// it). From here every (from, to) pair has exactly one lowering; there is no
// general-purpose fallback.
func (g *generator) lowerCast(from, to ir.Type) []instruction.Instruction {
	if from == to {
		return nil
	}

	if from == ir.Bool {
		if to == ir.I64 || to == ir.U64 {
			return []instruction.Instruction{instruction.NewI64ExtendI32U()}
		}
		return nil
	}

	if from.IsSpecificInt() && to.IsSpecificInt() {
		return g.lowerIntCast(from, to)
	}
	if from.IsSpecificInt() && to.IsSpecificFloat() {
		return g.lowerIntToFloat(from, to)
	}
	if from.IsSpecificFloat() && to.IsSpecificInt() {
		return g.lowerFloatToInt(from, to)
	}
	if from == ir.F32 && to == ir.F64 {
		return []instruction.Instruction{instruction.NewF64PromoteF32()}
	}
	if from == ir.F64 && to == ir.F32 {
		return []instruction.Instruction{instruction.NewF32DemoteF64()}
	}

	panic(fmt.Sprintf("codegen: unreachable cast %s -> %s", from, to))
}

// lowerIntCast handles every int-to-int case: same class widen/narrow, and
// cross-class widen to I64/U64.
func (g *generator) lowerIntCast(from, to ir.Type) []instruction.Instruction {
	fromClass, toClass := from.Class(), to.Class()

	if toClass == ir.RegI32 {
		if fromClass == ir.RegI64 {
			return []instruction.Instruction{instruction.NewI32WrapI64()}
		}
		// Same class (I32): widen within I32 (mask/sign-extend handled by
		// the NeedsExtend canonicalization already applied to the operand),
		// narrow, or sign flip — all no-ops once canonicalized.
		return nil
	}

	// toClass == RegI64: narrow-to-I32 first (already canonical if needed),
	// then sign/zero-extend into I64 per the *source's* signedness.
	if fromClass == ir.RegI64 {
		return nil
	}
	if from.IsUnsigned() {
		return []instruction.Instruction{instruction.NewI64ExtendI32U()}
	}
	return []instruction.Instruction{instruction.NewI64ExtendI32S()}
}

// lowerIntToFloat converts from whichever integer register the source
// occupies. A sub-32-bit source was already canonicalized to I32/U32 width
// by lowerCastOp — castNeedsExtendSeed seeds NeedsExtend for every cast
// targeting a float, so that canonicalization always ran before this is
// reached.
func (g *generator) lowerIntToFloat(from, to ir.Type) []instruction.Instruction {
	fromI64 := from.Class() == ir.RegI64
	unsigned := from.IsUnsigned()

	switch {
	case to == ir.F32 && !fromI64 && !unsigned:
		return []instruction.Instruction{instruction.NewF32ConvertI32S()}
	case to == ir.F32 && !fromI64 && unsigned:
		return []instruction.Instruction{instruction.NewF32ConvertI32U()}
	case to == ir.F32 && fromI64 && !unsigned:
		return []instruction.Instruction{instruction.NewF32ConvertI64S()}
	case to == ir.F32 && fromI64 && unsigned:
		return []instruction.Instruction{instruction.NewF32ConvertI64U()}
	case to == ir.F64 && !fromI64 && !unsigned:
		return []instruction.Instruction{instruction.NewF64ConvertI32S()}
	case to == ir.F64 && !fromI64 && unsigned:
		return []instruction.Instruction{instruction.NewF64ConvertI32U()}
	case to == ir.F64 && fromI64 && !unsigned:
		return []instruction.Instruction{instruction.NewF64ConvertI64S()}
	default:
		return []instruction.Instruction{instruction.NewF64ConvertI64U()}
	}
}

// lowerFloatToInt truncates, picking the instruction by source float width,
// target register width, and target signedness.
func (g *generator) lowerFloatToInt(from, to ir.Type) []instruction.Instruction {
	toI64 := to.Class() == ir.RegI64
	unsigned := to.IsUnsigned()

	switch {
	case from == ir.F32 && !toI64 && !unsigned:
		return []instruction.Instruction{instruction.NewI32TruncF32S()}
	case from == ir.F32 && !toI64 && unsigned:
		return []instruction.Instruction{instruction.NewI32TruncF32U()}
	case from == ir.F32 && toI64 && !unsigned:
		return []instruction.Instruction{instruction.NewI64TruncF32S()}
	case from == ir.F32 && toI64 && unsigned:
		return []instruction.Instruction{instruction.NewI64TruncF32U()}
	case from == ir.F64 && !toI64 && !unsigned:
		return []instruction.Instruction{instruction.NewI32TruncF64S()}
	case from == ir.F64 && !toI64 && unsigned:
		return []instruction.Instruction{instruction.NewI32TruncF64U()}
	case from == ir.F64 && toI64 && !unsigned:
		return []instruction.Instruction{instruction.NewI64TruncF64S()}
	default:
		return []instruction.Instruction{instruction.NewI64TruncF64U()}
	}
}

// extendInstrs emits the canonicalizing mask (U8/U16) or shift-pair
// sign-extension (I8/I16) for a concrete sub-register-width type. Every
// other concrete type already occupies its full register width and needs
// nothing.
func (g *generator) extendInstrs(t ir.Type) []instruction.Instruction {
	switch t {
	case ir.U8:
		return []instruction.Instruction{instruction.I32Const{Value: 0xFF}, instruction.NewI32And()}
	case ir.U16:
		return []instruction.Instruction{instruction.I32Const{Value: 0xFFFF}, instruction.NewI32And()}
	case ir.I8:
		return []instruction.Instruction{instruction.I32Const{Value: 24}, instruction.NewI32Shl(), instruction.I32Const{Value: 24}, instruction.NewI32ShrS()}
	case ir.I16:
		return []instruction.Instruction{instruction.I32Const{Value: 16}, instruction.NewI32Shl(), instruction.I32Const{Value: 16}, instruction.NewI32ShrS()}
	default:
		return nil
	}
}
