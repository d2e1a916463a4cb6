package ir

// OpKind enumerates the stack-machine meta-ops the code generator lowers.
// A CodeGenOps list is an ordered sequence of these, attached to whichever
// entity they belong to (an expression, statement, or synthetic wrapper
// node the parser or a builder helper created).
type OpKind int

const (
	OpEntity OpKind = iota // recurse into another entity's CodeGenOps
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpLShift
	OpRShift
	OpNot
	OpNeg
	OpBoolOr
	OpBoolAnd
	OpBitOr
	OpBitAnd
	OpXor
	OpEq
	OpNe
	OpGt
	OpGe
	OpLt
	OpLe
	OpIf
	OpElse
	OpEnd
	OpLoop
	OpBlock
	OpExtend
	OpExtendVar
	OpCast
	OpBr
	OpBrIf
	OpConstInt
	OpConstFloat
	OpConstBool
	OpDrop
	OpLoadVar
	OpStoreVar
	OpStateVar
	OpCall
)

// Op is one meta-op in a CodeGenOps list.
type Op struct {
	Kind OpKind

	// Entity is the operand entity for OpEntity, OpCast (the source
	// expression), and OpExtend (the entity whose NeedsExtend flag gates
	// the emitted extension).
	Entity Entity

	// Slot indexes ResolvedUses for OpLoadVar, OpStoreVar, OpExtendVar,
	// and OpCall (the function being called).
	Slot int

	// Depth is the branch target depth for OpBr/OpBrIf.
	Depth int

	// IntValue backs OpConstInt.
	IntValue int64
	// FloatValue backs OpConstFloat.
	FloatValue float64
	// BoolValue backs OpConstBool.
	BoolValue bool

	// IsCurrent and StateVarName back OpStateVar: true selects the
	// current sample, false the previous ("old") one.
	IsCurrent    bool
	StateVarName string

	// CastFrom/CastTo back OpCast: the concrete types on either side of
	// the conversion. CastFrom is read from Entity's Type at lowering
	// time, kept here too so callers building ops needn't look it up.
	CastFrom, CastTo Type
}
