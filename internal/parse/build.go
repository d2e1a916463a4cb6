package parse

import "github.com/CryZe/livesplit-auto-splitting/internal/ir"

// widthSensitive reports whether a binary op's result depends on its
// operands carrying a canonical (fully extended) bit pattern rather than
// garbage high bits: division, shifts whose result depends on the sign or
// width of the shifted value, and every comparison. Pure bitwise/additive
// ops (Add, Sub, Mul, LShift, the bitwise combinators, both boolean
// combinators) are bit-position invariant in their low bits and don't
// care what garbage sits above the operand's declared width.
func widthSensitive(k ir.OpKind) bool {
	switch k {
	case ir.OpDiv, ir.OpRShift, ir.OpEq, ir.OpNe, ir.OpGt, ir.OpGe, ir.OpLt, ir.OpLe:
		return true
	default:
		return false
	}
}

func isCompare(k ir.OpKind) bool {
	switch k {
	case ir.OpEq, ir.OpNe, ir.OpGt, ir.OpGe, ir.OpLt, ir.OpLe:
		return true
	default:
		return false
	}
}

// binOp builds a binary-operator entity over left and right. Comparisons
// always produce Bool and only unify their operands' types with each
// other; every other binary op unifies its own type with both operands
// (arithmetic/bitwise ops are homogeneously typed in this language).
// Width-sensitive ops seed NeedsExtend directly on both operands, the
// construction-time trigger the fixpoint in internal/extend propagates
// from.
func (p *Parser) binOp(kind ir.OpKind, left, right ir.Entity, rng ir.ByteRange) ir.Entity {
	e := p.newEntity(rng)
	p.store.Children.Insert(e, []ir.Entity{left, right})
	p.store.CodeGenOps.Insert(e, []ir.Op{
		{Kind: ir.OpEntity, Entity: left},
		{Kind: ir.OpEntity, Entity: right},
		{Kind: kind},
	})

	if isCompare(kind) {
		p.store.Type.Insert(e, ir.Bool)
		p.store.TypeConstraints.Insert(left, appendEdge(p.store, left, ir.TypeEdge{Kind: ir.EdgeSameAsMe, Other: right}))
	} else {
		p.store.TypeConstraints.Insert(e, []ir.TypeEdge{
			{Kind: ir.EdgeSameAsMe, Other: left},
			{Kind: ir.EdgeSameAsMe, Other: right},
		})
	}

	if widthSensitive(kind) {
		p.store.MarkNeedsExtend(left)
		p.store.MarkNeedsExtend(right)
	}
	return e
}

// appendEdge returns e's existing TypeConstraints list for entity with the
// new edge appended; Insert semantics replace the whole aspect value, so
// callers that want to extend a list must read-modify-write through this.
func appendEdge(s *ir.Store, entity ir.Entity, edge ir.TypeEdge) []ir.TypeEdge {
	existing, _ := s.TypeConstraints.Get(entity)
	return append(existing, edge)
}

// unaryOp builds a Not/Neg entity. Its type always matches its operand's.
func (p *Parser) unaryOp(kind ir.OpKind, operand ir.Entity, rng ir.ByteRange) ir.Entity {
	e := p.newEntity(rng)
	p.store.Children.Insert(e, []ir.Entity{operand})
	p.store.CodeGenOps.Insert(e, []ir.Op{
		{Kind: ir.OpEntity, Entity: operand},
		{Kind: kind},
	})
	p.store.TypeConstraints.Insert(e, []ir.TypeEdge{{Kind: ir.EdgeSameAsMe, Other: operand}})
	return e
}

// castOp builds an `expr as type` entity. The target type is a fixed
// annotation (seeded directly, not inferred); NeedsExtend on the source is
// seeded from the target type alone (see castNeedsExtendSeed), which covers
// every widening and int-to-float cast and also marks some narrowing or
// same-width casts whose lowering does not read the extended bits.
func (p *Parser) castOp(expr ir.Entity, to ir.Type, rng ir.ByteRange) ir.Entity {
	e := p.newEntity(rng)
	p.store.Children.Insert(e, []ir.Entity{expr})
	p.store.CodeGenOps.Insert(e, []ir.Op{{Kind: ir.OpCast, Entity: expr, CastTo: to}})
	p.store.Type.Insert(e, to)
	if castNeedsExtendSeed(to) {
		p.store.MarkNeedsExtend(expr)
	}
	return e
}

// castNeedsExtendSeed reports whether casting TO this type can depend on
// the source's extend flag: widening an integer (to a wider width, in the
// same or a different register class) or converting to a float. Narrowing
// or same-width casts, and bool/sign-flip casts, are garbage-bit
// insensitive and never need this seed.
func castNeedsExtendSeed(to ir.Type) bool {
	switch to {
	case ir.I16, ir.U16, ir.I32, ir.U32, ir.I64, ir.U64, ir.F32, ir.F64:
		return true
	default:
		return false
	}
}
