package parse

import (
	"github.com/CryZe/livesplit-auto-splitting/internal/cerrors"
	"github.com/CryZe/livesplit-auto-splitting/internal/ir"
	"github.com/CryZe/livesplit-auto-splitting/internal/lex"
)

// precedence levels, lowest to highest; `as` casts and unary bind tighter
// than every binary operator.
var binPrec = map[lex.Kind]int{
	lex.PipePipe: 1,
	lex.AmpAmp:   2,
	lex.Pipe:     3,
	lex.Caret:    4,
	lex.Amp:      5,
	lex.EqEq:     6, lex.BangEq: 6,
	lex.Lt: 7, lex.Le: 7, lex.Gt: 7, lex.Ge: 7,
	lex.Shl: 8, lex.Shr: 8,
	lex.Plus: 9, lex.Minus: 9,
	lex.Star: 10, lex.Slash: 10,
}

var binOpKind = map[lex.Kind]ir.OpKind{
	lex.PipePipe: ir.OpBoolOr, lex.AmpAmp: ir.OpBoolAnd,
	lex.Pipe: ir.OpBitOr, lex.Caret: ir.OpXor, lex.Amp: ir.OpBitAnd,
	lex.EqEq: ir.OpEq, lex.BangEq: ir.OpNe,
	lex.Lt: ir.OpLt, lex.Le: ir.OpLe, lex.Gt: ir.OpGt, lex.Ge: ir.OpGe,
	lex.Shl: ir.OpLShift, lex.Shr: ir.OpRShift,
	lex.Plus: ir.OpAdd, lex.Minus: ir.OpSub,
	lex.Star: ir.OpMul, lex.Slash: ir.OpDiv,
}

// parseExpr parses a full expression via precedence climbing.
func (p *Parser) parseExpr() (ir.Entity, *cerrors.Error) {
	return p.parseBinary(1)
}

func (p *Parser) parseBinary(minPrec int) (ir.Entity, *cerrors.Error) {
	left, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	for {
		prec, ok := binPrec[p.tok.Kind]
		if !ok || prec < minPrec {
			return left, nil
		}
		opTok := p.tok
		rng := p.store.Range.MustGet(left)
		if err := p.advance(); err != nil {
			return 0, err
		}
		right, err := p.parseBinary(prec + 1)
		if err != nil {
			return 0, err
		}
		rightRng := p.store.Range.MustGet(right)
		full := ir.ByteRange{Start: rng.Start, End: rightRng.End}
		left = p.binOp(binOpKind[opTok.Kind], left, right, full)
	}
}

func (p *Parser) parseUnary() (ir.Entity, *cerrors.Error) {
	if p.at(lex.Bang) || p.at(lex.Minus) {
		start := p.tok.Pos.Offset
		kind := ir.OpNot
		if p.at(lex.Minus) {
			kind = ir.OpNeg
		}
		if err := p.advance(); err != nil {
			return 0, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		return p.unaryOp(kind, operand, p.rangeFrom(start)), nil
	}
	return p.parseCastOrPostfix()
}

func (p *Parser) parseCastOrPostfix() (ir.Entity, *cerrors.Error) {
	e, err := p.parsePrimary()
	if err != nil {
		return 0, err
	}
	for p.at(lex.KwAs) {
		startRng := p.store.Range.MustGet(e)
		if err := p.advance(); err != nil {
			return 0, err
		}
		to, err := p.parseTypeName()
		if err != nil {
			return 0, err
		}
		e = p.castOp(e, to, ir.ByteRange{Start: startRng.Start, End: p.prevEnd})
	}
	return e, nil
}

func (p *Parser) parsePrimary() (ir.Entity, *cerrors.Error) {
	start := p.tok.Pos.Offset
	switch p.tok.Kind {
	case lex.Int:
		v := p.tok.IntValue
		if err := p.advance(); err != nil {
			return 0, err
		}
		e := p.newEntity(p.rangeFrom(start))
		p.store.Type.Insert(e, ir.Number)
		p.store.CodeGenOps.Insert(e, []ir.Op{{Kind: ir.OpConstInt, IntValue: v}})
		return e, nil
	case lex.Float:
		v := p.tok.FloatValue
		if err := p.advance(); err != nil {
			return 0, err
		}
		e := p.newEntity(p.rangeFrom(start))
		p.store.Type.Insert(e, ir.Float)
		p.store.CodeGenOps.Insert(e, []ir.Op{{Kind: ir.OpConstFloat, FloatValue: v}})
		return e, nil
	case lex.KwTrue, lex.KwFalse:
		v := p.tok.Kind == lex.KwTrue
		if err := p.advance(); err != nil {
			return 0, err
		}
		e := p.newEntity(p.rangeFrom(start))
		p.store.Type.Insert(e, ir.Bool)
		p.store.CodeGenOps.Insert(e, []ir.Op{{Kind: ir.OpConstBool, BoolValue: v}})
		return e, nil
	case lex.LParen:
		if err := p.advance(); err != nil {
			return 0, err
		}
		inner, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		if _, err := p.expect(lex.RParen); err != nil {
			return 0, err
		}
		return inner, nil
	case lex.KwOld:
		return p.parseOldStateRef(start)
	case lex.Ident:
		return p.parseIdentOrCall(start)
	case lex.KwState:
		return p.parseCurrentStateRef(start)
	default:
		return 0, p.unrecognizedToken()
	}
}

// parseCurrentStateRef parses `state.<field>`.
func (p *Parser) parseCurrentStateRef(start int) (ir.Entity, *cerrors.Error) {
	if err := p.advance(); err != nil { // consume `state`
		return 0, err
	}
	if _, err := p.expect(lex.Dot); err != nil {
		return 0, err
	}
	field, err := p.expect(lex.Ident)
	if err != nil {
		return 0, err
	}
	return p.buildStateVar(field.Text, true, p.rangeFrom(start)), nil
}

// parseOldStateRef parses `old(state.<field>)`.
func (p *Parser) parseOldStateRef(start int) (ir.Entity, *cerrors.Error) {
	if _, err := p.expect(lex.KwOld); err != nil {
		return 0, err
	}
	if _, err := p.expect(lex.LParen); err != nil {
		return 0, err
	}
	if !p.at(lex.KwState) {
		return 0, p.errorf("expected state.<field> inside old(...)")
	}
	if err := p.advance(); err != nil {
		return 0, err
	}
	if _, err := p.expect(lex.Dot); err != nil {
		return 0, err
	}
	field, err := p.expect(lex.Ident)
	if err != nil {
		return 0, err
	}
	if _, err := p.expect(lex.RParen); err != nil {
		return 0, err
	}
	return p.buildStateVar(field.Text, false, p.rangeFrom(start)), nil
}

// buildStateVar builds a StateVar node. Resolution of the field name
// against the declared pointer paths happens in the type-inference pass
// (StateVarSameAsMe edge), matching how spec.md's C4 raises
// UnresolvedStateVar lazily rather than up front.
func (p *Parser) buildStateVar(name string, isCurrent bool, rng ir.ByteRange) ir.Entity {
	e := p.newEntity(rng)
	p.store.CodeGenOps.Insert(e, []ir.Op{{Kind: ir.OpStateVar, StateVarName: name, IsCurrent: isCurrent}})
	p.store.TypeConstraints.Insert(e, []ir.TypeEdge{{Kind: ir.EdgeStateVarSameAsMe, StateVarName: name}})
	return e
}

// parseIdentOrCall parses a bare identifier: either a variable reference
// or a call `name(args...)`.
func (p *Parser) parseIdentOrCall(start int) (ir.Entity, *cerrors.Error) {
	name, err := p.expect(lex.Ident)
	if err != nil {
		return 0, err
	}
	if p.at(lex.LParen) {
		return p.parseCall(name.Text, start)
	}
	e := p.newEntity(p.rangeFrom(start))
	p.store.NameUses.Insert(e, []string{name.Text})
	p.store.TypeConstraints.Insert(e, []ir.TypeEdge{{Kind: ir.EdgeVarSameAsMe, Slot: 0}})
	p.store.CodeGenOps.Insert(e, []ir.Op{{Kind: ir.OpLoadVar, Slot: 0}})
	p.store.ExtendConstraints.Insert(e, []ir.ExtendEdge{{Kind: ir.ExtendLoadVar, Slot: 0}})
	return e, nil
}

func (p *Parser) parseCall(name string, start int) (ir.Entity, *cerrors.Error) {
	if _, err := p.expect(lex.LParen); err != nil {
		return 0, err
	}
	var args []ir.Entity
	for !p.at(lex.RParen) {
		arg, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		args = append(args, arg)
		if p.at(lex.Comma) {
			if err := p.advance(); err != nil {
				return 0, err
			}
		}
	}
	if _, err := p.expect(lex.RParen); err != nil {
		return 0, err
	}

	call := p.newEntity(p.rangeFrom(start))
	p.store.NameUses.Insert(call, []string{name})
	p.store.FunctionCall.Insert(call, ir.FunctionCall{Arguments: len(args)})
	p.store.Children.Insert(call, args)
	p.store.TypeConstraints.Insert(call, []ir.TypeEdge{{Kind: ir.EdgeVarSameAsMe, Slot: 0}})

	ops := make([]ir.Op, 0, len(args)+1)
	for _, a := range args {
		ops = append(ops, ir.Op{Kind: ir.OpEntity, Entity: a})
	}
	ops = append(ops, ir.Op{Kind: ir.OpCall, Slot: 0})
	p.store.CodeGenOps.Insert(call, ops)
	return call, nil
}
