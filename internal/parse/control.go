package parse

import (
	"github.com/CryZe/livesplit-auto-splitting/internal/cerrors"
	"github.com/CryZe/livesplit-auto-splitting/internal/ir"
	"github.com/CryZe/livesplit-auto-splitting/internal/lex"
)

// compoundOps maps a compound-assignment token to the binary op it
// desugars to: `x op= e` becomes `x = x op e`.
var compoundOps = map[lex.Kind]ir.OpKind{
	lex.PlusEq:  ir.OpAdd,
	lex.MinusEq: ir.OpSub,
	lex.StarEq:  ir.OpMul,
	lex.SlashEq: ir.OpDiv,
	lex.AmpEq:   ir.OpBitAnd,
	lex.PipeEq:  ir.OpBitOr,
	lex.CaretEq: ir.OpXor,
	lex.ShlEq:   ir.OpLShift,
	lex.ShrEq:   ir.OpRShift,
}

// parseAssign parses `name = expr` or `name <op>= expr`.
func (p *Parser) parseAssign() (ir.Entity, *cerrors.Error) {
	start := p.tok.Pos.Offset
	name, err := p.expect(lex.Ident)
	if err != nil {
		return 0, err
	}
	opTok := p.tok
	if err := p.advance(); err != nil {
		return 0, err
	}
	rhs, err := p.parseExpr()
	if err != nil {
		return 0, err
	}

	assign := p.newEntity(p.rangeFrom(start))
	p.store.NameUses.Insert(assign, []string{name.Text})

	var value ir.Entity
	nameRange := ir.ByteRange{Start: start, End: start + len(name.Text)}
	if opTok.Kind == lex.Eq {
		value = rhs
		p.store.Children.Insert(assign, []ir.Entity{rhs})
	} else {
		opKind, ok := compoundOps[opTok.Kind]
		if !ok {
			return 0, p.errorf("unexpected compound-assignment operator %s", opTok.Kind)
		}
		// The load side of the compound assignment carries its own
		// NameUses entry for the same name, so resolution binds its
		// ResolvedUses slot 0 to the same variable as the store below.
		load := p.newEntity(nameRange)
		p.store.NameUses.Insert(load, []string{name.Text})
		p.store.TypeConstraints.Insert(load, []ir.TypeEdge{{Kind: ir.EdgeVarSameAsMe, Slot: 0}})
		p.store.CodeGenOps.Insert(load, []ir.Op{{Kind: ir.OpLoadVar, Slot: 0}})
		p.store.ExtendConstraints.Insert(load, []ir.ExtendEdge{{Kind: ir.ExtendLoadVar, Slot: 0}})
		value = p.binOp(opKind, load, rhs, p.rangeFrom(start))
		p.store.Children.Insert(assign, []ir.Entity{load, rhs, value})
	}

	p.store.CodeGenOps.Insert(assign, []ir.Op{
		{Kind: ir.OpEntity, Entity: value},
		{Kind: ir.OpStoreVar, Slot: 0},
	})
	// The assignment itself is Unit, so the edges tying the variable's type
	// to the value's sit on a typing-only child (no CodeGenOps) that
	// resolves the same name.
	link := p.newEntity(nameRange)
	p.store.NameUses.Insert(link, []string{name.Text})
	p.store.TypeConstraints.Insert(link, []ir.TypeEdge{
		{Kind: ir.EdgeVarSameAsMe, Slot: 0},
		{Kind: ir.EdgeSameAsMe, Other: value},
	})
	children, _ := p.store.Children.Get(assign)
	p.store.Children.Insert(assign, append(children, link))
	p.store.ExtendConstraints.Insert(assign, []ir.ExtendEdge{
		{Kind: ir.ExtendFromEntity, From: value},
		{Kind: ir.ExtendStoreVar, Slot: 0},
	})
	p.store.Type.Insert(assign, ir.Unit)
	return assign, nil
}

// parseIf parses `if cond { ... } [else { ... }]` as a statement: both
// arms' values (if any) are computed then dropped, so the construct is
// always Unit regardless of what its arms contain.
func (p *Parser) parseIf() (ir.Entity, *cerrors.Error) {
	start := p.tok.Pos.Offset
	if _, err := p.expect(lex.KwIf); err != nil {
		return 0, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	then, err := p.parseBlockExpr()
	if err != nil {
		return 0, err
	}

	var ops []ir.Op
	children := []ir.Entity{cond, then}
	ops = append(ops,
		ir.Op{Kind: ir.OpEntity, Entity: cond},
		ir.Op{Kind: ir.OpIf},
		ir.Op{Kind: ir.OpEntity, Entity: then},
		ir.Op{Kind: ir.OpDrop, Entity: then},
	)

	if p.at(lex.KwElse) {
		if err := p.advance(); err != nil {
			return 0, err
		}
		var els ir.Entity
		if p.at(lex.KwIf) {
			els, err = p.parseIf()
		} else {
			els, err = p.parseBlockExpr()
		}
		if err != nil {
			return 0, err
		}
		children = append(children, els)
		ops = append(ops,
			ir.Op{Kind: ir.OpElse},
			ir.Op{Kind: ir.OpEntity, Entity: els},
			ir.Op{Kind: ir.OpDrop, Entity: els},
		)
	}
	ops = append(ops, ir.Op{Kind: ir.OpEnd})

	ifEntity := p.newEntity(p.rangeFrom(start))
	p.store.Children.Insert(ifEntity, children)
	p.store.CodeGenOps.Insert(ifEntity, ops)
	p.store.Type.Insert(ifEntity, ir.Unit)
	return ifEntity, nil
}

// parseWhile parses `while cond { ... }`, lowered to the standard
// block/loop/br_if/br pattern: the loop body always discards its Block's
// tail value the same way an if-statement's arms do.
func (p *Parser) parseWhile() (ir.Entity, *cerrors.Error) {
	start := p.tok.Pos.Offset
	if _, err := p.expect(lex.KwWhile); err != nil {
		return 0, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	body, err := p.parseBlockExpr()
	if err != nil {
		return 0, err
	}

	notCond := p.unaryOp(ir.OpNot, cond, p.rangeFrom(start))

	whileEntity := p.newEntity(p.rangeFrom(start))
	p.store.Children.Insert(whileEntity, []ir.Entity{cond, notCond, body})
	p.store.CodeGenOps.Insert(whileEntity, []ir.Op{
		{Kind: ir.OpBlock},
		{Kind: ir.OpLoop},
		{Kind: ir.OpEntity, Entity: notCond},
		{Kind: ir.OpBrIf, Depth: 1},
		{Kind: ir.OpEntity, Entity: body},
		{Kind: ir.OpDrop, Entity: body},
		{Kind: ir.OpBr, Depth: 0},
		{Kind: ir.OpEnd},
		{Kind: ir.OpEnd},
	})
	p.store.Type.Insert(whileEntity, ir.Unit)
	return whileEntity, nil
}
