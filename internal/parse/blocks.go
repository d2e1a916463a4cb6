package parse

import (
	"github.com/CryZe/livesplit-auto-splitting/internal/cerrors"
	"github.com/CryZe/livesplit-auto-splitting/internal/ir"
	"github.com/CryZe/livesplit-auto-splitting/internal/lex"
)

// parseBlockExpr parses `{ stmt* }`. If the final statement has no
// trailing semicolon, the block's type and value are that statement's;
// otherwise the block is Unit. Matches the "trailing ; discards it to
// Unit" rule in the grammar sketch.
func (p *Parser) parseBlockExpr() (ir.Entity, *cerrors.Error) {
	start := p.tok.Pos.Offset
	if _, err := p.expect(lex.LBrace); err != nil {
		return 0, err
	}

	type stmt struct {
		entity  ir.Entity
		isTail  bool // true only for the last statement when it has no trailing ';'
	}
	var stmts []stmt

	for !p.at(lex.RBrace) {
		e, hasSemi, err := p.parseStmt()
		if err != nil {
			return 0, err
		}
		isTail := !hasSemi
		stmts = append(stmts, stmt{entity: e, isTail: isTail})
		if hasSemi {
			if _, err := p.expect(lex.Semicolon); err != nil {
				return 0, err
			}
		}
	}
	if _, err := p.expect(lex.RBrace); err != nil {
		return 0, err
	}

	blk := p.newEntity(p.rangeFrom(start))
	p.store.MarkScopeBoundary(blk)

	var ops []ir.Op
	var children []ir.Entity
	ops = append(ops, ir.Op{Kind: ir.OpBlock})
	for i, s := range stmts {
		children = append(children, s.entity)
		ops = append(ops, ir.Op{Kind: ir.OpEntity, Entity: s.entity})
		last := i == len(stmts)-1
		if !(last && s.isTail) {
			ops = append(ops, ir.Op{Kind: ir.OpDrop, Entity: s.entity})
		}
	}
	ops = append(ops, ir.Op{Kind: ir.OpEnd})

	p.store.Children.Insert(blk, children)
	p.store.CodeGenOps.Insert(blk, ops)

	if len(stmts) > 0 && stmts[len(stmts)-1].isTail {
		tail := stmts[len(stmts)-1].entity
		p.store.TypeConstraints.Insert(blk, []ir.TypeEdge{{Kind: ir.EdgeSameAsMe, Other: tail}})
	} else {
		p.store.Type.Insert(blk, ir.Unit)
	}

	return blk, nil
}

// parseStmt parses one statement and reports whether it was terminated by
// a semicolon the caller still needs to consume.
func (p *Parser) parseStmt() (ir.Entity, bool, *cerrors.Error) {
	switch p.tok.Kind {
	case lex.KwLet:
		e, err := p.parseLet()
		return e, true, err
	case lex.KwIf:
		e, err := p.parseIf()
		return e, false, err
	case lex.KwWhile:
		e, err := p.parseWhile()
		return e, false, err
	case lex.LBrace:
		e, err := p.parseBlockExpr()
		return e, false, err
	default:
		return p.parseExprOrAssignStmt()
	}
}

// parseLet parses `let name[: type] = expr`.
func (p *Parser) parseLet() (ir.Entity, *cerrors.Error) {
	start := p.tok.Pos.Offset
	if _, err := p.expect(lex.KwLet); err != nil {
		return 0, err
	}
	name, err := p.expect(lex.Ident)
	if err != nil {
		return 0, err
	}
	var annotated ir.Type
	hasAnnotation := false
	if p.at(lex.Colon) {
		if err := p.advance(); err != nil {
			return 0, err
		}
		annotated, err = p.parseTypeName()
		if err != nil {
			return 0, err
		}
		hasAnnotation = true
	}
	if _, err := p.expect(lex.Eq); err != nil {
		return 0, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return 0, err
	}

	decl := p.newEntity(p.rangeFrom(start))
	p.store.NameUses.Insert(decl, []string{name.Text})
	p.store.DeclIndex.Insert(decl, 0)
	p.store.Children.Insert(decl, []ir.Entity{value})
	p.store.CodeGenOps.Insert(decl, []ir.Op{
		{Kind: ir.OpEntity, Entity: value},
		{Kind: ir.OpStoreVar, Slot: 0},
	})
	p.store.TypeConstraints.Insert(decl, []ir.TypeEdge{
		{Kind: ir.EdgeVarSameAsMe, Slot: 0},
		{Kind: ir.EdgeSameAsMe, Other: value},
	})
	p.store.ExtendConstraints.Insert(decl, []ir.ExtendEdge{
		{Kind: ir.ExtendFromEntity, From: value},
		{Kind: ir.ExtendStoreVar, Slot: 0},
	})
	if hasAnnotation {
		p.store.Type.Insert(decl, annotated)
	}
	return decl, nil
}

// parseExprOrAssignStmt parses either `name = expr`, `name <op>= expr`, or
// a bare expression statement.
func (p *Parser) parseExprOrAssignStmt() (ir.Entity, bool, *cerrors.Error) {
	if p.at(lex.Ident) {
		next, err := p.peekNext()
		if err != nil {
			return 0, false, err
		}
		if isAssignStart(next) {
			e, err := p.parseAssign()
			return e, true, err
		}
	}
	e, err := p.parseExpr()
	if err != nil {
		return 0, false, err
	}
	// An expression directly before the closing brace is the block's tail
	// value; anywhere else it must be terminated by ';'.
	return e, !p.at(lex.RBrace), nil
}

func isAssignStart(k lex.Kind) bool {
	switch k {
	case lex.Eq, lex.PlusEq, lex.MinusEq, lex.StarEq, lex.SlashEq,
		lex.AmpEq, lex.PipeEq, lex.CaretEq, lex.ShlEq, lex.ShrEq:
		return true
	default:
		return false
	}
}
