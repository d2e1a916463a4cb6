package parse

import (
	"github.com/CryZe/livesplit-auto-splitting/internal/cerrors"
	"github.com/CryZe/livesplit-auto-splitting/internal/ir"
	"github.com/CryZe/livesplit-auto-splitting/internal/lex"
)

// parseFunction parses `fn name(p1, p2) { ... }`. Each parameter becomes a
// declaring entity (NameUses=[name], DeclIndex=0) exactly like a `let`
// binding, so name resolution treats parameters and locals uniformly.
func (p *Parser) parseFunction() (ir.Entity, *cerrors.Error) {
	start := p.tok.Pos.Offset
	if _, err := p.expect(lex.KwFn); err != nil {
		return 0, err
	}
	name, err := p.expect(lex.Ident)
	if err != nil {
		return 0, err
	}
	if _, err := p.expect(lex.LParen); err != nil {
		return 0, err
	}

	var params []ir.Entity
	for !p.at(lex.RParen) {
		pstart := p.tok.Pos.Offset
		pname, err := p.expect(lex.Ident)
		if err != nil {
			return 0, err
		}
		paramEntity := p.newEntity(p.rangeFrom(pstart))
		p.store.NameUses.Insert(paramEntity, []string{pname.Text})
		p.store.DeclIndex.Insert(paramEntity, 0)
		// The parameter's own type mirrors its variable's (so a type found
		// by call-site argument propagation, wired in by resolve.Run, flows
		// on to every use of the parameter inside the body).
		p.store.TypeConstraints.Insert(paramEntity, []ir.TypeEdge{{Kind: ir.EdgeVarSameAsMe, Slot: 0}})
		params = append(params, paramEntity)
		if p.at(lex.Comma) {
			if err := p.advance(); err != nil {
				return 0, err
			}
		}
	}
	if _, err := p.expect(lex.RParen); err != nil {
		return 0, err
	}

	body, err := p.parseBlockExpr()
	if err != nil {
		return 0, err
	}

	fn := p.newEntity(p.rangeFrom(start))
	// The function entity itself declares its own name (pre-declared by
	// name resolution before the walk, enabling recursion and forward
	// visibility among sibling functions) and carries the parameter list.
	p.store.NameUses.Insert(fn, []string{name.Text})
	p.store.FunctionDecl.Insert(fn, ir.FunctionDecl{Params: params})
	p.store.Children.Insert(fn, append(append([]ir.Entity{}, params...), body))
	p.store.MarkScopeBoundary(fn)
	// The function's own type tracks its body's tail type, so a call to
	// it can unify against the function entity directly.
	p.store.TypeConstraints.Insert(fn, []ir.TypeEdge{{Kind: ir.EdgeSameAsMe, Other: body}})
	return fn, nil
}
