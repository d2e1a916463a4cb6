// Package parse is a recursive-descent parser that builds ir.Entity nodes
// directly as it recognizes the grammar, rather than producing a separate
// parse tree. Scope bookkeeping (which declarations are visible where) is
// deliberately NOT done here: the parser only records the structural
// markers (ScopeBoundary, NameUses, DeclIndex) that the name-resolution
// pass needs; actual binding happens later.
package parse

import (
	"fmt"

	"github.com/CryZe/livesplit-auto-splitting/internal/cerrors"
	"github.com/CryZe/livesplit-auto-splitting/internal/ir"
	"github.com/CryZe/livesplit-auto-splitting/internal/lex"
)

// Parser holds one parse over one source file.
type Parser struct {
	lx    *lex.Lexer
	store *ir.Store
	file  string
	src   string

	tok     lex.Token
	prevEnd int
}

// Parse scans and parses src into a fresh ir.Store. It returns the first
// error encountered, as a SyntaxError, or as MissingStateBlock when the
// source has no state block; recovery is none, matching the rest of this
// compiler's error-handling design.
func Parse(src, file string) (*ir.Store, *cerrors.Error) {
	p := &Parser{lx: lex.New(src), store: ir.NewStore(), file: file, src: src}
	if err := p.advance(); err != nil {
		return nil, err
	}
	source, err := p.parseSource()
	if err != nil {
		return nil, err
	}
	p.store.Source = source
	return p.store, nil
}

func (p *Parser) advance() *cerrors.Error {
	tok, err := p.lx.Next()
	if err != nil {
		lexErr := err.(*lex.Error)
		kind := cerrors.SyntaxError
		return &cerrors.Error{Kind: kind, Message: lexErr.Msg, Pos: toPos(lexErr.Pos), File: p.file, Source: p.src}
	}
	p.prevEnd = p.tok.Pos.Offset + len(p.tok.Text)
	p.tok = tok
	return nil
}

func toPos(p lex.Position) cerrors.Position {
	return cerrors.Position{Line: p.Line, Column: p.Column}
}

func (p *Parser) errorf(format string, args ...any) *cerrors.Error {
	return &cerrors.Error{
		Kind:    cerrors.SyntaxError,
		Message: fmt.Sprintf(format, args...),
		Pos:     toPos(p.tok.Pos),
		File:    p.file,
		Source:  p.src,
	}
}

func (p *Parser) unrecognizedToken() *cerrors.Error {
	return p.errorf("unrecognized token %s", p.tok.Kind)
}

func (p *Parser) expect(k lex.Kind) (lex.Token, *cerrors.Error) {
	if p.tok.Kind != k {
		return lex.Token{}, p.errorf("expected %s, found %s", k, p.tok.Kind)
	}
	tok := p.tok
	if err := p.advance(); err != nil {
		return lex.Token{}, err
	}
	return tok, nil
}

func (p *Parser) at(k lex.Kind) bool { return p.tok.Kind == k }

// peekNext reports the kind of the token after the current one, without
// consuming anything. The lexer holds only value types (a string slice
// plus three ints), so cloning it to scan ahead is cheap.
func (p *Parser) peekNext() (lex.Kind, *cerrors.Error) {
	clone := *p.lx
	tok, err := clone.Next()
	if err != nil {
		return 0, &cerrors.Error{Kind: cerrors.SyntaxError, Message: err.Error(),
			Pos: toPos(p.tok.Pos), File: p.file, Source: p.src}
	}
	return tok.Kind, nil
}

// rangeFrom builds a ByteRange from a starting offset to the end of the
// token just consumed (prevEnd).
func (p *Parser) rangeFrom(startOffset int) ir.ByteRange {
	return ir.ByteRange{Start: startOffset, End: p.prevEnd}
}

func (p *Parser) newEntity(rng ir.ByteRange) ir.Entity {
	e := p.store.NewEntity()
	p.store.Range.Insert(e, rng)
	return e
}

// parseSource parses the whole top-level item list.
func (p *Parser) parseSource() (*ir.Source, *cerrors.Error) {
	src := &ir.Source{}
	for !p.at(lex.EOF) {
		switch p.tok.Kind {
		case lex.KwState:
			if src.State != nil {
				return nil, p.errorf("duplicate state block")
			}
			state, err := p.parseState()
			if err != nil {
				return nil, err
			}
			src.State = state
			src.Items = append(src.Items, ir.Item{Kind: ir.ItemState})
		case lex.KwStart, lex.KwSplit, lex.KwReset, lex.KwIsLoading, lex.KwGameTime:
			kind := actionKindFor(p.tok.Kind)
			if err := p.advance(); err != nil {
				return nil, err
			}
			body, err := p.parseBlockExpr()
			if err != nil {
				return nil, err
			}
			src.Items = append(src.Items, ir.Item{Kind: ir.ItemAction, Action: kind, Body: body})
		case lex.KwFn:
			fn, err := p.parseFunction()
			if err != nil {
				return nil, err
			}
			src.Items = append(src.Items, ir.Item{Kind: ir.ItemFunction, Body: fn})
		default:
			return nil, p.unrecognizedToken()
		}
	}
	if src.State == nil {
		return nil, &cerrors.Error{Kind: cerrors.MissingStateBlock,
			Message: "you need at least one state block", File: p.file, Source: p.src}
	}
	return src, nil
}

func actionKindFor(k lex.Kind) ir.ActionKind {
	switch k {
	case lex.KwStart:
		return ir.ActionStart
	case lex.KwSplit:
		return ir.ActionSplit
	case lex.KwReset:
		return ir.ActionReset
	case lex.KwIsLoading:
		return ir.ActionIsLoading
	case lex.KwGameTime:
		return ir.ActionGameTime
	}
	panic("parse: actionKindFor called on non-action token")
}

// parseState parses `state("name") { field: type in "module"[off]...; ... }`.
func (p *Parser) parseState() (*ir.State, *cerrors.Error) {
	if _, err := p.expect(lex.KwState); err != nil {
		return nil, err
	}
	if _, err := p.expect(lex.LParen); err != nil {
		return nil, err
	}
	name, err := p.expect(lex.String)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lex.RParen); err != nil {
		return nil, err
	}
	if _, err := p.expect(lex.LBrace); err != nil {
		return nil, err
	}
	state := &ir.State{ProcessName: name.StringValue}
	for !p.at(lex.RBrace) {
		path, err := p.parsePointerPath()
		if err != nil {
			return nil, err
		}
		state.Paths = append(state.Paths, path)
	}
	if _, err := p.expect(lex.RBrace); err != nil {
		return nil, err
	}
	return state, nil
}

func (p *Parser) parsePointerPath() (ir.PointerPath, *cerrors.Error) {
	fieldName, err := p.expect(lex.Ident)
	if err != nil {
		return ir.PointerPath{}, err
	}
	if _, err := p.expect(lex.Colon); err != nil {
		return ir.PointerPath{}, err
	}
	ty, err := p.parseTypeName()
	if err != nil {
		return ir.PointerPath{}, err
	}
	if _, err := p.expect(lex.KwIn); err != nil {
		return ir.PointerPath{}, err
	}
	module, err := p.expect(lex.String)
	if err != nil {
		return ir.PointerPath{}, err
	}
	var offsets []int64
	for p.at(lex.LBracket) {
		if err := p.advance(); err != nil {
			return ir.PointerPath{}, err
		}
		neg := false
		if p.at(lex.Minus) {
			neg = true
			if err := p.advance(); err != nil {
				return ir.PointerPath{}, err
			}
		}
		num, err := p.expect(lex.Int)
		if err != nil {
			return ir.PointerPath{}, err
		}
		v := num.IntValue
		if neg {
			v = -v
		}
		offsets = append(offsets, v)
		if _, err := p.expect(lex.RBracket); err != nil {
			return ir.PointerPath{}, err
		}
	}
	if _, err := p.expect(lex.Semicolon); err != nil {
		return ir.PointerPath{}, err
	}
	return ir.PointerPath{Name: fieldName.Text, Type: ty, Module: module.StringValue, Offsets: offsets}, nil
}

var typeNames = map[string]ir.Type{
	"bool": ir.Bool, "u8": ir.U8, "u16": ir.U16, "u32": ir.U32, "u64": ir.U64,
	"i8": ir.I8, "i16": ir.I16, "i32": ir.I32, "i64": ir.I64, "f32": ir.F32, "f64": ir.F64,
}

func (p *Parser) parseTypeName() (ir.Type, *cerrors.Error) {
	tok, err := p.expect(lex.Ident)
	if err != nil {
		return ir.TypeNone, err
	}
	ty, ok := typeNames[tok.Text]
	if !ok {
		return ir.TypeNone, &cerrors.Error{Kind: cerrors.SyntaxError,
			Message: fmt.Sprintf("unknown type name %q", tok.Text), Pos: toPos(tok.Pos), File: p.file, Source: p.src}
	}
	return ty, nil
}
