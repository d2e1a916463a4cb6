// Package autosplit is the public facade over the compiler: it turns auto
// splitter source text into a WASM module ready to be loaded by a host, and
// answers the IDE queries (hover, go-to-definition, find-all-references)
// against the same compiled program.
package autosplit

import (
	"fmt"
	"io"

	"github.com/CryZe/livesplit-auto-splitting/internal/cerrors"
	"github.com/CryZe/livesplit-auto-splitting/internal/compiler"
	"github.com/CryZe/livesplit-auto-splitting/internal/ir"
	"github.com/CryZe/livesplit-auto-splitting/internal/wasm/module"
)

// Option configures an Engine. Engines are cheap and stateless beyond their
// options, so most callers can share one across every Compile call.
type Option func(*Engine)

// WithOutput directs diagnostic output (currently: nothing the engine emits
// itself, reserved for future warnings) to w instead of io.Discard.
func WithOutput(w io.Writer) Option {
	return func(e *Engine) { e.output = w }
}

// Engine compiles auto splitter source into a Program, which answers IDE
// queries against the result. The zero value is not usable; construct one with New.
type Engine struct {
	output io.Writer
}

// New creates an Engine. It never fails today — the error return exists so
// future options (e.g. loading a shared configuration file) can fail without
// changing the signature.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{output: io.Discard}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Program is the result of a successful Compile: the assembled WASM module
// plus the annotated store backing Program's query methods.
type Program struct {
	store *ir.Store
	src   string

	// Module is the compiled WASM module, ready to be encoded with
	// module.Encode or inspected directly.
	Module *module.Module
}

// Compile parses, checks, and lowers src to a WASM module. file names the
// source for diagnostics; pass "" if the source has no file of its own.
func (e *Engine) Compile(src, file string) (*Program, error) {
	result, cerr := compiler.Compile(src, file)
	if cerr != nil {
		return nil, cerr
	}
	return &Program{store: result.Store, src: src, Module: result.Module}, nil
}

// Bytes encodes the compiled module to its binary WASM representation.
func (p *Program) Bytes() []byte {
	return module.Encode(p.Module)
}

// Position is a 1-indexed cursor position within a Program's source, as a
// caller (an editor) would report it.
type Position struct {
	Line, Column int
}

// Span is a half-open source range reported back by a query, as two 1-indexed
// cursor positions.
type Span struct {
	From, To Position
}

func toSpan(s compiler.Span) Span {
	return Span{
		From: Position{Line: s.FromLine, Column: s.FromColumn},
		To:   Position{Line: s.ToLine, Column: s.ToColumn},
	}
}

// HoverInfo describes what's under a cursor: its inferred type, its source
// span, and — for a function name — its parameter types.
type HoverInfo struct {
	Type   string
	Params []string
	Span   Span
}

// Hover reports type information for the entity under the given cursor
// position, or false if nothing typed sits there.
func (p *Program) Hover(pos Position) (HoverInfo, bool) {
	h, ok := compiler.Hover(p.store, p.src, pos.Line, pos.Column)
	if !ok {
		return HoverInfo{}, false
	}
	info := HoverInfo{Type: h.Type.String(), Span: toSpan(h.Span)}
	for _, pt := range h.Params {
		info.Params = append(info.Params, pt.String())
	}
	return info, true
}

// GoToDefinition resolves the name under the given cursor position to the
// span of its declaration, or false if the cursor isn't on a resolvable name.
func (p *Program) GoToDefinition(pos Position) (Span, bool) {
	s, ok := compiler.GoToDefinition(p.store, p.src, pos.Line, pos.Column)
	if !ok {
		return Span{}, false
	}
	return toSpan(s), true
}

// FindAllReferences returns the span of every use of the name under the
// given cursor position, including the cursor's own use.
func (p *Program) FindAllReferences(pos Position) ([]Span, bool) {
	spans, ok := compiler.FindAllReferences(p.store, p.src, pos.Line, pos.Column)
	if !ok {
		return nil, false
	}
	out := make([]Span, len(spans))
	for i, s := range spans {
		out[i] = toSpan(s)
	}
	return out, true
}

// FormatError renders a compile error the way a terminal would, honoring
// color if requested. It's a thin convenience over cerrors.Error.Format for
// callers that don't want to import internal/cerrors themselves.
func FormatError(err error, color bool) string {
	if cerr, ok := err.(*cerrors.Error); ok {
		return cerr.Format(color)
	}
	return fmt.Sprint(err)
}
