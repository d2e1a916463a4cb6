// Package compiler wires the whole pipeline together: parse, name
// resolution, the arity/type/extend checks, code generation, and the three
// IDE queries (hover, go-to-definition, find-all-references) that consult
// the same ir.Store a successful Compile produced.
package compiler

import (
	"github.com/CryZe/livesplit-auto-splitting/internal/arity"
	"github.com/CryZe/livesplit-auto-splitting/internal/cerrors"
	"github.com/CryZe/livesplit-auto-splitting/internal/codegen"
	"github.com/CryZe/livesplit-auto-splitting/internal/extend"
	"github.com/CryZe/livesplit-auto-splitting/internal/host"
	"github.com/CryZe/livesplit-auto-splitting/internal/ir"
	"github.com/CryZe/livesplit-auto-splitting/internal/parse"
	"github.com/CryZe/livesplit-auto-splitting/internal/resolve"
	"github.com/CryZe/livesplit-auto-splitting/internal/typeinfer"
	"github.com/CryZe/livesplit-auto-splitting/internal/wasm/module"
)

// Result is the outcome of a successful Compile: the fully annotated store
// (for queries) and the assembled WASM module.
type Result struct {
	Store  *ir.Store
	Module *module.Module
}

// Compile runs the whole pipeline over src, named file for diagnostics, and
// returns the compiled module, or the first error encountered. Every stage
// aborts on its own first error, matching this compiler's "no recovery
// within a pass" design; Compile itself simply runs the stages in order and
// stamps File/Source (and a real line/column, in place of the raw byte
// offset every pass after parsing reports) onto whichever error comes back.
func Compile(src, file string) (*Result, *cerrors.Error) {
	store, err := parse.Parse(src, file)
	if err != nil {
		return nil, stamp(err, src, file)
	}

	if err := stamp(resolve.Run(store), src, file); err != nil {
		return nil, err
	}
	if err := stamp(arity.Check(store), src, file); err != nil {
		return nil, err
	}
	if err := stamp(typeinfer.Infer(store), src, file); err != nil {
		return nil, err
	}
	typeinfer.Default(store)
	extend.Run(store)

	codegen.NumberFunctions(store, int(host.FirstUserFuncIndex))
	codegen.AssignParamRegisters(store)
	codegen.AllocateLocals(store)

	m := codegen.Generate(store)
	return &Result{Store: store, Module: m}, nil
}

// stamp fills in File/Source on an error from a pass that only knows byte
// offsets (every pass after parsing builds its Position as
// {Line: 0, Column: byteOffset} — see posOf in arity and typeinfer and
// positionFromRange in resolve), turning
// that byte offset into a real line/column against src.
func stamp(err *cerrors.Error, src, file string) *cerrors.Error {
	if err == nil {
		return nil
	}
	if err.Pos.Line == 0 {
		err.Pos.Line, err.Pos.Column = lineColumn(src, err.Pos.Column)
	}
	err.File = file
	err.Source = src
	return err
}
