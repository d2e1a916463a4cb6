// Package arity implements the call-arity check: every call site's argument
// count must match its resolved callee's declared parameter count.
package arity

import (
	"fmt"
	"sort"

	"github.com/CryZe/livesplit-auto-splitting/internal/cerrors"
	"github.com/CryZe/livesplit-auto-splitting/internal/ir"
)

// Check walks every FunctionCall node and compares its argument count
// against the FunctionDecl of its resolved callee (ResolvedUses[0]), the
// first name resolved for a call node. It reports the first mismatch found,
// in ascending entity order so errors are reproducible.
func Check(store *ir.Store) *cerrors.Error {
	calls := store.FunctionCall.Keys()
	sort.Slice(calls, func(i, j int) bool { return calls[i] < calls[j] })

	for _, call := range calls {
		fc := store.FunctionCall.MustGet(call)

		resolved, ok := store.ResolvedUses.Get(call)
		if !ok || len(resolved) == 0 {
			// Name resolution already rejected this call if its callee
			// couldn't be resolved; nothing further to check here.
			continue
		}
		callee := resolved[0]

		decl, ok := store.FunctionDecl.Get(callee)
		if !ok {
			// The resolved name isn't a function (e.g. a variable shadowing
			// a function name): treated as an internal inconsistency since
			// the grammar only ever builds FunctionCall nodes for call
			// syntax, which can only bind to declared functions.
			return &cerrors.Error{Kind: cerrors.InternalCompilerError,
				Message: "call target is not a function declaration",
				Pos:     posOf(store, call)}
		}

		expected := len(decl.Params)
		if fc.Arguments != expected {
			return &cerrors.Error{Kind: cerrors.ArityMismatch,
				Message: fmt.Sprintf("expected %d argument(s), got %d", expected, fc.Arguments),
				Pos:     posOf(store, call)}
		}
	}
	return nil
}

// posOf is the same byte-offset-as-column placeholder used by internal/resolve;
// internal/compiler re-wraps it with a real line/column once it has the
// source text in hand.
func posOf(store *ir.Store, e ir.Entity) cerrors.Position {
	rng, _ := store.Range.Get(e)
	return cerrors.Position{Line: 0, Column: rng.Start}
}
