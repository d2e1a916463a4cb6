// Package resolve implements name resolution: binding every identifier use
// in the program to the declaration it refers to under lexical scoping.
package resolve

import (
	"github.com/CryZe/livesplit-auto-splitting/internal/cerrors"
	"github.com/CryZe/livesplit-auto-splitting/internal/ir"
)

// frame is one lexical scope: the (name, entity) bindings introduced
// directly in it.
type frame struct {
	bindings []binding
}

type binding struct {
	name   string
	entity ir.Entity
}

// scopes is a stack of frames searched innermost-first on lookup, so
// shadowing resolves to the most recently declared binding.
type scopes struct {
	frames []frame
}

func (s *scopes) push() { s.frames = append(s.frames, frame{}) }
func (s *scopes) pop()  { s.frames = s.frames[:len(s.frames)-1] }

func (s *scopes) declare(name string, e ir.Entity) {
	top := len(s.frames) - 1
	s.frames[top].bindings = append(s.frames[top].bindings, binding{name, e})
}

func (s *scopes) lookup(name string) (ir.Entity, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		b := s.frames[i].bindings
		for j := len(b) - 1; j >= 0; j-- {
			if b[j].name == name {
				return b[j].entity, true
			}
		}
	}
	return 0, false
}

// Run resolves every name use reachable from the program's code items. It
// pre-declares all function names in the outermost scope first so
// recursive calls and forward references between sibling functions
// resolve, then walks each code item's tree.
func Run(store *ir.Store) *cerrors.Error {
	var s scopes
	s.push()

	for _, item := range store.Source.CodeItems() {
		if item.Kind == ir.ItemFunction {
			names, _ := store.NameUses.Get(item.Body)
			if len(names) > 0 {
				s.declare(names[0], item.Body)
			}
		}
	}

	for _, item := range store.Source.CodeItems() {
		if err := walk(store, &s, item.Body); err != nil {
			return err
		}
	}
	return nil
}

func walk(store *ir.Store, s *scopes, e ir.Entity) *cerrors.Error {
	pushed := store.ScopeBoundary.Has(e)
	if pushed {
		s.push()
	}

	if names, ok := store.NameUses.Get(e); ok {
		if err := resolveNames(store, s, e, names); err != nil {
			return err
		}
	}

	if _, ok := store.FunctionCall.Get(e); ok {
		linkCallArgsToParams(store, e)
	}

	if children, ok := store.Children.Get(e); ok {
		for _, c := range children {
			if err := walk(store, s, c); err != nil {
				return err
			}
		}
	}

	if pushed {
		s.pop()
	}
	return nil
}

// linkCallArgsToParams ties each call argument's type to the matching
// parameter of the resolved callee, by appending a SameAsMe edge onto the
// parameter's own TypeConstraints for every call site that reaches it. A
// parameter used by several calls accumulates one edge per call, so C4
// narrows it against every argument supplied anywhere in the program, the
// same way a binary operator narrows against both of its operands.
func linkCallArgsToParams(store *ir.Store, call ir.Entity) {
	resolved, ok := store.ResolvedUses.Get(call)
	if !ok || len(resolved) == 0 {
		return
	}
	decl, ok := store.FunctionDecl.Get(resolved[0])
	if !ok {
		return
	}
	args, _ := store.Children.Get(call)
	n := len(args)
	if len(decl.Params) < n {
		n = len(decl.Params)
	}
	for i := 0; i < n; i++ {
		param := decl.Params[i]
		edges, _ := store.TypeConstraints.Get(param)
		edges = append(edges, ir.TypeEdge{Kind: ir.EdgeSameAsMe, Other: args[i]})
		store.TypeConstraints.Insert(param, edges)
	}
}

func resolveNames(store *ir.Store, s *scopes, e ir.Entity, names []string) *cerrors.Error {
	resolved, _ := store.ResolvedUses.Get(e)

	declIdx, hasDecl := store.DeclIndex.Get(e)

	for i, name := range names {
		if hasDecl && i == declIdx {
			varEntity := store.NewEntity()
			rng, _ := store.Range.Get(e)
			store.Range.Insert(varEntity, rng)
			s.declare(name, varEntity)
			store.DeclaredBy.Insert(varEntity, e)
			if ty, ok := store.Type.Get(e); ok {
				store.Type.Insert(varEntity, ty)
			}
			resolved = append(resolved, varEntity)
			continue
		}

		target, ok := s.lookup(name)
		if !ok {
			rng, _ := store.Range.Get(e)
			pos := positionFromRange(store, rng)
			return &cerrors.Error{Kind: cerrors.UnresolvedName,
				Message: "unresolved name " + name, Pos: pos}
		}
		resolved = append(resolved, target)
	}

	store.ResolvedUses.Insert(e, resolved)
	return nil
}

// positionFromRange is a placeholder byte-range-to-position mapping; the
// real conversion (requiring the source text to count lines) happens at
// the embedder boundary in internal/compiler, which re-wraps this error
// with full position and source-context information. Resolution itself
// only needs to carry the byte offset forward.
func positionFromRange(store *ir.Store, rng ir.ByteRange) cerrors.Position {
	return cerrors.Position{Line: 0, Column: rng.Start}
}
