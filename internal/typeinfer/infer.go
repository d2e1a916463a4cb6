// Package typeinfer implements C4 (fixpoint type inference over the
// TypeConstraints edges) and C5 (the default-type pass that closes any
// still-open type down to a concrete WASM-representable one).
package typeinfer

import (
	"fmt"
	"sort"

	"github.com/CryZe/livesplit-auto-splitting/internal/cerrors"
	"github.com/CryZe/livesplit-auto-splitting/internal/ir"
)

// Infer runs C4 to a fixpoint, then checks that every entity carrying
// CodeGenOps ended up with a concrete-or-open type.
func Infer(store *ir.Store) *cerrors.Error {
	entities := store.TypeConstraints.Keys()
	sort.Slice(entities, func(i, j int) bool { return entities[i] < entities[j] })

	for {
		changed, err := sweep(store, entities)
		if err != nil {
			return err
		}
		if !changed {
			break
		}
	}

	for {
		hinted, err := hintSweep(store, entities)
		if err != nil {
			return err
		}
		if !hinted {
			break
		}
		for {
			changed, err := sweep(store, entities)
			if err != nil {
				return err
			}
			if !changed {
				break
			}
		}
	}

	return checkEveryCodeGenOpsHasType(store)
}

// sweep performs one pass of the main SameAsMe/VarSameAsMe/StateVarSameAsMe
// fixpoint and reports whether anything changed. Dirtiness is tracked per
// edge, not on whether mine itself moved: an edge's target is written back
// (and the sweep counts as changed) whenever it disagrees with the
// narrowed value, even if mine was already pinned to that value before
// this sweep began (e.g. an annotated `let y: u8 = 7;` must still push u8
// onto the literal `7`, which starts out as the open Number type).
func sweep(store *ir.Store, entities []ir.Entity) (bool, *cerrors.Error) {
	changed := false
	for _, e := range entities {
		edges := store.TypeConstraints.MustGet(e)
		mine, _ := store.Type.Get(e)

		for _, edge := range edges {
			if edge.Kind == ir.EdgeTypeHint {
				continue
			}
			other, ok, cerr := edgeType(store, e, edge)
			if cerr != nil {
				return false, cerr
			}
			if !ok {
				continue
			}
			narrowed, ok := ir.Spread(mine, other)
			if !ok {
				return false, &cerrors.Error{Kind: cerrors.TypeConflict,
					Message: fmt.Sprintf("incompatible types %s and %s", mine, other),
					Pos:     posOf(store, e)}
			}
			mine = narrowed
		}

		if mine != ir.TypeNone {
			store.Type.Insert(e, mine)
		}

		for _, edge := range edges {
			var target ir.Entity
			switch edge.Kind {
			case ir.EdgeSameAsMe:
				target = edge.Other
			case ir.EdgeVarSameAsMe:
				var ok bool
				target, ok = varTarget(store, e, edge.Slot)
				if !ok {
					continue
				}
			default:
				// StateVarSameAsMe and TypeHint targets are never written
				// back: a state path's type is a fixed declaration, and
				// hints only flow in their own dedicated one-way pass.
				continue
			}
			if other, ok := store.Type.Get(target); !ok || other != mine {
				store.Type.Insert(target, mine)
				changed = true
			}
		}
	}
	return changed, nil
}

// edgeType resolves the "other" type an edge spreads against.
func edgeType(store *ir.Store, e ir.Entity, edge ir.TypeEdge) (ir.Type, bool, *cerrors.Error) {
	switch edge.Kind {
	case ir.EdgeSameAsMe:
		t, ok := store.Type.Get(edge.Other)
		return t, ok, nil
	case ir.EdgeVarSameAsMe:
		target, ok := varTarget(store, e, edge.Slot)
		if !ok {
			return ir.TypeNone, false, nil
		}
		t, ok := store.Type.Get(target)
		return t, ok, nil
	case ir.EdgeStateVarSameAsMe:
		path, ok := store.Source.State.Lookup(edge.StateVarName)
		if !ok {
			return ir.TypeNone, false, &cerrors.Error{Kind: cerrors.UnresolvedStateVar,
				Message: "no state field named " + edge.StateVarName,
				Pos:     posOf(store, e)}
		}
		return path.Type, true, nil
	default:
		return ir.TypeNone, false, nil
	}
}

func varTarget(store *ir.Store, e ir.Entity, slot int) (ir.Entity, bool) {
	resolved, ok := store.ResolvedUses.Get(e)
	if !ok || slot >= len(resolved) {
		return 0, false
	}
	return resolved[slot], true
}

// hintSweep applies the one-time TypeHint pass described in C4: for each
// TypeHint(other) edge, if mine is set and other's type is absent or
// broader, write mine to other. Reports whether anything changed.
func hintSweep(store *ir.Store, entities []ir.Entity) (bool, *cerrors.Error) {
	changed := false
	for _, e := range entities {
		edges := store.TypeConstraints.MustGet(e)
		mine, ok := store.Type.Get(e)
		if !ok {
			continue
		}
		for _, edge := range edges {
			if edge.Kind != ir.EdgeTypeHint {
				continue
			}
			other, ok := store.Type.Get(edge.Other)
			if isBroaderOrAbsent(other, ok, mine) {
				store.Type.Insert(edge.Other, mine)
				changed = true
			}
		}
	}
	return changed, nil
}

func isBroaderOrAbsent(other ir.Type, otherPresent bool, mine ir.Type) bool {
	if !otherPresent || other == ir.TypeNone {
		return true
	}
	if other == mine {
		return false
	}
	narrowed, ok := ir.Spread(other, mine)
	return ok && narrowed == mine
}

// checkEveryCodeGenOpsHasType enforces C4's post-check: every entity with
// CodeGenOps must have ended up with a type, open or concrete.
func checkEveryCodeGenOpsHasType(store *ir.Store) *cerrors.Error {
	ids := store.CodeGenOps.Keys()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, e := range ids {
		if _, ok := store.Type.Get(e); !ok {
			return &cerrors.Error{Kind: cerrors.UninferredType,
				Message: "could not infer a type for this expression",
				Pos:     posOf(store, e)}
		}
	}
	return nil
}

func posOf(store *ir.Store, e ir.Entity) cerrors.Position {
	rng, _ := store.Range.Get(e)
	return cerrors.Position{Line: 0, Column: rng.Start}
}
