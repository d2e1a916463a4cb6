// Package extend implements C6: the NeedsExtend fixpoint over each
// entity's ExtendConstraints edges.
package extend

import "github.com/CryZe/livesplit-auto-splitting/internal/ir"

// Run propagates NeedsExtend to a fixpoint. FromEntity and LoadVar edges
// pull the marker forward from another entity or a variable's current
// state; StoreVar edges push it backward onto the stored-to variable, so a
// variable later read in a width-sensitive position retroactively demands
// extension at every point it was assigned.
func Run(store *ir.Store) {
	entities := store.ExtendConstraints.Keys()

	for {
		changed := false
		for _, e := range entities {
			edges := store.ExtendConstraints.MustGet(e)
			for _, edge := range edges {
				switch edge.Kind {
				case ir.ExtendFromEntity:
					if store.NeedsExtend.Has(edge.From) {
						if already := store.MarkNeedsExtend(e); !already {
							changed = true
						}
					}
				case ir.ExtendLoadVar:
					if target, ok := varTarget(store, e, edge.Slot); ok && store.NeedsExtend.Has(target) {
						if already := store.MarkNeedsExtend(e); !already {
							changed = true
						}
					}
				case ir.ExtendStoreVar:
					if store.NeedsExtend.Has(e) {
						if target, ok := varTarget(store, e, edge.Slot); ok {
							if already := store.MarkNeedsExtend(target); !already {
								changed = true
							}
						}
					}
				}
			}
		}
		if !changed {
			return
		}
	}
}

func varTarget(store *ir.Store, e ir.Entity, slot int) (ir.Entity, bool) {
	resolved, ok := store.ResolvedUses.Get(e)
	if !ok || slot >= len(resolved) {
		return 0, false
	}
	return resolved[slot], true
}
