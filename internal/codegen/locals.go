package codegen

import "github.com/CryZe/livesplit-auto-splitting/internal/ir"

// AssignParamRegisters implements C8: walk each function's parameters in
// declaration order, skip any with Unit type (nothing to hold at runtime),
// and record the function's ParamSignature plus each live parameter's
// LocalRegister.
func AssignParamRegisters(store *ir.Store) {
	for _, item := range store.Source.CodeItems() {
		if item.Kind != ir.ItemFunction {
			// Actions take no parameters, but still need a (nil)
			// ParamSignature entry so AllocateLocals knows where their
			// locals start.
			if item.Kind == ir.ItemAction {
				store.ParamSignature.Insert(item.Body, nil)
			}
			continue
		}
		fn := item.Body
		decl := store.FunctionDecl.MustGet(fn)

		var sig []ir.RegisterClass
		for _, param := range decl.Params {
			varEntity, ok := paramVariable(store, param)
			if !ok {
				continue
			}
			ty := store.Type.MustGet(varEntity)
			if ty == ir.Unit {
				continue
			}
			store.LocalRegister.Insert(varEntity, len(sig))
			sig = append(sig, ty.Class())
		}
		store.ParamSignature.Insert(fn, sig)
	}
}

func paramVariable(store *ir.Store, param ir.Entity) (ir.Entity, bool) {
	resolved, ok := store.ResolvedUses.Get(param)
	if !ok || len(resolved) == 0 {
		return 0, false
	}
	return resolved[0], true
}

// AllocateLocals implements C9: starting right after the parameter
// registers, walk each function body collecting every variable entity
// referenced (but not yet allocated a register) into one of four buckets
// by register class, then assigns contiguous indices bucket by bucket in
// fixed I32, I64, F32, F64 order. Variables whose type is Unit need no
// storage at all and are skipped, matching the code generator's treatment
// of Unit as having no runtime representation.
func AllocateLocals(store *ir.Store) {
	for _, item := range store.Source.CodeItems() {
		// For a function, item.Body is the fn entity (Children =
		// params..., body); for an action, item.Body already is the
		// block entity itself. Either way it's both the right walk root
		// and the right key into ParamSignature/LocalCounts.
		fn := item.Body
		sig := store.ParamSignature.MustGet(fn)
		firstLocal := len(sig)

		var buckets [4][]ir.Entity // RegI32..RegF64, 1-indexed classes shifted by -1
		seen := make(map[ir.Entity]bool)

		var walk func(e ir.Entity)
		walk = func(e ir.Entity) {
			if resolved, ok := store.ResolvedUses.Get(e); ok {
				for _, r := range resolved {
					if store.FunctionDecl.Has(r) || store.LocalRegister.Has(r) || seen[r] {
						continue
					}
					class := store.Type.MustGet(r).Class()
					if class == ir.RegNone {
						continue
					}
					seen[r] = true
					buckets[class-1] = append(buckets[class-1], r)
				}
			}
			if children, ok := store.Children.Get(e); ok {
				for _, c := range children {
					walk(c)
				}
			}
		}
		walk(fn)

		index := firstLocal
		for _, bucket := range buckets {
			for _, v := range bucket {
				store.LocalRegister.Insert(v, index)
				index++
			}
		}
		store.LocalCounts.Insert(fn, ir.LocalCounts{
			I32: len(buckets[0]),
			I64: len(buckets[1]),
			F32: len(buckets[2]),
			F64: len(buckets[3]),
		})
	}
}
