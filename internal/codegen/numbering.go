package codegen

import "github.com/CryZe/livesplit-auto-splitting/internal/ir"

// NumberFunctions implements C7: iterate code items in source order and
// assign each function entity a contiguous FunctionIndex starting right
// after the host imports and the synthesized configure function. The
// counter advances for every code item, action or function alike, since
// that's the order the module assembler lays WASM functions out in — only
// function declarations need the index recorded, since OpCall is the only
// thing that ever looks it up, but skipping the counter past an action
// would desynchronize every following function's index from its actual
// slot in the function section.
func NumberFunctions(store *ir.Store, firstIndex int) {
	next := firstIndex
	for _, item := range store.Source.CodeItems() {
		if item.Kind == ir.ItemFunction {
			store.FunctionIndex.Insert(item.Body, next)
		}
		next++
	}
}
