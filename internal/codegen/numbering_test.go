package codegen_test

import (
	"testing"

	"github.com/CryZe/livesplit-auto-splitting/internal/arity"
	"github.com/CryZe/livesplit-auto-splitting/internal/codegen"
	"github.com/CryZe/livesplit-auto-splitting/internal/extend"
	"github.com/CryZe/livesplit-auto-splitting/internal/host"
	"github.com/CryZe/livesplit-auto-splitting/internal/ir"
	"github.com/CryZe/livesplit-auto-splitting/internal/parse"
	"github.com/CryZe/livesplit-auto-splitting/internal/resolve"
	"github.com/CryZe/livesplit-auto-splitting/internal/typeinfer"
)

// prepare runs every pass up to (but not including) codegen, mirroring
// internal/compiler.Compile's stage order.
func prepare(t *testing.T, src string) *ir.Store {
	t.Helper()
	store, err := parse.Parse(src, "test.asl")
	if err != nil {
		t.Fatalf("Parse returned an error: %v", err)
	}
	if err := resolve.Run(store); err != nil {
		t.Fatalf("resolve.Run returned an error: %v", err)
	}
	if err := arity.Check(store); err != nil {
		t.Fatalf("arity.Check returned an error: %v", err)
	}
	if err := typeinfer.Infer(store); err != nil {
		t.Fatalf("typeinfer.Infer returned an error: %v", err)
	}
	typeinfer.Default(store)
	extend.Run(store)
	return store
}

func TestNumberFunctionsSkipsActionsButAdvancesCounter(t *testing.T) {
	store := prepare(t, `
		state("a.exe") {}
		fn add(a, b) { a + b }
		start { add(1, 2) == 3 }
		fn double(x) { x * 2 }
		split { double(1) == 2 }
	`)
	codegen.NumberFunctions(store, int(host.FirstUserFuncIndex))

	items := store.Source.CodeItems()
	// items: [add(fn), start(action), double(fn), split(action)]
	addFn := items[0].Body
	doubleFn := items[2].Body

	if got := store.FunctionIndex.MustGet(addFn); got != int(host.FirstUserFuncIndex) {
		t.Errorf("add's FunctionIndex = %d, want %d", got, host.FirstUserFuncIndex)
	}
	// index 1 (FirstUserFuncIndex+1) belongs to the start action, which
	// gets no FunctionIndex entry, but the counter must still have passed
	// over it so double lands at +2, not +1.
	if got := store.FunctionIndex.MustGet(doubleFn); got != int(host.FirstUserFuncIndex)+2 {
		t.Errorf("double's FunctionIndex = %d, want %d", got, int(host.FirstUserFuncIndex)+2)
	}
}
