package codegen_test

import (
	"testing"

	"github.com/CryZe/livesplit-auto-splitting/internal/codegen"
	"github.com/CryZe/livesplit-auto-splitting/internal/host"
	"github.com/CryZe/livesplit-auto-splitting/internal/ir"
)

func TestAssignParamRegistersRecordsParamClasses(t *testing.T) {
	store := prepare(t, `
		state("a.exe") {}
		fn add(a, b) { a + b }
		start { add(1, 2) == 3 }
	`)
	codegen.NumberFunctions(store, int(host.FirstUserFuncIndex))
	codegen.AssignParamRegisters(store)

	fn := store.Source.CodeItems()[0].Body
	sig := store.ParamSignature.MustGet(fn)
	if len(sig) != 2 {
		t.Fatalf("ParamSignature = %v, want 2 entries", sig)
	}
	if sig[0] != ir.RegI32 || sig[1] != ir.RegI32 {
		t.Errorf("ParamSignature = %v, want [RegI32, RegI32]", sig)
	}
}

func TestAssignParamRegistersGivesActionsNilSignature(t *testing.T) {
	store := prepare(t, `
		state("a.exe") {}
		start { true }
	`)
	codegen.NumberFunctions(store, int(host.FirstUserFuncIndex))
	codegen.AssignParamRegisters(store)

	action := store.Source.CodeItems()[0].Body
	sig, ok := store.ParamSignature.Get(action)
	if !ok {
		t.Fatal("expected an action to have a ParamSignature entry")
	}
	if len(sig) != 0 {
		t.Errorf("action ParamSignature = %v, want empty", sig)
	}
}

func TestAllocateLocalsCountsOneLocalPerRegisterClass(t *testing.T) {
	store := prepare(t, `
		state("a.exe") {}
		start {
			let a: i32 = 1;
			let b: i64 = 2;
			let c: f32 = 3.0;
			let d: f64 = 4.0;
			a == 1
		}
	`)
	codegen.NumberFunctions(store, int(host.FirstUserFuncIndex))
	codegen.AssignParamRegisters(store)
	codegen.AllocateLocals(store)

	action := store.Source.CodeItems()[0].Body
	counts := store.LocalCounts.MustGet(action)
	if counts.I32 != 1 || counts.I64 != 1 || counts.F32 != 1 || counts.F64 != 1 {
		t.Fatalf("LocalCounts = %+v, want one of each class", counts)
	}
}

func TestAllocateLocalsSkipsUnitTypedVariables(t *testing.T) {
	store := prepare(t, `
		state("a.exe") {}
		fn bump(a) { a = a + 1; }
		start {
			let a = 1;
			let u = bump(a);
			a == 1
		}
	`)
	codegen.NumberFunctions(store, int(host.FirstUserFuncIndex))
	codegen.AssignParamRegisters(store)
	codegen.AllocateLocals(store)

	// CodeItems follows source order, so the start action comes after bump.
	action := store.Source.CodeItems()[1].Body
	counts := store.LocalCounts.MustGet(action)
	// a is I32; u is Unit-typed (assignment's value) and must not occupy a
	// register of its own.
	if counts.I32 != 1 {
		t.Fatalf("LocalCounts.I32 = %d, want 1 (a only, u is Unit)", counts.I32)
	}
}
