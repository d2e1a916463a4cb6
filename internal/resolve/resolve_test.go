package resolve_test

import (
	"testing"

	"github.com/CryZe/livesplit-auto-splitting/internal/cerrors"
	"github.com/CryZe/livesplit-auto-splitting/internal/ir"
	"github.com/CryZe/livesplit-auto-splitting/internal/parse"
	"github.com/CryZe/livesplit-auto-splitting/internal/resolve"
)

func mustParse(t *testing.T, src string) *ir.Store {
	t.Helper()
	store, err := parse.Parse(src, "test.asl")
	if err != nil {
		t.Fatalf("Parse returned an error: %v", err)
	}
	return store
}

func TestResolveLocalLetBinding(t *testing.T) {
	store := mustParse(t, `
		state("a.exe") {}
		start {
			let x = true;
			x
		}
	`)
	if err := resolve.Run(store); err != nil {
		t.Fatalf("Run returned an error: %v", err)
	}
}

func TestResolveUnknownNameFails(t *testing.T) {
	store := mustParse(t, `
		state("a.exe") {}
		start { nope }
	`)
	err := resolve.Run(store)
	if err == nil {
		t.Fatal("expected an error for an unresolved name")
	}
	if err.Kind != cerrors.UnresolvedName {
		t.Fatalf("err.Kind = %s, want UnresolvedName", err.Kind)
	}
}

func TestResolveShadowingInNestedScope(t *testing.T) {
	store := mustParse(t, `
		state("a.exe") {}
		start {
			let x = false;
			{ let x = true; x }
			x
		}
	`)
	if err := resolve.Run(store); err != nil {
		t.Fatalf("Run returned an error: %v", err)
	}
}

func TestResolveFunctionRecursionAndForwardReference(t *testing.T) {
	store := mustParse(t, `
		state("a.exe") {}
		fn even(n) { odd(n) }
		fn odd(n) { even(n) }
		start { true }
	`)
	if err := resolve.Run(store); err != nil {
		t.Fatalf("Run returned an error: %v", err)
	}
}

func TestResolveCallToUndeclaredFunctionFails(t *testing.T) {
	store := mustParse(t, `
		state("a.exe") {}
		start { ghost(1) }
	`)
	err := resolve.Run(store)
	if err == nil {
		t.Fatal("expected an error for a call to an undeclared function")
	}
	if err.Kind != cerrors.UnresolvedName {
		t.Fatalf("err.Kind = %s, want UnresolvedName", err.Kind)
	}
}
