package arity_test

import (
	"testing"

	"github.com/CryZe/livesplit-auto-splitting/internal/arity"
	"github.com/CryZe/livesplit-auto-splitting/internal/cerrors"
	"github.com/CryZe/livesplit-auto-splitting/internal/ir"
	"github.com/CryZe/livesplit-auto-splitting/internal/parse"
	"github.com/CryZe/livesplit-auto-splitting/internal/resolve"
)

func mustPrepare(t *testing.T, src string) *ir.Store {
	t.Helper()
	store, err := parse.Parse(src, "test.asl")
	if err != nil {
		t.Fatalf("Parse returned an error: %v", err)
	}
	if err := resolve.Run(store); err != nil {
		t.Fatalf("resolve.Run returned an error: %v", err)
	}
	return store
}

func TestArityMatchPasses(t *testing.T) {
	store := mustPrepare(t, `
		state("a.exe") {}
		fn add(a, b) { a + b }
		start { add(1, 2) == 3 }
	`)
	if err := arity.Check(store); err != nil {
		t.Fatalf("Check returned an unexpected error: %v", err)
	}
}

func TestArityTooFewArgumentsFails(t *testing.T) {
	store := mustPrepare(t, `
		state("a.exe") {}
		fn add(a, b) { a + b }
		start { add(1) == 1 }
	`)
	err := arity.Check(store)
	if err == nil {
		t.Fatal("expected an arity mismatch error")
	}
	if err.Kind != cerrors.ArityMismatch {
		t.Fatalf("err.Kind = %s, want ArityMismatch", err.Kind)
	}
}

func TestArityTooManyArgumentsFails(t *testing.T) {
	store := mustPrepare(t, `
		state("a.exe") {}
		fn one(a) { a }
		start { one(1, 2, 3) == 1 }
	`)
	err := arity.Check(store)
	if err == nil {
		t.Fatal("expected an arity mismatch error")
	}
	if err.Kind != cerrors.ArityMismatch {
		t.Fatalf("err.Kind = %s, want ArityMismatch", err.Kind)
	}
}

func TestArityZeroParamFunction(t *testing.T) {
	store := mustPrepare(t, `
		state("a.exe") {}
		fn always() { true }
		start { always() }
	`)
	if err := arity.Check(store); err != nil {
		t.Fatalf("Check returned an unexpected error: %v", err)
	}
}
