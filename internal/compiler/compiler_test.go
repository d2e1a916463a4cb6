package compiler_test

import (
	"testing"

	"github.com/CryZe/livesplit-auto-splitting/internal/cerrors"
	"github.com/CryZe/livesplit-auto-splitting/internal/compiler"
)

func TestCompileMinimalProgramSucceeds(t *testing.T) {
	res, err := compiler.Compile(`
		state("game.exe") {
			level: i32 in "game.exe"[0x1234];
		}
		start { state.level == 1 }
		split { state.level == 2 }
	`, "test.asl")
	if err != nil {
		t.Fatalf("Compile returned an error: %v", err)
	}
	if res.Module == nil {
		t.Fatal("Compile returned a nil Module")
	}
	if len(res.Module.Exports) == 0 {
		t.Fatal("Compile produced a module with no exports")
	}
}

func TestCompileProgramWithNoActionsSucceeds(t *testing.T) {
	res, err := compiler.Compile(`
		state("game.exe") {}
	`, "test.asl")
	if err != nil {
		t.Fatalf("Compile returned an error: %v", err)
	}
	for _, exp := range res.Module.Exports {
		if exp.Name != "memory" && exp.Name != "configure" {
			t.Errorf("unexpected export %q for a program with no actions", exp.Name)
		}
	}
}

func TestCompileMissingStateBlockStampsPositionOne(t *testing.T) {
	_, err := compiler.Compile(`start { true }`, "test.asl")
	if err == nil {
		t.Fatal("expected an error for a program with no state block")
	}
	if err.Kind != cerrors.MissingStateBlock {
		t.Fatalf("err.Kind = %s, want MissingStateBlock", err.Kind)
	}
	if err.Pos.Line != 1 || err.Pos.Column != 1 {
		t.Errorf("err.Pos = %+v, want (1,1)", err.Pos)
	}
	if err.File != "test.asl" {
		t.Errorf("err.File = %q, want test.asl", err.File)
	}
}

func TestCompileArityMismatchStampsRealLineColumn(t *testing.T) {
	src := "state(\"a.exe\") {}\n" +
		"fn add(a, b) { a + b }\n" +
		"start { add(1) == 1 }\n"
	_, err := compiler.Compile(src, "test.asl")
	if err == nil {
		t.Fatal("expected an arity mismatch error")
	}
	if err.Kind != cerrors.ArityMismatch {
		t.Fatalf("err.Kind = %s, want ArityMismatch", err.Kind)
	}
	if err.Pos.Line != 3 {
		t.Errorf("err.Pos.Line = %d, want 3 (the start block's line)", err.Pos.Line)
	}
}

func TestCompileUnresolvedNameFails(t *testing.T) {
	_, err := compiler.Compile(`
		state("a.exe") {}
		start { ghost }
	`, "test.asl")
	if err == nil {
		t.Fatal("expected an unresolved-name error")
	}
	if err.Kind != cerrors.UnresolvedName {
		t.Fatalf("err.Kind = %s, want UnresolvedName", err.Kind)
	}
}

func TestHoverFindsNarrowestEntityUnderCursor(t *testing.T) {
	src := "state(\"a.exe\") {}\n" +
		"start { let x = true; x }\n"
	res, err := compiler.Compile(src, "test.asl")
	if err != nil {
		t.Fatalf("Compile returned an error: %v", err)
	}

	// Line 2, column 17 lands inside "true" in "let x = true; x".
	col := len("start { let x = ") + 1
	h, ok := compiler.Hover(res.Store, src, 2, col)
	if !ok {
		t.Fatal("Hover found nothing at the literal's position")
	}
	if h.Type.String() == "" {
		t.Error("Hover reported an empty type for the literal")
	}
}

func TestHoverMissesOutsideAnyRange(t *testing.T) {
	src := "state(\"a.exe\") {}\n" +
		"start { true }\n"
	res, err := compiler.Compile(src, "test.asl")
	if err != nil {
		t.Fatalf("Compile returned an error: %v", err)
	}
	if _, ok := compiler.Hover(res.Store, src, 100, 1); ok {
		t.Error("Hover should report nothing far past the end of the source")
	}
}

func TestGoToDefinitionFollowsVariableUseToItsDeclaration(t *testing.T) {
	src := "state(\"a.exe\") {}\n" +
		"start {\n" +
		"\tlet x = true;\n" +
		"\tx\n" +
		"}\n"
	res, err := compiler.Compile(src, "test.asl")
	if err != nil {
		t.Fatalf("Compile returned an error: %v", err)
	}

	// Line 4 is the bare "x" reference.
	span, ok := compiler.GoToDefinition(res.Store, src, 4, 2)
	if !ok {
		t.Fatal("GoToDefinition found nothing for the reference to x")
	}
	if span.FromLine != 3 {
		t.Errorf("GoToDefinition landed on line %d, want 3 (the let binding)", span.FromLine)
	}
}

func TestFindAllReferencesIncludesEveryUseOfTheSameVariable(t *testing.T) {
	src := "state(\"a.exe\") {}\n" +
		"start {\n" +
		"\tlet x = true;\n" +
		"\tx;\n" +
		"\tx\n" +
		"}\n"
	res, err := compiler.Compile(src, "test.asl")
	if err != nil {
		t.Fatalf("Compile returned an error: %v", err)
	}

	spans, ok := compiler.FindAllReferences(res.Store, src, 4, 2)
	if !ok {
		t.Fatal("FindAllReferences found nothing for the first use of x")
	}
	if len(spans) < 2 {
		t.Errorf("FindAllReferences found %d spans, want at least 2 (both uses of x)", len(spans))
	}
}
