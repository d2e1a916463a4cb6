package compiler_test

import (
	"encoding/hex"
	"testing"

	"github.com/CryZe/livesplit-auto-splitting/internal/compiler"
	"github.com/CryZe/livesplit-auto-splitting/internal/wasm/module"
	"github.com/gkampitakis/go-snaps/snaps"
)

// TestCompileErrorSnapshots pins the rendered diagnostic for every
// compiler.Compile failure this package's other tests already exercise
// individually, the way fixture comparisons in this toolchain's lineage
// compare formatted output rather than just error kinds.
func TestCompileErrorSnapshots(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"missing_state_block", `start { true }`},
		{"arity_mismatch", "state(\"a.exe\") {}\nfn add(a, b) { a + b }\nstart { add(1) == 1 }\n"},
		{"unresolved_name", "state(\"a.exe\") {}\nstart { ghost }\n"},
	}

	for _, c := range cases {
		_, err := compiler.Compile(c.src, "test.asl")
		if err == nil {
			t.Fatalf("%s: expected Compile to fail", c.name)
		}
		snaps.MatchSnapshot(t, c.name, err.Format(false))
	}
}

// TestCompileModuleBytesSnapshot pins the assembled WASM bytes for a small
// but representative program, catching accidental drift in section
// ordering or encoding anywhere across the codegen/wasm pipeline.
func TestCompileModuleBytesSnapshot(t *testing.T) {
	res, err := compiler.Compile(`
		state("game.exe") {
			level: i32 in "game.exe"[0x1234];
		}
		start { state.level == 1 }
	`, "test.asl")
	if err != nil {
		t.Fatalf("Compile returned an error: %v", err)
	}

	snaps.MatchSnapshot(t, "minimal_module_hex", hex.EncodeToString(module.Encode(res.Module)))
}
