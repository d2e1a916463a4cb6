package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/CryZe/livesplit-auto-splitting/pkg/autosplit"
)

func TestParsePosition(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    autosplit.Position
		wantErr bool
	}{
		{name: "simple", input: "4:19", want: autosplit.Position{Line: 4, Column: 19}},
		{name: "single digits", input: "1:1", want: autosplit.Position{Line: 1, Column: 1}},
		{name: "missing column", input: "4", wantErr: true},
		{name: "non-numeric line", input: "x:3", wantErr: true},
		{name: "non-numeric column", input: "3:x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePosition(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parsePosition(%q) = %v, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parsePosition(%q) returned unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Fatalf("parsePosition(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestReadSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.asl")
	const contents = `state("game.exe") {}`
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("failed to set up fixture: %v", err)
	}

	src, filename, err := readSource([]string{path})
	if err != nil {
		t.Fatalf("readSource returned unexpected error: %v", err)
	}
	if src != contents {
		t.Errorf("readSource src = %q, want %q", src, contents)
	}
	if filename != path {
		t.Errorf("readSource filename = %q, want %q", filename, path)
	}

	if _, _, err := readSource(nil); err == nil {
		t.Error("readSource with no args: expected an error, got nil")
	}
	if _, _, err := readSource([]string{filepath.Join(dir, "missing.asl")}); err == nil {
		t.Error("readSource on a missing file: expected an error, got nil")
	}
}
