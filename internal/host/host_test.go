package host

import (
	"testing"

	"github.com/CryZe/livesplit-auto-splitting/internal/ir"
)

func TestImportNameCount(t *testing.T) {
	if len(ImportName) != 13 {
		t.Fatalf("len(ImportName) = %d, want 13", len(ImportName))
	}
	if ConfigureFuncIndex != 13 {
		t.Fatalf("ConfigureFuncIndex = %d, want 13", ConfigureFuncIndex)
	}
	if FirstUserFuncIndex != 14 {
		t.Fatalf("FirstUserFuncIndex = %d, want 14", FirstUserFuncIndex)
	}
}

func TestImportTypeIndexSharesSmallIntSignature(t *testing.T) {
	for _, idx := range []uint32{GetU8, GetU16, GetU32, GetI8, GetI16, GetI32} {
		if got := ImportTypeIndex(idx); got != TypeGetSmallInt {
			t.Errorf("ImportTypeIndex(%d) = %d, want TypeGetSmallInt", idx, got)
		}
	}
	for _, idx := range []uint32{GetU64, GetI64} {
		if got := ImportTypeIndex(idx); got != TypeGet64 {
			t.Errorf("ImportTypeIndex(%d) = %d, want TypeGet64", idx, got)
		}
	}
}

func TestGetImportForEveryPointerPathType(t *testing.T) {
	tests := []struct {
		ty   ir.Type
		want uint32
	}{
		{ir.U8, GetU8}, {ir.U16, GetU16}, {ir.U32, GetU32}, {ir.U64, GetU64},
		{ir.I8, GetI8}, {ir.I16, GetI16}, {ir.I32, GetI32}, {ir.I64, GetI64},
		{ir.F32, GetF32}, {ir.F64, GetF64},
	}
	for _, tt := range tests {
		if got := GetImportFor(tt.ty); got != tt.want {
			t.Errorf("GetImportFor(%s) = %d, want %d", tt.ty, got, tt.want)
		}
	}
}

func TestGetImportForPanicsOnNonPointerPathType(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("GetImportFor(Bool): expected a panic")
		}
	}()
	GetImportFor(ir.Bool)
}

func TestActionExportNames(t *testing.T) {
	tests := []struct {
		action ir.ActionKind
		want   string
	}{
		{ir.ActionStart, "should_start"},
		{ir.ActionSplit, "should_split"},
		{ir.ActionReset, "should_reset"},
		{ir.ActionIsLoading, "is_loading"},
		{ir.ActionGameTime, "game_time"},
	}
	for _, tt := range tests {
		if got := ActionExportName(tt.action); got != tt.want {
			t.Errorf("ActionExportName(%v) = %q, want %q", tt.action, got, tt.want)
		}
	}
}
