// Package host defines the fixed ABI this compiler's output WASM modules
// assume: the thirteen-entry host-import surface every
// compiled module imports from "env", and the reserved function-index
// scheme built on top of it. Both the code generator and conformance tests
// import this package so the numbers can never drift apart.
package host

import "github.com/CryZe/livesplit-auto-splitting/internal/ir"

// Module is the host import module name every import is declared against.
const Module = "env"

// Import function indices. These occupy 0..12 contiguously; configure is
// index 13 and every user/auto-splitter function starts at 14.
const (
	SetProcessName  uint32 = 0
	PushPointerPath uint32 = 1
	PushOffset      uint32 = 2
	GetU8           uint32 = 3
	GetU16          uint32 = 4
	GetU32          uint32 = 5
	GetU64          uint32 = 6
	GetI8           uint32 = 7
	GetI16          uint32 = 8
	GetI32          uint32 = 9
	GetI64          uint32 = 10
	GetF32          uint32 = 11
	GetF64          uint32 = 12

	ConfigureFuncIndex   uint32 = 13
	FirstUserFuncIndex   uint32 = 14
)

// ImportName is the field name declared for each host import, in index
// order 0..12.
var ImportName = [...]string{
	SetProcessName:  "set_process_name",
	PushPointerPath: "push_pointer_path",
	PushOffset:      "push_offset",
	GetU8:           "get_u8",
	GetU16:          "get_u16",
	GetU32:          "get_u32",
	GetU64:          "get_u64",
	GetI8:           "get_i8",
	GetI16:          "get_i16",
	GetI32:          "get_i32",
	GetI64:          "get_i64",
	GetF32:          "get_f32",
	GetF64:          "get_f64",
}

// TypeIndex identifies the shared function-signature table entries 0..6
// the import section's types reference; several get_* imports with
// identical (i32,i32)->result signatures (small ints -> i32, 64-bit ints
// -> i64) share one entry rather than duplicating it.
const (
	TypeSetProcessName   uint32 = 0 // (i32,i32) -> ()
	TypePushPointerPath  uint32 = 1 // (i32,i32,i32) -> i32
	TypePushOffset       uint32 = 2 // (i32,i64) -> ()
	TypeGetSmallInt      uint32 = 3 // (i32,i32) -> i32
	TypeGet64            uint32 = 4 // (i32,i32) -> i64
	TypeGetF32           uint32 = 5 // (i32,i32) -> f32
	TypeGetF64           uint32 = 6 // (i32,i32) -> f64
)

// importTypeIndex maps each import's index to the shared signature it uses.
var importTypeIndex = [...]uint32{
	SetProcessName:  TypeSetProcessName,
	PushPointerPath: TypePushPointerPath,
	PushOffset:      TypePushOffset,
	GetU8:           TypeGetSmallInt,
	GetU16:          TypeGetSmallInt,
	GetU32:          TypeGetSmallInt,
	GetU64:          TypeGet64,
	GetI8:           TypeGetSmallInt,
	GetI16:          TypeGetSmallInt,
	GetI32:          TypeGetSmallInt,
	GetI64:          TypeGet64,
	GetF32:          TypeGetF32,
	GetF64:          TypeGetF64,
}

// ImportTypeIndex returns the shared signature-table index for an import
// function index 0..12.
func ImportTypeIndex(importFuncIndex uint32) uint32 {
	return importTypeIndex[importFuncIndex]
}

// GetImportFor returns the import function index (3..12) used to read a
// state path's declared concrete type off the guest's pointer-path table.
func GetImportFor(t ir.Type) uint32 {
	switch t {
	case ir.U8:
		return GetU8
	case ir.U16:
		return GetU16
	case ir.U32:
		return GetU32
	case ir.U64:
		return GetU64
	case ir.I8:
		return GetI8
	case ir.I16:
		return GetI16
	case ir.I32:
		return GetI32
	case ir.I64:
		return GetI64
	case ir.F32:
		return GetF32
	case ir.F64:
		return GetF64
	default:
		panic("host: GetImportFor called on a non-pointer-path type " + t.String())
	}
}

// ActionExportName returns the fixed export name the runtime looks for.
func ActionExportName(a ir.ActionKind) string {
	return a.ExportName()
}
