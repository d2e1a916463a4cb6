package module

import (
	"bytes"
	"testing"

	"github.com/CryZe/livesplit-auto-splitting/internal/wasm/instruction"
	"github.com/CryZe/livesplit-auto-splitting/internal/wasm/types"
)

// expectedHeader is the WASM binary header: "\0asm" then version 1, each a
// little-endian u32.
func expectedHeader() []byte {
	return []byte{0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x00, 0x00}
}

func TestEncodeEmptyModuleHasHeaderAndSevenEmptySections(t *testing.T) {
	got := Encode(&Module{})

	header := expectedHeader()
	if !bytes.HasPrefix(got, header) {
		t.Fatalf("Encode output doesn't start with magic+version: % X", got[:len(header)])
	}
	rest := got[len(header):]

	// Each of the 7 sections (type, import, function, memory, export,
	// code, data) is empty: id byte, length byte (1), one zero-count byte.
	wantIDs := []byte{1, 2, 3, 5, 7, 10, 11}
	if len(rest) != len(wantIDs)*3 {
		t.Fatalf("got %d trailing bytes, want %d", len(rest), len(wantIDs)*3)
	}
	for i, id := range wantIDs {
		off := i * 3
		if rest[off] != id || rest[off+1] != 0x01 || rest[off+2] != 0x00 {
			t.Errorf("section %d = % X, want [%02X 01 00]", i, rest[off:off+3], id)
		}
	}
}

func TestEncodeTypeSection(t *testing.T) {
	m := &Module{
		Types: []FunctionType{
			{Params: []types.ValueType{types.I32, types.I32}, Results: []types.ValueType{types.I64}},
		},
	}
	got := Encode(m)
	header := expectedHeader()
	rest := got[len(header):]

	// type section: id=1, len, count=1, form=0x60, paramCount=2, I32,I32, resultCount=1, I64
	want := []byte{1, 7, 0x01, 0x60, 0x02, 0x7F, 0x7F, 0x01, 0x7E}
	if len(rest) < len(want) || string(rest[:len(want)]) != string(want) {
		t.Fatalf("type section = % X, want % X", rest[:min(len(rest), len(want))], want)
	}
}

func TestEncodeImportExportDataSections(t *testing.T) {
	maxMem := uint32(10)
	m := &Module{
		Imports: []Import{{Module: "env", Name: "get_u8", Type: 3}},
		Memories: []Limits{{Min: 1, Max: &maxMem}},
		Exports:  []Export{{Name: "memory", Kind: ExportMemory, Index: 0}},
		Data:     []DataSegment{{MemoryIndex: 0, Offset: 0, Bytes: []byte{0xAA, 0xBB}}},
	}
	got := Encode(m)

	// import section: id=2
	idx := bytes.IndexByte(got, 2)
	if idx < 0 {
		t.Fatal("import section id not found")
	}

	// export section body: count=1, name "memory", kind=0x02 (memory), index=0
	wantExport := []byte{0x06, 'm', 'e', 'm', 'o', 'r', 'y', 0x02, 0x00}
	if !bytes.Contains(got, wantExport) {
		t.Errorf("export section body not found in % X", got)
	}

	// data section: memoryIndex=0, i32.const 0, end, len=2, bytes
	wantData := []byte{0x00, 0x41, 0x00, 0x0B, 0x02, 0xAA, 0xBB}
	if !bytes.Contains(got, wantData) {
		t.Errorf("data section body not found in % X", got)
	}
}

func TestEncodeCodeSectionIncludesLocalsAndEndByte(t *testing.T) {
	m := &Module{
		Functions: []Function{
			{
				TypeIndex: 0,
				Locals:    []LocalDeclaration{{Count: 2, Type: types.I32}},
				Instrs:    []instruction.Instruction{instruction.I32Const{Value: 1}},
			},
		},
	}
	got := Encode(m)

	// function body: localDeclCount=1, (count=2,type=I32), i32.const 1 (0x41 0x01), end (0x0B)
	wantBody := []byte{0x01, 0x02, 0x7F, 0x41, 0x01, 0x0B}
	if !bytes.Contains(got, wantBody) {
		t.Errorf("code section body not found in % X", got)
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
