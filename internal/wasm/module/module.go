// Package module assembles the sectioned in-memory representation of a
// WASM module and encodes it to the binary format, mirroring the shape of
// OPA's internal WASM module package.
package module

import (
	"encoding/binary"

	"github.com/CryZe/livesplit-auto-splitting/internal/wasm/encoding"
	"github.com/CryZe/livesplit-auto-splitting/internal/wasm/instruction"
	"github.com/CryZe/livesplit-auto-splitting/internal/wasm/types"
)

const (
	magic   = 0x6D736100 // "\0asm"
	version = 1
)

// FunctionType is one entry of the type section.
type FunctionType struct {
	Params  []types.ValueType
	Results []types.ValueType
}

// Import is one entry of the import section: a host function this module
// expects its embedder to provide.
type Import struct {
	Module string
	Name   string
	Type   uint32 // index into the type section
}

// LocalDeclaration groups a run of locals of the same type, as the binary
// format requires (runs, not one entry per local).
type LocalDeclaration struct {
	Count uint32
	Type  types.ValueType
}

// Function is one function's signature-index plus its compiled body.
type Function struct {
	TypeIndex uint32
	Locals    []LocalDeclaration
	Instrs    []instruction.Instruction
}

// ExportKind distinguishes what an export entry refers to.
type ExportKind byte

const (
	ExportFunc   ExportKind = 0x00
	ExportTable  ExportKind = 0x01
	ExportMemory ExportKind = 0x02
	ExportGlobal ExportKind = 0x03
)

// Export is one entry of the export section.
type Export struct {
	Name  string
	Kind  ExportKind
	Index uint32
}

// Limits is a memory/table size bound.
type Limits struct {
	Min uint32
	Max *uint32
}

// DataSegment is one entry of the data section: bytes placed at a constant
// memory offset (every segment this compiler emits is active, offset-0-based
// with no instructions beyond a single i32.const).
type DataSegment struct {
	MemoryIndex uint32
	Offset      int32
	Bytes       []byte
}

// Module is the whole in-memory WASM module this backend assembles before
// encoding it to the binary format.
type Module struct {
	Types      []FunctionType
	Imports    []Import
	Functions  []Function // non-imported functions, in index order after imports
	Memories   []Limits
	Exports    []Export
	Data       []DataSegment
	MemoryName string
}

// Encode serializes m to the binary WASM module format.
func Encode(m *Module) []byte {
	out := encoding.NewWriter()
	// The header is two fixed-width little-endian u32s, not LEB128.
	var header [8]byte
	binary.LittleEndian.PutUint32(header[0:4], magic)
	binary.LittleEndian.PutUint32(header[4:8], version)
	out.WriteRaw(header[:])

	encoding.Section(out, 1, encodeTypeSection(m))
	encoding.Section(out, 2, encodeImportSection(m))
	encoding.Section(out, 3, encodeFunctionSection(m))
	encoding.Section(out, 5, encodeMemorySection(m))
	encoding.Section(out, 7, encodeExportSection(m))
	encoding.Section(out, 10, encodeCodeSection(m))
	encoding.Section(out, 11, encodeDataSection(m))

	return out.Bytes()
}

func encodeTypeSection(m *Module) *encoding.Writer {
	w := encoding.NewWriter()
	encoding.WriteVec(w, m.Types, func(w *encoding.Writer, ft FunctionType) {
		w.WriteByte(0x60)
		encoding.WriteVec(w, ft.Params, func(w *encoding.Writer, v types.ValueType) { w.WriteByte(byte(v)) })
		encoding.WriteVec(w, ft.Results, func(w *encoding.Writer, v types.ValueType) { w.WriteByte(byte(v)) })
	})
	return w
}

func encodeImportSection(m *Module) *encoding.Writer {
	w := encoding.NewWriter()
	encoding.WriteVec(w, m.Imports, func(w *encoding.Writer, im Import) {
		w.WriteName(im.Module)
		w.WriteName(im.Name)
		w.WriteByte(0x00) // func import
		w.WriteU32(im.Type)
	})
	return w
}

func encodeFunctionSection(m *Module) *encoding.Writer {
	w := encoding.NewWriter()
	encoding.WriteVec(w, m.Functions, func(w *encoding.Writer, f Function) {
		w.WriteU32(f.TypeIndex)
	})
	return w
}

func encodeMemorySection(m *Module) *encoding.Writer {
	w := encoding.NewWriter()
	encoding.WriteVec(w, m.Memories, func(w *encoding.Writer, l Limits) {
		encodeLimits(w, l)
	})
	return w
}

func encodeLimits(w *encoding.Writer, l Limits) {
	if l.Max != nil {
		w.WriteByte(0x01)
		w.WriteU32(l.Min)
		w.WriteU32(*l.Max)
	} else {
		w.WriteByte(0x00)
		w.WriteU32(l.Min)
	}
}

func encodeExportSection(m *Module) *encoding.Writer {
	w := encoding.NewWriter()
	encoding.WriteVec(w, m.Exports, func(w *encoding.Writer, e Export) {
		w.WriteName(e.Name)
		w.WriteByte(byte(e.Kind))
		w.WriteU32(e.Index)
	})
	return w
}

func encodeCodeSection(m *Module) *encoding.Writer {
	w := encoding.NewWriter()
	encoding.WriteVec(w, m.Functions, func(w *encoding.Writer, f Function) {
		body := encoding.NewWriter()
		encoding.WriteVec(body, f.Locals, func(w *encoding.Writer, l LocalDeclaration) {
			w.WriteU32(l.Count)
			w.WriteByte(byte(l.Type))
		})
		for _, instr := range f.Instrs {
			instr.Encode(body)
		}
		body.WriteByte(0x0B) // end
		w.WriteU32(uint32(body.Len()))
		w.WriteRaw(body.Bytes())
	})
	return w
}

func encodeDataSection(m *Module) *encoding.Writer {
	w := encoding.NewWriter()
	encoding.WriteVec(w, m.Data, func(w *encoding.Writer, d DataSegment) {
		w.WriteU32(d.MemoryIndex)
		w.WriteByte(0x41) // i32.const
		w.WriteI32(d.Offset)
		w.WriteByte(0x0B) // end
		w.WriteU32(uint32(len(d.Bytes)))
		w.WriteRaw(d.Bytes)
	})
	return w
}
