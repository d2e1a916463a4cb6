// Package instruction is one Go type per WASM instruction this compiler's
// backend emits, mirroring the shape of OPA's internal WASM instruction
// package (one struct per opcode, carrying only that opcode's immediates).
package instruction

import (
	"github.com/CryZe/livesplit-auto-splitting/internal/wasm/encoding"
	"github.com/CryZe/livesplit-auto-splitting/internal/wasm/types"
)

// Instruction is anything that can encode itself into a function body or
// init expression.
type Instruction interface {
	Encode(w *encoding.Writer)
}

// control instructions

type Unreachable struct{}

func (Unreachable) Encode(w *encoding.Writer) { w.WriteByte(0x00) }

type Block struct {
	Result types.ValueType
	Empty  bool
	Instrs []Instruction
}

type Loop struct {
	Result types.ValueType
	Empty  bool
	Instrs []Instruction
}

type If struct {
	Result  types.ValueType
	Empty   bool
	Then    []Instruction
	Else    []Instruction
	HasElse bool
}

type Br struct{ Index uint32 }
type BrIf struct{ Index uint32 }
type Return struct{}
type Call struct{ Index uint32 }
type Drop struct{}

// variable instructions

type LocalGet struct{ Index uint32 }
type LocalSet struct{ Index uint32 }
type LocalTee struct{ Index uint32 }

// numeric constants

type I32Const struct{ Value int32 }
type I64Const struct{ Value int64 }
type F32Const struct{ Value float32 }
type F64Const struct{ Value float64 }

func (i I32Const) Encode(w *encoding.Writer) { w.WriteByte(0x41); w.WriteI32(i.Value) }
func (i I64Const) Encode(w *encoding.Writer) { w.WriteByte(0x42); w.WriteI64(i.Value) }
func (i F32Const) Encode(w *encoding.Writer) { w.WriteByte(0x43); w.WriteF32(i.Value) }
func (i F64Const) Encode(w *encoding.Writer) { w.WriteByte(0x44); w.WriteF64(i.Value) }

func (Return) Encode(w *encoding.Writer)     { w.WriteByte(0x0F) }
func (c Call) Encode(w *encoding.Writer)     { w.WriteByte(0x10); w.WriteU32(c.Index) }
func (Drop) Encode(w *encoding.Writer)       { w.WriteByte(0x1A) }
func (l LocalGet) Encode(w *encoding.Writer) { w.WriteByte(0x20); w.WriteU32(l.Index) }
func (l LocalSet) Encode(w *encoding.Writer) { w.WriteByte(0x21); w.WriteU32(l.Index) }
func (l LocalTee) Encode(w *encoding.Writer) { w.WriteByte(0x22); w.WriteU32(l.Index) }
func (b Br) Encode(w *encoding.Writer)       { w.WriteByte(0x0C); w.WriteU32(b.Index) }
func (b BrIf) Encode(w *encoding.Writer)     { w.WriteByte(0x0D); w.WriteU32(b.Index) }

func blockTypeByte(empty bool, result types.ValueType) byte {
	if empty {
		return 0x40
	}
	return byte(result)
}

func (b Block) Encode(w *encoding.Writer) {
	w.WriteByte(0x02)
	w.WriteByte(blockTypeByte(b.Empty, b.Result))
	for _, i := range b.Instrs {
		i.Encode(w)
	}
	w.WriteByte(0x0B)
}

func (l Loop) Encode(w *encoding.Writer) {
	w.WriteByte(0x03)
	w.WriteByte(blockTypeByte(l.Empty, l.Result))
	for _, i := range l.Instrs {
		i.Encode(w)
	}
	w.WriteByte(0x0B)
}

func (f If) Encode(w *encoding.Writer) {
	w.WriteByte(0x04)
	w.WriteByte(blockTypeByte(f.Empty, f.Result))
	for _, i := range f.Then {
		i.Encode(w)
	}
	if f.HasElse {
		w.WriteByte(0x05)
		for _, i := range f.Else {
			i.Encode(w)
		}
	}
	w.WriteByte(0x0B)
}
