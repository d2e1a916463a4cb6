// Package encoding assembles a binary WASM module: LEB128 integer
// encoding, section framing, and the top-level module writer. WASM's
// binary format has no Go-ecosystem authoring library in this corpus
// (only embedding runtimes like wazero), so this encoder is hand-rolled
// against the format described in the WebAssembly core specification.
package encoding

import (
	"bytes"
	"encoding/binary"
	"math"
)

// Writer accumulates one section or function body's raw bytes.
type Writer struct {
	buf bytes.Buffer
}

func NewWriter() *Writer { return &Writer{} }

func (w *Writer) Bytes() []byte { return w.buf.Bytes() }
func (w *Writer) Len() int      { return w.buf.Len() }

func (w *Writer) WriteByte(b byte) {
	w.buf.WriteByte(b)
}

func (w *Writer) WriteRaw(b []byte) {
	w.buf.Write(b)
}

// WriteU32 encodes an unsigned LEB128 value.
func (w *Writer) WriteU32(v uint32) {
	w.writeULEB128(uint64(v))
}

// WriteU64 encodes an unsigned LEB128 value.
func (w *Writer) WriteU64(v uint64) {
	w.writeULEB128(v)
}

func (w *Writer) writeULEB128(v uint64) {
	for {
		b := byte(v & 0x7F)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		w.buf.WriteByte(b)
		if v == 0 {
			return
		}
	}
}

// WriteI32 encodes a signed LEB128 value.
func (w *Writer) WriteI32(v int32) {
	w.writeSLEB128(int64(v))
}

// WriteI64 encodes a signed LEB128 value.
func (w *Writer) WriteI64(v int64) {
	w.writeSLEB128(v)
}

func (w *Writer) writeSLEB128(v int64) {
	for {
		b := byte(v & 0x7F)
		v >>= 7
		signBitSet := b&0x40 != 0
		done := (v == 0 && !signBitSet) || (v == -1 && signBitSet)
		if !done {
			b |= 0x80
		}
		w.buf.WriteByte(b)
		if done {
			return
		}
	}
}

// WriteF32 encodes a little-endian IEEE-754 single-precision float.
func (w *Writer) WriteF32(v float32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], math.Float32bits(v))
	w.buf.Write(b[:])
}

// WriteF64 encodes a little-endian IEEE-754 double-precision float.
func (w *Writer) WriteF64(v float64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
	w.buf.Write(b[:])
}

// WriteName encodes a length-prefixed UTF-8 string, WASM's "name" production.
func (w *Writer) WriteName(s string) {
	w.WriteU32(uint32(len(s)))
	w.buf.WriteString(s)
}

// WriteVec writes count followed by each element, encoded by fn.
func WriteVec[T any](w *Writer, items []T, fn func(*Writer, T)) {
	w.WriteU32(uint32(len(items)))
	for _, it := range items {
		fn(w, it)
	}
}

// Section frames a section's body with its id and byte-length prefix and
// appends it to out.
func Section(out *Writer, id byte, body *Writer) {
	out.WriteByte(id)
	out.WriteU32(uint32(body.Len()))
	out.WriteRaw(body.Bytes())
}
