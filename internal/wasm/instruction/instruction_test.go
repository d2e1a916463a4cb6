package instruction

import (
	"testing"

	"github.com/CryZe/livesplit-auto-splitting/internal/wasm/encoding"
	"github.com/CryZe/livesplit-auto-splitting/internal/wasm/types"
)

func encodeAll(instrs ...Instruction) []byte {
	w := encoding.NewWriter()
	for _, i := range instrs {
		i.Encode(w)
	}
	return w.Bytes()
}

func TestSimpleOpcodeBytes(t *testing.T) {
	tests := []struct {
		name string
		i    Instruction
		want byte
	}{
		{"I32Add", NewI32Add(), 0x6A},
		{"I32WrapI64", NewI32WrapI64(), 0xA7},
		{"I64ExtendI32S", NewI64ExtendI32S(), 0xAC},
		{"I64ExtendI32U", NewI64ExtendI32U(), 0xAD},
		{"F64PromoteF32", NewF64PromoteF32(), 0xBB},
		{"F32DemoteF64", NewF32DemoteF64(), 0xB6},
	}
	for _, tt := range tests {
		got := encodeAll(tt.i)
		if len(got) != 1 || got[0] != tt.want {
			t.Errorf("%s encoded to % X, want [%02X]", tt.name, got, tt.want)
		}
	}
}

func TestI32ConstEncodesOpcodeThenSLEB128(t *testing.T) {
	got := encodeAll(I32Const{Value: -2})
	want := []byte{0x41, 0x7E}
	if string(got) != string(want) {
		t.Errorf("I32Const{-2} = % X, want % X", got, want)
	}
}

func TestCallEncodesOpcodeThenIndex(t *testing.T) {
	got := encodeAll(Call{Index: 128})
	want := []byte{0x10, 0x80, 0x01}
	if string(got) != string(want) {
		t.Errorf("Call{128} = % X, want % X", got, want)
	}
}

func TestLocalGetSetTeeOpcodes(t *testing.T) {
	if got := encodeAll(LocalGet{Index: 1}); string(got) != string([]byte{0x20, 0x01}) {
		t.Errorf("LocalGet{1} = % X", got)
	}
	if got := encodeAll(LocalSet{Index: 1}); string(got) != string([]byte{0x21, 0x01}) {
		t.Errorf("LocalSet{1} = % X", got)
	}
	if got := encodeAll(LocalTee{Index: 1}); string(got) != string([]byte{0x22, 0x01}) {
		t.Errorf("LocalTee{1} = % X", got)
	}
}

func TestBlockEncodesEmptyTypeAndEnd(t *testing.T) {
	b := Block{Empty: true, Instrs: []Instruction{NewI32Add()}}
	got := encodeAll(b)
	want := []byte{0x02, 0x40, 0x6A, 0x0B}
	if string(got) != string(want) {
		t.Errorf("Block{Empty} = % X, want % X", got, want)
	}
}

func TestBlockEncodesResultType(t *testing.T) {
	b := Block{Result: types.I32, Instrs: nil}
	got := encodeAll(b)
	want := []byte{0x02, 0x7F, 0x0B}
	if string(got) != string(want) {
		t.Errorf("Block{Result: I32} = % X, want % X", got, want)
	}
}

func TestIfWithElseEncodesBothArms(t *testing.T) {
	f := If{
		Empty:   true,
		Then:    []Instruction{I32Const{Value: 1}},
		Else:    []Instruction{I32Const{Value: 2}},
		HasElse: true,
	}
	got := encodeAll(f)
	want := []byte{0x04, 0x40, 0x41, 0x01, 0x05, 0x41, 0x02, 0x0B}
	if string(got) != string(want) {
		t.Errorf("If = % X, want % X", got, want)
	}
}

func TestIfWithoutElseOmitsElseByte(t *testing.T) {
	f := If{Empty: true, Then: []Instruction{I32Const{Value: 1}}}
	got := encodeAll(f)
	want := []byte{0x04, 0x40, 0x41, 0x01, 0x0B}
	if string(got) != string(want) {
		t.Errorf("If without else = % X, want % X", got, want)
	}
}

func TestBrAndBrIfEncodeIndex(t *testing.T) {
	if got := encodeAll(Br{Index: 2}); string(got) != string([]byte{0x0C, 0x02}) {
		t.Errorf("Br{2} = % X", got)
	}
	if got := encodeAll(BrIf{Index: 1}); string(got) != string([]byte{0x0D, 0x01}) {
		t.Errorf("BrIf{1} = % X", got)
	}
}
