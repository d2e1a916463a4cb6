package ir

import "testing"

func TestTypeClass(t *testing.T) {
	tests := []struct {
		ty   Type
		want RegisterClass
	}{
		{Bool, RegI32}, {U8, RegI32}, {I8, RegI32}, {U16, RegI32}, {I16, RegI32},
		{U32, RegI32}, {I32, RegI32}, {U64, RegI64}, {I64, RegI64},
		{F32, RegF32}, {F64, RegF64}, {Unit, RegNone},
	}
	for _, tt := range tests {
		if got := tt.ty.Class(); got != tt.want {
			t.Errorf("%s.Class() = %s, want %s", tt.ty, got, tt.want)
		}
	}
}

func TestTypeClassPanicsOnOpen(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Class() on an open type: expected a panic")
		}
	}()
	Int.Class()
}

func TestTypeIsUnsigned(t *testing.T) {
	for _, ty := range []Type{U8, U16, U32, U64} {
		if !ty.IsUnsigned() {
			t.Errorf("%s.IsUnsigned() = false, want true", ty)
		}
	}
	for _, ty := range []Type{I8, I16, I32, I64, F32, F64, Bool} {
		if ty.IsUnsigned() {
			t.Errorf("%s.IsUnsigned() = true, want false", ty)
		}
	}
}

func TestSpreadOpenNarrowsToConcrete(t *testing.T) {
	got, ok := Spread(Int, U32)
	if !ok || got != U32 {
		t.Fatalf("Spread(Int, U32) = (%s, %v), want (U32, true)", got, ok)
	}

	got, ok = Spread(Number, Float)
	if !ok || got != Float {
		t.Fatalf("Spread(Number, Float) = (%s, %v), want (Float, true)", got, ok)
	}

	got, ok = Spread(Number, Bits)
	if !ok || got != Int {
		t.Fatalf("Spread(Number, Bits) = (%s, %v), want (Int, true)", got, ok)
	}
}

func TestSpreadIncompatibleConcreteTypes(t *testing.T) {
	if _, ok := Spread(U32, I32); ok {
		t.Fatal("Spread(U32, I32): expected incompatible (not ok)")
	}
	if _, ok := Spread(F32, I32); ok {
		t.Fatal("Spread(F32, I32): expected incompatible (not ok)")
	}
}

func TestSpreadAbsentSideReturnsOther(t *testing.T) {
	got, ok := Spread(TypeNone, U8)
	if !ok || got != U8 {
		t.Fatalf("Spread(TypeNone, U8) = (%s, %v), want (U8, true)", got, ok)
	}
	got, ok = Spread(I16, TypeNone)
	if !ok || got != I16 {
		t.Fatalf("Spread(I16, TypeNone) = (%s, %v), want (I16, true)", got, ok)
	}
}

func TestBitWidth(t *testing.T) {
	tests := []struct {
		ty   Type
		want int
	}{
		{U8, 8}, {I8, 8}, {U16, 16}, {I16, 16},
		{U32, 32}, {I32, 32}, {F32, 32},
		{U64, 64}, {I64, 64}, {F64, 64},
	}
	for _, tt := range tests {
		if got := tt.ty.BitWidth(); got != tt.want {
			t.Errorf("%s.BitWidth() = %d, want %d", tt.ty, got, tt.want)
		}
	}
}
