package compiler

import "testing"

func TestLineColumnFirstLine(t *testing.T) {
	src := "abc\ndef\n"
	line, col := lineColumn(src, 1)
	if line != 1 || col != 2 {
		t.Fatalf("lineColumn(1) = (%d,%d), want (1,2)", line, col)
	}
}

func TestLineColumnSecondLine(t *testing.T) {
	src := "abc\ndef\n"
	line, col := lineColumn(src, 4)
	if line != 2 || col != 1 {
		t.Fatalf("lineColumn(4) = (%d,%d), want (2,1)", line, col)
	}
}

func TestByteOffsetRoundTripsWithLineColumn(t *testing.T) {
	src := "abc\ndef\nghi\n"
	for offset := 0; offset < len(src)-1; offset++ {
		line, col := lineColumn(src, offset)
		got := byteOffset(src, line, col)
		if got != offset {
			t.Errorf("byteOffset(lineColumn(%d)) = %d, want %d", offset, got, offset)
		}
	}
}

func TestByteOffsetFirstColumnOfLine(t *testing.T) {
	src := "abc\ndef\n"
	if got := byteOffset(src, 2, 1); got != 4 {
		t.Fatalf("byteOffset(2,1) = %d, want 4", got)
	}
}
