package bincode

import (
	"errors"
	"testing"
)

func TestCursorFixedWidthRoundTrip(t *testing.T) {
	buf := make([]byte, 64)
	c := newCursor(buf, 0, Standard)

	if err := c.writeU8(0xAB); err != nil {
		t.Fatalf("writeU8: %v", err)
	}
	if err := c.writeU16(0x1234, LittleEndian); err != nil {
		t.Fatalf("writeU16: %v", err)
	}
	if err := c.writeU32(0xDEADBEEF, LittleEndian); err != nil {
		t.Fatalf("writeU32: %v", err)
	}
	if err := c.writeU64(0x0102030405060708, LittleEndian); err != nil {
		t.Fatalf("writeU64: %v", err)
	}
	if err := c.writeF32(3.5, LittleEndian); err != nil {
		t.Fatalf("writeF32: %v", err)
	}
	if err := c.writeF64(2.718281828, LittleEndian); err != nil {
		t.Fatalf("writeF64: %v", err)
	}

	end := c.offset()
	r := newCursor(buf, 0, Standard)

	if v, err := r.readU8(); err != nil || v != 0xAB {
		t.Fatalf("readU8 = %v, %v; want 0xAB, nil", v, err)
	}
	if v, err := r.readU16(LittleEndian); err != nil || v != 0x1234 {
		t.Fatalf("readU16 = %v, %v; want 0x1234, nil", v, err)
	}
	if v, err := r.readU32(LittleEndian); err != nil || v != 0xDEADBEEF {
		t.Fatalf("readU32 = %v, %v; want 0xDEADBEEF, nil", v, err)
	}
	if v, err := r.readU64(LittleEndian); err != nil || v != 0x0102030405060708 {
		t.Fatalf("readU64 = %v, %v; want 0x0102030405060708, nil", v, err)
	}
	if v, err := r.readF32(LittleEndian); err != nil || v != 3.5 {
		t.Fatalf("readF32 = %v, %v; want 3.5, nil", v, err)
	}
	if v, err := r.readF64(LittleEndian); err != nil || v != 2.718281828 {
		t.Fatalf("readF64 = %v, %v; want 2.718281828, nil", v, err)
	}
	if r.offset() != end {
		t.Fatalf("final offset = %d, want %d", r.offset(), end)
	}
}

func TestCursorU128EndianSplit(t *testing.T) {
	v := Uint128{Lo: 0x0102030405060708, Hi: 0x1112131415161718}

	little := make([]byte, 16)
	if err := newCursor(little, 0, Standard).writeU128(v, LittleEndian); err != nil {
		t.Fatalf("write little: %v", err)
	}
	gotLo, err := newCursor(little[:8], 0, Standard).readU64(LittleEndian)
	if err != nil || gotLo != v.Lo {
		t.Fatalf("little-endian low half = %#x, %v; want %#x", gotLo, err, v.Lo)
	}

	big := make([]byte, 16)
	if err := newCursor(big, 0, Standard).writeU128(v, BigEndian); err != nil {
		t.Fatalf("write big: %v", err)
	}
	gotHi, err := newCursor(big[:8], 0, Standard).readU64(BigEndian)
	if err != nil || gotHi != v.Hi {
		t.Fatalf("big-endian first half = %#x, %v; want hi %#x", gotHi, err, v.Hi)
	}

	rtLittle, err := newCursor(little, 0, Standard).readU128(LittleEndian)
	if err != nil || rtLittle != v {
		t.Fatalf("round trip little: got %+v, %v; want %+v", rtLittle, err, v)
	}
	rtBig, err := newCursor(big, 0, Standard).readU128(BigEndian)
	if err != nil || rtBig != v {
		t.Fatalf("round trip big: got %+v, %v; want %+v", rtBig, err, v)
	}
}

func TestCursorOverflowLimit(t *testing.T) {
	buf := make([]byte, 2)
	c := newCursor(buf, 0, Standard)
	if err := c.writeU32(1, LittleEndian); !errors.Is(err, ErrOverflowLimit) {
		t.Fatalf("writeU32 into 2-byte buffer: got %v, want ErrOverflowLimit", err)
	}
}

func TestCursorConfiguredLimit(t *testing.T) {
	buf := make([]byte, 16)
	cfg := Standard.WithLimit(4)
	c := newCursor(buf, 0, cfg)
	if err := c.writeU32(1, LittleEndian); err != nil {
		t.Fatalf("writeU32 within limit: %v", err)
	}
	if err := c.writeU8(1); !errors.Is(err, ErrOverflowLimit) {
		t.Fatalf("writeU8 past limit: got %v, want ErrOverflowLimit", err)
	}
}
