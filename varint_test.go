package bincode

import "testing"

func TestVarintUint64TagBoundaries(t *testing.T) {
	cases := []struct {
		name    string
		u       uint64
		wantLen int
	}{
		{"zero", 0, 1},
		{"tagMax", 250, 1},
		{"justOverTagMax", 251, 3},
		{"u16max", 0xFFFF, 3},
		{"u16maxPlus1", 0x10000, 6},
		{"u32max", 0xFFFF_FFFF, 6},
		{"u32maxPlus1", 0x1_0000_0000, 9},
		{"u64max", ^uint64(0), 9},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			buf := make([]byte, 32)
			c := newCursor(buf, 0, Standard)
			if err := encodeVarintUint64(c, tc.u); err != nil {
				t.Fatalf("encode: %v", err)
			}
			if c.offset() != tc.wantLen {
				t.Fatalf("encoded length = %d, want %d", c.offset(), tc.wantLen)
			}
			r := newCursor(buf, 0, Standard)
			got, err := decodeVarintUint64(r)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got != tc.u {
				t.Fatalf("round trip = %d, want %d", got, tc.u)
			}
		})
	}
}

func TestVarintUint128RoundTrip(t *testing.T) {
	cases := []Uint128{
		Uint128FromUint64(0),
		Uint128FromUint64(250),
		Uint128FromUint64(251),
		Uint128FromUint64(^uint64(0)),
		{Lo: 1, Hi: 1},
		MaxUint128,
	}
	for _, u := range cases {
		buf := make([]byte, 32)
		c := newCursor(buf, 0, Standard)
		if err := encodeVarintUint128(c, u); err != nil {
			t.Fatalf("encode %+v: %v", u, err)
		}
		r := newCursor(buf, 0, Standard)
		got, err := decodeVarintUint128(r)
		if err != nil {
			t.Fatalf("decode %+v: %v", u, err)
		}
		if got != u {
			t.Fatalf("round trip %+v: got %+v", u, got)
		}
	}
}

func TestZigzagEncode32Boundaries(t *testing.T) {
	cases := []struct {
		x    int32
		want uint32
	}{
		{0, 0},
		{-1, 1},
		{1, 2},
		{-2, 3},
		{2147483647, 4294967294},
		{-2147483648, 4294967295},
	}
	for _, tc := range cases {
		got := zigzagEncode[uint32](tc.x, 32)
		if got != tc.want {
			t.Fatalf("zigzagEncode(%d) = %d, want %d", tc.x, got, tc.want)
		}
		back := zigzagDecode[int32](got)
		if back != tc.x {
			t.Fatalf("zigzagDecode(%d) = %d, want %d", got, back, tc.x)
		}
	}
}

func TestVarintInt64RoundTrip(t *testing.T) {
	values := []int64{0, -1, 1, -250, 250, -251, 251, 1 << 40, -(1 << 40)}
	for _, x := range values {
		buf := make([]byte, 32)
		c := newCursor(buf, 0, Standard)
		if err := encodeVarintInt64(c, x, 64); err != nil {
			t.Fatalf("encode %d: %v", x, err)
		}
		r := newCursor(buf, 0, Standard)
		got, err := decodeVarintInt64(r, 64)
		if err != nil {
			t.Fatalf("decode %d: %v", x, err)
		}
		if got != x {
			t.Fatalf("round trip %d: got %d", x, got)
		}
	}
}

func TestVarintInt128RoundTrip(t *testing.T) {
	values := []Int128{
		Int128FromInt64(0),
		Int128FromInt64(-1),
		Int128FromInt64(1),
		MinInt128,
	}
	for _, x := range values {
		buf := make([]byte, 32)
		c := newCursor(buf, 0, Standard)
		if err := encodeVarintInt128(c, x); err != nil {
			t.Fatalf("encode %+v: %v", x, err)
		}
		r := newCursor(buf, 0, Standard)
		got, err := decodeVarintInt128(r)
		if err != nil {
			t.Fatalf("decode %+v: %v", x, err)
		}
		if got != x {
			t.Fatalf("round trip %+v: got %+v", x, got)
		}
	}
}
