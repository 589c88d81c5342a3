package bincode

import "golang.org/x/exp/constraints"

// Bincode's prefix-tagged variable-length unsigned integer (spec.md §4.2):
//
//	u <= 250                    -> [u]
//	u <= 0xFFFF                  -> [251] [u16]
//	u <= 0xFFFF_FFFF              -> [252] [u32]
//	u <= 0xFFFF_FFFF_FFFF_FFFF     -> [253] [u64]
//	otherwise                      -> [254] [u128]
//
// Discriminator 255 is reserved and invalid on read.
const (
	varintTag16  = 251
	varintTag32  = 252
	varintTag64  = 253
	varintTag128 = 254
	varintTagMax = 250
)

func encodeVarintUint64(c *cursor, u uint64) error {
	switch {
	case u <= varintTagMax:
		return c.writeU8(uint8(u))
	case u <= 0xFFFF:
		if err := c.writeU8(varintTag16); err != nil {
			return err
		}
		return c.writeU16(uint16(u), c.cfg.Endian)
	case u <= 0xFFFF_FFFF:
		if err := c.writeU8(varintTag32); err != nil {
			return err
		}
		return c.writeU32(uint32(u), c.cfg.Endian)
	default:
		if err := c.writeU8(varintTag64); err != nil {
			return err
		}
		return c.writeU64(u, c.cfg.Endian)
	}
}

func decodeVarintUint64(c *cursor) (uint64, error) {
	tag, err := c.readU8()
	if err != nil {
		return 0, err
	}
	switch {
	case tag <= varintTagMax:
		return uint64(tag), nil
	case tag == varintTag16:
		v, err := c.readU16(c.cfg.Endian)
		return uint64(v), err
	case tag == varintTag32:
		v, err := c.readU32(c.cfg.Endian)
		return uint64(v), err
	case tag == varintTag64:
		return c.readU64(c.cfg.Endian)
	case tag == varintTag128:
		return 0, fail(ErrBigintOutOfRange, "varint discriminator 254 requires u128, got u64 read")
	default:
		return 0, fail(ErrBigintOutOfRange, "unknown varint discriminator byte %d", tag)
	}
}

func encodeVarintUint128(c *cursor, u Uint128) error {
	if u.IsUint64() {
		return encodeVarintUint64(c, u.Lo)
	}
	if err := c.writeU8(varintTag128); err != nil {
		return err
	}
	return c.writeU128(u, c.cfg.Endian)
}

func decodeVarintUint128(c *cursor) (Uint128, error) {
	tag, err := c.readU8()
	if err != nil {
		return Uint128{}, err
	}
	switch {
	case tag <= varintTagMax:
		return Uint128FromUint64(uint64(tag)), nil
	case tag == varintTag16:
		v, err := c.readU16(c.cfg.Endian)
		return Uint128FromUint64(uint64(v)), err
	case tag == varintTag32:
		v, err := c.readU32(c.cfg.Endian)
		return Uint128FromUint64(uint64(v)), err
	case tag == varintTag64:
		v, err := c.readU64(c.cfg.Endian)
		return Uint128FromUint64(v), err
	case tag == varintTag128:
		return c.readU128(c.cfg.Endian)
	default:
		return Uint128{}, fail(ErrBigintOutOfRange, "unknown varint discriminator byte %d", tag)
	}
}

// zigzagEncode maps a signed value of width W (16, 32, or 64) to its
// zigzag-encoded unsigned form: zig(x) = (x<<1) xor (x>>(W-1)).
func zigzagEncode[U constraints.Unsigned, S constraints.Signed](x S, width uint) U {
	u := U(x)
	return (u << 1) ^ U(x>>S(width-1))
}

// zigzagDecode inverts zigzagEncode: unzig(z) = (z>>1) xor -(z&1).
func zigzagDecode[S constraints.Signed, U constraints.Unsigned](z U) S {
	return S(z>>1) ^ -S(z&1)
}

func encodeVarintInt64(c *cursor, x int64, width uint) error {
	z := zigzagEncode[uint64](x, width)
	return encodeVarintUint64(c, z)
}

func decodeVarintInt64(c *cursor, width uint) (int64, error) {
	z, err := decodeVarintUint64(c)
	if err != nil {
		return 0, err
	}
	return zigzagDecode[int64](z), nil
}

func encodeVarintInt128(c *cursor, x Int128) error {
	return encodeVarintUint128(c, zigzag128(x))
}

func decodeVarintInt128(c *cursor) (Int128, error) {
	z, err := decodeVarintUint128(c)
	if err != nil {
		return Int128{}, err
	}
	return unzigzag128(z), nil
}
