package bincode

import (
	"encoding/binary"
	"math"
)

// cursor is a bounded read/write window over a caller-owned byte buffer.
// It never resizes buf; every accessor either advances off by the fixed
// width of its type or fails with ErrOverflowLimit. It is the sole place
// that knows how to turn a Config's Endian into concrete byte order.
type cursor struct {
	buf []byte
	off int
	cfg Config
}

func newCursor(buf []byte, off int, cfg Config) *cursor {
	return &cursor{buf: buf, off: off, cfg: cfg}
}

func (c *cursor) offset() int { return c.off }

// bound reports whether reading/writing n bytes starting at the current
// offset stays within both the buffer and the configured limit.
func (c *cursor) bound(n int) error {
	end := c.off + n
	if end < 0 || end > len(c.buf) {
		return fail(ErrOverflowLimit, "need %d bytes at offset %d, buffer has %d", n, c.off, len(c.buf))
	}
	if c.cfg.Limit != nil && uint64(end) > *c.cfg.Limit {
		return fail(ErrOverflowLimit, "offset %d exceeds configured limit %d", end, *c.cfg.Limit)
	}
	return nil
}

func byteOrder(e Endian) binary.ByteOrder {
	if e == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// --- raw bulk access ---

func (c *cursor) writeBytes(p []byte) error {
	if err := c.bound(len(p)); err != nil {
		return err
	}
	copy(c.buf[c.off:], p)
	c.off += len(p)
	return nil
}

func (c *cursor) readBytes(n int) ([]byte, error) {
	if err := c.bound(n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, c.buf[c.off:c.off+n])
	c.off += n
	return out, nil
}

// readExact reads a wire-declared length n (up to a full u64) safely: it
// checks n against the bytes actually remaining before ever casting to int
// or allocating, so a hostile length (e.g. 2^63) fails with
// ErrOverflowLimit instead of overflowing the int conversion or driving an
// oversized allocation.
func (c *cursor) readExact(n uint64) ([]byte, error) {
	remaining := len(c.buf) - c.off
	if remaining < 0 {
		remaining = 0
	}
	if n > uint64(remaining) {
		return nil, fail(ErrOverflowLimit, "need %d bytes, only %d remain", n, remaining)
	}
	return c.readBytes(int(n))
}

// --- u8 / i8: always a single raw byte, regardless of endian/IntEncoding ---

func (c *cursor) writeU8(v uint8) error {
	if err := c.bound(1); err != nil {
		return err
	}
	c.buf[c.off] = v
	c.off++
	return nil
}

func (c *cursor) readU8() (uint8, error) {
	if err := c.bound(1); err != nil {
		return 0, err
	}
	v := c.buf[c.off]
	c.off++
	return v, nil
}

func (c *cursor) writeI8(v int8) error { return c.writeU8(uint8(v)) }

func (c *cursor) readI8() (int8, error) {
	v, err := c.readU8()
	return int8(v), err
}

// --- fixed-width multi-byte integers, endian per Endian argument ---

func (c *cursor) writeU16(v uint16, e Endian) error {
	if err := c.bound(2); err != nil {
		return err
	}
	byteOrder(e).PutUint16(c.buf[c.off:], v)
	c.off += 2
	return nil
}

func (c *cursor) readU16(e Endian) (uint16, error) {
	if err := c.bound(2); err != nil {
		return 0, err
	}
	v := byteOrder(e).Uint16(c.buf[c.off:])
	c.off += 2
	return v, nil
}

func (c *cursor) writeU32(v uint32, e Endian) error {
	if err := c.bound(4); err != nil {
		return err
	}
	byteOrder(e).PutUint32(c.buf[c.off:], v)
	c.off += 4
	return nil
}

func (c *cursor) readU32(e Endian) (uint32, error) {
	if err := c.bound(4); err != nil {
		return 0, err
	}
	v := byteOrder(e).Uint32(c.buf[c.off:])
	c.off += 4
	return v, nil
}

func (c *cursor) writeU64(v uint64, e Endian) error {
	if err := c.bound(8); err != nil {
		return err
	}
	byteOrder(e).PutUint64(c.buf[c.off:], v)
	c.off += 8
	return nil
}

func (c *cursor) readU64(e Endian) (uint64, error) {
	if err := c.bound(8); err != nil {
		return 0, err
	}
	v := byteOrder(e).Uint64(c.buf[c.off:])
	c.off += 8
	return v, nil
}

// writeU128 writes the two 64-bit halves of v: low-then-high for little
// endian, high-then-low for big endian (spec.md §4.1).
func (c *cursor) writeU128(v Uint128, e Endian) error {
	if e == BigEndian {
		if err := c.writeU64(v.Hi, e); err != nil {
			return err
		}
		return c.writeU64(v.Lo, e)
	}
	if err := c.writeU64(v.Lo, e); err != nil {
		return err
	}
	return c.writeU64(v.Hi, e)
}

func (c *cursor) readU128(e Endian) (Uint128, error) {
	if e == BigEndian {
		hi, err := c.readU64(e)
		if err != nil {
			return Uint128{}, err
		}
		lo, err := c.readU64(e)
		if err != nil {
			return Uint128{}, err
		}
		return Uint128{Lo: lo, Hi: hi}, nil
	}
	lo, err := c.readU64(e)
	if err != nil {
		return Uint128{}, err
	}
	hi, err := c.readU64(e)
	if err != nil {
		return Uint128{}, err
	}
	return Uint128{Lo: lo, Hi: hi}, nil
}

func (c *cursor) writeI128(v Int128, e Endian) error {
	return c.writeU128(v.asUint128(), e)
}

func (c *cursor) readI128(e Endian) (Int128, error) {
	u, err := c.readU128(e)
	if err != nil {
		return Int128{}, err
	}
	return uint128AsInt128(u), nil
}

// --- floats: raw IEEE-754 bits ---

func (c *cursor) writeF32(v float32, e Endian) error {
	return c.writeU32(math.Float32bits(v), e)
}

func (c *cursor) readF32(e Endian) (float32, error) {
	bits, err := c.readU32(e)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}

func (c *cursor) writeF64(v float64, e Endian) error {
	return c.writeU64(math.Float64bits(v), e)
}

func (c *cursor) readF64(e Endian) (float64, error) {
	bits, err := c.readU64(e)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}
