package bincode

import "unicode/utf8"

// Encode writes v, shaped as desc describes, into buf starting at offset,
// and returns the offset past the last byte written (spec.md §6.2). It
// never resizes buf; it fails with ErrOverflowLimit if buf (or cfg.Limit)
// is too small.
func Encode(desc *Descriptor, v Value, buf []byte, offset int, cfg Config) (int, error) {
	c := newCursor(buf, offset, cfg)
	if err := encodeValue(c, desc, v); err != nil {
		return 0, err
	}
	return c.offset(), nil
}

// Size computes the number of bytes Encode(desc, v, ..., cfg) would write,
// without writing anything. Marshal uses this to size its buffer exactly
// once, the same precompute-then-write shape as creachadair/binpack's
// Encoder.Encode, which grows its buffer by
// tagSize(tag)+lengthSize(value)+len(value) before writing a single record
// (see DESIGN.md) — generalized here to an arbitrary descriptor tree.
func Size(desc *Descriptor, v Value, cfg Config) (int, error) {
	s := &sizer{cfg: cfg}
	if err := sizeValue(s, desc, v); err != nil {
		return 0, err
	}
	if s.n > int64(maxInt) {
		return 0, fail(ErrOverflowLimit, "encoded size %d overflows int", s.n)
	}
	return int(s.n), nil
}

const maxInt = int(^uint(0) >> 1)

// sizer accumulates a byte count without touching any buffer, enforcing
// cfg.Limit exactly as a real cursor would.
type sizer struct {
	n   int64
	cfg Config
}

func (s *sizer) add(n int) error {
	s.n += int64(n)
	if s.cfg.Limit != nil && s.n > int64(*s.cfg.Limit) {
		return fail(ErrOverflowLimit, "size %d exceeds configured limit %d", s.n, *s.cfg.Limit)
	}
	return nil
}

func varintLen64(u uint64) int {
	switch {
	case u <= varintTagMax:
		return 1
	case u <= 0xFFFF:
		return 3
	case u <= 0xFFFF_FFFF:
		return 6
	default:
		return 9
	}
}

func varintLen128(u Uint128) int {
	if u.IsUint64() {
		return varintLen64(u.Lo)
	}
	return 17
}

func sizeValue(s *sizer, d *Descriptor, v Value) error {
	switch d.kind {
	case KindU8, KindI8, KindBool:
		return s.add(1)

	case KindU16:
		u, ok := v.(uint16)
		if !ok {
			return fail(ErrInvalidType, "expected uint16, got %T", v)
		}
		return s.add(sizeUnsigned(s.cfg, 2, uint64(u)))

	case KindU32:
		u, ok := v.(uint32)
		if !ok {
			return fail(ErrInvalidType, "expected uint32, got %T", v)
		}
		return s.add(sizeUnsigned(s.cfg, 4, uint64(u)))

	case KindU64:
		u, ok := v.(uint64)
		if !ok {
			return fail(ErrInvalidType, "expected uint64, got %T", v)
		}
		return s.add(sizeUnsigned(s.cfg, 8, u))

	case KindU128:
		u, ok := v.(Uint128)
		if !ok {
			return fail(ErrInvalidType, "expected Uint128, got %T", v)
		}
		if s.cfg.IntEncoding == Fixed {
			return s.add(16)
		}
		return s.add(varintLen128(u))

	case KindI16:
		i, ok := v.(int16)
		if !ok {
			return fail(ErrInvalidType, "expected int16, got %T", v)
		}
		return s.add(sizeSigned(s.cfg, 2, int64(i), 16))

	case KindI32:
		i, ok := v.(int32)
		if !ok {
			return fail(ErrInvalidType, "expected int32, got %T", v)
		}
		return s.add(sizeSigned(s.cfg, 4, int64(i), 32))

	case KindI64:
		i, ok := v.(int64)
		if !ok {
			return fail(ErrInvalidType, "expected int64, got %T", v)
		}
		return s.add(sizeSigned(s.cfg, 8, i, 64))

	case KindI128:
		i, ok := v.(Int128)
		if !ok {
			return fail(ErrInvalidType, "expected Int128, got %T", v)
		}
		if s.cfg.IntEncoding == Fixed {
			return s.add(16)
		}
		return s.add(varintLen128(zigzag128(i)))

	case KindF32:
		if _, ok := v.(float32); !ok {
			return fail(ErrInvalidType, "expected float32, got %T", v)
		}
		return s.add(4)

	case KindF64:
		if _, ok := v.(float64); !ok {
			return fail(ErrInvalidType, "expected float64, got %T", v)
		}
		return s.add(8)

	case KindF16, KindF128:
		return fail(ErrUnimplemented, "%s is reserved and not supported", d.kind)

	case KindString:
		str, ok := v.(string)
		if !ok {
			return fail(ErrInvalidType, "expected string, got %T", v)
		}
		if !utf8.ValidString(str) {
			return fail(ErrInvalidType, "string value is not valid UTF-8")
		}
		if err := s.add(sizeLength(s.cfg, uint64(len(str)))); err != nil {
			return err
		}
		return s.add(len(str))

	case KindTuple:
		seq, ok := v.([]Value)
		if !ok {
			return fail(ErrInvalidType, "expected []Value for tuple, got %T", v)
		}
		if len(seq) != len(d.tupleElems) {
			return fail(ErrInvalidLength, "tuple arity %d does not match value length %d", len(d.tupleElems), len(seq))
		}
		for i, elemDesc := range d.tupleElems {
			if err := sizeValue(s, elemDesc, seq[i]); err != nil {
				return withPath(err, indexSegment(i))
			}
		}
		return nil

	case KindFixedArray:
		seq, ok := v.([]Value)
		if !ok {
			return fail(ErrInvalidType, "expected []Value for fixed array, got %T", v)
		}
		if len(seq) != d.fixedSize {
			return fail(ErrInvalidLength, "fixed array size %d does not match value length %d", d.fixedSize, len(seq))
		}
		for i, elt := range seq {
			if err := sizeValue(s, d.elem, elt); err != nil {
				return withPath(err, indexSegment(i))
			}
		}
		return nil

	case KindCollection:
		seq, ok := v.([]Value)
		if !ok {
			return fail(ErrInvalidType, "expected []Value for collection, got %T", v)
		}
		if err := s.add(sizeLength(s.cfg, uint64(len(seq)))); err != nil {
			return err
		}
		for i, elt := range seq {
			if err := sizeValue(s, d.elem, elt); err != nil {
				return withPath(err, indexSegment(i))
			}
		}
		return nil

	case KindStruct:
		sv, ok := v.(StructValue)
		if !ok {
			return fail(ErrInvalidType, "expected StructValue, got %T", v)
		}
		for _, f := range d.fields {
			fv, present := sv[f.Name]
			if !present {
				return fail(ErrInvalidType, "struct value missing field %q", f.Name)
			}
			if err := sizeValue(s, f.Desc, fv); err != nil {
				return withPath(err, f.Name)
			}
		}
		return nil

	case KindEnum:
		ev, ok := v.(EnumValue)
		if !ok {
			return fail(ErrInvalidType, "expected EnumValue, got %T", v)
		}
		variant, found := d.variantByName(ev.Variant)
		if !found {
			return fail(ErrInvalidVariant, "descriptor has no variant named %q", ev.Variant)
		}
		if err := s.add(sizeDiscriminant(s.cfg, variant.Discriminant)); err != nil {
			return err
		}
		if variant.Payload == nil {
			return nil
		}
		if err := sizeValue(s, variant.Payload, ev.Payload); err != nil {
			return withPath(err, variant.Name)
		}
		return nil

	case KindOption:
		if IsNone(v) {
			return s.add(1)
		}
		if err := s.add(1); err != nil {
			return err
		}
		return sizeValue(s, d.inner, v)

	case KindCustom:
		if d.custom == nil || d.custom.Encode == nil {
			return fail(ErrInvalidType, "custom descriptor has no Encode closure")
		}
		n, err := probeCustomSize(d.custom, v, s.cfg)
		if err != nil {
			return err
		}
		return s.add(n)

	default:
		return fail(ErrInvalidType, "descriptor has unknown kind %d", d.kind)
	}
}

func sizeUnsigned(cfg Config, fixedWidth int, u uint64) int {
	if cfg.IntEncoding == Fixed {
		return fixedWidth
	}
	return varintLen64(u)
}

func sizeSigned(cfg Config, fixedWidth int, x int64, width uint) int {
	if cfg.IntEncoding == Fixed {
		return fixedWidth
	}
	z := zigzagEncode[uint64](x, width)
	return varintLen64(z)
}

func sizeLength(cfg Config, n uint64) int {
	if cfg.IntEncoding == Fixed {
		return 8
	}
	return varintLen64(n)
}

func sizeDiscriminant(cfg Config, disc uint32) int {
	if cfg.IntEncoding == Fixed {
		return 4
	}
	return varintLen64(uint64(disc))
}

// Marshal sizes and encodes v in one call, returning a freshly allocated,
// exactly-sized buffer.
func Marshal(desc *Descriptor, v Value, cfg Config) ([]byte, error) {
	n, err := Size(desc, v, cfg)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if _, err := Encode(desc, v, buf, 0, cfg); err != nil {
		return nil, err
	}
	return buf, nil
}

func encodeValue(c *cursor, d *Descriptor, v Value) error {
	switch d.kind {
	case KindU8:
		u, ok := v.(uint8)
		if !ok {
			return fail(ErrInvalidType, "expected uint8, got %T", v)
		}
		return c.writeU8(u)

	case KindI8:
		i, ok := v.(int8)
		if !ok {
			return fail(ErrInvalidType, "expected int8, got %T", v)
		}
		return c.writeI8(i)

	case KindU16:
		u, ok := v.(uint16)
		if !ok {
			return fail(ErrInvalidType, "expected uint16, got %T", v)
		}
		return encodeUnsigned16(c, u)

	case KindU32:
		u, ok := v.(uint32)
		if !ok {
			return fail(ErrInvalidType, "expected uint32, got %T", v)
		}
		return encodeUnsigned32(c, u)

	case KindU64:
		u, ok := v.(uint64)
		if !ok {
			return fail(ErrInvalidType, "expected uint64, got %T", v)
		}
		return encodeUnsigned64(c, u)

	case KindU128:
		u, ok := v.(Uint128)
		if !ok {
			return fail(ErrInvalidType, "expected Uint128, got %T", v)
		}
		return encodeUnsigned128(c, u)

	case KindI16:
		i, ok := v.(int16)
		if !ok {
			return fail(ErrInvalidType, "expected int16, got %T", v)
		}
		return encodeSigned(c, int64(i), 16)

	case KindI32:
		i, ok := v.(int32)
		if !ok {
			return fail(ErrInvalidType, "expected int32, got %T", v)
		}
		return encodeSigned(c, int64(i), 32)

	case KindI64:
		i, ok := v.(int64)
		if !ok {
			return fail(ErrInvalidType, "expected int64, got %T", v)
		}
		return encodeSigned(c, i, 64)

	case KindI128:
		i, ok := v.(Int128)
		if !ok {
			return fail(ErrInvalidType, "expected Int128, got %T", v)
		}
		return encodeSigned128(c, i)

	case KindF32:
		f, ok := v.(float32)
		if !ok {
			return fail(ErrInvalidType, "expected float32, got %T", v)
		}
		return c.writeF32(f, c.cfg.Endian)

	case KindF64:
		f, ok := v.(float64)
		if !ok {
			return fail(ErrInvalidType, "expected float64, got %T", v)
		}
		return c.writeF64(f, c.cfg.Endian)

	case KindF16, KindF128:
		return fail(ErrUnimplemented, "%s is reserved and not supported", d.kind)

	case KindBool:
		b, ok := v.(bool)
		if !ok {
			return fail(ErrInvalidType, "expected bool, got %T", v)
		}
		if b {
			return c.writeU8(1)
		}
		return c.writeU8(0)

	case KindString:
		s, ok := v.(string)
		if !ok {
			return fail(ErrInvalidType, "expected string, got %T", v)
		}
		if !utf8.ValidString(s) {
			return fail(ErrInvalidType, "string value is not valid UTF-8")
		}
		if err := encodeLength(c, uint64(len(s))); err != nil {
			return err
		}
		return c.writeBytes([]byte(s))

	case KindTuple:
		seq, ok := v.([]Value)
		if !ok {
			return fail(ErrInvalidType, "expected []Value for tuple, got %T", v)
		}
		if len(seq) != len(d.tupleElems) {
			return fail(ErrInvalidLength, "tuple arity %d does not match value length %d", len(d.tupleElems), len(seq))
		}
		for i, elemDesc := range d.tupleElems {
			if err := encodeValue(c, elemDesc, seq[i]); err != nil {
				return withPath(err, indexSegment(i))
			}
		}
		return nil

	case KindFixedArray:
		seq, ok := v.([]Value)
		if !ok {
			return fail(ErrInvalidType, "expected []Value for fixed array, got %T", v)
		}
		if len(seq) != d.fixedSize {
			return fail(ErrInvalidLength, "fixed array size %d does not match value length %d", d.fixedSize, len(seq))
		}
		for i, elt := range seq {
			if err := encodeValue(c, d.elem, elt); err != nil {
				return withPath(err, indexSegment(i))
			}
		}
		return nil

	case KindCollection:
		seq, ok := v.([]Value)
		if !ok {
			return fail(ErrInvalidType, "expected []Value for collection, got %T", v)
		}
		if err := encodeLength(c, uint64(len(seq))); err != nil {
			return err
		}
		for i, elt := range seq {
			if err := encodeValue(c, d.elem, elt); err != nil {
				return withPath(err, indexSegment(i))
			}
		}
		return nil

	case KindStruct:
		sv, ok := v.(StructValue)
		if !ok {
			return fail(ErrInvalidType, "expected StructValue, got %T", v)
		}
		for _, f := range d.fields {
			fv, present := sv[f.Name]
			if !present {
				return fail(ErrInvalidType, "struct value missing field %q", f.Name)
			}
			if err := encodeValue(c, f.Desc, fv); err != nil {
				return withPath(err, f.Name)
			}
		}
		return nil

	case KindEnum:
		ev, ok := v.(EnumValue)
		if !ok {
			return fail(ErrInvalidType, "expected EnumValue, got %T", v)
		}
		variant, found := d.variantByName(ev.Variant)
		if !found {
			return fail(ErrInvalidVariant, "descriptor has no variant named %q", ev.Variant)
		}
		if err := encodeDiscriminant(c, variant.Discriminant); err != nil {
			return err
		}
		if variant.Payload == nil {
			return nil
		}
		if err := encodeValue(c, variant.Payload, ev.Payload); err != nil {
			return withPath(err, variant.Name)
		}
		return nil

	case KindOption:
		if IsNone(v) {
			return c.writeU8(0)
		}
		if err := c.writeU8(1); err != nil {
			return err
		}
		return encodeValue(c, d.inner, v)

	case KindCustom:
		if d.custom == nil || d.custom.Encode == nil {
			return fail(ErrInvalidType, "custom descriptor has no Encode closure")
		}
		newOffset, err := d.custom.Encode(c.buf, v, c.off, c.cfg)
		if err != nil {
			return err
		}
		if newOffset < c.off || newOffset > len(c.buf) {
			return fail(ErrOverflowLimit, "custom encoder returned out-of-range offset %d", newOffset)
		}
		c.off = newOffset
		return nil

	default:
		return fail(ErrInvalidType, "descriptor has unknown kind %d", d.kind)
	}
}

func indexSegment(i int) string { return "[" + itoa(i) + "]" }

// itoa avoids importing strconv solely for this one call site; kept local
// because it is only ever used to render small non-negative indices.
func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}

// encodeLength writes a collection/string byte length as a u64 under the
// active length encoding (spec.md §4.5/§6.1: varint under {variant}, raw
// 8-byte under {fixed}).
func encodeLength(c *cursor, n uint64) error {
	if c.cfg.IntEncoding == Fixed {
		return c.writeU64(n, c.cfg.Endian)
	}
	return encodeVarintUint64(c, n)
}

func decodeLength(c *cursor) (uint64, error) {
	if c.cfg.IntEncoding == Fixed {
		return c.readU64(c.cfg.Endian)
	}
	return decodeVarintUint64(c)
}

// encodeDiscriminant writes an enum discriminant as a u32 under the active
// int encoding.
func encodeDiscriminant(c *cursor, disc uint32) error {
	if c.cfg.IntEncoding == Fixed {
		return c.writeU32(disc, c.cfg.Endian)
	}
	return encodeVarintUint64(c, uint64(disc))
}

func decodeDiscriminant(c *cursor) (uint32, error) {
	if c.cfg.IntEncoding == Fixed {
		return c.readU32(c.cfg.Endian)
	}
	u, err := decodeVarintUint64(c)
	if err != nil {
		return 0, err
	}
	if u > 0xFFFFFFFF {
		return 0, fail(ErrBigintOutOfRange, "discriminant %d does not fit in u32", u)
	}
	return uint32(u), nil
}

func encodeUnsigned16(c *cursor, u uint16) error {
	if c.cfg.IntEncoding == Fixed {
		return c.writeU16(u, c.cfg.Endian)
	}
	return encodeVarintUint64(c, uint64(u))
}

func encodeUnsigned32(c *cursor, u uint32) error {
	if c.cfg.IntEncoding == Fixed {
		return c.writeU32(u, c.cfg.Endian)
	}
	return encodeVarintUint64(c, uint64(u))
}

func encodeUnsigned64(c *cursor, u uint64) error {
	if c.cfg.IntEncoding == Fixed {
		return c.writeU64(u, c.cfg.Endian)
	}
	return encodeVarintUint64(c, u)
}

func encodeUnsigned128(c *cursor, u Uint128) error {
	if c.cfg.IntEncoding == Fixed {
		return c.writeU128(u, c.cfg.Endian)
	}
	return encodeVarintUint128(c, u)
}

func encodeSigned(c *cursor, x int64, width uint) error {
	if c.cfg.IntEncoding == Fixed {
		switch width {
		case 16:
			return c.writeU16(uint16(x), c.cfg.Endian)
		case 32:
			return c.writeU32(uint32(x), c.cfg.Endian)
		default:
			return c.writeU64(uint64(x), c.cfg.Endian)
		}
	}
	return encodeVarintInt64(c, x, width)
}

func encodeSigned128(c *cursor, x Int128) error {
	if c.cfg.IntEncoding == Fixed {
		return c.writeI128(x, c.cfg.Endian)
	}
	return encodeVarintInt128(c, x)
}
