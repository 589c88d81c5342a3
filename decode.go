package bincode

import "unicode/utf8"

// decodePreallocCap bounds how many elements a Collection decode will
// pre-allocate from an untrusted length prefix before it has actually seen
// that many bytes, preventing a hostile length (e.g. 2^63) from driving an
// out-of-memory allocation (spec.md §5, §9 "Length-prefix pre-allocation").
// Real growth beyond this cap still happens via ordinary append.
const decodePreallocCap = 4096

// Decode reads a value shaped as desc describes from buf starting at
// offset, and returns the reconstructed value plus the offset past the
// last byte consumed (spec.md §6.2).
func Decode(desc *Descriptor, buf []byte, offset int, cfg Config) (Value, int, error) {
	c := newCursor(buf, offset, cfg)
	v, err := decodeValue(c, desc)
	if err != nil {
		return nil, 0, err
	}
	return v, c.offset(), nil
}

// Unmarshal decodes a single value at offset 0 and discards the trailing
// offset; callers who need to read a second value packed after the first
// should call Decode directly instead.
func Unmarshal(desc *Descriptor, buf []byte, cfg Config) (Value, error) {
	v, _, err := Decode(desc, buf, 0, cfg)
	return v, err
}

func decodeValue(c *cursor, d *Descriptor) (Value, error) {
	switch d.kind {
	case KindU8:
		return c.readU8()

	case KindI8:
		return c.readI8()

	case KindU16:
		return decodeUnsigned16(c)

	case KindU32:
		return decodeUnsigned32(c)

	case KindU64:
		return decodeUnsigned64(c)

	case KindU128:
		return decodeUnsigned128(c)

	case KindI16:
		x, err := decodeSigned(c, 16)
		return int16(x), err

	case KindI32:
		x, err := decodeSigned(c, 32)
		return int32(x), err

	case KindI64:
		return decodeSigned(c, 64)

	case KindI128:
		return decodeSigned128(c)

	case KindF32:
		return c.readF32(c.cfg.Endian)

	case KindF64:
		return c.readF64(c.cfg.Endian)

	case KindF16, KindF128:
		return nil, fail(ErrUnimplemented, "%s is reserved and not supported", d.kind)

	case KindBool:
		b, err := c.readU8()
		if err != nil {
			return nil, err
		}
		switch b {
		case 0:
			return false, nil
		case 1:
			return true, nil
		default:
			return nil, fail(ErrInvalidType, "bool byte must be 0 or 1, got %d", b)
		}

	case KindString:
		n, err := decodeLength(c)
		if err != nil {
			return nil, err
		}
		raw, err := c.readExact(n)
		if err != nil {
			return nil, err
		}
		if !utf8.Valid(raw) {
			return nil, fail(ErrInvalidType, "string bytes are not valid UTF-8")
		}
		return string(raw), nil

	case KindTuple:
		out := make([]Value, len(d.tupleElems))
		for i, elemDesc := range d.tupleElems {
			v, err := decodeValue(c, elemDesc)
			if err != nil {
				return nil, withPath(err, indexSegment(i))
			}
			out[i] = v
		}
		return out, nil

	case KindFixedArray:
		out := make([]Value, d.fixedSize)
		for i := 0; i < d.fixedSize; i++ {
			v, err := decodeValue(c, d.elem)
			if err != nil {
				return nil, withPath(err, indexSegment(i))
			}
			out[i] = v
		}
		return out, nil

	case KindCollection:
		n, err := decodeLength(c)
		if err != nil {
			return nil, err
		}
		out := make([]Value, 0, clampPrealloc(n, len(c.buf)-c.off))
		for i := uint64(0); i < n; i++ {
			v, err := decodeValue(c, d.elem)
			if err != nil {
				return nil, withPath(err, indexSegment(int(i)))
			}
			out = append(out, v)
		}
		return out, nil

	case KindStruct:
		sv := make(StructValue, len(d.fields))
		for _, f := range d.fields {
			v, err := decodeValue(c, f.Desc)
			if err != nil {
				return nil, withPath(err, f.Name)
			}
			sv[f.Name] = v
		}
		return sv, nil

	case KindEnum:
		disc, err := decodeDiscriminant(c)
		if err != nil {
			return nil, err
		}
		variant, found := d.variantByDiscriminant(disc)
		if !found {
			return nil, fail(ErrInvalidVariant, "discriminant %d does not match any declared variant", disc)
		}
		if variant.Payload == nil {
			return EnumValue{Variant: variant.Name}, nil
		}
		payload, err := decodeValue(c, variant.Payload)
		if err != nil {
			return nil, withPath(err, variant.Name)
		}
		return EnumValue{Variant: variant.Name, Payload: payload}, nil

	case KindOption:
		tag, err := c.readU8()
		if err != nil {
			return nil, err
		}
		switch tag {
		case 0:
			return None, nil
		case 1:
			return decodeValue(c, d.inner)
		default:
			return nil, fail(ErrInvalidOptionVariant, "option tag must be 0 or 1, got %d", tag)
		}

	case KindCustom:
		if d.custom == nil || d.custom.Decode == nil {
			return nil, fail(ErrInvalidType, "custom descriptor has no Decode closure")
		}
		v, newOffset, err := d.custom.Decode(c.buf, c.off, c.cfg)
		if err != nil {
			return nil, err
		}
		if newOffset < c.off || newOffset > len(c.buf) {
			return nil, fail(ErrOverflowLimit, "custom decoder returned out-of-range offset %d", newOffset)
		}
		c.off = newOffset
		return v, nil

	default:
		return nil, fail(ErrInvalidType, "descriptor has unknown kind %d", d.kind)
	}
}

// clampPrealloc caps a caller-declared length to the number of bytes
// actually remaining (at minimum 1 byte each) and to decodePreallocCap,
// whichever is smaller — correctness is unchanged, only pre-allocation is
// bounded (spec.md §5, §9).
func clampPrealloc(n uint64, remaining int) int {
	if remaining < 0 {
		remaining = 0
	}
	cap := n
	if cap > uint64(remaining) {
		cap = uint64(remaining)
	}
	if cap > decodePreallocCap {
		cap = decodePreallocCap
	}
	return int(cap)
}

func decodeUnsigned16(c *cursor) (uint16, error) {
	if c.cfg.IntEncoding == Fixed {
		return c.readU16(c.cfg.Endian)
	}
	u, err := decodeVarintUint64(c)
	if err != nil {
		return 0, err
	}
	if u > 0xFFFF {
		return 0, fail(ErrBigintOutOfRange, "decoded varint %d does not fit in u16", u)
	}
	return uint16(u), nil
}

func decodeUnsigned32(c *cursor) (uint32, error) {
	if c.cfg.IntEncoding == Fixed {
		return c.readU32(c.cfg.Endian)
	}
	u, err := decodeVarintUint64(c)
	if err != nil {
		return 0, err
	}
	if u > 0xFFFFFFFF {
		return 0, fail(ErrBigintOutOfRange, "decoded varint %d does not fit in u32", u)
	}
	return uint32(u), nil
}

func decodeUnsigned64(c *cursor) (uint64, error) {
	if c.cfg.IntEncoding == Fixed {
		return c.readU64(c.cfg.Endian)
	}
	return decodeVarintUint64(c)
}

func decodeUnsigned128(c *cursor) (Uint128, error) {
	if c.cfg.IntEncoding == Fixed {
		return c.readU128(c.cfg.Endian)
	}
	return decodeVarintUint128(c)
}

func decodeSigned(c *cursor, width uint) (int64, error) {
	if c.cfg.IntEncoding == Fixed {
		switch width {
		case 16:
			u, err := c.readU16(c.cfg.Endian)
			return int64(int16(u)), err
		case 32:
			u, err := c.readU32(c.cfg.Endian)
			return int64(int32(u)), err
		default:
			u, err := c.readU64(c.cfg.Endian)
			return int64(u), err
		}
	}
	return decodeVarintInt64(c, width)
}

func decodeSigned128(c *cursor) (Int128, error) {
	if c.cfg.IntEncoding == Fixed {
		return c.readI128(c.cfg.Endian)
	}
	return decodeVarintInt128(c)
}
