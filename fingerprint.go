package bincode

import (
	"github.com/dchest/siphash"
)

// fingerprintKey0/1 are fixed SipHash keys. Fingerprint is a cache key for
// callers, not a wire value or a security boundary, so a fixed key (rather
// than one generated per process) is what makes two otherwise-identical
// descriptors hash identically across calls and across processes.
const (
	fingerprintKey0 = 0x62696e636f646531 // "bincode1"
	fingerprintKey1 = 0x6669006e67707274 // arbitrary second key half
)

// Fingerprint computes a stable, process-independent cache key for a
// descriptor's shape. Descriptor constructors are pure and side-effect
// free and "may be memoized by callers" (spec.md §6.2); Fingerprint is the
// tool that makes that memoization practical without requiring pointer
// identity, and without the engine itself holding any cache (spec.md §4.6
// keeps the engine stateless — this is purely a caller-facing utility).
func Fingerprint(d *Descriptor) uint64 {
	h := make([]byte, 0, 64)
	h = appendFingerprint(h, d)
	return siphash.Hash(fingerprintKey0, fingerprintKey1, h)
}

func appendFingerprint(buf []byte, d *Descriptor) []byte {
	if d == nil {
		return append(buf, 0xFF)
	}
	buf = append(buf, byte(d.kind))
	switch d.kind {
	case KindTuple:
		buf = appendUvarintRaw(buf, uint64(len(d.tupleElems)))
		for _, e := range d.tupleElems {
			buf = appendFingerprint(buf, e)
		}
	case KindFixedArray:
		buf = appendUvarintRaw(buf, uint64(d.fixedSize))
		buf = appendFingerprint(buf, d.elem)
	case KindCollection:
		buf = appendFingerprint(buf, d.elem)
	case KindStruct:
		buf = appendUvarintRaw(buf, uint64(len(d.fields)))
		for _, f := range d.fields {
			buf = append(buf, []byte(f.Name)...)
			buf = append(buf, 0)
			buf = appendFingerprint(buf, f.Desc)
		}
	case KindEnum:
		buf = appendUvarintRaw(buf, uint64(len(d.variants)))
		for _, v := range d.variants {
			buf = append(buf, []byte(v.Name)...)
			buf = append(buf, 0)
			buf = appendUvarintRaw(buf, uint64(v.Discriminant))
			buf = appendFingerprint(buf, v.Payload)
		}
	case KindOption:
		buf = appendFingerprint(buf, d.inner)
	case KindCustom:
		// Opaque: two distinct Custom descriptors fingerprint identically
		// unless the caller distinguishes them some other way (e.g. as a
		// struct field name). This mirrors the engine's own "treat it like
		// an FFI call" stance on Custom (spec.md §9).
	}
	return buf
}

func appendUvarintRaw(buf []byte, u uint64) []byte {
	for u >= 0x80 {
		buf = append(buf, byte(u)|0x80)
		u >>= 7
	}
	return append(buf, byte(u))
}
