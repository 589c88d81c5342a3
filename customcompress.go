package bincode

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/flate"
)

// CompressedBytesDescriptor is a Custom descriptor demonstrating the other
// half of the extension point: a genuinely user-defined wire format, not
// just an external fixed-width type. Encode takes a []byte value, DEFLATEs
// it with github.com/klauspost/compress/flate, and frames the compressed
// payload with a length prefix under the active Config; Decode mirrors
// that. The engine treats both closures as opaque and never inspects what
// they actually write (spec.md §9, "treat them like an FFI call").
var CompressedBytesDescriptor = Custom(CustomCodec{
	Encode: encodeCompressedBytes,
	Decode: decodeCompressedBytes,
})

func encodeCompressedBytes(buf []byte, v Value, offset int, cfg Config) (int, error) {
	raw, ok := v.([]byte)
	if !ok {
		return 0, fail(ErrInvalidType, "expected []byte, got %T", v)
	}

	var compressed bytes.Buffer
	w, err := flate.NewWriter(&compressed, flate.DefaultCompression)
	if err != nil {
		return 0, err
	}
	if _, err := w.Write(raw); err != nil {
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, err
	}

	c := newCursor(buf, offset, cfg)
	if err := encodeLength(c, uint64(compressed.Len())); err != nil {
		return 0, err
	}
	if err := c.writeBytes(compressed.Bytes()); err != nil {
		return 0, err
	}
	return c.offset(), nil
}

func decodeCompressedBytes(buf []byte, offset int, cfg Config) (Value, int, error) {
	c := newCursor(buf, offset, cfg)
	n, err := decodeLength(c)
	if err != nil {
		return nil, 0, err
	}
	compressed, err := c.readExact(n)
	if err != nil {
		return nil, 0, err
	}

	r := flate.NewReader(bytes.NewReader(compressed))
	defer r.Close()
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, fail(ErrInvalidType, "inflating compressed bytes: %v", err)
	}
	return raw, c.offset(), nil
}
