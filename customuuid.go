package bincode

import "github.com/google/uuid"

// UUIDDescriptor is a Custom descriptor for github.com/google/uuid.UUID: a
// natural "the wire format already has a fixed-width external type" case
// for the Custom extension point (spec.md §3.1, §9). It writes the UUID's
// 16 raw bytes with no length prefix — its width is fixed by the type
// itself, the same way FixedArray's size is fixed by the descriptor rather
// than the value.
var UUIDDescriptor = Custom(CustomCodec{
	Encode: encodeUUID,
	Decode: decodeUUID,
	Size:   sizeUUID,
})

func encodeUUID(buf []byte, v Value, offset int, cfg Config) (int, error) {
	id, ok := v.(uuid.UUID)
	if !ok {
		return 0, fail(ErrInvalidType, "expected uuid.UUID, got %T", v)
	}
	end := offset + 16
	if end > len(buf) || (cfg.Limit != nil && uint64(end) > *cfg.Limit) {
		return 0, fail(ErrOverflowLimit, "need 16 bytes at offset %d for uuid", offset)
	}
	copy(buf[offset:end], id[:])
	return end, nil
}

func decodeUUID(buf []byte, offset int, cfg Config) (Value, int, error) {
	end := offset + 16
	if end > len(buf) || (cfg.Limit != nil && uint64(end) > *cfg.Limit) {
		return nil, 0, fail(ErrOverflowLimit, "need 16 bytes at offset %d for uuid", offset)
	}
	var id uuid.UUID
	copy(id[:], buf[offset:end])
	return id, end, nil
}

func sizeUUID(v Value, cfg Config) (int, error) {
	if _, ok := v.(uuid.UUID); !ok {
		return 0, fail(ErrInvalidType, "expected uuid.UUID, got %T", v)
	}
	return 16, nil
}
