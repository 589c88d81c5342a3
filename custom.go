package bincode

import "errors"

// CustomCodec is the closure pair backing a Custom descriptor (spec.md
// §3.1, §9): the engine treats it as an opaque FFI boundary, trusting it to
// respect the active Config's endianness and byte limit the same way every
// other kind does.
type CustomCodec struct {
	// Encode writes v into buf starting at offset and returns the offset
	// past the last byte written.
	Encode func(buf []byte, v Value, offset int, cfg Config) (int, error)

	// Decode reads from buf starting at offset and returns the decoded
	// value plus the offset past the last byte consumed.
	Decode func(buf []byte, offset int, cfg Config) (Value, int, error)

	// Size, if set, reports how many bytes Encode would write for v
	// without actually writing them. When nil, Size() (the package-level
	// function) falls back to probing Encode against a scratch buffer.
	Size func(v Value, cfg Config) (int, error)
}

// Custom builds a Descriptor around a user-supplied codec. The engine gives
// up all of its own safety guarantees across this boundary — see spec.md
// §9 ("treat them like an FFI call").
func Custom(codec CustomCodec) *Descriptor {
	c := codec
	return &Descriptor{kind: KindCustom, custom: &c}
}

const (
	customProbeCap    = 1 << 12
	customProbeCapMax = 1 << 30
)

// probeCustomSize measures the size of a custom-encoded value by trial
// encoding into a scratch buffer, doubling its capacity on ErrOverflowLimit
// until the encode succeeds or the cap is exceeded. When the CustomCodec
// supplies its own Size, that is called instead and no trial encode runs.
func probeCustomSize(custom *CustomCodec, v Value, cfg Config) (int, error) {
	if custom.Size != nil {
		return custom.Size(v, cfg)
	}
	capacity := customProbeCap
	for {
		n, err := custom.Encode(make([]byte, capacity), v, 0, cfg)
		if err == nil {
			return n, nil
		}
		if !errors.Is(err, ErrOverflowLimit) || capacity >= customProbeCapMax {
			return 0, err
		}
		capacity *= 2
	}
}
