package bincode

import (
	"fmt"

	"sigs.k8s.io/yaml"
)

// Endian selects the byte order applied to every multi-byte primitive and
// to every varint payload.
type Endian int

const (
	LittleEndian Endian = iota
	BigEndian
)

func (e Endian) String() string {
	if e == BigEndian {
		return "big"
	}
	return "little"
}

// MarshalJSON renders Endian as "little"/"big" so Config survives a
// round trip through sigs.k8s.io/yaml (which converts YAML to JSON under
// the hood before unmarshaling).
func (e Endian) MarshalJSON() ([]byte, error) {
	return []byte(`"` + e.String() + `"`), nil
}

func (e *Endian) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"little"`:
		*e = LittleEndian
	case `"big"`:
		*e = BigEndian
	default:
		return fmt.Errorf("bincode: invalid endian %s (want \"little\" or \"big\")", data)
	}
	return nil
}

// IntEncoding selects whether multi-byte integers, lengths, and
// discriminants use raw fixed width or the varint+zigzag scheme of
// spec.md §4.2.
type IntEncoding int

const (
	Fixed IntEncoding = iota
	Variant
)

func (m IntEncoding) String() string {
	if m == Fixed {
		return "fixed"
	}
	return "variant"
}

func (m IntEncoding) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

func (m *IntEncoding) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"fixed"`:
		*m = Fixed
	case `"variant"`:
		*m = Variant
	default:
		return fmt.Errorf("bincode: invalid intEncoding %s (want \"fixed\" or \"variant\")", data)
	}
	return nil
}

// Config holds the three orthogonal knobs spec.md §4.4 defines. The zero
// value reads as {little, fixed, no limit}, which is the same as Legacy,
// not Standard.
type Config struct {
	Endian      Endian      `json:"endian"`
	IntEncoding IntEncoding `json:"intEncoding"`

	// Limit, if non-nil, is the maximum total byte offset any cursor
	// operation may reach. nil means unbounded (apart from the buffer
	// itself).
	Limit *uint64 `json:"limit,omitempty"`
}

// Standard is the reference bincode "standard" configuration:
// {little, variant}.
var Standard = Config{Endian: LittleEndian, IntEncoding: Variant}

// Legacy is the fixed-width configuration: {little, fixed}.
var Legacy = Config{Endian: LittleEndian, IntEncoding: Fixed}

// WithLimit returns a copy of cfg with Limit set to n.
func (cfg Config) WithLimit(n uint64) Config {
	cfg.Limit = &n
	return cfg
}

// LoadConfig parses a YAML document (e.g. a service's config file) into a
// Config. Unset fields default to Standard's.
func LoadConfig(data []byte) (Config, error) {
	cfg := Standard
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("bincode: loading config: %w", err)
	}
	return cfg, nil
}

// DumpConfig renders cfg as YAML, the inverse of LoadConfig.
func DumpConfig(cfg Config) ([]byte, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("bincode: dumping config: %w", err)
	}
	return out, nil
}
