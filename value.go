package bincode

// Value is the language-neutral in-memory form the encoder consumes and
// the decoder produces (spec.md §3.2). It carries no compile-time shape
// information; agreement with a Descriptor is the caller's responsibility,
// exactly as spec.md's Non-goals exclude reflection-derived descriptors.
//
// Concrete dynamic types that flow through Value:
//
//	bool, string
//	uint8, int8                 (u8/i8 — always a single raw byte)
//	uint16, uint32, int16, int32
//	uint64, int64                (native 64-bit: Go represents these
//	                               exactly, unlike the float64-backed
//	                               numbers of the TypeScript source)
//	Uint128, Int128               (the only lanes that need a dedicated
//	                               big-integer type in Go)
//	float32, float64
//	[]Value                       (Tuple, FixedArray, Collection elements)
//	StructValue                   (Struct: field name -> value)
//	EnumValue                      (Enum: variant name + payload)
//	None, or any other Value      (Option: absent marker, or present inner)
type Value = any

// StructValue is a struct's value representation: a mapping from
// field-name to value (spec.md §3.2). Encoding reads fields in the order
// the Descriptor's field list declares, not map iteration order, so the
// wire output remains deterministic despite map's own random iteration
// order.
type StructValue map[string]Value

// EnumValue pairs a variant name with its payload value. Payload is nil
// for a unit (dataless) variant. Callers never manipulate the numeric
// discriminant directly — only the Descriptor does, at encode/decode time.
type EnumValue struct {
	Variant string
	Payload Value
}

// noneType is the unexported sentinel type backing the option "absent"
// marker, so it can never collide with a legitimate inner value (including
// an inner value that happens to be Go's nil, e.g. a nil []Value).
type noneType struct{}

// None marks an Option value as absent.
var None Value = noneType{}

// IsNone reports whether v is the Option "absent" marker.
func IsNone(v Value) bool {
	_, ok := v.(noneType)
	return ok
}

// Some wraps an inner value as an Option "present" value. It exists purely
// for call-site symmetry with None; Option("present") values are just the
// inner value itself.
func Some(v Value) Value { return v }
