package bincode

// Kind tags the shape a Descriptor describes (spec.md §3.1). It is a
// closed set: every Descriptor's behavior is fully determined by its Kind
// plus the kind-specific fields populated by the constructor that built it.
type Kind int

const (
	KindU8 Kind = iota
	KindU16
	KindU32
	KindU64
	KindU128
	KindI8
	KindI16
	KindI32
	KindI64
	KindI128
	KindF16 // reserved: always fails with ErrUnimplemented
	KindF32
	KindF64
	KindF128 // reserved: always fails with ErrUnimplemented
	KindBool
	KindString
	KindTuple
	KindFixedArray
	KindCollection
	KindStruct
	KindEnum
	KindOption
	KindCustom
)

func (k Kind) String() string {
	switch k {
	case KindU8:
		return "u8"
	case KindU16:
		return "u16"
	case KindU32:
		return "u32"
	case KindU64:
		return "u64"
	case KindU128:
		return "u128"
	case KindI8:
		return "i8"
	case KindI16:
		return "i16"
	case KindI32:
		return "i32"
	case KindI64:
		return "i64"
	case KindI128:
		return "i128"
	case KindF16:
		return "f16"
	case KindF32:
		return "f32"
	case KindF64:
		return "f64"
	case KindF128:
		return "f128"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindTuple:
		return "tuple"
	case KindFixedArray:
		return "fixedarray"
	case KindCollection:
		return "collection"
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	case KindOption:
		return "option"
	case KindCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// StructField is one (name, descriptor) pair of a Struct descriptor,
// encoded/decoded in declaration order.
type StructField struct {
	Name string
	Desc *Descriptor
}

// Variant is one named member of an Enum descriptor: a unique numeric
// discriminant plus an optional payload shape. Payload is nil for a unit
// (dataless) variant, which emits zero bytes after its discriminant.
type Variant struct {
	Name         string
	Discriminant uint32
	Payload      *Descriptor
}

// Descriptor is the runtime tagged tree describing one shape (spec.md §3.1,
// §9). It is immutable once constructed and safe to share across goroutines
// and across repeated Encode/Decode calls. The zero value is not a valid
// Descriptor; always build one through a constructor in this file.
type Descriptor struct {
	kind Kind

	// KindTuple
	tupleElems []*Descriptor

	// KindFixedArray / KindCollection
	elem      *Descriptor
	fixedSize int // KindFixedArray only

	// KindStruct
	fields []StructField

	// KindEnum
	variants []Variant

	// KindOption
	inner *Descriptor

	// KindCustom
	custom *CustomCodec
}

// Kind reports the shape this descriptor describes.
func (d *Descriptor) Kind() Kind { return d.kind }

func primitive(k Kind) *Descriptor { return &Descriptor{kind: k} }

func U8() *Descriptor     { return primitive(KindU8) }
func U16() *Descriptor    { return primitive(KindU16) }
func U32() *Descriptor    { return primitive(KindU32) }
func U64() *Descriptor    { return primitive(KindU64) }
func U128() *Descriptor   { return primitive(KindU128) }
func I8() *Descriptor     { return primitive(KindI8) }
func I16() *Descriptor    { return primitive(KindI16) }
func I32() *Descriptor    { return primitive(KindI32) }
func I64() *Descriptor    { return primitive(KindI64) }
func I128() *Descriptor   { return primitive(KindI128) }
func F16() *Descriptor    { return primitive(KindF16) }
func F32() *Descriptor    { return primitive(KindF32) }
func F64() *Descriptor    { return primitive(KindF64) }
func F128() *Descriptor   { return primitive(KindF128) }
func Bool() *Descriptor   { return primitive(KindBool) }
func String() *Descriptor { return primitive(KindString) }

// Tuple builds a finite ordered sequence of child descriptors. Arity 0 is
// the unit value; arity 1 has no extra framing either.
func Tuple(elems ...*Descriptor) *Descriptor {
	return &Descriptor{kind: KindTuple, tupleElems: append([]*Descriptor(nil), elems...)}
}

// Unit is the arity-0 tuple.
func Unit() *Descriptor { return Tuple() }

// FixedArray describes a child descriptor repeated exactly n times, with no
// length prefix on the wire; n is part of the descriptor (type-level), not
// the value. Returns ErrInvalidType if n is negative.
func FixedArray(elem *Descriptor, n int) (*Descriptor, error) {
	if n < 0 {
		return nil, fail(ErrInvalidType, "fixed array size must be >= 0, got %d", n)
	}
	return &Descriptor{kind: KindFixedArray, elem: elem, fixedSize: n}, nil
}

// MustFixedArray is FixedArray but panics on error, for use at package
// init / var-declaration time with a literal size.
func MustFixedArray(elem *Descriptor, n int) *Descriptor {
	d, err := FixedArray(elem, n)
	if err != nil {
		panic(err)
	}
	return d
}

// Collection describes a variable-length sequence of elem; its length
// travels with the value, not the descriptor.
func Collection(elem *Descriptor) *Descriptor {
	return &Descriptor{kind: KindCollection, elem: elem}
}

// Vec is an alias for Collection.
func Vec(elem *Descriptor) *Descriptor { return Collection(elem) }

// Set is an alias for Collection (bincode does not distinguish sets from
// sequences on the wire).
func Set(elem *Descriptor) *Descriptor { return Collection(elem) }

// Bytes is Collection(U8()) under another name.
func Bytes() *Descriptor { return Collection(U8()) }

// MapOf is Collection(Tuple(key, value)) under another name ("Map" is
// avoided to not shadow the builtin map keyword in reading call sites).
func MapOf(key, value *Descriptor) *Descriptor {
	return Collection(Tuple(key, value))
}

// Struct builds an ordered sequence of (field-name, descriptor) pairs.
// Returns ErrInvalidType if any field name repeats.
func Struct(fields ...StructField) (*Descriptor, error) {
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if seen[f.Name] {
			return nil, fail(ErrInvalidType, "duplicate struct field name %q", f.Name)
		}
		seen[f.Name] = true
	}
	return &Descriptor{kind: KindStruct, fields: append([]StructField(nil), fields...)}, nil
}

// MustStruct is Struct but panics on error.
func MustStruct(fields ...StructField) *Descriptor {
	d, err := Struct(fields...)
	if err != nil {
		panic(err)
	}
	return d
}

// Enum builds a mapping from variant name to (discriminant, payload).
// Discriminants must be pairwise unique but need not be contiguous; names
// must also be pairwise unique. Returns ErrInvalidType otherwise.
func Enum(variants ...Variant) (*Descriptor, error) {
	seenName := make(map[string]bool, len(variants))
	seenDisc := make(map[uint32]bool, len(variants))
	for _, v := range variants {
		if seenName[v.Name] {
			return nil, fail(ErrInvalidType, "duplicate enum variant name %q", v.Name)
		}
		seenName[v.Name] = true
		if seenDisc[v.Discriminant] {
			return nil, fail(ErrInvalidType, "duplicate enum discriminant %d for variant %q", v.Discriminant, v.Name)
		}
		seenDisc[v.Discriminant] = true
	}
	return &Descriptor{kind: KindEnum, variants: append([]Variant(nil), variants...)}, nil
}

// MustEnum is Enum but panics on error.
func MustEnum(variants ...Variant) *Descriptor {
	d, err := Enum(variants...)
	if err != nil {
		panic(err)
	}
	return d
}

// Option represents "absent, or exactly one inner". It is always its own
// Kind, never modeled as a two-variant Enum — see spec.md §9 and
// DESIGN.md's "Open Question resolutions".
func Option(inner *Descriptor) *Descriptor {
	return &Descriptor{kind: KindOption, inner: inner}
}

// Result is Enum{Ok=0 -> Tuple(ok), Err=1 -> Tuple(errDesc)}.
func Result(ok, errDesc *Descriptor) *Descriptor {
	return MustEnum(
		Variant{Name: "Ok", Discriminant: 0, Payload: Tuple(ok)},
		Variant{Name: "Err", Discriminant: 1, Payload: Tuple(errDesc)},
	)
}

// variantByDiscriminant finds the variant carrying disc while decoding an
// enum, by a linear scan of the declared variants on every call; no index
// is built or cached inside the engine.
func (d *Descriptor) variantByDiscriminant(disc uint32) (Variant, bool) {
	for _, v := range d.variants {
		if v.Discriminant == disc {
			return v, true
		}
	}
	return Variant{}, false
}

func (d *Descriptor) variantByName(name string) (Variant, bool) {
	for _, v := range d.variants {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}
