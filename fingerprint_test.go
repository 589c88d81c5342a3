package bincode

import "testing"

func TestFingerprintStableAcrossDistinctConstructions(t *testing.T) {
	a := MustStruct(
		StructField{Name: "id", Desc: U64()},
		StructField{Name: "name", Desc: String()},
	)
	b := MustStruct(
		StructField{Name: "id", Desc: U64()},
		StructField{Name: "name", Desc: String()},
	)
	if Fingerprint(a) != Fingerprint(b) {
		t.Fatal("structurally identical descriptors must fingerprint identically")
	}
}

func TestFingerprintDiffersOnFieldOrder(t *testing.T) {
	a := MustStruct(
		StructField{Name: "id", Desc: U64()},
		StructField{Name: "name", Desc: String()},
	)
	b := MustStruct(
		StructField{Name: "name", Desc: String()},
		StructField{Name: "id", Desc: U64()},
	)
	if Fingerprint(a) == Fingerprint(b) {
		t.Fatal("field order must affect the fingerprint")
	}
}

func TestFingerprintDiffersOnKind(t *testing.T) {
	if Fingerprint(U32()) == Fingerprint(I32()) {
		t.Fatal("u32 and i32 must fingerprint differently")
	}
}

func TestFingerprintNestedDescriptors(t *testing.T) {
	a := Collection(MustFixedArray(U8(), 4))
	b := Collection(MustFixedArray(U8(), 4))
	c := Collection(MustFixedArray(U8(), 5))
	if Fingerprint(a) != Fingerprint(b) {
		t.Fatal("identical nested descriptors must fingerprint identically")
	}
	if Fingerprint(a) == Fingerprint(c) {
		t.Fatal("differing fixed array size must change the fingerprint")
	}
}

func TestFingerprintEnumIgnoresCustomPayloadContents(t *testing.T) {
	// Two Custom descriptors fingerprint identically regardless of their
	// closures; Custom is an opaque boundary to the engine, including to
	// Fingerprint.
	a := MustEnum(Variant{Name: "V", Discriminant: 0, Payload: UUIDDescriptor})
	b := MustEnum(Variant{Name: "V", Discriminant: 0, Payload: CompressedBytesDescriptor})
	if Fingerprint(a) != Fingerprint(b) {
		t.Fatal("Custom payloads must fingerprint as opaque/indistinguishable")
	}
}
