package bincode

import (
	"errors"
	"testing"
)

func TestCodecErrorUnwrapsToSentinel(t *testing.T) {
	err := fail(ErrInvalidLength, "example")
	if !errors.Is(err, ErrInvalidLength) {
		t.Fatal("errors.Is must see through CodecError to its Kind")
	}
	if errors.Is(err, ErrOverflowLimit) {
		t.Fatal("errors.Is must not match an unrelated sentinel")
	}
}

func TestWithPathAccumulatesInnermostFirst(t *testing.T) {
	err := fail(ErrInvalidType, "bad field")
	err = withPath(err, "y")
	err = withPath(err, "x")

	var ce *CodecError
	if !errors.As(err, &ce) {
		t.Fatalf("errors.As failed on %v", err)
	}
	got := joinPath(ce.Path)
	if got != "x.y" {
		t.Fatalf("joinPath = %q, want %q", got, "x.y")
	}
}

func TestWithPathPassesThroughNonCodecError(t *testing.T) {
	plain := errors.New("boom")
	if got := withPath(plain, "field"); got != plain {
		t.Fatalf("withPath must return non-CodecError errors unchanged, got %v", got)
	}
}

func TestEncodeErrorReportsStructFieldPath(t *testing.T) {
	desc := MustStruct(
		StructField{Name: "outer", Desc: MustStruct(
			StructField{Name: "inner", Desc: U32()},
		)},
	)
	v := StructValue{"outer": StructValue{"inner": "not a u32"}}

	_, err := Marshal(desc, v, Standard)
	if err == nil {
		t.Fatal("expected an error encoding a mistyped nested field")
	}
	var ce *CodecError
	if !errors.As(err, &ce) {
		t.Fatalf("errors.As failed on %v", err)
	}
	if joinPath(ce.Path) != "outer.inner" {
		t.Fatalf("path = %q, want %q", joinPath(ce.Path), "outer.inner")
	}
}
