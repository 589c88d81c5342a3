package bincode

import "testing"

func TestNoneIsDistinctFromNilSlice(t *testing.T) {
	var nilSlice []Value
	if IsNone(nilSlice) {
		t.Fatal("a nil []Value must not be mistaken for None")
	}
	if !IsNone(None) {
		t.Fatal("None must report IsNone")
	}
	if !IsNone(Some(None)) {
		// Some is the identity function; wrapping None still yields None.
		t.Fatal("Some(None) must still be None")
	}
}

func TestSomeIsIdentity(t *testing.T) {
	v := Some(uint32(7))
	if v != uint32(7) {
		t.Fatalf("Some(7) = %v, want 7", v)
	}
}
