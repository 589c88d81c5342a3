package bincode

import (
	"errors"
	"fmt"
)

// Sentinel errors forming the codec's closed error taxonomy. Every failure
// the encoder, decoder and descriptor constructors raise themselves
// classifies under exactly one of these via errors.Is. Errors returned by a
// Custom codec's closures are passed through unchanged, and errors from
// LoadConfig/DumpConfig are not classified.
var (
	// ErrUnimplemented marks a descriptor kind that is reachable in
	// principle but not supported (e.g. f16/f128).
	ErrUnimplemented = errors.New("unimplemented")

	// ErrOverflowLimit marks a read or write that would cross the buffer
	// end or the configured byte limit.
	ErrOverflowLimit = errors.New("overflow limit")

	// ErrInvalidLength marks a nonsensical length or collection count.
	ErrInvalidLength = errors.New("invalid length")

	// ErrInvalidVariant marks an enum discriminant on the wire that does
	// not match any variant declared in the descriptor.
	ErrInvalidVariant = errors.New("invalid variant")

	// ErrInvalidOptionVariant marks an option tag byte that is neither 0
	// nor 1.
	ErrInvalidOptionVariant = errors.New("invalid option variant")

	// ErrInvalidType marks a malformed descriptor argument or a primitive
	// byte outside its nominal domain (e.g. a bool that is neither 0 nor 1).
	ErrInvalidType = errors.New("invalid type")

	// ErrBigintOutOfRange marks an out-of-range 128-bit operand or an
	// unknown varint discriminator byte.
	ErrBigintOutOfRange = errors.New("bigint out of range")
)

// CodecError is the concrete error type returned by this package. Kind is
// always one of the sentinel errors declared above; Path, when non-empty,
// names the struct field, tuple index, or variant that the failure
// occurred under, innermost first.
type CodecError struct {
	Kind error
	Msg  string
	Path []string
}

func (e *CodecError) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("bincode: %s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("bincode: %s: %s (at %s)", e.Kind, e.Msg, joinPath(e.Path))
}

func (e *CodecError) Unwrap() error { return e.Kind }

func joinPath(path []string) string {
	out := path[len(path)-1]
	for i := len(path) - 2; i >= 0; i-- {
		out += "." + path[i]
	}
	return out
}

func fail(kind error, format string, args ...any) error {
	return &CodecError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// withPath annotates err, if it is a *CodecError, with an additional path
// segment describing where in the descriptor tree it occurred. Other errors
// are returned unchanged.
func withPath(err error, segment string) error {
	if err == nil {
		return nil
	}
	var ce *CodecError
	if errors.As(err, &ce) {
		ce.Path = append(ce.Path, segment)
		return ce
	}
	return err
}
