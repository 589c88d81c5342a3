// Package bincode implements the bincode wire format: a schema-driven,
// non-self-describing, deterministic binary serialization used to exchange
// values between processes, possibly written in different languages.
//
// Callers build a Descriptor describing a value's shape (primitives,
// tuples, fixed arrays, collections, structs, enums, options, or a
// user-supplied Custom codec), then call Encode/Decode (or the Marshal/
// Unmarshal convenience wrappers) to move a Value to and from bytes. The
// wire format is entirely driven by the Descriptor at encode/decode time;
// Go's type system plays no part in it, by design — see spec.md's
// Non-goals for why descriptors are never derived via reflection.
//
// A Descriptor is immutable once built and may be shared freely, including
// across goroutines. Encode and Decode are pure functions of their
// arguments: no package-level state exists, and distinct calls over
// distinct buffers never need to coordinate with one another.
package bincode
