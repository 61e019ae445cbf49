// Package ptrcodec serializes ownership handles: the unique, shared, and
// weak pointer edges of an object graph.
//
// This is the identity-preserving core of the cask framework. It decides
// what sequence of tagged values a pointer-typed field produces and
// consumes, and manages aliasing identity and deferred construction around
// that sequence. The byte framing itself belongs to the channel (see the
// root cask package and the stream implementation).
//
// # Wire Layout
//
//	Owned[T]   valid: u8 (0|1); if 1, T under nested tag "data"
//	Shared[T]  id: u32, high bit = first occurrence, low 31 bits = slot
//	           (0 = null); if first and slot != 0, T under "data"
//	Weak[T]    identical to Shared[T] of its momentary locked alias
//
// # Passes
//
// A Saver or Loader is the explicit context for exactly one pass. It owns
// the pass-scoped identity registry: save-side address -> slot id, load-side
// slot id -> reconstructed handle. Registries are never reused or shared
// between passes. Call Loader.Close when the pass ends so the registry's
// handle aliases release and reference counts settle to the graph's owning
// edges.
//
// # Cycle Safety
//
// On load, a first-occurrence shared handle is registered under its slot id
// before the pointee's fields are deserialized. A cyclic graph therefore
// resolves back-references to the in-progress handle instead of recursing
// without bound.
//
// # Deferred Construction
//
// Types without a usable zero value register a construction Hook in a
// Constructors table. The hook is driven against zeroed storage under the
// same "data" tag an ordinary load would use; a validity flag stays false
// until the hook succeeds, and the slot's drop function skips the value's
// Drop while the flag is false. A hook failure aborts the pass with a
// construction_failure error and the partial value is discarded untouched.
//
// # Self-Sharing Types
//
// For types embedding handle.SelfRef, adoption wires a back-reference that
// whole-value assignment inside a hook would silently zero. The codec
// snapshots the back-reference after adoption and restores it after the
// hook returns, so SharedFromSelf on the loaded value aliases the control
// block created during this pass.
//
// # Errors
//
// All failures abort the pass immediately; there is no partial-result
// recovery. Error kinds follow the errors package taxonomy:
// missing_reference, duplicate_registration, construction_failure,
// type_mismatch.
package ptrcodec
