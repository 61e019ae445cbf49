// Package handle provides the ownership handle types serialized by ptrcodec.
//
// Three kinds of handle mirror the three ownership edges of an object graph:
//
//	Owned[T]  - exclusive nullable ownership, released explicitly
//	Shared[T] - reference-counted ownership; lifetime = longest holder
//	Weak[T]   - non-owning observer of a Shared value's lifetime
//
// # Reference Counting
//
// Shared handles carry an explicit strong count so that ownership topology
// is observable: Clone adds an owning alias, Release drops one, and the
// value's Drop hook (if any) runs when the last strong reference goes away.
// The Go garbage collector still owns the memory; the count exists to drive
// Drop and Weak expiry, not allocation.
//
//	sp := handle.NewShared(&Conn{})
//	alias := sp.Clone()     // count 2
//	w := sp.Downgrade()     // non-owning
//	alias.Release()         // count 1
//	sp.Release()            // count 0, Conn.Drop runs, w expires
//
// # Destructors
//
// A value implementing Dropper has Drop called exactly once, when its last
// owning reference releases. NewSharedWithDrop and NewOwnedWithDrop accept
// a custom drop function instead; ptrcodec uses this to gate destruction of
// deferred-construction slots on their validity flag.
//
// # Shared-From-Self
//
// A type that needs to mint shared aliases of itself from inside its own
// methods embeds SelfRef:
//
//	type Session struct {
//	    handle.SelfRef[Session]
//	    ID string
//	}
//
// NewShared wires the back-reference when it adopts the pointer; the value
// can then call SharedFromSelf at any time while at least one strong
// reference exists.
//
// # Thread Safety
//
// Handles are unsynchronized. Confine a graph to one goroutine, or
// synchronize externally.
package handle
