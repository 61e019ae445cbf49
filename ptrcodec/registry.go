package ptrcodec

import (
	"unsafe"

	"github.com/caskhq/cask/errors"
)

const (
	// firstOccurrence marks the high bit of a wire id: set when the
	// pointee's data follows inline, clear for a back-reference.
	firstOccurrence uint32 = 1 << 31

	// maxSlot is the stream-format ceiling on distinct shared identities
	// per pass: the low 31 bits of the wire id, slot 0 reserved for null.
	maxSlot = firstOccurrence - 1
)

// saveRegistry maps object addresses to slot ids for one save pass.
// Ids are assigned in first-encounter order, starting at 1.
type saveRegistry struct {
	ids  map[unsafe.Pointer]uint32
	next uint32
}

func newSaveRegistry() *saveRegistry {
	return &saveRegistry{
		ids:  make(map[unsafe.Pointer]uint32),
		next: 1,
	}
}

// register returns the slot id for addr and whether this is its first
// encounter in the pass. A nil addr always yields (0, false).
func (r *saveRegistry) register(addr unsafe.Pointer) (uint32, bool, error) {
	if addr == nil {
		return 0, false, nil
	}
	if id, ok := r.ids[addr]; ok {
		return id, false, nil
	}
	if r.next > maxSlot {
		return 0, false, errors.Overflow(errors.PhaseSave,
			"identity count exceeds the 31-bit slot limit for one pass")
	}
	id := r.next
	r.next++
	r.ids[addr] = id
	return id, true, nil
}

// loadRegistry maps slot ids to reconstructed handles for one load pass.
// Each bound handle is an owning alias held until the pass closes.
type loadRegistry struct {
	handles map[uint32]bound
}

type bound struct {
	handle  any
	release func()
}

func newLoadRegistry() *loadRegistry {
	return &loadRegistry{handles: make(map[uint32]bound)}
}

// register binds handle to id. The release function drops the registry's
// alias when the pass closes.
func (r *loadRegistry) register(id uint32, handle any, release func()) error {
	if _, ok := r.handles[id]; ok {
		return errors.DuplicateRegistration(id)
	}
	r.handles[id] = bound{handle: handle, release: release}
	return nil
}

// resolve returns the handle bound to id.
func (r *loadRegistry) resolve(id uint32) (any, error) {
	b, ok := r.handles[id]
	if !ok {
		return nil, errors.MissingReference(id)
	}
	return b.handle, nil
}

// close releases every alias the registry holds. Idempotent.
func (r *loadRegistry) close() {
	for id, b := range r.handles {
		if b.release != nil {
			b.release()
		}
		delete(r.handles, id)
	}
}
