package ptrcodec

import (
	"reflect"
	"unsafe"

	"go.uber.org/zap"

	"github.com/caskhq/cask/errors"
	"github.com/caskhq/cask/handle"
)

// SaveShared serializes a shared owning handle. The pointee is emitted
// inline exactly once per pass; every further edge to the same object
// becomes a 4-byte back-reference.
func SaveShared[T any](s *Saver, v handle.Shared[T], save SaveFunc[T]) error {
	p := v.Get()

	id, first, err := s.ids.register(unsafe.Pointer(p))
	if err != nil {
		return err
	}

	wire := id
	if first {
		wire |= firstOccurrence
	}
	if err := s.w.WriteUint32("id", wire); err != nil {
		return err
	}
	if !first {
		return nil
	}

	Logger().Debug("shared first occurrence",
		zap.Uint32("slot", id),
		zap.String("type", reflect.TypeFor[T]().String()))

	if err := s.w.Begin("data"); err != nil {
		return err
	}
	if err := save(s, p); err != nil {
		return err
	}
	return s.w.End()
}

// LoadShared reconstructs a shared owning handle. A first-occurrence
// record allocates and registers a new handle, then deserializes the
// pointee; a back-reference record resolves the handle already bound to
// its slot and returns an additional owning alias of it.
func LoadShared[T any](l *Loader, load LoadFunc[T]) (handle.Shared[T], error) {
	wire, err := l.r.ReadUint32("id")
	if err != nil {
		return handle.Shared[T]{}, err
	}
	slotID := wire &^ firstOccurrence
	if slotID == 0 {
		return handle.Shared[T]{}, nil
	}

	if wire&firstOccurrence == 0 {
		h, err := l.ids.resolve(slotID)
		if err != nil {
			return handle.Shared[T]{}, err
		}
		sp, ok := h.(handle.Shared[T])
		if !ok {
			return handle.Shared[T]{}, errors.TypeMismatch(errors.PhaseLoad,
				reflect.TypeFor[T]().String(), "slot is bound to a different handle type")
		}
		return sp.Clone(), nil
	}

	if hook, ok := hookFor[T](l.ctors); ok {
		return loadSharedDeferred(l, slotID, hook)
	}
	return loadSharedDirect(l, slotID, load)
}

// loadSharedDirect handles types buildable from their zero value: allocate,
// register, then deserialize fields in place.
func loadSharedDirect[T any](l *Loader, slotID uint32, load LoadFunc[T]) (handle.Shared[T], error) {
	p := new(T)
	sp := handle.NewShared(p)

	if err := bindSlot(l, slotID, sp); err != nil {
		return handle.Shared[T]{}, err
	}

	if err := l.r.Enter("data"); err != nil {
		return handle.Shared[T]{}, err
	}
	if err := load(l, p); err != nil {
		return handle.Shared[T]{}, err
	}
	if err := l.r.Leave(); err != nil {
		return handle.Shared[T]{}, err
	}
	return sp, nil
}

// loadSharedDeferred handles hook-constructed types: the handle adopts a
// deferred slot whose drop is gated on the validity flag, and the hook
// populates the storage after registration. For self-sharing types the
// back-reference wired at adoption is snapshotted and restored around the
// hook, since whole-value assignment inside it would zero the reference.
func loadSharedDeferred[T any](l *Loader, slotID uint32, hook Hook[T]) (handle.Shared[T], error) {
	sl := newSlot[T]()
	sp := handle.NewSharedWithDrop(sl.val, sl.drop)

	if err := bindSlot(l, slotID, sp); err != nil {
		return handle.Shared[T]{}, err
	}

	snap, guarded := handle.CaptureSelf(sl.val)

	if err := sl.construct(l, hook); err != nil {
		return handle.Shared[T]{}, err
	}

	if guarded {
		handle.RestoreSelf(sl.val, snap)
	}
	return sp, nil
}

// bindSlot registers sp under slotID before any field recursion, so a
// cycle through this object resolves the in-progress handle. The registry
// holds its own alias until the pass closes.
func bindSlot[T any](l *Loader, slotID uint32, sp handle.Shared[T]) error {
	reg := sp.Clone()
	if err := l.ids.register(slotID, reg, reg.Release); err != nil {
		reg.Release()
		return err
	}
	Logger().Debug("registered slot",
		zap.Uint32("slot", slotID),
		zap.String("type", reflect.TypeFor[T]().String()))
	return nil
}
