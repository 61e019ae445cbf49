package ptrcodec

import (
	"github.com/caskhq/cask/handle"
)

// SaveOwned serializes an exclusively owned value: a one-byte presence
// flag, then the pointee inline under "data". Unique ownership makes
// aliasing impossible, so no identity step is involved.
func SaveOwned[T any](s *Saver, v handle.Owned[T], save SaveFunc[T]) error {
	if v.IsNil() {
		return s.w.WriteUint8("valid", 0)
	}
	if err := s.w.WriteUint8("valid", 1); err != nil {
		return err
	}
	if err := s.w.Begin("data"); err != nil {
		return err
	}
	if err := save(s, v.Get()); err != nil {
		return err
	}
	return s.w.End()
}

// LoadOwned reconstructs an exclusively owned value. A type with a
// registered construction hook is built into a deferred slot and ownership
// transfers only after the hook succeeds; otherwise zeroed storage is
// allocated and load fills its fields in place.
func LoadOwned[T any](l *Loader, load LoadFunc[T]) (handle.Owned[T], error) {
	present, err := l.r.ReadUint8("valid")
	if err != nil {
		return handle.Owned[T]{}, err
	}
	if present == 0 {
		return handle.Owned[T]{}, nil
	}

	if hook, ok := hookFor[T](l.ctors); ok {
		sl := newSlot[T]()
		if err := sl.construct(l, hook); err != nil {
			// Slot discarded with the validity flag still false: the
			// partial value's Drop never runs.
			return handle.Owned[T]{}, err
		}
		return handle.NewOwnedWithDrop(sl.val, sl.drop), nil
	}

	p := new(T)
	if err := l.r.Enter("data"); err != nil {
		return handle.Owned[T]{}, err
	}
	if err := load(l, p); err != nil {
		return handle.Owned[T]{}, err
	}
	if err := l.r.Leave(); err != nil {
		return handle.Owned[T]{}, err
	}
	return handle.NewOwned(p), nil
}
