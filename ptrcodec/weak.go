package ptrcodec

import (
	"github.com/caskhq/cask/handle"
)

// SaveWeak serializes a non-owning reference as the shared record of a
// momentary locked alias: null if the referent is already gone, otherwise
// whatever SaveShared emits for it.
func SaveWeak[T any](s *Saver, v handle.Weak[T], save SaveFunc[T]) error {
	sp, ok := v.Lock()
	if ok {
		defer sp.Release()
	}
	return SaveShared(s, sp, save)
}

// LoadWeak reconstructs a non-owning reference by loading a temporary
// shared handle and downgrading it. The temporary ownership ends before
// this call returns, so a loaded weak reference never by itself keeps its
// referent alive past the pass: some owning edge elsewhere in the stream
// must do that.
func LoadWeak[T any](l *Loader, load LoadFunc[T]) (handle.Weak[T], error) {
	sp, err := LoadShared(l, load)
	if err != nil {
		return handle.Weak[T]{}, err
	}
	w := sp.Downgrade()
	sp.Release()
	return w, nil
}
