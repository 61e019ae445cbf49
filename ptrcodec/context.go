package ptrcodec

import (
	"github.com/caskhq/cask"
)

// SaveFunc serializes the fields of a pointee through the pass's writer.
type SaveFunc[T any] func(*Saver, *T) error

// LoadFunc deserializes the fields of a pointee in place through the
// pass's reader.
type LoadFunc[T any] func(*Loader, *T) error

// Saver is the explicit context for one save pass. It carries the channel
// writer and the pass-scoped identity registry. Not safe for concurrent
// use; never reuse across passes.
type Saver struct {
	w   cask.Writer
	ids *saveRegistry
}

// NewSaver starts a save pass over w.
func NewSaver(w cask.Writer) *Saver {
	return &Saver{
		w:   w,
		ids: newSaveRegistry(),
	}
}

// Writer returns the pass's channel writer, for serializing pointee fields
// inside SaveFuncs.
func (s *Saver) Writer() cask.Writer {
	return s.w
}

// Loader is the explicit context for one load pass: the channel reader,
// the pass-scoped identity registry, and the construction-hook table.
// Not safe for concurrent use; never reuse across passes.
type Loader struct {
	r     cask.Reader
	ids   *loadRegistry
	ctors *Constructors
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithConstructors supplies the construction-hook table consulted for
// types that cannot be built from their zero value.
func WithConstructors(c *Constructors) LoaderOption {
	return func(l *Loader) {
		l.ctors = c
	}
}

// NewLoader starts a load pass over r.
func NewLoader(r cask.Reader, opts ...LoaderOption) *Loader {
	l := &Loader{
		r:   r,
		ids: newLoadRegistry(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Reader returns the pass's channel reader, for deserializing pointee
// fields inside LoadFuncs and Hooks.
func (l *Loader) Reader() cask.Reader {
	return l.r
}

// Close ends the pass: the identity registry releases the handle aliases
// it holds, so reference counts settle to the loaded graph's owning edges
// and weak references to otherwise-unowned values expire. Idempotent.
func (l *Loader) Close() error {
	l.ids.close()
	return nil
}
