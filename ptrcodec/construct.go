package ptrcodec

import (
	"reflect"

	"go.uber.org/zap"

	"github.com/caskhq/cask/errors"
	"github.com/caskhq/cask/handle"
)

// Hook is an external per-type construction routine. It receives zeroed
// storage for exactly one T and populates it in place, consuming further
// tagged values from the pass's channel. Returning an error leaves the
// value logically uninitialized; its Drop will never run.
type Hook[T any] func(*Loader, *T) error

// Constructors is the open table of construction hooks, keyed by target
// type. A type with a registered hook is built through deferred
// construction instead of its zero value.
type Constructors struct {
	hooks map[reflect.Type]any
}

// NewConstructors creates an empty hook table.
func NewConstructors() *Constructors {
	return &Constructors{hooks: make(map[reflect.Type]any)}
}

// RegisterHook binds fn as the construction hook for T. Registering a
// second hook for the same type fails.
func RegisterHook[T any](c *Constructors, fn Hook[T]) error {
	t := reflect.TypeFor[T]()
	if _, ok := c.hooks[t]; ok {
		return errors.Registration(errors.PhaseConstruct, t.String(), nil)
	}
	c.hooks[t] = fn
	return nil
}

// hookFor returns the hook registered for T, if any.
func hookFor[T any](c *Constructors) (Hook[T], bool) {
	if c == nil {
		return nil, false
	}
	fn, ok := c.hooks[reflect.TypeFor[T]()]
	if !ok {
		return nil, false
	}
	return fn.(Hook[T]), true
}

// slot is a deferred-construction slot: zeroed storage for one T plus a
// validity flag. The flag stays false until construction fully completes,
// and the slot's drop function skips the value's Drop while it is false.
type slot[T any] struct {
	val   *T
	valid bool
}

func newSlot[T any]() *slot[T] {
	return &slot[T]{val: new(T)}
}

// drop is the validity-gated destructor for the slot's value.
func (sl *slot[T]) drop(v *T) {
	if !sl.valid {
		return
	}
	if d, ok := any(v).(handle.Dropper); ok {
		d.Drop()
	}
}

// construct drives the hook against the slot's storage under the "data"
// tag, marking the slot valid only on full success.
func (sl *slot[T]) construct(l *Loader, hook Hook[T]) error {
	name := reflect.TypeFor[T]().String()
	Logger().Debug("deferred construction", zap.String("type", name))

	if err := l.r.Enter("data"); err != nil {
		return err
	}
	if err := hook(l, sl.val); err != nil {
		return errors.ConstructionFailed(name, err)
	}
	if err := l.r.Leave(); err != nil {
		return err
	}
	sl.valid = true
	return nil
}
