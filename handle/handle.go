package handle

import "errors"

var (
	// ErrNotShared is returned by SharedFromSelf when the value was never
	// adopted by a Shared handle.
	ErrNotShared = errors.New("handle: value has no shared owner")
	// ErrExpired is returned by SharedFromSelf when every strong reference
	// to the value has been released.
	ErrExpired = errors.New("handle: shared owner expired")
)

// Dropper is implemented by values that need explicit teardown when their
// last owning reference is released.
type Dropper interface {
	Drop()
}

// control is the shared bookkeeping block behind Shared and Weak handles.
// One control exists per adopted value; all aliases point at it.
type control[T any] struct {
	val    *T
	drop   func(*T)
	strong int
	weak   int
}

func (c *control[T]) release() {
	if c.strong == 0 {
		return
	}
	c.strong--
	if c.strong == 0 {
		if c.drop != nil {
			c.drop(c.val)
		}
		c.val = nil
	}
}

// dropValue is the default drop function: it invokes Drop if the value
// implements Dropper.
func dropValue[T any](v *T) {
	if d, ok := any(v).(Dropper); ok {
		d.Drop()
	}
}

// Shared is a reference-counted owning handle. The zero value is a null
// handle. Copying a Shared does NOT add an owning reference; use Clone.
type Shared[T any] struct {
	ctl *control[T]
}

// NewShared adopts v into a new Shared handle with a strong count of one.
// If *T embeds SelfRef[T], the back-reference is wired here. A nil v
// yields a null handle.
func NewShared[T any](v *T) Shared[T] {
	return NewSharedWithDrop(v, dropValue[T])
}

// NewSharedWithDrop adopts v with a custom drop function, run once when
// the last strong reference releases.
func NewSharedWithDrop[T any](v *T, drop func(*T)) Shared[T] {
	if v == nil {
		return Shared[T]{}
	}
	c := &control[T]{val: v, drop: drop, strong: 1}
	if b, ok := any(v).(selfBinder[T]); ok {
		b.bindSelf(c)
	}
	return Shared[T]{ctl: c}
}

// Get returns the held pointer, or nil for a null or expired handle.
func (s Shared[T]) Get() *T {
	if s.ctl == nil {
		return nil
	}
	return s.ctl.val
}

// IsNil reports whether the handle holds nothing.
func (s Shared[T]) IsNil() bool {
	return s.Get() == nil
}

// Clone returns a new owning alias, incrementing the strong count.
// Cloning a null handle yields a null handle.
func (s Shared[T]) Clone() Shared[T] {
	if s.ctl == nil {
		return Shared[T]{}
	}
	s.ctl.strong++
	return s
}

// Release drops one owning reference. When the count reaches zero the drop
// function runs and weak observers expire. Each alias must be released at
// most once; releasing a null handle is a no-op.
func (s Shared[T]) Release() {
	if s.ctl != nil {
		s.ctl.release()
	}
}

// UseCount returns the current strong reference count, 0 for null handles.
func (s Shared[T]) UseCount() int {
	if s.ctl == nil {
		return 0
	}
	return s.ctl.strong
}

// WeakCount returns the number of weak observers minted for this value,
// including any self back-reference.
func (s Shared[T]) WeakCount() int {
	if s.ctl == nil {
		return 0
	}
	return s.ctl.weak
}

// Downgrade returns a non-owning Weak observer of this handle's value.
func (s Shared[T]) Downgrade() Weak[T] {
	if s.ctl == nil {
		return Weak[T]{}
	}
	s.ctl.weak++
	return Weak[T]{ctl: s.ctl}
}

// Weak is a non-owning handle: it observes a Shared value's lifetime
// without extending it. The zero value is a null observer.
type Weak[T any] struct {
	ctl *control[T]
}

// Lock attempts to mint a temporary owning alias of the referent.
// It reports false once the referent has been released.
func (w Weak[T]) Lock() (Shared[T], bool) {
	if w.ctl == nil || w.ctl.strong == 0 {
		return Shared[T]{}, false
	}
	w.ctl.strong++
	return Shared[T]{ctl: w.ctl}, true
}

// Expired reports whether the referent is gone (or the observer is null).
func (w Weak[T]) Expired() bool {
	return w.ctl == nil || w.ctl.strong == 0
}

// Owned is an exclusively owning, nullable handle. No aliasing is possible,
// so Owned carries no identity bookkeeping. The zero value is null.
type Owned[T any] struct {
	val  *T
	drop func(*T)
}

// NewOwned adopts v into an Owned handle. A nil v yields a null handle.
func NewOwned[T any](v *T) Owned[T] {
	return NewOwnedWithDrop(v, dropValue[T])
}

// NewOwnedWithDrop adopts v with a custom drop function.
func NewOwnedWithDrop[T any](v *T, drop func(*T)) Owned[T] {
	if v == nil {
		return Owned[T]{}
	}
	return Owned[T]{val: v, drop: drop}
}

// Get returns the held pointer, or nil for a null handle.
func (o Owned[T]) Get() *T {
	return o.val
}

// IsNil reports whether the handle holds nothing.
func (o Owned[T]) IsNil() bool {
	return o.val == nil
}

// Release runs the drop function and empties the handle.
func (o *Owned[T]) Release() {
	if o.val == nil {
		return
	}
	if o.drop != nil {
		o.drop(o.val)
	}
	o.val = nil
	o.drop = nil
}
