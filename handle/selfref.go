package handle

// selfBinder is satisfied by *T when T embeds SelfRef[T]. NewShared uses it
// to wire the back-reference at adoption time.
type selfBinder[T any] interface {
	bindSelf(*control[T])
	captureSelf() Weak[T]
	restoreSelf(Weak[T])
}

// SelfRef makes its embedding type self-sharing: able to mint further
// shared aliases of itself from within its own methods. Embed it by value:
//
//	type Node struct {
//	    handle.SelfRef[Node]
//	    ...
//	}
//
// The back-reference is bound when NewShared (or NewSharedWithDrop) adopts
// the value. It is a weak observer, so SelfRef never keeps its own value
// alive.
type SelfRef[T any] struct {
	self Weak[T]
}

func (r *SelfRef[T]) bindSelf(c *control[T]) {
	c.weak++
	r.self = Weak[T]{ctl: c}
}

func (r *SelfRef[T]) captureSelf() Weak[T] {
	return r.self
}

func (r *SelfRef[T]) restoreSelf(w Weak[T]) {
	r.self = w
}

// SharedFromSelf mints a new owning alias of the value. It fails with
// ErrNotShared if the value was never adopted by a Shared handle, and with
// ErrExpired if every strong reference has been released.
func (r *SelfRef[T]) SharedFromSelf() (Shared[T], error) {
	if r.self.ctl == nil {
		return Shared[T]{}, ErrNotShared
	}
	s, ok := r.self.Lock()
	if !ok {
		return Shared[T]{}, ErrExpired
	}
	return s, nil
}

// WeakFromSelf returns a non-owning observer of the value.
func (r *SelfRef[T]) WeakFromSelf() Weak[T] {
	return r.self
}

// IsSelfSharing reports whether T embeds SelfRef[T], and therefore whether
// the capture/restore guard applies around construction that may assign the
// whole value.
func IsSelfSharing[T any]() bool {
	_, ok := any((*T)(nil)).(selfBinder[T])
	return ok
}

// CaptureSelf snapshots v's self back-reference. It reports false when T
// is not self-sharing.
func CaptureSelf[T any](v *T) (Weak[T], bool) {
	b, ok := any(v).(selfBinder[T])
	if !ok {
		return Weak[T]{}, false
	}
	return b.captureSelf(), true
}

// RestoreSelf reapplies a snapshot taken by CaptureSelf. Construction that
// assigns the whole value (for example *v = T{...}) silently zeroes the
// back-reference bound at adoption; restoring the snapshot afterwards keeps
// SharedFromSelf pointing at the control block actually created for v.
func RestoreSelf[T any](v *T, w Weak[T]) {
	if b, ok := any(v).(selfBinder[T]); ok {
		b.restoreSelf(w)
	}
}
