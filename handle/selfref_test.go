package handle

import (
	"errors"
	"testing"
)

type session struct {
	SelfRef[session]
	id string
}

type plain struct {
	id string
}

func TestIsSelfSharing(t *testing.T) {
	if !IsSelfSharing[session]() {
		t.Fatal("session embeds SelfRef and should be self-sharing")
	}
	if IsSelfSharing[plain]() {
		t.Fatal("plain should not be self-sharing")
	}
}

func TestSharedFromSelf(t *testing.T) {
	v := &session{id: "a"}

	if _, err := v.SharedFromSelf(); !errors.Is(err, ErrNotShared) {
		t.Fatalf("unadopted value: err = %v, want ErrNotShared", err)
	}

	sp := NewShared(v)
	self, err := v.SharedFromSelf()
	if err != nil {
		t.Fatalf("SharedFromSelf failed: %v", err)
	}
	if self.Get() != v {
		t.Fatal("self alias points at a different value")
	}
	if sp.UseCount() != 2 {
		t.Fatalf("UseCount = %d, want 2", sp.UseCount())
	}

	self.Release()
	sp.Release()
	if _, err := v.SharedFromSelf(); !errors.Is(err, ErrExpired) {
		t.Fatalf("released value: err = %v, want ErrExpired", err)
	}
}

func TestWeakFromSelf(t *testing.T) {
	v := &session{id: "a"}
	sp := NewShared(v)

	w := v.WeakFromSelf()
	if w.Expired() {
		t.Fatal("weak self reference should be live")
	}
	sp.Release()
	if !w.Expired() {
		t.Fatal("weak self reference should expire with the owner")
	}
}

func TestCaptureRestoreSelf(t *testing.T) {
	v := &session{id: "a"}
	sp := NewShared(v)
	defer sp.Release()

	snap, ok := CaptureSelf(v)
	if !ok {
		t.Fatal("CaptureSelf should succeed for a self-sharing type")
	}

	// Whole-value assignment, the way a construction hook populates raw
	// storage, silently zeroes the bound back-reference.
	*v = session{id: "b"}
	if _, err := v.SharedFromSelf(); !errors.Is(err, ErrNotShared) {
		t.Fatal("back-reference should be gone after whole-value assignment")
	}

	RestoreSelf(v, snap)
	self, err := v.SharedFromSelf()
	if err != nil {
		t.Fatalf("SharedFromSelf after restore failed: %v", err)
	}
	if self.Get() != v {
		t.Fatal("restored self reference points at a different value")
	}
	self.Release()
}

func TestCaptureSelf_NotSelfSharing(t *testing.T) {
	if _, ok := CaptureSelf(&plain{}); ok {
		t.Fatal("CaptureSelf should report false for non-self-sharing types")
	}
	RestoreSelf(&plain{}, Weak[plain]{}) // no-op
}
