package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseLoad,
				Kind:   KindTypeMismatch,
				Path:   []string{"root", "next"},
				GoType: "*Node",
				Detail: "slot bound to a different type",
			},
			contains: []string{"[load]", "type_mismatch", "root.next", "*Node", "slot bound to a different type"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseStream,
				Kind:  KindUnexpectedEnd,
			},
			contains: []string{"[stream]", "unexpected_end"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseConstruct,
				Kind:   KindConstructionFailure,
				Detail: "hook failed",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[construct]", "construction_failure", "hook failed", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := ConstructionFailed("Node", cause)

	if !errors.Is(err, cause) {
		t.Fatal("errors.Is should find the cause")
	}
	if err.Unwrap() != cause {
		t.Fatal("Unwrap should return the cause")
	}
}

func TestError_Is(t *testing.T) {
	a := MissingReference(7)
	b := MissingReference(42)
	c := DuplicateRegistration(7)

	if !errors.Is(a, b) {
		t.Fatal("same phase and kind should match")
	}
	if errors.Is(a, c) {
		t.Fatal("different kind should not match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("boom")
	err := New(PhaseSave, KindOverflow).
		Path("graph", "edges").
		GoType("*Edge").
		Value(uint32(31)).
		Detail("limit %d exceeded", 31).
		Cause(cause).
		Build()

	if err.Phase != PhaseSave || err.Kind != KindOverflow {
		t.Fatalf("wrong phase/kind: %v/%v", err.Phase, err.Kind)
	}
	if err.Detail != "limit 31 exceeded" {
		t.Fatalf("wrong detail: %q", err.Detail)
	}
	if err.Cause != cause {
		t.Fatal("wrong cause")
	}
	if err.Value != uint32(31) {
		t.Fatalf("wrong value: %v", err.Value)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		name  string
		err   *Error
		phase Phase
		kind  Kind
	}{
		{"missing reference", MissingReference(3), PhaseLoad, KindMissingReference},
		{"duplicate registration", DuplicateRegistration(3), PhaseLoad, KindDuplicateRegistration},
		{"construction failed", ConstructionFailed("T", nil), PhaseConstruct, KindConstructionFailure},
		{"type mismatch", TypeMismatch(PhaseResolve, "T", "unknown"), PhaseResolve, KindTypeMismatch},
		{"tag mismatch", TagMismatch("id", "data"), PhaseStream, KindTagMismatch},
		{"unexpected end", UnexpectedEnd("id"), PhaseStream, KindUnexpectedEnd},
		{"overflow", Overflow(PhaseSave, "too many ids"), PhaseSave, KindOverflow},
		{"registration", Registration(PhaseResolve, "Node", nil), PhaseResolve, KindRegistration},
		{"unsupported", Unsupported(PhaseSave, "no"), PhaseSave, KindUnsupported},
		{"invalid data", InvalidData(PhaseStream, "bad"), PhaseStream, KindInvalidData},
		{"wrap", Wrap(PhaseLoad, KindInvalidData, errors.New("x"), "ctx"), PhaseLoad, KindInvalidData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Phase != tt.phase {
				t.Errorf("phase = %v, want %v", tt.err.Phase, tt.phase)
			}
			if tt.err.Kind != tt.kind {
				t.Errorf("kind = %v, want %v", tt.err.Kind, tt.kind)
			}
		})
	}
}
