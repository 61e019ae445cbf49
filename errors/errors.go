package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseSave      Phase = "save"      // serializing a graph
	PhaseLoad      Phase = "load"      // reconstructing a graph
	PhaseConstruct Phase = "construct" // deferred construction hooks
	PhaseResolve   Phase = "resolve"   // dynamic type resolution
	PhaseStream    Phase = "stream"    // channel framing
)

// Kind categorizes the error
type Kind string

const (
	KindMissingReference      Kind = "missing_reference"
	KindDuplicateRegistration Kind = "duplicate_registration"
	KindConstructionFailure   Kind = "construction_failure"
	KindTypeMismatch          Kind = "type_mismatch"
	KindTagMismatch           Kind = "tag_mismatch"
	KindInvalidData           Kind = "invalid_data"
	KindUnexpectedEnd         Kind = "unexpected_end"
	KindOverflow              Kind = "overflow"
	KindRegistration          Kind = "registration"
	KindUnsupported           Kind = "unsupported"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	GoType string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" {
		b.WriteString(": Go type ")
		b.WriteString(e.GoType)
	}

	if e.Detail != "" {
		if e.GoType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the tag path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// MissingReference creates an error for a back-reference id that was
// resolved before being registered in the current load pass.
func MissingReference(id uint32) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindMissingReference,
		Detail: fmt.Sprintf("slot id %d was never registered in this pass", id),
		Value:  id,
	}
}

// DuplicateRegistration creates an error for a slot id registered twice
// within one load pass.
func DuplicateRegistration(id uint32) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindDuplicateRegistration,
		Detail: fmt.Sprintf("slot id %d is already bound in this pass", id),
		Value:  id,
	}
}

// ConstructionFailed creates an error for a construction hook that failed
// while populating a deferred slot.
func ConstructionFailed(goType string, cause error) *Error {
	return &Error{
		Phase:  PhaseConstruct,
		Kind:   KindConstructionFailure,
		GoType: goType,
		Detail: "construction hook failed",
		Cause:  cause,
	}
}

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, goType, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		GoType: goType,
		Detail: detail,
	}
}

// TagMismatch creates an error for a read whose tag does not match the
// next record in the stream.
func TagMismatch(want, got string) *Error {
	return &Error{
		Phase:  PhaseStream,
		Kind:   KindTagMismatch,
		Detail: fmt.Sprintf("want tag %q, stream has %q", want, got),
	}
}

// UnexpectedEnd creates an error for a stream that ended mid-record.
func UnexpectedEnd(what string) *Error {
	return &Error{
		Phase:  PhaseStream,
		Kind:   KindUnexpectedEnd,
		Detail: fmt.Sprintf("stream ended while reading %s", what),
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Detail: detail,
	}
}

// Overflow creates an error for a per-pass counter exceeding its wire limit.
func Overflow(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Detail: detail,
	}
}

// Registration creates a registration error
func Registration(phase Phase, name string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindRegistration,
		Detail: fmt.Sprintf("register %s", name),
		Cause:  cause,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
