// Package errors provides structured error types for the cask library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: tag path, Go type name, slot id, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseLoad, errors.KindTypeMismatch).
//		Path("root", "next").
//		GoType("*Node").
//		Detail("slot holds a different handle type").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.MissingReference(17)
//	err := errors.ConstructionFailed("Node", cause)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
