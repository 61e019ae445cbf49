// Package typereg provides dynamic type resolution for polymorphic
// pointers: an open table mapping a portable type name to the codec for a
// concrete handle type.
//
// The pointer codecs in ptrcodec know nothing about dynamic dispatch; a
// field whose static type is an interface goes through this registry
// instead. On save the dynamic type resolves to its registered name, which
// precedes the handle record on the wire; on load the name selects the
// codec that reconstructs the concrete handle.
//
//	reg := typereg.NewRegistry()
//	typereg.RegisterShared[Circle](reg, "shape.Circle", saveCircle, loadCircle)
//	typereg.RegisterShared[Square](reg, "shape.Square", saveSquare, loadSquare)
//
//	err := typereg.SavePolymorphic(s, reg, anyShapeHandle)
//	v, err := typereg.LoadPolymorphic(l, reg)
//	circle := v.(handle.Shared[Circle])
//
// An unregistered dynamic type fails with a type_mismatch error, which
// callers propagate unchanged.
//
// Registry is populated once during setup and read during passes; it is
// not synchronized for concurrent mutation.
package typereg
