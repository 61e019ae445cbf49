package typereg

import (
	"bytes"
	stderrors "errors"
	"reflect"
	"testing"

	"github.com/caskhq/cask/errors"
	"github.com/caskhq/cask/handle"
	"github.com/caskhq/cask/ptrcodec"
	"github.com/caskhq/cask/stream"
)

type circle struct {
	radius int64
}

type square struct {
	side int64
}

func saveCircle(s *ptrcodec.Saver, c *circle) error {
	return s.Writer().WriteInt64("radius", c.radius)
}

func loadCircle(l *ptrcodec.Loader, c *circle) error {
	var err error
	c.radius, err = l.Reader().ReadInt64("radius")
	return err
}

func saveSquare(s *ptrcodec.Saver, q *square) error {
	return s.Writer().WriteInt64("side", q.side)
}

func loadSquare(l *ptrcodec.Loader, q *square) error {
	var err error
	q.side, err = l.Reader().ReadInt64("side")
	return err
}

func shapeRegistry(t *testing.T) *Registry {
	t.Helper()
	reg := NewRegistry()
	if err := RegisterShared(reg, "shape.Circle", saveCircle, loadCircle); err != nil {
		t.Fatalf("register circle: %v", err)
	}
	if err := RegisterShared(reg, "shape.Square", saveSquare, loadSquare); err != nil {
		t.Fatalf("register square: %v", err)
	}
	return reg
}

func TestPolymorphic_RoundTrip(t *testing.T) {
	reg := shapeRegistry(t)

	shapes := []any{
		handle.NewShared(&circle{radius: 4}),
		handle.NewShared(&square{side: 7}),
	}

	var buf bytes.Buffer
	w := stream.NewWriter(&buf)
	s := ptrcodec.NewSaver(w)
	for _, v := range shapes {
		if err := SavePolymorphic(s, reg, v); err != nil {
			t.Fatalf("SavePolymorphic: %v", err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	l := ptrcodec.NewLoader(stream.NewReader(&buf))
	defer l.Close()

	first, err := LoadPolymorphic(l, reg)
	if err != nil {
		t.Fatalf("LoadPolymorphic: %v", err)
	}
	c, ok := first.(handle.Shared[circle])
	if !ok {
		t.Fatalf("first = %T, want Shared[circle]", first)
	}
	if c.Get().radius != 4 {
		t.Fatalf("radius = %d", c.Get().radius)
	}

	second, err := LoadPolymorphic(l, reg)
	if err != nil {
		t.Fatalf("LoadPolymorphic: %v", err)
	}
	q, ok := second.(handle.Shared[square])
	if !ok {
		t.Fatalf("second = %T, want Shared[square]", second)
	}
	if q.Get().side != 7 {
		t.Fatalf("side = %d", q.Get().side)
	}
}

func TestPolymorphic_Nil(t *testing.T) {
	reg := shapeRegistry(t)

	var buf bytes.Buffer
	w := stream.NewWriter(&buf)
	s := ptrcodec.NewSaver(w)
	if err := SavePolymorphic(s, reg, nil); err != nil {
		t.Fatalf("SavePolymorphic: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	l := ptrcodec.NewLoader(stream.NewReader(&buf))
	defer l.Close()
	v, err := LoadPolymorphic(l, reg)
	if err != nil {
		t.Fatalf("LoadPolymorphic: %v", err)
	}
	if v != nil {
		t.Fatalf("v = %v, want nil", v)
	}
}

func TestPolymorphic_UnknownDynamicType(t *testing.T) {
	reg := shapeRegistry(t)

	var buf bytes.Buffer
	s := ptrcodec.NewSaver(stream.NewWriter(&buf))
	err := SavePolymorphic(s, reg, handle.NewShared(new(int)))
	var serr *errors.Error
	if !stderrors.As(err, &serr) || serr.Kind != errors.KindTypeMismatch {
		t.Fatalf("err = %v, want type_mismatch", err)
	}
}

func TestPolymorphic_UnknownTypeName(t *testing.T) {
	reg := shapeRegistry(t)

	var buf bytes.Buffer
	w := stream.NewWriter(&buf)
	if err := w.WriteString("type", "shape.Hexagon"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	l := ptrcodec.NewLoader(stream.NewReader(&buf))
	defer l.Close()
	_, err := LoadPolymorphic(l, reg)
	var serr *errors.Error
	if !stderrors.As(err, &serr) || serr.Kind != errors.KindTypeMismatch {
		t.Fatalf("err = %v, want type_mismatch", err)
	}
}

func TestRegistry_DuplicateRegistration(t *testing.T) {
	reg := shapeRegistry(t)

	tests := []struct {
		name  string
		entry Entry
	}{
		{
			name: "duplicate name",
			entry: Entry{
				Name: "shape.Circle",
				Type: reflect.TypeFor[handle.Shared[int]](),
				Save: func(*ptrcodec.Saver, any) error { return nil },
				Load: func(*ptrcodec.Loader) (any, error) { return nil, nil },
			},
		},
		{
			name: "duplicate type",
			entry: Entry{
				Name: "shape.Circle2",
				Type: reflect.TypeFor[handle.Shared[circle]](),
				Save: func(*ptrcodec.Saver, any) error { return nil },
				Load: func(*ptrcodec.Loader) (any, error) { return nil, nil },
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := reg.Register(tt.entry)
			var serr *errors.Error
			if !stderrors.As(err, &serr) || serr.Kind != errors.KindRegistration {
				t.Fatalf("err = %v, want registration", err)
			}
		})
	}
}

func TestRegistry_IncompleteEntry(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(Entry{Name: "x"}); err == nil {
		t.Fatal("incomplete entry should be rejected")
	}
}

func TestSavePolymorphic_WrongHandleValue(t *testing.T) {
	reg := shapeRegistry(t)

	// The entry registered for Shared[circle] must reject a value of a
	// different handle type.
	e, err := reg.ByName("shape.Circle")
	if err != nil {
		t.Fatalf("ByName: %v", err)
	}
	var buf bytes.Buffer
	s := ptrcodec.NewSaver(stream.NewWriter(&buf))
	if err := e.Save(s, handle.NewShared(&square{side: 1})); err == nil {
		t.Fatal("mismatched handle value should fail")
	}
}
