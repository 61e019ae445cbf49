package typereg

import (
	"reflect"

	"github.com/caskhq/cask/errors"
	"github.com/caskhq/cask/handle"
	"github.com/caskhq/cask/ptrcodec"
)

// SaveAnyFunc serializes a dynamically typed handle value.
type SaveAnyFunc func(*ptrcodec.Saver, any) error

// LoadAnyFunc reconstructs a dynamically typed handle value.
type LoadAnyFunc func(*ptrcodec.Loader) (any, error)

// Entry binds a portable type name to the codec for one concrete handle
// type.
type Entry struct {
	Save SaveAnyFunc
	Load LoadAnyFunc
	Type reflect.Type
	Name string
}

// Registry is the open table of polymorphic codecs, looked up by name on
// load and by dynamic type on save.
type Registry struct {
	byName map[string]*Entry
	byType map[reflect.Type]*Entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*Entry),
		byType: make(map[reflect.Type]*Entry),
	}
}

// Register adds an entry. Both the name and the type must be unused.
func (r *Registry) Register(e Entry) error {
	if e.Name == "" || e.Type == nil || e.Save == nil || e.Load == nil {
		return errors.InvalidData(errors.PhaseResolve, "incomplete registry entry")
	}
	if _, ok := r.byName[e.Name]; ok {
		return errors.Registration(errors.PhaseResolve, e.Name, nil)
	}
	if _, ok := r.byType[e.Type]; ok {
		return errors.Registration(errors.PhaseResolve, e.Type.String(), nil)
	}
	entry := e
	r.byName[e.Name] = &entry
	r.byType[e.Type] = &entry
	return nil
}

// ByName resolves the entry registered under a portable type name.
func (r *Registry) ByName(name string) (*Entry, error) {
	e, ok := r.byName[name]
	if !ok {
		return nil, errors.TypeMismatch(errors.PhaseResolve, name,
			"type name is not registered")
	}
	return e, nil
}

// ByType resolves the entry registered for a dynamic handle type.
func (r *Registry) ByType(t reflect.Type) (*Entry, error) {
	e, ok := r.byType[t]
	if !ok {
		return nil, errors.TypeMismatch(errors.PhaseResolve, t.String(),
			"dynamic type is not registered")
	}
	return e, nil
}

// RegisterShared registers the shared-ownership codec for T under name.
func RegisterShared[T any](r *Registry, name string, save ptrcodec.SaveFunc[T], load ptrcodec.LoadFunc[T]) error {
	return r.Register(Entry{
		Name: name,
		Type: reflect.TypeFor[handle.Shared[T]](),
		Save: func(s *ptrcodec.Saver, v any) error {
			sp, ok := v.(handle.Shared[T])
			if !ok {
				return errors.TypeMismatch(errors.PhaseSave, reflect.TypeOf(v).String(),
					"value does not match the registered handle type")
			}
			return ptrcodec.SaveShared(s, sp, save)
		},
		Load: func(l *ptrcodec.Loader) (any, error) {
			return ptrcodec.LoadShared(l, load)
		},
	})
}

// SavePolymorphic writes v's registered type name under tag "type", then
// delegates to the entry's codec. A nil v writes an empty name and
// nothing else.
func SavePolymorphic(s *ptrcodec.Saver, r *Registry, v any) error {
	if v == nil {
		return s.Writer().WriteString("type", "")
	}
	e, err := r.ByType(reflect.TypeOf(v))
	if err != nil {
		return err
	}
	if err := s.Writer().WriteString("type", e.Name); err != nil {
		return err
	}
	return e.Save(s, v)
}

// LoadPolymorphic reads the type name written by SavePolymorphic and
// dispatches to the matching codec. An empty name yields nil.
func LoadPolymorphic(l *ptrcodec.Loader, r *Registry) (any, error) {
	name, err := l.Reader().ReadString("type")
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, nil
	}
	e, err := r.ByName(name)
	if err != nil {
		return nil, err
	}
	return e.Load(l)
}
