package gjson

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// TypeKey is the object key holding the discriminator of a typed object.
const TypeKey = "jsonObjectSubclass"

// Typed is an object that records its concrete type under TypeKey.
// Implementations embed TypedObject.
type Typed interface {
	Value
	TypeName() (string, error)
	typedObject() *TypedObject
}

// TypedObject is embedded by concrete object types that survive a round
// trip through text. The embedding type's constructor must call Init:
//
//	type Person struct{ gjson.TypedObject }
//
//	func NewPerson() *Person {
//		p := &Person{}
//		p.Init(p)
//		return p
//	}
type TypedObject struct {
	Object
}

// Init stores self's type name under TypeKey unless the key is present.
func (t *TypedObject) Init(self Typed) {
	if !t.Has(TypeKey) {
		t.Put(TypeKey, NewString(TypeNameOf(self)))
	}
}

// TypeName returns the discriminator stored under TypeKey.
func (t *TypedObject) TypeName() (string, error) {
	v, ok := t.Get(TypeKey)
	if !ok {
		return "", errors.New("gjson: type information is missing")
	}
	s, ok := v.(*String)
	if !ok {
		return "", errors.Errorf("gjson: type value is a %s but a string was expected", kindName(v))
	}
	return s.Value(), nil
}

func (t *TypedObject) typedObject() *TypedObject { return t }

// TypeNameOf returns the fully qualified name of v's type, e.g.
// "example.com/app/model.Person". Pointers are dereferenced.
func TypeNameOf(v any) string { return typeName(reflect.TypeOf(v)) }

func typeName(t reflect.Type) string {
	if t == nil {
		return "nil"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() == "" || t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}

// Registry resolves discriminators to constructors. It is safe for
// concurrent use and implements Recaster.
type Registry struct {
	mu    sync.RWMutex
	ctors map[string]func() Value
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{ctors: map[string]func() Value{}}
}

// DefaultRegistry backs TypedDefault.
var DefaultRegistry = NewRegistry()

// TypedDefault is a factory that recasts through DefaultRegistry.
var TypedDefault = NewFactory(WithRegistry(DefaultRegistry))

// Register calls ctor once to learn its discriminator and registers ctor
// under it. The discriminator is returned.
func (r *Registry) Register(ctor func() Typed) (string, error) {
	if ctor == nil {
		return "", &ConstructionError{TypeName: "", Cause: errors.WithStack(ErrNoConstructor)}
	}
	wrapped := func() Value { return ctor() }
	v, err := construct("", wrapped)
	if err != nil {
		return "", err
	}
	name, err := v.(Typed).TypeName()
	if err != nil {
		return "", err
	}
	r.RegisterName(name, wrapped)
	return name, nil
}

// RegisterName registers ctor under an explicit discriminator.
func (r *Registry) RegisterName(name string, ctor func() Value) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctors[name] = ctor
}

// Names lists the registered discriminators, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.ctors))
	for n := range r.ctors {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) lookup(name string) func() Value {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ctors[name]
}

// New constructs a default instance of the type registered under name.
func (r *Registry) New(name string) (Value, error) {
	ctor := r.lookup(name)
	if ctor == nil {
		return nil, &ConstructionError{TypeName: name, Cause: errors.WithStack(ErrNoConstructor)}
	}
	return construct(name, ctor)
}

// Recast replaces an object carrying TypeKey with a fresh instance of the
// registered type. Objects without the key are left alone.
func (r *Registry) Recast(path string, v Value) (Value, error) {
	if v == nil || v.Kind() != KindObject {
		return nil, nil
	}
	tv, ok := asObject(v).Get(TypeKey)
	if !ok {
		return nil, nil
	}
	s, ok := tv.(*String)
	if !ok {
		return nil, grammarErr(path, CodeDiscriminatorType, kindName(tv))
	}
	name := s.Value()
	ctor := r.lookup(name)
	if ctor == nil {
		return nil, grammarErr(path, CodeDiscriminatorUnknown, name)
	}
	inst, err := construct(name, ctor)
	if err != nil {
		return nil, err
	}
	if _, ok := inst.(Typed); !ok {
		return nil, grammarErr(path, CodeDiscriminatorUnknown, fmt.Sprintf("%s is a %s, not a typed object", name, TypeNameOf(inst)))
	}
	return inst, nil
}

// construct runs ctor, converting a panic or a nil result into a
// *ConstructionError.
func construct(name string, ctor func() Value) (v Value, err error) {
	defer func() {
		if p := recover(); p != nil {
			v = nil
			err = &ConstructionError{TypeName: name, Cause: errors.Errorf("constructor panicked: %v", p)}
		}
	}()
	v = ctor()
	if isNilValue(v) {
		return nil, &ConstructionError{TypeName: name, Cause: errors.Wrap(ErrNoConstructor, "constructor returned nil")}
	}
	return v, nil
}

func isNilValue(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
