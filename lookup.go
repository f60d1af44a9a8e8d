package gjson

import (
	"reflect"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// GetOrSet returns the raw content stored under key, inserting a default
// value of kind first when key is absent. A present value of another kind
// fails with *TypeMismatchError and leaves o unchanged.
func GetOrSet(o *Object, key string, kind Kind) (any, error) {
	if v, ok := o.Get(key); ok {
		if v.Kind() != kind {
			return nil, &TypeMismatchError{Key: key, Expected: kind.String(), Actual: kindName(v)}
		}
		return v.Raw(), nil
	}
	v, err := zeroOf(kind)
	if err != nil {
		return nil, err
	}
	o.Put(key, v)
	return v.Raw(), nil
}

func zeroOf(kind Kind) (Value, error) {
	switch kind {
	case KindObject:
		return NewObject(), nil
	case KindArray:
		return &Array{}, nil
	case KindString:
		return &String{}, nil
	case KindNumber:
		return &Number{}, nil
	case KindBoolean:
		return &Boolean{}, nil
	case KindNull:
		return Null{}, nil
	}
	return nil, &ConstructionError{TypeName: kind.String(), Cause: errors.WithStack(ErrNoConstructor)}
}

// GetOrSetWith is GetOrSet for a concrete value type, typically a Typed
// object. The present value must be a T. When key is absent ctor builds
// the default; a nil ctor, a panic or a nil result fail with
// *ConstructionError.
func GetOrSetWith[T Value](o *Object, key string, ctor func() T) (any, error) {
	if v, ok := o.Get(key); ok {
		if _, ok := v.(T); !ok {
			return nil, &TypeMismatchError{Key: key, Expected: typeName(reflect.TypeOf((*T)(nil)).Elem()), Actual: TypeNameOf(v)}
		}
		return v.Raw(), nil
	}
	name := typeName(reflect.TypeOf((*T)(nil)).Elem())
	if ctor == nil {
		return nil, &ConstructionError{TypeName: name, Cause: errors.WithStack(ErrNoConstructor)}
	}
	v, err := construct(name, func() Value { return ctor() })
	if err != nil {
		return nil, err
	}
	o.Put(key, v)
	return v.Raw(), nil
}

// GetOrSetString returns the string under key, inserting "" when absent.
func GetOrSetString(o *Object, key string) (string, error) {
	raw, err := GetOrSet(o, key, KindString)
	if err != nil {
		return "", err
	}
	return raw.(string), nil
}

// GetOrSetNumber returns the number under key, inserting 0 when absent.
func GetOrSetNumber(o *Object, key string) (decimal.Decimal, error) {
	raw, err := GetOrSet(o, key, KindNumber)
	if err != nil {
		return decimal.Zero, err
	}
	return raw.(decimal.Decimal), nil
}

// GetOrSetBool returns the boolean under key, inserting false when absent.
func GetOrSetBool(o *Object, key string) (bool, error) {
	raw, err := GetOrSet(o, key, KindBoolean)
	if err != nil {
		return false, err
	}
	return raw.(bool), nil
}

// GetOrSetObject returns the object under key, inserting {} when absent.
func GetOrSetObject(o *Object, key string) (*Object, error) {
	raw, err := GetOrSet(o, key, KindObject)
	if err != nil {
		return nil, err
	}
	return raw.(*Object), nil
}

// GetOrSetArray returns the array under key, inserting [] when absent.
func GetOrSetArray(o *Object, key string) (*Array, error) {
	if v, ok := o.Get(key); ok {
		a, ok := v.(*Array)
		if !ok {
			return nil, &TypeMismatchError{Key: key, Expected: KindArray.String(), Actual: kindName(v)}
		}
		return a, nil
	}
	a := &Array{}
	o.Put(key, a)
	return a, nil
}
