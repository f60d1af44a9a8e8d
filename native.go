package gjson

import (
	"encoding/json"
	"math"
	"math/big"
	"sort"

	gojson "github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// FromNative converts a Go value to a tree. Maps are emitted in sorted key
// order. Structs and other types are marshaled with go-json and parsed, so
// struct fields keep their declaration order.
func FromNative(x any) (Value, error) {
	switch v := x.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return v.DeepCopy(), nil
	case bool:
		return NewBoolean(v), nil
	case string:
		return NewString(v), nil
	case json.Number:
		return NewNumberFromString(string(v))
	case decimal.Decimal:
		return NewNumber(v), nil
	case int:
		return NewNumberFromInt(int64(v)), nil
	case int32:
		return NewNumberFromInt(int64(v)), nil
	case int64:
		return NewNumberFromInt(v), nil
	case uint:
		return NewNumber(decimal.NewFromBigInt(new(big.Int).SetUint64(uint64(v)), 0)), nil
	case uint64:
		return NewNumber(decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0)), nil
	case float32:
		return fromFloat(float64(v))
	case float64:
		return fromFloat(v)
	case []any:
		a := &Array{items: make([]Value, 0, len(v))}
		for _, e := range v {
			ev, err := FromNative(e)
			if err != nil {
				return nil, err
			}
			a.Append(ev)
		}
		return a, nil
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		o := NewObject()
		for _, k := range keys {
			ev, err := FromNative(v[k])
			if err != nil {
				return nil, err
			}
			o.Put(k, ev)
		}
		return o, nil
	}
	b, err := gojson.Marshal(x)
	if err != nil {
		return nil, errors.Wrapf(err, "gjson: convert %T", x)
	}
	return Default.ReadBytes(b)
}

func fromFloat(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, errors.Errorf("gjson: %v has no JSON representation", f)
	}
	return NewNumberFromFloat(f), nil
}

// ToNative converts a tree to the types encoding/json produces with
// UseNumber: map[string]any, []any, string, json.Number, bool and nil.
func ToNative(v Value) any {
	switch v.Kind() {
	case KindObject:
		o := asObject(v)
		m := make(map[string]any, o.Len())
		o.Range(func(k string, e Value) bool {
			m[k] = ToNative(e)
			return true
		})
		return m
	case KindArray:
		items := v.Raw().([]Value)
		out := make([]any, len(items))
		for i, e := range items {
			out[i] = ToNative(e)
		}
		return out
	case KindNumber:
		return json.Number(v.(*Number).Decimal().String())
	}
	return v.Raw()
}

func (o *Object) MarshalJSON() ([]byte, error)  { return []byte(ToFlatString(o)), nil }
func (a *Array) MarshalJSON() ([]byte, error)   { return []byte(ToFlatString(a)), nil }
func (v *String) MarshalJSON() ([]byte, error)  { return []byte(ToFlatString(v)), nil }
func (n *Number) MarshalJSON() ([]byte, error)  { return []byte(n.d.String()), nil }
func (v *Boolean) MarshalJSON() ([]byte, error) { return []byte(v.String()), nil }
func (Null) MarshalJSON() ([]byte, error)       { return []byte("null"), nil }

func unmarshalInto(dst Value, data []byte) error {
	v, err := Default.ReadBytes(data)
	if err != nil {
		return err
	}
	if v == nil {
		return grammarErr(RootPath, CodeOutOfData, "")
	}
	return dst.CopyFrom(v)
}

func (o *Object) UnmarshalJSON(data []byte) error  { return unmarshalInto(o, data) }
func (a *Array) UnmarshalJSON(data []byte) error   { return unmarshalInto(a, data) }
func (v *String) UnmarshalJSON(data []byte) error  { return unmarshalInto(v, data) }
func (n *Number) UnmarshalJSON(data []byte) error  { return unmarshalInto(n, data) }
func (v *Boolean) UnmarshalJSON(data []byte) error { return unmarshalInto(v, data) }
