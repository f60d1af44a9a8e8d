package gjson

// Kind enumerates the JSON value variants.
type Kind int

const (
	KindObject Kind = iota
	KindArray
	KindString
	KindNumber
	KindBoolean
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindNull:
		return "null"
	default:
		return "unknown"
	}
}

// Value is a node in a JSON tree. The set of variants is closed: *Object,
// *Array, *String, *Number, *Boolean and Null. Types embedding *Object
// (see TypedObject) are objects as far as the grammar is concerned.
type Value interface {
	// Kind reports the variant.
	Kind() Kind

	// Raw returns the canonical in-memory representation: *Object, []Value,
	// string, decimal.Decimal, bool, or nil for Null.
	Raw() any

	// Read consumes this variant's grammar from d and sets the value. The
	// caller has already positioned d at the first character of the value.
	Read(path string, d *Decoder) error

	// Write renders the value. indent is the padding of the current nesting
	// level and is only used when pretty is true.
	Write(indent string, w Sink, pretty bool) error

	// Prototype returns an empty instance of the same variant.
	Prototype() Value

	// CopyFrom replaces this value's content with a deep copy of src's. It
	// fails with *TypeMismatchError when src is a different kind.
	CopyFrom(src Value) error

	// DeepCopy returns an independent copy of the value.
	DeepCopy() Value

	sealed()
}

// Equal reports whether a and b are structurally equal, including object
// key order.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case KindObject:
		ao, bo := asObject(a), asObject(b)
		if ao.Len() != bo.Len() {
			return false
		}
		ak, bk := ao.Keys(), bo.Keys()
		for i := range ak {
			if ak[i] != bk[i] {
				return false
			}
			av, _ := ao.Get(ak[i])
			bv, _ := bo.Get(bk[i])
			if !Equal(av, bv) {
				return false
			}
		}
		return true
	case KindArray:
		ai, bi := a.Raw().([]Value), b.Raw().([]Value)
		if len(ai) != len(bi) {
			return false
		}
		for i := range ai {
			if !Equal(ai[i], bi[i]) {
				return false
			}
		}
		return true
	case KindNumber:
		return a.(*Number).Decimal().Equal(b.(*Number).Decimal())
	case KindNull:
		return true
	default:
		return a.Raw() == b.Raw()
	}
}

// asObject returns the *Object backing an object-kind value, including
// types that embed one.
func asObject(v Value) *Object {
	o, _ := v.Raw().(*Object)
	return o
}
