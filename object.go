package gjson

import (
	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// Object is an ordered mapping from string keys to values. Keys keep the
// position of their first insertion; Put on an existing key replaces the
// value in place.
type Object struct {
	m *linkedhashmap.Map
}

// NewObject creates an empty Object.
func NewObject() *Object { return &Object{m: linkedhashmap.New()} }

func (o *Object) lazy() *linkedhashmap.Map {
	if o.m == nil {
		o.m = linkedhashmap.New()
	}
	return o.m
}

func (*Object) sealed() {}

func (*Object) Kind() Kind { return KindObject }

// Raw returns the object itself; it is its own ordered map.
func (o *Object) Raw() any { return o }

// Put stores v under key. A nil v is stored as Null.
func (o *Object) Put(key string, v Value) *Object {
	if v == nil {
		v = Null{}
	}
	o.lazy().Put(key, v)
	return o
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	if o.m == nil {
		return nil, false
	}
	v, ok := o.m.Get(key)
	if !ok {
		return nil, false
	}
	return v.(Value), true
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Remove deletes key. Missing keys are ignored.
func (o *Object) Remove(key string) {
	if o.m != nil {
		o.m.Remove(key)
	}
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o.m == nil {
		return 0
	}
	return o.m.Size()
}

// Keys returns the keys in order.
func (o *Object) Keys() []string {
	if o.m == nil {
		return nil
	}
	keys := make([]string, 0, o.m.Size())
	for _, k := range o.m.Keys() {
		keys = append(keys, k.(string))
	}
	return keys
}

// Range calls fn for each entry in order until fn returns false.
func (o *Object) Range(fn func(key string, v Value) bool) {
	if o.m == nil {
		return
	}
	it := o.m.Iterator()
	for it.Next() {
		if !fn(it.Key().(string), it.Value().(Value)) {
			return
		}
	}
}

// Clear removes all entries.
func (o *Object) Clear() {
	if o.m != nil {
		o.m.Clear()
	}
}

func (*Object) Prototype() Value { return NewObject() }

// CopyFrom replaces the content with a deep copy of src, which may be any
// object-kind value including a typed object.
func (o *Object) CopyFrom(src Value) error {
	if src == nil || src.Kind() != KindObject {
		return mismatch(KindObject, src)
	}
	so := asObject(src)
	if so == o {
		return nil
	}
	m := linkedhashmap.New()
	so.Range(func(k string, v Value) bool {
		m.Put(k, v.DeepCopy())
		return true
	})
	o.m = m
	return nil
}

// DeepCopy returns a plain *Object; a typed object copies to its data.
func (o *Object) DeepCopy() Value {
	c := NewObject()
	_ = c.CopyFrom(o)
	return c
}

func (o *Object) Read(path string, d *Decoder) error {
	c, err := d.Demand(path)
	if err != nil {
		return err
	}
	if c != '{' {
		return grammarErr(path, CodeUnexpectedChar, "'{' expected at start of object")
	}
	o.Clear()

	if err := d.SkipWhitespace(path); err != nil {
		return err
	}
	if c, err = d.Demand(path); err != nil {
		return err
	}
	if c == '}' {
		return nil
	}
	if err := d.Unread(c); err != nil {
		return err
	}

	for {
		if err := d.SkipWhitespace(path); err != nil {
			return err
		}
		key, err := readQuoted(path, d)
		if err != nil {
			return err
		}
		child := PathField(path, key)

		if err := d.SkipWhitespace(child); err != nil {
			return err
		}
		if c, err = d.Demand(child); err != nil {
			return err
		}
		if c != ':' {
			return grammarErr(child, CodeUnexpectedChar, "':' expected after key")
		}

		v, err := d.ReadValue(child)
		if err != nil {
			return err
		}
		if d.f.dup == DuplicateReject && o.Has(key) {
			return grammarErr(child, CodeDuplicateKey, key)
		}
		o.Put(key, v)

		if err := d.SkipWhitespace(path); err != nil {
			return err
		}
		if c, err = d.Demand(path); err != nil {
			return err
		}
		switch c {
		case ',':
			continue
		case '}':
			return nil
		}
		return grammarErr(path, CodeUnexpectedChar, "',' or '}' expected, found "+quoteRune(c))
	}
}

func (o *Object) Write(indent string, w Sink, pretty bool) error {
	if o.Len() == 0 {
		_, err := w.WriteString("{}")
		return err
	}
	if err := writeOpen(w, pretty, '{'); err != nil {
		return err
	}
	inner := indent + Indent
	n, i := o.Len(), 0
	var err error
	o.Range(func(k string, v Value) bool {
		i++
		if pretty {
			if _, err = w.WriteString(inner); err != nil {
				return false
			}
		}
		if err = writeQuoted(w, k); err != nil {
			return false
		}
		if err = w.WriteByte(':'); err != nil {
			return false
		}
		if pretty {
			if err = w.WriteByte(' '); err != nil {
				return false
			}
		}
		if err = v.Write(inner, w, pretty); err != nil {
			return false
		}
		err = writeSeparator(w, i == n, pretty)
		return err == nil
	})
	if err != nil {
		return err
	}
	return writeClose(w, indent, pretty, '}')
}

func (o *Object) String() string { return ToFlatString(o) }
