package gjson

// Array is an ordered sequence of values.
type Array struct {
	items []Value
}

// NewArray creates an Array holding items. Nil items are stored as Null.
func NewArray(items ...Value) *Array {
	a := &Array{items: make([]Value, 0, len(items))}
	for _, v := range items {
		a.Append(v)
	}
	return a
}

func (*Array) sealed() {}

func (*Array) Kind() Kind { return KindArray }

func (a *Array) Raw() any { return a.items }

// Append adds v at the end.
func (a *Array) Append(v Value) *Array {
	if v == nil {
		v = Null{}
	}
	a.items = append(a.items, v)
	return a
}

// At returns the element at i. It panics when i is out of range.
func (a *Array) At(i int) Value { return a.items[i] }

// Set replaces the element at i. It panics when i is out of range.
func (a *Array) Set(i int, v Value) {
	if v == nil {
		v = Null{}
	}
	a.items[i] = v
}

// Len returns the number of elements.
func (a *Array) Len() int { return len(a.items) }

// Items returns the backing slice.
func (a *Array) Items() []Value { return a.items }

func (*Array) Prototype() Value { return &Array{} }

func (a *Array) CopyFrom(src Value) error {
	s, ok := src.(*Array)
	if !ok {
		return mismatch(KindArray, src)
	}
	if s == a {
		return nil
	}
	items := make([]Value, len(s.items))
	for i, v := range s.items {
		items[i] = v.DeepCopy()
	}
	a.items = items
	return nil
}

func (a *Array) DeepCopy() Value {
	c := &Array{}
	_ = c.CopyFrom(a)
	return c
}

func (a *Array) Read(path string, d *Decoder) error {
	c, err := d.Demand(path)
	if err != nil {
		return err
	}
	if c != '[' {
		return grammarErr(path, CodeUnexpectedChar, "'[' expected at start of array")
	}
	a.items = a.items[:0]

	if err := d.SkipWhitespace(path); err != nil {
		return err
	}
	if c, err = d.Demand(path); err != nil {
		return err
	}
	if c == ']' {
		return nil
	}
	if err := d.Unread(c); err != nil {
		return err
	}

	for {
		v, err := d.ReadValue(PathIndex(path, len(a.items)))
		if err != nil {
			return err
		}
		a.items = append(a.items, v)

		if err := d.SkipWhitespace(path); err != nil {
			return err
		}
		if c, err = d.Demand(path); err != nil {
			return err
		}
		switch c {
		case ',':
			continue
		case ']':
			return nil
		}
		return grammarErr(path, CodeUnexpectedChar, "',' or ']' expected, found "+quoteRune(c))
	}
}

func (a *Array) Write(indent string, w Sink, pretty bool) error {
	if len(a.items) == 0 {
		_, err := w.WriteString("[]")
		return err
	}
	if err := writeOpen(w, pretty, '['); err != nil {
		return err
	}
	inner := indent + Indent
	for i, v := range a.items {
		if pretty {
			if _, err := w.WriteString(inner); err != nil {
				return err
			}
		}
		if err := v.Write(inner, w, pretty); err != nil {
			return err
		}
		if err := writeSeparator(w, i == len(a.items)-1, pretty); err != nil {
			return err
		}
	}
	return writeClose(w, indent, pretty, ']')
}

func (a *Array) String() string { return ToFlatString(a) }
