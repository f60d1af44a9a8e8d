package gjson

// Boolean is a JSON true or false.
type Boolean struct {
	b bool
}

// NewBoolean creates a Boolean holding b.
func NewBoolean(b bool) *Boolean { return &Boolean{b: b} }

func (*Boolean) sealed() {}

func (*Boolean) Kind() Kind { return KindBoolean }

func (v *Boolean) Raw() any { return v.b }

// Value returns the boolean.
func (v *Boolean) Value() bool { return v.b }

// Set replaces the boolean.
func (v *Boolean) Set(b bool) { v.b = b }

func (*Boolean) Prototype() Value { return &Boolean{} }

func (v *Boolean) CopyFrom(src Value) error {
	s, ok := src.(*Boolean)
	if !ok {
		return mismatch(KindBoolean, src)
	}
	v.b = s.b
	return nil
}

func (v *Boolean) DeepCopy() Value { return &Boolean{b: v.b} }

func (v *Boolean) Read(path string, d *Decoder) error {
	c, err := d.Demand(path)
	if err != nil {
		return err
	}
	if err := d.Unread(c); err != nil {
		return err
	}
	if c == 't' {
		v.b = true
		return readLiteral(path, d, "true")
	}
	v.b = false
	return readLiteral(path, d, "false")
}

func (v *Boolean) Write(_ string, w Sink, _ bool) error {
	_, err := w.WriteString(v.String())
	return err
}

func (v *Boolean) String() string {
	if v.b {
		return "true"
	}
	return "false"
}

// Null is the JSON null. It carries no state, so the zero value is the only
// value and copies are interchangeable.
type Null struct{}

func (Null) sealed() {}

func (Null) Kind() Kind { return KindNull }

func (Null) Raw() any { return nil }

func (Null) Prototype() Value { return Null{} }

func (Null) CopyFrom(src Value) error {
	if src == nil || src.Kind() != KindNull {
		return mismatch(KindNull, src)
	}
	return nil
}

func (Null) DeepCopy() Value { return Null{} }

func (Null) Read(path string, d *Decoder) error { return readLiteral(path, d, "null") }

func (Null) Write(_ string, w Sink, _ bool) error {
	_, err := w.WriteString("null")
	return err
}

func (Null) String() string { return "null" }

// readLiteral matches lit character by character.
func readLiteral(path string, d *Decoder, lit string) error {
	for _, want := range lit {
		c, err := d.Demand(path)
		if err != nil {
			return err
		}
		if c != want {
			return grammarErr(path, CodeBadLiteral, lit+" expected")
		}
	}
	return nil
}
