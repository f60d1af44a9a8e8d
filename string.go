package gjson

import (
	"strconv"
	"unicode/utf16"
	"unicode/utf8"
)

// String is a JSON string.
type String struct {
	s string
}

// NewString creates a String holding s.
func NewString(s string) *String { return &String{s: s} }

func (*String) sealed() {}

func (*String) Kind() Kind { return KindString }

func (v *String) Raw() any { return v.s }

// Value returns the string content.
func (v *String) Value() string { return v.s }

// Set replaces the string content.
func (v *String) Set(s string) { v.s = s }

func (*String) Prototype() Value { return &String{} }

func (v *String) CopyFrom(src Value) error {
	s, ok := src.(*String)
	if !ok {
		return mismatch(KindString, src)
	}
	v.s = s.s
	return nil
}

func (v *String) DeepCopy() Value { return &String{s: v.s} }

func (v *String) Read(path string, d *Decoder) error {
	s, err := readQuoted(path, d)
	if err != nil {
		return err
	}
	v.s = s
	return nil
}

func (v *String) Write(_ string, w Sink, _ bool) error { return writeQuoted(w, v.s) }

func (v *String) String() string { return ToFlatString(v) }

// readQuoted consumes a quoted string literal, decoding escapes. Escaped
// surrogate pairs are combined; lone surrogates are kept losslessly.
func readQuoted(path string, d *Decoder) (string, error) {
	c, err := d.Demand(path)
	if err != nil {
		return "", err
	}
	if c != '"' {
		return "", grammarErr(path, CodeUnexpectedChar, "leading quote expected at start of string")
	}

	b := make([]byte, 0, 16)
	pending := rune(-1) // high surrogate awaiting its low half
	flush := func() {
		if pending >= 0 {
			b = appendSurrogate(b, pending)
			pending = -1
		}
	}

	for {
		c, err = d.Demand(path)
		if err != nil {
			return "", err
		}
		if c == '"' {
			break
		}
		if c != '\\' {
			flush()
			b = utf8.AppendRune(b, c)
			continue
		}

		c, err = d.Demand(path)
		if err != nil {
			return "", err
		}
		if c == 'u' {
			u, err := readHex4(path, d)
			if err != nil {
				return "", err
			}
			switch {
			case utf16.IsSurrogate(u) && u < 0xdc00:
				flush()
				pending = u
			case utf16.IsSurrogate(u):
				if pending >= 0 {
					b = utf8.AppendRune(b, utf16.DecodeRune(pending, u))
					pending = -1
				} else {
					b = appendSurrogate(b, u)
				}
			default:
				flush()
				b = utf8.AppendRune(b, u)
			}
			continue
		}

		flush()
		switch c {
		case '"', '/', '\\':
			b = append(b, byte(c))
		case 'b':
			b = append(b, '\b')
		case 'f':
			b = append(b, '\f')
		case 'n':
			b = append(b, '\n')
		case 'r':
			b = append(b, '\r')
		case 't':
			b = append(b, '\t')
		default:
			return "", grammarErr(path, CodeBadEscape, string(c))
		}
	}
	flush()
	return string(b), nil
}

func readHex4(path string, d *Decoder) (rune, error) {
	var hex [4]rune
	for i := range hex {
		c, err := d.Demand(path)
		if err != nil {
			return 0, err
		}
		hex[i] = c
	}
	s := string(hex[:])
	u, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, grammarErr(path, CodeBadUnicode, s)
	}
	return rune(u), nil
}
