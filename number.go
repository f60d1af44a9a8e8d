package gjson

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Number is an arbitrary-precision decimal. Exponents in the source text
// are applied at parse time and not retained.
type Number struct {
	d decimal.Decimal
}

// NewNumber creates a Number holding d.
func NewNumber(d decimal.Decimal) *Number { return &Number{d: d} }

// NewNumberFromInt creates a Number holding i.
func NewNumberFromInt(i int64) *Number { return &Number{d: decimal.NewFromInt(i)} }

// NewNumberFromFloat creates a Number holding the shortest decimal that
// round-trips f.
func NewNumberFromFloat(f float64) *Number { return &Number{d: decimal.NewFromFloat(f)} }

// NewNumberFromString parses s with the number grammar, so "1e3" is
// accepted and "01" or "1." are not.
func NewNumberFromString(s string) (*Number, error) {
	n := &Number{}
	d := Default.NewDecoder(NewPushbackReader(strings.NewReader(s), 1))
	if err := n.Read(RootPath, d); err != nil {
		return nil, err
	}
	if _, ok, _ := d.Next(); ok {
		return nil, grammarErr(RootPath, CodeBadNumber, s)
	}
	return n, nil
}

func (*Number) sealed() {}

func (*Number) Kind() Kind { return KindNumber }

func (n *Number) Raw() any { return n.d }

// Decimal returns the value.
func (n *Number) Decimal() decimal.Decimal { return n.d }

// Set replaces the value.
func (n *Number) Set(d decimal.Decimal) { n.d = d }

func (*Number) Prototype() Value { return &Number{} }

func (n *Number) CopyFrom(src Value) error {
	s, ok := src.(*Number)
	if !ok {
		return mismatch(KindNumber, src)
	}
	n.d = s.d
	return nil
}

func (n *Number) DeepCopy() Value { return &Number{d: n.d} }

// Read consumes -?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?. The
// character that ends the token is pushed back; end of input also ends it.
func (n *Number) Read(path string, d *Decoder) error {
	var b strings.Builder

	c, err := d.Demand(path)
	if err != nil {
		return err
	}
	if c == '-' {
		b.WriteRune(c)
		if c, err = d.Demand(path); err != nil {
			return err
		}
	}
	if !isDigit(c) {
		return grammarErr(path, CodeBadNumber, b.String()+string(c))
	}
	b.WriteRune(c)
	if c != '0' {
		if err := readDigits(d, &b); err != nil {
			return err
		}
	}

	c, ok, err := d.Next()
	if err != nil {
		return err
	}
	if ok && c == '.' {
		b.WriteRune(c)
		if err := demandDigits(path, d, &b, "digits expected after decimal point"); err != nil {
			return err
		}
		if c, ok, err = d.Next(); err != nil {
			return err
		}
	}

	if ok && (c == 'e' || c == 'E') {
		b.WriteRune(c)
		s, err := d.Demand(path)
		if err != nil {
			return err
		}
		if s == '+' || s == '-' {
			b.WriteRune(s)
		} else if err := d.Unread(s); err != nil {
			return err
		}
		if err := demandDigits(path, d, &b, "digits expected in exponent"); err != nil {
			return err
		}
	} else if ok {
		if err := d.Unread(c); err != nil {
			return err
		}
	}

	v, err := parseDecimal(path, b.String(), d.f.maxExp)
	if err != nil {
		return err
	}
	n.d = v
	return nil
}

// DefaultMaxExponent bounds the exponent of parsed numbers when no other
// limit is configured. Numbers render without exponents, so the bound also
// caps how many characters a single number can write.
const DefaultMaxExponent = 1024

// parseDecimal converts grammar-checked number text. maxExp follows the
// WithMaxExponent convention: 0 selects DefaultMaxExponent and a negative
// value removes the bound.
func parseDecimal(path, text string, maxExp int) (decimal.Decimal, error) {
	if maxExp == 0 {
		maxExp = DefaultMaxExponent
	}
	if i := strings.IndexAny(text, "eE"); i >= 0 && maxExp > 0 {
		e, err := strconv.ParseInt(text[i+1:], 10, 32)
		if err != nil || e > int64(maxExp) || e < -int64(maxExp) {
			return decimal.Decimal{}, grammarErr(path, CodeBadNumber, "exponent out of range in "+text)
		}
	}
	v, err := decimal.NewFromString(text)
	if err != nil {
		ge := grammarErr(path, CodeBadNumber, text)
		ge.Cause = err
		return decimal.Decimal{}, ge
	}
	return v, nil
}

// demandDigits requires at least one digit, then reads the rest.
func demandDigits(path string, d *Decoder, b *strings.Builder, what string) error {
	c, err := d.Demand(path)
	if err != nil {
		return err
	}
	if !isDigit(c) {
		return grammarErr(path, CodeBadNumber, what)
	}
	b.WriteRune(c)
	return readDigits(d, b)
}

// readDigits consumes digits until a non-digit, which is pushed back.
func readDigits(d *Decoder, b *strings.Builder) error {
	for {
		c, ok, err := d.Next()
		if err != nil || !ok {
			return err
		}
		if !isDigit(c) {
			return d.Unread(c)
		}
		b.WriteRune(c)
	}
}

func (n *Number) Write(_ string, w Sink, _ bool) error {
	_, err := w.WriteString(n.d.String())
	return err
}

func (n *Number) String() string { return n.d.String() }
