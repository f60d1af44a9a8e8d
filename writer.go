package gjson

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Indent is the padding added per nesting level in pretty mode.
const Indent = "   "

// Sink is the character sink values are written to. *strings.Builder,
// *bytes.Buffer and *bufio.Writer satisfy it.
type Sink interface {
	WriteString(s string) (int, error)
	WriteByte(c byte) error
}

// ToPrettyString renders v indented over multiple lines.
func ToPrettyString(v Value) string { return toString(v, true) }

// ToFlatString renders v on a single line without insignificant whitespace.
func ToFlatString(v Value) string { return toString(v, false) }

func toString(v Value, pretty bool) string {
	b := &strings.Builder{}
	// strings.Builder never fails
	_ = v.Write("", b, pretty)
	return b.String()
}

// WriteTo renders v to w and flushes.
func WriteTo(w io.Writer, v Value, pretty bool) error {
	bw := bufio.NewWriter(w)
	if err := v.Write("", bw, pretty); err != nil {
		return err
	}
	return bw.Flush()
}

const hexDigits = "0123456789abcdef"

// writeQuoted writes s as a JSON string literal. Printable ASCII passes
// through, the short escapes are used where they exist and everything else
// becomes \u followed by four lowercase hex digits per UTF-16 code unit.
func writeQuoted(w Sink, s string) error {
	b := make([]byte, 0, len(s)+2)
	b = append(b, '"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			if u, ok := decodeSurrogate(s[i:]); ok {
				b = appendUnicode(b, u)
				i += 3
				continue
			}
		}
		i += size
		switch {
		case r == '"':
			b = append(b, '\\', '"')
		case r == '\\':
			b = append(b, '\\', '\\')
		case r >= 0x20 && r <= 0x7e:
			b = append(b, byte(r))
		case r == '\b':
			b = append(b, '\\', 'b')
		case r == '\f':
			b = append(b, '\\', 'f')
		case r == '\n':
			b = append(b, '\\', 'n')
		case r == '\r':
			b = append(b, '\\', 'r')
		case r == '\t':
			b = append(b, '\\', 't')
		case r > 0xffff:
			hi, lo := utf16.EncodeRune(r)
			b = appendUnicode(b, hi)
			b = appendUnicode(b, lo)
		default:
			b = appendUnicode(b, r)
		}
	}
	b = append(b, '"')
	_, err := w.WriteString(string(b))
	return err
}

func appendUnicode(b []byte, r rune) []byte {
	return append(b, '\\', 'u',
		hexDigits[(r>>12)&0xf], hexDigits[(r>>8)&0xf],
		hexDigits[(r>>4)&0xf], hexDigits[r&0xf])
}

// appendSurrogate stores a lone UTF-16 surrogate using the generalized
// UTF-8 three-byte form (WTF-8), which utf8.EncodeRune refuses to produce.
func appendSurrogate(b []byte, r rune) []byte {
	return append(b,
		byte(0xe0|(r>>12)),
		byte(0x80|((r>>6)&0x3f)),
		byte(0x80|(r&0x3f)))
}

// decodeSurrogate recognizes the WTF-8 form written by appendSurrogate.
func decodeSurrogate(s string) (rune, bool) {
	if len(s) < 3 || s[0] != 0xed || s[1] < 0xa0 || s[1] > 0xbf || s[2]&0xc0 != 0x80 {
		return 0, false
	}
	return rune(s[0]&0x0f)<<12 | rune(s[1]&0x3f)<<6 | rune(s[2]&0x3f), true
}

// writeOpen, writeClose and writeSeparator share the container layout of
// objects and arrays.
func writeSeparator(w Sink, last, pretty bool) error {
	if !last {
		if err := w.WriteByte(','); err != nil {
			return err
		}
	}
	if pretty {
		return w.WriteByte('\n')
	}
	return nil
}

func writeClose(w Sink, indent string, pretty bool, c byte) error {
	if pretty {
		if _, err := w.WriteString(indent); err != nil {
			return err
		}
	}
	return w.WriteByte(c)
}

func writeOpen(w Sink, pretty bool, c byte) error {
	if err := w.WriteByte(c); err != nil {
		return err
	}
	if pretty {
		return w.WriteByte('\n')
	}
	return nil
}
