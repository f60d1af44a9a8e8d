package gjson

import (
	"io"
	"unicode/utf8"
)

// PushbackReader gives a character stream the ability to unread a bounded
// number of characters. Unread characters are returned LIFO before any
// further characters are pulled from the underlying reader.
//
// The reader never consumes input beyond the character being returned, so
// a source may be handed back to its owner (or to another read) once a
// value has been parsed.
type PushbackReader struct {
	rr  io.RuneReader
	br  io.ByteReader
	buf []rune
	n   int // number of runes currently pushed back

	held    byte // byte read while decoding the previous rune but not part of it
	hasHeld bool
}

// NewPushbackReader wraps r with a pushback buffer of the given capacity.
// Capacities below 1 are raised to 1. Sources implementing io.RuneReader
// are read rune by rune; anything else is decoded as UTF-8 one byte at a
// time.
func NewPushbackReader(r io.Reader, size int) *PushbackReader {
	if size < 1 {
		size = 1
	}
	p := &PushbackReader{buf: make([]rune, size)}
	switch src := r.(type) {
	case io.RuneReader:
		p.rr = src
	case io.ByteReader:
		p.br = src
	default:
		p.br = &singleByteReader{r: r}
	}
	return p
}

// Size reports the pushback capacity.
func (p *PushbackReader) Size() int { return len(p.buf) }

// ReadRune returns the next character, or io.EOF at end of input. Errors
// from the underlying reader are returned unchanged. Invalid UTF-8 yields
// utf8.RuneError.
func (p *PushbackReader) ReadRune() (rune, int, error) {
	if p.n > 0 {
		p.n--
		r := p.buf[p.n]
		return r, utf8.RuneLen(r), nil
	}
	if p.rr != nil {
		return p.rr.ReadRune()
	}
	return p.decodeRune()
}

// Unread pushes r back onto the stream. It fails with ErrPushbackOverflow
// when the buffer is full.
func (p *PushbackReader) Unread(r rune) error {
	if p.n == len(p.buf) {
		return ErrPushbackOverflow
	}
	p.buf[p.n] = r
	p.n++
	return nil
}

func (p *PushbackReader) nextByte() (byte, error) {
	if p.hasHeld {
		p.hasHeld = false
		return p.held, nil
	}
	return p.br.ReadByte()
}

// decodeRune assembles one UTF-8 sequence. A byte that cannot continue the
// sequence is held for the next call rather than lost.
func (p *PushbackReader) decodeRune() (rune, int, error) {
	b0, err := p.nextByte()
	if err != nil {
		return 0, 0, err
	}
	if b0 < utf8.RuneSelf {
		return rune(b0), 1, nil
	}

	var want int
	switch {
	case b0&0xE0 == 0xC0:
		want = 2
	case b0&0xF0 == 0xE0:
		want = 3
	case b0&0xF8 == 0xF0:
		want = 4
	default:
		return utf8.RuneError, 1, nil
	}

	var seq [utf8.UTFMax]byte
	seq[0] = b0
	n := 1
	for n < want {
		b, err := p.nextByte()
		if err == io.EOF {
			return utf8.RuneError, n, nil
		}
		if err != nil {
			return 0, 0, err
		}
		if b&0xC0 != 0x80 {
			p.held, p.hasHeld = b, true
			return utf8.RuneError, n, nil
		}
		seq[n] = b
		n++
	}
	r, size := utf8.DecodeRune(seq[:n])
	if size != n {
		return utf8.RuneError, n, nil
	}
	return r, n, nil
}

// singleByteReader reads exactly one byte per call so nothing past the
// current character is pulled from the source.
type singleByteReader struct {
	r io.Reader
	b [1]byte
}

func (s *singleByteReader) ReadByte() (byte, error) {
	if _, err := io.ReadFull(s.r, s.b[:]); err != nil {
		return 0, err
	}
	return s.b[0], nil
}
