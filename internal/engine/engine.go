package engine

import (
	"fmt"
	"strconv"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindBeginObject:
		return "{"
	case KindEndObject:
		return "}"
	case KindBeginArray:
		return "["
	case KindEndArray:
		return "]"
	case KindKey:
		return "key"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string // literal text, exponent included
	Bool   bool
	Offset int64
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// SyntaxError is returned by drivers for malformed input so callers can tell
// it apart from I/O failures of the underlying reader.
type SyntaxError struct {
	Offset int64
	Msg    string
	Err    error
}

func (e *SyntaxError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s (offset %d)", e.Msg, e.Offset)
	}
	return e.Msg
}

func (e *SyntaxError) Unwrap() error { return e.Err }

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	expectingKey bool
}

// Frames tracks container nesting for drivers whose decoders report keys
// and string values alike.
type Frames struct {
	stack []frame
}

func (f *Frames) open(k containerKind) {
	f.stack = append(f.stack, frame{kind: k, expectingKey: k == kindObject})
}

func (f *Frames) close() {
	if n := len(f.stack); n > 0 {
		f.stack = f.stack[:n-1]
	}
	f.valueDone()
}

// valueDone marks the pending member of the enclosing object as complete.
func (f *Frames) valueDone() {
	if n := len(f.stack); n > 0 {
		top := &f.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
		}
	}
}

// isKey reports whether a string token in the current position is a key.
func (f *Frames) isKey() bool {
	if n := len(f.stack); n > 0 {
		top := &f.stack[n-1]
		if top.kind == kindObject && top.expectingKey {
			top.expectingKey = false
			return true
		}
	}
	return false
}

// Translate converts a token produced by an encoding/json style Decoder
// into a Token. D and N are the decoder's Delim and Number types.
func Translate[D ~rune, N ~string](f *Frames, tok any, offset int64) Token {
	switch v := tok.(type) {
	case D:
		switch v {
		case '{':
			f.open(kindObject)
			return Token{Kind: KindBeginObject, Offset: offset}
		case '}':
			f.close()
			return Token{Kind: KindEndObject, Offset: offset}
		case '[':
			f.open(kindArray)
			return Token{Kind: KindBeginArray, Offset: offset}
		case ']':
			f.close()
			return Token{Kind: KindEndArray, Offset: offset}
		}
	case string:
		if f.isKey() {
			return Token{Kind: KindKey, String: v, Offset: offset}
		}
		f.valueDone()
		return Token{Kind: KindString, String: v, Offset: offset}
	case bool:
		f.valueDone()
		return Token{Kind: KindBool, Bool: v, Offset: offset}
	case N:
		f.valueDone()
		return Token{Kind: KindNumber, Number: string(v), Offset: offset}
	case float64:
		f.valueDone()
		return Token{Kind: KindNumber, Number: strconv.FormatFloat(v, 'g', -1, 64), Offset: offset}
	}
	f.valueDone()
	return Token{Kind: KindNull, Offset: offset}
}
