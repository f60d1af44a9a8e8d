// Package jsoniter provides a token driver backed by json-iterator/go.
//
// json-iterator exposes callbacks rather than a token stream, so the driver
// walks one complete value on the first call and replays its tokens.
package jsoniter

import (
	"bytes"
	"errors"
	"io"

	ji "github.com/json-iterator/go"

	gjson "github.com/mgavaghan/GavaghanJSON"
	eng "github.com/mgavaghan/GavaghanJSON/internal/engine"
)

const bufSize = 4096

// Driver returns a gjson.Driver backed by json-iterator/go.
func Driver() gjson.Driver { return driverJSONIter{} }

type driverJSONIter struct{}

func (driverJSONIter) NewReader(r io.Reader) gjson.TokenSource { return NewReader(r) }
func (driverJSONIter) Name() string                           { return "json-iterator" }

type source struct {
	iter   *ji.Iterator
	toks   []eng.Token
	next   int
	walked bool
	err    error
}

// NewReader wraps an io.Reader into an engine.TokenSource.
func NewReader(r io.Reader) eng.TokenSource {
	return &source{iter: ji.Parse(ji.ConfigDefault, r, bufSize)}
}

// NewBytes wraps a byte slice into an engine.TokenSource.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *source) NextToken() (eng.Token, error) {
	if !s.walked {
		s.walked = true
		s.err = s.walk()
	}
	if s.next < len(s.toks) {
		t := s.toks[s.next]
		s.next++
		return t, nil
	}
	if s.err != nil {
		return eng.Token{}, s.err
	}
	return eng.Token{}, io.EOF
}

func (s *source) Location() int64 { return -1 }

func (s *source) walk() error {
	if s.iter.WhatIsNext() == ji.InvalidValue && errors.Is(s.iter.Error, io.EOF) {
		return io.EOF
	}
	// io.EOF after a complete top-level value is normal for json-iterator
	ok := s.value()
	err := s.iter.Error
	if ok && (err == nil || errors.Is(err, io.EOF)) {
		return nil
	}
	s.toks = nil
	if err == nil || errors.Is(err, io.EOF) {
		return &eng.SyntaxError{Offset: -1, Msg: "unexpected end of JSON input", Err: io.ErrUnexpectedEOF}
	}
	return &eng.SyntaxError{Offset: -1, Msg: err.Error(), Err: err}
}

func (s *source) emit(t eng.Token) { s.toks = append(s.toks, t) }

func (s *source) healthy() bool {
	return s.iter.Error == nil || errors.Is(s.iter.Error, io.EOF)
}

// value records the tokens of the next value and reports whether it was
// read completely.
func (s *source) value() bool {
	it := s.iter
	switch it.WhatIsNext() {
	case ji.ObjectValue:
		s.emit(eng.Token{Kind: eng.KindBeginObject, Offset: -1})
		ok := it.ReadObjectCB(func(it *ji.Iterator, key string) bool {
			s.emit(eng.Token{Kind: eng.KindKey, String: key, Offset: -1})
			return s.value()
		})
		s.emit(eng.Token{Kind: eng.KindEndObject, Offset: -1})
		return ok && s.healthy()
	case ji.ArrayValue:
		s.emit(eng.Token{Kind: eng.KindBeginArray, Offset: -1})
		ok := it.ReadArrayCB(func(it *ji.Iterator) bool {
			return s.value()
		})
		s.emit(eng.Token{Kind: eng.KindEndArray, Offset: -1})
		return ok && s.healthy()
	case ji.StringValue:
		s.emit(eng.Token{Kind: eng.KindString, String: it.ReadString(), Offset: -1})
	case ji.NumberValue:
		s.emit(eng.Token{Kind: eng.KindNumber, Number: string(it.ReadNumber()), Offset: -1})
	case ji.BoolValue:
		s.emit(eng.Token{Kind: eng.KindBool, Bool: it.ReadBool(), Offset: -1})
	case ji.NilValue:
		it.ReadNil()
		s.emit(eng.Token{Kind: eng.KindNull, Offset: -1})
	default:
		it.ReportError("value", "expect JSON value")
		return false
	}
	return s.healthy()
}
