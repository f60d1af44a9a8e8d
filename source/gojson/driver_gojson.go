package gojson

import (
	"bytes"
	"errors"
	"io"

	j "github.com/goccy/go-json"

	gjson "github.com/mgavaghan/GavaghanJSON"
	eng "github.com/mgavaghan/GavaghanJSON/internal/engine"
)

// Driver returns a gjson.Driver backed by goccy/go-json.
func Driver() gjson.Driver { return driverGoJSON{} }

type driverGoJSON struct{}

func (driverGoJSON) NewReader(r io.Reader) gjson.TokenSource { return NewReader(r) }
func (driverGoJSON) Name() string                           { return "go-json" }

type source struct {
	dec    *j.Decoder
	frames eng.Frames
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON using go-json.
func NewReader(r io.Reader) eng.TokenSource {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	return &source{dec: dec}
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON using go-json.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *source) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		var se *j.SyntaxError
		switch {
		case err == io.EOF:
			return eng.Token{}, io.EOF
		case errors.As(err, &se):
			return eng.Token{}, &eng.SyntaxError{Offset: se.Offset, Msg: se.Error(), Err: err}
		case errors.Is(err, io.ErrUnexpectedEOF):
			return eng.Token{}, &eng.SyntaxError{Offset: -1, Msg: "unexpected end of JSON input", Err: err}
		}
		return eng.Token{}, err
	}
	return eng.Translate[j.Delim, j.Number](&s.frames, tok, -1), nil
}

func (s *source) Location() int64 { return -1 }
