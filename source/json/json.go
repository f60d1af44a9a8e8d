package json

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	eng "github.com/mgavaghan/GavaghanJSON/internal/engine"
)

type jsonSource struct {
	dec        *json.Decoder
	frames     eng.Frames
	lastOffset int64
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON.
func NewReader(r io.Reader) eng.TokenSource {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &jsonSource{dec: dec, lastOffset: -1}
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *jsonSource) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		var se *json.SyntaxError
		switch {
		case err == io.EOF:
			return eng.Token{}, io.EOF
		case errors.As(err, &se):
			return eng.Token{}, &eng.SyntaxError{Offset: se.Offset, Msg: se.Error(), Err: err}
		case errors.Is(err, io.ErrUnexpectedEOF):
			return eng.Token{}, &eng.SyntaxError{Offset: s.dec.InputOffset(), Msg: "unexpected end of JSON input", Err: err}
		}
		return eng.Token{}, err
	}
	s.lastOffset = s.dec.InputOffset()
	return eng.Translate[json.Delim, json.Number](&s.frames, tok, s.lastOffset), nil
}

func (s *jsonSource) Location() int64 { return s.lastOffset }
