package gjson

import (
	"errors"
	"io"
	"sync"

	eng "github.com/mgavaghan/GavaghanJSON/internal/engine"
	jsonsrc "github.com/mgavaghan/GavaghanJSON/source/json"
)

// Token-level decoding through a pluggable driver. This path builds the same
// Value trees as Factory from a third-party tokenizer; it knows nothing of
// comments or recast hooks.

// Exported aliases so drivers outside this module can produce tokens.
type (
	Token       = eng.Token
	TokenKind   = eng.Kind
	TokenSource = eng.TokenSource
)

const (
	TokenBeginObject = eng.KindBeginObject
	TokenEndObject   = eng.KindEndObject
	TokenBeginArray  = eng.KindBeginArray
	TokenEndArray    = eng.KindEndArray
	TokenKey         = eng.KindKey
	TokenString      = eng.KindString
	TokenNumber      = eng.KindNumber
	TokenBool        = eng.KindBool
	TokenNull        = eng.KindNull
)

// Driver converts JSON input into a TokenSource. The default implementation
// is based on encoding/json and may be swapped with SetDriver.
type Driver interface {
	NewReader(r io.Reader) TokenSource
	Name() string
}

var (
	driverMu      sync.RWMutex
	currentDriver Driver = defaultDriver{}
)

// SetDriver replaces the global driver; nil values are ignored.
func SetDriver(d Driver) {
	if d == nil {
		return
	}
	driverMu.Lock()
	currentDriver = d
	driverMu.Unlock()
}

// UseDefaultDriver restores the default encoding/json-backed driver.
func UseDefaultDriver() {
	driverMu.Lock()
	currentDriver = defaultDriver{}
	driverMu.Unlock()
}

// CurrentDriver returns the driver used by DecodeReader.
func CurrentDriver() Driver {
	driverMu.RLock()
	d := currentDriver
	driverMu.RUnlock()
	return d
}

type defaultDriver struct{}

func (defaultDriver) NewReader(r io.Reader) TokenSource { return jsonsrc.NewReader(r) }
func (defaultDriver) Name() string                      { return "encoding/json" }

// DecodeOpt configures token-level decoding.
type DecodeOpt struct {
	Duplicates  DuplicatePolicy
	MaxDepth    int // 0 = unlimited
	MaxExponent int // 0 = DefaultMaxExponent, negative = unlimited
}

func lastOpt(opts []DecodeOpt) DecodeOpt {
	if len(opts) == 0 {
		return DecodeOpt{}
	}
	return opts[len(opts)-1]
}

// DecodeReader decodes the first value in r with the current driver. It
// returns (nil, nil) for empty input.
func DecodeReader(r io.Reader, opts ...DecodeOpt) (Value, error) {
	return DecodeTokens(CurrentDriver().NewReader(r), opts...)
}

func (opt DecodeOpt) wrap(src TokenSource) TokenSource {
	eo := eng.EnforceOptions{MaxDepth: opt.MaxDepth}
	if opt.Duplicates == DuplicateReject {
		eo.OnDuplicate = eng.DupError
	}
	return eng.WrapWithEnforcement(src, eo)
}

// DecodeTokens builds a Value from src.
func DecodeTokens(src TokenSource, opts ...DecodeOpt) (Value, error) {
	opt := lastOpt(opts)
	b := builder{src: opt.wrap(src), maxExp: opt.MaxExponent}

	tok, err := b.src.NextToken()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fromEngineError(err, RootPath)
	}
	return b.value(RootPath, tok)
}

// FindDuplicateKeys reports every repeated object key in r, up to limit
// (negative for all). Each report is a *GrammarError with CodeDuplicateKey.
func FindDuplicateKeys(r io.Reader, limit int) ([]*GrammarError, error) {
	issues, err := eng.DetectDuplicateKeys(CurrentDriver().NewReader(r), limit)
	out := make([]*GrammarError, 0, len(issues))
	for _, si := range issues {
		out = append(out, grammarErr(si.Path, si.Code, si.Detail))
	}
	if err != nil {
		return out, fromEngineError(err, RootPath)
	}
	return out, nil
}

// builder assembles a Value tree from tokens, tracking the document path
// so errors point at the value being built.
type builder struct {
	src    TokenSource
	maxExp int
}

func (b builder) next(path string) (Token, error) {
	tok, err := b.src.NextToken()
	if errors.Is(err, io.EOF) {
		return Token{}, grammarErr(path, CodeOutOfData, "")
	}
	if err != nil {
		return Token{}, fromEngineError(err, path)
	}
	return tok, nil
}

func (b builder) value(path string, tok Token) (Value, error) {
	switch tok.Kind {
	case eng.KindBeginObject:
		o := NewObject()
		for {
			kt, err := b.next(path)
			if err != nil {
				return nil, err
			}
			if kt.Kind == eng.KindEndObject {
				return o, nil
			}
			if kt.Kind != eng.KindKey {
				return nil, grammarErr(path, CodeParseError, "object key expected, found "+kt.Kind.String())
			}
			child := PathField(path, kt.String)
			vt, err := b.next(child)
			if err != nil {
				return nil, err
			}
			v, err := b.value(child, vt)
			if err != nil {
				return nil, err
			}
			o.Put(kt.String, v)
		}
	case eng.KindBeginArray:
		a := &Array{}
		for {
			child := PathIndex(path, a.Len())
			et, err := b.next(child)
			if err != nil {
				return nil, err
			}
			if et.Kind == eng.KindEndArray {
				return a, nil
			}
			v, err := b.value(child, et)
			if err != nil {
				return nil, err
			}
			a.Append(v)
		}
	case eng.KindString:
		return NewString(tok.String), nil
	case eng.KindNumber:
		d, err := parseDecimal(path, tok.Number, b.maxExp)
		if err != nil {
			return nil, err
		}
		return NewNumber(d), nil
	case eng.KindBool:
		return NewBoolean(tok.Bool), nil
	case eng.KindNull:
		return Null{}, nil
	}
	return nil, grammarErr(path, CodeParseError, "unexpected "+tok.Kind.String())
}

// fromEngineError maps enforcement issues and driver syntax errors to
// *GrammarError; syntax errors are reported at path. Anything else is an
// I/O failure and is returned unchanged.
func fromEngineError(err error, path string) error {
	if _, ok := AsGrammarError(err); ok {
		return err
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return grammarErr(ie.Path, ie.Code, ie.Detail)
	}
	var se *eng.SyntaxError
	if errors.As(err, &se) {
		ge := grammarErr(path, CodeParseError, se.Error())
		ge.Cause = err
		return ge
	}
	return err
}
