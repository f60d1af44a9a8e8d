package gjson

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/mgavaghan/GavaghanJSON/internal/logutil"
)

// DuplicatePolicy decides what happens when an object repeats a key.
type DuplicatePolicy int

const (
	// DuplicateOverwrite keeps the last value at the position of the first
	// occurrence.
	DuplicateOverwrite DuplicatePolicy = iota
	// DuplicateReject fails the read with CodeDuplicateKey.
	DuplicateReject
)

// WhitespaceSkipper consumes insignificant input between tokens. It must
// leave the first significant character unread.
type WhitespaceSkipper interface {
	SkipWhitespace(p *PushbackReader) error
	// PushbackSize is the pushback capacity the skipper needs.
	PushbackSize() int
}

// Recaster may substitute a freshly parsed value. A nil replacement keeps
// the parsed value. A non-nil replacement of the same kind takes over the
// parsed content and is returned in its place.
type Recaster interface {
	Recast(path string, v Value) (Value, error)
}

// RecastFunc adapts a function to Recaster.
type RecastFunc func(path string, v Value) (Value, error)

func (f RecastFunc) Recast(path string, v Value) (Value, error) { return f(path, v) }

// Option configures a Factory.
type Option func(*Factory)

// WithWhitespaceSkipper replaces the whitespace rule.
func WithWhitespaceSkipper(s WhitespaceSkipper) Option {
	return func(f *Factory) {
		if s != nil {
			f.skipper = s
		}
	}
}

// WithComments treats // and /* */ comments as whitespace.
func WithComments() Option { return WithWhitespaceSkipper(CommentSkipper{}) }

// WithRecaster appends a recast hook. Hooks run in order; the first non-nil
// replacement wins.
func WithRecaster(r Recaster) Option {
	return func(f *Factory) {
		if r != nil {
			f.recasters = append(f.recasters, r)
		}
	}
}

// WithRegistry recasts objects carrying TypeKey into registered types.
func WithRegistry(reg *Registry) Option {
	if reg == nil {
		return func(*Factory) {}
	}
	return WithRecaster(reg)
}

// WithMaxDepth bounds container nesting. Zero means unlimited.
func WithMaxDepth(n int) Option {
	return func(f *Factory) {
		if n >= 0 {
			f.maxDepth = n
		}
	}
}

// WithMaxExponent bounds the magnitude of number exponents. Zero restores
// DefaultMaxExponent; a negative value removes the bound.
func WithMaxExponent(n int) Option { return func(f *Factory) { f.maxExp = n } }

// WithDuplicateKeys sets the duplicate key policy.
func WithDuplicateKeys(p DuplicatePolicy) Option { return func(f *Factory) { f.dup = p } }

// WithLogger sets the logger used for trace output.
func WithLogger(l *slog.Logger) Option { return func(f *Factory) { f.logger = l } }

// Factory parses JSON text into Value trees. A Factory is immutable after
// construction and safe for concurrent use on independent inputs.
type Factory struct {
	skipper   WhitespaceSkipper
	recasters []Recaster
	maxDepth  int
	maxExp    int
	dup       DuplicatePolicy
	logger    *slog.Logger
}

// Default is the plain factory: standard JSON, no comments, no recast.
var Default = NewFactory()

// NewFactory creates a Factory configured by opts.
func NewFactory(opts ...Option) *Factory {
	f := &Factory{skipper: PlainWhitespace{}}
	for _, o := range opts {
		o(f)
	}
	return f
}

// PushbackSize is the minimum pushback capacity the factory needs.
func (f *Factory) PushbackSize() int {
	return max(1, f.skipper.PushbackSize())
}

func (f *Factory) log() *slog.Logger {
	if f.logger != nil {
		return f.logger
	}
	return slog.Default()
}

// Read parses the first value in r. It returns (nil, nil) when r holds
// nothing but whitespace.
func (f *Factory) Read(r io.Reader) (Value, error) {
	return f.ReadFrom(NewPushbackReader(r, f.PushbackSize()))
}

// ReadFrom is Read over an existing pushback source. A source with less
// than PushbackSize capacity is rejected with ErrPushbackTooSmall. Input
// after the first value is left unread, so successive calls yield
// successive values.
func (f *Factory) ReadFrom(p *PushbackReader) (Value, error) {
	if p.Size() < f.PushbackSize() {
		return nil, fmt.Errorf("%w: source holds %d, factory needs %d", ErrPushbackTooSmall, p.Size(), f.PushbackSize())
	}
	d := f.NewDecoder(p)
	if err := d.SkipWhitespace(RootPath); err != nil {
		return nil, err
	}
	c, ok, err := d.Next()
	if err != nil || !ok {
		return nil, err
	}
	if err := d.Unread(c); err != nil {
		return nil, err
	}
	v, err := d.ReadValue(RootPath)
	if err != nil {
		if ge, ok := AsGrammarError(err); ok {
			f.log().Debug("rejected document", "path", ge.Path, "code", ge.Code)
		}
		return nil, err
	}
	return v, nil
}

// ReadString parses the first value in s.
func (f *Factory) ReadString(s string) (Value, error) { return f.Read(strings.NewReader(s)) }

// ReadBytes parses the first value in b.
func (f *Factory) ReadBytes(b []byte) (Value, error) { return f.Read(bytes.NewReader(b)) }

// NewDecoder binds the factory to a pushback source.
func (f *Factory) NewDecoder(p *PushbackReader) *Decoder {
	return &Decoder{f: f, p: p}
}

// Decoder is the parse state handed to grammar rules. It is single use and
// not safe for concurrent use.
type Decoder struct {
	f     *Factory
	p     *PushbackReader
	depth int
}

// Factory returns the factory driving this decoder.
func (d *Decoder) Factory() *Factory { return d.f }

// Next reads one character. ok is false at end of input.
func (d *Decoder) Next() (c rune, ok bool, err error) {
	return readOpt(d.p)
}

// Demand reads one character and fails with CodeOutOfData at end of input.
func (d *Decoder) Demand(path string) (rune, error) {
	c, ok, err := d.Next()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, grammarErr(path, CodeOutOfData, "")
	}
	return c, nil
}

// Unread pushes c back onto the source.
func (d *Decoder) Unread(c rune) error { return d.p.Unread(c) }

// SkipWhitespace applies the factory's whitespace rule. Grammar errors
// raised by the skipper are reported at path.
func (d *Decoder) SkipWhitespace(path string) error {
	err := d.f.skipper.SkipWhitespace(d.p)
	if ge, ok := AsGrammarError(err); ok && ge.Path == RootPath {
		ge.Path = path
	}
	return err
}

// ReadValue skips whitespace, selects a variant from the next character,
// reads it and applies the recast hooks.
func (d *Decoder) ReadValue(path string) (Value, error) {
	if err := d.SkipWhitespace(path); err != nil {
		return nil, err
	}
	c, err := d.Demand(path)
	if err != nil {
		return nil, err
	}

	var v Value
	switch {
	case c == '"':
		v = &String{}
	case c == '-' || isDigit(c):
		v = &Number{}
	case c == '[':
		v = &Array{}
	case c == '{':
		v = &Object{}
	case c == 't' || c == 'f':
		v = &Boolean{}
	case c == 'n':
		v = Null{}
	default:
		return nil, grammarErr(path, CodeIllegalStart, quoteRune(c))
	}
	if err := d.Unread(c); err != nil {
		return nil, err
	}

	if c == '[' || c == '{' {
		d.depth++
		defer func() { d.depth-- }()
		if d.f.maxDepth > 0 && d.depth > d.f.maxDepth {
			return nil, grammarErr(path, CodeMaxDepth, strconv.Itoa(d.f.maxDepth))
		}
	}

	if err := v.Read(path, d); err != nil {
		return nil, err
	}
	return d.recast(path, v)
}

func (d *Decoder) recast(path string, v Value) (Value, error) {
	for _, r := range d.f.recasters {
		repl, err := r.Recast(path, v)
		if err != nil {
			return nil, err
		}
		if repl == nil {
			continue
		}
		if err := adopt(repl, v); err != nil {
			return nil, err
		}
		logutil.Trace(d.f.log(), "recast", "path", path, "from", kindName(v), "to", TypeNameOf(repl))
		return repl, nil
	}
	return v, nil
}

// adopt moves the content of the freshly parsed v into repl. Container
// children are handed over rather than copied, so descendants that were
// already recast keep their concrete types.
func adopt(repl, v Value) error {
	if repl.Kind() != v.Kind() {
		return mismatch(repl.Kind(), v)
	}
	switch v.Kind() {
	case KindObject:
		dst, src := asObject(repl), asObject(v)
		if dst != src {
			dst.m, src.m = src.lazy(), nil
		}
		return nil
	case KindArray:
		dst, ok := repl.(*Array)
		if !ok {
			return mismatch(KindArray, repl)
		}
		src := v.(*Array)
		if dst != src {
			dst.items, src.items = src.items, nil
		}
		return nil
	}
	return repl.CopyFrom(v)
}

func isDigit(c rune) bool { return c >= '0' && c <= '9' }

func quoteRune(c rune) string { return strconv.QuoteRune(c) }

// IsWhitespace reports whether c is in the default whitespace set: space,
// the C0 format controls and the ASCII separators FS, GS, RS and US.
func IsWhitespace(c rune) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r', 0x0e, 0x1c, 0x1d, 0x1e, 0x1f:
		return true
	}
	return false
}

// PlainWhitespace skips IsWhitespace characters.
type PlainWhitespace struct{}

func (PlainWhitespace) PushbackSize() int { return 1 }

func (PlainWhitespace) SkipWhitespace(p *PushbackReader) error {
	for {
		c, ok, err := readOpt(p)
		if err != nil || !ok {
			return err
		}
		if !IsWhitespace(c) {
			return p.Unread(c)
		}
	}
}
