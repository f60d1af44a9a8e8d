package engine

import (
	"strconv"
)

// Enforcement wrapper for TokenSource to apply duplicate key handling and
// max depth checks in a streaming fashion.

// DuplicateStrictness controls duplicate key handling.
type DuplicateStrictness int

const (
	DupIgnore DuplicateStrictness = iota
	DupWarn
	DupError
)

// Issue codes produced by the enforcement layer.
const (
	CodeDuplicateKey = "duplicate_key"
	CodeMaxDepth     = "max_depth"
)

// SimpleIssue is a minimal issue representation used by internal helpers.
type SimpleIssue struct {
	Code   string
	Path   string
	Detail string
}

// EnforceOptions controls runtime enforcement behavior.
type EnforceOptions struct {
	OnDuplicate DuplicateStrictness
	MaxDepth    int
	// IssueSink is an optional callback receiving every issue, fatal or not.
	IssueSink func(SimpleIssue)
}

type pathFrame struct {
	kind         containerKind
	keys         map[string]struct{}
	expectingKey bool
	path         string
	nextIndex    int
	pendingKey   string
}

// IssueError is a lightweight error carrying a SimpleIssue.
type IssueError struct{ SimpleIssue }

func (e IssueError) Error() string { return e.Path + ": " + e.Code + " " + e.Detail }

// WrapWithEnforcement returns a TokenSource that enforces the duplicate key
// policy and the maximum nesting depth. Paths use the $.key[i] notation.
func WrapWithEnforcement(inner TokenSource, opt EnforceOptions) TokenSource {
	if opt.OnDuplicate == DupIgnore && opt.MaxDepth <= 0 && opt.IssueSink == nil {
		return inner
	}
	return &enforcingTokenSource{inner: inner, opt: opt}
}

type enforcingTokenSource struct {
	inner TokenSource
	opt   EnforceOptions
	stack []pathFrame
}

func (e *enforcingTokenSource) report(si SimpleIssue, fatal bool) error {
	if e.opt.IssueSink != nil {
		e.opt.IssueSink(si)
	}
	if fatal {
		return IssueError{si}
	}
	return nil
}

func (e *enforcingTokenSource) NextToken() (Token, error) {
	tok, err := e.inner.NextToken()
	if err != nil {
		return Token{}, err
	}

	path := e.currentPathForToken(tok)

	switch tok.Kind {
	case KindBeginObject, KindBeginArray:
		f := pathFrame{kind: kindArray, path: path}
		if tok.Kind == KindBeginObject {
			f = pathFrame{kind: kindObject, keys: make(map[string]struct{}), expectingKey: true, path: path}
		}
		e.stack = append(e.stack, f)
		if e.opt.MaxDepth > 0 && len(e.stack) > e.opt.MaxDepth {
			si := SimpleIssue{Code: CodeMaxDepth, Path: path, Detail: strconv.Itoa(e.opt.MaxDepth)}
			return Token{}, e.report(si, true)
		}
	case KindEndObject, KindEndArray:
		if n := len(e.stack); n > 0 {
			e.stack = e.stack[:n-1]
		}
		e.memberDone()
	case KindKey:
		if n := len(e.stack); n > 0 {
			top := &e.stack[n-1]
			if top.kind == kindObject && top.expectingKey {
				if e.opt.OnDuplicate != DupIgnore {
					if _, ok := top.keys[tok.String]; ok {
						si := SimpleIssue{Code: CodeDuplicateKey, Path: path, Detail: tok.String}
						if err := e.report(si, e.opt.OnDuplicate == DupError); err != nil {
							return Token{}, err
						}
					}
				}
				top.keys[tok.String] = struct{}{}
				top.expectingKey = false
			}
		}
	case KindString, KindNumber, KindBool, KindNull:
		e.memberDone()
	}

	return tok, nil
}

func (e *enforcingTokenSource) memberDone() {
	if n := len(e.stack); n > 0 {
		top := &e.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
			top.pendingKey = ""
		}
	}
}

func (e *enforcingTokenSource) currentPathForToken(tok Token) string {
	if len(e.stack) == 0 {
		return RootPath
	}

	top := &e.stack[len(e.stack)-1]
	switch tok.Kind {
	case KindKey:
		top.pendingKey = tok.String
		return JoinField(top.path, tok.String)
	case KindBeginObject, KindBeginArray, KindString, KindNumber, KindBool, KindNull:
		if top.kind == kindArray {
			p := JoinIndex(top.path, top.nextIndex)
			top.nextIndex++
			return p
		}
		if !top.expectingKey {
			return JoinField(top.path, top.pendingKey)
		}
	}
	return top.path
}

func (e *enforcingTokenSource) Location() int64 { return e.inner.Location() }

// RootPath is the path of the document root.
const RootPath = "$"

// JoinField appends an object member to a path.
func JoinField(base, key string) string {
	if base == "" {
		base = RootPath
	}
	return base + "." + key
}

// JoinIndex appends an array index to a path.
func JoinIndex(base string, i int) string {
	if base == "" {
		base = RootPath
	}
	return base + "[" + strconv.Itoa(i) + "]"
}
