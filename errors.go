package gjson

import (
	"errors"
	"fmt"

	"github.com/mgavaghan/GavaghanJSON/i18n"
)

// Grammar error codes (exported consts for IDE completion and type safety by convention)
const (
	CodeIllegalStart        = "illegal_start"
	CodeUnexpectedChar      = "unexpected_char"
	CodeOutOfData           = "out_of_data"
	CodeBadEscape           = "bad_escape"
	CodeBadUnicode          = "bad_unicode"
	CodeBadNumber           = "bad_number"
	CodeBadLiteral          = "bad_literal"
	CodeUnterminatedComment = "unterminated_comment"
	CodeDuplicateKey        = "duplicate_key"
	CodeMaxDepth            = "max_depth"
	// Typed round-trip (discriminator key) failures
	CodeDiscriminatorType    = "discriminator_type"
	CodeDiscriminatorUnknown = "discriminator_unknown"
	// Syntax errors reported by a token driver rather than the grammar rules.
	CodeParseError = "parse_error"
)

var (
	// ErrPushbackOverflow is returned by PushbackReader.Unread when the
	// pushback buffer is full.
	ErrPushbackOverflow = errors.New("gjson: pushback buffer overflow")

	// ErrPushbackTooSmall is returned by Factory.ReadFrom when the source's
	// pushback capacity is below what the factory's whitespace rule needs.
	ErrPushbackTooSmall = errors.New("gjson: pushback capacity too small")

	// ErrNoConstructor indicates a lookup or recast needed a default instance
	// but no constructor was supplied.
	ErrNoConstructor = errors.New("gjson: no default constructor")
)

// GrammarError reports a document that does not conform to the JSON grammar.
type GrammarError struct {
	Path    string // Document path such as $.items[2].price.
	Code    string // One of the Code* constants.
	Message string
	Cause   error // Optional: underlying error.
}

func (e *GrammarError) Error() string { return e.Path + ": " + e.Message }

func (e *GrammarError) Unwrap() error { return e.Cause }

// AsGrammarError extracts a *GrammarError from an error chain.
func AsGrammarError(err error) (*GrammarError, bool) {
	if err == nil {
		return nil, false
	}
	var ge *GrammarError
	if errors.As(err, &ge) {
		return ge, true
	}
	return nil, false
}

// grammarErr builds a GrammarError whose message is the localized text for
// code followed by detail.
func grammarErr(path, code, detail string) *GrammarError {
	var data map[string]string
	if detail != "" {
		data = map[string]string{"detail": detail}
	}
	return &GrammarError{Path: path, Code: code, Message: i18n.T(code, data)}
}

// TypeMismatchError is a usage error: a value's runtime kind does not match
// what the caller expected.
type TypeMismatchError struct {
	Key      string // Object key being accessed; empty for CopyFrom.
	Expected string
	Actual   string
}

func (e *TypeMismatchError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("gjson: can't assign a %s to a %s", e.Actual, e.Expected)
	}
	return fmt.Sprintf("gjson: value of %q is a %s but a %s was expected", e.Key, e.Actual, e.Expected)
}

func mismatch(expected Kind, actual Value) *TypeMismatchError {
	return &TypeMismatchError{Expected: expected.String(), Actual: kindName(actual)}
}

// ConstructionError reports that a default instance could not be created:
// the constructor is missing, panicked, or returned nil. It signals a
// configuration problem rather than a malformed document.
type ConstructionError struct {
	TypeName string
	Cause    error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("gjson: constructor for %q failed: %v", e.TypeName, e.Cause)
}

func (e *ConstructionError) Unwrap() error { return e.Cause }

func kindName(v Value) string {
	if v == nil {
		return "nil"
	}
	return v.Kind().String()
}
