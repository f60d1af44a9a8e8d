package gjson

import (
	"errors"
	"io"
)

// CommentSkipper extends PlainWhitespace with // line comments and /* */
// block comments. It needs two characters of pushback to give back a '/'
// that does not start a comment.
type CommentSkipper struct{}

func (CommentSkipper) PushbackSize() int { return 2 }

func (CommentSkipper) SkipWhitespace(p *PushbackReader) error {
	for {
		c, ok, err := readOpt(p)
		if err != nil || !ok {
			return err
		}
		if IsWhitespace(c) {
			continue
		}
		if c != '/' {
			return p.Unread(c)
		}

		next, ok, err := readOpt(p)
		if err != nil {
			return err
		}
		switch {
		case ok && next == '/':
			if err := skipLineComment(p); err != nil {
				return err
			}
		case ok && next == '*':
			if err := skipBlockComment(p); err != nil {
				return err
			}
		default:
			if ok {
				if err := p.Unread(next); err != nil {
					return err
				}
			}
			return p.Unread(c)
		}
	}
}

func skipLineComment(p *PushbackReader) error {
	for {
		c, ok, err := readOpt(p)
		if err != nil || !ok || c == '\n' || c == '\r' {
			return err
		}
	}
}

func skipBlockComment(p *PushbackReader) error {
	star := false
	for {
		c, ok, err := readOpt(p)
		if err != nil {
			return err
		}
		if !ok {
			// Decoder.SkipWhitespace supplies the document path.
			return grammarErr(RootPath, CodeUnterminatedComment, "")
		}
		if star && c == '/' {
			return nil
		}
		star = c == '*'
	}
}

func readOpt(p *PushbackReader) (rune, bool, error) {
	c, _, err := p.ReadRune()
	if errors.Is(err, io.EOF) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return c, true, nil
}
