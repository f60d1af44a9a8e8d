// Package yamlconv converts between YAML documents and gjson trees.
// Mapping order is preserved in both directions.
package yamlconv

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	gjson "github.com/mgavaghan/GavaghanJSON"
)

const (
	// maxAliasDepth bounds alias expansion so that recursive anchors fail
	// instead of looping.
	maxAliasDepth = 64
	// maxAliasNodes bounds the total number of nodes produced by expanding
	// aliases in one document.
	maxAliasNodes = 100_000
)

// DuplicateKeyError reports a duplicate key found in a YAML mapping with both
// the first occurrence position and the duplicate occurrence position.
type DuplicateKeyError struct {
	Key       string
	FirstLine int
	FirstCol  int
	Line      int
	Col       int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate YAML key %q at %d:%d (first at %d:%d)", e.Key, e.Line, e.Col, e.FirstLine, e.FirstCol)
}

// Reader decodes a multi-document YAML stream using yaml.Node to detect
// duplicate keys (with positions).
type Reader struct {
	dec *yaml.Decoder
}

// NewReader constructs a Reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{dec: yaml.NewDecoder(r)}
}

// Next returns the next document. It returns (nil, io.EOF) when the stream
// is exhausted; an empty document yields Null.
func (s *Reader) Next() (gjson.Value, error) {
	var root yaml.Node
	if err := s.dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, err
	}
	return new(converter).node(&root, 0, false)
}

// ReadAll reads all documents from the stream.
func (s *Reader) ReadAll() ([]gjson.Value, error) {
	var out []gjson.Value
	for {
		v, err := s.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, err
		}
		out = append(out, v)
	}
}

// Decode converts the first document in data.
func Decode(data []byte) (gjson.Value, error) {
	v, err := NewReader(bytes.NewReader(data)).Next()
	if errors.Is(err, io.EOF) {
		return gjson.Null{}, nil
	}
	return v, err
}

// converter walks one document. aliased counts nodes reached through an
// alias so that fan-out is bounded as well as nesting.
type converter struct {
	aliased int
}

func (c *converter) node(n *yaml.Node, depth int, viaAlias bool) (gjson.Value, error) {
	if viaAlias {
		c.aliased++
		if c.aliased > maxAliasNodes {
			return nil, pkgerrors.Errorf("yaml aliases at %d:%d expand to more than %d nodes", n.Line, n.Column, maxAliasNodes)
		}
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return gjson.Null{}, nil
		}
		return c.node(n.Content[0], depth, viaAlias)
	case yaml.AliasNode:
		if depth >= maxAliasDepth || n.Alias == nil {
			return nil, pkgerrors.Errorf("yaml alias %q at %d:%d nests too deeply", n.Value, n.Line, n.Column)
		}
		return c.node(n.Alias, depth+1, true)
	case yaml.MappingNode:
		o := gjson.NewObject()
		first := make(map[string][2]int, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			key := k.Value
			if pos, dup := first[key]; dup {
				return nil, &DuplicateKeyError{Key: key, FirstLine: pos[0], FirstCol: pos[1], Line: k.Line, Col: k.Column}
			}
			first[key] = [2]int{k.Line, k.Column}
			val, err := c.node(n.Content[i+1], depth, viaAlias)
			if err != nil {
				return nil, err
			}
			o.Put(key, val)
		}
		return o, nil
	case yaml.SequenceNode:
		a := gjson.NewArray()
		for _, e := range n.Content {
			v, err := c.node(e, depth, viaAlias)
			if err != nil {
				return nil, err
			}
			a.Append(v)
		}
		return a, nil
	case yaml.ScalarNode:
		return fromScalar(n)
	}
	return gjson.Null{}, nil
}

func fromScalar(n *yaml.Node) (gjson.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return gjson.Null{}, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return gjson.NewString(n.Value), nil
		}
		return gjson.NewBoolean(b), nil
	case "!!int":
		s := strings.ReplaceAll(n.Value, "_", "")
		if i, err := strconv.ParseInt(s, 0, 64); err == nil {
			return gjson.NewNumberFromInt(i), nil
		}
		if d, err := decimal.NewFromString(s); err == nil {
			return gjson.NewNumber(d), nil
		}
		return gjson.NewString(n.Value), nil
	case "!!float":
		d, err := decimal.NewFromString(strings.ReplaceAll(n.Value, "_", ""))
		if err != nil {
			return nil, pkgerrors.Errorf("yaml value %q at %d:%d has no JSON representation", n.Value, n.Line, n.Column)
		}
		return gjson.NewNumber(d), nil
	}
	return gjson.NewString(n.Value), nil
}

// Encode renders v as a YAML document.
func Encode(v gjson.Value) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(ToNode(v)); err != nil {
		return nil, pkgerrors.Wrap(err, "encode yaml")
	}
	if err := enc.Close(); err != nil {
		return nil, pkgerrors.Wrap(err, "encode yaml")
	}
	return buf.Bytes(), nil
}

// ToNode converts v to a yaml.Node tree.
func ToNode(v gjson.Value) *yaml.Node {
	switch v.Kind() {
	case gjson.KindObject:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		v.Raw().(*gjson.Object).Range(func(k string, e gjson.Value) bool {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
				ToNode(e))
			return true
		})
		return n
	case gjson.KindArray:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range v.Raw().([]gjson.Value) {
			n.Content = append(n.Content, ToNode(e))
		}
		return n
	case gjson.KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.Raw().(string)}
	case gjson.KindNumber:
		d := v.Raw().(decimal.Decimal)
		tag := "!!float"
		if d.IsInteger() {
			tag = "!!int"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: d.String()}
	case gjson.KindBoolean:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.Raw().(bool))}
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}
