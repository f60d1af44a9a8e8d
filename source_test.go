package gjson_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gjson "github.com/mgavaghan/GavaghanJSON"
	drvgojson "github.com/mgavaghan/GavaghanJSON/source/gojson"
	drvjsoniter "github.com/mgavaghan/GavaghanJSON/source/jsoniter"
)

var driverCorpus = []string{
	`{}`,
	`[]`,
	`"s"`,
	`-12.5e-1`,
	`true`,
	`null`,
	`{"b":[1,2,{"c":null}],"a":"x","n":{"m":{}}}`,
	`[[[]],[{}],"\n\t"]`,
}

func withDriver(t *testing.T, d gjson.Driver) {
	t.Helper()
	prev := gjson.CurrentDriver()
	gjson.SetDriver(d)
	t.Cleanup(func() { gjson.SetDriver(prev) })
}

// Both drivers and the character-level reader must build the same trees.
func TestDecodeReader_MatchesFactory(t *testing.T) {
	drivers := []gjson.Driver{nil, drvgojson.Driver(), drvjsoniter.Driver()}
	for _, d := range drivers {
		if d == nil {
			prev := gjson.CurrentDriver()
			gjson.UseDefaultDriver()
			t.Cleanup(func() { gjson.SetDriver(prev) })
		} else {
			withDriver(t, d)
		}
		name := gjson.CurrentDriver().Name()
		for _, in := range driverCorpus {
			want, err := gjson.Default.ReadString(in)
			require.NoError(t, err)
			got, err := gjson.DecodeReader(strings.NewReader(in))
			require.NoError(t, err, "%s: %s", name, in)
			assert.True(t, gjson.Equal(want, got), "%s: %s => %s", name, in, gjson.ToFlatString(got))
		}
	}
}

func TestDecodeReader_Empty(t *testing.T) {
	v, err := gjson.DecodeReader(strings.NewReader("  "))
	assert.NoError(t, err)
	assert.Nil(t, v)
}

func TestDecodeReader_Duplicates(t *testing.T) {
	in := `{"a":1,"b":2,"a":3}`
	v, err := gjson.DecodeReader(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, `{"a":3,"b":2}`, gjson.ToFlatString(v))

	_, err = gjson.DecodeReader(strings.NewReader(in), gjson.DecodeOpt{Duplicates: gjson.DuplicateReject})
	ge, ok := gjson.AsGrammarError(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, gjson.CodeDuplicateKey, ge.Code)
	assert.Equal(t, "$.a", ge.Path)
}

func TestDecodeReader_MaxDepth(t *testing.T) {
	_, err := gjson.DecodeReader(strings.NewReader(`[[1]]`), gjson.DecodeOpt{MaxDepth: 1})
	ge, ok := gjson.AsGrammarError(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, gjson.CodeMaxDepth, ge.Code)
	assert.Equal(t, "$[0]", ge.Path)

	_, err = gjson.DecodeReader(strings.NewReader(`[[1]]`), gjson.DecodeOpt{MaxDepth: 2})
	assert.NoError(t, err)
}

func TestDecodeReader_SyntaxErrors(t *testing.T) {
	prev := gjson.CurrentDriver()
	gjson.UseDefaultDriver()
	t.Cleanup(func() { gjson.SetDriver(prev) })
	for _, in := range []string{`{"a":}`, `[1,]`, `[1`, `{"a" 1}`} {
		_, err := gjson.DecodeReader(strings.NewReader(in))
		ge, ok := gjson.AsGrammarError(err)
		require.True(t, ok, "%q gave %v", in, err)
		assert.Contains(t, []string{gjson.CodeParseError, gjson.CodeOutOfData}, ge.Code, "%q", in)
	}
}

func TestDecodeReader_SyntaxErrorPaths(t *testing.T) {
	prev := gjson.CurrentDriver()
	gjson.UseDefaultDriver()
	t.Cleanup(func() { gjson.SetDriver(prev) })
	cases := map[string]string{
		`{"a":}`:           "$.a",
		`[1,]`:             "$[1]",
		`{"a":{"b":[0,}}}`: "$.a.b[1]",
	}
	for in, want := range cases {
		_, err := gjson.DecodeReader(strings.NewReader(in))
		ge, ok := gjson.AsGrammarError(err)
		require.True(t, ok, "%q gave %v", in, err)
		assert.Equal(t, want, ge.Path, "%q", in)
	}
}

// scriptedSource replays fixed tokens, then reports io.EOF.
type scriptedSource struct{ toks []gjson.Token }

func (s *scriptedSource) NextToken() (gjson.Token, error) {
	if len(s.toks) == 0 {
		return gjson.Token{}, io.EOF
	}
	tok := s.toks[0]
	s.toks = s.toks[1:]
	return tok, nil
}

func (s *scriptedSource) Location() int64 { return -1 }

func TestDecodeTokens_ErrorPaths(t *testing.T) {
	begin := gjson.Token{Kind: gjson.TokenBeginObject}
	key := func(k string) gjson.Token { return gjson.Token{Kind: gjson.TokenKey, String: k} }
	arr := gjson.Token{Kind: gjson.TokenBeginArray}
	num := func(n string) gjson.Token { return gjson.Token{Kind: gjson.TokenNumber, Number: n} }

	// truncated inside $.items[1]
	_, err := gjson.DecodeTokens(&scriptedSource{toks: []gjson.Token{begin, key("items"), arr, num("1"), begin}})
	ge, ok := gjson.AsGrammarError(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, gjson.CodeOutOfData, ge.Code)
	assert.Equal(t, "$.items[1]", ge.Path)

	// a value where a key belongs
	_, err = gjson.DecodeTokens(&scriptedSource{toks: []gjson.Token{begin, key("a"), begin, num("2")}})
	ge, ok = gjson.AsGrammarError(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, gjson.CodeParseError, ge.Code)
	assert.Equal(t, "$.a", ge.Path)

	// oversized exponent from a driver
	_, err = gjson.DecodeTokens(&scriptedSource{toks: []gjson.Token{arr, num("1e99999")}})
	ge, ok = gjson.AsGrammarError(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, gjson.CodeBadNumber, ge.Code)
	assert.Equal(t, "$[0]", ge.Path)
}

func TestDecodeReader_MaxExponent(t *testing.T) {
	_, err := gjson.DecodeReader(strings.NewReader(`[1e1025]`))
	ge, ok := gjson.AsGrammarError(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, gjson.CodeBadNumber, ge.Code)

	v, err := gjson.DecodeReader(strings.NewReader(`[1e3]`), gjson.DecodeOpt{MaxExponent: 3})
	require.NoError(t, err)
	assert.Equal(t, `[1000]`, gjson.ToFlatString(v))

	_, err = gjson.DecodeReader(strings.NewReader(`[1e4]`), gjson.DecodeOpt{MaxExponent: 3})
	_, ok = gjson.AsGrammarError(err)
	assert.True(t, ok, "got %v", err)

	v, err = gjson.DecodeReader(strings.NewReader(`2e1100`), gjson.DecodeOpt{MaxExponent: -1})
	require.NoError(t, err)
	assert.Len(t, gjson.ToFlatString(v), 1101)
}

type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestDecodeReader_IOErrorIsNotGrammar(t *testing.T) {
	_, err := gjson.DecodeReader(io.MultiReader(strings.NewReader(`[1,`), brokenReader{}))
	require.Error(t, err)
	_, ok := gjson.AsGrammarError(err)
	assert.False(t, ok, "got %v", err)
}

func TestFindDuplicateKeys(t *testing.T) {
	in := `{"a":1,"a":2,"b":{"c":1,"c":2},"d":[{"e":1,"e":2}]}`
	issues, err := gjson.FindDuplicateKeys(strings.NewReader(in), -1)
	require.NoError(t, err)
	var paths []string
	for _, ge := range issues {
		assert.Equal(t, gjson.CodeDuplicateKey, ge.Code)
		paths = append(paths, ge.Path)
	}
	assert.Equal(t, []string{"$.a", "$.b.c", "$.d[0].e"}, paths)

	issues, err = gjson.FindDuplicateKeys(strings.NewReader(in), 1)
	require.NoError(t, err)
	assert.Len(t, issues, 1)

	issues, err = gjson.FindDuplicateKeys(strings.NewReader(in), 0)
	require.NoError(t, err)
	assert.Empty(t, issues)
}


func TestJSONIterDriver_Errors(t *testing.T) {
	withDriver(t, drvjsoniter.Driver())

	v, err := gjson.DecodeReader(strings.NewReader(""))
	require.NoError(t, err)
	assert.Nil(t, v)

	for _, in := range []string{`{"a":}`, `[1,]`, `[1`, `{"a" 1}`, `x`} {
		_, err := gjson.DecodeReader(strings.NewReader(in))
		ge, ok := gjson.AsGrammarError(err)
		require.True(t, ok, "%q gave %v", in, err)
		assert.Contains(t, []string{gjson.CodeParseError, gjson.CodeOutOfData}, ge.Code, "%q", in)
	}
}
