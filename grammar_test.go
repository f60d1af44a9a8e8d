package gjson_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gjson "github.com/mgavaghan/GavaghanJSON"
)

func mustRead(t *testing.T, f *gjson.Factory, s string) gjson.Value {
	t.Helper()
	v, err := f.ReadString(s)
	require.NoError(t, err)
	require.NotNil(t, v)
	return v
}

func requireGrammarError(t *testing.T, err error, code string) *gjson.GrammarError {
	t.Helper()
	require.Error(t, err)
	ge, ok := gjson.AsGrammarError(err)
	require.True(t, ok, "expected *GrammarError, got %T: %v", err, err)
	if code != "" {
		require.Equal(t, code, ge.Code, ge.Error())
	}
	return ge
}

func TestNumber_ExponentFolding(t *testing.T) {
	cases := map[string]string{
		"123.456E+2": "12345.6",
		"123.456E-2": "1.23456",
		"123e2":      "12300",
		"0":          "0",
		"-0.5":       "-0.5",
		"1E0":        "1",
		"10":         "10",
		"98765432109876543210.123456789": "98765432109876543210.123456789",
	}
	for in, want := range cases {
		t.Run(in, func(t *testing.T) {
			v := mustRead(t, gjson.Default, in)
			n, ok := v.(*gjson.Number)
			require.True(t, ok)
			assert.True(t, n.Decimal().Equal(decimal.RequireFromString(want)), "got %s", n)
			assert.Equal(t, want, gjson.ToFlatString(v))
		})
	}
}

func TestNumber_GrammarFailures(t *testing.T) {
	for _, in := range []string{"123.", "123E", "123E+", "-", "-a", "1.x", "1e-x"} {
		t.Run(in, func(t *testing.T) {
			_, err := gjson.Default.ReadString(in)
			requireGrammarError(t, err, "")
		})
	}
}

func TestNumber_ExponentBound(t *testing.T) {
	limit := strconv.Itoa(gjson.DefaultMaxExponent)
	over := strconv.Itoa(gjson.DefaultMaxExponent + 1)

	v := mustRead(t, gjson.Default, "1e"+limit)
	assert.Len(t, gjson.ToFlatString(v), gjson.DefaultMaxExponent+1)
	mustRead(t, gjson.Default, "1e-"+limit)

	for _, in := range []string{"1e" + over, "1E-" + over, "[0.5e+" + over + "]", "1e50000000", "1e99999999999999999999"} {
		_, err := gjson.Default.ReadString(in)
		requireGrammarError(t, err, gjson.CodeBadNumber)
	}

	_, err := gjson.NewNumberFromString("1e" + over)
	requireGrammarError(t, err, gjson.CodeBadNumber)

	f := gjson.NewFactory(gjson.WithMaxExponent(2))
	assert.Equal(t, "[100,0.01]", gjson.ToFlatString(mustRead(t, f, "[1e2,1e-2]")))
	_, err = f.ReadString(`{"n":1e3}`)
	ge := requireGrammarError(t, err, gjson.CodeBadNumber)
	assert.Equal(t, "$.n", ge.Path)

	unbounded := gjson.NewFactory(gjson.WithMaxExponent(-1))
	mustRead(t, unbounded, "1e"+over)
}

func TestNumber_StopsAtDelimiter(t *testing.T) {
	v := mustRead(t, gjson.Default, "[0,12 ,3.5e1]")
	assert.Equal(t, "[0,12,35]", gjson.ToFlatString(v))
}

func TestNewNumberFromString(t *testing.T) {
	n, err := gjson.NewNumberFromString("1.5e3")
	require.NoError(t, err)
	assert.Equal(t, "1500", n.String())

	_, err = gjson.NewNumberFromString("01")
	requireGrammarError(t, err, gjson.CodeBadNumber)
}

func TestString_Escapes(t *testing.T) {
	v := mustRead(t, gjson.Default, `"ABC\n\"DE\u123DF"`)
	s, ok := v.(*gjson.String)
	require.True(t, ok)
	assert.Equal(t, "ABC\n\"DE\u123dF", s.Value())
	assert.Equal(t, `"ABC\n\"DE\u123dF"`, gjson.ToFlatString(v))

	v = mustRead(t, gjson.Default, `"\/\\\b\f\r\t"`)
	assert.Equal(t, "/\\\b\f\r\t", v.Raw())
	assert.Equal(t, `"/\\\b\f\r\t"`, gjson.ToFlatString(v))
}

func TestString_WriteEscapesNonASCII(t *testing.T) {
	assert.Equal(t, `"caf\u00e9"`, gjson.ToFlatString(gjson.NewString("caf\u00e9")))
	assert.Equal(t, `"\u0001\u007f"`, gjson.ToFlatString(gjson.NewString("\x01\x7f")))
	assert.Equal(t, `"\ud83d\ude00"`, gjson.ToFlatString(gjson.NewString("\U0001F600")))
}

func TestString_Surrogates(t *testing.T) {
	v := mustRead(t, gjson.Default, `"\ud83d\ude00"`)
	assert.Equal(t, "\U0001F600", v.Raw())

	// an unpaired surrogate survives a round trip
	for _, in := range []string{`"\ud800x"`, `"a\udc00"`, `"\ud800\ud800"`} {
		v := mustRead(t, gjson.Default, in)
		assert.Equal(t, in, gjson.ToFlatString(v))
	}
}

func TestString_GrammarFailures(t *testing.T) {
	_, err := gjson.Default.ReadString(`"abc`)
	requireGrammarError(t, err, gjson.CodeOutOfData)

	_, err = gjson.Default.ReadString(`"\q"`)
	ge := requireGrammarError(t, err, gjson.CodeBadEscape)
	assert.Contains(t, ge.Message, "q")

	_, err = gjson.Default.ReadString(`"\u12G4"`)
	ge = requireGrammarError(t, err, gjson.CodeBadUnicode)
	assert.Contains(t, ge.Message, "12G4")
}

func TestLiterals(t *testing.T) {
	assert.Equal(t, true, mustRead(t, gjson.Default, "true").Raw())
	assert.Equal(t, false, mustRead(t, gjson.Default, " false ").Raw())
	v := mustRead(t, gjson.Default, "null")
	assert.Equal(t, gjson.KindNull, v.Kind())
	assert.Nil(t, v.Raw())

	for _, in := range []string{"tru", "fals", "nul", "nulL", "trUe"} {
		_, err := gjson.Default.ReadString(in)
		requireGrammarError(t, err, "")
	}
}

func TestContainers_Empty(t *testing.T) {
	for _, in := range []string{"{}", "[]", " { } ", "\t[\n]\r\n"} {
		v := mustRead(t, gjson.Default, in)
		switch v.Kind() {
		case gjson.KindObject:
			assert.Equal(t, 0, v.(*gjson.Object).Len())
		case gjson.KindArray:
			assert.Equal(t, 0, v.(*gjson.Array).Len())
		default:
			t.Fatalf("unexpected kind %s", v.Kind())
		}
	}
}

func TestContainers_TrailingCommaRejected(t *testing.T) {
	_, err := gjson.Default.ReadString(`{"a":1,}`)
	requireGrammarError(t, err, gjson.CodeUnexpectedChar)

	_, err = gjson.Default.ReadString(`[1,]`)
	requireGrammarError(t, err, gjson.CodeIllegalStart)
}

func TestContainers_Malformed(t *testing.T) {
	cases := map[string]string{
		`{"a" 1}`:  gjson.CodeUnexpectedChar,
		`{a:1}`:    gjson.CodeUnexpectedChar,
		`[1 2]`:    gjson.CodeUnexpectedChar,
		`{"a":1`:   gjson.CodeOutOfData,
		`[`:        gjson.CodeOutOfData,
		`{"a":}`:   gjson.CodeIllegalStart,
		`@`:        gjson.CodeIllegalStart,
		`{"a":1;}`: gjson.CodeUnexpectedChar,
	}
	for in, code := range cases {
		t.Run(in, func(t *testing.T) {
			_, err := gjson.Default.ReadString(in)
			requireGrammarError(t, err, code)
		})
	}
}

func TestErrorPath(t *testing.T) {
	_, err := gjson.Default.ReadString(`{"a":[1,{"b":tru}]}`)
	ge := requireGrammarError(t, err, gjson.CodeBadLiteral)
	assert.Equal(t, "$.a[1].b", ge.Path)
	assert.True(t, strings.HasPrefix(ge.Error(), "$.a[1].b: "), ge.Error())
}

func TestWhitespaceSet(t *testing.T) {
	v := mustRead(t, gjson.Default, "\x1c\x1d\x1e\x1f\v\f [ 1 ,\x0e2 ] ")
	assert.Equal(t, "[1,2]", gjson.ToFlatString(v))

	// a no-break space is not whitespace
	_, err := gjson.Default.ReadString("\u00a01")
	requireGrammarError(t, err, gjson.CodeIllegalStart)
}

func TestRead_EmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\t"} {
		v, err := gjson.Default.ReadString(in)
		require.NoError(t, err)
		assert.Nil(t, v)
	}
}

func TestReadFrom_SuccessiveValues(t *testing.T) {
	f := gjson.Default
	p := gjson.NewPushbackReader(strings.NewReader(`1 "two" [3] {"four":4}`), f.PushbackSize())
	var got []string
	for {
		v, err := f.ReadFrom(p)
		require.NoError(t, err)
		if v == nil {
			break
		}
		got = append(got, gjson.ToFlatString(v))
	}
	assert.Equal(t, []string{"1", `"two"`, "[3]", `{"four":4}`}, got)
}

func TestObject_DuplicateKeysOverwriteInPlace(t *testing.T) {
	v := mustRead(t, gjson.Default, `{"a":1,"b":2,"a":3}`)
	o := v.(*gjson.Object)
	assert.Equal(t, []string{"a", "b"}, o.Keys())
	assert.Equal(t, `{"a":3,"b":2}`, gjson.ToFlatString(o))
}

func TestObject_DuplicateKeysRejected(t *testing.T) {
	f := gjson.NewFactory(gjson.WithDuplicateKeys(gjson.DuplicateReject))
	_, err := f.ReadString(`{"x":{"a":1,"a":2}}`)
	ge := requireGrammarError(t, err, gjson.CodeDuplicateKey)
	assert.Equal(t, "$.x.a", ge.Path)

	mustRead(t, f, `{"a":{"a":1}}`)
}

func TestMaxDepth(t *testing.T) {
	f := gjson.NewFactory(gjson.WithMaxDepth(2))
	mustRead(t, f, `[[1],{"a":1}]`)

	_, err := f.ReadString(`[[[1]]]`)
	ge := requireGrammarError(t, err, gjson.CodeMaxDepth)
	assert.Equal(t, "$[0][0]", ge.Path)
}

func TestRecastFunc_ReplacesValue(t *testing.T) {
	// strings are swapped for fresh instances that receive the parsed content
	calls := 0
	f := gjson.NewFactory(gjson.WithRecaster(gjson.RecastFunc(func(path string, v gjson.Value) (gjson.Value, error) {
		calls++
		if v.Kind() == gjson.KindString {
			return &gjson.String{}, nil
		}
		return nil, nil
	})))
	v := mustRead(t, f, `{"k":["s",1]}`)
	assert.Equal(t, `{"k":["s",1]}`, gjson.ToFlatString(v))
	assert.Equal(t, 4, calls)
}

func TestRecast_KindMismatchFails(t *testing.T) {
	f := gjson.NewFactory(gjson.WithRecaster(gjson.RecastFunc(func(string, gjson.Value) (gjson.Value, error) {
		return gjson.NewBoolean(true), nil
	})))
	_, err := f.ReadString(`"s"`)
	var tm *gjson.TypeMismatchError
	require.ErrorAs(t, err, &tm)
	assert.Equal(t, "boolean", tm.Expected)
	assert.Equal(t, "string", tm.Actual)
}
