package gjson_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gjson "github.com/mgavaghan/GavaghanJSON"
)

func TestWriter_PrettyLayout(t *testing.T) {
	o := gjson.NewObject().
		Put("a", gjson.NewArray(gjson.NewNumberFromInt(1), gjson.NewNumberFromInt(2))).
		Put("b", gjson.NewObject())
	want := "{\n   \"a\": [\n      1,\n      2\n   ],\n   \"b\": {}\n}"
	assert.Equal(t, want, gjson.ToPrettyString(o))
	assert.Equal(t, `{"a":[1,2],"b":{}}`, gjson.ToFlatString(o))
}

func TestWriter_Scalars(t *testing.T) {
	cases := []struct {
		v    gjson.Value
		want string
	}{
		{gjson.NewString("x"), `"x"`},
		{gjson.NewNumberFromInt(-7), "-7"},
		{gjson.NewNumberFromFloat(0.25), "0.25"},
		{gjson.NewBoolean(true), "true"},
		{gjson.Null{}, "null"},
		{gjson.NewArray(), "[]"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, gjson.ToPrettyString(c.v))
		assert.Equal(t, c.want, gjson.ToFlatString(c.v))
	}
}

func TestWriter_EscapesKeys(t *testing.T) {
	o := gjson.NewObject().Put("a\"b\n", gjson.Null{})
	assert.Equal(t, `{"a\"b\n":null}`, gjson.ToFlatString(o))
}

func TestWriter_RoundTrip(t *testing.T) {
	in := `{"z":1,"a":[true,false,null,"s",{"n":1.5e3}],"m":{"k":[[],{}]},"e":"tab\there"}`
	v, err := gjson.Default.ReadString(in)
	require.NoError(t, err)
	for _, pretty := range []bool{true, false} {
		var text string
		if pretty {
			text = gjson.ToPrettyString(v)
		} else {
			text = gjson.ToFlatString(v)
		}
		back, err := gjson.Default.ReadString(text)
		require.NoError(t, err)
		assert.True(t, gjson.Equal(v, back), "pretty=%v: %s", pretty, text)
		if diff := cmp.Diff(gjson.ToNative(v), gjson.ToNative(back)); diff != "" {
			t.Fatalf("native mismatch (-want +got):\n%s", diff)
		}
	}
	// key order survives
	assert.Equal(t, []string{"z", "a", "m", "e"}, v.(*gjson.Object).Keys())
}

func TestWriter_RoundTripBuiltTree(t *testing.T) {
	reg := newRegistry(t)
	person := NewPerson()
	person.Put("name", gjson.NewString("Zo\u00eb"))

	const lone = "a\xed\xa0\x80b" // U+D800 with no partner
	doc := gjson.NewObject().
		Put("dup", gjson.NewNumberFromInt(1)).
		Put("astral", gjson.NewString("\U0001F600\U00010348")).
		Put("controls", gjson.NewString("\x00\x01\x1f\t\n\x7f")).
		Put("lone", gjson.NewString(lone)).
		Put("person", person).
		Put("list", gjson.NewArray(gjson.NewBoolean(false), gjson.Null{}, gjson.NewNumberFromFloat(-0.125))).
		Put("dup", gjson.NewNumberFromInt(2))
	require.Equal(t, []string{"dup", "astral", "controls", "lone", "person", "list"}, doc.Keys())

	f := gjson.NewFactory(gjson.WithRegistry(reg))
	for _, pretty := range []bool{true, false} {
		var text string
		if pretty {
			text = gjson.ToPrettyString(doc)
		} else {
			text = gjson.ToFlatString(doc)
		}
		assert.Contains(t, text, `\ud83d\ude00\ud800\udf48`)
		assert.Contains(t, text, `\u0000\u0001\u001f\t\n\u007f`)
		assert.Contains(t, text, `"a\ud800b"`)

		back, err := f.ReadString(text)
		require.NoError(t, err, text)
		assert.True(t, gjson.Equal(doc, back), "pretty=%v: %s", pretty, text)

		o := back.(*gjson.Object)
		assert.Equal(t, doc.Keys(), o.Keys())
		dup, _ := o.Get("dup")
		assert.Equal(t, "2", gjson.ToFlatString(dup))
		s, _ := o.Get("lone")
		assert.Equal(t, lone, s.Raw())
		p, _ := o.Get("person")
		_, ok := p.(*Person)
		assert.True(t, ok, "expected *Person, got %T", p)
	}
}

func TestWriteTo(t *testing.T) {
	var buf bytes.Buffer
	v := gjson.NewArray(gjson.NewString("a"))
	require.NoError(t, gjson.WriteTo(&buf, v, true))
	assert.Equal(t, "[\n   \"a\"\n]", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteTo_PropagatesWriterError(t *testing.T) {
	err := gjson.WriteTo(failingWriter{}, gjson.NewString("x"), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
