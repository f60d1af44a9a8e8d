// Package gjson provides:
//
// - An ordered, mutable JSON document model (Object, Array, String, Number, Boolean, Null)
// - A recursive-descent reader with arbitrary-precision numbers and exact escape handling
// - Pretty and flat writers
// - Two extension hooks on the reader: whitespace skipping (comments) and recast (typed objects)
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations under internal/.
// - Token drivers live under source/, the YAML bridge under yamlconv/, and the CLI under cmd/gjson.
// - Malformed documents fail with *GrammarError; usage mistakes fail with *TypeMismatchError or *ConstructionError.
//
// Typical usage:
//
//	v, err := gjson.Default.ReadString(`{"a": [1, 2.5e1]}`)
//	fmt.Println(gjson.ToPrettyString(v))
//
//	f := gjson.NewFactory(gjson.WithComments(), gjson.WithRegistry(reg))
//	v, err = f.Read(r)
package gjson
