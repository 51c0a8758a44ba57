// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lib

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"gopkg.in/yaml.v3"

	"robpike.io/ul4/tree"
	"robpike.io/ul4/value"
)

var jsonFuncs = []*value.Function{
	fn("asjson", "Return the JSON representation of an object.", sig(value.PosReq("obj")),
		func(c value.Context, args *value.BoundArguments) (value.Value, error) {
			var b strings.Builder
			if err := asJSON(&b, args.Value(0), nil); err != nil {
				return nil, err
			}
			return value.Str(b.String()), nil
		}),
	fn("fromjson", "Decode a JSON string. Object keys keep their order.", sig(value.PosReq("string")),
		func(c value.Context, args *value.BoundArguments) (value.Value, error) {
			s, err := args.Str(0)
			if err != nil {
				return nil, err
			}
			var doc yaml.Node
			if err := yaml.Unmarshal([]byte(s), &doc); err != nil {
				return nil, &value.ValueError{Msg: "fromjson(): " + err.Error()}
			}
			if len(doc.Content) == 0 {
				return nil, &value.ValueError{Msg: "fromjson(): empty document"}
			}
			return tree.ValueOf(doc.Content[0])
		}),
}

// asJSON writes v as JSON. Dates, colors and time spans, which JSON
// lacks, are written as JavaScript constructor calls.
// Containers already being written form a cycle, which is an error.
func asJSON(b *strings.Builder, v value.Value, visiting []value.Value) error {
	for _, x := range visiting {
		if x == v {
			return &value.ValueError{Msg: "asjson(): circular reference"}
		}
	}
	switch v := v.(type) {
	case value.Bool:
		fmt.Fprint(b, bool(v))
	case value.Int, value.BigInt:
		b.WriteString(value.Repr(v))
	case value.Float:
		if math.IsInf(float64(v), 0) || math.IsNaN(float64(v)) {
			return &value.ValueError{Msg: "asjson(): " + value.Repr(v) + " is not a JSON number"}
		}
		b.WriteString(value.Repr(v))
	case value.Str:
		enc, err := json.Marshal(string(v))
		if err != nil {
			return err
		}
		b.Write(enc)
	case value.Date:
		t := v.Time()
		fmt.Fprintf(b, "new Date(%d, %d, %d)", t.Year(), int(t.Month())-1, t.Day())
	case value.DateTime:
		t := v.Time()
		fmt.Fprintf(b, "new Date(%d, %d, %d, %d, %d, %d, %d)", t.Year(), int(t.Month())-1, t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond()/1e6)
	case value.Color:
		fmt.Fprintf(b, "ul4.Color.create(%d, %d, %d, %d)", v.R, v.G, v.B, v.A)
	case value.TimeDelta:
		fmt.Fprintf(b, "ul4.TimeDelta.create(%d, %d, %d)", v.Days, v.Seconds, v.Microseconds)
	case value.MonthDelta:
		fmt.Fprintf(b, "ul4.MonthDelta.create(%d)", v.Months)
	case *value.List:
		return jsonSeq(b, "[", "]", v.Items, append(visiting, v))
	case *value.Set:
		return jsonSeq(b, "ul4._makeset(", ")", v.Items(), append(visiting, v))
	case *value.Dict:
		b.WriteString("{")
		var err error
		first := true
		v.Each(func(k, x value.Value) bool {
			if !first {
				b.WriteString(", ")
			}
			first = false
			if _, ok := k.(value.Str); !ok {
				k = value.Str(value.String(k))
			}
			if err = asJSON(b, k, nil); err != nil {
				return false
			}
			b.WriteString(": ")
			err = asJSON(b, x, append(visiting, v))
			return err == nil
		})
		if err != nil {
			return err
		}
		b.WriteString("}")
	default:
		if value.IsNone(v) || value.IsUndefined(v) {
			b.WriteString("null")
			return nil
		}
		return &value.ArgumentTypeMismatchError{Op: "asjson()", Types: []string{value.TypeName(v)}}
	}
	return nil
}

func jsonSeq(b *strings.Builder, open, close string, items []value.Value, visiting []value.Value) error {
	b.WriteString(open)
	for i, item := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		if err := asJSON(b, item, visiting); err != nil {
			return err
		}
	}
	b.WriteString(close)
	return nil
}
