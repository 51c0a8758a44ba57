// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"robpike.io/ul4/value"
)

// Tags for the values YAML has no type for.
const (
	tagUL4        = "!ul4" // A UL4 literal, as accepted by ParseLiteral.
	tagDate       = "!date"
	tagDateTime   = "!datetime"
	tagColor      = "!color"
	tagTimeDelta  = "!timedelta"
	tagMonthDelta = "!monthdelta"
	tagSet        = "!set"
)

// ValueOf converts a YAML node to a value. Mappings become dicts
// that keep the order of their keys, sequences become lists, and the
// tags above select the other types.
func ValueOf(n *yaml.Node) (value.Value, error) {
	v, err := valueOf(n)
	if err != nil {
		return nil, errors.Wrapf(err, "line %d", n.Line)
	}
	return v, nil
}

func valueOf(n *yaml.Node) (value.Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return value.None, nil
		}
		return ValueOf(n.Content[0])
	case yaml.AliasNode:
		return ValueOf(n.Alias)
	case yaml.ScalarNode:
		return scalarOf(n)
	case yaml.SequenceNode:
		items := make([]value.Value, len(n.Content))
		for i, c := range n.Content {
			v, err := ValueOf(c)
			if err != nil {
				return nil, err
			}
			items[i] = v
		}
		switch n.Tag {
		case tagSet:
			s := value.NewSet()
			for _, item := range items {
				if err := s.Add(item); err != nil {
					return nil, err
				}
			}
			return s, nil
		case tagTimeDelta:
			return value.Call(nil, value.TimeDeltaType, items, nil)
		}
		return value.NewList(items...), nil
	case yaml.MappingNode:
		d := value.NewDict()
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, err := ValueOf(n.Content[i])
			if err != nil {
				return nil, err
			}
			v, err := ValueOf(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			if err := d.Set(k, v); err != nil {
				return nil, err
			}
		}
		return d, nil
	}
	return nil, errors.Errorf("unexpected YAML node kind %d", n.Kind)
}

func scalarOf(n *yaml.Node) (value.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return value.None, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return value.Bool(b), nil
	case "!!int":
		return value.ParseInt(strings.ReplaceAll(n.Value, "_", ""), 0)
	case "!!float":
		switch strings.ToLower(n.Value) {
		case ".inf", "+.inf":
			return value.Float(math.Inf(1)), nil
		case "-.inf":
			return value.Float(math.Inf(-1)), nil
		case ".nan":
			return value.Float(math.NaN()), nil
		}
		return value.ParseFloat(n.Value)
	case "!!timestamp":
		var t time.Time
		if err := n.Decode(&t); err != nil {
			return nil, err
		}
		if len(n.Value) == len("2006-01-02") {
			return value.DateOf(t), nil
		}
		return value.DateTimeOf(t), nil
	case tagUL4:
		return ParseLiteral(n.Value)
	case tagDate, tagDateTime:
		return ParseLiteral("@(" + n.Value + ")")
	case tagColor:
		return ParseLiteral(n.Value)
	case tagMonthDelta:
		m, err := strconv.Atoi(n.Value)
		if err != nil {
			return nil, errors.Wrap(err, "monthdelta")
		}
		return value.MonthDelta{Months: m}, nil
	}
	return value.Str(n.Value), nil
}

// NodeOf converts a value to a YAML node that ValueOf turns back into
// an equal value. Only constants and containers of constants can be
// converted.
func NodeOf(v value.Value) (*yaml.Node, error) {
	return nodeOf(v, nil)
}

func scalar(tag, s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: s}
}

func nodeOf(v value.Value, visiting []value.Value) (*yaml.Node, error) {
	for _, x := range visiting {
		if x == v {
			return nil, &value.ValueError{Msg: "cannot encode a value that contains itself"}
		}
	}
	switch v := v.(type) {
	case value.Bool:
		return scalar("!!bool", strconv.FormatBool(bool(v))), nil
	case value.Int, value.BigInt:
		return scalar("!!int", value.Repr(v)), nil
	case value.Float:
		f := float64(v)
		switch {
		case math.IsNaN(f):
			return scalar("!!float", ".nan"), nil
		case math.IsInf(f, 1):
			return scalar("!!float", ".inf"), nil
		case math.IsInf(f, -1):
			return scalar("!!float", "-.inf"), nil
		}
		return scalar("!!float", value.Repr(v)), nil
	case value.Str:
		return scalar("!!str", string(v)), nil
	case value.Date:
		return scalar(tagDate, v.String()), nil
	case value.DateTime:
		return scalar(tagDateTime, v.ISO()), nil
	case value.Color:
		return scalar(tagColor, value.Repr(v)), nil
	case value.MonthDelta:
		return scalar(tagMonthDelta, strconv.Itoa(v.Months)), nil
	case value.TimeDelta:
		return &yaml.Node{Kind: yaml.SequenceNode, Tag: tagTimeDelta, Style: yaml.FlowStyle, Content: []*yaml.Node{
			scalar("!!int", strconv.Itoa(v.Days)),
			scalar("!!int", strconv.Itoa(v.Seconds)),
			scalar("!!int", strconv.Itoa(v.Microseconds)),
		}}, nil
	case *value.List:
		return seqNode("!!seq", v.Items, append(visiting, v))
	case *value.Set:
		return seqNode(tagSet, v.Items(), append(visiting, v))
	case *value.Dict:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range v.Keys() {
			kn, err := nodeOf(k, nil)
			if err != nil {
				return nil, err
			}
			x, _, _ := v.Get(k)
			xn, err := nodeOf(x, append(visiting, v))
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, kn, xn)
		}
		return n, nil
	}
	if value.IsNone(v) {
		return scalar("!!null", "null"), nil
	}
	return nil, &value.UnsupportedOperationError{Op: "encode", Type: value.TypeName(v)}
}

func seqNode(tag string, items []value.Value, visiting []value.Value) (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode, Tag: tag}
	for _, item := range items {
		c, err := nodeOf(item, visiting)
		if err != nil {
			return nil, err
		}
		n.Content = append(n.Content, c)
	}
	return n, nil
}

// Vars decodes a YAML mapping of variable names to values, keeping
// the order of the names.
func Vars(n *yaml.Node) ([]value.Keyword, error) {
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil, nil
		}
		n = n.Content[0]
	}
	if n.Kind != yaml.MappingNode {
		return nil, errors.Errorf("line %d: variables must be a mapping", n.Line)
	}
	var vars []value.Keyword
	for i := 0; i+1 < len(n.Content); i += 2 {
		v, err := ValueOf(n.Content[i+1])
		if err != nil {
			return nil, errors.Wrapf(err, "variable %s", n.Content[i].Value)
		}
		vars = append(vars, value.Keyword{Name: n.Content[i].Value, Value: v})
	}
	return vars, nil
}
