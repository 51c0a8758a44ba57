// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"strings"
)

// Equal reports whether a and b are equal. Numbers compare by value
// across representations. An undefined value equals another undefined
// value and nothing else. Containers that hold themselves compare
// equal when their structure matches.
func Equal(a, b Value) bool {
	return equal(a, b, nil)
}

// pair is two containers being compared.
type pair struct{ a, b Value }

// equal is Equal. Pairs of containers under comparison are in visiting;
// meeting one again means the comparison has gone round a cycle.
func equal(a, b Value, visiting map[pair]bool) bool {
	ua, ub := IsUndefined(a), IsUndefined(b)
	if ua || ub {
		return ua && ub
	}
	if isNumber(a) && isNumber(b) {
		c, _ := compareNumbers(a, b)
		return c == 0 && !isNaN(a) && !isNaN(b)
	}
	if IsNone(a) || IsNone(b) {
		return IsNone(a) && IsNone(b)
	}
	switch a := a.(type) {
	case *List:
		b, ok := b.(*List)
		if !ok {
			return false
		}
		if a == b {
			return true
		}
		if len(a.Items) != len(b.Items) {
			return false
		}
		if visiting[pair{a, b}] {
			return true
		}
		visiting = visit(visiting, a, b)
		defer delete(visiting, pair{a, b})
		for i := range a.Items {
			if !equal(a.Items[i], b.Items[i], visiting) {
				return false
			}
		}
		return true
	case *Dict:
		b, ok := b.(*Dict)
		if !ok {
			return false
		}
		if a == b {
			return true
		}
		if a.Len() != b.Len() {
			return false
		}
		if visiting[pair{a, b}] {
			return true
		}
		visiting = visit(visiting, a, b)
		defer delete(visiting, pair{a, b})
		for i, k := range a.keys {
			v, ok, _ := b.Get(k)
			if !ok || !equal(a.vals[i], v, visiting) {
				return false
			}
		}
		return true
	case *Set:
		b, ok := b.(*Set)
		if !ok {
			return false
		}
		if a.Len() != b.Len() {
			return false
		}
		for _, item := range a.items {
			if ok, _ := b.Contains(item); !ok {
				return false
			}
		}
		return true
	}
	return a == b
}

func visit(visiting map[pair]bool, a, b Value) map[pair]bool {
	if visiting == nil {
		visiting = make(map[pair]bool)
	}
	visiting[pair{a, b}] = true
	return visiting
}

func isNaN(v Value) bool {
	f, ok := v.(Float)
	return ok && f != f
}

// Identical reports whether a and b are the same object.
func Identical(a, b Value) bool {
	if IsNone(a) || IsNone(b) {
		return IsNone(a) && IsNone(b)
	}
	return a == b
}

func compareNumbers(a, b Value) (int, bool) {
	_, af := a.(Float)
	_, bf := b.(Float)
	if af || bf {
		x, y := floatOf(a), floatOf(b)
		switch {
		case x < y:
			return -1, true
		case x > y:
			return 1, true
		}
		return 0, true
	}
	if x, ok := small(a); ok {
		if y, ok := small(b); ok {
			switch {
			case x < y:
				return -1, true
			case x > y:
				return 1, true
			}
			return 0, true
		}
	}
	return bigOf(a).Cmp(bigOf(b)), true
}

// Compare orders a and b, returning -1, 0 or 1. Values of different
// kinds, None included, cannot be ordered; op names the operator for
// the error.
func Compare(op string, a, b Value) (int, error) {
	if isNumber(a) && isNumber(b) {
		c, _ := compareNumbers(a, b)
		return c, nil
	}
	switch a := a.(type) {
	case Str:
		if b, ok := b.(Str); ok {
			return strings.Compare(string(a), string(b)), nil
		}
	case Date:
		if b, ok := b.(Date); ok {
			return a.t.Compare(b.t), nil
		}
	case DateTime:
		if b, ok := b.(DateTime); ok {
			return a.t.Compare(b.t), nil
		}
	case TimeDelta:
		if b, ok := b.(TimeDelta); ok {
			return cmpInt64(a.Micros(), b.Micros()), nil
		}
	case MonthDelta:
		if b, ok := b.(MonthDelta); ok {
			return cmpInt64(int64(a.Months), int64(b.Months)), nil
		}
	case *List:
		if b, ok := b.(*List); ok {
			for i := 0; i < len(a.Items) && i < len(b.Items); i++ {
				if Equal(a.Items[i], b.Items[i]) {
					continue
				}
				return Compare(op, a.Items[i], b.Items[i])
			}
			return cmpInt64(int64(len(a.Items)), int64(len(b.Items))), nil
		}
	}
	return 0, mismatch(op, a, b)
}

func cmpInt64(x, y int64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

func ordering(op string, test func(int) bool) BinaryOp {
	return func(a, b Value) (Value, error) {
		c, err := Compare(op, a, b)
		if err != nil {
			return nil, err
		}
		if isNaN(a) || isNaN(b) {
			return False, nil
		}
		return Bool(test(c)), nil
	}
}

// Contains reports whether item is in container: a substring of a str,
// an item of a list or set, or a key of a dict.
func Contains(container, item Value) (bool, error) {
	switch c := container.(type) {
	case Str:
		s, ok := item.(Str)
		if !ok {
			return false, mismatch("in", item, container)
		}
		return strings.Contains(string(c), string(s)), nil
	case *List:
		for _, x := range c.Items {
			if Equal(x, item) {
				return true, nil
			}
		}
		return false, nil
	case *Dict:
		if IsUndefined(item) {
			return false, nil
		}
		_, ok, err := c.Get(item)
		return ok, err
	case *Set:
		if IsUndefined(item) {
			return false, nil
		}
		return c.Contains(item)
	}
	return false, mismatch("in", item, container)
}
