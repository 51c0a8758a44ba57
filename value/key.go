// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"math"
	"math/big"
)

type noneKey struct{}

type bigKey string

// Key returns the Go map key under which v is stored in a dict or set.
// Numbers that compare equal share a key, so True, 1 and 1.0 are the
// same key. Lists, dicts and sets are mutable and cannot be keys.
func Key(v Value) (interface{}, error) {
	switch v := v.(type) {
	case nil, none:
		return noneKey{}, nil
	case Bool:
		if v {
			return int64(1), nil
		}
		return int64(0), nil
	case Int:
		return int64(v), nil
	case BigInt:
		if v.IsInt64() {
			return v.Int64(), nil
		}
		return bigKey(v.Int.String()), nil
	case Float:
		f := float64(v)
		if f != math.Trunc(f) || math.IsInf(f, 0) {
			return f, nil
		}
		if f >= -(1<<63) && f < 1<<63 {
			return int64(f), nil
		}
		b, _ := big.NewFloat(f).Int(nil)
		return bigKey(b.String()), nil
	case Str:
		return string(v), nil
	case *List, *Dict, *Set:
		return nil, &UnsupportedOperationError{Op: "hash", Type: TypeName(v)}
	}
	// Everything else is either an immutable struct compared by value
	// or a pointer compared by identity.
	return v, nil
}

// IsHashable reports whether v can be a dict key or set item.
func IsHashable(v Value) bool {
	_, err := Key(v)
	return err == nil
}
