// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

// Types returns the builtin types that can be called as constructors.
func Types() []Type {
	return []Type{
		BoolType,
		IntType,
		FloatType,
		StrType,
		ListType,
		DictType,
		SetType,
		DateType,
		DateTimeType,
		ColorType,
		TimeDeltaType,
		MonthDeltaType,
	}
}
