// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"robpike.io/ul4/config"
)

// Context is the execution context for evaluation.
// The only implementation is ../exec/Context, but the interface
// is defined separately, here, because the value and ast packages
// need it and the import cycle that would otherwise result.
//
// A Context belongs to one evaluation and must not be shared
// between goroutines.
type Context interface {
	// Config returns the configuration state for evaluation.
	Config() *config.Config

	// Lookup returns the value bound to name in the scope chain of the
	// current frame, falling back to the builtin catalog.
	Lookup(name string) (Value, bool)

	// Builtin returns the builtin called name.
	Builtin(name string) (Value, bool)

	// Assign binds name to v in the scope of the current frame.
	Assign(name string, v Value)

	// Frame returns the innermost call frame. There is always one.
	Frame() *Frame

	// Push enters a new call frame. It fails with a RuntimeExceededError
	// if the stack would grow past the configured maximum depth.
	Push(f *Frame) error

	// Pop leaves the innermost call frame.
	Pop()

	// Depth returns the number of frames above the base frame.
	Depth() int

	// Write writes s to the output of the current frame.
	Write(s string) error

	// Step counts one node visit and enforces the step and time budgets.
	Step() error

	// Steps returns the number of node visits so far.
	Steps() uint64
}
