// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec

import (
	"fmt"
	"strings"

	"robpike.io/ul4/value"
)

// StackTrace logs the execution stack, innermost last, with the local
// variables of each frame. The stack itself is left alone.
func (c *Context) StackTrace() {
	const max = 25
	log := c.config.Logger()
	frames := c.Stack
	if len(frames) > max {
		log.Warnf("stack truncated: %d calls total; showing innermost", len(frames))
		frames = frames[len(frames)-max:]
	}
	for _, f := range frames {
		log.Warnf("\t•> %s", f.Name)
		for _, name := range f.Scope.Names() {
			v, _ := f.Scope.Local(name)
			log.Warnf("\t\t%s = %s", name, short(value.Repr(v)))
		}
	}
}

// short returns its argument, truncating if it's too long.
func short(s string) string {
	if len(s) > 50 {
		s = s[:50] + "..."
	}
	return s
}

// TraceIndent returns an indentation marker showing the depth of the stack.
func (c *Context) TraceIndent() string {
	return strings.Repeat("| ", c.Depth())
}

func (c *Context) trace(format string, args ...interface{}) {
	c.config.Logger().Debugf("[trace] %s%s", c.TraceIndent(), fmt.Sprintf(format, args...))
}
