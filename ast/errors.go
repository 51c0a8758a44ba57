// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ast

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"robpike.io/ul4/value"
)

// LocationError records where in a template an error happened.
// Each call level that an error passes through adds one
// LocationError, so the chain reads like a stack trace.
type LocationError struct {
	Template string
	Source   string
	Span     Span
	Depth    int
	Err      error
}

// Line returns the 1-based line and column of the start of the span.
func (e *LocationError) Line() (line, col int) {
	start := e.Span.Start
	if start > len(e.Source) {
		start = len(e.Source)
	}
	before := e.Source[:start]
	line = strings.Count(before, "\n") + 1
	col = start - strings.LastIndexByte(before, '\n')
	return line, col
}

// Snippet returns the source text of the span, if the source is known.
func (e *LocationError) Snippet() string {
	if e.Span.Start < 0 || e.Span.Stop > len(e.Source) || e.Span.Start > e.Span.Stop {
		return ""
	}
	return e.Source[e.Span.Start:e.Span.Stop]
}

// where describes this frame alone.
func (e *LocationError) where() string {
	var b strings.Builder
	name := e.Template
	if name == "" {
		name = "?"
	}
	fmt.Fprintf(&b, "in template %s", name)
	if e.Source != "" {
		line, col := e.Line()
		fmt.Fprintf(&b, " line %d col %d", line, col)
		if s := e.Snippet(); s != "" {
			fmt.Fprintf(&b, ": %s", strings.ReplaceAll(s, "\n", `\n`))
		}
	} else {
		fmt.Fprintf(&b, " offset %s", e.Span)
	}
	return b.String()
}

// Error lists the frames outermost first, then the innermost cause.
func (e *LocationError) Error() string {
	var lines []string
	var err error = e
	for {
		loc, ok := err.(*LocationError)
		if !ok {
			break
		}
		lines = append(lines, loc.where())
		err = loc.Err
	}
	if err != nil {
		lines = append(lines, err.Error())
	}
	return strings.Join(lines, "\n")
}

func (e *LocationError) Unwrap() error { return e.Err }

// Cause makes LocationError work with errors.Cause.
func (e *LocationError) Cause() error { return e.Err }

// Frames returns the location frames of err, innermost first.
func Frames(err error) []*LocationError {
	var frames []*LocationError
	for err != nil {
		var loc *LocationError
		if !errors.As(err, &loc) {
			break
		}
		frames = append(frames, loc)
		err = loc.Err
	}
	for i, j := 0, len(frames)-1; i < j; i, j = i+1, j-1 {
		frames[i], frames[j] = frames[j], frames[i]
	}
	return frames
}

// locate attaches the location of n to err unless err already has
// a location at the current call depth.
func locate(c value.Context, n Node, err error) error {
	if err == nil {
		return nil
	}
	var loc *LocationError
	if errors.As(err, &loc) && loc.Depth <= c.Depth() {
		return err
	}
	f := c.Frame()
	return &LocationError{
		Template: f.Name,
		Source:   f.Source,
		Span:     n.Pos(),
		Depth:    c.Depth(),
		Err:      err,
	}
}
