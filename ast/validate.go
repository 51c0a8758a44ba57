// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ast

import (
	"fmt"

	"robpike.io/ul4/value"
)

// NewCond builds an if/elif/else chain. The first block must be an
// "if", "else" may only come last, and there is at most one "else".
func NewCond(span Span, blocks ...*CondBlock) (*Cond, error) {
	if len(blocks) == 0 {
		return nil, blockErrorf(span, "empty if block")
	}
	for i, b := range blocks {
		switch b.Which {
		case "if":
			if i != 0 {
				return nil, blockErrorf(b.Span, "if inside an if/elif/else chain")
			}
		case "elif", "else":
			if i == 0 {
				return nil, blockErrorf(b.Span, "%s without if", b.Which)
			}
			if blocks[i-1].Which == "else" {
				return nil, blockErrorf(b.Span, "%s after else", b.Which)
			}
		default:
			return nil, blockErrorf(b.Span, "unknown block %q in if chain", b.Which)
		}
		if (b.Which == "else") != (b.Cond == nil) {
			return nil, blockErrorf(b.Span, "%s block with wrong condition", b.Which)
		}
	}
	return &Cond{Span: span, Blocks: blocks}, nil
}

func blockErrorf(span Span, format string, args ...interface{}) error {
	return &value.BlockError{Msg: fmt.Sprintf("%s: ", span) + fmt.Sprintf(format, args...)}
}

// Validate checks the nesting of the control statements of t:
// break and continue must be inside a loop of the same template,
// and every if chain must be well formed.
func Validate(t *Template) error {
	return validateBlock(t.Body, false)
}

func validateBlock(body []Stmt, inLoop bool) error {
	for _, s := range body {
		if err := validateStmt(s, inLoop); err != nil {
			return err
		}
	}
	return nil
}

func validateStmt(s Stmt, inLoop bool) error {
	switch s := s.(type) {
	case *Break:
		if !inLoop {
			return blockErrorf(s.Span, "break outside of loop")
		}
	case *Continue:
		if !inLoop {
			return blockErrorf(s.Span, "continue outside of loop")
		}
	case *For:
		return validateBlock(s.Body, true)
	case *While:
		return validateBlock(s.Body, true)
	case *Cond:
		if _, err := NewCond(s.Span, s.Blocks...); err != nil {
			return err
		}
		for _, b := range s.Blocks {
			if err := validateBlock(b.Body, inLoop); err != nil {
				return err
			}
		}
	case *Def:
		return Validate(s.Template)
	}
	return nil
}
