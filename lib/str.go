// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lib

import (
	"crypto/md5"
	"encoding/hex"
	"net/url"

	"robpike.io/ul4/value"
)

var stringFuncs = []*value.Function{
	fn("xmlescape", "Return the string form of an object with XML special characters escaped.",
		sig(value.PosReq("obj")),
		func(c value.Context, args *value.BoundArguments) (value.Value, error) {
			return value.Str(value.XMLEscape(value.String(args.Value(0)))), nil
		}),
	fn("urlquote", "Return a string quoted for use in a URL query.", sig(value.PosReq("string")),
		func(c value.Context, args *value.BoundArguments) (value.Value, error) {
			s, err := args.Str(0)
			if err != nil {
				return nil, err
			}
			return value.Str(url.QueryEscape(s)), nil
		}),
	fn("urlunquote", "Undo urlquote.", sig(value.PosReq("string")),
		func(c value.Context, args *value.BoundArguments) (value.Value, error) {
			s, err := args.Str(0)
			if err != nil {
				return nil, err
			}
			u, err := url.QueryUnescape(s)
			if err != nil {
				return nil, &value.ValueError{Msg: err.Error()}
			}
			return value.Str(u), nil
		}),
	fn("md5", "Return the MD5 hash of a string in hexadecimal.", sig(value.PosReq("string")),
		func(c value.Context, args *value.BoundArguments) (value.Value, error) {
			s, err := args.Str(0)
			if err != nil {
				return nil, err
			}
			sum := md5.Sum([]byte(s))
			return value.Str(hex.EncodeToString(sum[:])), nil
		}),
}
