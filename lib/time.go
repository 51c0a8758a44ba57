// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lib

import (
	"math"
	"time"

	"robpike.io/ul4/value"
)

// clock is the time source, replaced in tests.
var clock = time.Now

var timeFuncs = []*value.Function{
	fn("now", "Return the current local date and time.", sig(),
		func(c value.Context, args *value.BoundArguments) (value.Value, error) {
			return value.DateTimeOf(clock()), nil
		}),
	fn("utcnow", "Return the current date and time in UTC.", sig(),
		func(c value.Context, args *value.BoundArguments) (value.Value, error) {
			return value.DateTimeOf(clock().UTC()), nil
		}),
	fn("today", "Return the current local date.", sig(),
		func(c value.Context, args *value.BoundArguments) (value.Value, error) {
			return value.DateOf(clock()), nil
		}),
	fn("rgb", "Return a color from red, green, blue and alpha channels between 0 and 1.",
		sig(req("r"), req("g"), req("b"), opt("a", value.Float(1))),
		func(c value.Context, args *value.BoundArguments) (value.Value, error) {
			var ch [4]uint8
			for i := range ch {
				x, err := args.Float(i)
				if err != nil {
					return nil, err
				}
				ch[i] = uint8(clamp(x)*255 + 0.5)
			}
			return value.Color{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
		}),
	fn("mix", "Mix colors. A number among the arguments sets the weight of the colors after it.",
		sig(value.Star("values")), mix),
}

func mix(c value.Context, args *value.BoundArguments) (value.Value, error) {
	var sum [4]float64
	weight, total := 1.0, 0.0
	for _, v := range args.Value(0).(*value.List).Items {
		if col, ok := v.(value.Color); ok {
			for i, ch := range []uint8{col.R, col.G, col.B, col.A} {
				sum[i] += weight * float64(ch)
			}
			total += weight
			continue
		}
		w, ok := value.AsFloat(v)
		if !ok {
			return nil, &value.ArgumentTypeError{Callable: "mix", Param: "values", Want: "color or number", Got: value.TypeName(v)}
		}
		weight = w
	}
	if total == 0 {
		return nil, &value.ValueError{Msg: "mix() needs a color with a positive weight"}
	}
	var ch [4]uint8
	for i := range ch {
		ch[i] = uint8(math.Floor(sum[i]/total + 0.5))
	}
	return value.Color{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}

func clamp(x float64) float64 {
	switch {
	case x < 0:
		return 0
	case x > 1:
		return 1
	}
	return x
}
