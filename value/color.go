// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"fmt"
	"math"
)

// Color is an RGB color with an alpha channel, 0-255 each.
type Color struct {
	R, G, B, A uint8
}

func (c Color) Type() Type { return ColorType }

func (c Color) String() string {
	if c.A == 255 {
		if short(c.R) && short(c.G) && short(c.B) {
			return fmt.Sprintf("#%x%x%x", c.R>>4, c.G>>4, c.B>>4)
		}
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", c.R, c.G, c.B, formatFloat(float64(c.A)/255))
}

// short reports whether both hex digits of x are equal.
func short(x uint8) bool {
	return x>>4 == x&0xf
}

// HLS returns the hue, luminance and saturation of c, each in [0, 1].
func (c Color) HLS() (h, l, s float64) {
	r, g, b := float64(c.R)/255, float64(c.G)/255, float64(c.B)/255
	maxc := math.Max(r, math.Max(g, b))
	minc := math.Min(r, math.Min(g, b))
	l = (minc + maxc) / 2
	if minc == maxc {
		return 0, l, 0
	}
	if l <= 0.5 {
		s = (maxc - minc) / (maxc + minc)
	} else {
		s = (maxc - minc) / (2 - maxc - minc)
	}
	return hue(r, g, b, maxc, minc), l, s
}

// HSV returns the hue, saturation and value of c, each in [0, 1].
func (c Color) HSV() (h, s, v float64) {
	r, g, b := float64(c.R)/255, float64(c.G)/255, float64(c.B)/255
	maxc := math.Max(r, math.Max(g, b))
	minc := math.Min(r, math.Min(g, b))
	v = maxc
	if minc == maxc {
		return 0, 0, v
	}
	return hue(r, g, b, maxc, minc), (maxc - minc) / maxc, v
}

func hue(r, g, b, maxc, minc float64) float64 {
	rc := (maxc - r) / (maxc - minc)
	gc := (maxc - g) / (maxc - minc)
	bc := (maxc - b) / (maxc - minc)
	var h float64
	switch {
	case r == maxc:
		h = bc - gc
	case g == maxc:
		h = 2 + rc - bc
	default:
		h = 4 + gc - rc
	}
	h = math.Mod(h/6, 1)
	if h < 0 {
		h++
	}
	return h
}

// ColorFromHLS returns the color with the given hue, luminance,
// saturation and alpha, each in [0, 1].
func ColorFromHLS(h, l, s, a float64) Color {
	if s == 0 {
		return colorOf(l, l, l, a)
	}
	var m2 float64
	if l <= 0.5 {
		m2 = l * (1 + s)
	} else {
		m2 = l + s - l*s
	}
	m1 := 2*l - m2
	return colorOf(hlsValue(m1, m2, h+1.0/3), hlsValue(m1, m2, h), hlsValue(m1, m2, h-1.0/3), a)
}

func hlsValue(m1, m2, h float64) float64 {
	h = math.Mod(h, 1)
	if h < 0 {
		h++
	}
	switch {
	case h < 1.0/6:
		return m1 + (m2-m1)*h*6
	case h < 0.5:
		return m2
	case h < 2.0/3:
		return m1 + (m2-m1)*(2.0/3-h)*6
	}
	return m1
}

// colorOf converts channels in [0, 1] to a Color.
func colorOf(r, g, b, a float64) Color {
	return Color{channel(r), channel(g), channel(b), channel(a)}
}

func channel(x float64) uint8 {
	return clampByte(int(math.Round(x * 255)))
}

func clampByte(x int) uint8 {
	switch {
	case x < 0:
		return 0
	case x > 255:
		return 255
	}
	return uint8(x)
}

type colorType struct {
	baseType
	constructor
}

var colorT = &colorType{baseType: baseType{name: "color", doc: "An RGB color with alpha channel"}}

var ColorType Type = colorT

func init() {
	colorT.constructor = constructor{
		sig: MustSignature(Opt("r", Int(0)), Opt("g", Int(0)), Opt("b", Int(0)), Opt("a", Int(255))),
		fn: func(c Context, args *BoundArguments) (Value, error) {
			var ch [4]uint8
			for i := range ch {
				x, err := args.Int(i)
				if err != nil {
					return nil, err
				}
				ch[i] = clampByte(x)
			}
			return Color{ch[0], ch[1], ch[2], ch[3]}, nil
		},
	}
	colorT.methods = methods(
		&Method{Name: "r", Sig: MustSignature(), Fn: colorChannel},
		&Method{Name: "g", Sig: MustSignature(), Fn: colorChannel},
		&Method{Name: "b", Sig: MustSignature(), Fn: colorChannel},
		&Method{Name: "a", Sig: MustSignature(), Fn: colorChannel},
		&Method{Name: "lum", Sig: MustSignature(), Fn: colorModel},
		&Method{Name: "hls", Sig: MustSignature(), Fn: colorModel},
		&Method{Name: "hlsa", Sig: MustSignature(), Fn: colorModel},
		&Method{Name: "hsv", Sig: MustSignature(), Fn: colorModel},
		&Method{Name: "hsva", Sig: MustSignature(), Fn: colorModel},
		&Method{Name: "witha", Sig: MustSignature(Req("a")), Fn: colorWith},
		&Method{Name: "withlum", Sig: MustSignature(Req("lum")), Fn: colorWith},
	)
}

func (t *colorType) InstanceCheck(v Value) bool {
	_, ok := v.(Color)
	return ok
}

func (t *colorType) Str(v Value) string { return v.(Color).String() }

func (t *colorType) Repr(f *Formatter, v Value) {
	c := v.(Color)
	switch {
	case short(c.R) && short(c.G) && short(c.B) && short(c.A):
		fmt.Fprintf(f, "#%x%x%x", c.R>>4, c.G>>4, c.B>>4)
		if c.A != 255 {
			fmt.Fprintf(f, "%x", c.A>>4)
		}
	default:
		fmt.Fprintf(f, "#%02x%02x%02x", c.R, c.G, c.B)
		if c.A != 255 {
			fmt.Fprintf(f, "%02x", c.A)
		}
	}
}

func colorChannel(c Context, self Value, args *BoundArguments) (Value, error) {
	col := self.(Color)
	switch args.Callable() {
	case "r":
		return Int(col.R), nil
	case "g":
		return Int(col.G), nil
	case "b":
		return Int(col.B), nil
	}
	return Int(col.A), nil
}

func floats(xs ...float64) *List {
	items := make([]Value, len(xs))
	for i, x := range xs {
		items[i] = Float(x)
	}
	return NewList(items...)
}

func colorModel(c Context, self Value, args *BoundArguments) (Value, error) {
	col := self.(Color)
	a := float64(col.A) / 255
	switch args.Callable() {
	case "lum":
		_, l, _ := col.HLS()
		return Float(l), nil
	case "hls":
		h, l, s := col.HLS()
		return floats(h, l, s), nil
	case "hlsa":
		h, l, s := col.HLS()
		return floats(h, l, s, a), nil
	case "hsv":
		h, s, v := col.HSV()
		return floats(h, s, v), nil
	}
	h, s, v := col.HSV()
	return floats(h, s, v, a), nil
}

func colorWith(c Context, self Value, args *BoundArguments) (Value, error) {
	col := self.(Color)
	if args.Callable() == "witha" {
		a, err := args.Int(0)
		if err != nil {
			return nil, err
		}
		col.A = clampByte(a)
		return col, nil
	}
	lum, err := args.Float(0)
	if err != nil {
		return nil, err
	}
	h, _, s := col.HLS()
	return ColorFromHLS(h, lum, s, float64(col.A)/255), nil
}
