// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lib

import (
	"sort"

	"robpike.io/ul4/value"
)

var iterFuncs = []*value.Function{
	fn("all", "Report whether all items of an iterable are true.", sig(value.PosReq("iterable")),
		func(c value.Context, args *value.BoundArguments) (value.Value, error) {
			return truthOf(c, args.Value(0), false)
		}),
	fn("any", "Report whether any item of an iterable is true.", sig(value.PosReq("iterable")),
		func(c value.Context, args *value.BoundArguments) (value.Value, error) {
			return truthOf(c, args.Value(0), true)
		}),
	fn("range", "Return an iterator over an arithmetic progression of integers: range(stop) or range(start, stop[, step]).",
		sig(value.Star("args")), rangeOf),
	fn("enumerate", "Return an iterator over [index, item] pairs.",
		sig(req("iterable"), opt("start", value.Int(0))),
		func(c value.Context, args *value.BoundArguments) (value.Value, error) {
			return enumerate(args, false)
		}),
	fn("enumfl", "Return an iterator over [index, isfirst, islast, item] lists.",
		sig(req("iterable"), opt("start", value.Int(0))),
		func(c value.Context, args *value.BoundArguments) (value.Value, error) {
			return enumerate(args, true)
		}),
	fn("isfirst", "Return an iterator over [isfirst, item] lists.", sig(value.PosReq("iterable")),
		func(c value.Context, args *value.BoundArguments) (value.Value, error) {
			return flagged(args.Value(0), true, false)
		}),
	fn("islast", "Return an iterator over [islast, item] lists.", sig(value.PosReq("iterable")),
		func(c value.Context, args *value.BoundArguments) (value.Value, error) {
			return flagged(args.Value(0), false, true)
		}),
	fn("isfirstlast", "Return an iterator over [isfirst, islast, item] lists.", sig(value.PosReq("iterable")),
		func(c value.Context, args *value.BoundArguments) (value.Value, error) {
			return flagged(args.Value(0), true, true)
		}),
	fn("slice", "Return an iterator over part of an iterable: slice(iterable, stop) or slice(iterable, start, stop[, step]).",
		sig(value.PosReq("iterable"), value.Star("args")), slice),
	fn("first", "Return the first item of an iterable, or default if it is empty.",
		sig(value.PosReq("iterable"), value.PosOpt("default", value.None)),
		func(c value.Context, args *value.BoundArguments) (value.Value, error) {
			it, err := value.Iter(args.Value(0))
			if err != nil {
				return nil, err
			}
			item, ok, err := it.Next()
			if err != nil || !ok {
				return args.Value(1), err
			}
			return item, nil
		}),
	fn("last", "Return the last item of an iterable, or default if it is empty.",
		sig(value.PosReq("iterable"), value.PosOpt("default", value.None)),
		func(c value.Context, args *value.BoundArguments) (value.Value, error) {
			items, err := value.Items(c, args.Value(0))
			if err != nil {
				return nil, err
			}
			if len(items) == 0 {
				return args.Value(1), nil
			}
			return items[len(items)-1], nil
		}),
	fn("zip", "Return an iterator over lists of the items of several iterables in parallel.",
		sig(value.Star("iterables")), zip),
	fn("sorted", "Return a sorted list of the items of an iterable.",
		sig(value.PosReq("iterable"), value.KwOpt("key", value.None), value.KwOpt("reverse", value.False)),
		sorted),
	fn("reversed", "Return a list of the items of a sequence in reverse order.", sig(value.PosReq("sequence")),
		func(c value.Context, args *value.BoundArguments) (value.Value, error) {
			items, err := value.Items(c, args.Value(0))
			if err != nil {
				return nil, err
			}
			for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
				items[i], items[j] = items[j], items[i]
			}
			return value.NewList(items...), nil
		}),
}

// truthOf implements any (stop true) and all (stop false).
func truthOf(c value.Context, v value.Value, stop bool) (value.Value, error) {
	it, err := value.Iter(v)
	if err != nil {
		return nil, err
	}
	for {
		item, ok, err := it.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return value.Bool(!stop), nil
		}
		if value.Truth(item) == stop {
			return value.Bool(stop), nil
		}
	}
}

func rangeOf(c value.Context, args *value.BoundArguments) (value.Value, error) {
	bounds := args.Value(0).(*value.List).Items
	start, stop, step := 0, 0, 1
	ints := make([]int, len(bounds))
	for i, b := range bounds {
		n, ok := value.AsInt(b)
		if !ok {
			return nil, &value.ArgumentTypeError{Callable: "range", Param: "args", Want: "int", Got: value.TypeName(b)}
		}
		ints[i] = n
	}
	switch len(ints) {
	case 1:
		stop = ints[0]
	case 2:
		start, stop = ints[0], ints[1]
	case 3:
		start, stop, step = ints[0], ints[1], ints[2]
	case 0:
		return nil, &value.MissingArgumentError{Callable: "range", Param: "stop", Position: 0}
	default:
		return nil, &value.TooManyArgumentsError{Callable: "range", Max: 3, Given: len(ints)}
	}
	if step == 0 {
		return nil, &value.ValueError{Msg: "range() arg 3 must not be zero"}
	}
	i := start
	return value.NewIterator(func() (value.Value, bool, error) {
		if (step > 0 && i >= stop) || (step < 0 && i <= stop) {
			return nil, false, nil
		}
		i += step
		return value.Int(i - step), true, nil
	}), nil
}

func enumerate(args *value.BoundArguments, fl bool) (value.Value, error) {
	it, err := value.Iter(args.Value(0))
	if err != nil {
		return nil, err
	}
	start, err := args.Int(1)
	if err != nil {
		return nil, err
	}
	index := start
	next, more, err := it.Next()
	return value.NewIterator(func() (value.Value, bool, error) {
		if err != nil || !more {
			return nil, false, err
		}
		item := next
		next, more, err = it.Next()
		if err != nil {
			return nil, false, err
		}
		index++
		if fl {
			return value.NewList(value.Int(index-1), value.Bool(index-1 == start), value.Bool(!more), item), true, nil
		}
		return value.NewList(value.Int(index-1), item), true, nil
	}), nil
}

func zip(c value.Context, args *value.BoundArguments) (value.Value, error) {
	var its []*value.Iterator
	for _, v := range args.Value(0).(*value.List).Items {
		it, err := value.Iter(v)
		if err != nil {
			return nil, err
		}
		its = append(its, it)
	}
	return value.NewIterator(func() (value.Value, bool, error) {
		if len(its) == 0 {
			return nil, false, nil
		}
		items := make([]value.Value, len(its))
		for i, it := range its {
			item, ok, err := it.Next()
			if err != nil || !ok {
				return nil, false, err
			}
			items[i] = item
		}
		return value.NewList(items...), true, nil
	}), nil
}

// sorted sorts stably by key. The first comparison error stops the sort.
func sorted(c value.Context, args *value.BoundArguments) (value.Value, error) {
	items, err := value.Items(c, args.Value(0))
	if err != nil {
		return nil, err
	}
	keys := items
	if key := args.Value(1); !value.IsNone(key) {
		keys = make([]value.Value, len(items))
		for i, item := range items {
			if keys[i], err = value.Call(c, key, []value.Value{item}, nil); err != nil {
				return nil, err
			}
		}
	}
	reverse := value.Truth(args.Value(2))
	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	var cmpErr error
	sort.SliceStable(order, func(i, j int) bool {
		if cmpErr != nil {
			return false
		}
		n, err := value.Compare("<", keys[order[i]], keys[order[j]])
		if err != nil {
			cmpErr = err
			return false
		}
		if reverse {
			return n > 0
		}
		return n < 0
	})
	if cmpErr != nil {
		return nil, cmpErr
	}
	result := make([]value.Value, len(items))
	for i, k := range order {
		result[i] = items[k]
	}
	return value.NewList(result...), nil
}

// flagged yields each item of v in a list preceded by whether it is
// the first item and whether it is the last, as requested.
func flagged(v value.Value, first, last bool) (value.Value, error) {
	it, err := value.Iter(v)
	if err != nil {
		return nil, err
	}
	isFirst := true
	next, more, err := it.Next()
	return value.NewIterator(func() (value.Value, bool, error) {
		if err != nil || !more {
			return nil, false, err
		}
		item := next
		next, more, err = it.Next()
		if err != nil {
			return nil, false, err
		}
		var l []value.Value
		if first {
			l = append(l, value.Bool(isFirst))
		}
		if last {
			l = append(l, value.Bool(!more))
		}
		isFirst = false
		return value.NewList(append(l, item)...), true, nil
	}), nil
}

// slice is like range on the positions of an iterable. A stop of None
// runs to the end. No bound may be negative.
func slice(c value.Context, args *value.BoundArguments) (value.Value, error) {
	bounds := args.Value(1).(*value.List).Items
	// Positions in ints of the bounds given: stop alone, or start, stop and step.
	var pos []int
	switch len(bounds) {
	case 0:
		return nil, &value.MissingArgumentError{Callable: "slice", Param: "stop", Position: 1}
	case 1:
		pos = []int{1}
	case 2, 3:
		pos = []int{0, 1, 2}
	default:
		return nil, &value.TooManyArgumentsError{Callable: "slice", Max: 4, Given: len(bounds) + 1}
	}
	ints := []int{0, -1, 1}
	for i, b := range bounds {
		if value.IsNone(b) {
			continue
		}
		n, ok := value.AsInt(b)
		if !ok {
			return nil, &value.ArgumentTypeError{Callable: "slice", Param: "args", Want: "int or None", Got: value.TypeName(b)}
		}
		if n < 0 || (pos[i] == 2 && n == 0) {
			return nil, &value.ValueError{Msg: "slice() bounds must be non-negative and the step positive"}
		}
		ints[pos[i]] = n
	}
	start, stop, step := ints[0], ints[1], ints[2]
	it, err := value.Iter(args.Value(0))
	if err != nil {
		return nil, err
	}
	index := 0
	return value.NewIterator(func() (value.Value, bool, error) {
		for stop < 0 || index < stop {
			item, ok, err := it.Next()
			if err != nil || !ok {
				return nil, false, err
			}
			index++
			if i := index - 1; i >= start && (i-start)%step == 0 {
				return item, true, nil
			}
		}
		return nil, false, nil
	}), nil
}
