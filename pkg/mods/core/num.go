package core

import (
	"strconv"

	"src.rambutan.dev/pkg/eval/errs"
	"src.rambutan.dev/pkg/eval/vals"
)

// Arithmetic functions accept numbers and strings that parse as numbers. Nil
// counts as 0 and booleans count as 0 or 1.

func add(args ...vals.Value) (vals.Num, error) {
	nums, err := toNums(args)
	if err != nil {
		return 0, err
	}
	sum := 0.0
	for _, n := range nums {
		sum += n
	}
	return vals.Num(sum), nil
}

// (- x) negates x; (- x y...) subtracts all the ys from x.
func sub(args ...vals.Value) (vals.Num, error) {
	nums, err := toNums(args)
	if err != nil {
		return 0, err
	}
	switch len(nums) {
	case 0:
		return 0, nil
	case 1:
		return vals.Num(-nums[0]), nil
	}
	diff := nums[0]
	for _, n := range nums[1:] {
		diff -= n
	}
	return vals.Num(diff), nil
}

func mul(args ...vals.Value) (vals.Num, error) {
	nums, err := toNums(args)
	if err != nil {
		return 0, err
	}
	product := 1.0
	for _, n := range nums {
		product *= n
	}
	return vals.Num(product), nil
}

// (/ x) returns the reciprocal of x; (/ x y...) divides x by all the ys.
// Division by zero follows IEEE 754.
func div(args ...vals.Value) (vals.Num, error) {
	nums, err := toNums(args)
	if err != nil {
		return 0, err
	}
	switch len(nums) {
	case 0:
		return 1, nil
	case 1:
		return vals.Num(1 / nums[0]), nil
	}
	quotient := nums[0]
	for _, n := range nums[1:] {
		quotient /= n
	}
	return vals.Num(quotient), nil
}

func toNums(args []vals.Value) ([]float64, error) {
	nums := make([]float64, len(args))
	for i, arg := range args {
		n, err := toNum(arg)
		if err != nil {
			return nil, errs.BadValue{
				What: "argument " + strconv.Itoa(i+1), Valid: "number", Actual: vals.Repr(arg)}
		}
		nums[i] = n
	}
	return nums, nil
}

func toNum(v vals.Value) (float64, error) {
	switch v := v.(type) {
	case vals.NilValue:
		return 0, nil
	case vals.Bool:
		if v {
			return 1, nil
		}
		return 0, nil
	default:
		return vals.ScanNum(v)
	}
}

// Comparison functions return t if every adjacent pair of arguments is in
// order, and false otherwise. With fewer than two arguments they return t.

func eq(args ...vals.Value) vals.Bool {
	return vals.Bool(allPairs(args, looseEqual))
}

func notEq(args ...vals.Value) vals.Bool {
	return vals.Bool(allPairs(args, func(a, b vals.Value) bool { return !looseEqual(a, b) }))
}

func lt(args ...vals.Value) (vals.Bool, error) {
	return compareAll(args, func(c int) bool { return c < 0 })
}
func le(args ...vals.Value) (vals.Bool, error) {
	return compareAll(args, func(c int) bool { return c <= 0 })
}
func gt(args ...vals.Value) (vals.Bool, error) {
	return compareAll(args, func(c int) bool { return c > 0 })
}
func ge(args ...vals.Value) (vals.Bool, error) {
	return compareAll(args, func(c int) bool { return c >= 0 })
}

func allPairs(args []vals.Value, ok func(a, b vals.Value) bool) bool {
	for i := 1; i < len(args); i++ {
		if !ok(args[i-1], args[i]) {
			return false
		}
	}
	return true
}

// Like vals.Equal, but a number equals a string that parses to the same
// number.
func looseEqual(a, b vals.Value) bool {
	if vals.Equal(a, b) {
		return true
	}
	_, aNum := a.(vals.Num)
	_, bNum := b.(vals.Num)
	_, aStr := a.(vals.Str)
	_, bStr := b.(vals.Str)
	if (aNum && bStr) || (aStr && bNum) {
		x, err1 := vals.ScanNum(a)
		y, err2 := vals.ScanNum(b)
		return err1 == nil && err2 == nil && x == y
	}
	return false
}

func compareAll(args []vals.Value, ok func(int) bool) (vals.Bool, error) {
	for i := 1; i < len(args); i++ {
		c, err := compare(args[i-1], args[i])
		if err != nil {
			return false, err
		}
		if c == unordered || !ok(c) {
			return false, nil
		}
	}
	return true, nil
}

// Compares two strings lexicographically, and other values as numbers. NaN
// compares unordered with everything, and no ordering predicate holds for it.
func compare(a, b vals.Value) (int, error) {
	if x, ok := a.(vals.Str); ok {
		if y, ok := b.(vals.Str); ok {
			switch {
			case x < y:
				return -1, nil
			case x > y:
				return 1, nil
			}
			return 0, nil
		}
	}
	x, err := toNum(a)
	if err != nil {
		return 0, errs.BadValue{What: "operand", Valid: "number or string", Actual: vals.Repr(a)}
	}
	y, err := toNum(b)
	if err != nil {
		return 0, errs.BadValue{What: "operand", Valid: "number or string", Actual: vals.Repr(b)}
	}
	switch {
	case x < y:
		return -1, nil
	case x > y:
		return 1, nil
	case x == y:
		return 0, nil
	}
	return unordered, nil
}

// Returned by compare when either operand is NaN.
const unordered = 2
