package eval

import (
	"fmt"
	"math"
)

// Defaults returns the read-only scope of builtin functions shared by every
// evaluator.
func Defaults() *SymbolTable {
	st := NewSymbolTable()
	for _, fn := range builtins {
		st.Symbols[fn.Name()] = fn
	}
	st.ReadOnly = true
	return st
}

var builtins = []Function{
	MustNewFunction("abs", func(x any) (any, error) {
		switch n := x.(type) {
		case int64:
			if n == math.MinInt64 {
				return nil, fmt.Errorf("abs: x is MinInt64: %v", x)
			}
			if n < 0 {
				return -n, nil
			}
			return n, nil
		case float64:
			return math.Abs(n), nil
		default:
			return nil, newTypeMismatch("abs", x)
		}
	}),
	MustNewFunction("min", func(x, y any) (any, error) {
		return pick(x, y, func(a, b float64) bool { return a <= b })
	}),
	MustNewFunction("max", func(x, y any) (any, error) {
		return pick(x, y, func(a, b float64) bool { return a >= b })
	}),
	MustNewFunction("floor", func(x any) (any, error) {
		switch n := x.(type) {
		case int64:
			return n, nil
		case float64:
			return math.Floor(n), nil
		default:
			return nil, newTypeMismatch("floor", x)
		}
	}),
	MustNewFunction("ceil", func(x any) (any, error) {
		switch n := x.(type) {
		case int64:
			return n, nil
		case float64:
			return math.Ceil(n), nil
		default:
			return nil, newTypeMismatch("ceil", x)
		}
	}),
	MustNewFunction("round", func(x any) (any, error) {
		switch n := x.(type) {
		case int64:
			return n, nil
		case float64:
			return math.Round(n), nil
		default:
			return nil, newTypeMismatch("round", x)
		}
	}),
}

// pick returns whichever of x and y wins the comparison, keeping the
// original representation of the winner.
func pick(x, y any, wins func(a, b float64) bool) (any, error) {
	a, ok := toFloat(x)
	if !ok {
		return nil, newTypeMismatch("min/max", x)
	}
	b, ok := toFloat(y)
	if !ok {
		return nil, newTypeMismatch("min/max", y)
	}
	if wins(a, b) {
		return x, nil
	}
	return y, nil
}
