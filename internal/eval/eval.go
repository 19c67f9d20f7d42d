// Package eval executes a parsed program. Arithmetic stays in int64 until a
// float64 operand forces promotion; logical operators demand bools and
// comparisons demand numbers. Runtime failures propagate as ordinary error
// values and cross the stage boundary wrapped into the RuntimeErrors
// aggregate, the same way parse failures cross theirs.
package eval

import (
	"fmt"
	"math"

	"github.com/yaipl-lang/yaipl/internal/ast"
)

type Evaluator struct {
	symbols *SymbolTable
}

func New() *Evaluator {
	root := NewSymbolTable()
	root.Parent = Defaults()
	return &Evaluator{symbols: root}
}

// Evaluate runs the program top to bottom. A return statement stops the run
// and yields its value; otherwise the value of the last expression statement
// is returned.
func (e *Evaluator) Evaluate(program *ast.Program) (any, error) {
	ret, err := e.run(program)
	if err != nil {
		return nil, Errors.Wrap(err)
	}
	return ret, nil
}

func (e *Evaluator) run(program *ast.Program) (any, error) {
	var last any
	for _, statement := range program.Statements {
		switch s := statement.(type) {
		case *ast.EmptyStatement:
			// nothing to do

		case *ast.ReturnStatement:
			if s.Value == nil {
				return nil, nil
			}
			return e.evalExpression(s.Value)

		case *ast.ExpressionStatement:
			value, err := e.evalExpression(s.Expression)
			if err != nil {
				return nil, err
			}
			last = value

		default:
			panic(fmt.Sprintf("should not reach here: unknown statement %T", statement))
		}
	}
	return last, nil
}

func (e *Evaluator) evalExpression(expression ast.Expression) (any, error) {
	switch expr := expression.(type) {
	case *ast.IntegerLiteral:
		return expr.Value, nil

	case *ast.FloatLiteral:
		return expr.Value, nil

	case *ast.BooleanLiteral:
		return expr.Value, nil

	case *ast.Variable:
		value, ok := e.symbols.Get(expr.Name)
		if !ok {
			return nil, &UndefinedVariable{
				Message:  fmt.Sprintf("Undefined variable '%s'", expr.Name),
				Variable: expr.Name,
			}
		}
		return value, nil

	case *ast.Assignment:
		value, err := e.evalExpression(expr.Value)
		if err != nil {
			return nil, err
		}
		e.symbols.Set(expr.Target.Name, value)
		return value, nil

	case *ast.UnaryExpression:
		return e.evalUnary(expr)

	case *ast.BinaryExpression:
		left, right, err := e.evalOperands(expr.Left, expr.Right)
		if err != nil {
			return nil, err
		}
		return arithmetic(expr.Operator, left, right)

	case *ast.LogicalExpression:
		left, right, err := e.evalOperands(expr.Left, expr.Right)
		if err != nil {
			return nil, err
		}
		return logical(expr.Operator, left, right)

	case *ast.CallExpression:
		return e.evalCall(expr)

	default:
		panic(fmt.Sprintf("should not reach here: unknown expression %T", expression))
	}
}

func (e *Evaluator) evalOperands(left, right ast.Expression) (any, any, error) {
	l, err := e.evalExpression(left)
	if err != nil {
		return nil, nil, err
	}
	r, err := e.evalExpression(right)
	if err != nil {
		return nil, nil, err
	}
	return l, r, nil
}

func (e *Evaluator) evalUnary(expr *ast.UnaryExpression) (any, error) {
	value, err := e.evalExpression(expr.Operand)
	if err != nil {
		return nil, err
	}

	switch expr.Operator {
	case ast.Minus:
		switch v := value.(type) {
		case int64:
			return -v, nil
		case float64:
			return -v, nil
		default:
			return nil, newTypeMismatch("-", value)
		}
	case ast.Not:
		if v, ok := value.(bool); ok {
			return !v, nil
		}
		return nil, newTypeMismatch("not", value)
	default:
		panic(fmt.Sprintf("should not reach here: unknown unary operator %s", expr.Operator))
	}
}

func (e *Evaluator) evalCall(expr *ast.CallExpression) (any, error) {
	callee, err := e.evalExpression(expr.Callee)
	if err != nil {
		return nil, err
	}

	fn, ok := callee.(Function)
	if !ok {
		return nil, &TypeMismatch{
			Message: fmt.Sprintf("Value of type %T is not callable", callee),
			Value:   callee,
		}
	}

	args := make([]any, len(expr.Arguments))
	for i, argument := range expr.Arguments {
		args[i], err = e.evalExpression(argument)
		if err != nil {
			return nil, err
		}
	}

	return fn.Call(args)
}

func arithmetic(op ast.ArithmeticOperator, left, right any) (any, error) {
	if l, ok := left.(int64); ok {
		if r, ok := right.(int64); ok {
			return intArithmetic(op, l, r)
		}
	}

	l, ok := toFloat(left)
	if !ok {
		return nil, newTypeMismatch(op.String(), left)
	}
	r, ok := toFloat(right)
	if !ok {
		return nil, newTypeMismatch(op.String(), right)
	}
	return floatArithmetic(op, l, r)
}

func intArithmetic(op ast.ArithmeticOperator, l, r int64) (any, error) {
	switch op {
	case ast.Plus:
		return l + r, nil
	case ast.Minus:
		return l - r, nil
	case ast.Multiply:
		return l * r, nil
	case ast.Divide:
		if r == 0 {
			return nil, newZeroDivision("/")
		}
		return l / r, nil
	case ast.Modulo:
		if r == 0 {
			return nil, newZeroDivision("%")
		}
		return l % r, nil
	default:
		panic(fmt.Sprintf("should not reach here: unknown arithmetic operator %s", op))
	}
}

func floatArithmetic(op ast.ArithmeticOperator, l, r float64) (any, error) {
	switch op {
	case ast.Plus:
		return l + r, nil
	case ast.Minus:
		return l - r, nil
	case ast.Multiply:
		return l * r, nil
	case ast.Divide:
		if r == 0 {
			return nil, newZeroDivision("/")
		}
		return l / r, nil
	case ast.Modulo:
		if r == 0 {
			return nil, newZeroDivision("%")
		}
		return math.Mod(l, r), nil
	default:
		panic(fmt.Sprintf("should not reach here: unknown arithmetic operator %s", op))
	}
}

func logical(op ast.LogicalOperator, left, right any) (any, error) {
	switch op {
	case ast.And, ast.Or:
		l, ok := left.(bool)
		if !ok {
			return nil, newTypeMismatch(op.String(), left)
		}
		r, ok := right.(bool)
		if !ok {
			return nil, newTypeMismatch(op.String(), right)
		}
		if op == ast.And {
			return l && r, nil
		}
		return l || r, nil

	case ast.LesserThan, ast.GreaterThan, ast.LesserThanEqual, ast.GreaterThanEqual:
		l, ok := toFloat(left)
		if !ok {
			return nil, newTypeMismatch(op.String(), left)
		}
		r, ok := toFloat(right)
		if !ok {
			return nil, newTypeMismatch(op.String(), right)
		}
		switch op {
		case ast.LesserThan:
			return l < r, nil
		case ast.GreaterThan:
			return l > r, nil
		case ast.LesserThanEqual:
			return l <= r, nil
		default:
			return l >= r, nil
		}

	default:
		// the parser never builds a binary Not
		return nil, newTypeMismatch(op.String(), left)
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
