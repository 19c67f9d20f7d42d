package eval

import (
	"fmt"

	"github.com/yaipl-lang/yaipl/internal/diag"
)

// Errors is the evaluator's error aggregate.
var Errors = diag.NewStage("RuntimeErrors", "UndefinedVariable", "TypeMismatch", "ZeroDivision")

// UndefinedVariable reports a read of a name no scope holds.
type UndefinedVariable struct {
	Message  string
	Variable string
}

func (e *UndefinedVariable) Error() string {
	return e.Message
}

func (e *UndefinedVariable) Name() string {
	return "UndefinedVariable"
}

// TypeMismatch reports an operand or argument of the wrong runtime type.
type TypeMismatch struct {
	Message  string
	Operator string
	Value    any
}

func (e *TypeMismatch) Error() string {
	return e.Message
}

func (e *TypeMismatch) Name() string {
	return "TypeMismatch"
}

// ZeroDivision reports a division or modulo with a zero divisor.
type ZeroDivision struct {
	Message  string
	Operator string
}

func (e *ZeroDivision) Error() string {
	return e.Message
}

func (e *ZeroDivision) Name() string {
	return "ZeroDivision"
}

func newTypeMismatch(operator string, value any) *TypeMismatch {
	return &TypeMismatch{
		Message:  fmt.Sprintf("Unsupported value of type %T for operator %q", value, operator),
		Operator: operator,
		Value:    value,
	}
}

func newZeroDivision(operator string) *ZeroDivision {
	return &ZeroDivision{
		Message:  fmt.Sprintf("Division by zero in operator %q", operator),
		Operator: operator,
	}
}
