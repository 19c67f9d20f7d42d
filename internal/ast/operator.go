package ast

import "github.com/yaipl-lang/yaipl/internal/token"

// Operator is either an ArithmeticOperator or a LogicalOperator. The set is
// closed; UnaryExpression holds it because prefix minus is arithmetic while
// prefix not is logical.
type Operator interface {
	String() string
	operator()
}

type ArithmeticOperator int

const (
	Plus ArithmeticOperator = iota
	Minus
	Multiply
	Divide
	Modulo
)

func (ArithmeticOperator) operator() {}

func (op ArithmeticOperator) String() string {
	switch op {
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Multiply:
		return "*"
	case Divide:
		return "/"
	case Modulo:
		return "%"
	default:
		return "?"
	}
}

type LogicalOperator int

const (
	And LogicalOperator = iota
	Or
	Not
	LesserThan
	GreaterThan
	LesserThanEqual
	GreaterThanEqual
)

func (LogicalOperator) operator() {}

func (op LogicalOperator) String() string {
	switch op {
	case And:
		return "and"
	case Or:
		return "or"
	case Not:
		return "not"
	case LesserThan:
		return "<"
	case GreaterThan:
		return ">"
	case LesserThanEqual:
		return "<="
	case GreaterThanEqual:
		return ">="
	default:
		return "?"
	}
}

var arithmeticByToken = map[token.Kind]ArithmeticOperator{
	token.Plus:     Plus,
	token.Minus:    Minus,
	token.Multiply: Multiply,
	token.Divide:   Divide,
	token.Modulo:   Modulo,
}

// ArithmeticFromToken maps an operator token onto its arithmetic operator.
// Only the five arithmetic tokens have entries; notably Equal and NotEqual
// do not map.
func ArithmeticFromToken(k token.Kind) (ArithmeticOperator, bool) {
	op, ok := arithmeticByToken[k]
	return op, ok
}

var logicalByToken = map[token.Kind]LogicalOperator{
	token.And:              And,
	token.Or:               Or,
	token.Not:              Not,
	token.LesserThan:       LesserThan,
	token.GreaterThan:      GreaterThan,
	token.LesserThanEqual:  LesserThanEqual,
	token.GreaterThanEqual: GreaterThanEqual,
}

// LogicalFromToken maps an operator token onto its logical operator.
func LogicalFromToken(k token.Kind) (LogicalOperator, bool) {
	op, ok := logicalByToken[k]
	return op, ok
}
