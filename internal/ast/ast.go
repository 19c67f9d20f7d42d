// Package ast defines the syntax tree produced by the parser. The node set
// is closed: every consumer switches exhaustively over the variants below.
// Nodes are immutable once built and every composite node exclusively owns
// its children.
package ast

type Node interface {
	node()
}

type Statement interface {
	Node
	statementNode()
}

type Expression interface {
	Node
	expressionNode()
}

// Program is the single root: the ordered statement list of one source unit.
type Program struct {
	Statements []Statement
}

func (*Program) node() {}

// EmptyStatement is produced by a bare line terminator. Blank lines are kept
// so statement entries stay 1:1 with source lines.
type EmptyStatement struct{}

// ReturnStatement carries an optional value; Value is nil for a bare return.
type ReturnStatement struct {
	Value Expression
}

// ExpressionStatement is an expression followed by its line terminator.
type ExpressionStatement struct {
	Expression Expression
}

func (*EmptyStatement) node()      {}
func (*ReturnStatement) node()     {}
func (*ExpressionStatement) node() {}

func (*EmptyStatement) statementNode()      {}
func (*ReturnStatement) statementNode()     {}
func (*ExpressionStatement) statementNode() {}

type IntegerLiteral struct {
	Value int64
}

type FloatLiteral struct {
	Value float64
}

type BooleanLiteral struct {
	Value bool
}

// Variable is a name reference.
type Variable struct {
	Name string
}

// Assignment binds Value to Target. The parser guarantees Target is a
// Variable; chains are right-associative.
type Assignment struct {
	Target *Variable
	Value  Expression
}

type LogicalExpression struct {
	Left     Expression
	Operator LogicalOperator
	Right    Expression
}

type BinaryExpression struct {
	Left     Expression
	Operator ArithmeticOperator
	Right    Expression
}

type UnaryExpression struct {
	Operator Operator
	Operand  Expression
}

// CallExpression applies Callee to Arguments. Chained calls nest: the result
// of one call becomes the callee of the next.
type CallExpression struct {
	Callee    Expression
	Arguments []Expression
}

func (*IntegerLiteral) node()    {}
func (*FloatLiteral) node()      {}
func (*BooleanLiteral) node()    {}
func (*Variable) node()          {}
func (*Assignment) node()        {}
func (*LogicalExpression) node() {}
func (*BinaryExpression) node()  {}
func (*UnaryExpression) node()   {}
func (*CallExpression) node()    {}

func (*IntegerLiteral) expressionNode()    {}
func (*FloatLiteral) expressionNode()      {}
func (*BooleanLiteral) expressionNode()    {}
func (*Variable) expressionNode()          {}
func (*Assignment) expressionNode()        {}
func (*LogicalExpression) expressionNode() {}
func (*BinaryExpression) expressionNode()  {}
func (*UnaryExpression) expressionNode()   {}
func (*CallExpression) expressionNode()    {}
