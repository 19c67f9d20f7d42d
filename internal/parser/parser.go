// Package parser builds the syntax tree from a finalized token stream.
//
// The grammar is parsed by recursive descent with one layer per precedence
// level, loosest first:
//
//	statement      --> EndOfLine | "return" expression? | expression EndOfLine
//	expression     --> assignment
//	assignment     --> or ( "=" assignment )?
//	or             --> and ( "or" and )*
//	and            --> equality ( "and" equality )*
//	equality       --> comparison ( ( "==" | "!=" ) comparison )*
//	comparison     --> addition ( ( "<" | ">" | "<=" | ">=" ) addition )*
//	addition       --> multiplication ( ( "+" | "-" ) multiplication )*
//	multiplication --> unary ( ( "*" | "/" | "%" ) unary )*
//	unary          --> ( "-" | "not" ) unary | call
//	call           --> primary ( "(" arguments? ")" )*
//	primary        --> Integer | Float | Boolean | Symbol
//
// Parsing is fail-fast: the first structural error aborts the whole parse
// and no partial tree is returned. There is no resynchronization.
//
// The equality layer resolves its operator through the arithmetic mapping,
// which has no entry for Equal or NotEqual, so an equality comparison always
// fails with a TokenMismatch naming Equal. Changing this breaks compatibility
// with existing tooling that keys on the mismatch.
package parser

import (
	"errors"
	"fmt"

	"github.com/yaipl-lang/yaipl/internal/ast"
	"github.com/yaipl-lang/yaipl/internal/token"
)

// Parser reads a token stream through a monotonically advancing cursor. It
// never backtracks beyond one token of lookahead.
type Parser struct {
	tokens  token.Stream
	current int
}

func New(tokens token.Stream) *Parser {
	return &Parser{tokens: tokens}
}

// Parse consumes the entire stream and returns the Program node, or the
// first structural failure wrapped into the ParserErrors aggregate.
func (p *Parser) Parse() (*ast.Program, error) {
	statements, err := p.parseStatements()
	if err != nil {
		return nil, Errors.Wrap(err)
	}
	return &ast.Program{Statements: statements}, nil
}

func (p *Parser) parseStatements() ([]ast.Statement, error) {
	var statements []ast.Statement
	for !p.isAtEnd() {
		statement, err := p.declaration()
		if err != nil {
			return nil, err
		}
		statements = append(statements, statement)
	}
	return statements, nil
}

func (p *Parser) declaration() (ast.Statement, error) {
	return p.statement()
}

func (p *Parser) statement() (ast.Statement, error) {
	if p.match(token.EndOfLine) {
		return &ast.EmptyStatement{}, nil
	}
	if p.match(token.Return) {
		return p.returnStatement()
	}
	return p.expressionStatement()
}

// returnStatement consumes the line terminator only in the bare-return form;
// a return with a value leaves it for the next statement.
func (p *Parser) returnStatement() (ast.Statement, error) {
	var value ast.Expression
	if !p.match(token.EndOfLine) {
		expression, err := p.expression()
		if err != nil {
			return nil, err
		}
		value = expression
	}
	return &ast.ReturnStatement{Value: value}, nil
}

func (p *Parser) expressionStatement() (ast.Statement, error) {
	expression, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.EndOfLine); err != nil {
		return nil, err
	}
	return &ast.ExpressionStatement{Expression: expression}, nil
}

func (p *Parser) expression() (ast.Expression, error) {
	return p.assignment()
}

func (p *Parser) assignment() (ast.Expression, error) {
	expression, err := p.or()
	if err != nil {
		return nil, err
	}

	if p.match(token.Assign) {
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}

		if variable, ok := expression.(*ast.Variable); ok {
			return &ast.Assignment{Target: variable, Value: value}, nil
		}
		return nil, errors.New("Invalid assignment target")
	}

	return expression, nil
}

func (p *Parser) or() (ast.Expression, error) {
	expression, err := p.and()
	if err != nil {
		return nil, err
	}

	for p.match(token.Or) {
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		expression = &ast.LogicalExpression{
			Left:     expression,
			Operator: ast.Or,
			Right:    right,
		}
	}

	return expression, nil
}

func (p *Parser) and() (ast.Expression, error) {
	expression, err := p.equality()
	if err != nil {
		return nil, err
	}

	for p.match(token.And) {
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		expression = &ast.LogicalExpression{
			Left:     expression,
			Operator: ast.And,
			Right:    right,
		}
	}

	return expression, nil
}

func (p *Parser) equality() (ast.Expression, error) {
	expression, err := p.comparison()
	if err != nil {
		return nil, err
	}

	for p.matchOneOf(token.Equal, token.NotEqual) {
		operator := p.previous()
		right, err := p.comparison()
		if err != nil {
			return nil, err
		}

		// Equal and NotEqual have no arithmetic mapping, so this branch
		// always raises. See the package comment.
		op, ok := ast.ArithmeticFromToken(operator.Kind)
		if !ok {
			return nil, newTokenMismatch(token.Equal, operator)
		}
		expression = &ast.BinaryExpression{
			Left:     expression,
			Operator: op,
			Right:    right,
		}
	}

	return expression, nil
}

func (p *Parser) comparison() (ast.Expression, error) {
	expression, err := p.addition()
	if err != nil {
		return nil, err
	}

	for p.matchOneOf(token.LesserThan, token.GreaterThan, token.LesserThanEqual, token.GreaterThanEqual) {
		operator := p.previous()
		right, err := p.addition()
		if err != nil {
			return nil, err
		}

		op, ok := ast.LogicalFromToken(operator.Kind)
		if !ok {
			panic(fmt.Sprintf("should not reach here: no logical operator for %s", operator.Kind))
		}
		expression = &ast.LogicalExpression{
			Left:     expression,
			Operator: op,
			Right:    right,
		}
	}

	return expression, nil
}

func (p *Parser) addition() (ast.Expression, error) {
	expression, err := p.multiplication()
	if err != nil {
		return nil, err
	}

	for p.matchOneOf(token.Minus, token.Plus) {
		operator := p.previous()
		right, err := p.multiplication()
		if err != nil {
			return nil, err
		}

		op, ok := ast.ArithmeticFromToken(operator.Kind)
		if !ok {
			panic(fmt.Sprintf("should not reach here: no arithmetic operator for %s", operator.Kind))
		}
		expression = &ast.BinaryExpression{
			Left:     expression,
			Operator: op,
			Right:    right,
		}
	}

	return expression, nil
}

func (p *Parser) multiplication() (ast.Expression, error) {
	expression, err := p.unary()
	if err != nil {
		return nil, err
	}

	for p.matchOneOf(token.Multiply, token.Divide, token.Modulo) {
		operator := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}

		op, ok := ast.ArithmeticFromToken(operator.Kind)
		if !ok {
			panic(fmt.Sprintf("should not reach here: no arithmetic operator for %s", operator.Kind))
		}
		expression = &ast.BinaryExpression{
			Left:     expression,
			Operator: op,
			Right:    right,
		}
	}

	return expression, nil
}

func (p *Parser) unary() (ast.Expression, error) {
	if p.matchOneOf(token.Minus, token.Not) {
		operator := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}

		var op ast.Operator
		switch operator.Kind {
		case token.Minus:
			op = ast.Minus
		case token.Not:
			op = ast.Not
		default:
			panic(fmt.Sprintf("should not reach here: no unary operator for %s", operator.Kind))
		}

		return &ast.UnaryExpression{Operator: op, Operand: right}, nil
	}

	return p.call()
}

func (p *Parser) call() (ast.Expression, error) {
	expression, err := p.primary()
	if err != nil {
		return nil, err
	}

	for p.match(token.LeftParen) {
		expression, err = p.finishCall(expression)
		if err != nil {
			return nil, err
		}
	}

	return expression, nil
}

func (p *Parser) finishCall(callee ast.Expression) (ast.Expression, error) {
	var arguments []ast.Expression

	if !p.check(token.RightParen) {
		for {
			argument, err := p.expression()
			if err != nil {
				return nil, err
			}
			arguments = append(arguments, argument)
			if !p.match(token.Comma) {
				break
			}
		}
	}

	if _, err := p.consume(token.RightParen); err != nil {
		found := p.peekOrEnd()
		return nil, &TokenMismatch{
			Message:  "Expected ) after arguments",
			Expected: []token.Kind{token.RightParen},
			Found:    found.Kind,
			Pos:      found.Pos,
		}
	}

	return &ast.CallExpression{Callee: callee, Arguments: arguments}, nil
}

func (p *Parser) primary() (ast.Expression, error) {
	tok := p.peekOrEnd()

	var expression ast.Expression
	switch tok.Kind {
	case token.Integer:
		expression = &ast.IntegerLiteral{Value: tok.Integer}
	case token.Float:
		expression = &ast.FloatLiteral{Value: tok.Float}
	case token.Boolean:
		expression = &ast.BooleanLiteral{Value: tok.Boolean}
	case token.Symbol:
		expression = &ast.Variable{Name: tok.Symbol}
	default:
		return nil, fmt.Errorf("Expected expression, received '%s'", tok)
	}

	p.advance()
	return expression, nil
}

func (p *Parser) consume(kind token.Kind) (token.Token, error) {
	if p.check(kind) {
		p.advance()
		return p.previous(), nil
	}
	return token.Token{}, newTokenMismatch(kind, p.peekOrEnd())
}

func (p *Parser) matchOneOf(kinds ...token.Kind) bool {
	for _, kind := range kinds {
		if p.match(kind) {
			return true
		}
	}
	return false
}

func (p *Parser) match(kind token.Kind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) check(kind token.Kind) bool {
	if p.isAtEnd() {
		return false
	}
	tok, ok := p.peek()
	return ok && tok.Kind == kind
}

func (p *Parser) advance() {
	if !p.isAtEnd() {
		p.current++
	}
}

// isAtEnd holds on the end-of-file marker. A cursor past the stream bounds
// is also treated as the end, so a truncated stream cannot loop forever.
func (p *Parser) isAtEnd() bool {
	tok, ok := p.peek()
	if !ok {
		return true
	}
	return tok.Kind == token.EndOfFile
}

func (p *Parser) peek() (token.Token, bool) {
	return p.tokens.Get(p.current)
}

func (p *Parser) peekOrEnd() token.Token {
	if tok, ok := p.peek(); ok {
		return tok
	}
	return token.Token{Kind: token.EndOfFile}
}

func (p *Parser) previous() token.Token {
	tok, _ := p.tokens.Get(p.current - 1)
	return tok
}
