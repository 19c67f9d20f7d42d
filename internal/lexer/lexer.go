// Package lexer turns yaipl source text into a finalized token stream. Line
// terminators are tokens in their own right; the stream always ends with an
// EndOfFile marker.
package lexer

import (
	"fmt"
	"strconv"

	"github.com/yaipl-lang/yaipl/internal/diag"
	"github.com/yaipl-lang/yaipl/internal/token"
)

// Errors is the lexer's error aggregate.
var Errors = diag.NewStage("LexerErrors", "UnexpectedCharacter")

// UnexpectedCharacter reports a byte the lexer has no rule for.
type UnexpectedCharacter struct {
	Message string
	Char    rune
	Pos     token.Position
}

func (e *UnexpectedCharacter) Error() string {
	return e.Message
}

func (e *UnexpectedCharacter) Name() string {
	return "UnexpectedCharacter"
}

func (e *UnexpectedCharacter) Position() token.Position {
	return e.Pos
}

func newUnexpectedCharacter(c byte, pos token.Position) *UnexpectedCharacter {
	return &UnexpectedCharacter{
		Message: fmt.Sprintf("Unexpected character '%c'", c),
		Char:    rune(c),
		Pos:     pos,
	}
}

// Tokenize lexes the whole source. Failures cross the stage boundary wrapped
// into the LexerErrors aggregate.
func Tokenize(source string) (token.Stream, error) {
	l := &lexer{source: source, line: 1, column: 1}
	stream, err := l.run()
	if err != nil {
		return nil, Errors.Wrap(err)
	}
	return stream, nil
}

type lexer struct {
	source string
	index  int
	line   int
	column int
}

var keywords = map[string]token.Kind{
	"return": token.Return,
	"and":    token.And,
	"or":     token.Or,
	"not":    token.Not,
}

func (l *lexer) run() (token.Stream, error) {
	var stream token.Stream

	for l.index < len(l.source) {
		pos := l.pos()
		c := l.source[l.index]
		switch {
		case c == ' ' || c == '\t' || c == '\r':
			l.step(1)

		case c == '\n':
			stream = append(stream, token.Token{Kind: token.EndOfLine, Pos: pos})
			l.index++
			l.line++
			l.column = 1

		case '0' <= c && c <= '9':
			tok, err := l.number(pos)
			if err != nil {
				return nil, err
			}
			stream = append(stream, tok)

		case ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_':
			stream = append(stream, l.word(pos))

		default:
			tok, err := l.operator(pos)
			if err != nil {
				return nil, err
			}
			stream = append(stream, tok)
		}
	}

	stream = append(stream, token.Token{Kind: token.EndOfFile, Pos: l.pos()})
	return stream, nil
}

var simpleOperators = map[byte]token.Kind{
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Multiply,
	'/': token.Divide,
	'%': token.Modulo,
	'(': token.LeftParen,
	')': token.RightParen,
	',': token.Comma,
}

func (l *lexer) operator(pos token.Position) (token.Token, error) {
	c := l.source[l.index]
	if kind, ok := simpleOperators[c]; ok {
		l.step(1)
		return token.Token{Kind: kind, Pos: pos}, nil
	}

	switch c {
	case '=':
		if l.nextIs('=') {
			l.step(2)
			return token.Token{Kind: token.Equal, Pos: pos}, nil
		}
		l.step(1)
		return token.Token{Kind: token.Assign, Pos: pos}, nil
	case '!':
		if l.nextIs('=') {
			l.step(2)
			return token.Token{Kind: token.NotEqual, Pos: pos}, nil
		}
		l.step(1)
		return token.Token{Kind: token.Not, Pos: pos}, nil
	case '<':
		if l.nextIs('=') {
			l.step(2)
			return token.Token{Kind: token.LesserThanEqual, Pos: pos}, nil
		}
		l.step(1)
		return token.Token{Kind: token.LesserThan, Pos: pos}, nil
	case '>':
		if l.nextIs('=') {
			l.step(2)
			return token.Token{Kind: token.GreaterThanEqual, Pos: pos}, nil
		}
		l.step(1)
		return token.Token{Kind: token.GreaterThan, Pos: pos}, nil
	case '&':
		if l.nextIs('&') {
			l.step(2)
			return token.Token{Kind: token.And, Pos: pos}, nil
		}
	case '|':
		if l.nextIs('|') {
			l.step(2)
			return token.Token{Kind: token.Or, Pos: pos}, nil
		}
	}

	return token.Token{}, newUnexpectedCharacter(c, pos)
}

func (l *lexer) number(pos token.Position) (token.Token, error) {
	begins := l.index
	dotFound := false
	for l.index < len(l.source) {
		c := l.source[l.index]
		if c == '.' {
			if dotFound {
				break
			}
			dotFound = true
			l.step(1)
			continue
		}
		if c < '0' || '9' < c {
			break
		}
		l.step(1)
	}
	// a trailing dot belongs to the next token
	if l.source[l.index-1] == '.' {
		l.index--
		l.column--
		dotFound = false
	}

	literal := l.source[begins:l.index]
	if dotFound {
		v, err := strconv.ParseFloat(literal, 64)
		if err != nil {
			return token.Token{}, fmt.Errorf("invalid number %q at %s: %w", literal, pos, err)
		}
		return token.Token{Kind: token.Float, Float: v, Pos: pos}, nil
	}

	v, err := strconv.ParseInt(literal, 10, 64)
	if err != nil {
		return token.Token{}, fmt.Errorf("invalid integer %q at %s: %w", literal, pos, err)
	}
	return token.Token{Kind: token.Integer, Integer: v, Pos: pos}, nil
}

func (l *lexer) word(pos token.Position) token.Token {
	begins := l.index
	for l.index < len(l.source) {
		c := l.source[l.index]
		if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') || c == '_' {
			l.step(1)
			continue
		}
		break
	}

	switch word := l.source[begins:l.index]; word {
	case "true", "false":
		return token.Token{Kind: token.Boolean, Boolean: word == "true", Pos: pos}
	default:
		if kind, ok := keywords[word]; ok {
			return token.Token{Kind: kind, Pos: pos}
		}
		return token.Token{Kind: token.Symbol, Symbol: word, Pos: pos}
	}
}

func (l *lexer) nextIs(c byte) bool {
	return l.index+1 < len(l.source) && l.source[l.index+1] == c
}

func (l *lexer) step(n int) {
	l.index += n
	l.column += n
}

func (l *lexer) pos() token.Position {
	return token.Position{Line: l.line, Column: l.column}
}
