package token

import "fmt"

type Kind int

const (
	Integer Kind = iota
	Float
	Boolean
	Symbol
	Plus
	Minus
	Multiply
	Divide
	Modulo
	Assign
	Equal
	NotEqual
	LesserThan
	GreaterThan
	LesserThanEqual
	GreaterThanEqual
	LeftParen
	RightParen
	Comma
	Not
	And
	Or
	Return
	EndOfLine
	EndOfFile
)

var kindNames = [...]string{
	Integer:          "Integer",
	Float:            "Float",
	Boolean:          "Boolean",
	Symbol:           "Symbol",
	Plus:             "Plus",
	Minus:            "Minus",
	Multiply:         "Multiply",
	Divide:           "Divide",
	Modulo:           "Modulo",
	Assign:           "Assign",
	Equal:            "Equal",
	NotEqual:         "NotEqual",
	LesserThan:       "LesserThan",
	GreaterThan:      "GreaterThan",
	LesserThanEqual:  "LesserThanEqual",
	GreaterThanEqual: "GreaterThanEqual",
	LeftParen:        "LeftParen",
	RightParen:       "RightParen",
	Comma:            "Comma",
	Not:              "Not",
	And:              "And",
	Or:               "Or",
	Return:           "Return",
	EndOfLine:        "EndOfLine",
	EndOfFile:        "EndOfFile",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Position is a 1-based source location.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a single lexical unit. The payload fields are populated only for
// the literal-carrying kinds: Integer, Float, Boolean and Symbol.
type Token struct {
	Kind    Kind
	Integer int64
	Float   float64
	Boolean bool
	Symbol  string
	Pos     Position
}

func (t Token) String() string {
	switch t.Kind {
	case Integer:
		return fmt.Sprintf("Integer(%d)", t.Integer)
	case Float:
		return fmt.Sprintf("Float(%g)", t.Float)
	case Boolean:
		return fmt.Sprintf("Boolean(%t)", t.Boolean)
	case Symbol:
		return fmt.Sprintf("Symbol(%s)", t.Symbol)
	default:
		return t.Kind.String()
	}
}

// Stream is the finalized token sequence produced by the lexer. It is never
// mutated once handed to the parser.
type Stream []Token

func (s Stream) Get(i int) (Token, bool) {
	if i < 0 || i >= len(s) {
		return Token{}, false
	}
	return s[i], true
}
