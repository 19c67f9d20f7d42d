package parser

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/yaipl-lang/yaipl/internal/diag"
	"github.com/yaipl-lang/yaipl/internal/token"
)

// Errors is the parser's error aggregate.
var Errors = diag.NewStage("ParserErrors", "TokenMismatch")

// TokenMismatch reports a token of the wrong kind at the cursor. Expected
// holds one kind for a failed consume and may hold several where a
// production accepts more than one.
type TokenMismatch struct {
	Message  string
	Expected []token.Kind
	Found    token.Kind
	Pos      token.Position
}

func (e *TokenMismatch) Error() string {
	return e.Message
}

func (e *TokenMismatch) Name() string {
	return "TokenMismatch"
}

func (e *TokenMismatch) Position() token.Position {
	return e.Pos
}

// ExpectedNames renders the expected kind set for presentation.
func (e *TokenMismatch) ExpectedNames() string {
	return strings.Join(lo.Map(e.Expected, func(k token.Kind, _ int) string {
		return k.String()
	}), ", ")
}

func newTokenMismatch(expected token.Kind, found token.Token) *TokenMismatch {
	return &TokenMismatch{
		Message:  fmt.Sprintf("Expected token of type %s, found %s", expected, found.Kind),
		Expected: []token.Kind{expected},
		Found:    found.Kind,
		Pos:      found.Pos,
	}
}
