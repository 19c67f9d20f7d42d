package eval_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yaipl-lang/yaipl/internal/diag"
	"github.com/yaipl-lang/yaipl/internal/eval"
	"github.com/yaipl-lang/yaipl/internal/lexer"
	"github.com/yaipl-lang/yaipl/internal/parser"
)

func run(t *testing.T, source string) (any, error) {
	t.Helper()
	stream, err := lexer.Tokenize(source)
	if err != nil {
		t.Fatalf("tokenize %q: %v", source, err)
	}
	program, err := parser.New(stream).Parse()
	if err != nil {
		t.Fatalf("parse %q: %v", source, err)
	}
	return eval.New().Evaluate(program)
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name     string
		source   string
		expected any
	}{
		{name: "integer arithmetic", source: "1 + 2 * 3\n", expected: int64(7)},
		{name: "integer modulo", source: "7 % 3\n", expected: int64(1)},
		{name: "float modulo", source: "7.5 % 2\n", expected: 1.5},
		{name: "mixed operands promote", source: "1 + 2.5\n", expected: 3.5},
		{name: "integer division truncates", source: "7 / 2\n", expected: int64(3)},
		{name: "assignment binds a value", source: "a = 2\na * 3\n", expected: int64(6)},
		{name: "chained assignment", source: "a = b = 4\na + b\n", expected: int64(8)},
		{name: "conjunction", source: "true and false\n", expected: false},
		{name: "disjunction", source: "false or true\n", expected: true},
		{name: "comparison", source: "1 < 2\n", expected: true},
		{name: "inclusive comparison", source: "2 >= 2\n", expected: true},
		{name: "unary minus", source: "-5\n", expected: int64(-5)},
		{name: "unary not", source: "not false\n", expected: true},
		{name: "builtin abs", source: "abs(-5)\n", expected: int64(5)},
		{name: "builtin max keeps representation", source: "max(1, 2.5)\n", expected: 2.5},
		{name: "builtin min", source: "min(2, 3)\n", expected: int64(2)},
		{name: "builtin floor", source: "floor(2.7)\n", expected: 2.0},
		{name: "return stops the program", source: "return 42\n1\n", expected: int64(42)},
		{name: "bare return yields nothing", source: "return\n", expected: nil},
		{name: "empty program yields nothing", source: "\n", expected: nil},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := run(t, tt.source)
			if err != nil {
				t.Fatalf("evaluate %q: %v", tt.source, err)
			}
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("evaluate %q (-want +got):\n%s", tt.source, diff)
			}
		})
	}
}

func TestEvaluateZeroDivision(t *testing.T) {
	t.Parallel()

	for _, source := range []string{"1 / 0\n", "1 % 0\n", "1.5 / 0\n"} {
		source := source
		t.Run(source, func(t *testing.T) {
			t.Parallel()

			_, err := run(t, source)
			if err == nil {
				t.Fatalf("evaluate %q: expected error", source)
			}

			var rep diag.Reportable
			if !errors.As(err, &rep) {
				t.Fatalf("error is not reportable: %v", err)
			}
			if got := rep.AggregateName(); got != "RuntimeErrors" {
				t.Errorf("aggregate name: got %q", got)
			}

			fired := false
			diag.Extract(rep, eval.Errors, func(zd *eval.ZeroDivision) {
				fired = true
			})
			if !fired {
				t.Errorf("evaluate %q: no ZeroDivision extracted from %v", source, err)
			}
		})
	}
}

func TestEvaluateUndefinedVariable(t *testing.T) {
	t.Parallel()

	_, err := run(t, "x + 1\n")
	if err == nil {
		t.Fatal("expected error")
	}

	var rep diag.Reportable
	if !errors.As(err, &rep) {
		t.Fatalf("error is not reportable: %v", err)
	}

	var undefined *eval.UndefinedVariable
	diag.Extract(rep, eval.Errors, func(uv *eval.UndefinedVariable) {
		undefined = uv
	})
	if undefined == nil {
		t.Fatalf("no UndefinedVariable extracted from %v", err)
	}
	if undefined.Variable != "x" {
		t.Errorf("variable: got %q, want %q", undefined.Variable, "x")
	}
}

func TestEvaluateTypeMismatch(t *testing.T) {
	t.Parallel()

	for _, source := range []string{
		"1 + true\n",
		"true < 1\n",
		"1 and true\n",
		"not 1\n",
		"-true\n",
		"1()\n",
		"abs(1, 2)\n",
		"abs(true)\n",
	} {
		source := source
		t.Run(source, func(t *testing.T) {
			t.Parallel()

			_, err := run(t, source)
			if err == nil {
				t.Fatalf("evaluate %q: expected error", source)
			}

			var rep diag.Reportable
			if !errors.As(err, &rep) {
				t.Fatalf("error is not reportable: %v", err)
			}

			fired := false
			diag.Extract(rep, eval.Errors, func(tm *eval.TypeMismatch) {
				fired = true
			})
			if !fired {
				t.Errorf("evaluate %q: no TypeMismatch extracted from %v", source, err)
			}
		})
	}
}

func TestSymbolTableScoping(t *testing.T) {
	t.Parallel()

	parent := eval.NewSymbolTable()
	parent.Symbols["a"] = int64(1)

	child := eval.NewSymbolTable()
	child.Parent = parent

	// writes walk up to the scope already holding the name
	child.Set("a", int64(2))
	if v, _ := parent.Get("a"); v != int64(2) {
		t.Errorf("parent a: got %v, want 2", v)
	}

	// unknown names are defined locally
	child.Set("b", int64(3))
	if _, ok := parent.Get("b"); ok {
		t.Error("b leaked into the parent scope")
	}
	if v, _ := child.Get("b"); v != int64(3) {
		t.Errorf("child b: got %v, want 3", v)
	}

	// a read-only parent is skipped by writes
	parent.ReadOnly = true
	child.Set("a", int64(4))
	if v, _ := child.Symbols["a"]; v != int64(4) {
		t.Errorf("child a: got %v, want 4", v)
	}
	if v, _ := parent.Symbols["a"]; v != int64(2) {
		t.Errorf("parent a: got %v, want 2", v)
	}
}
