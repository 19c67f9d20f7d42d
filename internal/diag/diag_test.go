package diag_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yaipl-lang/yaipl/internal/diag"
)

type tokenMismatch struct {
	Message  string
	Expected string
}

func (e *tokenMismatch) Error() string {
	return e.Message
}

type otherDiagnostic struct {
	Message string
}

func (e *otherDiagnostic) Error() string {
	return e.Message
}

// strErr renders as a bare quoted string in the detailed style.
type strErr string

func (e strErr) Error() string {
	return string(e)
}

func TestDetailRenderingIsPlain(t *testing.T) {
	t.Parallel()

	got := diag.Detail(&tokenMismatch{Message: "unexpected token", Expected: "EndOfLine"})
	if strings.Contains(got, "\x1b[") {
		t.Errorf("Detail: rendering contains escape sequences: %q", got)
	}
	if !strings.Contains(got, "tokenMismatch{") {
		t.Errorf("Detail: %q does not name the type", got)
	}
}

func TestAggregateText(t *testing.T) {
	t.Parallel()

	stage := diag.NewStage("ParserErrors", "TokenMismatch")
	agg := stage.Text("something went wrong")

	if got := agg.AggregateName(); got != "ParserErrors" {
		t.Errorf("AggregateName: got %q", got)
	}
	if got := agg.KindName(); got != "None" {
		t.Errorf("KindName: got %q, want %q", got, "None")
	}
	if got := agg.Render(); got != "something went wrong" {
		t.Errorf("Render: got %q", got)
	}
	if got := agg.Error(); got != "something went wrong" {
		t.Errorf("Error: got %q", got)
	}
}

func TestAggregateWrapped(t *testing.T) {
	t.Parallel()

	stage := diag.NewStage("ParserErrors", "TokenMismatch")
	agg := stage.Wrap(&tokenMismatch{Message: "unexpected token", Expected: "EndOfLine"})

	if got := agg.KindName(); got != "tokenMismatch" {
		t.Errorf("KindName: got %q, want %q", got, "tokenMismatch")
	}
	for _, want := range []string{"unexpected token", "EndOfLine"} {
		if got := agg.Render(); !strings.Contains(got, want) {
			t.Errorf("Render: %q does not contain %q", got, want)
		}
	}
}

func TestAggregateWrappedBareString(t *testing.T) {
	t.Parallel()

	stage := diag.NewStage("LexerErrors")
	agg := stage.Wrap(strErr("plain failure"))

	// one layer of quoting is stripped when the detailed rendering
	// degenerates to a bare quoted string
	if got := agg.Render(); got != "plain failure" {
		t.Errorf("Render: got %q, want %q", got, "plain failure")
	}
}

func TestAggregateStructured(t *testing.T) {
	t.Parallel()

	stage := diag.NewStage("ParserErrors", "TokenMismatch")
	agg := stage.Structured(&tokenMismatch{Message: "unexpected token"})

	// structured cases report the aggregate's own name
	if got := agg.KindName(); got != "ParserErrors" {
		t.Errorf("KindName: got %q, want %q", got, "ParserErrors")
	}
	if got := agg.Error(); got != "unexpected token" {
		t.Errorf("Error: got %q", got)
	}
}

func TestDemoteIsLossy(t *testing.T) {
	t.Parallel()

	stage := diag.NewStage("ParserErrors", "TokenMismatch")
	agg := stage.Wrap(&tokenMismatch{Message: "unexpected token", Expected: "EndOfLine"})

	demoted := stage.Demote(agg)
	if got := demoted.KindName(); got != "None" {
		t.Errorf("KindName: got %q, want %q", got, "None")
	}
	if got := demoted.Render(); got != "ParserErrors" {
		t.Errorf("Render: got %q, want %q", got, "ParserErrors")
	}

	// demoting across stages keeps the target identity and the source name
	other := diag.NewStage("LexerErrors")
	crossed := other.Demote(agg)
	if got := crossed.AggregateName(); got != "LexerErrors" {
		t.Errorf("AggregateName: got %q, want %q", got, "LexerErrors")
	}
	if got := crossed.Render(); got != "ParserErrors" {
		t.Errorf("Render: got %q, want %q", got, "ParserErrors")
	}
}

func TestExtract(t *testing.T) {
	t.Parallel()

	stage := diag.NewStage("ParserErrors", "TokenMismatch")
	raised := &tokenMismatch{Message: "unexpected token", Expected: "EndOfLine"}

	var recovered *tokenMismatch
	diag.Extract(stage.Wrap(raised), stage, func(tm *tokenMismatch) {
		recovered = tm
	})
	if recovered == nil {
		t.Fatal("expected extraction to fire")
	}
	if diff := cmp.Diff(raised, recovered); diff != "" {
		t.Errorf("recovered diagnostic (-want +got):\n%s", diff)
	}
}

func TestExtractNoOps(t *testing.T) {
	t.Parallel()

	stage := diag.NewStage("ParserErrors", "TokenMismatch")
	other := diag.NewStage("LexerErrors")
	raised := &tokenMismatch{Message: "unexpected token"}

	fire := func(what string) func(*tokenMismatch) {
		return func(tm *tokenMismatch) {
			t.Errorf("%s: extraction should not fire, got %+v", what, tm)
		}
	}

	// wrong stage identity
	diag.Extract(stage.Wrap(raised), other, fire("wrong stage"))
	// free-text case
	diag.Extract(stage.Text("unexpected token"), stage, fire("text case"))
	// labeled structured case is never inspected
	diag.Extract(stage.Structured(raised), stage, fire("structured case"))
	// wrong wrapped type
	diag.Extract(stage.Wrap(raised), stage, func(d *otherDiagnostic) {
		t.Errorf("wrong type: extraction should not fire, got %+v", d)
	})
}

func TestStageKinds(t *testing.T) {
	t.Parallel()

	stage := diag.NewStage("RuntimeErrors", "UndefinedVariable", "TypeMismatch")
	if diff := cmp.Diff([]string{"UndefinedVariable", "TypeMismatch"}, stage.Kinds()); diff != "" {
		t.Errorf("Kinds (-want +got):\n%s", diff)
	}
	if got := stage.Name(); got != "RuntimeErrors" {
		t.Errorf("Name: got %q", got)
	}
}
