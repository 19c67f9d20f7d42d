// Package diag implements the error taxonomy shared by every pipeline stage.
//
// Each stage declares a Stage, a named error aggregate with three kinds of
// case: free text, an opaque wrapped failure (any error value, type erased),
// and labeled structured cases for the kinds the stage declares up front.
// Every aggregate is viewed through the stage-agnostic Reportable interface
// for uniform presentation, and a structured diagnostic buried inside the
// opaque case can be recovered with Extract by runtime type identity.
package diag

import (
	"fmt"
	"strings"

	"github.com/k0kubun/pp"
	"github.com/yaipl-lang/yaipl/internal/token"
)

// Reportable is the stage-agnostic view of a stage error aggregate.
type Reportable interface {
	error
	AggregateName() string
	KindName() string
	Render() string
}

// Positioned marks diagnostics that carry a source position.
type Positioned interface {
	Position() token.Position
}

func init() {
	// KindName parses the rendering, so escape codes must stay out
	pp.ColoringEnabled = false
}

// Detail renders a value in the debug style used by aggregate rendering.
func Detail(v any) string {
	return pp.Sprint(v)
}

// Stage is the declared identity of an error aggregate: its name plus the
// structured kinds registered for introspection.
type Stage struct {
	name  string
	kinds []string
}

func NewStage(name string, kinds ...string) *Stage {
	return &Stage{name: name, kinds: kinds}
}

func (s *Stage) Name() string {
	return s.name
}

// Kinds reports the structured kind names declared for the stage.
func (s *Stage) Kinds() []string {
	return s.kinds
}

type caseKind int

const (
	textCase caseKind = iota
	wrappedCase
	structuredCase
)

// Aggregate is one raised stage failure. Exactly one case is populated.
type Aggregate struct {
	stage      *Stage
	kind       caseKind
	text       string
	wrapped    error
	structured error
}

// Text builds the free-text case.
func (s *Stage) Text(msg string) *Aggregate {
	return &Aggregate{stage: s, kind: textCase, text: msg}
}

func (s *Stage) Textf(format string, args ...any) *Aggregate {
	return s.Text(fmt.Sprintf(format, args...))
}

// Wrap builds the opaque case around any error value, keeping its own
// rendering intact.
func (s *Stage) Wrap(err error) *Aggregate {
	return &Aggregate{stage: s, kind: wrappedCase, wrapped: err}
}

// Structured builds a labeled case for one of the stage's declared kinds.
// The raising path never goes through here: diagnostics propagate as plain
// error values and arrive via Wrap. The case exists for introspection only.
func (s *Stage) Structured(err error) *Aggregate {
	return &Aggregate{stage: s, kind: structuredCase, structured: err}
}

// Demote converts any reportable back into an aggregate of this stage. The
// conversion is deliberately lossy: only the source aggregate's name
// survives, as the free-text case. Structured payload is not recoverable
// this way.
func (s *Stage) Demote(r Reportable) *Aggregate {
	return s.Text(r.AggregateName())
}

func (a *Aggregate) Error() string {
	switch a.kind {
	case wrappedCase:
		return Detail(a.wrapped)
	case structuredCase:
		return a.structured.Error()
	default:
		return a.text
	}
}

func (a *Aggregate) Unwrap() error {
	switch a.kind {
	case wrappedCase:
		return a.wrapped
	case structuredCase:
		return a.structured
	default:
		return nil
	}
}

func (a *Aggregate) AggregateName() string {
	return a.stage.name
}

// KindName identifies the concrete failure as well as the case allows: the
// first word of the wrapped value's detailed rendering for the opaque case,
// the aggregate's own name for structured cases, and "None" for free text.
func (a *Aggregate) KindName() string {
	switch a.kind {
	case wrappedCase:
		return kindNameOf(a.wrapped)
	case structuredCase:
		return a.stage.name
	default:
		return "None"
	}
}

func (a *Aggregate) Render() string {
	switch a.kind {
	case wrappedCase:
		detail := Detail(a.wrapped)
		if strings.HasPrefix(detail, `"`) && strings.HasSuffix(detail, `"`) {
			return a.wrapped.Error()
		}
		return detail
	case structuredCase:
		return Detail(a.structured)
	default:
		return a.text
	}
}

func kindNameOf(err error) string {
	fields := strings.Fields(Detail(err))
	if len(fields) == 0 {
		return ""
	}
	name := strings.TrimPrefix(fields[0], "&")
	if i := strings.IndexByte(name, '{'); i >= 0 {
		name = name[:i]
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// Extract recovers a structured diagnostic of type T from a reportable
// raised by the given stage. It inspects only the opaque wrapped case: the
// value must be an aggregate of the stage, its wrapped failure must have the
// exact runtime type T, and only then is the handler invoked with the fully
// typed diagnostic. In every other situation Extract is a no-op.
func Extract[T error](r Reportable, stage *Stage, handler func(T)) {
	agg, ok := r.(*Aggregate)
	if !ok || agg.stage != stage || agg.kind != wrappedCase {
		return
	}
	if d, ok := agg.wrapped.(T); ok {
		handler(d)
	}
}
