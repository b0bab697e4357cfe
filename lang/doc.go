// Copyright © 2024 reachql contributors. All rights reserved.

// Package lang implements the query language (spec.md §6): a
// hand-written lexer, a recursive-descent parser building a small AST,
// and a tree-walking interpreter dispatching to package values'
// combinators. Grounded on the teacher's lr/scanner Tokenizer
// interface and runtime's scope-stack environment, reshaped for a
// single straight-line statement sequence instead of a full grammar
// toolchain.
package lang

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"

	"github.com/reachql/reachql"
)

func tracer() tracing.Trace {
	return tracing.Select("reachql.lang")
}

// Span is a run of input positions, aliasing the module root's type so
// every package speaks the same span currency (spec.md §7: "a syntax
// error reports span + message").
type Span = reachql.Span

// Kind classifies a Diagnostic (spec.md §7's error taxonomy, folded
// into a single type per SPEC_FULL.md §1).
type Kind int

const (
	SyntaxError Kind = iota
	TypeErrorKind
	IOError
	GrammarError
	DomainError
)

func (k Kind) String() string {
	switch k {
	case SyntaxError:
		return "SyntaxError"
	case TypeErrorKind:
		return "TypeError"
	case IOError:
		return "IOError"
	case GrammarError:
		return "GrammarError"
	case DomainError:
		return "DomainError"
	default:
		return "Error"
	}
}

// Diagnostic is the one error type every query-language failure
// surfaces as (spec.md §7, §9). cmd/reachql prints Error() to stderr
// and exits non-zero.
type Diagnostic struct {
	DKind Kind
	Msg   string
	Span  Span
}

func (d *Diagnostic) Error() string {
	if d.Span == (Span{}) {
		return fmt.Sprintf("%s: %s", d.DKind, d.Msg)
	}
	return fmt.Sprintf("%s at %s: %s", d.DKind, d.Span, d.Msg)
}

func newDiag(k Kind, span Span, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{DKind: k, Msg: fmt.Sprintf(format, args...), Span: span}
}
