package lang

import (
	"github.com/reachql/reachql"
)

// TokType aliases the module root's token-category type (spec.md §6).
type TokType = reachql.TokType

const (
	tokEOF TokType = iota
	tokIdent
	tokInt
	tokString
	tokRegex
	tokCFGLiteral

	tokLet
	tokPrint
	tokIn
	tokNot
	tokAnd
	tokOr
	tokIntersect
	tokUnion
	tokConcat
	tokStar
	tokSetStarting
	tokSetFinal
	tokAddStarting
	tokAddFinal
	tokStarting
	tokFinal
	tokNodes
	tokEdges
	tokMarks
	tokReachables
	tokMap
	tokFilter
	tokLoadDOT
	tokLoadGraph
	tokTrue
	tokFalse

	tokAssign   // :=
	tokArrow    // =>
	tokLParen   // (
	tokRParen   // )
	tokComma    // ,
	tokSetOpen  // <|
	tokSetClose // |>
	tokDotDot   // ..
	tokNewline
)

var keywords = map[string]TokType{
	"let":          tokLet,
	"print":        tokPrint,
	"in":           tokIn,
	"not":          tokNot,
	"and":          tokAnd,
	"or":           tokOr,
	"intersect":    tokIntersect,
	"union":        tokUnion,
	"concat":       tokConcat,
	"star":         tokStar,
	"set_starting": tokSetStarting,
	"set_final":    tokSetFinal,
	"add_starting": tokAddStarting,
	"add_final":    tokAddFinal,
	"starting":     tokStarting,
	"final":        tokFinal,
	"nodes":        tokNodes,
	"edges":        tokEdges,
	"marks":        tokMarks,
	"reachables":   tokReachables,
	"map":          tokMap,
	"filter":       tokFilter,
	"load_dot":     tokLoadDOT,
	"load_graph":   tokLoadGraph,
	"true":         tokTrue,
	"false":        tokFalse,
}

// token is the lexer's concrete Token implementation (mirrors
// lr/scanner's DefaultToken), adding the raw literal value the parser
// needs for INT/STRING/regex/cfg-text literals.
type token struct {
	kind   TokType
	lexeme string
	val    interface{}
	span   Span
}

func (t token) TokType() TokType { return t.kind }
func (t token) Lexeme() string   { return t.lexeme }
func (t token) Span() Span       { return t.span }
