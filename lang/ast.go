package lang

// Program is a parsed query-language source: a straight-line sequence
// of statements (spec.md §6: `program := (stmt '\n')*`).
type Program struct {
	Stmts []Stmt
}

// Stmt is a top-level statement: `let` or `print`.
type Stmt interface {
	stmtNode()
}

type LetStmt struct {
	Name  string
	Value Expr
}

type PrintStmt struct {
	Value Expr
}

func (LetStmt) stmtNode()   {}
func (PrintStmt) stmtNode() {}

// Expr is any query-language expression node.
type Expr interface {
	exprNode()
	span() Span
}

type IntLit struct {
	Value int
	Sp    Span
}

type BoolLit struct {
	Value bool
	Sp    Span
}

type StringLit struct {
	Value string
	Sp    Span
}

type RegexLit struct {
	Pattern string
	Sp      Span
}

type CFGLit struct {
	Text string
	Sp   Span
}

type VarRef struct {
	Name string
	Sp   Span
}

// TupleExpr is the `(e1, e2)`/`(e1, e2, e3)` literal (spec.md §6).
type TupleExpr struct {
	Elems []Expr
	Sp    Span
}

// SetLit is `<| e1, e2, ... |>` or the range form `<| lo .. hi |>`.
type SetLit struct {
	Elems   []Expr
	IsRange bool
	Sp      Span
}

// InExpr is `e 'in' s`.
type InExpr struct {
	Elem, Set Expr
	Sp        Span
}

type NotExpr struct {
	X  Expr
	Sp Span
}

// BinExpr covers the binary combinators: and/or/intersect/union/concat
// plus the set_starting/set_final/add_starting/add_final family, whose
// right operand is itself an expr per spec.md §6.
type BinExpr struct {
	Op       TokType
	Left     Expr
	Right    Expr
	Sp       Span
}

// PostfixExpr covers the unary postfix combinators: star, starting,
// final, nodes, edges, marks, reachables.
type PostfixExpr struct {
	Op TokType
	X  Expr
	Sp Span
}

// MapFilterExpr is `e 'map' '(' pattern '=>' body ')'` or the `filter` form.
type MapFilterExpr struct {
	Op   TokType
	X    Expr
	Pat  Pattern
	Body Expr
	Sp   Span
}

// LoadExpr is `load_dot STRING` or `load_graph STRING`.
type LoadExpr struct {
	Op   TokType
	Path string
	Sp   Span
}

func (IntLit) exprNode()        {}
func (BoolLit) exprNode()       {}
func (StringLit) exprNode()     {}
func (RegexLit) exprNode()      {}
func (CFGLit) exprNode()        {}
func (VarRef) exprNode()        {}
func (TupleExpr) exprNode()     {}
func (SetLit) exprNode()        {}
func (InExpr) exprNode()        {}
func (NotExpr) exprNode()       {}
func (BinExpr) exprNode()       {}
func (PostfixExpr) exprNode()   {}
func (MapFilterExpr) exprNode() {}
func (LoadExpr) exprNode()      {}

func (e IntLit) span() Span        { return e.Sp }
func (e BoolLit) span() Span       { return e.Sp }
func (e StringLit) span() Span     { return e.Sp }
func (e RegexLit) span() Span      { return e.Sp }
func (e CFGLit) span() Span        { return e.Sp }
func (e VarRef) span() Span        { return e.Sp }
func (e TupleExpr) span() Span     { return e.Sp }
func (e SetLit) span() Span        { return e.Sp }
func (e InExpr) span() Span        { return e.Sp }
func (e NotExpr) span() Span       { return e.Sp }
func (e BinExpr) span() Span       { return e.Sp }
func (e PostfixExpr) span() Span   { return e.Sp }
func (e MapFilterExpr) span() Span { return e.Sp }
func (e LoadExpr) span() Span      { return e.Sp }

// Pattern is the parsed form of spec.md §4.10's destructuring patterns,
// distinct from values.Pattern until the interpreter compiles it (a
// name here may shadow an outer binding, which package values' pattern
// matcher doesn't need to know about).
type Pattern interface {
	patternNode()
}

type AnyPattern struct{}
type NamePattern struct{ Name string }
type TuplePattern struct{ Elems []Pattern }

func (AnyPattern) patternNode()   {}
func (NamePattern) patternNode()  {}
func (TuplePattern) patternNode() {}
