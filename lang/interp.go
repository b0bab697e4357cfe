package lang

import (
	"github.com/reachql/reachql/grammar"
	"github.com/reachql/reachql/values"
)

// reachableValue is the set of methods FA and CFGValue both implement
// for the nodes/edges/marks/starting/final/reachables postfix
// combinators (spec.md §4.9's table rows that apply "to both FA and
// CFG").
type reachableValue interface {
	Starting() *values.Set
	Final() *values.Set
	Nodes() *values.Set
	Edges() *values.Set
	Marks() *values.Set
	Reachables() *values.Set
}

type unionable interface {
	Union(values.Value) (values.Value, error)
}
type concatable interface {
	Concat(values.Value) (values.Value, error)
}
type intersectable interface {
	Intersect(values.Value) (values.Value, error)
}

// Interp is a tree-walking evaluator over the query AST (spec.md
// §4.11): operators correspond 1-1 to §4.9 combinators, `print` writes
// a value's canonical textual form.
type Interp struct {
	Env    *Env
	Loader Loader
	Out    func(string)
}

// NewInterp creates an interpreter writing `print` output via out.
func NewInterp(loader Loader, out func(string)) *Interp {
	return &Interp{Env: NewEnv(), Loader: loader, Out: out}
}

// Run evaluates every statement of prog in order.
func (in *Interp) Run(prog *Program) error {
	for _, stmt := range prog.Stmts {
		if err := in.execStmt(stmt); err != nil {
			if te, ok := err.(*values.TypeError); ok {
				return newDiag(TypeErrorKind, Span{}, "%s", te)
			}
			return err
		}
	}
	return nil
}

func (in *Interp) execStmt(stmt Stmt) error {
	switch s := stmt.(type) {
	case LetStmt:
		v, err := in.eval(s.Value)
		if err != nil {
			return err
		}
		in.Env.Bind(s.Name, v)
		return nil
	case PrintStmt:
		v, err := in.eval(s.Value)
		if err != nil {
			return err
		}
		in.Out(v.String())
		return nil
	}
	return newDiag(SyntaxError, Span{}, "unknown statement %T", stmt)
}

func (in *Interp) eval(e Expr) (values.Value, error) {
	switch x := e.(type) {
	case IntLit:
		return values.Atom{Raw: x.Value}, nil
	case BoolLit:
		return values.Atom{Raw: x.Value}, nil
	case StringLit:
		return values.Atom{Raw: x.Value}, nil
	case RegexLit:
		fa, err := values.FAFromRegex(x.Pattern)
		if err != nil {
			return nil, wrapDomain(x.Sp, err)
		}
		return fa, nil
	case CFGLit:
		return in.evalCFGLit(x)
	case VarRef:
		v, ok := in.Env.Lookup(x.Name)
		if !ok {
			return nil, newDiag(DomainError, x.Sp, "undefined variable %q", x.Name)
		}
		return v, nil
	case TupleExpr:
		return in.evalTuple(x)
	case SetLit:
		return in.evalSet(x)
	case InExpr:
		return in.evalIn(x)
	case NotExpr:
		return in.evalNot(x)
	case BinExpr:
		return in.evalBin(x)
	case PostfixExpr:
		return in.evalPostfix(x)
	case MapFilterExpr:
		return in.evalMapFilter(x)
	case LoadExpr:
		return in.evalLoad(x)
	}
	return nil, newDiag(SyntaxError, Span{}, "unknown expression %T", e)
}

func (in *Interp) evalCFGLit(x CFGLit) (values.Value, error) {
	g, err := parseCFGText(x.Text)
	if err != nil {
		return nil, newDiag(GrammarError, x.Sp, "%s", err)
	}
	return values.NewCFGValue(g), nil
}

func (in *Interp) evalTuple(x TupleExpr) (values.Value, error) {
	elems := make([]values.Value, len(x.Elems))
	for i, e := range x.Elems {
		v, err := in.eval(e)
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	switch len(elems) {
	case 2:
		return values.NewPair(elems[0], elems[1])
	case 3:
		return values.NewTriple(elems[0], elems[1], elems[2])
	}
	return values.Tuple{Elems: elems}, nil
}

func (in *Interp) evalSet(x SetLit) (values.Value, error) {
	if x.IsRange {
		lo, err := in.eval(x.Elems[0])
		if err != nil {
			return nil, err
		}
		hi, err := in.eval(x.Elems[1])
		if err != nil {
			return nil, err
		}
		loA, loOK := lo.(values.Atom)
		hiA, hiOK := hi.(values.Atom)
		loI, loIntOK := loA.Raw.(int)
		hiI, hiIntOK := hiA.Raw.(int)
		if !loOK || !hiOK || !loIntOK || !hiIntOK {
			return nil, newDiag(TypeErrorKind, x.Sp, "a range requires two integers")
		}
		var elems []values.Value
		for i := loI; i <= hiI; i++ {
			elems = append(elems, values.Atom{Raw: i})
		}
		return values.NewSet(elems...)
	}
	elems := make([]values.Value, len(x.Elems))
	for i, e := range x.Elems {
		v, err := in.eval(e)
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	s, err := values.NewSet(elems...)
	if err != nil {
		return nil, retag(x.Sp, err)
	}
	return s, nil
}

func (in *Interp) evalIn(x InExpr) (values.Value, error) {
	elem, err := in.eval(x.Elem)
	if err != nil {
		return nil, err
	}
	setVal, err := in.eval(x.Set)
	if err != nil {
		return nil, err
	}
	s, ok := setVal.(*values.Set)
	if !ok {
		return nil, newDiag(TypeErrorKind, x.Sp, "'in' requires a set on the right, got %s", setVal.Kind())
	}
	return values.Atom{Raw: s.Contains(elem)}, nil
}

func (in *Interp) evalNot(x NotExpr) (values.Value, error) {
	v, err := in.eval(x.X)
	if err != nil {
		return nil, err
	}
	b, ok := asBool(v)
	if !ok {
		return nil, newDiag(TypeErrorKind, x.Sp, "'not' requires a bool operand")
	}
	return values.Atom{Raw: !b}, nil
}

func (in *Interp) evalBin(x BinExpr) (values.Value, error) {
	left, err := in.eval(x.Left)
	if err != nil {
		return nil, err
	}
	switch x.Op {
	case tokAnd, tokOr:
		right, err := in.eval(x.Right)
		if err != nil {
			return nil, err
		}
		lb, lok := asBool(left)
		rb, rok := asBool(right)
		if !lok || !rok {
			return nil, newDiag(TypeErrorKind, x.Sp, "%q requires bool operands", tokName(x.Op))
		}
		if x.Op == tokAnd {
			return values.Atom{Raw: lb && rb}, nil
		}
		return values.Atom{Raw: lb || rb}, nil
	case tokIntersect:
		right, err := in.eval(x.Right)
		if err != nil {
			return nil, err
		}
		i, ok := left.(intersectable)
		if !ok {
			return nil, newDiag(TypeErrorKind, x.Sp, "'intersect' needs an FA or CFG on the left, got %s", left.Kind())
		}
		return i.Intersect(right)
	case tokUnion:
		right, err := in.eval(x.Right)
		if err != nil {
			return nil, err
		}
		u, ok := left.(unionable)
		if !ok {
			return nil, newDiag(TypeErrorKind, x.Sp, "'union' needs an FA or CFG on the left, got %s", left.Kind())
		}
		return u.Union(right)
	case tokConcat:
		right, err := in.eval(x.Right)
		if err != nil {
			return nil, err
		}
		c, ok := left.(concatable)
		if !ok {
			return nil, newDiag(TypeErrorKind, x.Sp, "'concat' needs an FA or CFG on the left, got %s", left.Kind())
		}
		return c.Concat(right)
	case tokSetStarting, tokSetFinal, tokAddStarting, tokAddFinal:
		fa, ok := left.(*values.FA)
		if !ok {
			return nil, newDiag(TypeErrorKind, x.Sp, "%q is only defined on a finite automaton", tokName(x.Op))
		}
		rightVal, err := in.eval(x.Right)
		if err != nil {
			return nil, err
		}
		set, ok := rightVal.(*values.Set)
		if !ok {
			return nil, newDiag(TypeErrorKind, x.Sp, "%q requires a set on the right", tokName(x.Op))
		}
		switch x.Op {
		case tokSetStarting:
			return fa.SetStart(set)
		case tokSetFinal:
			return fa.SetFinal(set)
		case tokAddStarting:
			return fa.AddStart(set)
		default:
			return fa.AddFinal(set)
		}
	}
	return nil, newDiag(SyntaxError, x.Sp, "unknown binary operator")
}

func (in *Interp) evalPostfix(x PostfixExpr) (values.Value, error) {
	v, err := in.eval(x.X)
	if err != nil {
		return nil, err
	}
	if x.Op == tokStar {
		fa, ok := v.(*values.FA)
		if !ok {
			return nil, newDiag(TypeErrorKind, x.Sp, "'star' is only defined on a finite automaton")
		}
		return fa.Star(), nil
	}
	r, ok := v.(reachableValue)
	if !ok {
		return nil, newDiag(TypeErrorKind, x.Sp, "%q needs an FA or CFG, got %s", tokName(x.Op), v.Kind())
	}
	switch x.Op {
	case tokStarting:
		return r.Starting(), nil
	case tokFinal:
		return r.Final(), nil
	case tokNodes:
		return r.Nodes(), nil
	case tokEdges:
		return r.Edges(), nil
	case tokMarks:
		return r.Marks(), nil
	case tokReachables:
		return r.Reachables(), nil
	}
	return nil, newDiag(SyntaxError, x.Sp, "unknown postfix operator")
}

func (in *Interp) evalMapFilter(x MapFilterExpr) (values.Value, error) {
	v, err := in.eval(x.X)
	if err != nil {
		return nil, err
	}
	set, ok := v.(*values.Set)
	if !ok {
		return nil, newDiag(TypeErrorKind, x.Sp, "%q requires a set, got %s", tokName(x.Op), v.Kind())
	}
	if x.Op == tokMap {
		return set.Map(func(elem values.Value) (values.Value, error) {
			return in.evalLambda(x.Pat, x.Body, elem)
		})
	}
	return set.Filter(func(elem values.Value) (bool, error) {
		result, err := in.evalLambda(x.Pat, x.Body, elem)
		if err != nil {
			return false, err
		}
		b, ok := asBool(result)
		if !ok {
			return false, newDiag(TypeErrorKind, x.Sp, "'filter' predicate must evaluate to a bool")
		}
		return b, nil
	})
}

// evalLambda implements the §4.11 map/filter state machine: push a
// fresh scope, bind the pattern's matches, evaluate body, pop. The AST
// pattern is compiled to a values.Pattern and matched via
// values.Match, so the query language's pattern syntax and the
// runtime's destructuring rules (spec.md §4.10) share one
// implementation.
func (in *Interp) evalLambda(pat Pattern, body Expr, elem values.Value) (values.Value, error) {
	bindings, err := values.Match(toValuesPattern(pat), elem)
	if err != nil {
		return nil, newDiag(TypeErrorKind, Span{}, "%s", err)
	}
	in.Env.Push()
	defer in.Env.Pop()
	for name, v := range bindings {
		in.Env.Bind(name, v)
	}
	return in.eval(body)
}

func toValuesPattern(pat Pattern) values.Pattern {
	switch p := pat.(type) {
	case AnyPattern:
		return values.Any{}
	case NamePattern:
		return values.Name{Ident: p.Name}
	case TuplePattern:
		switch len(p.Elems) {
		case 2:
			return values.PairPattern{First: toValuesPattern(p.Elems[0]), Second: toValuesPattern(p.Elems[1])}
		case 3:
			return values.TriplePattern{First: toValuesPattern(p.Elems[0]), Second: toValuesPattern(p.Elems[1]), Third: toValuesPattern(p.Elems[2])}
		}
	}
	return values.Any{}
}

func (in *Interp) evalLoad(x LoadExpr) (values.Value, error) {
	if in.Loader == nil {
		return nil, newDiag(IOError, x.Sp, "no graph/grammar catalog configured")
	}
	if x.Op == tokLoadGraph {
		v, err := in.Loader.LoadGraph(x.Path)
		if err != nil {
			return nil, wrapIO(x.Sp, err)
		}
		return v, nil
	}
	v, err := in.Loader.LoadDOT(x.Path)
	if err != nil {
		return nil, wrapIO(x.Sp, err)
	}
	return v, nil
}

func asBool(v values.Value) (bool, bool) {
	a, ok := v.(values.Atom)
	if !ok {
		return false, false
	}
	b, ok := a.Raw.(bool)
	return b, ok
}

func tokName(k TokType) string {
	for name, t := range keywords {
		if t == k {
			return name
		}
	}
	return "?"
}

func wrapDomain(sp Span, err error) error {
	return newDiag(DomainError, sp, "%s", err)
}

func wrapIO(sp Span, err error) error {
	return newDiag(IOError, sp, "%s", err)
}

func retag(sp Span, err error) error {
	return newDiag(TypeErrorKind, sp, "%s", err)
}

// parseCFGText parses a c"..." literal's body as the plain CFG format
// (spec.md §3: "CFG literals are text per §3" — the dual plain/extended
// dialect fallback is a file-reading concern of package external, not
// of an inline literal).
func parseCFGText(text string) (*grammar.CFG, error) {
	return grammar.ParseCFG(text, "")
}
