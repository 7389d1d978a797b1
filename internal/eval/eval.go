// Package eval implements Emplode's tree-walking evaluator (spec.md §4.3,
// §4.6, part of component C5), grounded in
// original_source/source/Emplode/AST.hpp's ASTNode_*::Process() methods.
// Evaluator.Eval is the single recursive walk described there: every node
// kind maps to exactly one case, and the dispatch-and-release discipline
// the original enforces by hand (delete every temporary that isn't
// adopted) is simply absent here — Go's garbage collector owns that, so
// the walk only has to honor the *semantic* distinction between a
// temporary and a scope-owned symbol (control-sentinel propagation,
// lvalue checks on assignment and event parameters), not memory
// ownership itself.
package eval

import (
	"fmt"
	"math"
	"strings"

	hclog "github.com/hashicorp/go-hclog"

	"github.com/mercere99/MABE2-sub002/internal/ast"
	"github.com/mercere99/MABE2-sub002/internal/events"
	"github.com/mercere99/MABE2-sub002/internal/symbol"
)

// Evaluator walks an AST produced by internal/parser, consulting and
// mutating the internal/symbol scopes the parser already wired each leaf
// to, and dispatching event registrations through an
// internal/events.Manager.
type Evaluator struct {
	Log    hclog.Logger
	Events *events.Manager
	Origin string
}

// New creates an Evaluator. log may be nil, in which case a discarding
// logger is used (mirroring the teacher's pattern of a required but
// often no-op hclog.Logger).
func New(mgr *events.Manager, origin string, log hclog.Logger) *Evaluator {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Evaluator{Log: log, Events: mgr, Origin: origin}
}

// Eval runs node to completion and returns its result symbol, which may
// be nil (no value), a plain temporary/owned Symbol, or a BREAK/CONTINUE/
// RETURN control sentinel that the caller must propagate unmodified.
func (e *Evaluator) Eval(node ast.Node) (*symbol.Symbol, error) {
	switch n := node.(type) {
	case nil:
		return nil, nil
	case *ast.Leaf:
		return e.evalLeaf(n)
	case *ast.Block:
		return e.evalBlock(n)
	case *ast.UnaryOp:
		return e.evalUnary(n)
	case *ast.BinaryOp:
		return e.evalBinary(n)
	case *ast.Assign:
		return e.evalAssign(n)
	case *ast.If:
		return e.evalIf(n)
	case *ast.While:
		return e.evalWhile(n)
	case *ast.Call:
		return e.evalCall(n)
	case *ast.Event:
		return e.evalEvent(n)
	case *ast.Return:
		return e.evalReturn(n)
	default:
		return nil, fmt.Errorf("eval: unhandled node type %T", node)
	}
}

func (e *Evaluator) evalLeaf(n *ast.Leaf) (*symbol.Symbol, error) {
	e.Log.Trace("AST: calling leaf", "name", n.Sym.Name, "value", n.Sym.AsString())
	return n.Sym, nil
}

// evalBlock runs each statement in order, propagating BREAK/CONTINUE/
// RETURN unmodified the moment one appears (spec.md §3.3 "Block").
func (e *Evaluator) evalBlock(n *ast.Block) (*symbol.Symbol, error) {
	e.Log.Trace("AST: processing block", "statements", len(n.Children))
	for _, child := range n.Children {
		out, err := e.Eval(child)
		if err != nil {
			return nil, err
		}
		if out == nil {
			continue
		}
		if out.IsBreak() || out.IsContinue() || out.IsReturn() {
			return out, nil
		}
	}
	return nil, nil
}

func (e *Evaluator) evalUnary(n *ast.UnaryOp) (*symbol.Symbol, error) {
	operand, err := e.Eval(n.Operand)
	if err != nil {
		return nil, err
	}
	val := operand.AsDouble()

	var result float64
	switch n.Op {
	case "-":
		result = -val
	case "+":
		result = val
	case "!":
		if val == 0 {
			result = 1
		}
	default:
		return nil, fmt.Errorf("line %d: unknown unary operator %q", n.Line(), n.Op)
	}
	return symbol.NewTempNum(result), nil
}

// evalBinary implements the operator table of spec.md §4.2.2/§4.6. The
// result's kind is driven by the operator and operand kinds, never fixed
// in advance, mirroring ASTNode_Op2 deferring to its children.
func (e *Evaluator) evalBinary(n *ast.BinaryOp) (*symbol.Symbol, error) {
	e.Log.Trace("AST: processing binary op", "op", n.Op)
	left, err := e.Eval(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := e.Eval(n.Right)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case "&&":
		return symbol.NewTempNum(boolNum(left.AsDouble() != 0 && right.AsDouble() != 0)), nil
	case "||":
		return symbol.NewTempNum(boolNum(left.AsDouble() != 0 || right.AsDouble() != 0)), nil
	}

	bothString := left.IsString() && right.IsString()
	bothNumeric := left.IsNumeric() && right.IsNumeric()

	switch n.Op {
	case "+":
		if bothString {
			return symbol.NewTempStr(left.AsString() + right.AsString()), nil
		}
		if bothNumeric {
			return symbol.NewTempNum(left.AsDouble() + right.AsDouble()), nil
		}
		return nil, e.typeError(n.Line(), "'+' requires two numbers or two strings")

	case "*":
		switch {
		case bothNumeric:
			return symbol.NewTempNum(left.AsDouble() * right.AsDouble()), nil
		case left.IsString() && right.IsNumeric():
			return symbol.NewTempStr(repeatString(left.AsString(), right.AsDouble())), nil
		case right.IsString() && left.IsNumeric():
			return symbol.NewTempStr(repeatString(right.AsString(), left.AsDouble())), nil
		default:
			return nil, e.typeError(n.Line(), "'*' requires two numbers, or a string and a number")
		}

	case "-", "/":
		if !bothNumeric {
			return nil, e.typeError(n.Line(), "'%s' requires two numbers", n.Op)
		}
		if n.Op == "-" {
			return symbol.NewTempNum(left.AsDouble() - right.AsDouble()), nil
		}
		return symbol.NewTempNum(left.AsDouble() / right.AsDouble()), nil

	case "%":
		if !bothNumeric {
			return nil, e.typeError(n.Line(), "'%%' requires two numbers")
		}
		return symbol.NewTempNum(math.Mod(left.AsDouble(), right.AsDouble())), nil

	case "**":
		if !bothNumeric {
			return nil, e.typeError(n.Line(), "'**' requires two numbers")
		}
		return symbol.NewTempNum(math.Pow(left.AsDouble(), right.AsDouble())), nil

	case "==", "!=":
		// Open Question 3 (see DESIGN.md): mixing a number and a string is a
		// TypeError, not a silent false/true.
		if !bothString && !bothNumeric {
			return nil, e.typeError(n.Line(), "cannot compare a string to a number with '%s'", n.Op)
		}
		eq := left.AsString() == right.AsString()
		if bothNumeric {
			eq = left.AsDouble() == right.AsDouble()
		}
		if n.Op == "!=" {
			eq = !eq
		}
		return symbol.NewTempNum(boolNum(eq)), nil

	case "<", "<=", ">", ">=":
		if !bothString && !bothNumeric {
			return nil, e.typeError(n.Line(), "cannot order a string against a number with '%s'", n.Op)
		}
		var cmp int
		if bothNumeric {
			cmp = compareFloat(left.AsDouble(), right.AsDouble())
		} else {
			cmp = strings.Compare(left.AsString(), right.AsString())
		}
		var result bool
		switch n.Op {
		case "<":
			result = cmp < 0
		case "<=":
			result = cmp <= 0
		case ">":
			result = cmp > 0
		case ">=":
			result = cmp >= 0
		}
		return symbol.NewTempNum(boolNum(result)), nil
	}

	return nil, fmt.Errorf("line %d: unknown binary operator %q", n.Line(), n.Op)
}

func (e *Evaluator) typeError(line int, format string, args ...interface{}) error {
	return fmt.Errorf("line %d: TypeError: %s", line, fmt.Sprintf(format, args...))
}

func boolNum(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// repeatString replicates s floor(n) times; a negative count yields "",
// per spec.md §4.6.
func repeatString(s string, n float64) string {
	count := int(math.Floor(n))
	if count <= 0 {
		return ""
	}
	return strings.Repeat(s, count)
}

// evalAssign copies rhs into lhs using lhs's own copy-value policy
// (spec.md §3.3 "Assign", §4.3 item 3) and returns lhs.
func (e *Evaluator) evalAssign(n *ast.Assign) (*symbol.Symbol, error) {
	lhs, err := e.Eval(n.LHS)
	if err != nil {
		return nil, err
	}
	rhs, err := e.Eval(n.RHS)
	if err != nil {
		return nil, err
	}
	e.Log.Trace("AST: assigning", "lhs", lhs.Name, "rhs", rhs.AsString())
	if lhs == nil || lhs.Temporary {
		return nil, fmt.Errorf("line %d: left-hand side of assignment is not an assignable variable", n.Line())
	}
	if err := lhs.CopyValue(rhs); err != nil {
		return nil, fmt.Errorf("line %d: assigning to %q: %w", n.Line(), lhs.Name, err)
	}
	return lhs, nil
}

// evalIf evaluates Cond as a double; zero takes the else branch (if any),
// nonzero takes then. BREAK/CONTINUE/RETURN from either branch propagate.
func (e *Evaluator) evalIf(n *ast.If) (*symbol.Symbol, error) {
	test, err := e.Eval(n.Cond)
	if err != nil {
		return nil, err
	}

	var out *symbol.Symbol
	if test.AsDouble() != 0 {
		out, err = e.Eval(n.Then)
	} else if n.Else != nil {
		out, err = e.Eval(n.Else)
	}
	if err != nil {
		return nil, err
	}
	if out != nil && (out.IsBreak() || out.IsContinue() || out.IsReturn()) {
		return out, nil
	}
	return nil, nil
}

// evalWhile re-evaluates Cond before each iteration. BREAK terminates the
// loop; CONTINUE advances to the next condition check; RETURN propagates
// out past the loop entirely (spec.md §8 boundary behavior: a CONTINUE
// from a nested IF rebinds to the enclosing loop, not any outer one —
// satisfied here because each While's own evalWhile call is the only
// place that interprets CONTINUE/BREAK from its direct body).
func (e *Evaluator) evalWhile(n *ast.While) (*symbol.Symbol, error) {
	for {
		test, err := e.Eval(n.Cond)
		if err != nil {
			return nil, err
		}
		if test.AsDouble() == 0 {
			return nil, nil
		}

		out, err := e.Eval(n.Body)
		if err != nil {
			return nil, err
		}
		if out == nil {
			continue
		}
		if out.IsBreak() {
			return nil, nil
		}
		if out.IsContinue() {
			continue
		}
		if out.IsReturn() {
			return out, nil
		}
	}
}

// evalCall evaluates the callee and arguments left to right, then
// dispatches through the callee's overload set (spec.md §4.3 item 4).
func (e *Evaluator) evalCall(n *ast.Call) (*symbol.Symbol, error) {
	e.Log.Trace("AST: processing call")
	fn, err := e.Eval(n.Fn)
	if err != nil {
		return nil, err
	}
	if !fn.IsFunction() {
		return nil, fmt.Errorf("line %d: TypeError: %q is not callable", n.Line(), fn.Name)
	}

	args := make([]*symbol.Symbol, len(n.Args))
	for i, a := range n.Args {
		v, err := e.Eval(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	e.Log.Trace("AST: calling function", "name", fn.Name, "argc", len(args))
	result := fn.Call(args)
	if result != nil && result.IsError() {
		return nil, fmt.Errorf("line %d: %s", n.Line(), result.ErrMessage)
	}
	return result, nil
}

// evalEvent evaluates the parameter lvalues now (spec.md §4.3 item 5) and
// registers the action with the event manager; the action subtree itself
// is stored unevaluated and run at trigger time.
func (e *Evaluator) evalEvent(n *ast.Event) (*symbol.Symbol, error) {
	e.Log.Trace("AST: processing event", "signal", n.Name)
	params := make([]*symbol.Symbol, len(n.Args))
	for i, a := range n.Args {
		sym, err := e.Eval(a)
		if err != nil {
			return nil, err
		}
		if sym == nil || sym.Temporary {
			return nil, fmt.Errorf("line %d: parameter %d of event %q is not a proper lvalue", n.Line(), i, n.Name)
		}
		params[i] = sym
	}
	if e.Events == nil {
		return nil, fmt.Errorf("line %d: no event manager is wired up", n.Line())
	}
	if err := e.Events.AddAction(n.Name, params, n.Action, n.Line()); err != nil {
		return nil, fmt.Errorf("line %d: %w", n.Line(), err)
	}
	return nil, nil
}

func (e *Evaluator) evalReturn(n *ast.Return) (*symbol.Symbol, error) {
	if n.Value == nil {
		return symbol.NewReturn(nil), nil
	}
	val, err := e.Eval(n.Value)
	if err != nil {
		return nil, err
	}
	return symbol.NewReturn(val), nil
}
