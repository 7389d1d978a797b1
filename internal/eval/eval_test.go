package eval

import (
	"testing"

	"github.com/mercere99/MABE2-sub002/internal/ast"
	"github.com/mercere99/MABE2-sub002/internal/events"
	"github.com/mercere99/MABE2-sub002/internal/symbol"
)

func leaf(s *symbol.Symbol) ast.Node { return &ast.Leaf{Sym: s} }

func newEvaluator() *Evaluator {
	return New(events.NewManager(), "<test>", nil)
}

func TestEvalArithmetic(t *testing.T) {
	e := newEvaluator()
	node := &ast.BinaryOp{
		Op:   "+",
		Left: leaf(symbol.NewTempNum(2)),
		Right: &ast.BinaryOp{
			Op:    "*",
			Left:  leaf(symbol.NewTempNum(3)),
			Right: leaf(symbol.NewTempNum(4)),
		},
	}
	result, err := e.Eval(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.AsDouble() != 14 {
		t.Fatalf("expected 2+3*4=14, got %v", result.AsDouble())
	}
}

func TestEvalStringConcat(t *testing.T) {
	e := newEvaluator()
	node := &ast.BinaryOp{Op: "+", Left: leaf(symbol.NewTempStr("foo")), Right: leaf(symbol.NewTempStr("bar"))}
	result, err := e.Eval(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.AsString() != "foobar" {
		t.Fatalf("expected \"foobar\", got %q", result.AsString())
	}
}

func TestEvalMixedPlusIsTypeError(t *testing.T) {
	e := newEvaluator()
	node := &ast.BinaryOp{Op: "+", Left: leaf(symbol.NewTempStr("foo")), Right: leaf(symbol.NewTempNum(3))}
	if _, err := e.Eval(node); err == nil {
		t.Fatal("expected a TypeError mixing a string and a number with '+'")
	}
}

func TestEvalStringReplication(t *testing.T) {
	e := newEvaluator()
	node := &ast.BinaryOp{Op: "*", Left: leaf(symbol.NewTempStr("ab")), Right: leaf(symbol.NewTempNum(3))}
	result, err := e.Eval(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.AsString() != "ababab" {
		t.Fatalf("expected \"ababab\", got %q", result.AsString())
	}
}

func TestEvalMixedEqualityIsTypeError(t *testing.T) {
	e := newEvaluator()
	node := &ast.BinaryOp{Op: "==", Left: leaf(symbol.NewTempStr("3")), Right: leaf(symbol.NewTempNum(3))}
	if _, err := e.Eval(node); err == nil {
		t.Fatal("expected a TypeError comparing a string to a number with '=='")
	}
}

func TestEvalRelationalStringCompare(t *testing.T) {
	e := newEvaluator()
	node := &ast.BinaryOp{Op: "<", Left: leaf(symbol.NewTempStr("abc")), Right: leaf(symbol.NewTempStr("abd"))}
	result, err := e.Eval(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.AsDouble() != 1 {
		t.Fatalf("expected \"abc\" < \"abd\" to be true, got %v", result.AsDouble())
	}
}

func TestEvalAssignWritesThroughLvalue(t *testing.T) {
	e := newEvaluator()
	v := symbol.NewNumVar("x", 0, "")
	node := &ast.Assign{LHS: leaf(v), RHS: leaf(symbol.NewTempNum(9))}
	if _, err := e.Eval(node); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.AsDouble() != 9 {
		t.Fatalf("expected x to become 9, got %v", v.AsDouble())
	}
}

func TestEvalAssignToTemporaryErrors(t *testing.T) {
	e := newEvaluator()
	node := &ast.Assign{LHS: leaf(symbol.NewTempNum(1)), RHS: leaf(symbol.NewTempNum(2))}
	if _, err := e.Eval(node); err == nil {
		t.Fatal("expected error assigning into a temporary")
	}
}

// BREAK/CONTINUE statements parse down to a Leaf wrapping a
// symbol.NewSpecial sentinel (internal/parser has no dedicated AST node for
// them), so this test reproduces that shape directly rather than depending
// on internal/parser.
func TestEvalWhileBreakViaLeaf(t *testing.T) {
	e := newEvaluator()
	i := symbol.NewNumVar("i", 0, "")
	body := &ast.Block{Children: []ast.Node{
		&ast.Assign{LHS: leaf(i), RHS: &ast.BinaryOp{Op: "+", Left: leaf(i), Right: leaf(symbol.NewTempNum(1))}},
		leaf(symbol.NewSpecial(symbol.SpecialBreak)),
	}}
	loop := &ast.While{Cond: &ast.BinaryOp{Op: "<", Left: leaf(i), Right: leaf(symbol.NewTempNum(5))}, Body: body}
	if _, err := e.Eval(loop); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if i.AsDouble() != 1 {
		t.Fatalf("expected loop to stop after first iteration, got %v", i.AsDouble())
	}
}

func TestEvalReturnPropagatesThroughBlockAndWhile(t *testing.T) {
	e := newEvaluator()
	i := symbol.NewNumVar("i", 0, "")
	body := &ast.Block{Children: []ast.Node{
		&ast.Assign{LHS: leaf(i), RHS: &ast.BinaryOp{Op: "+", Left: leaf(i), Right: leaf(symbol.NewTempNum(1))}},
		&ast.Return{Value: leaf(i)},
	}}
	loop := &ast.While{Cond: &ast.BinaryOp{Op: "<", Left: leaf(i), Right: leaf(symbol.NewTempNum(5))}, Body: body}
	result, err := e.Eval(loop)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil || !result.IsReturn() {
		t.Fatalf("expected a RETURN sentinel to propagate past the while loop, got %#v", result)
	}
	if result.Payload == nil || result.Payload.AsDouble() != 1 {
		t.Fatalf("expected the returned payload to be 1, got %#v", result.Payload)
	}
}

func TestEvalEventCapturesParamsAtDeclarationTime(t *testing.T) {
	mgr := events.NewManager()
	if err := mgr.AddSignal("update", 1); err != nil {
		t.Fatal(err)
	}
	e := New(mgr, "<test>", nil)

	v := symbol.NewNumVar("x", 0, "")
	body := &ast.Block{}
	node := &ast.Event{Name: "update", Action: body, Args: []ast.Node{leaf(v)}}
	if _, err := e.Eval(node); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	actions := mgr.Actions("update")
	if len(actions) != 1 || actions[0].Params[0] != v {
		t.Fatalf("expected the declared action to capture the lvalue symbol itself")
	}
}

func TestEvalEventRejectsTemporaryParam(t *testing.T) {
	mgr := events.NewManager()
	if err := mgr.AddSignal("update", 1); err != nil {
		t.Fatal(err)
	}
	e := New(mgr, "<test>", nil)
	node := &ast.Event{Name: "update", Action: &ast.Block{}, Args: []ast.Node{leaf(symbol.NewTempNum(1))}}
	if _, err := e.Eval(node); err == nil {
		t.Fatal("expected an error binding a temporary as an event parameter")
	}
}

func TestEvalCallDispatchesByArity(t *testing.T) {
	e := newEvaluator()
	fn := symbol.NewFunctionSymbol("add", 2, symbol.ValueNumeric, func(args []*symbol.Symbol) *symbol.Symbol {
		return symbol.NewTempNum(args[0].AsDouble() + args[1].AsDouble())
	})
	node := &ast.Call{Fn: leaf(fn), Args: []ast.Node{leaf(symbol.NewTempNum(2)), leaf(symbol.NewTempNum(5))}}
	result, err := e.Eval(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.AsDouble() != 7 {
		t.Fatalf("expected 2+5=7, got %v", result.AsDouble())
	}
}

func TestEvalUnaryNot(t *testing.T) {
	e := newEvaluator()
	result, err := e.Eval(&ast.UnaryOp{Op: "!", Operand: leaf(symbol.NewTempNum(0))})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.AsDouble() != 1 {
		t.Fatalf("expected !0 to be 1, got %v", result.AsDouble())
	}
}
