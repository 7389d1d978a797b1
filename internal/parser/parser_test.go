package parser

import (
	"testing"

	"github.com/mercere99/MABE2-sub002/internal/ast"
	"github.com/mercere99/MABE2-sub002/internal/diag"
	"github.com/mercere99/MABE2-sub002/internal/events"
	"github.com/mercere99/MABE2-sub002/internal/lexer"
	"github.com/mercere99/MABE2-sub002/internal/symbol"
)

func parse(t *testing.T, src string) (*ast.Block, *symbol.Scope, []*symbol.Symbol) {
	t.Helper()
	root := symbol.NewRootScope()
	mgr := events.NewManager()
	hook := &EvalHook{}
	p := New(lexer.New(src), "<test>", root, mgr, hook)
	block, diags := p.ParseProgram()
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	return block, root, nil
}

func TestParseVarDeclarationWithInitializer(t *testing.T) {
	block, root, _ := parse(t, `Var x = 5;`)
	if len(block.Children) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(block.Children))
	}
	assign, ok := block.Children[0].(*ast.Assign)
	if !ok {
		t.Fatalf("expected *ast.Assign, got %T", block.Children[0])
	}
	leaf := assign.LHS.(*ast.Leaf)
	if leaf.Sym.Name != "x" {
		t.Fatalf("expected lhs symbol named x, got %q", leaf.Sym.Name)
	}
	if _, ok := root.GetLocal("x"); !ok {
		t.Fatal("expected x to be declared in the root scope")
	}
}

func TestParseVarDeclarationWithoutInitializerProducesNoNode(t *testing.T) {
	block, root, _ := parse(t, `Var x;`)
	if len(block.Children) != 0 {
		t.Fatalf("expected a bare declaration to emit no statement node, got %d", len(block.Children))
	}
	if _, ok := root.GetLocal("x"); !ok {
		t.Fatal("expected x to still be declared")
	}
}

func TestParseOperatorPrecedence(t *testing.T) {
	// 1 + 2 * 3 should parse as 1 + (2 * 3)
	block, _, _ := parse(t, `Var y = 1 + 2 * 3;`)
	assign := block.Children[0].(*ast.Assign)
	top := assign.RHS.(*ast.BinaryOp)
	if top.Op != "+" {
		t.Fatalf("expected top-level operator '+', got %q", top.Op)
	}
	right := top.Right.(*ast.BinaryOp)
	if right.Op != "*" {
		t.Fatalf("expected right operand to be the '*' subexpression, got %q", right.Op)
	}
}

func TestParseRightAssociativeExponent(t *testing.T) {
	// 2 ** 3 ** 2 should parse as 2 ** (3 ** 2)
	block, _, _ := parse(t, `Var z = 2 ** 3 ** 2;`)
	assign := block.Children[0].(*ast.Assign)
	top := assign.RHS.(*ast.BinaryOp)
	if top.Op != "**" {
		t.Fatalf("expected top operator '**', got %q", top.Op)
	}
	if _, ok := top.Right.(*ast.BinaryOp); !ok {
		t.Fatalf("expected right-associative nesting on the right operand, got %T", top.Right)
	}
	if _, ok := top.Left.(*ast.Leaf); !ok {
		t.Fatalf("expected left operand to be a single leaf, got %T", top.Left)
	}
}

func TestParseIfWhileBreakContinue(t *testing.T) {
	block, _, _ := parse(t, `
Var i = 0;
WHILE (i < 10) {
	i = i + 1;
	IF (i == 3) {
		CONTINUE;
	}
	IF (i == 5) {
		BREAK;
	}
}
`)
	if len(block.Children) != 2 {
		t.Fatalf("expected 2 top-level statements, got %d", len(block.Children))
	}
	loop, ok := block.Children[1].(*ast.While)
	if !ok {
		t.Fatalf("expected *ast.While, got %T", block.Children[1])
	}
	body := loop.Body.(*ast.Block)
	if len(body.Children) != 3 {
		t.Fatalf("expected 3 statements in the loop body, got %d", len(body.Children))
	}
}

func TestParseUnresolvedIdentifierIsDiagnostic(t *testing.T) {
	root := symbol.NewRootScope()
	mgr := events.NewManager()
	hook := &EvalHook{}
	p := New(lexer.New(`Var y = x + 1;`), "<test>", root, mgr, hook)
	_, diags := p.ParseProgram()
	if len(diags) == 0 {
		t.Fatal("expected a diagnostic for the unresolved identifier x")
	}
}

func TestParseBareIdentifierScansOutwardThroughParentScopes(t *testing.T) {
	root := symbol.NewRootScope()
	outer := symbol.NewNumVar("shared", 1, "")
	if err := root.Add(outer); err != nil {
		t.Fatal(err)
	}
	mgr := events.NewManager()
	hook := &EvalHook{}
	p := New(lexer.New(`
Struct inner {
	Var y = shared;
}
`), "<test>", root, mgr, hook)
	_, diags := p.ParseProgram()
	if len(diags) != 0 {
		t.Fatalf("expected a bare identifier to scan outward to the root scope, got diagnostics: %v", diags)
	}
}

func TestParseLeadingDotDoesNotScanOutward(t *testing.T) {
	root := symbol.NewRootScope()
	outer := symbol.NewNumVar("shared", 1, "")
	if err := root.Add(outer); err != nil {
		t.Fatal(err)
	}
	mgr := events.NewManager()
	hook := &EvalHook{}
	// A single leading '.' restricts lookup to the current scope only; since
	// "shared" isn't declared inside "inner", this must fail to resolve
	// even though the bare identifier would find the outer one.
	p := New(lexer.New(`
Struct inner {
	Var y = .shared;
}
`), "<test>", root, mgr, hook)
	_, diags := p.ParseProgram()
	if len(diags) == 0 {
		t.Fatal("expected '.shared' to fail to resolve inside \"inner\"")
	}
}

func TestParseEventDeclaration(t *testing.T) {
	root := symbol.NewRootScope()
	x := symbol.NewNumVar("x", 0, "")
	if err := root.Add(x); err != nil {
		t.Fatal(err)
	}
	mgr := events.NewManager()
	if err := mgr.AddSignal("update", 1); err != nil {
		t.Fatal(err)
	}
	hook := &EvalHook{}
	p := New(lexer.New(`@update(x) x = x + 1;`), "<test>", root, mgr, hook)
	block, diags := p.ParseProgram()
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	ev, ok := block.Children[0].(*ast.Event)
	if !ok {
		t.Fatalf("expected *ast.Event, got %T", block.Children[0])
	}
	if ev.Name != "update" || len(ev.Args) != 1 {
		t.Fatalf("expected event \"update\" with 1 arg, got %+v", ev)
	}
}

func TestParseEventUndeclaredSignalFails(t *testing.T) {
	root := symbol.NewRootScope()
	mgr := events.NewManager()
	hook := &EvalHook{}
	p := New(lexer.New(`@nope() BREAK;`), "<test>", root, mgr, hook)
	_, diags := p.ParseProgram()
	if len(diags) == 0 {
		t.Fatal("expected a diagnostic for an undeclared signal")
	}
}

func TestParseFunctionDefRegistersOverloadableSymbol(t *testing.T) {
	root := symbol.NewRootScope()
	mgr := events.NewManager()
	hook := &EvalHook{}
	p := New(lexer.New(`
FUNCTION Var add(Var a, Var b) {
	RETURN a + b;
}
`), "<test>", root, mgr, hook)
	_, diags := p.ParseProgram()
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	fn, ok := root.GetLocal("add")
	if !ok || !fn.IsFunction() {
		t.Fatalf("expected \"add\" to be registered as a Function symbol")
	}
	hook.Eval = func(node ast.Node) (*symbol.Symbol, error) { return nil, nil }
	result := fn.Call([]*symbol.Symbol{symbol.NewTempNum(2), symbol.NewTempNum(3)})
	if result.IsError() {
		t.Fatalf("unexpected error calling add: %s", result.ErrMessage)
	}
}

func TestParseRejectsIndexedAccess(t *testing.T) {
	root := symbol.NewRootScope()
	x := symbol.NewNumVar("x", 0, "")
	_ = root.Add(x)
	mgr := events.NewManager()
	hook := &EvalHook{}
	p := New(lexer.New(`Var y = x[0];`), "<test>", root, mgr, hook)
	_, diags := p.ParseProgram()
	if len(diags) == 0 {
		t.Fatal("expected a diagnostic rejecting indexed access")
	}
}

func TestParseSurfacesLexErrorsAsCategoryLexDiagnostics(t *testing.T) {
	root := symbol.NewRootScope()
	mgr := events.NewManager()
	hook := &EvalHook{}
	p := New(lexer.New("Var a = \xff;"), "<test>", root, mgr, hook)
	_, diags := p.ParseProgram()

	var sawLexError bool
	for _, d := range diags {
		if d.Category == diag.CategoryLex {
			sawLexError = true
		}
	}
	if !sawLexError {
		t.Fatalf("expected a CategoryLex diagnostic among %v", diags)
	}
}

func TestParseBuiltinAccessor(t *testing.T) {
	root := symbol.NewRootScope()
	x := symbol.NewNumVar("x", 7, "")
	_ = root.Add(x)
	mgr := events.NewManager()
	hook := &EvalHook{}
	p := New(lexer.New(`Var y = x:value;`), "<test>", root, mgr, hook)
	_, diags := p.ParseProgram()
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
}
