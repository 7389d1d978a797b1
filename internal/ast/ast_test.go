package ast

import (
	"testing"

	"github.com/mercere99/MABE2-sub002/internal/symbol"
)

func leaf(n string) Node { return &Leaf{Sym: symbol.NewNumVar(n, 0, "")} }

func TestChildrenLeafIsNil(t *testing.T) {
	if got := Children(leaf("x")); got != nil {
		t.Errorf("Children(Leaf) = %v, want nil", got)
	}
}

func TestChildrenBlockReturnsItsOwnList(t *testing.T) {
	b := &Block{Children: []Node{leaf("a"), leaf("b")}}
	got := Children(b)
	if len(got) != 2 || got[0] != b.Children[0] || got[1] != b.Children[1] {
		t.Errorf("Children(Block) = %v, want %v", got, b.Children)
	}
}

func TestChildrenBinaryOpIsLeftThenRight(t *testing.T) {
	left, right := leaf("a"), leaf("b")
	op := &BinaryOp{Op: "+", Left: left, Right: right}
	got := Children(op)
	if len(got) != 2 || got[0] != left || got[1] != right {
		t.Errorf("Children(BinaryOp) = %v, want [left, right]", got)
	}
}

func TestChildrenIfOmitsNilElse(t *testing.T) {
	cond, then := leaf("c"), leaf("t")
	n := &If{Cond: cond, Then: then}
	got := Children(n)
	if len(got) != 2 {
		t.Fatalf("Children(If without else) = %v, want 2 entries", got)
	}

	els := leaf("e")
	n.Else = els
	got = Children(n)
	if len(got) != 3 || got[2] != els {
		t.Fatalf("Children(If with else) = %v, want 3 entries ending in else", got)
	}
}

func TestChildrenReturnOmitsNilValue(t *testing.T) {
	if got := Children(&Return{}); got != nil {
		t.Errorf("Children(bare Return) = %v, want nil", got)
	}
	v := leaf("v")
	if got := Children(&Return{Value: v}); len(got) != 1 || got[0] != v {
		t.Errorf("Children(Return{Value}) = %v, want [v]", got)
	}
}

func TestChildrenCallIsFnThenArgs(t *testing.T) {
	fn, a, b := leaf("f"), leaf("a"), leaf("b")
	got := Children(&Call{Fn: fn, Args: []Node{a, b}})
	if len(got) != 3 || got[0] != fn || got[1] != a || got[2] != b {
		t.Errorf("Children(Call) = %v, want [fn, a, b]", got)
	}
}

func TestChildrenEventIsActionThenArgs(t *testing.T) {
	action, p := leaf("action"), leaf("param")
	got := Children(&Event{Action: action, Args: []Node{p}})
	if len(got) != 2 || got[0] != action || got[1] != p {
		t.Errorf("Children(Event) = %v, want [action, param]", got)
	}
}

func TestLineNumbersRoundTrip(t *testing.T) {
	nodes := []Node{
		&Leaf{LineNo: 1},
		&Block{LineNo: 2},
		&UnaryOp{LineNo: 3},
		&BinaryOp{LineNo: 4},
		&Assign{LineNo: 5},
		&If{LineNo: 6},
		&While{LineNo: 7},
		&Return{LineNo: 8},
		&Call{LineNo: 9},
		&Event{LineNo: 10},
	}
	for i, n := range nodes {
		if n.Line() != i+1 {
			t.Errorf("node %T: Line() = %d, want %d", n, n.Line(), i+1)
		}
	}
}
