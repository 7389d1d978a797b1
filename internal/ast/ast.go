// Package ast defines the abstract syntax tree node shapes produced by
// internal/parser and consumed by internal/eval (spec.md §3.3), grounded
// in original_source/source/Emplode/AST.hpp's ASTNode_* class hierarchy.
//
// Nodes here are pure data: no Process/evaluation logic lives in this
// package, only the shape of the tree and the operator names a node
// carries. Keeping evaluation out of ast lets both internal/parser and
// internal/eval depend on it without a cycle between parser and eval.
package ast

import "github.com/mercere99/MABE2-sub002/internal/symbol"

// Node is any AST node. Every concrete node records the source line it
// came from, for diagnostics (spec.md §7 "line" field).
type Node interface {
	Line() int
}

// Leaf holds a literal or a resolved variable/function reference (spec.md
// §3.3 "Leaf"), grounded in ASTNode_Leaf.
type Leaf struct {
	Sym    *symbol.Symbol
	LineNo int
}

func (n *Leaf) Line() int { return n.LineNo }

// Block is an ordered sequence of statements sharing one lexical scope
// (spec.md §3.3 "Block"), grounded in ASTNode_Block. Scope is the symbol
// table the block's own declarations are added to; internal/parser sets it
// on every block it builds, and the top-level program block carries the
// root scope.
type Block struct {
	Children []Node
	Scope    *symbol.Scope
	LineNo   int
}

func (n *Block) Line() int { return n.LineNo }

// UnaryOp is a prefix numeric operator (spec.md §3.3 "UnaryOp"; `+`, `-`
// and `!` are the ones parsed and evaluated), grounded in ASTNode_Op1. Op
// holds the operator's source spelling; internal/eval dispatches on it.
type UnaryOp struct {
	Op      string
	Operand Node
	LineNo  int
}

func (n *UnaryOp) Line() int { return n.LineNo }

// BinaryOp is an infix operator over two operands (spec.md §3.3
// "BinaryOp"), grounded in ASTNode_Op2. Operand type (numeric vs string)
// is resolved dynamically by internal/eval, which inspects both operands:
// `&&` and `||` coerce both to numbers, `*` accepts a string on either
// side, and every other operator rejects mixed kinds with a TypeError.
type BinaryOp struct {
	Op          string
	Left, Right Node
	LineNo      int
}

func (n *BinaryOp) Line() int { return n.LineNo }

// Assign is a single `lhs = rhs` assignment (spec.md §3.3 "Assign"),
// grounded in ASTNode_Assign. LHS must evaluate to a non-temporary,
// assignable Symbol; internal/eval enforces this at run time.
type Assign struct {
	LHS, RHS Node
	LineNo   int
}

func (n *Assign) Line() int { return n.LineNo }

// If is a conditional with an optional else branch (spec.md §3.3 "If"),
// grounded in ASTNode_If. Else is nil when the source omitted it.
type If struct {
	Cond, Then, Else Node
	LineNo           int
}

func (n *If) Line() int { return n.LineNo }

// While is a pretest loop (spec.md §3.3 "While"), grounded in
// ASTNode_While.
type While struct {
	Cond, Body Node
	LineNo     int
}

func (n *While) Line() int { return n.LineNo }

// Return is a `RETURN [expression];` statement (see DESIGN.md Open
// Question 2). Value is nil for a bare `RETURN;`.
type Return struct {
	Value  Node
	LineNo int
}

func (n *Return) Line() int { return n.LineNo }

// Call invokes Fn (typically a Leaf resolving to a Function symbol) with
// Args evaluated left to right (spec.md §3.3 "Call"), grounded in
// ASTNode_Call.
type Call struct {
	Fn     Node
	Args   []Node
	LineNo int
}

func (n *Call) Line() int { return n.LineNo }

// Event declares a signal/action binding (spec.md §3.3 "Event", §4.5),
// grounded in ASTNode_Event. Args are the captured parameter expressions
// evaluated once at declaration time; each must resolve to an assignable
// lvalue so the event manager can write trigger-time values into it.
type Event struct {
	Name   string
	Action Node
	Args   []Node
	LineNo int
}

func (n *Event) Line() int { return n.LineNo }

// Children returns the direct subtrees of n, or nil for nodes with no
// children (Leaf). The order is evaluation order except for Event, which
// lists its action first and then its parameter expressions (the
// parameters are evaluated at declaration time, the action only when the
// signal is triggered). It exists for generic tree walks
// (e.g. a debug dumper) that do not need per-kind semantics.
func Children(n Node) []Node {
	switch v := n.(type) {
	case *Leaf:
		return nil
	case *Block:
		return v.Children
	case *UnaryOp:
		return []Node{v.Operand}
	case *BinaryOp:
		return []Node{v.Left, v.Right}
	case *Assign:
		return []Node{v.LHS, v.RHS}
	case *Return:
		if v.Value != nil {
			return []Node{v.Value}
		}
		return nil
	case *If:
		if v.Else != nil {
			return []Node{v.Cond, v.Then, v.Else}
		}
		return []Node{v.Cond, v.Then}
	case *While:
		return []Node{v.Cond, v.Body}
	case *Call:
		out := make([]Node, 0, len(v.Args)+1)
		out = append(out, v.Fn)
		out = append(out, v.Args...)
		return out
	case *Event:
		out := make([]Node, 0, len(v.Args)+1)
		out = append(out, v.Action)
		out = append(out, v.Args...)
		return out
	}
	return nil
}
