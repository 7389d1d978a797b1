// Package events implements Emplode's signal/action registry (spec.md
// §4.5), grounded in original_source/source/Emplode/EventManager.hpp's
// EventManager/Event/Action classes.
//
// A SIGNAL is declared once by the host (AddSignal) with a fixed
// parameter count. An ACTION binds a signal name to an AST subtree plus a
// list of captured parameter lvalues (AddAction, called by internal/eval
// when it evaluates the ast.Event node internal/parser builds for an
// `@signal(...) action` declaration).
// TRIGGER runs every action registered against a signal, in registration
// order, copying the trigger-time argument values into each action's
// captured parameters first.
//
// This package depends only on internal/ast and internal/symbol, not on
// internal/eval: an Action needs to evaluate AST nodes (its parameter
// lvalues and its body) but doing that is internal/eval's job. The small
// Evaluator interface below is satisfied by *eval.Evaluator without this
// package importing it, which keeps internal/eval -> internal/events a
// one-way dependency.
package events

import (
	"fmt"

	"github.com/mercere99/MABE2-sub002/internal/ast"
	"github.com/mercere99/MABE2-sub002/internal/symbol"
)

// Evaluator is the subset of internal/eval.Evaluator's surface an Action
// needs to run its parameter expressions and its body.
type Evaluator interface {
	Eval(node ast.Node) (*symbol.Symbol, error)
}

// Action is one `@signal(params...) action` declaration (spec.md §4.5),
// grounded in EventManager::Action. Params holds the already-resolved
// lvalue symbols: spec.md §4.3 item 5 evaluates the parameter
// expressions once, at declaration time, so repeated triggers only ever
// rebind into the same captured symbols. Node (the action body) is
// evaluated fresh on every trigger.
type Action struct {
	SignalName string
	Params     []*symbol.Symbol
	Node       ast.Node
	DefLine    int
}

// Trigger binds args into this action's captured parameters (left to
// right) and runs its body.
func (a *Action) Trigger(ev Evaluator, args []*symbol.Symbol) error {
	if len(args) < len(a.Params) {
		return fmt.Errorf("trigger of %q (defined on line %d) called with %d argument(s), but %d parameter(s) need values",
			a.SignalName, a.DefLine, len(args), len(a.Params))
	}

	for i, paramSym := range a.Params {
		if err := paramSym.CopyValue(args[i]); err != nil {
			return fmt.Errorf("binding parameter %d of %q: %w", i, a.SignalName, err)
		}
	}

	_, err := ev.Eval(a.Node)
	return err
}

// Event is one declared signal and the ordered list of actions registered
// against it.
type Event struct {
	SignalName string
	NumParams  int
	Actions    []*Action
}

// Trigger runs every action on this event, in registration order,
// stopping at the first error.
func (e *Event) Trigger(ev Evaluator, args []*symbol.Symbol) error {
	for _, a := range e.Actions {
		if err := a.Trigger(ev, args); err != nil {
			return err
		}
	}
	return nil
}

// Manager is the host-facing signal/action registry (spec.md §4.5),
// grounded in EventManager.
type Manager struct {
	byName map[string]*Event
	order  []string
}

// NewManager creates an empty registry.
func NewManager() *Manager {
	return &Manager{byName: make(map[string]*Event)}
}

// HasSignal reports whether signalName has been declared.
func (m *Manager) HasSignal(signalName string) bool {
	_, ok := m.byName[signalName]
	return ok
}

// AddSignal declares a new signal accepting numParams trigger-time
// arguments. Redeclaring an existing signal is an error.
func (m *Manager) AddSignal(signalName string, numParams int) error {
	if m.HasSignal(signalName) {
		return fmt.Errorf("signal %q already declared", signalName)
	}
	m.byName[signalName] = &Event{SignalName: signalName, NumParams: numParams}
	m.order = append(m.order, signalName)
	return nil
}

// AddAction registers a new action against an already-declared signal.
// params must already be resolved, non-temporary lvalue symbols (spec.md
// §4.3 item 5); the caller (internal/eval, when it evaluates an
// ast.Event node) is responsible for evaluating and validating them.
func (m *Manager) AddAction(signalName string, params []*symbol.Symbol, action ast.Node, defLine int) error {
	ev, ok := m.byName[signalName]
	if !ok {
		return fmt.Errorf("cannot bind action to undeclared signal %q", signalName)
	}
	ev.Actions = append(ev.Actions, &Action{
		SignalName: signalName,
		Params:     params,
		Node:       action,
		DefLine:    defLine,
	})
	return nil
}

// Trigger fires signalName with args, running every bound action in
// registration order. Triggering an undeclared signal is an error.
func (m *Manager) Trigger(evaluator Evaluator, signalName string, args ...*symbol.Symbol) error {
	ev, ok := m.byName[signalName]
	if !ok {
		return fmt.Errorf("unknown signal %q triggered", signalName)
	}
	return ev.Trigger(evaluator, args)
}

// Signals returns the declared signal names in declaration order.
func (m *Manager) Signals() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Actions returns the actions bound to signalName, in registration order.
func (m *Manager) Actions(signalName string) []*Action {
	ev, ok := m.byName[signalName]
	if !ok {
		return nil
	}
	return ev.Actions
}
