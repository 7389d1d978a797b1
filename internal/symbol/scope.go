package symbol

import "fmt"

// Scope is an ordered, nested namespace: a mapping from name to Symbol
// that preserves insertion order (needed for deterministic Write
// serialization, spec.md §6.3) plus a parent link used only for
// outward-scanning name resolution (spec.md §3.4, §9 "Cyclic ownership").
//
// Only the root scope of an interpreter carries a live TypeRegistry and
// StreamRegistry; every other scope is created with NewChild and defers to
// its parent for those. The event registry lives one level up, in the
// embedding package (pkg/emplode), alongside the root Scope: internal/events
// imports this package, so holding its Manager here would be an import
// cycle.
type Scope struct {
	owner  *Symbol // the Scope/Object Symbol this table backs
	parent *Scope
	names  []string
	table  map[string]*Symbol

	// Root-only state.
	types   *TypeRegistry
	streams *StreamRegistry
}

// NewRootScope creates a fresh root scope with its own type and stream
// registries.
func NewRootScope() *Scope {
	return &Scope{
		table:   make(map[string]*Symbol),
		types:   NewTypeRegistry(),
		streams: NewStreamRegistry(),
	}
}

// NewChild creates a scope nested inside parent.
func NewChild(parent *Scope) *Scope {
	return &Scope{table: make(map[string]*Symbol), parent: parent}
}

// SetOwner records the Scope/Object Symbol this table is the body of, so
// error messages can name "the active scope" per spec.md §7.
func (sc *Scope) SetOwner(s *Symbol) { sc.owner = s }

// OwnerName returns the name of the symbol this scope is the body of, or
// "<root>" for the top-level scope.
func (sc *Scope) OwnerName() string {
	if sc.owner != nil {
		return sc.owner.Name
	}
	return "<root>"
}

// Parent returns the enclosing scope, or nil for the root.
func (sc *Scope) Parent() *Scope { return sc.parent }

// Types returns this subtree's type registry, delegating to the root.
func (sc *Scope) Types() *TypeRegistry {
	if sc.types != nil {
		return sc.types
	}
	if sc.parent != nil {
		return sc.parent.Types()
	}
	return nil
}

// Streams returns this subtree's stream registry, delegating to the root.
func (sc *Scope) Streams() *StreamRegistry {
	if sc.streams != nil {
		return sc.streams
	}
	if sc.parent != nil {
		return sc.parent.Streams()
	}
	return nil
}

// Names returns the member names of this scope in insertion order (not
// including outer scopes).
func (sc *Scope) Names() []string {
	out := make([]string, len(sc.names))
	copy(out, sc.names)
	return out
}

// GetLocal looks up name only in this scope, without scanning parents.
func (sc *Scope) GetLocal(name string) (*Symbol, bool) {
	s, ok := sc.table[name]
	return s, ok
}

// Lookup resolves name, scanning outward through parent scopes when
// scanParents is true, per spec.md §4.2.3 and the invariant of §8: returns
// the innermost same-named symbol along the chain from sc to the root, or
// nil.
func (sc *Scope) Lookup(name string, scanParents bool) *Symbol {
	if s, ok := sc.table[name]; ok {
		return s
	}
	if scanParents && sc.parent != nil {
		return sc.parent.Lookup(name, true)
	}
	return nil
}

// Add inserts a new, named symbol into this scope. It is an error
// (spec.md §7 NameError) to redeclare an existing name.
func (sc *Scope) Add(s *Symbol) error {
	if _, exists := sc.table[s.Name]; exists {
		return fmt.Errorf("cannot redeclare %q in scope %q", s.Name, sc.OwnerName())
	}
	s.Scope = sc
	sc.table[s.Name] = s
	sc.names = append(sc.names, s.Name)
	return nil
}

// AddBuiltin is Add, additionally flagging the symbol so Write (§6.3)
// skips re-emitting it.
func (sc *Scope) AddBuiltin(s *Symbol) error {
	s.Builtin = true
	return sc.Add(s)
}

// cloneInto deep-copies this scope's members into a freshly cloned owner
// symbol, used by Symbol.Clone for Scope/Object duplication.
func (sc *Scope) cloneInto(newOwner *Symbol) *Scope {
	clone := &Scope{
		owner: newOwner,
		table: make(map[string]*Symbol, len(sc.table)),
		names: append([]string(nil), sc.names...),
	}
	for name, s := range sc.table {
		member := s.Clone()
		member.Scope = clone
		clone.table[name] = member
	}
	return clone
}
