package symbol

import "fmt"

// MemberFunc is a host-defined member function wrapped into the uniform
// callable shape described in spec.md §4.7: it receives the host object
// handle and the already-evaluated argument symbols, and returns a result
// symbol (or an Error symbol on failure).
type MemberFunc struct {
	Name        string
	Description string
	Arity       int // -1 means variadic: receives the raw argument vector
	ReturnType  ValueKind
	Call        func(self interface{}, args []*Symbol) *Symbol
}

// TypeInfo is the root symbol table's registry entry for one host-
// registered type (spec.md §3.4, §4.7), grounded in
// original_source/.../TypeInfo.hpp.
type TypeInfo struct {
	Name        string
	Description string

	// Construct builds a new host object for a variable named varName.
	Construct func(varName string) interface{}

	// Copy deep-copies the host object at src into dst; used by Clone and
	// by Object assignment (spec.md §3.2 "Cloning an Object ...").
	Copy func(src, dst interface{}) error

	// OwnedByDefault is the ownership flag a freshly constructed Object
	// symbol of this type starts with (spec.md §4.7 "a flag declaring
	// whether objects of this type are owned by the interpreter").
	OwnedByDefault bool

	Members map[string]*MemberFunc
	// order preserves registration order, for MemberNames.
	order []string
}

// NewTypeInfo creates a type registry entry with no member functions yet.
func NewTypeInfo(name, desc string, construct func(string) interface{}, copy func(a, b interface{}) error, ownedByDefault bool) *TypeInfo {
	return &TypeInfo{
		Name:           name,
		Description:    desc,
		Construct:      construct,
		Copy:           copy,
		OwnedByDefault: ownedByDefault,
		Members:        make(map[string]*MemberFunc),
	}
}

// AddMember registers a member function on this type, erroring on
// duplicate names.
func (t *TypeInfo) AddMember(m *MemberFunc) error {
	if _, exists := t.Members[m.Name]; exists {
		return fmt.Errorf("type %q already has a member named %q", t.Name, m.Name)
	}
	t.Members[m.Name] = m
	t.order = append(t.order, m.Name)
	return nil
}

// MemberNames returns registered member-function names in registration
// order.
func (t *TypeInfo) MemberNames() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// TypeRegistry maps type names to their TypeInfo record (spec.md §3.4).
type TypeRegistry struct {
	byName map[string]*TypeInfo
	order  []string
}

// NewTypeRegistry creates an empty type registry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{byName: make(map[string]*TypeInfo)}
}

// Register adds a new host type, erroring on a duplicate name.
func (r *TypeRegistry) Register(t *TypeInfo) error {
	if _, exists := r.byName[t.Name]; exists {
		return fmt.Errorf("type %q is already registered", t.Name)
	}
	r.byName[t.Name] = t
	r.order = append(r.order, t.Name)
	return nil
}

// Lookup finds a registered type by name.
func (r *TypeRegistry) Lookup(name string) (*TypeInfo, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// Names returns registered type names in registration order.
func (r *TypeRegistry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
