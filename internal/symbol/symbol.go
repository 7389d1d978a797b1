// Package symbol implements Emplode's tagged-value run-time model and the
// nested, host-extensible symbol table that holds it (spec.md §3.2, §3.4,
// §4.4). Every run-time value in a running script is a *Symbol; the
// concrete kind it holds is selected by Kind, mirroring the original
// Emplode implementation's Symbol/Symbol_Var/Symbol_Scope/Symbol_Object/
// Symbol_Function/Symbol_Special/Symbol_Error class hierarchy flattened
// into one tagged struct (spec.md §9 "Polymorphism by variant").
package symbol

import (
	"fmt"
	"math"
)

// Kind discriminates the variant held by a Symbol.
type Kind int

const (
	KindVar Kind = iota
	KindLinkedVar
	KindLinkedFuns
	KindScope
	KindObject
	KindFunction
	KindSpecial
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindVar:
		return "Var"
	case KindLinkedVar:
		return "LinkedVar"
	case KindLinkedFuns:
		return "LinkedFuns"
	case KindScope:
		return "Scope"
	case KindObject:
		return "Object"
	case KindFunction:
		return "Function"
	case KindSpecial:
		return "Special"
	case KindError:
		return "Error"
	default:
		return "Unknown"
	}
}

// SpecialValue is the set of control sentinels a Special symbol can carry.
type SpecialValue int

const (
	SpecialBreak SpecialValue = iota
	SpecialContinue
	SpecialReturn // not in the original C++ source; see DESIGN.md Open Question 2.
	SpecialUnknown
)

func (s SpecialValue) String() string {
	switch s {
	case SpecialBreak:
		return "BREAK"
	case SpecialContinue:
		return "CONTINUE"
	case SpecialReturn:
		return "RETURN"
	default:
		return "UNKNOWN"
	}
}

// ValueKind distinguishes the two scalar payload kinds a Var/LinkedVar can
// hold at runtime (spec.md §3.2: "which of the two is a run-time property").
type ValueKind int

const (
	ValueNumeric ValueKind = iota
	ValueString
)

// LinkedAccessor backs a LinkedFuns symbol: get/set callbacks supplied by
// the host (spec.md §4.7 "Link getter/setter pair").
type LinkedAccessor struct {
	Get func() Symbol
	Set func(Symbol) error
}

// Symbol is the universal run-time value of the language (spec.md §3.2).
type Symbol struct {
	Name        string
	Description string
	Scope       *Scope // owning scope; nil for temporaries and the root
	Temporary   bool
	Builtin     bool

	Kind Kind

	// --- KindVar / KindLinkedVar payload ---
	ValueKind ValueKind
	Num       float64
	Str       string

	// KindLinkedVar: a pointer into host memory of the matching kind.
	LinkedNum *float64
	LinkedStr *string

	// KindLinkedFuns
	Accessor LinkedAccessor

	// KindScope / KindObject
	ScopeVal *Scope

	// KindObject extras
	ObjectOwned bool
	ObjectType  *TypeInfo
	Host        interface{} // opaque host object handle

	// KindFunction
	Function *Function

	// KindSpecial
	Special SpecialValue

	// KindError
	ErrMessage string

	// Constraint metadata supplementing Symbol_Var's Format/Range/integer_only
	// fields from the original source (see SPEC_FULL.md supplement note).
	HasRange    bool
	Min, Max    float64
	IntegerOnly bool

	// Payload carries a Special(RETURN) symbol's returned value. BREAK and
	// CONTINUE leave this nil. See DESIGN.md Open Question 2: Emplode gains
	// an explicit Return sentinel, unlike the original source.
	Payload *Symbol
}

// NewNumVar creates a named, non-temporary numeric Var symbol.
func NewNumVar(name string, val float64, desc string) *Symbol {
	return &Symbol{Name: name, Description: desc, Kind: KindVar, ValueKind: ValueNumeric, Num: val}
}

// NewRangedNumVar creates a numeric Var symbol carrying the original
// Symbol_Var's range/integer_only config-entry metadata: assignments made
// through SetNumeric are clamped to [min, max] and, if integerOnly, rounded
// to the nearest integer (spec.md's C2/C3 supplement; see DESIGN.md).
func NewRangedNumVar(name string, val, min, max float64, integerOnly bool, desc string) *Symbol {
	s := NewNumVar(name, val, desc)
	s.HasRange = true
	s.Min, s.Max = min, max
	s.IntegerOnly = integerOnly
	s.Num = clampToRange(val, s)
	return s
}

func clampToRange(v float64, s *Symbol) float64 {
	if !s.HasRange {
		return v
	}
	if v < s.Min {
		v = s.Min
	}
	if v > s.Max {
		v = s.Max
	}
	if s.IntegerOnly {
		v = math.Round(v)
	}
	return v
}

// NewStrVar creates a named, non-temporary string Var symbol.
func NewStrVar(name string, val string, desc string) *Symbol {
	return &Symbol{Name: name, Description: desc, Kind: KindVar, ValueKind: ValueString, Str: val}
}

// NewTempNum creates an unnamed temporary numeric Var.
func NewTempNum(val float64) *Symbol {
	return &Symbol{Kind: KindVar, ValueKind: ValueNumeric, Num: val, Temporary: true}
}

// NewTempStr creates an unnamed temporary string Var.
func NewTempStr(val string) *Symbol {
	return &Symbol{Kind: KindVar, ValueKind: ValueString, Str: val, Temporary: true}
}

// NewLinkedNumVar wraps a host float64 as a LinkedVar symbol (spec.md §4.7
// "Link variable"): reads and writes pass straight through to ptr.
func NewLinkedNumVar(name string, ptr *float64, desc string) *Symbol {
	return &Symbol{Name: name, Description: desc, Kind: KindLinkedVar, ValueKind: ValueNumeric, LinkedNum: ptr}
}

// NewLinkedStrVar wraps a host string as a LinkedVar symbol.
func NewLinkedStrVar(name string, ptr *string, desc string) *Symbol {
	return &Symbol{Name: name, Description: desc, Kind: KindLinkedVar, ValueKind: ValueString, LinkedStr: ptr}
}

// NewLinkedFuns wraps a host getter/setter pair as a LinkedFuns symbol
// (spec.md §4.7 "Link getter/setter pair").
func NewLinkedFuns(name string, accessor LinkedAccessor, desc string) *Symbol {
	return &Symbol{Name: name, Description: desc, Kind: KindLinkedFuns, Accessor: accessor}
}

// NewSpecial creates a control-sentinel symbol (always temporary: it is
// produced only by the evaluator and consumed by the nearest handler).
func NewSpecial(v SpecialValue) *Symbol {
	return &Symbol{Name: "__special", Kind: KindSpecial, Special: v, Temporary: true}
}

// NewReturn creates a RETURN control sentinel carrying val (possibly nil
// for a bare `RETURN;`).
func NewReturn(val *Symbol) *Symbol {
	return &Symbol{Name: "__return", Kind: KindSpecial, Special: SpecialReturn, Temporary: true, Payload: val}
}

// NewError creates a transient error sentinel carrying a diagnostic.
func NewError(format string, args ...interface{}) *Symbol {
	return &Symbol{
		Name:       "__error",
		Kind:       KindError,
		ErrMessage: fmt.Sprintf(format, args...),
		Temporary:  true,
	}
}

func (s *Symbol) IsNumeric() bool {
	switch s.Kind {
	case KindVar, KindLinkedVar:
		return s.ValueKind == ValueNumeric
	}
	return false
}

func (s *Symbol) IsString() bool {
	switch s.Kind {
	case KindVar, KindLinkedVar:
		return s.ValueKind == ValueString
	}
	return false
}

func (s *Symbol) IsScope() bool    { return s.Kind == KindScope }
func (s *Symbol) IsObject() bool   { return s.Kind == KindObject }
func (s *Symbol) IsFunction() bool { return s.Kind == KindFunction }
func (s *Symbol) IsError() bool    { return s.Kind == KindError }
func (s *Symbol) IsBreak() bool    { return s.Kind == KindSpecial && s.Special == SpecialBreak }
func (s *Symbol) IsContinue() bool { return s.Kind == KindSpecial && s.Special == SpecialContinue }
func (s *Symbol) IsReturn() bool   { return s.Kind == KindSpecial && s.Special == SpecialReturn }

// AsDouble coerces the symbol to a float64, per spec.md §4.3 item 4
// ("numeric↔double" marshaling). Non-numeric symbols return 0.
func (s *Symbol) AsDouble() float64 {
	switch s.Kind {
	case KindVar, KindLinkedVar:
		if s.ValueKind == ValueNumeric {
			if s.Kind == KindLinkedVar && s.LinkedNum != nil {
				return *s.LinkedNum
			}
			return s.Num
		}
		return 0
	case KindLinkedFuns:
		if s.Accessor.Get != nil {
			v := s.Accessor.Get()
			return v.AsDouble()
		}
	}
	return 0
}

// AsString coerces the symbol to a string.
func (s *Symbol) AsString() string {
	switch s.Kind {
	case KindVar, KindLinkedVar:
		if s.ValueKind == ValueString {
			if s.Kind == KindLinkedVar && s.LinkedStr != nil {
				return *s.LinkedStr
			}
			return s.Str
		}
		return formatNumber(s.AsDouble())
	case KindLinkedFuns:
		if s.Accessor.Get != nil {
			v := s.Accessor.Get()
			return v.AsString()
		}
	case KindScope:
		return "[[__SCOPE__]]"
	case KindError:
		return s.ErrMessage
	}
	return ""
}

func formatNumber(n float64) string {
	return fmt.Sprintf("%g", n)
}

// SetNumeric assigns a numeric value through the symbol's own write policy
// (plain Var, LinkedVar write-through, or LinkedFuns setter callback).
func (s *Symbol) SetNumeric(v float64) error {
	switch s.Kind {
	case KindVar:
		s.ValueKind = ValueNumeric
		s.Num = clampToRange(v, s)
		return nil
	case KindLinkedVar:
		if s.LinkedNum == nil {
			return fmt.Errorf("cannot assign numeric value to string-linked variable %q", s.Name)
		}
		*s.LinkedNum = v
		return nil
	case KindLinkedFuns:
		if s.Accessor.Set == nil {
			return fmt.Errorf("linked variable %q has no setter", s.Name)
		}
		return s.Accessor.Set(*NewTempNum(v))
	}
	return fmt.Errorf("cannot assign numeric value to %s symbol %q", s.Kind, s.Name)
}

// SetString assigns a string value through the symbol's own write policy.
func (s *Symbol) SetString(v string) error {
	switch s.Kind {
	case KindVar:
		s.ValueKind = ValueString
		s.Str = v
		return nil
	case KindLinkedVar:
		if s.LinkedStr == nil {
			return fmt.Errorf("cannot assign string value to numeric-linked variable %q", s.Name)
		}
		*s.LinkedStr = v
		return nil
	case KindLinkedFuns:
		if s.Accessor.Set == nil {
			return fmt.Errorf("linked variable %q has no setter", s.Name)
		}
		return s.Accessor.Set(*NewTempStr(v))
	}
	return fmt.Errorf("cannot assign string value to %s symbol %q", s.Kind, s.Name)
}

// CopyValue implements the per-variant assignment policy of spec.md §4.3
// item 3: Var copies by kind, LinkedVar writes through, Scope copies
// member-by-member (creating none), Object copies scope members plus the
// host object via its registered copier, Function copies the overload set.
func (s *Symbol) CopyValue(rhs *Symbol) error {
	switch s.Kind {
	case KindVar, KindLinkedVar, KindLinkedFuns:
		if rhs.IsNumeric() {
			return s.SetNumeric(rhs.AsDouble())
		}
		return s.SetString(rhs.AsString())

	case KindScope:
		if !rhs.IsScope() {
			return fmt.Errorf("cannot assign %q (%s) to scope %q", rhs.Name, rhs.Kind, s.Name)
		}
		for _, name := range rhs.ScopeVal.Names() {
			src, _ := rhs.ScopeVal.GetLocal(name)
			if src.IsFunction() {
				continue // functions are never copied into an existing scope
			}
			dst, ok := s.ScopeVal.GetLocal(name)
			if !ok {
				return fmt.Errorf("assigning to scope %q: member %q does not exist", s.Name, name)
			}
			if err := dst.CopyValue(src); err != nil {
				return fmt.Errorf("assigning to scope %q: member %q: %w", s.Name, name, err)
			}
		}
		return nil

	case KindObject:
		if !rhs.IsObject() {
			return fmt.Errorf("cannot assign %q (%s) to object %q", rhs.Name, rhs.Kind, s.Name)
		}
		for _, name := range rhs.ScopeVal.Names() {
			src, _ := rhs.ScopeVal.GetLocal(name)
			if src.IsFunction() {
				continue
			}
			dst, ok := s.ScopeVal.GetLocal(name)
			if !ok {
				return fmt.Errorf("assigning to object %q: member %q does not exist", s.Name, name)
			}
			if err := dst.CopyValue(src); err != nil {
				return err
			}
		}
		if s.ObjectType != nil && s.ObjectType.Copy != nil {
			return s.ObjectType.Copy(rhs.Host, s.Host)
		}
		return nil

	case KindFunction:
		if !rhs.IsFunction() {
			return fmt.Errorf("cannot assign %q (%s) to function %q", rhs.Name, rhs.Kind, s.Name)
		}
		s.Function.Overloads = append([]Overload(nil), rhs.Function.Overloads...)
		return nil
	}
	return fmt.Errorf("symbol %q (%s) is not assignable", s.Name, s.Kind)
}

// Clone deep-copies a symbol. Objects build a fresh host object with their
// registered type's Construct callback and fill it via Copy (spec.md §3.2
// invariant: "Cloning an Object deep-copies the host object ... and sets
// owned on the clone").
func (s *Symbol) Clone() *Symbol {
	clone := *s
	switch s.Kind {
	case KindScope, KindObject:
		clone.ScopeVal = s.ScopeVal.cloneInto(&clone)
		if s.Kind == KindObject {
			clone.ObjectOwned = true
			if s.ObjectType != nil && s.ObjectType.Copy != nil && s.Host != nil {
				hostClone := s.ObjectType.Construct(s.Name)
				_ = s.ObjectType.Copy(s.Host, hostClone)
				clone.Host = hostClone
			}
		}
	case KindFunction:
		f := *s.Function
		f.Overloads = append([]Overload(nil), s.Function.Overloads...)
		clone.Function = &f
	}
	return &clone
}

// DebugString renders a one-line diagnostic description, mirroring the
// original Symbol::DebugString().
func (s *Symbol) DebugString() string {
	out := fmt.Sprintf("Symbol %q type=%s", s.Name, s.Kind)
	if s.Temporary {
		out += " TEMPORARY"
	}
	if s.Builtin {
		out += " BUILTIN"
	}
	if s.IsError() {
		out += " ERROR: " + s.ErrMessage
	}
	return out
}
