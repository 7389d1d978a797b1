package symbol

import "testing"

func TestTypeInfoAddMemberRejectsDuplicate(t *testing.T) {
	ti := NewTypeInfo("Widget", "", func(string) interface{} { return nil }, nil, false)
	m := &MemberFunc{Name: "reset", Arity: 0, Call: func(interface{}, []*Symbol) *Symbol { return nil }}
	if err := ti.AddMember(m); err != nil {
		t.Fatalf("AddMember: %v", err)
	}
	if err := ti.AddMember(m); err == nil {
		t.Error("expected duplicate member error, got nil")
	}
}

func TestTypeInfoMemberNamesPreservesRegistrationOrder(t *testing.T) {
	ti := NewTypeInfo("Widget", "", func(string) interface{} { return nil }, nil, false)
	for _, name := range []string{"reset", "scale", "describe"} {
		_ = ti.AddMember(&MemberFunc{Name: name, Call: func(interface{}, []*Symbol) *Symbol { return nil }})
	}
	got := ti.MemberNames()
	want := []string{"reset", "scale", "describe"}
	if len(got) != len(want) {
		t.Fatalf("MemberNames() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("MemberNames()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTypeRegistryRejectsDuplicateName(t *testing.T) {
	r := NewTypeRegistry()
	t1 := NewTypeInfo("Widget", "", func(string) interface{} { return nil }, nil, false)
	if err := r.Register(t1); err != nil {
		t.Fatalf("Register: %v", err)
	}
	t2 := NewTypeInfo("Widget", "", func(string) interface{} { return nil }, nil, false)
	if err := r.Register(t2); err == nil {
		t.Error("expected duplicate type error, got nil")
	}
}

func TestTypeRegistryLookupAndNames(t *testing.T) {
	r := NewTypeRegistry()
	_ = r.Register(NewTypeInfo("Alpha", "", func(string) interface{} { return nil }, nil, false))
	_ = r.Register(NewTypeInfo("Beta", "", func(string) interface{} { return nil }, nil, false))

	got, ok := r.Lookup("Alpha")
	if !ok || got.Name != "Alpha" {
		t.Fatalf("Lookup(Alpha) = %v, %v", got, ok)
	}
	if _, ok := r.Lookup("Gamma"); ok {
		t.Error("Lookup(Gamma) found an unregistered type")
	}

	names := r.Names()
	if len(names) != 2 || names[0] != "Alpha" || names[1] != "Beta" {
		t.Errorf("Names() = %v, want [Alpha Beta]", names)
	}
}
