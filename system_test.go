package depsolve

import "testing"

func TestBuildDuplicateName(t *testing.T) {
	pkgs := []*Package{
		{Name: "a", Version: "1"},
		{Name: "a", Version: "2"},
	}
	if _, err := Build(pkgs); err == nil {
		t.Fatal("expected DuplicatePackageNameError")
	} else if _, ok := err.(*DuplicatePackageNameError); !ok {
		t.Fatalf("got %T, want *DuplicatePackageNameError", err)
	}
}

func TestBuildIdempotent(t *testing.T) {
	pkgs := []*Package{
		{Name: "a", Version: "1", Provides: []string{"x"}},
		{Name: "b", Version: "1"},
	}
	sys, err := Build(pkgs)
	if err != nil {
		t.Fatal(err)
	}
	sys2, err := Build(sys.Packages())
	if err != nil {
		t.Fatal(err)
	}
	if len(sys.Packages()) != len(sys2.Packages()) {
		t.Fatalf("rebuilt system has %d packages, want %d", len(sys2.Packages()), len(sys.Packages()))
	}
}

func TestProvidedByExactName(t *testing.T) {
	a := &Package{Name: "a", Version: "2"}
	sys, _ := Build([]*Package{a})
	got := sys.ProvidedBy(Atom{Name: "a", Op: OpGE, Version: "1"})
	if len(got) != 1 || got[0] != a {
		t.Errorf("ProvidedBy = %v, want [a]", got)
	}
	got = sys.ProvidedBy(Atom{Name: "a", Op: OpGE, Version: "3"})
	if len(got) != 0 {
		t.Errorf("ProvidedBy = %v, want none", got)
	}
}

func TestProvidedByProvidesVersioned(t *testing.T) {
	q := &Package{Name: "q", Version: "1", Provides: []string{"x=2"}}
	sys, _ := Build([]*Package{q})

	if got := sys.ProvidedBy(Atom{Name: "x", Op: OpGE, Version: "2"}); len(got) != 1 {
		t.Errorf("expected versioned provide to satisfy x>=2, got %v", got)
	}
	if got := sys.ProvidedBy(Atom{Name: "x", Op: OpGE, Version: "3"}); len(got) != 0 {
		t.Errorf("expected versioned provide to fail x>=3, got %v", got)
	}
}

func TestProvidedByMonotonic(t *testing.T) {
	a := &Package{Name: "a", Version: "1"}
	sys, _ := Build([]*Package{a})
	before := sys.ProvidedBy(Atom{Name: "x"})

	b := &Package{Name: "b", Version: "1", Provides: []string{"x"}}
	sys2, _ := Build([]*Package{a, b})
	after := sys2.ProvidedBy(Atom{Name: "x"})

	if len(after) < len(before) {
		t.Fatalf("ProvidedBy shrank after adding a package: before=%v after=%v", before, after)
	}
	for _, p := range before {
		if !containsPkg(after, p) {
			t.Errorf("provider %v present before, missing after", p)
		}
	}
}

func TestConflictingWithSameName(t *testing.T) {
	a1 := &Package{Name: "a", Version: "1"}
	sys, _ := Build([]*Package{a1})
	a2 := &Package{Name: "a", Version: "2"}
	got := sys.ConflictingWith(a2)
	if len(got) != 1 || got[0] != a1 {
		t.Errorf("ConflictingWith same-name = %v, want [a1]", got)
	}
}

func TestConflictingWithSymmetric(t *testing.T) {
	b := &Package{Name: "b", Version: "1", Conflicts: []string{"a"}}
	sys, _ := Build([]*Package{b})
	a := &Package{Name: "a", Version: "1"}
	got := sys.ConflictingWith(a)
	if len(got) != 1 || got[0] != b {
		t.Errorf("symmetric ConflictingWith = %v, want [b]", got)
	}
}

func TestAllDepsSatisfied(t *testing.T) {
	a := &Package{Name: "a", Version: "1", Depends: []string{"b"}}
	b := &Package{Name: "b", Version: "1"}
	sys, _ := Build([]*Package{b})
	if !sys.AllDepsSatisfied(a) {
		t.Error("expected deps satisfied")
	}
	sysEmpty, _ := Build(nil)
	if sysEmpty.AllDepsSatisfied(a) {
		t.Error("expected deps unsatisfied against empty system")
	}
}
