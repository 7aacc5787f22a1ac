package depsolve

import "testing"

func TestParseAtom(t *testing.T) {
	cases := []struct {
		in   string
		name string
		op   Op
		ver  string
	}{
		{"foo", "foo", OpNone, ""},
		{"foo>=1.0", "foo", OpGE, "1.0"},
		{"foo<=1.0", "foo", OpLE, "1.0"},
		{"foo==1.0", "foo", OpEQEQ, "1.0"},
		{"foo=1.0", "foo", OpEQ, "1.0"},
		{"foo>1.0", "foo", OpGT, "1.0"},
		{"foo<1.0", "foo", OpLT, "1.0"},
	}
	for _, c := range cases {
		a := ParseAtom(c.in)
		if a.Name != c.name || a.Op != c.op || a.Version != c.ver {
			t.Errorf("ParseAtom(%q) = %+v, want {%q %q %q}", c.in, a, c.name, c.op, c.ver)
		}
	}
}

func TestStrip(t *testing.T) {
	if got := Strip("foo>=1.0"); got != "foo" {
		t.Errorf("Strip = %q, want foo", got)
	}
}

func TestCompareBasic(t *testing.T) {
	cases := []struct {
		v1, v2 string
		op     Op
		want   bool
	}{
		{"1.0", "2.0", OpLT, true},
		{"2.0", "1.0", OpGT, true},
		{"1.0", "1.0", OpEQ, true},
		{"1.0", "1.0", OpEQEQ, true},
		{"1.0", "2.0", OpGE, false},
		{"2.0", "1.0", OpGE, true},
		{"1.0-1", "1.0-2", OpLT, true},
		{"1:1.0", "2.0", OpGT, true},
		{"1.9", "1.10", OpLT, true},
		{"1.0a", "1.0", OpLT, true},
		{"anything", "1.0", OpNone, true},
	}
	for _, c := range cases {
		if got := Compare(c.v1, c.op, c.v2); got != c.want {
			t.Errorf("Compare(%q, %q, %q) = %v, want %v", c.v1, c.op, c.v2, got, c.want)
		}
	}
}

func TestCompareReleaseOnlyWhenBothPresent(t *testing.T) {
	// Neither side specifies a release; comparison should stop at the
	// version proper.
	if !Compare("1.0", OpEQ, "1.0") {
		t.Error("expected 1.0 == 1.0 ignoring absent releases")
	}
	// One side has a release, the other doesn't: release comparison is
	// skipped entirely, so the versions compare equal.
	if !Compare("1.0-5", OpEQ, "1.0") {
		t.Error("expected 1.0-5 == 1.0 when one side omits the release")
	}
}
