package depsolve

import "testing"

type fixedPrompter struct {
	choice     int
	confirm    bool
	confirmSet bool
}

func (f fixedPrompter) AskUser(question string, def bool) bool {
	if f.confirmSet {
		return f.confirm
	}
	return def
}
func (f fixedPrompter) PromptChoice(n int) int { return f.choice }

func TestSelectPlanSingleCandidate(t *testing.T) {
	installed, _ := Build(nil)
	a := &Package{Name: "a", Version: "1"}
	plans := [][]*Package{{a}}

	chosen, err := SelectPlan(plans, []string{"a"}, installed, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(chosen) != 1 || chosen[0].Name != "a" {
		t.Fatalf("SelectPlan = %v, want [a]", chosen)
	}
}

func TestSelectPlanFiltersMissingRequired(t *testing.T) {
	installed, _ := Build(nil)
	a := &Package{Name: "a", Version: "1"}
	plans := [][]*Package{{a}}

	_, err := SelectPlan(plans, []string{"b"}, installed, nil)
	if err == nil {
		t.Fatal("expected NoRequiredPresentError")
	}
	if _, ok := err.(*NoRequiredPresentError); !ok {
		t.Fatalf("got %T, want *NoRequiredPresentError", err)
	}
}

func TestSelectPlanDedupesIdenticalResults(t *testing.T) {
	installed, _ := Build(nil)
	a := &Package{Name: "a", Version: "1"}
	// Two distinct plan slices that both just install a - same resulting
	// system, so they should collapse to a single candidate without a
	// PromptChoice call (the prompter is still asked to confirm).
	plans := [][]*Package{{a}, {a}}

	chosen, err := SelectPlan(plans, nil, installed, fixedPrompter{choice: 99})
	if err != nil {
		t.Fatal(err)
	}
	if len(chosen) != 1 || chosen[0].Name != "a" {
		t.Fatalf("SelectPlan = %v, want [a]", chosen)
	}
}

func TestSelectPlanPromptsOnDivergentCandidates(t *testing.T) {
	installed, _ := Build(nil)
	a := &Package{Name: "a", Version: "1"}
	b := &Package{Name: "b", Version: "1"}
	plans := [][]*Package{{a}, {b}}

	chosen, err := SelectPlan(plans, nil, installed, fixedPrompter{choice: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(chosen) != 1 || chosen[0].Name != "b" {
		t.Fatalf("SelectPlan with choice=1 = %v, want [b]", chosen)
	}
}

func TestSelectPlanSurfacesUserDecline(t *testing.T) {
	installed, _ := Build(nil)
	a := &Package{Name: "a", Version: "1"}
	plans := [][]*Package{{a}}

	_, err := SelectPlan(plans, nil, installed, fixedPrompter{confirm: false, confirmSet: true})
	if err == nil {
		t.Fatal("expected UserDeclinedError")
	}
	if _, ok := err.(*UserDeclinedError); !ok {
		t.Fatalf("got %T, want *UserDeclinedError", err)
	}
}

func TestSelectPlanNilPrompterDefaultsToFirst(t *testing.T) {
	installed, _ := Build(nil)
	a := &Package{Name: "a", Version: "1"}
	b := &Package{Name: "b", Version: "1"}
	plans := [][]*Package{{a}, {b}}

	chosen, err := SelectPlan(plans, nil, installed, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(chosen) != 1 || chosen[0].Name != "a" {
		t.Fatalf("SelectPlan with nil prompter = %v, want [a]", chosen)
	}
}

func TestDifferencesBetweenCommonAndUnique(t *testing.T) {
	self, _ := Build(nil)
	a := &Package{Name: "a", Version: "1"}
	b := &Package{Name: "b", Version: "1"}
	c := &Package{Name: "c", Version: "1"}

	sysAB, _ := Build([]*Package{a, b})
	sysAC, _ := Build([]*Package{a, c})

	common, unique := DifferencesBetween(self, []*System{sysAB, sysAC})
	if len(common.Installed) != 1 || common.Installed[0].Name != "a" {
		t.Fatalf("common.Installed = %v, want [a]", common.Installed)
	}
	if len(unique) != 2 {
		t.Fatalf("got %d unique diffs, want 2", len(unique))
	}
	if len(unique[0].Installed) != 1 || unique[0].Installed[0].Name != "b" {
		t.Errorf("unique[0].Installed = %v, want [b]", unique[0].Installed)
	}
	if len(unique[1].Installed) != 1 || unique[1].Installed[0].Name != "c" {
		t.Errorf("unique[1].Installed = %v, want [c]", unique[1].Installed)
	}
}

func TestSummarizeInstallUpgradeRemove(t *testing.T) {
	old := &Package{Name: "a", Version: "1"}
	keep := &Package{Name: "k", Version: "1"}
	self, _ := Build([]*Package{old, keep})

	newVer := &Package{Name: "a", Version: "2"}
	fresh := &Package{Name: "f", Version: "1"}

	summary, err := Summarize(self, []*Package{newVer, fresh})
	if err != nil {
		t.Fatal(err)
	}
	if len(summary.Install) != 1 || summary.Install[0].Name != "f" {
		t.Errorf("Install = %v, want [f]", summary.Install)
	}
	if len(summary.Upgrade) != 1 || summary.Upgrade[0].Name != "a" {
		t.Errorf("Upgrade = %v, want [a-2]", summary.Upgrade)
	}
	if len(summary.Remove) != 0 {
		t.Errorf("Remove = %v, want none", summary.Remove)
	}
}

func TestSummarizeReinstall(t *testing.T) {
	a := &Package{Name: "a", Version: "1"}
	self, _ := Build([]*Package{a})

	sameAgain := &Package{Name: "a", Version: "1"}
	summary, err := Summarize(self, []*Package{sameAgain})
	if err != nil {
		t.Fatal(err)
	}
	if len(summary.Reinstall) != 1 || summary.Reinstall[0].Name != "a" {
		t.Errorf("Reinstall = %v, want [a]", summary.Reinstall)
	}
	if len(summary.Install) != 0 || len(summary.Upgrade) != 0 {
		t.Errorf("expected no Install/Upgrade entries, got %+v", summary)
	}
}

func TestGroupByBasePullsSplitPackagesTogether(t *testing.T) {
	// app-bin and app-doc share a base but an unrelated package landed
	// between them in post-order; grouping should pull app-doc forward
	// to sit next to app-bin without disturbing lib's precedence.
	lib := &Package{Name: "lib", Version: "1"}
	appBin := &Package{Name: "app-bin", Version: "1", BaseName: "app", Depends: []string{"lib"}}
	unrelated := &Package{Name: "unrelated", Version: "1"}
	appDoc := &Package{Name: "app-doc", Version: "1", BaseName: "app"}

	plan := []*Package{lib, appBin, unrelated, appDoc}
	grouped := groupByBase(plan)

	pos := make(map[string]int)
	for i, p := range grouped {
		pos[p.Name] = i
	}
	if pos["lib"] >= pos["app-bin"] {
		t.Fatalf("grouping broke precedence: lib at %d, app-bin at %d", pos["lib"], pos["app-bin"])
	}
	if pos["app-doc"]-pos["app-bin"] != 1 {
		t.Errorf("expected app-doc to sit immediately after app-bin, got positions %v", pos)
	}
}

func TestGroupByBaseNeverReordersADependencyAfterItsConsumer(t *testing.T) {
	// core and its base-mate other already sit ahead of consumer, which
	// depends on core. Grouping must never be able to push core (or
	// anything sharing its base) past consumer's position.
	core := &Package{Name: "core", Version: "1"}
	other := &Package{Name: "other", Version: "1", BaseName: "core"}
	consumer := &Package{Name: "consumer", Version: "1", Depends: []string{"core"}}

	plan := []*Package{core, other, consumer}
	grouped := groupByBase(plan)

	pos := make(map[string]int)
	for i, p := range grouped {
		pos[p.Name] = i
	}
	if pos["core"] >= pos["consumer"] {
		t.Fatalf("grouping broke precedence: core at %d, consumer at %d", pos["core"], pos["consumer"])
	}
}
