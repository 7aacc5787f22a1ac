package depsolve

import "sort"

// UserPrompter is the external collaborator the plan selector consults
// when more than one candidate plan remains after filtering and
// deduplication. A nil UserPrompter causes SelectPlan to deterministically
// pick the first remaining candidate instead of asking.
type UserPrompter interface {
	// AskUser asks a yes/no question, returning def if the caller
	// declines to answer.
	AskUser(question string, def bool) bool
	// PromptChoice asks the user to pick one of n options (0-indexed)
	// and returns their choice.
	PromptChoice(n int) int
}

// SystemDiff is a partition of the packages that differ between two
// systems: Installed holds packages new to the later system, Removed
// holds packages present in the earlier system but gone from the later
// one.
type SystemDiff struct {
	Installed []*Package
	Removed   []*Package
}

func diffAgainstSelf(self, result *System) SystemDiff {
	var d SystemDiff
	selfKeys := make(map[pkgKey]bool)
	for _, p := range self.Packages() {
		selfKeys[keyOf(p)] = true
	}
	resultKeys := make(map[pkgKey]bool)
	for _, p := range result.Packages() {
		resultKeys[keyOf(p)] = true
		if !selfKeys[keyOf(p)] {
			d.Installed = append(d.Installed, p)
		}
	}
	for _, p := range self.Packages() {
		if !resultKeys[keyOf(p)] {
			d.Removed = append(d.Removed, p)
		}
	}
	return d
}

func intersectPkgSlices(sets [][]*Package) []*Package {
	if len(sets) == 0 {
		return nil
	}
	counts := make(map[pkgKey]int)
	byKey := make(map[pkgKey]*Package)
	for _, set := range sets {
		seenInSet := make(map[pkgKey]bool)
		for _, p := range set {
			k := keyOf(p)
			if seenInSet[k] {
				continue
			}
			seenInSet[k] = true
			counts[k]++
			byKey[k] = p
		}
	}
	var out []*Package
	for k, c := range counts {
		if c == len(sets) {
			out = append(out, byKey[k])
		}
	}
	return out
}

func subtractPkgSlice(from, minus []*Package) []*Package {
	remove := make(map[pkgKey]bool)
	for _, p := range minus {
		remove[keyOf(p)] = true
	}
	var out []*Package
	for _, p := range from {
		if !remove[keyOf(p)] {
			out = append(out, p)
		}
	}
	return out
}

// DifferencesBetween computes, for a set of candidate resulting systems
// all measured against self, the portion of their differences common to
// every system and, per system, the portion unique to it.
func DifferencesBetween(self *System, systems []*System) (common SystemDiff, unique []SystemDiff) {
	diffs := make([]SystemDiff, len(systems))
	for i, s := range systems {
		diffs[i] = diffAgainstSelf(self, s)
	}

	installedSets := make([][]*Package, len(diffs))
	removedSets := make([][]*Package, len(diffs))
	for i, d := range diffs {
		installedSets[i] = d.Installed
		removedSets[i] = d.Removed
	}
	common = SystemDiff{
		Installed: intersectPkgSlices(installedSets),
		Removed:   intersectPkgSlices(removedSets),
	}

	unique = make([]SystemDiff, len(diffs))
	for i, d := range diffs {
		unique[i] = SystemDiff{
			Installed: subtractPkgSlice(d.Installed, common.Installed),
			Removed:   subtractPkgSlice(d.Removed, common.Removed),
		}
	}
	return common, unique
}

func diffUnionKey(d SystemDiff) string {
	keys := make([]string, 0, len(d.Installed)+len(d.Removed))
	for _, p := range d.Installed {
		keys = append(keys, "+"+p.String())
	}
	for _, p := range d.Removed {
		keys = append(keys, "-"+p.String())
	}
	sort.Strings(keys)
	out := ""
	for _, k := range keys {
		out += k + "\x00"
	}
	return out
}

// confirmQuestion is asked once a plan has been chosen, before it is
// handed back to the caller. A declined confirmation surfaces as
// *UserDeclinedError rather than a silently empty plan.
const confirmQuestion = "proceed with this plan?"

// SelectPlan validates each candidate plan against the required-present
// set, de-duplicates plans that resolve to the same effective system,
// and - if more than one distinct plan remains - asks prompter to
// disambiguate. DifferencesBetween is used only to collapse equivalent
// plans; the per-plan differences are not passed to prompter, which is
// told only how many plans remain. Once a single plan remains, prompter
// is asked to confirm it; a decline surfaces as *UserDeclinedError.
func SelectPlan(plans [][]*Package, needed []string, installed *System, prompter UserPrompter) ([]*Package, error) {
	type candidate struct {
		plan   []*Package
		result *System
	}

	var candidates []candidate
	for _, plan := range plans {
		result, err := HypotheticallyAdd(installed, plan)
		if err != nil {
			return nil, err
		}
		hasAll := true
		for _, name := range needed {
			if _, ok := result.Get(name); !ok {
				hasAll = false
				break
			}
		}
		if hasAll {
			candidates = append(candidates, candidate{plan: plan, result: result})
		}
	}

	if len(candidates) == 0 {
		return nil, &NoRequiredPresentError{Needed: needed}
	}
	if len(candidates) == 1 {
		return finalize(candidates[0].plan, prompter)
	}

	results := make([]*System, len(candidates))
	for i, c := range candidates {
		results[i] = c.result
	}
	_, unique := DifferencesBetween(installed, results)

	allEmpty := true
	for _, u := range unique {
		if len(u.Installed) > 0 || len(u.Removed) > 0 {
			allEmpty = false
			break
		}
	}
	if allEmpty {
		return finalize(candidates[0].plan, prompter)
	}

	seenUnion := make(map[string]bool)
	var dedupCandidates []candidate
	var dedupUnique []SystemDiff
	for i, c := range candidates {
		k := diffUnionKey(unique[i])
		if seenUnion[k] {
			continue
		}
		seenUnion[k] = true
		dedupCandidates = append(dedupCandidates, c)
		dedupUnique = append(dedupUnique, unique[i])
	}

	if len(dedupCandidates) == 1 {
		return finalize(dedupCandidates[0].plan, prompter)
	}

	choice := 0
	if prompter != nil {
		choice = prompter.PromptChoice(len(dedupCandidates))
	}
	if choice < 0 || choice >= len(dedupCandidates) {
		choice = 0
	}
	return finalize(dedupCandidates[choice].plan, prompter)
}

// finalize groups the chosen plan for presentation and, if a prompter is
// available, asks it to confirm before handing the plan back - the
// source's separate "show the plan, then ask to continue" step, folded
// into this package's single select_plan entry point.
func finalize(plan []*Package, prompter UserPrompter) ([]*Package, error) {
	grouped := groupByBase(plan)
	if prompter != nil && !prompter.AskUser(confirmQuestion, true) {
		return nil, &UserDeclinedError{Question: confirmQuestion}
	}
	return grouped, nil
}

// PlanSummary partitions a chosen plan, once hypothetically applied
// against self, into the four buckets a caller would show a user before
// committing: newly installed, removed, upgraded in place, and
// reinstalled (already present at the same version, but explicitly named
// in the plan).
type PlanSummary struct {
	Install   []*Package
	Remove    []*Package
	Upgrade   []*Package
	Reinstall []*Package
}

// Summarize computes a PlanSummary for chosen against self.
func Summarize(self *System, chosen []*Package) (PlanSummary, error) {
	result, err := HypotheticallyAdd(self, chosen)
	if err != nil {
		return PlanSummary{}, err
	}

	var summary PlanSummary
	upgraded := make(map[pkgKey]bool)
	for _, p := range result.Packages() {
		before, existed := self.Get(p.Name)
		switch {
		case !existed:
			summary.Install = append(summary.Install, p)
		case before.Version != p.Version:
			summary.Upgrade = append(summary.Upgrade, p)
			upgraded[keyOf(p)] = true
		}
	}
	for _, p := range self.Packages() {
		if _, stillThere := result.Get(p.Name); !stillThere {
			summary.Remove = append(summary.Remove, p)
		}
	}
	installedKeys := make(map[pkgKey]bool)
	for _, p := range summary.Install {
		installedKeys[keyOf(p)] = true
	}
	removedKeys := make(map[pkgKey]bool)
	for _, p := range summary.Remove {
		removedKeys[keyOf(p)] = true
	}
	for _, p := range chosen {
		k := keyOf(p)
		if installedKeys[k] || removedKeys[k] || upgraded[k] {
			continue
		}
		summary.Reinstall = append(summary.Reinstall, p)
	}
	return summary, nil
}

// groupByBase stably reorders plan so packages sharing a BaseName sit
// adjacent to their group's first member, then falls back to the
// original order if doing so would violate the dependency precedence the
// original post-order plan already encoded.
func groupByBase(plan []*Package) []*Package {
	if len(plan) < 2 {
		return plan
	}
	pairs := planPrecedencePairs(plan)

	firstIdx := make(map[string]int)
	for i, p := range plan {
		if _, ok := firstIdx[p.Base()]; !ok {
			firstIdx[p.Base()] = i
		}
	}
	grouped := append([]*Package{}, plan...)
	sort.SliceStable(grouped, func(i, j int) bool {
		return firstIdx[grouped[i].Base()] < firstIdx[grouped[j].Base()]
	})

	if respectsPairs(grouped, pairs) {
		return grouped
	}
	return plan
}

func planPrecedencePairs(plan []*Package) [][2]*Package {
	var pairs [][2]*Package
	for i, p := range plan {
		prefix := buildLoose(plan[:i])
		for _, dep := range p.RelevantDeps() {
			for _, provider := range prefix.ProvidedBy(ParseAtom(dep)) {
				pairs = append(pairs, [2]*Package{provider, p})
			}
		}
	}
	return pairs
}

func respectsPairs(order []*Package, pairs [][2]*Package) bool {
	pos := make(map[pkgKey]int, len(order))
	for i, p := range order {
		pos[keyOf(p)] = i
	}
	for _, pr := range pairs {
		if pos[keyOf(pr[0])] >= pos[keyOf(pr[1])] {
			return false
		}
	}
	return true
}
