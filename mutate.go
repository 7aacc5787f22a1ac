package depsolve

// HypotheticallyAdd produces the System that would result from installing
// packages on sys: same-name incumbents are displaced, anything that now
// conflicts with an incoming package is removed, and removals cascade
// through RequiredBy pointers until no installed package is left with an
// unsatisfied dependency - including, finally, re-checking the incoming
// packages themselves in case something they depended on was cascaded
// away. HypotheticallyAdd is pure: sys and packages are never mutated.
func HypotheticallyAdd(sys *System, packages []*Package) (*System, error) {
	members := make(map[pkgKey]*Package)
	byName := make(map[string]*Package)
	for _, p := range sys.Packages() {
		members[keyOf(p)] = p
		byName[p.Name] = p
	}

	remove := func(p *Package) {
		delete(members, keyOf(p))
		if cur, ok := byName[p.Name]; ok && cur.Version == p.Version {
			delete(byName, p.Name)
		}
	}

	// 1. Displace same-name incumbents.
	var displaced []*Package
	for _, p := range packages {
		if existing, ok := byName[p.Name]; ok {
			remove(existing)
			displaced = append(displaced, existing)
		}
	}

	preInsert, err := Build(mapValuesOfPkgs(members))
	if err != nil {
		return nil, err
	}

	// 2. Find conflict casualties against the post-displacement,
	// pre-insertion membership.
	var casualties []*Package
	seenCasualty := make(map[pkgKey]bool)
	for _, p := range packages {
		for _, c := range preInsert.ConflictingWith(p) {
			if !seenCasualty[keyOf(c)] {
				seenCasualty[keyOf(c)] = true
				casualties = append(casualties, c)
			}
		}
	}
	for _, c := range casualties {
		remove(c)
	}

	// 3. Insert incoming packages.
	for _, p := range packages {
		members[keyOf(p)] = p
		byName[p.Name] = p
	}

	// 4. Fixed point: cascade removals through RequiredBy pointers of
	// whatever was just deleted, repeating until a round removes
	// nothing new. The first round must look at both step 1's
	// displaced packages and step 2's casualties, since either kind
	// may have had dependents that relied on it.
	roundDeleted := append(append([]*Package{}, displaced...), casualties...)
	deleted := make(map[pkgKey]bool)
	for _, d := range roundDeleted {
		deleted[keyOf(d)] = true
	}

	cur, err := Build(mapValuesOfPkgs(members))
	if err != nil {
		return nil, err
	}

	for len(roundDeleted) > 0 {
		var next []*Package
		seenNext := make(map[pkgKey]bool)
		for _, d := range roundDeleted {
			for _, reqName := range d.RequiredBy {
				dependent, ok := byName[reqName]
				if !ok || deleted[keyOf(dependent)] || seenNext[keyOf(dependent)] {
					continue
				}
				if !cur.AllDepsSatisfied(dependent) {
					seenNext[keyOf(dependent)] = true
					next = append(next, dependent)
				}
			}
		}
		for _, d := range next {
			remove(d)
			deleted[keyOf(d)] = true
		}
		if len(next) == 0 {
			break
		}
		cur, err = Build(mapValuesOfPkgs(members))
		if err != nil {
			return nil, err
		}
		roundDeleted = next
	}

	// 5. Final dep re-check of incoming: anything that now depends on
	// something cascaded away is itself removed, repeated until stable.
	for {
		changed := false
		for _, p := range packages {
			if _, ok := members[keyOf(p)]; !ok {
				continue
			}
			if !cur.AllDepsSatisfied(p) {
				remove(p)
				changed = true
			}
		}
		if !changed {
			break
		}
		cur, err = Build(mapValuesOfPkgs(members))
		if err != nil {
			return nil, err
		}
	}

	return cur, nil
}

func mapValuesOfPkgs(m map[pkgKey]*Package) []*Package {
	out := make([]*Package, 0, len(m))
	for _, p := range m {
		out = append(out, p)
	}
	return out
}
