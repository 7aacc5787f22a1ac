package depsolve

// Solve computes one or more topologically ordered installation plans
// satisfying params.Requested against params.Installed and
// params.Upstream. Each returned plan lists packages in post-order:
// every dependency precedes its dependent.
//
// If no branch survives even after adaptive widening, Solve returns
// *NoValidPlanError carrying the accumulated problems (cycles, conflicts,
// unprovided dependencies) discovered along the way. Per the package's
// central policy, those problems are never returned alongside a
// successful result: if Solve returns a non-empty plan list, every
// problem recorded while finding it was provisional and has been
// discarded.
func Solve(params SolveParameters) ([][]*Package, error) {
	tr := tracer{on: params.Trace, log: params.TraceLogger}

	deepCheckNames := make(map[string]bool)
	for {
		problems := newProblemSet()
		branches := []*solution{newSolution()}

		for _, req := range params.Requested {
			var next []*solution
			for _, branch := range branches {
				next = append(next, expand(req, branch, problems, params.Installed, params.Upstream, params.OnlyUnfulfilled, deepCheckNames, tr, 0)...)
			}
			branches = next
		}

		var valid []*solution
		for _, b := range branches {
			if b.isValid {
				valid = append(valid, b)
			}
		}

		if len(valid) > 0 {
			plans := make([][]*Package, len(valid))
			for i, b := range valid {
				plans[i] = b.packagesInSolution
			}
			tr.solved(len(plans))
			return plans, nil
		}

		var widenNames []string
		for _, p := range problems.list() {
			widenNames = append(widenNames, p.relevantNames()...)
		}
		before := len(deepCheckNames)
		for _, n := range widenNames {
			deepCheckNames[n] = true
		}
		if len(deepCheckNames) == before {
			finalProblems := problems.list()
			tr.giveUp(finalProblems)
			return nil, &NoValidPlanError{Requested: params.Requested, Problems: finalProblems}
		}
		tr.widen(widenNames)
	}
}

// expand resolves package p against a single branch, returning the list
// of branches that survive - forked as needed whenever the search splits
// across multiple providers of a dependency.
func expand(
	p *Package,
	sol *solution,
	problems *problemSet,
	installed, upstream *System,
	onlyUnfulfilled bool,
	deepCheckNames map[string]bool,
	tr tracer,
	depth int,
) []*solution {
	tr.expand(depth, p)

	if containsPkg(sol.packagesInSolution, p) {
		return []*solution{sol.fork()}
	}

	if containsPkg(sol.visitedPackages, p) {
		if p.Classification == Repo {
			return []*solution{sol.fork()}
		}
		if sol.isValid {
			idx := indexOfPkg(sol.visitedPackages, p)
			cycle := append(append([]*Package{}, sol.visitedPackages[idx:]...), p)
			problems.add(Cycle{Packages: cycle})
			tr.cycle(p)
		}
		return nil
	}

	branch := sol.fork()

	visitedSys := buildLoose(branch.visitedPackages)
	if conflicting := visitedSys.ConflictingWith(p); len(conflicting) > 0 {
		minIdx := len(branch.visitedPackages)
		for _, c := range conflicting {
			if i := indexOfPkg(branch.visitedPackages, c); i >= 0 && i < minIdx {
				minIdx = i
			}
		}
		path := append(append([]*Package{}, branch.visitedPackages[minIdx:]...), p)
		conflictSet := append(append([]*Package{}, conflicting...), p)
		problems.add(Conflict{Packages: conflictSet, Path: path})
		tr.conflict(p, conflicting)
		branch.isValid = false
	}

	branch.visitedPackages = append(branch.visitedPackages, p)
	branches := []*solution{branch}

	for _, dep := range p.RelevantDeps() {
		atom := ParseAtom(dep)
		if onlyUnfulfilled && len(installed.ProvidedBy(atom)) > 0 {
			continue
		}

		providers := upstream.ProvidedBy(atom)

		if len(providers) == 0 {
			problems.add(NotProvided{Atom: atom, Requirer: p})
			tr.notProvided(atom, p)
			for _, br := range branches {
				if !br.visitedDepNames[dep] {
					br.isValid = false
					br.visitedDepNames[dep] = true
				}
			}
			continue
		}

		providers = narrowByName(providers, atom, deepCheckNames)

		var next []*solution
		for _, br := range branches {
			if br.visitedDepNames[dep] {
				next = append(next, br)
				continue
			}
			br.visitedDepNames[dep] = true

			if len(buildLoose(br.packagesInSolution).ProvidedBy(atom)) > 0 {
				next = append(next, br)
				continue
			}

			for _, provider := range providers {
				sub := br.fork()
				next = append(next, expand(provider, sub, problems, installed, upstream, onlyUnfulfilled, deepCheckNames, tr, depth+1)...)
			}
		}
		branches = next
		if len(branches) == 0 {
			break
		}
	}

	anyValid := false
	for _, br := range branches {
		if br.isValid {
			anyValid = true
			break
		}
	}
	if anyValid {
		problems.clear()
	}

	for _, br := range branches {
		br.packagesInSolution = append(br.packagesInSolution, p)
	}
	return branches
}

// narrowByName implements the name-narrowing heuristic: when exactly the
// provider whose own name matches the dep's stripped name is available,
// and that dep hasn't been flagged for deep checking, restrict the
// candidate set to just that provider. A DEVEL provider is never used as
// the sole exact-name candidate under this short-circuit - its version is
// inherently unstable at resolve time, so narrowing to it alone would
// hide legitimate alternatives the first pass should still consider.
func narrowByName(providers []*Package, atom Atom, deepCheckNames map[string]bool) []*Package {
	if deepCheckNames[atom.Name] {
		return providers
	}
	for _, p := range providers {
		if p.Name == atom.Name && p.Classification != Devel {
			return []*Package{p}
		}
	}
	return providers
}
