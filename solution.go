package depsolve

// solution is the solver's working value, forked (deep-copied) at every
// backtracking branch point so that no two branches ever share mutable
// state.
type solution struct {
	packagesInSolution []*Package
	visitedPackages    []*Package
	visitedDepNames    map[string]bool
	isValid            bool
}

func newSolution() *solution {
	return &solution{
		visitedDepNames: make(map[string]bool),
		isValid:         true,
	}
}

// fork returns a logically independent deep copy of sol. A persistent
// data structure could share prefixes internally, but the externally
// observable plan lists must behave as if every fork were a fresh copy;
// this takes the simpler route of eagerly copying at each decision point.
func (sol *solution) fork() *solution {
	next := &solution{
		packagesInSolution: append([]*Package{}, sol.packagesInSolution...),
		visitedPackages:    append([]*Package{}, sol.visitedPackages...),
		visitedDepNames:    make(map[string]bool, len(sol.visitedDepNames)),
		isValid:            sol.isValid,
	}
	for k, v := range sol.visitedDepNames {
		next.visitedDepNames[k] = v
	}
	return next
}
