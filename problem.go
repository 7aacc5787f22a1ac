package depsolve

import (
	"fmt"
	"strings"
)

// Problem is a soft finding recorded during search: a Cycle, a Conflict,
// or a NotProvided dependency. Problems are hypotheses, not facts - they
// propagate to the caller only if no valid branch survives the pass in
// which they were recorded; otherwise they are discarded wholesale.
type Problem interface {
	fmt.Stringer
	// key returns a structural-equality key, used to dedupe problems
	// within a single pass's problemSet.
	key() string
	// relevantNames returns the package names the adaptive widening
	// step should add to deepCheckNames if this problem survives to
	// the end of a pass.
	relevantNames() []string
}

// Cycle records a dependency cycle discovered along the current DFS path.
// Packages runs from the first occurrence of the repeated package through
// the current depth, with that package appended again to close the loop.
type Cycle struct {
	Packages []*Package
}

func (c Cycle) String() string {
	names := make([]string, len(c.Packages))
	for i, p := range c.Packages {
		names[i] = p.String()
	}
	return "cycle: " + strings.Join(names, " -> ")
}

func (c Cycle) key() string {
	return "cycle:" + joinKeys(c.Packages)
}

func (c Cycle) relevantNames() []string {
	return namesOf(c.Packages)
}

// Conflict records a set of mutually conflicting packages discovered
// while expanding a package p. Packages is the conflicting set C ∪ {p};
// Path runs from the minimum index at which any member of C occurs in
// the current visited-packages trace through the end of that trace, with
// p appended.
type Conflict struct {
	Packages []*Package
	Path     []*Package
}

func (c Conflict) String() string {
	names := make([]string, len(c.Packages))
	for i, p := range c.Packages {
		names[i] = p.String()
	}
	return "conflict among: " + strings.Join(names, ", ")
}

func (c Conflict) key() string {
	return "conflict:" + joinKeys(c.Packages)
}

func (c Conflict) relevantNames() []string {
	return namesOf(c.Packages)
}

// NotProvided records a dependency atom that no package in the upstream
// universe provides, along with the package that required it.
type NotProvided struct {
	Atom     Atom
	Requirer *Package
}

func (n NotProvided) String() string {
	return fmt.Sprintf("%s depends on unprovided %q", n.Requirer, n.Atom)
}

func (n NotProvided) key() string {
	return "notprovided:" + n.Atom.String() + "@" + n.Requirer.String()
}

// relevantNames widens on the requiring package's name, not the
// unfulfilled atom: widening makes the *requirer* eligible for deep
// checking rather than the dependency itself.
func (n NotProvided) relevantNames() []string {
	return []string{n.Requirer.Name}
}

func namesOf(pkgs []*Package) []string {
	names := make([]string, len(pkgs))
	for i, p := range pkgs {
		names[i] = p.Name
	}
	return names
}

func joinKeys(pkgs []*Package) string {
	parts := make([]string, len(pkgs))
	for i, p := range pkgs {
		parts[i] = p.String()
	}
	return strings.Join(parts, ",")
}

// problemSet is the pass-global accumulator described in the design
// notes: written monotonically during a pass, either cleared wholesale
// when a branch survives, or consumed wholesale when the pass fails.
type problemSet struct {
	byKey map[string]Problem
}

func newProblemSet() *problemSet {
	return &problemSet{byKey: make(map[string]Problem)}
}

func (s *problemSet) add(p Problem) {
	s.byKey[p.key()] = p
}

func (s *problemSet) clear() {
	s.byKey = make(map[string]Problem)
}

func (s *problemSet) list() []Problem {
	out := make([]Problem, 0, len(s.byKey))
	for _, p := range s.byKey {
		out = append(out, p)
	}
	return out
}
