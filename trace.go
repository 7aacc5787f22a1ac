package depsolve

import "log"

// SolveParameters hold the inputs and options for a single Solve call.
// Only Requested, Installed, and Upstream are required.
type SolveParameters struct {
	// Requested is the set of packages the caller wants installed,
	// tried in order.
	Requested []*Package
	// Installed is the system as it currently exists.
	Installed *System
	// Upstream is the universe of packages the solver may draw
	// providers from - built transitively by the caller over
	// RelevantDeps until closure is reached, per the upstream metadata
	// loader's contract.
	Upstream *System
	// OnlyUnfulfilled, when true, skips expanding a dependency that
	// Installed already provides.
	OnlyUnfulfilled bool

	// Trace enables one-line trace output of the search as it
	// proceeds. TraceLogger must be non-nil when Trace is true.
	Trace       bool
	TraceLogger *log.Logger
}

type tracer struct {
	on  bool
	log *log.Logger
}

func (t tracer) expand(depth int, p *Package) {
	if !t.on {
		return
	}
	t.log.Printf("%*sexpand %s", depth*2, "", p)
}

func (t tracer) cycle(p *Package) {
	if !t.on {
		return
	}
	t.log.Printf("cycle detected revisiting %s", p)
}

func (t tracer) conflict(p *Package, with []*Package) {
	if !t.on {
		return
	}
	t.log.Printf("%s conflicts with %v", p, with)
}

func (t tracer) notProvided(atom Atom, by *Package) {
	if !t.on {
		return
	}
	t.log.Printf("%s: no provider for %q", by, atom)
}

func (t tracer) widen(names []string) {
	if !t.on {
		return
	}
	t.log.Printf("widening deep-check names with %v", names)
}

func (t tracer) giveUp(problems []Problem) {
	if !t.on {
		return
	}
	t.log.Printf("widening stalled, giving up with %d problem(s)", len(problems))
}

func (t tracer) solved(plans int) {
	if !t.on {
		return
	}
	t.log.Printf("solve finished with %d candidate plan(s)", plans)
}
