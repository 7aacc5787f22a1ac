package depsolve

// Classification distinguishes where a Package's build material comes
// from, which in turn decides whether build-time dependencies apply and
// whether the solver exempts it from cycle detection.
type Classification int

const (
	// Repo packages come from the binary repositories. They are exempt
	// from cycle detection (upstream binary metadata occasionally
	// contains benign mutual dependencies) and carry no separate
	// make/check dependencies.
	Repo Classification = iota
	// AUR packages are user-contributed source packages built locally.
	AUR
	// Devel packages are AUR packages whose version string is a
	// standing placeholder (e.g. a VCS snapshot) rather than a real
	// release; see the solver's name-narrowing heuristic.
	Devel
	// Foreign packages are installed but are in neither the binary
	// repositories nor AUR.
	Foreign
)

func (c Classification) String() string {
	switch c {
	case Repo:
		return "repo"
	case AUR:
		return "aur"
	case Devel:
		return "devel"
	case Foreign:
		return "foreign"
	default:
		return "unknown"
	}
}

// sourceBuilt reports whether make/check dependencies are meaningful for
// this classification.
func (c Classification) sourceBuilt() bool {
	return c == AUR || c == Devel
}

// Package is an immutable-identity descriptor for one package. Identity
// for equality and indexing purposes is the (Name, Version) pair; the
// slices below must not be mutated after a Package is handed to a System
// or the solver.
type Package struct {
	Name           string
	Version        string
	Classification Classification

	Depends      []string
	MakeDepends  []string
	CheckDepends []string
	Conflicts    []string
	Provides     []string
	Replaces     []string

	// BaseName groups source packages that share a build tree. Equal to
	// Name when the package does not split from a shared base.
	BaseName string

	// RequiredBy lists the names of installed packages that depend on
	// this one. Only meaningful for packages obtained from an installed
	// system; used by the hypothetical mutator to cascade removals.
	RequiredBy []string
}

// Base returns the package's build-tree group key, defaulting to its own
// name when BaseName was left unset.
func (p *Package) Base() string {
	if p.BaseName == "" {
		return p.Name
	}
	return p.BaseName
}

// RelevantDeps returns depends ∪ make_depends ∪ check_depends for
// source-built classifications, and just depends otherwise. Order is
// preserved; duplicates are not removed, since the solver tolerates them
// via visitedDepNames.
func (p *Package) RelevantDeps() []string {
	if !p.Classification.sourceBuilt() {
		return p.Depends
	}
	deps := make([]string, 0, len(p.Depends)+len(p.MakeDepends)+len(p.CheckDepends))
	deps = append(deps, p.Depends...)
	deps = append(deps, p.MakeDepends...)
	deps = append(deps, p.CheckDepends...)
	return deps
}

// pkgKey identifies a Package for set/map membership by its immutable
// (Name, Version) identity.
type pkgKey struct {
	name, version string
}

func keyOf(p *Package) pkgKey {
	return pkgKey{p.Name, p.Version}
}

func (p *Package) String() string {
	return p.Name + "-" + p.Version
}

// samePkg reports whether two Package pointers denote the same
// (Name, Version) identity, irrespective of pointer equality.
func samePkg(a, b *Package) bool {
	return a.Name == b.Name && a.Version == b.Version
}

func containsPkg(list []*Package, p *Package) bool {
	for _, q := range list {
		if samePkg(q, p) {
			return true
		}
	}
	return false
}

func indexOfPkg(list []*Package, p *Package) int {
	for i, q := range list {
		if samePkg(q, p) {
			return i
		}
	}
	return -1
}
