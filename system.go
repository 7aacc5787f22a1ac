package depsolve

// System is a named collection of Packages, indexed for the three lookups
// the solver and mutator need: by name, by provided name, and by
// conflicting name. A System is immutable once built; membership changes
// always go through Build on a fresh package list (see the hypothetical
// mutator in mutate.go), never in-place mutation.
type System struct {
	byName      packageTrie
	byProvides  packageListTrie
	byConflicts packageListTrie
	order       []*Package // insertion order, for Packages()
}

// Build indexes packages into a new System. It fails with
// *DuplicatePackageNameError if two packages share a name.
func Build(packages []*Package) (*System, error) {
	sys := &System{
		byName:      newPackageTrie(),
		byProvides:  newPackageListTrie(),
		byConflicts: newPackageListTrie(),
	}
	for _, p := range packages {
		if _, exists := sys.byName.Get(p.Name); exists {
			return nil, &DuplicatePackageNameError{Name: p.Name}
		}
		sys.byName.Insert(p.Name, p)
		sys.order = append(sys.order, p)
		for _, provide := range p.Provides {
			sys.byProvides.Append(Strip(provide), p)
		}
		for _, conflict := range p.Conflicts {
			sys.byConflicts.Append(Strip(conflict), p)
		}
	}
	return sys, nil
}

// buildLoose indexes packages for read-only internal snapshotting (the
// solver's visited-packages and in-progress packages-in-solution traces),
// where the same package can legitimately be pushed in more than once.
// Unlike Build, a repeated name keeps its first occurrence instead of
// failing; this mirrors the source's plain-dict System constructor, which
// never raised on an internal re-append.
func buildLoose(packages []*Package) *System {
	sys := &System{
		byName:      newPackageTrie(),
		byProvides:  newPackageListTrie(),
		byConflicts: newPackageListTrie(),
	}
	for _, p := range packages {
		if _, exists := sys.byName.Get(p.Name); !exists {
			sys.byName.Insert(p.Name, p)
			sys.order = append(sys.order, p)
		}
		for _, provide := range p.Provides {
			sys.byProvides.Append(Strip(provide), p)
		}
		for _, conflict := range p.Conflicts {
			sys.byConflicts.Append(Strip(conflict), p)
		}
	}
	return sys
}

// Packages returns every indexed package, in insertion order.
func (s *System) Packages() []*Package {
	out := make([]*Package, len(s.order))
	copy(out, s.order)
	return out
}

// Get returns the package indexed under name, if any.
func (s *System) Get(name string) (*Package, bool) {
	return s.byName.Get(name)
}

// ProvidedBy resolves the providers of a dependency atom, in a fixed
// order: an exact by-name match first (if its version satisfies the
// atom), then every package that declares a matching `provides` entry,
// in the order provides were indexed. Duplicates are suppressed.
func (s *System) ProvidedBy(atom Atom) []*Package {
	var out []*Package
	seen := make(map[pkgKey]bool)

	add := func(p *Package) {
		k := keyOf(p)
		if !seen[k] {
			seen[k] = true
			out = append(out, p)
		}
	}

	if p, ok := s.byName.Get(atom.Name); ok {
		if atom.Op == OpNone || Compare(p.Version, atom.Op, atom.Version) {
			add(p)
		}
	}

	for _, q := range s.byProvides.Get(atom.Name) {
		if seen[keyOf(q)] {
			continue
		}
		for _, provide := range q.Provides {
			if Strip(provide) != atom.Name {
				continue
			}
			pa := ParseAtom(provide)
			switch {
			case atom.Op == OpNone:
				add(q)
			case pa.Op == OpEQ || pa.Op == OpEQEQ:
				if Compare(pa.Version, atom.Op, atom.Version) {
					add(q)
				}
			case pa.Op == OpNone:
				if Compare(q.Version, atom.Op, atom.Version) {
					add(q)
				}
			}
		}
	}

	return out
}

// ConflictingWith returns every package in the system that conflicts with
// pkg: a same-name, different-version package already present; any
// package pkg's own Conflicts entries name (when the version predicate
// holds); and, symmetrically, any package that names pkg in its own
// Conflicts. The symmetric check and the dual versioned-provide policy
// in ProvidedBy both exist because upstream metadata may declare a
// relation from either side.
func (s *System) ConflictingWith(pkg *Package) []*Package {
	var out []*Package
	seen := make(map[pkgKey]bool)

	add := func(p *Package) {
		k := keyOf(p)
		if !seen[k] {
			seen[k] = true
			out = append(out, p)
		}
	}

	if existing, ok := s.byName.Get(pkg.Name); ok && existing.Version != pkg.Version {
		add(existing)
	}

	for _, conflict := range pkg.Conflicts {
		atom := ParseAtom(conflict)
		if existing, ok := s.byName.Get(atom.Name); ok {
			if atom.Op == OpNone || Compare(existing.Version, atom.Op, atom.Version) {
				add(existing)
			}
		}
	}

	for _, q := range s.byConflicts.Get(pkg.Name) {
		if samePkg(q, pkg) {
			continue
		}
		for _, conflict := range q.Conflicts {
			atom := ParseAtom(conflict)
			if atom.Name != pkg.Name {
				continue
			}
			if atom.Op == OpNone || Compare(pkg.Version, atom.Op, atom.Version) {
				add(q)
			}
		}
	}

	return out
}

// AllDepsSatisfied reports whether every atom in package's RelevantDeps
// has at least one provider in this system.
func (s *System) AllDepsSatisfied(pkg *Package) bool {
	for _, dep := range pkg.RelevantDeps() {
		if len(s.ProvidedBy(ParseAtom(dep))) == 0 {
			return false
		}
	}
	return true
}
