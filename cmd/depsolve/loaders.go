package main

import "github.com/go-aurpm/depsolve"

// staticLoader implements UpstreamLoader, RepoLoader, and DevelClassifier
// (InstalledLoader is staticInstalledLoader, below) over a fixed universe
// decoded from a request file,
// standing in for the network/database lookups a real caller would
// perform (AUR RPC, repo sync databases, libalpm, a devel-version cache)
// without touching the network or a local package database.
type staticLoader struct {
	byName map[string]*depsolve.Package
	devel  map[string]bool
}

func newStaticLoader(upstream, repo []pkgEntry, devel []string) *staticLoader {
	l := &staticLoader{
		byName: make(map[string]*depsolve.Package),
		devel:  make(map[string]bool, len(devel)),
	}
	for _, e := range upstream {
		l.byName[e.Name] = e.toPackage()
	}
	for _, e := range repo {
		l.byName[e.Name] = e.toPackage()
	}
	for _, n := range devel {
		l.devel[n] = true
	}
	return l
}

func (l *staticLoader) LoadUpstream(names []string) ([]*depsolve.Package, error) {
	return l.lookup(names, func(p *depsolve.Package) bool {
		return p.Classification == depsolve.AUR || p.Classification == depsolve.Devel
	}), nil
}

func (l *staticLoader) LoadRepo(names []string) ([]*depsolve.Package, error) {
	return l.lookup(names, func(p *depsolve.Package) bool {
		return p.Classification == depsolve.Repo
	}), nil
}

func (l *staticLoader) lookup(names []string, keep func(*depsolve.Package) bool) []*depsolve.Package {
	var out []*depsolve.Package
	if names == nil {
		for _, p := range l.byName {
			if keep(p) {
				out = append(out, p)
			}
		}
		return out
	}
	for _, n := range names {
		if p, ok := l.byName[n]; ok && keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func (l *staticLoader) IsDevel(name string) bool {
	return l.devel[name]
}

type staticInstalledLoader struct {
	pkgs []*depsolve.Package
}

func (l *staticInstalledLoader) LoadInstalled(names []string) ([]*depsolve.Package, error) {
	if names == nil {
		return l.pkgs, nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var out []*depsolve.Package
	for _, p := range l.pkgs {
		if want[p.Name] {
			out = append(out, p)
		}
	}
	return out, nil
}

// closeUpstream transitively loads the upstream/repo universe starting
// from seed names, following RelevantDeps until no new names appear -
// the closure contract UpstreamLoader documents.
func closeUpstream(upstream depsolve.UpstreamLoader, repo depsolve.RepoLoader, seeds []string) ([]*depsolve.Package, error) {
	seen := make(map[string]bool)
	var all []*depsolve.Package
	frontier := append([]string{}, seeds...)

	for len(frontier) > 0 {
		var next []string
		for _, name := range frontier {
			if seen[name] {
				continue
			}
			seen[name] = true

			fromAUR, err := upstream.LoadUpstream([]string{name})
			if err != nil {
				return nil, err
			}
			fromRepo, err := repo.LoadRepo([]string{name})
			if err != nil {
				return nil, err
			}

			found := make([]*depsolve.Package, 0, len(fromAUR)+len(fromRepo))
			found = append(found, fromAUR...)
			found = append(found, fromRepo...)

			for _, p := range found {
				all = append(all, p)
				for _, dep := range p.RelevantDeps() {
					depName := depsolve.Strip(dep)
					if !seen[depName] {
						next = append(next, depName)
					}
				}
			}
		}
		frontier = next
	}
	return all, nil
}
