package depsolve

// The interfaces below are the thin seams through which the core reaches
// its external collaborators. The core package itself never implements
// or calls these - they exist so that a caller (see cmd/depsolve) can
// assemble the Installed and Upstream Systems that Solve and SelectPlan
// operate on, without the core ever touching the network, a checkout
// directory, or a terminal.

// UpstreamLoader fetches AUR/DEVEL package metadata by name. Returning an
// empty result for an unknown name is permitted; the caller is expected
// to call this transitively over RelevantDeps until the upstream universe
// reaches closure.
type UpstreamLoader interface {
	LoadUpstream(names []string) ([]*Package, error)
}

// RepoLoader fetches binary-repository package metadata by name. A nil
// or empty names argument may be interpreted as "all packages in the
// repository", at the loader's discretion.
type RepoLoader interface {
	LoadRepo(names []string) ([]*Package, error)
}

// InstalledLoader fetches locally installed package metadata, with
// RequiredBy populated.
type InstalledLoader interface {
	LoadInstalled(names []string) ([]*Package, error)
}

// DevelClassifier decides whether a package name should be treated as a
// DEVEL package (a VCS-snapshot source package whose version string is a
// standing placeholder rather than a real release).
type DevelClassifier interface {
	IsDevel(name string) bool
}
