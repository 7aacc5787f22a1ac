package main

import (
	"os"

	"github.com/pelletier/go-toml"

	"github.com/go-aurpm/depsolve"
)

// pkgEntry is the TOML shape of one package record in a request file. It
// mirrors depsolve.Package's fields closely enough for toml.Unmarshal to
// fill a Package directly after a name/classification translation.
type pkgEntry struct {
	Name           string   `toml:"name"`
	Version        string   `toml:"version"`
	Classification string   `toml:"classification"`
	Depends        []string `toml:"depends"`
	MakeDepends    []string `toml:"make_depends"`
	CheckDepends   []string `toml:"check_depends"`
	Conflicts      []string `toml:"conflicts"`
	Provides       []string `toml:"provides"`
	Replaces       []string `toml:"replaces"`
	BaseName       string   `toml:"base_name"`
	RequiredBy     []string `toml:"required_by"`
}

func (e pkgEntry) toPackage() *depsolve.Package {
	return &depsolve.Package{
		Name:           e.Name,
		Version:        e.Version,
		Classification: parseClassification(e.Classification),
		Depends:        e.Depends,
		MakeDepends:    e.MakeDepends,
		CheckDepends:   e.CheckDepends,
		Conflicts:      e.Conflicts,
		Provides:       e.Provides,
		Replaces:       e.Replaces,
		BaseName:       e.BaseName,
		RequiredBy:     e.RequiredBy,
	}
}

func parseClassification(s string) depsolve.Classification {
	switch s {
	case "aur":
		return depsolve.AUR
	case "devel":
		return depsolve.Devel
	case "foreign":
		return depsolve.Foreign
	default:
		return depsolve.Repo
	}
}

// requestFile is the decoded shape of a depsolve request: what to
// install, how to solve it, and the fixed package universe the stub
// loaders below serve it from. A real deployment would replace Upstream/
// Repo/Installed with loaders backed by an AUR RPC client, a repo sync
// database, and libalpm - this harness keeps the same seams
// (UpstreamLoader/RepoLoader/InstalledLoader/DevelClassifier) but serves
// them out of the request file itself, so the solver core is exercised
// exactly the way a real caller would drive it.
type requestFile struct {
	Install         []string   `toml:"install"`
	OnlyUnfulfilled bool       `toml:"only_unfulfilled"`
	CacheDir        string     `toml:"cache_dir"`
	Trace           bool       `toml:"trace"`
	Upstream        []pkgEntry `toml:"upstream"`
	Repo            []pkgEntry `toml:"repo"`
	Installed       []pkgEntry `toml:"installed"`
	Devel           []string   `toml:"devel"`
}

func loadRequestFile(path string) (*requestFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var req requestFile
	if err := toml.Unmarshal(data, &req); err != nil {
		return nil, err
	}
	return &req, nil
}
