// Command depsolve is a minimal demonstration harness for the depsolve
// core: it reads a request file describing a package universe and a
// wanted install set, locks a cache directory for the duration of the
// run, solves, and prints the chosen plan. It is not a package manager -
// fetching, building, and installing remain entirely out of scope, per
// the core's own non-goals.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/theckman/go-flock"

	"github.com/go-aurpm/depsolve"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin *os.File, stdout, stderr *os.File) int {
	fs := flag.NewFlagSet("depsolve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	requestPath := fs.String("request", "", "path to a TOML request file (required)")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if *requestPath == "" {
		fmt.Fprintln(stderr, "depsolve: -request is required")
		return 1
	}

	errLog := log.New(stderr, "depsolve: ", 0)

	req, err := loadRequestFile(*requestPath)
	if err != nil {
		errLog.Println(err)
		return 1
	}

	cacheDir := req.CacheDir
	if cacheDir == "" {
		cacheDir = filepath.Join(os.TempDir(), "depsolve-cache")
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		errLog.Println(err)
		return 1
	}
	lock := flock.NewFlock(filepath.Join(cacheDir, ".depsolve.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		errLog.Println(err)
		return 1
	}
	if !locked {
		errLog.Println("cache directory is locked by another depsolve run")
		return 1
	}
	defer lock.Unlock()

	loader := newStaticLoader(req.Upstream, req.Repo, req.Devel)
	installedLoader := &staticInstalledLoader{}
	for _, e := range req.Installed {
		installedLoader.pkgs = append(installedLoader.pkgs, e.toPackage())
	}

	installed, err := depsolve.Build(installedLoader.pkgs)
	if err != nil {
		errLog.Println(err)
		return 1
	}

	universe, err := closeUpstream(loader, loader, req.Install)
	if err != nil {
		errLog.Println(err)
		return 1
	}
	upstream, err := depsolve.Build(universe)
	if err != nil {
		errLog.Println(err)
		return 1
	}

	var requested []*depsolve.Package
	for _, name := range req.Install {
		p, ok := upstream.Get(name)
		if !ok {
			errLog.Printf("requested package %q not found in upstream universe", name)
			return 1
		}
		requested = append(requested, p)
	}

	var traceLogger *log.Logger
	if req.Trace {
		traceLogger = log.New(stderr, "", 0)
	}

	plans, err := depsolve.Solve(depsolve.SolveParameters{
		Requested:       requested,
		Installed:       installed,
		Upstream:        upstream,
		OnlyUnfulfilled: req.OnlyUnfulfilled,
		Trace:           req.Trace,
		TraceLogger:     traceLogger,
	})
	if err != nil {
		errLog.Println(err)
		return 1
	}

	prompter := newCLIPrompter(stdin, stdout)
	chosen, err := depsolve.SelectPlan(plans, req.Install, installed, prompter)
	if err != nil {
		errLog.Println(err)
		return 1
	}

	summary, err := depsolve.Summarize(installed, chosen)
	if err != nil {
		errLog.Println(err)
		return 1
	}
	printSummary(stdout, summary)
	return 0
}

func printSummary(out *os.File, summary depsolve.PlanSummary) {
	printGroup(out, "install", summary.Install)
	printGroup(out, "upgrade", summary.Upgrade)
	printGroup(out, "reinstall", summary.Reinstall)
	printGroup(out, "remove", summary.Remove)
}

func printGroup(out *os.File, label string, pkgs []*depsolve.Package) {
	if len(pkgs) == 0 {
		return
	}
	fmt.Fprintf(out, "%s:\n", label)
	for _, p := range pkgs {
		fmt.Fprintf(out, "  %s\n", p)
	}
}
