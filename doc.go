// Package depsolve is the dependency-resolution core of an auxiliary
// package manager for an Arch-style distribution that blends binary
// repository packages with user-contributed source packages.
//
// Given a set of requested packages and the package universe the caller has
// already assembled (the installed system and the upstream system), the
// solver computes topologically ordered installation plans that satisfy
// every dependency and conflict constraint, flags cycles and unsatisfiable
// dependencies as soft problems rather than hard errors, and lets the
// caller pick among the surviving plans.
//
// The package does no network I/O, touches no files, and never mutates a
// real system; every operation is a pure transformation over in-memory
// Package and System values. Upstream metadata retrieval, source checkout,
// build invocation, and terminal I/O are external collaborators reached
// only through the thin interfaces in external.go.
package depsolve
