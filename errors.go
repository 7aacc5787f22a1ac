package depsolve

import (
	"bytes"
	"fmt"
)

// traceError is implemented by errors that can render a shorter form for
// trace-log output, distinct from the longer form Error() renders for a
// caller.
type traceError interface {
	traceString() string
}

// DuplicatePackageNameError is raised when System.Build is asked to index
// two packages sharing a name. Fatal: a System's by_name index cannot
// represent more than one package under the same name.
type DuplicatePackageNameError struct {
	Name string
}

func (e *DuplicatePackageNameError) Error() string {
	return fmt.Sprintf("duplicate package name %q while building system index", e.Name)
}

// NoValidPlanError is returned when the solver exhausts adaptive widening
// without any branch surviving. Problems accumulated during the final
// pass are attached so the caller can report why.
type NoValidPlanError struct {
	Requested []*Package
	Problems  []Problem
}

func (e *NoValidPlanError) Error() string {
	if len(e.Problems) == 0 {
		return "no dependency solution found"
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "no dependency solution found, %d problem(s):", len(e.Problems))
	for _, p := range e.Problems {
		fmt.Fprintf(&buf, "\n  %s", p)
	}
	return buf.String()
}

func (e *NoValidPlanError) traceString() string {
	return fmt.Sprintf("no valid plan after widening, %d problem(s)", len(e.Problems))
}

// NoRequiredPresentError is returned when every candidate plan, once
// hypothetically applied, still lacks one of the caller's required
// packages.
type NoRequiredPresentError struct {
	Needed []string
}

func (e *NoRequiredPresentError) Error() string {
	return fmt.Sprintf("no candidate plan leaves all required packages present: %v", e.Needed)
}

// UserDeclinedError is returned when the caller's prompter rejects the
// chosen plan.
type UserDeclinedError struct {
	Question string
}

func (e *UserDeclinedError) Error() string {
	return fmt.Sprintf("user declined: %s", e.Question)
}
