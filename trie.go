package depsolve

import "github.com/armon/go-radix"

// packageTrie is a typed wrapper around a radix tree mapping a single
// name to at most one Package, used for System.byName. It exists purely
// to avoid type-asserting radix.Tree's interface{} values at every call
// site.
type packageTrie struct {
	t *radix.Tree
}

func newPackageTrie() packageTrie {
	return packageTrie{t: radix.New()}
}

func (t packageTrie) Get(name string) (*Package, bool) {
	if v, ok := t.t.Get(name); ok {
		return v.(*Package), true
	}
	return nil, false
}

func (t packageTrie) Insert(name string, p *Package) {
	t.t.Insert(name, p)
}

func (t packageTrie) Len() int {
	return t.t.Len()
}

func (t packageTrie) Walk(fn func(name string, p *Package) bool) {
	t.t.Walk(func(s string, v interface{}) bool {
		return fn(s, v.(*Package))
	})
}

// packageListTrie is the same idea for System.byProvides and
// System.byConflicts, where more than one Package can be keyed under the
// same provided/conflicting name.
type packageListTrie struct {
	t *radix.Tree
}

func newPackageListTrie() packageListTrie {
	return packageListTrie{t: radix.New()}
}

func (t packageListTrie) Get(name string) []*Package {
	if v, ok := t.t.Get(name); ok {
		return v.([]*Package)
	}
	return nil
}

// Append adds p to the list keyed under name, preserving insertion order
// and skipping duplicates (by Package identity).
func (t packageListTrie) Append(name string, p *Package) {
	cur := t.Get(name)
	if containsPkg(cur, p) {
		return
	}
	t.t.Insert(name, append(cur, p))
}
