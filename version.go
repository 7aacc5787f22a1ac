package depsolve

import (
	"strconv"
	"strings"
)

// Op is a version-comparison operator usable in a dependency atom.
type Op string

// The operators a dependency atom may carry. An empty Op matches any
// version.
const (
	OpNone  Op = ""
	OpLT    Op = "<"
	OpLE    Op = "<="
	OpEQ    Op = "="
	OpEQEQ  Op = "=="
	OpGE    Op = ">="
	OpGT    Op = ">"
)

// the operators ParseAtom scans for; order here doesn't matter, since it
// picks the earliest match and breaks position ties by preferring the
// longer operator (so ">=" wins over ">" at the same index).
var atomOps = []Op{OpLE, OpGE, OpEQEQ, OpLT, OpGT, OpEQ}

// Atom is a parsed dependency expression: name[op version].
type Atom struct {
	Name    string
	Op      Op
	Version string
}

// String renders the atom back into its canonical "name[op version]" form.
func (a Atom) String() string {
	if a.Op == OpNone {
		return a.Name
	}
	return a.Name + string(a.Op) + a.Version
}

// ParseAtom splits a dependency string on the first occurrence of any
// comparison operator (longest match wins) into name, operator, and
// version. An atom with no operator means "any version" and carries an
// empty Op and Version.
func ParseAtom(s string) Atom {
	best := -1
	var bestOp Op
	for _, op := range atomOps {
		if idx := strings.Index(s, string(op)); idx >= 0 {
			if best == -1 || idx < best || (idx == best && len(op) > len(bestOp)) {
				best, bestOp = idx, op
			}
		}
	}
	if best == -1 {
		return Atom{Name: s}
	}
	return Atom{
		Name:    s[:best],
		Op:      bestOp,
		Version: s[best+len(bestOp):],
	}
}

// Strip returns only the name portion of a dependency string.
func Strip(s string) string {
	return ParseAtom(s).Name
}

// Compare evaluates whether v1 op v2 holds under the host package
// manager's version ordering: an epoch "N:" prefix, segmented
// numeric/alpha comparison of the version proper, and a "-R" release
// suffix compared only when both sides carry one. An empty op matches any
// version. "=" and "==" are equivalent.
func Compare(v1 string, op Op, v2 string) bool {
	if op == OpNone {
		return true
	}
	c := compareVersions(v1, v2)
	switch op {
	case OpLT:
		return c < 0
	case OpLE:
		return c <= 0
	case OpEQ, OpEQEQ:
		return c == 0
	case OpGE:
		return c >= 0
	case OpGT:
		return c > 0
	default:
		return false
	}
}

type splitVersion struct {
	epoch string
	ver   string
	rel   string
}

func splitFullVersion(s string) splitVersion {
	sv := splitVersion{epoch: "0"}
	rest := s
	if i := strings.IndexByte(rest, ':'); i >= 0 {
		sv.epoch = rest[:i]
		rest = rest[i+1:]
	}
	if i := strings.LastIndexByte(rest, '-'); i >= 0 {
		sv.ver, sv.rel = rest[:i], rest[i+1:]
	} else {
		sv.ver = rest
	}
	return sv
}

// compareVersions implements pacman's vercmp ordering: compare epochs
// numerically, then compare the version proper segment by segment, then -
// only if both sides actually specify a release - compare the release.
func compareVersions(a, b string) int {
	sa, sb := splitFullVersion(a), splitFullVersion(b)

	if c := compareEpoch(sa.epoch, sb.epoch); c != 0 {
		return c
	}
	if c := compareSegmented(sa.ver, sb.ver); c != 0 {
		return c
	}
	if sa.rel == "" || sb.rel == "" {
		return 0
	}
	return compareSegmented(sa.rel, sb.rel)
}

func compareEpoch(a, b string) int {
	an, aerr := strconv.Atoi(a)
	bn, berr := strconv.Atoi(b)
	if aerr != nil || berr != nil {
		return strings.Compare(a, b)
	}
	switch {
	case an < bn:
		return -1
	case an > bn:
		return 1
	default:
		return 0
	}
}

// compareNumericSegment compares two digit runs as arbitrary-precision
// unsigned integers: longer (after stripping leading zeros) always wins,
// equal length falls back to lexicographic (== numeric, for digit-only
// strings) comparison.
func compareNumericSegment(a, b string) int {
	a, b = trimLeadingZeros(a), trimLeadingZeros(b)
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// segment splits a version string into alternating digit/non-digit runs,
// the way rpmvercmp (and pacman's alpm_pkg_vercmp, which borrows it) does.
// Non-alphanumeric separators are dropped entirely; they only serve to
// delimit segments.
func segment(s string) []string {
	var segs []string
	i := 0
	for i < len(s) {
		for i < len(s) && !isAlnum(s[i]) {
			i++
		}
		start := i
		if start < len(s) && isDigit(s[start]) {
			for i < len(s) && isDigit(s[i]) {
				i++
			}
		} else {
			for i < len(s) && isAlnum(s[i]) && !isDigit(s[i]) {
				i++
			}
		}
		if i > start {
			segs = append(segs, s[start:i])
		}
	}
	return segs
}

func isAlnum(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// compareSegmented compares two version strings segment by segment. A
// numeric segment always outranks an alpha segment at the same position.
// Running out of segments on one side loses to a numeric segment but wins
// against an alpha segment on the other (mirrors rpmvercmp's "1.0" >
// "1.0a" but "1.0" < "1.0.1" behavior).
func compareSegmented(a, b string) int {
	sa, sb := segment(a), segment(b)
	for i := 0; i < len(sa) || i < len(sb); i++ {
		if i >= len(sa) {
			if isDigit(sb[i][0]) {
				return -1
			}
			return 1
		}
		if i >= len(sb) {
			if isDigit(sa[i][0]) {
				return 1
			}
			return -1
		}

		na, nb := sa[i], sb[i]
		aNum, bNum := isDigit(na[0]), isDigit(nb[0])
		switch {
		case aNum && bNum:
			if c := compareNumericSegment(na, nb); c != 0 {
				return c
			}
		case aNum && !bNum:
			return 1
		case !aNum && bNum:
			return -1
		default:
			if c := strings.Compare(na, nb); c != 0 {
				if c < 0 {
					return -1
				}
				return 1
			}
		}
	}
	return 0
}

func trimLeadingZeros(s string) string {
	i := 0
	for i < len(s)-1 && s[i] == '0' {
		i++
	}
	return s[i:]
}
