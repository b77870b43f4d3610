package identity

import "github.com/plasmerge/plasmerge/astnode"

// MatchKind classifies how closely a candidate node matched a probe.
type MatchKind int

const (
	// MatchNone indicates no candidate of the probe's variant was found.
	MatchNone MatchKind = iota
	// MatchType indicates a candidate of the same variant was found, but
	// its content (value, argName, or nameInId) differs from the probe.
	MatchType
	// MatchPerfect indicates a candidate of the same variant and
	// matching content was found.
	MatchPerfect
)

// String implements fmt.Stringer for readable test failures and logs.
func (k MatchKind) String() string {
	switch k {
	case MatchNone:
		return "none"
	case MatchType:
		return "type"
	case MatchPerfect:
		return "perfect"
	default:
		return "unknown"
	}
}

// Equiv reports whether two tag-or-component nameInId values refer to
// the same logical entity across versions.
type Equiv func(a, b string) bool

// FindMatch scans nodes starting at start for the best match to probe,
// per the kind-specific rules:
//
//   - text / string-lit: perfect requires an equal Value; otherwise the
//     first node of the same kind is a type match.
//   - arg: perfect requires an equal ArgName; otherwise the first node
//     of the same kind is a type match.
//   - cond-str-call: the first node of the same kind is always a
//     perfect match (at most one is expected per sibling list).
//   - tag-or-component: perfect requires equiv(candidate.NameInID,
//     probe.NameInID) to hold; otherwise the first node of the same
//     kind is a type match.
//
// It returns the index of the chosen candidate and its MatchKind, or
// (-1, MatchNone) if no node of probe's kind exists in nodes[start:].
func FindMatch(nodes []*astnode.Node, start int, equiv Equiv, probe *astnode.Node) (int, MatchKind) {
	if probe == nil {
		return -1, MatchNone
	}

	typeIndex := -1
	for i := start; i < len(nodes); i++ {
		cand := nodes[i]
		if cand == nil || cand.Kind != probe.Kind {
			continue
		}
		if typeIndex == -1 {
			typeIndex = i
		}
		if isPerfect(cand, probe, equiv) {
			return i, MatchPerfect
		}
	}
	if typeIndex == -1 {
		return -1, MatchNone
	}
	return typeIndex, MatchType
}

func isPerfect(cand, probe *astnode.Node, equiv Equiv) bool {
	switch probe.Kind {
	case astnode.KindText, astnode.KindStringLit:
		return cand.Value == probe.Value
	case astnode.KindArg:
		return cand.ArgName == probe.ArgName
	case astnode.KindCondStrCall:
		return true
	case astnode.KindTagOrComponent:
		if cand.Element == nil || probe.Element == nil || equiv == nil {
			return false
		}
		return equiv(cand.Element.NameInID, probe.Element.NameInID)
	case astnode.KindOpaque:
		return false
	default:
		panic("identity: unhandled astnode.Kind")
	}
}
