package childmerge

import (
	"github.com/plasmerge/plasmerge/astnode"
	"github.com/plasmerge/plasmerge/identity"
)

// Origin records which version a merged child originated from.
type Origin int

const (
	// OriginNew marks a child copied from the new version's children.
	OriginNew Origin = iota
	// OriginEdited marks a child inserted from the edited version's
	// children during anchored insertion.
	OriginEdited
)

// Child pairs a node in the merged list with the version it came from,
// since the post-assembly traversal in Resolve treats the two origins
// differently.
type Child struct {
	Node   *astnode.Node
	Origin Origin
}

// MergeChildren builds the merged children list: the new version's
// children copied positionally, then edited-only text, string-literal,
// and opaque content inserted (or skipped, when it matches content
// already present or already deleted by the tool) anchored by its
// original predecessor.
//
// equiv resolves tag-or-component identity between the edited and new
// versions; it is needed because an anchor predecessor may itself be a
// tag-or-component node, and a plain nameInId string comparison would
// miss a predecessor renamed by the tool.
func MergeChildren(newChildren, editedChildren, baseChildren []*astnode.Node, equiv identity.Equiv) []Child {
	merged := make([]Child, len(newChildren))
	for i, n := range newChildren {
		merged[i] = Child{Node: n, Origin: OriginNew}
	}

	cursor := 0
	for i, e := range editedChildren {
		if e == nil {
			continue
		}
		switch e.Kind {
		case astnode.KindText, astnode.KindStringLit:
			if idx, kind := findChildMatch(merged, cursor, e, equiv); kind == identity.MatchPerfect {
				cursor = idx + 1
				continue
			}
			if idx, kind := identity.FindMatch(baseChildren, 0, equiv, e); kind == identity.MatchPerfect && idx >= 0 {
				continue // tool deleted it; honor the deletion
			}
			cursor = anchoredInsert(&merged, cursor, i, editedChildren, equiv, Child{Node: e, Origin: OriginEdited})
		case astnode.KindOpaque:
			cursor = anchoredInsert(&merged, cursor, i, editedChildren, equiv, Child{Node: e, Origin: OriginEdited})
		case astnode.KindTagOrComponent, astnode.KindArg, astnode.KindCondStrCall:
			// Handled by recursive serialization of the new version's
			// matching child; nothing to splice in here.
		default:
			panic("childmerge: unhandled astnode.Kind")
		}
	}
	return merged
}

// anchoredInsert implements the anchored-insertion rule: locate the
// predecessor edited child (editedChildren[i-1]) in merged at or after
// cursor and insert newChild right after it, or prepend/insert-at-cursor
// when there is no usable anchor. It returns the new cursor position.
func anchoredInsert(merged *[]Child, cursor, i int, editedChildren []*astnode.Node, equiv identity.Equiv, newChild Child) int {
	if i == 0 {
		insertAt(merged, 0, newChild)
		return 1
	}
	prev := editedChildren[i-1]
	idx, kind := findChildMatch(*merged, cursor, prev, equiv)
	if kind == identity.MatchNone {
		insertAt(merged, cursor, newChild)
		return cursor + 1
	}
	insertAt(merged, idx+1, newChild)
	return idx + 2
}

func findChildMatch(children []Child, start int, probe *astnode.Node, equiv identity.Equiv) (int, identity.MatchKind) {
	return identity.FindMatch(nodesOf(children), start, equiv, probe)
}

func nodesOf(children []Child) []*astnode.Node {
	nodes := make([]*astnode.Node, len(children))
	for i, c := range children {
		nodes[i] = c.Node
	}
	return nodes
}

func insertAt(s *[]Child, pos int, c Child) {
	*s = append(*s, Child{})
	copy((*s)[pos+1:], (*s)[pos:])
	(*s)[pos] = c
}

// SerializeFunc recursively serializes a single child node originating
// from the new version into its final merged form. Supplied by the node
// serializer, which owns the cross-node recursion that Resolve must not
// duplicate.
type SerializeFunc func(n *astnode.Node) (*astnode.Node, error)

// Resolve performs the post-assembly traversal over a merged children
// list: nodes inserted from the edited version and opaque new-version
// nodes are emitted unchanged; every other new-version node is passed
// through serialize. A nil result from serialize (the node was deleted)
// is dropped from the output.
func Resolve(children []Child, serialize SerializeFunc) ([]*astnode.Node, error) {
	out := make([]*astnode.Node, 0, len(children))
	for _, c := range children {
		if c.Origin == OriginEdited || c.Node.Kind == astnode.KindOpaque {
			out = append(out, c.Node)
			continue
		}
		resolved, err := serialize(c.Node)
		if err != nil {
			return nil, err
		}
		if resolved != nil {
			out = append(out, resolved)
		}
	}
	return out, nil
}
