// Package astutil provides the tree-cloning and identifier-rewriting
// primitives every merge stage composes with.
//
// Per-subtree substitution is pervasive in the merge engine: attribute
// rewriting, event-handler identifier rename, argument serialization, and
// visibility-wrapper reconciliation all need the same shape of operation:
// deep-clone this subtree, but if a hook says "replace this node", use the
// replacement and do not descend into it. CloneNode and CloneElement are
// that primitive, specialized to the astnode tree shape. Renaming member
// references inside an opaque RawExpr (rh.onRoot... -> rh.onRoot2...) is
// delegated to the external AST via the MemberRenamer interface, since
// this module does not parse or print source text itself (see the
// package-level Non-goals in the parent module's design notes).
package astutil

import "github.com/plasmerge/plasmerge/astnode"

// Hook inspects a node before CloneNode descends into it. If replace is
// true, CloneNode emits replacement in place of n and does not walk n's
// children.
type Hook func(n *astnode.Node) (replacement *astnode.Node, replace bool)

// CloneNode returns a deep copy of n, consulting hook before descending
// into every node (including n itself). A nil hook clones unconditionally.
func CloneNode(n *astnode.Node, hook Hook) *astnode.Node {
	if n == nil {
		return nil
	}
	if hook != nil {
		if repl, ok := hook(n); ok {
			return repl
		}
	}

	clone := &astnode.Node{
		Kind:    n.Kind,
		Raw:     cloneRaw(n.Raw),
		ArgName: n.ArgName,
		ArgExpr: cloneRaw(n.ArgExpr),
		Value:   n.Value,
	}
	if n.Element != nil {
		clone.Element = CloneElement(n.Element, hook)
	}
	if n.ArgTags != nil {
		clone.ArgTags = make([]*astnode.Node, len(n.ArgTags))
		for i, t := range n.ArgTags {
			clone.ArgTags[i] = CloneNode(t, hook)
		}
	}
	return clone
}

// CloneElement returns a deep copy of e, consulting hook for every child
// node and for attribute value containers.
func CloneElement(e *astnode.JSXElement, hook Hook) *astnode.JSXElement {
	if e == nil {
		return nil
	}
	clone := &astnode.JSXElement{
		NameInID:    e.NameInID,
		Raw:         cloneRaw(e.Raw),
		SelfClosing: e.SelfClosing,
	}
	if e.Attrs != nil {
		clone.Attrs = make([]astnode.Attr, len(e.Attrs))
		for i, a := range e.Attrs {
			clone.Attrs[i] = CloneAttr(a, hook)
		}
	}
	if e.Children != nil {
		clone.Children = make([]*astnode.Node, len(e.Children))
		for i, c := range e.Children {
			clone.Children[i] = CloneNode(c, hook)
		}
	}
	return clone
}

// CloneAttr returns a deep copy of a, consulting hook for its value
// container.
func CloneAttr(a astnode.Attr, hook Hook) astnode.Attr {
	return astnode.Attr{
		IsSpread: a.IsSpread,
		Name:     a.Name,
		Value:    CloneNode(a.Value, hook),
		Raw:      cloneRaw(a.Raw),
	}
}

// CloneRaw deep-copies raw when it implements Cloner; otherwise it is
// returned unchanged. Exported for callers that splice a single raw
// expression into a larger cloned structure without going through
// CloneNode, such as the node serializer's wrapper-expression handling.
func CloneRaw(raw astnode.RawExpr) astnode.RawExpr {
	return cloneRaw(raw)
}

// cloneRaw deep-copies a RawExpr when it implements Cloner; otherwise it
// is returned unchanged, since the merge engine treats bare RawExpr
// leaves (without a Cloner implementation) as immutable opaque handles
// that are safe to share because nothing ever mutates them in place.
func cloneRaw(raw astnode.RawExpr) astnode.RawExpr {
	if raw == nil {
		return nil
	}
	if c, ok := raw.(astnode.Cloner); ok {
		return c.Clone()
	}
	return raw
}

// MemberRenamer is implemented by external RawExpr values that can
// rewrite member references of the shape `<helper>.<oldMember>` to
// `<helper>.<newMember>` within themselves, returning a new, independent
// expression. The external AST (a Non-goal of this module) supplies this;
// plasmerge only orchestrates when and with what arguments it is called.
type MemberRenamer interface {
	astnode.RawExpr
	RenameMember(helper, oldMember, newMember string) astnode.RawExpr
}

// RenameMemberRefs rewrites every `<helper>.<oldMember><rest>` reference
// inside expr to `<helper>.<newMember><rest>` and returns the rewritten
// expression. If expr does not implement MemberRenamer, it is returned
// unchanged — there is nothing this module can safely rewrite inside an
// opaque expression.
func RenameMemberRefs(expr astnode.RawExpr, helper, oldMember, newMember string) astnode.RawExpr {
	renamer, ok := expr.(MemberRenamer)
	if !ok {
		return expr
	}
	return renamer.RenameMember(helper, oldMember, newMember)
}

// PosTransform rewrites the raw expression located at a given source
// position, returning its replacement.
type PosTransform func(original astnode.RawExpr) astnode.RawExpr

// PosReplacer is implemented by external RawExpr values that can locate
// a descendant by its stable source position and splice in the result
// of transform, independent of object identity. The visibility
// reconciler needs this to wrap a markup element nested inside other
// developer-authored structure after cloning, since the clone no longer
// shares object identity with the original (design note: "node identity
// across clones").
type PosReplacer interface {
	astnode.RawExpr
	ReplaceAtPos(pos int, transform PosTransform) (replacement astnode.RawExpr, found bool)
}

// ReplaceAtPos locates the descendant of expr at pos and replaces it
// with the result of transform, returning the rewritten expression and
// whether a match was found. If expr does not implement PosReplacer,
// found is false and expr is returned unchanged.
func ReplaceAtPos(expr astnode.RawExpr, pos int, transform PosTransform) (astnode.RawExpr, bool) {
	pr, ok := expr.(PosReplacer)
	if !ok {
		return expr, false
	}
	return pr.ReplaceAtPos(pos, transform)
}
