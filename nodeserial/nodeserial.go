package nodeserial

import (
	"github.com/plasmerge/plasmerge/astnode"
	"github.com/plasmerge/plasmerge/attrmerge"
	"github.com/plasmerge/plasmerge/childmerge"
	"github.com/plasmerge/plasmerge/identity"
	"github.com/plasmerge/plasmerge/internal/astutil"
	"github.com/plasmerge/plasmerge/version"
	"github.com/plasmerge/plasmerge/visibility"
)

// NullLiteralFactory is implemented by an argument expression that knows
// how to produce a null-literal replacement for one of its slots, when a
// substituted tag-or-component node turns out to be a developer
// deletion. wrapInContainer requests the surrounding expression
// container a markup slot normally carries.
type NullLiteralFactory interface {
	astnode.RawExpr
	NullLiteral(wrapInContainer bool) astnode.RawExpr
}

// ClosingTagMaterializer is implemented by a self-closing element's raw
// expression that knows how to rewrite itself with an explicit closing
// tag, so merged children have somewhere to live.
type ClosingTagMaterializer interface {
	astnode.RawExpr
	MaterializeClosingTag() astnode.RawExpr
}

// ElementMaterializer is implemented by a JSX element's raw expression
// that knows how to rebuild itself from a freshly merged attribute and
// child list, keeping its own tag, position, and other structural
// identity. Without this, a cloned raw expression keeps printing the
// edited version's original attrs/children forever, since the merge
// engine's astnode.JSXElement.Attrs/Children are bookkeeping for the
// rest of the pipeline (reports, tests, further merges), not what the
// printer reads from.
type ElementMaterializer interface {
	astnode.RawExpr
	MaterializeElement(attrs []astnode.Attr, children []*astnode.Node) astnode.RawExpr
}

// Serializer holds the three parsed, indexed versions of a component
// needed to decide, node by node, what the merged output looks like.
// Base is nil for a component with no prior synced revision; every
// tag-or-component node in New is then necessarily brand-new.
type Serializer struct {
	New, Edited, Base *version.CodeVersion

	// Helper is the helper-object name used for managed calls. When
	// empty, Edited.Helper is used.
	Helper string
}

func (s *Serializer) helper() string {
	if s.Helper != "" {
		return s.Helper
	}
	return s.Edited.Helper
}

// SerializeNode dispatches n to its final merged form. A nil result with
// a nil error means n was a tag-or-component the developer deleted and
// should be dropped from its parent.
func (s *Serializer) SerializeNode(n *astnode.Node) (*astnode.Node, error) {
	if n == nil {
		return nil, nil
	}
	switch n.Kind {
	case astnode.KindOpaque, astnode.KindText, astnode.KindStringLit, astnode.KindCondStrCall:
		return n, nil
	case astnode.KindArg:
		return s.serializeArg(n)
	case astnode.KindTagOrComponent:
		return s.SerializeTagOrComponent(n)
	default:
		panic("nodeserial: unhandled astnode.Kind")
	}
}

// serializeArg clones an argument node, substituting each of its
// tag-or-component slots with the result of serializing it, and
// substituting a null literal for any slot that turns out to be a
// developer deletion.
func (s *Serializer) serializeArg(n *astnode.Node) (*astnode.Node, error) {
	tags := make([]*astnode.Node, 0, len(n.ArgTags))
	for _, t := range n.ArgTags {
		resolved, err := s.SerializeNode(t)
		if err != nil {
			return nil, err
		}
		if resolved == nil {
			resolved = nullLiteral(n.ArgExpr)
		}
		tags = append(tags, resolved)
	}
	return &astnode.Node{Kind: astnode.KindArg, ArgName: n.ArgName, ArgExpr: n.ArgExpr, ArgTags: tags}, nil
}

func nullLiteral(template astnode.RawExpr) *astnode.Node {
	if nf, ok := template.(NullLiteralFactory); ok {
		return &astnode.Node{Kind: astnode.KindOpaque, Raw: nf.NullLiteral(true)}
	}
	return &astnode.Node{Kind: astnode.KindStringLit, Value: "null"}
}

// SerializeTagOrComponent implements the four-case dispatch for a
// tag-or-component node taken from the new version's tree.
func (s *Serializer) SerializeTagOrComponent(newNode *astnode.Node) (*astnode.Node, error) {
	if newNode == nil || newNode.Element == nil {
		return nil, nil
	}
	nameInID := newNode.Element.NameInID

	editedNode, hasEdited := s.findPaired(s.Edited, nameInID)
	baseNode, hasBase := s.findPaired(s.Base, nameInID)

	switch {
	case !hasEdited && hasBase:
		return nil, nil // developer deleted it
	case !hasEdited && !hasBase:
		return newNode, nil // brand new; emit the new raw node verbatim
	default:
		return s.mergeBothPresent(newNode, editedNode, baseNode, nameInID)
	}
}

// findPaired looks up nameInID in v directly, falling back to a
// uuid-based lookup against s.New's claim for nameInID so a node renamed
// between versions is still paired correctly. v may be nil (no base
// version exists yet).
func (s *Serializer) findPaired(v *version.CodeVersion, nameInID string) (*astnode.Node, bool) {
	if v == nil {
		return nil, false
	}
	if n, ok := v.FindNodeByNameInID(nameInID); ok {
		return n, true
	}
	id, ok := s.New.GetUUID(nameInID)
	if !ok {
		return nil, false
	}
	return v.FindNodeByUUID(id)
}

func (s *Serializer) mergeBothPresent(newNode, editedNode, baseNode *astnode.Node, newNameInID string) (*astnode.Node, error) {
	newEl := newNode.Element
	editedEl := editedNode.Element

	var baseEl *astnode.JSXElement
	var baseChildren []*astnode.Node
	if baseNode != nil && baseNode.Element != nil {
		baseEl = baseNode.Element
		baseChildren = baseEl.Children
	}

	clonedEl := astutil.CloneElement(editedEl, nil)
	clonedEl.NameInID = newNameInID

	attrs, err := attrmerge.MergeAttrs(newEl, editedEl, baseEl, s.New, s.Edited)
	if err != nil {
		return nil, err
	}
	clonedEl.Attrs = attrs

	equiv := identity.ByUUID(s.New.GetUUID, s.Edited.GetUUID)
	merged := childmerge.MergeChildren(newEl.Children, editedEl.Children, baseChildren, equiv)
	children, err := childmerge.Resolve(merged, s.SerializeNode)
	if err != nil {
		return nil, err
	}
	clonedEl.Children = children

	if m, ok := clonedEl.Raw.(ElementMaterializer); ok {
		clonedEl.Raw = m.MaterializeElement(attrs, children)
	}

	if clonedEl.SelfClosing && len(children) > 0 {
		if m, ok := clonedEl.Raw.(ClosingTagMaterializer); ok {
			clonedEl.Raw = m.MaterializeClosingTag()
		}
		clonedEl.SelfClosing = false
	}

	wrapperRaw := s.spliceWrapper(editedNode, editedEl, clonedEl)

	editedPresence := visibility.Presence{
		Present:  s.Edited.HasShowFuncCall(editedNode),
		NameInID: editedEl.NameInID,
	}
	newPresence := visibility.Presence{Present: s.New.HasShowFuncCall(newNode)}

	finalRaw, err := visibility.Reconcile(wrapperRaw, editedPresence, newPresence, newNameInID, s.helper(), clonedEl.Pos())
	if err != nil {
		return nil, err
	}

	return &astnode.Node{Kind: astnode.KindTagOrComponent, Raw: finalRaw, Element: clonedEl}, nil
}

// spliceWrapper clones the edited node's raw wrapper expression and
// substitutes the element position within it with clonedEl's own raw
// expression. When the wrapper is nothing more than the bare element
// (no visibility gate or other surrounding structure), the wrapper
// clone IS the element clone.
func (s *Serializer) spliceWrapper(editedNode *astnode.Node, editedEl *astnode.JSXElement, clonedEl *astnode.JSXElement) astnode.RawExpr {
	elPos := editedEl.Pos()
	if editedNode.Raw == nil || editedNode.Pos() == elPos {
		return clonedEl.Raw
	}

	wrapperRaw := astutil.CloneRaw(editedNode.Raw)
	replaced, found := astutil.ReplaceAtPos(wrapperRaw, elPos, func(astnode.RawExpr) astnode.RawExpr {
		return clonedEl.Raw
	})
	if !found {
		return wrapperRaw
	}
	return replaced
}
