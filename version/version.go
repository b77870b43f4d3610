package version

import (
	"github.com/google/uuid"

	"github.com/plasmerge/plasmerge/astnode"
	"github.com/plasmerge/plasmerge/plasmergeerrors"
)

// CodeVersion holds one parsed and classified version of a component
// (base, edited, or new) together with the indices the rest of the merge
// engine queries by nameInId.
type CodeVersion struct {
	// Root is the classified root node of this version's managed markup
	// expression.
	Root *astnode.Node

	// NameInIDToUUID maps the stable identifier embedded in this
	// version's markup to the cross-version entity uuid.
	NameInIDToUUID map[string]uuid.UUID

	// Helper is the helper-object name used for managed calls in this
	// version (e.g. "rh"). It is discovered by the external parser and
	// is the same across all versions of a given project.
	Helper string

	byNameInID map[string]*astnode.JSXElement
	byNode     map[string]*astnode.Node
	byUUID     map[uuid.UUID]*astnode.Node
}

// Build indexes root into a CodeVersion, walking every tag-or-component
// node and recording it by nameInId.
func Build(root *astnode.Node, nameInIDToUUID map[string]uuid.UUID, helper string) *CodeVersion {
	v := &CodeVersion{
		Root:           root,
		NameInIDToUUID: nameInIDToUUID,
		Helper:         helper,
		byNameInID:     make(map[string]*astnode.JSXElement),
		byNode:         make(map[string]*astnode.Node),
		byUUID:         make(map[uuid.UUID]*astnode.Node),
	}
	v.index(root)
	return v
}

func (v *CodeVersion) index(n *astnode.Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case astnode.KindTagOrComponent:
		if n.Element != nil {
			v.byNameInID[n.Element.NameInID] = n.Element
			v.byNode[n.Element.NameInID] = n
			if id, ok := v.NameInIDToUUID[n.Element.NameInID]; ok {
				v.byUUID[id] = n
			}
			for _, a := range n.Element.Attrs {
				v.index(a.Value)
			}
			for _, c := range n.Element.Children {
				v.index(c)
			}
		}
	case astnode.KindArg:
		for _, t := range n.ArgTags {
			v.index(t)
		}
	case astnode.KindCondStrCall, astnode.KindStringLit, astnode.KindText, astnode.KindOpaque:
		// leaf variants carry no tag-or-component descendants of interest
	}
}

// GetUUID returns the entity uuid registered for nameInID in this
// version, if any.
func (v *CodeVersion) GetUUID(nameInID string) (uuid.UUID, bool) {
	id, ok := v.NameInIDToUUID[nameInID]
	return id, ok
}

// FindByNameInID returns the tag-or-component element registered under
// nameInID in this version, if any.
func (v *CodeVersion) FindByNameInID(nameInID string) (*astnode.JSXElement, bool) {
	el, ok := v.byNameInID[nameInID]
	return el, ok
}

// NameInIDs returns every tag-or-component nameInId indexed in this
// version, in no particular order. Used by reporting code that needs to
// tell which of a version's nodes never appear in a merge result.
func (v *CodeVersion) NameInIDs() []string {
	ids := make([]string, 0, len(v.byNameInID))
	for id := range v.byNameInID {
		ids = append(ids, id)
	}
	return ids
}

// FindNodeByNameInID returns the tag-or-component Node (not just its
// JSXElement view) registered under nameInID, if any. This is needed by
// the visibility reconciler, which must inspect the node's wrapping raw
// expression, not just the element it wraps.
func (v *CodeVersion) FindNodeByNameInID(nameInID string) (*astnode.Node, bool) {
	n, ok := v.byNode[nameInID]
	return n, ok
}

// FindNodeByUUID returns the tag-or-component Node whose nameInId is
// registered against id in this version, if any. This lets the
// serializer pair nodes across versions when a nameInId has been
// renamed between them but the underlying entity uuid is unchanged.
func (v *CodeVersion) FindNodeByUUID(id uuid.UUID) (*astnode.Node, bool) {
	n, ok := v.byUUID[id]
	return n, ok
}

// HasClassNameIDAttr reports whether el carries the managed className
// shape: `className={rh.clsX()}`.
func (v *CodeVersion) HasClassNameIDAttr(el *astnode.JSXElement) bool {
	_, ok := classMember(v.Helper, el)
	return ok
}

// HasPropsIDSpreador reports whether el carries the managed
// spread-properties shape: `{...rh.propsX()}`.
func (v *CodeVersion) HasPropsIDSpreador(el *astnode.JSXElement) bool {
	_, _, ok := propsMember(v.Helper, el)
	return ok
}

// PropsHasExtraArgs reports whether el's managed spread call carries
// developer-injected arguments beyond what the tool generates. Only
// meaningful when HasPropsIDSpreador(el) is true.
func (v *CodeVersion) PropsHasExtraArgs(el *astnode.JSXElement) bool {
	_, extra, _ := propsMember(v.Helper, el)
	return extra
}

// HasShowFuncCall reports whether n (a tag-or-component Node) is
// currently wrapped by the managed visibility gate: `rh.showX() && ...`.
func (v *CodeVersion) HasShowFuncCall(n *astnode.Node) bool {
	_, ok := showMember(v.Helper, n)
	return ok
}

// AssertInvariants verifies, for every tag-or-component node indexed in
// this version, that exactly one of HasClassNameIDAttr and
// HasPropsIDSpreador holds. It returns the first violation found wrapped
// in a *plasmergeerrors.InvariantError, or nil if the version is
// consistent.
func (v *CodeVersion) AssertInvariants() error {
	for nameInID, el := range v.byNameInID {
		a := v.HasClassNameIDAttr(el)
		b := v.HasPropsIDSpreador(el)
		if a == b {
			msg := "neither managed className nor managed props spread present"
			if a {
				msg = "both managed className and managed props spread present"
			}
			return &plasmergeerrors.InvariantError{
				Invariant: "hasClassNameIdAttr XOR hasPropsIdSpreador",
				NameInID:  nameInID,
				Message:   msg,
			}
		}
	}
	return nil
}
