package attrmerge

import (
	"strings"

	"github.com/plasmerge/plasmerge/astnode"
	"github.com/plasmerge/plasmerge/internal/astutil"
	"github.com/plasmerge/plasmerge/version"
)

// ConflictDecision is the outcome of ResolveConflict for one named
// attribute across the three versions.
type ConflictDecision int

const (
	// DecideEmitEdited emits only the edited version's value.
	DecideEmitEdited ConflictDecision = iota
	// DecideEmitNew emits only the new version's value.
	DecideEmitNew
	// DecideEmitBoth emits both values, in order, deliberately producing
	// a duplicate attribute to surface the conflict at compile time.
	DecideEmitBoth
)

// String implements fmt.Stringer for readable test failures and logs.
func (d ConflictDecision) String() string {
	switch d {
	case DecideEmitEdited:
		return "emit-edited"
	case DecideEmitNew:
		return "emit-new"
	case DecideEmitBoth:
		return "emit-both"
	default:
		return "unknown"
	}
}

// ResolveConflict applies the five-rule conflict table to a single
// named attribute's three candidate values. base is nil when the
// attribute is absent from the base version.
func ResolveConflict(name string, base, edited, new *astnode.Node) ConflictDecision {
	if astnode.NodeEqual(edited, new) {
		return DecideEmitEdited
	}
	if base == nil {
		return DecideEmitBoth
	}
	if astnode.NodeEqual(base, edited) {
		return DecideEmitNew
	}
	if strings.HasPrefix(name, "on") || astnode.NodeEqual(base, new) {
		return DecideEmitEdited
	}
	return DecideEmitBoth
}

// MergeAttrs reconciles newEl, editedEl, and (optionally) baseEl's
// attribute lists into the merged attribute list for a paired
// tag-or-component node. baseEl is nil when the node is absent from the
// base version (brand-new node).
func MergeAttrs(newEl, editedEl, baseEl *astnode.JSXElement, newVer, editedVer *version.CodeVersion) ([]astnode.Attr, error) {
	helper := editedVer.Helper
	editedNameInID := editedEl.NameInID
	newNameInID := newEl.NameInID

	out := newOnlyAttrs(newEl, editedEl, baseEl, newVer)

	for _, ea := range editedEl.Attrs {
		if ea.IsSpread {
			if _, _, ok := version.PropsAttrMember(helper, ea); ok {
				attrs, err := resolveSpreadShape(ea, newEl, newVer, newNameInID, editedNameInID, helper)
				if err != nil {
					return nil, err
				}
				out = append(out, attrs...)
				continue
			}
			// Developer opaque spread, not the managed shape: preserved as-is.
			out = append(out, astutil.CloneAttr(ea, nil))
			continue
		}

		if ea.Name == "className" {
			if _, ok := version.ClassAttrMember(helper, ea); ok {
				attrs, err := resolveClassShape(ea, newEl, newVer, newNameInID, editedNameInID, helper)
				if err != nil {
					return nil, err
				}
				out = append(out, attrs...)
				continue
			}
		}

		if attr, emit := emitAttrInEditedNode(ea, newEl, baseEl, editedNameInID, newNameInID, helper); emit {
			out = append(out, attr)
		}
	}

	return out, nil
}

// newOnlyAttrs implements §4.2 Step 1: surface attributes the tool added
// in the new version, honoring developer deletions of tool attributes
// (present in base, absent from edited) the new version still carries,
// and deferring to conflict
// resolution when both sides touch the same name.
func newOnlyAttrs(newEl, editedEl, baseEl *astnode.JSXElement, newVer *version.CodeVersion) []astnode.Attr {
	var out []astnode.Attr
	for _, na := range newEl.Attrs {
		if na.IsSpread || na.Name == "" {
			continue
		}
		if na.Name == "className" {
			if _, ok := version.ClassAttrMember(newVer.Helper, na); ok {
				continue // dispatched alongside the edited-side shape handling
			}
		}

		edited, hasEdited := namedAttr(editedEl.Attrs, na.Name)
		if hasEdited {
			decision := ResolveConflict(na.Name, baseAttrValue(baseEl, na.Name), edited.Value, na.Value)
			if decision == DecideEmitNew || decision == DecideEmitBoth {
				out = append(out, astutil.CloneAttr(na, nil))
			}
			continue
		}

		if baseEl != nil {
			if _, ok := namedAttr(baseEl.Attrs, na.Name); ok {
				continue // developer deleted it; honor the deletion
			}
		}
		out = append(out, astutil.CloneAttr(na, nil))
	}
	return out
}

// resolveClassShape handles an edited managed className attribute
// (shape B), dispatching on the new version's shape.
func resolveClassShape(ea astnode.Attr, newEl *astnode.JSXElement, newVer *version.CodeVersion, newNameInID, editedNameInID, helper string) ([]astnode.Attr, error) {
	if newVer.HasClassNameIDAttr(newEl) {
		renamed := astutil.CloneAttr(ea, nil)
		if renamed.Value != nil {
			renamed.Value.Raw = astutil.RenameMemberRefs(renamed.Value.Raw, helper, "cls"+editedNameInID, "cls"+newNameInID)
		}
		return []astnode.Attr{renamed}, nil
	}
	if newVer.HasPropsIDSpreador(newEl) {
		if spread, ok := findManagedPropsAttr(newEl, helper); ok {
			return []astnode.Attr{astutil.CloneAttr(spread, nil)}, nil
		}
	}
	return []astnode.Attr{astutil.CloneAttr(ea, nil)}, nil
}

// resolveSpreadShape handles an edited managed spread-properties
// attribute (shape A), dispatching on the new version's shape.
func resolveSpreadShape(ea astnode.Attr, newEl *astnode.JSXElement, newVer *version.CodeVersion, newNameInID, editedNameInID, helper string) ([]astnode.Attr, error) {
	if newVer.HasPropsIDSpreador(newEl) {
		renamed := astutil.CloneAttr(ea, nil)
		renamed.Raw = astutil.RenameMemberRefs(renamed.Raw, helper, "props"+editedNameInID, "props"+newNameInID)
		return []astnode.Attr{renamed}, nil
	}
	if newVer.HasClassNameIDAttr(newEl) {
		var out []astnode.Attr
		if classAttr, ok := findManagedClassAttr(newEl, helper); ok {
			out = append(out, astutil.CloneAttr(classAttr, nil))
		}
		if _, hasExtraArgs, _ := version.PropsAttrMember(helper, ea); hasExtraArgs {
			out = append(out, astutil.CloneAttr(ea, nil))
		}
		return out, nil
	}
	return []astnode.Attr{astutil.CloneAttr(ea, nil)}, nil
}

// emitAttrInEditedNode implements §4.2 Step 2's fallthrough case for any
// attribute that isn't one of the two managed shapes: apply the
// conflict table when the new version also has it, honor tool
// deletions, preserve developer additions, and rewrite on* handler
// member references when the node's nameInId changed.
func emitAttrInEditedNode(ea astnode.Attr, newEl, baseEl *astnode.JSXElement, editedNameInID, newNameInID, helper string) (astnode.Attr, bool) {
	na, hasNew := namedAttr(newEl.Attrs, ea.Name)
	if hasNew {
		decision := ResolveConflict(ea.Name, baseAttrValue(baseEl, ea.Name), ea.Value, na.Value)
		if decision != DecideEmitEdited && decision != DecideEmitBoth {
			return astnode.Attr{}, false
		}
	} else {
		baseHasIt := false
		if baseEl != nil {
			_, baseHasIt = namedAttr(baseEl.Attrs, ea.Name)
		}
		if baseHasIt {
			return astnode.Attr{}, false // tool deleted it
		}
	}

	emitted := astutil.CloneAttr(ea, nil)
	if strings.HasPrefix(ea.Name, "on") && editedNameInID != newNameInID {
		oldMember, newMember := "on"+editedNameInID, "on"+newNameInID
		if emitted.Value != nil {
			emitted.Value.Raw = astutil.RenameMemberRefs(emitted.Value.Raw, helper, oldMember, newMember)
		}
		emitted.Raw = astutil.RenameMemberRefs(emitted.Raw, helper, oldMember, newMember)
	}
	return emitted, true
}

func namedAttr(attrs []astnode.Attr, name string) (astnode.Attr, bool) {
	for _, a := range attrs {
		if !a.IsSpread && a.Name == name {
			return a, true
		}
	}
	return astnode.Attr{}, false
}

func baseAttrValue(baseEl *astnode.JSXElement, name string) *astnode.Node {
	if baseEl == nil {
		return nil
	}
	if a, ok := namedAttr(baseEl.Attrs, name); ok {
		return a.Value
	}
	return nil
}

func findManagedClassAttr(el *astnode.JSXElement, helper string) (astnode.Attr, bool) {
	for _, a := range el.Attrs {
		if _, ok := version.ClassAttrMember(helper, a); ok {
			return a, true
		}
	}
	return astnode.Attr{}, false
}

func findManagedPropsAttr(el *astnode.JSXElement, helper string) (astnode.Attr, bool) {
	for _, a := range el.Attrs {
		if _, _, ok := version.PropsAttrMember(helper, a); ok {
			return a, true
		}
	}
	return astnode.Attr{}, false
}
