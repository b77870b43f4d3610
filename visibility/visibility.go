package visibility

import (
	"github.com/plasmerge/plasmerge/astnode"
	"github.com/plasmerge/plasmerge/internal/astutil"
)

// Presence describes whether a version's node is currently wrapped by
// the managed visibility gate, and under which nameInId.
type Presence struct {
	Present  bool
	NameInID string
}

// ShowGuardReplacer is implemented by an expression that carries the
// visibility gate and knows how to drop it, replacing the
// `helper.<member>()` call with the literal `true` while preserving the
// surrounding `&&` structure.
type ShowGuardReplacer interface {
	astnode.RawExpr
	ReplaceShowGuardWithTrue(helper, member string) astnode.RawExpr
}

// ShowWrappable is implemented by a bare markup expression that knows
// how to wrap itself in a fresh visibility gate:
// `helper.<member>() && <self>`.
type ShowWrappable interface {
	astnode.RawExpr
	WrapWithShow(helper, member string) astnode.RawExpr
}

// Reconcile applies the visibility-wrapper table to editedClone, a
// freshly cloned copy of the edited node's raw wrapper expression.
// elPos is the source position of the markup element itself, used to
// tell whether editedClone already is the bare markup (elPos equals its
// own position) or wraps it some other way.
func Reconcile(editedClone astnode.RawExpr, edited, new Presence, newNameInID, helper string, elPos int) (astnode.RawExpr, error) {
	switch {
	case edited.Present && new.Present:
		return astutil.RenameMemberRefs(editedClone, helper, "show"+edited.NameInID, "show"+newNameInID), nil
	case edited.Present && !new.Present:
		if sg, ok := editedClone.(ShowGuardReplacer); ok {
			return sg.ReplaceShowGuardWithTrue(helper, "show"+edited.NameInID), nil
		}
		return editedClone, nil
	case !edited.Present && new.Present:
		return wrap(editedClone, newNameInID, helper, elPos)
	default:
		return editedClone, nil
	}
}

func wrap(editedClone astnode.RawExpr, newNameInID, helper string, elPos int) (astnode.RawExpr, error) {
	member := "show" + newNameInID

	if editedClone == nil {
		return editedClone, nil
	}

	if editedClone.Pos() == elPos {
		if w, ok := editedClone.(ShowWrappable); ok {
			return w.WrapWithShow(helper, member), nil
		}
		return editedClone, nil
	}

	result, found := astutil.ReplaceAtPos(editedClone, elPos, func(original astnode.RawExpr) astnode.RawExpr {
		if w, ok := original.(ShowWrappable); ok {
			return w.WrapWithShow(helper, member)
		}
		return original
	})
	if !found {
		return editedClone, nil
	}
	return result, nil
}
