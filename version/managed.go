package version

import "github.com/plasmerge/plasmerge/astnode"

// ManagedClassExpr is implemented by a RawExpr that represents a call to
// the helper object's per-node class-string method: `rh.clsX()`. The
// external AST (a Non-goal of this module) supplies this recognition;
// plasmerge only asks for the member name it resolved to.
type ManagedClassExpr interface {
	astnode.RawExpr
	// ManagedClassMember returns the member name (e.g. "clsRoot") if this
	// expression is a call to helper.<member>(), and ok is true.
	ManagedClassMember(helper string) (member string, ok bool)
}

// ManagedPropsExpr is implemented by a RawExpr representing a call to the
// helper object's per-node spread-properties method: `rh.propsX(...)`.
type ManagedPropsExpr interface {
	astnode.RawExpr
	// ManagedPropsMember returns the member name (e.g. "propsRoot") and
	// whether the call carries extra developer-injected arguments beyond
	// what the tool generates.
	ManagedPropsMember(helper string) (member string, hasExtraArgs, ok bool)
}

// ManagedShowExpr is implemented by a RawExpr representing the
// visibility-gate call `rh.showX()`, whether bare or as the left operand
// of a `rh.showX() && <markup>` logical expression.
type ManagedShowExpr interface {
	astnode.RawExpr
	// ManagedShowMember returns the member name (e.g. "showRoot") if this
	// expression is, or wraps, a call to helper.<member>().
	ManagedShowMember(helper string) (member string, ok bool)
}

// classMember inspects el's named attributes for a managed className
// attribute and returns its member name.
func classMember(helper string, el *astnode.JSXElement) (string, bool) {
	for _, a := range el.Attrs {
		if member, ok := ClassAttrMember(helper, a); ok {
			return member, true
		}
	}
	return "", false
}

// propsMember inspects el's spread attributes for a managed
// spread-properties call and returns its member name and whether it
// carries extra developer arguments.
func propsMember(helper string, el *astnode.JSXElement) (member string, hasExtraArgs, ok bool) {
	for _, a := range el.Attrs {
		if m, extra, matched := PropsAttrMember(helper, a); matched {
			return m, extra, true
		}
	}
	return "", false, false
}

// ClassAttrMember reports whether a single attribute is the managed
// className shape (`className={helper.<member>()}`) and returns its
// member name. Exposed so attrmerge can dispatch on one attribute at a
// time while walking an element's attribute list in order.
func ClassAttrMember(helper string, a astnode.Attr) (string, bool) {
	if a.IsSpread || a.Name != "className" || a.Value == nil {
		return "", false
	}
	mce, ok := a.Value.Raw.(ManagedClassExpr)
	if !ok {
		return "", false
	}
	return mce.ManagedClassMember(helper)
}

// PropsAttrMember reports whether a single spread attribute is the
// managed spread-properties call (`{...helper.<member>(...)}`) and
// returns its member name and whether it carries extra developer
// arguments.
func PropsAttrMember(helper string, a astnode.Attr) (member string, hasExtraArgs, ok bool) {
	if !a.IsSpread || a.Raw == nil {
		return "", false, false
	}
	mpe, isManaged := a.Raw.(ManagedPropsExpr)
	if !isManaged {
		return "", false, false
	}
	return mpe.ManagedPropsMember(helper)
}

// showMember inspects n's raw expression (which, when visibility-wrapped,
// represents the enclosing `rh.showX() && <markup>` expression) for the
// managed show call and returns its member name.
func showMember(helper string, n *astnode.Node) (string, bool) {
	if n == nil || n.Raw == nil {
		return "", false
	}
	if mse, ok := n.Raw.(ManagedShowExpr); ok {
		return mse.ManagedShowMember(helper)
	}
	return "", false
}
