package jswrite

import (
	"strings"

	"github.com/plasmerge/plasmerge/astnode"
	"github.com/plasmerge/plasmerge/internal/astutil"
)

// exprKind classifies one node of jswrite's simplified expression
// grammar.
type exprKind int

const (
	kindElement exprKind = iota
	kindCall
	kindAnd
	kindText
	kindStringLit
	kindOpaque
	kindSpread
)

// rawAttr is one entry of an element's attribute list before
// classification into astnode.Attr.
type rawAttr struct {
	isSpread bool
	name     string
	value    astnode.RawExpr // set when !isSpread
	inner    astnode.RawExpr // set when isSpread
}

// Expr is jswrite's single concrete RawExpr implementation. Every node
// the parser produces — elements, managed calls, the visibility
// "&&" gate, text runs, string literals, spreads, and everything else
// it treats as opaque — is one of these, distinguished by kind.
type Expr struct {
	kind exprKind
	pos  int

	// kindElement
	tag         string
	attrs       []rawAttr
	children    []astnode.RawExpr
	selfClosing bool

	// kindCall
	helper string
	member string
	args   []astnode.RawExpr

	// kindAnd
	left, right astnode.RawExpr

	// kindText, kindStringLit, kindOpaque
	text string

	// kindSpread
	inner astnode.RawExpr
}

// Pos implements astnode.RawExpr.
func (e *Expr) Pos() int {
	if e == nil {
		return -1
	}
	return e.pos
}

// Clone implements astutil's Cloner, deep-copying e while preserving
// every Pos() value, including its own.
func (e *Expr) Clone() astnode.RawExpr {
	if e == nil {
		return nil
	}
	cp := *e
	cp.attrs = make([]rawAttr, len(e.attrs))
	for i, a := range e.attrs {
		cp.attrs[i] = rawAttr{isSpread: a.isSpread, name: a.name, value: cloneChild(a.value), inner: cloneChild(a.inner)}
	}
	cp.children = cloneChildren(e.children)
	cp.args = cloneChildren(e.args)
	cp.left = cloneChild(e.left)
	cp.right = cloneChild(e.right)
	cp.inner = cloneChild(e.inner)
	return &cp
}

func cloneChild(c astnode.RawExpr) astnode.RawExpr {
	if c == nil {
		return nil
	}
	return astutil.CloneRaw(c)
}

func cloneChildren(cs []astnode.RawExpr) []astnode.RawExpr {
	if cs == nil {
		return nil
	}
	out := make([]astnode.RawExpr, len(cs))
	for i, c := range cs {
		out[i] = cloneChild(c)
	}
	return out
}

// Equal implements astnode.Equaler: deep structural equality ignoring
// position and any concept of source comments (jswrite's grammar has
// none to carry).
func (e *Expr) Equal(other astnode.RawExpr) bool {
	o, ok := other.(*Expr)
	if e == nil || o == nil {
		return e == nil && o == nil
	}
	if !ok || e.kind != o.kind {
		return false
	}
	switch e.kind {
	case kindText, kindStringLit, kindOpaque:
		return e.text == o.text
	case kindCall:
		return e.helper == o.helper && e.member == o.member && rawExprSliceEqual(e.args, o.args)
	case kindAnd:
		return rawEqualOrSame(e.left, o.left) && rawEqualOrSame(e.right, o.right)
	case kindSpread:
		return rawEqualOrSame(e.inner, o.inner)
	case kindElement:
		if e.tag != o.tag || e.selfClosing != o.selfClosing || len(e.attrs) != len(o.attrs) {
			return false
		}
		for i := range e.attrs {
			if !attrsEqual(e.attrs[i], o.attrs[i]) {
				return false
			}
		}
		return rawExprSliceEqual(e.children, o.children)
	default:
		return false
	}
}

func attrsEqual(a, b rawAttr) bool {
	if a.isSpread != b.isSpread || a.name != b.name {
		return false
	}
	if a.isSpread {
		return rawEqualOrSame(a.inner, b.inner)
	}
	return rawEqualOrSame(a.value, b.value)
}

func rawExprSliceEqual(a, b []astnode.RawExpr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !rawEqualOrSame(a[i], b[i]) {
			return false
		}
	}
	return true
}

func rawEqualOrSame(a, b astnode.RawExpr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if eq, ok := a.(astnode.Equaler); ok {
		return eq.Equal(b)
	}
	return a.Pos() == b.Pos()
}

// RenameMember implements astutil.MemberRenamer: rewrite every call
// whose member starts with oldMember, replacing that prefix with
// newMember and keeping any suffix (rh.onRootClick -> rh.onRoot2Click
// when oldMember, newMember are "onRoot", "onRoot2").
func (e *Expr) RenameMember(helper, oldMember, newMember string) astnode.RawExpr {
	if e == nil {
		return nil
	}
	cp := *e
	switch e.kind {
	case kindCall:
		if e.helper == helper && strings.HasPrefix(e.member, oldMember) {
			cp.member = newMember + e.member[len(oldMember):]
		}
		cp.args = renameChildren(e.args, helper, oldMember, newMember)
	case kindAnd:
		cp.left = renameChild(e.left, helper, oldMember, newMember)
		cp.right = renameChild(e.right, helper, oldMember, newMember)
	case kindElement:
		cp.attrs = renameAttrs(e.attrs, helper, oldMember, newMember)
		cp.children = renameChildren(e.children, helper, oldMember, newMember)
	case kindSpread:
		cp.inner = renameChild(e.inner, helper, oldMember, newMember)
	}
	return &cp
}

func renameChild(c astnode.RawExpr, helper, oldMember, newMember string) astnode.RawExpr {
	if ce, ok := c.(*Expr); ok {
		return ce.RenameMember(helper, oldMember, newMember)
	}
	return c
}

func renameChildren(cs []astnode.RawExpr, helper, oldMember, newMember string) []astnode.RawExpr {
	if cs == nil {
		return nil
	}
	out := make([]astnode.RawExpr, len(cs))
	for i, c := range cs {
		out[i] = renameChild(c, helper, oldMember, newMember)
	}
	return out
}

func renameAttrs(attrs []rawAttr, helper, oldMember, newMember string) []rawAttr {
	if attrs == nil {
		return nil
	}
	out := make([]rawAttr, len(attrs))
	for i, a := range attrs {
		out[i] = rawAttr{
			isSpread: a.isSpread,
			name:     a.name,
			value:    renameChild(a.value, helper, oldMember, newMember),
			inner:    renameChild(a.inner, helper, oldMember, newMember),
		}
	}
	return out
}

// ReplaceAtPos implements astutil.PosReplacer: locate the descendant at
// pos and splice in transform's result, without descending into it.
func (e *Expr) ReplaceAtPos(pos int, transform astutil.PosTransform) (astnode.RawExpr, bool) {
	if e.Pos() == pos {
		return transform(e), true
	}
	switch e.kind {
	case kindAnd:
		if replaced, ok := replaceChildAtPos(e.left, pos, transform); ok {
			cp := *e
			cp.left = replaced
			return &cp, true
		}
		if replaced, ok := replaceChildAtPos(e.right, pos, transform); ok {
			cp := *e
			cp.right = replaced
			return &cp, true
		}
	case kindElement:
		for i, a := range e.attrs {
			ref := a.value
			if a.isSpread {
				ref = a.inner
			}
			replaced, ok := replaceChildAtPos(ref, pos, transform)
			if !ok {
				continue
			}
			cp := *e
			cp.attrs = append([]rawAttr(nil), e.attrs...)
			if a.isSpread {
				cp.attrs[i].inner = replaced
			} else {
				cp.attrs[i].value = replaced
			}
			return &cp, true
		}
		for i, c := range e.children {
			replaced, ok := replaceChildAtPos(c, pos, transform)
			if !ok {
				continue
			}
			cp := *e
			cp.children = append([]astnode.RawExpr(nil), e.children...)
			cp.children[i] = replaced
			return &cp, true
		}
	case kindCall:
		for i, a := range e.args {
			replaced, ok := replaceChildAtPos(a, pos, transform)
			if !ok {
				continue
			}
			cp := *e
			cp.args = append([]astnode.RawExpr(nil), e.args...)
			cp.args[i] = replaced
			return &cp, true
		}
	case kindSpread:
		if replaced, ok := replaceChildAtPos(e.inner, pos, transform); ok {
			cp := *e
			cp.inner = replaced
			return &cp, true
		}
	}
	return e, false
}

func replaceChildAtPos(c astnode.RawExpr, pos int, transform astutil.PosTransform) (astnode.RawExpr, bool) {
	if c == nil {
		return nil, false
	}
	if ce, ok := c.(*Expr); ok {
		return ce.ReplaceAtPos(pos, transform)
	}
	if c.Pos() == pos {
		return transform(c), true
	}
	return c, false
}

// ManagedClassMember implements version.ManagedClassExpr.
func (e *Expr) ManagedClassMember(helper string) (string, bool) {
	if e.kind == kindCall && e.helper == helper && strings.HasPrefix(e.member, "cls") {
		return e.member, true
	}
	return "", false
}

// ManagedPropsMember implements version.ManagedPropsExpr. Any argument
// on the call is treated as a developer-injected extra argument, since
// this reference grammar's tool-generated spread calls always take none.
func (e *Expr) ManagedPropsMember(helper string) (string, bool, bool) {
	if e.kind == kindCall && e.helper == helper && strings.HasPrefix(e.member, "props") {
		return e.member, len(e.args) > 0, true
	}
	return "", false, false
}

// ManagedShowMember implements version.ManagedShowExpr, recognizing
// both a bare show call and one as the left operand of a "&&" gate.
func (e *Expr) ManagedShowMember(helper string) (string, bool) {
	switch e.kind {
	case kindCall:
		if e.helper == helper && strings.HasPrefix(e.member, "show") {
			return e.member, true
		}
	case kindAnd:
		if left, ok := e.left.(*Expr); ok {
			return left.ManagedShowMember(helper)
		}
	}
	return "", false
}

// ReplaceShowGuardWithTrue implements visibility.ShowGuardReplacer.
func (e *Expr) ReplaceShowGuardWithTrue(helper, member string) astnode.RawExpr {
	if e.kind != kindAnd {
		return e
	}
	return &Expr{kind: kindAnd, pos: e.pos, left: &Expr{kind: kindOpaque, pos: e.pos, text: "true"}, right: e.right}
}

// WrapWithShow implements visibility.ShowWrappable.
func (e *Expr) WrapWithShow(helper, member string) astnode.RawExpr {
	call := &Expr{kind: kindCall, pos: e.pos, helper: helper, member: member}
	return &Expr{kind: kindAnd, pos: e.pos, left: call, right: e}
}

// NullLiteral implements nodeserial.NullLiteralFactory.
// wrapInContainer is accepted but unused: jswrite's printer always
// renders a deleted argument slot the same way.
func (e *Expr) NullLiteral(wrapInContainer bool) astnode.RawExpr {
	return &Expr{kind: kindOpaque, pos: e.pos, text: "null"}
}

// MaterializeClosingTag implements nodeserial.ClosingTagMaterializer.
func (e *Expr) MaterializeClosingTag() astnode.RawExpr {
	cp := *e
	cp.selfClosing = false
	return &cp
}

// MaterializeElement implements nodeserial.ElementMaterializer: rebuild e
// with a freshly merged attribute and child list, keeping its own tag,
// position, and self-closing state.
func (e *Expr) MaterializeElement(attrs []astnode.Attr, children []*astnode.Node) astnode.RawExpr {
	cp := *e
	cp.attrs = toRawAttrs(attrs)
	cp.children = toRawChildren(children)
	return &cp
}

func toRawAttrs(attrs []astnode.Attr) []rawAttr {
	if attrs == nil {
		return nil
	}
	out := make([]rawAttr, len(attrs))
	for i, a := range attrs {
		if a.IsSpread {
			out[i] = rawAttr{isSpread: true, inner: a.Raw}
			continue
		}
		var value astnode.RawExpr
		if a.Value != nil {
			value = a.Value.Raw
		}
		out[i] = rawAttr{name: a.Name, value: value}
	}
	return out
}

func toRawChildren(children []*astnode.Node) []astnode.RawExpr {
	if children == nil {
		return nil
	}
	out := make([]astnode.RawExpr, len(children))
	for i, c := range children {
		out[i] = c.Raw
	}
	return out
}

var (
	_ astnode.Cloner        = (*Expr)(nil)
	_ astnode.Equaler       = (*Expr)(nil)
	_ astutil.MemberRenamer = (*Expr)(nil)
	_ astutil.PosReplacer   = (*Expr)(nil)
)
