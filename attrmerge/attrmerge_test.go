package attrmerge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plasmerge/plasmerge/astnode"
	"github.com/plasmerge/plasmerge/version"
)

// managedClassCall is a fake RawExpr for `helper.<member>()` used as a
// managed className attribute's value.
type managedClassCall struct {
	pos    int
	helper string
	member string
}

func (m *managedClassCall) Pos() int               { return m.pos }
func (m *managedClassCall) Clone() astnode.RawExpr { cp := *m; return &cp }
func (m *managedClassCall) ManagedClassMember(helper string) (string, bool) {
	if helper == m.helper {
		return m.member, true
	}
	return "", false
}
func (m *managedClassCall) RenameMember(helper, oldMember, newMember string) astnode.RawExpr {
	if helper == m.helper && m.member == oldMember {
		return &managedClassCall{pos: m.pos, helper: helper, member: newMember}
	}
	cp := *m
	return &cp
}

// managedPropsCall is a fake RawExpr for `helper.<member>(...)` used as a
// managed spread-properties attribute.
type managedPropsCall struct {
	pos       int
	helper    string
	member    string
	extraArgs bool
}

func (m *managedPropsCall) Pos() int               { return m.pos }
func (m *managedPropsCall) Clone() astnode.RawExpr { cp := *m; return &cp }
func (m *managedPropsCall) ManagedPropsMember(helper string) (string, bool, bool) {
	if helper == m.helper {
		return m.member, m.extraArgs, true
	}
	return "", false, false
}
func (m *managedPropsCall) RenameMember(helper, oldMember, newMember string) astnode.RawExpr {
	if helper == m.helper && m.member == oldMember {
		return &managedPropsCall{pos: m.pos, helper: helper, member: newMember, extraArgs: m.extraArgs}
	}
	cp := *m
	return &cp
}

// valueExpr is a fake RawExpr for an ordinary attribute value, equal by
// its literal content.
type valueExpr struct {
	pos int
	val string
}

func (v *valueExpr) Pos() int               { return v.pos }
func (v *valueExpr) Clone() astnode.RawExpr { cp := *v; return &cp }
func (v *valueExpr) Equal(other astnode.RawExpr) bool {
	o, ok := other.(*valueExpr)
	return ok && v.val == o.val
}

// handlerExpr is a fake RawExpr for an event-handler member reference
// (`helper.on<X><Event>`), renamed by prefix like a real implementation
// would since the event suffix must be preserved.
type handlerExpr struct {
	pos    int
	helper string
	member string
}

func (h *handlerExpr) Pos() int               { return h.pos }
func (h *handlerExpr) Clone() astnode.RawExpr { cp := *h; return &cp }
func (h *handlerExpr) Equal(other astnode.RawExpr) bool {
	o, ok := other.(*handlerExpr)
	return ok && h.member == o.member
}
func (h *handlerExpr) RenameMember(helper, oldPrefix, newPrefix string) astnode.RawExpr {
	if helper != h.helper || !strings.HasPrefix(h.member, oldPrefix) {
		cp := *h
		return &cp
	}
	return &handlerExpr{pos: h.pos, helper: helper, member: newPrefix + strings.TrimPrefix(h.member, oldPrefix)}
}

func classAttr(member string) astnode.Attr {
	return astnode.Attr{
		Name:  "className",
		Value: &astnode.Node{Kind: astnode.KindOpaque, Raw: &managedClassCall{helper: "rh", member: member}},
	}
}

func propsAttr(member string, extraArgs bool) astnode.Attr {
	return astnode.Attr{
		IsSpread: true,
		Raw:      &managedPropsCall{helper: "rh", member: member, extraArgs: extraArgs},
	}
}

func strAttr(name, val string) astnode.Attr {
	return astnode.Attr{Name: name, Value: &astnode.Node{Kind: astnode.KindOpaque, Raw: &valueExpr{val: val}}}
}

func handlerAttr(name, member string) astnode.Attr {
	return astnode.Attr{Name: name, Value: &astnode.Node{Kind: astnode.KindOpaque, Raw: &handlerExpr{helper: "rh", member: member}}}
}

func newCodeVersion() *version.CodeVersion {
	return version.Build(nil, nil, "rh")
}

func findAttr(attrs []astnode.Attr, name string) (astnode.Attr, bool) {
	for _, a := range attrs {
		if !a.IsSpread && a.Name == name {
			return a, true
		}
	}
	return astnode.Attr{}, false
}

func TestResolveConflict_EditedEqualsNew(t *testing.T) {
	n := &astnode.Node{Value: "x", Kind: astnode.KindStringLit}
	decision := ResolveConflict("title", nil, n, &astnode.Node{Value: "x", Kind: astnode.KindStringLit})
	assert.Equal(t, DecideEmitEdited, decision)
}

func TestResolveConflict_BaseAbsent(t *testing.T) {
	edited := &astnode.Node{Value: "b", Kind: astnode.KindStringLit}
	new := &astnode.Node{Value: "c", Kind: astnode.KindStringLit}
	assert.Equal(t, DecideEmitBoth, ResolveConflict("title", nil, edited, new))
}

func TestResolveConflict_BaseEqualsEdited(t *testing.T) {
	base := &astnode.Node{Value: "a", Kind: astnode.KindStringLit}
	edited := &astnode.Node{Value: "a", Kind: astnode.KindStringLit}
	new := &astnode.Node{Value: "c", Kind: astnode.KindStringLit}
	assert.Equal(t, DecideEmitNew, ResolveConflict("title", base, edited, new))
}

func TestResolveConflict_OnPrefixAlwaysEditedWins(t *testing.T) {
	base := &astnode.Node{Value: "a", Kind: astnode.KindStringLit}
	edited := &astnode.Node{Value: "b", Kind: astnode.KindStringLit}
	new := &astnode.Node{Value: "c", Kind: astnode.KindStringLit}
	assert.Equal(t, DecideEmitEdited, ResolveConflict("onClick", base, edited, new))
}

func TestResolveConflict_BaseEqualsNew(t *testing.T) {
	base := &astnode.Node{Value: "a", Kind: astnode.KindStringLit}
	edited := &astnode.Node{Value: "b", Kind: astnode.KindStringLit}
	new := &astnode.Node{Value: "a", Kind: astnode.KindStringLit}
	assert.Equal(t, DecideEmitEdited, ResolveConflict("title", base, edited, new))
}

func TestResolveConflict_AllDiffer(t *testing.T) {
	base := &astnode.Node{Value: "a", Kind: astnode.KindStringLit}
	edited := &astnode.Node{Value: "b", Kind: astnode.KindStringLit}
	new := &astnode.Node{Value: "c", Kind: astnode.KindStringLit}
	assert.Equal(t, DecideEmitBoth, ResolveConflict("title", base, edited, new))
}

func TestConflictDecisionString(t *testing.T) {
	assert.Equal(t, "emit-edited", DecideEmitEdited.String())
	assert.Equal(t, "emit-new", DecideEmitNew.String())
	assert.Equal(t, "emit-both", DecideEmitBoth.String())
	assert.Equal(t, "unknown", ConflictDecision(99).String())
}

// S3 — developer-added attribute survives untouched.
func TestMergeAttrs_DeveloperAddedAttributePreserved(t *testing.T) {
	newEl := &astnode.JSXElement{NameInID: "Btn"}
	editedEl := &astnode.JSXElement{NameInID: "Btn", Attrs: []astnode.Attr{strAttr("onClick", "handler")}}

	out, err := MergeAttrs(newEl, editedEl, nil, newCodeVersion(), newCodeVersion())
	require.NoError(t, err)

	got, ok := findAttr(out, "onClick")
	require.True(t, ok)
	assert.Equal(t, "handler", got.Value.Raw.(*valueExpr).val)
}

// S4 — both sides modify the same attribute: emit both, new first.
func TestMergeAttrs_BothSidesModifySameAttributeEmitsBoth(t *testing.T) {
	newEl := &astnode.JSXElement{NameInID: "X", Attrs: []astnode.Attr{strAttr("title", "c")}}
	editedEl := &astnode.JSXElement{NameInID: "X", Attrs: []astnode.Attr{strAttr("title", "b")}}
	baseEl := &astnode.JSXElement{NameInID: "X", Attrs: []astnode.Attr{strAttr("title", "a")}}

	out, err := MergeAttrs(newEl, editedEl, baseEl, newCodeVersion(), newCodeVersion())
	require.NoError(t, err)

	var titles []string
	for _, a := range out {
		if a.Name == "title" {
			titles = append(titles, a.Value.Raw.(*valueExpr).val)
		}
	}
	assert.Equal(t, []string{"c", "b"}, titles)
}

// S2 — shape upgrade: base/edited use className, new uses spread.
func TestMergeAttrs_ShapeUpgradeToSpread(t *testing.T) {
	editedEl := &astnode.JSXElement{NameInID: "X", Attrs: []astnode.Attr{classAttr("clsX")}}
	baseEl := &astnode.JSXElement{NameInID: "X", Attrs: []astnode.Attr{classAttr("clsX")}}
	newEl := &astnode.JSXElement{NameInID: "Y", Attrs: []astnode.Attr{propsAttr("propsY", false)}}

	out, err := MergeAttrs(newEl, editedEl, baseEl, newCodeVersion(), newCodeVersion())
	require.NoError(t, err)

	require.Len(t, out, 1)
	assert.True(t, out[0].IsSpread)
	assert.Equal(t, "propsY", out[0].Raw.(*managedPropsCall).member)
}

// S2 variant — shape downgrade to className keeps a dangling extra-args
// spread to force a compile error.
func TestMergeAttrs_SpreadDowngradeKeepsExtraArgsAttr(t *testing.T) {
	editedEl := &astnode.JSXElement{NameInID: "X", Attrs: []astnode.Attr{propsAttr("propsX", true)}}
	newEl := &astnode.JSXElement{NameInID: "Y", Attrs: []astnode.Attr{classAttr("clsY")}}

	out, err := MergeAttrs(newEl, editedEl, nil, newCodeVersion(), newCodeVersion())
	require.NoError(t, err)

	require.Len(t, out, 2)
	assert.Equal(t, "className", out[0].Name)
	assert.Equal(t, "clsY", out[0].Value.Raw.(*managedClassCall).member)
	assert.True(t, out[1].IsSpread)
	assert.Equal(t, "propsX", out[1].Raw.(*managedPropsCall).member)
}

// S1 — rename only: same shape (className), nameInId changes.
func TestMergeAttrs_RenameOnlySameShape(t *testing.T) {
	editedEl := &astnode.JSXElement{NameInID: "Root", Attrs: []astnode.Attr{classAttr("clsRoot")}}
	baseEl := &astnode.JSXElement{NameInID: "Root", Attrs: []astnode.Attr{classAttr("clsRoot")}}
	newEl := &astnode.JSXElement{NameInID: "Root2", Attrs: []astnode.Attr{classAttr("clsRoot2")}}

	out, err := MergeAttrs(newEl, editedEl, baseEl, newCodeVersion(), newCodeVersion())
	require.NoError(t, err)

	require.Len(t, out, 1)
	assert.Equal(t, "clsRoot2", out[0].Value.Raw.(*managedClassCall).member)
}

func TestMergeAttrs_OnHandlerRenamedWhenNameInIDChanges(t *testing.T) {
	editedEl := &astnode.JSXElement{NameInID: "Root", Attrs: []astnode.Attr{handlerAttr("onClick", "onRootClick")}}
	newEl := &astnode.JSXElement{NameInID: "Root2"}

	out, err := MergeAttrs(newEl, editedEl, nil, newCodeVersion(), newCodeVersion())
	require.NoError(t, err)

	got, ok := findAttr(out, "onClick")
	require.True(t, ok)
	assert.Equal(t, "onRoot2Click", got.Value.Raw.(*handlerExpr).member)
}

func TestMergeAttrs_ToolDeletedAttributeDropped(t *testing.T) {
	baseEl := &astnode.JSXElement{NameInID: "X", Attrs: []astnode.Attr{strAttr("subtitle", "a")}}
	editedEl := &astnode.JSXElement{NameInID: "X", Attrs: []astnode.Attr{strAttr("subtitle", "a")}}
	newEl := &astnode.JSXElement{NameInID: "X"}

	out, err := MergeAttrs(newEl, editedEl, baseEl, newCodeVersion(), newCodeVersion())
	require.NoError(t, err)

	_, ok := findAttr(out, "subtitle")
	assert.False(t, ok)
}

func TestMergeAttrs_ToolAddedAttributeEmitted(t *testing.T) {
	newEl := &astnode.JSXElement{NameInID: "X", Attrs: []astnode.Attr{strAttr("data-foo", "bar")}}
	editedEl := &astnode.JSXElement{NameInID: "X"}

	out, err := MergeAttrs(newEl, editedEl, nil, newCodeVersion(), newCodeVersion())
	require.NoError(t, err)

	got, ok := findAttr(out, "data-foo")
	require.True(t, ok)
	assert.Equal(t, "bar", got.Value.Raw.(*valueExpr).val)
}

func TestMergeAttrs_DeveloperOpaqueSpreadPreserved(t *testing.T) {
	spreadRaw := &valueExpr{val: "...rest"}
	editedEl := &astnode.JSXElement{
		NameInID: "X",
		Attrs:    []astnode.Attr{{IsSpread: true, Raw: spreadRaw}},
	}
	newEl := &astnode.JSXElement{NameInID: "X"}

	out, err := MergeAttrs(newEl, editedEl, nil, newCodeVersion(), newCodeVersion())
	require.NoError(t, err)

	require.Len(t, out, 1)
	assert.True(t, out[0].IsSpread)
	assert.Equal(t, spreadRaw, out[0].Raw)
}
