package astutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plasmerge/plasmerge/astnode"
)

// fakeRaw is a minimal, cloneable RawExpr stand-in for the external AST.
type fakeRaw struct {
	pos   int
	label string
}

func (f *fakeRaw) Pos() int { return f.pos }
func (f *fakeRaw) Clone() astnode.RawExpr {
	cp := *f
	return &cp
}

// fakeMemberExpr implements MemberRenamer to exercise RenameMemberRefs.
type fakeMemberExpr struct {
	pos    int
	helper string
	member string
}

func (f *fakeMemberExpr) Pos() int { return f.pos }
func (f *fakeMemberExpr) RenameMember(helper, oldMember, newMember string) astnode.RawExpr {
	if f.helper == helper && f.member == oldMember {
		return &fakeMemberExpr{pos: f.pos, helper: helper, member: newMember}
	}
	cp := *f
	return &cp
}

func TestCloneNode_NilIsNil(t *testing.T) {
	assert.Nil(t, CloneNode(nil, nil))
}

func TestCloneNode_DeepCopiesTagOrComponent(t *testing.T) {
	child := &astnode.Node{Kind: astnode.KindText, Value: "hello", Raw: &fakeRaw{pos: 1}}
	el := &astnode.JSXElement{
		NameInID: "Root",
		Raw:      &fakeRaw{pos: 0},
		Attrs: []astnode.Attr{
			{Name: "title", Value: &astnode.Node{Kind: astnode.KindStringLit, Value: "hi"}},
		},
		Children: []*astnode.Node{child},
	}
	n := &astnode.Node{Kind: astnode.KindTagOrComponent, Element: el, Raw: &fakeRaw{pos: 0}}

	clone := CloneNode(n, nil)
	require.NotNil(t, clone)
	require.NotNil(t, clone.Element)
	assert.Equal(t, "Root", clone.Element.NameInID)

	// Mutating the clone must not affect the original.
	clone.Element.NameInID = "Root2"
	assert.Equal(t, "Root", n.Element.NameInID)

	clone.Element.Children[0].Value = "changed"
	assert.Equal(t, "hello", n.Element.Children[0].Value)

	// Raw expressions implementing Cloner are independent copies.
	origRaw := n.Element.Raw.(*fakeRaw)
	cloneRawExpr := clone.Element.Raw.(*fakeRaw)
	assert.NotSame(t, origRaw, cloneRawExpr)
	assert.Equal(t, origRaw.pos, cloneRawExpr.pos)
}

func TestCloneNode_HookReplacesWithoutDescending(t *testing.T) {
	leaf := &astnode.Node{Kind: astnode.KindText, Value: "original"}
	wrapper := &astnode.Node{
		Kind: astnode.KindArg,
		ArgTags: []*astnode.Node{
			leaf,
		},
	}

	replacement := &astnode.Node{Kind: astnode.KindText, Value: "replaced"}
	hook := func(n *astnode.Node) (*astnode.Node, bool) {
		if n == leaf {
			return replacement, true
		}
		return nil, false
	}

	clone := CloneNode(wrapper, hook)
	require.Len(t, clone.ArgTags, 1)
	assert.Same(t, replacement, clone.ArgTags[0])
}

func TestCloneElement_NilIsNil(t *testing.T) {
	assert.Nil(t, CloneElement(nil, nil))
}

func TestRenameMemberRefs_Rewrites(t *testing.T) {
	expr := &fakeMemberExpr{helper: "rh", member: "onRootClick"}
	renamed := RenameMemberRefs(expr, "rh", "onRootClick", "onRoot2Click")
	got, ok := renamed.(*fakeMemberExpr)
	require.True(t, ok)
	assert.Equal(t, "onRoot2Click", got.member)
}

func TestRenameMemberRefs_NonRenamerUnchanged(t *testing.T) {
	expr := &fakeRaw{pos: 5}
	got := RenameMemberRefs(expr, "rh", "onRootClick", "onRoot2Click")
	assert.Same(t, expr, got)
}
