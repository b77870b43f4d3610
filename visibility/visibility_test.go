package visibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plasmerge/plasmerge/astnode"
	"github.com/plasmerge/plasmerge/internal/astutil"
)

// showGateExpr models `rh.show<member>() && <inner>`, optionally nested
// inside other structure when inner != nil.
type showGateExpr struct {
	pos     int
	helper  string
	member  string
	wrapped astnode.RawExpr // not set by bareMarkupExpr.WrapWithShow
	inner   *nestedExpr
}

func (s *showGateExpr) Pos() int { return s.pos }
func (s *showGateExpr) RenameMember(helper, oldMember, newMember string) astnode.RawExpr {
	if helper != s.helper || s.member != oldMember {
		cp := *s
		return &cp
	}
	return &showGateExpr{pos: s.pos, helper: helper, member: newMember, inner: s.inner}
}
func (s *showGateExpr) ReplaceShowGuardWithTrue(helper, member string) astnode.RawExpr {
	return &literalTrueExpr{pos: s.pos}
}

type literalTrueExpr struct{ pos int }

func (l *literalTrueExpr) Pos() int { return l.pos }

// bareMarkupExpr is a bare markup expression with no visibility wrapper.
type bareMarkupExpr struct {
	pos int
}

func (b *bareMarkupExpr) Pos() int { return b.pos }
func (b *bareMarkupExpr) WrapWithShow(helper, member string) astnode.RawExpr {
	return &showGateExpr{pos: b.pos, helper: helper, member: member}
}

// nestedExpr wraps a markup element inside other structure (e.g. a
// ternary or logical expression the developer introduced) and supports
// locating the element by position.
type nestedExpr struct {
	pos       int
	innerPos  int
	innerNode astnode.RawExpr
}

func (n *nestedExpr) Pos() int { return n.pos }
func (n *nestedExpr) ReplaceAtPos(pos int, transform astutil.PosTransform) (astnode.RawExpr, bool) {
	if pos != n.innerPos {
		return n, false
	}
	return &nestedExpr{pos: n.pos, innerPos: n.innerPos, innerNode: transform(n.innerNode)}, true
}

func TestReconcile_BothPresentRenames(t *testing.T) {
	clone := &showGateExpr{pos: 10, helper: "rh", member: "showRoot"}
	out, err := Reconcile(clone, Presence{Present: true, NameInID: "Root"}, Presence{Present: true}, "Root2", "rh", 10)
	require.NoError(t, err)
	got, ok := out.(*showGateExpr)
	require.True(t, ok)
	assert.Equal(t, "showRoot2", got.member)
}

func TestReconcile_EditedOnlyReplacesWithTrue(t *testing.T) {
	clone := &showGateExpr{pos: 10, helper: "rh", member: "showRow"}
	out, err := Reconcile(clone, Presence{Present: true, NameInID: "Row"}, Presence{Present: false}, "Row", "rh", 10)
	require.NoError(t, err)
	_, ok := out.(*literalTrueExpr)
	assert.True(t, ok)
}

func TestReconcile_NeitherPresentNoop(t *testing.T) {
	clone := &bareMarkupExpr{pos: 10}
	out, err := Reconcile(clone, Presence{Present: false}, Presence{Present: false}, "Row", "rh", 10)
	require.NoError(t, err)
	assert.Same(t, clone, out)
}

// S5 — visibility added by the tool, edited node is the bare markup.
func TestReconcile_NewOnlyWrapsBareMarkup(t *testing.T) {
	clone := &bareMarkupExpr{pos: 10}
	out, err := Reconcile(clone, Presence{Present: false}, Presence{Present: true}, "Row", "rh", 10)
	require.NoError(t, err)
	got, ok := out.(*showGateExpr)
	require.True(t, ok)
	assert.Equal(t, "showRow", got.member)
}

func TestReconcile_NewOnlyWrapsNestedMarkup(t *testing.T) {
	inner := &bareMarkupExpr{pos: 20}
	clone := &nestedExpr{pos: 5, innerPos: 20, innerNode: inner}

	out, err := Reconcile(clone, Presence{Present: false}, Presence{Present: true}, "Row", "rh", 20)
	require.NoError(t, err)

	got, ok := out.(*nestedExpr)
	require.True(t, ok)
	gate, ok := got.innerNode.(*showGateExpr)
	require.True(t, ok)
	assert.Equal(t, "showRow", gate.member)
}

func TestReconcile_NewOnlyNoMatchFallsBackUnchanged(t *testing.T) {
	clone := &nestedExpr{pos: 5, innerPos: 20, innerNode: &bareMarkupExpr{pos: 20}}
	out, err := Reconcile(clone, Presence{Present: false}, Presence{Present: true}, "Row", "rh", 999)
	require.NoError(t, err)
	assert.Same(t, clone, out)
}
