package jswrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plasmerge/plasmerge/assembler"
	"github.com/plasmerge/plasmerge/astnode"
)

const sampleSource = `import Button from "./Button"; // plasmic-import: btn123/component
import { cx } from "classnames";

// plasmic-managed-jsx/2
const Root = <div className={rh.clsRoot()} {...rh.propsRoot()}>hello<Button {...rh.propsBtn()}/></div>;
// plasmic-managed-start
console.log("developer code");
// plasmic-managed-end
`

func TestParseFile_RoundTripsThroughPrint(t *testing.T) {
	f, err := ParseFile(sampleSource)
	require.NoError(t, err)
	assert.Equal(t, 2, f.Revision)
	assert.Equal(t, "rh", f.Helper)
	assert.Equal(t, "Root", f.Name)
	require.Len(t, f.Imports.Managed, 1)
	assert.Equal(t, "btn123", f.Imports.Managed[0].ID)
	assert.Equal(t, "component", f.Imports.Managed[0].Type)
	require.Len(t, f.Imports.Unmanaged, 1)

	out, err := PrintFile(f)
	require.NoError(t, err)
	assert.Contains(t, out, "plasmic-managed-jsx/2")
	assert.Contains(t, out, "plasmic-import: btn123/component")
	assert.Contains(t, out, `console.log("developer code")`)

	reparsed, err := ParseFile(out)
	require.NoError(t, err)
	assert.Equal(t, f.Revision, reparsed.Revision)
	assert.Equal(t, f.Name, reparsed.Name)
	assert.True(t, f.Markup.(*Expr).Equal(reparsed.Markup))
}

func TestParseFile_ClassifyDerivesNameInIDFromManagedAttrs(t *testing.T) {
	f, err := ParseFile(sampleSource)
	require.NoError(t, err)

	root := ClassifyMarkup(f.Markup, f.Helper)
	require.Equal(t, astnode.KindTagOrComponent, root.Kind)
	assert.Equal(t, "Root", root.Element.NameInID)
	require.Len(t, root.Element.Children, 2)
	assert.Equal(t, astnode.KindText, root.Element.Children[0].Kind)
	assert.Equal(t, "hello", root.Element.Children[0].Value)

	btn := root.Element.Children[1]
	require.Equal(t, astnode.KindTagOrComponent, btn.Kind)
	assert.Equal(t, "Btn", btn.Element.NameInID)
	assert.True(t, btn.Element.SelfClosing)
}

func TestParseFile_VisibilityGatedElementKeepsAndAsRaw(t *testing.T) {
	src := `// plasmic-managed-jsx/1
const Root = rh.showRoot() && <div className={rh.clsRoot()} {...rh.propsRoot()}/>;
// plasmic-managed-start
// plasmic-managed-end
`
	f, err := ParseFile(src)
	require.NoError(t, err)

	node := ClassifyMarkup(f.Markup, f.Helper)
	require.Equal(t, astnode.KindTagOrComponent, node.Kind)
	assert.Equal(t, "Root", node.Element.NameInID)

	gated, ok := node.Raw.(*Expr)
	require.True(t, ok)
	member, ok := gated.ManagedShowMember("rh")
	require.True(t, ok)
	assert.Equal(t, "showRoot", member)
}

func TestExpr_RenameMemberRewritesMatchingHandlerCalls(t *testing.T) {
	e := &Expr{
		kind: kindElement,
		tag:  "button",
		attrs: []rawAttr{
			{name: "onClick", value: &Expr{kind: kindCall, helper: "rh", member: "onRootClick"}},
			{name: "title", value: &Expr{kind: kindStringLit, text: "hi"}},
		},
	}

	renamed := e.RenameMember("rh", "onRoot", "onRoot2")
	re, ok := renamed.(*Expr)
	require.True(t, ok)
	call := re.attrs[0].value.(*Expr)
	assert.Equal(t, "onRoot2Click", call.member)
	assert.Equal(t, "hi", re.attrs[1].value.(*Expr).text)

	// original untouched
	assert.Equal(t, "onRootClick", e.attrs[0].value.(*Expr).member)
}

func TestExpr_CloneIsIndependentDeepCopy(t *testing.T) {
	e := &Expr{kind: kindElement, tag: "div", children: []astnode.RawExpr{
		&Expr{kind: kindText, pos: 5, text: "hi"},
	}}
	clone := e.Clone().(*Expr)
	require.True(t, e.Equal(clone))

	clone.children[0].(*Expr).text = "bye"
	assert.Equal(t, "hi", e.children[0].(*Expr).text)
	assert.Equal(t, 5, clone.children[0].(*Expr).pos)
}

func TestExpr_ReplaceAtPosSplicesWithoutMutatingOriginal(t *testing.T) {
	target := &Expr{kind: kindText, pos: 9, text: "old"}
	root := &Expr{kind: kindElement, tag: "div", children: []astnode.RawExpr{target}}

	replaced, ok := root.ReplaceAtPos(9, func(astnode.RawExpr) astnode.RawExpr {
		return &Expr{kind: kindText, pos: 9, text: "new"}
	})
	require.True(t, ok)
	rr := replaced.(*Expr)
	assert.Equal(t, "new", rr.children[0].(*Expr).text)
	assert.Equal(t, "old", root.children[0].(*Expr).text)
}

func TestExpr_WrapAndReplaceShowGuard(t *testing.T) {
	el := &Expr{kind: kindElement, tag: "div", pos: 3}
	wrapped := el.WrapWithShow("rh", "showX").(*Expr)
	require.Equal(t, kindAnd, wrapped.kind)

	member, ok := wrapped.ManagedShowMember("rh")
	require.True(t, ok)
	assert.Equal(t, "showX", member)

	always := wrapped.ReplaceShowGuardWithTrue("rh", "showX").(*Expr)
	left := always.left.(*Expr)
	assert.Equal(t, "true", left.text)
}

func TestPrettyPrinter_RejectsUnsupportedFileRootType(t *testing.T) {
	var root assembler.FileRoot
	_, err := PrettyPrinter{}.Print(root)
	assert.Error(t, err)
}

func TestFormatter_TrimsTrailingWhitespace(t *testing.T) {
	out, err := Formatter{}.Format("line one  \nline two\t\n")
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two\n", out)
}

func TestParser_ImplementsAssemblerParser(t *testing.T) {
	var p assembler.Parser = Parser{}
	parsed, err := p.Parse(sampleSource)
	require.NoError(t, err)
	assert.Equal(t, 2, parsed.Revision)
	assert.Equal(t, "rh", parsed.Helper)
}

func TestFile_WithManagedMarkupAndImportsReturnsCopy(t *testing.T) {
	f := &File{Revision: 1, Markup: &Expr{kind: kindOpaque, text: "old"}}
	updated := f.WithManagedMarkup(&Expr{kind: kindOpaque, text: "new"}, 2).(*File)

	assert.Equal(t, 2, updated.Revision)
	assert.Equal(t, "new", updated.Markup.(*Expr).text)
	assert.Equal(t, "old", f.Markup.(*Expr).text)
	assert.Equal(t, 1, f.Revision)
}
