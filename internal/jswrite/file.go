package jswrite

import (
	"strings"

	"github.com/plasmerge/plasmerge/assembler"
	"github.com/plasmerge/plasmerge/astnode"
	"github.com/plasmerge/plasmerge/importmerge"
)

// File is jswrite's parsed representation of one source file: its
// import section, the managed markup statement, and everything after
// it verbatim (including the plasmic-managed-start/-end region, which
// this package never parses structurally). It implements
// assembler.FileRoot.
type File struct {
	Imports  importmerge.ImportSection
	Revision int
	Helper   string
	Name     string // the "const <Name> = ..." binding name
	Markup   astnode.RawExpr
	Tail     string // raw text following the managed statement's ";"
	Text     string // the full original source text, for marker extraction
}

// WithManagedMarkup implements assembler.FileRoot.
func (f *File) WithManagedMarkup(markup astnode.RawExpr, newRevision int) assembler.FileRoot {
	cp := *f
	cp.Markup = markup
	cp.Revision = newRevision
	return &cp
}

// WithImports implements assembler.FileRoot. anchor is accepted for
// interface compatibility; jswrite always re-renders the whole import
// block at the top of the file, so no splice position bookkeeping is
// needed here.
func (f *File) WithImports(merged importmerge.ImportSection, anchor importmerge.RawImportDecl) assembler.FileRoot {
	cp := *f
	cp.Imports = merged
	return &cp
}

// ToParsedFile adapts f into the assembler.ParsedFile shape.
func (f *File) ToParsedFile() assembler.ParsedFile {
	return assembler.ParsedFile{
		Root:     f,
		Imports:  f.Imports,
		Revision: f.Revision,
		Helper:   f.Helper,
		Text:     f.Text,
	}
}

// ClassifyMarkup walks f's parsed markup expression into the classified
// astnode.Node tree the rest of the merge engine operates over,
// deriving each element's stable nameInId from whichever managed
// class/props attribute it carries.
func ClassifyMarkup(markup astnode.RawExpr, helper string) *astnode.Node {
	return classify(markup, helper)
}

func classify(raw astnode.RawExpr, helper string) *astnode.Node {
	e, ok := raw.(*Expr)
	if !ok || e == nil {
		return &astnode.Node{Kind: astnode.KindOpaque, Raw: raw}
	}

	switch e.kind {
	case kindAnd:
		// A visibility-gated node: classify the guarded element but
		// keep the node's Raw as the whole "&&" expression, so Pos()
		// and HasShowFuncCall see the gate, not just the bare element.
		inner := classify(e.right, helper)
		inner.Raw = e
		return inner
	case kindElement:
		return classifyElement(e, helper)
	case kindText:
		return &astnode.Node{Kind: astnode.KindText, Value: e.text, Raw: e}
	case kindStringLit:
		return &astnode.Node{Kind: astnode.KindStringLit, Value: e.text, Raw: e}
	case kindCall:
		if e.helper == helper && e.member != "" {
			return &astnode.Node{Kind: astnode.KindCondStrCall, Raw: e}
		}
		return &astnode.Node{Kind: astnode.KindOpaque, Raw: e}
	default:
		return &astnode.Node{Kind: astnode.KindOpaque, Raw: e}
	}
}

func classifyElement(e *Expr, helper string) *astnode.Node {
	el := &astnode.JSXElement{
		NameInID:    deriveNameInID(e, helper),
		Raw:         e,
		SelfClosing: e.selfClosing,
	}
	for _, a := range e.attrs {
		el.Attrs = append(el.Attrs, classifyAttr(a))
	}
	for _, c := range e.children {
		el.Children = append(el.Children, classify(c, helper))
	}
	return &astnode.Node{Kind: astnode.KindTagOrComponent, Raw: e, Element: el}
}

func classifyAttr(a rawAttr) astnode.Attr {
	if a.isSpread {
		return astnode.Attr{IsSpread: true, Raw: a.inner}
	}
	return astnode.Attr{Name: a.name, Value: classifyAttrValue(a.value)}
}

func classifyAttrValue(raw astnode.RawExpr) *astnode.Node {
	e, ok := raw.(*Expr)
	if !ok || e == nil {
		return &astnode.Node{Kind: astnode.KindOpaque, Raw: raw}
	}
	if e.kind == kindStringLit {
		return &astnode.Node{Kind: astnode.KindStringLit, Value: e.text, Raw: e}
	}
	return &astnode.Node{Kind: astnode.KindOpaque, Raw: e}
}

// deriveNameInID recovers an element's stable identifier from whichever
// managed class or props call one of its attributes carries, stripping
// the "cls"/"props" prefix. An element with neither (a plain,
// non-tool-owned markup node) derives its identifier from its tag name
// instead, since no version of this merge engine ever looks such a node
// up by nameInId.
func deriveNameInID(e *Expr, helper string) string {
	for _, a := range e.attrs {
		if a.isSpread {
			if m, _, ok := managedPropsOf(a.inner, helper); ok {
				return strings.TrimPrefix(m, "props")
			}
			continue
		}
		if a.name == "className" {
			if m, ok := managedClassOf(a.value, helper); ok {
				return strings.TrimPrefix(m, "cls")
			}
		}
	}
	return e.tag
}

func managedClassOf(raw astnode.RawExpr, helper string) (string, bool) {
	if ce, ok := raw.(*Expr); ok {
		return ce.ManagedClassMember(helper)
	}
	return "", false
}

func managedPropsOf(raw astnode.RawExpr, helper string) (string, bool, bool) {
	if ce, ok := raw.(*Expr); ok {
		return ce.ManagedPropsMember(helper)
	}
	return "", false, false
}
