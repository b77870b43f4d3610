package jswrite

import (
	"fmt"
	"strings"

	"github.com/plasmerge/plasmerge/assembler"
	"github.com/plasmerge/plasmerge/astnode"
	"github.com/plasmerge/plasmerge/importmerge"
)

// PrettyPrinter implements assembler.PrettyPrinter against jswrite's
// notation, re-rendering the import block and the managed markup
// statement while leaving Tail untouched.
type PrettyPrinter struct{}

func (PrettyPrinter) Print(root assembler.FileRoot) (string, error) {
	f, ok := root.(*File)
	if !ok {
		return "", fmt.Errorf("jswrite: PrettyPrinter given unsupported FileRoot type %T", root)
	}
	return PrintFile(f)
}

// PrintFile renders f back into source text.
func PrintFile(f *File) (string, error) {
	var b strings.Builder

	for _, imp := range importLines(f.Imports) {
		b.WriteString(imp)
		b.WriteByte('\n')
	}
	if len(f.Imports.Managed) > 0 || len(f.Imports.Unmanaged) > 0 {
		b.WriteByte('\n')
	}

	fmt.Fprintf(&b, "// plasmic-managed-jsx/%d\n", f.Revision)

	name := f.Name
	if name == "" {
		name = "Root"
	}
	markupText, err := printExpr(f.Markup)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(&b, "const %s = %s;", name, markupText)
	b.WriteString(f.Tail)

	return b.String(), nil
}

func importLines(section importmerge.ImportSection) []string {
	var lines []string
	for range section.Unmanaged {
		// jswrite's grammar does not retain an unmanaged import's
		// original specifier text; it only needs the declaration's
		// source position for insertion-anchor bookkeeping, so it is
		// re-rendered as an equivalent placeholder line.
		lines = append(lines, "import {} from \"unknown\";")
	}
	for _, mi := range section.Managed {
		lines = append(lines, printManagedImport(mi))
	}
	return lines
}

func printManagedImport(mi importmerge.ManagedImport) string {
	spec := printSpecifiers(mi.Specifiers)
	comment := "plasmic-import: " + mi.ID
	if mi.Type != "" {
		comment += "/" + mi.Type
	}
	return fmt.Sprintf("import %s from \"%s\"; // %s", spec, mi.ID, comment)
}

func printSpecifiers(specs []importmerge.ImportSpecifier) string {
	if len(specs) == 0 {
		return "{}"
	}
	if specs[0].Kind == importmerge.SpecifierNamespace {
		return "* as " + specs[0].Local
	}
	if specs[0].Kind == importmerge.SpecifierDefault && len(specs) == 1 {
		return specs[0].Local
	}
	parts := make([]string, 0, len(specs))
	for _, s := range specs {
		switch s.Kind {
		case importmerge.SpecifierDefault:
			parts = append(parts, s.Local)
		case importmerge.SpecifierNamed:
			if s.Imported != "" && s.Imported != s.Local {
				parts = append(parts, s.Imported+" as "+s.Local)
			} else {
				parts = append(parts, s.Local)
			}
		case importmerge.SpecifierNamespace:
			parts = append(parts, "* as "+s.Local)
		}
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func printExpr(raw astnode.RawExpr) (string, error) {
	if raw == nil {
		return "null", nil
	}
	e, ok := raw.(*Expr)
	if !ok {
		return "", fmt.Errorf("jswrite: cannot print RawExpr of unsupported type %T", raw)
	}
	switch e.kind {
	case kindText, kindOpaque:
		return e.text, nil
	case kindStringLit:
		return fmt.Sprintf("%q", e.text), nil
	case kindCall:
		args := make([]string, len(e.args))
		for i, a := range e.args {
			s, err := printExpr(a)
			if err != nil {
				return "", err
			}
			args[i] = s
		}
		return fmt.Sprintf("%s.%s(%s)", e.helper, e.member, strings.Join(args, ", ")), nil
	case kindAnd:
		left, err := printExpr(e.left)
		if err != nil {
			return "", err
		}
		right, err := printExpr(e.right)
		if err != nil {
			return "", err
		}
		return left + " && " + right, nil
	case kindSpread:
		inner, err := printExpr(e.inner)
		if err != nil {
			return "", err
		}
		return "{..." + inner + "}", nil
	case kindElement:
		return printElement(e)
	default:
		panic("jswrite: unhandled exprKind")
	}
}

func printElement(e *Expr) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "<%s", e.tag)
	for _, a := range e.attrs {
		s, err := printAttr(a)
		if err != nil {
			return "", err
		}
		b.WriteByte(' ')
		b.WriteString(s)
	}
	if e.selfClosing {
		b.WriteString("/>")
		return b.String(), nil
	}
	b.WriteByte('>')
	for _, c := range e.children {
		if ce, ok := c.(*Expr); ok && ce.kind == kindText {
			b.WriteString(ce.text)
			continue
		}
		s, err := printExpr(c)
		if err != nil {
			return "", err
		}
		b.WriteByte('{')
		b.WriteString(s)
		b.WriteByte('}')
	}
	fmt.Fprintf(&b, "</%s>", e.tag)
	return b.String(), nil
}

func printAttr(a rawAttr) (string, error) {
	if a.isSpread {
		inner, err := printExpr(a.inner)
		if err != nil {
			return "", err
		}
		return "{..." + inner + "}", nil
	}
	if se, ok := a.value.(*Expr); ok && se.kind == kindStringLit {
		return fmt.Sprintf("%s=%q", a.name, se.text), nil
	}
	val, err := printExpr(a.value)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s={%s}", a.name, val), nil
}

// Formatter is a minimal assembler.Formatter: it trims trailing
// whitespace from every line, standing in for a real code formatter's
// whitespace normalization without imposing any opinion on indentation.
type Formatter struct{}

func (Formatter) Format(source string) (string, error) {
	lines := strings.Split(source, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n"), nil
}

var (
	_ assembler.PrettyPrinter = PrettyPrinter{}
	_ assembler.Formatter     = Formatter{}
)
