package jswrite

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/plasmerge/plasmerge/assembler"
	"github.com/plasmerge/plasmerge/astnode"
	"github.com/plasmerge/plasmerge/importmerge"
)

// Parser implements assembler.Parser against jswrite's notation.
type Parser struct{}

// Parse turns source into an assembler.ParsedFile. helper is discovered
// from the first managed call the markup expression contains.
func (Parser) Parse(source string) (assembler.ParsedFile, error) {
	f, err := ParseFile(source)
	if err != nil {
		return assembler.ParsedFile{}, err
	}
	return f.ToParsedFile(), nil
}

// ParseFile is the jswrite-specific entry point, returning the richer
// *File a caller needs to also build a version.CodeVersion from
// f.Markup.
func ParseFile(source string) (*File, error) {
	p := &parser{src: source}
	imports, err := p.parseImports()
	if err != nil {
		return nil, err
	}
	p.skipBlank()

	rev, err := p.parseRevisionComment()
	if err != nil {
		return nil, err
	}
	p.skipBlank()

	if err := p.expectLiteral("const "); err != nil {
		return nil, err
	}
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	p.skipWS()
	if err := p.expectLiteral("="); err != nil {
		return nil, err
	}
	p.skipWS()
	markup, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.skipWS()
	if err := p.expectLiteral(";"); err != nil {
		return nil, err
	}

	helper := helperOf(markup)

	return &File{
		Imports:  imports,
		Revision: rev,
		Helper:   helper,
		Name:     name,
		Markup:   markup,
		Tail:     p.src[p.pos:],
		Text:     source,
	}, nil
}

func helperOf(raw astnode.RawExpr) string {
	e, ok := raw.(*Expr)
	if !ok {
		return ""
	}
	switch e.kind {
	case kindCall:
		return e.helper
	case kindAnd:
		return helperOf(e.left)
	case kindElement:
		for _, a := range e.attrs {
			if a.isSpread {
				if h := helperOf(a.inner); h != "" {
					return h
				}
				continue
			}
			if h := helperOf(a.value); h != "" {
				return h
			}
		}
	}
	return ""
}

type parser struct {
	src string
	pos int
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peekByte() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) skipWS() {
	for !p.eof() {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) skipBlank() { p.skipWS() }

func (p *parser) expectLiteral(lit string) error {
	if !strings.HasPrefix(p.src[p.pos:], lit) {
		return fmt.Errorf("jswrite: expected %q at offset %d, got %q", lit, p.pos, p.context())
	}
	p.pos += len(lit)
	return nil
}

func (p *parser) context() string {
	end := p.pos + 20
	if end > len(p.src) {
		end = len(p.src)
	}
	return p.src[p.pos:end]
}

func isIdentByte(b byte) bool {
	return b == '_' || b == '-' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func (p *parser) parseIdent() (string, error) {
	start := p.pos
	for !p.eof() && isIdentByte(p.src[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return "", fmt.Errorf("jswrite: expected identifier at offset %d, got %q", start, p.context())
	}
	return p.src[start:p.pos], nil
}

// parseImports consumes leading "import ..." lines, stopping at the
// first non-import, non-blank line.
func (p *parser) parseImports() (importmerge.ImportSection, error) {
	var section importmerge.ImportSection
	for {
		save := p.pos
		p.skipWS()
		if !strings.HasPrefix(p.src[p.pos:], "import ") {
			p.pos = save
			return section, nil
		}
		line := firstLine(p.src[p.pos:])
		lineStart := p.pos
		p.pos += len(line)
		if !p.eof() && p.src[p.pos] == '\n' {
			p.pos++
		}

		decl, err := parseImportLine(line, lineStart)
		if err != nil {
			return section, err
		}
		if decl.managed {
			section.Managed = append(section.Managed, decl.managedImport)
		} else {
			section.Unmanaged = append(section.Unmanaged, decl.raw)
		}
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

type importDecl struct {
	managed       bool
	managedImport importmerge.ManagedImport
	raw           astnode.RawExpr
}

// parseImportLine understands exactly one specifier-list shape per
// line: a bare default binding, a brace-delimited named list, or a
// "* as NS" namespace binding.
func parseImportLine(line string, pos int) (importDecl, error) {
	body := strings.TrimPrefix(line, "import ")
	comment := ""
	if i := strings.Index(body, "//"); i >= 0 {
		comment = strings.TrimSpace(body[i+2:])
		body = body[:i]
	}
	body = strings.TrimSpace(body)

	fromIdx := strings.LastIndex(body, " from ")
	if fromIdx < 0 {
		return importDecl{}, fmt.Errorf("jswrite: malformed import %q", line)
	}
	specPart := strings.TrimSpace(body[:fromIdx])

	var specs []importmerge.ImportSpecifier
	switch {
	case strings.HasPrefix(specPart, "{"):
		inner := strings.TrimSuffix(strings.TrimPrefix(specPart, "{"), "}")
		for _, item := range strings.Split(inner, ",") {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			if local, imported, ok := strings.Cut(item, " as "); ok {
				specs = append(specs, importmerge.ImportSpecifier{Kind: importmerge.SpecifierNamed, Local: strings.TrimSpace(imported), Imported: strings.TrimSpace(local)})
			} else {
				specs = append(specs, importmerge.ImportSpecifier{Kind: importmerge.SpecifierNamed, Local: item, Imported: item})
			}
		}
	case strings.HasPrefix(specPart, "*"):
		_, local, ok := strings.Cut(specPart, " as ")
		if !ok {
			return importDecl{}, fmt.Errorf("jswrite: malformed namespace import %q", line)
		}
		specs = append(specs, importmerge.ImportSpecifier{Kind: importmerge.SpecifierNamespace, Local: strings.TrimSpace(local)})
	default:
		specs = append(specs, importmerge.ImportSpecifier{Kind: importmerge.SpecifierDefault, Local: specPart})
	}

	id, typ, ok := importmerge.ParseManagedComment(comment)
	if !ok {
		return importDecl{managed: false, raw: &posRaw{p: pos}}, nil
	}
	return importDecl{
		managed: true,
		managedImport: importmerge.ManagedImport{
			ID:         id,
			Type:       typ,
			Specifiers: specs,
			Raw:        &posRaw{p: pos},
		},
	}, nil
}

// posRaw is a minimal RawExpr used where only source-position identity
// is needed, never clone or structural equality (import declarations).
type posRaw struct{ p int }

func (r *posRaw) Pos() int { return r.p }

var revisionPrefix = "// plasmic-managed-jsx/"

func (p *parser) parseRevisionComment() (int, error) {
	if !strings.HasPrefix(p.src[p.pos:], revisionPrefix) {
		return 0, fmt.Errorf("jswrite: expected %q at offset %d, got %q", revisionPrefix, p.pos, p.context())
	}
	p.pos += len(revisionPrefix)
	start := p.pos
	for !p.eof() && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	if p.pos == start {
		return 0, fmt.Errorf("jswrite: expected revision number at offset %d", start)
	}
	rev, err := strconv.Atoi(p.src[start:p.pos])
	if err != nil {
		return 0, err
	}
	return rev, nil
}

// parseExpr parses one expression: an element, a helper call optionally
// followed by "&& <expr>", a quoted string literal, or a bare opaque
// token.
func (p *parser) parseExpr() (astnode.RawExpr, error) {
	p.skipWS()
	switch {
	case p.peekByte() == '<':
		return p.parseElement()
	case p.peekByte() == '"':
		return p.parseStringLit()
	default:
		return p.parseCallOrOpaque()
	}
}

func (p *parser) parseStringLit() (astnode.RawExpr, error) {
	pos := p.pos
	if err := p.expectLiteral("\""); err != nil {
		return nil, err
	}
	start := p.pos
	for !p.eof() && p.src[p.pos] != '"' {
		p.pos++
	}
	if p.eof() {
		return nil, fmt.Errorf("jswrite: unterminated string starting at offset %d", pos)
	}
	text := p.src[start:p.pos]
	p.pos++ // closing quote
	return &Expr{kind: kindStringLit, pos: pos, text: text}, nil
}

// parseCallOrOpaque handles "helper.member(args)", a bare identifier or
// literal, then optionally "&& <expr>" to form the visibility gate.
func (p *parser) parseCallOrOpaque() (astnode.RawExpr, error) {
	pos := p.pos
	word, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	var left astnode.RawExpr
	if p.peekByte() == '.' {
		p.pos++
		member, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		if p.peekByte() == '(' {
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			left = &Expr{kind: kindCall, pos: pos, helper: word, member: member, args: args}
		} else {
			left = &Expr{kind: kindOpaque, pos: pos, text: word + "." + member}
		}
	} else {
		left = &Expr{kind: kindOpaque, pos: pos, text: word}
	}

	save := p.pos
	p.skipWS()
	if strings.HasPrefix(p.src[p.pos:], "&&") {
		p.pos += 2
		p.skipWS()
		right, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &Expr{kind: kindAnd, pos: pos, left: left, right: right}, nil
	}
	p.pos = save
	return left, nil
}

func (p *parser) parseArgs() ([]astnode.RawExpr, error) {
	if err := p.expectLiteral("("); err != nil {
		return nil, err
	}
	var args []astnode.RawExpr
	p.skipWS()
	for p.peekByte() != ')' {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		p.skipWS()
		if p.peekByte() == ',' {
			p.pos++
			p.skipWS()
			continue
		}
		break
	}
	if err := p.expectLiteral(")"); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *parser) parseElement() (astnode.RawExpr, error) {
	pos := p.pos
	if err := p.expectLiteral("<"); err != nil {
		return nil, err
	}
	tag, err := p.parseIdent()
	if err != nil {
		return nil, err
	}

	e := &Expr{kind: kindElement, pos: pos, tag: tag}
	for {
		p.skipWS()
		if strings.HasPrefix(p.src[p.pos:], "/>") {
			p.pos += 2
			e.selfClosing = true
			return e, nil
		}
		if p.peekByte() == '>' {
			p.pos++
			break
		}
		attr, err := p.parseAttr()
		if err != nil {
			return nil, err
		}
		e.attrs = append(e.attrs, attr)
	}

	children, err := p.parseChildren(tag)
	if err != nil {
		return nil, err
	}
	e.children = children
	return e, nil
}

func (p *parser) parseAttr() (rawAttr, error) {
	if strings.HasPrefix(p.src[p.pos:], "{...") {
		p.pos += 4
		inner, err := p.parseExpr()
		if err != nil {
			return rawAttr{}, err
		}
		p.skipWS()
		if err := p.expectLiteral("}"); err != nil {
			return rawAttr{}, err
		}
		return rawAttr{isSpread: true, inner: inner}, nil
	}

	name, err := p.parseIdent()
	if err != nil {
		return rawAttr{}, err
	}
	if err := p.expectLiteral("="); err != nil {
		return rawAttr{}, err
	}
	var value astnode.RawExpr
	if p.peekByte() == '"' {
		value, err = p.parseStringLit()
	} else if p.peekByte() == '{' {
		p.pos++
		value, err = p.parseExpr()
		if err == nil {
			p.skipWS()
			err = p.expectLiteral("}")
		}
	} else {
		return rawAttr{}, fmt.Errorf("jswrite: malformed attribute value for %q at offset %d", name, p.pos)
	}
	if err != nil {
		return rawAttr{}, err
	}
	return rawAttr{name: name, value: value}, nil
}

func (p *parser) parseChildren(tag string) ([]astnode.RawExpr, error) {
	var children []astnode.RawExpr
	for {
		start := p.pos
		for !p.eof() && p.src[p.pos] != '<' && p.src[p.pos] != '{' {
			p.pos++
		}
		if text := strings.TrimSpace(p.src[start:p.pos]); text != "" {
			children = append(children, &Expr{kind: kindText, pos: start, text: text})
		}
		if p.eof() {
			return nil, fmt.Errorf("jswrite: unterminated element <%s>", tag)
		}
		if p.src[p.pos] == '{' {
			p.pos++
			p.skipWS()
			child, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			children = append(children, child)
			p.skipWS()
			if err := p.expectLiteral("}"); err != nil {
				return nil, err
			}
			continue
		}
		// p.src[p.pos] == '<'
		if strings.HasPrefix(p.src[p.pos:], "</") {
			p.pos += 2
			closeTag, err := p.parseIdent()
			if err != nil {
				return nil, err
			}
			if closeTag != tag {
				return nil, fmt.Errorf("jswrite: mismatched closing tag </%s>, expected </%s>", closeTag, tag)
			}
			p.skipWS()
			if err := p.expectLiteral(">"); err != nil {
				return nil, err
			}
			return children, nil
		}
		child, err := p.parseElement()
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
}
