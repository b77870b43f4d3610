package importmerge

import (
	"regexp"
	"sort"

	"github.com/plasmerge/plasmerge/astnode"
)

// SpecifierKind classifies one entry of an import declaration's
// specifier list.
type SpecifierKind int

const (
	// SpecifierDefault is a default import: `import X from "m"`.
	SpecifierDefault SpecifierKind = iota
	// SpecifierNamed is a named import: `import { x as y } from "m"`.
	SpecifierNamed
	// SpecifierNamespace is a namespace import: `import * as x from "m"`.
	SpecifierNamespace
)

// String implements fmt.Stringer for readable test failures and logs.
func (k SpecifierKind) String() string {
	switch k {
	case SpecifierDefault:
		return "default"
	case SpecifierNamed:
		return "named"
	case SpecifierNamespace:
		return "namespace"
	default:
		return "unknown"
	}
}

// ImportSpecifier is one binding introduced by an import declaration.
type ImportSpecifier struct {
	Kind           SpecifierKind
	Local          string
	Imported       string // only meaningful when Kind == SpecifierNamed
}

// RawImportDecl is the external AST's opaque handle for one import
// declaration. It shares astnode.RawExpr's shape (a stable source
// position) since the merger treats it the same way: an opaque handle
// it clones and repositions but never parses.
type RawImportDecl = astnode.RawExpr

// ManagedImport is one tool-managed import declaration, decoded from
// its trailing "plasmic-import:" comment.
type ManagedImport struct {
	// ID and Type are the comment's capture groups. Type may be empty.
	ID, Type string

	Specifiers []ImportSpecifier

	// Raw is the underlying import declaration in the external AST.
	Raw RawImportDecl
}

// ImportSection is one file's import declarations, already partitioned
// into tool-managed entries and everything else.
type ImportSection struct {
	Managed   []ManagedImport
	Unmanaged []RawImportDecl
}

var managedCommentPattern = regexp.MustCompile(`plasmic-import:\s+([\w-]+)(?:/(component|css|render|globalVariant|projectcss|defaultcss))?`)

// ParseManagedComment decodes a trailing line-comment into the id and
// (possibly empty) type of a tool-managed import, or reports ok=false
// if trailingComment does not match the expected shape.
func ParseManagedComment(trailingComment string) (id, typ string, ok bool) {
	m := managedCommentPattern.FindStringSubmatch(trailingComment)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// Order defines the total order over managed imports: primarily by id
// (ascending lexical), secondarily by type (ascending lexical, with an
// absent type sorting before any present type). It returns a negative
// number, zero, or a positive number as a < b, a == b, or a > b.
func Order(a, b ManagedImport) int {
	if a.ID != b.ID {
		if a.ID < b.ID {
			return -1
		}
		return 1
	}
	if a.Type == b.Type {
		return 0
	}
	if a.Type == "" {
		return -1
	}
	if b.Type == "" {
		return 1
	}
	if a.Type < b.Type {
		return -1
	}
	return 1
}

// MergeSpecifiers unions b's specifiers into a copy of a: a default or
// named specifier already present in a (by local name, or by
// local+imported pair, respectively) is not duplicated; namespace
// specifiers are always appended, since the tool never generates them.
func MergeSpecifiers(a, b ManagedImport) ManagedImport {
	merged := a
	merged.Specifiers = append([]ImportSpecifier(nil), a.Specifiers...)

	for _, s := range b.Specifiers {
		switch s.Kind {
		case SpecifierDefault:
			if !hasDefault(merged.Specifiers, s.Local) {
				merged.Specifiers = append(merged.Specifiers, s)
			}
		case SpecifierNamed:
			if !hasNamed(merged.Specifiers, s.Local, s.Imported) {
				merged.Specifiers = append(merged.Specifiers, s)
			}
		case SpecifierNamespace:
			merged.Specifiers = append(merged.Specifiers, s)
		default:
			panic("importmerge: unhandled SpecifierKind")
		}
	}
	return merged
}

func hasDefault(specifiers []ImportSpecifier, local string) bool {
	for _, s := range specifiers {
		if s.Kind == SpecifierDefault && s.Local == local {
			return true
		}
	}
	return false
}

func hasNamed(specifiers []ImportSpecifier, local, imported string) bool {
	for _, s := range specifiers {
		if s.Kind == SpecifierNamed && s.Local == local && s.Imported == imported {
			return true
		}
	}
	return false
}

// Merge implements the §4.6 algorithm: concatenate the edited and new
// files' managed imports, stabilize under Order, then merge adjacent
// entries that compare equal. The edited file's unmanaged imports pass
// through unchanged; only the tool-managed entries are ever touched.
func Merge(newFile, editedFile ImportSection) (ImportSection, error) {
	combined := make([]ManagedImport, 0, len(editedFile.Managed)+len(newFile.Managed))
	combined = append(combined, editedFile.Managed...)
	combined = append(combined, newFile.Managed...)

	sort.SliceStable(combined, func(i, j int) bool {
		return Order(combined[i], combined[j]) < 0
	})

	merged := make([]ManagedImport, 0, len(combined))
	for _, mi := range combined {
		if n := len(merged); n > 0 && Order(merged[n-1], mi) == 0 {
			merged[n-1] = MergeSpecifiers(merged[n-1], mi)
			continue
		}
		merged = append(merged, mi)
	}

	return ImportSection{Managed: merged, Unmanaged: editedFile.Unmanaged}, nil
}

// InsertionAnchor returns the import declaration merged managed imports
// should be spliced back in after: the edited file's first managed
// import if it has any, falling back to its first import overall. A
// nil result means insert at the very start of the file.
func InsertionAnchor(editedFile ImportSection) RawImportDecl {
	if anchor := firstByPos(rawsOf(editedFile.Managed)); anchor != nil {
		return anchor
	}
	return firstByPos(editedFile.Unmanaged)
}

func rawsOf(managed []ManagedImport) []RawImportDecl {
	raws := make([]RawImportDecl, len(managed))
	for i, m := range managed {
		raws[i] = m.Raw
	}
	return raws
}

func firstByPos(raws []RawImportDecl) RawImportDecl {
	var first RawImportDecl
	for _, r := range raws {
		if r == nil {
			continue
		}
		if first == nil || r.Pos() < first.Pos() {
			first = r
		}
	}
	return first
}
