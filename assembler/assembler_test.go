package assembler

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plasmerge/plasmerge/astnode"
	"github.com/plasmerge/plasmerge/importmerge"
	"github.com/plasmerge/plasmerge/plasmergeerrors"
)

type fakeMarkupRaw struct {
	pos   int
	label string
}

func (f *fakeMarkupRaw) Pos() int { return f.pos }

// fakeFileRoot is a minimal stand-in for a whole parsed file: just
// enough state for fakePrettyPrinter to render deterministic text from.
type fakeFileRoot struct {
	markup   astnode.RawExpr
	revision int
	imports  importmerge.ImportSection
	body     string // everything else, including any marker region
}

func (r *fakeFileRoot) WithManagedMarkup(markup astnode.RawExpr, newRevision int) FileRoot {
	cp := *r
	cp.markup = markup
	cp.revision = newRevision
	return &cp
}

func (r *fakeFileRoot) WithImports(merged importmerge.ImportSection, anchor importmerge.RawImportDecl) FileRoot {
	cp := *r
	cp.imports = merged
	return &cp
}

// fakePrettyPrinter renders a fakeFileRoot's fields into a small
// deterministic text layout a test can make assertions against.
type fakePrettyPrinter struct{}

func (fakePrettyPrinter) Print(root FileRoot) (string, error) {
	r, ok := root.(*fakeFileRoot)
	if !ok {
		return "", fmt.Errorf("fakePrettyPrinter: unexpected FileRoot type %T", root)
	}
	importLine := "import {"
	for i, mi := range r.imports.Managed {
		if i > 0 {
			importLine += ", "
		}
		for j, s := range mi.Specifiers {
			if j > 0 {
				importLine += ", "
			}
			importLine += s.Local
		}
	}
	importLine += "} from \"m\";"

	markup := "<nil>"
	if m, ok := r.markup.(*fakeMarkupRaw); ok {
		markup = m.label
	}

	return fmt.Sprintf("%s\n// plasmic-managed-jsx/%d\nconst Root = %s;\n%s", importLine, r.revision, markup, r.body), nil
}

type recordingFormatter struct{ called bool }

func (f *recordingFormatter) Format(source string) (string, error) {
	f.called = true
	return source + "\n/* formatted */", nil
}

func withMarkers(region string) string {
	return "// plasmic-managed-start\n" + region + "\n// plasmic-managed-end"
}

func TestAssemble_SplicesNewRegionAndRevision(t *testing.T) {
	edited := ParsedFile{
		Root: &fakeFileRoot{
			markup: &fakeMarkupRaw{pos: 1, label: "<OldRoot/>"},
			body:   withMarkers("old verbatim region"),
		},
		Revision: 3,
	}
	newFile := ParsedFile{
		Revision: 4,
		Text:     "whatever\n" + withMarkers("new verbatim region") + "\nmore",
	}
	mergedMarkup := &fakeMarkupRaw{pos: 2, label: "<MergedRoot/>"}

	out, err := Assemble(edited, newFile, mergedMarkup, fakePrettyPrinter{}, nil, DefaultMarkers)
	require.NoError(t, err)

	assert.Contains(t, out, "plasmic-managed-jsx/4")
	assert.Contains(t, out, "<MergedRoot/>")
	assert.Contains(t, out, "new verbatim region")
	assert.NotContains(t, out, "old verbatim region")
}

func TestAssemble_MergesManagedImportsAcrossFiles(t *testing.T) {
	edited := ParsedFile{
		Root: &fakeFileRoot{body: withMarkers("x")},
		Imports: importmerge.ImportSection{Managed: []importmerge.ManagedImport{
			{ID: "7", Specifiers: []importmerge.ImportSpecifier{{Kind: importmerge.SpecifierNamed, Local: "A", Imported: "A"}, {Kind: importmerge.SpecifierNamed, Local: "B", Imported: "B"}}},
		}},
	}
	newFile := ParsedFile{
		Text: withMarkers("x"),
		Imports: importmerge.ImportSection{Managed: []importmerge.ManagedImport{
			{ID: "7", Specifiers: []importmerge.ImportSpecifier{{Kind: importmerge.SpecifierNamed, Local: "B", Imported: "B"}, {Kind: importmerge.SpecifierNamed, Local: "C", Imported: "C"}}},
		}},
	}

	out, err := Assemble(edited, newFile, &fakeMarkupRaw{label: "<R/>"}, fakePrettyPrinter{}, nil, DefaultMarkers)
	require.NoError(t, err)
	assert.Contains(t, out, "import {A, B, C} from \"m\";")
}

func TestAssemble_MissingMarkerInNewFileIsFatal(t *testing.T) {
	edited := ParsedFile{Root: &fakeFileRoot{body: withMarkers("x")}}
	newFile := ParsedFile{Text: "no markers here at all"}

	_, err := Assemble(edited, newFile, &fakeMarkupRaw{}, fakePrettyPrinter{}, nil, DefaultMarkers)
	require.Error(t, err)
	assert.True(t, errors.Is(err, plasmergeerrors.ErrMissingMarker))
	assert.Contains(t, err.Error(), "plasmic-managed-start")
}

func TestAssemble_MissingMarkerInRenderedOutputIsFatal(t *testing.T) {
	edited := ParsedFile{Root: &fakeFileRoot{body: "no markers on this side"}}
	newFile := ParsedFile{Text: withMarkers("new region")}

	_, err := Assemble(edited, newFile, &fakeMarkupRaw{}, fakePrettyPrinter{}, nil, DefaultMarkers)
	require.Error(t, err)
}

func TestAssemble_NilFormatterSkipsFormatting(t *testing.T) {
	edited := ParsedFile{Root: &fakeFileRoot{body: withMarkers("x")}}
	newFile := ParsedFile{Text: withMarkers("x")}

	out, err := Assemble(edited, newFile, &fakeMarkupRaw{}, fakePrettyPrinter{}, nil, DefaultMarkers)
	require.NoError(t, err)
	assert.NotContains(t, out, "/* formatted */")
}

func TestAssemble_FormatterIsAppliedWhenProvided(t *testing.T) {
	edited := ParsedFile{Root: &fakeFileRoot{body: withMarkers("x")}}
	newFile := ParsedFile{Text: withMarkers("x")}
	formatter := &recordingFormatter{}

	out, err := Assemble(edited, newFile, &fakeMarkupRaw{}, fakePrettyPrinter{}, formatter, DefaultMarkers)
	require.NoError(t, err)
	assert.True(t, formatter.called)
	assert.Contains(t, out, "/* formatted */")
}

func TestExtractRegion_NotFoundWhenStartMissing(t *testing.T) {
	_, ok := extractRegion("nothing here", DefaultMarkers)
	assert.False(t, ok)
}

func TestExtractRegion_NotFoundWhenEndMissing(t *testing.T) {
	_, ok := extractRegion("// plasmic-managed-start\nno end", DefaultMarkers)
	assert.False(t, ok)
}

func TestExtractRegion_ExactBoundedSubstring(t *testing.T) {
	text := "prefix\n" + withMarkers("body") + "\nsuffix"
	region, ok := extractRegion(text, DefaultMarkers)
	require.True(t, ok)
	assert.Equal(t, withMarkers("body"), region)
}

func TestReplaceRegion_SubstitutesBoundedSpan(t *testing.T) {
	dest := "before\n" + withMarkers("old") + "\nafter"
	out, ok := replaceRegion(dest, DefaultMarkers, withMarkers("new"))
	require.True(t, ok)
	assert.Equal(t, "before\n"+withMarkers("new")+"\nafter", out)
}

var _ FileRoot = (*fakeFileRoot)(nil)
var _ PrettyPrinter = fakePrettyPrinter{}
var _ Formatter = (*recordingFormatter)(nil)
