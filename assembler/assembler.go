package assembler

import (
	"fmt"
	"strings"

	"github.com/plasmerge/plasmerge/astnode"
	"github.com/plasmerge/plasmerge/importmerge"
	"github.com/plasmerge/plasmerge/plasmergeerrors"
)

// Markers names the literal bracketing comments that delimit the
// verbatim region copied character-for-character from the new file.
type Markers struct {
	Start, End string
}

// DefaultMarkers is the pair of comments every recognized file uses:
// "plasmic-managed-start" and "plasmic-managed-end".
var DefaultMarkers = Markers{Start: "plasmic-managed-start", End: "plasmic-managed-end"}

// FileRoot is the external parser's opaque handle to one entire parsed
// source file. Every method returns an independent clone; no input
// FileRoot is ever mutated.
type FileRoot interface {
	// WithManagedMarkup returns a clone with the file's managed markup
	// expression (the one introduced by a leading
	// "plasmic-managed-jsx/<rev>" comment) replaced by markup, and that
	// comment's revision number updated to newRevision.
	WithManagedMarkup(markup astnode.RawExpr, newRevision int) FileRoot

	// WithImports returns a clone with the file's tool-managed import
	// declarations replaced by merged, inserted immediately after
	// anchor (or at the start of the file if anchor is nil).
	WithImports(merged importmerge.ImportSection, anchor importmerge.RawImportDecl) FileRoot
}

// PrettyPrinter renders a FileRoot back to source text, preserving the
// source lines of everything the assembler did not touch.
type PrettyPrinter interface {
	Print(root FileRoot) (string, error)
}

// Formatter runs an external code formatter (e.g. a Prettier-equivalent)
// over assembled source text. A nil Formatter passed to Assemble means
// skip this step and return the pretty-printer's output unformatted.
type Formatter interface {
	Format(source string) (string, error)
}

// Parser turns source text into a ParsedFile. It is the counterpart to
// PrettyPrinter and, like it, is a Non-goal collaborator: this module
// never parses or prints source text itself.
type Parser interface {
	Parse(source string) (ParsedFile, error)
}

// ParsedFile is everything the assembler (and the rest of the merge
// engine) needs from one parsed source file beyond its classified
// markup tree.
type ParsedFile struct {
	// Root is the whole-file AST handle.
	Root FileRoot

	// Imports is this file's import section, already partitioned into
	// tool-managed and unmanaged declarations.
	Imports importmerge.ImportSection

	// Revision is the number carried by this file's
	// "plasmic-managed-jsx/<rev>" comment.
	Revision int

	// Helper is the managed-call helper-object name discovered while
	// parsing this file (e.g. "rh").
	Helper string

	// Text is this file's full, unmodified source text. Assemble reads
	// it only to locate the marker-bounded verbatim region; it is never
	// reparsed.
	Text string
}

// Assemble implements the file-assembly algorithm: substitute
// mergedMarkup into a clone of edited's file, reconcile imports against
// newFile's, render to text, splice in newFile's verbatim managed
// region, and format. markers identifies the bracketing comments that
// delimit that region; callers with no reason to deviate should pass
// DefaultMarkers.
//
// Assemble returns a *plasmergeerrors.MissingMarkerError if newFile.Text
// lacks either marker: per the error taxonomy, an absent managed region
// in the new file is fatal for this component, not a silent no-op.
func Assemble(edited, newFile ParsedFile, mergedMarkup astnode.RawExpr, pp PrettyPrinter, formatter Formatter, markers Markers) (string, error) {
	root := edited.Root.WithManagedMarkup(mergedMarkup, newFile.Revision)

	mergedImports, err := importmerge.Merge(newFile.Imports, edited.Imports)
	if err != nil {
		return "", fmt.Errorf("assembler: merging imports: %w", err)
	}
	anchor := importmerge.InsertionAnchor(edited.Imports)
	root = root.WithImports(mergedImports, anchor)

	rendered, err := pp.Print(root)
	if err != nil {
		return "", fmt.Errorf("assembler: printing assembled file: %w", err)
	}

	newRegion, ok := extractRegion(newFile.Text, markers)
	if !ok {
		return "", &plasmergeerrors.MissingMarkerError{Marker: missingMarkerName(newFile.Text, markers)}
	}
	spliced, ok := replaceRegion(rendered, markers, newRegion)
	if !ok {
		return "", &plasmergeerrors.MissingMarkerError{Marker: missingMarkerName(rendered, markers)}
	}

	if formatter == nil {
		return spliced, nil
	}
	formatted, err := formatter.Format(spliced)
	if err != nil {
		return "", fmt.Errorf("assembler: formatting assembled file: %w", err)
	}
	return formatted, nil
}

// extractRegion returns the character-exact substring of text bounded by
// markers.Start's first occurrence through the end of markers.End's
// first occurrence after it, inclusive of both marker comments.
func extractRegion(text string, markers Markers) (string, bool) {
	start := strings.Index(text, markers.Start)
	if start < 0 {
		return "", false
	}
	endMarkerIdx := strings.Index(text[start:], markers.End)
	if endMarkerIdx < 0 {
		return "", false
	}
	end := start + endMarkerIdx + len(markers.End)
	return text[start:end], true
}

// replaceRegion substitutes dest's marker-bounded region with region,
// returning the spliced text and whether dest had a region to replace.
func replaceRegion(dest string, markers Markers, region string) (string, bool) {
	start := strings.Index(dest, markers.Start)
	if start < 0 {
		return dest, false
	}
	endMarkerIdx := strings.Index(dest[start:], markers.End)
	if endMarkerIdx < 0 {
		return dest, false
	}
	end := start + endMarkerIdx + len(markers.End)
	return dest[:start] + region + dest[end:], true
}

func missingMarkerName(text string, markers Markers) string {
	if !strings.Contains(text, markers.Start) {
		return markers.Start
	}
	return markers.End
}
