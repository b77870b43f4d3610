// Package plasmerge provides a three-way structural merge engine for
// machine-generated UI component source files.
//
// A design tool periodically regenerates a component's markup, styling
// hooks, and imports from a canonical model. Developers edit the generated
// file on disk to add behavior, bindings, and local markup. plasmerge
// takes the last-synced generated version (base), the developer's working
// copy (edited), and the freshly regenerated version (new), and produces a
// merged file that preserves developer edits while absorbing every
// tool-side change, without line-based conflicts.
//
// # Overview
//
// The engine is organized as a pipeline of small packages, each
// responsible for one stage of the merge:
//
//   - astnode: the classified node tree (tag-or-component, arg,
//     cond-str-call, string-lit, text, opaque)
//   - version: per-version identifier and uuid indices
//   - identity: cross-version node pairing
//   - attrmerge: per-node attribute reconciliation
//   - childmerge: per-node children reconciliation
//   - visibility: tool-managed "show" wrapper reconciliation
//   - nodeserial: orchestrates the above per node
//   - importmerge: import-section union
//   - assembler: final file assembly
//   - merge: the MergeFiles entry point tying every stage together
//
// Parsing source text into the classified tree, and pretty-printing the
// merged tree back to source, are external collaborators supplied by the
// caller; plasmerge operates purely on the typed tree.
//
// # Determinism
//
// For a fixed triple of inputs and a fixed identifier map, MergeFiles
// produces byte-identical output. The engine is single-threaded and
// purely functional over in-memory trees; no input tree is mutated.
//
// # Command-Line Interface
//
// In addition to the library packages, plasmerge provides a command-line
// interface:
//
//	# Merge a component's base/edited/new sources
//	plasmerge merge -base base.tsx -edited edited.tsx -new new.tsx -o out.tsx
//
// Install the CLI:
//
//	go install github.com/plasmerge/plasmerge/cmd/plasmerge@latest
package plasmerge

import "fmt"

var (
	// version is set via ldflags during build by GoReleaser.
	// For development builds, this will show "dev".
	version = "dev"
)

// Version returns the compiled version or "dev" if run from source.
func Version() string {
	return version
}

// UserAgent returns the User-Agent string used by CLI and MCP tooling
// layered on top of plasmerge.
func UserAgent() string {
	return fmt.Sprintf("plasmerge/%s", version)
}
