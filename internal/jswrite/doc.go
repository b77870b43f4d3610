// Package jswrite is a deterministic, in-repo stand-in for the
// external JS/TSX parser and pretty-printer the merge engine is
// specified against as Non-goal collaborators.
//
// It understands a small, deliberately simplified JSX-like notation —
// imports, a single top-level managed markup expression optionally
// guarded by a visibility call, elements with managed class/props
// attributes, and a literal marker-bounded tail region — just enough to
// let this module's own tests, the plasmerge CLI, and the MCP server
// drive assembler.Assemble and merge.MergeFiles end-to-end without a
// real TypeScript toolchain. It is not a JS parser: arbitrary
// JavaScript expressions, full JSX (fragments, spreads of computed
// member expressions, etc.), and TypeScript syntax are out of scope.
// merge.MergeFiles accepts any other Parser, PrettyPrinter, and
// Formatter in its place.
package jswrite
