// Package merge is the entry point tying identity, attrmerge, childmerge,
// visibility, nodeserial, importmerge, and assembler into one operation:
// reconciling a design tool's freshly generated component source against
// a developer's edited copy of a previous generation, for every
// component in a batch.
//
// MergeFiles processes components sequentially and deterministically.
// Parsing, pretty-printing, and formatting are delegated to a Parser,
// assembler.PrettyPrinter, and assembler.Formatter the caller supplies
// (this module's own tests use internal/jswrite as a stand-in for a real
// JS/TS toolchain); MergeFiles itself never inspects source text beyond
// checking for the managed-region markers.
package merge
