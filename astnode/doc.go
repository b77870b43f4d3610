// Package astnode defines the classified node tree the merge engine
// operates over.
//
// A source-to-AST parser (external to this module) yields this tree by
// inspecting the raw markup expression of a component file and tagging
// every node relevant to the merge with one of a small set of semantic
// variants: a markup element owned by the design tool, a named argument
// slot, a tool-managed conditional-string call, a string literal, raw
// text, or an opaque developer-owned expression.
//
// Every walker over the tree must switch exhaustively on Kind; unhandled
// kinds are a programmer error, not a recoverable condition.
package astnode
