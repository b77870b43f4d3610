// Package importmerge reconciles the import declarations the design
// tool manages (those carrying a trailing "plasmic-import:" comment)
// between a component's new and edited versions, while leaving every
// other import declaration in the edited file untouched.
//
// Recognition of a managed import is a single regular expression over
// its trailing comment text; merging two managed imports with the same
// id and type unions their specifier lists without duplicating a
// specifier either side already has. The actual source-text rendering
// of the merged result is left to the external pretty-printer consumed
// by the file assembler — this package only produces the structured
// result to hand it.
package importmerge
