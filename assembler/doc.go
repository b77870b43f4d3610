// Package assembler performs the final step of a component merge:
// folding a freshly merged markup expression back into a clone of the
// developer's edited file, reconciling the import section, and
// preserving the tool's verbatim managed region.
//
// Everything this package touches beyond the markup expression itself —
// parsing source into a FileRoot, rendering a FileRoot back to text, and
// running the project's code formatter — is delegated to collaborator
// interfaces the caller supplies. This package owns none of that; it
// only sequences the substitutions in the order the file format
// requires them.
package assembler
