// Package childmerge interleaves a tag-or-component node's children
// across the new, edited, and base versions.
//
// MergeChildren builds the merged list positionally from the new
// version's children, then walks the edited version's children in
// order, inserting or skipping text, string-literal, and opaque
// developer content relative to its original neighbor. Everything else
// (tag-or-component, arg, and cond-str-call children) flows through
// recursive serialization of the new version's matching child instead
// of being handled here; Resolve performs that final pass once the
// node serializer supplies a way to recurse.
package childmerge
