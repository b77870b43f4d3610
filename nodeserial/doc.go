// Package nodeserial dispatches each node of the new version's markup
// tree to its final merged form, tying together identity, attrmerge,
// childmerge, and visibility into the per-node decision: emit the new
// node verbatim, emit nothing (developer deletion), or merge a paired
// edited node's attributes, children, and visibility wrapper around the
// new node's shape.
//
// Recursion into children is owned here, not by childmerge: childmerge
// only decides which children belong in the merged list and where;
// turning a new-version child back into its own final form is this
// package's SerializeNode, passed to childmerge.Resolve as its
// SerializeFunc.
package nodeserial
