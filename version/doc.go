// Package version builds and indexes the per-version view of a
// component's classified node tree.
//
// A CodeVersion wraps one already-classified astnode.Node tree (base,
// edited, or new) with the two lookup structures the rest of the merge
// engine needs: a nameInId -> JSXElement index for direct lookups, and
// the nameInId -> uuid map the identity matcher uses to pair nodes across
// versions even when nameInId has changed between them.
package version
