// Package identity implements the cross-version node matcher that the
// child-list merge and node-serialization stages use to pair up
// candidate nodes by structural identity rather than list position.
//
// The matcher itself (FindMatch) is variant-agnostic: it walks a
// candidate list from a starting cursor looking for the best match to a
// probe node, where "best" means a perfect match (same kind and content)
// beats a type match (same kind, different content) beats no match at
// all. What counts as a content match for tag-or-component nodes is
// injected as an Equiv function, since that comparison needs a
// cross-version uuid lookup the matcher itself has no business knowing
// about.
package identity
