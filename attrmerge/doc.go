// Package attrmerge reconciles the attribute list of a paired
// tag-or-component node across the new, edited, and base versions of a
// component.
//
// The merge proceeds in two passes over a node's attribute lists: one
// over the new version's named attributes (to surface tool additions and
// honor developer deletions), and one over the edited version's
// attributes in their original order (to preserve developer intent and
// apply the managed-shape upgrades and event-handler renames). Both
// passes consult the same conflict table so that an "emit-both" decision
// naturally produces one attribute from each pass, in the order the
// design specifies.
package attrmerge
