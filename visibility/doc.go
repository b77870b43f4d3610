// Package visibility reconciles the tool-managed "visibility gate"
// wrapping a markup subtree: the `rh.showX() && <markup>` expression a
// node may or may not carry.
//
// Reconcile implements the 2x2 table over whether the edited clone
// currently carries the gate and whether the new version wants one:
// renaming the gate's member when both sides have it, dropping the gate
// to a literal true when only the edited side has it, wrapping the
// markup in a fresh gate when only the new side wants it, and doing
// nothing when neither does. The rename case reuses the generic
// member-rename primitive from internal/astutil, and the wrap case its
// position-based substitution to find nested markup; the capabilities
// to drop a gate to `true` (ShowGuardReplacer) and to invent a
// brand-new show call around a bare expression (ShowWrappable) are
// specific to this package.
package visibility
