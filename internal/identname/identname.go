// Package identname provides case-folding helpers for comparing and
// displaying the stable nameInId tokens the design tool embeds into
// helper calls (rh.clsRoot, rh.propsRoot, ...).
//
// nameInId tokens are case-sensitive identifiers, but collision and
// rename warnings read far better when normalized for a human: "Root2"
// and "root2" should be flagged as a likely-unintentional near-collision
// even though the merge engine itself treats them as distinct.
package identname

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und)

// Fold returns a case-folded form of a nameInId token suitable for
// case-insensitive comparison in warnings.
func Fold(nameInID string) string {
	return cases.Fold().String(nameInID)
}

// LikelyCollision reports whether two distinct nameInId tokens differ
// only by case, the common source of an accidental rename collision.
func LikelyCollision(a, b string) bool {
	if a == b {
		return false
	}
	return Fold(a) == Fold(b)
}

// Display returns a title-cased, human-friendly rendering of a nameInId
// token for inclusion in merge.Report messages.
func Display(nameInID string) string {
	if nameInID == "" {
		return nameInID
	}
	return titleCaser.String(nameInID)
}
