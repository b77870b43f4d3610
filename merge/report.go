package merge

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/plasmerge/plasmerge/astnode"
	"github.com/plasmerge/plasmerge/internal/identname"
	"github.com/plasmerge/plasmerge/version"
)

// ConflictSite identifies one attribute the serializer could not
// reconcile and emitted side-by-side for later human resolution.
type ConflictSite struct {
	NameInID  string
	Attribute string
}

// RenamePropagation records one nameInId rename the tool applied between
// the base/edited and new versions, and that the merge propagated into
// the developer's on* handler member references.
type RenamePropagation struct {
	UUID        uuid.UUID
	OldNameInID string
	NewNameInID string
}

// Report is a structured summary of one component's merge, the
// programmatic analogue of a conflict/change report: how much of the
// output came from each side, and what a human should look at before
// trusting it blindly.
type Report struct {
	// EmittedVerbatim counts tag-or-component nodes the new version
	// introduced that had no counterpart to merge against.
	EmittedVerbatim int
	// Merged counts tag-or-component nodes present in both the new and
	// edited versions, reconciled into one node.
	Merged int
	// Dropped counts tag-or-component nodes present in the edited
	// version that do not appear anywhere in the merged output (the
	// developer's element was deleted upstream by the design tool).
	Dropped int

	Conflicts []ConflictSite
	Renames   []RenamePropagation

	// CaseCollisions flags nameInId pairs across the new and edited
	// versions that differ only by case, the common shape of an
	// unintentional rename collision (identname.LikelyCollision).
	CaseCollisions []string
}

// buildReport walks merged (the serializer's output tree) alongside the
// new and edited versions it was built from and derives a Report purely
// from the shape of the result, without requiring any extra
// instrumentation inside the serializer itself: an "emit both" conflict
// leaves two attributes with the same name on one element, and a rename
// shows up as a uuid whose nameInId differs between the two versions.
func buildReport(merged *astnode.Node, newVer, editedVer *version.CodeVersion) Report {
	var r Report
	visited := make(map[string]bool)
	walkReport(merged, newVer, editedVer, &r, visited)

	for _, nameInID := range editedVer.NameInIDs() {
		if !visited[mergedIdentityKey(nameInID, editedVer, newVer)] {
			r.Dropped++
		}
	}

	r.Renames = renamePropagations(newVer, editedVer)
	r.CaseCollisions = caseCollisions(newVer, editedVer)
	return r
}

// caseCollisions reports every pair of distinct nameInId tokens, one from
// each version, that differ only by case: the shape identname.Fold is
// built to catch, surfaced here as a human-readable warning for
// merge.Report consumers.
func caseCollisions(newVer, editedVer *version.CodeVersion) []string {
	var warnings []string
	for _, a := range editedVer.NameInIDs() {
		for _, b := range newVer.NameInIDs() {
			if identname.LikelyCollision(a, b) {
				warnings = append(warnings, fmt.Sprintf("%s and %s differ only by case", identname.Display(a), identname.Display(b)))
			}
		}
	}
	sort.Strings(warnings)
	return warnings
}

// mergedIdentityKey returns the key walkReport records a tag-or-component
// node's presence under: its own nameInId, unless editedVer's entity has a
// uuid, in which case the merged tree will instead carry whatever nameInId
// the new version currently uses for that same uuid.
func mergedIdentityKey(nameInID string, editedVer, newVer *version.CodeVersion) string {
	id, ok := editedVer.GetUUID(nameInID)
	if !ok {
		return nameInID
	}
	if newNode, ok := newVer.FindNodeByUUID(id); ok && newNode.Element != nil {
		return newNode.Element.NameInID
	}
	return nameInID
}

func walkReport(n *astnode.Node, newVer, editedVer *version.CodeVersion, r *Report, visited map[string]bool) {
	if n == nil {
		return
	}
	switch n.Kind {
	case astnode.KindTagOrComponent:
		if n.Element == nil {
			return
		}
		nameInID := n.Element.NameInID
		visited[nameInID] = true
		if hasEditedCounterpart(nameInID, newVer, editedVer) {
			r.Merged++
		} else {
			r.EmittedVerbatim++
		}
		r.Conflicts = append(r.Conflicts, conflictsIn(n.Element)...)
		for _, c := range n.Element.Children {
			walkReport(c, newVer, editedVer, r, visited)
		}
	case astnode.KindArg:
		for _, t := range n.ArgTags {
			walkReport(t, newVer, editedVer, r, visited)
		}
	}
}

// hasEditedCounterpart mirrors nodeserial.Serializer.findPaired's pairing
// rule: a merged node's final nameInId always comes from the new
// version, so a renamed node is paired against its edited counterpart by
// uuid, not by nameInId, once the direct nameInId lookup misses.
func hasEditedCounterpart(nameInID string, newVer, editedVer *version.CodeVersion) bool {
	if _, ok := editedVer.FindByNameInID(nameInID); ok {
		return true
	}
	id, ok := newVer.GetUUID(nameInID)
	if !ok {
		return false
	}
	_, ok = editedVer.FindNodeByUUID(id)
	return ok
}

// conflictsIn detects attrmerge's DecideEmitBoth outcome structurally: it
// is the only way two attributes sharing one name ever end up on the
// same element's final attribute list.
func conflictsIn(el *astnode.JSXElement) []ConflictSite {
	seen := make(map[string]bool)
	var sites []ConflictSite
	for _, a := range el.Attrs {
		if a.IsSpread || a.Name == "" {
			continue
		}
		if seen[a.Name] {
			sites = append(sites, ConflictSite{NameInID: el.NameInID, Attribute: a.Name})
			continue
		}
		seen[a.Name] = true
	}
	return sites
}

func renamePropagations(newVer, editedVer *version.CodeVersion) []RenamePropagation {
	var renames []RenamePropagation
	for nameInID, id := range editedVer.NameInIDToUUID {
		newNameInID := findNameInIDByUUID(newVer, id)
		if newNameInID == "" || newNameInID == nameInID {
			continue
		}
		renames = append(renames, RenamePropagation{UUID: id, OldNameInID: nameInID, NewNameInID: newNameInID})
	}
	sort.Slice(renames, func(i, j int) bool { return renames[i].OldNameInID < renames[j].OldNameInID })
	return renames
}

func findNameInIDByUUID(v *version.CodeVersion, id uuid.UUID) string {
	for nameInID, candidate := range v.NameInIDToUUID {
		if candidate == id {
			return nameInID
		}
	}
	return ""
}
