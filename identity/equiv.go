package identity

import (
	"github.com/google/uuid"

	"github.com/plasmerge/plasmerge/plasmergeerrors"
)

// ByUUID builds an Equiv for comparing nameInId values between two
// versions, per "A.nameInId == B.nameInId OR A.getUuid(A.nameInId) ==
// B.getUuid(B.nameInId)". aLookup and bLookup are typically bound to
// version.CodeVersion.GetUUID on each side. Lookup failures are treated
// as non-matches; use EquivOrErr when a failed lookup for an otherwise
// unequal nameInId pair must surface as an invariant violation instead.
func ByUUID(aLookup, bLookup func(nameInID string) (uuid.UUID, bool)) Equiv {
	return func(a, b string) bool {
		if a == b {
			return true
		}
		aID, aOK := aLookup(a)
		bID, bOK := bLookup(b)
		return aOK && bOK && aID == bID
	}
}

// EquivOrErr wraps ByUUID's comparison but returns a
// *plasmergeerrors.IdentityError when a and b differ as strings yet one
// side's uuid lookup misses entirely — per the "uuid lookup fails for an
// equiv check where both sides claim the same nameInId" invariant,
// since a consistent version must register a uuid for every nameInId it
// serializes.
func EquivOrErr(side string, aLookup, bLookup func(nameInID string) (uuid.UUID, bool)) func(a, b string) (bool, error) {
	return func(a, b string) (bool, error) {
		if a == b {
			return true, nil
		}
		aID, aOK := aLookup(a)
		bID, bOK := bLookup(b)
		if !aOK {
			return false, &plasmergeerrors.IdentityError{NameInID: a, Side: side}
		}
		if !bOK {
			return false, &plasmergeerrors.IdentityError{NameInID: b, Side: side}
		}
		return aID == bID, nil
	}
}
