// Package plasmergeerrors provides structured error types for plasmerge.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish between the fatal conditions
// a merge can hit and implement appropriate recovery or reporting.
//
// # Error Categories
//
//   - ParseError: the base, edited, or new source failed to parse
//   - MissingMarkerError: the new file lacks the managed-region markers
//   - MissingBaseMetadataError: no base metadata for the component/revision
//   - InvariantError: an upstream invariant was violated (e.g. a node has
//     neither a managed class attribute nor a managed spread)
//   - IdentityError: a uuid lookup failed for an equivalence check where
//     both sides claim the same nameInId
//
// # Usage with errors.Is
//
//	_, err := merge.MergeFiles(ctx, components, projectID, baseProvider)
//	if errors.Is(err, plasmergeerrors.ErrMissingMarker) {
//	    // the new file has no plasmic-managed-start/-end markers
//	}
package plasmergeerrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrParse indicates a source file failed to parse.
	ErrParse = errors.New("parse error")

	// ErrMissingMarker indicates the new file lacks the managed-region markers.
	ErrMissingMarker = errors.New("missing managed-region markers")

	// ErrMissingBaseMetadata indicates no base metadata was found for a component/revision.
	ErrMissingBaseMetadata = errors.New("missing base metadata")

	// ErrInvariant indicates an upstream invariant was violated.
	ErrInvariant = errors.New("invariant violation")

	// ErrIdentity indicates a uuid lookup failed during an equivalence check.
	ErrIdentity = errors.New("identity resolution error")
)

// ParseError represents a failure to parse one of the three input sources
// for a component.
type ParseError struct {
	// Version identifies which input failed: "base", "edited", or "new".
	Version string
	// Path is the file path or source identifier.
	Path string
	// Message describes the parsing failure.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Version != "" {
		msg += " in " + e.Version
	}
	if e.Path != "" {
		msg += " (" + e.Path + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error { return e.Cause }

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// MissingMarkerError represents an absent "plasmic-managed-start"/"-end"
// pair in the new file.
type MissingMarkerError struct {
	// ComponentUUID identifies the affected component.
	ComponentUUID string
	// Marker names the missing marker ("plasmic-managed-start" or "-end").
	Marker string
}

// Error returns a human-readable error message.
func (e *MissingMarkerError) Error() string {
	msg := "missing managed-region marker"
	if e.Marker != "" {
		msg += " " + e.Marker
	}
	if e.ComponentUUID != "" {
		msg += " for component " + e.ComponentUUID
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *MissingMarkerError) Is(target error) bool { return target == ErrMissingMarker }

// MissingBaseMetadataError represents an absent ComponentSkeleton for the
// requested component UUID at the stated revision.
type MissingBaseMetadataError struct {
	ComponentUUID string
	ProjectID     string
	Revision      int
}

// Error returns a human-readable error message.
func (e *MissingBaseMetadataError) Error() string {
	return fmt.Sprintf("missing base metadata for component %s in project %s at revision %d",
		e.ComponentUUID, e.ProjectID, e.Revision)
}

// Is reports whether target matches this error type.
func (e *MissingBaseMetadataError) Is(target error) bool { return target == ErrMissingBaseMetadata }

// InvariantError represents a violated upstream invariant, such as a
// tag-or-component node satisfying neither (nor both of) hasClassNameIdAttr
// and hasPropsIdSpreador.
type InvariantError struct {
	// Invariant names the violated invariant.
	Invariant string
	// NameInID is the node's stable identifier, when known.
	NameInID string
	// Message provides additional context.
	Message string
}

// Error returns a human-readable error message.
func (e *InvariantError) Error() string {
	msg := "invariant violation"
	if e.Invariant != "" {
		msg += ": " + e.Invariant
	}
	if e.NameInID != "" {
		msg += fmt.Sprintf(" (node %q)", e.NameInID)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *InvariantError) Is(target error) bool { return target == ErrInvariant }

// IdentityError represents a failed uuid lookup during an equivalence
// check where both versions claim the same nameInId.
type IdentityError struct {
	NameInID string
	Side     string // the version whose uuid lookup failed
}

// Error returns a human-readable error message.
func (e *IdentityError) Error() string {
	return fmt.Sprintf("identity resolution error: no uuid for nameInId %q in %s version", e.NameInID, e.Side)
}

// Is reports whether target matches this error type.
func (e *IdentityError) Is(target error) bool { return target == ErrIdentity }
