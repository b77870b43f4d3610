package merge

import (
	"context"

	"github.com/google/uuid"

	"github.com/plasmerge/plasmerge/assembler"
	"github.com/plasmerge/plasmerge/astnode"
)

// ComponentInput is one component's edited and freshly generated source,
// keyed by its stable cross-project entity uuid in the caller's batch.
type ComponentInput struct {
	// EditedFile is the developer's current copy of the component,
	// including any hand-written code outside the managed region.
	EditedFile string

	// NewFile is the design tool's freshly generated copy for the
	// revision being synced to.
	NewFile string

	// NewNameInIDToUUID maps NewFile's nameInId values to their
	// cross-version entity uuids.
	NewNameInIDToUUID map[string]uuid.UUID
}

// ComponentSkeleton is the base (last-synced) state of one component,
// as recorded by the design tool at the time the developer's edited
// copy was generated.
type ComponentSkeleton struct {
	UUID           uuid.UUID
	NameInIDToUUID map[string]uuid.UUID
	FileContent    string
}

// ProjectSyncMetadata is the base metadata for every component of a
// project at a given synced revision.
type ProjectSyncMetadata struct {
	Revision   int
	Components []ComponentSkeleton
}

// BaseProvider fetches the base sync metadata for a project at a given
// revision. A component with no prior synced revision is represented by
// a nil *ProjectSyncMetadata with a nil error, not an error return.
type BaseProvider func(ctx context.Context, projectID string, revision int) (*ProjectSyncMetadata, error)

// ParsedComponent is what a Parser produces from one file's source: the
// classified markup tree the merge engine operates over, plus everything
// the file assembler needs to reassemble a final file around the merged
// result.
type ParsedComponent struct {
	assembler.ParsedFile
	// Root is the classified markup tree, as version.Build expects it.
	Root *astnode.Node
}

// Parser turns one file's source text into a ParsedComponent. Supplied
// by the caller; this module never parses source itself (Non-goal).
type Parser interface {
	Parse(source string) (ParsedComponent, error)
}
