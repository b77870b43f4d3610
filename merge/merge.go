package merge

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/plasmerge/plasmerge/assembler"
	"github.com/plasmerge/plasmerge/astnode"
	"github.com/plasmerge/plasmerge/nodeserial"
	"github.com/plasmerge/plasmerge/plasmergeerrors"
	"github.com/plasmerge/plasmerge/version"
)

// MergeFiles reconciles every component in componentByUUID against its
// last-synced base (fetched through baseProvider) and its freshly
// generated new version, producing the final source text for each.
//
// Components are processed in ascending order of their uuid's string
// form, not map iteration order, so a batch produces the same sequence
// of baseProvider calls and log output on every run.
//
// The edited file's embedded "plasmic-managed-jsx/<revision>" comment
// names the revision its base metadata should be fetched at; a
// component's base and edited nameInId-to-uuid mapping both come from
// that revision's ComponentSkeleton, since the edited file carries no
// mapping of its own. A nil ProjectSyncMetadata (no sync has ever
// happened for the project) means every component is brand new: base
// stays nil and the mapping is empty.
func MergeFiles(ctx context.Context, componentByUUID map[uuid.UUID]ComponentInput, projectID string, baseProvider BaseProvider, opts ...Option) (map[uuid.UUID]string, error) {
	o := resolveOptions(opts)
	if o.Parser == nil {
		return nil, fmt.Errorf("plasmerge: no Parser configured (use merge.WithParser)")
	}
	if o.PrettyPrinter == nil {
		return nil, fmt.Errorf("plasmerge: no PrettyPrinter configured (use merge.WithPrettyPrinter)")
	}

	ids := sortedUUIDs(componentByUUID)
	results := make(map[uuid.UUID]string, len(ids))

	for _, id := range ids {
		input := componentByUUID[id]

		if !hasManagedMarkers(input.EditedFile, o.Markers) {
			o.Logger.Info("skipping component with no managed markers", "component", id)
			continue
		}

		text, err := mergeComponent(ctx, id, input, projectID, baseProvider, o)
		if err != nil {
			return nil, fmt.Errorf("plasmerge: component %s: %w", id, err)
		}
		results[id] = text
		o.Logger.Info("merged component", "component", id)
	}

	return results, nil
}

func sortedUUIDs(m map[uuid.UUID]ComponentInput) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}

func hasManagedMarkers(source string, markers assembler.Markers) bool {
	return strings.Contains(source, markers.Start) && strings.Contains(source, markers.End)
}

func mergeComponent(ctx context.Context, id uuid.UUID, input ComponentInput, projectID string, baseProvider BaseProvider, o *Options) (string, error) {
	editedParsed, err := o.Parser.Parse(input.EditedFile)
	if err != nil {
		return "", wrapParseError("edited", err)
	}
	newParsed, err := o.Parser.Parse(input.NewFile)
	if err != nil {
		return "", wrapParseError("new", err)
	}

	helper := o.Helper
	if helper == "" {
		helper = newParsed.Helper
	}
	if helper == "" {
		helper = editedParsed.Helper
	}

	baseNameInIDToUUID, baseRoot, err := resolveBase(ctx, id, projectID, editedParsed.Revision, baseProvider, o)
	if err != nil {
		return "", err
	}

	newVer := version.Build(newParsed.Root, input.NewNameInIDToUUID, helper)
	editedVer := version.Build(editedParsed.Root, baseNameInIDToUUID, helper)
	var baseVer *version.CodeVersion
	if baseRoot != nil {
		baseVer = version.Build(baseRoot, baseNameInIDToUUID, helper)
	}

	if err := assertInvariants("new", newVer); err != nil {
		return "", err
	}
	if err := assertInvariants("edited", editedVer); err != nil {
		return "", err
	}
	if err := assertInvariants("base", baseVer); err != nil {
		return "", err
	}

	serializer := &nodeserial.Serializer{New: newVer, Edited: editedVer, Base: baseVer, Helper: helper}
	mergedNode, err := serializer.SerializeNode(newVer.Root)
	if err != nil {
		return "", err
	}
	if mergedNode == nil {
		return "", &plasmergeerrors.InvariantError{
			Invariant: "root markup must not be deleted",
			Message:   "the edited file's root element was resolved as a deletion",
		}
	}

	o.reportSink(id, buildReport(mergedNode, newVer, editedVer))

	return assembler.Assemble(editedParsed.ParsedFile, newParsed.ParsedFile, mergedNode.Raw, o.PrettyPrinter, o.Formatter, o.Markers)
}

func assertInvariants(name string, v *version.CodeVersion) error {
	if v == nil {
		return nil
	}
	if err := v.AssertInvariants(); err != nil {
		return fmt.Errorf("%s version: %w", name, err)
	}
	return nil
}

// resolveBase fetches the project's sync metadata at revision and picks
// out id's skeleton. A nil metadata or a baseProvider of nil both mean
// "no prior sync": the component is brand new and carries no base
// mapping. A non-nil metadata missing id's skeleton is fatal, since the
// caller asserted this component has an edited file to reconcile
// against something.
func resolveBase(ctx context.Context, id uuid.UUID, projectID string, revision int, baseProvider BaseProvider, o *Options) (map[string]uuid.UUID, *astnode.Node, error) {
	if baseProvider == nil {
		return nil, nil, nil
	}
	meta, err := baseProvider(ctx, projectID, revision)
	if err != nil {
		return nil, nil, err
	}
	if meta == nil {
		return nil, nil, nil
	}

	for _, skel := range meta.Components {
		if skel.UUID != id {
			continue
		}
		baseParsed, err := o.Parser.Parse(skel.FileContent)
		if err != nil {
			return nil, nil, wrapParseError("base", err)
		}
		return skel.NameInIDToUUID, baseParsed.Root, nil
	}

	return nil, nil, &plasmergeerrors.MissingBaseMetadataError{
		ComponentUUID: id.String(),
		ProjectID:     projectID,
		Revision:      revision,
	}
}

func wrapParseError(which string, cause error) error {
	return &plasmergeerrors.ParseError{Version: which, Message: "failed to parse component source", Cause: cause}
}
