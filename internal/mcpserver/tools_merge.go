package mcpserver

import (
	"context"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/plasmerge/plasmerge/assembler"
	"github.com/plasmerge/plasmerge/internal/jswrite"
	"github.com/plasmerge/plasmerge/merge"
)

type mergeComponentInput struct {
	Base    string            `json:"base,omitempty"     jsonschema:"Last-synced generated source for this component; omit for a brand-new component"`
	Edited  string            `json:"edited"             jsonschema:"The developer's current edited source"`
	New     string            `json:"new"                jsonschema:"The freshly regenerated source to merge in"`
	Helper  string            `json:"helper,omitempty"   jsonschema:"Override the managed-call helper object name discovered from the source"`
	BaseIDs map[string]string `json:"base_ids,omitempty" jsonschema:"nameInId to uuid map for the base/edited version, used to track renamed entities"`
	NewIDs  map[string]string `json:"new_ids,omitempty"  jsonschema:"nameInId to uuid map for the new version, used to track renamed entities"`
}

type mergeConflictOutput struct {
	NameInID  string `json:"name_in_id"`
	Attribute string `json:"attribute"`
}

type mergeRenameOutput struct {
	UUID        string `json:"uuid"`
	OldNameInID string `json:"old_name_in_id"`
	NewNameInID string `json:"new_name_in_id"`
}

type mergeReportOutput struct {
	EmittedVerbatim int                   `json:"emitted_verbatim"`
	Merged          int                   `json:"merged"`
	Dropped         int                   `json:"dropped"`
	Conflicts       []mergeConflictOutput `json:"conflicts,omitempty"`
	Renames         []mergeRenameOutput   `json:"renames,omitempty"`
	CaseCollisions  []string              `json:"case_collisions,omitempty"`
}

type mergeComponentOutput struct {
	Skipped bool              `json:"skipped,omitempty" jsonschema:"true when the edited source had no managed markers, so nothing was merged"`
	Merged  string            `json:"merged,omitempty"`
	Report  mergeReportOutput `json:"report,omitempty"`
}

func handleMergeComponent(ctx context.Context, _ *mcp.CallToolRequest, input mergeComponentInput) (*mcp.CallToolResult, mergeComponentOutput, error) {
	newIDs, err := toUUIDMap(input.NewIDs)
	if err != nil {
		return errResult(err), mergeComponentOutput{}, nil
	}
	baseIDs, err := toUUIDMap(input.BaseIDs)
	if err != nil {
		return errResult(err), mergeComponentOutput{}, nil
	}

	componentID := uuid.New()
	batch := map[uuid.UUID]merge.ComponentInput{
		componentID: {
			EditedFile:        input.Edited,
			NewFile:           input.New,
			NewNameInIDToUUID: newIDs,
		},
	}

	var baseProvider merge.BaseProvider
	if input.Base != "" {
		skeleton := merge.ComponentSkeleton{UUID: componentID, NameInIDToUUID: baseIDs, FileContent: input.Base}
		baseProvider = func(context.Context, string, int) (*merge.ProjectSyncMetadata, error) {
			return &merge.ProjectSyncMetadata{Revision: 1, Components: []merge.ComponentSkeleton{skeleton}}, nil
		}
	}

	var report merge.Report
	opts := []merge.Option{
		merge.WithParser(jswrite.ComponentParser{}),
		merge.WithPrettyPrinter(jswrite.PrettyPrinter{}),
		merge.WithFormatter(jswrite.Formatter{}),
		merge.WithMarkers(assembler.Markers{Start: cfg.StartMarker, End: cfg.EndMarker}),
		merge.WithReportCollector(func(_ uuid.UUID, r merge.Report) { report = r }),
	}
	helper := input.Helper
	if helper == "" {
		helper = cfg.DefaultHelper
	}
	if helper != "" {
		opts = append(opts, merge.WithHelper(helper))
	}

	results, err := merge.MergeFiles(ctx, batch, "mcp", baseProvider, opts...)
	if err != nil {
		return errResult(err), mergeComponentOutput{}, nil
	}

	merged, ok := results[componentID]
	if !ok {
		return nil, mergeComponentOutput{Skipped: true}, nil
	}

	return nil, mergeComponentOutput{Merged: merged, Report: toReportOutput(report)}, nil
}

func toUUIDMap(in map[string]string) (map[string]uuid.UUID, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make(map[string]uuid.UUID, len(in))
	for nameInID, raw := range in {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, err
		}
		out[nameInID] = id
	}
	return out, nil
}

func toReportOutput(r merge.Report) mergeReportOutput {
	out := mergeReportOutput{EmittedVerbatim: r.EmittedVerbatim, Merged: r.Merged, Dropped: r.Dropped}
	if !cfg.ReportVerbose {
		return out
	}
	out.Conflicts = make([]mergeConflictOutput, 0, len(r.Conflicts))
	for _, c := range r.Conflicts {
		out.Conflicts = append(out.Conflicts, mergeConflictOutput{NameInID: c.NameInID, Attribute: c.Attribute})
	}
	out.Renames = make([]mergeRenameOutput, 0, len(r.Renames))
	for _, ren := range r.Renames {
		out.Renames = append(out.Renames, mergeRenameOutput{UUID: ren.UUID.String(), OldNameInID: ren.OldNameInID, NewNameInID: ren.NewNameInID})
	}
	out.CaseCollisions = r.CaseCollisions
	return out
}
