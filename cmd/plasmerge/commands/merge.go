// Package commands provides CLI command handlers for plasmerge.
package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	plasmerge "github.com/plasmerge/plasmerge"
	"github.com/plasmerge/plasmerge/internal/cliutil"
	"github.com/plasmerge/plasmerge/internal/jswrite"
	"github.com/plasmerge/plasmerge/merge"
)

// Output format constants, shared with the --report flag.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// MergeFlags contains flags for the merge command.
type MergeFlags struct {
	Base    string
	Edited  string
	New     string
	Output  string
	Helper  string
	Report  string
	BaseIDs cliutil.KeyValueFlag
	NewIDs  cliutil.KeyValueFlag
	Quiet   bool
}

// SetupMergeFlags creates and configures a FlagSet for the merge command.
// Returns the FlagSet and a MergeFlags struct with bound flag variables.
func SetupMergeFlags() (*flag.FlagSet, *MergeFlags) {
	fs := flag.NewFlagSet("merge", flag.ContinueOnError)
	flags := &MergeFlags{
		BaseIDs: make(cliutil.KeyValueFlag),
		NewIDs:  make(cliutil.KeyValueFlag),
	}

	fs.StringVar(&flags.Base, "base", "", "path to the last-synced generated source (omit for a brand-new component)")
	fs.StringVar(&flags.Edited, "edited", "", "path to the developer's edited source (required)")
	fs.StringVar(&flags.New, "new", "", "path to the freshly generated source (required)")
	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Helper, "helper", "", "override the managed-call helper object name (default: discovered per file)")
	fs.StringVar(&flags.Report, "report", "", "print a merge report in the given format: text, json, or yaml")
	fs.Var(flags.BaseIDs, "base-id", "nameInId=uuid pair identifying a base/edited entity (repeatable)")
	fs.Var(flags.NewIDs, "new-id", "nameInId=uuid pair identifying a new-version entity (repeatable)")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: suppress diagnostic messages (for pipelining)")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: suppress diagnostic messages (for pipelining)")

	fs.Usage = func() {
		w := fs.Output()
		cliutil.Writef(w, "Usage: plasmerge merge -edited <file> -new <file> [flags]\n\n")
		cliutil.Writef(w, "Three-way merge a design tool's regenerated component source against a\n")
		cliutil.Writef(w, "developer's edited copy, preserving developer edits while absorbing\n")
		cliutil.Writef(w, "every tool-side change.\n\n")
		cliutil.Writef(w, "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(w, "\nExamples:\n")
		cliutil.Writef(w, "  plasmerge merge -edited Button.tsx -new Button.tsx.new -o Button.tsx\n")
		cliutil.Writef(w, "  plasmerge merge -base Button.base.tsx -edited Button.tsx -new Button.tsx.new \\\n")
		cliutil.Writef(w, "    -base-id Root=11111111-1111-1111-1111-111111111111 \\\n")
		cliutil.Writef(w, "    -new-id Root=11111111-1111-1111-1111-111111111111 -report yaml\n")
	}

	return fs, flags
}

// HandleMerge executes the merge command.
func HandleMerge(args []string) error {
	fs, flags := SetupMergeFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if flags.Edited == "" || flags.New == "" {
		fs.Usage()
		return fmt.Errorf("merge command requires -edited and -new")
	}
	if flags.Report != "" {
		if err := ValidateOutputFormat(flags.Report); err != nil {
			return err
		}
	}

	editedSrc, err := readFile(flags.Edited)
	if err != nil {
		return fmt.Errorf("reading -edited: %w", err)
	}
	newSrc, err := readFile(flags.New)
	if err != nil {
		return fmt.Errorf("reading -new: %w", err)
	}

	newIDs, err := parseIDMap(flags.NewIDs)
	if err != nil {
		return fmt.Errorf("parsing -new-id: %w", err)
	}

	componentID := uuid.New()
	input := map[uuid.UUID]merge.ComponentInput{
		componentID: {
			EditedFile:        editedSrc,
			NewFile:           newSrc,
			NewNameInIDToUUID: newIDs,
		},
	}

	baseProvider, err := fileBaseProvider(componentID, flags.Base, flags.BaseIDs)
	if err != nil {
		return err
	}

	var report merge.Report
	opts := []merge.Option{
		merge.WithParser(jswrite.ComponentParser{}),
		merge.WithPrettyPrinter(jswrite.PrettyPrinter{}),
		merge.WithFormatter(jswrite.Formatter{}),
		merge.WithReportCollector(func(_ uuid.UUID, r merge.Report) { report = r }),
	}
	if flags.Helper != "" {
		opts = append(opts, merge.WithHelper(flags.Helper))
	}
	if !flags.Quiet {
		opts = append(opts, merge.WithLogger(merge.NewSlogAdapter(nil)))
	}

	results, err := merge.MergeFiles(context.Background(), input, "cli", baseProvider, opts...)
	if err != nil {
		return fmt.Errorf("merging: %w", err)
	}

	merged, ok := results[componentID]
	if !ok {
		return fmt.Errorf("merge: %s has no managed markers; nothing to merge", flags.Edited)
	}

	if err := writeOutput(flags.Output, merged); err != nil {
		return err
	}

	if flags.Report != "" {
		if flags.Report == FormatText {
			printReportText(os.Stderr, report)
			return nil
		}
		return OutputStructured(report, flags.Report)
	}
	return nil
}

func readFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func writeOutput(path, content string) error {
	if path == "" {
		_, err := fmt.Println(content)
		return err
	}
	return os.WriteFile(path, []byte(content+"\n"), 0o644)
}

func parseIDMap(flags cliutil.KeyValueFlag) (map[string]uuid.UUID, error) {
	if len(flags) == 0 {
		return nil, nil
	}
	out := make(map[string]uuid.UUID, len(flags))
	for nameInID, raw := range flags {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%s=%s: %w", nameInID, raw, err)
		}
		out[nameInID] = id
	}
	return out, nil
}

// fileBaseProvider returns a merge.BaseProvider serving a single
// ComponentSkeleton read from basePath, or nil if basePath is empty
// (treating the component as brand new).
func fileBaseProvider(componentID uuid.UUID, basePath string, baseIDFlags cliutil.KeyValueFlag) (merge.BaseProvider, error) {
	if basePath == "" {
		return nil, nil
	}
	baseSrc, err := readFile(basePath)
	if err != nil {
		return nil, fmt.Errorf("reading -base: %w", err)
	}
	baseIDs, err := parseIDMap(baseIDFlags)
	if err != nil {
		return nil, fmt.Errorf("parsing -base-id: %w", err)
	}

	skeleton := merge.ComponentSkeleton{UUID: componentID, NameInIDToUUID: baseIDs, FileContent: baseSrc}
	return func(_ context.Context, _ string, _ int) (*merge.ProjectSyncMetadata, error) {
		return &merge.ProjectSyncMetadata{Revision: 1, Components: []merge.ComponentSkeleton{skeleton}}, nil
	}, nil
}

func printReportText(w io.Writer, r merge.Report) {
	cliutil.Writef(w, "plasmerge report (%s)\n", plasmerge.UserAgent())
	cliutil.Writef(w, "  merged verbatim:   %d\n", r.EmittedVerbatim)
	cliutil.Writef(w, "  merged:            %d\n", r.Merged)
	cliutil.Writef(w, "  dropped:           %d\n", r.Dropped)
	if len(r.Renames) > 0 {
		cliutil.Writef(w, "  renames:\n")
		for _, ren := range r.Renames {
			cliutil.Writef(w, "    %s: %s -> %s\n", ren.UUID, ren.OldNameInID, ren.NewNameInID)
		}
	}
	if len(r.Conflicts) > 0 {
		cliutil.Writef(w, "  conflicts (need manual resolution):\n")
		for _, c := range r.Conflicts {
			cliutil.Writef(w, "    %s.%s\n", c.NameInID, c.Attribute)
		}
	}
	if len(r.CaseCollisions) > 0 {
		cliutil.Writef(w, "  case collisions (check for an unintended rename):\n")
		for _, warning := range r.CaseCollisions {
			cliutil.Writef(w, "    %s\n", warning)
		}
	}
}
