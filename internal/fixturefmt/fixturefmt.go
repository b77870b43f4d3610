// Package fixturefmt bundles a merge test case's base/edited/new sources
// and its expected output into a single txtar archive, and renders
// merge.Report as deterministic YAML for golden-file comparisons.
//
// Keeping all of a case's inputs in one file (the same archive format
// cmd/go's and os/exec's test suites use for multi-file golden fixtures)
// avoids a sprawl of same-named *.base.tsx/*.edited.tsx/*.new.tsx files
// per test case.
package fixturefmt

import (
	"fmt"
	"strings"

	"go.yaml.in/yaml/v4"
	"golang.org/x/tools/txtar"

	"github.com/plasmerge/plasmerge/merge"
)

const (
	fileBase     = "base"
	fileEdited   = "edited"
	fileNew      = "new"
	fileExpected = "expected"
)

// Fixture bundles one merge test case's inputs and expected output.
type Fixture struct {
	// Base is the last-synced generated source. Empty means the
	// component is brand new.
	Base string
	// Edited is the developer's working copy.
	Edited string
	// New is the freshly regenerated source to merge in.
	New string
	// Expected is the source text the merge is expected to produce.
	// Empty when the fixture only exercises the report, not the output.
	Expected string
}

// Parse decodes a txtar-formatted archive into a Fixture. The edited and
// new files are required; base and expected are optional.
func Parse(data []byte) (*Fixture, error) {
	arc := txtar.Parse(data)
	f := &Fixture{}
	for _, file := range arc.Files {
		switch file.Name {
		case fileBase:
			f.Base = string(file.Data)
		case fileEdited:
			f.Edited = string(file.Data)
		case fileNew:
			f.New = string(file.Data)
		case fileExpected:
			f.Expected = string(file.Data)
		}
	}
	if f.Edited == "" {
		return nil, fmt.Errorf("fixturefmt: archive has no %q file", fileEdited)
	}
	if f.New == "" {
		return nil, fmt.Errorf("fixturefmt: archive has no %q file", fileNew)
	}
	return f, nil
}

// Format encodes f back into a txtar archive, omitting empty sections.
func (f *Fixture) Format() []byte {
	arc := &txtar.Archive{}
	add := func(name, content string) {
		if content == "" {
			return
		}
		arc.Files = append(arc.Files, txtar.File{Name: name, Data: []byte(ensureTrailingNewline(content))})
	}
	add(fileBase, f.Base)
	add(fileEdited, f.Edited)
	add(fileNew, f.New)
	add(fileExpected, f.Expected)
	return txtar.Format(arc)
}

func ensureTrailingNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

// reportDoc is the YAML-serializable shape of a merge.Report used for
// golden-file comparisons; conflicts and renames are flattened to plain
// strings so the golden file reads naturally.
type reportDoc struct {
	EmittedVerbatim int      `yaml:"emitted_verbatim"`
	Merged          int      `yaml:"merged"`
	Dropped         int      `yaml:"dropped"`
	Conflicts       []string `yaml:"conflicts,omitempty"`
	Renames         []string `yaml:"renames,omitempty"`
	CaseCollisions  []string `yaml:"case_collisions,omitempty"`
}

func toReportDoc(r merge.Report) reportDoc {
	doc := reportDoc{
		EmittedVerbatim: r.EmittedVerbatim,
		Merged:          r.Merged,
		Dropped:         r.Dropped,
		CaseCollisions:  r.CaseCollisions,
	}
	for _, c := range r.Conflicts {
		doc.Conflicts = append(doc.Conflicts, c.NameInID+"."+c.Attribute)
	}
	for _, ren := range r.Renames {
		doc.Renames = append(doc.Renames, ren.OldNameInID+" -> "+ren.NewNameInID)
	}
	return doc
}

// MarshalReport renders r as deterministic YAML suitable for a golden
// fixture file.
func MarshalReport(r merge.Report) ([]byte, error) {
	return yaml.Marshal(toReportDoc(r))
}

// DiffReport compares got against the YAML-encoded golden report in want.
// It returns a human-readable description of every mismatched field, or
// empty if the reports are equivalent.
func DiffReport(got merge.Report, want []byte) (string, error) {
	var wantDoc reportDoc
	if err := yaml.Unmarshal(want, &wantDoc); err != nil {
		return "", fmt.Errorf("fixturefmt: parsing golden report: %w", err)
	}
	gotDoc := toReportDoc(got)

	var diffs []string
	if gotDoc.EmittedVerbatim != wantDoc.EmittedVerbatim {
		diffs = append(diffs, fmt.Sprintf("emitted_verbatim: got %d, want %d", gotDoc.EmittedVerbatim, wantDoc.EmittedVerbatim))
	}
	if gotDoc.Merged != wantDoc.Merged {
		diffs = append(diffs, fmt.Sprintf("merged: got %d, want %d", gotDoc.Merged, wantDoc.Merged))
	}
	if gotDoc.Dropped != wantDoc.Dropped {
		diffs = append(diffs, fmt.Sprintf("dropped: got %d, want %d", gotDoc.Dropped, wantDoc.Dropped))
	}
	if d := diffStringSlices("conflicts", gotDoc.Conflicts, wantDoc.Conflicts); d != "" {
		diffs = append(diffs, d)
	}
	if d := diffStringSlices("renames", gotDoc.Renames, wantDoc.Renames); d != "" {
		diffs = append(diffs, d)
	}
	if d := diffStringSlices("case_collisions", gotDoc.CaseCollisions, wantDoc.CaseCollisions); d != "" {
		diffs = append(diffs, d)
	}
	return strings.Join(diffs, "\n"), nil
}

func diffStringSlices(field string, got, want []string) string {
	if len(got) != len(want) {
		return fmt.Sprintf("%s: got %v, want %v", field, got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			return fmt.Sprintf("%s: got %v, want %v", field, got, want)
		}
	}
	return ""
}
