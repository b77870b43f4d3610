package fixturefmt

import (
	"strings"
	"testing"

	"github.com/plasmerge/plasmerge/merge"
)

const renameArchive = `-- edited --
const Root = <div {...rh.propsRoot()}>Hello<Button onClick={rh.onBtn()} {...rh.propsBtn()}/></div>;
-- new --
const Root = <div {...rh.propsRoot()}>Hello<Button {...rh.propsSubmitBtn()}/></div>;
-- expected --
const Root = <div {...rh.propsRoot()}>Hello<Button onClick={rh.onSubmitBtn()} {...rh.propsSubmitBtn()}/></div>;
`

func TestParse_ReadsAllSections(t *testing.T) {
	f, err := Parse([]byte(renameArchive))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if f.Base != "" {
		t.Errorf("Base = %q, want empty (archive has no base section)", f.Base)
	}
	if !strings.Contains(f.Edited, "onClick={rh.onBtn()}") {
		t.Errorf("Edited = %q, missing expected content", f.Edited)
	}
	if !strings.Contains(f.New, "propsSubmitBtn") {
		t.Errorf("New = %q, missing expected content", f.New)
	}
	if !strings.Contains(f.Expected, "onSubmitBtn") {
		t.Errorf("Expected = %q, missing expected content", f.Expected)
	}
}

func TestParse_RequiresEditedAndNew(t *testing.T) {
	if _, err := Parse([]byte("-- base --\nsomething\n")); err == nil {
		t.Fatal("expected an error for an archive missing edited/new")
	}
}

func TestFixture_FormatRoundTrips(t *testing.T) {
	f := &Fixture{Edited: "edited source", New: "new source", Expected: "expected source"}
	archive := f.Format()

	reparsed, err := Parse(archive)
	if err != nil {
		t.Fatalf("Parse(Format()) error = %v", err)
	}
	if reparsed.Edited != f.Edited+"\n" {
		t.Errorf("Edited round-trip = %q, want %q", reparsed.Edited, f.Edited+"\n")
	}
	if reparsed.New != f.New+"\n" {
		t.Errorf("New round-trip = %q, want %q", reparsed.New, f.New+"\n")
	}
}

func TestFixture_FormatOmitsEmptySections(t *testing.T) {
	f := &Fixture{Edited: "e", New: "n"}
	archive := string(f.Format())
	if strings.Contains(archive, "-- base --") {
		t.Error("Format() included an empty base section")
	}
	if strings.Contains(archive, "-- expected --") {
		t.Error("Format() included an empty expected section")
	}
}

func TestMarshalReport_IsDeterministic(t *testing.T) {
	report := merge.Report{
		Merged:          2,
		EmittedVerbatim: 1,
		Conflicts:       []merge.ConflictSite{{NameInID: "Root", Attribute: "className"}},
	}

	a, err := MarshalReport(report)
	if err != nil {
		t.Fatalf("MarshalReport() error = %v", err)
	}
	b, err := MarshalReport(report)
	if err != nil {
		t.Fatalf("MarshalReport() error = %v", err)
	}
	if string(a) != string(b) {
		t.Errorf("MarshalReport() not deterministic:\n%s\nvs\n%s", a, b)
	}
	if !strings.Contains(string(a), "Root.className") {
		t.Errorf("MarshalReport() = %s, missing flattened conflict", a)
	}
}

func TestDiffReport_NoDiffWhenEqual(t *testing.T) {
	report := merge.Report{Merged: 2, EmittedVerbatim: 1}
	golden, err := MarshalReport(report)
	if err != nil {
		t.Fatalf("MarshalReport() error = %v", err)
	}

	diff, err := DiffReport(report, golden)
	if err != nil {
		t.Fatalf("DiffReport() error = %v", err)
	}
	if diff != "" {
		t.Errorf("DiffReport() = %q, want empty", diff)
	}
}

func TestDiffReport_ReportsMismatchedFields(t *testing.T) {
	golden := []byte("emitted_verbatim: 1\nmerged: 5\ndropped: 0\n")
	diff, err := DiffReport(merge.Report{Merged: 2, EmittedVerbatim: 1}, golden)
	if err != nil {
		t.Fatalf("DiffReport() error = %v", err)
	}
	if !strings.Contains(diff, "merged: got 2, want 5") {
		t.Errorf("DiffReport() = %q, want a merged-count mismatch", diff)
	}
}
