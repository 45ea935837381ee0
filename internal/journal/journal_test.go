package journal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/digest-dev/digestctl/internal/accomplishment"
	"github.com/digest-dev/digestctl/internal/aggregate"
)

func testDay(t *testing.T, entries ...accomplishment.Entry) aggregate.Day {
	t.Helper()
	d := time.Date(2025, 1, 21, 0, 0, 0, 0, time.Local)
	for i := range entries {
		entries[i].Date = d
	}
	return aggregate.ForDate(entries, d)
}

func entry(project, text string) accomplishment.Entry {
	return accomplishment.Entry{Project: project, Text: text}
}

func TestRenderBody(t *testing.T) {
	day := testDay(t, entry("projA", "Shipped feature X"), entry("projB", "Fixed the build"))
	got := RenderBody(day)
	want := "### [[projA]]\n\n- Shipped feature X\n\n### [[projB]]\n\n- Fixed the build"
	if got != want {
		t.Errorf("RenderBody =\n%q\nwant\n%q", got, want)
	}
}

func TestRenderBodyEmpty(t *testing.T) {
	if got := RenderBody(testDay(t)); got != EmptyBody {
		t.Errorf("empty day rendered %q, want explicit empty marker", got)
	}
}

func TestSpliceReplacesRegion(t *testing.T) {
	existing := "above\n\n" + BeginMarker + "\nold body\n" + EndMarker + "\n\nbelow\n"
	got := Splice(existing, "new body")
	if !strings.HasPrefix(got, "above\n\n") || !strings.HasSuffix(got, "\n\nbelow\n") {
		t.Errorf("content outside region not preserved:\n%s", got)
	}
	if strings.Contains(got, "old body") {
		t.Error("old region body survived splice")
	}
	if !strings.Contains(got, "new body") {
		t.Error("new region body missing")
	}
}

func TestSpliceAppendsWhenNoMarkers(t *testing.T) {
	existing := "# My Note\n\nhand-written paragraph\n"
	got := Splice(existing, "body")
	if !strings.HasPrefix(got, existing) {
		t.Errorf("existing content not preserved at top:\n%s", got)
	}
	if !strings.Contains(got, BeginMarker) || !strings.Contains(got, EndMarker) {
		t.Error("markers not appended")
	}
}

func TestSpliceAppendThenReplaceIdempotent(t *testing.T) {
	existing := "# My Note\n\nno markers yet"
	first := Splice(existing, "body")
	second := Splice(first, "body")
	if first != second {
		t.Errorf("splice not idempotent:\n--- first\n%s\n--- second\n%s", first, second)
	}
}

func TestSpliceFirstMarkerPairWins(t *testing.T) {
	existing := BeginMarker + "\nfirst\n" + EndMarker + "\n\nmiddle\n\n" +
		BeginMarker + "\nsecond\n" + EndMarker + "\n"
	got := Splice(existing, "updated")
	if !strings.Contains(got, "second") {
		t.Error("later marker pair must be preserved as ordinary content")
	}
	if strings.Contains(got, "\nfirst\n") {
		t.Error("first region body should have been replaced")
	}
	if got2 := Splice(got, "updated"); got2 != got {
		t.Error("repeated splice with duplicate markers not idempotent")
	}
}

func TestUpsertCreatesNote(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Daily Notes", "2025", "2025-01-21.md")
	day := testDay(t, entry("projA", "Shipped feature X"))

	res, err := Upsert(path, day)
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if !res.Created || !res.Changed {
		t.Errorf("res = %+v, want created and changed", res)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "# 2025-01-21 - Tuesday\n") {
		t.Errorf("missing date title:\n%s", content)
	}
	if !strings.Contains(content, "### [[projA]]") || !strings.Contains(content, "- Shipped feature X") {
		t.Errorf("missing rendered entries:\n%s", content)
	}
}

func TestUpsertIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.md")
	day := testDay(t, entry("projA", "Shipped feature X"))

	if _, err := Upsert(path, day); err != nil {
		t.Fatalf("first Upsert: %v", err)
	}
	first, _ := os.ReadFile(path)

	res, err := Upsert(path, day)
	if err != nil {
		t.Fatalf("second Upsert: %v", err)
	}
	second, _ := os.ReadFile(path)

	if string(first) != string(second) {
		t.Errorf("second run not byte-identical:\n--- first\n%s\n--- second\n%s", first, second)
	}
	if res.Changed {
		t.Error("second run should report unchanged content")
	}
}

func TestUpsertPreservesHumanEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.md")
	day := testDay(t, entry("projA", "Shipped feature X"))

	if _, err := Upsert(path, day); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	// Human adds content above and below the managed region.
	data, _ := os.ReadFile(path)
	edited := "Hand-written intro.\n\n" + string(data) + "\n## Meeting Notes\n\nstuff\n"
	if err := os.WriteFile(path, []byte(edited), 0644); err != nil {
		t.Fatal(err)
	}

	day2 := testDay(t, entry("projA", "Shipped feature X"), entry("projB", "New thing"))
	if _, err := Upsert(path, day2); err != nil {
		t.Fatalf("Upsert after edit: %v", err)
	}

	got, _ := os.ReadFile(path)
	content := string(got)
	if !strings.HasPrefix(content, "Hand-written intro.\n\n") {
		t.Errorf("intro lost:\n%s", content)
	}
	if !strings.HasSuffix(content, "\n## Meeting Notes\n\nstuff\n") {
		t.Errorf("trailing section lost:\n%s", content)
	}
	if !strings.Contains(content, "[[projB]]") {
		t.Error("new entries not merged")
	}
}

func TestUpsertAppendsToNoteWithoutMarkers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.md")
	original := "# 2025-01-21\n\nMy own note, no markers.\n"
	if err := os.WriteFile(path, []byte(original), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Upsert(path, testDay(t, entry("projA", "x"))); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	got, _ := os.ReadFile(path)
	if !strings.HasPrefix(string(got), original) {
		t.Errorf("existing content not preserved above appended region:\n%s", got)
	}
}

func TestUpsertEmptyDayRendersMarker(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.md")
	if _, err := Upsert(path, testDay(t)); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	got, _ := os.ReadFile(path)
	if !strings.Contains(string(got), EmptyBody) {
		t.Errorf("empty day must render the explicit marker:\n%s", got)
	}
}

func TestUpsertLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.md")
	if _, err := Upsert(path, testDay(t, entry("p", "x"))); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, de := range entries {
		if strings.HasPrefix(de.Name(), ".tmp-") {
			t.Errorf("orphaned temp file: %s", de.Name())
		}
	}
}
