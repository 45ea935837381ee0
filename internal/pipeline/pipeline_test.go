package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/digest-dev/digestctl/internal/journal"
)

func writeProject(t *testing.T, root, project, content string) {
	t.Helper()
	dir := filepath.Join(root, project)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "LOG.md"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func testOptions(t *testing.T, date string) Options {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		t.Fatal(err)
	}
	return Options{
		ProjectsRoot:    t.TempDir(),
		VaultPath:       t.TempDir(),
		DailyNoteFormat: "{year}-{month}-{day}",
		SourceFilename:  "LOG.md",
		Date:            d,
	}
}

func TestRunEndToEnd(t *testing.T) {
	opts := testOptions(t, "2025-01-21")
	writeProject(t, opts.ProjectsRoot, "projA", `## Recent Accomplishments

- 2025-01-21: Shipped feature X
`)

	res, err := Run(opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Sources) != 1 || len(res.Day.Entries) != 1 {
		t.Fatalf("unexpected result: %+v", res.Collection)
	}
	if !res.Note.Created {
		t.Error("note should have been created")
	}

	data, err := os.ReadFile(filepath.Join(opts.VaultPath, "2025-01-21.md"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "### [[projA]]") {
		t.Errorf("missing project subheading:\n%s", content)
	}
	if !strings.Contains(content, "- Shipped feature X") {
		t.Errorf("missing bullet:\n%s", content)
	}
}

func TestRunIdempotent(t *testing.T) {
	opts := testOptions(t, "2025-01-21")
	writeProject(t, opts.ProjectsRoot, "projA", "## Recent Accomplishments\n\n- 2025-01-21: Shipped feature X\n")
	writeProject(t, opts.ProjectsRoot, "projB", "## Accomplishments\n\n- 2025-01-21: Fixed the build\n")

	if _, err := Run(opts); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	notePath := filepath.Join(opts.VaultPath, "2025-01-21.md")
	first, _ := os.ReadFile(notePath)

	res, err := Run(opts)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	second, _ := os.ReadFile(notePath)

	if string(first) != string(second) {
		t.Errorf("second run not byte-identical:\n--- first\n%s\n--- second\n%s", first, second)
	}
	if res.Note.Changed {
		t.Error("second run should be a no-op")
	}
}

func TestRunPreservesHumanEdits(t *testing.T) {
	opts := testOptions(t, "2025-01-21")
	writeProject(t, opts.ProjectsRoot, "projA", "## Recent Accomplishments\n\n- 2025-01-21: Shipped feature X\n")

	if _, err := Run(opts); err != nil {
		t.Fatalf("Run: %v", err)
	}

	notePath := filepath.Join(opts.VaultPath, "2025-01-21.md")
	data, _ := os.ReadFile(notePath)
	edited := "Morning thoughts.\n\n" + string(data)
	if err := os.WriteFile(notePath, []byte(edited), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Run(opts); err != nil {
		t.Fatalf("Run after edit: %v", err)
	}
	got, _ := os.ReadFile(notePath)
	if !strings.HasPrefix(string(got), "Morning thoughts.\n\n") {
		t.Errorf("human edit lost:\n%s", got)
	}
}

func TestRunDedupAcrossProjects(t *testing.T) {
	opts := testOptions(t, "2025-01-21")
	// Same project display name from two directories via front matter,
	// same text: one entry must survive.
	writeProject(t, opts.ProjectsRoot, "dirA", "---\nproject: shared\n---\n\n## Recent Accomplishments\n\n- 2025-01-21: Same fact\n")
	writeProject(t, opts.ProjectsRoot, "dirB", "---\nproject: shared\n---\n\n## Recent Accomplishments\n\n- 2025-01-21: Same fact\n")

	res, err := Run(opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Day.Entries) != 1 {
		t.Errorf("got %d entries, want 1 after dedup", len(res.Day.Entries))
	}
}

func TestRunDateFiltering(t *testing.T) {
	opts := testOptions(t, "2025-01-21")
	writeProject(t, opts.ProjectsRoot, "projA", "## Recent Accomplishments\n\n- 2025-01-20: Yesterday\n- 2025-01-22: Tomorrow\n")

	res, err := Run(opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.Day.Empty() {
		t.Errorf("entries outside target date leaked in: %+v", res.Day.Entries)
	}
	data, _ := os.ReadFile(res.Note.Path)
	if !strings.Contains(string(data), journal.EmptyBody) {
		t.Errorf("empty day must render explicit marker:\n%s", data)
	}
}

func TestRunZeroProjects(t *testing.T) {
	opts := testOptions(t, "2025-01-21")
	res, err := Run(opts)
	if err != nil {
		t.Fatalf("zero projects is a valid run: %v", err)
	}
	if len(res.Sources) != 0 {
		t.Errorf("sources = %v", res.Sources)
	}
}

func TestRunMissingVaultIsConfigError(t *testing.T) {
	opts := testOptions(t, "2025-01-21")
	opts.VaultPath = filepath.Join(opts.VaultPath, "missing")
	_, err := Run(opts)
	if !errors.Is(err, ErrConfig) {
		t.Errorf("expected ErrConfig, got %v", err)
	}
}

func TestRunBadFormatAbortsBeforeWrite(t *testing.T) {
	opts := testOptions(t, "2025-01-21")
	opts.DailyNoteFormat = "{quarter}"
	writeProject(t, opts.ProjectsRoot, "projA", "## Recent Accomplishments\n\n- 2025-01-21: X\n")

	_, err := Run(opts)
	if !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
	entries, _ := os.ReadDir(opts.VaultPath)
	if len(entries) != 0 {
		t.Errorf("vault touched despite config error: %v", entries)
	}
}

func TestCollectSkippedCount(t *testing.T) {
	opts := testOptions(t, "2025-01-21")
	writeProject(t, opts.ProjectsRoot, "projA", `## Recent Accomplishments

- 2025-01-21: Counted
- no date here
- also undated
`)
	col, err := Collect(opts)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if col.Skipped != 2 {
		t.Errorf("skipped = %d, want 2", col.Skipped)
	}
}

func TestPreviewDoesNotWrite(t *testing.T) {
	opts := testOptions(t, "2025-01-21")
	writeProject(t, opts.ProjectsRoot, "projA", "## Recent Accomplishments\n\n- 2025-01-21: X\n")

	content, _, err := Preview(opts)
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if !strings.Contains(content, "### [[projA]]") {
		t.Errorf("preview content missing entries:\n%s", content)
	}
	entries, _ := os.ReadDir(opts.VaultPath)
	if len(entries) != 0 {
		t.Errorf("preview wrote to the vault: %v", entries)
	}
}
