package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/digest-dev/digestctl/internal/config"
)

// setupTestEnv points the package globals at temp directories and
// returns the projects root and vault path.
func setupTestEnv(t *testing.T) (string, string) {
	t.Helper()
	projects := t.TempDir()
	vault := t.TempDir()
	appConfig = &config.Config{
		ProjectsRoot:    projects,
		VaultPath:       vault,
		DailyNoteFormat: "{year}-{month}-{day}",
		SourceFilename:  "LOG.md",
		DataDir:         t.TempDir(),
		History:         false,
	}
	jsonOutput = false
	vaultOverride = ""
	return projects, vault
}

func writeTestLog(t *testing.T, projects, project, content string) {
	t.Helper()
	dir := filepath.Join(projects, project)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "LOG.md"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}
