package integrationtest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/itminedu/devflow/config"
	"github.com/itminedu/devflow/git"
	"github.com/itminedu/devflow/release"
	"github.com/itminedu/devflow/testutil"
)

// setupWorkRepo builds the operator's checkout: a clone of the packaging
// fixture with the debian branch materialized locally, the way a
// developer who ran `git checkout debian` once would have it. Returns
// the fixture path and a git context for the checkout.
func setupWorkRepo(t *testing.T) (string, *git.Context) {
	t.Helper()

	testutil.SetGitIdentity(t)
	origin := testutil.SetupPackagingRepo(t)

	g, err := git.NewContext(origin)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}

	work, err := g.Clone(filepath.Join(t.TempDir(), "work"), "master")
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	if err := work.CreateBranch("debian", "origin/debian"); err != nil {
		t.Fatalf("CreateBranch debian: %v", err)
	}

	return origin, work
}

// loadConfig parses devflow.conf from the repository toplevel.
func loadConfig(t *testing.T, repoDir string) *config.Config {
	t.Helper()

	cfg, err := config.Load(filepath.Join(repoDir, config.DefaultFileName))
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	return cfg
}

// stubDchTool stands in for git-dch. It prepends a fresh UNRELEASED
// entry to debian/changelog, which is all the workflow relies on.
type stubDchTool struct {
	calls []release.ChangelogParams
}

func (s *stubDchTool) Update(ctx context.Context, dir string, p release.ChangelogParams) error {
	s.calls = append(s.calls, p)

	path := filepath.Join(dir, "debian", "changelog")
	existing, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	entry := []byte(formatEntry(p.NewVersion))
	return os.WriteFile(path, append(entry, existing...), 0o644)
}

func formatEntry(version string) string {
	return "mypackage (" + version + ") UNRELEASED; urgency=low\n\n" +
		"  * UNRELEASED\n\n" +
		" -- Test User <test@test.com>  Mon, 01 Jan 2024 00:00:00 +0000\n\n"
}

// stubBuildTool stands in for git-buildpackage and just records what it
// was asked to build.
type stubBuildTool struct {
	dirs  []string
	calls []release.BuildParams
}

func (s *stubBuildTool) Build(ctx context.Context, dir string, p release.BuildParams) error {
	s.dirs = append(s.dirs, dir)
	s.calls = append(s.calls, p)
	return nil
}

// readLines reads a file and splits it into lines.
func readLines(t *testing.T, path string) []string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile %s: %v", path, err)
	}

	var lines []string
	start := 0
	for i, c := range data {
		if c == '\n' {
			lines = append(lines, string(data[start:i]))
			start = i + 1
		}
	}
	if start < len(data) {
		lines = append(lines, string(data[start:]))
	}
	return lines
}
