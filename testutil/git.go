package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// SetupTestRepo creates a temporary git repository for testing.
// Returns the path to the repository.
// The repository is automatically cleaned up when the test ends.
func SetupTestRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	// Pin the initial branch name; workflow behavior depends on it.
	if err := runGit(t, dir, "init", "-b", "master"); err != nil {
		t.Fatalf("git init failed: %v", err)
	}

	// Configure git user
	if err := runGit(t, dir, "config", "user.email", "test@test.com"); err != nil {
		t.Fatalf("git config email failed: %v", err)
	}
	if err := runGit(t, dir, "config", "user.name", "Test User"); err != nil {
		t.Fatalf("git config name failed: %v", err)
	}

	// Create initial commit
	readme := filepath.Join(dir, "README.md")
	if err := os.WriteFile(readme, []byte("# Test Repository\n"), 0o644); err != nil {
		t.Fatalf("failed to create README: %v", err)
	}

	if err := runGit(t, dir, "add", "."); err != nil {
		t.Fatalf("git add failed: %v", err)
	}

	if err := runGit(t, dir, "commit", "-m", "Initial commit"); err != nil {
		t.Fatalf("git commit failed: %v", err)
	}

	return dir
}

// SetupPackagingRepo creates a repository laid out the way the release
// workflow expects: a master branch carrying devflow.conf, a gitignored
// version file slot (generated files never live in version control), a
// tag on an earlier commit, and a debian branch with an existing
// changelog entry. Returns the path to the repository.
func SetupPackagingRepo(t *testing.T) string {
	t.Helper()

	dir := SetupTestRepo(t)

	conf := "packages:\n  mypackage:\n    version_file: mypackage/version.py\n"
	CommitFile(t, dir, "devflow.conf", conf, "Add build configuration")

	CommitFile(t, dir, ".gitignore", "mypackage/version.py\n", "Ignore generated version file")

	Tag(t, dir, "1.2.0")

	CreateBranch(t, dir, "debian")
	CommitFile(t, dir, "debian/changelog", releasedChangelog, "Add debian packaging")

	// Back on master, move HEAD past the tag so derived versions never
	// collide with it.
	SwitchBranch(t, dir, "master")
	CommitFile(t, dir, "mypackage/feature.py", "new = True\n", "Add a feature")

	return dir
}

const releasedChangelog = `mypackage (1.0.0-1) unstable; urgency=low

  * Initial release.

 -- Test User <test@test.com>  Mon, 01 Jan 2024 00:00:00 +0000
`

// CreateBranch creates a new branch in the test repo.
func CreateBranch(t *testing.T, repoDir, branch string) {
	t.Helper()

	if err := runGit(t, repoDir, "checkout", "-b", branch); err != nil {
		t.Fatalf("git checkout -b %s failed: %v", branch, err)
	}
}

// SwitchBranch switches to an existing branch.
func SwitchBranch(t *testing.T, repoDir, branch string) {
	t.Helper()

	if err := runGit(t, repoDir, "checkout", branch); err != nil {
		t.Fatalf("git checkout %s failed: %v", branch, err)
	}
}

// CommitFile creates or updates a file and commits it.
func CommitFile(t *testing.T, repoDir, path, content, message string) {
	t.Helper()

	fullPath := filepath.Join(repoDir, path)

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}

	if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}

	if err := runGit(t, repoDir, "add", path); err != nil {
		t.Fatalf("git add %s failed: %v", path, err)
	}

	if err := runGit(t, repoDir, "commit", "-m", message); err != nil {
		t.Fatalf("git commit failed: %v", err)
	}
}

// Tag creates a tag at HEAD.
func Tag(t *testing.T, repoDir, tag string) {
	t.Helper()

	if err := runGit(t, repoDir, "tag", tag); err != nil {
		t.Fatalf("git tag %s failed: %v", tag, err)
	}
}

// GetCurrentBranch returns the current branch name.
func GetCurrentBranch(t *testing.T, repoDir string) string {
	t.Helper()
	return gitOutput(t, repoDir, "branch", "--show-current")
}

// GetHeadSHA returns the current HEAD SHA.
func GetHeadSHA(t *testing.T, repoDir string) string {
	t.Helper()
	return gitOutput(t, repoDir, "rev-parse", "HEAD")
}

// GetShortSHA returns the short SHA for HEAD.
func GetShortSHA(t *testing.T, repoDir string) string {
	t.Helper()
	return gitOutput(t, repoDir, "rev-parse", "--short", "HEAD")
}

// HeadFiles returns the paths recorded in the HEAD commit.
func HeadFiles(t *testing.T, repoDir string) []string {
	t.Helper()

	out := gitOutput(t, repoDir, "ls-tree", "-r", "--name-only", "HEAD")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

// GetHeadSubject returns the subject line of the HEAD commit.
func GetHeadSubject(t *testing.T, repoDir string) string {
	t.Helper()
	return gitOutput(t, repoDir, "log", "-1", "--pretty=%s")
}

// ResolveRef returns the commit SHA a ref points at.
func ResolveRef(t *testing.T, repoDir, ref string) string {
	t.Helper()
	return gitOutput(t, repoDir, "rev-parse", ref+"^{commit}")
}

// SetGitIdentity exports the author and committer identity for child git
// processes. Fresh clones made during a test have no local user config.
func SetGitIdentity(t *testing.T) {
	t.Helper()

	t.Setenv("GIT_AUTHOR_NAME", "Test User")
	t.Setenv("GIT_AUTHOR_EMAIL", "test@test.com")
	t.Setenv("GIT_COMMITTER_NAME", "Test User")
	t.Setenv("GIT_COMMITTER_EMAIL", "test@test.com")
}

// gitOutput runs a git command and returns its trimmed stdout.
func gitOutput(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir

	output, err := cmd.Output()
	if err != nil {
		t.Fatalf("git %v failed: %v", args, err)
	}

	s := string(output)
	if len(s) > 0 && s[len(s)-1] == '\n' {
		s = s[:len(s)-1]
	}
	return s
}

// runGit runs a git command in the specified directory.
func runGit(t *testing.T, dir string, args ...string) error {
	t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=Test User",
		"GIT_AUTHOR_EMAIL=test@test.com",
		"GIT_COMMITTER_NAME=Test User",
		"GIT_COMMITTER_EMAIL=test@test.com",
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("git %v output: %s", args, output)
		return err
	}

	return nil
}
