package git

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// Context manages git operations for a repository working tree.
type Context struct {
	repoPath string        // Path to the working tree
	runner   CommandRunner // Command runner (defaults to ExecRunner)
}

// Option configures Context.
type Option func(*Context)

// NewContext creates a new git context for the repository.
// It validates that the path is a git repository and applies any options.
func NewContext(repoPath string, opts ...Option) (*Context, error) {
	absPath, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}

	cmd := exec.Command("git", "rev-parse", "--git-dir")
	cmd.Dir = absPath
	if err := cmd.Run(); err != nil {
		return nil, ErrNotGitRepo
	}

	g := &Context{
		repoPath: absPath,
		runner:   NewExecRunner(),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// WithRunner sets a custom command runner for git operations.
// This is primarily used for testing to inject mock command execution.
func WithRunner(runner CommandRunner) Option {
	return func(g *Context) {
		g.runner = runner
	}
}

// Path returns the path to the working tree.
func (g *Context) Path() string {
	return g.repoPath
}

// Clone clones the repository into dir checked out at branch and
// returns a context for the clone. The clone's "origin" remote points
// back at this repository.
func (g *Context) Clone(dir, branch string) (*Context, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve clone dir: %w", err)
	}
	if _, err := g.runGit("clone", "--branch", branch, g.repoPath, absDir); err != nil {
		return nil, &Error{Op: "clone", Err: err}
	}
	return &Context{repoPath: absDir, runner: g.runner}, nil
}

// Toplevel returns the absolute path of the working tree root.
func (g *Context) Toplevel() (string, error) {
	top, err := g.runGit("rev-parse", "--show-toplevel")
	if err != nil {
		return "", &Error{Op: "get toplevel", Err: err}
	}
	return top, nil
}

// CurrentBranch returns the current branch name.
func (g *Context) CurrentBranch() (string, error) {
	branch, err := g.runGit("rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", &Error{Op: "get current branch", Err: err}
	}
	return branch, nil
}

// Checkout switches to the specified ref (branch, tag, or commit).
func (g *Context) Checkout(ref string) error {
	if _, err := g.runGit("checkout", ref); err != nil {
		return &Error{Op: "checkout", Err: err}
	}
	return nil
}

// CreateBranch creates a new branch at startPoint, or at HEAD when
// startPoint is empty.
func (g *Context) CreateBranch(name, startPoint string) error {
	args := []string{"branch", name}
	if startPoint != "" {
		args = append(args, startPoint)
	}
	if _, err := g.runGit(args...); err != nil {
		if strings.Contains(err.Error(), "already exists") {
			return ErrBranchExists
		}
		return &Error{Op: "create branch", Err: err}
	}
	return nil
}

// BranchExists checks if a branch exists.
func (g *Context) BranchExists(name string) bool {
	_, err := g.runGit("rev-parse", "--verify", "refs/heads/"+name)
	return err == nil
}

// Merge merges ref into the current branch. A conflicting merge returns
// ErrMergeConflict; the working tree is left as git left it.
func (g *Context) Merge(ref string) error {
	output, err := g.runGit("merge", ref)
	if err != nil {
		if strings.Contains(output, "CONFLICT") ||
			strings.Contains(err.Error(), "CONFLICT") ||
			strings.Contains(err.Error(), "Automatic merge failed") {
			return ErrMergeConflict
		}
		return &Error{Op: "merge", Output: output, Err: err}
	}
	return nil
}

// Tag creates a lightweight tag at ref, or at HEAD when ref is empty.
func (g *Context) Tag(name, ref string) error {
	args := []string{"tag", name}
	if ref != "" {
		args = append(args, ref)
	}
	if _, err := g.runGit(args...); err != nil {
		if strings.Contains(err.Error(), "already exists") {
			return ErrTagExists
		}
		return &Error{Op: "tag", Err: err}
	}
	return nil
}

// ListTags returns tags matching the glob pattern, sorted by version
// order, oldest first.
func (g *Context) ListTags(pattern string) ([]string, error) {
	out, err := g.runGit("tag", "--list", "--sort=version:refname", pattern)
	if err != nil {
		return nil, &Error{Op: "list tags", Err: err}
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

// MergedTags returns tags matching the glob pattern that are reachable
// from HEAD, sorted by version order, oldest first.
func (g *Context) MergedTags(pattern string) ([]string, error) {
	out, err := g.runGit("tag", "--list", "--merged", "HEAD",
		"--sort=version:refname", pattern)
	if err != nil {
		return nil, &Error{Op: "list merged tags", Err: err}
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

// Describe returns `git describe` output for HEAD restricted to tags
// matching the glob, with dirty-tree detection enabled.
func (g *Context) Describe(match string) (string, error) {
	out, err := g.runGit("describe", "--tags", "--dirty", "--match", match)
	if err != nil {
		return "", &Error{Op: "describe", Err: err}
	}
	return out, nil
}

// Stage adds files to the staging area.
func (g *Context) Stage(files ...string) error {
	if len(files) == 0 {
		return nil
	}
	args := append([]string{"add", "--"}, files...)
	if _, err := g.runGit(args...); err != nil {
		return &Error{Op: "stage files", Err: err}
	}
	return nil
}

// StageForce adds files to the staging area even when they are ignored.
func (g *Context) StageForce(files ...string) error {
	if len(files) == 0 {
		return nil
	}
	args := append([]string{"add", "-f", "--"}, files...)
	if _, err := g.runGit(args...); err != nil {
		return &Error{Op: "force stage files", Err: err}
	}
	return nil
}

// CommitAllSigned commits all tracked changes with a Signed-off-by
// trailer. Returns ErrNothingToCommit if there is nothing to record.
func (g *Context) CommitAllSigned(message string) error {
	output, err := g.runGit("commit", "-s", "-a", "-m", message)
	if err != nil {
		if strings.Contains(output, "nothing to commit") ||
			strings.Contains(err.Error(), "nothing to commit") {
			return ErrNothingToCommit
		}
		return &Error{Op: "commit", Output: output, Err: err}
	}
	return nil
}

// GrepFiles returns the paths of text files in the working tree whose
// content matches pattern. Untracked and gitignored files are searched
// too: the callers' targets are generated files that version control
// never sees. A pattern with no matches returns an empty slice.
func (g *Context) GrepFiles(pattern string) ([]string, error) {
	out, err := g.runGit("grep", "-I", "-l",
		"--untracked", "--no-exclude-standard", "-e", pattern)
	if err != nil {
		// git grep exits 1 when nothing matches; anything else is a real
		// failure.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return nil, nil
		}
		return nil, &Error{Op: "grep files", Err: err}
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

// Status returns the working tree status in short format.
func (g *Context) Status() (string, error) {
	status, err := g.runGit("status", "--short")
	if err != nil {
		return "", &Error{Op: "status", Err: err}
	}
	return status, nil
}

// IsClean returns true if the working tree has no uncommitted changes.
func (g *Context) IsClean() (bool, error) {
	status, err := g.Status()
	if err != nil {
		return false, err
	}
	return status == "", nil
}

// HeadCommit returns the current HEAD commit SHA.
func (g *Context) HeadCommit() (string, error) {
	sha, err := g.runGit("rev-parse", "HEAD")
	if err != nil {
		return "", &Error{Op: "get HEAD commit", Err: err}
	}
	return sha, nil
}

// ResolveCommit returns the commit SHA a ref (branch or tag) points at.
func (g *Context) ResolveCommit(ref string) (string, error) {
	sha, err := g.runGit("rev-parse", ref+"^{commit}")
	if err != nil {
		return "", &Error{Op: "resolve commit", Err: err}
	}
	return sha, nil
}

// RemoteURL returns the URL of the specified remote.
func (g *Context) RemoteURL(remote string) (string, error) {
	url, err := g.runGit("remote", "get-url", remote)
	if err != nil {
		return "", &Error{Op: "get remote URL", Err: err}
	}
	return url, nil
}

// AddRemote registers a new remote.
func (g *Context) AddRemote(name, url string) error {
	if _, err := g.runGit("remote", "add", name, url); err != nil {
		return &Error{Op: "add remote", Err: err}
	}
	return nil
}

// Runner exposes the command runner so tool gateways can execute the
// external packaging commands in the same tree with the same seam.
func (g *Context) Runner() CommandRunner {
	return g.runner
}

// runGit executes a git command and returns stdout.
func (g *Context) runGit(args ...string) (string, error) {
	return g.runner.Run(g.repoPath, "git", args...)
}
