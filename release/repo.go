package release

import "github.com/itminedu/devflow/git"

// Repo is the git capability the workflow needs. *git.Context provides
// the real implementation via NewGitRepo; tests use in-memory fakes.
type Repo interface {
	// Path returns the working tree location.
	Path() string

	// IsClean reports whether the working tree has no uncommitted changes.
	IsClean() (bool, error)

	// CurrentBranch returns the checked-out branch name.
	CurrentBranch() (string, error)

	// RemoteURL returns the URL of a named remote.
	RemoteURL(remote string) (string, error)

	// Describe returns `git describe` output restricted to tags matching
	// the glob, with dirty detection.
	Describe(match string) (string, error)

	// Clone clones this repository into dir at branch and returns a Repo
	// for the clone.
	Clone(dir, branch string) (Repo, error)

	// CreateBranch creates a branch at startPoint.
	CreateBranch(name, startPoint string) error

	// Checkout switches to the given ref.
	Checkout(ref string) error

	// Merge merges ref into the current branch; conflicts surface as
	// git.ErrMergeConflict.
	Merge(ref string) error

	// Tag creates a tag at ref, or HEAD when ref is empty.
	Tag(name, ref string) error

	// MergedTags lists tags matching the glob that are reachable from
	// HEAD, version-sorted oldest first.
	MergedTags(pattern string) ([]string, error)

	// Stage adds files to the index.
	Stage(files ...string) error

	// StageForce adds files to the index even when ignored.
	StageForce(files ...string) error

	// CommitAllSigned commits all tracked changes with a signoff.
	CommitAllSigned(message string) error

	// GrepFiles lists working-tree files whose content matches pattern,
	// including untracked and gitignored files.
	GrepFiles(pattern string) ([]string, error)

	// AddRemote registers a remote.
	AddRemote(name, url string) error
}

// gitRepo adapts *git.Context to Repo. The only indirection is Clone,
// whose concrete return type must be re-wrapped.
type gitRepo struct {
	*git.Context
}

// NewGitRepo wraps a git context as a workflow Repo.
func NewGitRepo(c *git.Context) Repo {
	return gitRepo{c}
}

func (r gitRepo) Clone(dir, branch string) (Repo, error) {
	clone, err := r.Context.Clone(dir, branch)
	if err != nil {
		return nil, err
	}
	return gitRepo{clone}, nil
}
