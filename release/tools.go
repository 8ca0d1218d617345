package release

import (
	"context"

	"github.com/itminedu/devflow/git"
)

// ChangelogParams parameterizes a changelog generator invocation.
type ChangelogParams struct {
	DebianBranch string // Packaging branch the entry is generated for
	NewVersion   string // New debian package version
	Since        string // Commit-ish bounding the entry ("HEAD": since last packaging commit)
}

// ChangelogTool generates or updates debian/changelog in a working tree.
type ChangelogTool interface {
	Update(ctx context.Context, dir string, p ChangelogParams) error
}

// BuildParams parameterizes a package build invocation.
type BuildParams struct {
	BuildDir       string // Where built packages land
	UpstreamBranch string // Source branch
	DebianBranch   string // Packaging branch
	UpstreamTag    string // Tag used as the upstream source reference
	DiffIgnore     string // Regexp of paths excluded from the source diff
	Sign           bool   // GPG-sign the results
	KeyID          string // Explicit signing key (optional)
}

// BuildTool builds distribution packages from a prepared working tree.
type BuildTool interface {
	Build(ctx context.Context, dir string, p BuildParams) error
}

// GitDch invokes the git-dch changelog generator.
type GitDch struct {
	Runner git.CommandRunner
}

// Update implements ChangelogTool.
func (t *GitDch) Update(ctx context.Context, dir string, p ChangelogParams) error {
	since := p.Since
	if since == "" {
		since = "HEAD"
	}
	_, err := t.Runner.Run(dir, "git-dch",
		"--debian-branch="+p.DebianBranch,
		"--git-author",
		"--ignore-regex=.*",
		"--multimaint-merge",
		"--since="+since,
		"--new-version="+p.NewVersion,
	)
	if err != nil {
		return &ToolError{Tool: "git-dch", Err: err}
	}
	return nil
}

// GitBuildpackage invokes git-buildpackage against the committed index.
type GitBuildpackage struct {
	Runner git.CommandRunner
}

// Build implements BuildTool.
func (t *GitBuildpackage) Build(ctx context.Context, dir string, p BuildParams) error {
	args := []string{
		"--git-export-dir=" + p.BuildDir,
		"--git-upstream-branch=" + p.UpstreamBranch,
		"--git-debian-branch=" + p.DebianBranch,
		"--git-export=INDEX",
		"--git-ignore-new",
		"-sa",
		"--source-option=--extend-diff-ignore=" + p.DiffIgnore,
		"--git-upstream-tag=" + p.UpstreamTag,
	}
	switch {
	case !p.Sign:
		args = append(args, "-uc", "-us")
	case p.KeyID != "":
		args = append(args, "-k"+p.KeyID)
	}

	if _, err := t.Runner.Run(dir, "git-buildpackage", args...); err != nil {
		return &ToolError{Tool: "git-buildpackage", Err: err}
	}
	return nil
}
