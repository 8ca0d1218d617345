// Package git provides the git operations the packaging workflow needs:
// repository validation, cloning, branch and merge operations, tagging,
// staging, signed commits, describe-based version state, and remotes.
//
// Core types:
//   - Context: Git repository handle executing git through a CommandRunner
//   - CommandRunner: Interface for command execution (with a mock for testing)
//
// Example usage:
//
//	repo, err := git.NewContext("/path/to/repo")
//	clone, err := repo.Clone("/tmp/df-repo-x", "develop")
//	err = clone.Merge("develop")
package git
