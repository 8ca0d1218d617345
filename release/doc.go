// Package release drives the automatic package build workflow.
//
// A run classifies the current branch, derives the new source and Debian
// versions into a Plan, and then walks a disposable clone through the
// fixed sequence of git operations: create the debian branch from its
// published remote counterpart, merge the source branch, update version
// files, generate a changelog entry, commit, tag, and invoke the package
// build tool. All git and external-tool access goes through narrow
// interfaces (Repo, ChangelogTool, BuildTool, Editor) so the state
// machine is testable with fakes.
//
//	repo, _ := git.NewContext(".")
//	cfg, _ := config.Load("devflow.conf")
//	wf := release.NewWorkflow(release.NewGitRepo(repo), cfg, release.Options{
//		Mode: release.ModeSnapshot,
//	})
//	summary, err := wf.Run(ctx)
package release
