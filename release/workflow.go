package release

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	nanoid "github.com/matoous/go-nanoid/v2"

	"github.com/itminedu/devflow/changelog"
	"github.com/itminedu/devflow/config"
	"github.com/itminedu/devflow/git"
	"github.com/itminedu/devflow/notify"
	"github.com/itminedu/devflow/version"
)

// State identifies how far a run has progressed. Transitions are strictly
// sequential; any failure moves the workflow to StateAborted and the
// clone is left on disk for inspection.
type State string

// Workflow states, in transition order.
const (
	StateInit             State = "init"
	StateCloned           State = "cloned"
	StateBranchCreated    State = "debian-branch-created"
	StateMerged           State = "merged"
	StateVersionComputed  State = "version-computed"
	StateChangelogUpdated State = "changelog-updated"
	StateCommitted        State = "committed"
	StateTagged           State = "tagged"
	StateBuilt            State = "built"
	StateFinalized        State = "finalized"
	StateAborted          State = "aborted"
)

// OriginalRemote is the remote name registered in the clone for the
// original repository's origin during release finalization.
const OriginalRemote = "original_origin"

// Options configures a run.
type Options struct {
	Mode       Mode
	RepoDir    string // Clone location; a disposable temp dir when empty
	BuildDir   string // Package output location; a temp dir when empty
	KeepRepo   bool   // Keep the clone after a snapshot run
	AllowDirty bool   // Skip the clean working tree check
	Dist       string // Snapshot changelog distribution (default "unstable")
	Sign       bool   // GPG-sign packages
	KeyID      string // Explicit signing key
}

// Workflow sequences one package build run.
type Workflow struct {
	repo      Repo
	cfg       *config.Config
	opts      Options
	changelog ChangelogTool
	builder   BuildTool
	editor    Editor
	notifier  notify.Notifier

	runID string
	state State
	clone Repo
}

// WorkflowOption configures collaborators, mainly for tests.
type WorkflowOption func(*Workflow)

// WithChangelogTool overrides the changelog generator.
func WithChangelogTool(t ChangelogTool) WorkflowOption {
	return func(w *Workflow) { w.changelog = t }
}

// WithBuildTool overrides the package build tool.
func WithBuildTool(t BuildTool) WorkflowOption {
	return func(w *Workflow) { w.builder = t }
}

// WithEditor overrides the interactive changelog editor.
func WithEditor(e Editor) WorkflowOption {
	return func(w *Workflow) { w.editor = e }
}

// WithNotifier overrides progress reporting.
func WithNotifier(n notify.Notifier) WorkflowOption {
	return func(w *Workflow) { w.notifier = n }
}

// NewWorkflow creates a workflow over the original repository. Default
// collaborators shell out to git-dch, git-buildpackage, and $EDITOR, and
// report progress on stdout.
func NewWorkflow(repo Repo, cfg *config.Config, opts Options, wopts ...WorkflowOption) *Workflow {
	if opts.Dist == "" {
		opts.Dist = "unstable"
	}

	runner := git.NewExecRunner()
	w := &Workflow{
		repo:      repo,
		cfg:       cfg,
		opts:      opts,
		changelog: &GitDch{Runner: runner},
		builder:   &GitBuildpackage{Runner: runner},
		editor:    &ExecEditor{},
		notifier:  notify.NewConsoleNotifier(nil),
		runID:     newRunID(),
		state:     StateInit,
	}

	for _, opt := range wopts {
		opt(w)
	}
	return w
}

// State returns the current workflow state.
func (w *Workflow) State() State {
	return w.state
}

// Summary collects the identifiers a completed run derived.
type Summary struct {
	RunID     string
	Plan      *Plan
	RepoDir   string // Clone directory (may be removed in snapshot mode)
	BuildDir  string // Where built packages were placed
	CloneKept bool
	PushHints []string // Push commands covering the new refs (release mode)
}

// Run executes the workflow to completion. On any failure the state
// machine moves to StateAborted and the clone directory is left on disk;
// git mutations already applied (branches, tags, commits) are not rolled
// back.
func (w *Workflow) Run(ctx context.Context) (*Summary, error) {
	summary, err := w.run(ctx)
	if err != nil {
		failedAt := w.state
		w.state = StateAborted
		w.notifyEvent(ctx, notify.Failure(w.runID, string(failedAt), err.Error()))
		return nil, err
	}
	return summary, nil
}

func (w *Workflow) run(ctx context.Context) (*Summary, error) {
	// Init -> Cloned. The original repository must be clean unless the
	// caller explicitly allows a dirty tree.
	clean, err := w.repo.IsClean()
	if err != nil {
		return nil, err
	}
	if !clean && !w.opts.AllowDirty {
		return nil, fmt.Errorf("repository %s is dirty: %w", w.repo.Path(), git.ErrGitDirty)
	}

	w.step(ctx, "plan",
		"Will build the following packages:\n  "+strings.Join(w.cfg.Names(), "\n  "))

	branchName, err := w.repo.CurrentBranch()
	if err != nil {
		return nil, err
	}
	src, err := version.Derive(w.repo)
	if err != nil {
		return nil, err
	}
	plan, err := NewPlan(w.opts.Mode, branchName, src)
	if err != nil {
		return nil, err
	}

	repoDir, err := ensureDir(w.opts.RepoDir, "df-repo")
	if err != nil {
		return nil, err
	}
	buildDir, err := ensureDir(w.opts.BuildDir, "df-build")
	if err != nil {
		return nil, err
	}

	clone, err := w.repo.Clone(repoDir, plan.Branch)
	if err != nil {
		return nil, err
	}
	w.clone = clone
	w.state = StateCloned
	w.step(ctx, "clone", fmt.Sprintf("Cloned repository to '%s'.", repoDir))
	w.step(ctx, "clone", fmt.Sprintf("Build directory: '%s'", buildDir))

	// Cloned -> BranchCreated. The debian branch tracks the published
	// remote branch, never local packaging state.
	originDebian := "origin/" + plan.DebianBranch
	if err := clone.CreateBranch(plan.DebianBranch, originDebian); err != nil {
		return nil, err
	}
	w.step(ctx, "branch",
		fmt.Sprintf("Created branch '%s' to track '%s'", plan.DebianBranch, originDebian))
	if err := clone.Checkout(plan.DebianBranch); err != nil {
		return nil, err
	}
	w.state = StateBranchCreated
	w.step(ctx, "branch", fmt.Sprintf("Changed to branch '%s'", plan.DebianBranch))

	// BranchCreated -> Merged. Conflicts are fatal; nothing is resolved
	// automatically.
	if err := clone.Merge(plan.Branch); err != nil {
		return nil, err
	}
	w.state = StateMerged
	w.step(ctx, "merge",
		fmt.Sprintf("Merged branch '%s' into '%s'", plan.Branch, plan.DebianBranch))

	// Merged -> VersionComputed. Version files are rewritten and the
	// source tags land on the pre-merge source commit.
	if err := w.checkVersionBump(clone, plan); err != nil {
		return nil, err
	}
	for _, vf := range w.cfg.VersionFiles() {
		if err := version.WriteFile(clone.Path(), vf, plan.Source); err != nil {
			return nil, err
		}
	}
	if err := clone.Tag(plan.SourceTag, plan.Branch); err != nil {
		return nil, err
	}
	plan.RecordTag(plan.SourceTag)
	if err := clone.Tag(plan.UpstreamTag, plan.Branch); err != nil {
		return nil, err
	}
	plan.RecordTag(plan.UpstreamTag)
	w.state = StateVersionComputed
	w.step(ctx, "version",
		fmt.Sprintf("The new debian version will be: '%s'", plan.DebianVersion))

	// VersionComputed -> ChangelogUpdated.
	err = w.changelog.Update(ctx, clone.Path(), ChangelogParams{
		DebianBranch: plan.DebianBranch,
		NewVersion:   plan.DebianVersion,
		Since:        "HEAD",
	})
	if err != nil {
		return nil, err
	}
	if plan.Mode == ModeRelease {
		if err := w.editor.Edit(ctx, filepath.Join(clone.Path(), changelog.Path)); err != nil {
			return nil, err
		}
	} else {
		if err := changelog.MarkSnapshot(clone.Path(), w.opts.Dist); err != nil {
			return nil, err
		}
	}
	if err := clone.Stage(changelog.Path); err != nil {
		return nil, err
	}
	w.state = StateChangelogUpdated
	w.step(ctx, "changelog",
		fmt.Sprintf("Updated %s for version '%s'", changelog.Path, plan.DebianVersion))

	// ChangelogUpdated -> Committed. Generated version files are usually
	// ignored; force-add everything carrying the version marker so the
	// bump is part of history.
	marked, err := clone.GrepFiles(version.VCSMarker)
	if err != nil {
		return nil, err
	}
	if len(marked) > 0 {
		if err := clone.StageForce(marked...); err != nil {
			return nil, err
		}
	}
	if err := clone.CommitAllSigned("Bump version to " + plan.DebianVersion); err != nil {
		return nil, err
	}
	w.state = StateCommitted

	// Committed -> Tagged.
	if err := clone.Tag(plan.DebianTag, ""); err != nil {
		return nil, err
	}
	plan.RecordTag(plan.DebianTag)
	w.state = StateTagged
	w.step(ctx, "tag", fmt.Sprintf("Created tag '%s'", plan.DebianTag))

	// Tagged -> Built.
	err = w.builder.Build(ctx, clone.Path(), BuildParams{
		BuildDir:       buildDir,
		UpstreamBranch: plan.Branch,
		DebianBranch:   plan.DebianBranch,
		UpstreamTag:    plan.UpstreamTag,
		DiffIgnore:     w.cfg.DiffIgnorePattern(),
		Sign:           w.opts.Sign,
		KeyID:          w.opts.KeyID,
	})
	if err != nil {
		return nil, err
	}
	w.state = StateBuilt

	// Built -> Finalized.
	summary := &Summary{
		RunID:    w.runID,
		Plan:     plan,
		RepoDir:  repoDir,
		BuildDir: buildDir,
	}
	if err := w.finalize(ctx, summary); err != nil {
		return nil, err
	}
	w.state = StateFinalized
	return summary, nil
}

// finalize applies per-mode cleanup: release keeps the clone and wires
// push targets, snapshot removes the clone unless asked otherwise.
func (w *Workflow) finalize(ctx context.Context, s *Summary) error {
	if s.Plan.Mode == ModeRelease {
		s.CloneKept = true
		originURL, err := w.repo.RemoteURL("origin")
		if err == nil {
			if err := w.clone.AddRemote(OriginalRemote, originURL); err != nil {
				return err
			}
			w.step(ctx, "finalize",
				fmt.Sprintf("Created remote '%s' for the repository '%s'", OriginalRemote, originURL))
			s.PushHints = append(s.PushHints,
				s.Plan.PushHint("origin"), s.Plan.PushHint(OriginalRemote))
		} else {
			w.notifyEvent(ctx, notify.Event{
				Type:      notify.EventStepCompleted,
				RunID:     w.runID,
				Step:      "finalize",
				Message:   "Original repository has no 'origin' remote; skipping push targets",
				Severity:  notify.SeverityWarning,
				Timestamp: time.Now(),
			})
			s.PushHints = append(s.PushHints, s.Plan.PushHint("origin"))
		}
	} else {
		s.CloneKept = w.opts.KeepRepo
		if !w.opts.KeepRepo {
			w.step(ctx, "finalize", fmt.Sprintf("Removing cloned repo '%s'.", s.RepoDir))
			if err := os.RemoveAll(s.RepoDir); err != nil {
				return fmt.Errorf("remove clone: %w", err)
			}
		}
	}

	w.notifyEvent(ctx, notify.Event{
		Type:      notify.EventSummary,
		RunID:     w.runID,
		Step:      "finalize",
		Message:   renderSummary(s),
		Severity:  notify.SeverityInfo,
		Timestamp: time.Now(),
	})
	return nil
}

// checkVersionBump enforces strictly increasing debian versions per
// packaging branch, comparing against the newest reachable debian tag.
func (w *Workflow) checkVersionBump(clone Repo, plan *Plan) error {
	tags, err := clone.MergedTags("debian/*")
	if err != nil {
		return err
	}
	if len(tags) == 0 {
		return nil // first packaged version on this branch
	}

	prevSource := strings.TrimPrefix(tags[len(tags)-1], "debian/")
	prevDebian := version.DebianPackage(prevSource)
	cmp, err := version.Compare(plan.DebianVersion, prevDebian)
	if err != nil {
		return fmt.Errorf("compare with previous version %s: %w", prevDebian, err)
	}
	if cmp <= 0 {
		return fmt.Errorf("new version %s, previous %s: %w",
			plan.DebianVersion, prevDebian, ErrVersionNotBumped)
	}
	return nil
}

func renderSummary(s *Summary) string {
	info := [][2]string{
		{"Version", s.Plan.DebianVersion},
		{"Upstream branch", s.Plan.Branch},
		{"Upstream tag", s.Plan.SourceTag},
		{"Debian branch", s.Plan.DebianBranch},
		{"Debian tag", s.Plan.DebianTag},
		{"Repository directory", s.RepoDir},
		{"Packages directory", s.BuildDir},
	}

	lines := make([]string, 0, len(info)+len(s.PushHints))
	for _, kv := range info {
		lines = append(lines, kv[0]+": "+kv[1])
	}
	for _, hint := range s.PushHints {
		lines = append(lines, hint)
	}
	return strings.Join(lines, "\n")
}

func (w *Workflow) step(ctx context.Context, step, message string) {
	w.notifyEvent(ctx, notify.Step(w.runID, step, message))
}

func (w *Workflow) notifyEvent(ctx context.Context, event notify.Event) {
	if w.notifier != nil {
		_ = w.notifier.Notify(ctx, event)
	}
}

// ensureDir resolves dir, creating a disposable temp directory with the
// given prefix when dir is empty.
func ensureDir(dir, prefix string) (string, error) {
	if dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return "", fmt.Errorf("resolve %s: %w", dir, err)
		}
		if err := os.MkdirAll(abs, 0o755); err != nil {
			return "", fmt.Errorf("create %s: %w", abs, err)
		}
		return abs, nil
	}

	id, err := nanoid.Generate("0123456789abcdefghijklmnopqrstuvwxyz", 5)
	if err != nil {
		return "", fmt.Errorf("generate dir suffix: %w", err)
	}
	d := filepath.Join(os.TempDir(), prefix+"-"+id)
	if err := os.MkdirAll(d, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", d, err)
	}
	return d, nil
}

// newRunID creates a unique run identifier.
func newRunID() string {
	suffix := nanoid.MustGenerate("0123456789abcdef", 4)
	return fmt.Sprintf("%s-autopkg-%s", time.Now().Format("2006-01-02"), suffix)
}
