package release

import (
	"fmt"
	"os"
	"strings"

	"github.com/itminedu/devflow/branch"
	"github.com/itminedu/devflow/version"
)

// Mode selects the build flavor of a run.
type Mode string

// Available build modes.
const (
	// ModeRelease produces permanent tags and a reviewed changelog; the
	// clone is kept for inspection and pushing.
	ModeRelease Mode = "release"

	// ModeSnapshot produces disposable snapshot artifacts; the changelog
	// entry is rewritten non-interactively.
	ModeSnapshot Mode = "snapshot"
)

// BuildModeEnv is the environment variable consulted for the default
// build mode when the CLI mode argument is omitted.
const BuildModeEnv = "DEVFLOW_BUILD_MODE"

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeRelease, ModeSnapshot:
		return Mode(s), nil
	}
	return "", fmt.Errorf("%w: mode must be one of: %s, %s",
		ErrInvalidMode, ModeRelease, ModeSnapshot)
}

// ModeFromEnv returns the mode named by BuildModeEnv, or empty.
func ModeFromEnv() string {
	return os.Getenv(BuildModeEnv)
}

// Plan captures everything a run derives up front: the branch and its
// type, the debian packaging branch, versions and tag names, and the
// build mode. It is constructed once per run and treated as immutable
// configuration afterwards, except for recording tags as they get
// created.
type Plan struct {
	Mode         Mode
	Branch       string      // Source branch name
	BranchType   branch.Type // Classified branch type
	DebianBranch string      // Packaging branch derived from the source branch

	Source        version.Source // Derived source version state
	SourceVersion string         // Rendered source version
	DebianVersion string         // Debian package version (with revision)

	// Tag names. The debian tag carries the source version, not the
	// debian version; published tags have always been named that way.
	SourceTag   string // <sourceVersion>, on the pre-merge source commit
	UpstreamTag string // upstream/<sourceVersion>, same commit
	DebianTag   string // debian/<sourceVersion>, on the packaging commit

	createdTags []string
}

// NewPlan builds the release plan for a run. Fails when the branch name
// cannot be classified.
func NewPlan(mode Mode, branchName string, src version.Source) (*Plan, error) {
	typ, err := branch.Classify(branchName)
	if err != nil {
		return nil, err
	}
	debBranch, err := branch.DebianBranch(branchName)
	if err != nil {
		return nil, err
	}

	srcVersion := src.String()
	return &Plan{
		Mode:          mode,
		Branch:        branchName,
		BranchType:    typ,
		DebianBranch:  debBranch,
		Source:        src,
		SourceVersion: srcVersion,
		DebianVersion: version.DebianPackage(srcVersion),
		SourceTag:     srcVersion,
		UpstreamTag:   "upstream/" + srcVersion,
		DebianTag:     "debian/" + srcVersion,
	}, nil
}

// RecordTag notes that a planned tag has been created.
func (p *Plan) RecordTag(name string) {
	p.createdTags = append(p.createdTags, name)
}

// CreatedTags returns the tags created so far, in creation order.
func (p *Plan) CreatedTags() []string {
	return append([]string(nil), p.createdTags...)
}

// PushHint renders the push command covering the run's durable refs for
// the given remote.
func (p *Plan) PushHint(remote string) string {
	objects := []string{p.DebianBranch, p.SourceTag, p.DebianTag}
	return fmt.Sprintf("git push %s %s", remote, strings.Join(objects, " "))
}
