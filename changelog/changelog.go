// Package changelog edits the debian/changelog entry produced by the
// changelog generator.
//
// A freshly generated entry carries the UNRELEASED marker both as the
// distribution label on the first line and as the summary on the third:
//
//	snf-common (1.2.0-1) UNRELEASED; urgency=low
//
//	  * UNRELEASED
//
// Snapshot builds have no interactive review step, so the marker is
// rewritten in place: the distribution becomes the requested one and the
// summary becomes a snapshot notice.
package changelog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Path is the changelog location relative to the repository toplevel.
const Path = "debian/changelog"

// Unreleased is the marker git-dch leaves in a fresh entry.
const Unreleased = "UNRELEASED"

// SnapshotSummary replaces the summary line in snapshot builds.
const SnapshotSummary = "Snapshot build"

// MarkSnapshot rewrites the topmost changelog entry in the repository at
// dir for a snapshot build: the distribution label on line 1 becomes
// dist and the summary on line 3 becomes SnapshotSummary. Lines without
// the UNRELEASED marker are left untouched.
func MarkSnapshot(dir, dist string) error {
	path := filepath.Join(dir, Path)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read changelog: %w", err)
	}

	lines := strings.Split(string(data), "\n")
	if len(lines) >= 1 {
		lines[0] = strings.Replace(lines[0], Unreleased, dist, 1)
	}
	if len(lines) >= 3 {
		lines[2] = strings.Replace(lines[2], Unreleased, SnapshotSummary, 1)
	}

	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		return fmt.Errorf("write changelog: %w", err)
	}
	return nil
}
