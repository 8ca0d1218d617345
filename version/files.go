package version

import (
	"fmt"
	"os"
	"path/filepath"
)

// VCSMarker is the content marker embedded in generated version files.
// The release workflow force-adds every file carrying it, so generated,
// normally-ignored version files make it into the packaging commit.
const VCSMarker = "__version_vcs"

// WriteFile writes a package version file under dir with the derived
// source version. The file is created (or overwritten) with the marker
// line so it can be rediscovered by content search.
func WriteFile(dir, relPath string, src Source) error {
	path := filepath.Join(dir, relPath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create version file dir: %w", err)
	}

	content := fmt.Sprintf(
		"# Generated automatically; do not edit manually.\n"+
			"__version__ = %q\n"+
			"%s__ = %q\n",
		src.Base, VCSMarker, src.String(),
	)

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write version file: %w", err)
	}
	return nil
}
