package version

import (
	"regexp"
	"strings"

	debver "github.com/knqyf263/go-deb-version"
)

// DefaultRevision is the Debian revision appended to the upstream
// version when building the full package version.
const DefaultRevision = "-1"

var (
	rcRe    = regexp.MustCompile(`([0-9])rc`)
	alphaRe = regexp.MustCompile(`([0-9])a([0-9])`)
	betaRe  = regexp.MustCompile(`([0-9])b([0-9])`)

	// forbiddenRe matches characters outside the Debian upstream-version
	// alphabet after separator normalization.
	forbiddenRe = regexp.MustCompile(`[^A-Za-z0-9.+~]`)
)

// Debian converts a source version string into a Debian upstream
// version.
//
// Pre-release markers are rewritten with "~" so they sort before the
// final release under dpkg ordering (".dev0" -> "~dev0", "1.0rc1" ->
// "1.0~rc1", "1.0a1" -> "1.0~alpha1"), and the remaining characters are
// normalized to the Debian version alphabet. The rewrite only applies to
// the release part; the "+" local segment is sanitized but otherwise
// kept verbatim. The transform is order preserving and applying it to
// its own output is the identity.
func Debian(source string) string {
	release, meta, hasMeta := strings.Cut(source, "+")

	release = strings.ReplaceAll(release, ".dev", "~dev")
	release = rcRe.ReplaceAllString(release, "${1}~rc")
	release = alphaRe.ReplaceAllString(release, "${1}~alpha${2}")
	release = betaRe.ReplaceAllString(release, "${1}~beta${2}")
	release = sanitize(release)

	if hasMeta {
		return release + "+" + sanitize(meta)
	}
	return release
}

// DebianPackage returns the full Debian package version for a source
// version, including the default revision.
func DebianPackage(source string) string {
	return Debian(source) + DefaultRevision
}

// sanitize normalizes separators and strips characters the Debian
// version format forbids.
func sanitize(s string) string {
	s = strings.ReplaceAll(s, "_", ".")
	s = strings.ReplaceAll(s, "-", ".")
	return forbiddenRe.ReplaceAllString(s, "")
}

// Compare orders two Debian version strings under dpkg version
// comparison, returning -1, 0, or 1.
func Compare(a, b string) (int, error) {
	va, err := debver.NewVersion(a)
	if err != nil {
		return 0, err
	}
	vb, err := debver.NewVersion(b)
	if err != nil {
		return 0, err
	}
	switch {
	case va.LessThan(vb):
		return -1, nil
	case vb.LessThan(va):
		return 1, nil
	}
	return 0, nil
}
