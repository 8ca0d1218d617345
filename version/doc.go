// Package version derives source versions from git repository state and
// maps them to Debian package versions.
//
// A source version has the shape <base>[.postN][.dev0+g<sha>[.dirty]],
// where base is the nearest reachable version tag, N the number of
// commits since it, and the metadata part identifies snapshot builds.
// Debian converts a source version into the stricter character set of a
// Debian upstream version; the transform preserves version ordering and
// is idempotent on already-converted input.
package version
