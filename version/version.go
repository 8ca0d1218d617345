package version

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// TagGlob is the glob passed to `git describe --match` so that only bare
// version tags (1.2.0, 0.13rc1, ...) are considered, never upstream/* or
// debian/* packaging tags.
const TagGlob = "[0-9]*"

// Source is a version derived from repository state.
type Source struct {
	Base  string // Nearest reachable version tag
	Post  int    // Commits since the tag
	SHA   string // Abbreviated HEAD commit hash (snapshots only)
	Dirty bool   // Working tree had uncommitted changes
}

// IsSnapshot reports whether the version describes anything other than
// the tagged commit itself.
func (s Source) IsSnapshot() bool {
	return s.Post > 0 || s.Dirty
}

// String renders the source version.
//
// A version at the tag on a clean tree is the bare tag. Commit distance
// appends ".post<N>", and any snapshot state appends a ".dev0+" local
// segment carrying the commit hash and, for dirty trees, a dirty marker.
func (s Source) String() string {
	v := s.Base
	if s.Post > 0 {
		v += ".post" + strconv.Itoa(s.Post)
	}
	if s.IsSnapshot() {
		var meta []string
		if s.SHA != "" {
			meta = append(meta, "g"+s.SHA)
		}
		if s.Dirty {
			meta = append(meta, "dirty")
		}
		v += ".dev0+" + strings.Join(meta, ".")
	}
	return v
}

// Describer is the repository state needed for version derivation.
// *git.Context satisfies it.
type Describer interface {
	// Describe returns `git describe --tags --dirty` output restricted
	// to tags matching the glob.
	Describe(match string) (string, error)
}

// describeRe matches "<tag>[-<distance>-g<sha>][-dirty]".
var describeRe = regexp.MustCompile(`^(.+?)(?:-(\d+)-g([0-9a-f]+))?(-dirty)?$`)

// Derive computes the source version from the nearest reachable version
// tag. Returns an error unwrapping to ErrNoVersionTag when the history
// carries no version tag at all.
func Derive(repo Describer) (Source, error) {
	out, err := repo.Describe(TagGlob)
	if err != nil {
		return Source{}, &AmbiguousError{Err: err}
	}

	m := describeRe.FindStringSubmatch(strings.TrimSpace(out))
	if m == nil {
		return Source{}, fmt.Errorf("parse describe output %q", out)
	}

	s := Source{Base: m[1], SHA: m[3], Dirty: m[4] != ""}
	if m[2] != "" {
		s.Post, err = strconv.Atoi(m[2])
		if err != nil {
			return Source{}, fmt.Errorf("parse commit distance %q: %w", m[2], err)
		}
	}
	return s, nil
}
