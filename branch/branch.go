package branch

import (
	"fmt"
	"strings"
)

// Type is the semantic role of a branch in the git-flow model.
type Type string

// Recognized branch types.
const (
	TypeFeature Type = "feature"
	TypeDevelop Type = "develop"
	TypeRelease Type = "release"
	TypeHotfix  Type = "hotfix"
	TypeMaster  Type = "master"
)

// Types lists all recognized branch types.
func Types() []Type {
	return []Type{TypeFeature, TypeDevelop, TypeRelease, TypeHotfix, TypeMaster}
}

// Classify determines the branch type from a branch name.
//
// The name is matched on its prefix up to the first "/" or "-" separator,
// so both "feature/accounts" and "feature-accounts" classify as
// TypeFeature. "main" is accepted as an alias for "master". Returns
// ErrUnknownType for any name outside the convention; callers must treat
// that as fatal rather than guessing a fallback.
func Classify(name string) (Type, error) {
	name = strings.TrimPrefix(name, "refs/heads/")
	if name == "" {
		return "", &UnknownTypeError{Name: name}
	}

	switch prefix(name) {
	case "feature":
		return TypeFeature, nil
	case "develop":
		return TypeDevelop, nil
	case "release":
		return TypeRelease, nil
	case "hotfix":
		return TypeHotfix, nil
	case "master", "main":
		return TypeMaster, nil
	}
	return "", &UnknownTypeError{Name: name}
}

// DebianBranch returns the packaging branch tracking the given source
// branch. The mapping is fixed and exhaustive over all recognized types:
// "master" (or "main") maps to "debian", every other branch maps to
// "debian-<branch>" with "/" separators normalized to "-".
func DebianBranch(name string) (string, error) {
	typ, err := Classify(name)
	if err != nil {
		return "", err
	}
	if typ == TypeMaster {
		return "debian", nil
	}
	return "debian-" + strings.ReplaceAll(name, "/", "-"), nil
}

// prefix extracts the leading component of a branch name.
func prefix(name string) string {
	if i := strings.IndexAny(name, "/-"); i >= 0 {
		return name[:i]
	}
	return name
}

// UnknownTypeError reports a branch name that matches no recognized
// git-flow pattern.
type UnknownTypeError struct {
	Name string
}

func (e *UnknownTypeError) Error() string {
	allowed := make([]string, 0, len(Types()))
	for _, t := range Types() {
		allowed = append(allowed, string(t))
	}
	return fmt.Sprintf("malformed branch name %q, cannot classify as one of %s",
		e.Name, strings.Join(allowed, ", "))
}

func (e *UnknownTypeError) Unwrap() error {
	return ErrUnknownType
}
