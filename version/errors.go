package version

import "errors"

// ErrNoVersionTag indicates no version tag is reachable from HEAD, so no
// source version can be derived.
var ErrNoVersionTag = errors.New("no reachable version tag")

// AmbiguousError wraps a describe failure during version derivation.
type AmbiguousError struct {
	Err error
}

func (e *AmbiguousError) Error() string {
	return "derive version: " + e.Err.Error()
}

func (e *AmbiguousError) Unwrap() error {
	return ErrNoVersionTag
}
