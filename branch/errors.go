package branch

import "errors"

// ErrUnknownType indicates a branch name that cannot be classified.
// Errors returned by Classify unwrap to this sentinel.
var ErrUnknownType = errors.New("unknown branch type")
