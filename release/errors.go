package release

import "errors"

// Workflow errors.
var (
	// ErrInvalidMode indicates an unrecognized build mode.
	ErrInvalidMode = errors.New("invalid build mode")

	// ErrExternalTool indicates the changelog generator or build tool
	// returned non-zero.
	ErrExternalTool = errors.New("external tool failed")

	// ErrVersionNotBumped indicates the new debian version does not sort
	// after the previously packaged one.
	ErrVersionNotBumped = errors.New("debian version not greater than previous")
)

// ToolError wraps a failed external tool invocation.
type ToolError struct {
	Tool string // Tool binary name (e.g., "git-dch")
	Err  error  // Underlying execution error
}

func (e *ToolError) Error() string {
	return e.Tool + ": " + e.Err.Error()
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// Is reports ErrExternalTool for errors.Is matching.
func (e *ToolError) Is(target error) bool {
	return target == ErrExternalTool
}
