package release

import (
	"context"
	"os"
	"os/exec"
)

// Editor opens a file for interactive review. Release mode hands the
// fresh changelog entry to an editor before committing; the workflow
// only guarantees the file exists and gets staged, never its content.
type Editor interface {
	Edit(ctx context.Context, path string) error
}

// ExecEditor runs the operator's editor attached to the terminal.
type ExecEditor struct {
	// Command overrides the editor binary. Defaults to $EDITOR, then vim.
	Command string
}

// Edit implements Editor.
func (e *ExecEditor) Edit(ctx context.Context, path string) error {
	editor := e.Command
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "vim"
	}

	cmd := exec.CommandContext(ctx, editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return &ToolError{Tool: editor, Err: err}
	}
	return nil
}

// NopEditor skips the interactive step. Used in snapshot mode and tests.
type NopEditor struct{}

// Edit implements Editor.
func (NopEditor) Edit(ctx context.Context, path string) error {
	return nil
}
