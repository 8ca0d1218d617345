package git

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// CommandRunner executes external commands. The workflow only ever runs
// git and the packaging tools through this seam, so tests can substitute
// a mock and never touch a real repository.
type CommandRunner interface {
	// Run executes name with args in dir and returns trimmed stdout.
	// A non-zero exit returns an error carrying stderr.
	Run(dir, name string, args ...string) (string, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// NewExecRunner creates the default command runner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run implements CommandRunner.
func (r *ExecRunner) Run(dir, name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		out := strings.TrimSpace(stderr.String())
		if out == "" {
			out = strings.TrimSpace(stdout.String())
		}
		return strings.TrimSpace(stdout.String()),
			fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, out)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// SequentialMockRunner replays canned outputs in order and records every
// invocation. Used by tests to drive Context without a repository.
type SequentialMockRunner struct {
	// Calls records each invocation as name followed by its args.
	Calls [][]string

	results []mockResult
	next    int
}

type mockResult struct {
	output string
	err    error
}

// NewSequentialMockRunner creates an empty mock runner.
func NewSequentialMockRunner() *SequentialMockRunner {
	return &SequentialMockRunner{}
}

// AddOutput queues the result for the next call.
func (r *SequentialMockRunner) AddOutput(output string, err error) {
	r.results = append(r.results, mockResult{output: output, err: err})
}

// Run implements CommandRunner.
func (r *SequentialMockRunner) Run(dir, name string, args ...string) (string, error) {
	r.Calls = append(r.Calls, append([]string{name}, args...))
	if r.next >= len(r.results) {
		return "", fmt.Errorf("unexpected command: %s %s", name, strings.Join(args, " "))
	}
	res := r.results[r.next]
	r.next++
	return res.output, res.err
}
