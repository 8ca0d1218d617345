package release

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/itminedu/devflow/git"
)

func TestGitDchArgs(t *testing.T) {
	runner := git.NewSequentialMockRunner()
	runner.AddOutput("", nil)

	dch := &GitDch{Runner: runner}
	err := dch.Update(context.Background(), "/work", ChangelogParams{
		DebianBranch: "debian-develop",
		NewVersion:   "1.2.0-1",
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	want := []string{"git-dch",
		"--debian-branch=debian-develop",
		"--git-author",
		"--ignore-regex=.*",
		"--multimaint-merge",
		"--since=HEAD",
		"--new-version=1.2.0-1",
	}
	if !reflect.DeepEqual(runner.Calls[0], want) {
		t.Errorf("git-dch args = %v, want %v", runner.Calls[0], want)
	}
}

func TestGitDchError(t *testing.T) {
	runner := git.NewSequentialMockRunner()
	runner.AddOutput("", errors.New("exit status 1"))

	dch := &GitDch{Runner: runner}
	err := dch.Update(context.Background(), "/work", ChangelogParams{})
	if !errors.Is(err, ErrExternalTool) {
		t.Errorf("Update error = %v, want ErrExternalTool", err)
	}
}

func TestGitBuildpackageArgs(t *testing.T) {
	tests := []struct {
		name string
		p    BuildParams
		tail []string
	}{
		{
			name: "unsigned",
			p:    BuildParams{Sign: false},
			tail: []string{"-uc", "-us"},
		},
		{
			name: "signed default key",
			p:    BuildParams{Sign: true},
			tail: nil,
		},
		{
			name: "signed explicit key",
			p:    BuildParams{Sign: true, KeyID: "0xDEADBEEF"},
			tail: []string{"-k0xDEADBEEF"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := git.NewSequentialMockRunner()
			runner.AddOutput("", nil)

			p := tt.p
			p.BuildDir = "/builds"
			p.UpstreamBranch = "develop"
			p.DebianBranch = "debian-develop"
			p.UpstreamTag = "upstream/1.2.0"
			p.DiffIgnore = `^(v\.py)$`

			gbp := &GitBuildpackage{Runner: runner}
			if err := gbp.Build(context.Background(), "/work", p); err != nil {
				t.Fatalf("Build failed: %v", err)
			}

			want := []string{"git-buildpackage",
				"--git-export-dir=/builds",
				"--git-upstream-branch=develop",
				"--git-debian-branch=debian-develop",
				"--git-export=INDEX",
				"--git-ignore-new",
				"-sa",
				`--source-option=--extend-diff-ignore=^(v\.py)$`,
				"--git-upstream-tag=upstream/1.2.0",
			}
			want = append(want, tt.tail...)
			if !reflect.DeepEqual(runner.Calls[0], want) {
				t.Errorf("git-buildpackage args = %v, want %v", runner.Calls[0], want)
			}
		})
	}
}

func TestGitBuildpackageError(t *testing.T) {
	runner := git.NewSequentialMockRunner()
	runner.AddOutput("", errors.New("exit status 2"))

	gbp := &GitBuildpackage{Runner: runner}
	err := gbp.Build(context.Background(), "/work", BuildParams{})
	if !errors.Is(err, ErrExternalTool) {
		t.Errorf("Build error = %v, want ErrExternalTool", err)
	}

	var toolErr *ToolError
	if !errors.As(err, &toolErr) || toolErr.Tool != "git-buildpackage" {
		t.Errorf("error = %#v, want ToolError for git-buildpackage", err)
	}
}
