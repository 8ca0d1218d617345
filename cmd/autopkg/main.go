// Command autopkg builds Debian packages from the current git repository.
//
// It clones the repository, merges the checked-out branch into its
// packaging branch, derives the new version from git history, updates
// debian/changelog, and runs git-buildpackage, leaving the source tree
// untouched. The positional argument selects release or snapshot mode;
// when omitted, the DEVFLOW_BUILD_MODE environment variable decides.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/itminedu/devflow/config"
	"github.com/itminedu/devflow/git"
	"github.com/itminedu/devflow/notify"
	"github.com/itminedu/devflow/release"
)

var (
	repoDir    string
	buildDir   string
	configFile string
	dist       string
	keyID      string
	keepRepo   bool
	allowDirty bool
	noSign     bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "autopkg [release|snapshot]",
	Short: "Build Debian packages from the current repository",
	Long: `autopkg merges the current branch into its Debian packaging branch
inside a disposable clone, computes the next package version from git
history, updates debian/changelog, and builds source packages with
git-buildpackage. The original repository is never modified.

In release mode the changelog entry is opened in $EDITOR for review and
the clone is kept for pushing the new refs. In snapshot mode the entry
is finalized automatically and the clone is removed unless --keep-repo
is given.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		modeStr := release.ModeFromEnv()
		if len(args) == 1 {
			modeStr = args[0]
		}
		if modeStr == "" {
			return fmt.Errorf("no build mode given and %s is not set", release.BuildModeEnv)
		}
		mode, err := release.ParseMode(modeStr)
		if err != nil {
			return err
		}

		ctx, err := git.NewContext(".")
		if err != nil {
			return fmt.Errorf("current directory is not a git repository: %w", err)
		}
		toplevel, err := ctx.Toplevel()
		if err != nil {
			return err
		}
		ctx, err = git.NewContext(toplevel)
		if err != nil {
			return err
		}

		cfgPath := configFile
		if cfgPath == "" {
			cfgPath = filepath.Join(toplevel, config.DefaultFileName)
		}
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}

		wf := release.NewWorkflow(release.NewGitRepo(ctx), cfg, release.Options{
			Mode:       mode,
			RepoDir:    repoDir,
			BuildDir:   buildDir,
			KeepRepo:   keepRepo,
			AllowDirty: allowDirty,
			Dist:       dist,
			Sign:       !noSign,
			KeyID:      keyID,
		}, release.WithNotifier(buildNotifier(verbose)))

		_, err = wf.Run(cmd.Context())
		return err
	},
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&repoDir, "repo-dir", "r", "",
		"directory for the disposable clone (default: a temp directory)")
	flags.StringVarP(&buildDir, "build-dir", "b", "",
		"directory for the built packages (default: a temp directory)")
	flags.StringVarP(&configFile, "config-file", "c", "",
		"configuration file (default: devflow.conf in the repo toplevel)")
	flags.BoolVarP(&keepRepo, "keep-repo", "k", false,
		"keep the clone after a snapshot build")
	flags.BoolVarP(&allowDirty, "dirty", "d", false,
		"allow building from a dirty working tree")
	flags.StringVar(&dist, "dist", "unstable",
		"distribution for snapshot changelog entries")
	flags.BoolVar(&noSign, "no-sign", false,
		"do not sign the built packages")
	flags.StringVar(&keyID, "key-id", "",
		"GPG key to sign packages with")
	flags.BoolVarP(&verbose, "verbose", "v", false,
		"also log structured events")
}

// buildNotifier selects progress reporting: always the console, plus
// structured slog events when verbose.
func buildNotifier(verbose bool) notify.Notifier {
	console := notify.NewConsoleNotifier(nil)
	if !verbose {
		return console
	}
	return notify.NewMultiNotifier(console, notify.NewLogNotifier(nil))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
