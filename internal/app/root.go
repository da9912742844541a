package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/zillowe/zoi-release/internal/config"
	"github.com/zillowe/zoi-release/internal/fs"
	"github.com/zillowe/zoi-release/internal/manifest"
	"github.com/zillowe/zoi-release/internal/release"
	"github.com/zillowe/zoi-release/internal/repo"
)

// Version is the current version of zoi-release, set at build time.
var Version = "dev"

const InitCmdName = "init"

var LongDescription = `
zoi-release keeps the version of a zoi release in step across the Cargo manifest
(Cargo.toml), the source constants (src/main.rs) and the published status file
(app/version.json), and points the Homebrew formula at the matching release.
`

// NewRootCmd creates the root command and wires up dependencies.
func NewRootCmd(lazy *LazyManager, ll *slog.LevelVar, stderr io.Writer, envProvider fs.EnvProvider) *cobra.Command {
	var debug bool
	var noColour bool
	var strict bool
	var rootDir pathValue

	resolveRoot := func() (string, error) {
		return fs.ResolveRoot(string(rootDir), envProvider, fs.NewPathResolver())
	}

	rootCmd := &cobra.Command{
		Use:           "zoi-release",
		Short:         "Keep zoi release versions in sync",
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Long:          LongDescription,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if debug {
				ll.Set(slog.LevelDebug)
			}
			// Skip initialization for the root itself and the help, completion and init commands
			if !cmd.HasParent() || cmd.Name() == "help" || isCompletionCommand(cmd) || cmd.Name() == InitCmdName {
				return nil
			}
			// Skip if already initialised (e.g., in tests)
			if lazy.HasInner() {
				return nil
			}

			root, err := resolveRoot()
			if err != nil {
				return err
			}
			cfg, err := config.New(root)
			if err != nil {
				return fmt.Errorf("configuration failed: %w", err)
			}

			useColour := !noColour && envProvider.Get(fs.NoColorEnvVar) == ""
			logger, _, err := setupLogger(stderr, ll, root, envProvider, useColour)
			if err != nil {
				logger.Warn("logging to file disabled", "error", err)
			}
			logger.Debug("resolved repository root", "root", root, "strict", strict)

			store := manifest.NewStore(cfg.ArtifactPaths(), logger)
			lazy.SetInner(NewCLIManager(logger, store, release.NewSyncer(logger, strict), repo.NewCLIGitter(root)))
			return nil
		},
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				red := color.New(color.FgRed)
				if noColour || envProvider.Get(fs.NoColorEnvVar) != "" {
					red.DisableColor()
				} else {
					red.EnableColor()
				}
				_, _ = red.Fprintf(cmd.ErrOrStderr(), "Unknown command: '%s'\n", args[0])
			}
			return cmd.Help()
		},
	}

	// Global flags
	rootCmd.PersistentFlags().VarP(&rootDir, "root", "r",
		"repository root (overrides "+fs.RootEnvVar+", defaults to the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false,
		"Fail instead of warning when a version declaration cannot be found")

	rootCmd.PersistentFlags().BoolVarP(&noColour, "nocolour", "c", false, "Disable colour in output")
	// Support alternate spellings
	rootCmd.PersistentFlags().BoolVar(&noColour, "nocolor", false, "")
	rootCmd.PersistentFlags().BoolVar(&noColour, "noColor", false, "")
	rootCmd.PersistentFlags().BoolVar(&noColour, "noColour", false, "")
	_ = rootCmd.PersistentFlags().MarkHidden("nocolor")
	_ = rootCmd.PersistentFlags().MarkHidden("noColor")
	_ = rootCmd.PersistentFlags().MarkHidden("noColour")

	// Subcommands
	rootCmd.AddCommand(NewInitCmd(resolveRoot))
	rootCmd.AddCommand(NewBumpCmd(lazy))
	rootCmd.AddCommand(NewSetCmd(lazy))
	rootCmd.AddCommand(NewCheckCmd(lazy))
	rootCmd.AddCommand(NewTagCmd(lazy))
	rootCmd.AddCommand(NewFormulaCmd(lazy))

	return rootCmd
}

// isCompletionCommand returns true if the command or any of its parents is the "completion" command.
func isCompletionCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "completion" {
			return true
		}
	}
	return false
}
