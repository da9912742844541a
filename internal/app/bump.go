package app

import (
	"github.com/spf13/cobra"

	"github.com/zillowe/zoi-release/internal/version"
)

// NewBumpCmd returns a new cobra command for bumping a track's version.
func NewBumpCmd(mgr Manager) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bump <prod|dev> <major|minor|patch>",
		Short: "Increment the version of a release track",
		Long: `
Increment the version of the production or development track and propagate it:
the Cargo.toml version becomes <version>-<status>-<track>, the NUMBER constant
becomes the bare version and the track's version in the status file is updated.
The branch and status are left unchanged.`,
		Args: cobra.ArbitraryArgs,
		Example: `
zoi-release bump prod minor
zoi-release bump dev patch
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			t, err := version.ParseTrack(args[0])
			if err != nil {
				return err
			}
			var part string
			if len(args) > 1 {
				part = args[1]
			}
			p, err := version.ParsePart(part)
			if err != nil {
				return err
			}

			next, err := mgr.Bump(cmd.Context(), t, p)
			if err != nil {
				return err
			}
			cmd.Printf("%s version is now %s\n", t.Key(), next)
			return nil
		},
	}

	return cmd
}
