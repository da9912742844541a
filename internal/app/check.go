package app

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/zillowe/zoi-release/internal/release"
)

// NewCheckCmd returns a new cobra command for verifying the release artifacts agree.
func NewCheckCmd(mgr Manager) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify that every release artifact records the same version",
		Long: `
Read every release artifact and report its version. The command fails when the
NUMBER constant differs from the status file version of the track selected by
the BRANCH constant, or when the Cargo.toml version does not start with NUMBER.

With --watch the check is repeated whenever one of the artifacts changes, until
interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := mgr.Check(cmd.Context())
			err = printReport(cmd, r, err)
			if !watch {
				return err
			}
			var inconsistent *release.InconsistentStateError
			if err != nil && !errors.As(err, &inconsistent) {
				return err
			}
			if err != nil {
				cmd.PrintErrln("Error:", err)
			}

			err = mgr.WatchCheck(cmd.Context(), func(r release.Report, err error) {
				if err = printReport(cmd, r, err); err != nil {
					cmd.PrintErrln("Error:", err)
				}
			}, nil)
			if errors.Is(err, context.Canceled) {
				cmd.PrintErrln("Interrupted by user")
				return nil
			}
			return err
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-run the check whenever an artifact changes")

	return cmd
}

// printReport writes r unless err shows the artifacts could not be read.
func printReport(cmd *cobra.Command, r release.Report, err error) error {
	var inconsistent *release.InconsistentStateError
	if err != nil && !errors.As(err, &inconsistent) {
		return err
	}

	cmd.Printf("%-12s %s\n", "manifest", r.ManifestVersion)
	cmd.Printf("%-12s %s %s %s\n", "constants", r.Branch, r.Status, r.Number)
	cmd.Printf("%-12s %s (%s)\n", "production", r.Production.Version, r.Production.Status)
	cmd.Printf("%-12s %s (%s)\n", "development", r.Development.Version, r.Development.Status)
	if err != nil {
		return err
	}
	cmd.Println("All release artifacts agree")
	return nil
}
