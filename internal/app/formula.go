package app

import (
	"maps"
	"slices"

	"github.com/spf13/cobra"
)

// NewFormulaCmd returns a new cobra command for updating the Homebrew formula.
func NewFormulaCmd(mgr Manager) *cobra.Command {
	var artifacts dirValue

	cmd := &cobra.Command{
		Use:   "formula",
		Short: "Point the Homebrew formula at the current release",
		Long: `
Rewrite the version and release tag of the Homebrew formula from the constants
file. With --artifacts, the sha512 of every archive found in that directory is
recomputed.`,
		Args: cobra.NoArgs,
		Example: `
zoi-release formula
zoi-release formula --artifacts ./dist
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := mgr.SyncFormula(cmd.Context(), string(artifacts))
			if err != nil {
				return err
			}
			for _, name := range slices.Sorted(maps.Keys(r.Checksums)) {
				cmd.Printf("sha512 updated for %s\n", name)
			}
			cmd.Println("Formula updated")
			return nil
		},
	}

	cmd.Flags().VarP(&artifacts, "artifacts", "a", "directory holding the release archives")

	return cmd
}
