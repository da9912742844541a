package app

import (
	"github.com/spf13/cobra"
)

// NewTagCmd returns a new cobra command for tagging the release in git.
func NewTagCmd(mgr Manager) *cobra.Command {
	var push bool

	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Create the git tag the release downloads are published under",
		Long: `
Create an annotated git tag named after the constants file, e.g. Prod-Beta-3.2.5.
The Homebrew formula downloads its archives from the release with this tag.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tag, err := mgr.Tag(cmd.Context(), push)
			if err != nil {
				return err
			}
			cmd.Printf("Tagged release %s\n", tag)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&push, "push", "p", false, "Push the tag to origin")

	return cmd
}
