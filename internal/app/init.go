package app

import (
	"github.com/spf13/cobra"

	"github.com/zillowe/zoi-release/internal/config"
)

// NewInitCmd returns a new cobra command for writing the default configuration.
func NewInitCmd(resolveRoot func() (string, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   InitCmdName,
		Short: "Write a default " + config.ConfigFile,
		Long: `
Create ` + config.ConfigFile + ` in the repository root with the default artifact
locations. The file is optional; edit it when the artifacts live elsewhere.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := resolveRoot()
			if err != nil {
				return err
			}
			path, err := config.WriteDefault(root)
			if err != nil {
				return err
			}
			cmd.Printf("Created %s\n", path)
			return nil
		},
	}

	return cmd
}
