package app

import (
	"github.com/spf13/cobra"

	"github.com/zillowe/zoi-release/internal/version"
)

// Keys accepted by the set command.
const (
	SetKeyBranch = "branch"
	SetKeyStatus = "status"
	SetKeyNumber = "number"
)

// NewSetCmd returns a new cobra command for setting a single version field.
func NewSetCmd(mgr Manager) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <branch|status|number> <value>",
		Short: "Set the branch, status or version number",
		Long: `
Set one field of the release:

  branch  dev or prod; written to the BRANCH constant only.
  status  free text such as "Release Candidate"; written to the STATUS constant
          and to the status of both tracks in the status file.
  number  an x.y.z version; written to the NUMBER constant only.`,
		Args: cobra.ArbitraryArgs,
		Example: `
zoi-release set branch dev
zoi-release set status "Release Candidate"
zoi-release set number 3.3.0
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			key := args[0]
			var value string
			if len(args) > 1 {
				value = args[1]
			}

			switch key {
			case SetKeyBranch, SetKeyStatus, SetKeyNumber:
			default:
				return &UnknownSetKeyError{Key: key}
			}
			if value == "" {
				return &MissingSetValueError{Key: key}
			}

			ctx := cmd.Context()
			switch key {
			case SetKeyBranch:
				b, err := version.ParseBranchToken(value)
				if err != nil {
					return err
				}
				if err = mgr.SetBranch(ctx, b); err != nil {
					return err
				}
				cmd.Printf("branch is now %s\n", b)
			case SetKeyStatus:
				if err := mgr.SetStatus(ctx, value); err != nil {
					return err
				}
				cmd.Printf("status is now %s\n", value)
			default:
				n, err := version.Validate(value)
				if err != nil {
					return err
				}
				if err = mgr.SetNumber(ctx, n); err != nil {
					return err
				}
				cmd.Printf("number is now %s\n", n)
			}
			return nil
		},
	}

	return cmd
}
