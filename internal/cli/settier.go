package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newSetTierCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "set-tier <username> <target> <tier>",
		Short: "Change a user's privilege tier (administrators only)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			username, target := args[0], args[1]
			tier, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid tier %q", args[2])
			}

			password, err := f.resolvePassword(cmd.OutOrStdout())
			if err != nil {
				return err
			}

			a, err := f.loadApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Directory.ChangeTier(cmd.Context(), username, password, target, tier); err != nil {
				return renderError(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "set tier of %s to %d\n", target, tier)
			return nil
		},
	}
}
