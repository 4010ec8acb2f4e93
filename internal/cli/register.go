package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRegisterCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "register <username>",
		Short: "Register a new user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := args[0]

			password, err := f.resolvePassword(cmd.OutOrStdout())
			if err != nil {
				return err
			}

			a, err := f.loadApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Directory.Register(cmd.Context(), username, password); err != nil {
				return renderError(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "registered %s\n", username)
			return nil
		},
	}
}
