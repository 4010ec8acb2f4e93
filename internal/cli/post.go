package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPostCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "post <username> <body>",
		Short: "Create a post",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			username, body := args[0], args[1]

			password, err := f.resolvePassword(cmd.OutOrStdout())
			if err != nil {
				return err
			}

			a, err := f.loadApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			id, err := a.Posts.Create(cmd.Context(), username, password, body)
			if err != nil {
				return renderError(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created post %d\n", id)
			return nil
		},
	}
}
