package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/wepost/internal/common"
)

func parsePostID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid post id %q", s)
	}
	return id, nil
}

func newDeleteCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <username> <post-id>",
		Short: "Delete your own post (administrators delete any post)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := args[0]
			id, err := parsePostID(args[1])
			if err != nil {
				return err
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

			removed, err := a.Posts.DeleteOwn(cmd.Context(), username, password, id)
			if err != nil {
				return renderError(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "removed %d post(s)\n", removed)
			return nil
		},
	}
}

func newForceDeleteCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "force-delete <username> <post-id>",
		Short: "Delete any post by id (administrators only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := args[0]
			id, err := parsePostID(args[1])
			if err != nil {
				return err
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

			caller, err := a.Authorizer.Authenticate(cmd.Context(), a.DB(), username, password)
			if err != nil {
				return renderError(err)
			}
			if !a.Authorizer.CanForceDelete(caller) {
				return common.ErrorForbidden
			}

			if err := a.Posts.ForceDelete(cmd.Context(), id); err != nil {
				return renderError(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "deleted post %d\n", id)
			return nil
		},
	}
}
