// Package cli implements the wepost command-line interface on top of the
// application services.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/wepost/internal/app"
	"github.com/dmitrijs2005/wepost/internal/common"
	"github.com/dmitrijs2005/wepost/internal/config"
)

// rootFlags holds the persistent flag values for one command tree. Each
// NewRootCmd call gets its own instance, so commands built in the same
// process do not share state.
type rootFlags struct {
	cfgFile       string
	dsnOverride   string
	adminPassword string
	password      string
}

// NewRootCmd builds the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	root, _ := newRootCmd()
	return root
}

func newRootCmd() (*cobra.Command, *rootFlags) {
	f := &rootFlags{}

	root := &cobra.Command{
		Use:           "wepost",
		Short:         "wepost is a minimal multi-user content store",
		Long:          "wepost stores short text posts for registered users.\nEvery write is authenticated; privilege tiers gate posting, deletion and administration.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVarP(&f.cfgFile, "config", "c", "", "path to JSON config file")
	root.PersistentFlags().StringVarP(&f.dsnOverride, "dsn", "d", "", "PostgreSQL DSN (overrides config)")
	root.PersistentFlags().StringVar(&f.adminPassword, "admin-password", "", "bootstrap administrator password (overrides config)")
	root.PersistentFlags().StringVarP(&f.password, "password", "p", "", "password (prompted without echo when omitted)")

	root.AddCommand(
		newRegisterCmd(f),
		newPostCmd(f),
		newDeleteCmd(f),
		newForceDeleteCmd(f),
		newSetTierCmd(f),
	)

	return root, f
}

// loadApp builds the runtime configuration (defaults, JSON file, environment,
// then flag overrides) and initializes the application against it. The config
// file path comes from the parsed --config flag.
func (f *rootFlags) loadApp(ctx context.Context) (*app.App, error) {
	cfg := config.LoadConfig(f.cfgFile)
	if f.dsnOverride != "" {
		cfg.DatabaseDSN = f.dsnOverride
	}
	if f.adminPassword != "" {
		cfg.AdminPassword = f.adminPassword
	}
	return app.New(ctx, cfg)
}

// renderError collapses internal error detail into what the user should see.
// Authentication failures are reduced to one indistinguishable outcome so the
// CLI cannot be used to probe which usernames exist.
func renderError(err error) error {
	if errors.Is(err, common.ErrorUnauthorized) {
		return common.ErrorUnauthorized
	}
	return err
}
