package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/apiflow/internal/app"
)

var (
	//nolint:gochecknoglobals // Cobra command requires a global definition.
	authCmd = &cobra.Command{
		Use:   "auth",
		Short: "Authentication management commands",
		Long: `Manage the bearer token used for authenticated calls.

Use 'auth set-token' to store a token in the configuration file.`,
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	authSetTokenCmd = &cobra.Command{
		Use:   "set-token {token}",
		Short: "Store a bearer token in the configuration file",
		Long: `Stores the given bearer token in the configuration file.

Authenticated calls attach it as an 'Authorization: Bearer' header unless a
call explicitly opts out with --no-auth.`,
		Args:             cobra.ExactArgs(1),
		PersistentPreRun: initConfig,
		Run: func(cmd *cobra.Command, args []string) {
			app.ExecuteSetTokenCommand(cmd.Context(), appConfig, args[0])
		},
	}
)

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	authCmd.AddCommand(authSetTokenCmd)
	rootCmd.AddCommand(authCmd)
}
