package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oshokin/apiflow/internal/app"
	"github.com/oshokin/apiflow/internal/config"
	"github.com/oshokin/apiflow/internal/logger"
	"github.com/oshokin/apiflow/internal/version"
)

var (
	//nolint:gochecknoglobals // It is required for configuration initialization before the application starts.
	configFilenameFromFlag string

	//nolint:gochecknoglobals,lll // It is initialized once during the application's startup and shared across the command execution logic.
	appConfig *config.Config

	//nolint:gochecknoglobals,lll // Cobra command requires a global definition for proper command-line parsing and execution.
	rootCmd = &cobra.Command{
		Use:   "apiflow [flags] {urls}",
		Short: "Dispatch declarative API calls and print their lifecycle actions.",
		Long: `Apiflow performs HTTP API calls described as declarative call descriptors
and prints the three lifecycle actions of each call (loading, success, error)
as JSON lines.

It is the command-line companion of the apiflow middleware library: the same
interception pipeline that applications embed drives each call here, so the
output matches what an embedded pipeline would emit.`,
		Version:          version.Full(),
		Args:             cobra.MinimumNArgs(1),
		PersistentPreRun: initConfig,
		Run: func(cmd *cobra.Command, urls []string) {
			if err := bindFlagsToConfig(cmd.Flags(), appConfig); err != nil {
				logger.Fatalf(cmd.Context(), "Failed to parse flags: %v", err)
			}

			app.ExecuteRootCommand(cmd.Context(), appConfig, urls)
		},
	}
)

// Execute executes the root command.
func Execute() {
	signals := []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM}
	ctx, stop := signal.NotifyContext(context.Background(), signals...)

	defer func() {
		_ = logger.Logger().Sync()
	}()

	defer stop()

	go func() {
		defer stop()

		err := rootCmd.ExecuteContext(ctx)
		cobra.CheckErr(err)
	}()

	<-ctx.Done()
}

//nolint:gochecknoinits // Cobra requires the init function to set up flags before the command is executed.
func init() {
	rootCmd.PersistentFlags().StringVarP(
		&configFilenameFromFlag,
		"config",
		"c",
		"",
		fmt.Sprintf("path to the configuration file (default is '%s')",
			config.DefaultConfigFilename))

	rootCmdFlags := rootCmd.Flags()

	rootCmdFlags.StringP(
		"method",
		"X",
		"",
		"HTTP method to use, for example: GET, POST, DELETE.")

	rootCmdFlags.StringP(
		"data",
		"d",
		"",
		"JSON request body sent with the call.")

	rootCmdFlags.StringArrayP(
		"header",
		"H",
		nil,
		"extra request header in 'Name: value' form (repeatable).")

	rootCmdFlags.Bool(
		"no-auth",
		false,
		"do not attach the configured bearer token to this call.")

	rootCmdFlags.StringP(
		"timeout",
		"t",
		"",
		"per-call timeout, for example: 30s, 2m.")
}

func initConfig(cmd *cobra.Command, _ []string) {
	var err error

	appConfig, err = config.LoadConfig(configFilenameFromFlag)
	if err != nil {
		logger.Fatalf(cmd.Context(), "Failed to load configuration: %v", err)
	}
}

func bindFlagsToConfig(flags *pflag.FlagSet, cfg *config.Config) error {
	if flag := flags.Lookup("method"); flag != nil && flag.Changed {
		cfg.Method, _ = flags.GetString("method")
	}

	if flag := flags.Lookup("data"); flag != nil && flag.Changed {
		cfg.RequestBody, _ = flags.GetString("data")
	}

	if flag := flags.Lookup("header"); flag != nil && flag.Changed {
		cfg.RequestHeaders, _ = flags.GetStringArray("header")
	}

	if flag := flags.Lookup("no-auth"); flag != nil && flag.Changed {
		cfg.Unauthenticated, _ = flags.GetBool("no-auth")
	}

	if flag := flags.Lookup("timeout"); flag != nil && flag.Changed {
		cfg.RequestTimeout, _ = flags.GetString("timeout")
	}

	if err := config.ValidateConfig(cfg); err != nil {
		return err
	}

	logger.SetLevel(cfg.ParsedLogLevel)

	return nil
}
