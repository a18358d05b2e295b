package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/buildgraph/cmd/order"
	"github.com/LegacyCodeHQ/buildgraph/cmd/plan"
	"github.com/LegacyCodeHQ/buildgraph/cmd/resolve"
	"github.com/LegacyCodeHQ/buildgraph/cmd/watch"
	"github.com/LegacyCodeHQ/buildgraph/cmd/why"
	"github.com/LegacyCodeHQ/buildgraph/internal/config"
	"github.com/LegacyCodeHQ/buildgraph/internal/logging"
)

// version is set via build-time ldflags
var version = "dev"

// buildDate is set via build-time ldflags
var buildDate = "unknown"

// commit is set via build-time ldflags
var commit = "unknown"

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand()

type rootOptions struct {
	logLevel  string
	logFormat string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "buildgraph",
		Short: "Resolve the artifacts of build dependency graphs",
		Long: `Buildgraph is a CLI tool for resolving the artifacts of a build dependency graph.
It walks a graph description, collects the artifact sets reached through every
dependency, selects one variant of each and plans the build work that the selected
project artifacts need.

Use 'buildgraph --help' to see all available commands, or 'buildgraph <command> --help'
for detailed information about a specific command.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupContext(cmd, opts)
		},
	}

	// Register subcommands
	cmd.AddCommand(resolve.NewCommand())
	cmd.AddCommand(order.NewCommand())
	cmd.AddCommand(why.NewCommand())
	cmd.AddCommand(plan.NewCommand())
	cmd.AddCommand(watch.NewCommand())

	// Initialize annotations for version template
	cmd.Annotations = map[string]string{
		"buildDate": buildDate,
		"commit":    commit,
	}

	// Customize version template to show additional build info
	cmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
Build date: {{printf "%s" (index .Annotations "buildDate")}}
Commit: {{printf "%s" (index .Annotations "commit")}}
`)

	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error; default from BUILDGRAPH_LOG_LEVEL or info)")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "Log format (text, json; default from BUILDGRAPH_LOG_FORMAT or text)")

	return cmd
}

// setupContext layers flags over the environment and stores the resulting
// configuration and logger in the command's context.
func setupContext(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if opts.logFormat != "" {
		cfg.LogFormat = opts.logFormat
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	ctx := config.WithConfig(cmd.Context(), cfg)
	ctx = logging.WithLogger(ctx, logger)
	cmd.SetContext(ctx)
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
