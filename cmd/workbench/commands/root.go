// Package commands implements the CLI commands for workbench.
package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.trai.ch/workbench/internal/app"
	"go.trai.ch/workbench/internal/build"
	"go.trai.ch/workbench/internal/core/domain"
)

// EnvPrefix prefixes the environment variables that override flags.
const EnvPrefix = "WORKBENCH"

// CLI represents the command line interface for workbench.
type CLI struct {
	app      Application
	settings *viper.Viper
	rootCmd  *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Build(ctx context.Context, ids []string, opts app.Options) error
	Config(ctx context.Context, action string, opts app.Options) error
	Watch(ctx context.Context, ids []string, opts app.Options) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "workbench",
		Short:         "Build targets described in a build file",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.PersistentFlags()
	flags.StringP("file", "f", domain.DefaultBuildFile, "Build description to load")
	flags.Bool("dry", false, "Report the outputs that would be built without building them")
	flags.BoolP("quiet", "q", false, "Suppress progress and informational output")
	flags.StringP("output", "o", "auto", "Progress view: auto, tui, linear or ci")

	settings := viper.New()
	settings.SetEnvPrefix(EnvPrefix)
	settings.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	settings.AutomaticEnv()
	_ = settings.BindPFlags(flags)

	c := &CLI{
		app:      a,
		settings: settings,
		rootCmd:  rootCmd,
	}

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newConfigCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// options resolves the invocation options from flags and environment.
func (c *CLI) options() app.Options {
	return app.Options{
		File:   c.settings.GetString("file"),
		Dry:    c.settings.GetBool("dry"),
		Quiet:  c.settings.GetBool("quiet"),
		Output: c.settings.GetString("output"),
	}
}
