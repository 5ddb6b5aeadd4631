// Package commands implements the CLI commands for packager.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/packager/internal/app"
	"go.trai.ch/packager/internal/build"
	"go.trai.ch/zerr"
)

var errNegativeJobs = zerr.New("--jobs must not be negative")

// CLI represents the command line interface for packager.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Build(ctx context.Context, opts app.RunOptions) error
	Verify(ctx context.Context, opts app.RunOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "packager",
		Short:         "Package a release tree into versioned bundles and publish a feed",
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
	flags.String("root", ".", "Root of the release tree")
	flags.String("config", "", "Path to a configuration file (default <root>/packager.yaml)")
	flags.BoolP("partial-package-list", "p", false, "Report cross-package completeness problems as warnings")
	flags.IntP("jobs", "j", 0, "Number of files hashed concurrently (default from configuration)")
	flags.Bool("log-json", false, "Emit logs as JSON")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newVerifyCmd())
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

func runOptions(cmd *cobra.Command) (app.RunOptions, error) {
	flags := cmd.Flags()
	root, _ := flags.GetString("root")
	configPath, _ := flags.GetString("config")
	partial, _ := flags.GetBool("partial-package-list")
	jobs, _ := flags.GetInt("jobs")
	logJSON, _ := flags.GetBool("log-json")

	if jobs < 0 {
		return app.RunOptions{}, zerr.With(errNegativeJobs, "jobs", jobs)
	}

	return app.RunOptions{
		Root:       root,
		ConfigPath: configPath,
		Partial:    partial,
		Jobs:       jobs,
		LogJSON:    logJSON,
	}, nil
}
