package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fredcamaral/slidex/internal/adapters/secondary/config"
	"github.com/fredcamaral/slidex/internal/domain/entities"
)

var (
	// Version is set during build
	Version = "dev"

	// BuildDate is set during build
	BuildDate = "unknown"
)

// globalOptions are the flags shared by every command
type globalOptions struct {
	workingDir     string
	propertiesFile string
	logLevel       string
	noColor        bool
}

// newRootCmd builds the command tree. The root command itself generates the pages.
func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	genOpts := &generateOptions{}

	rootCmd := &cobra.Command{
		Use:   "slidex",
		Short: "Extract slides from lesson files into reveal.js presentations",
		Long: `slidex scans a tree of lesson files for regions delimited by
"-- *Slide* --" and "-- *Slide End* --", writes one reveal.js page per
lesson into the reveal directory and an index page linking them all.`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runGenerate(cmd, opts, genOpts)
		},
	}

	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
Build Date: ` + BuildDate + `
`)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.workingDir, "workingdir", "d", ".", "Working directory holding the settings file")
	flags.StringVarP(&opts.propertiesFile, "properties", "p", config.DefaultPropertiesFile, "Settings file, relative to the working directory")
	flags.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	rootCmd.Flags().BoolVar(&genOpts.keepGoing, "keep-going", false, "Skip lessons that cannot be read or written instead of stopping")
	rootCmd.Flags().StringVar(&genOpts.reportPath, "report", "", "Write a run report (.json for JSON, anything else YAML)")

	rootCmd.AddCommand(newInspectCmd(opts))
	rootCmd.AddCommand(newInitCmd(opts))
	rootCmd.AddCommand(newServeCmd(opts))

	return rootCmd
}

func main() {
	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// printError writes a fatal error, plus remediation when there is one
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)

	var missing *entities.FrameworkMissingError
	if errors.As(err, &missing) {
		fmt.Fprintln(w, missing.Remediation())
	}
}
