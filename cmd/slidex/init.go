package main

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fredcamaral/slidex/internal/adapters/secondary/config"
	"github.com/fredcamaral/slidex/internal/adapters/secondary/console"
	"github.com/fredcamaral/slidex/internal/adapters/secondary/renderer"
	"github.com/fredcamaral/slidex/internal/domain/entities"
)

// TOMLSettingsFile is the settings file name used by `init --format toml`
const TOMLSettingsFile = "slidex.toml"

type initOptions struct {
	format string
	force  bool
}

func newInitCmd(opts *globalOptions) *cobra.Command {
	initOpts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default settings file and a starter page template",
		Long: `Write a settings file holding the default configuration, a page
template containing the slide insertion marker, and the lessons and reveal
directories. Existing files are left alone unless --force is given.

With --format toml the settings go to slidex.toml unless -p names a file;
a -p file ending in .toml is always written as TOML.

Example:
  slidex init -d course/
  slidex init --format toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settingsFile := opts.propertiesFile
			switch initOpts.format {
			case "properties":
			case "toml":
				if !cmd.Flags().Changed("properties") {
					settingsFile = TOMLSettingsFile
				}
			default:
				return fmt.Errorf("invalid format %q (must be properties or toml)", initOpts.format)
			}

			cmd.SilenceUsage = true
			return runInit(cmd, opts, initOpts, settingsFile)
		},
	}

	cmd.Flags().StringVar(&initOpts.format, "format", "properties", "Settings file format (properties or toml)")
	cmd.Flags().BoolVar(&initOpts.force, "force", false, "Overwrite existing files")

	return cmd
}

func runInit(cmd *cobra.Command, opts *globalOptions, initOpts *initOptions, settingsFile string) error {
	logger := console.NewLogger(cmd.OutOrStdout(), entities.LogLevel(opts.logLevel), !opts.noColor)
	defaults := config.GetDefaultConfig()
	defaults.BaseDirectory = opts.workingDir

	settingsPath := settingsFile
	if !filepath.IsAbs(settingsPath) {
		settingsPath = filepath.Join(opts.workingDir, settingsFile)
	}
	templatePath := defaults.TemplatePath()

	if !initOpts.force {
		for _, p := range []string{settingsPath, templatePath} {
			if fileExists(p) {
				return fmt.Errorf("%s already exists (use --force to overwrite)", p)
			}
		}
	}

	if err := config.NewLoader().CreateDefaults(cmd.Context(), settingsPath); err != nil {
		return err
	}
	logger.Info("Wrote settings to %s", settingsPath)

	page, err := renderer.RenderStarterTemplate("Lessons", path.Dir(defaults.FrameworkMarker))
	if err != nil {
		return err
	}
	if err := os.WriteFile(templatePath, page, 0644); err != nil { // #nosec G306 - page template is meant to be world readable
		return fmt.Errorf("writing template %s: %w", templatePath, err)
	}
	logger.Info("Wrote page template to %s", templatePath)

	for _, dir := range []string{defaults.LessonsDir(), defaults.RevealDir()} {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	if !fileExists(defaults.FrameworkMarkerPath()) {
		logger.Warn("reveal.js is not checked out at %s yet", filepath.Dir(defaults.FrameworkMarkerPath()))
	}

	return nil
}

func fileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
