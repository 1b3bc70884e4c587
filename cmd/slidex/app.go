package main

import (
	"github.com/spf13/cobra"

	"github.com/fredcamaral/slidex/internal/adapters/secondary/config"
	"github.com/fredcamaral/slidex/internal/adapters/secondary/console"
	"github.com/fredcamaral/slidex/internal/adapters/secondary/discovery"
	"github.com/fredcamaral/slidex/internal/adapters/secondary/renderer"
	"github.com/fredcamaral/slidex/internal/domain/entities"
	"github.com/fredcamaral/slidex/internal/domain/ports"
	"github.com/fredcamaral/slidex/internal/domain/services"
)

// app holds the wired components shared by the commands
type app struct {
	config    *entities.Config
	logger    *console.Logger
	fs        ports.FileSystem
	finder    *discovery.GlobFinder
	generator *services.Generator
}

// newApp loads the settings and wires the generator.
// Flags set on cmd override the settings file and the environment.
func newApp(cmd *cobra.Command, opts *globalOptions) (*app, error) {
	loader := config.NewLoader()
	loader.BindFlags(cmd.Flags())

	cfg, err := loader.Load(cmd.Context(), opts.workingDir, opts.propertiesFile)
	if err != nil {
		return nil, err
	}

	logger := console.NewLogger(cmd.OutOrStdout(), cfg.GetLogLevel(), !opts.noColor)
	logger.Debug("Loaded settings from %s", cfg.BaseDirectory)

	finder, err := discovery.NewGlobFinder(cfg.LessonsFileRegex, cfg.MaxDepth)
	if err != nil {
		return nil, err
	}

	fs := ports.NewOSFileSystem()
	generator := services.NewGenerator(cfg, fs, finder, renderer.NewRevealRenderer(), logger)

	return &app{
		config:    cfg,
		logger:    logger,
		fs:        fs,
		finder:    finder,
		generator: generator,
	}, nil
}
